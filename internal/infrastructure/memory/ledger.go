package memory

import (
	"context"
	"sort"

	"github.com/jhoicas/Sacoleiras-api/internal/domain"
	"github.com/jhoicas/Sacoleiras-api/internal/domain/entity"
	"github.com/jhoicas/Sacoleiras-api/internal/domain/repository"
)

// LedgerRepo lançamentos en memoria (append-only).
type LedgerRepo struct{ s *Store }

// Create agrega el lançamento; producto y sacoleira deben existir.
func (r *LedgerRepo) Create(_ context.Context, e *entity.LedgerEntry) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.products[e.ProductID]; !ok {
		return domain.ErrNotFound
	}
	if _, ok := r.s.resellers[e.ResellerID]; !ok {
		return domain.ErrNotFound
	}
	cp := *e
	r.s.entries = append(r.s.entries, &cp)
	return nil
}

// withNames completa los nombres como el JOIN de la consulta SQL. Requiere s.mu tomado.
func (r *LedgerRepo) withNames(e *entity.LedgerEntry) *entity.LedgerEntry {
	cp := *e
	if p, ok := r.s.products[e.ProductID]; ok {
		cp.ProductName = p.Name
	}
	if rs, ok := r.s.resellers[e.ResellerID]; ok {
		cp.ResellerName = rs.Name
	}
	return &cp
}

// GetByID devuelve nil, nil si no existe.
func (r *LedgerRepo) GetByID(_ context.Context, id string) (*entity.LedgerEntry, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	for _, e := range r.s.entries {
		if e.ID == id {
			return r.withNames(e), nil
		}
	}
	return nil, nil
}

// List lançamentos filtrados, más recientes primero.
func (r *LedgerRepo) List(_ context.Context, f repository.LedgerFilter) ([]*entity.LedgerEntry, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	out := make([]*entity.LedgerEntry, 0, len(r.s.entries))
	for _, e := range r.s.entries {
		if f.ResellerID != "" && e.ResellerID != f.ResellerID {
			continue
		}
		if f.ProductID != "" && e.ProductID != f.ProductID {
			continue
		}
		if f.Kind != "" && e.Kind != f.Kind {
			continue
		}
		if f.From != nil && e.CreatedAt.Before(*f.From) {
			continue
		}
		if f.To != nil && e.CreatedAt.After(*f.To) {
			continue
		}
		out = append(out, r.withNames(e))
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}
