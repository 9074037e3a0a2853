package memory

import (
	"context"
	"sort"
	"strings"

	"github.com/jhoicas/Sacoleiras-api/internal/domain"
	"github.com/jhoicas/Sacoleiras-api/internal/domain/entity"
)

// ResellerRepo sacoleiras en memoria.
type ResellerRepo struct{ s *Store }

func (r *ResellerRepo) checkUserLink(rs *entity.Reseller) error {
	if rs.UserID == "" {
		return nil
	}
	if _, ok := r.s.users[rs.UserID]; !ok {
		return domain.ErrNotFound
	}
	for _, other := range r.s.resellers {
		if other.ID != rs.ID && other.UserID == rs.UserID {
			return domain.ErrDuplicate
		}
	}
	return nil
}

// Create persiste una sacoleira; un usuario solo puede vincularse a una.
func (r *ResellerRepo) Create(_ context.Context, rs *entity.Reseller) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if err := r.checkUserLink(rs); err != nil {
		return err
	}
	cp := *rs
	r.s.resellers[rs.ID] = &cp
	return nil
}

// GetByID devuelve nil, nil si no existe.
func (r *ResellerRepo) GetByID(_ context.Context, id string) (*entity.Reseller, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	rs, ok := r.s.resellers[id]
	if !ok {
		return nil, nil
	}
	cp := *rs
	return &cp, nil
}

// GetByUserID sacoleira vinculada al usuario; nil, nil si no hay.
func (r *ResellerRepo) GetByUserID(_ context.Context, userID string) (*entity.Reseller, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	for _, rs := range r.s.resellers {
		if userID != "" && rs.UserID == userID {
			cp := *rs
			return &cp, nil
		}
	}
	return nil, nil
}

// Update reemplaza la sacoleira.
func (r *ResellerRepo) Update(_ context.Context, rs *entity.Reseller) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.resellers[rs.ID]; !ok {
		return domain.ErrNotFound
	}
	if err := r.checkUserLink(rs); err != nil {
		return err
	}
	cp := *rs
	r.s.resellers[rs.ID] = &cp
	return nil
}

// List sacoleiras ordenadas por nombre.
func (r *ResellerRepo) List(_ context.Context) ([]*entity.Reseller, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	out := make([]*entity.Reseller, 0, len(r.s.resellers))
	for _, rs := range r.s.resellers {
		cp := *rs
		out = append(out, &cp)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

// Delete elimina la sacoleira; falla con ErrConflict si tiene lançamentos.
func (r *ResellerRepo) Delete(_ context.Context, id string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, e := range r.s.entries {
		if e.ResellerID == id {
			return domain.ErrConflict
		}
	}
	delete(r.s.resellers, id)
	return nil
}

// UserRepo usuarios en memoria.
type UserRepo struct{ s *Store }

// Create persiste un usuario; el email es único (sin distinguir mayúsculas).
func (r *UserRepo) Create(_ context.Context, u *entity.User) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, existing := range r.s.users {
		if strings.EqualFold(existing.Email, u.Email) {
			return domain.ErrEmailAlreadyExists
		}
	}
	cp := *u
	r.s.users[u.ID] = &cp
	return nil
}

// GetByID devuelve nil, nil si no existe.
func (r *UserRepo) GetByID(_ context.Context, id string) (*entity.User, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	u, ok := r.s.users[id]
	if !ok {
		return nil, nil
	}
	cp := *u
	return &cp, nil
}

// GetByEmail devuelve nil, nil si no existe.
func (r *UserRepo) GetByEmail(_ context.Context, email string) (*entity.User, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	for _, u := range r.s.users {
		if strings.EqualFold(u.Email, email) {
			cp := *u
			return &cp, nil
		}
	}
	return nil, nil
}
