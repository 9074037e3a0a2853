package memory

import (
	"context"
	"sort"

	"github.com/jhoicas/Sacoleiras-api/internal/domain"
	"github.com/jhoicas/Sacoleiras-api/internal/domain/entity"
)

// CategoryRepo categorías en memoria.
type CategoryRepo struct{ s *Store }

// Create persiste una categoría; el nombre es único.
func (r *CategoryRepo) Create(_ context.Context, c *entity.Category) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, existing := range r.s.categories {
		if existing.Name == c.Name {
			return domain.ErrDuplicate
		}
	}
	cp := *c
	r.s.categories[c.ID] = &cp
	return nil
}

// GetByID devuelve nil, nil si no existe.
func (r *CategoryRepo) GetByID(_ context.Context, id string) (*entity.Category, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	c, ok := r.s.categories[id]
	if !ok {
		return nil, nil
	}
	cp := *c
	return &cp, nil
}

// GetByName devuelve nil, nil si no existe.
func (r *CategoryRepo) GetByName(_ context.Context, name string) (*entity.Category, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	for _, c := range r.s.categories {
		if c.Name == name {
			cp := *c
			return &cp, nil
		}
	}
	return nil, nil
}

// Update reemplaza la categoría.
func (r *CategoryRepo) Update(_ context.Context, c *entity.Category) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.categories[c.ID]; !ok {
		return domain.ErrNotFound
	}
	for _, existing := range r.s.categories {
		if existing.ID != c.ID && existing.Name == c.Name {
			return domain.ErrDuplicate
		}
	}
	cp := *c
	r.s.categories[c.ID] = &cp
	return nil
}

// List categorías ordenadas por nombre.
func (r *CategoryRepo) List(_ context.Context) ([]*entity.Category, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	out := make([]*entity.Category, 0, len(r.s.categories))
	for _, c := range r.s.categories {
		cp := *c
		out = append(out, &cp)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

// Delete elimina la categoría; con productos asociados falla con ErrCategoryInUse.
func (r *CategoryRepo) Delete(_ context.Context, id string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, p := range r.s.products {
		if p.CategoryID == id {
			return domain.ErrCategoryInUse
		}
	}
	delete(r.s.categories, id)
	return nil
}

// ProductRepo productos en memoria.
type ProductRepo struct{ s *Store }

// Create persiste un producto; la categoría, si viene, debe existir.
func (r *ProductRepo) Create(_ context.Context, p *entity.Product) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if p.CategoryID != "" {
		if _, ok := r.s.categories[p.CategoryID]; !ok {
			return domain.ErrNotFound
		}
	}
	cp := *p
	r.s.products[p.ID] = &cp
	return nil
}

// GetByID devuelve nil, nil si no existe.
func (r *ProductRepo) GetByID(_ context.Context, id string) (*entity.Product, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	p, ok := r.s.products[id]
	if !ok {
		return nil, nil
	}
	return r.s.resolveCategory(p), nil
}

// Update reemplaza el producto.
func (r *ProductRepo) Update(_ context.Context, p *entity.Product) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.products[p.ID]; !ok {
		return domain.ErrNotFound
	}
	if p.CategoryID != "" {
		if _, ok := r.s.categories[p.CategoryID]; !ok {
			return domain.ErrNotFound
		}
	}
	cp := *p
	r.s.products[p.ID] = &cp
	return nil
}

// List productos ordenados por nombre con paginación.
func (r *ProductRepo) List(ctx context.Context, limit, offset int) ([]*entity.Product, error) {
	all, _ := r.ListAll(ctx)
	if offset >= len(all) {
		return []*entity.Product{}, nil
	}
	end := offset + limit
	if end > len(all) {
		end = len(all)
	}
	return all[offset:end], nil
}

// ListAll todos los productos ordenados por nombre.
func (r *ProductRepo) ListAll(_ context.Context) ([]*entity.Product, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	out := make([]*entity.Product, 0, len(r.s.products))
	for _, p := range r.s.products {
		out = append(out, r.s.resolveCategory(p))
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

// CountByCategory cantidad de productos que referencian la categoría.
func (r *ProductRepo) CountByCategory(_ context.Context, categoryID string) (int, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	n := 0
	for _, p := range r.s.products {
		if p.CategoryID == categoryID {
			n++
		}
	}
	return n, nil
}

// Delete elimina el producto; falla con ErrConflict si tiene lançamentos.
func (r *ProductRepo) Delete(_ context.Context, id string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, e := range r.s.entries {
		if e.ProductID == id {
			return domain.ErrConflict
		}
	}
	delete(r.s.products, id)
	return nil
}
