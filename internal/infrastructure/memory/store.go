// Package memory implementa los puertos de repositorio en memoria.
// Reproduce las restricciones de la base (únicos y claves foráneas) para que los
// casos de uso se comporten igual que sobre PostgreSQL. Se usa en tests y en modo demo.
package memory

import (
	"context"
	"sync"

	"github.com/jhoicas/Sacoleiras-api/internal/application/usecase"
	"github.com/jhoicas/Sacoleiras-api/internal/domain/entity"
	"github.com/jhoicas/Sacoleiras-api/internal/domain/repository"
)

// Store estado compartido por los repositorios en memoria.
type Store struct {
	mu         sync.RWMutex
	categories map[string]*entity.Category
	products   map[string]*entity.Product
	resellers  map[string]*entity.Reseller
	users      map[string]*entity.User
	entries    []*entity.LedgerEntry
}

// NewStore crea un store vacío.
func NewStore() *Store {
	return &Store{
		categories: make(map[string]*entity.Category),
		products:   make(map[string]*entity.Product),
		resellers:  make(map[string]*entity.Reseller),
		users:      make(map[string]*entity.User),
	}
}

var (
	_ repository.CategoryRepository = (*CategoryRepo)(nil)
	_ repository.ProductRepository  = (*ProductRepo)(nil)
	_ repository.ResellerRepository = (*ResellerRepo)(nil)
	_ repository.UserRepository     = (*UserRepo)(nil)
	_ repository.LedgerRepository   = (*LedgerRepo)(nil)
	_ usecase.CatalogTxRunner       = (*Store)(nil)
)

// Categories repositorio de categorías sobre el store.
func (s *Store) Categories() *CategoryRepo { return &CategoryRepo{s: s} }

// Products repositorio de productos sobre el store.
func (s *Store) Products() *ProductRepo { return &ProductRepo{s: s} }

// Resellers repositorio de sacoleiras sobre el store.
func (s *Store) Resellers() *ResellerRepo { return &ResellerRepo{s: s} }

// Users repositorio de usuarios sobre el store.
func (s *Store) Users() *UserRepo { return &UserRepo{s: s} }

// Ledger repositorio de lançamentos sobre el store.
func (s *Store) Ledger() *LedgerRepo { return &LedgerRepo{s: s} }

// resolveCategory completa CategoryName igual que el LEFT JOIN de PostgreSQL. Requiere s.mu tomado.
func (s *Store) resolveCategory(p *entity.Product) *entity.Product {
	cp := *p
	cp.CategoryName = entity.UncategorizedName
	if c, ok := s.categories[p.CategoryID]; ok && p.CategoryID != "" {
		cp.CategoryName = c.Name
	}
	return &cp
}

// RunCatalog ejecuta fn con los repos de catálogo del store. Cada operación toma el lock por separado.
func (s *Store) RunCatalog(_ context.Context, fn func(
	categories repository.CategoryRepository,
	products repository.ProductRepository,
) error) error {
	return fn(s.Categories(), s.Products())
}
