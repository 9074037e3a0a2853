package repository

import (
	"context"

	"github.com/jhoicas/Sacoleiras-api/internal/domain/entity"
)

// ProductRepository define el puerto de persistencia para Product (DIP).
// Las lecturas devuelven CategoryName ya resuelto.
type ProductRepository interface {
	Create(ctx context.Context, product *entity.Product) error
	GetByID(ctx context.Context, id string) (*entity.Product, error)
	Update(ctx context.Context, product *entity.Product) error
	List(ctx context.Context, limit, offset int) ([]*entity.Product, error)
	ListAll(ctx context.Context) ([]*entity.Product, error)
	CountByCategory(ctx context.Context, categoryID string) (int, error)
	Delete(ctx context.Context, id string) error
}
