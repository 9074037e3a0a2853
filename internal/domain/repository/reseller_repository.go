package repository

import (
	"context"

	"github.com/jhoicas/Sacoleiras-api/internal/domain/entity"
)

// ResellerRepository define el puerto de persistencia para Reseller (sacoleiras).
type ResellerRepository interface {
	Create(ctx context.Context, reseller *entity.Reseller) error
	GetByID(ctx context.Context, id string) (*entity.Reseller, error)
	GetByUserID(ctx context.Context, userID string) (*entity.Reseller, error)
	Update(ctx context.Context, reseller *entity.Reseller) error
	List(ctx context.Context) ([]*entity.Reseller, error)
	Delete(ctx context.Context, id string) error
}
