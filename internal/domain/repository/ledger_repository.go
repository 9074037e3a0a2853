package repository

import (
	"context"
	"time"

	"github.com/jhoicas/Sacoleiras-api/internal/domain/entity"
)

// LedgerFilter criterios opcionales para leer lançamentos. Campos vacíos no filtran.
type LedgerFilter struct {
	ResellerID string
	ProductID  string
	Kind       entity.EntryKind
	From       *time.Time
	To         *time.Time
}

// LedgerRepository define el puerto de persistencia para lançamentos.
// Solo inserción y lectura: el ledger es append-only.
type LedgerRepository interface {
	Create(ctx context.Context, entry *entity.LedgerEntry) error
	GetByID(ctx context.Context, id string) (*entity.LedgerEntry, error)
	List(ctx context.Context, filter LedgerFilter) ([]*entity.LedgerEntry, error)
}
