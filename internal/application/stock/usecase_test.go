package stock_test

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Sacoleiras-api/internal/application/dto"
	"github.com/jhoicas/Sacoleiras-api/internal/application/stock"
	"github.com/jhoicas/Sacoleiras-api/internal/domain"
	"github.com/jhoicas/Sacoleiras-api/internal/domain/access"
	"github.com/jhoicas/Sacoleiras-api/internal/domain/entity"
	"github.com/jhoicas/Sacoleiras-api/internal/domain/repository"
	"github.com/jhoicas/Sacoleiras-api/internal/infrastructure/memory"
)

var (
	admin = access.Identity{UserID: "u-admin", Role: entity.RoleAdmin}
	ana   = access.Identity{UserID: "u-ana", Role: entity.RoleSacoleira, ResellerID: "r-ana"}
)

func seed(t *testing.T) *memory.Store {
	t.Helper()
	ctx := context.Background()
	s := memory.NewStore()
	now := time.Now()
	require.NoError(t, s.Categories().Create(ctx, &entity.Category{ID: "c-roupas", Name: "Roupas"}))
	require.NoError(t, s.Products().Create(ctx, &entity.Product{ID: "p-blusa", Name: "Blusa", CategoryID: "c-roupas", Price: decimal.NewFromInt(50), MinStock: 5}))
	require.NoError(t, s.Products().Create(ctx, &entity.Product{ID: "p-brinco", Name: "Brinco", Price: decimal.NewFromInt(15)}))
	require.NoError(t, s.Resellers().Create(ctx, &entity.Reseller{ID: "r-ana", Name: "Ana"}))
	require.NoError(t, s.Resellers().Create(ctx, &entity.Reseller{ID: "r-bia", Name: "Bia"}))

	n := 0
	add := func(product, reseller string, kind entity.EntryKind, qty int, unit int64) {
		n++
		require.NoError(t, s.Ledger().Create(ctx, &entity.LedgerEntry{
			ID: fmt.Sprintf("e%d", n), ProductID: product, ResellerID: reseller,
			Kind: kind, Quantity: qty, UnitValue: decimal.NewFromInt(unit), CreatedAt: now,
		}))
	}
	// Ana: blusas 10 - 2 = 8, brincos 3
	add("p-blusa", "r-ana", entity.KindDelivery, 10, 40)
	add("p-blusa", "r-ana", entity.KindReturn, 2, 40)
	add("p-brinco", "r-ana", entity.KindDelivery, 3, 15)
	// Bia: blusas 4 (bajo el mínimo de 5), brincos devueltos completos → neto 0
	add("p-blusa", "r-bia", entity.KindDelivery, 4, 50)
	add("p-brinco", "r-bia", entity.KindDelivery, 2, 15)
	add("p-brinco", "r-bia", entity.KindReturn, 2, 15)
	return s
}

func TestPositions_AgrupaYValorizaAlPrecioVigente(t *testing.T) {
	s := seed(t)
	uc := stock.NewUseCase(s.Ledger(), s.Products())

	view, err := uc.Positions(context.Background(), admin, dto.StockQuery{})
	require.NoError(t, err)
	require.Len(t, view.Resellers, 2)

	a := view.Resellers[0]
	assert.Equal(t, "Ana", a.ResellerName)
	require.Len(t, a.Items, 2)
	assert.Equal(t, "Blusa", a.Items[0].ProductName)
	assert.Equal(t, 8, a.Items[0].Quantity)
	assert.Equal(t, 10, a.Items[0].Delivered)
	assert.Equal(t, 2, a.Items[0].Returned)
	assert.True(t, decimal.NewFromInt(400).Equal(a.Items[0].Value), "valor al precio vigente, no al del lançamento")
	assert.Equal(t, entity.UncategorizedName, a.Items[1].Category)
	assert.Equal(t, 11, a.TotalQuantity)
	assert.True(t, decimal.NewFromInt(445).Equal(a.TotalValue))

	b := view.Resellers[1]
	require.Len(t, b.Items, 1, "neto cero queda fuera")
	assert.True(t, b.Items[0].BelowMinimum)

	assert.Equal(t, 15, view.TotalQuantity)
	assert.True(t, decimal.NewFromInt(645).Equal(view.TotalValue))
}

func TestPositions_Filtros(t *testing.T) {
	s := seed(t)
	uc := stock.NewUseCase(s.Ledger(), s.Products())
	ctx := context.Background()

	view, err := uc.Positions(ctx, admin, dto.StockQuery{Category: "Roupas", ResellerID: "all"})
	require.NoError(t, err)
	require.Len(t, view.Resellers, 2)
	for _, r := range view.Resellers {
		for _, it := range r.Items {
			assert.Equal(t, "Roupas", it.Category)
		}
	}

	view, err = uc.Positions(ctx, admin, dto.StockQuery{Search: "brin"})
	require.NoError(t, err)
	require.Len(t, view.Resellers, 1)
	assert.Equal(t, "Ana", view.Resellers[0].ResellerName)

	view, err = uc.Positions(ctx, admin, dto.StockQuery{Search: "nada"})
	require.NoError(t, err)
	assert.Empty(t, view.Resellers)
	assert.NotNil(t, view.Resellers)
}

func TestPositions_SacoleiraSoloVeLaSuya(t *testing.T) {
	s := seed(t)
	uc := stock.NewUseCase(s.Ledger(), s.Products())
	ctx := context.Background()

	view, err := uc.Positions(ctx, ana, dto.StockQuery{ResellerID: "all"})
	require.NoError(t, err)
	require.Len(t, view.Resellers, 1)
	assert.Equal(t, "r-ana", view.Resellers[0].ResellerID)

	_, err = uc.Positions(ctx, ana, dto.StockQuery{ResellerID: "r-bia"})
	assert.ErrorIs(t, err, domain.ErrForbidden)
}

func TestSummary_PorNombre(t *testing.T) {
	s := seed(t)
	uc := stock.NewUseCase(s.Ledger(), s.Products())

	sum, err := uc.Summary(context.Background(), admin)
	require.NoError(t, err)
	assert.Equal(t, dto.StockSummaryResponse{
		"Ana": {"Blusa": 8, "Brinco": 3},
		"Bia": {"Blusa": 4, "Brinco": 0},
	}, sum)

	own, err := uc.Summary(context.Background(), ana)
	require.NoError(t, err)
	assert.Len(t, own, 1)
	assert.Contains(t, own, "Ana")
}

func TestLowStock(t *testing.T) {
	s := seed(t)
	uc := stock.NewUseCase(s.Ledger(), s.Products())

	low, err := uc.LowStock(context.Background(), admin, dto.StockQuery{})
	require.NoError(t, err)
	require.Len(t, low, 1)
	assert.Equal(t, "Bia", low[0].ResellerName)
	assert.Equal(t, 4, low[0].Quantity)
}

type failingProducts struct {
	repository.ProductRepository
}

func (failingProducts) ListAll(context.Context) ([]*entity.Product, error) {
	return nil, errors.New("db caída")
}

func TestPositions_ErrorDeCarga(t *testing.T) {
	s := seed(t)
	uc := stock.NewUseCase(s.Ledger(), failingProducts{})

	_, err := uc.Positions(context.Background(), admin, dto.StockQuery{})
	assert.EqualError(t, err, "db caída")
}
