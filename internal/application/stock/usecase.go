// Package stock contiene las vistas de estoque derivadas del ledger.
package stock

import (
	"context"

	"golang.org/x/sync/errgroup"

	"github.com/jhoicas/Sacoleiras-api/internal/application/dto"
	"github.com/jhoicas/Sacoleiras-api/internal/domain/access"
	"github.com/jhoicas/Sacoleiras-api/internal/domain/entity"
	"github.com/jhoicas/Sacoleiras-api/internal/domain/repository"
	domainstock "github.com/jhoicas/Sacoleiras-api/internal/domain/stock"
)

// UseCase vistas de estoque: posiciones valorizadas, resumen por nombre y bajo mínimo.
// Todo se recalcula desde el ledger completo del alcance en cada llamada.
type UseCase struct {
	ledgerRepo  repository.LedgerRepository
	productRepo repository.ProductRepository
}

// NewUseCase construye el caso de uso.
func NewUseCase(ledgerRepo repository.LedgerRepository, productRepo repository.ProductRepository) *UseCase {
	return &UseCase{ledgerRepo: ledgerRepo, productRepo: productRepo}
}

// Positions devuelve las posiciones en estoque (neto != 0) del alcance, filtradas y agrupadas por sacoleira.
func (uc *UseCase) Positions(ctx context.Context, id access.Identity, q dto.StockQuery) (*dto.StockViewResponse, error) {
	ps, err := uc.Compute(ctx, id, q)
	if err != nil {
		return nil, err
	}
	return toView(ps), nil
}

// Compute carga, agrega, valoriza y filtra. Las posiciones salen ordenadas por sacoleira y producto.
func (uc *UseCase) Compute(ctx context.Context, id access.Identity, q dto.StockQuery) ([]domainstock.Position, error) {
	if err := access.Authorize(id, access.ActionRead, access.ResourceStock); err != nil {
		return nil, err
	}
	requested := q.ResellerID
	if domainstock.IsAll(requested) {
		requested = ""
	}
	scoped, err := access.ScopeReseller(id, requested)
	if err != nil {
		return nil, err
	}
	entries, products, err := uc.load(ctx, scoped)
	if err != nil {
		return nil, err
	}
	index := make(map[string]*entity.Product, len(products))
	for _, p := range products {
		index[p.ID] = p
	}
	ps := domainstock.Price(domainstock.Aggregate(entries).InStock(), index)
	return domainstock.FilterPositions(ps, domainstock.Filter{
		Search:   q.Search,
		Category: q.Category,
	}), nil
}

// Summary vista sacoleira → producto → neto por nombre, para el alcance de la identidad.
// Incluye netos en cero y negativos.
func (uc *UseCase) Summary(ctx context.Context, id access.Identity) (dto.StockSummaryResponse, error) {
	if err := access.Authorize(id, access.ActionRead, access.ResourceStock); err != nil {
		return nil, err
	}
	scoped, err := access.ScopeReseller(id, "")
	if err != nil {
		return nil, err
	}
	entries, err := uc.ledgerRepo.List(ctx, repository.LedgerFilter{ResellerID: scoped})
	if err != nil {
		return nil, err
	}
	return dto.StockSummaryResponse(domainstock.Aggregate(entries).ByName()), nil
}

// LowStock posiciones en estoque por debajo del mínimo del producto.
func (uc *UseCase) LowStock(ctx context.Context, id access.Identity, q dto.StockQuery) ([]dto.StockPositionResponse, error) {
	ps, err := uc.Compute(ctx, id, q)
	if err != nil {
		return nil, err
	}
	out := make([]dto.StockPositionResponse, 0)
	for _, p := range ps {
		if p.BelowMinimum {
			out = append(out, toPositionResponse(p))
		}
	}
	return out, nil
}

// load lee ledger y catálogo en paralelo; el primer error cancela la otra lectura.
func (uc *UseCase) load(ctx context.Context, resellerID string) ([]*entity.LedgerEntry, []*entity.Product, error) {
	var (
		entries  []*entity.LedgerEntry
		products []*entity.Product
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		entries, err = uc.ledgerRepo.List(gctx, repository.LedgerFilter{ResellerID: resellerID})
		return err
	})
	g.Go(func() error {
		var err error
		products, err = uc.productRepo.ListAll(gctx)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, nil, err
	}
	return entries, products, nil
}

func toView(ps []domainstock.Position) *dto.StockViewResponse {
	view := &dto.StockViewResponse{Resellers: []dto.ResellerStockResponse{}}
	order := make([]string, 0)
	groups := make(map[string][]domainstock.Position)
	for _, p := range ps {
		if _, ok := groups[p.ResellerID]; !ok {
			order = append(order, p.ResellerID)
		}
		groups[p.ResellerID] = append(groups[p.ResellerID], p)
	}
	for _, rid := range order {
		group := groups[rid]
		t := domainstock.Sum(group)
		items := make([]dto.StockPositionResponse, 0, len(group))
		for _, p := range group {
			items = append(items, toPositionResponse(p))
		}
		view.Resellers = append(view.Resellers, dto.ResellerStockResponse{
			ResellerID:    rid,
			ResellerName:  group[0].ResellerName,
			Items:         items,
			TotalQuantity: t.Quantity,
			TotalValue:    t.Value,
		})
	}
	total := domainstock.Sum(ps)
	view.TotalQuantity = total.Quantity
	view.TotalValue = total.Value
	return view
}

func toPositionResponse(p domainstock.Position) dto.StockPositionResponse {
	return dto.StockPositionResponse{
		ResellerID:   p.ResellerID,
		ResellerName: p.ResellerName,
		ProductID:    p.ProductID,
		ProductName:  p.ProductName,
		Category:     p.Category,
		Delivered:    p.Delivered,
		Returned:     p.Returned,
		Quantity:     p.Quantity,
		UnitPrice:    p.UnitPrice,
		Value:        p.Value,
		MinStock:     p.MinStock,
		BelowMinimum: p.BelowMinimum,
	}
}
