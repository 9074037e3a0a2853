// Package ledger contiene los casos de uso de lançamentos (entregas y devoluciones).
package ledger

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/Sacoleiras-api/internal/application/dto"
	"github.com/jhoicas/Sacoleiras-api/internal/domain"
	"github.com/jhoicas/Sacoleiras-api/internal/domain/access"
	"github.com/jhoicas/Sacoleiras-api/internal/domain/entity"
	"github.com/jhoicas/Sacoleiras-api/internal/domain/repository"
	"github.com/jhoicas/Sacoleiras-api/internal/domain/stock"
)

// UseCase registra y lista lançamentos. El ledger es append-only: no hay edición ni borrado.
type UseCase struct {
	ledgerRepo   repository.LedgerRepository
	productRepo  repository.ProductRepository
	resellerRepo repository.ResellerRepository
	now          func() time.Time
}

// NewUseCase construye el caso de uso.
func NewUseCase(ledgerRepo repository.LedgerRepository, productRepo repository.ProductRepository, resellerRepo repository.ResellerRepository) *UseCase {
	return &UseCase{
		ledgerRepo:   ledgerRepo,
		productRepo:  productRepo,
		resellerRepo: resellerRepo,
		now:          time.Now,
	}
}

// RecordEntry registra una entrega o devolución.
// La entrada se valida antes de tocar cualquier repositorio. Una sacoleira solo registra
// para sí misma. Sin UnitValue se toma el precio vigente del producto. UnitValue con más
// de dos decimales → ErrInvalidInput, así Total = Quantity * UnitValue se guarda sin redondeo.
func (uc *UseCase) RecordEntry(ctx context.Context, id access.Identity, in dto.RecordEntryRequest) (*dto.LedgerEntryResponse, error) {
	kind := entity.EntryKind(in.Kind)
	productID := strings.TrimSpace(in.ProductID)
	resellerID := strings.TrimSpace(in.ResellerID)
	if productID == "" || resellerID == "" || !kind.Valid() || in.Quantity <= 0 || in.Quantity > entity.MaxEntryQuantity {
		return nil, domain.ErrInvalidInput
	}
	if in.UnitValue != nil && !entity.ValidAmount(*in.UnitValue) {
		return nil, domain.ErrInvalidInput
	}
	if err := access.Authorize(id, access.ActionCreate, access.ResourceLedger); err != nil {
		return nil, err
	}
	scoped, err := access.ScopeReseller(id, resellerID)
	if err != nil {
		return nil, err
	}

	product, err := uc.productRepo.GetByID(ctx, productID)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, domain.ErrNotFound
	}
	reseller, err := uc.resellerRepo.GetByID(ctx, scoped)
	if err != nil {
		return nil, err
	}
	if reseller == nil {
		return nil, domain.ErrNotFound
	}

	unit := product.Price
	if in.UnitValue != nil {
		unit = *in.UnitValue
	}
	e := &entity.LedgerEntry{
		ID:           uuid.New().String(),
		ProductID:    product.ID,
		ProductName:  product.Name,
		ResellerID:   reseller.ID,
		ResellerName: reseller.Name,
		Kind:         kind,
		Quantity:     in.Quantity,
		UnitValue:    unit,
		Total:        unit.Mul(decimal.NewFromInt(int64(in.Quantity))),
		Note:         strings.TrimSpace(in.Note),
		Paid:         in.Paid,
		CreatedBy:    id.UserID,
		CreatedAt:    uc.now(),
	}
	if err := uc.ledgerRepo.Create(ctx, e); err != nil {
		return nil, err
	}
	return toEntryResponse(e), nil
}

// GetByID obtiene un lançamento. Una sacoleira no puede ver lançamentos ajenos (ErrForbidden).
// Devuelve nil, nil si no existe.
func (uc *UseCase) GetByID(ctx context.Context, id access.Identity, entryID string) (*dto.LedgerEntryResponse, error) {
	if err := access.Authorize(id, access.ActionRead, access.ResourceLedger); err != nil {
		return nil, err
	}
	e, err := uc.ledgerRepo.GetByID(ctx, entryID)
	if err != nil {
		return nil, err
	}
	if e == nil {
		return nil, nil
	}
	if _, err := access.ScopeReseller(id, e.ResellerID); err != nil {
		return nil, err
	}
	return toEntryResponse(e), nil
}

// List lista lançamentos del alcance de la identidad, más recientes primero.
// Category y Search se aplican sobre el resultado del repositorio.
func (uc *UseCase) List(ctx context.Context, id access.Identity, q dto.LedgerQuery) (*dto.LedgerListResponse, error) {
	if err := access.Authorize(id, access.ActionRead, access.ResourceLedger); err != nil {
		return nil, err
	}
	requested := q.ResellerID
	if stock.IsAll(requested) {
		requested = ""
	}
	scoped, err := access.ScopeReseller(id, requested)
	if err != nil {
		return nil, err
	}
	kind := entity.EntryKind(q.Kind)
	if kind != "" && !kind.Valid() {
		return nil, domain.ErrInvalidInput
	}
	if q.From != nil && q.To != nil && q.To.Before(*q.From) {
		return nil, domain.ErrInvalidInput
	}

	entries, err := uc.ledgerRepo.List(ctx, repository.LedgerFilter{
		ResellerID: scoped,
		ProductID:  q.ProductID,
		Kind:       kind,
		From:       q.From,
		To:         q.To,
	})
	if err != nil {
		return nil, err
	}

	var categories map[string]string
	if !stock.IsAll(q.Category) {
		products, err := uc.productRepo.ListAll(ctx)
		if err != nil {
			return nil, err
		}
		categories = stock.CategoryIndex(products)
	}
	entries = stock.FilterEntries(entries, categories, stock.Filter{
		Search:   q.Search,
		Category: q.Category,
	})

	items := make([]dto.LedgerEntryResponse, 0, len(entries))
	for _, e := range entries {
		items = append(items, *toEntryResponse(e))
	}
	return &dto.LedgerListResponse{Items: items, Total: len(items)}, nil
}

func toEntryResponse(e *entity.LedgerEntry) *dto.LedgerEntryResponse {
	return &dto.LedgerEntryResponse{
		ID:           e.ID,
		ProductID:    e.ProductID,
		ProductName:  e.ProductName,
		ResellerID:   e.ResellerID,
		ResellerName: e.ResellerName,
		Kind:         string(e.Kind),
		Quantity:     e.Quantity,
		UnitValue:    e.UnitValue,
		Total:        e.Total,
		Note:         e.Note,
		Paid:         e.Paid,
		CreatedBy:    e.CreatedBy,
		CreatedAt:    e.CreatedAt,
	}
}
