// Package report genera los documentos descargables: extracto de consignación (PDF)
// y planilla de estoque (XLSX).
package report

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/Sacoleiras-api/internal/application/dto"
	appstock "github.com/jhoicas/Sacoleiras-api/internal/application/stock"
	"github.com/jhoicas/Sacoleiras-api/internal/domain"
	"github.com/jhoicas/Sacoleiras-api/internal/domain/access"
	"github.com/jhoicas/Sacoleiras-api/internal/domain/entity"
	"github.com/jhoicas/Sacoleiras-api/internal/domain/repository"
	"github.com/jhoicas/Sacoleiras-api/internal/domain/stock"
)

// Statement datos del extracto de una sacoleira.
type Statement struct {
	CompanyName   string
	Reseller      *entity.Reseller
	Positions     []stock.Position
	Entries       []*entity.LedgerEntry
	TotalQuantity int
	TotalValue    decimal.Decimal
	IssuedAt      time.Time
}

// StockSheet datos de la planilla de estoque.
type StockSheet struct {
	CompanyName string
	Positions   []stock.Position
	IssuedAt    time.Time
}

// StatementPDFGenerator puerto para renderizar el extracto en PDF.
type StatementPDFGenerator interface {
	GenerateStatementPDF(ctx context.Context, s Statement) ([]byte, error)
}

// StockSheetExporter puerto para exportar el estoque a planilla.
type StockSheetExporter interface {
	ExportStock(ctx context.Context, s StockSheet) ([]byte, error)
}

// UseCase arma los datos de cada reporte y delega el render a los puertos.
type UseCase struct {
	stock        *appstock.UseCase
	resellerRepo repository.ResellerRepository
	ledgerRepo   repository.LedgerRepository
	pdf          StatementPDFGenerator
	sheet        StockSheetExporter
	companyName  string
	now          func() time.Time
}

// NewUseCase construye el caso de uso de reportes.
func NewUseCase(
	stockUC *appstock.UseCase,
	resellerRepo repository.ResellerRepository,
	ledgerRepo repository.LedgerRepository,
	pdf StatementPDFGenerator,
	sheet StockSheetExporter,
	companyName string,
) *UseCase {
	return &UseCase{
		stock:        stockUC,
		resellerRepo: resellerRepo,
		ledgerRepo:   ledgerRepo,
		pdf:          pdf,
		sheet:        sheet,
		companyName:  companyName,
		now:          time.Now,
	}
}

// StatementPDF extracto de consignación de una sacoleira: posiciones en estoque y lançamentos.
// Una sacoleira solo puede pedir el suyo.
func (uc *UseCase) StatementPDF(ctx context.Context, id access.Identity, resellerID string) ([]byte, error) {
	if err := access.Authorize(id, access.ActionRead, access.ResourceReseller); err != nil {
		return nil, err
	}
	scoped, err := access.ScopeReseller(id, resellerID)
	if err != nil {
		return nil, err
	}
	if scoped == "" {
		return nil, domain.ErrInvalidInput
	}
	reseller, err := uc.resellerRepo.GetByID(ctx, scoped)
	if err != nil {
		return nil, err
	}
	if reseller == nil {
		return nil, domain.ErrNotFound
	}
	positions, err := uc.stock.Compute(ctx, id, dto.StockQuery{ResellerID: scoped})
	if err != nil {
		return nil, err
	}
	entries, err := uc.ledgerRepo.List(ctx, repository.LedgerFilter{ResellerID: scoped})
	if err != nil {
		return nil, err
	}
	t := stock.Sum(positions)
	return uc.pdf.GenerateStatementPDF(ctx, Statement{
		CompanyName:   uc.companyName,
		Reseller:      reseller,
		Positions:     positions,
		Entries:       entries,
		TotalQuantity: t.Quantity,
		TotalValue:    t.Value,
		IssuedAt:      uc.now(),
	})
}

// StockXLSX planilla con las posiciones en estoque del alcance y filtros dados.
func (uc *UseCase) StockXLSX(ctx context.Context, id access.Identity, q dto.StockQuery) ([]byte, error) {
	positions, err := uc.stock.Compute(ctx, id, q)
	if err != nil {
		return nil, err
	}
	return uc.sheet.ExportStock(ctx, StockSheet{
		CompanyName: uc.companyName,
		Positions:   positions,
		IssuedAt:    uc.now(),
	})
}
