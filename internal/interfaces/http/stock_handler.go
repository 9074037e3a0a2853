package http

import (
	"fmt"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/Sacoleiras-api/internal/application/report"
	"github.com/jhoicas/Sacoleiras-api/internal/application/stock"
	"github.com/jhoicas/Sacoleiras-api/pkg/logger"
)

const (
	mimeXLSX = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
	mimePDF  = "application/pdf"
)

// StockHandler vistas de estoque y reportes descargables.
type StockHandler struct {
	uc     *stock.UseCase
	report *report.UseCase
	log    *logger.Logger
}

// NewStockHandler construye el handler.
func NewStockHandler(uc *stock.UseCase, reportUC *report.UseCase, log *logger.Logger) *StockHandler {
	return &StockHandler{uc: uc, report: reportUC, log: log}
}

// Positions godoc
// @Summary      Estoque por sacoleira
// @Description  Posiciones con neto distinto de cero, valorizadas al precio vigente.
// @Tags         stock
// @Security     Bearer
// @Produce      json
// @Param        reseller_id  query  string  false  "ID de sacoleira o 'all'"
// @Param        category     query  string  false  "Nombre de categoría o 'all'"
// @Param        q            query  string  false  "Búsqueda por sacoleira o producto"
// @Success      200  {object}  dto.StockViewResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      403  {object}  dto.ErrorResponse
// @Router       /api/stock [get]
func (h *StockHandler) Positions(c *fiber.Ctx) error {
	q, ok := stockQuery(c)
	if !ok {
		return badQuery(c)
	}
	out, err := h.uc.Positions(c.UserContext(), GetIdentity(c), q)
	if err != nil {
		return writeError(c, h.log, err)
	}
	return c.JSON(out)
}

// Summary godoc
// @Summary      Resumen sacoleira → producto → neto
// @Tags         stock
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  dto.StockSummaryResponse
// @Router       /api/stock/summary [get]
func (h *StockHandler) Summary(c *fiber.Ctx) error {
	out, err := h.uc.Summary(c.UserContext(), GetIdentity(c))
	if err != nil {
		return writeError(c, h.log, err)
	}
	return c.JSON(out)
}

// LowStock godoc
// @Summary      Posiciones bajo el mínimo
// @Tags         stock
// @Security     Bearer
// @Produce      json
// @Success      200  {array}  dto.StockPositionResponse
// @Router       /api/stock/low [get]
func (h *StockHandler) LowStock(c *fiber.Ctx) error {
	q, ok := stockQuery(c)
	if !ok {
		return badQuery(c)
	}
	out, err := h.uc.LowStock(c.UserContext(), GetIdentity(c), q)
	if err != nil {
		return writeError(c, h.log, err)
	}
	return c.JSON(out)
}

// ExportXLSX godoc
// @Summary      Exportar estoque a Excel
// @Tags         stock
// @Security     Bearer
// @Produce      application/vnd.openxmlformats-officedocument.spreadsheetml.sheet
// @Success      200  {file}  file
// @Router       /api/stock/export.xlsx [get]
func (h *StockHandler) ExportXLSX(c *fiber.Ctx) error {
	q, ok := stockQuery(c)
	if !ok {
		return badQuery(c)
	}
	out, err := h.report.StockXLSX(c.UserContext(), GetIdentity(c), q)
	if err != nil {
		return writeError(c, h.log, err)
	}
	c.Set(fiber.HeaderContentType, mimeXLSX)
	c.Set(fiber.HeaderContentDisposition, `attachment; filename="estoque.xlsx"`)
	return c.Send(out)
}

// StatementPDF godoc
// @Summary      Extrato de consignação
// @Description  PDF con el estoque y los lançamentos de una sacoleira.
// @Tags         resellers
// @Security     Bearer
// @Produce      application/pdf
// @Param        id   path  string  true  "ID de la sacoleira"
// @Success      200  {file}  file
// @Failure      403  {object}  dto.ErrorResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/resellers/{id}/statement.pdf [get]
func (h *StockHandler) StatementPDF(c *fiber.Ctx) error {
	id := c.Params("id")
	out, err := h.report.StatementPDF(c.UserContext(), GetIdentity(c), id)
	if err != nil {
		return writeError(c, h.log, err)
	}
	c.Set(fiber.HeaderContentType, mimePDF)
	c.Set(fiber.HeaderContentDisposition, fmt.Sprintf(`inline; filename="extrato-%s.pdf"`, id))
	return c.Send(out)
}
