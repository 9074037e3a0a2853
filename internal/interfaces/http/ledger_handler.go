package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/Sacoleiras-api/internal/application/dto"
	"github.com/jhoicas/Sacoleiras-api/internal/application/ledger"
	"github.com/jhoicas/Sacoleiras-api/pkg/logger"
)

// LedgerHandler lançamentos: registro y consulta. No expone edición ni borrado.
type LedgerHandler struct {
	uc  *ledger.UseCase
	log *logger.Logger
}

// NewLedgerHandler construye el handler.
func NewLedgerHandler(uc *ledger.UseCase, log *logger.Logger) *LedgerHandler {
	return &LedgerHandler{uc: uc, log: log}
}

// Record godoc
// @Summary      Registrar entrega o devolución
// @Description  Sin unit_value se usa el precio vigente del producto. Una sacoleira solo registra para sí misma.
// @Tags         ledger
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.RecordEntryRequest  true  "Lançamento"
// @Success      201   {object}  dto.LedgerEntryResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      403   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/ledger [post]
func (h *LedgerHandler) Record(c *fiber.Ctx) error {
	var in dto.RecordEntryRequest
	if ok, err := bindAndValidate(c, &in); !ok {
		return err
	}
	out, err := h.uc.RecordEntry(c.UserContext(), GetIdentity(c), in)
	if err != nil {
		return writeError(c, h.log, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// List godoc
// @Summary      Listar lançamentos
// @Tags         ledger
// @Security     Bearer
// @Produce      json
// @Param        reseller_id  query  string  false  "ID de sacoleira o 'all'"
// @Param        product_id   query  string  false  "ID de producto"
// @Param        kind         query  string  false  "entrega | devolucao"
// @Param        category     query  string  false  "Nombre de categoría o 'all'"
// @Param        q            query  string  false  "Búsqueda por sacoleira o producto"
// @Param        from         query  string  false  "Desde (RFC3339 o 2006-01-02)"
// @Param        to           query  string  false  "Hasta (RFC3339 o 2006-01-02)"
// @Success      200  {object}  dto.LedgerListResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      403  {object}  dto.ErrorResponse
// @Router       /api/ledger [get]
func (h *LedgerHandler) List(c *fiber.Ctx) error {
	q, ok := ledgerQuery(c)
	if !ok {
		return badQuery(c)
	}
	out, err := h.uc.List(c.UserContext(), GetIdentity(c), q)
	if err != nil {
		return writeError(c, h.log, err)
	}
	return c.JSON(out)
}

// GetByID godoc
// @Summary      Obtener lançamento
// @Tags         ledger
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID del lançamento"
// @Success      200  {object}  dto.LedgerEntryResponse
// @Failure      403  {object}  dto.ErrorResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/ledger/{id} [get]
func (h *LedgerHandler) GetByID(c *fiber.Ctx) error {
	out, err := h.uc.GetByID(c.UserContext(), GetIdentity(c), c.Params("id"))
	if err != nil {
		return writeError(c, h.log, err)
	}
	if out == nil {
		return notFound(c, "lançamento no encontrado")
	}
	return c.JSON(out)
}
