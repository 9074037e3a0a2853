package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/Sacoleiras-api/internal/application/dto"
	"github.com/jhoicas/Sacoleiras-api/internal/application/usecase"
	"github.com/jhoicas/Sacoleiras-api/pkg/logger"
)

// ResellerHandler maneja las peticiones HTTP para sacoleiras.
type ResellerHandler struct {
	uc  *usecase.ResellerUseCase
	log *logger.Logger
}

// NewResellerHandler construye el handler.
func NewResellerHandler(uc *usecase.ResellerUseCase, log *logger.Logger) *ResellerHandler {
	return &ResellerHandler{uc: uc, log: log}
}

// Create godoc
// @Summary      Alta de sacoleira
// @Tags         resellers
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateResellerRequest  true  "Datos de la sacoleira"
// @Success      201   {object}  dto.ResellerResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/resellers [post]
func (h *ResellerHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateResellerRequest
	if ok, err := bindAndValidate(c, &in); !ok {
		return err
	}
	out, err := h.uc.Create(c.UserContext(), GetIdentity(c), in)
	if err != nil {
		return writeError(c, h.log, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// List godoc
// @Summary      Listar sacoleiras
// @Tags         resellers
// @Security     Bearer
// @Produce      json
// @Success      200  {array}  dto.ResellerResponse
// @Router       /api/resellers [get]
func (h *ResellerHandler) List(c *fiber.Ctx) error {
	out, err := h.uc.List(c.UserContext(), GetIdentity(c))
	if err != nil {
		return writeError(c, h.log, err)
	}
	return c.JSON(out)
}

// GetByID godoc
// @Summary      Obtener sacoleira
// @Description  Una sacoleira solo puede consultar su propio registro.
// @Tags         resellers
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID de la sacoleira"
// @Success      200  {object}  dto.ResellerResponse
// @Failure      403  {object}  dto.ErrorResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/resellers/{id} [get]
func (h *ResellerHandler) GetByID(c *fiber.Ctx) error {
	out, err := h.uc.GetByID(c.UserContext(), GetIdentity(c), c.Params("id"))
	if err != nil {
		return writeError(c, h.log, err)
	}
	if out == nil {
		return notFound(c, "sacoleira no encontrada")
	}
	return c.JSON(out)
}

// Update godoc
// @Summary      Actualizar sacoleira
// @Tags         resellers
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string                     true  "ID de la sacoleira"
// @Param        body  body  dto.UpdateResellerRequest  true  "Campos a actualizar"
// @Success      200   {object}  dto.ResellerResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/resellers/{id} [put]
func (h *ResellerHandler) Update(c *fiber.Ctx) error {
	var in dto.UpdateResellerRequest
	if ok, err := bindAndValidate(c, &in); !ok {
		return err
	}
	out, err := h.uc.Update(c.UserContext(), GetIdentity(c), c.Params("id"), in)
	if err != nil {
		return writeError(c, h.log, err)
	}
	if out == nil {
		return notFound(c, "sacoleira no encontrada")
	}
	return c.JSON(out)
}

// Delete godoc
// @Summary      Eliminar sacoleira
// @Tags         resellers
// @Security     Bearer
// @Param        id  path  string  true  "ID de la sacoleira"
// @Success      204
// @Failure      404  {object}  dto.ErrorResponse
// @Failure      409  {object}  dto.ErrorResponse
// @Router       /api/resellers/{id} [delete]
func (h *ResellerHandler) Delete(c *fiber.Ctx) error {
	if err := h.uc.Delete(c.UserContext(), GetIdentity(c), c.Params("id")); err != nil {
		return writeError(c, h.log, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}
