package http

import (
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"github.com/jhoicas/Sacoleiras-api/internal/application/dto"
	"github.com/jhoicas/Sacoleiras-api/internal/domain/stock"
)

// isUUID acepta solo la forma canónica de 36 caracteres que guarda la base.
func isUUID(v string) bool {
	if len(v) != 36 {
		return false
	}
	_, err := uuid.Parse(v)
	return err == nil
}

// validRef filtro por id: vacío, "all" o UUID.
func validRef(v string) bool {
	return stock.IsAll(v) || isUUID(v)
}

// ValidID responde 404 en rutas /:id cuyo id no es un UUID: ese recurso no puede existir.
func ValidID() fiber.Handler {
	return func(c *fiber.Ctx) error {
		if !isUUID(c.Params("id")) {
			return notFound(c, "recurso no encontrado")
		}
		return c.Next()
	}
}

// parseTime acepta RFC3339 o fecha simple (2006-01-02). endOfDay lleva la fecha simple al último instante del día.
func parseTime(v string, endOfDay bool) (*time.Time, bool) {
	v = strings.TrimSpace(v)
	if v == "" {
		return nil, true
	}
	if t, err := time.Parse(time.RFC3339, v); err == nil {
		return &t, true
	}
	t, err := time.Parse("2006-01-02", v)
	if err != nil {
		return nil, false
	}
	if endOfDay {
		t = t.Add(24*time.Hour - time.Nanosecond)
	}
	return &t, true
}

// stockQuery lee los filtros de las vistas de estoque. ok=false si reseller_id no es UUID ni "all".
func stockQuery(c *fiber.Ctx) (dto.StockQuery, bool) {
	q := dto.StockQuery{
		ResellerID: c.Query("reseller_id"),
		Category:   c.Query("category"),
		Search:     c.Query("q"),
	}
	return q, validRef(q.ResellerID)
}

// ledgerQuery lee los filtros del listado de lançamentos. ok=false si alguna fecha o id es inválido.
func ledgerQuery(c *fiber.Ctx) (dto.LedgerQuery, bool) {
	resellerID, productID := c.Query("reseller_id"), c.Query("product_id")
	if !validRef(resellerID) || (productID != "" && !isUUID(productID)) {
		return dto.LedgerQuery{}, false
	}
	from, ok := parseTime(c.Query("from"), false)
	if !ok {
		return dto.LedgerQuery{}, false
	}
	to, ok := parseTime(c.Query("to"), true)
	if !ok {
		return dto.LedgerQuery{}, false
	}
	return dto.LedgerQuery{
		ResellerID: resellerID,
		ProductID:  productID,
		Kind:       c.Query("kind"),
		Category:   c.Query("category"),
		Search:     c.Query("q"),
		From:       from,
		To:         to,
	}, true
}

func badQuery(c *fiber.Ctx) error {
	return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
		Code:    "VALIDATION",
		Message: "filtro inválido: fechas RFC3339 o 2006-01-02, ids UUID o 'all'",
	})
}

func pageRequest(c *fiber.Ctx) dto.PageRequest {
	p := dto.PageRequest{Limit: c.QueryInt("limit", 20), Offset: c.QueryInt("offset", 0)}
	p.DefaultPage()
	return p
}
