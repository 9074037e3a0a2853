package http

import (
	"context"
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/Sacoleiras-api/internal/application/dto"
	"github.com/jhoicas/Sacoleiras-api/internal/domain/access"
	"github.com/jhoicas/Sacoleiras-api/internal/domain/entity"
	"github.com/jhoicas/Sacoleiras-api/pkg/jwt"
	"github.com/jhoicas/Sacoleiras-api/pkg/logger"
)

// Locals keys para los claims del token en Fiber.
const (
	LocalUserID     = "user_id"
	LocalRole       = "role"
	LocalResellerID = "reseller_id"
)

// AuthMiddleware valida el Bearer Token JWT y extrae UserID, Role y ResellerID a c.Locals.
func AuthMiddleware(jwtSecret string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		authHeader := c.Get("Authorization")
		if authHeader == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "MISSING_TOKEN", Message: "Authorization header requerido"})
		}
		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "INVALID_TOKEN", Message: "formato: Bearer <token>"})
		}
		tokenString := strings.TrimSpace(parts[1])
		if tokenString == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "MISSING_TOKEN", Message: "token vacío"})
		}
		userID, role, resellerID, err := jwt.Parse(jwtSecret, tokenString)
		if err != nil {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "INVALID_TOKEN", Message: "token inválido o expirado"})
		}
		c.Locals(LocalUserID, userID)
		c.Locals(LocalRole, role)
		c.Locals(LocalResellerID, resellerID)
		return c.Next()
	}
}

// RequireRole permite continuar solo si el rol del token está en roles.
// Debe usarse DESPUÉS de AuthMiddleware. Token sin rol → 401 MISSING_ROLE; rol no permitido → 403.
func RequireRole(roles ...string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		role := GetRole(c)
		if role == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "MISSING_ROLE", Message: "el token no incluye rol"})
		}
		for _, r := range roles {
			if r == role {
				return c.Next()
			}
		}
		return c.Status(fiber.StatusForbidden).JSON(dto.ErrorResponse{Code: "FORBIDDEN", Message: "rol sin permiso para esta operación"})
	}
}

// ResellerLinks resuelve la sacoleira vinculada hoy a un usuario ("" si no tiene).
type ResellerLinks interface {
	LinkedResellerID(ctx context.Context, userID string) (string, error)
}

// ResolveResellerLink reemplaza la sacoleira del token por la vinculada hoy al usuario,
// aunque sea ninguna. Admin pasa sin consulta.
func ResolveResellerLink(links ResellerLinks, log *logger.Logger) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if GetRole(c) != entity.RoleSacoleira {
			return c.Next()
		}
		if err := loadResellerLink(c, links); err != nil {
			return writeError(c, log, err)
		}
		return c.Next()
	}
}

// RequireLinkedReseller como ResolveResellerLink, pero sin vínculo vigente corta con
// 403 RESELLER_NOT_LINKED. Un vínculo quitado o cambiado por un admin vale desde la
// petición siguiente, sin esperar a que expire el token.
func RequireLinkedReseller(links ResellerLinks, log *logger.Logger) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if GetRole(c) != entity.RoleSacoleira {
			return c.Next()
		}
		if err := loadResellerLink(c, links); err != nil {
			return writeError(c, log, err)
		}
		if GetResellerID(c) == "" {
			return c.Status(fiber.StatusForbidden).JSON(dto.ErrorResponse{
				Code:    "RESELLER_NOT_LINKED",
				Message: "el usuario no está vinculado a ninguna sacoleira",
			})
		}
		return c.Next()
	}
}

func loadResellerLink(c *fiber.Ctx, links ResellerLinks) error {
	resellerID, err := links.LinkedResellerID(c.UserContext(), GetUserID(c))
	if err != nil {
		return err
	}
	c.Locals(LocalResellerID, resellerID)
	return nil
}

// GetUserID devuelve el UserID del contexto (después del middleware de auth).
func GetUserID(c *fiber.Ctx) string {
	return localString(c, LocalUserID)
}

// GetRole devuelve el rol del contexto (después del middleware de auth).
func GetRole(c *fiber.Ctx) string {
	return localString(c, LocalRole)
}

// GetResellerID devuelve la sacoleira vinculada (vacío para admin). Detrás de
// RequireLinkedReseller es el vínculo vigente, no el del token.
func GetResellerID(c *fiber.Ctx) string {
	return localString(c, LocalResellerID)
}

// GetIdentity arma la identidad que reciben los casos de uso.
func GetIdentity(c *fiber.Ctx) access.Identity {
	return access.Identity{
		UserID:     GetUserID(c),
		Role:       GetRole(c),
		ResellerID: GetResellerID(c),
	}
}

func localString(c *fiber.Ctx, key string) string {
	v := c.Locals(key)
	if v == nil {
		return ""
	}
	s, _ := v.(string)
	return s
}
