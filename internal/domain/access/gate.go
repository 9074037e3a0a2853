// Package access implementa la verificación de permisos por rol (admin / sacoleira).
//
// La identidad se construye una vez por petición a partir del token y se pasa
// explícitamente a cada caso de uso; ningún componente lee sesión global.
package access

import (
	"github.com/jhoicas/Sacoleiras-api/internal/domain"
	"github.com/jhoicas/Sacoleiras-api/internal/domain/entity"
)

// Action operación solicitada sobre un recurso.
type Action string

const (
	ActionRead   Action = "read"
	ActionCreate Action = "create"
	ActionUpdate Action = "update"
	ActionDelete Action = "delete"
)

// Resource tipo de entidad sobre la que se actúa.
type Resource string

const (
	ResourceProduct  Resource = "product"
	ResourceCategory Resource = "category"
	ResourceReseller Resource = "reseller"
	ResourceLedger   Resource = "ledger"
	ResourceStock    Resource = "stock"
	ResourceUser     Resource = "user"
)

// Identity usuario autenticado de la petición actual.
type Identity struct {
	UserID     string
	Role       string
	ResellerID string // sacoleira vinculada; vacío para admin
}

// IsAdmin informa si la identidad tiene rol administrador.
func (i Identity) IsAdmin() bool { return i.Role == entity.RoleAdmin }

// IsReseller informa si la identidad tiene rol sacoleira.
func (i Identity) IsReseller() bool { return i.Role == entity.RoleSacoleira }

// sacoleiraGrants acciones permitidas al rol sacoleira. Todo lo demás se deniega.
var sacoleiraGrants = map[Resource]map[Action]bool{
	ResourceProduct:  {ActionRead: true},
	ResourceCategory: {ActionRead: true},
	ResourceReseller: {ActionRead: true}, // solo su propio registro (ver ScopeReseller)
	ResourceLedger:   {ActionRead: true, ActionCreate: true},
	ResourceStock:    {ActionRead: true},
}

// Authorize decide si la identidad puede ejecutar action sobre res.
// Devuelve nil, ErrForbidden o ErrUnauthorized (rol desconocido).
func Authorize(id Identity, action Action, res Resource) error {
	switch {
	case id.IsAdmin():
		return nil
	case id.IsReseller():
		if sacoleiraGrants[res][action] {
			return nil
		}
		return domain.ErrForbidden
	default:
		return domain.ErrUnauthorized
	}
}

// ScopeReseller resuelve sobre qué sacoleira puede leer/escribir la identidad.
// Admin: devuelve requested tal cual (vacío = todas).
// Sacoleira: vacío o su propio id devuelven su id; cualquier otro id es ErrForbidden.
func ScopeReseller(id Identity, requested string) (string, error) {
	switch {
	case id.IsAdmin():
		return requested, nil
	case id.IsReseller():
		if id.ResellerID == "" {
			return "", domain.ErrForbidden
		}
		if requested != "" && requested != id.ResellerID {
			return "", domain.ErrForbidden
		}
		return id.ResellerID, nil
	default:
		return "", domain.ErrUnauthorized
	}
}
