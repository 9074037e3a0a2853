package entity

import "time"

// Roles válidos para User.
const (
	RoleAdmin     = "admin"
	RoleSacoleira = "sacoleira"
)

// Estados de User.
const (
	UserStatusActive   = "active"
	UserStatusInactive = "inactive"
)

// User representa un usuario del sistema.
type User struct {
	ID           string
	Email        string
	PasswordHash string // bcrypt hash, nunca plano en dominio después de persistir
	Name         string
	Role         string // admin, sacoleira
	Status       string // active, inactive
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
