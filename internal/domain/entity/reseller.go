package entity

import "time"

// Reseller representa una sacoleira: revendedora que recibe mercadería en consignación.
type Reseller struct {
	ID         string
	Name       string
	NationalID string // CPF
	Phone      string
	Email      string
	Address    string
	UserID     string // usuario vinculado (vacío si no tiene acceso al sistema)
	CreatedAt  time.Time
	UpdatedAt  time.Time
}
