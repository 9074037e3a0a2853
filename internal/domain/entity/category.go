package entity

import "time"

// UncategorizedName nombre que reportan los productos sin categoría en cualquier vista.
const UncategorizedName = "Sem categoria"

// Category representa una categoría de productos del catálogo.
type Category struct {
	ID        string
	Name      string // único
	CreatedAt time.Time
	UpdatedAt time.Time
}
