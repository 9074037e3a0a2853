package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CreateProductRequest entrada para crear un producto.
type CreateProductRequest struct {
	Name       string          `json:"name" validate:"required,min=1,max=200"`
	CategoryID string          `json:"category_id" validate:"omitempty,uuid"`
	Price      decimal.Decimal `json:"price" validate:"gt=0"`
	MinStock   int             `json:"min_stock" validate:"min=0"`
}

// UpdateProductRequest entrada para actualizar un producto. CategoryID "" quita la categoría.
type UpdateProductRequest struct {
	Name       *string          `json:"name" validate:"omitempty,min=1,max=200"`
	CategoryID *string          `json:"category_id" validate:"omitempty,uuid"`
	Price      *decimal.Decimal `json:"price"`
	MinStock   *int             `json:"min_stock" validate:"omitempty,min=0"`
}

// ProductResponse salida de un producto.
type ProductResponse struct {
	ID         string          `json:"id"`
	Name       string          `json:"name"`
	CategoryID string          `json:"category_id,omitempty"`
	Category   string          `json:"category"`
	Price      decimal.Decimal `json:"price"`
	MinStock   int             `json:"min_stock"`
	CreatedAt  time.Time       `json:"created_at"`
	UpdatedAt  time.Time       `json:"updated_at"`
}

// ProductListResponse lista paginada de productos.
type ProductListResponse struct {
	Items []ProductResponse `json:"items"`
	Page  PageResponse      `json:"page"`
}
