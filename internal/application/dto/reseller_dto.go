package dto

import "time"

// CreateResellerRequest entrada para dar de alta una sacoleira.
type CreateResellerRequest struct {
	Name       string `json:"name" validate:"required,min=1,max=200"`
	NationalID string `json:"national_id" validate:"omitempty,max=20"`
	Phone      string `json:"phone" validate:"omitempty,max=30"`
	Email      string `json:"email" validate:"omitempty,email"`
	Address    string `json:"address" validate:"omitempty,max=300"`
	UserID     string `json:"user_id" validate:"omitempty,uuid"`
}

// UpdateResellerRequest entrada para actualizar una sacoleira.
type UpdateResellerRequest struct {
	Name       *string `json:"name" validate:"omitempty,min=1,max=200"`
	NationalID *string `json:"national_id" validate:"omitempty,max=20"`
	Phone      *string `json:"phone" validate:"omitempty,max=30"`
	Email      *string `json:"email" validate:"omitempty,email"`
	Address    *string `json:"address" validate:"omitempty,max=300"`
	UserID     *string `json:"user_id" validate:"omitempty,uuid"`
}

// ResellerResponse salida de una sacoleira.
type ResellerResponse struct {
	ID         string    `json:"id"`
	Name       string    `json:"name"`
	NationalID string    `json:"national_id"`
	Phone      string    `json:"phone"`
	Email      string    `json:"email"`
	Address    string    `json:"address"`
	UserID     string    `json:"user_id,omitempty"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}
