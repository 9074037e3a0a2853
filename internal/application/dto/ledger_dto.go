package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// RecordEntryRequest body para POST /api/ledger.
// UnitValue vacío toma el precio vigente del producto; si viene, con a lo sumo dos decimales.
type RecordEntryRequest struct {
	ProductID  string           `json:"product_id" validate:"required,uuid"`
	ResellerID string           `json:"reseller_id" validate:"required,uuid"`
	Kind       string           `json:"kind" validate:"required,oneof=entrega devolucao"`
	Quantity   int              `json:"quantity" validate:"gt=0,max=1000000"`
	UnitValue  *decimal.Decimal `json:"unit_value,omitempty"`
	Note       string           `json:"note" validate:"omitempty,max=500"`
	Paid       bool             `json:"paid"`
}

// LedgerQuery criterios de lectura del ledger (query string).
type LedgerQuery struct {
	ResellerID string
	ProductID  string
	Kind       string
	Category   string
	Search     string
	From       *time.Time
	To         *time.Time
}

// LedgerEntryResponse salida de un lançamento.
type LedgerEntryResponse struct {
	ID           string          `json:"id"`
	ProductID    string          `json:"product_id"`
	ProductName  string          `json:"product_name"`
	ResellerID   string          `json:"reseller_id"`
	ResellerName string          `json:"reseller_name"`
	Kind         string          `json:"kind"`
	Quantity     int             `json:"quantity"`
	UnitValue    decimal.Decimal `json:"unit_value"`
	Total        decimal.Decimal `json:"total"`
	Note         string          `json:"note"`
	Paid         bool            `json:"paid"`
	CreatedBy    string          `json:"created_by,omitempty"`
	CreatedAt    time.Time       `json:"created_at"`
}

// LedgerListResponse lista de lançamentos.
type LedgerListResponse struct {
	Items []LedgerEntryResponse `json:"items"`
	Total int                   `json:"total"`
}
