package dto

import "github.com/shopspring/decimal"

// StockQuery criterios de la vista de estoque.
type StockQuery struct {
	ResellerID string
	Category   string
	Search     string
}

// StockPositionResponse posición (sacoleira, producto) valorizada al precio vigente.
type StockPositionResponse struct {
	ResellerID   string          `json:"reseller_id"`
	ResellerName string          `json:"reseller_name"`
	ProductID    string          `json:"product_id"`
	ProductName  string          `json:"product_name"`
	Category     string          `json:"category"`
	Delivered    int             `json:"delivered"`
	Returned     int             `json:"returned"`
	Quantity     int             `json:"quantity"`
	UnitPrice    decimal.Decimal `json:"unit_price"`
	Value        decimal.Decimal `json:"value"`
	MinStock     int             `json:"min_stock"`
	BelowMinimum bool            `json:"below_minimum"`
}

// ResellerStockResponse estoque agrupado por sacoleira.
type ResellerStockResponse struct {
	ResellerID    string                  `json:"reseller_id"`
	ResellerName  string                  `json:"reseller_name"`
	Items         []StockPositionResponse `json:"items"`
	TotalQuantity int                     `json:"total_quantity"`
	TotalValue    decimal.Decimal         `json:"total_value"`
}

// StockViewResponse vista completa de estoque.
type StockViewResponse struct {
	Resellers     []ResellerStockResponse `json:"resellers"`
	TotalQuantity int                     `json:"total_quantity"`
	TotalValue    decimal.Decimal         `json:"total_value"`
}

// StockSummaryResponse sacoleira → producto → neto (por nombre).
type StockSummaryResponse map[string]map[string]int
