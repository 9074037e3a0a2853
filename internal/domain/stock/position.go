package stock

import (
	"github.com/shopspring/decimal"

	"github.com/jhoicas/Sacoleiras-api/internal/domain/entity"
)

// Position posición de estoque valorizada con el precio vigente del producto.
type Position struct {
	ResellerID   string
	ResellerName string
	ProductID    string
	ProductName  string
	Category     string
	Delivered    int
	Returned     int
	Quantity     int             // neto, puede ser negativo
	UnitPrice    decimal.Decimal // precio actual del producto
	Value        decimal.Decimal // Quantity * UnitPrice
	MinStock     int
	BelowMinimum bool // MinStock > 0 y Quantity < MinStock
}

// Price valoriza las líneas con el precio actual del catálogo.
// Un producto ausente del catálogo queda sin categoría y con precio cero.
func Price(lines []Line, products map[string]*entity.Product) []Position {
	out := make([]Position, 0, len(lines))
	for _, l := range lines {
		p := Position{
			ResellerID:   l.ResellerID,
			ResellerName: l.ResellerName,
			ProductID:    l.ProductID,
			ProductName:  l.ProductName,
			Category:     entity.UncategorizedName,
			Delivered:    l.Delivered,
			Returned:     l.Returned,
			Quantity:     l.Net(),
			UnitPrice:    decimal.Zero,
		}
		if prod, ok := products[l.ProductID]; ok && prod != nil {
			if prod.CategoryName != "" {
				p.Category = prod.CategoryName
			}
			p.UnitPrice = prod.Price
			p.MinStock = prod.MinStock
			if prod.Name != "" {
				p.ProductName = prod.Name
			}
		}
		p.Value = p.UnitPrice.Mul(decimal.NewFromInt(int64(p.Quantity)))
		p.BelowMinimum = p.MinStock > 0 && p.Quantity < p.MinStock
		out = append(out, p)
	}
	return out
}

// Totals suma de cantidades y valores de un conjunto de posiciones.
type Totals struct {
	Quantity int
	Value    decimal.Decimal
}

// Sum totaliza las posiciones.
func Sum(ps []Position) Totals {
	t := Totals{Value: decimal.Zero}
	for _, p := range ps {
		t.Quantity += p.Quantity
		t.Value = t.Value.Add(p.Value)
	}
	return t
}
