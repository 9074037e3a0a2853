package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Product representa un producto del catálogo mayorista.
// CategoryName ya viene resuelto desde la capa de datos (UncategorizedName si CategoryID está vacío).
type Product struct {
	ID           string
	Name         string
	CategoryID   string // vacío si no tiene categoría
	CategoryName string
	Price        decimal.Decimal // precio base vigente
	MinStock     int             // umbral de stock mínimo
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// MoneyScale decimales con que se guardan precios y valores (NUMERIC(12,2)).
const MoneyScale = 2

// maxAmount primer valor que ya no entra en NUMERIC(12,2).
var maxAmount = decimal.New(1, 10)

// ValidAmount informa si d es un importe positivo, representable sin redondeo
// con MoneyScale decimales.
func ValidAmount(d decimal.Decimal) bool {
	return d.GreaterThan(decimal.Zero) && d.LessThan(maxAmount) && d.Equal(d.Round(MoneyScale))
}
