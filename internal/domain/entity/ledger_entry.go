package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// EntryKind tipo de lançamento.
type EntryKind string

// MaxEntryQuantity cantidad máxima de un lançamento.
const MaxEntryQuantity = 1_000_000

// Tipos de lançamento entre la empresa y una sacoleira.
const (
	KindDelivery EntryKind = "entrega"   // mercadería entregada a la sacoleira
	KindReturn   EntryKind = "devolucao" // mercadería devuelta por la sacoleira
)

// Valid informa si el tipo es uno de los conocidos.
func (k EntryKind) Valid() bool {
	return k == KindDelivery || k == KindReturn
}

// LedgerEntry representa un lançamento (movimentação) de consignación.
// Es inmutable: una vez persistido no se actualiza ni se elimina.
type LedgerEntry struct {
	ID           string
	ProductID    string
	ProductName  string
	ResellerID   string
	ResellerName string
	Kind         EntryKind
	Quantity     int             // siempre > 0; el signo lo da Kind
	UnitValue    decimal.Decimal // precio del producto al momento del lançamento
	Total        decimal.Decimal // Quantity * UnitValue
	Note         string
	Paid         bool
	CreatedBy    string
	CreatedAt    time.Time
}
