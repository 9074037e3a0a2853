// Package stock deriva el estoque de cada sacoleira a partir del ledger de lançamentos.
//
// El estoque no se persiste: se recalcula en cada lectura plegando los lançamentos
// por (sacoleira, producto). Entregas suman, devoluciones restan; el neto puede ser
// negativo si se devolvió más de lo registrado y se informa tal cual.
package stock

import (
	"sort"

	"github.com/jhoicas/Sacoleiras-api/internal/domain/entity"
)

// Key identifica una posición de estoque.
type Key struct {
	ResellerID string
	ProductID  string
}

// Line acumulado de una posición (sacoleira, producto).
type Line struct {
	ResellerID   string
	ResellerName string
	ProductID    string
	ProductName  string
	Delivered    int
	Returned     int
}

// Net cantidad neta en poder de la sacoleira (Delivered - Returned), sin piso en cero.
func (l Line) Net() int { return l.Delivered - l.Returned }

// Ledger resultado de plegar un conjunto de lançamentos.
type Ledger struct {
	lines map[Key]*Line
}

// Aggregate pliega los lançamentos en una pasada. El orden de entrada es irrelevante.
func Aggregate(entries []*entity.LedgerEntry) Ledger {
	lines := make(map[Key]*Line)
	for _, e := range entries {
		if e == nil {
			continue
		}
		k := Key{ResellerID: e.ResellerID, ProductID: e.ProductID}
		l, ok := lines[k]
		if !ok {
			l = &Line{
				ResellerID:   e.ResellerID,
				ResellerName: e.ResellerName,
				ProductID:    e.ProductID,
				ProductName:  e.ProductName,
			}
			lines[k] = l
		}
		switch e.Kind {
		case entity.KindDelivery:
			l.Delivered += e.Quantity
		case entity.KindReturn:
			l.Returned += e.Quantity
		}
	}
	return Ledger{lines: lines}
}

// Len número de posiciones (incluye netos en cero).
func (g Ledger) Len() int { return len(g.lines) }

// Net devuelve el neto crudo de la posición; ok=false si la sacoleira nunca movió ese producto.
func (g Ledger) Net(resellerID, productID string) (int, bool) {
	l, ok := g.lines[Key{ResellerID: resellerID, ProductID: productID}]
	if !ok {
		return 0, false
	}
	return l.Net(), true
}

// Lines todas las posiciones ordenadas por sacoleira y producto.
func (g Ledger) Lines() []Line {
	out := make([]Line, 0, len(g.lines))
	for _, l := range g.lines {
		out = append(out, *l)
	}
	sortLines(out)
	return out
}

// InStock posiciones con neto distinto de cero. Los netos negativos se mantienen.
func (g Ledger) InStock() []Line {
	out := make([]Line, 0, len(g.lines))
	for _, l := range g.lines {
		if l.Net() != 0 {
			out = append(out, *l)
		}
	}
	sortLines(out)
	return out
}

// ByName vista sacoleira → producto → neto, por nombre.
// Si dos ids comparten nombre, sus netos se suman en la misma celda.
func (g Ledger) ByName() map[string]map[string]int {
	out := make(map[string]map[string]int)
	for _, l := range g.lines {
		products, ok := out[l.ResellerName]
		if !ok {
			products = make(map[string]int)
			out[l.ResellerName] = products
		}
		products[l.ProductName] += l.Net()
	}
	return out
}

func sortLines(ls []Line) {
	sort.Slice(ls, func(i, j int) bool {
		a, b := ls[i], ls[j]
		if a.ResellerName != b.ResellerName {
			return a.ResellerName < b.ResellerName
		}
		if a.ProductName != b.ProductName {
			return a.ProductName < b.ProductName
		}
		if a.ResellerID != b.ResellerID {
			return a.ResellerID < b.ResellerID
		}
		return a.ProductID < b.ProductID
	})
}
