package stock

import (
	"strings"

	"golang.org/x/text/cases"

	"github.com/jhoicas/Sacoleiras-api/internal/domain/entity"
)

// All valor centinela que desactiva el filtro de categoría o sacoleira.
const All = "all"

// Filter criterios de búsqueda; se combinan con AND.
type Filter struct {
	Search     string // subcadena sin distinción de mayúsculas sobre sacoleira o producto
	Category   string // coincidencia exacta; vacío o All = sin filtro
	ResellerID string // coincidencia exacta; vacío o All = sin filtro
}

// IsAll informa si una selección desactiva su filtro.
func IsAll(v string) bool { return v == "" || v == All }

type matcher struct {
	fold     cases.Caser
	needle   string
	category string
	reseller string
}

func newMatcher(f Filter) *matcher {
	m := &matcher{fold: cases.Fold()}
	if s := strings.TrimSpace(f.Search); s != "" {
		m.needle = m.fold.String(s)
	}
	if !IsAll(f.Category) {
		m.category = f.Category
	}
	if !IsAll(f.ResellerID) {
		m.reseller = f.ResellerID
	}
	return m
}

func (m *matcher) match(resellerID, resellerName, productName, category string) bool {
	if m.reseller != "" && resellerID != m.reseller {
		return false
	}
	if m.category != "" && category != m.category {
		return false
	}
	if m.needle == "" {
		return true
	}
	return strings.Contains(m.fold.String(resellerName), m.needle) ||
		strings.Contains(m.fold.String(productName), m.needle)
}

// FilterPositions devuelve las posiciones que cumplen el filtro. Sin coincidencias → slice vacío.
func FilterPositions(ps []Position, f Filter) []Position {
	m := newMatcher(f)
	out := make([]Position, 0, len(ps))
	for _, p := range ps {
		if m.match(p.ResellerID, p.ResellerName, p.ProductName, p.Category) {
			out = append(out, p)
		}
	}
	return out
}

// FilterEntries filtra lançamentos. La categoría de cada lançamento se resuelve por su producto
// en categoryByProduct; un producto sin entrada cuenta como UncategorizedName.
func FilterEntries(es []*entity.LedgerEntry, categoryByProduct map[string]string, f Filter) []*entity.LedgerEntry {
	m := newMatcher(f)
	out := make([]*entity.LedgerEntry, 0, len(es))
	for _, e := range es {
		category, ok := categoryByProduct[e.ProductID]
		if !ok || category == "" {
			category = entity.UncategorizedName
		}
		if m.match(e.ResellerID, e.ResellerName, e.ProductName, category) {
			out = append(out, e)
		}
	}
	return out
}

// CategoryIndex construye el mapa producto → categoría usado por FilterEntries.
func CategoryIndex(products []*entity.Product) map[string]string {
	out := make(map[string]string, len(products))
	for _, p := range products {
		out[p.ID] = p.CategoryName
	}
	return out
}
