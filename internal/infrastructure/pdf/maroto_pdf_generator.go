// Package pdf implementa el extracto de consignación de una sacoleira en PDF.
//
// Layout de la página A4:
//
//	┌─────────────────────────────────────────────────────────────┐
//	│  HEADER: Empresa             │  EXTRATO + Fecha             │
//	│  ─────────────────────────────────────────────────────────  │
//	│  SACOLEIRA: Nombre + CPF + contacto                          │
//	│  ─────────────────────────────────────────────────────────  │
//	│  ESTOQUE: Producto | Categoría | Cant. | P.Unit | Valor      │
//	│  TOTALES: piezas en poder / valor en consignación            │
//	│  ─────────────────────────────────────────────────────────  │
//	│  LANÇAMENTOS: Fecha | Tipo | Producto | Cant. | Total | Pago │
//	└─────────────────────────────────────────────────────────────┘
package pdf

import (
	"context"
	"fmt"
	"strings"

	maroto "github.com/johnfercher/maroto/v2"
	"github.com/johnfercher/maroto/v2/pkg/components/col"
	"github.com/johnfercher/maroto/v2/pkg/components/line"
	"github.com/johnfercher/maroto/v2/pkg/components/row"
	"github.com/johnfercher/maroto/v2/pkg/components/text"
	"github.com/johnfercher/maroto/v2/pkg/config"
	"github.com/johnfercher/maroto/v2/pkg/consts/align"
	"github.com/johnfercher/maroto/v2/pkg/consts/fontstyle"
	"github.com/johnfercher/maroto/v2/pkg/consts/pagesize"
	"github.com/johnfercher/maroto/v2/pkg/core"
	"github.com/johnfercher/maroto/v2/pkg/props"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/Sacoleiras-api/internal/application/report"
	"github.com/jhoicas/Sacoleiras-api/internal/domain/entity"
	"github.com/jhoicas/Sacoleiras-api/internal/domain/stock"
)

// ── Paleta de colores ─────────────────────────────────────────────────────────

var (
	colorPrimary = &props.Color{Red: 0, Green: 70, Blue: 127}
	colorGray    = &props.Color{Red: 100, Green: 100, Blue: 100}
	colorAlert   = &props.Color{Red: 170, Green: 30, Blue: 30}
)

// ── Generator ─────────────────────────────────────────────────────────────────

// MarotoPDFGenerator implementa report.StatementPDFGenerator usando Maroto v2.
type MarotoPDFGenerator struct{}

var _ report.StatementPDFGenerator = (*MarotoPDFGenerator)(nil)

// NewMarotoPDFGenerator construye el generador.
func NewMarotoPDFGenerator() *MarotoPDFGenerator { return &MarotoPDFGenerator{} }

// GenerateStatementPDF genera el PDF y devuelve sus bytes.
func (g *MarotoPDFGenerator) GenerateStatementPDF(_ context.Context, s report.Statement) ([]byte, error) {
	if s.Reseller == nil {
		return nil, fmt.Errorf("pdf: extrato sin sacoleira")
	}
	cfg := config.NewBuilder().
		WithPageSize(pagesize.A4).
		WithLeftMargin(10).WithRightMargin(10).
		WithTopMargin(10).WithBottomMargin(10).
		WithDefaultFont(&props.Font{Family: "helvetica", Size: 9}).
		WithTitle("Extrato de consignação", true).
		WithAuthor(s.CompanyName, true).
		Build()

	m := maroto.New(cfg)

	m.AddRows(headerRow(s))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.5}))
	m.AddRows(resellerRow(s.Reseller))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))

	m.AddRows(sectionTitle("ESTOQUE EM PODER DA SACOLEIRA"))
	m.AddRows(stockHeaderRow())
	if len(s.Positions) == 0 {
		m.AddRows(emptyRow("Sem peças em consignação."))
	}
	m.AddRows(stockRows(s.Positions)...)
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))
	m.AddRows(totalsRow(s))

	m.AddRows(line.NewRow(3))
	m.AddRows(sectionTitle("LANÇAMENTOS"))
	m.AddRows(entriesHeaderRow())
	if len(s.Entries) == 0 {
		m.AddRows(emptyRow("Nenhum lançamento registrado."))
	}
	m.AddRows(entryRows(s.Entries)...)

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("pdf: generar documento: %w", err)
	}
	return doc.GetBytes(), nil
}

// ── Secciones ─────────────────────────────────────────────────────────────────

func headerRow(s report.Statement) core.Row {
	return row.New(18).Add(
		col.New(7).Add(
			text.New(s.CompanyName, props.Text{
				Style: fontstyle.Bold, Size: 13, Color: colorPrimary, Top: 1,
			}),
		),
		col.New(5).Add(
			text.New("EXTRATO DE CONSIGNAÇÃO", props.Text{
				Style: fontstyle.Bold, Size: 8, Align: align.Right,
				Color: colorPrimary, Top: 1,
			}),
			text.New("Emitido em: "+s.IssuedAt.Format("02/01/2006 15:04"), props.Text{
				Size: 8, Align: align.Right, Top: 8, Color: colorGray,
			}),
		),
	)
}

func resellerRow(r *entity.Reseller) core.Row {
	return row.New(16).Add(
		col.New(12).Add(
			text.New("SACOLEIRA", props.Text{
				Style: fontstyle.Bold, Size: 8, Color: colorPrimary, Top: 1,
			}),
			text.New(r.Name, props.Text{
				Style: fontstyle.Bold, Size: 10, Top: 6,
			}),
			text.New(fmt.Sprintf("CPF: %s   |   Tel: %s   |   Email: %s",
				nonEmpty(r.NationalID, "—"),
				nonEmpty(r.Phone, "—"),
				nonEmpty(r.Email, "—"),
			), props.Text{Size: 8, Top: 12, Color: colorGray}),
		),
	)
}

func sectionTitle(label string) core.Row {
	return row.New(7).Add(col.New(12).Add(
		text.New(label, props.Text{Style: fontstyle.Bold, Size: 8, Color: colorPrimary, Top: 2}),
	))
}

func emptyRow(msg string) core.Row {
	return row.New(7).Add(col.New(12).Add(
		text.New(msg, props.Text{Size: 8, Color: colorGray, Top: 1, Left: 1}),
	))
}

func headerCell(label string, size int, a align.Type) core.Col {
	return col.New(size).Add(text.New(label, props.Text{
		Style: fontstyle.Bold, Size: 8, Align: a, Top: 2, Left: 1, Right: 1,
	}))
}

func stockHeaderRow() core.Row {
	return row.New(8).Add(
		headerCell("Produto", 4, align.Left),
		headerCell("Categoria", 3, align.Left),
		headerCell("Qtd.", 1, align.Center),
		headerCell("Preço", 2, align.Right),
		headerCell("Valor", 2, align.Right),
	)
}

// stockRows una fila por posición; cantidades bajo el mínimo o negativas en rojo.
func stockRows(ps []stock.Position) []core.Row {
	result := make([]core.Row, 0, len(ps))
	for _, p := range ps {
		qty := props.Text{Size: 8, Align: align.Center, Top: 1}
		if p.BelowMinimum || p.Quantity < 0 {
			qty.Color = colorAlert
			qty.Style = fontstyle.Bold
		}
		result = append(result, row.New(7).Add(
			col.New(4).Add(text.New(p.ProductName, props.Text{Size: 8, Top: 1, Left: 1})),
			col.New(3).Add(text.New(p.Category, props.Text{Size: 8, Top: 1, Left: 1, Color: colorGray})),
			col.New(1).Add(text.New(fmt.Sprintf("%d", p.Quantity), qty)),
			col.New(2).Add(text.New(formatMoney(p.UnitPrice), props.Text{Size: 8, Align: align.Right, Top: 1, Right: 1})),
			col.New(2).Add(text.New(formatMoney(p.Value), props.Text{Size: 8, Align: align.Right, Top: 1, Right: 1})),
		))
	}
	return result
}

func totalsRow(s report.Statement) core.Row {
	label := func(v string) core.Component {
		return text.New(v, props.Text{Style: fontstyle.Bold, Size: 9, Align: align.Right, Right: 2})
	}
	grand := func(v string) core.Component {
		return text.New(v, props.Text{
			Style: fontstyle.Bold, Size: 10, Align: align.Right, Color: colorPrimary, Right: 1, Top: 6,
		})
	}
	return row.New(16).Add(
		col.New(6),
		col.New(3).Add(
			label("Peças em poder:"),
			text.New("VALOR EM CONSIGNAÇÃO:", props.Text{
				Style: fontstyle.Bold, Size: 10, Align: align.Right, Color: colorPrimary, Right: 2, Top: 6,
			}),
		),
		col.New(3).Add(
			text.New(fmt.Sprintf("%d", s.TotalQuantity), props.Text{Size: 9, Align: align.Right, Right: 1}),
			grand(formatMoney(s.TotalValue)),
		),
	)
}

func entriesHeaderRow() core.Row {
	return row.New(8).Add(
		headerCell("Data", 2, align.Left),
		headerCell("Tipo", 2, align.Left),
		headerCell("Produto", 3, align.Left),
		headerCell("Qtd.", 1, align.Center),
		headerCell("Total", 2, align.Right),
		headerCell("Pago", 2, align.Center),
	)
}

func entryRows(es []*entity.LedgerEntry) []core.Row {
	result := make([]core.Row, 0, len(es))
	for _, e := range es {
		paid := "não"
		if e.Paid {
			paid = "sim"
		}
		result = append(result, row.New(6).Add(
			col.New(2).Add(text.New(e.CreatedAt.Format("02/01/2006"), props.Text{Size: 7.5, Top: 1, Left: 1})),
			col.New(2).Add(text.New(kindLabel(e.Kind), props.Text{Size: 7.5, Top: 1, Left: 1})),
			col.New(3).Add(text.New(e.ProductName, props.Text{Size: 7.5, Top: 1, Left: 1})),
			col.New(1).Add(text.New(fmt.Sprintf("%d", e.Quantity), props.Text{Size: 7.5, Align: align.Center, Top: 1})),
			col.New(2).Add(text.New(formatMoney(e.Total), props.Text{Size: 7.5, Align: align.Right, Top: 1, Right: 1})),
			col.New(2).Add(text.New(paid, props.Text{Size: 7.5, Align: align.Center, Top: 1})),
		))
	}
	return result
}

// ── helpers ───────────────────────────────────────────────────────────────────

func kindLabel(k entity.EntryKind) string {
	if k == entity.KindReturn {
		return "Devolução"
	}
	return "Entrega"
}

func nonEmpty(s, fallback string) string {
	if s != "" {
		return s
	}
	return fallback
}

// formatMoney formatea en reales con puntos de miles y coma decimal.
// Ej: 1234.5 → "R$ 1.234,50", -20 → "-R$ 20,00"
func formatMoney(d decimal.Decimal) string {
	sign := ""
	if d.IsNegative() {
		sign = "-"
		d = d.Neg()
	}
	fixed := d.StringFixed(2)
	intPart, frac, _ := strings.Cut(fixed, ".")
	return sign + "R$ " + groupThousands(intPart) + "," + frac
}

// groupThousands inserta puntos de miles en un string numérico sin decimales.
// Ej: "25000" → "25.000", "1000000" → "1.000.000"
func groupThousands(s string) string {
	n := len(s)
	if n <= 3 {
		return s
	}
	buf := make([]byte, 0, n+n/3)
	for i, c := range []byte(s) {
		if i > 0 && (n-i)%3 == 0 {
			buf = append(buf, '.')
		}
		buf = append(buf, c)
	}
	return string(buf)
}
