// Package xlsx exporta las vistas de estoque a planillas Excel.
package xlsx

import (
	"bytes"
	"context"
	"fmt"

	"github.com/xuri/excelize/v2"

	"github.com/jhoicas/Sacoleiras-api/internal/application/report"
	"github.com/jhoicas/Sacoleiras-api/internal/domain/stock"
)

const (
	sheetStock   = "Estoque"
	sheetSummary = "Resumo"
)

var stockHeaders = []string{
	"Sacoleira", "Produto", "Categoria", "Entregue", "Devolvido",
	"Quantidade", "Preço", "Valor", "Mínimo", "Abaixo do mínimo",
}

var summaryHeaders = []string{"Sacoleira", "Peças", "Valor"}

// StockExporter implementa report.StockSheetExporter con excelize.
type StockExporter struct{}

var _ report.StockSheetExporter = (*StockExporter)(nil)

// NewStockExporter construye el exportador.
func NewStockExporter() *StockExporter { return &StockExporter{} }

// ExportStock genera un libro con la hoja de posiciones y una hoja de totales por sacoleira.
func (e *StockExporter) ExportStock(_ context.Context, s report.StockSheet) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	for _, name := range []string{sheetStock, sheetSummary} {
		if _, err := f.NewSheet(name); err != nil {
			return nil, fmt.Errorf("xlsx: crear hoja %s: %w", name, err)
		}
	}
	if err := f.DeleteSheet("Sheet1"); err != nil {
		return nil, fmt.Errorf("xlsx: borrar hoja por defecto: %w", err)
	}
	index, err := f.GetSheetIndex(sheetStock)
	if err != nil {
		return nil, fmt.Errorf("xlsx: hoja %s: %w", sheetStock, err)
	}
	f.SetActiveSheet(index)

	headerStyle, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true},
		Fill: excelize.Fill{Type: "pattern", Color: []string{"#E6E6FA"}, Pattern: 1},
	})
	if err != nil {
		return nil, fmt.Errorf("xlsx: estilo: %w", err)
	}
	moneyStyle, err := f.NewStyle(&excelize.Style{NumFmt: 4}) // #,##0.00
	if err != nil {
		return nil, fmt.Errorf("xlsx: estilo: %w", err)
	}

	if err := writeRow(f, sheetStock, 1, toAny(stockHeaders)); err != nil {
		return nil, err
	}
	_ = f.SetRowStyle(sheetStock, 1, 1, headerStyle)
	for i, p := range s.Positions {
		below := "não"
		if p.BelowMinimum {
			below = "sim"
		}
		values := []any{
			p.ResellerName, p.ProductName, p.Category, p.Delivered, p.Returned,
			p.Quantity, p.UnitPrice.InexactFloat64(), p.Value.InexactFloat64(), p.MinStock, below,
		}
		if err := writeRow(f, sheetStock, i+2, values); err != nil {
			return nil, err
		}
	}
	if n := len(s.Positions); n > 0 {
		_ = f.SetCellStyle(sheetStock, "G2", fmt.Sprintf("H%d", n+1), moneyStyle)
	}
	_ = f.SetColWidth(sheetStock, "A", "C", 24)
	_ = f.SetColWidth(sheetStock, "D", "J", 14)

	if err := writeRow(f, sheetSummary, 1, toAny(summaryHeaders)); err != nil {
		return nil, err
	}
	_ = f.SetRowStyle(sheetSummary, 1, 1, headerStyle)
	rowNum := 2
	for _, g := range groupByReseller(s.Positions) {
		t := stock.Sum(g)
		if err := writeRow(f, sheetSummary, rowNum, []any{g[0].ResellerName, t.Quantity, t.Value.InexactFloat64()}); err != nil {
			return nil, err
		}
		rowNum++
	}
	total := stock.Sum(s.Positions)
	if err := writeRow(f, sheetSummary, rowNum, []any{"TOTAL", total.Quantity, total.Value.InexactFloat64()}); err != nil {
		return nil, err
	}
	_ = f.SetRowStyle(sheetSummary, rowNum, rowNum, headerStyle)
	_ = f.SetCellStyle(sheetSummary, "C2", fmt.Sprintf("C%d", rowNum), moneyStyle)
	_ = f.SetColWidth(sheetSummary, "A", "A", 28)
	_ = f.SetColWidth(sheetSummary, "B", "C", 14)
	_ = f.SetCellValue(sheetSummary, fmt.Sprintf("A%d", rowNum+2),
		fmt.Sprintf("%s · gerado em %s", s.CompanyName, s.IssuedAt.Format("02/01/2006 15:04")))

	var buf bytes.Buffer
	if err := f.Write(&buf); err != nil {
		return nil, fmt.Errorf("xlsx: escribir libro: %w", err)
	}
	return buf.Bytes(), nil
}

func writeRow(f *excelize.File, sheet string, row int, values []any) error {
	for i, v := range values {
		cell, err := excelize.CoordinatesToCellName(i+1, row)
		if err != nil {
			return fmt.Errorf("xlsx: celda: %w", err)
		}
		if err := f.SetCellValue(sheet, cell, v); err != nil {
			return fmt.Errorf("xlsx: escribir %s: %w", cell, err)
		}
	}
	return nil
}

// groupByReseller agrupa conservando el orden de primera aparición.
func groupByReseller(ps []stock.Position) [][]stock.Position {
	idx := make(map[string]int)
	var out [][]stock.Position
	for _, p := range ps {
		i, ok := idx[p.ResellerID]
		if !ok {
			i = len(out)
			idx[p.ResellerID] = i
			out = append(out, nil)
		}
		out[i] = append(out[i], p)
	}
	return out
}

func toAny(ss []string) []any {
	out := make([]any, len(ss))
	for i, s := range ss {
		out[i] = s
	}
	return out
}
