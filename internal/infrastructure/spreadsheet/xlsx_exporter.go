// Package spreadsheet exporta reportes a planillas XLSX.
package spreadsheet

import (
	"bytes"
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"
	"github.com/tealeg/xlsx/v3"

	"github.com/jhoicas/petshop-api/internal/application/dto"
	"github.com/jhoicas/petshop-api/internal/application/reports"
	"github.com/jhoicas/petshop-api/internal/domain/entity"
)

var _ reports.StockSheetExporter = (*XLSXExporter)(nil)

// SheetName nombre de la hoja del inventario.
const SheetName = "Estoque"

const moneyFormat = "#,##0.00"

var stockHeaders = []string{
	"Categoria", "Produto", "Código de barras", "Unidade", "Estoque", "Estoque mínimo",
	"Custo", "Preço de venda", "Valor em estoque", "Situação",
}

// XLSXExporter genera el inventario valorizado en una hoja de cálculo.
type XLSXExporter struct{}

// NewXLSXExporter construye el exportador.
func NewXLSXExporter() *XLSXExporter { return &XLSXExporter{} }

// ExportStock escribe una fila por producto, subtotal por categoría y total general.
func (e *XLSXExporter) ExportStock(_ context.Context, report *dto.StockReportDTO, generatedAt time.Time) ([]byte, error) {
	file := xlsx.NewFile()
	sheet, err := file.AddSheet(SheetName)
	if err != nil {
		return nil, fmt.Errorf("add sheet: %w", err)
	}

	title := sheet.AddRow()
	titleCell := title.AddCell()
	titleCell.SetString("Inventário valorizado - " + generatedAt.Format("02/01/2006 15:04"))
	titleCell.GetStyle().Font.Bold = true

	header := sheet.AddRow()
	for _, h := range stockHeaders {
		cell := header.AddCell()
		cell.SetString(h)
		cell.GetStyle().Font.Bold = true
		cell.GetStyle().Fill.PatternType = "solid"
		cell.GetStyle().Fill.FgColor = "CCCCCC"
	}

	for _, cat := range report.Categories {
		for _, it := range cat.Items {
			row := sheet.AddRow()
			row.AddCell().SetString(cat.Category)
			row.AddCell().SetString(it.ProductName)
			row.AddCell().SetString(it.Barcode)
			row.AddCell().SetString(it.UnitMeasure)
			addNumber(row, it.Stock, "0.###")
			addNumber(row, it.MinStock, "0.###")
			addNumber(row, it.PurchaseCost, moneyFormat)
			addNumber(row, it.SalePrice, moneyFormat)
			addNumber(row, it.StockValue, moneyFormat)
			status := row.AddCell()
			if it.Status == entity.StockStatusLow {
				status.SetString("BAIXO")
				status.GetStyle().Font.Color = "FFB41E1E"
			} else {
				status.SetString("OK")
			}
		}
		subtotal := sheet.AddRow()
		label := subtotal.AddCell()
		label.SetString("Subtotal " + cat.Category)
		label.GetStyle().Font.Bold = true
		for i := 0; i < 7; i++ {
			subtotal.AddCell()
		}
		addNumber(subtotal, cat.TotalValue, moneyFormat)
	}

	total := sheet.AddRow()
	label := total.AddCell()
	label.SetString(fmt.Sprintf("TOTAL (%d itens, %d abaixo do mínimo)", report.TotalItems, report.LowCount))
	label.GetStyle().Font.Bold = true
	for i := 0; i < 7; i++ {
		total.AddCell()
	}
	addNumber(total, report.TotalValue, moneyFormat)

	for i := range stockHeaders {
		sheet.SetColWidth(i+1, i+1, 16)
	}
	sheet.SetColWidth(2, 2, 32)

	var buf bytes.Buffer
	if err := file.Write(&buf); err != nil {
		return nil, fmt.Errorf("write xlsx: %w", err)
	}
	return buf.Bytes(), nil
}

func addNumber(row *xlsx.Row, v decimal.Decimal, format string) {
	row.AddCell().SetFloatWithFormat(v.InexactFloat64(), format)
}
