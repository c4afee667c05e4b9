package spreadsheet_test

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tealeg/xlsx/v3"

	"github.com/jhoicas/petshop-api/internal/application/dto"
	"github.com/jhoicas/petshop-api/internal/domain/entity"
	"github.com/jhoicas/petshop-api/internal/infrastructure/spreadsheet"
)

func d(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func TestExportStock(t *testing.T) {
	report := &dto.StockReportDTO{
		Categories: []dto.StockReportCategoryDTO{
			{
				Category: "Rações",
				Items: []dto.StockReportItemDTO{
					{ProductName: "Ração A", UnitMeasure: "un", Stock: d("10"), MinStock: d("2"), PurchaseCost: d("50"), SalePrice: d("80"), StockValue: d("500"), Status: entity.StockStatusOK},
					{ProductName: "Ração B", UnitMeasure: "kg", Stock: d("1.5"), MinStock: d("3"), PurchaseCost: d("20"), SalePrice: d("32"), StockValue: d("30"), Status: entity.StockStatusLow},
				},
				TotalValue: d("530"),
				LowCount:   1,
			},
		},
		TotalValue: d("530"),
		TotalItems: 2,
		LowCount:   1,
	}

	out, err := spreadsheet.NewXLSXExporter().ExportStock(context.Background(), report, time.Date(2026, 5, 1, 9, 0, 0, 0, time.UTC))
	require.NoError(t, err)
	require.NotEmpty(t, out)

	file, err := xlsx.OpenBinary(out)
	require.NoError(t, err)
	sheet, ok := file.Sheet[spreadsheet.SheetName]
	require.True(t, ok)
	// título + cabecera + 2 productos + subtotal + total
	assert.Equal(t, 6, sheet.MaxRow)

	cell, err := sheet.Cell(2, 1)
	require.NoError(t, err)
	assert.Equal(t, "Ração A", cell.String())

	cell, err = sheet.Cell(3, 9)
	require.NoError(t, err)
	assert.Equal(t, "BAIXO", cell.String())

	cell, err = sheet.Cell(0, 0)
	require.NoError(t, err)
	assert.Contains(t, cell.String(), "01/05/2026")
}
