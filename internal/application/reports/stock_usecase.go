package reports

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/petshop-api/internal/application/dto"
	"github.com/jhoicas/petshop-api/internal/domain"
	"github.com/jhoicas/petshop-api/internal/domain/entity"
	"github.com/jhoicas/petshop-api/internal/domain/repository"
)

const uncategorized = "Sin categoría"

// StockReportUseCase inventario valorizado agrupado por categoría.
type StockReportUseCase struct {
	reports  repository.ReportRepository
	exporter StockSheetExporter
}

// NewStockReportUseCase construye el caso de uso. exporter puede ser nil si no se exporta.
func NewStockReportUseCase(reports repository.ReportRepository, exporter StockSheetExporter) *StockReportUseCase {
	return &StockReportUseCase{reports: reports, exporter: exporter}
}

// Report agrupa los productos activos por categoría con valor a costo y estado de stock.
func (uc *StockReportUseCase) Report(ctx context.Context) (*dto.StockReportDTO, error) {
	rows, err := uc.reports.StockInventory(ctx)
	if err != nil {
		return nil, err
	}
	out := &dto.StockReportDTO{Categories: []dto.StockReportCategoryDTO{}, TotalValue: decimal.Zero}
	index := map[string]int{}
	for _, r := range rows {
		name := r.CategoryName
		if name == "" {
			name = uncategorized
		}
		i, ok := index[name]
		if !ok {
			out.Categories = append(out.Categories, dto.StockReportCategoryDTO{Category: name, TotalValue: decimal.Zero})
			i = len(out.Categories) - 1
			index[name] = i
		}
		p := entity.Product{Stock: r.Stock, MinStock: r.MinStock, PurchaseCost: r.PurchaseCost}
		item := dto.StockReportItemDTO{
			ProductID:    r.ProductID,
			ProductName:  r.ProductName,
			Barcode:      r.Barcode,
			UnitMeasure:  r.UnitMeasure,
			Stock:        r.Stock,
			MinStock:     r.MinStock,
			PurchaseCost: r.PurchaseCost,
			SalePrice:    r.SalePrice,
			StockValue:   p.StockValue().Round(2),
			Status:       p.StockStatus(),
		}
		cat := &out.Categories[i]
		cat.Items = append(cat.Items, item)
		cat.TotalValue = cat.TotalValue.Add(item.StockValue)
		out.TotalValue = out.TotalValue.Add(item.StockValue)
		out.TotalItems++
		if item.Status == entity.StockStatusLow {
			cat.LowCount++
			out.LowCount++
		}
	}
	return out, nil
}

// Export genera la planilla XLSX del reporte.
func (uc *StockReportUseCase) Export(ctx context.Context) ([]byte, error) {
	if uc.exporter == nil {
		return nil, fmt.Errorf("%w: exportación no configurada", domain.ErrInvalidState)
	}
	report, err := uc.Report(ctx)
	if err != nil {
		return nil, err
	}
	return uc.exporter.ExportStock(ctx, report, time.Now())
}
