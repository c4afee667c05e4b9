package reports

import (
	"context"
	"fmt"

	"github.com/jhoicas/petshop-api/internal/domain"
	"github.com/jhoicas/petshop-api/internal/domain/repository"
)

// ReceiptUseCase genera el comprobante de una venta.
type ReceiptUseCase struct {
	repos     repository.Repositories
	generator ReceiptGenerator
	storeName string
}

// NewReceiptUseCase construye el caso de uso.
func NewReceiptUseCase(repos repository.Repositories, generator ReceiptGenerator, storeName string) *ReceiptUseCase {
	return &ReceiptUseCase{repos: repos, generator: generator, storeName: storeName}
}

// Receipt devuelve el PDF y el nombre de archivo sugerido.
func (uc *ReceiptUseCase) Receipt(ctx context.Context, saleID string) ([]byte, string, error) {
	sale, err := uc.repos.Sales.GetByID(ctx, saleID)
	if err != nil {
		return nil, "", err
	}
	if sale == nil {
		return nil, "", domain.ErrNotFound
	}

	data := ReceiptData{StoreName: uc.storeName, Sale: sale, CustomerName: "Consumidor final"}
	if sale.CustomerID != "" {
		c, err := uc.repos.Customers.GetByID(ctx, sale.CustomerID)
		if err != nil {
			return nil, "", err
		}
		if c != nil {
			data.CustomerName = c.Name
		}
	}
	for _, l := range sale.Lines {
		line := ReceiptLine{ProductName: l.ProductID, Quantity: l.Quantity, UnitPrice: l.UnitPrice, Subtotal: l.Subtotal}
		p, err := uc.repos.Products.GetByID(ctx, l.ProductID)
		if err != nil {
			return nil, "", err
		}
		if p != nil {
			line.ProductName = p.Name
			line.UnitMeasure = p.UnitMeasure
		}
		data.Lines = append(data.Lines, line)
	}

	pdf, err := uc.generator.GenerateReceipt(ctx, data)
	if err != nil {
		return nil, "", err
	}
	return pdf, fmt.Sprintf("venta-%s.pdf", sale.Number), nil
}
