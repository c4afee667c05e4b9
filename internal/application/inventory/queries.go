package inventory

import (
	"context"
	"fmt"

	"github.com/jhoicas/petshop-api/internal/application/dto"
	"github.com/jhoicas/petshop-api/internal/domain"
	"github.com/jhoicas/petshop-api/internal/domain/repository"
)

// Queries lecturas de compras y ventas, fuera de transacción.
type Queries struct {
	purchases repository.PurchaseRepository
	sales     repository.SaleRepository
}

// NewQueries construye el lado de lectura de documentos.
func NewQueries(purchases repository.PurchaseRepository, sales repository.SaleRepository) *Queries {
	return &Queries{purchases: purchases, sales: sales}
}

// GetPurchase devuelve la compra con sus líneas.
func (q *Queries) GetPurchase(ctx context.Context, id string) (*dto.PurchaseResponse, error) {
	p, err := q.purchases.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, fmt.Errorf("%w: compra %s", domain.ErrNotFound, id)
	}
	return dto.NewPurchaseResponse(p), nil
}

// ListPurchases lista compras (sin líneas), las más recientes primero.
func (q *Queries) ListPurchases(ctx context.Context, f repository.PurchaseFilter) (*dto.PurchaseListResponse, error) {
	list, total, err := q.purchases.List(ctx, f)
	if err != nil {
		return nil, err
	}
	items := make([]dto.PurchaseResponse, 0, len(list))
	for _, p := range list {
		items = append(items, *dto.NewPurchaseResponse(p))
	}
	return &dto.PurchaseListResponse{Items: items, Page: dto.PageResponse{Limit: f.Limit, Offset: f.Offset, Total: total}}, nil
}

// GetSale devuelve la venta con sus líneas.
func (q *Queries) GetSale(ctx context.Context, id string) (*dto.SaleResponse, error) {
	s, err := q.sales.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if s == nil {
		return nil, fmt.Errorf("%w: venta %s", domain.ErrNotFound, id)
	}
	return dto.NewSaleResponse(s), nil
}

// ListSales lista ventas (sin líneas), las más recientes primero.
func (q *Queries) ListSales(ctx context.Context, f repository.SaleFilter) (*dto.SaleListResponse, error) {
	list, total, err := q.sales.List(ctx, f)
	if err != nil {
		return nil, err
	}
	items := make([]dto.SaleResponse, 0, len(list))
	for _, s := range list {
		items = append(items, *dto.NewSaleResponse(s))
	}
	return &dto.SaleListResponse{Items: items, Page: dto.PageResponse{Limit: f.Limit, Offset: f.Offset, Total: total}}, nil
}
