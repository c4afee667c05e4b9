// Package catalog casos de uso CRUD de productos, proveedores y categorías.
// El stock y el costo de compra no se editan aquí: los maneja el coordinador de inventario.
package catalog

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/petshop-api/internal/application/dto"
	"github.com/jhoicas/petshop-api/internal/domain"
	"github.com/jhoicas/petshop-api/internal/domain/entity"
	"github.com/jhoicas/petshop-api/internal/domain/repository"
)

// ProductOpener da de alta un producto con su stock inicial en el libro.
type ProductOpener interface {
	OpenProduct(ctx context.Context, p *entity.Product, initialStock decimal.Decimal, userID string) (*entity.Product, error)
}

// ProductUseCase casos de uso de productos.
type ProductUseCase struct {
	repos  repository.Repositories
	opener ProductOpener
}

// NewProductUseCase construye el caso de uso.
func NewProductUseCase(repos repository.Repositories, opener ProductOpener) *ProductUseCase {
	return &ProductUseCase{repos: repos, opener: opener}
}

// Create valida referencias y crea el producto. Si trae stock inicial queda registrado como movimiento.
func (uc *ProductUseCase) Create(ctx context.Context, userID string, in dto.CreateProductRequest) (*dto.ProductResponse, error) {
	name := strings.TrimSpace(in.Name)
	if name == "" {
		return nil, domain.Invalid("name", "requerido")
	}
	if !in.SalePrice.IsPositive() {
		return nil, domain.Invalid("sale_price", "debe ser mayor que cero")
	}
	if in.PurchaseCost.IsNegative() {
		return nil, domain.Invalid("purchase_cost", "no puede ser negativo")
	}
	if !entity.ValidMoney(in.SalePrice) {
		return nil, domain.Invalid("sale_price", "máximo 2 decimales")
	}
	if !entity.ValidMoney(in.PurchaseCost) {
		return nil, domain.Invalid("purchase_cost", "máximo 2 decimales")
	}
	if in.MinStock.IsNegative() {
		return nil, domain.Invalid("min_stock", "no puede ser negativo")
	}
	if !entity.ValidStockQuantity(in.MinStock) {
		return nil, domain.Invalid("min_stock", "máximo 3 decimales")
	}
	if err := uc.checkRefs(ctx, in.CategoryID, in.SupplierID); err != nil {
		return nil, err
	}
	barcode := strings.TrimSpace(in.Barcode)
	if barcode != "" {
		existing, err := uc.repos.Products.GetByBarcode(ctx, barcode)
		if err != nil {
			return nil, err
		}
		if existing != nil {
			return nil, fmt.Errorf("%w: código de barras %s", domain.ErrDuplicate, barcode)
		}
	}
	unit := strings.TrimSpace(in.UnitMeasure)
	if unit == "" {
		unit = "un"
	}

	product := &entity.Product{
		Name:         name,
		Description:  in.Description,
		Barcode:      barcode,
		CategoryID:   in.CategoryID,
		SupplierID:   in.SupplierID,
		UnitMeasure:  unit,
		PurchaseCost: in.PurchaseCost,
		SalePrice:    in.SalePrice,
		MinStock:     in.MinStock,
		Weighable:    in.Weighable,
		Active:       true,
		Notes:        in.Notes,
	}
	created, err := uc.opener.OpenProduct(ctx, product, in.InitialStock, userID)
	if err != nil {
		return nil, err
	}
	return dto.NewProductResponse(created), nil
}

func (uc *ProductUseCase) checkRefs(ctx context.Context, categoryID, supplierID string) error {
	if categoryID == "" {
		return domain.Invalid("category_id", "requerido")
	}
	cat, err := uc.repos.Categories.GetByID(ctx, categoryID)
	if err != nil {
		return err
	}
	if cat == nil || !cat.Active {
		return fmt.Errorf("%w: categoría %s", domain.ErrNotFound, categoryID)
	}
	if cat.Kind != entity.CategoryProduct {
		return domain.Invalid("category_id", "la categoría no es de productos")
	}
	if supplierID == "" {
		return nil
	}
	sup, err := uc.repos.Suppliers.GetByID(ctx, supplierID)
	if err != nil {
		return err
	}
	if sup == nil {
		return fmt.Errorf("%w: proveedor %s", domain.ErrNotFound, supplierID)
	}
	return nil
}

// GetByID obtiene un producto por ID.
func (uc *ProductUseCase) GetByID(ctx context.Context, id string) (*dto.ProductResponse, error) {
	p, err := uc.repos.Products.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, domain.ErrNotFound
	}
	return dto.NewProductResponse(p), nil
}

// Update actualiza campos de catálogo. No permite modificar stock ni costo de compra.
func (uc *ProductUseCase) Update(ctx context.Context, id string, in dto.UpdateProductRequest) (*dto.ProductResponse, error) {
	p, err := uc.repos.Products.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, domain.ErrNotFound
	}
	if in.Name != nil {
		if strings.TrimSpace(*in.Name) == "" {
			return nil, domain.Invalid("name", "requerido")
		}
		p.Name = strings.TrimSpace(*in.Name)
	}
	if in.Description != nil {
		p.Description = *in.Description
	}
	if in.Barcode != nil {
		p.Barcode = strings.TrimSpace(*in.Barcode)
	}
	if in.CategoryID != nil || in.SupplierID != nil {
		if in.CategoryID != nil {
			p.CategoryID = *in.CategoryID
		}
		if in.SupplierID != nil {
			p.SupplierID = *in.SupplierID
		}
		if err := uc.checkRefs(ctx, p.CategoryID, p.SupplierID); err != nil {
			return nil, err
		}
	}
	if in.UnitMeasure != nil {
		p.UnitMeasure = *in.UnitMeasure
	}
	if in.SalePrice != nil {
		if !in.SalePrice.IsPositive() {
			return nil, domain.Invalid("sale_price", "debe ser mayor que cero")
		}
		if !entity.ValidMoney(*in.SalePrice) {
			return nil, domain.Invalid("sale_price", "máximo 2 decimales")
		}
		p.SalePrice = *in.SalePrice
	}
	if in.MinStock != nil {
		if in.MinStock.IsNegative() {
			return nil, domain.Invalid("min_stock", "no puede ser negativo")
		}
		if !entity.ValidStockQuantity(*in.MinStock) {
			return nil, domain.Invalid("min_stock", "máximo 3 decimales")
		}
		p.MinStock = *in.MinStock
	}
	if in.Weighable != nil {
		// Con stock fraccionario sigue siendo pesable.
		if !*in.Weighable && !p.Stock.Equal(p.Stock.Truncate(0)) {
			return nil, domain.InvalidState("el producto %q tiene stock fraccionario (%s)", p.Name, p.Stock)
		}
		p.Weighable = *in.Weighable
	}
	if in.Active != nil {
		p.Active = *in.Active
	}
	if in.Notes != nil {
		p.Notes = *in.Notes
	}
	p.UpdatedAt = time.Now()
	if err := uc.repos.Products.Update(ctx, p); err != nil {
		return nil, err
	}
	return dto.NewProductResponse(p), nil
}

// List lista productos con filtros y paginación.
func (uc *ProductUseCase) List(ctx context.Context, f repository.ProductFilter) (*dto.ProductListResponse, error) {
	list, total, err := uc.repos.Products.List(ctx, f)
	if err != nil {
		return nil, err
	}
	items := make([]dto.ProductResponse, 0, len(list))
	for _, p := range list {
		items = append(items, *dto.NewProductResponse(p))
	}
	return &dto.ProductListResponse{
		Items: items,
		Page:  dto.PageResponse{Limit: f.Limit, Offset: f.Offset, Total: total},
	}, nil
}

// Delete elimina un producto sin historial. Con movimientos o ventas debe desactivarse.
func (uc *ProductUseCase) Delete(ctx context.Context, id string) error {
	p, err := uc.repos.Products.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if p == nil {
		return domain.ErrNotFound
	}
	used, err := uc.repos.Products.HasHistory(ctx, id)
	if err != nil {
		return err
	}
	if used {
		return fmt.Errorf("%w: el producto %q tiene movimientos; desactívelo en lugar de eliminarlo", domain.ErrConflict, p.Name)
	}
	return uc.repos.Products.Delete(ctx, id)
}

// Movements devuelve el libro de stock de un producto, del más reciente al más antiguo.
func (uc *ProductUseCase) Movements(ctx context.Context, f repository.MovementFilter) (*dto.MovementListResponse, error) {
	list, total, err := uc.repos.Movements.List(ctx, f)
	if err != nil {
		return nil, err
	}
	return dto.NewMovementList(list, f.Limit, f.Offset, total), nil
}

// Movement obtiene un movimiento por ID.
func (uc *ProductUseCase) Movement(ctx context.Context, id string) (*dto.MovementResponse, error) {
	m, err := uc.repos.Movements.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if m == nil {
		return nil, domain.ErrNotFound
	}
	return dto.NewMovementResponse(m), nil
}
