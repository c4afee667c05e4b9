package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/petshop-api/internal/domain/entity"
)

// CreateProductRequest entrada para crear un producto. InitialStock se ingresa como movimiento INITIAL_STOCK.
type CreateProductRequest struct {
	Name         string          `json:"name"`
	Description  string          `json:"description"`
	Barcode      string          `json:"barcode"`
	CategoryID   string          `json:"category_id"`
	SupplierID   string          `json:"supplier_id"`
	UnitMeasure  string          `json:"unit_measure"`
	PurchaseCost decimal.Decimal `json:"purchase_cost"`
	SalePrice    decimal.Decimal `json:"sale_price"`
	MinStock     decimal.Decimal `json:"min_stock"`
	InitialStock decimal.Decimal `json:"initial_stock"`
	Weighable    bool            `json:"weighable"`
	Notes        string          `json:"notes"`
}

// UpdateProductRequest entrada para actualizar un producto (sin stock ni costo de compra).
type UpdateProductRequest struct {
	Name        *string          `json:"name"`
	Description *string          `json:"description"`
	Barcode     *string          `json:"barcode"`
	CategoryID  *string          `json:"category_id"`
	SupplierID  *string          `json:"supplier_id"`
	UnitMeasure *string          `json:"unit_measure"`
	SalePrice   *decimal.Decimal `json:"sale_price"`
	MinStock    *decimal.Decimal `json:"min_stock"`
	Weighable   *bool            `json:"weighable"`
	Active      *bool            `json:"active"`
	Notes       *string          `json:"notes"`
}

// ProductResponse salida de un producto con sus derivados.
type ProductResponse struct {
	ID            string          `json:"id"`
	Name          string          `json:"name"`
	Description   string          `json:"description"`
	Barcode       string          `json:"barcode,omitempty"`
	CategoryID    string          `json:"category_id"`
	SupplierID    string          `json:"supplier_id,omitempty"`
	UnitMeasure   string          `json:"unit_measure"`
	PurchaseCost  decimal.Decimal `json:"purchase_cost"`
	SalePrice     decimal.Decimal `json:"sale_price"`
	MarginPercent decimal.Decimal `json:"margin_percent"`
	MinStock      decimal.Decimal `json:"min_stock"`
	Stock         decimal.Decimal `json:"stock"`
	StockStatus   string          `json:"stock_status"` // LOW | OK
	Weighable     bool            `json:"weighable"`
	Active        bool            `json:"active"`
	Notes         string          `json:"notes,omitempty"`
	CreatedAt     time.Time       `json:"created_at"`
	UpdatedAt     time.Time       `json:"updated_at"`
}

// ProductListResponse lista paginada de productos.
type ProductListResponse struct {
	Items []ProductResponse `json:"items"`
	Page  PageResponse      `json:"page"`
}

// NewProductResponse mapea la entidad a la respuesta.
func NewProductResponse(p *entity.Product) *ProductResponse {
	if p == nil {
		return nil
	}
	return &ProductResponse{
		ID:            p.ID,
		Name:          p.Name,
		Description:   p.Description,
		Barcode:       p.Barcode,
		CategoryID:    p.CategoryID,
		SupplierID:    p.SupplierID,
		UnitMeasure:   p.UnitMeasure,
		PurchaseCost:  p.PurchaseCost,
		SalePrice:     p.SalePrice,
		MarginPercent: p.MarginPercent(),
		MinStock:      p.MinStock,
		Stock:         p.Stock,
		StockStatus:   p.StockStatus(),
		Weighable:     p.Weighable,
		Active:        p.Active,
		Notes:         p.Notes,
		CreatedAt:     p.CreatedAt,
		UpdatedAt:     p.UpdatedAt,
	}
}

// SupplierRequest entrada para crear o actualizar un proveedor.
type SupplierRequest struct {
	Name        string `json:"name"`
	Document    string `json:"document"`
	ContactName string `json:"contact_name"`
	Email       string `json:"email"`
	Phone       string `json:"phone"`
	Address     string `json:"address"`
	Active      *bool  `json:"active"`
}

// SupplierResponse salida de un proveedor.
type SupplierResponse struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Document    string    `json:"document,omitempty"`
	ContactName string    `json:"contact_name,omitempty"`
	Email       string    `json:"email,omitempty"`
	Phone       string    `json:"phone,omitempty"`
	Address     string    `json:"address,omitempty"`
	Active      bool      `json:"active"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// SupplierListResponse lista paginada de proveedores.
type SupplierListResponse struct {
	Items []SupplierResponse `json:"items"`
	Page  PageResponse       `json:"page"`
}

// NewSupplierResponse mapea la entidad a la respuesta.
func NewSupplierResponse(s *entity.Supplier) *SupplierResponse {
	if s == nil {
		return nil
	}
	return &SupplierResponse{
		ID:          s.ID,
		Name:        s.Name,
		Document:    s.Document,
		ContactName: s.ContactName,
		Email:       s.Email,
		Phone:       s.Phone,
		Address:     s.Address,
		Active:      s.Active,
		CreatedAt:   s.CreatedAt,
		UpdatedAt:   s.UpdatedAt,
	}
}

// CategoryRequest entrada para crear o actualizar una categoría.
type CategoryRequest struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	Kind        string `json:"type"`
	Color       string `json:"color"`
	Icon        string `json:"icon"`
}

// CategoryResponse salida de una categoría.
type CategoryResponse struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description,omitempty"`
	Kind        string    `json:"type"`
	Color       string    `json:"color,omitempty"`
	Icon        string    `json:"icon,omitempty"`
	Active      bool      `json:"active"`
	CreatedAt   time.Time `json:"created_at"`
}

// NewCategoryResponse mapea la entidad a la respuesta.
func NewCategoryResponse(c *entity.Category) *CategoryResponse {
	if c == nil {
		return nil
	}
	return &CategoryResponse{
		ID:          c.ID,
		Name:        c.Name,
		Description: c.Description,
		Kind:        c.Kind,
		Color:       c.Color,
		Icon:        c.Icon,
		Active:      c.Active,
		CreatedAt:   c.CreatedAt,
	}
}
