package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/petshop-api/internal/domain/entity"
)

// RegisterMovementRequest body para POST /api/stock/movements.
type RegisterMovementRequest struct {
	ProductID string          `json:"product_id"`
	Direction string          `json:"direction"`
	Quantity  decimal.Decimal `json:"quantity"`
	Note      string          `json:"note"`
}

// AdjustStockRequest body para POST /api/products/:id/adjust-stock.
type AdjustStockRequest struct {
	NewQuantity decimal.Decimal `json:"new_quantity"`
	Reason      string          `json:"reason"`
	Note        string          `json:"note"`
}

// AdjustStockResponse resultado del ajuste. Movement es nulo si no hubo diferencia.
type AdjustStockResponse struct {
	Product  ProductResponse   `json:"product"`
	Previous decimal.Decimal   `json:"previous_stock"`
	Movement *MovementResponse `json:"movement"`
}

// ReconcileResponse comparación entre stock registrado y libro de movimientos.
type ReconcileResponse struct {
	ProductID string          `json:"product_id"`
	Register  decimal.Decimal `json:"register_stock"`
	Ledger    decimal.Decimal `json:"ledger_stock"`
	Drift     decimal.Decimal `json:"drift"`
	Movements int             `json:"movements"`
	InSync    bool            `json:"in_sync"`
	Applied   bool            `json:"applied"`
}

// MovementResponse asiento del libro de stock.
type MovementResponse struct {
	ID          string          `json:"id"`
	ProductID   string          `json:"product_id"`
	Direction   string          `json:"direction"`
	Quantity    decimal.Decimal `json:"quantity"`
	Reason      string          `json:"reason"`
	Note        string          `json:"note,omitempty"`
	ReferenceID string          `json:"reference_id,omitempty"`
	CreatedBy   string          `json:"created_by,omitempty"`
	OccurredAt  time.Time       `json:"occurred_at"`
}

// MovementListResponse lista paginada de movimientos.
type MovementListResponse struct {
	Items []MovementResponse `json:"items"`
	Page  PageResponse       `json:"page"`
}

// NewMovementResponse mapea la entidad a la respuesta.
func NewMovementResponse(m *entity.StockMovement) *MovementResponse {
	if m == nil {
		return nil
	}
	return &MovementResponse{
		ID:          m.ID,
		ProductID:   m.ProductID,
		Direction:   m.Direction,
		Quantity:    m.Quantity,
		Reason:      m.Reason,
		Note:        m.Note,
		ReferenceID: m.ReferenceID,
		CreatedBy:   m.CreatedBy,
		OccurredAt:  m.OccurredAt,
	}
}

// NewMovementList mapea una página de movimientos.
func NewMovementList(items []*entity.StockMovement, limit, offset, total int) *MovementListResponse {
	out := &MovementListResponse{Items: make([]MovementResponse, 0, len(items)), Page: PageResponse{Limit: limit, Offset: offset, Total: total}}
	for _, m := range items {
		out.Items = append(out.Items, *NewMovementResponse(m))
	}
	return out
}

// CancelRequest motivo opcional de cancelación.
type CancelRequest struct {
	Reason string `json:"reason"`
}

// PurchaseLineRequest línea de compra.
type PurchaseLineRequest struct {
	ProductID string          `json:"product_id"`
	Quantity  decimal.Decimal `json:"quantity"`
	UnitPrice decimal.Decimal `json:"unit_price"`
}

// CreatePurchaseRequest body para POST /api/purchases.
type CreatePurchaseRequest struct {
	SupplierID    string                `json:"supplier_id"`
	InvoiceNumber string                `json:"invoice_number"`
	PurchasedAt   *time.Time            `json:"purchased_at"`
	Notes         string                `json:"notes"`
	Lines         []PurchaseLineRequest `json:"lines"`
}

// PurchaseLineResponse línea de compra.
type PurchaseLineResponse struct {
	ProductID string          `json:"product_id"`
	Quantity  decimal.Decimal `json:"quantity"`
	UnitPrice decimal.Decimal `json:"unit_price"`
	Subtotal  decimal.Decimal `json:"subtotal"`
}

// PurchaseResponse salida de una compra.
type PurchaseResponse struct {
	ID            string                 `json:"id"`
	Number        int64                  `json:"number"`
	SupplierID    string                 `json:"supplier_id"`
	InvoiceNumber string                 `json:"invoice_number,omitempty"`
	Status        string                 `json:"status"`
	Total         decimal.Decimal        `json:"total"`
	Notes         string                 `json:"notes,omitempty"`
	PurchasedAt   time.Time              `json:"purchased_at"`
	ConfirmedAt   *time.Time             `json:"confirmed_at,omitempty"`
	CreatedAt     time.Time              `json:"created_at"`
	Lines         []PurchaseLineResponse `json:"lines,omitempty"`
}

// PurchaseListResponse lista paginada de compras.
type PurchaseListResponse struct {
	Items []PurchaseResponse `json:"items"`
	Page  PageResponse       `json:"page"`
}

// NewPurchaseResponse mapea la entidad a la respuesta.
func NewPurchaseResponse(p *entity.Purchase) *PurchaseResponse {
	if p == nil {
		return nil
	}
	out := &PurchaseResponse{
		ID:            p.ID,
		Number:        p.Number,
		SupplierID:    p.SupplierID,
		InvoiceNumber: p.InvoiceNumber,
		Status:        p.Status,
		Total:         p.Total,
		Notes:         p.Notes,
		PurchasedAt:   p.PurchasedAt,
		ConfirmedAt:   p.ConfirmedAt,
		CreatedAt:     p.CreatedAt,
	}
	for _, l := range p.Lines {
		out.Lines = append(out.Lines, PurchaseLineResponse{
			ProductID: l.ProductID, Quantity: l.Quantity, UnitPrice: l.UnitPrice, Subtotal: l.Subtotal,
		})
	}
	return out
}

// SaleLineRequest línea de venta. Sin unit_price se usa el precio del producto.
type SaleLineRequest struct {
	ProductID string           `json:"product_id"`
	Quantity  decimal.Decimal  `json:"quantity"`
	UnitPrice *decimal.Decimal `json:"unit_price,omitempty"`
}

// CreateSaleRequest body para POST /api/sales.
type CreateSaleRequest struct {
	CustomerID  string            `json:"customer_id"`
	PaymentType string            `json:"payment_type"`
	Discount    decimal.Decimal   `json:"discount"`
	Notes       string            `json:"notes"`
	Lines       []SaleLineRequest `json:"lines"`
}

// SaleLineResponse línea de venta.
type SaleLineResponse struct {
	ProductID string          `json:"product_id"`
	Quantity  decimal.Decimal `json:"quantity"`
	UnitPrice decimal.Decimal `json:"unit_price"`
	Subtotal  decimal.Decimal `json:"subtotal"`
}

// SaleResponse salida de una venta.
type SaleResponse struct {
	ID          string             `json:"id"`
	Number      string             `json:"number"`
	CustomerID  string             `json:"customer_id,omitempty"`
	PaymentType string             `json:"payment_type"`
	Status      string             `json:"status"`
	GrossTotal  decimal.Decimal    `json:"gross_total"`
	Discount    decimal.Decimal    `json:"discount"`
	NetTotal    decimal.Decimal    `json:"net_total"`
	Notes       string             `json:"notes,omitempty"`
	SoldAt      time.Time          `json:"sold_at"`
	CancelledAt *time.Time         `json:"cancelled_at,omitempty"`
	Lines       []SaleLineResponse `json:"lines,omitempty"`
}

// SaleListResponse lista paginada de ventas.
type SaleListResponse struct {
	Items []SaleResponse `json:"items"`
	Page  PageResponse   `json:"page"`
}

// NewSaleResponse mapea la entidad a la respuesta.
func NewSaleResponse(s *entity.Sale) *SaleResponse {
	if s == nil {
		return nil
	}
	out := &SaleResponse{
		ID:          s.ID,
		Number:      s.Number,
		CustomerID:  s.CustomerID,
		PaymentType: s.PaymentType,
		Status:      s.Status,
		GrossTotal:  s.GrossTotal,
		Discount:    s.Discount,
		NetTotal:    s.NetTotal,
		Notes:       s.Notes,
		SoldAt:      s.SoldAt,
		CancelledAt: s.CancelledAt,
	}
	for _, l := range s.Lines {
		out.Lines = append(out.Lines, SaleLineResponse{
			ProductID: l.ProductID, Quantity: l.Quantity, UnitPrice: l.UnitPrice, Subtotal: l.Subtotal,
		})
	}
	return out
}
