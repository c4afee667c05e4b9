package inventory

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/petshop-api/internal/domain"
	"github.com/jhoicas/petshop-api/internal/domain/entity"
	domaininv "github.com/jhoicas/petshop-api/internal/domain/inventory"
	"github.com/jhoicas/petshop-api/internal/domain/repository"
)

// PurchaseLineInput línea de una compra nueva.
type PurchaseLineInput struct {
	ProductID string
	Quantity  decimal.Decimal
	UnitPrice decimal.Decimal
}

// PurchaseInput datos para registrar una compra pendiente.
type PurchaseInput struct {
	SupplierID    string
	InvoiceNumber string
	PurchasedAt   *time.Time
	Notes         string
	UserID        string
	Lines         []PurchaseLineInput
}

func (in PurchaseInput) validate() error {
	if in.SupplierID == "" {
		return domain.Invalid("supplier_id", "requerido")
	}
	if len(in.Lines) == 0 {
		return domain.Invalid("lines", "la compra debe tener al menos una línea")
	}
	for i, l := range in.Lines {
		if l.ProductID == "" {
			return domain.Invalid(fmt.Sprintf("lines[%d].product_id", i), "requerido")
		}
		if !l.Quantity.IsPositive() {
			return domain.Invalid(fmt.Sprintf("lines[%d].quantity", i), "debe ser mayor que cero")
		}
		if !entity.ValidStockQuantity(l.Quantity) {
			return domain.Invalid(fmt.Sprintf("lines[%d].quantity", i), "máximo 3 decimales")
		}
		if !l.UnitPrice.IsPositive() {
			return domain.Invalid(fmt.Sprintf("lines[%d].unit_price", i), "debe ser mayor que cero")
		}
		if !entity.ValidMoney(l.UnitPrice) {
			return domain.Invalid(fmt.Sprintf("lines[%d].unit_price", i), "máximo 2 decimales")
		}
	}
	return nil
}

// CreatePurchase registra una compra en estado PENDING con número correlativo. No toca stock.
func (c *Coordinator) CreatePurchase(ctx context.Context, in PurchaseInput) (*entity.Purchase, error) {
	if err := in.validate(); err != nil {
		return nil, err
	}
	now := c.now()
	purchasedAt := now
	if in.PurchasedAt != nil {
		purchasedAt = *in.PurchasedAt
	}

	var purchase *entity.Purchase
	err := c.tx.Run(ctx, func(r repository.Repositories) error {
		supplier, err := r.Suppliers.GetByID(ctx, in.SupplierID)
		if err != nil {
			return err
		}
		if supplier == nil {
			return fmt.Errorf("%w: proveedor %s", domain.ErrNotFound, in.SupplierID)
		}

		p := &entity.Purchase{
			ID:            c.newID(),
			SupplierID:    in.SupplierID,
			InvoiceNumber: strings.TrimSpace(in.InvoiceNumber),
			Status:        entity.PurchaseStatusPending,
			Total:         decimal.Zero,
			Notes:         strings.TrimSpace(in.Notes),
			PurchasedAt:   purchasedAt,
			CreatedBy:     in.UserID,
			CreatedAt:     now,
			UpdatedAt:     now,
		}
		for i, l := range in.Lines {
			product, err := r.Products.GetByID(ctx, l.ProductID)
			if err != nil {
				return err
			}
			if product == nil {
				return fmt.Errorf("%w: producto %s", domain.ErrNotFound, l.ProductID)
			}
			if !domaininv.ValidQuantity(l.Quantity, product.Weighable) {
				return domain.Invalid(fmt.Sprintf("lines[%d].quantity", i), "el producto no admite cantidades fraccionarias")
			}
			subtotal := domaininv.LineSubtotal(l.Quantity, l.UnitPrice)
			p.Lines = append(p.Lines, entity.PurchaseLine{
				ID:         c.newID(),
				PurchaseID: p.ID,
				ProductID:  l.ProductID,
				Quantity:   l.Quantity,
				UnitPrice:  l.UnitPrice,
				Subtotal:   subtotal,
			})
			p.Total = p.Total.Add(subtotal)
		}

		n, err := r.Counters.Next(ctx, repository.CounterPurchase)
		if err != nil {
			return err
		}
		p.Number = n

		if err := r.Purchases.Create(ctx, p); err != nil {
			return err
		}
		purchase = p
		return nil
	})
	if err != nil {
		return nil, err
	}

	c.log.Info().Int64("number", purchase.Number).Str("total", purchase.Total.String()).Msg("compra registrada")
	c.committed(ctx)
	return purchase, nil
}

// ConfirmPurchase pasa la compra de PENDING a CONFIRMED: suma stock por línea, fija el costo
// de compra al precio de la línea (el último gana) y registra una entrada por línea.
func (c *Coordinator) ConfirmPurchase(ctx context.Context, purchaseID, userID string) (*entity.Purchase, error) {
	if purchaseID == "" {
		return nil, domain.Invalid("purchase_id", "requerido")
	}
	var (
		purchase *entity.Purchase
		touched  []*entity.Product
	)
	err := c.tx.Run(ctx, func(r repository.Repositories) error {
		p, err := r.Purchases.GetForUpdate(ctx, purchaseID)
		if err != nil {
			return err
		}
		if p == nil {
			return fmt.Errorf("%w: compra %s", domain.ErrNotFound, purchaseID)
		}
		if p.Status != entity.PurchaseStatusPending {
			return domain.InvalidState("la compra #%d está en estado %s", p.Number, p.Status)
		}

		demand := domaininv.Demand{}
		for _, l := range p.Lines {
			demand.Add(l.ProductID, l.Quantity)
		}
		locked, err := lockProducts(ctx, r, demand.LockOrder())
		if err != nil {
			return err
		}

		now := c.now()
		note := fmt.Sprintf("Entrada por compra #%d", p.Number)
		for _, l := range p.Lines {
			cost := l.UnitPrice
			if _, err := c.move(ctx, r, locked[l.ProductID], movement{
				direction:   entity.MovementEntry,
				quantity:    l.Quantity,
				reason:      entity.ReasonPurchase,
				note:        note,
				referenceID: p.ID,
				userID:      userID,
				cost:        &cost,
			}, now); err != nil {
				return err
			}
		}

		p.Status = entity.PurchaseStatusConfirmed
		p.ConfirmedAt = &now
		p.UpdatedAt = now
		if err := r.Purchases.UpdateStatus(ctx, p); err != nil {
			return err
		}
		purchase = p
		touched = productList(locked)
		return nil
	})
	if err != nil {
		return nil, err
	}

	c.log.Info().Int64("number", purchase.Number).Int("lines", len(purchase.Lines)).Msg("compra confirmada")
	c.committed(ctx, touched...)
	return purchase, nil
}

// CancelPurchase cancela una compra PENDING. No tiene efecto sobre el stock.
func (c *Coordinator) CancelPurchase(ctx context.Context, purchaseID, reason string) (*entity.Purchase, error) {
	if purchaseID == "" {
		return nil, domain.Invalid("purchase_id", "requerido")
	}
	var purchase *entity.Purchase
	err := c.tx.Run(ctx, func(r repository.Repositories) error {
		p, err := r.Purchases.GetForUpdate(ctx, purchaseID)
		if err != nil {
			return err
		}
		if p == nil {
			return fmt.Errorf("%w: compra %s", domain.ErrNotFound, purchaseID)
		}
		switch p.Status {
		case entity.PurchaseStatusCancelled:
			return fmt.Errorf("%w: %w: compra #%d", domain.ErrInvalidState, domain.ErrAlreadyCancelled, p.Number)
		case entity.PurchaseStatusConfirmed:
			return domain.InvalidState("la compra #%d ya fue confirmada y su stock ingresado", p.Number)
		}

		line := "Cancelada"
		if reason = strings.TrimSpace(reason); reason != "" {
			line = "Cancelada: " + reason
		}
		now := c.now()
		p.Status = entity.PurchaseStatusCancelled
		p.Notes = appendNote(p.Notes, line)
		p.UpdatedAt = now
		if err := r.Purchases.UpdateStatus(ctx, p); err != nil {
			return err
		}
		purchase = p
		return nil
	})
	if err != nil {
		return nil, err
	}

	c.log.Info().Int64("number", purchase.Number).Msg("compra cancelada")
	c.committed(ctx)
	return purchase, nil
}
