package inventory

import (
	"context"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/petshop-api/internal/domain"
	"github.com/jhoicas/petshop-api/internal/domain/entity"
	domaininv "github.com/jhoicas/petshop-api/internal/domain/inventory"
	"github.com/jhoicas/petshop-api/internal/domain/repository"
)

// SaleLineInput línea de venta. UnitPrice nil usa el precio de venta del producto.
type SaleLineInput struct {
	ProductID string
	Quantity  decimal.Decimal
	UnitPrice *decimal.Decimal
}

// SaleInput datos de una venta de mostrador.
type SaleInput struct {
	CustomerID  string
	PaymentType string
	Discount    decimal.Decimal
	Notes       string
	UserID      string
	Lines       []SaleLineInput
}

func (in SaleInput) validate() error {
	if len(in.Lines) == 0 {
		return domain.Invalid("lines", "la venta debe tener al menos una línea")
	}
	if !entity.ValidPaymentType(in.PaymentType) {
		return domain.Invalid("payment_type", "forma de pago inválida")
	}
	if in.Discount.IsNegative() {
		return domain.Invalid("discount", "no puede ser negativo")
	}
	if !entity.ValidMoney(in.Discount) {
		return domain.Invalid("discount", "máximo 2 decimales")
	}
	if in.PaymentType == entity.PaymentCreditTerm && in.CustomerID == "" {
		return domain.Invalid("customer_id", "requerido para venta a plazo")
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
		if l.UnitPrice != nil && l.UnitPrice.IsNegative() {
			return domain.Invalid(fmt.Sprintf("lines[%d].unit_price", i), "no puede ser negativo")
		}
		if l.UnitPrice != nil && !entity.ValidMoney(*l.UnitPrice) {
			return domain.Invalid(fmt.Sprintf("lines[%d].unit_price", i), "máximo 2 decimales")
		}
	}
	return nil
}

// CreateSale registra una venta COMPLETED: bloquea los productos en orden de ID, verifica
// stock para la demanda agregada de cada producto, asigna el número correlativo y descuenta.
// Si falta stock para cualquier línea no se escribe nada.
func (c *Coordinator) CreateSale(ctx context.Context, in SaleInput) (*entity.Sale, error) {
	if err := in.validate(); err != nil {
		return nil, err
	}

	var (
		sale    *entity.Sale
		touched []*entity.Product
	)
	err := c.tx.Run(ctx, func(r repository.Repositories) error {
		demand := domaininv.Demand{}
		for _, l := range in.Lines {
			demand.Add(l.ProductID, l.Quantity)
		}
		locked, err := lockProducts(ctx, r, demand.LockOrder())
		if err != nil {
			return err
		}
		for _, id := range demand.LockOrder() {
			p := locked[id]
			if !p.Active {
				return domain.InvalidState("el producto %q está inactivo", p.Name)
			}
			if p.Stock.LessThan(demand[id]) {
				return &domain.InsufficientStockError{
					ProductID: p.ID, ProductName: p.Name, Available: p.Stock, Requested: demand[id],
				}
			}
		}

		var customer *entity.Customer
		if in.CustomerID != "" {
			customer, err = r.Customers.GetForUpdate(ctx, in.CustomerID)
			if err != nil {
				return err
			}
			if customer == nil {
				return fmt.Errorf("%w: cliente %s", domain.ErrNotFound, in.CustomerID)
			}
			if !customer.Active {
				return domain.InvalidState("el cliente %q está inactivo", customer.Name)
			}
		}

		now := c.now()
		s := &entity.Sale{
			ID:          c.newID(),
			CustomerID:  in.CustomerID,
			PaymentType: in.PaymentType,
			Status:      entity.SaleStatusCompleted,
			Discount:    in.Discount,
			Notes:       strings.TrimSpace(in.Notes),
			SoldAt:      now,
			CreatedBy:   in.UserID,
			CreatedAt:   now,
			UpdatedAt:   now,
		}
		subtotals := make([]decimal.Decimal, 0, len(in.Lines))
		for i, l := range in.Lines {
			p := locked[l.ProductID]
			if !domaininv.ValidQuantity(l.Quantity, p.Weighable) {
				return domain.Invalid(fmt.Sprintf("lines[%d].quantity", i), "el producto no admite cantidades fraccionarias")
			}
			price := p.SalePrice
			if l.UnitPrice != nil {
				price = *l.UnitPrice
			}
			subtotal := domaininv.LineSubtotal(l.Quantity, price)
			subtotals = append(subtotals, subtotal)
			s.Lines = append(s.Lines, entity.SaleLine{
				ID:        c.newID(),
				SaleID:    s.ID,
				ProductID: l.ProductID,
				Quantity:  l.Quantity,
				UnitPrice: price,
				Subtotal:  subtotal,
			})
		}
		gross, net, ok := domaininv.Totals(subtotals, in.Discount)
		if !ok {
			return domain.Invalid("discount", "el descuento supera el total bruto")
		}
		s.GrossTotal, s.NetTotal = gross, net

		if in.PaymentType == entity.PaymentCreditTerm {
			if customer.ExceedsCreditLimit(net) {
				return fmt.Errorf("%w: cliente %q, deuda %s, límite %s, venta %s",
					domain.ErrCreditLimitExceeded, customer.Name, customer.Debt, customer.CreditLimit, net)
			}
			change := customer.ApplyDebt(entity.DebtAdd, net)
			if err := r.Customers.SetDebt(ctx, customer.ID, change.Current); err != nil {
				return err
			}
		}

		n, err := r.Counters.Next(ctx, repository.CounterSale)
		if err != nil {
			return err
		}
		s.Number = domaininv.FormatSaleNumber(n)
		if err := r.Sales.Create(ctx, s); err != nil {
			return err
		}

		note := "Venta #" + s.Number
		for _, l := range s.Lines {
			if _, err := c.move(ctx, r, locked[l.ProductID], movement{
				direction:   entity.MovementExit,
				quantity:    l.Quantity,
				reason:      entity.ReasonSale,
				note:        note,
				referenceID: s.ID,
				userID:      in.UserID,
			}, now); err != nil {
				return err
			}
		}
		sale = s
		touched = productList(locked)
		return nil
	})
	if err != nil {
		return nil, err
	}

	c.log.Info().
		Str("number", sale.Number).
		Str("payment_type", sale.PaymentType).
		Str("net_total", sale.NetTotal.String()).
		Msg("venta registrada")
	c.committed(ctx, touched...)
	return sale, nil
}

// CancelSale cancela una venta COMPLETED: devuelve el stock de cada línea con un movimiento
// RETURN y, si fue a plazo, descuenta la deuda del cliente (recortada en cero).
func (c *Coordinator) CancelSale(ctx context.Context, saleID, reason, userID string) (*entity.Sale, error) {
	if saleID == "" {
		return nil, domain.Invalid("sale_id", "requerido")
	}
	var (
		sale    *entity.Sale
		touched []*entity.Product
	)
	err := c.tx.Run(ctx, func(r repository.Repositories) error {
		s, err := r.Sales.GetForUpdate(ctx, saleID)
		if err != nil {
			return err
		}
		if s == nil {
			return fmt.Errorf("%w: venta %s", domain.ErrNotFound, saleID)
		}
		if s.Status == entity.SaleStatusCancelled {
			return fmt.Errorf("%w: venta #%s", domain.ErrAlreadyCancelled, s.Number)
		}

		now := c.now()
		if s.Status == entity.SaleStatusCompleted {
			demand := domaininv.Demand{}
			for _, l := range s.Lines {
				demand.Add(l.ProductID, l.Quantity)
			}
			locked, err := lockProducts(ctx, r, demand.LockOrder())
			if err != nil {
				return err
			}
			note := "Cancelación de venta #" + s.Number
			for _, l := range s.Lines {
				if _, err := c.move(ctx, r, locked[l.ProductID], movement{
					direction:   entity.MovementEntry,
					quantity:    l.Quantity,
					reason:      entity.ReasonReturn,
					note:        note,
					referenceID: s.ID,
					userID:      userID,
				}, now); err != nil {
					return err
				}
			}
			touched = productList(locked)

			if s.PaymentType == entity.PaymentCreditTerm && s.CustomerID != "" {
				customer, err := r.Customers.GetForUpdate(ctx, s.CustomerID)
				if err != nil {
					return err
				}
				if customer != nil {
					change := customer.ApplyDebt(entity.DebtSubtract, s.NetTotal)
					if err := r.Customers.SetDebt(ctx, customer.ID, change.Current); err != nil {
						return err
					}
					if change.Discarded.IsPositive() {
						c.log.Warn().
							Str("customer_id", customer.ID).
							Str("discarded", change.Discarded.String()).
							Msg("deuda recortada en cero al cancelar venta")
					}
				}
			}
		}

		motive := strings.TrimSpace(reason)
		if motive == "" {
			motive = "Sin motivo informado"
		}
		s.Status = entity.SaleStatusCancelled
		s.CancelledAt = &now
		s.UpdatedAt = now
		s.Notes = appendNote(s.Notes, "CANCELADA: "+motive)
		if err := r.Sales.UpdateStatus(ctx, s); err != nil {
			return err
		}
		sale = s
		return nil
	})
	if err != nil {
		return nil, err
	}

	c.log.Info().Str("number", sale.Number).Msg("venta cancelada")
	c.committed(ctx, touched...)
	return sale, nil
}
