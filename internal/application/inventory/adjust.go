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

// AdjustmentInput ajuste manual: fija el stock en NewQuantity.
type AdjustmentInput struct {
	ProductID   string
	NewQuantity decimal.Decimal
	Reason      string
	Note        string
	UserID      string
}

// AdjustmentResult resultado del ajuste. Movement es nil cuando el stock no cambió.
type AdjustmentResult struct {
	Product  *entity.Product
	Previous decimal.Decimal
	Movement *entity.StockMovement
}

// AdjustStock lleva el stock a la cantidad contada y registra la diferencia como
// MANUAL_ADJUSTMENT. Si la cantidad coincide no escribe nada.
func (c *Coordinator) AdjustStock(ctx context.Context, in AdjustmentInput) (*AdjustmentResult, error) {
	if in.ProductID == "" {
		return nil, domain.Invalid("product_id", "requerido")
	}
	if in.NewQuantity.IsNegative() {
		return nil, domain.Invalid("new_quantity", "no puede ser negativa")
	}
	if !entity.ValidStockQuantity(in.NewQuantity) {
		return nil, domain.Invalid("new_quantity", "máximo 3 decimales")
	}
	reason := strings.TrimSpace(in.Reason)
	if reason == "" {
		return nil, domain.Invalid("reason", "requerido")
	}

	var res *AdjustmentResult
	err := c.tx.Run(ctx, func(r repository.Repositories) error {
		p, err := r.Products.GetForUpdate(ctx, in.ProductID)
		if err != nil {
			return err
		}
		if p == nil {
			return fmt.Errorf("%w: producto %s", domain.ErrNotFound, in.ProductID)
		}
		if !p.Weighable && !in.NewQuantity.Equal(in.NewQuantity.Truncate(0)) {
			return domain.Invalid("new_quantity", "el producto no admite cantidades fraccionarias")
		}

		res = &AdjustmentResult{Product: p, Previous: p.Stock}
		plan := domaininv.PlanAdjustment(p.Stock, in.NewQuantity)
		if !plan.Changed {
			return nil
		}

		note := reason
		if n := strings.TrimSpace(in.Note); n != "" {
			note = reason + ": " + n
		}
		m, err := c.move(ctx, r, p, movement{
			direction: plan.Direction,
			quantity:  plan.Quantity,
			reason:    entity.ReasonManualAdjustment,
			note:      note,
			userID:    in.UserID,
		}, c.now())
		if err != nil {
			return err
		}
		res.Movement = m
		return nil
	})
	if err != nil {
		return nil, err
	}

	if res.Movement == nil {
		c.log.Debug().Str("product_id", in.ProductID).Msg("ajuste sin diferencia, no se registra movimiento")
		return res, nil
	}
	c.log.Info().
		Str("product_id", res.Product.ID).
		Str("previous", res.Previous.String()).
		Str("current", res.Product.Stock.String()).
		Msg("stock ajustado")
	c.committed(ctx, res.Product)
	return res, nil
}

// MovementInput movimiento manual expresado como entrada o salida.
type MovementInput struct {
	ProductID string
	Direction string
	Quantity  decimal.Decimal
	Note      string
	UserID    string
}

// RecordMovement registra una entrada o salida manual (MANUAL_ADJUSTMENT).
// Una salida mayor al stock falla con stock insuficiente.
func (c *Coordinator) RecordMovement(ctx context.Context, in MovementInput) (*entity.StockMovement, error) {
	if in.ProductID == "" {
		return nil, domain.Invalid("product_id", "requerido")
	}
	if !entity.ValidDirection(in.Direction) {
		return nil, domain.Invalid("direction", "debe ser ENTRY o EXIT")
	}
	if !in.Quantity.IsPositive() {
		return nil, domain.Invalid("quantity", "debe ser mayor que cero")
	}
	if !entity.ValidStockQuantity(in.Quantity) {
		return nil, domain.Invalid("quantity", "máximo 3 decimales")
	}

	var (
		mov     *entity.StockMovement
		product *entity.Product
	)
	err := c.tx.Run(ctx, func(r repository.Repositories) error {
		p, err := r.Products.GetForUpdate(ctx, in.ProductID)
		if err != nil {
			return err
		}
		if p == nil {
			return fmt.Errorf("%w: producto %s", domain.ErrNotFound, in.ProductID)
		}
		if !domaininv.ValidQuantity(in.Quantity, p.Weighable) {
			return domain.Invalid("quantity", "el producto no admite cantidades fraccionarias")
		}
		m, err := c.move(ctx, r, p, movement{
			direction: in.Direction,
			quantity:  in.Quantity,
			reason:    entity.ReasonManualAdjustment,
			note:      strings.TrimSpace(in.Note),
			userID:    in.UserID,
		}, c.now())
		if err != nil {
			return err
		}
		mov, product = m, p
		return nil
	})
	if err != nil {
		return nil, err
	}

	c.log.Info().
		Str("product_id", product.ID).
		Str("direction", mov.Direction).
		Str("quantity", mov.Quantity.String()).
		Msg("movimiento manual registrado")
	c.committed(ctx, product)
	return mov, nil
}
