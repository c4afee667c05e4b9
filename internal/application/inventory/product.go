package inventory

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/petshop-api/internal/domain"
	"github.com/jhoicas/petshop-api/internal/domain/entity"
	domaininv "github.com/jhoicas/petshop-api/internal/domain/inventory"
	"github.com/jhoicas/petshop-api/internal/domain/repository"
)

// OpenProduct da de alta el producto con stock cero y, si initialStock > 0,
// lo ingresa con un movimiento INITIAL_STOCK en la misma transacción.
func (c *Coordinator) OpenProduct(ctx context.Context, p *entity.Product, initialStock decimal.Decimal, userID string) (*entity.Product, error) {
	if initialStock.IsNegative() {
		return nil, domain.Invalid("initial_stock", "no puede ser negativo")
	}
	if initialStock.IsPositive() && !domaininv.ValidQuantity(initialStock, p.Weighable) {
		return nil, domain.Invalid("initial_stock", "el producto no admite cantidades fraccionarias")
	}
	if p.ID == "" {
		p.ID = c.newID()
	}
	now := c.now()
	p.Stock = decimal.Zero
	p.CreatedAt, p.UpdatedAt = now, now

	err := c.tx.Run(ctx, func(r repository.Repositories) error {
		if err := r.Products.Create(ctx, p); err != nil {
			return err
		}
		if !initialStock.IsPositive() {
			return nil
		}
		_, err := c.move(ctx, r, p, movement{
			direction: entity.MovementEntry,
			quantity:  initialStock,
			reason:    entity.ReasonInitialStock,
			note:      "Stock inicial",
			userID:    userID,
		}, now)
		return err
	})
	if err != nil {
		p.Stock = decimal.Zero
		return nil, err
	}

	c.log.Info().Str("product_id", p.ID).Str("stock", p.Stock.String()).Msg("producto creado")
	c.committed(ctx, p)
	return p, nil
}
