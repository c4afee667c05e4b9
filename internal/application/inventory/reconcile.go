package inventory

import (
	"context"
	"fmt"

	"github.com/jhoicas/petshop-api/internal/domain"
	domaininv "github.com/jhoicas/petshop-api/internal/domain/inventory"
	"github.com/jhoicas/petshop-api/internal/domain/repository"
)

// ReconcileStock compara products.stock con la suma del libro de movimientos.
// Con apply=true y diferencia distinta de cero, fija el stock al valor del libro.
func (c *Coordinator) ReconcileStock(ctx context.Context, productID string, apply bool) (*domaininv.Reconciliation, error) {
	if productID == "" {
		return nil, domain.Invalid("product_id", "requerido")
	}
	var rec domaininv.Reconciliation
	err := c.tx.Run(ctx, func(r repository.Repositories) error {
		p, err := r.Products.GetForUpdate(ctx, productID)
		if err != nil {
			return err
		}
		if p == nil {
			return fmt.Errorf("%w: producto %s", domain.ErrNotFound, productID)
		}
		movs, err := r.Movements.ListByProduct(ctx, productID)
		if err != nil {
			return err
		}
		rec = domaininv.Reconcile(p, movs)
		if !apply || rec.InSync() {
			return nil
		}
		if rec.Ledger.IsNegative() {
			return domain.InvalidState("el libro de %q suma %s; no se puede fijar stock negativo", p.Name, rec.Ledger)
		}
		if err := r.Products.SetStock(ctx, p.ID, rec.Ledger); err != nil {
			return err
		}
		rec.Applied = true
		return nil
	})
	if err != nil {
		return nil, err
	}

	if !rec.InSync() {
		c.log.Warn().
			Str("product_id", rec.ProductID).
			Str("register", rec.Register.String()).
			Str("ledger", rec.Ledger.String()).
			Bool("applied", rec.Applied).
			Msg("diferencia entre stock y libro de movimientos")
	}
	if rec.Applied {
		c.committed(ctx)
	}
	return &rec, nil
}
