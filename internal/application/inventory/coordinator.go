// Package inventory implementa el coordinador transaccional de inventario: cada operación
// (compra, venta, cancelación, ajuste) modifica stock, libro de movimientos y documentos
// dentro de una única transacción con las filas de producto bloqueadas.
package inventory

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/petshop-api/internal/domain"
	"github.com/jhoicas/petshop-api/internal/domain/entity"
	"github.com/jhoicas/petshop-api/internal/domain/repository"
	"github.com/jhoicas/petshop-api/pkg/logger"
)

// Invalidator recibe aviso tras cada escritura confirmada (ej. cache del dashboard).
type Invalidator interface {
	Invalidate(ctx context.Context)
}

// Coordinator único camino de escritura de Product.Stock y del libro de movimientos.
type Coordinator struct {
	tx          repository.TxRunner
	invalidator Invalidator
	log         *logger.Logger
	now         func() time.Time
	newID       func() string
}

// NewCoordinator construye el coordinador. invalidator y log pueden ser nil.
func NewCoordinator(tx repository.TxRunner, invalidator Invalidator, log *logger.Logger) *Coordinator {
	if log == nil {
		log = logger.Nop()
	}
	return &Coordinator{
		tx:          tx,
		invalidator: invalidator,
		log:         log.Component("inventory"),
		now:         time.Now,
		newID:       func() string { return uuid.New().String() },
	}
}

// WithClock reemplaza el reloj (tests).
func (c *Coordinator) WithClock(now func() time.Time) *Coordinator {
	c.now = now
	return c
}

// movement describe un asiento a aplicar sobre un producto ya bloqueado.
type movement struct {
	direction   string
	quantity    decimal.Decimal
	reason      string
	note        string
	referenceID string
	userID      string
	cost        *decimal.Decimal // si no es nil, actualiza el costo de compra
}

// move aplica el asiento: ajusta stock (y costo), registra el movimiento y refleja el cambio en p.
func (c *Coordinator) move(ctx context.Context, r repository.Repositories, p *entity.Product, mv movement, at time.Time) (*entity.StockMovement, error) {
	next := p.Stock.Add(mv.quantity)
	if mv.direction == entity.MovementExit {
		if p.Stock.LessThan(mv.quantity) {
			return nil, &domain.InsufficientStockError{
				ProductID: p.ID, ProductName: p.Name, Available: p.Stock, Requested: mv.quantity,
			}
		}
		next = p.Stock.Sub(mv.quantity)
	}

	if mv.cost != nil {
		if err := r.Products.SetStockAndCost(ctx, p.ID, next, *mv.cost); err != nil {
			return nil, err
		}
		p.PurchaseCost = *mv.cost
	} else if err := r.Products.SetStock(ctx, p.ID, next); err != nil {
		return nil, err
	}
	p.Stock = next

	m := &entity.StockMovement{
		ID:          c.newID(),
		ProductID:   p.ID,
		Direction:   mv.direction,
		Quantity:    mv.quantity,
		Reason:      mv.reason,
		Note:        mv.note,
		ReferenceID: mv.referenceID,
		CreatedBy:   mv.userID,
		OccurredAt:  at,
	}
	if err := r.Movements.Create(ctx, m); err != nil {
		return nil, err
	}
	return m, nil
}

// lockProducts bloquea los productos en el orden recibido (debe venir ordenado).
func lockProducts(ctx context.Context, r repository.Repositories, ids []string) (map[string]*entity.Product, error) {
	locked := make(map[string]*entity.Product, len(ids))
	for _, id := range ids {
		p, err := r.Products.GetForUpdate(ctx, id)
		if err != nil {
			return nil, err
		}
		if p == nil {
			return nil, fmt.Errorf("%w: producto %s", domain.ErrNotFound, id)
		}
		locked[id] = p
	}
	return locked, nil
}

// committed avisa al invalidador y registra productos que quedaron en stock bajo.
func (c *Coordinator) committed(ctx context.Context, touched ...*entity.Product) {
	for _, p := range touched {
		if p != nil && p.IsLowStock() {
			c.log.Warn().
				Str("product_id", p.ID).
				Str("product", p.Name).
				Str("stock", p.Stock.String()).
				Str("min_stock", p.MinStock.String()).
				Msg("producto en stock mínimo")
		}
	}
	if c.invalidator != nil {
		c.invalidator.Invalidate(ctx)
	}
}

// appendNote agrega una línea a las observaciones existentes.
func appendNote(notes, line string) string {
	notes = strings.TrimSpace(notes)
	if notes == "" {
		return line
	}
	return notes + "\n" + line
}

func productList(m map[string]*entity.Product) []*entity.Product {
	out := make([]*entity.Product, 0, len(m))
	for _, p := range m {
		out = append(out, p)
	}
	return out
}
