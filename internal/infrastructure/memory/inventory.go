package memory

import (
	"context"
	"sort"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/petshop-api/internal/domain"
	"github.com/jhoicas/petshop-api/internal/domain/entity"
	"github.com/jhoicas/petshop-api/internal/domain/repository"
)

type productRepo struct{ base }

func (r *productRepo) Create(_ context.Context, p *entity.Product) error {
	defer r.lock()()
	if err := r.fail("products.create"); err != nil {
		return err
	}
	if _, ok := r.s.st.products[p.ID]; ok {
		return domain.ErrDuplicate
	}
	if p.Barcode != "" {
		for _, other := range r.s.st.products {
			if other.Barcode == p.Barcode {
				return domain.ErrDuplicate
			}
		}
	}
	r.s.st.products[p.ID] = copyProduct(p)
	return nil
}

func (r *productRepo) GetByID(_ context.Context, id string) (*entity.Product, error) {
	defer r.lock()()
	p, ok := r.s.st.products[id]
	if !ok {
		return nil, nil
	}
	return copyProduct(p), nil
}

func (r *productRepo) GetForUpdate(ctx context.Context, id string) (*entity.Product, error) {
	return r.GetByID(ctx, id)
}

func (r *productRepo) GetByBarcode(_ context.Context, barcode string) (*entity.Product, error) {
	defer r.lock()()
	for _, p := range r.s.st.products {
		if barcode != "" && p.Barcode == barcode {
			return copyProduct(p), nil
		}
	}
	return nil, nil
}

func (r *productRepo) Update(_ context.Context, p *entity.Product) error {
	defer r.lock()()
	cur, ok := r.s.st.products[p.ID]
	if !ok {
		return domain.ErrNotFound
	}
	if p.Barcode != "" {
		for id, other := range r.s.st.products {
			if id != p.ID && other.Barcode == p.Barcode {
				return domain.ErrDuplicate
			}
		}
	}
	next := copyProduct(p)
	next.Stock = cur.Stock
	next.PurchaseCost = cur.PurchaseCost
	next.CreatedAt = cur.CreatedAt
	r.s.st.products[p.ID] = next
	return nil
}

func (r *productRepo) SetStock(_ context.Context, id string, stock decimal.Decimal) error {
	defer r.lock()()
	if err := r.fail("products.set_stock"); err != nil {
		return err
	}
	p, ok := r.s.st.products[id]
	if !ok {
		return domain.ErrNotFound
	}
	p.Stock = stock
	return nil
}

func (r *productRepo) SetStockAndCost(_ context.Context, id string, stock, cost decimal.Decimal) error {
	defer r.lock()()
	p, ok := r.s.st.products[id]
	if !ok {
		return domain.ErrNotFound
	}
	p.Stock = stock
	p.PurchaseCost = cost
	return nil
}

func (r *productRepo) List(_ context.Context, f repository.ProductFilter) ([]*entity.Product, int, error) {
	defer r.lock()()
	var out []*entity.Product
	search := strings.ToLower(f.Search)
	for _, p := range r.s.st.products {
		if search != "" && !strings.Contains(strings.ToLower(p.Name), search) && p.Barcode != f.Search {
			continue
		}
		if f.CategoryID != "" && p.CategoryID != f.CategoryID {
			continue
		}
		if f.SupplierID != "" && p.SupplierID != f.SupplierID {
			continue
		}
		if f.Active != nil && p.Active != *f.Active {
			continue
		}
		if f.LowStock && !p.IsLowStock() {
			continue
		}
		out = append(out, copyProduct(p))
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	from, to := page(len(out), f.Limit, f.Offset)
	return out[from:to], len(out), nil
}

func (r *productRepo) HasHistory(_ context.Context, id string) (bool, error) {
	defer r.lock()()
	for _, m := range r.s.st.movements {
		if m.ProductID == id {
			return true, nil
		}
	}
	for _, s := range r.s.st.sales {
		for _, l := range s.Lines {
			if l.ProductID == id {
				return true, nil
			}
		}
	}
	for _, p := range r.s.st.purchases {
		for _, l := range p.Lines {
			if l.ProductID == id {
				return true, nil
			}
		}
	}
	return false, nil
}

func (r *productRepo) Delete(_ context.Context, id string) error {
	defer r.lock()()
	delete(r.s.st.products, id)
	return nil
}

type movementRepo struct{ base }

func (r *movementRepo) Create(_ context.Context, m *entity.StockMovement) error {
	defer r.lock()()
	if err := r.fail("movements.create"); err != nil {
		return err
	}
	mv := *m
	r.s.st.movements = append(r.s.st.movements, &mv)
	return nil
}

func (r *movementRepo) GetByID(_ context.Context, id string) (*entity.StockMovement, error) {
	defer r.lock()()
	for _, m := range r.s.st.movements {
		if m.ID == id {
			mv := *m
			return &mv, nil
		}
	}
	return nil, nil
}

func (r *movementRepo) List(_ context.Context, f repository.MovementFilter) ([]*entity.StockMovement, int, error) {
	defer r.lock()()
	var out []*entity.StockMovement
	for i := len(r.s.st.movements) - 1; i >= 0; i-- {
		m := r.s.st.movements[i]
		if f.ProductID != "" && m.ProductID != f.ProductID {
			continue
		}
		if f.Direction != "" && m.Direction != f.Direction {
			continue
		}
		if f.Reason != "" && m.Reason != f.Reason {
			continue
		}
		if f.From != nil && m.OccurredAt.Before(*f.From) {
			continue
		}
		if f.To != nil && m.OccurredAt.After(*f.To) {
			continue
		}
		mv := *m
		out = append(out, &mv)
	}
	from, to := page(len(out), f.Limit, f.Offset)
	return out[from:to], len(out), nil
}

func (r *movementRepo) ListByProduct(_ context.Context, productID string) ([]*entity.StockMovement, error) {
	defer r.lock()()
	var out []*entity.StockMovement
	for _, m := range r.s.st.movements {
		if m.ProductID == productID {
			mv := *m
			out = append(out, &mv)
		}
	}
	return out, nil
}

type counterRepo struct{ base }

func (r *counterRepo) Next(_ context.Context, name string) (int64, error) {
	defer r.lock()()
	r.s.st.counters[name]++
	return r.s.st.counters[name], nil
}
