package memory

import (
	"context"
	"sort"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/petshop-api/internal/domain"
	"github.com/jhoicas/petshop-api/internal/domain/entity"
	domaininv "github.com/jhoicas/petshop-api/internal/domain/inventory"
	"github.com/jhoicas/petshop-api/internal/domain/repository"
)

type purchaseRepo struct{ base }

func (r *purchaseRepo) Create(_ context.Context, p *entity.Purchase) error {
	defer r.lock()()
	if _, ok := r.s.st.purchases[p.ID]; ok {
		return domain.ErrDuplicate
	}
	r.s.st.purchases[p.ID] = copyPurchase(p)
	return nil
}

func (r *purchaseRepo) GetByID(_ context.Context, id string) (*entity.Purchase, error) {
	defer r.lock()()
	p, ok := r.s.st.purchases[id]
	if !ok {
		return nil, nil
	}
	return copyPurchase(p), nil
}

func (r *purchaseRepo) GetForUpdate(ctx context.Context, id string) (*entity.Purchase, error) {
	return r.GetByID(ctx, id)
}

func (r *purchaseRepo) UpdateStatus(_ context.Context, p *entity.Purchase) error {
	defer r.lock()()
	cur, ok := r.s.st.purchases[p.ID]
	if !ok {
		return domain.ErrNotFound
	}
	cur.Status = p.Status
	cur.Notes = p.Notes
	cur.ConfirmedAt = p.ConfirmedAt
	cur.UpdatedAt = p.UpdatedAt
	return nil
}

func (r *purchaseRepo) List(_ context.Context, f repository.PurchaseFilter) ([]*entity.Purchase, int, error) {
	defer r.lock()()
	var out []*entity.Purchase
	for _, p := range r.s.st.purchases {
		if f.SupplierID != "" && p.SupplierID != f.SupplierID {
			continue
		}
		if f.Status != "" && p.Status != f.Status {
			continue
		}
		if f.From != nil && p.PurchasedAt.Before(*f.From) {
			continue
		}
		if f.To != nil && p.PurchasedAt.After(*f.To) {
			continue
		}
		c := copyPurchase(p)
		c.Lines = nil
		out = append(out, c)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Number > out[j].Number })
	from, to := page(len(out), f.Limit, f.Offset)
	return out[from:to], len(out), nil
}

type saleRepo struct{ base }

func (r *saleRepo) Create(_ context.Context, s *entity.Sale) error {
	defer r.lock()()
	if err := r.fail("sales.create"); err != nil {
		return err
	}
	for _, other := range r.s.st.sales {
		if other.Number == s.Number {
			return domain.ErrDuplicate
		}
	}
	r.s.st.sales[s.ID] = copySale(s)
	return nil
}

func (r *saleRepo) GetByID(_ context.Context, id string) (*entity.Sale, error) {
	defer r.lock()()
	s, ok := r.s.st.sales[id]
	if !ok {
		return nil, nil
	}
	return copySale(s), nil
}

func (r *saleRepo) GetForUpdate(ctx context.Context, id string) (*entity.Sale, error) {
	return r.GetByID(ctx, id)
}

func (r *saleRepo) UpdateStatus(_ context.Context, s *entity.Sale) error {
	defer r.lock()()
	cur, ok := r.s.st.sales[s.ID]
	if !ok {
		return domain.ErrNotFound
	}
	cur.Status = s.Status
	cur.Notes = s.Notes
	cur.CancelledAt = s.CancelledAt
	cur.UpdatedAt = s.UpdatedAt
	return nil
}

func (r *saleRepo) CustomerTotals(_ context.Context, customerID string) (repository.CustomerSaleTotals, error) {
	defer r.lock()()
	t := repository.CustomerSaleTotals{Total: decimal.Zero, Credit: decimal.Zero}
	for _, s := range r.s.st.sales {
		if s.CustomerID != customerID || s.Status != entity.SaleStatusCompleted {
			continue
		}
		t.Count++
		t.Total = t.Total.Add(s.NetTotal)
		if s.PaymentType == entity.PaymentCreditTerm {
			t.Credit = t.Credit.Add(s.NetTotal)
		}
	}
	return t, nil
}

func (r *saleRepo) List(_ context.Context, f repository.SaleFilter) ([]*entity.Sale, int, error) {
	defer r.lock()()
	var out []*entity.Sale
	for _, s := range r.s.st.sales {
		if f.CustomerID != "" && s.CustomerID != f.CustomerID {
			continue
		}
		if f.Status != "" && s.Status != f.Status {
			continue
		}
		if f.PaymentType != "" && s.PaymentType != f.PaymentType {
			continue
		}
		if f.From != nil && s.SoldAt.Before(*f.From) {
			continue
		}
		if f.To != nil && s.SoldAt.After(*f.To) {
			continue
		}
		c := copySale(s)
		c.Lines = nil
		out = append(out, c)
	}
	sort.Slice(out, func(i, j int) bool { return domaininv.SaleNumberAfter(out[i].Number, out[j].Number) })
	from, to := page(len(out), f.Limit, f.Offset)
	return out[from:to], len(out), nil
}
