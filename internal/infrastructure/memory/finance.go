package memory

import (
	"context"
	"sort"
	"time"

	"github.com/jhoicas/petshop-api/internal/domain"
	"github.com/jhoicas/petshop-api/internal/domain/entity"
	"github.com/jhoicas/petshop-api/internal/domain/finance"
	"github.com/jhoicas/petshop-api/internal/domain/repository"
)

type categoryRepo struct{ base }

func (r *categoryRepo) Create(_ context.Context, c *entity.Category) error {
	defer r.lock()()
	ca := *c
	r.s.st.categories[c.ID] = &ca
	return nil
}

func (r *categoryRepo) GetByID(_ context.Context, id string) (*entity.Category, error) {
	defer r.lock()()
	c, ok := r.s.st.categories[id]
	if !ok {
		return nil, nil
	}
	ca := *c
	return &ca, nil
}

func (r *categoryRepo) Update(_ context.Context, c *entity.Category) error {
	defer r.lock()()
	if _, ok := r.s.st.categories[c.ID]; !ok {
		return domain.ErrNotFound
	}
	ca := *c
	r.s.st.categories[c.ID] = &ca
	return nil
}

func (r *categoryRepo) List(_ context.Context, f repository.CategoryFilter) ([]*entity.Category, error) {
	defer r.lock()()
	var out []*entity.Category
	for _, c := range r.s.st.categories {
		if f.UserID != "" && c.UserID != f.UserID {
			continue
		}
		if f.Kind != "" && c.Kind != f.Kind {
			continue
		}
		if f.Active != nil && c.Active != *f.Active {
			continue
		}
		ca := *c
		out = append(out, &ca)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

type transactionRepo struct{ base }

func (r *transactionRepo) Create(_ context.Context, t *entity.Transaction) error {
	defer r.lock()()
	r.s.st.transactions[t.ID] = copyTransaction(t)
	return nil
}

func (r *transactionRepo) GetByID(_ context.Context, id string) (*entity.Transaction, error) {
	defer r.lock()()
	t, ok := r.s.st.transactions[id]
	if !ok {
		return nil, nil
	}
	return copyTransaction(t), nil
}

func (r *transactionRepo) Update(_ context.Context, t *entity.Transaction) error {
	defer r.lock()()
	if _, ok := r.s.st.transactions[t.ID]; !ok {
		return domain.ErrNotFound
	}
	r.s.st.transactions[t.ID] = copyTransaction(t)
	return nil
}

func (r *transactionRepo) Delete(_ context.Context, id string) error {
	defer r.lock()()
	delete(r.s.st.transactions, id)
	return nil
}

func (r *transactionRepo) List(_ context.Context, f repository.TransactionFilter) ([]*entity.Transaction, int, error) {
	defer r.lock()()
	var out []*entity.Transaction
	for _, t := range r.s.st.transactions {
		if f.UserID != "" && t.UserID != f.UserID {
			continue
		}
		if f.Kind != "" && t.Kind != f.Kind {
			continue
		}
		if f.CategoryID != "" && t.CategoryID != f.CategoryID {
			continue
		}
		if f.From != nil && t.OccurredOn.Before(*f.From) {
			continue
		}
		if f.To != nil && t.OccurredOn.After(*f.To) {
			continue
		}
		out = append(out, copyTransaction(t))
	}
	sort.Slice(out, func(i, j int) bool { return out[i].OccurredOn.After(out[j].OccurredOn) })
	from, to := page(len(out), f.Limit, f.Offset)
	return out[from:to], len(out), nil
}

func (r *transactionRepo) Totals(_ context.Context, userID string, since time.Time) (entity.FlowTotals, error) {
	defer r.lock()()
	if err := r.fail("transactions.totals"); err != nil {
		return entity.FlowTotals{}, err
	}
	var mine []*entity.Transaction
	for _, t := range r.s.st.transactions {
		if t.UserID == userID {
			mine = append(mine, t)
		}
	}
	return finance.Sum(mine, since), nil
}

type balanceRepo struct{ base }

func (r *balanceRepo) Get(_ context.Context, userID string) (*entity.BalanceSnapshot, error) {
	defer r.lock()()
	b, ok := r.s.st.balances[userID]
	if !ok {
		return nil, nil
	}
	cp := *b
	return &cp, nil
}

func (r *balanceRepo) Upsert(_ context.Context, s *entity.BalanceSnapshot) error {
	defer r.lock()()
	cp := *s
	r.s.st.balances[s.UserID] = &cp
	return nil
}
