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

type customerRepo struct{ base }

func (r *customerRepo) Create(_ context.Context, c *entity.Customer) error {
	defer r.lock()()
	if c.Document != "" {
		for _, other := range r.s.st.customers {
			if other.Document == c.Document {
				return domain.ErrDuplicate
			}
		}
	}
	cu := *c
	r.s.st.customers[c.ID] = &cu
	return nil
}

func (r *customerRepo) GetByID(_ context.Context, id string) (*entity.Customer, error) {
	defer r.lock()()
	c, ok := r.s.st.customers[id]
	if !ok {
		return nil, nil
	}
	cu := *c
	return &cu, nil
}

func (r *customerRepo) GetForUpdate(ctx context.Context, id string) (*entity.Customer, error) {
	return r.GetByID(ctx, id)
}

func (r *customerRepo) GetByDocument(_ context.Context, document string) (*entity.Customer, error) {
	defer r.lock()()
	for _, c := range r.s.st.customers {
		if document != "" && c.Document == document {
			cu := *c
			return &cu, nil
		}
	}
	return nil, nil
}

func (r *customerRepo) Update(_ context.Context, c *entity.Customer) error {
	defer r.lock()()
	cur, ok := r.s.st.customers[c.ID]
	if !ok {
		return domain.ErrNotFound
	}
	if c.Document != "" {
		for id, other := range r.s.st.customers {
			if id != c.ID && other.Document == c.Document {
				return domain.ErrDuplicate
			}
		}
	}
	next := *c
	next.Debt = cur.Debt
	next.CreatedAt = cur.CreatedAt
	r.s.st.customers[c.ID] = &next
	return nil
}

func (r *customerRepo) SetDebt(_ context.Context, id string, debt decimal.Decimal) error {
	defer r.lock()()
	c, ok := r.s.st.customers[id]
	if !ok {
		return domain.ErrNotFound
	}
	c.Debt = debt
	return nil
}

func (r *customerRepo) List(_ context.Context, f repository.CustomerFilter) ([]*entity.Customer, int, error) {
	defer r.lock()()
	var out []*entity.Customer
	search := strings.ToLower(f.Search)
	for _, c := range r.s.st.customers {
		if search != "" && !strings.Contains(strings.ToLower(c.Name), search) && c.Document != f.Search {
			continue
		}
		if f.Active != nil && c.Active != *f.Active {
			continue
		}
		if f.WithDebt && !c.Debt.IsPositive() {
			continue
		}
		cu := *c
		out = append(out, &cu)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	from, to := page(len(out), f.Limit, f.Offset)
	return out[from:to], len(out), nil
}

type supplierRepo struct{ base }

func (r *supplierRepo) Create(_ context.Context, s *entity.Supplier) error {
	defer r.lock()()
	if s.Document != "" {
		for _, other := range r.s.st.suppliers {
			if other.Document == s.Document {
				return domain.ErrDuplicate
			}
		}
	}
	su := *s
	r.s.st.suppliers[s.ID] = &su
	return nil
}

func (r *supplierRepo) GetByID(_ context.Context, id string) (*entity.Supplier, error) {
	defer r.lock()()
	s, ok := r.s.st.suppliers[id]
	if !ok {
		return nil, nil
	}
	su := *s
	return &su, nil
}

func (r *supplierRepo) Update(_ context.Context, s *entity.Supplier) error {
	defer r.lock()()
	cur, ok := r.s.st.suppliers[s.ID]
	if !ok {
		return domain.ErrNotFound
	}
	next := *s
	next.CreatedAt = cur.CreatedAt
	r.s.st.suppliers[s.ID] = &next
	return nil
}

func (r *supplierRepo) List(_ context.Context, f repository.SupplierFilter) ([]*entity.Supplier, int, error) {
	defer r.lock()()
	var out []*entity.Supplier
	search := strings.ToLower(f.Search)
	for _, s := range r.s.st.suppliers {
		if search != "" && !strings.Contains(strings.ToLower(s.Name), search) {
			continue
		}
		if f.Active != nil && s.Active != *f.Active {
			continue
		}
		su := *s
		out = append(out, &su)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	from, to := page(len(out), f.Limit, f.Offset)
	return out[from:to], len(out), nil
}

type userRepo struct{ base }

func (r *userRepo) Create(_ context.Context, u *entity.User) error {
	defer r.lock()()
	for _, other := range r.s.st.users {
		if strings.EqualFold(other.Email, u.Email) {
			return domain.ErrEmailAlreadyExists
		}
	}
	cp := *u
	r.s.st.users[u.ID] = &cp
	return nil
}

func (r *userRepo) GetByID(_ context.Context, id string) (*entity.User, error) {
	defer r.lock()()
	u, ok := r.s.st.users[id]
	if !ok {
		return nil, nil
	}
	cp := *u
	return &cp, nil
}

func (r *userRepo) GetByEmail(_ context.Context, email string) (*entity.User, error) {
	defer r.lock()()
	for _, u := range r.s.st.users {
		if strings.EqualFold(u.Email, email) {
			cp := *u
			return &cp, nil
		}
	}
	return nil, nil
}
