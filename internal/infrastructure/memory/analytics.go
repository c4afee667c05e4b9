package memory

import (
	"context"
	"sort"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/petshop-api/internal/domain/entity"
	"github.com/jhoicas/petshop-api/internal/domain/repository"
)

const monthLayout = "2006-01"

func (r *reportRepo) Sales(_ context.Context, p repository.ReportPeriod, top int) (*repository.SalesReport, error) {
	defer r.lock()()
	if err := r.fail("reports.sales"); err != nil {
		return nil, err
	}
	out := &repository.SalesReport{Gross: decimal.Zero, Discount: decimal.Zero, Net: decimal.Zero}
	sellers := map[string]*repository.SellerSales{}
	volumes := map[string]*repository.ProductVolume{}
	for _, s := range r.s.st.sales {
		if s.Status != entity.SaleStatusCompleted || !p.Contains(s.SoldAt) {
			continue
		}
		out.Count++
		out.Gross = out.Gross.Add(s.GrossTotal)
		out.Discount = out.Discount.Add(s.Discount)
		out.Net = out.Net.Add(s.NetTotal)

		sl, ok := sellers[s.CreatedBy]
		if !ok {
			sl = &repository.SellerSales{UserID: s.CreatedBy, Net: decimal.Zero}
			if u, ok := r.s.st.users[s.CreatedBy]; ok {
				sl.UserName = u.Name
			}
			sellers[s.CreatedBy] = sl
		}
		sl.Count++
		sl.Net = sl.Net.Add(s.NetTotal)
		for _, l := range s.Lines {
			r.addVolume(volumes, l.ProductID, l.Quantity, l.Subtotal)
		}
	}
	for _, sl := range sellers {
		out.BySeller = append(out.BySeller, *sl)
	}
	sort.Slice(out.BySeller, func(i, j int) bool {
		if !out.BySeller[i].Net.Equal(out.BySeller[j].Net) {
			return out.BySeller[i].Net.GreaterThan(out.BySeller[j].Net)
		}
		return out.BySeller[i].UserName < out.BySeller[j].UserName
	})
	out.TopProducts = rankVolumes(volumes, top)
	return out, nil
}

func (r *reportRepo) Purchases(_ context.Context, p repository.ReportPeriod, top int, since time.Time) (*repository.PurchasesReport, error) {
	defer r.lock()()
	if err := r.fail("reports.purchases"); err != nil {
		return nil, err
	}
	out := &repository.PurchasesReport{Total: decimal.Zero}
	suppliers := map[string]*repository.PartyAmount{}
	volumes := map[string]*repository.ProductVolume{}
	months := map[string]*repository.MonthAmount{}
	for _, pu := range r.s.st.purchases {
		if pu.Status != entity.PurchaseStatusConfirmed {
			continue
		}
		if !pu.PurchasedAt.Before(since) {
			key := pu.PurchasedAt.UTC().Format(monthLayout)
			m, ok := months[key]
			if !ok {
				m = &repository.MonthAmount{Month: key, Amount: decimal.Zero}
				months[key] = m
			}
			m.Count++
			m.Amount = m.Amount.Add(pu.Total)
		}
		if !p.Contains(pu.PurchasedAt) {
			continue
		}
		out.Count++
		out.Total = out.Total.Add(pu.Total)
		sp, ok := suppliers[pu.SupplierID]
		if !ok {
			sp = &repository.PartyAmount{ID: pu.SupplierID, Amount: decimal.Zero}
			if s, ok := r.s.st.suppliers[pu.SupplierID]; ok {
				sp.Name = s.Name
			}
			suppliers[pu.SupplierID] = sp
		}
		sp.Count++
		sp.Amount = sp.Amount.Add(pu.Total)
		for _, l := range pu.Lines {
			r.addVolume(volumes, l.ProductID, l.Quantity, l.Subtotal)
		}
	}
	out.BySupplier = rankParties(suppliers, 0)
	out.TopProducts = rankVolumes(volumes, top)
	for _, m := range months {
		out.ByMonth = append(out.ByMonth, *m)
	}
	sort.Slice(out.ByMonth, func(i, j int) bool { return out.ByMonth[i].Month < out.ByMonth[j].Month })
	return out, nil
}

func (r *reportRepo) Customers(_ context.Context, top int) (*repository.CustomersReport, error) {
	defer r.lock()()
	out := &repository.CustomersReport{TotalDebt: decimal.Zero}
	for _, c := range r.s.st.customers {
		if c.Active {
			out.Active++
		}
		if c.Debt.IsPositive() {
			out.WithDebt++
			out.TotalDebt = out.TotalDebt.Add(c.Debt)
		}
	}
	buyers := map[string]*repository.PartyAmount{}
	for _, s := range r.s.st.sales {
		if s.Status != entity.SaleStatusCompleted || s.CustomerID == "" {
			continue
		}
		b, ok := buyers[s.CustomerID]
		if !ok {
			b = &repository.PartyAmount{ID: s.CustomerID, Amount: decimal.Zero}
			if c, ok := r.s.st.customers[s.CustomerID]; ok {
				b.Name = c.Name
			}
			buyers[s.CustomerID] = b
		}
		b.Count++
		b.Amount = b.Amount.Add(s.NetTotal)
	}
	out.TopBuyers = rankParties(buyers, top)
	return out, nil
}

func (r *reportRepo) Suppliers(_ context.Context, top int) (*repository.SuppliersReport, error) {
	defer r.lock()()
	out := &repository.SuppliersReport{}
	for _, s := range r.s.st.suppliers {
		if s.Active {
			out.Active++
		}
	}
	withProducts := map[string]bool{}
	byCategory := map[string]map[string]bool{}
	for _, p := range r.s.st.products {
		if !p.Active || p.SupplierID == "" {
			continue
		}
		withProducts[p.SupplierID] = true
		name := ""
		if c, ok := r.s.st.categories[p.CategoryID]; ok {
			name = c.Name
		}
		if byCategory[name] == nil {
			byCategory[name] = map[string]bool{}
		}
		byCategory[name][p.SupplierID] = true
	}
	out.WithProducts = len(withProducts)
	for name, set := range byCategory {
		out.ByCategory = append(out.ByCategory, repository.CategorySuppliers{CategoryName: name, Suppliers: len(set)})
	}
	sort.Slice(out.ByCategory, func(i, j int) bool { return out.ByCategory[i].CategoryName < out.ByCategory[j].CategoryName })

	totals := map[string]*repository.PartyAmount{}
	for _, pu := range r.s.st.purchases {
		if pu.Status != entity.PurchaseStatusConfirmed {
			continue
		}
		t, ok := totals[pu.SupplierID]
		if !ok {
			t = &repository.PartyAmount{ID: pu.SupplierID, Amount: decimal.Zero}
			if s, ok := r.s.st.suppliers[pu.SupplierID]; ok {
				t.Name = s.Name
			}
			totals[pu.SupplierID] = t
		}
		t.Count++
		t.Amount = t.Amount.Add(pu.Total)
	}
	out.TopSuppliers = rankParties(totals, top)
	return out, nil
}

func (r *reportRepo) FinanceByCategory(_ context.Context, userID string, p repository.ReportPeriod) ([]repository.CategoryFlow, error) {
	defer r.lock()()
	flows := map[string]*repository.CategoryFlow{}
	for _, t := range r.s.st.transactions {
		if t.UserID != userID || !p.Contains(t.OccurredOn) {
			continue
		}
		key := t.CategoryID + "|" + t.Kind
		f, ok := flows[key]
		if !ok {
			f = &repository.CategoryFlow{CategoryID: t.CategoryID, Kind: t.Kind, Amount: decimal.Zero}
			if c, ok := r.s.st.categories[t.CategoryID]; ok {
				f.CategoryName = c.Name
			}
			flows[key] = f
		}
		f.Count++
		f.Amount = f.Amount.Add(t.Amount)
	}
	out := make([]repository.CategoryFlow, 0, len(flows))
	for _, f := range flows {
		out = append(out, *f)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Kind != out[j].Kind {
			return out[i].Kind < out[j].Kind
		}
		if !out[i].Amount.Equal(out[j].Amount) {
			return out[i].Amount.GreaterThan(out[j].Amount)
		}
		return out[i].CategoryName < out[j].CategoryName
	})
	return out, nil
}

func (r *reportRepo) FinanceByMonth(_ context.Context, userID string, since time.Time) ([]repository.MonthFlow, error) {
	defer r.lock()()
	months := map[string]*repository.MonthFlow{}
	for _, t := range r.s.st.transactions {
		if t.UserID != userID || t.OccurredOn.Before(since) {
			continue
		}
		key := t.OccurredOn.UTC().Format(monthLayout)
		m, ok := months[key]
		if !ok {
			m = &repository.MonthFlow{Month: key, Income: decimal.Zero, Expense: decimal.Zero}
			months[key] = m
		}
		if t.Kind == entity.TransactionIncome {
			m.Income = m.Income.Add(t.Amount)
		} else {
			m.Expense = m.Expense.Add(t.Amount)
		}
	}
	out := make([]repository.MonthFlow, 0, len(months))
	for _, m := range months {
		out = append(out, *m)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Month < out[j].Month })
	return out, nil
}

func (r *reportRepo) addVolume(volumes map[string]*repository.ProductVolume, productID string, qty, amount decimal.Decimal) {
	v, ok := volumes[productID]
	if !ok {
		v = &repository.ProductVolume{ProductID: productID, Quantity: decimal.Zero, Amount: decimal.Zero}
		if p, ok := r.s.st.products[productID]; ok {
			v.ProductName = p.Name
			v.UnitMeasure = p.UnitMeasure
		}
		volumes[productID] = v
	}
	v.Quantity = v.Quantity.Add(qty)
	v.Amount = v.Amount.Add(amount)
}

// rankVolumes ordena por cantidad descendente; top <= 0 no recorta.
func rankVolumes(volumes map[string]*repository.ProductVolume, top int) []repository.ProductVolume {
	out := make([]repository.ProductVolume, 0, len(volumes))
	for _, v := range volumes {
		out = append(out, *v)
	}
	sort.Slice(out, func(i, j int) bool {
		if !out[i].Quantity.Equal(out[j].Quantity) {
			return out[i].Quantity.GreaterThan(out[j].Quantity)
		}
		return out[i].ProductName < out[j].ProductName
	})
	if top > 0 && len(out) > top {
		out = out[:top]
	}
	return out
}

func rankParties(parties map[string]*repository.PartyAmount, top int) []repository.PartyAmount {
	out := make([]repository.PartyAmount, 0, len(parties))
	for _, p := range parties {
		out = append(out, *p)
	}
	sort.Slice(out, func(i, j int) bool {
		if !out[i].Amount.Equal(out[j].Amount) {
			return out[i].Amount.GreaterThan(out[j].Amount)
		}
		return out[i].Name < out[j].Name
	})
	if top > 0 && len(out) > top {
		out = out[:top]
	}
	return out
}
