// Package memory implementa los repositorios en memoria con semántica transaccional:
// Run serializa las transacciones y, si fn falla, restaura el estado anterior.
// Se usa en los tests de los casos de uso y handlers, y en la validación en seco del importador de catálogo.
package memory

import (
	"context"
	"sync"

	"github.com/jhoicas/petshop-api/internal/domain/entity"
	"github.com/jhoicas/petshop-api/internal/domain/repository"
)

var _ repository.TxRunner = (*Store)(nil)

type state struct {
	products     map[string]*entity.Product
	movements    []*entity.StockMovement
	purchases    map[string]*entity.Purchase
	sales        map[string]*entity.Sale
	customers    map[string]*entity.Customer
	suppliers    map[string]*entity.Supplier
	categories   map[string]*entity.Category
	transactions map[string]*entity.Transaction
	balances     map[string]*entity.BalanceSnapshot
	counters     map[string]int64
	users        map[string]*entity.User
}

func newState() *state {
	return &state{
		products:     map[string]*entity.Product{},
		purchases:    map[string]*entity.Purchase{},
		sales:        map[string]*entity.Sale{},
		customers:    map[string]*entity.Customer{},
		suppliers:    map[string]*entity.Supplier{},
		categories:   map[string]*entity.Category{},
		transactions: map[string]*entity.Transaction{},
		balances:     map[string]*entity.BalanceSnapshot{},
		counters:     map[string]int64{},
		users:        map[string]*entity.User{},
	}
}

func (s *state) clone() *state {
	c := newState()
	for k, v := range s.products {
		c.products[k] = copyProduct(v)
	}
	for _, m := range s.movements {
		mv := *m
		c.movements = append(c.movements, &mv)
	}
	for k, v := range s.purchases {
		c.purchases[k] = copyPurchase(v)
	}
	for k, v := range s.sales {
		c.sales[k] = copySale(v)
	}
	for k, v := range s.customers {
		cu := *v
		c.customers[k] = &cu
	}
	for k, v := range s.suppliers {
		su := *v
		c.suppliers[k] = &su
	}
	for k, v := range s.categories {
		ca := *v
		c.categories[k] = &ca
	}
	for k, v := range s.transactions {
		c.transactions[k] = copyTransaction(v)
	}
	for k, v := range s.balances {
		b := *v
		c.balances[k] = &b
	}
	for k, v := range s.counters {
		c.counters[k] = v
	}
	for k, v := range s.users {
		u := *v
		c.users[k] = &u
	}
	return c
}

// Store almacén en memoria.
type Store struct {
	mu       sync.Mutex
	st       *state
	failures map[string]error
}

// New crea un almacén vacío.
func New() *Store {
	return &Store{st: newState(), failures: map[string]error{}}
}

// Run ejecuta fn en exclusión mutua; si devuelve error el estado vuelve al previo.
func (s *Store) Run(_ context.Context, fn func(r repository.Repositories) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	snapshot := s.st.clone()
	if err := fn(s.repos(true)); err != nil {
		s.st = snapshot
		return err
	}
	return nil
}

// Repositories devuelve repositorios fuera de transacción (cada llamada toma el lock).
func (s *Store) Repositories() repository.Repositories {
	return s.repos(false)
}

// Users devuelve el repositorio de usuarios.
func (s *Store) Users() repository.UserRepository {
	return &userRepo{base{s: s}}
}

// FailOn hace que la operación nombrada devuelva err (ej. "movements.create").
// Un err nil elimina la falla.
func (s *Store) FailOn(op string, err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err == nil {
		delete(s.failures, op)
		return
	}
	s.failures[op] = err
}

func (s *Store) repos(inTx bool) repository.Repositories {
	b := base{s: s, inTx: inTx}
	return repository.Repositories{
		Products:     &productRepo{b},
		Movements:    &movementRepo{b},
		Purchases:    &purchaseRepo{b},
		Sales:        &saleRepo{b},
		Customers:    &customerRepo{b},
		Suppliers:    &supplierRepo{b},
		Categories:   &categoryRepo{b},
		Transactions: &transactionRepo{b},
		Balances:     &balanceRepo{b},
		Counters:     &counterRepo{b},
	}
}

type base struct {
	s    *Store
	inTx bool
}

// lock toma el mutex del almacén salvo dentro de Run, que ya lo tiene.
func (b base) lock() func() {
	if b.inTx {
		return func() {}
	}
	b.s.mu.Lock()
	return b.s.mu.Unlock
}

func (b base) fail(op string) error {
	return b.s.failures[op]
}

func copyProduct(p *entity.Product) *entity.Product {
	c := *p
	return &c
}

func copyPurchase(p *entity.Purchase) *entity.Purchase {
	c := *p
	c.Lines = append([]entity.PurchaseLine(nil), p.Lines...)
	if p.ConfirmedAt != nil {
		t := *p.ConfirmedAt
		c.ConfirmedAt = &t
	}
	return &c
}

func copySale(s *entity.Sale) *entity.Sale {
	c := *s
	c.Lines = append([]entity.SaleLine(nil), s.Lines...)
	if s.CancelledAt != nil {
		t := *s.CancelledAt
		c.CancelledAt = &t
	}
	return &c
}

func copyTransaction(t *entity.Transaction) *entity.Transaction {
	c := *t
	c.Tags = append([]string(nil), t.Tags...)
	return &c
}

// page aplica limit/offset sobre n elementos y devuelve el rango [from, to).
func page(n, limit, offset int) (int, int) {
	if offset < 0 {
		offset = 0
	}
	if offset > n {
		offset = n
	}
	end := n
	if limit > 0 && offset+limit < n {
		end = offset + limit
	}
	return offset, end
}
