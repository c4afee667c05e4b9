package repository

import "context"

// Nombres de contadores de documentos.
const (
	CounterSale     = "sale"
	CounterPurchase = "purchase"
)

// CounterRepository asigna números correlativos. Next se serializa por fila:
// dos transacciones concurrentes nunca obtienen el mismo valor.
type CounterRepository interface {
	Next(ctx context.Context, name string) (int64, error)
}

// Repositories agrupa los repositorios atados a una misma transacción.
type Repositories struct {
	Products     ProductRepository
	Movements    StockMovementRepository
	Purchases    PurchaseRepository
	Sales        SaleRepository
	Customers    CustomerRepository
	Suppliers    SupplierRepository
	Categories   CategoryRepository
	Transactions TransactionRepository
	Balances     BalanceRepository
	Counters     CounterRepository
}

// TxRunner ejecuta fn dentro de una transacción de BD con repositorios atados a ella.
// Si fn devuelve error se hace rollback y no persiste ninguna escritura.
type TxRunner interface {
	Run(ctx context.Context, fn func(r Repositories) error) error
}
