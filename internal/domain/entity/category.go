package entity

import "time"

// Tipos de categoría: de productos o de finanzas personales.
const (
	CategoryProduct = "PRODUCT"
	CategoryIncome  = "INCOME"
	CategoryExpense = "EXPENSE"
)

// ValidCategoryKind indica si k es un tipo de categoría conocido.
func ValidCategoryKind(k string) bool {
	return k == CategoryProduct || k == CategoryIncome || k == CategoryExpense
}

// Category agrupa productos o transacciones financieras. Pertenece al usuario que la creó.
type Category struct {
	ID          string
	UserID      string
	Name        string
	Description string
	Kind        string
	Color       string // hex, ej. #3b82f6
	Icon        string
	Active      bool
	CreatedAt   time.Time
	UpdatedAt   time.Time
}
