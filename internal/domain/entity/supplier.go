package entity

import "time"

// Supplier proveedor de mercadería.
type Supplier struct {
	ID          string
	Name        string
	Document    string // CNPJ
	ContactName string
	Email       string
	Phone       string
	Address     string
	Active      bool
	CreatedAt   time.Time
	UpdatedAt   time.Time
}
