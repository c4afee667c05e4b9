package entity

import "time"

// Roles válidos para User.
const (
	RoleAdmin    = "admin"
	RoleOperator = "operador"
)

// ValidRole indica si r es un rol conocido.
func ValidRole(r string) bool { return r == RoleAdmin || r == RoleOperator }

// User usuario del sistema.
type User struct {
	ID           string
	Email        string
	PasswordHash string // bcrypt
	Name         string
	Role         string
	Status       string // active, inactive
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
