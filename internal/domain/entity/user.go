package entity

import "time"

// Roles válidos para User.
const (
	RoleAdmin    = "admin"
	RoleCustomer = "customer"
)

// User representa un usuario de la tienda (cliente o administrador).
type User struct {
	ID           string
	Email        string
	Phone        string
	PasswordHash string // bcrypt hash, nunca plano en dominio después de persistir
	FirstName    string
	LastName     string
	MiddleName   string // opcional
	Role         string // admin, customer
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
