package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Cart es el carrito de un usuario (uno por usuario, creado al primer add).
// TotalPrice es derivado: siempre igual a la suma de quantity*price de sus líneas,
// recalculado tras cada mutación dentro de la misma transacción.
type Cart struct {
	ID         string
	UserID     string
	TotalPrice decimal.Decimal
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

// CartItem es una línea del carrito: a lo sumo una por (carrito, producto).
// Price es el precio del producto en el momento del primer add y no se refresca
// en adds o updates posteriores (estabilidad de precio).
// ReservedAt marca la edad de la reserva para el barrido de vencidas.
type CartItem struct {
	ID         string
	CartID     string
	ProductID  string
	Quantity   int64 // siempre >= 1
	Price      decimal.Decimal
	Image      string
	ReservedAt time.Time
}

// Subtotal devuelve quantity * price de la línea.
func (i *CartItem) Subtotal() decimal.Decimal {
	return i.Price.Mul(decimal.NewFromInt(i.Quantity))
}

// CartItemDetail línea del carrito junto con los datos del producto (para GET /cart).
type CartItemDetail struct {
	CartItem
	ProductName  string
	ProductPrice decimal.Decimal // precio vigente, puede diferir del snapshot
	ProductImage string
}
