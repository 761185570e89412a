package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Estados válidos de un pedido. Un pedido solo puede cancelarse en "accepted";
// a partir de "assembling" el stock ya está comprometido al despacho.
const (
	OrderStatusAccepted   = "accepted"
	OrderStatusAssembling = "assembling"
	OrderStatusShipped    = "shipped"
	OrderStatusDelivered  = "delivered"
	OrderStatusCancelled  = "cancelled"
)

// Order pedido creado en el checkout a partir de las líneas del carrito.
// El stock NO se descuenta aquí: ya fue reservado al añadir al carrito;
// el checkout solo consume esa reserva. Cancelar devuelve el stock.
type Order struct {
	ID              string
	UserID          string
	Status          string
	TotalPrice      decimal.Decimal
	ShippingAddress string
	Phone           string
	CreatedAt       time.Time
}

// OrderItem línea de pedido, copia de la línea del carrito en el checkout.
type OrderItem struct {
	ID        string
	OrderID   string
	ProductID string
	Quantity  int64
	Price     decimal.Decimal // snapshot heredado de la línea del carrito
	Image     string
}
