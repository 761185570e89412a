package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Product representa un producto del catálogo.
// Stock es el número de unidades disponibles para compra: las reservas del carrito
// lo decrementan y las liberaciones lo restauran, siempre bajo bloqueo de fila.
type Product struct {
	ID          string
	CategoryID  string
	Name        string
	Description string
	Price       decimal.Decimal // precio de venta vigente
	Stock       int64           // unidades disponibles (nunca negativo)
	Image       string          // ruta en el almacenamiento de objetos (gestionado fuera)
	Height      decimal.Decimal
	Width       decimal.Decimal
	Length      decimal.Decimal
	BurnTime    decimal.Decimal // horas de combustión (velas)
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// ProductStock vista mínima de la fila de stock de un producto, usada por el
// libro de stock dentro de transacciones (SELECT FOR UPDATE).
type ProductStock struct {
	ProductID string
	Stock     int64
	UpdatedAt time.Time
}
