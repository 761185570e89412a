package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// AddCartItemRequest body para POST /api/cart/items. Quantity opcional (default 1).
type AddCartItemRequest struct {
	ProductID string `json:"product_id" validate:"required,uuid"`
	Quantity  int64  `json:"quantity" validate:"omitempty,min=1"`
}

// UpdateCartItemRequest body para PUT /api/cart/items/:id.
type UpdateCartItemRequest struct {
	Quantity int64 `json:"quantity" validate:"required,min=1"`
}

// CartItemResponse salida de una línea del carrito.
// Price es el snapshot tomado en el primer add; ProductPrice el precio vigente.
type CartItemResponse struct {
	ID           string          `json:"id"`
	ProductID    string          `json:"product_id"`
	ProductName  string          `json:"product_name,omitempty"`
	Quantity     int64           `json:"quantity"`
	Price        decimal.Decimal `json:"price"`
	ProductPrice decimal.Decimal `json:"product_price,omitempty"`
	Subtotal     decimal.Decimal `json:"subtotal"`
	Image        string          `json:"image,omitempty"`
	ReservedAt   time.Time       `json:"reserved_at"`
}

// CartResponse salida del carrito completo. Para un usuario sin carrito se
// devuelve Items vacío y total cero (el carrito no se crea en la lectura).
type CartResponse struct {
	ID         string             `json:"id,omitempty"`
	UserID     string             `json:"user_id"`
	TotalPrice decimal.Decimal    `json:"total_price"`
	Items      []CartItemResponse `json:"items"`
}
