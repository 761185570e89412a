package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CheckoutRequest body para POST /api/orders (crea el pedido desde el carrito).
type CheckoutRequest struct {
	ShippingAddress string `json:"shipping_address" validate:"required,max=255"`
	Phone           string `json:"phone" validate:"required"`
}

// UpdateOrderStatusRequest body para PATCH /api/admin/orders/:id/status.
type UpdateOrderStatusRequest struct {
	Status string `json:"status" validate:"required,oneof=accepted assembling shipped delivered cancelled"`
}

// OrderItemResponse línea de un pedido.
type OrderItemResponse struct {
	ID        string          `json:"id"`
	ProductID string          `json:"product_id"`
	Quantity  int64           `json:"quantity"`
	Price     decimal.Decimal `json:"price"`
	Image     string          `json:"image,omitempty"`
}

// OrderResponse salida de un pedido.
type OrderResponse struct {
	ID              string              `json:"id"`
	UserID          string              `json:"user_id"`
	Status          string              `json:"status"`
	TotalPrice      decimal.Decimal     `json:"total_price"`
	ShippingAddress string              `json:"shipping_address"`
	Phone           string              `json:"phone"`
	Items           []OrderItemResponse `json:"items,omitempty"`
	CreatedAt       time.Time           `json:"created_at"`
}

// OrderListResponse lista paginada de pedidos (admin).
type OrderListResponse struct {
	Items []OrderResponse `json:"items"`
	Page  PageResponse    `json:"page"`
}
