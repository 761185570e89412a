package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CreateProductRequest entrada para crear un producto (solo admin).
type CreateProductRequest struct {
	Name        string           `json:"name" validate:"required,min=1,max=255"`
	Description string           `json:"description"`
	Price       decimal.Decimal  `json:"price"`
	CategoryID  string           `json:"category_id" validate:"required,uuid"`
	Image       string           `json:"image"`
	Height      *decimal.Decimal `json:"height,omitempty"`
	Width       *decimal.Decimal `json:"width,omitempty"`
	Length      *decimal.Decimal `json:"length,omitempty"`
	BurnTime    *decimal.Decimal `json:"burn_time,omitempty"`
	Stock       int64            `json:"stock" validate:"min=0"`
}

// UpdateProductRequest entrada para actualizar un producto (solo admin).
// Stock aquí es un ajuste administrativo del catálogo, no una reserva.
type UpdateProductRequest struct {
	Name        *string          `json:"name" validate:"omitempty,min=1,max=255"`
	Description *string          `json:"description"`
	Price       *decimal.Decimal `json:"price"`
	CategoryID  *string          `json:"category_id" validate:"omitempty,uuid"`
	Image       *string          `json:"image"`
	Height      *decimal.Decimal `json:"height,omitempty"`
	Width       *decimal.Decimal `json:"width,omitempty"`
	Length      *decimal.Decimal `json:"length,omitempty"`
	BurnTime    *decimal.Decimal `json:"burn_time,omitempty"`
	Stock       *int64           `json:"stock" validate:"omitempty,min=0"`
}

// ProductResponse salida de un producto.
type ProductResponse struct {
	ID          string          `json:"id"`
	CategoryID  string          `json:"category_id"`
	Name        string          `json:"name"`
	Description string          `json:"description"`
	Price       decimal.Decimal `json:"price"`
	Stock       int64           `json:"stock"`
	Image       string          `json:"image,omitempty"`
	Height      decimal.Decimal `json:"height"`
	Width       decimal.Decimal `json:"width"`
	Length      decimal.Decimal `json:"length"`
	BurnTime    decimal.Decimal `json:"burn_time"`
	CreatedAt   time.Time       `json:"created_at"`
	UpdatedAt   time.Time       `json:"updated_at"`
}

// ProductListResponse lista paginada de productos.
type ProductListResponse struct {
	Items []ProductResponse `json:"items"`
	Page  PageResponse      `json:"page"`
}

// CategoryResponse salida de una categoría.
type CategoryResponse struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}
