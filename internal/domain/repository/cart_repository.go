package repository

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/tienda-api/internal/domain/entity"
)

// CartRepository define el puerto de persistencia para Cart.
// GetOrCreate es el único camino de creación: el carrito se crea de forma
// perezosa en el primer add, nunca como efecto colateral de una lectura.
type CartRepository interface {
	GetByUserID(userID string) (*entity.Cart, error)
	GetOrCreate(userID string) (*entity.Cart, error)
	// GetForUpdate bloquea la fila del carrito hasta el commit de la transacción
	// actual, para que las mutaciones y el recálculo del total se serialicen.
	GetForUpdate(cartID string) (*entity.Cart, error)
	UpdateTotal(cartID string, total decimal.Decimal) error
}

// CartItemRepository define el puerto de persistencia para las líneas del carrito.
type CartItemRepository interface {
	GetByID(id string) (*entity.CartItem, error)
	// GetByIDForUpdate bloquea la línea hasta el commit de la transacción actual.
	GetByIDForUpdate(id string) (*entity.CartItem, error)
	GetByCartAndProduct(cartID, productID string) (*entity.CartItem, error)
	ListByCart(cartID string) ([]*entity.CartItem, error)
	ListDetailByCart(cartID string) ([]*entity.CartItemDetail, error)
	Create(item *entity.CartItem) error
	// UpdateQuantity fija la cantidad y renueva reserved_at de la línea.
	UpdateQuantity(id string, quantity int64) error
	// Delete devuelve ErrNotFound si la línea ya no existe, para que una
	// liberación de stock nunca se persista sin el borrado que la justifica.
	Delete(id string) error
	// ListExpired devuelve líneas cuya reserva es anterior a olderThan,
	// para el barrido periódico de reservas vencidas.
	ListExpired(olderThan time.Time, limit int) ([]*entity.CartItem, error)
	DeleteByCart(cartID string) error
}
