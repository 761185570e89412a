package repository

import "github.com/jhoicas/tienda-api/internal/domain/entity"

// OrderRepository define el puerto de persistencia para Order y sus líneas.
type OrderRepository interface {
	Create(order *entity.Order, items []*entity.OrderItem) error
	GetByID(id string) (*entity.Order, error)
	// GetByIDForUpdate bloquea la fila del pedido hasta el commit de la
	// transacción actual (cancelación: el estado y la devolución de stock
	// deben decidirse sobre la fila bloqueada).
	GetByIDForUpdate(id string) (*entity.Order, error)
	ListItems(orderID string) ([]*entity.OrderItem, error)
	ListByUser(userID string) ([]*entity.Order, error)
	List(limit, offset int) ([]*entity.Order, int, error)
	// UpdateStatus cambia el estado solo si el actual sigue siendo from;
	// devuelve ErrConflict si otra transacción lo cambió antes.
	UpdateStatus(id, from, to string) error
}
