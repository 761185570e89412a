package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/tienda-api/internal/domain"
	"github.com/jhoicas/tienda-api/internal/domain/entity"
	"github.com/jhoicas/tienda-api/internal/domain/repository"
)

var _ repository.OrderRepository = (*OrderRepo)(nil)

const orderColumns = `id, user_id, status, total_price, shipping_address, phone, created_at`

// OrderRepo implementación de OrderRepository sobre PostgreSQL (usable con pool o tx).
type OrderRepo struct {
	q Querier
}

// NewOrderRepository construye el adaptador de pedidos. Pasar pool o tx (Querier).
func NewOrderRepository(q Querier) *OrderRepo {
	return &OrderRepo{q: q}
}

// Create persiste el pedido y sus líneas (llamar dentro de una tx).
func (r *OrderRepo) Create(order *entity.Order, items []*entity.OrderItem) error {
	query := `
		INSERT INTO orders (id, user_id, status, total_price, shipping_address, phone, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`
	_, err := r.q.Exec(context.Background(), query,
		order.ID, order.UserID, order.Status, order.TotalPrice,
		order.ShippingAddress, order.Phone, order.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert order: %w", err)
	}
	for _, it := range items {
		_, err := r.q.Exec(context.Background(),
			`INSERT INTO order_items (id, order_id, product_id, quantity, price, image)
			 VALUES ($1, $2, $3, $4, $5, $6)`,
			it.ID, it.OrderID, it.ProductID, it.Quantity, it.Price, it.Image,
		)
		if err != nil {
			return fmt.Errorf("insert order item: %w", err)
		}
	}
	return nil
}

// GetByID obtiene un pedido por ID (nil si no existe).
func (r *OrderRepo) GetByID(id string) (*entity.Order, error) {
	query := `SELECT ` + orderColumns + ` FROM orders WHERE id = $1`
	var o entity.Order
	err := r.q.QueryRow(context.Background(), query, id).Scan(
		&o.ID, &o.UserID, &o.Status, &o.TotalPrice, &o.ShippingAddress, &o.Phone, &o.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get order: %w", err)
	}
	return &o, nil
}

// GetByIDForUpdate obtiene un pedido y bloquea su fila (SELECT FOR UPDATE) hasta
// el commit de la transacción del Querier.
func (r *OrderRepo) GetByIDForUpdate(id string) (*entity.Order, error) {
	query := `SELECT ` + orderColumns + ` FROM orders WHERE id = $1 FOR UPDATE`
	var o entity.Order
	err := r.q.QueryRow(context.Background(), query, id).Scan(
		&o.ID, &o.UserID, &o.Status, &o.TotalPrice, &o.ShippingAddress, &o.Phone, &o.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get order for update: %w", err)
	}
	return &o, nil
}

// ListItems lista las líneas de un pedido.
func (r *OrderRepo) ListItems(orderID string) ([]*entity.OrderItem, error) {
	query := `SELECT id, order_id, product_id, quantity, price, image FROM order_items WHERE order_id = $1`
	rows, err := r.q.Query(context.Background(), query, orderID)
	if err != nil {
		return nil, fmt.Errorf("list order items: %w", err)
	}
	defer rows.Close()
	var list []*entity.OrderItem
	for rows.Next() {
		var it entity.OrderItem
		if err := rows.Scan(&it.ID, &it.OrderID, &it.ProductID, &it.Quantity, &it.Price, &it.Image); err != nil {
			return nil, fmt.Errorf("scan order item: %w", err)
		}
		list = append(list, &it)
	}
	return list, rows.Err()
}

// ListByUser lista los pedidos de un usuario, más recientes primero.
func (r *OrderRepo) ListByUser(userID string) ([]*entity.Order, error) {
	query := `SELECT ` + orderColumns + ` FROM orders WHERE user_id = $1 ORDER BY created_at DESC`
	rows, err := r.q.Query(context.Background(), query, userID)
	if err != nil {
		return nil, fmt.Errorf("list orders: %w", err)
	}
	defer rows.Close()
	return scanOrders(rows)
}

// List lista todos los pedidos con paginación (admin); devuelve el total.
func (r *OrderRepo) List(limit, offset int) ([]*entity.Order, int, error) {
	query := `SELECT ` + orderColumns + ` FROM orders ORDER BY created_at DESC LIMIT $1 OFFSET $2`
	rows, err := r.q.Query(context.Background(), query, limit, offset)
	if err != nil {
		return nil, 0, fmt.Errorf("list orders: %w", err)
	}
	defer rows.Close()
	list, err := scanOrders(rows)
	if err != nil {
		return nil, 0, err
	}
	var total int
	if err := r.q.QueryRow(context.Background(), `SELECT count(*) FROM orders`).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count orders: %w", err)
	}
	return list, total, nil
}

// UpdateStatus cambia el estado de un pedido condicionado al estado actual.
// Si la fila ya no está en from (otra transacción llegó antes) no se toca nada
// y se devuelve ErrConflict.
func (r *OrderRepo) UpdateStatus(id, from, to string) error {
	tag, err := r.q.Exec(context.Background(),
		`UPDATE orders SET status = $3 WHERE id = $1 AND status = $2`, id, from, to)
	if err != nil {
		return fmt.Errorf("update order status: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrConflict
	}
	return nil
}

func scanOrders(rows pgx.Rows) ([]*entity.Order, error) {
	var list []*entity.Order
	for rows.Next() {
		var o entity.Order
		if err := rows.Scan(&o.ID, &o.UserID, &o.Status, &o.TotalPrice, &o.ShippingAddress, &o.Phone, &o.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan order: %w", err)
		}
		list = append(list, &o)
	}
	return list, rows.Err()
}
