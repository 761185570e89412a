package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/tienda-api/internal/domain"
	"github.com/jhoicas/tienda-api/internal/domain/entity"
	"github.com/jhoicas/tienda-api/internal/domain/repository"
)

var _ repository.CartRepository = (*CartRepo)(nil)

// CartRepo implementación de CartRepository sobre PostgreSQL (usable con pool o tx).
type CartRepo struct {
	q Querier
}

// NewCartRepository construye el adaptador de carritos. Pasar pool o tx (Querier).
func NewCartRepository(q Querier) *CartRepo {
	return &CartRepo{q: q}
}

// GetByUserID obtiene el carrito del usuario (nil si aún no tiene).
func (r *CartRepo) GetByUserID(userID string) (*entity.Cart, error) {
	query := `SELECT id, user_id, total_price, created_at, updated_at FROM carts WHERE user_id = $1`
	var c entity.Cart
	err := r.q.QueryRow(context.Background(), query, userID).Scan(
		&c.ID, &c.UserID, &c.TotalPrice, &c.CreatedAt, &c.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get cart: %w", err)
	}
	return &c, nil
}

// GetOrCreate devuelve el carrito del usuario, creándolo si no existe.
// El upsert sobre el unique de user_id hace la creación segura frente a dos
// primeros adds concurrentes del mismo usuario.
func (r *CartRepo) GetOrCreate(userID string) (*entity.Cart, error) {
	query := `
		INSERT INTO carts (id, user_id, total_price, created_at, updated_at)
		VALUES ($1, $2, 0, now(), now())
		ON CONFLICT (user_id) DO UPDATE SET updated_at = now()
		RETURNING id, user_id, total_price, created_at, updated_at`
	var c entity.Cart
	err := r.q.QueryRow(context.Background(), query, uuid.New().String(), userID).Scan(
		&c.ID, &c.UserID, &c.TotalPrice, &c.CreatedAt, &c.UpdatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("get or create cart: %w", err)
	}
	return &c, nil
}

// GetForUpdate obtiene el carrito y bloquea su fila (SELECT FOR UPDATE) hasta el
// commit de la transacción del Querier.
func (r *CartRepo) GetForUpdate(cartID string) (*entity.Cart, error) {
	query := `SELECT id, user_id, total_price, created_at, updated_at FROM carts WHERE id = $1 FOR UPDATE`
	var c entity.Cart
	err := r.q.QueryRow(context.Background(), query, cartID).Scan(
		&c.ID, &c.UserID, &c.TotalPrice, &c.CreatedAt, &c.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get cart for update: %w", err)
	}
	return &c, nil
}

// UpdateTotal persiste el total recalculado del carrito.
func (r *CartRepo) UpdateTotal(cartID string, total decimal.Decimal) error {
	_, err := r.q.Exec(context.Background(),
		`UPDATE carts SET total_price = $2, updated_at = now() WHERE id = $1`,
		cartID, total,
	)
	if err != nil {
		return fmt.Errorf("update cart total: %w", err)
	}
	return nil
}

var _ repository.CartItemRepository = (*CartItemRepo)(nil)

const cartItemColumns = `id, cart_id, product_id, quantity, price, image, reserved_at`

// CartItemRepo implementación de CartItemRepository sobre PostgreSQL (usable con pool o tx).
type CartItemRepo struct {
	q Querier
}

// NewCartItemRepository construye el adaptador de líneas de carrito. Pasar pool o tx (Querier).
func NewCartItemRepository(q Querier) *CartItemRepo {
	return &CartItemRepo{q: q}
}

// GetByID obtiene una línea por ID (nil si no existe).
func (r *CartItemRepo) GetByID(id string) (*entity.CartItem, error) {
	query := `SELECT ` + cartItemColumns + ` FROM cart_items WHERE id = $1`
	return r.scanOne(r.q.QueryRow(context.Background(), query, id))
}

// GetByIDForUpdate obtiene una línea y bloquea su fila (SELECT FOR UPDATE) hasta
// el commit de la transacción del Querier.
func (r *CartItemRepo) GetByIDForUpdate(id string) (*entity.CartItem, error) {
	query := `SELECT ` + cartItemColumns + ` FROM cart_items WHERE id = $1 FOR UPDATE`
	return r.scanOne(r.q.QueryRow(context.Background(), query, id))
}

// GetByCartAndProduct obtiene la línea de un producto en un carrito (nil si no hay).
func (r *CartItemRepo) GetByCartAndProduct(cartID, productID string) (*entity.CartItem, error) {
	query := `SELECT ` + cartItemColumns + ` FROM cart_items WHERE cart_id = $1 AND product_id = $2`
	return r.scanOne(r.q.QueryRow(context.Background(), query, cartID, productID))
}

// ListByCart lista las líneas de un carrito.
func (r *CartItemRepo) ListByCart(cartID string) ([]*entity.CartItem, error) {
	query := `SELECT ` + cartItemColumns + ` FROM cart_items WHERE cart_id = $1 ORDER BY reserved_at`
	rows, err := r.q.Query(context.Background(), query, cartID)
	if err != nil {
		return nil, fmt.Errorf("list cart items: %w", err)
	}
	defer rows.Close()
	var list []*entity.CartItem
	for rows.Next() {
		var it entity.CartItem
		if err := rows.Scan(&it.ID, &it.CartID, &it.ProductID, &it.Quantity, &it.Price, &it.Image, &it.ReservedAt); err != nil {
			return nil, fmt.Errorf("scan cart item: %w", err)
		}
		list = append(list, &it)
	}
	return list, rows.Err()
}

// ListDetailByCart lista las líneas de un carrito con el producto de cada una (join).
func (r *CartItemRepo) ListDetailByCart(cartID string) ([]*entity.CartItemDetail, error) {
	query := `
		SELECT i.id, i.cart_id, i.product_id, i.quantity, i.price, i.image, i.reserved_at,
		       p.name, p.price, p.image
		FROM cart_items i
		JOIN products p ON p.id = i.product_id
		WHERE i.cart_id = $1
		ORDER BY i.reserved_at`
	rows, err := r.q.Query(context.Background(), query, cartID)
	if err != nil {
		return nil, fmt.Errorf("list cart detail: %w", err)
	}
	defer rows.Close()
	var list []*entity.CartItemDetail
	for rows.Next() {
		var d entity.CartItemDetail
		if err := rows.Scan(
			&d.ID, &d.CartID, &d.ProductID, &d.Quantity, &d.Price, &d.Image, &d.ReservedAt,
			&d.ProductName, &d.ProductPrice, &d.ProductImage,
		); err != nil {
			return nil, fmt.Errorf("scan cart detail: %w", err)
		}
		list = append(list, &d)
	}
	return list, rows.Err()
}

// Create persiste una línea nueva.
func (r *CartItemRepo) Create(item *entity.CartItem) error {
	query := `
		INSERT INTO cart_items (id, cart_id, product_id, quantity, price, image, reserved_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`
	_, err := r.q.Exec(context.Background(), query,
		item.ID, item.CartID, item.ProductID, item.Quantity, item.Price, item.Image, item.ReservedAt,
	)
	if err != nil {
		return fmt.Errorf("insert cart item: %w", err)
	}
	return nil
}

// UpdateQuantity fija la cantidad de una línea y renueva su reserva.
func (r *CartItemRepo) UpdateQuantity(id string, quantity int64) error {
	_, err := r.q.Exec(context.Background(),
		`UPDATE cart_items SET quantity = $2, reserved_at = now() WHERE id = $1`,
		id, quantity,
	)
	if err != nil {
		return fmt.Errorf("update cart item quantity: %w", err)
	}
	return nil
}

// Delete elimina una línea por ID. ErrNotFound si ya no existe: el llamante
// libera stock en la misma transacción y el borrado debe respaldar esa liberación.
func (r *CartItemRepo) Delete(id string) error {
	tag, err := r.q.Exec(context.Background(), `DELETE FROM cart_items WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete cart item: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// ListExpired lista líneas con reserva anterior a olderThan (para el barrido).
func (r *CartItemRepo) ListExpired(olderThan time.Time, limit int) ([]*entity.CartItem, error) {
	query := `SELECT ` + cartItemColumns + ` FROM cart_items WHERE reserved_at < $1 ORDER BY reserved_at LIMIT $2`
	rows, err := r.q.Query(context.Background(), query, olderThan, limit)
	if err != nil {
		return nil, fmt.Errorf("list expired cart items: %w", err)
	}
	defer rows.Close()
	var list []*entity.CartItem
	for rows.Next() {
		var it entity.CartItem
		if err := rows.Scan(&it.ID, &it.CartID, &it.ProductID, &it.Quantity, &it.Price, &it.Image, &it.ReservedAt); err != nil {
			return nil, fmt.Errorf("scan expired cart item: %w", err)
		}
		list = append(list, &it)
	}
	return list, rows.Err()
}

// DeleteByCart vacía todas las líneas de un carrito (checkout).
func (r *CartItemRepo) DeleteByCart(cartID string) error {
	_, err := r.q.Exec(context.Background(), `DELETE FROM cart_items WHERE cart_id = $1`, cartID)
	if err != nil {
		return fmt.Errorf("delete cart items: %w", err)
	}
	return nil
}

func (r *CartItemRepo) scanOne(row pgx.Row) (*entity.CartItem, error) {
	var it entity.CartItem
	err := row.Scan(&it.ID, &it.CartID, &it.ProductID, &it.Quantity, &it.Price, &it.Image, &it.ReservedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get cart item: %w", err)
	}
	return &it, nil
}
