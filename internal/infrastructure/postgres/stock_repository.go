package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/tienda-api/internal/domain/entity"
	"github.com/jhoicas/tienda-api/internal/domain/repository"
)

var _ repository.StockRepository = (*StockRepo)(nil)

// StockRepo implementación de StockRepository sobre la columna stock de products
// (usable con pool o tx).
type StockRepo struct {
	q Querier
}

// NewStockRepository construye el adaptador de stock. Pasar pool o tx (Querier).
func NewStockRepository(q Querier) *StockRepo {
	return &StockRepo{q: q}
}

// Get obtiene el stock actual de un producto (nil si el producto no existe).
func (r *StockRepo) Get(productID string) (*entity.ProductStock, error) {
	query := `SELECT id, stock, updated_at FROM products WHERE id = $1`
	var s entity.ProductStock
	err := r.q.QueryRow(context.Background(), query, productID).Scan(&s.ProductID, &s.Stock, &s.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get stock: %w", err)
	}
	return &s, nil
}

// GetForUpdate obtiene el stock y bloquea la fila del producto (SELECT FOR UPDATE)
// hasta el commit de la transacción del Querier.
func (r *StockRepo) GetForUpdate(productID string) (*entity.ProductStock, error) {
	query := `SELECT id, stock, updated_at FROM products WHERE id = $1 FOR UPDATE`
	var s entity.ProductStock
	err := r.q.QueryRow(context.Background(), query, productID).Scan(&s.ProductID, &s.Stock, &s.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get stock for update: %w", err)
	}
	return &s, nil
}

// SetStock fija el stock disponible del producto.
func (r *StockRepo) SetStock(productID string, stock int64) error {
	_, err := r.q.Exec(context.Background(),
		`UPDATE products SET stock = $2, updated_at = now() WHERE id = $1`,
		productID, stock,
	)
	if err != nil {
		return fmt.Errorf("set stock: %w", err)
	}
	return nil
}
