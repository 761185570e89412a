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

var _ repository.FavoriteRepository = (*FavoriteRepo)(nil)

// FavoriteRepo implementación de FavoriteRepository sobre PostgreSQL.
type FavoriteRepo struct {
	q Querier
}

// NewFavoriteRepository construye el adaptador de favoritos. Pasar pool o tx (Querier).
func NewFavoriteRepository(q Querier) *FavoriteRepo {
	return &FavoriteRepo{q: q}
}

// Create persiste un favorito. ErrDuplicate si ya existe para ese usuario+producto.
func (r *FavoriteRepo) Create(favorite *entity.Favorite) error {
	query := `
		INSERT INTO favorites (id, user_id, product_id, image, created_at)
		VALUES ($1, $2, $3, $4, $5)`
	_, err := r.q.Exec(context.Background(), query,
		favorite.ID, favorite.UserID, favorite.ProductID, favorite.Image, favorite.CreatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert favorite: %w", err)
	}
	return nil
}

// GetByUserAndProduct obtiene el favorito de un usuario para un producto (nil si no hay).
func (r *FavoriteRepo) GetByUserAndProduct(userID, productID string) (*entity.Favorite, error) {
	query := `SELECT id, user_id, product_id, image, created_at FROM favorites WHERE user_id = $1 AND product_id = $2`
	var f entity.Favorite
	err := r.q.QueryRow(context.Background(), query, userID, productID).Scan(
		&f.ID, &f.UserID, &f.ProductID, &f.Image, &f.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get favorite: %w", err)
	}
	return &f, nil
}

// ListDetailByUser lista los favoritos del usuario con el producto de cada uno.
func (r *FavoriteRepo) ListDetailByUser(userID string) ([]*entity.FavoriteDetail, error) {
	query := `
		SELECT f.id, f.user_id, f.product_id, f.image, f.created_at,
		       p.id, p.category_id, p.name, p.description, p.price, p.stock, p.image,
		       p.height, p.width, p.length, p.burn_time, p.created_at, p.updated_at
		FROM favorites f
		JOIN products p ON p.id = f.product_id
		WHERE f.user_id = $1
		ORDER BY f.created_at DESC`
	rows, err := r.q.Query(context.Background(), query, userID)
	if err != nil {
		return nil, fmt.Errorf("list favorites: %w", err)
	}
	defer rows.Close()
	var list []*entity.FavoriteDetail
	for rows.Next() {
		var d entity.FavoriteDetail
		if err := rows.Scan(
			&d.ID, &d.UserID, &d.ProductID, &d.Image, &d.CreatedAt,
			&d.Product.ID, &d.Product.CategoryID, &d.Product.Name, &d.Product.Description,
			&d.Product.Price, &d.Product.Stock, &d.Product.Image,
			&d.Product.Height, &d.Product.Width, &d.Product.Length, &d.Product.BurnTime,
			&d.Product.CreatedAt, &d.Product.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan favorite: %w", err)
		}
		list = append(list, &d)
	}
	return list, rows.Err()
}

// Delete elimina el favorito de un usuario para un producto.
func (r *FavoriteRepo) Delete(userID, productID string) error {
	_, err := r.q.Exec(context.Background(),
		`DELETE FROM favorites WHERE user_id = $1 AND product_id = $2`, userID, productID)
	if err != nil {
		return fmt.Errorf("delete favorite: %w", err)
	}
	return nil
}
