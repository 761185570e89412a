package repository

import "github.com/jhoicas/tienda-api/internal/domain/entity"

// FavoriteRepository define el puerto de persistencia para Favorite.
type FavoriteRepository interface {
	Create(favorite *entity.Favorite) error
	GetByUserAndProduct(userID, productID string) (*entity.Favorite, error)
	ListDetailByUser(userID string) ([]*entity.FavoriteDetail, error)
	Delete(userID, productID string) error
}
