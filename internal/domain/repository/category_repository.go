package repository

import "github.com/jhoicas/tienda-api/internal/domain/entity"

// CategoryRepository define el puerto de persistencia para Category.
type CategoryRepository interface {
	GetByID(id string) (*entity.Category, error)
	List() ([]*entity.Category, error)
}
