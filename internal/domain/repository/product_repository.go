package repository

import "github.com/jhoicas/tienda-api/internal/domain/entity"

// ProductRepository define el puerto de persistencia para Product (DIP).
// Stock NO se modifica por aquí: todo cambio de stock pasa por StockRepository
// bajo transacción, salvo el alta/edición administrativa del catálogo.
type ProductRepository interface {
	Create(product *entity.Product) error
	GetByID(id string) (*entity.Product, error)
	Update(product *entity.Product) error
	List(limit, offset int, sort string) ([]*entity.Product, int, error)
	Delete(id string) error
}
