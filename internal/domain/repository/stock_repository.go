package repository

import "github.com/jhoicas/tienda-api/internal/domain/entity"

// StockRepository define el puerto para consultar/actualizar el stock de un producto.
// Usado dentro de transacciones para garantizar consistencia: GetForUpdate bloquea
// la fila del producto (SELECT FOR UPDATE) hasta el commit de la transacción.
type StockRepository interface {
	Get(productID string) (*entity.ProductStock, error)
	GetForUpdate(productID string) (*entity.ProductStock, error)
	SetStock(productID string, stock int64) error
}
