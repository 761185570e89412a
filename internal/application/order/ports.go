package order

import (
	"context"

	"github.com/jhoicas/tienda-api/internal/domain/repository"
)

// TxRunner transacción para checkout y cancelación: necesita, además de los repos
// del carrito y el stock, el repositorio de pedidos atado a la misma tx.
type TxRunner interface {
	RunOrder(ctx context.Context, fn func(
		cartRepo repository.CartRepository,
		itemRepo repository.CartItemRepository,
		stockRepo repository.StockRepository,
		orderRepo repository.OrderRepository,
	) error) error
}
