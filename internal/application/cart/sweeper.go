package cart

import (
	"context"
	"errors"
	"time"

	"github.com/jhoicas/tienda-api/internal/domain"
	"github.com/jhoicas/tienda-api/internal/domain/repository"
)

// sweepBatchSize máximo de líneas vencidas procesadas por pasada.
const sweepBatchSize = 200

// ReleaseExpired libera las reservas cuya edad supera ttl: por cada línea vencida
// devuelve su cantidad al libro de stock, borra la línea y recalcula el total del
// carrito, cada una en su propia transacción. Devuelve cuántas líneas liberó.
//
// La enumeración se hace fuera de transacción; dentro de cada transacción se
// bloquean el carrito y la línea (mismo orden que las mutaciones del carrito) y
// la línea se relee bajo lock, de modo que una línea ya consumida o renovada por
// un checkout, un remove o un add concurrente simplemente se salta.
func (uc *UseCase) ReleaseExpired(ctx context.Context, ttl time.Duration) (int, error) {
	cutoff := time.Now().Add(-ttl)
	expired, err := uc.itemRepo.ListExpired(cutoff, sweepBatchSize)
	if err != nil {
		return 0, err
	}
	released := 0
	for _, candidate := range expired {
		if err := ctx.Err(); err != nil {
			return released, err
		}
		err := uc.txRunner.Run(ctx, func(
			carts repository.CartRepository,
			items repository.CartItemRepository,
			stocks repository.StockRepository,
			_ repository.ProductRepository,
		) error {
			cart, err := carts.GetForUpdate(candidate.CartID)
			if err != nil {
				return err
			}
			if cart == nil {
				return domain.ErrNotFound
			}
			item, err := items.GetByIDForUpdate(candidate.ID)
			if err != nil {
				return err
			}
			if item == nil || item.ReservedAt.After(cutoff) {
				// Ya liberada, consumida o renovada por otra transacción.
				return domain.ErrNotFound
			}
			if err := uc.ledger.Release(stocks, item.ProductID, item.Quantity); err != nil {
				return err
			}
			if err := items.Delete(item.ID); err != nil {
				return err
			}
			return recalculateTotal(carts, items, item.CartID)
		})
		if errors.Is(err, domain.ErrNotFound) {
			continue
		}
		if err != nil {
			return released, err
		}
		released++
	}
	return released, nil
}
