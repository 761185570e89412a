package cart

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/tienda-api/internal/application/dto"
	"github.com/jhoicas/tienda-api/internal/application/stock"
	"github.com/jhoicas/tienda-api/internal/domain"
	"github.com/jhoicas/tienda-api/internal/domain/entity"
	"github.com/jhoicas/tienda-api/internal/domain/repository"
)

// UseCase orquesta las mutaciones del carrito junto con el libro de stock para
// que ambos queden consistentes: cada operación (add/update/remove) es una única
// transacción que reserva o libera stock, muta la línea y recalcula el total.
type UseCase struct {
	txRunner TxRunner
	ledger   *stock.Ledger
	cartRepo repository.CartRepository     // lecturas fuera de transacción
	itemRepo repository.CartItemRepository // lecturas fuera de transacción
}

// NewUseCase construye el caso de uso del carrito.
func NewUseCase(
	txRunner TxRunner,
	ledger *stock.Ledger,
	cartRepo repository.CartRepository,
	itemRepo repository.CartItemRepository,
) *UseCase {
	return &UseCase{
		txRunner: txRunner,
		ledger:   ledger,
		cartRepo: cartRepo,
		itemRepo: itemRepo,
	}
}

// GetCart devuelve el carrito del usuario con sus líneas y el producto de cada una.
// Solo lectura: si el usuario aún no tiene carrito se devuelve la representación
// vacía, sin crearlo.
func (uc *UseCase) GetCart(ctx context.Context, userID string) (*dto.CartResponse, error) {
	cart, err := uc.cartRepo.GetByUserID(userID)
	if err != nil {
		return nil, err
	}
	if cart == nil {
		return &dto.CartResponse{
			UserID:     userID,
			TotalPrice: decimal.Zero,
			Items:      []dto.CartItemResponse{},
		}, nil
	}
	details, err := uc.itemRepo.ListDetailByCart(cart.ID)
	if err != nil {
		return nil, err
	}
	out := &dto.CartResponse{
		ID:         cart.ID,
		UserID:     cart.UserID,
		TotalPrice: cart.TotalPrice,
		Items:      make([]dto.CartItemResponse, 0, len(details)),
	}
	for _, d := range details {
		out.Items = append(out.Items, dto.CartItemResponse{
			ID:           d.ID,
			ProductID:    d.ProductID,
			ProductName:  d.ProductName,
			Quantity:     d.Quantity,
			Price:        d.Price,
			ProductPrice: d.ProductPrice,
			Subtotal:     d.Subtotal(),
			Image:        d.Image,
			ReservedAt:   d.ReservedAt,
		})
	}
	return out, nil
}

// AddItem añade quantity unidades de un producto al carrito del usuario.
// Crea el carrito si no existe, reserva el stock en el libro y, si ya había una
// línea para ese producto, incrementa su cantidad conservando el precio snapshot
// del primer add; si no, crea la línea con el precio vigente del producto.
// Todo ocurre en una transacción: si la reserva falla no queda ningún efecto.
func (uc *UseCase) AddItem(ctx context.Context, userID, productID string, quantity int64) (*dto.CartItemResponse, error) {
	if quantity <= 0 {
		quantity = 1 // default de la API: añadir una unidad
	}
	var out *dto.CartItemResponse
	err := uc.txRunner.Run(ctx, func(
		carts repository.CartRepository,
		items repository.CartItemRepository,
		stocks repository.StockRepository,
		products repository.ProductRepository,
	) error {
		product, err := products.GetByID(productID)
		if err != nil {
			return err
		}
		if product == nil {
			return domain.ErrNotFound
		}
		cart, err := carts.GetOrCreate(userID)
		if err != nil {
			return err
		}
		// Reserva primero: bloquea la fila del producto hasta el commit, así dos
		// adds concurrentes sobre el mismo producto se resuelven uno tras otro.
		if err := uc.ledger.Reserve(stocks, productID, quantity); err != nil {
			return err
		}
		item, err := items.GetByCartAndProduct(cart.ID, productID)
		if err != nil {
			return err
		}
		now := time.Now()
		if item != nil {
			item.Quantity += quantity
			item.ReservedAt = now // el incremento renueva la reserva de toda la línea
			if err := items.UpdateQuantity(item.ID, item.Quantity); err != nil {
				return err
			}
		} else {
			item = &entity.CartItem{
				ID:         uuid.New().String(),
				CartID:     cart.ID,
				ProductID:  productID,
				Quantity:   quantity,
				Price:      product.Price, // snapshot: no se refresca en adds posteriores
				Image:      product.Image,
				ReservedAt: now,
			}
			if err := items.Create(item); err != nil {
				return err
			}
		}
		if err := recalculateTotal(carts, items, cart.ID); err != nil {
			return err
		}
		out = &dto.CartItemResponse{
			ID:         item.ID,
			ProductID:  item.ProductID,
			Quantity:   item.Quantity,
			Price:      item.Price,
			Subtotal:   item.Subtotal(),
			Image:      item.Image,
			ReservedAt: item.ReservedAt,
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// UpdateItemQuantity fija la cantidad de una línea del usuario y renueva su
// reserva. El delta contra la cantidad actual pasa por el libro de stock: un
// delta positivo puede fallar con ErrInsufficientStock y entonces nada cambia.
// La línea debe pertenecer al carrito del usuario; si no, se responde como no
// encontrada para no revelar líneas ajenas.
func (uc *UseCase) UpdateItemQuantity(ctx context.Context, userID, itemID string, quantity int64) error {
	if quantity < 1 {
		return domain.ErrInvalidInput
	}
	return uc.txRunner.Run(ctx, func(
		carts repository.CartRepository,
		items repository.CartItemRepository,
		stocks repository.StockRepository,
		_ repository.ProductRepository,
	) error {
		item, err := uc.ownedItem(carts, items, userID, itemID)
		if err != nil {
			return err
		}
		delta := quantity - item.Quantity
		if err := uc.ledger.AdjustReservation(stocks, item.ProductID, delta); err != nil {
			return err
		}
		if err := items.UpdateQuantity(item.ID, quantity); err != nil {
			return err
		}
		return recalculateTotal(carts, items, item.CartID)
	})
}

// RemoveItem elimina una línea del carrito del usuario devolviendo toda su
// cantidad al stock, en una sola transacción.
func (uc *UseCase) RemoveItem(ctx context.Context, userID, itemID string) error {
	return uc.txRunner.Run(ctx, func(
		carts repository.CartRepository,
		items repository.CartItemRepository,
		stocks repository.StockRepository,
		_ repository.ProductRepository,
	) error {
		item, err := uc.ownedItem(carts, items, userID, itemID)
		if err != nil {
			return err
		}
		if err := uc.ledger.Release(stocks, item.ProductID, item.Quantity); err != nil {
			return err
		}
		if err := items.Delete(item.ID); err != nil {
			return err
		}
		return recalculateTotal(carts, items, item.CartID)
	})
}

// ownedItem carga la línea del usuario dejando bloqueadas las filas del carrito
// y de la línea hasta el commit. El orden de bloqueo es carrito -> línea ->
// producto, el mismo que sigue AddItem (el upsert de GetOrCreate bloquea el
// carrito antes de reservar), de modo que las mutaciones sobre un mismo carrito
// se serializan y ninguna libera una reserva que otra ya devolvió.
// Una línea ajena se reporta como ErrNotFound.
func (uc *UseCase) ownedItem(
	carts repository.CartRepository,
	items repository.CartItemRepository,
	userID, itemID string,
) (*entity.CartItem, error) {
	item, err := items.GetByID(itemID)
	if err != nil {
		return nil, err
	}
	if item == nil {
		return nil, domain.ErrNotFound
	}
	cart, err := carts.GetByUserID(userID)
	if err != nil {
		return nil, err
	}
	if cart == nil || cart.ID != item.CartID {
		return nil, domain.ErrNotFound
	}
	if _, err := carts.GetForUpdate(cart.ID); err != nil {
		return nil, err
	}
	// Relectura bajo lock: otra transacción pudo consumir la línea entre la
	// lectura inicial y el bloqueo del carrito.
	item, err = items.GetByIDForUpdate(itemID)
	if err != nil {
		return nil, err
	}
	if item == nil || item.CartID != cart.ID {
		return nil, domain.ErrNotFound
	}
	return item, nil
}

// recalculateTotal relee las líneas del carrito dentro de la transacción actual
// y persiste la suma de quantity*price como total. Los llamantes ya tienen la
// fila del carrito bloqueada, así el total siempre sale del conjunto de líneas
// más reciente.
func recalculateTotal(
	carts repository.CartRepository,
	items repository.CartItemRepository,
	cartID string,
) error {
	lines, err := items.ListByCart(cartID)
	if err != nil {
		return err
	}
	total := decimal.Zero
	for _, line := range lines {
		total = total.Add(line.Subtotal())
	}
	return carts.UpdateTotal(cartID, total)
}
