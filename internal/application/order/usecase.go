package order

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

// validTransitions transiciones de estado permitidas para un pedido (admin).
// La cancelación tiene su propio camino (Cancel) porque devuelve stock.
var validTransitions = map[string][]string{
	entity.OrderStatusAccepted:   {entity.OrderStatusAssembling},
	entity.OrderStatusAssembling: {entity.OrderStatusShipped},
	entity.OrderStatusShipped:    {entity.OrderStatusDelivered},
}

// UseCase casos de uso de pedidos: checkout desde el carrito, consulta,
// cancelación por el dueño y avance de estado por el admin.
type UseCase struct {
	txRunner  TxRunner
	ledger    *stock.Ledger
	orderRepo repository.OrderRepository // lecturas fuera de transacción
}

// NewUseCase construye el caso de uso de pedidos.
func NewUseCase(txRunner TxRunner, ledger *stock.Ledger, orderRepo repository.OrderRepository) *UseCase {
	return &UseCase{txRunner: txRunner, ledger: ledger, orderRepo: orderRepo}
}

// Checkout convierte el carrito del usuario en un pedido: copia las líneas con su
// precio snapshot, vacía el carrito y resetea su total, todo en una transacción.
// El stock NO se toca: las unidades ya fueron descontadas al reservar en el
// carrito, y el checkout consume esa reserva.
func (uc *UseCase) Checkout(ctx context.Context, userID string, in dto.CheckoutRequest) (*dto.OrderResponse, error) {
	if in.ShippingAddress == "" || in.Phone == "" {
		return nil, domain.ErrInvalidInput
	}
	var out *dto.OrderResponse
	err := uc.txRunner.RunOrder(ctx, func(
		carts repository.CartRepository,
		items repository.CartItemRepository,
		_ repository.StockRepository,
		orders repository.OrderRepository,
	) error {
		cart, err := carts.GetByUserID(userID)
		if err != nil {
			return err
		}
		if cart == nil {
			return domain.ErrEmptyCart
		}
		lines, err := items.ListByCart(cart.ID)
		if err != nil {
			return err
		}
		if len(lines) == 0 {
			return domain.ErrEmptyCart
		}
		now := time.Now()
		ord := &entity.Order{
			ID:              uuid.New().String(),
			UserID:          userID,
			Status:          entity.OrderStatusAccepted,
			TotalPrice:      cart.TotalPrice,
			ShippingAddress: in.ShippingAddress,
			Phone:           in.Phone,
			CreatedAt:       now,
		}
		orderItems := make([]*entity.OrderItem, 0, len(lines))
		for _, line := range lines {
			orderItems = append(orderItems, &entity.OrderItem{
				ID:        uuid.New().String(),
				OrderID:   ord.ID,
				ProductID: line.ProductID,
				Quantity:  line.Quantity,
				Price:     line.Price,
				Image:     line.Image,
			})
		}
		if err := orders.Create(ord, orderItems); err != nil {
			return err
		}
		if err := items.DeleteByCart(cart.ID); err != nil {
			return err
		}
		if err := carts.UpdateTotal(cart.ID, decimal.Zero); err != nil {
			return err
		}
		out = toOrderResponse(ord, orderItems)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// Cancel cancela un pedido del usuario. Solo el dueño puede cancelar y solo
// mientras el estado sea "accepted"; cada línea devuelve su cantidad al libro de
// stock en la misma transacción que el cambio de estado.
func (uc *UseCase) Cancel(ctx context.Context, userID, orderID string) error {
	return uc.txRunner.RunOrder(ctx, func(
		_ repository.CartRepository,
		_ repository.CartItemRepository,
		stocks repository.StockRepository,
		orders repository.OrderRepository,
	) error {
		// Bloquea la fila del pedido: dos cancelaciones concurrentes se
		// serializan y la segunda ve el estado ya cancelado.
		ord, err := orders.GetByIDForUpdate(orderID)
		if err != nil {
			return err
		}
		if ord == nil {
			return domain.ErrNotFound
		}
		if ord.UserID != userID {
			return domain.ErrForbidden
		}
		if ord.Status != entity.OrderStatusAccepted {
			return domain.ErrConflict
		}
		lines, err := orders.ListItems(ord.ID)
		if err != nil {
			return err
		}
		for _, line := range lines {
			if err := uc.ledger.Release(stocks, line.ProductID, line.Quantity); err != nil {
				return err
			}
		}
		return orders.UpdateStatus(ord.ID, entity.OrderStatusAccepted, entity.OrderStatusCancelled)
	})
}

// GetByID devuelve un pedido con sus líneas; el dueño ve el suyo, admin cualquiera.
func (uc *UseCase) GetByID(ctx context.Context, userID, role, orderID string) (*dto.OrderResponse, error) {
	ord, err := uc.orderRepo.GetByID(orderID)
	if err != nil {
		return nil, err
	}
	if ord == nil {
		return nil, domain.ErrNotFound
	}
	if role != entity.RoleAdmin && ord.UserID != userID {
		return nil, domain.ErrNotFound
	}
	items, err := uc.orderRepo.ListItems(ord.ID)
	if err != nil {
		return nil, err
	}
	return toOrderResponse(ord, items), nil
}

// ListByUser pedidos del usuario, sin líneas.
func (uc *UseCase) ListByUser(ctx context.Context, userID string) ([]dto.OrderResponse, error) {
	orders, err := uc.orderRepo.ListByUser(userID)
	if err != nil {
		return nil, err
	}
	out := make([]dto.OrderResponse, 0, len(orders))
	for _, ord := range orders {
		out = append(out, *toOrderResponse(ord, nil))
	}
	return out, nil
}

// List listado paginado de todos los pedidos (admin).
func (uc *UseCase) List(ctx context.Context, limit, offset int) (*dto.OrderListResponse, error) {
	orders, total, err := uc.orderRepo.List(limit, offset)
	if err != nil {
		return nil, err
	}
	out := &dto.OrderListResponse{
		Items: make([]dto.OrderResponse, 0, len(orders)),
		Page:  dto.PageResponse{Limit: limit, Offset: offset, Total: total},
	}
	for _, ord := range orders {
		out.Items = append(out.Items, *toOrderResponse(ord, nil))
	}
	return out, nil
}

// UpdateStatus avanza el estado de un pedido (admin). Rechaza transiciones fuera
// de la cadena accepted -> assembling -> shipped -> delivered; cancelar pasa por
// Cancel para que el stock vuelva al libro. El cambio es condicional al estado
// leído: si otra petición lo movió entre la lectura y el update, ErrConflict.
func (uc *UseCase) UpdateStatus(ctx context.Context, orderID, status string) error {
	ord, err := uc.orderRepo.GetByID(orderID)
	if err != nil {
		return err
	}
	if ord == nil {
		return domain.ErrNotFound
	}
	allowed := false
	for _, next := range validTransitions[ord.Status] {
		if next == status {
			allowed = true
			break
		}
	}
	if !allowed {
		return domain.ErrConflict
	}
	return uc.orderRepo.UpdateStatus(ord.ID, ord.Status, status)
}

func toOrderResponse(ord *entity.Order, items []*entity.OrderItem) *dto.OrderResponse {
	out := &dto.OrderResponse{
		ID:              ord.ID,
		UserID:          ord.UserID,
		Status:          ord.Status,
		TotalPrice:      ord.TotalPrice,
		ShippingAddress: ord.ShippingAddress,
		Phone:           ord.Phone,
		CreatedAt:       ord.CreatedAt,
	}
	for _, it := range items {
		out.Items = append(out.Items, dto.OrderItemResponse{
			ID:        it.ID,
			ProductID: it.ProductID,
			Quantity:  it.Quantity,
			Price:     it.Price,
			Image:     it.Image,
		})
	}
	return out
}
