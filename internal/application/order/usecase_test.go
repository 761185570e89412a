package order_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/tienda-api/internal/application/dto"
	"github.com/jhoicas/tienda-api/internal/application/order"
	"github.com/jhoicas/tienda-api/internal/application/stock"
	"github.com/jhoicas/tienda-api/internal/domain"
	"github.com/jhoicas/tienda-api/internal/domain/entity"
	"github.com/jhoicas/tienda-api/internal/domain/repository"
)

// ──────────────────────────────────────────────────────────────────────────────
// Fakes en memoria
// ──────────────────────────────────────────────────────────────────────────────

type memStore struct {
	cart       *entity.Cart
	items      []*entity.CartItem
	stocks     map[string]int64
	orders     map[string]*entity.Order
	orderItems map[string][]*entity.OrderItem
}

func newMemStore() *memStore {
	return &memStore{
		stocks:     make(map[string]int64),
		orders:     make(map[string]*entity.Order),
		orderItems: make(map[string][]*entity.OrderItem),
	}
}

// seedCart deja un carrito con una línea ya reservada (stock ya descontado).
func (s *memStore) seedCart(userID, productID string, quantity int64, price string) {
	p := mustDecimal(price)
	s.cart = &entity.Cart{
		ID:         uuid.New().String(),
		UserID:     userID,
		TotalPrice: p.Mul(decimal.NewFromInt(quantity)),
	}
	s.items = append(s.items, &entity.CartItem{
		ID:         uuid.New().String(),
		CartID:     s.cart.ID,
		ProductID:  productID,
		Quantity:   quantity,
		Price:      p,
		ReservedAt: time.Now(),
	})
}

func (s *memStore) RunOrder(ctx context.Context, fn func(
	repository.CartRepository,
	repository.CartItemRepository,
	repository.StockRepository,
	repository.OrderRepository,
) error) error {
	return fn(&memCartRepo{s}, &memItemRepo{s}, &memStockRepo{s}, &memOrderRepo{s})
}

type memCartRepo struct{ s *memStore }

func (r *memCartRepo) GetByUserID(userID string) (*entity.Cart, error) {
	if r.s.cart == nil || r.s.cart.UserID != userID {
		return nil, nil
	}
	return r.s.cart, nil
}

func (r *memCartRepo) GetOrCreate(userID string) (*entity.Cart, error) {
	return r.GetByUserID(userID)
}

func (r *memCartRepo) GetForUpdate(cartID string) (*entity.Cart, error) {
	if r.s.cart == nil || r.s.cart.ID != cartID {
		return nil, nil
	}
	return r.s.cart, nil
}

func (r *memCartRepo) UpdateTotal(cartID string, total decimal.Decimal) error {
	if r.s.cart != nil && r.s.cart.ID == cartID {
		r.s.cart.TotalPrice = total
	}
	return nil
}

type memItemRepo struct{ s *memStore }

func (r *memItemRepo) GetByID(id string) (*entity.CartItem, error) { return nil, nil }
func (r *memItemRepo) GetByIDForUpdate(id string) (*entity.CartItem, error) {
	return r.GetByID(id)
}
func (r *memItemRepo) GetByCartAndProduct(cartID, productID string) (*entity.CartItem, error) {
	return nil, nil
}

func (r *memItemRepo) ListByCart(cartID string) ([]*entity.CartItem, error) {
	var out []*entity.CartItem
	for _, it := range r.s.items {
		if it.CartID == cartID {
			out = append(out, it)
		}
	}
	return out, nil
}

func (r *memItemRepo) ListDetailByCart(cartID string) ([]*entity.CartItemDetail, error) {
	return nil, nil
}
func (r *memItemRepo) Create(item *entity.CartItem) error               { return nil }
func (r *memItemRepo) UpdateQuantity(id string, quantity int64) error   { return nil }
func (r *memItemRepo) Delete(id string) error                           { return nil }
func (r *memItemRepo) ListExpired(t time.Time, n int) ([]*entity.CartItem, error) {
	return nil, nil
}

func (r *memItemRepo) DeleteByCart(cartID string) error {
	var keep []*entity.CartItem
	for _, it := range r.s.items {
		if it.CartID != cartID {
			keep = append(keep, it)
		}
	}
	r.s.items = keep
	return nil
}

type memStockRepo struct{ s *memStore }

func (r *memStockRepo) Get(productID string) (*entity.ProductStock, error) {
	return r.GetForUpdate(productID)
}

func (r *memStockRepo) GetForUpdate(productID string) (*entity.ProductStock, error) {
	st, ok := r.s.stocks[productID]
	if !ok {
		return nil, nil
	}
	return &entity.ProductStock{ProductID: productID, Stock: st}, nil
}

func (r *memStockRepo) SetStock(productID string, stock int64) error {
	r.s.stocks[productID] = stock
	return nil
}

type memOrderRepo struct{ s *memStore }

func (r *memOrderRepo) Create(ord *entity.Order, items []*entity.OrderItem) error {
	r.s.orders[ord.ID] = ord
	r.s.orderItems[ord.ID] = items
	return nil
}

func (r *memOrderRepo) GetByID(id string) (*entity.Order, error) {
	ord, ok := r.s.orders[id]
	if !ok {
		return nil, nil
	}
	return ord, nil
}

func (r *memOrderRepo) GetByIDForUpdate(id string) (*entity.Order, error) {
	return r.GetByID(id)
}

func (r *memOrderRepo) ListItems(orderID string) ([]*entity.OrderItem, error) {
	return r.s.orderItems[orderID], nil
}

func (r *memOrderRepo) ListByUser(userID string) ([]*entity.Order, error) {
	var out []*entity.Order
	for _, ord := range r.s.orders {
		if ord.UserID == userID {
			out = append(out, ord)
		}
	}
	return out, nil
}

func (r *memOrderRepo) List(limit, offset int) ([]*entity.Order, int, error) {
	var out []*entity.Order
	for _, ord := range r.s.orders {
		out = append(out, ord)
	}
	return out, len(out), nil
}

func (r *memOrderRepo) UpdateStatus(id, from, to string) error {
	ord, ok := r.s.orders[id]
	if !ok || ord.Status != from {
		return domain.ErrConflict
	}
	ord.Status = to
	return nil
}

// ──────────────────────────────────────────────────────────────────────────────
// Helpers
// ──────────────────────────────────────────────────────────────────────────────

const (
	testUserID  = "11111111-1111-1111-1111-111111111111"
	otherUserID = "22222222-2222-2222-2222-222222222222"
)

func mustDecimal(s string) decimal.Decimal {
	d, err := decimal.NewFromString(s)
	if err != nil {
		panic(err)
	}
	return d
}

func newOrderUseCase(s *memStore) *order.UseCase {
	return order.NewUseCase(s, stock.NewLedger(), &memOrderRepo{s})
}

var checkoutIn = dto.CheckoutRequest{ShippingAddress: "Calle Falsa 123", Phone: "+1000"}

// ──────────────────────────────────────────────────────────────────────────────
// Tests Checkout
// ──────────────────────────────────────────────────────────────────────────────

func TestCheckout_CreaPedidoYVaciaElCarrito(t *testing.T) {
	s := newMemStore()
	productID := uuid.New().String()
	s.stocks[productID] = 7 // disponible tras la reserva del carrito
	s.seedCart(testUserID, productID, 3, "10.00")
	uc := newOrderUseCase(s)

	out, err := uc.Checkout(context.Background(), testUserID, checkoutIn)
	require.NoError(t, err)
	assert.Equal(t, entity.OrderStatusAccepted, out.Status)
	assert.True(t, out.TotalPrice.Equal(mustDecimal("30.00")))
	assert.Equal(t, checkoutIn.ShippingAddress, out.ShippingAddress)
	require.Len(t, out.Items, 1)
	assert.True(t, out.Items[0].Price.Equal(mustDecimal("10.00")),
		"la línea del pedido hereda el precio snapshot del carrito")

	assert.Empty(t, s.items, "el carrito debe quedar vacío")
	assert.True(t, s.cart.TotalPrice.IsZero(), "el total del carrito debe resetearse")
	assert.EqualValues(t, 7, s.stocks[productID],
		"el checkout consume la reserva: el stock no se toca")
}

func TestCheckout_CarritoVacio(t *testing.T) {
	s := newMemStore()
	uc := newOrderUseCase(s)

	_, err := uc.Checkout(context.Background(), testUserID, checkoutIn)
	require.ErrorIs(t, err, domain.ErrEmptyCart, "sin carrito no hay pedido")

	s.cart = &entity.Cart{ID: uuid.New().String(), UserID: testUserID}
	_, err = uc.Checkout(context.Background(), testUserID, checkoutIn)
	require.ErrorIs(t, err, domain.ErrEmptyCart, "un carrito sin líneas tampoco")
}

func TestCheckout_DatosDeEnvioRequeridos(t *testing.T) {
	s := newMemStore()
	uc := newOrderUseCase(s)

	_, err := uc.Checkout(context.Background(), testUserID, dto.CheckoutRequest{Phone: "+1000"})
	require.ErrorIs(t, err, domain.ErrInvalidInput)
}

// ──────────────────────────────────────────────────────────────────────────────
// Tests Cancel
// ──────────────────────────────────────────────────────────────────────────────

func checkoutOrder(t *testing.T, s *memStore, uc *order.UseCase, productID string) string {
	t.Helper()
	s.stocks[productID] = 7
	s.seedCart(testUserID, productID, 3, "10.00")
	out, err := uc.Checkout(context.Background(), testUserID, checkoutIn)
	require.NoError(t, err)
	return out.ID
}

func TestCancel_DevuelveElStockYCambiaEstado(t *testing.T) {
	s := newMemStore()
	uc := newOrderUseCase(s)
	productID := uuid.New().String()
	orderID := checkoutOrder(t, s, uc, productID)

	require.NoError(t, uc.Cancel(context.Background(), testUserID, orderID))

	assert.Equal(t, entity.OrderStatusCancelled, s.orders[orderID].Status)
	assert.EqualValues(t, 10, s.stocks[productID], "las 3 unidades reservadas deben volver")
}

// Cancelar dos veces el mismo pedido: el stock debe volver una sola vez.
// La segunda cancelación ve el estado ya cancelado y falla con conflicto.
func TestCancel_DobleCancelacionNoDuplicaElStock(t *testing.T) {
	s := newMemStore()
	uc := newOrderUseCase(s)
	productID := uuid.New().String()
	orderID := checkoutOrder(t, s, uc, productID)
	ctx := context.Background()

	require.NoError(t, uc.Cancel(ctx, testUserID, orderID))
	err := uc.Cancel(ctx, testUserID, orderID)
	require.ErrorIs(t, err, domain.ErrConflict)

	assert.Equal(t, entity.OrderStatusCancelled, s.orders[orderID].Status)
	assert.EqualValues(t, 10, s.stocks[productID],
		"las 3 unidades deben devolverse una sola vez, nunca 6")
}

func TestCancel_SoloElDueno(t *testing.T) {
	s := newMemStore()
	uc := newOrderUseCase(s)
	productID := uuid.New().String()
	orderID := checkoutOrder(t, s, uc, productID)

	err := uc.Cancel(context.Background(), otherUserID, orderID)
	require.ErrorIs(t, err, domain.ErrForbidden)
	assert.Equal(t, entity.OrderStatusAccepted, s.orders[orderID].Status)
}

func TestCancel_SoloEnEstadoAccepted(t *testing.T) {
	s := newMemStore()
	uc := newOrderUseCase(s)
	productID := uuid.New().String()
	orderID := checkoutOrder(t, s, uc, productID)
	s.orders[orderID].Status = entity.OrderStatusShipped

	err := uc.Cancel(context.Background(), testUserID, orderID)
	require.ErrorIs(t, err, domain.ErrConflict)
	assert.EqualValues(t, 7, s.stocks[productID], "el stock no debe moverse")
}

func TestCancel_PedidoInexistente(t *testing.T) {
	s := newMemStore()
	uc := newOrderUseCase(s)

	err := uc.Cancel(context.Background(), testUserID, uuid.New().String())
	require.ErrorIs(t, err, domain.ErrNotFound)
}

// ──────────────────────────────────────────────────────────────────────────────
// Tests GetByID / UpdateStatus
// ──────────────────────────────────────────────────────────────────────────────

func TestGetByID_DuenoYAdminVenElPedido(t *testing.T) {
	s := newMemStore()
	uc := newOrderUseCase(s)
	orderID := checkoutOrder(t, s, uc, uuid.New().String())
	ctx := context.Background()

	out, err := uc.GetByID(ctx, testUserID, entity.RoleCustomer, orderID)
	require.NoError(t, err)
	require.Len(t, out.Items, 1, "el detalle incluye las líneas")

	_, err = uc.GetByID(ctx, otherUserID, entity.RoleAdmin, orderID)
	require.NoError(t, err, "admin ve cualquier pedido")

	_, err = uc.GetByID(ctx, otherUserID, entity.RoleCustomer, orderID)
	require.ErrorIs(t, err, domain.ErrNotFound,
		"un pedido ajeno no debe distinguirse de uno inexistente")
}

func TestUpdateStatus_SigueLaCadena(t *testing.T) {
	s := newMemStore()
	uc := newOrderUseCase(s)
	orderID := checkoutOrder(t, s, uc, uuid.New().String())
	ctx := context.Background()

	require.NoError(t, uc.UpdateStatus(ctx, orderID, entity.OrderStatusAssembling))
	require.NoError(t, uc.UpdateStatus(ctx, orderID, entity.OrderStatusShipped))
	require.NoError(t, uc.UpdateStatus(ctx, orderID, entity.OrderStatusDelivered))
	assert.Equal(t, entity.OrderStatusDelivered, s.orders[orderID].Status)
}

func TestUpdateStatus_TransicionInvalida(t *testing.T) {
	s := newMemStore()
	uc := newOrderUseCase(s)
	orderID := checkoutOrder(t, s, uc, uuid.New().String())
	ctx := context.Background()

	err := uc.UpdateStatus(ctx, orderID, entity.OrderStatusDelivered)
	require.ErrorIs(t, err, domain.ErrConflict, "no se puede saltar de accepted a delivered")

	// delivered es terminal
	require.NoError(t, uc.UpdateStatus(ctx, orderID, entity.OrderStatusAssembling))
	require.NoError(t, uc.UpdateStatus(ctx, orderID, entity.OrderStatusShipped))
	require.NoError(t, uc.UpdateStatus(ctx, orderID, entity.OrderStatusDelivered))
	err = uc.UpdateStatus(ctx, orderID, entity.OrderStatusAssembling)
	require.ErrorIs(t, err, domain.ErrConflict)

	// cancelar por aquí tampoco está permitido: pasa por Cancel
	err = uc.UpdateStatus(ctx, orderID, entity.OrderStatusCancelled)
	require.ErrorIs(t, err, domain.ErrConflict)
}
