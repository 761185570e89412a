package http_test

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/tienda-api/internal/application/dto"
	"github.com/jhoicas/tienda-api/internal/domain"
	apphttp "github.com/jhoicas/tienda-api/internal/interfaces/http"
)

// ──────────────────────────────────────────────────────────────────────────────
// Fake del servicio de carrito
// ──────────────────────────────────────────────────────────────────────────────

type fakeCartService struct {
	getCart   func(userID string) (*dto.CartResponse, error)
	addItem   func(userID, productID string, quantity int64) (*dto.CartItemResponse, error)
	updateErr error
	removeErr error

	lastUserID   string
	lastItemID   string
	lastQuantity int64
}

func (f *fakeCartService) GetCart(_ context.Context, userID string) (*dto.CartResponse, error) {
	f.lastUserID = userID
	if f.getCart != nil {
		return f.getCart(userID)
	}
	return &dto.CartResponse{UserID: userID, TotalPrice: decimal.Zero, Items: []dto.CartItemResponse{}}, nil
}

func (f *fakeCartService) AddItem(_ context.Context, userID, productID string, quantity int64) (*dto.CartItemResponse, error) {
	f.lastUserID = userID
	f.lastQuantity = quantity
	if f.addItem != nil {
		return f.addItem(userID, productID, quantity)
	}
	return &dto.CartItemResponse{ID: "item-1", ProductID: productID, Quantity: quantity}, nil
}

func (f *fakeCartService) UpdateItemQuantity(_ context.Context, userID, itemID string, quantity int64) error {
	f.lastUserID = userID
	f.lastItemID = itemID
	f.lastQuantity = quantity
	return f.updateErr
}

func (f *fakeCartService) RemoveItem(_ context.Context, userID, itemID string) error {
	f.lastUserID = userID
	f.lastItemID = itemID
	return f.removeErr
}

// buildCartApp monta las rutas del carrito detrás del middleware de auth,
// igual que el router real.
func buildCartApp(svc *fakeCartService) *fiber.App {
	app := fiber.New()
	h := apphttp.NewCartHandler(svc)
	group := app.Group("/api/cart", apphttp.AuthMiddleware(testJWTSecret))
	group.Get("/", h.Get)
	group.Post("/items", h.AddItem)
	group.Patch("/items/:id", h.UpdateItem)
	group.Delete("/items/:id", h.RemoveItem)
	return app
}

func doJSON(t *testing.T, app *fiber.App, method, path string, body interface{}) *http.Response {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", fiber.MIMEApplicationJSON)
	req.Header.Set("Authorization", tokenForRole(t, "customer"))
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	return resp
}

// ──────────────────────────────────────────────────────────────────────────────
// Tests
// ──────────────────────────────────────────────────────────────────────────────

func TestCartGet_DevuelveElCarritoDelUsuarioDelToken(t *testing.T) {
	svc := &fakeCartService{}
	app := buildCartApp(svc)

	resp := doJSON(t, app, http.MethodGet, "/api/cart/", nil)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, testUserID, svc.lastUserID, "el userID debe salir del token, nunca del body")

	var out dto.CartResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
	assert.Equal(t, testUserID, out.UserID)
	assert.NotNil(t, out.Items)
}

func TestCartGet_SinTokenRechazado(t *testing.T) {
	app := buildCartApp(&fakeCartService{})

	req := httptest.NewRequest(http.MethodGet, "/api/cart/", nil)
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestCartAddItem_Creado(t *testing.T) {
	svc := &fakeCartService{}
	app := buildCartApp(svc)

	resp := doJSON(t, app, http.MethodPost, "/api/cart/items",
		dto.AddCartItemRequest{ProductID: "p1", Quantity: 2})
	defer resp.Body.Close()

	assert.Equal(t, http.StatusCreated, resp.StatusCode)
	assert.EqualValues(t, 2, svc.lastQuantity)

	var out dto.CartItemResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
	assert.Equal(t, "p1", out.ProductID)
}

func TestCartAddItem_SinProductID(t *testing.T) {
	app := buildCartApp(&fakeCartService{})

	resp := doJSON(t, app, http.MethodPost, "/api/cart/items", dto.AddCartItemRequest{})
	defer resp.Body.Close()

	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestCartAddItem_StockInsuficienteEs409(t *testing.T) {
	svc := &fakeCartService{
		addItem: func(string, string, int64) (*dto.CartItemResponse, error) {
			return nil, domain.ErrInsufficientStock
		},
	}
	app := buildCartApp(svc)

	resp := doJSON(t, app, http.MethodPost, "/api/cart/items",
		dto.AddCartItemRequest{ProductID: "p1", Quantity: 99})
	defer resp.Body.Close()

	assert.Equal(t, http.StatusConflict, resp.StatusCode)

	var out dto.ErrorResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
	assert.Equal(t, "INSUFFICIENT_STOCK", out.Code)
}

func TestCartAddItem_ProductoInexistenteEs404(t *testing.T) {
	svc := &fakeCartService{
		addItem: func(string, string, int64) (*dto.CartItemResponse, error) {
			return nil, domain.ErrNotFound
		},
	}
	app := buildCartApp(svc)

	resp := doJSON(t, app, http.MethodPost, "/api/cart/items",
		dto.AddCartItemRequest{ProductID: "no-existe", Quantity: 1})
	defer resp.Body.Close()

	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestCartUpdateItem_OK(t *testing.T) {
	svc := &fakeCartService{}
	app := buildCartApp(svc)

	resp := doJSON(t, app, http.MethodPatch, "/api/cart/items/item-1",
		dto.UpdateCartItemRequest{Quantity: 5})
	defer resp.Body.Close()

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "item-1", svc.lastItemID)
	assert.EqualValues(t, 5, svc.lastQuantity)
}

func TestCartUpdateItem_CantidadCeroRechazada(t *testing.T) {
	svc := &fakeCartService{}
	app := buildCartApp(svc)

	resp := doJSON(t, app, http.MethodPatch, "/api/cart/items/item-1",
		dto.UpdateCartItemRequest{Quantity: 0})
	defer resp.Body.Close()

	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Empty(t, svc.lastItemID, "la validación debe cortar antes de llamar al servicio")
}

func TestCartRemoveItem_LineaAjenaEs404(t *testing.T) {
	svc := &fakeCartService{removeErr: domain.ErrNotFound}
	app := buildCartApp(svc)

	resp := doJSON(t, app, http.MethodDelete, "/api/cart/items/item-ajeno", nil)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}
