package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/tienda-api/internal/application/auth"
	"github.com/jhoicas/tienda-api/internal/application/cart"
	"github.com/jhoicas/tienda-api/internal/application/order"
	"github.com/jhoicas/tienda-api/internal/application/usecase"
	"github.com/jhoicas/tienda-api/internal/domain/entity"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	AuthUC     *auth.UseCase
	ProductUC  *usecase.ProductUseCase
	FavoriteUC *usecase.FavoriteUseCase
	CartUC     *cart.UseCase
	OrderUC    *order.UseCase
	JWTSecret  string
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api")

	// Auth (público)
	authGroup := api.Group("/auth")
	authHandler := NewAuthHandler(deps.AuthUC)
	authGroup.Post("/register", authHandler.Register)
	authGroup.Post("/login", authHandler.Login)

	// Catálogo (público, solo lectura)
	productHandler := NewProductHandler(deps.ProductUC)
	api.Get("/products", productHandler.List)
	api.Get("/products/:id", productHandler.GetByID)
	api.Get("/categories", productHandler.ListCategories)

	// Rutas protegidas (requieren Bearer Token)
	protected := api.Group("/", AuthMiddleware(deps.JWTSecret))

	// Carrito (cliente)
	cartGroup := protected.Group("/cart", RequireRole(entity.RoleCustomer))
	cartHandler := NewCartHandler(deps.CartUC)
	cartGroup.Get("/", cartHandler.Get)
	cartGroup.Post("/items", cartHandler.AddItem)
	cartGroup.Patch("/items/:id", cartHandler.UpdateItem)
	cartGroup.Delete("/items/:id", cartHandler.RemoveItem)

	// Pedidos (cliente; GetByID también acepta admin)
	orderHandler := NewOrderHandler(deps.OrderUC)
	orders := protected.Group("/orders", RequireRole(entity.RoleCustomer, entity.RoleAdmin))
	orders.Post("/", orderHandler.Checkout)
	orders.Get("/", orderHandler.List)
	orders.Get("/:id", orderHandler.GetByID)
	orders.Post("/:id/cancel", orderHandler.Cancel)

	// Favoritos (cliente)
	favorites := protected.Group("/favorites", RequireRole(entity.RoleCustomer))
	favoriteHandler := NewFavoriteHandler(deps.FavoriteUC)
	favorites.Post("/", favoriteHandler.Add)
	favorites.Get("/", favoriteHandler.List)
	favorites.Delete("/:productId", favoriteHandler.Remove)

	// Administración (solo admin)
	admin := protected.Group("/admin", RequireRole(entity.RoleAdmin))
	admin.Post("/products", productHandler.Create)
	admin.Put("/products/:id", productHandler.Update)
	admin.Delete("/products/:id", productHandler.Delete)
	admin.Get("/orders", orderHandler.AdminList)
	admin.Patch("/orders/:id/status", orderHandler.UpdateStatus)
}
