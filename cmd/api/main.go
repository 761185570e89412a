package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/contrib/swagger"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"

	"github.com/jhoicas/tienda-api/internal/application/auth"
	"github.com/jhoicas/tienda-api/internal/application/cart"
	"github.com/jhoicas/tienda-api/internal/application/order"
	"github.com/jhoicas/tienda-api/internal/application/stock"
	"github.com/jhoicas/tienda-api/internal/application/usecase"
	"github.com/jhoicas/tienda-api/internal/infrastructure/postgres"
	httpRouter "github.com/jhoicas/tienda-api/internal/interfaces/http"
	"github.com/jhoicas/tienda-api/pkg/config"
	"github.com/jhoicas/tienda-api/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:   cfg.App.Env,
		Level: "info",
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Msg("iniciando aplicación")

	ctx := context.Background()
	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("conexión a PostgreSQL")
	}
	defer pool.Close()

	userRepo := postgres.NewUserRepository(pool)
	categoryRepo := postgres.NewCategoryRepository(pool)
	productRepo := postgres.NewProductRepository(pool)
	favoriteRepo := postgres.NewFavoriteRepository(pool)
	cartRepo := postgres.NewCartRepository(pool)
	cartItemRepo := postgres.NewCartItemRepository(pool)
	orderRepo := postgres.NewOrderRepository(pool)
	txRunner := postgres.NewTxRunner(pool)

	ledger := stock.NewLedger()
	authUC := auth.NewUseCase(userRepo, auth.JWTConfig{
		Secret:     cfg.JWT.Secret,
		ExpMinutes: cfg.JWT.Expiration,
		Issuer:     cfg.JWT.Issuer,
	})
	productUC := usecase.NewProductUseCase(productRepo, categoryRepo)
	favoriteUC := usecase.NewFavoriteUseCase(favoriteRepo, productRepo)
	cartUC := cart.NewUseCase(txRunner, ledger, cartRepo, cartItemRepo)
	orderUC := order.NewUseCase(txRunner, ledger, orderRepo)

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 10,
		IdleTimeout:  time.Second * 60,
	})
	app.Use(recover.New())

	// Swagger UI en local: http://localhost:<port>/docs
	// El middleware de contrib hace panic si el fichero no existe, así que solo
	// se monta cuando el despliegue incluye docs/.
	const swaggerSpec = "./docs/swagger.json"
	if _, err := os.Stat(swaggerSpec); err == nil {
		app.Use(swagger.New(swagger.Config{
			BasePath: "/",
			FilePath: swaggerSpec,
			Path:     "docs",
			Title:    "Tienda API",
		}))
	} else {
		log.Warn().Str("file", swaggerSpec).Msg("swagger.json no encontrado, UI de docs deshabilitada")
	}

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name})
	})

	httpRouter.Router(app, httpRouter.RouterDeps{
		AuthUC:     authUC,
		ProductUC:  productUC,
		FavoriteUC: favoriteUC,
		CartUC:     cartUC,
		OrderUC:    orderUC,
		JWTSecret:  cfg.JWT.Secret,
	})

	// Barrido periódico de reservas vencidas: devuelve al stock las líneas
	// de carrito más viejas que el TTL configurado.
	sweepCtx, stopSweep := context.WithCancel(ctx)
	go runSweeper(sweepCtx, cartUC, cfg.Cart, log)

	go func() {
		if err := app.Listen(cfg.HTTP.Addr()); err != nil {
			log.Error().Err(err).Msg("servidor HTTP finalizado")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("señal de apagado recibida, cerrando servidor...")
	stopSweep()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("apagado del servidor")
	}

	log.Info().Msg("aplicación detenida")
}

func runSweeper(ctx context.Context, cartUC *cart.UseCase, cfg config.CartConfig, log *logger.Logger) {
	sweepLog := log.Component("sweeper")
	ttl := time.Duration(cfg.ReservationTTLMinutes) * time.Minute
	interval := time.Duration(cfg.SweepIntervalMinutes) * time.Minute

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			sweepLog.Info().Msg("barrido de reservas detenido")
			return
		case <-ticker.C:
			released, err := cartUC.ReleaseExpired(ctx, ttl)
			if err != nil {
				sweepLog.Error().Err(err).Msg("barrido de reservas vencidas")
				continue
			}
			if released > 0 {
				sweepLog.Info().Int("released", released).Msg("reservas vencidas liberadas")
			}
		}
	}
}
