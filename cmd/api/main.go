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
	"github.com/jhoicas/pos-core/internal/application/auth"
	"github.com/jhoicas/pos-core/internal/application/checkout"
	"github.com/jhoicas/pos-core/internal/application/inventory"
	"github.com/jhoicas/pos-core/internal/application/ledger"
	"github.com/jhoicas/pos-core/internal/application/sequence"
	"github.com/jhoicas/pos-core/internal/application/usecase"
	"github.com/jhoicas/pos-core/internal/domain/entity"
	"github.com/jhoicas/pos-core/internal/infrastructure/recordstore"
	httpRouter "github.com/jhoicas/pos-core/internal/interfaces/http"
	"github.com/jhoicas/pos-core/pkg/config"
	"github.com/jhoicas/pos-core/pkg/logger"
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
		Str("store", cfg.Store.Backend).
		Msg("iniciando aplicación")

	ctx := context.Background()

	// Backend del record store: postgres en despliegue, memoria en desarrollo.
	var store recordstore.Store
	switch cfg.Store.Backend {
	case "postgres":
		pool, err := recordstore.NewPool(ctx, cfg.DB)
		if err != nil {
			log.Fatal().Err(err).Msg("conexión a PostgreSQL")
		}
		defer pool.Close()
		pgStore, err := recordstore.NewPostgresStore(ctx, pool, log.Zerolog())
		if err != nil {
			log.Fatal().Err(err).Msg("inicializar record store")
		}
		defer pgStore.Close()
		store = pgStore
	case "memory":
		store = recordstore.NewMemoryStore()
	default:
		log.Fatal().Str("backend", cfg.Store.Backend).Msg("backend de store desconocido")
	}

	productRepo := recordstore.NewProductRepository(store)
	sequenceRepo := recordstore.NewSequenceRepository(store)
	movementRepo := recordstore.NewMovementRepository(store)
	txRepo := recordstore.NewTransactionRepository(store)
	userRepo := recordstore.NewUserRepository(store)

	counter := sequence.NewCounter(sequenceRepo, entity.DefaultNamespaces(
		cfg.Sequence.InvoiceFloor, cfg.Sequence.InvoiceCeiling,
	))
	stockLedger := ledger.New(productRepo, movementRepo)
	orchestrator := checkout.New(counter, stockLedger, productRepo, txRepo)

	productUC := usecase.NewProductUseCase(productRepo, movementRepo)
	movementUC := inventory.NewMovementUseCase(movementRepo)
	authUC := auth.NewAuthUseCase(userRepo, auth.JWTConfig{
		Secret:     cfg.JWT.Secret,
		ExpMinutes: cfg.JWT.Expiration,
		Issuer:     cfg.JWT.Issuer,
	})

	// Alerta de reposición sobre el feed de cambios del store.
	watcher := inventory.NewLowStockWatcher(store, log.Zerolog())
	stopWatcher, err := watcher.Start()
	if err != nil {
		log.Fatal().Err(err).Msg("iniciar watcher de stock bajo")
	}
	defer stopWatcher()

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 10,
		IdleTimeout:  time.Second * 60,
	})
	app.Use(recover.New())

	// Swagger UI en local: http://localhost:<port>/docs
	app.Use(swagger.New(swagger.Config{
		BasePath: "/",
		FilePath: "./docs/swagger.json",
		Path:     "docs",
		Title:    cfg.App.Name,
	}))

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name})
	})

	httpRouter.Router(app, httpRouter.RouterDeps{
		AuthUC:     authUC,
		ProductUC:  productUC,
		MovementUC: movementUC,
		Checkout:   orchestrator,
		Counter:    counter,
		JWTSecret:  cfg.JWT.Secret,
	})

	go func() {
		if err := app.Listen(cfg.HTTP.Addr()); err != nil {
			log.Error().Err(err).Msg("servidor HTTP finalizado")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("señal de apagado recibida, cerrando servidor...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("apagado del servidor")
	}

	log.Info().Msg("aplicación detenida")
}
