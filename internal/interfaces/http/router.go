package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/pos-core/internal/application/auth"
	"github.com/jhoicas/pos-core/internal/application/checkout"
	"github.com/jhoicas/pos-core/internal/application/inventory"
	"github.com/jhoicas/pos-core/internal/application/sequence"
	"github.com/jhoicas/pos-core/internal/application/usecase"
	"github.com/jhoicas/pos-core/internal/domain/entity"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	AuthUC     *auth.AuthUseCase
	ProductUC  *usecase.ProductUseCase
	MovementUC *inventory.MovementUseCase
	Checkout   *checkout.Orchestrator
	Counter    *sequence.Counter
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

	// Rutas protegidas (requieren Bearer Token)
	protected := api.Group("/", AuthMiddleware(deps.JWTSecret))

	// Products (protegido)
	products := protected.Group("/products")
	productHandler := NewProductHandler(deps.ProductUC)
	products.Post("/", productHandler.Create)
	products.Get("/", productHandler.List)
	products.Get("/:id", productHandler.GetByID)
	products.Put("/:id", productHandler.Update)

	// Sales (protegido)
	sales := protected.Group("/sales")
	saleHandler := NewSaleHandler(deps.Checkout)
	sales.Post("/", saleHandler.Create)
	sales.Get("/", saleHandler.List)
	sales.Get("/:number", saleHandler.GetByNumber)

	// Purchases (protegido)
	purchases := protected.Group("/purchases")
	purchaseHandler := NewPurchaseHandler(deps.Checkout)
	purchases.Post("/", purchaseHandler.Create)
	purchases.Get("/:number", purchaseHandler.GetByNumber)

	// Returns (protegido)
	returns := protected.Group("/returns")
	returnHandler := NewReturnHandler(deps.Checkout)
	returns.Post("/customer", returnHandler.CreateCustomerReturn)
	returns.Post("/supplier", returnHandler.CreateSupplierReturn)

	// Disposals (protegido)
	disposals := protected.Group("/disposals")
	disposalHandler := NewDisposalHandler(deps.Checkout)
	disposals.Post("/", disposalHandler.Create)

	// Inventory movements (protegido, solo lectura)
	invGroup := protected.Group("/inventory")
	inventoryHandler := NewInventoryHandler(deps.MovementUC)
	invGroup.Get("/products/:id/movements", inventoryHandler.ListByProduct)
	invGroup.Get("/movements/:reference", inventoryHandler.ListByReference)

	// Sequences (solo admin)
	sequences := protected.Group("/sequences", RequireRole(entity.RoleAdmin))
	sequenceHandler := NewSequenceHandler(deps.Counter)
	sequences.Get("/", sequenceHandler.List)
	sequences.Get("/:namespace", sequenceHandler.Peek)
	sequences.Post("/:namespace/reset", sequenceHandler.Reset)
}
