package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/estebancaso/abasto-api/internal/application/analytics"
	"github.com/estebancaso/abasto-api/internal/application/auth"
	"github.com/estebancaso/abasto-api/internal/application/replenishment"
	"github.com/estebancaso/abasto-api/internal/application/usecase"
	"github.com/estebancaso/abasto-api/internal/domain/entity"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	AuthUC          *auth.AuthUseCase
	SupplierUC      *usecase.SupplierUseCase
	ProductUC       *usecase.ProductUseCase
	SaleUC          *usecase.SaleUseCase
	ReplenishmentUC *replenishment.UseCase
	ReportUC        *analytics.ReportUseCase
	JWTSecret       string
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

	// Suppliers (protegido)
	suppliers := protected.Group("/suppliers")
	supplierHandler := NewSupplierHandler(deps.SupplierUC)
	suppliers.Post("/", supplierHandler.Create)
	suppliers.Post("/default", supplierHandler.EnsureDefault)
	suppliers.Get("/", supplierHandler.List)
	suppliers.Get("/:id", supplierHandler.GetByID)
	suppliers.Put("/:id", supplierHandler.Update)
	suppliers.Delete("/:id", RequireRole(entity.RoleAdmin), supplierHandler.Delete)

	// Products (protegido)
	products := protected.Group("/products")
	productHandler := NewProductHandler(deps.ProductUC)
	products.Post("/", productHandler.Create)
	products.Get("/", productHandler.List)
	products.Get("/:id", productHandler.GetByID)
	products.Put("/:id", productHandler.Update)
	products.Delete("/:id", RequireRole(entity.RoleAdmin), productHandler.Delete)

	// Sales (protegido)
	sales := protected.Group("/sales")
	saleHandler := NewSaleHandler(deps.SaleUC)
	sales.Post("/day-closing", saleHandler.DayClosing)
	sales.Get("/", saleHandler.List)

	// Replenishments (protegido; transiciones y borrado solo admin)
	repl := protected.Group("/replenishments")
	replHandler := NewReplenishmentHandler(deps.ReplenishmentUC)
	repl.Post("/", replHandler.Create)
	repl.Post("/multi", replHandler.CreateMulti)
	repl.Get("/", replHandler.List)
	repl.Patch("/:id/status", RequireRole(entity.RoleAdmin), replHandler.UpdateStatus)
	repl.Delete("/:id", RequireRole(entity.RoleAdmin), replHandler.Delete)

	// Reports (protegido)
	reports := protected.Group("/reports")
	reportHandler := NewReportHandler(deps.ReportUC)
	reports.Get("/inventory", reportHandler.InventorySummary)
	reports.Get("/inventory/pdf", reportHandler.InventoryPDF)
	reports.Get("/sales", reportHandler.SalesSummary)
}
