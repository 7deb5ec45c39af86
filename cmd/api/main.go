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

	appanalytics "github.com/estebancaso/abasto-api/internal/application/analytics"
	"github.com/estebancaso/abasto-api/internal/application/auth"
	"github.com/estebancaso/abasto-api/internal/application/replenishment"
	"github.com/estebancaso/abasto-api/internal/application/usecase"
	infrapdf "github.com/estebancaso/abasto-api/internal/infrastructure/pdf"
	"github.com/estebancaso/abasto-api/internal/infrastructure/postgres"
	infrawebhook "github.com/estebancaso/abasto-api/internal/infrastructure/webhook"
	httpRouter "github.com/estebancaso/abasto-api/internal/interfaces/http"
	"github.com/estebancaso/abasto-api/pkg/config"
	"github.com/estebancaso/abasto-api/pkg/logger"
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

	profileRepo := postgres.NewProfileRepository(pool)
	userRepo := postgres.NewUserRepository(pool)
	supplierRepo := postgres.NewSupplierRepository(pool)
	productRepo := postgres.NewProductRepository(pool)
	saleRepo := postgres.NewSaleRepository(pool)
	replRepo := postgres.NewReplenishmentRepository(pool)
	txRunner := postgres.NewTxRunner(pool)

	// Webhook de reorden — si no hay URL configurada las notificaciones se omiten.
	var notifier replenishment.ReorderNotifier = replenishment.NopNotifier{}
	if cfg.Webhook.URL != "" {
		notifier = infrawebhook.NewReorderNotifier(cfg.Webhook.URL, cfg.Webhook.Timeout)
		log.Info().Str("url", cfg.Webhook.URL).Msg("webhook de reorden habilitado")
	}

	authUC := auth.NewAuthUseCase(userRepo, profileRepo, auth.JWTConfig{
		Secret:     cfg.JWT.Secret,
		ExpMinutes: cfg.JWT.Expiration,
		Issuer:     cfg.JWT.Issuer,
	})
	supplierUC := usecase.NewSupplierUseCase(supplierRepo)
	productUC := usecase.NewProductUseCase(productRepo, supplierRepo)
	saleUC := usecase.NewSaleUseCase(txRunner, saleRepo)
	replenishmentUC := replenishment.NewUseCase(txRunner, replRepo, notifier, log)

	pdfGenerator := infrapdf.NewMarotoReportGenerator()
	reportUC := appanalytics.NewReportUseCase(productRepo, saleRepo, profileRepo, pdfGenerator)

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 10,
		IdleTimeout:  time.Second * 60,
	})
	app.Use(recover.New())

	// Swagger UI en local: http://localhost:<port>/docs
	// El middleware entra en pánico si el archivo no existe; sin él la API
	// funciona igual, solo sin documentación navegable.
	const swaggerFile = "./docs/swagger.json"
	if _, err := os.Stat(swaggerFile); err == nil {
		app.Use(swagger.New(swagger.Config{
			BasePath: "/",
			FilePath: swaggerFile,
			Path:     "docs",
			Title:    "Abasto API",
		}))
	} else {
		log.Warn().Str("file", swaggerFile).Msg("swagger.json no encontrado; UI de documentación deshabilitada")
	}

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name})
	})

	httpRouter.Router(app, httpRouter.RouterDeps{
		AuthUC:          authUC,
		SupplierUC:      supplierUC,
		ProductUC:       productUC,
		SaleUC:          saleUC,
		ReplenishmentUC: replenishmentUC,
		ReportUC:        reportUC,
		JWTSecret:       cfg.JWT.Secret,
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
