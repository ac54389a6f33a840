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

	"github.com/jhoicas/billing-core/internal/application/cascade"
	"github.com/jhoicas/billing-core/internal/application/pricing"
	engine "github.com/jhoicas/billing-core/internal/domain/pricing"
	"github.com/jhoicas/billing-core/internal/infrastructure/cache"
	"github.com/jhoicas/billing-core/internal/infrastructure/event"
	"github.com/jhoicas/billing-core/internal/infrastructure/metrics"
	"github.com/jhoicas/billing-core/internal/infrastructure/postgres"
	httpRouter "github.com/jhoicas/billing-core/internal/interfaces/http"
	"github.com/jhoicas/billing-core/pkg/config"
	"github.com/jhoicas/billing-core/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:   cfg.App.Env,
		Level: cfg.App.LogLevel,
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

	m := metrics.New()

	taxRules := cache.NewTaxRuleCache(postgres.NewTaxRuleRepository(pool), cfg.Pricing.TaxCacheTTL)
	pricingUC := pricing.NewUseCase(
		taxRules,
		postgres.NewInvoiceRepository(pool),
		postgres.NewClientRepository(pool),
		postgres.NewClientSettingRepository(pool),
		pricing.Config{
			Currency: cfg.Pricing.Currency,
			Defaults: engine.Settings{EnableTax: cfg.Pricing.EnableTax, CascadeTax: cfg.Pricing.CascadeTax},
		},
		m,
		log.Component("pricing"),
	)

	// Un bus por borrado raíz: los handlers quedan atados a los repositorios de su transacción.
	busLog := log.Component("event_bus")
	newBus := func() cascade.Bus {
		return event.NewInMemoryEventBus(busLog, event.WithObserver(m))
	}
	deleteUC := cascade.NewDeleteUseCase(
		postgres.NewTxRunner(pool),
		newBus,
		cascade.Config{PageSize: cfg.Cascade.PageSize},
		log.Component("cascade"),
	)

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 30,
		IdleTimeout:  time.Second * 60,
	})
	app.Use(recover.New())

	// Swagger UI en local: http://localhost:<port>/docs
	if cfg.HTTP.SwaggerFile != "" {
		if _, err := os.Stat(cfg.HTTP.SwaggerFile); err == nil {
			app.Use(swagger.New(swagger.Config{
				BasePath: "/",
				FilePath: cfg.HTTP.SwaggerFile,
				Path:     "docs",
				Title:    "Billing Core API",
			}))
		} else {
			log.Warn().Str("file", cfg.HTTP.SwaggerFile).Msg("swagger deshabilitado: archivo no encontrado")
		}
	}

	httpRouter.Router(app, httpRouter.RouterDeps{
		Pricing:   pricingUC,
		Deletes:   deleteUC,
		DB:        pool,
		Metrics:   m.Handler(),
		JWTSecret: cfg.JWT.Secret,
		Log:       log.Component("http"),
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
