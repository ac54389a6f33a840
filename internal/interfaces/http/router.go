package http

import (
	"net/http"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"

	"github.com/jhoicas/billing-core/pkg/logger"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	Pricing   PricingService
	Deletes   DeleteService
	DB        Pinger
	Metrics   http.Handler // nil = sin /metrics
	JWTSecret string
	Log       *logger.Logger
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	log := deps.Log
	if log == nil {
		log = logger.Nop()
	}

	app.Get("/health", Health(deps.DB))
	if deps.Metrics != nil {
		app.Get("/metrics", adaptor.HTTPHandler(deps.Metrics))
	}

	// Rutas protegidas (requieren Bearer Token)
	protected := app.Group("/api", AuthMiddleware(deps.JWTSecret))

	pricingHandler := NewPricingHandler(deps.Pricing, log.Component("pricing"))
	protected.Post("/pricing/preview", RequireRole(RoleAdmin, RoleStaff), pricingHandler.Preview)
	protected.Get("/invoices/:id/totals", RequireRole(RoleAdmin, RoleStaff), pricingHandler.InvoiceTotals)

	// Borrados en cascada (solo admin)
	deleteHandler := NewDeleteHandler(deps.Deletes, log.Component("cascade"))
	adminOnly := RequireRole(RoleAdmin)
	protected.Delete("/clients/:id", adminOnly, deleteHandler.Client())
	protected.Delete("/contacts/:id", adminOnly, deleteHandler.Contact())
	protected.Delete("/users/:id", adminOnly, deleteHandler.User())
	protected.Delete("/services/:id", adminOnly, deleteHandler.Service())
}
