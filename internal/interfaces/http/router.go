package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/Alquiler-stock-api/internal/application/stock"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	Registry     *stock.RegistryUseCase
	Ledger       *stock.RecordMovementUseCase
	Availability *stock.AvailabilityUseCase
	Alerts       *stock.AlertUseCase
	JWTSecret    string
}

// Router registra las rutas de la API. Todo el motor de stock va protegido:
// los flujos de pedidos/contratos llaman con el token de su operador.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api")
	protected := api.Group("/stock", AuthMiddleware(deps.JWTSecret))

	itemHandler := NewStockItemHandler(deps.Registry, deps.Ledger)
	items := protected.Group("/items")
	items.Post("/", itemHandler.Create)
	items.Get("/", itemHandler.List)
	items.Get("/:id", itemHandler.GetByID)
	items.Patch("/:id", itemHandler.Update)
	items.Post("/:id/rebuild", itemHandler.Rebuild)

	movementHandler := NewMovementHandler(deps.Ledger)
	movements := protected.Group("/movements")
	movements.Post("/", movementHandler.Register)
	movements.Get("/", movementHandler.List)

	availabilityHandler := NewAvailabilityHandler(deps.Availability)
	protected.Get("/availability", availabilityHandler.Get)
	items.Get("/:id/availability", availabilityHandler.GetByItem)

	alertHandler := NewAlertHandler(deps.Alerts)
	protected.Get("/alerts/active", alertHandler.ListActive)
}
