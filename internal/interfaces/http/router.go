package http

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/almacen-api/internal/application/analytics"
	"github.com/jhoicas/almacen-api/internal/application/history"
	"github.com/jhoicas/almacen-api/internal/application/kanban"
	"github.com/jhoicas/almacen-api/internal/application/warehouse"
	"github.com/jhoicas/almacen-api/pkg/logger"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	PositionUC *warehouse.PositionUseCase
	KanbanUC   *kanban.KanbanUseCase
	HistoryUC  *history.HistoryUseCase
	ExportUC   *history.ExportUseCase
	StatsUC    *analytics.StatsUseCase
	Log        *logger.Logger
}

// NewApp crea la app Fiber con el manejador de errores, recover, log de peticiones y /health.
// Las cantidades viajan como número JSON (acotadas a NUMERIC(18,4), ver entity.QuantityMaxIntDigits).
func NewApp(appName string, log *logger.Logger) *fiber.App {
	decimal.MarshalJSONWithoutQuotes = true

	app := fiber.New(fiber.Config{
		AppName:      appName,
		ErrorHandler: ErrorHandler(log),
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 30,
		IdleTimeout:  time.Second * 60,
	})
	app.Use(recover.New())
	app.Use(RequestLogger(log))

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": appName})
	})
	return app
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	log := deps.Log
	if log == nil {
		log = logger.Nop()
	}
	api := app.Group("/api")

	// Porta-palete: 20 posiciones fijas
	positions := api.Group("/positions")
	positionHandler := NewPositionHandler(deps.PositionUC, log)
	positions.Get("/", positionHandler.List)
	positions.Get("/:id", positionHandler.GetByID)
	positions.Patch("/:id", positionHandler.Fill)
	positions.Delete("/:id", positionHandler.Clear)

	// Kanban de expedición
	kanbanGroup := api.Group("/kanban")
	kanbanHandler := NewKanbanHandler(deps.KanbanUC, log)
	kanbanGroup.Get("/", kanbanHandler.List)
	kanbanGroup.Post("/", kanbanHandler.Create)
	kanbanGroup.Get("/:id", kanbanHandler.GetByID)
	kanbanGroup.Patch("/:id", kanbanHandler.Update)
	kanbanGroup.Delete("/:id", kanbanHandler.Remove)

	// Histórico (sólo lectura)
	historyGroup := api.Group("/history")
	historyHandler := NewHistoryHandler(deps.HistoryUC, deps.ExportUC, log)
	historyGroup.Get("/", historyHandler.List)
	historyGroup.Get("/export.:format", historyHandler.Export)

	statsHandler := NewStatsHandler(deps.StatsUC, log)
	api.Get("/stats", statsHandler.Get)
}
