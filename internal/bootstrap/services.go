package bootstrap

import (
	"time"

	"github.com/jhoicas/almacen-api/internal/application/analytics"
	"github.com/jhoicas/almacen-api/internal/application/history"
	"github.com/jhoicas/almacen-api/internal/application/kanban"
	"github.com/jhoicas/almacen-api/internal/application/warehouse"
	"github.com/jhoicas/almacen-api/internal/infrastructure/export"
	"github.com/jhoicas/almacen-api/internal/infrastructure/pdf"
	"github.com/jhoicas/almacen-api/pkg/config"
)

// Services casos de uso listos para el transporte (HTTP o CLI).
type Services struct {
	Positions *warehouse.PositionUseCase
	Kanban    *kanban.KanbanUseCase
	History   *history.HistoryUseCase
	Export    *history.ExportUseCase
	Stats     *analytics.StatsUseCase
}

// NewServices arma los casos de uso sobre el backend. clock nil usa la hora del sistema.
func NewServices(b *Backend, cfg config.HistoryConfig, appName string, clock func() time.Time) *Services {
	ledger := history.NewLedger(clock)
	hist := history.NewHistoryUseCase(b.History)
	return &Services{
		Positions: warehouse.NewPositionUseCase(b.Tx, b.Positions, ledger),
		Kanban: kanban.NewKanbanUseCase(b.Tx, b.Kanban, ledger, kanban.Options{
			LogPlainEdits: cfg.LogPlainKanbanEdits,
		}),
		History: hist,
		Export: history.NewExportUseCase(hist, ledger,
			export.NewCSVRenderer(),
			pdf.NewHistoryRenderer(appName),
		),
		Stats: analytics.NewStatsUseCase(b.Positions, b.Kanban),
	}
}
