package history

import (
	"context"
	"time"

	"github.com/jhoicas/almacen-api/internal/application/dto"
	"github.com/jhoicas/almacen-api/internal/domain/entity"
)

// Report datos que recibe un generador de archivos del histórico.
type Report struct {
	Query       dto.HistoryQuery
	Entries     []*entity.MovementHistory
	GeneratedAt time.Time
}

// ReportRenderer puerto de salida: convierte el reporte en bytes descargables
// (CSV, PDF). Implementado en infrastructure.
type ReportRenderer interface {
	Render(ctx context.Context, report Report) ([]byte, error)
	ContentType() string
	Extension() string
}
