package history

import (
	"context"
	"fmt"
	"strings"

	"github.com/jhoicas/almacen-api/internal/application/dto"
	"github.com/jhoicas/almacen-api/internal/domain"
)

// ExportUseCase genera archivos del histórico filtrado en los formatos registrados.
type ExportUseCase struct {
	history   *HistoryUseCase
	ledger    *Ledger
	renderers map[string]ReportRenderer
}

// NewExportUseCase construye el caso de uso; cada renderer se registra por su extensión.
func NewExportUseCase(history *HistoryUseCase, ledger *Ledger, renderers ...ReportRenderer) *ExportUseCase {
	m := make(map[string]ReportRenderer, len(renderers))
	for _, r := range renderers {
		m[r.Extension()] = r
	}
	return &ExportUseCase{history: history, ledger: ledger, renderers: m}
}

// Export devuelve (bytes, contentType, filename).
// Un formato no registrado es un error de validación.
func (uc *ExportUseCase) Export(ctx context.Context, format string, q dto.HistoryQuery) ([]byte, string, string, error) {
	r, ok := uc.renderers[strings.ToLower(format)]
	if !ok {
		return nil, "", "", &domain.ValidationError{Fields: []domain.FieldError{
			{Field: "format", Message: "formato de exportación no soportado"},
		}}
	}
	entries, err := uc.history.entries(ctx, q)
	if err != nil {
		return nil, "", "", err
	}
	data, err := r.Render(ctx, Report{Query: q, Entries: entries, GeneratedAt: uc.ledger.Now()})
	if err != nil {
		return nil, "", "", fmt.Errorf("export %s: %w", r.Extension(), err)
	}
	return data, r.ContentType(), exportFilename(q, r.Extension()), nil
}

func exportFilename(q dto.HistoryQuery, ext string) string {
	start, end := q.StartDate, q.EndDate
	if start == "" {
		start = "inicio"
	}
	if end == "" {
		end = "hoy"
	}
	return fmt.Sprintf("historico_%s_%s.%s", start, end, ext)
}
