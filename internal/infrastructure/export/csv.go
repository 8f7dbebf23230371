// Package export genera exportaciones tabulares del histórico.
package export

import (
	"bytes"
	"context"
	"encoding/csv"
	"fmt"
	"time"

	"github.com/jhoicas/almacen-api/internal/application/history"
)

var _ history.ReportRenderer = (*CSVRenderer)(nil)

// utf8BOM hace que Excel detecte UTF-8 (tildes, ñ).
var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

var csvHeader = []string{
	"Fecha", "Tipo", "Producto", "Código", "Cliente", "Cantidad",
	"Ubicación", "Ubicación anterior", "Detalle", "ID",
}

// CSVRenderer CSV separado por ';' (convención de hojas de cálculo en español).
type CSVRenderer struct {
	comma rune
}

// NewCSVRenderer construye el renderer.
func NewCSVRenderer() *CSVRenderer {
	return &CSVRenderer{comma: ';'}
}

func (r *CSVRenderer) ContentType() string { return "text/csv; charset=utf-8" }
func (r *CSVRenderer) Extension() string   { return "csv" }

// Render escribe una fila por registro, en el mismo orden recibido (más reciente primero).
func (r *CSVRenderer) Render(ctx context.Context, rep history.Report) ([]byte, error) {
	var buf bytes.Buffer
	buf.Write(utf8BOM)

	w := csv.NewWriter(&buf)
	w.Comma = r.comma
	if err := w.Write(csvHeader); err != nil {
		return nil, fmt.Errorf("csv header: %w", err)
	}
	for _, e := range rep.Entries {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		rec := []string{
			e.Timestamp.UTC().Format(time.RFC3339),
			history.TypeLabel(e.Type),
			cell(e.ProductName),
			cell(e.ProductCode),
			cell(e.ClientName),
			e.Quantity.String(),
			cell(e.Location),
			cell(e.PreviousLocation),
			cell(e.Details),
			e.ID,
		}
		if err := w.Write(rec); err != nil {
			return nil, fmt.Errorf("csv row %s: %w", e.ID, err)
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return nil, fmt.Errorf("csv flush: %w", err)
	}
	return buf.Bytes(), nil
}

// cell antepone ' a los textos que una hoja de cálculo interpretaría como fórmula.
func cell(s string) string {
	if s == "" {
		return s
	}
	switch s[0] {
	case '=', '+', '-', '@', '\t', '\r':
		return "'" + s
	}
	return s
}
