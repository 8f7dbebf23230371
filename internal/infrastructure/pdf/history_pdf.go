// Package pdf genera el reporte del histórico de movimientos en PDF.
//
// Layout de la página A4 horizontal:
//
//	┌──────────────────────────────────────────────────────────────────┐
//	│  HEADER: Nombre de la app + título │ Período + fecha de emisión  │
//	│  ──────────────────────────────────────────────────────────────  │
//	│  RESUMEN: registros por tipo de movimiento                        │
//	│  ──────────────────────────────────────────────────────────────  │
//	│  TABLA: Fecha | Tipo | Producto | Código | Cant. | Ubicación | …  │
//	└──────────────────────────────────────────────────────────────────┘
package pdf

import (
	"context"
	"fmt"
	"strings"

	maroto "github.com/johnfercher/maroto/v2"
	"github.com/johnfercher/maroto/v2/pkg/components/col"
	"github.com/johnfercher/maroto/v2/pkg/components/line"
	"github.com/johnfercher/maroto/v2/pkg/components/row"
	"github.com/johnfercher/maroto/v2/pkg/components/text"
	"github.com/johnfercher/maroto/v2/pkg/config"
	"github.com/johnfercher/maroto/v2/pkg/consts/align"
	"github.com/johnfercher/maroto/v2/pkg/consts/fontstyle"
	"github.com/johnfercher/maroto/v2/pkg/consts/orientation"
	"github.com/johnfercher/maroto/v2/pkg/consts/pagesize"
	"github.com/johnfercher/maroto/v2/pkg/core"
	"github.com/johnfercher/maroto/v2/pkg/props"

	"github.com/jhoicas/almacen-api/internal/application/history"
	"github.com/jhoicas/almacen-api/internal/domain/entity"
)

// ── Paleta de colores ─────────────────────────────────────────────────────────

var (
	colorPrimary = &props.Color{Red: 0, Green: 70, Blue: 127}
	colorGray    = &props.Color{Red: 100, Green: 100, Blue: 100}
	colorWhite   = &props.Color{Red: 255, Green: 255, Blue: 255}
	colorStripe  = &props.Color{Red: 240, Green: 244, Blue: 248}
)

// ── Renderer ──────────────────────────────────────────────────────────────────

var _ history.ReportRenderer = (*HistoryRenderer)(nil)

// HistoryRenderer implementa history.ReportRenderer usando Maroto v2.
type HistoryRenderer struct {
	appName string
}

// NewHistoryRenderer construye el generador; appName va en el encabezado.
func NewHistoryRenderer(appName string) *HistoryRenderer {
	return &HistoryRenderer{appName: appName}
}

func (r *HistoryRenderer) ContentType() string { return "application/pdf" }
func (r *HistoryRenderer) Extension() string   { return "pdf" }

// Render genera el PDF y devuelve sus bytes.
func (r *HistoryRenderer) Render(ctx context.Context, rep history.Report) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	cfg := config.NewBuilder().
		WithPageSize(pagesize.A4).
		WithOrientation(orientation.Horizontal).
		WithLeftMargin(10).WithRightMargin(10).
		WithTopMargin(10).WithBottomMargin(10).
		WithDefaultFont(&props.Font{Family: "helvetica", Size: 8}).
		WithTitle("Histórico de movimientos", true).
		WithAuthor(r.appName, true).
		Build()

	m := maroto.New(cfg)

	m.AddRows(headerRow(r.appName, rep))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.5}))
	m.AddRows(summaryRow(rep.Entries))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))

	m.AddRows(tableHeaderRow())
	if len(rep.Entries) == 0 {
		m.AddRows(row.New(10).Add(col.New(12).Add(
			text.New("Sin movimientos en el período seleccionado.", props.Text{
				Size: 9, Align: align.Center, Color: colorGray, Top: 3,
			}),
		)))
	}
	m.AddRows(tableDetailRows(rep.Entries)...)

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("pdf: generar documento: %w", err)
	}
	return doc.GetBytes(), nil
}

// ── Secciones ─────────────────────────────────────────────────────────────────

func headerRow(appName string, rep history.Report) core.Row {
	period := fmt.Sprintf("Período: %s a %s",
		nonEmpty(rep.Query.StartDate, "inicio"),
		nonEmpty(rep.Query.EndDate, "hoy"),
	)
	return row.New(18).Add(
		col.New(7).Add(
			text.New(nonEmpty(appName, "Almacén"), props.Text{
				Style: fontstyle.Bold, Size: 13, Color: colorPrimary, Top: 1,
			}),
			text.New("HISTÓRICO DE MOVIMIENTOS", props.Text{
				Size: 9, Top: 9, Color: colorGray,
			}),
		),
		col.New(5).Add(
			text.New(period, props.Text{
				Style: fontstyle.Bold, Size: 9, Align: align.Right, Top: 2,
			}),
			text.New("Emitido: "+rep.GeneratedAt.Format("02/01/2006 15:04")+" UTC", props.Text{
				Size: 8, Align: align.Right, Top: 9, Color: colorGray,
			}),
			text.New(filtersLabel(rep), props.Text{
				Size: 7, Align: align.Right, Top: 14, Color: colorGray,
			}),
		),
	)
}

// summaryRow conteo por tipo, en el orden fijo de los tipos.
func summaryRow(entries []*entity.MovementHistory) core.Row {
	counts := make(map[string]int, len(entity.MovementTypes))
	for _, e := range entries {
		counts[e.Type]++
	}
	cols := make([]core.Col, 0, len(entity.MovementTypes))
	for _, t := range entity.MovementTypes {
		cols = append(cols, col.New(2).Add(
			text.New(history.TypeLabel(t), props.Text{Size: 7, Color: colorGray, Align: align.Center, Top: 1}),
			text.New(fmt.Sprintf("%d", counts[t]), props.Text{
				Style: fontstyle.Bold, Size: 11, Color: colorPrimary, Align: align.Center, Top: 5,
			}),
		))
	}
	return row.New(13).Add(cols...)
}

func tableHeaderRow() core.Row {
	h := func(label string, size int, a align.Type) core.Col {
		return col.New(size).Add(text.New(label, props.Text{
			Style: fontstyle.Bold, Size: 8, Align: a,
			Color: colorWhite, Top: 2, Left: 1, Right: 1,
		}))
	}
	return row.New(8).Add(
		h("Fecha", 2, align.Left),
		h("Tipo", 2, align.Left),
		h("Producto", 2, align.Left),
		h("Código", 1, align.Left),
		h("Cant.", 1, align.Right),
		h("Ubicación", 2, align.Left),
		h("Detalle", 2, align.Left),
	).WithStyle(&props.Cell{BackgroundColor: colorPrimary})
}

func tableDetailRows(entries []*entity.MovementHistory) []core.Row {
	cell := func(s string, size int, a align.Type) core.Col {
		return col.New(size).Add(text.New(s, props.Text{Size: 7.5, Align: a, Top: 1, Left: 1, Right: 1}))
	}
	result := make([]core.Row, 0, len(entries))
	for i, e := range entries {
		location := e.Location
		if e.PreviousLocation != "" {
			location = e.PreviousLocation + " -> " + e.Location
		}
		r := row.New(7).Add(
			cell(e.Timestamp.Format("02/01/2006 15:04"), 2, align.Left),
			cell(history.TypeLabel(e.Type), 2, align.Left),
			cell(e.ProductName, 2, align.Left),
			cell(e.ProductCode, 1, align.Left),
			cell(e.Quantity.String(), 1, align.Right),
			cell(location, 2, align.Left),
			cell(nonEmpty(e.Details, "-"), 2, align.Left),
		)
		if i%2 == 1 {
			r = r.WithStyle(&props.Cell{BackgroundColor: colorStripe})
		}
		result = append(result, r)
	}
	return result
}

// ── helpers ───────────────────────────────────────────────────────────────────

func filtersLabel(rep history.Report) string {
	var parts []string
	if t := rep.Query.Type; t != "" && t != "all" {
		parts = append(parts, "Tipo: "+history.TypeLabel(t))
	}
	if s := strings.TrimSpace(rep.Query.Search); s != "" {
		parts = append(parts, "Búsqueda: "+s)
	}
	parts = append(parts, fmt.Sprintf("%d registros", len(rep.Entries)))
	return strings.Join(parts, "   |   ")
}

func nonEmpty(s, fallback string) string {
	if s != "" {
		return s
	}
	return fallback
}
