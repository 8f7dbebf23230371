package export_test

import (
	"bytes"
	"context"
	"encoding/csv"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/almacen-api/internal/application/history"
	"github.com/jhoicas/almacen-api/internal/domain/entity"
	"github.com/jhoicas/almacen-api/internal/infrastructure/export"
)

func TestCSVRenderer_Render(t *testing.T) {
	at := time.Date(2024, 3, 10, 8, 5, 0, 0, time.UTC)
	m := entity.NewMovement(entity.MovementExit, at, entity.ProductData{
		ProductName: "Maíz; amarillo",
		ProductCode: "MZ-1",
		Quantity:    decimal.RequireFromString("1.5"),
	}, "Block 1, Level 3, AP2")
	m.ID = "01HABC"

	r := export.NewCSVRenderer()
	out, err := r.Render(context.Background(), history.Report{Entries: []*entity.MovementHistory{m}})
	require.NoError(t, err)
	require.True(t, bytes.HasPrefix(out, []byte{0xEF, 0xBB, 0xBF}), "BOM UTF-8")

	cr := csv.NewReader(bytes.NewReader(out[3:]))
	cr.Comma = ';'
	rows, err := cr.ReadAll()
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, "Fecha", rows[0][0])
	assert.Equal(t, []string{
		"2024-03-10T08:05:00Z", "Salida", "Maíz; amarillo", "MZ-1", "", "1.5",
		"Block 1, Level 3, AP2", "", "", "01HABC",
	}, rows[1])
	assert.Equal(t, "csv", r.Extension())
}

func TestCSVRenderer_Vacio(t *testing.T) {
	out, err := export.NewCSVRenderer().Render(context.Background(), history.Report{})
	require.NoError(t, err)

	cr := csv.NewReader(bytes.NewReader(out[3:]))
	cr.Comma = ';'
	rows, err := cr.ReadAll()
	require.NoError(t, err)
	assert.Len(t, rows, 1, "sólo la cabecera")
}

func TestCSVRenderer_NeutralizaFormulas(t *testing.T) {
	at := time.Date(2024, 3, 10, 8, 5, 0, 0, time.UTC)
	m := entity.NewMovement(entity.MovementEntry, at, entity.ProductData{
		ProductName: `=HYPERLINK("http://x","y")`,
		ProductCode: "+1-2",
		ClientName:  "@SUM(A1)",
		Quantity:    decimal.NewFromInt(2),
	}, "Block 1, Level 1, AP1")
	m.Details = "-3"

	out, err := export.NewCSVRenderer().Render(context.Background(), history.Report{Entries: []*entity.MovementHistory{m}})
	require.NoError(t, err)

	cr := csv.NewReader(bytes.NewReader(out[3:]))
	cr.Comma = ';'
	rows, err := cr.ReadAll()
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, `'=HYPERLINK("http://x","y")`, rows[1][2])
	assert.Equal(t, "'+1-2", rows[1][3])
	assert.Equal(t, "'@SUM(A1)", rows[1][4])
	assert.Equal(t, "2", rows[1][5], "la cantidad no se toca")
	assert.Equal(t, "Block 1, Level 1, AP1", rows[1][6])
	assert.Equal(t, "'-3", rows[1][8])
}
