package http_test

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/almacen-api/internal/application/dto"
	"github.com/jhoicas/almacen-api/internal/bootstrap"
	apphttp "github.com/jhoicas/almacen-api/internal/interfaces/http"
	"github.com/jhoicas/almacen-api/pkg/config"
	"github.com/jhoicas/almacen-api/pkg/logger"
)

// ──────────────────────────────────────────────────────────────────────────────
// Helpers de test
// ──────────────────────────────────────────────────────────────────────────────

const productBody = `{"productName":"Tornillos","productCode":"T-100","quantity":12,"entryDate":"2024-03-01"}`

// buildTestApp arma la API completa sobre el backend en memoria con las 20 posiciones creadas.
func buildTestApp(t *testing.T) *fiber.App {
	t.Helper()
	ctx := context.Background()
	b, err := bootstrap.Open(ctx, config.StorageConfig{Backend: config.BackendMemory}, config.DBConfig{}, logger.Nop())
	require.NoError(t, err)
	t.Cleanup(func() { _ = b.Close() })

	svc := bootstrap.NewServices(b, config.HistoryConfig{}, "almacen-test", nil)
	_, err = svc.Positions.Initialize(ctx)
	require.NoError(t, err)

	app := apphttp.NewApp("almacen-test", logger.Nop())
	apphttp.Router(app, apphttp.RouterDeps{
		PositionUC: svc.Positions,
		KanbanUC:   svc.Kanban,
		HistoryUC:  svc.History,
		ExportUC:   svc.Export,
		StatsUC:    svc.Stats,
		Log:        logger.Nop(),
	})
	return app
}

func do(t *testing.T, app *fiber.App, method, target, body string) *http.Response {
	t.Helper()
	var r io.Reader
	if body != "" {
		r = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, target, r)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	return resp
}

func decode[T any](t *testing.T, resp *http.Response) T {
	t.Helper()
	defer resp.Body.Close()
	var out T
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
	return out
}

// ──────────────────────────────────────────────────────────────────────────────
// Salud y rutas inexistentes
// ──────────────────────────────────────────────────────────────────────────────

func TestHealth(t *testing.T) {
	app := buildTestApp(t)
	resp := do(t, app, http.MethodGet, "/health", "")
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	body := decode[map[string]string](t, resp)
	assert.Equal(t, "ok", body["status"])
	assert.Equal(t, "almacen-test", body["service"])
	assert.NotEmpty(t, resp.Header.Get(apphttp.HeaderRequestID))
}

func TestRutaInexistente_404(t *testing.T) {
	app := buildTestApp(t)
	resp := do(t, app, http.MethodGet, "/api/no-existe", "")
	assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)
	assert.Equal(t, "NOT_FOUND", decode[dto.ErrorResponse](t, resp).Code)
}

// ──────────────────────────────────────────────────────────────────────────────
// Posiciones
// ──────────────────────────────────────────────────────────────────────────────

func TestPositions_Lista20(t *testing.T) {
	app := buildTestApp(t)
	resp := do(t, app, http.MethodGet, "/api/positions", "")
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	list := decode[[]dto.PositionResponse](t, resp)
	require.Len(t, list, 20)
	assert.Equal(t, "pos-1-5-AP1", list[0].ID)
	assert.True(t, list[0].IsEmpty)
}

func TestPositions_LlenarYVaciar(t *testing.T) {
	app := buildTestApp(t)

	resp := do(t, app, http.MethodPatch, "/api/positions/pos-2-3-AP2", productBody)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	filled := decode[dto.PositionResponse](t, resp)
	assert.False(t, filled.IsEmpty)
	assert.Equal(t, "Tornillos", filled.ProductName)
	require.NotNil(t, filled.Quantity)
	assert.Equal(t, "12", filled.Quantity.String())

	resp = do(t, app, http.MethodDelete, "/api/positions/pos-2-3-AP2", "")
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	cleared := decode[dto.PositionResponse](t, resp)
	assert.True(t, cleared.IsEmpty)
	assert.Empty(t, cleared.ProductName)

	resp = do(t, app, http.MethodGet, "/api/history", "")
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	hist := decode[[]dto.HistoryResponse](t, resp)
	require.Len(t, hist, 2)
	assert.Equal(t, "exit", hist[0].Type)
	assert.Equal(t, "entry", hist[1].Type)
	assert.Equal(t, "Block 2, Level 3, AP2", hist[1].Location)
}

func TestPositions_Validacion_400ConCampos(t *testing.T) {
	app := buildTestApp(t)
	resp := do(t, app, http.MethodPatch, "/api/positions/pos-1-1-AP1",
		`{"productName":"","productCode":"X","quantity":0,"entryDate":"2024-03-01"}`)
	require.Equal(t, fiber.StatusBadRequest, resp.StatusCode)

	body := decode[dto.ErrorResponse](t, resp)
	assert.Equal(t, "VALIDATION", body.Code)
	fields := make([]string, 0, len(body.Fields))
	for _, f := range body.Fields {
		fields = append(fields, f.Field)
	}
	assert.Equal(t, []string{"productName", "quantity"}, fields)
}

func TestPositions_CantidadFueraDeRango_400(t *testing.T) {
	app := buildTestApp(t)
	for _, q := range []string{`"1e50000000"`, `1e50000000`, `"1.23456"`, `100000000000000`} {
		resp := do(t, app, http.MethodPatch, "/api/positions/pos-1-5-AP1",
			`{"productName":"Tornillos","productCode":"T-100","quantity":`+q+`,"entryDate":"2024-03-01"}`)
		require.Equal(t, fiber.StatusBadRequest, resp.StatusCode, q)
		body := decode[dto.ErrorResponse](t, resp)
		assert.Equal(t, "VALIDATION", body.Code, q)
		require.Len(t, body.Fields, 1, q)
		assert.Equal(t, "quantity", body.Fields[0].Field, q)
	}

	resp := do(t, app, http.MethodGet, "/api/history", "")
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.Empty(t, decode[[]dto.HistoryResponse](t, resp), "nada llega al histórico")
}

func TestPositions_CantidadComoNumeroJSON(t *testing.T) {
	app := buildTestApp(t)
	resp := do(t, app, http.MethodPatch, "/api/positions/pos-1-5-AP1",
		`{"productName":"Tornillos","productCode":"T-100","quantity":"12.5","entryDate":"2024-03-01"}`)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	data, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"quantity":12.5`)
}

func TestPositions_TipoIncorrecto_400ConCampo(t *testing.T) {
	app := buildTestApp(t)
	tests := []struct {
		name  string
		body  string
		field string
	}{
		{"cantidad texto", `{"productName":"Tornillos","productCode":"T-100","quantity":"ten","entryDate":"2024-03-01"}`, "quantity"},
		{"cantidad booleana", `{"productName":"Tornillos","productCode":"T-100","quantity":true,"entryDate":"2024-03-01"}`, "quantity"},
		{"nombre numérico", `{"productName":7,"productCode":"T-100","quantity":3,"entryDate":"2024-03-01"}`, "productName"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp := do(t, app, http.MethodPatch, "/api/positions/pos-1-1-AP1", tt.body)
			require.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
			body := decode[dto.ErrorResponse](t, resp)
			assert.Equal(t, "VALIDATION", body.Code)
			require.Len(t, body.Fields, 1)
			assert.Equal(t, tt.field, body.Fields[0].Field)
		})
	}
}

func TestPositions_CuerpoInvalido_400(t *testing.T) {
	app := buildTestApp(t)
	resp := do(t, app, http.MethodPatch, "/api/positions/pos-1-1-AP1", `{"productName":`)
	require.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, "INVALID_BODY", decode[dto.ErrorResponse](t, resp).Code)
}

func TestPositions_NoEncontrada_404(t *testing.T) {
	app := buildTestApp(t)

	resp := do(t, app, http.MethodGet, "/api/positions/pos-9-9-AP9", "")
	assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)

	resp = do(t, app, http.MethodPatch, "/api/positions/pos-9-9-AP9", productBody)
	assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)
	assert.Equal(t, "NOT_FOUND", decode[dto.ErrorResponse](t, resp).Code)

	resp = do(t, app, http.MethodDelete, "/api/positions/pos-9-9-AP9", "")
	assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)
}

// ──────────────────────────────────────────────────────────────────────────────
// Kanban
// ──────────────────────────────────────────────────────────────────────────────

func TestKanban_CicloCompleto(t *testing.T) {
	app := buildTestApp(t)

	resp := do(t, app, http.MethodPost, "/api/kanban",
		`{"stage":"green","productName":"Cajas","productCode":"C-1","quantity":"2.5","entryDate":"2024-03-02"}`)
	require.Equal(t, fiber.StatusCreated, resp.StatusCode)
	created := decode[dto.KanbanResponse](t, resp)
	require.NotEmpty(t, created.ID)
	assert.Equal(t, "green", created.Stage)

	resp = do(t, app, http.MethodPatch, "/api/kanban/"+created.ID, `{"stage":"red"}`)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.Equal(t, "red", decode[dto.KanbanResponse](t, resp).Stage)

	resp = do(t, app, http.MethodGet, "/api/stats", "")
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	stats := decode[dto.StatsResponse](t, resp)
	assert.Equal(t, 0, stats.KanbanGreen)
	assert.Equal(t, 1, stats.KanbanRed)

	resp = do(t, app, http.MethodDelete, "/api/kanban/"+created.ID+"?reason=discard", "")
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.True(t, decode[dto.SuccessResponse](t, resp).Success)

	resp = do(t, app, http.MethodGet, "/api/kanban/"+created.ID, "")
	assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)

	resp = do(t, app, http.MethodGet, "/api/history?type=kanban_move", "")
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	moves := decode[[]dto.HistoryResponse](t, resp)
	require.Len(t, moves, 1)
	assert.Equal(t, "Kanban Red", moves[0].Location)
	assert.Equal(t, "Kanban Green", moves[0].PreviousLocation)
	assert.Equal(t, "Moved from Kanban Green to Kanban Red", moves[0].Details)
}

func TestKanban_SinEtapa_400(t *testing.T) {
	app := buildTestApp(t)
	resp := do(t, app, http.MethodPost, "/api/kanban", productBody)
	require.Equal(t, fiber.StatusBadRequest, resp.StatusCode)

	body := decode[dto.ErrorResponse](t, resp)
	assert.Equal(t, "VALIDATION", body.Code)
	require.NotEmpty(t, body.Fields)
	assert.Equal(t, "stage", body.Fields[0].Field)
}

func TestKanban_CantidadNoNumerica_400ConCampo(t *testing.T) {
	app := buildTestApp(t)
	resp := do(t, app, http.MethodPost, "/api/kanban",
		`{"stage":"green","productName":"Cajas","productCode":"C-1","quantity":"x","entryDate":"2024-03-02"}`)
	require.Equal(t, fiber.StatusBadRequest, resp.StatusCode)

	body := decode[dto.ErrorResponse](t, resp)
	assert.Equal(t, "VALIDATION", body.Code)
	require.Len(t, body.Fields, 1)
	assert.Equal(t, "quantity", body.Fields[0].Field)
}

func TestKanban_RazonInvalida_400(t *testing.T) {
	app := buildTestApp(t)
	resp := do(t, app, http.MethodPost, "/api/kanban",
		`{"stage":"yellow","productName":"Cajas","productCode":"C-1","quantity":1,"entryDate":"2024-03-02"}`)
	require.Equal(t, fiber.StatusCreated, resp.StatusCode)
	created := decode[dto.KanbanResponse](t, resp)

	resp = do(t, app, http.MethodDelete, "/api/kanban/"+created.ID+"?reason=vender", "")
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)

	resp = do(t, app, http.MethodGet, "/api/kanban", "")
	assert.Len(t, decode[[]dto.KanbanResponse](t, resp), 1)
}

func TestKanban_NoEncontrado_404(t *testing.T) {
	app := buildTestApp(t)

	resp := do(t, app, http.MethodPatch, "/api/kanban/no-existe", `{"stage":"red"}`)
	assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)

	resp = do(t, app, http.MethodDelete, "/api/kanban/no-existe", "")
	assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)
}

// ──────────────────────────────────────────────────────────────────────────────
// Estadísticas e histórico
// ──────────────────────────────────────────────────────────────────────────────

func TestStats_AlmacenVacio(t *testing.T) {
	app := buildTestApp(t)
	resp := do(t, app, http.MethodGet, "/api/stats", "")
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	stats := decode[dto.StatsResponse](t, resp)
	assert.Equal(t, dto.StatsResponse{TotalPositions: 20, FreePositions: 20}, stats)
}

func TestHistory_FechaInvalida_400(t *testing.T) {
	app := buildTestApp(t)
	resp := do(t, app, http.MethodGet, "/api/history?startDate=01-03-2024", "")
	require.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, "VALIDATION", decode[dto.ErrorResponse](t, resp).Code)
}

func TestHistory_ExportCSV(t *testing.T) {
	app := buildTestApp(t)
	require.Equal(t, fiber.StatusOK, do(t, app, http.MethodPatch, "/api/positions/pos-1-1-AP1", productBody).StatusCode)

	resp := do(t, app, http.MethodGet, "/api/history/export.csv?startDate=2024-03-01", "")
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.Equal(t, "text/csv; charset=utf-8", resp.Header.Get(fiber.HeaderContentType))
	assert.Equal(t, `attachment; filename="historico_2024-03-01_hoy.csv"`, resp.Header.Get(fiber.HeaderContentDisposition))

	data, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.Contains(t, string(data), "Tornillos")
}

func TestHistory_ExportFormatoDesconocido_400(t *testing.T) {
	app := buildTestApp(t)
	resp := do(t, app, http.MethodGet, "/api/history/export.xlsx", "")
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
}
