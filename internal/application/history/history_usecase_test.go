package history_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/almacen-api/internal/application/dto"
	"github.com/jhoicas/almacen-api/internal/application/history"
	"github.com/jhoicas/almacen-api/internal/domain"
	"github.com/jhoicas/almacen-api/internal/domain/entity"
	"github.com/jhoicas/almacen-api/internal/infrastructure/memory"
)

// ──────────────────────────────────────────────────────────────────────────────
// Helpers de test
// ──────────────────────────────────────────────────────────────────────────────

func appendAt(t *testing.T, store *memory.Store, at time.Time, typ, name, location string) {
	t.Helper()
	ledger := history.NewLedger(func() time.Time { return at })
	m := entity.NewMovement(typ, ledger.Now(), entity.ProductData{
		ProductName: name,
		ProductCode: "C-" + name,
		Quantity:    decimal.NewFromInt(1),
	}, location)
	require.NoError(t, ledger.Append(context.Background(), store.History(), m))
}

func ids(list []dto.HistoryResponse) []string {
	out := make([]string, 0, len(list))
	for _, e := range list {
		out = append(out, e.ProductName)
	}
	return out
}

// ──────────────────────────────────────────────────────────────────────────────
// Ledger
// ──────────────────────────────────────────────────────────────────────────────

func TestLedger_AppendRechazaRegistroIncompleto(t *testing.T) {
	store := memory.NewStore()
	ledger := history.NewLedger(nil)

	m := entity.NewMovement(entity.MovementEntry, ledger.Now(), entity.ProductData{ProductName: "X"}, "Block 1, Level 1, AP1")
	err := ledger.Append(context.Background(), store.History(), m)
	assert.ErrorIs(t, err, domain.ErrInvariantViolation)

	list, err := store.History().List(context.Background(), nil, nil)
	require.NoError(t, err)
	assert.Empty(t, list)
}

func TestLedger_AsignaIDYHoraUTC(t *testing.T) {
	loc := time.FixedZone("UTC-3", -3*3600)
	ledger := history.NewLedger(func() time.Time { return time.Date(2024, 1, 1, 10, 0, 0, 0, loc) })

	assert.Equal(t, time.UTC, ledger.Now().Location())
	assert.Equal(t, 13, ledger.Now().Hour())

	store := memory.NewStore()
	m := entity.NewMovement(entity.MovementExit, ledger.Now(), entity.ProductData{ProductName: "A", ProductCode: "B"}, "L")
	require.NoError(t, ledger.Append(context.Background(), store.History(), m))
	assert.Len(t, m.ID, 26, "ULID")
}

// ──────────────────────────────────────────────────────────────────────────────
// ListAll / ListByRange
// ──────────────────────────────────────────────────────────────────────────────

func TestListAll_MasRecientePrimero(t *testing.T) {
	store := memory.NewStore()
	base := time.Date(2024, 3, 10, 8, 0, 0, 0, time.UTC)
	appendAt(t, store, base, entity.MovementEntry, "uno", "L1")
	appendAt(t, store, base.Add(2*time.Hour), entity.MovementEdit, "tres", "L1")
	appendAt(t, store, base.Add(time.Hour), entity.MovementExit, "dos", "L1")

	uc := history.NewHistoryUseCase(store.History())
	list, err := uc.ListAll(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []string{"tres", "dos", "uno"}, ids(list))
}

func TestListByRange_VentanaEnsanchadaUnDia(t *testing.T) {
	store := memory.NewStore()
	appendAt(t, store, time.Date(2024, 3, 8, 23, 59, 59, 0, time.UTC), entity.MovementEntry, "antes", "L")
	appendAt(t, store, time.Date(2024, 3, 9, 0, 0, 0, 0, time.UTC), entity.MovementEntry, "borde-inicio", "L")
	appendAt(t, store, time.Date(2024, 3, 10, 12, 0, 0, 0, time.UTC), entity.MovementEntry, "dentro", "L")
	// 23:30 en UTC-1 es 00:30 del día siguiente en UTC.
	appendAt(t, store, time.Date(2024, 3, 10, 23, 30, 0, 0, time.FixedZone("UTC-1", -3600)), entity.MovementEntry, "offset", "L")
	appendAt(t, store, time.Date(2024, 3, 11, 23, 59, 59, 999_000_000, time.UTC), entity.MovementEntry, "borde-fin", "L")
	appendAt(t, store, time.Date(2024, 3, 12, 0, 0, 0, 0, time.UTC), entity.MovementEntry, "despues", "L")

	uc := history.NewHistoryUseCase(store.History())
	list, err := uc.ListByRange(context.Background(), "2024-03-10", "2024-03-10")
	require.NoError(t, err)
	assert.Equal(t, []string{"borde-fin", "offset", "dentro", "borde-inicio"}, ids(list))
}

func TestListByRange_LimitesAbiertos(t *testing.T) {
	store := memory.NewStore()
	appendAt(t, store, time.Date(2020, 1, 1, 0, 0, 0, 0, time.UTC), entity.MovementEntry, "viejo", "L")
	appendAt(t, store, time.Date(2030, 1, 1, 0, 0, 0, 0, time.UTC), entity.MovementEntry, "futuro", "L")

	uc := history.NewHistoryUseCase(store.History())
	ctx := context.Background()

	list, err := uc.ListByRange(ctx, "2025-01-01", "")
	require.NoError(t, err)
	assert.Equal(t, []string{"futuro"}, ids(list))

	list, err = uc.ListByRange(ctx, "", "2025-01-01")
	require.NoError(t, err)
	assert.Equal(t, []string{"viejo"}, ids(list))
}

func TestListByRange_FechasInvalidas(t *testing.T) {
	uc := history.NewHistoryUseCase(memory.NewStore().History())
	ctx := context.Background()

	_, err := uc.ListByRange(ctx, "10/03/2024", "2024-13-01")
	var ve *domain.ValidationError
	require.True(t, errors.As(err, &ve))
	require.Len(t, ve.Fields, 2)
	assert.Equal(t, "startDate", ve.Fields[0].Field)
	assert.Equal(t, "endDate", ve.Fields[1].Field)

	_, err = uc.ListByRange(ctx, "2024-03-10", "2024-03-01")
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

// ──────────────────────────────────────────────────────────────────────────────
// Search
// ──────────────────────────────────────────────────────────────────────────────

func TestSearch_TipoYTextoSinTildes(t *testing.T) {
	store := memory.NewStore()
	at := time.Date(2024, 3, 10, 8, 0, 0, 0, time.UTC)
	appendAt(t, store, at, entity.MovementEntry, "Café Molido", "Block 1, Level 2, AP1")
	appendAt(t, store, at.Add(time.Minute), entity.MovementKanbanAdd, "Cafetera", "Kanban Green")
	appendAt(t, store, at.Add(2*time.Minute), entity.MovementEntry, "Azúcar", "Block 2, Level 1, AP2")

	uc := history.NewHistoryUseCase(store.History())
	ctx := context.Background()

	list, err := uc.Search(ctx, dto.HistoryQuery{Search: "CAFE"})
	require.NoError(t, err)
	assert.Equal(t, []string{"Cafetera", "Café Molido"}, ids(list))

	list, err = uc.Search(ctx, dto.HistoryQuery{Search: "cafe", Type: entity.MovementEntry})
	require.NoError(t, err)
	assert.Equal(t, []string{"Café Molido"}, ids(list))

	list, err = uc.Search(ctx, dto.HistoryQuery{Search: "kanban green"})
	require.NoError(t, err)
	assert.Equal(t, []string{"Cafetera"}, ids(list))

	list, err = uc.Search(ctx, dto.HistoryQuery{Type: "all"})
	require.NoError(t, err)
	assert.Len(t, list, 3)

	_, err = uc.Search(ctx, dto.HistoryQuery{Type: "teleport"})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestTypeLabel(t *testing.T) {
	assert.Equal(t, "Entrada", history.TypeLabel(entity.MovementEntry))
	assert.Equal(t, "Kanban - Expedición", history.TypeLabel(entity.MovementKanbanExpedite))
	assert.Equal(t, "otro", history.TypeLabel("otro"))
}
