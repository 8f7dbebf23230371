package warehouse_test

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
	"github.com/jhoicas/almacen-api/internal/application/ports"
	"github.com/jhoicas/almacen-api/internal/application/warehouse"
	"github.com/jhoicas/almacen-api/internal/domain"
	"github.com/jhoicas/almacen-api/internal/domain/entity"
	"github.com/jhoicas/almacen-api/internal/domain/repository"
	"github.com/jhoicas/almacen-api/internal/infrastructure/memory"
)

// ──────────────────────────────────────────────────────────────────────────────
// Helpers de test
// ──────────────────────────────────────────────────────────────────────────────

var fixedNow = time.Date(2024, 3, 10, 12, 0, 0, 0, time.UTC)

func newUseCase(t *testing.T) (*warehouse.PositionUseCase, *memory.Store) {
	t.Helper()
	store := memory.NewStore()
	ledger := history.NewLedger(func() time.Time { return fixedNow })
	uc := warehouse.NewPositionUseCase(store, store.Positions(), ledger)
	_, err := uc.Initialize(context.Background())
	require.NoError(t, err)
	return uc, store
}

func product(name, code string, qty int64) dto.ProductRequest {
	return dto.ProductRequest{
		ProductName: name,
		ProductCode: code,
		ClientName:  "Cliente Uno",
		Quantity:    decimal.NewFromInt(qty),
		EntryDate:   "2024-03-10",
	}
}

func movements(t *testing.T, store *memory.Store) []*entity.MovementHistory {
	t.Helper()
	list, err := store.History().List(context.Background(), nil, nil)
	require.NoError(t, err)
	return list
}

// failingHistory simula un histórico que rechaza toda escritura.
type failingHistory struct {
	repository.MovementHistoryRepository
}

func (failingHistory) Create(context.Context, *entity.MovementHistory) error {
	return errors.New("disco lleno")
}

// failingLedgerRunner corre la tx del store pero con un histórico que falla.
type failingLedgerRunner struct{ store *memory.Store }

func (r failingLedgerRunner) Run(ctx context.Context, fn ports.TxFunc) error {
	return r.store.Run(ctx, func(p repository.PositionRepository, k repository.KanbanRepository, h repository.MovementHistoryRepository) error {
		return fn(p, k, failingHistory{h})
	})
}

// ──────────────────────────────────────────────────────────────────────────────
// Initialize / List
// ──────────────────────────────────────────────────────────────────────────────

func TestInitialize_EsIdempotente(t *testing.T) {
	uc, _ := newUseCase(t)
	ctx := context.Background()

	n, err := uc.Initialize(ctx)
	require.NoError(t, err)
	assert.Equal(t, 0, n, "la segunda inicialización no crea nada")

	list, err := uc.List(ctx)
	require.NoError(t, err)
	require.Len(t, list, entity.TotalPositions)
	assert.Equal(t, "pos-1-5-AP1", list[0].ID)
	assert.Equal(t, "pos-2-1-AP2", list[len(list)-1].ID)
	for _, p := range list {
		assert.True(t, p.IsEmpty)
	}
}

func TestInitialize_NoReiniciaPosicionesOcupadas(t *testing.T) {
	uc, _ := newUseCase(t)
	ctx := context.Background()

	_, err := uc.Fill(ctx, "pos-2-3-AP2", product("Harina", "H-01", 5))
	require.NoError(t, err)
	_, err = uc.Initialize(ctx)
	require.NoError(t, err)

	got, err := uc.GetByID(ctx, "pos-2-3-AP2")
	require.NoError(t, err)
	assert.False(t, got.IsEmpty)
}

// ──────────────────────────────────────────────────────────────────────────────
// Fill
// ──────────────────────────────────────────────────────────────────────────────

func TestFill_RoundTrip(t *testing.T) {
	uc, _ := newUseCase(t)
	ctx := context.Background()

	in := product("Widget", "W-1", 10)
	in.StorageType = entity.StorageTypePallet
	in.Observations = "frágil"
	_, err := uc.Fill(ctx, "pos-1-5-AP1", in)
	require.NoError(t, err)

	got, err := uc.GetByID(ctx, "pos-1-5-AP1")
	require.NoError(t, err)
	assert.False(t, got.IsEmpty)
	assert.Equal(t, "Widget", got.ProductName)
	assert.Equal(t, "W-1", got.ProductCode)
	assert.Equal(t, "Cliente Uno", got.ClientName)
	require.NotNil(t, got.Quantity)
	assert.True(t, got.Quantity.Equal(decimal.NewFromInt(10)))
	assert.Equal(t, "palete", got.StorageType)
	assert.Equal(t, "2024-03-10", got.EntryDate)
	assert.Equal(t, "frágil", got.Observations)
	assert.Equal(t, fixedNow, got.UpdatedAt)
}

func TestFill_EntradaLuegoEdicion(t *testing.T) {
	uc, store := newUseCase(t)
	ctx := context.Background()

	_, err := uc.Fill(ctx, "pos-1-5-AP1", product("Widget", "W-1", 10))
	require.NoError(t, err)
	list := movements(t, store)
	require.Len(t, list, 1)
	assert.Equal(t, entity.MovementEntry, list[0].Type)
	assert.Equal(t, "Block 1, Level 5, AP1", list[0].Location)
	assert.Equal(t, "Widget", list[0].ProductName)
	assert.NotEmpty(t, list[0].ID)
	assert.Equal(t, fixedNow, list[0].Timestamp)

	_, err = uc.Fill(ctx, "pos-1-5-AP1", product("Widget", "W-1", 12))
	require.NoError(t, err)
	list = movements(t, store)
	require.Len(t, list, 2)
	assert.Equal(t, entity.MovementEdit, list[0].Type, "el más reciente va primero")
	assert.True(t, list[0].Quantity.Equal(decimal.NewFromInt(12)))
}

func TestFill_SobrescribeCamposOpcionales(t *testing.T) {
	uc, _ := newUseCase(t)
	ctx := context.Background()

	first := product("Widget", "W-1", 10)
	first.Address = "Calle 1"
	_, err := uc.Fill(ctx, "pos-1-1-AP1", first)
	require.NoError(t, err)

	second := product("Widget", "W-1", 10)
	second.ClientName = ""
	got, err := uc.Fill(ctx, "pos-1-1-AP1", second)
	require.NoError(t, err)
	assert.Empty(t, got.Address)
	assert.Empty(t, got.ClientName)
}

func TestFill_ValidacionNoEscribeNada(t *testing.T) {
	uc, store := newUseCase(t)
	ctx := context.Background()

	_, err := uc.Fill(ctx, "pos-1-5-AP1", dto.ProductRequest{ProductName: "  ", Quantity: decimal.Zero})
	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrInvalidInput))

	var ve *domain.ValidationError
	require.True(t, errors.As(err, &ve))
	fields := make([]string, 0, len(ve.Fields))
	for _, f := range ve.Fields {
		fields = append(fields, f.Field)
	}
	assert.Equal(t, []string{"productName", "productCode", "quantity", "entryDate"}, fields)

	got, err := uc.GetByID(ctx, "pos-1-5-AP1")
	require.NoError(t, err)
	assert.True(t, got.IsEmpty)
	assert.Empty(t, movements(t, store))
}

func TestFill_PosicionInexistente(t *testing.T) {
	uc, store := newUseCase(t)

	_, err := uc.Fill(context.Background(), "pos-9-9-AP1", product("Widget", "W-1", 1))
	assert.ErrorIs(t, err, domain.ErrNotFound)
	assert.Empty(t, movements(t, store))
}

func TestFill_RollbackSiFallaElHistorico(t *testing.T) {
	store := memory.NewStore()
	ledger := history.NewLedger(nil)
	seed := warehouse.NewPositionUseCase(store, store.Positions(), ledger)
	_, err := seed.Initialize(context.Background())
	require.NoError(t, err)

	uc := warehouse.NewPositionUseCase(failingLedgerRunner{store}, store.Positions(), ledger)
	_, err = uc.Fill(context.Background(), "pos-1-5-AP1", product("Widget", "W-1", 1))
	require.Error(t, err)

	got, err := uc.GetByID(context.Background(), "pos-1-5-AP1")
	require.NoError(t, err)
	assert.True(t, got.IsEmpty, "la posición no debe quedar llena sin su registro")
	assert.Empty(t, movements(t, store))
}

// ──────────────────────────────────────────────────────────────────────────────
// Clear
// ──────────────────────────────────────────────────────────────────────────────

func TestClear_RegistraSalidaConDatosPrevios(t *testing.T) {
	uc, store := newUseCase(t)
	ctx := context.Background()

	_, err := uc.Fill(ctx, "pos-2-4-AP2", product("Azúcar", "AZ-9", 7))
	require.NoError(t, err)

	got, err := uc.Clear(ctx, "pos-2-4-AP2")
	require.NoError(t, err)
	assert.True(t, got.IsEmpty)
	assert.Empty(t, got.ProductName)
	assert.Nil(t, got.Quantity)

	list := movements(t, store)
	require.Len(t, list, 2)
	exit := list[0]
	if exit.Type != entity.MovementExit {
		exit = list[1]
	}
	assert.Equal(t, entity.MovementExit, exit.Type)
	assert.Equal(t, "Azúcar", exit.ProductName)
	assert.Equal(t, "AZ-9", exit.ProductCode)
	assert.True(t, exit.Quantity.Equal(decimal.NewFromInt(7)))
	assert.Equal(t, "Block 2, Level 4, AP2", exit.Location)
}

func TestClear_PosicionVaciaNoRegistra(t *testing.T) {
	uc, store := newUseCase(t)

	got, err := uc.Clear(context.Background(), "pos-1-1-AP1")
	require.NoError(t, err)
	assert.True(t, got.IsEmpty)
	assert.Empty(t, movements(t, store))
}

func TestClear_PosicionInexistente(t *testing.T) {
	uc, _ := newUseCase(t)

	_, err := uc.Clear(context.Background(), "nope")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestGetByID_Inexistente(t *testing.T) {
	uc, _ := newUseCase(t)

	_, err := uc.GetByID(context.Background(), "pos-3-1-AP1")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}
