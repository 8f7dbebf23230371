package history_test

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/almacen-api/internal/application/dto"
	"github.com/jhoicas/almacen-api/internal/application/history"
	"github.com/jhoicas/almacen-api/internal/domain"
	"github.com/jhoicas/almacen-api/internal/domain/entity"
	"github.com/jhoicas/almacen-api/internal/infrastructure/memory"
)

// countRenderer escribe cuántos registros recibió.
type countRenderer struct{ got history.Report }

func (r *countRenderer) Render(_ context.Context, rep history.Report) ([]byte, error) {
	r.got = rep
	return []byte(fmt.Sprintf("%d", len(rep.Entries))), nil
}
func (r *countRenderer) ContentType() string { return "text/plain" }
func (r *countRenderer) Extension() string   { return "txt" }

func TestExport_FiltraYNombraArchivo(t *testing.T) {
	store := memory.NewStore()
	at := time.Date(2024, 3, 10, 8, 0, 0, 0, time.UTC)
	appendAt(t, store, at, entity.MovementEntry, "Harina", "L")
	appendAt(t, store, at, entity.MovementExit, "Harina", "L")

	ledger := history.NewLedger(func() time.Time { return at })
	r := &countRenderer{}
	uc := history.NewExportUseCase(history.NewHistoryUseCase(store.History()), ledger, r)

	data, ct, name, err := uc.Export(context.Background(), "TXT", dto.HistoryQuery{
		StartDate: "2024-03-01",
		Type:      entity.MovementExit,
	})
	require.NoError(t, err)
	assert.Equal(t, "1", string(data))
	assert.Equal(t, "text/plain", ct)
	assert.Equal(t, "historico_2024-03-01_hoy.txt", name)
	assert.Equal(t, at, r.got.GeneratedAt)
}

func TestExport_FormatoDesconocido(t *testing.T) {
	uc := history.NewExportUseCase(history.NewHistoryUseCase(memory.NewStore().History()), history.NewLedger(nil))

	_, _, _, err := uc.Export(context.Background(), "xlsx", dto.HistoryQuery{})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}
