// Package history contiene el libro de movimientos (append-only) y sus consultas.
package history

import (
	"context"
	"fmt"
	"time"

	"github.com/oklog/ulid/v2"

	"github.com/jhoicas/almacen-api/internal/domain/entity"
	"github.com/jhoicas/almacen-api/internal/domain/repository"
)

// Ledger asigna identidad y hora del servidor a los movimientos antes de guardarlos.
// Es el único punto por el que se escribe en el histórico.
type Ledger struct {
	now   func() time.Time
	newID func() string
}

// NewLedger construye el libro. clock nil usa la hora del sistema.
func NewLedger(clock func() time.Time) *Ledger {
	if clock == nil {
		clock = time.Now
	}
	return &Ledger{
		now:   func() time.Time { return clock().UTC() },
		newID: func() string { return ulid.Make().String() },
	}
}

// Now hora del servidor (UTC) para sellar movimientos y actualizaciones.
func (l *Ledger) Now() time.Time { return l.now() }

// Append valida el registro, le asigna un ID nuevo y lo inserta tal cual.
// Un registro incompleto devuelve domain.ErrInvariantViolation.
func (l *Ledger) Append(ctx context.Context, repo repository.MovementHistoryRepository, m *entity.MovementHistory) error {
	if err := m.CheckInvariants(); err != nil {
		return err
	}
	m.ID = l.newID()
	if err := repo.Create(ctx, m); err != nil {
		return fmt.Errorf("append movement: %w", err)
	}
	return nil
}
