package repository

import (
	"context"
	"time"

	"github.com/jhoicas/almacen-api/internal/domain/entity"
)

// MovementHistoryRepository puerto del histórico de movimientos.
// Sólo inserción y lectura: no existe Update ni Delete.
type MovementHistoryRepository interface {
	Create(ctx context.Context, movement *entity.MovementHistory) error
	// List devuelve los registros con from <= timestamp <= to (límites nil = abiertos),
	// del más reciente al más antiguo.
	List(ctx context.Context, from, to *time.Time) ([]*entity.MovementHistory, error)
}
