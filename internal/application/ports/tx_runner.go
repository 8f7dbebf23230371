package ports

import (
	"context"

	"github.com/jhoicas/almacen-api/internal/domain/repository"
)

// TxFunc recibe repositorios atados a la misma transacción.
type TxFunc func(
	posRepo repository.PositionRepository,
	kanbanRepo repository.KanbanRepository,
	historyRepo repository.MovementHistoryRepository,
) error

// TxRunner ejecuta fn dentro de una transacción: si fn devuelve error nada se confirma.
// Garantiza que el cambio en la colección y el registro en el histórico sean una sola unidad.
type TxRunner interface {
	Run(ctx context.Context, fn TxFunc) error
}
