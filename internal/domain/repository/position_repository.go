package repository

import (
	"context"

	"github.com/jhoicas/almacen-api/internal/domain/entity"
)

// PositionRepository define el puerto de persistencia para las posiciones del porta-palete.
// Las posiciones nunca se eliminan: sólo se crean una vez (seed) y se actualizan.
type PositionRepository interface {
	// List devuelve todas las posiciones ordenadas por bloque ASC, nivel DESC, slot ASC.
	List(ctx context.Context) ([]*entity.StoragePosition, error)
	// GetByID devuelve (nil, nil) si la posición no existe.
	GetByID(ctx context.Context, id string) (*entity.StoragePosition, error)
	Count(ctx context.Context) (int, error)
	Create(ctx context.Context, position *entity.StoragePosition) error
	Update(ctx context.Context, position *entity.StoragePosition) error
}
