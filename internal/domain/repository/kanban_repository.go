package repository

import (
	"context"

	"github.com/jhoicas/almacen-api/internal/domain/entity"
)

// KanbanRepository define el puerto de persistencia para los palés del kanban.
type KanbanRepository interface {
	// List devuelve todos los palés sin orden garantizado.
	List(ctx context.Context) ([]*entity.KanbanPallet, error)
	// GetByID devuelve (nil, nil) si el palé no existe.
	GetByID(ctx context.Context, id string) (*entity.KanbanPallet, error)
	Create(ctx context.Context, pallet *entity.KanbanPallet) error
	Update(ctx context.Context, pallet *entity.KanbanPallet) error
	Delete(ctx context.Context, id string) error
}
