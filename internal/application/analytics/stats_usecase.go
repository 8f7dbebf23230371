// Package analytics contiene el agregador de estadísticas del almacén.
package analytics

import (
	"context"
	"fmt"

	"github.com/jhoicas/almacen-api/internal/application/dto"
	"github.com/jhoicas/almacen-api/internal/domain/entity"
	"github.com/jhoicas/almacen-api/internal/domain/repository"
)

// StatsUseCase recalcula los conteos en cada llamada; no guarda nada en caché.
type StatsUseCase struct {
	posRepo    repository.PositionRepository
	kanbanRepo repository.KanbanRepository
}

// NewStatsUseCase construye el caso de uso.
func NewStatsUseCase(posRepo repository.PositionRepository, kanbanRepo repository.KanbanRepository) *StatsUseCase {
	return &StatsUseCase{posRepo: posRepo, kanbanRepo: kanbanRepo}
}

// GetStats cuenta posiciones ocupadas/libres y palés por etapa.
// Las dos lecturas van en paralelo.
func (uc *StatsUseCase) GetStats(ctx context.Context) (*dto.StatsResponse, error) {
	type positionsResult struct {
		list []*entity.StoragePosition
		err  error
	}
	type palletsResult struct {
		list []*entity.KanbanPallet
		err  error
	}

	posCh := make(chan positionsResult, 1)
	kanbanCh := make(chan palletsResult, 1)

	go func() {
		list, err := uc.posRepo.List(ctx)
		posCh <- positionsResult{list, err}
	}()
	go func() {
		list, err := uc.kanbanRepo.List(ctx)
		kanbanCh <- palletsResult{list, err}
	}()

	positions := <-posCh
	pallets := <-kanbanCh

	if positions.err != nil {
		return nil, fmt.Errorf("stats positions: %w", positions.err)
	}
	if pallets.err != nil {
		return nil, fmt.Errorf("stats kanban: %w", pallets.err)
	}

	s := Compute(positions.list, pallets.list)
	return &dto.StatsResponse{
		TotalPositions:    s.TotalPositions,
		OccupiedPositions: s.OccupiedPositions,
		FreePositions:     s.FreePositions,
		KanbanGreen:       s.KanbanGreen,
		KanbanYellow:      s.KanbanYellow,
		KanbanRed:         s.KanbanRed,
	}, nil
}

// Compute es el conteo puro. El total es siempre 20 aunque falten filas;
// las libres son total - ocupadas.
func Compute(positions []*entity.StoragePosition, pallets []*entity.KanbanPallet) entity.Stats {
	s := entity.Stats{TotalPositions: entity.TotalPositions}
	for _, p := range positions {
		if !p.IsEmpty() {
			s.OccupiedPositions++
		}
	}
	s.FreePositions = s.TotalPositions - s.OccupiedPositions

	for _, k := range pallets {
		switch k.Stage {
		case entity.StageGreen:
			s.KanbanGreen++
		case entity.StageYellow:
			s.KanbanYellow++
		case entity.StageRed:
			s.KanbanRed++
		}
	}
	return s
}
