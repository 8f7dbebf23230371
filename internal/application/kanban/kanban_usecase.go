// Package kanban contiene los casos de uso de la cola de expedición (green → yellow → red).
package kanban

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/jhoicas/almacen-api/internal/application/dto"
	"github.com/jhoicas/almacen-api/internal/application/history"
	"github.com/jhoicas/almacen-api/internal/application/ports"
	"github.com/jhoicas/almacen-api/internal/domain"
	"github.com/jhoicas/almacen-api/internal/domain/entity"
	"github.com/jhoicas/almacen-api/internal/domain/repository"
)

// Motivos de retiro de un palé. Ambos quedan como kanban_expedite.
const (
	ReasonExpedite = "expedite"
	ReasonDiscard  = "discard"
)

const (
	detailAdd      = "Added to kanban"
	detailExpedite = "Expedited from kanban"
	detailDiscard  = "Discarded from kanban"
	detailEdit     = "Kanban pallet updated"
)

// Options políticas configurables del kanban.
type Options struct {
	// LogPlainEdits registra un "edit" cuando se modifica un palé sin cambiar de etapa.
	LogPlainEdits bool
}

// KanbanUseCase gestiona los palés del kanban y su rastro en el histórico.
type KanbanUseCase struct {
	txRunner   ports.TxRunner
	kanbanRepo repository.KanbanRepository
	ledger     *history.Ledger
	opts       Options
}

// NewKanbanUseCase construye el caso de uso.
func NewKanbanUseCase(
	txRunner ports.TxRunner,
	kanbanRepo repository.KanbanRepository,
	ledger *history.Ledger,
	opts Options,
) *KanbanUseCase {
	return &KanbanUseCase{
		txRunner:   txRunner,
		kanbanRepo: kanbanRepo,
		ledger:     ledger,
		opts:       opts,
	}
}

// List devuelve todos los palés, sin orden garantizado.
func (uc *KanbanUseCase) List(ctx context.Context) ([]dto.KanbanResponse, error) {
	list, err := uc.kanbanRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list kanban: %w", err)
	}
	out := make([]dto.KanbanResponse, 0, len(list))
	for _, k := range list {
		out = append(out, toKanbanResponse(k))
	}
	return out, nil
}

// GetByID devuelve el palé o domain.ErrNotFound.
func (uc *KanbanUseCase) GetByID(ctx context.Context, id string) (*dto.KanbanResponse, error) {
	k, err := uc.kanbanRepo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get kanban pallet: %w", err)
	}
	if k == nil {
		return nil, domain.ErrNotFound
	}
	out := toKanbanResponse(k)
	return &out, nil
}

// Add crea un palé en la etapa indicada y registra kanban_add.
func (uc *KanbanUseCase) Add(ctx context.Context, in dto.CreateKanbanRequest) (*dto.KanbanResponse, error) {
	stage := strings.TrimSpace(in.Stage)
	data := in.ProductRequest.ToEntity()

	v := &domain.ValidationError{}
	if !entity.ValidStage(stage) {
		v.Add("stage", "debe ser green, yellow o red")
	}
	if err := data.Validate(); err != nil {
		var pv *domain.ValidationError
		if !errors.As(err, &pv) {
			return nil, err
		}
		v.Fields = append(v.Fields, pv.Fields...)
	}
	if err := v.OrNil(); err != nil {
		return nil, err
	}

	now := uc.ledger.Now()
	pallet := &entity.KanbanPallet{
		ID:        uuid.New().String(),
		Stage:     stage,
		Product:   data,
		CreatedAt: now,
		UpdatedAt: now,
	}
	err := uc.txRunner.Run(ctx, func(
		_ repository.PositionRepository,
		kanbanRepo repository.KanbanRepository,
		historyRepo repository.MovementHistoryRepository,
	) error {
		if err := kanbanRepo.Create(ctx, pallet); err != nil {
			return err
		}
		mov := entity.NewMovement(entity.MovementKanbanAdd, now, data, entity.StageLabel(stage))
		mov.Details = detailAdd
		return uc.ledger.Append(ctx, historyRepo, mov)
	})
	if err != nil {
		return nil, err
	}
	out := toKanbanResponse(pallet)
	return &out, nil
}

// Update aplica cambios parciales. Un cambio de etapa registra kanban_move;
// una edición sin cambio de etapa sólo se registra si LogPlainEdits está activo.
func (uc *KanbanUseCase) Update(ctx context.Context, id string, in dto.UpdateKanbanRequest) (*dto.KanbanResponse, error) {
	patch := in.ToPatch()
	if patch.Stage != nil {
		s := strings.TrimSpace(*patch.Stage)
		patch.Stage = &s
	}
	if err := patch.Validate(); err != nil {
		return nil, err
	}

	var updated *entity.KanbanPallet
	err := uc.txRunner.Run(ctx, func(
		_ repository.PositionRepository,
		kanbanRepo repository.KanbanRepository,
		historyRepo repository.MovementHistoryRepository,
	) error {
		k, err := kanbanRepo.GetByID(ctx, id)
		if err != nil {
			return err
		}
		if k == nil {
			return domain.ErrNotFound
		}
		oldStage := k.Stage

		now := uc.ledger.Now()
		patch.Apply(k, now)
		if err := kanbanRepo.Update(ctx, k); err != nil {
			return err
		}

		var mov *entity.MovementHistory
		switch {
		case k.Stage != oldStage:
			from, to := entity.StageLabel(oldStage), entity.StageLabel(k.Stage)
			mov = entity.NewMovement(entity.MovementKanbanMove, now, k.Product, to)
			mov.PreviousLocation = from
			mov.Details = fmt.Sprintf("Moved from %s to %s", from, to)
		case uc.opts.LogPlainEdits && patch.HasProductChanges():
			mov = entity.NewMovement(entity.MovementEdit, now, k.Product, entity.StageLabel(k.Stage))
			mov.Details = detailEdit
		}
		if mov != nil {
			if err := uc.ledger.Append(ctx, historyRepo, mov); err != nil {
				return err
			}
		}
		updated = k
		return nil
	})
	if err != nil {
		return nil, err
	}
	out := toKanbanResponse(updated)
	return &out, nil
}

// Remove retira el palé (expedido o descartado): registra kanban_expedite con los
// datos previos y luego lo elimina. reason vacío equivale a "expedite".
func (uc *KanbanUseCase) Remove(ctx context.Context, id, reason string) error {
	details, err := removeDetails(reason)
	if err != nil {
		return err
	}
	return uc.txRunner.Run(ctx, func(
		_ repository.PositionRepository,
		kanbanRepo repository.KanbanRepository,
		historyRepo repository.MovementHistoryRepository,
	) error {
		k, err := kanbanRepo.GetByID(ctx, id)
		if err != nil {
			return err
		}
		if k == nil {
			return domain.ErrNotFound
		}
		mov := entity.NewMovement(entity.MovementKanbanExpedite, uc.ledger.Now(), k.Product, entity.StageLabel(k.Stage))
		mov.Details = details
		if err := uc.ledger.Append(ctx, historyRepo, mov); err != nil {
			return err
		}
		return kanbanRepo.Delete(ctx, id)
	})
}

func removeDetails(reason string) (string, error) {
	switch strings.ToLower(strings.TrimSpace(reason)) {
	case "", ReasonExpedite:
		return detailExpedite, nil
	case ReasonDiscard:
		return detailDiscard, nil
	default:
		return "", &domain.ValidationError{Fields: []domain.FieldError{
			{Field: "reason", Message: "debe ser expedite o discard"},
		}}
	}
}

func toKanbanResponse(k *entity.KanbanPallet) dto.KanbanResponse {
	return dto.KanbanResponse{
		ID:           k.ID,
		Stage:        k.Stage,
		ProductName:  k.Product.ProductName,
		ProductCode:  k.Product.ProductCode,
		ClientName:   k.Product.ClientName,
		Quantity:     k.Product.Quantity,
		StorageType:  k.Product.StorageType,
		EntryDate:    k.Product.EntryDate,
		Address:      k.Product.Address,
		Observations: k.Product.Observations,
		CreatedAt:    k.CreatedAt,
		UpdatedAt:    k.UpdatedAt,
	}
}
