// Package warehouse contiene los casos de uso del porta-palete (20 posiciones fijas).
package warehouse

import (
	"context"
	"fmt"

	"github.com/jhoicas/almacen-api/internal/application/dto"
	"github.com/jhoicas/almacen-api/internal/application/history"
	"github.com/jhoicas/almacen-api/internal/application/ports"
	"github.com/jhoicas/almacen-api/internal/domain"
	"github.com/jhoicas/almacen-api/internal/domain/entity"
	"github.com/jhoicas/almacen-api/internal/domain/repository"
)

// Textos de detalle para el histórico.
const (
	detailEntry = "Position filled"
	detailEdit  = "Position updated"
	detailExit  = "Position cleared"
)

// PositionUseCase llena, vacía y lista posiciones; cada cambio queda en el histórico
// dentro de la misma transacción.
type PositionUseCase struct {
	txRunner ports.TxRunner
	posRepo  repository.PositionRepository
	ledger   *history.Ledger
}

// NewPositionUseCase construye el caso de uso.
func NewPositionUseCase(
	txRunner ports.TxRunner,
	posRepo repository.PositionRepository,
	ledger *history.Ledger,
) *PositionUseCase {
	return &PositionUseCase{
		txRunner: txRunner,
		posRepo:  posRepo,
		ledger:   ledger,
	}
}

// Initialize crea las 20 posiciones vacías si todavía no existe ninguna.
// Es idempotente: si ya hay posiciones no crea ni reinicia nada. Devuelve cuántas creó.
func (uc *PositionUseCase) Initialize(ctx context.Context) (int, error) {
	created := 0
	err := uc.txRunner.Run(ctx, func(
		posRepo repository.PositionRepository,
		_ repository.KanbanRepository,
		_ repository.MovementHistoryRepository,
	) error {
		n, err := posRepo.Count(ctx)
		if err != nil {
			return err
		}
		if n > 0 {
			return nil
		}
		for _, p := range entity.AllPositions(uc.ledger.Now()) {
			if err := posRepo.Create(ctx, p); err != nil {
				return err
			}
			created++
		}
		return nil
	})
	if err != nil {
		return 0, fmt.Errorf("initialize positions: %w", err)
	}
	return created, nil
}

// List devuelve las posiciones: bloque ASC, nivel DESC, slot ASC.
func (uc *PositionUseCase) List(ctx context.Context) ([]dto.PositionResponse, error) {
	list, err := uc.posRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list positions: %w", err)
	}
	out := make([]dto.PositionResponse, 0, len(list))
	for _, p := range list {
		out = append(out, toPositionResponse(p))
	}
	return out, nil
}

// GetByID devuelve la posición o domain.ErrNotFound.
func (uc *PositionUseCase) GetByID(ctx context.Context, id string) (*dto.PositionResponse, error) {
	p, err := uc.posRepo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get position: %w", err)
	}
	if p == nil {
		return nil, domain.ErrNotFound
	}
	out := toPositionResponse(p)
	return &out, nil
}

// Fill valida los datos, sobrescribe todos los campos del producto y registra
// "entry" si la posición estaba vacía o "edit" si ya estaba ocupada.
func (uc *PositionUseCase) Fill(ctx context.Context, id string, in dto.ProductRequest) (*dto.PositionResponse, error) {
	data := in.ToEntity()
	if err := data.Validate(); err != nil {
		return nil, err
	}

	var updated *entity.StoragePosition
	err := uc.txRunner.Run(ctx, func(
		posRepo repository.PositionRepository,
		_ repository.KanbanRepository,
		historyRepo repository.MovementHistoryRepository,
	) error {
		p, err := posRepo.GetByID(ctx, id)
		if err != nil {
			return err
		}
		if p == nil {
			return domain.ErrNotFound
		}
		// Se decide antes de mutar.
		wasEmpty := p.IsEmpty()

		now := uc.ledger.Now()
		p.Fill(data, now)
		if err := posRepo.Update(ctx, p); err != nil {
			return err
		}

		typ, details := entity.MovementEdit, detailEdit
		if wasEmpty {
			typ, details = entity.MovementEntry, detailEntry
		}
		mov := entity.NewMovement(typ, now, data, p.Location())
		mov.Details = details
		if err := uc.ledger.Append(ctx, historyRepo, mov); err != nil {
			return err
		}
		updated = p
		return nil
	})
	if err != nil {
		return nil, err
	}
	out := toPositionResponse(updated)
	return &out, nil
}

// Clear vacía la posición. Si estaba ocupada registra "exit" con la copia de los
// datos previos; vaciar una posición ya vacía no escribe nada.
func (uc *PositionUseCase) Clear(ctx context.Context, id string) (*dto.PositionResponse, error) {
	var cleared *entity.StoragePosition
	err := uc.txRunner.Run(ctx, func(
		posRepo repository.PositionRepository,
		_ repository.KanbanRepository,
		historyRepo repository.MovementHistoryRepository,
	) error {
		p, err := posRepo.GetByID(ctx, id)
		if err != nil {
			return err
		}
		if p == nil {
			return domain.ErrNotFound
		}
		if p.IsEmpty() {
			cleared = p
			return nil
		}

		snapshot := *p.Product
		now := uc.ledger.Now()
		p.Clear(now)
		if err := posRepo.Update(ctx, p); err != nil {
			return err
		}
		mov := entity.NewMovement(entity.MovementExit, now, snapshot, p.Location())
		mov.Details = detailExit
		if err := uc.ledger.Append(ctx, historyRepo, mov); err != nil {
			return err
		}
		cleared = p
		return nil
	})
	if err != nil {
		return nil, err
	}
	out := toPositionResponse(cleared)
	return &out, nil
}

func toPositionResponse(p *entity.StoragePosition) dto.PositionResponse {
	out := dto.PositionResponse{
		ID:        p.ID,
		Block:     p.Block,
		Level:     p.Level,
		Position:  p.Slot,
		IsEmpty:   p.IsEmpty(),
		UpdatedAt: p.UpdatedAt,
	}
	if d := p.Product; d != nil {
		qty := d.Quantity
		out.ProductName = d.ProductName
		out.ProductCode = d.ProductCode
		out.ClientName = d.ClientName
		out.Quantity = &qty
		out.StorageType = d.StorageType
		out.EntryDate = d.EntryDate
		out.Address = d.Address
		out.Observations = d.Observations
	}
	return out
}
