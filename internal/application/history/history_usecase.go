package history

import (
	"context"
	"fmt"
	"strings"

	"github.com/jhoicas/almacen-api/internal/application/dto"
	"github.com/jhoicas/almacen-api/internal/domain"
	"github.com/jhoicas/almacen-api/internal/domain/entity"
	"github.com/jhoicas/almacen-api/internal/domain/repository"
)

// HistoryUseCase consultas de sólo lectura sobre el histórico de movimientos.
type HistoryUseCase struct {
	repo repository.MovementHistoryRepository
}

// NewHistoryUseCase construye el caso de uso.
func NewHistoryUseCase(repo repository.MovementHistoryRepository) *HistoryUseCase {
	return &HistoryUseCase{repo: repo}
}

// ListAll devuelve todo el histórico, más reciente primero.
func (uc *HistoryUseCase) ListAll(ctx context.Context) ([]dto.HistoryResponse, error) {
	list, err := uc.repo.List(ctx, nil, nil)
	if err != nil {
		return nil, fmt.Errorf("list history: %w", err)
	}
	return toHistoryResponses(list), nil
}

// ListByRange devuelve los registros entre dos fechas (YYYY-MM-DD), con la ventana
// ensanchada un día por lado.
func (uc *HistoryUseCase) ListByRange(ctx context.Context, startDate, endDate string) ([]dto.HistoryResponse, error) {
	return uc.Search(ctx, dto.HistoryQuery{StartDate: startDate, EndDate: endDate})
}

// Search aplica rango de fechas, tipo de movimiento y texto libre.
func (uc *HistoryUseCase) Search(ctx context.Context, q dto.HistoryQuery) ([]dto.HistoryResponse, error) {
	list, err := uc.entries(ctx, q)
	if err != nil {
		return nil, err
	}
	return toHistoryResponses(list), nil
}

// entries devuelve las entidades filtradas; lo usan también las exportaciones.
func (uc *HistoryUseCase) entries(ctx context.Context, q dto.HistoryQuery) ([]*entity.MovementHistory, error) {
	from, to, err := Window(q.StartDate, q.EndDate)
	if err != nil {
		return nil, err
	}
	typ := strings.TrimSpace(q.Type)
	if typ == "all" {
		typ = ""
	}
	if typ != "" && !entity.ValidMovementType(typ) {
		return nil, &domain.ValidationError{Fields: []domain.FieldError{
			{Field: "type", Message: "tipo de movimiento desconocido"},
		}}
	}

	list, err := uc.repo.List(ctx, from, to)
	if err != nil {
		return nil, fmt.Errorf("list history: %w", err)
	}
	m := newMatcher(typ, q.Search)
	out := list[:0]
	for _, e := range list {
		if m.match(e) {
			out = append(out, e)
		}
	}
	return out, nil
}

func toHistoryResponses(list []*entity.MovementHistory) []dto.HistoryResponse {
	out := make([]dto.HistoryResponse, 0, len(list))
	for _, m := range list {
		out = append(out, toHistoryResponse(m))
	}
	return out
}

func toHistoryResponse(m *entity.MovementHistory) dto.HistoryResponse {
	return dto.HistoryResponse{
		ID:               m.ID,
		Timestamp:        m.Timestamp,
		Type:             m.Type,
		ProductName:      m.ProductName,
		ProductCode:      m.ProductCode,
		ClientName:       m.ClientName,
		Quantity:         m.Quantity,
		Location:         m.Location,
		PreviousLocation: m.PreviousLocation,
		Details:          m.Details,
	}
}
