package memory

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/jhoicas/almacen-api/internal/domain"
	"github.com/jhoicas/almacen-api/internal/domain/entity"
	"github.com/jhoicas/almacen-api/internal/domain/repository"
)

var _ repository.MovementHistoryRepository = (*MovementHistoryRepo)(nil)

// MovementHistoryRepo histórico en memoria (sólo append).
type MovementHistoryRepo struct {
	st access
}

func (r *MovementHistoryRepo) Create(_ context.Context, movement *entity.MovementHistory) error {
	return r.st.write(func(s *memoryState) error {
		for _, m := range s.history {
			if m.ID == movement.ID {
				return fmt.Errorf("create movement %s: %w", movement.ID, domain.ErrDuplicate)
			}
		}
		cp := *movement
		s.history = append(s.history, &cp)
		return nil
	})
}

func (r *MovementHistoryRepo) List(_ context.Context, from, to *time.Time) ([]*entity.MovementHistory, error) {
	var list []*entity.MovementHistory
	err := r.st.read(func(s *memoryState) error {
		for _, m := range s.history {
			if from != nil && m.Timestamp.Before(*from) {
				continue
			}
			if to != nil && m.Timestamp.After(*to) {
				continue
			}
			cp := *m
			list = append(list, &cp)
		}
		return nil
	})
	sort.Slice(list, func(i, j int) bool { return entity.LessMovement(list[i], list[j]) })
	return list, err
}
