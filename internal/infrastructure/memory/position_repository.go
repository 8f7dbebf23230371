package memory

import (
	"context"
	"fmt"
	"sort"

	"github.com/jhoicas/almacen-api/internal/domain"
	"github.com/jhoicas/almacen-api/internal/domain/entity"
	"github.com/jhoicas/almacen-api/internal/domain/repository"
)

var _ repository.PositionRepository = (*PositionRepo)(nil)

// PositionRepo posiciones en memoria.
type PositionRepo struct {
	st access
}

func (r *PositionRepo) List(_ context.Context) ([]*entity.StoragePosition, error) {
	var list []*entity.StoragePosition
	err := r.st.read(func(s *memoryState) error {
		list = make([]*entity.StoragePosition, 0, len(s.positions))
		for _, p := range s.positions {
			list = append(list, p.Clone())
		}
		return nil
	})
	sort.Slice(list, func(i, j int) bool { return entity.LessPosition(list[i], list[j]) })
	return list, err
}

func (r *PositionRepo) GetByID(_ context.Context, id string) (*entity.StoragePosition, error) {
	var out *entity.StoragePosition
	err := r.st.read(func(s *memoryState) error {
		out = s.positions[id].Clone()
		return nil
	})
	return out, err
}

func (r *PositionRepo) Count(_ context.Context) (int, error) {
	var n int
	err := r.st.read(func(s *memoryState) error {
		n = len(s.positions)
		return nil
	})
	return n, err
}

func (r *PositionRepo) Create(_ context.Context, position *entity.StoragePosition) error {
	return r.st.write(func(s *memoryState) error {
		if _, ok := s.positions[position.ID]; ok {
			return fmt.Errorf("create position %s: %w", position.ID, domain.ErrDuplicate)
		}
		s.positions[position.ID] = position.Clone()
		return nil
	})
}

func (r *PositionRepo) Update(_ context.Context, position *entity.StoragePosition) error {
	return r.st.write(func(s *memoryState) error {
		if _, ok := s.positions[position.ID]; !ok {
			return domain.ErrNotFound
		}
		s.positions[position.ID] = position.Clone()
		return nil
	})
}
