package memory

import (
	"context"
	"fmt"

	"github.com/jhoicas/almacen-api/internal/domain"
	"github.com/jhoicas/almacen-api/internal/domain/entity"
	"github.com/jhoicas/almacen-api/internal/domain/repository"
)

var _ repository.KanbanRepository = (*KanbanRepo)(nil)

// KanbanRepo palés en memoria.
type KanbanRepo struct {
	st access
}

func (r *KanbanRepo) List(_ context.Context) ([]*entity.KanbanPallet, error) {
	var list []*entity.KanbanPallet
	err := r.st.read(func(s *memoryState) error {
		list = make([]*entity.KanbanPallet, 0, len(s.pallets))
		for _, k := range s.pallets {
			list = append(list, k.Clone())
		}
		return nil
	})
	return list, err
}

func (r *KanbanRepo) GetByID(_ context.Context, id string) (*entity.KanbanPallet, error) {
	var out *entity.KanbanPallet
	err := r.st.read(func(s *memoryState) error {
		out = s.pallets[id].Clone()
		return nil
	})
	return out, err
}

func (r *KanbanRepo) Create(_ context.Context, pallet *entity.KanbanPallet) error {
	return r.st.write(func(s *memoryState) error {
		if _, ok := s.pallets[pallet.ID]; ok {
			return fmt.Errorf("create pallet %s: %w", pallet.ID, domain.ErrDuplicate)
		}
		s.pallets[pallet.ID] = pallet.Clone()
		return nil
	})
}

func (r *KanbanRepo) Update(_ context.Context, pallet *entity.KanbanPallet) error {
	return r.st.write(func(s *memoryState) error {
		if _, ok := s.pallets[pallet.ID]; !ok {
			return domain.ErrNotFound
		}
		s.pallets[pallet.ID] = pallet.Clone()
		return nil
	})
}

func (r *KanbanRepo) Delete(_ context.Context, id string) error {
	return r.st.write(func(s *memoryState) error {
		if _, ok := s.pallets[id]; !ok {
			return domain.ErrNotFound
		}
		delete(s.pallets, id)
		return nil
	})
}
