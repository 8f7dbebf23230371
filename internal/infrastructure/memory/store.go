// Package memory implementa los puertos de persistencia sobre mapas en memoria.
// Se usa en tests y en despliegues efímeros (STORAGE_BACKEND=memory).
package memory

import (
	"context"
	"sync"

	"github.com/jhoicas/almacen-api/internal/application/ports"
	"github.com/jhoicas/almacen-api/internal/domain/entity"
)

var _ ports.TxRunner = (*Store)(nil)

type memoryState struct {
	positions map[string]*entity.StoragePosition
	pallets   map[string]*entity.KanbanPallet
	history   []*entity.MovementHistory
}

func newMemoryState() memoryState {
	return memoryState{
		positions: map[string]*entity.StoragePosition{},
		pallets:   map[string]*entity.KanbanPallet{},
	}
}

// clone copia profunda de posiciones y palés; los registros del histórico son
// inmutables y se comparten.
func (s memoryState) clone() memoryState {
	cp := memoryState{
		positions: make(map[string]*entity.StoragePosition, len(s.positions)),
		pallets:   make(map[string]*entity.KanbanPallet, len(s.pallets)),
		history:   append([]*entity.MovementHistory(nil), s.history...),
	}
	for k, v := range s.positions {
		cp.positions[k] = v.Clone()
	}
	for k, v := range s.pallets {
		cp.pallets[k] = v.Clone()
	}
	return cp
}

// access abstrae el acceso al estado: con bloqueo (Store) o sin él (dentro de una tx).
type access interface {
	read(fn func(*memoryState) error) error
	write(fn func(*memoryState) error) error
}

// Store estado compartido del proceso. Cada Store es independiente: no hay singleton global.
type Store struct {
	mu    sync.RWMutex
	state memoryState
}

// NewStore crea un almacén vacío (sin posiciones; el seed lo hace el caso de uso).
func NewStore() *Store {
	return &Store{state: newMemoryState()}
}

func (s *Store) read(fn func(*memoryState) error) error {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return fn(&s.state)
}

func (s *Store) write(fn func(*memoryState) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return fn(&s.state)
}

// Positions repositorio de posiciones fuera de transacción.
func (s *Store) Positions() *PositionRepo { return &PositionRepo{st: s} }

// Kanban repositorio de palés fuera de transacción.
func (s *Store) Kanban() *KanbanRepo { return &KanbanRepo{st: s} }

// History repositorio del histórico fuera de transacción.
func (s *Store) History() *MovementHistoryRepo { return &MovementHistoryRepo{st: s} }

// Run ejecuta fn sobre una copia del estado y la publica sólo si fn termina sin error.
func (s *Store) Run(ctx context.Context, fn ports.TxFunc) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	tx := &txState{state: s.state.clone()}
	if err := fn(&PositionRepo{st: tx}, &KanbanRepo{st: tx}, &MovementHistoryRepo{st: tx}); err != nil {
		return err
	}
	s.state = tx.state
	return nil
}

// Close no libera nada; existe para cumplir el mismo ciclo de vida que los backends SQL.
func (s *Store) Close() error { return nil }

type txState struct {
	state memoryState
}

func (t *txState) read(fn func(*memoryState) error) error  { return fn(&t.state) }
func (t *txState) write(fn func(*memoryState) error) error { return fn(&t.state) }
