// Package bootstrap elige el backend de almacenamiento configurado y arma los casos de uso.
package bootstrap

import (
	"context"
	"fmt"

	"github.com/jhoicas/almacen-api/internal/application/ports"
	"github.com/jhoicas/almacen-api/internal/domain/repository"
	"github.com/jhoicas/almacen-api/internal/infrastructure/memory"
	"github.com/jhoicas/almacen-api/internal/infrastructure/postgres"
	"github.com/jhoicas/almacen-api/internal/infrastructure/sqlite"
	"github.com/jhoicas/almacen-api/pkg/config"
	"github.com/jhoicas/almacen-api/pkg/logger"
)

// Backend repositorios fuera de transacción + el runner transaccional del mismo backend.
type Backend struct {
	Name      string
	Positions repository.PositionRepository
	Kanban    repository.KanbanRepository
	History   repository.MovementHistoryRepository
	Tx        ports.TxRunner

	// Migrations scripts aplicados al abrir (sólo postgres).
	Migrations []string

	close func() error
}

// Close libera conexiones del backend.
func (b *Backend) Close() error {
	if b.close == nil {
		return nil
	}
	return b.close()
}

// Open abre exactamente un backend según STORAGE_BACKEND. En postgres aplica las
// migraciones pendientes; en sqlite el esquema se aplica al abrir.
func Open(ctx context.Context, cfg config.StorageConfig, db config.DBConfig, log *logger.Logger) (*Backend, error) {
	switch cfg.Backend {
	case config.BackendMemory, "":
		s := memory.NewStore()
		log.Warn().Msg("almacenamiento en memoria: los datos se pierden al reiniciar")
		return &Backend{
			Name:      config.BackendMemory,
			Positions: s.Positions(),
			Kanban:    s.Kanban(),
			History:   s.History(),
			Tx:        s,
			close:     s.Close,
		}, nil

	case config.BackendSQLite:
		log.Debug().Str("path", cfg.SQLitePath).Msg("abriendo SQLite")
		s, err := sqlite.Open(ctx, cfg.SQLitePath)
		if err != nil {
			return nil, err
		}
		log.Info().Str("path", cfg.SQLitePath).Msg("SQLite abierto")
		return &Backend{
			Name:      config.BackendSQLite,
			Positions: s.Positions(),
			Kanban:    s.Kanban(),
			History:   s.History(),
			Tx:        s,
			close:     s.Close,
		}, nil

	case config.BackendPostgres:
		log.Debug().
			Bool("database_url", db.DatabaseURL != "").
			Str("host", db.Host).
			Str("database", db.DBName).
			Msg("conectando a PostgreSQL")
		pool, err := postgres.NewPool(ctx, db)
		if err != nil {
			return nil, err
		}
		applied, err := postgres.Migrate(ctx, pool)
		if err != nil {
			pool.Close()
			return nil, err
		}
		if len(applied) > 0 {
			log.Info().Strs("migrations", applied).Msg("migraciones aplicadas")
		}
		log.Info().Msg("PostgreSQL conectado")
		return &Backend{
			Name:       config.BackendPostgres,
			Positions:  postgres.NewPositionRepository(pool),
			Kanban:     postgres.NewKanbanRepository(pool),
			History:    postgres.NewMovementHistoryRepository(pool),
			Tx:         postgres.NewTxRunner(pool),
			Migrations: applied,
			close: func() error {
				pool.Close()
				return nil
			},
		}, nil
	}
	return nil, fmt.Errorf("backend de almacenamiento desconocido: %q", cfg.Backend)
}
