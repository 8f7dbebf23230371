package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/jhoicas/almacen-api/internal/bootstrap"
	"github.com/jhoicas/almacen-api/pkg/config"
	"github.com/jhoicas/almacen-api/pkg/logger"
)

// app estado compartido por los subcomandos; se llena en PersistentPreRunE.
type app struct {
	storage    string
	sqlitePath string

	cfg     *config.Config
	log     *logger.Logger
	backend *bootstrap.Backend
	svc     *bootstrap.Services
}

func newRootCmd() *cobra.Command {
	a := &app{}

	root := &cobra.Command{
		Use:           "almacenctl",
		Short:         "Operación del almacén (porta-palete, kanban e histórico)",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return a.open(cmd.Context())
		},
		PersistentPostRunE: func(_ *cobra.Command, _ []string) error {
			return a.close()
		},
	}
	root.PersistentFlags().StringVar(&a.storage, "storage", "", "backend: memory|postgres|sqlite (por defecto STORAGE_BACKEND)")
	root.PersistentFlags().StringVar(&a.sqlitePath, "sqlite-path", "", "archivo SQLite (por defecto SQLITE_PATH)")

	root.AddCommand(
		newMigrateCmd(a),
		newSeedCmd(a),
		newStatsCmd(a),
		newHistoryCmd(a),
	)
	return root
}

// open carga la configuración, aplica los flags y abre el backend.
func (a *app) open(ctx context.Context) error {
	if ctx == nil {
		ctx = context.Background()
	}
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("cargar configuración: %w", err)
	}
	if a.storage != "" {
		cfg.Storage.Backend = a.storage
	}
	if a.sqlitePath != "" {
		cfg.Storage.SQLitePath = a.sqlitePath
	}

	a.cfg = cfg
	a.log = logger.New(logger.Config{Env: cfg.App.Env, Level: cfg.Log.Level, Out: os.Stderr})

	b, err := bootstrap.Open(ctx, cfg.Storage, cfg.DB, a.log)
	if err != nil {
		return err
	}
	a.backend = b
	a.svc = bootstrap.NewServices(b, cfg.History, cfg.App.Name, nil)
	return nil
}

func (a *app) close() error {
	if a.backend == nil {
		return nil
	}
	return a.backend.Close()
}
