package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newMigrateCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Aplica el esquema pendiente del backend configurado",
		Long: `En postgres aplica los scripts de migración que falten; en sqlite el
esquema se crea al abrir el archivo. En memoria no hay nada que migrar.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			out := cmd.OutOrStdout()
			if len(a.backend.Migrations) == 0 {
				fmt.Fprintf(out, "esquema al día (%s)\n", a.backend.Name)
				return nil
			}
			for _, name := range a.backend.Migrations {
				fmt.Fprintf(out, "aplicada %s\n", name)
			}
			return nil
		},
	}
}
