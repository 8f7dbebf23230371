package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newSeedCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "seed",
		Short: "Crea las 20 posiciones del porta-palete si no existen",
		RunE: func(cmd *cobra.Command, _ []string) error {
			n, err := a.svc.Positions.Initialize(cmd.Context())
			if err != nil {
				return fmt.Errorf("inicializar posiciones: %w", err)
			}
			if n == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "posiciones ya inicializadas")
				return nil
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%d posiciones creadas\n", n)
			return nil
		},
	}
}
