package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newStatsCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "stats",
		Short: "Muestra ocupación y palés por etapa",
		RunE: func(cmd *cobra.Command, _ []string) error {
			s, err := a.svc.Stats.GetStats(cmd.Context())
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "posiciones: %d (ocupadas %d, libres %d)\n", s.TotalPositions, s.OccupiedPositions, s.FreePositions)
			fmt.Fprintf(out, "kanban: green %d, yellow %d, red %d\n", s.KanbanGreen, s.KanbanYellow, s.KanbanRed)
			return nil
		},
	}
}
