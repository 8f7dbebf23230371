package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/jhoicas/almacen-api/internal/application/dto"
)

func newHistoryCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "history",
		Short: "Consultas sobre el histórico de movimientos",
	}
	cmd.AddCommand(newHistoryExportCmd(a))
	return cmd
}

func newHistoryExportCmd(a *app) *cobra.Command {
	var (
		q      dto.HistoryQuery
		format string
		out    string
	)
	cmd := &cobra.Command{
		Use:   "export",
		Short: "Exporta el histórico filtrado a CSV o PDF",
		Example: `  almacenctl history export --from 2024-03-01 --to 2024-03-31 --format pdf
  almacenctl history export --type kanban_move --out -`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			data, _, filename, err := a.svc.Export.Export(cmd.Context(), format, q)
			if err != nil {
				return err
			}
			if out == "-" {
				_, err = cmd.OutOrStdout().Write(data)
				return err
			}
			if out == "" {
				out = filename
			}
			if err := os.WriteFile(out, data, 0o644); err != nil {
				return fmt.Errorf("escribir %s: %w", out, err)
			}
			fmt.Fprintf(cmd.ErrOrStderr(), "%s (%d bytes)\n", out, len(data))
			return nil
		},
	}
	f := cmd.Flags()
	f.StringVar(&q.StartDate, "from", "", "fecha inicial YYYY-MM-DD")
	f.StringVar(&q.EndDate, "to", "", "fecha final YYYY-MM-DD")
	f.StringVar(&q.Type, "type", "", "tipo de movimiento (entry, exit, edit, kanban_add, kanban_move, kanban_expedite)")
	f.StringVar(&q.Search, "search", "", "texto en producto, código o ubicación")
	f.StringVar(&format, "format", "csv", "csv | pdf")
	f.StringVarP(&out, "out", "o", "", "archivo de salida; - escribe a stdout (por defecto el nombre sugerido)")
	return cmd
}
