package cmd

import (
	"fmt"

	"github.com/bnema/agenda-assistant-cli/internal/application"
	"github.com/spf13/cobra"
)

func newExportCmd(app *app) *cobra.Command {
	return &cobra.Command{
		Use:   "export [path]",
		Short: fmt.Sprintf("Export the agenda to CSV (default %s)", application.DefaultExportPath),
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var path string
			if len(args) == 1 {
				path = args[0]
			}
			_, err := fmt.Fprintln(cmd.OutOrStdout(), app.service.ExportAgenda(cmd.Context(), path))
			return err
		},
	}
}
