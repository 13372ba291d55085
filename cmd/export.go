package main

import (
	"fmt"
	"os"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/sells-group/ev-dashboard/internal/report"
)

var (
	exportSel selectionFlags
	exportOut string
)

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export the dashboard aggregates to an Excel workbook",
	RunE: func(cmd *cobra.Command, _ []string) error {
		state, err := loadState(cmd)
		if err != nil {
			return err
		}
		if err := exportSel.apply(state); err != nil {
			return err
		}

		f, err := os.Create(exportOut)
		if err != nil {
			return eris.Wrapf(err, "export: create %s", exportOut)
		}
		if err := report.WriteWorkbook(f, state.View()); err != nil {
			f.Close() //nolint:errcheck
			return err
		}
		if err := f.Close(); err != nil {
			return eris.Wrapf(err, "export: close %s", exportOut)
		}

		zap.L().Info("export complete", zap.String("path", exportOut), zap.String("session", state.ID()))
		fmt.Fprintln(cmd.OutOrStdout(), exportOut)
		return nil
	},
}

func init() {
	exportSel.bind(exportCmd)
	exportCmd.Flags().StringVar(&exportOut, "out", "ev-dashboard.xlsx", "workbook path")
	rootCmd.AddCommand(exportCmd)
}
