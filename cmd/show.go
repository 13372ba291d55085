package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/sells-group/ev-dashboard/internal/report"
)

var (
	showSel    selectionFlags
	showFormat string
)

var showCmd = &cobra.Command{
	Use:   "show",
	Short: "Print the dashboard for a county, city and range selection",
	RunE: func(cmd *cobra.Command, _ []string) error {
		state, err := loadState(cmd)
		if err != nil {
			return err
		}
		if err := showSel.apply(state); err != nil {
			return err
		}

		v := state.View()
		if strings.EqualFold(showFormat, formatTable) {
			fmt.Fprintln(cmd.OutOrStdout(), report.Text(v, currentTheme(cmd.Context())))
			return nil
		}
		return writeStructured(cmd.OutOrStdout(), showFormat, v)
	},
}

func init() {
	showSel.bind(showCmd)
	showCmd.Flags().StringVar(&showFormat, "format", formatTable, "output format: table, json or yaml")
	rootCmd.AddCommand(showCmd)
}
