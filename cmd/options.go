package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/sells-group/ev-dashboard/internal/dashboard"
	"github.com/sells-group/ev-dashboard/internal/report"
)

var (
	optionsSel    selectionFlags
	optionsFormat string
)

var optionsCmd = &cobra.Command{
	Use:   "options",
	Short: "List the selectable counties, cities, manufacturers and models",
	RunE: func(cmd *cobra.Command, _ []string) error {
		state, err := loadState(cmd)
		if err != nil {
			return err
		}
		if err := optionsSel.apply(state); err != nil {
			return err
		}

		v := state.View()
		if strings.EqualFold(optionsFormat, formatTable) {
			fmt.Fprintln(cmd.OutOrStdout(), report.Options(v, currentTheme(cmd.Context())))
			return nil
		}
		return writeStructured(cmd.OutOrStdout(), optionsFormat, struct {
			Selection dashboard.Selection `json:"selection" yaml:"selection"`
			Options   dashboard.Options   `json:"options" yaml:"options"`
		}{v.Selection, v.Options})
	},
}

func init() {
	optionsSel.bind(optionsCmd)
	optionsCmd.Flags().StringVar(&optionsFormat, "format", formatTable, "output format: table, json or yaml")
	rootCmd.AddCommand(optionsCmd)
}
