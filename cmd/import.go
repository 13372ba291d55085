package main

import (
	"fmt"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/sells-group/ev-dashboard/internal/dataset"
)

var (
	importFrom  string
	importTable string
)

var importCmd = &cobra.Command{
	Use:   "import",
	Short: "Load a dataset file into the Postgres table",
	Long:  "Reads the vehicle population from --from (path or URL) and replaces the contents of the configured table, so later runs can read it with dataset.database_url.",
	RunE: func(cmd *cobra.Command, _ []string) error {
		ctx := cmd.Context()

		if cfg.Dataset.DatabaseURL == "" {
			return eris.New("database url is required (EVDASH_DATASET_DATABASE_URL)")
		}
		table := cfg.Dataset.Table
		if importTable != "" {
			table = importTable
		}

		src := cfg.Dataset
		src.DatabaseURL = ""
		if importFrom != "" {
			src.Source = importFrom
		}
		rows, err := dataset.NewLoader(src).Load(ctx)
		if err != nil {
			return eris.Wrap(err, "import: read source")
		}

		pool, err := dataset.Connect(ctx, cfg.Dataset.DatabaseURL)
		if err != nil {
			return eris.Wrap(err, "import")
		}
		defer pool.Close()

		n, err := dataset.WriteTable(ctx, pool, table, rows)
		if err != nil {
			return eris.Wrap(err, "import: write table")
		}

		zap.L().Info("import complete",
			zap.Int64("rows", n),
			zap.String("table", table),
			zap.String("source", src.Source),
		)
		fmt.Fprintf(cmd.OutOrStdout(), "%d rows written to %s\n", n, table)
		return nil
	},
}

func init() {
	importCmd.Flags().StringVar(&importFrom, "from", "", "dataset path or URL (default dataset.source)")
	importCmd.Flags().StringVar(&importTable, "table", "", "target table (default dataset.table)")
	rootCmd.AddCommand(importCmd)
}
