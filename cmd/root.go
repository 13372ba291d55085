package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/sells-group/ev-dashboard/internal/config"
	"github.com/sells-group/ev-dashboard/internal/dataset"
)

var (
	cfg *config.Config
	// cache holds the dataset for the life of the process.
	cache *dataset.Cache
)

var rootCmd = &cobra.Command{
	Use:   "evdash",
	Short: "Electric vehicle population analytics",
	Long:  "Loads the Washington State electric vehicle population dataset and reports manufacturer share, model popularity, range, fuel eligibility, fuel type and adoption trend by county and city.",
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		c, err := config.Load()
		if err != nil {
			return fmt.Errorf("load config: %w", err)
		}
		cfg = c

		if err := config.InitLogger(cfg.Log); err != nil {
			return fmt.Errorf("init logger: %w", err)
		}

		cache = dataset.NewCache(dataset.NewLoader(cfg.Dataset).Load)
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		_ = zap.L().Sync()
	},
	SilenceUsage: true,
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
