package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/Karanja-eng/jengacost/internal/config"
)

var cfg *config.Config

var rootCmd = &cobra.Command{
	Use:   "jengacost",
	Short: "Construction cost estimator and BOQ builder",
	Long:  "Computes parametric unit rates for civil and building work items, squares dimension-paper entries, and aggregates priced Bills of Quantities.",
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		c, err := config.Load()
		if err != nil {
			return fmt.Errorf("load config: %w", err)
		}
		cfg = c

		if err := config.InitLogger(cfg.Log); err != nil {
			return fmt.Errorf("init logger: %w", err)
		}

		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		_ = zap.L().Sync()
	},
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
