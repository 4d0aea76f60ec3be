package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/Cloud-payto/optical-sub002/internal/config"
)

var cfg *config.Config

var rootCmd = &cobra.Command{
	Use:   "optical",
	Short: "Multi-vendor order parsing and enrichment pipeline",
	Long:  "Parses eyewear order-confirmation documents, reconciles line items against vendor catalogs, and emits enriched orders with UPCs, measurements, and confidence scores.",
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		c, err := config.Load()
		if err != nil {
			return fmt.Errorf("load config: %w", err)
		}
		if err := c.Validate(); err != nil {
			return err
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
