package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/ohmyshower/order-cli/internal/config"
)

var cfg *config.Config

var rootCmd = &cobra.Command{
	Use:   "order-cli",
	Short: "Purchase-order extraction pipeline",
	Long:  "Extracts structured order lines from Spanish purchase-order emails via Claude, resolves customers and SKUs against the reference database, and writes importable order rows.",
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
