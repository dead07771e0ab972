// blockstack is a block-stacking sandbox core.
//
// Usage:
//
//	blockstack demo          - Run a scripted headless stacking session
//	blockstack serve         - Start the websocket viewer server
//
// Global flags:
//
//	--config <path>     - Path to a YAML config file
//	--tick-rate <rate>  - Simulation ticks per second (default: 60)
package main

import (
	"fmt"
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"blockstack/internal/config"
)

var (
	flagConfig   string
	flagTickRate int
)

var logger = log.NewWithOptions(os.Stderr, log.Options{
	ReportTimestamp: true,
	Prefix:          "blockstack",
})

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "blockstack",
	Short: "Block-stacking sandbox simulation",
	Long: `blockstack simulates a tower of rigid blocks: pick a block type, aim,
and drop it onto the ground or an existing block. Placements snap to a
grid and are rejected when they overlap or have nothing to rest on.

Available commands:
  demo     - Run a scripted headless stacking session
  serve    - Start the websocket viewer server

Examples:
  blockstack demo
  blockstack serve --addr :8080
  blockstack demo --config ./configs/blockstack.yaml`,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "Path to YAML config file")
	rootCmd.PersistentFlags().IntVar(&flagTickRate, "tick-rate", 0, "Simulation ticks per second (0 = config value)")

	rootCmd.AddCommand(demoCmd)
	rootCmd.AddCommand(serveCmd)
}

func loadConfig() (config.Config, error) {
	cfg, err := config.Load(flagConfig)
	if err != nil {
		return config.Config{}, err
	}
	if flagTickRate > 0 {
		cfg.Viewer.TickRate = flagTickRate
	}
	return cfg, nil
}
