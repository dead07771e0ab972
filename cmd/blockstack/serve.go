package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"blockstack/internal/game"
	"blockstack/internal/transport/ws"
)

var flagAddr string

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the websocket viewer server",
	Long: `Start the websocket endpoint a renderer connects to. The server
streams body transforms and placement previews as JSON and accepts
point/select/confirm commands.

Examples:
  blockstack serve
  blockstack serve --addr :9000
  blockstack serve --config ./configs/blockstack.yaml`,
	Run: runServe,
}

func init() {
	serveCmd.Flags().StringVar(&flagAddr, "addr", "", "Listen address (default: config value)")
}

func runServe(_ *cobra.Command, _ []string) {
	cfg, err := loadConfig()
	if err != nil {
		logger.Error("config load failed", "err", err)
		os.Exit(1)
	}
	if flagAddr != "" {
		cfg.Viewer.Addr = flagAddr
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	session := game.NewSession(cfg, logger)
	server := ws.NewServer(cfg, session, logger)
	if err := server.ListenAndServe(ctx); err != nil {
		logger.Error("server failed", "err", err)
		os.Exit(1)
	}
}
