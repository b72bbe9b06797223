package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-snake/internal/config"
	"github.com/vovakirdan/tui-snake/internal/platform/httpapi"
)

var flagAPIAddr string

var apiCmd = &cobra.Command{
	Use:   "api",
	Short: "Start the snake HTTP and WebSocket server",
	Long: `Serve headless snake games over HTTP.

Endpoints:
  POST   /v1/games               Create a game ({"seed": n} optional)
  GET    /v1/games/:id           Current snapshot
  POST   /v1/games/:id/tick      Advance one step
  POST   /v1/games/:id/gesture   Steer with {"start":{x,y},"end":{x,y}}
  POST   /v1/games/:id/reset     Start over
  POST   /v1/games/:id/dismiss   Hide the game over dialog
  DELETE /v1/games/:id           Drop the game
  GET    /v1/games/:id/board.png Render the board (?width=N)
  GET    /v1/games/:id/stream    WebSocket with one snapshot per tick

Examples:
  snake api
  snake api --addr 127.0.0.1:9000`,
	Args: cobra.NoArgs,
	RunE: runAPI,
}

func init() {
	apiCmd.Flags().StringVar(&flagAPIAddr, "addr", "", "HTTP listen address (default from config)")
}

func runAPI(_ *cobra.Command, _ []string) error {
	cfg, cfgPath, err := loadConfig()
	if err != nil {
		return err
	}

	addr := cfg.Server.HTTPAddress
	if flagAPIAddr != "" {
		addr = flagAPIAddr
	}

	server := httpapi.NewServer(cfg, log.WithPrefix("snake-api"))

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if cfgPath != "" {
		err := config.Watch(ctx, cfgPath, func(c config.Config) {
			log.Info("config reloaded", "path", cfgPath)
			server.SetConfig(c)
		})
		if err != nil {
			log.Warn("config reload disabled", "error", err)
		}
	}

	return server.ListenAndServe(ctx, addr)
}
