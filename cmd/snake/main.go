// Package main provides the snake CLI.
//
// Usage:
//
//	snake play                          # Play in the terminal
//	snake serve                         # Start the SSH server
//	snake api                           # Start the HTTP/WebSocket server
//	snake runs                          # Browse journaled runs
//	snake replay <run-id>               # Replay a journaled run headlessly
//	snake snapshot --ticks 50 --png x   # Render a seeded headless run
package main

import (
	"fmt"
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-snake/internal/config"
)

// Global flags
var (
	flagConfig   string
	flagSeed     int64
	flagDBPath   string
	flagLogLevel string
)

var rootCmd = &cobra.Command{
	Use:   "snake",
	Short: "Snake in the terminal, over SSH and over HTTP",
	Long: `A deterministic snake game with several front ends.

The same seeded engine drives the terminal game, the SSH server and the
HTTP API. Terminal games are journaled so they can be replayed later.

Examples:
  snake play                    # Play in this terminal
  snake play --seed 42          # Play a reproducible game
  snake serve --ssh :2222       # Serve games over SSH
  snake api --addr :8080        # Serve games over HTTP
  snake runs                    # Browse recorded runs
  snake replay 3f2a...          # Replay a recorded run`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(_ *cobra.Command, _ []string) error {
		level, err := log.ParseLevel(flagLogLevel)
		if err != nil {
			return fmt.Errorf("invalid log level %q", flagLogLevel)
		}
		log.SetLevel(level)
		return nil
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "Path to a custom snake.yaml")
	rootCmd.PersistentFlags().Int64Var(&flagSeed, "seed", 0, "Random seed (0 = time-based)")
	rootCmd.PersistentFlags().StringVar(&flagDBPath, "db", "~/.snake/runs.db", "Path to the run journal")
	rootCmd.PersistentFlags().StringVar(&flagLogLevel, "log-level", "info", "Log level: debug, info, warn, error")

	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(apiCmd)
	rootCmd.AddCommand(runsCmd)
	rootCmd.AddCommand(replayCmd)
	rootCmd.AddCommand(snapshotCmd)
}

// loadConfig loads the configuration named by --config or the default
// search path, and returns the file to watch ("" for the embedded default).
func loadConfig() (config.Config, string, error) {
	cfg, path, err := config.Load(flagConfig)
	if err != nil {
		return config.Config{}, "", err
	}
	if path != "" {
		log.Debug("loaded config", "path", path)
	}
	return cfg, path, nil
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
