package main

import (
	"fmt"
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/tui-snake/internal/platform/tui"
	"github.com/vovakirdan/tui-snake/internal/storage"
)

var flagNoJournal bool

var playCmd = &cobra.Command{
	Use:   "play",
	Short: "Play snake in this terminal",
	Long: `Start a game of snake in the current terminal.

Controls:
  Arrows/WASD   - Steer
  Mouse drag    - Swipe to steer
  R             - Restart with a new seed
  X             - Dismiss the game over dialog
  Ctrl+S        - Save a PNG screenshot
  Q/Ctrl+C      - Quit

Each game is journaled to --db unless --no-journal is set, so it can be
replayed with 'snake replay'. Edits to the config file apply while playing.

Examples:
  snake play
  snake play --seed 42
  snake play --config ./my-snake.yaml --no-journal`,
	Args: cobra.NoArgs,
	RunE: runPlay,
}

func init() {
	playCmd.Flags().BoolVar(&flagNoJournal, "no-journal", false, "Do not record the game")
}

func runPlay(_ *cobra.Command, _ []string) error {
	cfg, cfgPath, err := loadConfig()
	if err != nil {
		return err
	}

	width, height := 80, 24
	if w, h, termErr := term.GetSize(int(os.Stdout.Fd())); termErr == nil {
		width = w
		height = h
	}

	opts := tui.Options{
		Config:     cfg,
		ConfigPath: cfgPath,
		Seed:       flagSeed,
	}

	if !flagNoJournal {
		store, openErr := storage.Open(flagDBPath)
		if openErr != nil {
			// The game still works without a journal
			log.Warn("could not open run journal", "path", flagDBPath, "error", openErr)
		} else {
			defer store.Close()
			opts.Recorder = storage.NewRecorder(store, log.WithPrefix("snake-journal"))
		}
	}

	if err := tui.Run(opts, width, height); err != nil {
		return fmt.Errorf("running game: %w", err)
	}
	return nil
}
