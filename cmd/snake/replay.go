package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-snake/internal/storage"
)

var (
	flagPNG      string
	flagPNGWidth int
)

var replayCmd = &cobra.Command{
	Use:   "replay <run-id>",
	Short: "Replay a journaled run",
	Long: `Rebuild a recorded run from its seed and swipes and print the final state.

Examples:
  snake replay 3f2a6c1e-...
  snake replay 3f2a6c1e-... --png final.png --png-width 320`,
	Args: cobra.ExactArgs(1),
	RunE: runReplay,
}

func init() {
	replayCmd.Flags().StringVar(&flagPNG, "png", "", "Also render the final board to this file")
	replayCmd.Flags().IntVar(&flagPNGWidth, "png-width", 0, "Downscale the PNG to this width")
}

func runReplay(_ *cobra.Command, args []string) error {
	store, err := storage.Open(flagDBPath)
	if err != nil {
		return err
	}
	defer store.Close()

	run, snap, err := replayRun(store, args[0])
	if err != nil {
		return err
	}

	fmt.Printf("Run %s (seed %d)\n\n", run.ID, run.Seed)
	printSnapshot(os.Stdout, snap)

	if flagPNG == "" {
		return nil
	}
	cfg, _, err := loadConfig()
	if err != nil {
		return err
	}
	if err := savePNG(flagPNG, snap, run.Bounds, cfg, flagPNGWidth); err != nil {
		return err
	}
	fmt.Printf("\nSaved %s\n", flagPNG)
	return nil
}
