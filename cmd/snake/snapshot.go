package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var flagTicks uint64

var snapshotCmd = &cobra.Command{
	Use:   "snapshot",
	Short: "Run a seeded game headlessly and print its state",
	Long: `Advance a new game for --ticks steps without input and print the result.

The field comes from the grid config; an auto-sized grid uses 40x20 cells.

Examples:
  snake snapshot --seed 7 --ticks 10
  snake snapshot --seed 7 --ticks 10 --png board.png`,
	Args: cobra.NoArgs,
	RunE: runSnapshot,
}

func init() {
	snapshotCmd.Flags().Uint64Var(&flagTicks, "ticks", 10, "Number of steps to run")
	snapshotCmd.Flags().StringVar(&flagPNG, "png", "", "Also render the board to this file")
	snapshotCmd.Flags().IntVar(&flagPNGWidth, "png-width", 0, "Downscale the PNG to this width")
}

func runSnapshot(_ *cobra.Command, _ []string) error {
	cfg, _, err := loadConfig()
	if err != nil {
		return err
	}

	bounds := cfg.Grid.HeadlessBounds(headlessColumns, headlessRows)
	seed := resolveSeed(flagSeed)
	snap, err := headlessRun(bounds, seed, flagTicks)
	if err != nil {
		return err
	}

	fmt.Printf("Seed %d\n\n", seed)
	printSnapshot(os.Stdout, snap)

	if flagPNG == "" {
		return nil
	}
	if err := savePNG(flagPNG, snap, bounds, cfg, flagPNGWidth); err != nil {
		return err
	}
	fmt.Printf("\nSaved %s\n", flagPNG)
	return nil
}
