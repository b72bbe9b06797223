package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/tui-snake/internal/platform/tui"
	"github.com/vovakirdan/tui-snake/internal/storage"
)

var (
	flagPlain     bool
	flagRunsLimit int
)

var runsCmd = &cobra.Command{
	Use:   "runs",
	Short: "Browse journaled runs",
	Long: `Show the runs recorded in the journal, newest first.

The interactive browser lets you delete runs and replay the selected one.
Runs marked with * were not closed cleanly.

Examples:
  snake runs
  snake runs --plain --limit 5`,
	Args: cobra.NoArgs,
	RunE: runRuns,
}

func init() {
	runsCmd.Flags().BoolVar(&flagPlain, "plain", false, "Print a plain table instead of the browser")
	runsCmd.Flags().IntVar(&flagRunsLimit, "limit", 20, "Number of runs to print with --plain")
}

func runRuns(_ *cobra.Command, _ []string) error {
	store, err := storage.Open(flagDBPath)
	if err != nil {
		return err
	}
	defer store.Close()

	if flagPlain {
		runs, err := store.ListRuns(flagRunsLimit)
		if err != nil {
			return err
		}
		printRuns(os.Stdout, runs)
		return nil
	}

	width, height := 80, 24
	if w, h, termErr := term.GetSize(int(os.Stdout.Fd())); termErr == nil {
		width = w
		height = h
	}

	selected, err := tui.RunRunsBrowser(store, width, height)
	if err != nil {
		return err
	}
	if selected == "" {
		return nil
	}

	run, snap, err := replayRun(store, selected)
	if err != nil {
		return err
	}
	fmt.Printf("Run %s (seed %d)\n\n", run.ID, run.Seed)
	printSnapshot(os.Stdout, snap)
	return nil
}
