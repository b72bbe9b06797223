package main

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/vovakirdan/tui-snake/internal/config"
	"github.com/vovakirdan/tui-snake/internal/render"
	"github.com/vovakirdan/tui-snake/internal/snake"
	"github.com/vovakirdan/tui-snake/internal/storage"
)

// Field size for headless runs when the grid is sized automatically.
const (
	headlessColumns = 40
	headlessRows    = 20
)

// replayRun rebuilds a journaled run and returns its final state.
func replayRun(store *storage.Store, id string) (storage.Run, snake.Snapshot, error) {
	run, events, err := store.LoadRun(id)
	if err != nil {
		return storage.Run{}, snake.Snapshot{}, err
	}
	engine, err := snake.Replay(run.Bounds, run.Seed, events, run.Ticks)
	if err != nil {
		return storage.Run{}, snake.Snapshot{}, fmt.Errorf("replay %s: %w", id, err)
	}
	return run, engine.Snapshot(), nil
}

// headlessRun plays ticks steps without input on a seeded engine.
func headlessRun(b snake.Bounds, seed int64, ticks uint64) (snake.Snapshot, error) {
	engine, err := snake.Replay(b, seed, nil, ticks)
	if err != nil {
		return snake.Snapshot{}, err
	}
	return engine.Snapshot(), nil
}

func printSnapshot(w io.Writer, s snake.Snapshot) {
	state := "running"
	switch {
	case s.GameOver:
		state = "game over"
	case !s.Running:
		state = "stopped"
	}
	fmt.Fprintf(w, "Tick:      %d\n", s.Tick)
	fmt.Fprintf(w, "State:     %s\n", state)
	fmt.Fprintf(w, "Score:     %d\n", s.Score)
	fmt.Fprintf(w, "Length:    %d\n", s.Length)
	fmt.Fprintf(w, "Direction: %s\n", s.Direction)
	fmt.Fprintf(w, "Head:      (%d, %d)\n", s.Head().X, s.Head().Y)
	fmt.Fprintf(w, "Food:      (%d, %d)\n", s.Food.X, s.Food.Y)
}

func printRuns(w io.Writer, runs []storage.Run) {
	if len(runs) == 0 {
		fmt.Fprintln(w, "No runs recorded yet.")
		fmt.Fprintln(w)
		fmt.Fprintln(w, "Play 'snake play' to record the first one!")
		return
	}

	fmt.Fprintf(w, "  %-36s  %-16s  %-8s  %-6s  %s\n", "ID", "Started", "Ticks", "Swipes", "Field")
	fmt.Fprintf(w, "  %-36s  %-16s  %-8s  %-6s  %s\n",
		strings.Repeat("-", 36), strings.Repeat("-", 16), "-----", "------", "-----")
	for _, r := range runs {
		ticks := fmt.Sprintf("%d", r.Ticks)
		if !r.Finished() {
			ticks += "*"
		}
		fmt.Fprintf(w, "  %-36s  %-16s  %-8s  %-6d  %dx%d\n",
			r.ID,
			r.StartedAt.Local().Format("2006-01-02 15:04"),
			ticks,
			r.Events,
			r.Bounds.Columns()+1, r.Bounds.Rows()+1,
		)
	}
}

// savePNG renders a snapshot to path. A positive width overrides the
// configured downscale width.
func savePNG(path string, s snake.Snapshot, b snake.Bounds, cfg config.Config, width int) error {
	opts := render.OptionsFrom(cfg)
	if width > 0 {
		opts.Width = width
	}
	return render.Save(path, render.Board(s, b, opts))
}

func resolveSeed(seed int64) int64 {
	if seed != 0 {
		return seed
	}
	return time.Now().UnixNano()
}
