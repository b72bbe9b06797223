package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/vovakirdan/tui-snake/internal/config"
	"github.com/vovakirdan/tui-snake/internal/core"
	"github.com/vovakirdan/tui-snake/internal/snake"
	"github.com/vovakirdan/tui-snake/internal/storage"
)

var testBounds = snake.GridBounds(headlessColumns, headlessRows, 12)

func TestHeadlessRunDeterministic(t *testing.T) {
	first, err := headlessRun(testBounds, 99, 5)
	if err != nil {
		t.Fatalf("headlessRun: %v", err)
	}
	second, err := headlessRun(testBounds, 99, 5)
	if err != nil {
		t.Fatalf("headlessRun: %v", err)
	}
	if !first.Equal(second) {
		t.Errorf("same seed gave different snapshots:\n%+v\n%+v", first, second)
	}
	if first.Tick > 5 {
		t.Errorf("Tick = %d, want at most 5", first.Tick)
	}
}

func TestHeadlessRunInvalidBounds(t *testing.T) {
	if _, err := headlessRun(snake.Bounds{}, 1, 5); err == nil {
		t.Error("expected error for zero bounds")
	}
}

func TestReplayRun(t *testing.T) {
	store, err := storage.Open(filepath.Join(t.TempDir(), "runs.db"))
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	defer store.Close()

	id, err := store.BeginRun(42, testBounds)
	if err != nil {
		t.Fatalf("BeginRun: %v", err)
	}
	g := core.Gesture{Start: core.Point{X: 0, Y: 0}, End: core.Point{X: 0, Y: 10}}
	if err := store.AppendGesture(id, 0, g); err != nil {
		t.Fatalf("AppendGesture: %v", err)
	}
	if err := store.FinishRun(id, 3); err != nil {
		t.Fatalf("FinishRun: %v", err)
	}

	run, got, err := replayRun(store, id)
	if err != nil {
		t.Fatalf("replayRun: %v", err)
	}
	if run.Seed != 42 {
		t.Errorf("Seed = %d, want 42", run.Seed)
	}

	want, err := snake.Replay(testBounds, 42, []snake.Event{{Tick: 0, Gesture: g}}, 3)
	if err != nil {
		t.Fatalf("Replay: %v", err)
	}
	if !got.Equal(want.Snapshot()) {
		t.Errorf("replayRun = %+v, want %+v", got, want.Snapshot())
	}
}

func TestReplayRunUnknown(t *testing.T) {
	store, err := storage.Open(filepath.Join(t.TempDir(), "runs.db"))
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	defer store.Close()

	if _, _, err := replayRun(store, "missing"); err == nil {
		t.Error("expected error for unknown run")
	}
}

func TestPrintSnapshot(t *testing.T) {
	tests := []struct {
		name string
		snap snake.Snapshot
		want string
	}{
		{"running", snake.Snapshot{Running: true, Score: 3}, "State:     running"},
		{"game over", snake.Snapshot{GameOver: true}, "State:     game over"},
		{"stopped", snake.Snapshot{}, "State:     stopped"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			printSnapshot(&buf, tt.snap)
			if !strings.Contains(buf.String(), tt.want) {
				t.Errorf("output missing %q:\n%s", tt.want, buf.String())
			}
		})
	}
}

func TestPrintRuns(t *testing.T) {
	var buf bytes.Buffer
	printRuns(&buf, nil)
	if !strings.Contains(buf.String(), "No runs recorded yet.") {
		t.Errorf("empty output = %q", buf.String())
	}

	buf.Reset()
	printRuns(&buf, []storage.Run{
		{ID: "open-run", Bounds: testBounds, Ticks: 7},
	})
	out := buf.String()
	if !strings.Contains(out, "open-run") {
		t.Errorf("output missing run id:\n%s", out)
	}
	if !strings.Contains(out, "7*") {
		t.Errorf("open run not marked:\n%s", out)
	}
	if !strings.Contains(out, "40x20") {
		t.Errorf("output missing field size:\n%s", out)
	}
}

func TestSavePNG(t *testing.T) {
	snap, err := headlessRun(testBounds, 5, 2)
	if err != nil {
		t.Fatalf("headlessRun: %v", err)
	}

	path := filepath.Join(t.TempDir(), "out", "board.png")
	if err := savePNG(path, snap, testBounds, config.DefaultConfig(), 100); err != nil {
		t.Fatalf("savePNG: %v", err)
	}
	info, err := os.Stat(path)
	if err != nil {
		t.Fatalf("Stat: %v", err)
	}
	if info.Size() == 0 {
		t.Error("PNG is empty")
	}
}

func TestResolveSeed(t *testing.T) {
	if got := resolveSeed(7); got != 7 {
		t.Errorf("resolveSeed(7) = %d", got)
	}
	if got := resolveSeed(0); got == 0 {
		t.Error("resolveSeed(0) returned 0")
	}
}
