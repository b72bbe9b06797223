package config

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/vovakirdan/tui-snake/internal/core"
)

func writeConfig(t *testing.T, dir, body string) string {
	t.Helper()
	path := filepath.Join(dir, "snake.yaml")
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatalf("failed to write config: %v", err)
	}
	return path
}

func TestEmbeddedMatchesDefault(t *testing.T) {
	cfg, err := parse(DefaultYAML())
	if err != nil {
		t.Fatalf("embedded config does not parse: %v", err)
	}
	if cfg != DefaultConfig() {
		t.Errorf("embedded config mismatch:\n yaml %+v\n code %+v", cfg, DefaultConfig())
	}
}

func TestLoadCustomPathKeepsDefaults(t *testing.T) {
	path := writeConfig(t, t.TempDir(), `
grid:
  cell_size: 10
timing:
  tick_period: 120ms
theme:
  head: "#ff0000"
`)

	cfg, from, err := Load(path)
	if err != nil {
		t.Fatalf("Load() failed: %v", err)
	}
	if from != path {
		t.Errorf("Load() path = %q, expected %q", from, path)
	}
	if cfg.Grid.CellSize != 10 {
		t.Errorf("cell_size mismatch: %d vs 10", cfg.Grid.CellSize)
	}
	if cfg.Timing.TickPeriod != 120*time.Millisecond {
		t.Errorf("tick_period mismatch: %s vs 120ms", cfg.Timing.TickPeriod)
	}
	if cfg.Timing.StartDelay != 1500*time.Millisecond {
		t.Errorf("start_delay should keep its default, got %s", cfg.Timing.StartDelay)
	}
	if cfg.Theme.Head != "#ff0000" || cfg.Theme.Food != "#32CD32" {
		t.Errorf("theme mismatch: %+v", cfg.Theme)
	}
	if !cfg.Grid.Auto {
		t.Error("grid.auto should keep its default")
	}
}

func TestLoadErrors(t *testing.T) {
	dir := t.TempDir()
	tests := []struct {
		name string
		body string
		want string
	}{
		{"bad yaml", "grid: [", "failed to parse"},
		{"zero tick", "timing:\n  tick_period: 0s\n", "tick_period"},
		{"bad color", "theme:\n  food: green\n", "theme.food"},
		{"bad bounds", "grid:\n  auto: false\n  cell_size: 12\n  max_x: 12\n", "grid"},
		{"zero field limit", "server:\n  max_field_cells: 0\n", "max_field_cells"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := writeConfig(t, dir, tt.body)
			_, _, err := Load(path)
			if err == nil || !strings.Contains(err.Error(), tt.want) {
				t.Errorf("Load() error = %v, expected it to mention %q", err, tt.want)
			}
		})
	}

	if _, _, err := Load(filepath.Join(dir, "missing.yaml")); err == nil {
		t.Error("Load() of a missing custom path should fail")
	}
}

func TestGridBounds(t *testing.T) {
	g := GridConfig{CellSize: 12, Auto: true}
	if _, ok := g.Bounds(); ok {
		t.Error("auto grid should not report explicit bounds")
	}
	hb := g.HeadlessBounds(10, 5)
	if hb.MaxX != 108 || hb.MaxY != 48 {
		t.Errorf("HeadlessBounds() = %+v, expected max 108x48", hb)
	}

	g = GridConfig{CellSize: 5, MinX: -10, MaxX: 10, MinY: 0, MaxY: 20}
	b, ok := g.Bounds()
	if !ok || b.MinX != -10 || b.MaxY != 20 || b.CellSize != 5 {
		t.Errorf("Bounds() = %+v, %v", b, ok)
	}
	if g.HeadlessBounds(3, 3) != b {
		t.Error("HeadlessBounds() should prefer explicit bounds")
	}
}

func TestThemeColor(t *testing.T) {
	theme := DefaultConfig().Theme
	if theme.Color(core.ColorFood) != theme.Food {
		t.Errorf("Color(food) = %q", theme.Color(core.ColorFood))
	}
	if theme.Color(core.ColorDefault) != "" {
		t.Errorf("Color(default) = %q, expected empty", theme.Color(core.ColorDefault))
	}
}

func TestRuntimeConfig(t *testing.T) {
	rc := DefaultConfig().RuntimeConfig(100, 30, 7)
	if rc.ScreenW != 100 || rc.ScreenH != 30 || rc.Seed != 7 {
		t.Errorf("RuntimeConfig() = %+v", rc)
	}
	if rc.TickPeriod != 80*time.Millisecond || rc.StartDelay != 1500*time.Millisecond {
		t.Errorf("timing mismatch: %+v", rc)
	}
}

func TestIsHexColor(t *testing.T) {
	tests := []struct {
		in   string
		want bool
	}{
		{"#fff", true},
		{"#00FF7f", true},
		{"fff", false},
		{"#ffff", false},
		{"#gggggg", false},
		{"", false},
	}
	for _, tt := range tests {
		if got := isHexColor(tt.in); got != tt.want {
			t.Errorf("isHexColor(%q) = %v, expected %v", tt.in, got, tt.want)
		}
	}
}

func TestWatchReloads(t *testing.T) {
	dir := t.TempDir()
	path := writeConfig(t, dir, "timing:\n  tick_period: 80ms\n")

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	reloaded := make(chan Config, 4)
	if err := Watch(ctx, path, func(c Config) { reloaded <- c }); err != nil {
		t.Fatalf("Watch() failed: %v", err)
	}

	// Unrelated files in the directory are ignored.
	if err := os.WriteFile(filepath.Join(dir, "other.yaml"), []byte("x: 1"), 0o644); err != nil {
		t.Fatal(err)
	}
	writeConfig(t, dir, "timing:\n  tick_period: 200ms\n")

	deadline := time.After(3 * time.Second)
	for {
		select {
		case c := <-reloaded:
			if c.Timing.TickPeriod == 200*time.Millisecond {
				return
			}
		case <-deadline:
			t.Fatal("config was not reloaded")
		}
	}
}
