// Package config loads the YAML configuration for the snake drivers.
package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/vovakirdan/tui-snake/internal/core"
	"github.com/vovakirdan/tui-snake/internal/snake"
)

// Config is the full snake configuration.
type Config struct {
	Grid   GridConfig   `yaml:"grid"`
	Timing TimingConfig `yaml:"timing"`
	Theme  ThemeConfig  `yaml:"theme"`
	Render RenderConfig `yaml:"render"`
	Server ServerConfig `yaml:"server"`
}

// GridConfig defines the playfield. With Auto set the field is sized from
// the terminal and only CellSize is used.
type GridConfig struct {
	CellSize int  `yaml:"cell_size"`
	Auto     bool `yaml:"auto"`
	MinX     int  `yaml:"min_x"`
	MaxX     int  `yaml:"max_x"`
	MinY     int  `yaml:"min_y"`
	MaxY     int  `yaml:"max_y"`
}

// TimingConfig defines the driver clock.
type TimingConfig struct {
	TickPeriod time.Duration `yaml:"tick_period"`
	StartDelay time.Duration `yaml:"start_delay"` // Before the first tick
}

// ThemeConfig maps semantic colors to hex values.
type ThemeConfig struct {
	Head       string `yaml:"head"`
	Body       string `yaml:"body"`
	Food       string `yaml:"food"`
	Border     string `yaml:"border"`
	HUD        string `yaml:"hud"`
	Dialog     string `yaml:"dialog"`
	Background string `yaml:"background"`
}

// RenderConfig controls PNG output.
type RenderConfig struct {
	PixelsPerCell int `yaml:"pixels_per_cell"`
	Width         int `yaml:"width"` // Downscale target, 0 keeps full size
}

// ServerConfig holds the SSH and HTTP listener settings.
type ServerConfig struct {
	SSHAddress  string        `yaml:"ssh_address"`
	HostKey     string        `yaml:"host_key"`
	IdleTimeout time.Duration `yaml:"idle_timeout"`
	HTTPAddress string        `yaml:"http_address"`

	// MaxFieldCells caps the field size HTTP clients may request.
	MaxFieldCells int `yaml:"max_field_cells"`
}

// Bounds returns the explicit playfield bounds. The second result is false
// when the grid is sized from the terminal.
func (g GridConfig) Bounds() (snake.Bounds, bool) {
	if g.Auto {
		return snake.Bounds{}, false
	}
	return snake.Bounds{
		CellSize: g.CellSize,
		MinX:     g.MinX,
		MaxX:     g.MaxX,
		MinY:     g.MinY,
		MaxY:     g.MaxY,
	}, true
}

// HeadlessBounds returns bounds for drivers without a terminal. In auto mode
// the field is cols by rows cells.
func (g GridConfig) HeadlessBounds(cols, rows int) snake.Bounds {
	if b, ok := g.Bounds(); ok {
		return b
	}
	return snake.GridBounds(cols, rows, g.CellSize)
}

// Color returns the hex value for a semantic color, or "" for the default.
func (t ThemeConfig) Color(c core.Color) string {
	switch c {
	case core.ColorHead:
		return t.Head
	case core.ColorBody:
		return t.Body
	case core.ColorFood:
		return t.Food
	case core.ColorBorder:
		return t.Border
	case core.ColorHUD:
		return t.HUD
	case core.ColorDialog:
		return t.Dialog
	default:
		return ""
	}
}

// RuntimeConfig builds the runtime settings for a screen of w by h.
func (c Config) RuntimeConfig(w, h int, seed int64) core.RuntimeConfig {
	return core.RuntimeConfig{
		ScreenW:    w,
		ScreenH:    h,
		TickPeriod: c.Timing.TickPeriod,
		StartDelay: c.Timing.StartDelay,
		Seed:       seed,
	}
}

// Validate checks the configuration for values no driver can run with.
func (c Config) Validate() error {
	if c.Grid.CellSize <= 0 {
		return fmt.Errorf("config: grid.cell_size must be positive, got %d", c.Grid.CellSize)
	}
	if b, ok := c.Grid.Bounds(); ok {
		if err := b.Validate(); err != nil {
			return fmt.Errorf("config: grid: %w", err)
		}
	}
	if c.Timing.TickPeriod <= 0 {
		return fmt.Errorf("config: timing.tick_period must be positive, got %s", c.Timing.TickPeriod)
	}
	if c.Timing.StartDelay < 0 {
		return fmt.Errorf("config: timing.start_delay must not be negative, got %s", c.Timing.StartDelay)
	}
	if c.Server.MaxFieldCells <= 0 {
		return fmt.Errorf("config: server.max_field_cells must be positive, got %d", c.Server.MaxFieldCells)
	}
	if c.Render.PixelsPerCell <= 0 {
		return fmt.Errorf("config: render.pixels_per_cell must be positive, got %d", c.Render.PixelsPerCell)
	}

	colors := map[string]string{
		"head":       c.Theme.Head,
		"body":       c.Theme.Body,
		"food":       c.Theme.Food,
		"border":     c.Theme.Border,
		"hud":        c.Theme.HUD,
		"dialog":     c.Theme.Dialog,
		"background": c.Theme.Background,
	}
	for name, hex := range colors {
		if !isHexColor(hex) {
			return fmt.Errorf("config: theme.%s: invalid color %q", name, hex)
		}
	}
	return nil
}

// isHexColor accepts #RGB and #RRGGBB.
func isHexColor(s string) bool {
	if !strings.HasPrefix(s, "#") || (len(s) != 4 && len(s) != 7) {
		return false
	}
	for _, r := range s[1:] {
		switch {
		case r >= '0' && r <= '9', r >= 'a' && r <= 'f', r >= 'A' && r <= 'F':
		default:
			return false
		}
	}
	return true
}
