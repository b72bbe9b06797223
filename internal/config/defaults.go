package config

import (
	_ "embed"
	"time"
)

//go:embed defaults/snake.yaml
var defaultSnakeYAML []byte

// DefaultConfig returns the built-in configuration. It matches the
// embedded defaults/snake.yaml.
func DefaultConfig() Config {
	return Config{
		Grid: GridConfig{
			CellSize: 12,
			Auto:     true,
			MaxX:     456,
			MaxY:     228,
		},
		Timing: TimingConfig{
			TickPeriod: 80 * time.Millisecond,
			StartDelay: 1500 * time.Millisecond,
		},
		Theme: ThemeConfig{
			Head:       "#FFD700",
			Body:       "#FFFFFF",
			Food:       "#32CD32",
			Border:     "#5F5F87",
			HUD:        "#AFAFAF",
			Dialog:     "#FF5F5F",
			Background: "#1C1C1C",
		},
		Render: RenderConfig{
			PixelsPerCell: 16,
		},
		Server: ServerConfig{
			SSHAddress:    ":23234",
			HostKey:       ".ssh/snake_ed25519",
			IdleTimeout:   30 * time.Minute,
			HTTPAddress:   ":8080",
			MaxFieldCells: 10000,
		},
	}
}

// DefaultYAML returns the embedded default configuration file.
func DefaultYAML() []byte {
	return defaultSnakeYAML
}
