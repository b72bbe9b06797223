package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/tui-snake/internal/config"
	"github.com/vovakirdan/tui-snake/internal/core"
)

// Styles maps core.Color to lipgloss styles built from the theme.
type Styles struct {
	colors map[core.Color]lipgloss.Style
	Help   lipgloss.Style
	Status lipgloss.Style
}

// NewStyles builds styles for theme. SSH sessions pass their own renderer
// so colors match the client terminal; nil uses the default renderer.
func NewStyles(r *lipgloss.Renderer, theme config.ThemeConfig) Styles {
	if r == nil {
		r = lipgloss.DefaultRenderer()
	}
	fg := func(c core.Color) lipgloss.Style {
		return r.NewStyle().Foreground(lipgloss.Color(theme.Color(c)))
	}

	return Styles{
		colors: map[core.Color]lipgloss.Style{
			core.ColorDefault: r.NewStyle(),
			core.ColorHead:    fg(core.ColorHead).Bold(true),
			core.ColorBody:    fg(core.ColorBody),
			core.ColorFood:    fg(core.ColorFood),
			core.ColorBorder:  fg(core.ColorBorder),
			core.ColorHUD:     fg(core.ColorHUD),
			core.ColorDialog:  fg(core.ColorDialog).Bold(true),
		},
		Help:   fg(core.ColorBorder),
		Status: fg(core.ColorHUD).Italic(true),
	}
}

// RenderScreen converts a Screen buffer to a styled string for display.
// Groups adjacent cells with the same color to minimize ANSI escape sequences.
func (st Styles) RenderScreen(s *core.Screen) string {
	var sb strings.Builder
	sb.Grow(s.Width()*s.Height()*2 + s.Height())

	for y := 0; y < s.Height(); y++ {
		if y > 0 {
			sb.WriteRune('\n')
		}

		x := 0
		for x < s.Width() {
			startColor := s.GetCell(x, y).Color

			var run strings.Builder
			for x < s.Width() {
				cell := s.GetCell(x, y)
				if cell.Color != startColor {
					break
				}
				run.WriteRune(cell.Rune)
				x++
			}

			style, ok := st.colors[startColor]
			if !ok {
				style = st.colors[core.ColorDefault]
			}
			sb.WriteString(style.Render(run.String()))
		}
	}
	return sb.String()
}
