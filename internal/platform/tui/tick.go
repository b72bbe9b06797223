// Package tui provides the Bubble Tea driver for the snake game.
// It owns the clock, maps keys and mouse drags to input, and draws the
// game screen with lipgloss.
package tui

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

// TickMsg is sent to trigger a game simulation tick. Gen ties the tick to
// the game it was scheduled for so ticks from a replaced game are dropped.
type TickMsg struct {
	Time time.Time
	Gen  int
}

// StartMsg ends the start delay of a game.
type StartMsg struct {
	Gen int
}

// tickCmd returns a Bubble Tea command that sends a tick after period.
func tickCmd(period time.Duration, gen int) tea.Cmd {
	return tea.Tick(period, func(t time.Time) tea.Msg {
		return TickMsg{Time: t, Gen: gen}
	})
}

// startCmd waits out the start delay before the first tick.
func startCmd(delay time.Duration, gen int) tea.Cmd {
	if delay <= 0 {
		return func() tea.Msg { return StartMsg{Gen: gen} }
	}
	return tea.Tick(delay, func(time.Time) tea.Msg {
		return StartMsg{Gen: gen}
	})
}
