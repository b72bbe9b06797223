package tui

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/tui-snake/internal/config"
	"github.com/vovakirdan/tui-snake/internal/core"
	"github.com/vovakirdan/tui-snake/internal/render"
	"github.com/vovakirdan/tui-snake/internal/snake"
)

// One line under the game is reserved for the help bar.
const helpHeight = 1

// Options configures a game model.
type Options struct {
	Config     config.Config
	ConfigPath string // Watched for changes when set
	Recorder   snake.Recorder
	Seed       int64 // 0 picks a time-based seed
	Renderer   *lipgloss.Renderer
	ShotDir    string // Defaults to ~/.snake/screenshots
}

// ConfigMsg carries a reloaded configuration. Timing and theme apply
// immediately; grid changes apply to the next session.
type ConfigMsg struct {
	Config config.Config
}

type screenshotMsg struct {
	path string
	err  error
}

// Model is the Bubble Tea model for one snake session.
type Model struct {
	game     *snake.Game
	screen   *core.Screen
	cfg      config.Config
	runtime  core.RuntimeConfig
	renderer *lipgloss.Renderer
	styles   Styles
	keys     KeyMap
	help     help.Model
	state    core.GameState
	gen      int         // Bumped whenever the game is replaced
	started  bool        // Start delay elapsed
	drag     *core.Point // Pointer position at press while dragging
	status   string
	shotDir  string
	quitting bool
}

// NewModel creates a model for a terminal of width by height and starts
// the first game.
func NewModel(opts Options, width, height int) Model {
	seed := opts.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}

	game := snake.NewGame(opts.Config.Grid.CellSize)
	if b, ok := opts.Config.Grid.Bounds(); ok {
		game.SetBounds(b)
	}
	if opts.Recorder != nil {
		game.SetRecorder(opts.Recorder)
	}

	shotDir := opts.ShotDir
	if shotDir == "" {
		if home, err := os.UserHomeDir(); err == nil {
			shotDir = filepath.Join(home, ".snake", "screenshots")
		}
	}

	h := help.New()
	h.Width = width

	m := Model{
		game:     game,
		screen:   core.NewScreen(width, max(height-helpHeight, 0)),
		cfg:      opts.Config,
		runtime:  opts.Config.RuntimeConfig(width, max(height-helpHeight, 0), seed),
		renderer: opts.Renderer,
		styles:   NewStyles(opts.Renderer, opts.Config.Theme),
		keys:     DefaultKeyMap(),
		help:     h,
		shotDir:  shotDir,
	}
	m.game.Reset(m.runtime)
	m.state = m.game.State()
	return m
}

// Init waits out the start delay, then starts the tick loop.
func (m Model) Init() tea.Cmd {
	return startCmd(m.runtime.StartDelay, m.gen)
}

// Update handles messages and updates the model state.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.MouseMsg:
		return m.handleMouse(msg)

	case tea.WindowSizeMsg:
		return m.handleResize(msg)

	case StartMsg:
		if msg.Gen != m.gen {
			return m, nil
		}
		m.started = true
		return m, tickCmd(m.runtime.TickPeriod, m.gen)

	case TickMsg:
		if msg.Gen != m.gen {
			return m, nil
		}
		return m.handleTick()

	case ConfigMsg:
		m.cfg = msg.Config
		m.runtime.TickPeriod = msg.Config.Timing.TickPeriod
		m.runtime.StartDelay = msg.Config.Timing.StartDelay
		m.styles = NewStyles(m.renderer, msg.Config.Theme)
		m.status = "config reloaded"
		return m, nil

	case screenshotMsg:
		if msg.err != nil {
			m.status = "screenshot failed: " + msg.err.Error()
		} else {
			m.status = "saved " + msg.path
		}
		return m, nil
	}

	return m, nil
}

// handleKey applies keys as soon as they arrive. Steering between ticks
// takes effect on the next tick.
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	m.status = ""

	if key.Matches(msg, m.keys.Screenshot) {
		return m, m.screenshotCmd()
	}

	action := m.keys.Action(msg)
	switch action {
	case core.ActionNone:
		return m, nil
	case core.ActionQuit:
		m.game.Close()
		m.quitting = true
		return m, tea.Quit
	}

	in := core.NewInputFrame()
	in.Set(action)
	m.game.ApplyInput(in)
	m.state = m.game.State()

	if action == core.ActionRestart {
		return m.restart()
	}
	return m, nil
}

// handleMouse turns a left-button drag into a swipe. Columns are halved so
// a drag covers the same distance per cell on both axes.
func (m Model) handleMouse(msg tea.MouseMsg) (tea.Model, tea.Cmd) {
	p := core.Point{X: float64(msg.X) / 2, Y: float64(msg.Y)}

	switch msg.Action {
	case tea.MouseActionPress:
		if msg.Button == tea.MouseButtonLeft {
			m.drag = &p
		}
	case tea.MouseActionRelease:
		if m.drag == nil {
			return m, nil
		}
		in := core.NewInputFrame()
		in.AddGesture(core.Gesture{Start: *m.drag, End: p})
		m.drag = nil
		m.game.ApplyInput(in)
		m.state = m.game.State()
	}
	return m, nil
}

// handleResize refits a running game to the new terminal size.
func (m Model) handleResize(msg tea.WindowSizeMsg) (tea.Model, tea.Cmd) {
	h := max(msg.Height-helpHeight, 0)
	m.help.Width = msg.Width
	if msg.Width == m.runtime.ScreenW && h == m.runtime.ScreenH {
		return m, nil
	}

	m.runtime.ScreenW = msg.Width
	m.runtime.ScreenH = h
	m.screen.Resize(msg.Width, h)

	// A finished game keeps its result on screen until restart
	if m.state.GameOver || (m.game.Engine() != nil && !m.state.Running) {
		return m, nil
	}
	m.game.Reset(m.runtime)
	m.state = m.game.State()
	return m.restart()
}

// restart schedules the start delay for a freshly reset game.
func (m Model) restart() (tea.Model, tea.Cmd) {
	m.gen++
	m.started = false
	m.drag = nil
	return m, startCmd(m.runtime.StartDelay, m.gen)
}

// handleTick steps the simulation. Steps are held while a drag is in
// progress so the swipe lands before the snake moves again.
func (m Model) handleTick() (tea.Model, tea.Cmd) {
	if m.drag == nil {
		result := m.game.Step(core.NewInputFrame())
		m.state = result.State
	}
	return m, tickCmd(m.runtime.TickPeriod, m.gen)
}

// screenshotCmd renders the board to a PNG off the update loop.
func (m Model) screenshotCmd() tea.Cmd {
	engine := m.game.Engine()
	if engine == nil || m.shotDir == "" {
		return nil
	}
	snap := engine.Snapshot()
	bounds := engine.Bounds()
	opts := render.OptionsFrom(m.cfg)
	path := filepath.Join(m.shotDir, fmt.Sprintf("snake_%s.png", time.Now().Format("20060102_150405")))

	return func() tea.Msg {
		err := render.Save(path, render.Board(snap, bounds, opts))
		return screenshotMsg{path: path, err: err}
	}
}

// View renders the current state to a string for display.
func (m Model) View() string {
	if m.quitting {
		return ""
	}

	m.game.Render(m.screen)

	footer := m.styles.Help.Render(m.help.View(m.keys))
	switch {
	case m.status != "":
		footer = m.styles.Status.Render(m.status)
	case !m.started && m.state.Running:
		footer = m.styles.Status.Render("get ready...")
	}
	return m.styles.RenderScreen(m.screen) + "\n" + footer
}

// State returns the state after the last update.
func (m Model) State() core.GameState {
	return m.state
}

// Run starts the Bubble Tea program for a terminal of width by height.
func Run(opts Options, width, height int) error {
	model := NewModel(opts, width, height)

	p := tea.NewProgram(
		model,
		tea.WithAltScreen(),
		tea.WithMouseCellMotion(),
	)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	if opts.ConfigPath != "" {
		err := config.Watch(ctx, opts.ConfigPath, func(c config.Config) {
			p.Send(ConfigMsg{Config: c})
		})
		if err != nil {
			return err
		}
	}

	final, err := p.Run()
	if fm, ok := final.(Model); ok {
		fm.game.Close()
	}
	return err
}
