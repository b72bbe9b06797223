package snake

import (
	"fmt"
	"math/rand"

	"github.com/vovakirdan/tui-snake/internal/core"
)

// Screen layout: one HUD line and a separator above the bordered field.
// A cell is one row tall and two columns wide so the field looks square.
const (
	hudHeight   = 2
	cellColumns = 2
)

// Recorder receives the inputs of each game so it can be replayed later.
// Implementations are best-effort and must not block the tick loop.
type Recorder interface {
	BeginRun(seed int64, bounds Bounds)
	RecordGesture(tick uint64, g core.Gesture)
	FinishRun(tick uint64)
}

// Game adapts the engine to a character screen and key/pointer input.
type Game struct {
	cellSize int
	fixed    *Bounds
	recorder Recorder

	cfg      core.RuntimeConfig
	seeds    *rand.Rand
	engine   *Engine
	field    core.Rect
	tooSmall bool
	recorded bool // A run is open on the recorder
}

// NewGame creates a game whose field is sized from the screen.
func NewGame(cellSize int) *Game {
	if cellSize <= 0 {
		cellSize = 1
	}
	return &Game{cellSize: cellSize}
}

// SetBounds pins the field to explicit bounds instead of the screen size.
func (g *Game) SetBounds(b Bounds) {
	g.fixed = &b
	g.cellSize = b.CellSize
}

// SetRecorder attaches a run recorder. Pass nil to stop recording.
func (g *Game) SetRecorder(r Recorder) {
	g.recorder = r
}

// Engine returns the running engine, or nil when the screen is too small.
func (g *Game) Engine() *Engine {
	return g.engine
}

// Seed returns the seed of the current game.
func (g *Game) Seed() int64 {
	return g.cfg.Seed
}

// Reset starts a new game sized for cfg.
func (g *Game) Reset(cfg core.RuntimeConfig) {
	g.finishRun()

	g.cfg = cfg
	if g.seeds == nil {
		g.seeds = rand.New(rand.NewSource(cfg.Seed))
	}

	bounds, ok := g.layout()
	g.tooSmall = !ok
	if !ok {
		g.engine = nil
		return
	}

	engine, err := New(bounds, cfg.Seed)
	if err != nil {
		g.tooSmall = true
		g.engine = nil
		return
	}
	g.engine = engine

	if g.recorder != nil {
		g.recorder.BeginRun(cfg.Seed, bounds)
		g.recorded = true
	}
}

// layout computes the engine bounds and where the field sits on screen.
func (g *Game) layout() (Bounds, bool) {
	var b Bounds
	if g.fixed != nil {
		b = *g.fixed
		if b.Validate() != nil {
			return b, false
		}
	} else {
		cols := (g.cfg.ScreenW - 2) / cellColumns
		rows := g.cfg.ScreenH - hudHeight - 2
		if cols < 3 || rows < 3 {
			return b, false
		}
		b = GridBounds(cols, rows, g.cellSize)
	}

	cols := b.Columns() + 1
	rows := b.Rows() + 1
	w := cols*cellColumns + 2
	h := rows + 2
	if w > g.cfg.ScreenW || h+hudHeight > g.cfg.ScreenH {
		return b, false
	}
	g.field = core.NewRect((g.cfg.ScreenW-w)/2, hudHeight, w, h)
	return b, true
}

// Close ends the open journal run, if any. The game can still be Reset.
func (g *Game) Close() {
	g.finishRun()
}

func (g *Game) finishRun() {
	if g.recorder != nil && g.recorded && g.engine != nil {
		g.recorder.FinishRun(g.engine.Tick())
	}
	g.recorded = false
}

// ApplyInput handles restart, dismiss and direction input without advancing
// the simulation. Drivers call it directly while the snake is held.
func (g *Game) ApplyInput(in core.InputFrame) {
	if in.Has(core.ActionRestart) {
		if g.seeds == nil {
			g.seeds = rand.New(rand.NewSource(g.cfg.Seed))
		}
		cfg := g.cfg
		cfg.Seed = g.seeds.Int63()
		g.Reset(cfg)
		return
	}
	if g.engine == nil {
		return
	}
	if in.Has(core.ActionDismiss) && g.engine.IsGameOver() {
		g.engine.DismissGameOver()
	}

	for _, a := range []core.Action{core.ActionUp, core.ActionDown, core.ActionLeft, core.ActionRight} {
		if in.Has(a) {
			g.swipe(SwipeFor(actionDirection(a)))
		}
	}
	for _, gesture := range in.Gestures {
		g.swipe(gesture)
	}
}

func (g *Game) swipe(gesture core.Gesture) {
	if g.recorder != nil && g.recorded {
		g.recorder.RecordGesture(g.engine.Tick(), gesture)
	}
	g.engine.SetDirection(gesture)
}

func actionDirection(a core.Action) Direction {
	switch a {
	case core.ActionUp:
		return DirUp
	case core.ActionDown:
		return DirDown
	case core.ActionLeft:
		return DirLeft
	default:
		return DirRight
	}
}

// Step applies input and advances the simulation by one tick.
func (g *Game) Step(in core.InputFrame) core.StepResult {
	g.ApplyInput(in)

	moved := false
	if g.engine != nil {
		moved = g.engine.Step()
		if g.engine.IsGameOver() {
			g.finishRun()
		}
	}
	return core.StepResult{State: g.State(), Moved: moved}
}

// State returns the current game state.
func (g *Game) State() core.GameState {
	if g.engine == nil {
		return core.GameState{}
	}
	return core.GameState{
		Score:    g.engine.Score(),
		GameOver: g.engine.IsGameOver(),
		Running:  g.engine.Running(),
	}
}

// Render draws the game to the screen.
func (g *Game) Render(dst *core.Screen) {
	dst.Clear()
	g.renderHUD(dst)

	if g.tooSmall || g.engine == nil {
		g.renderDialog(dst, "Window too small", "Resize to continue")
		return
	}

	dst.DrawBox(g.field, core.ColorBorder)

	g.drawCell(dst, g.engine.Food(), '◖', '◗', core.ColorFood)

	// Tail first so the head is drawn on top of overlapping segments.
	body := g.engine.Body()
	for i := len(body) - 1; i >= 0; i-- {
		if i == 0 && len(body) > 2 {
			g.drawCell(dst, body[i], '◖', '◗', core.ColorHead)
			continue
		}
		g.drawCell(dst, body[i], '█', '█', core.ColorBody)
	}

	switch {
	case g.engine.IsGameOver():
		g.renderDialog(dst, "Game Over",
			fmt.Sprintf("Your Score is: %d", g.engine.Score()),
			"R: Restart  X: Dismiss")
	case !g.engine.Running():
		g.renderDialog(dst, "Stopped", "R: New game  Q: Quit")
	}
}

func (g *Game) drawCell(dst *core.Screen, c Cell, left, right rune, color core.Color) {
	b := g.engine.Bounds()
	x := g.field.X + 1 + (c.X-b.MinX)/b.CellSize*cellColumns
	y := g.field.Y + 1 + (c.Y-b.MinY)/b.CellSize
	dst.SetColor(x, y, left, color)
	dst.SetColor(x+1, y, right, color)
}

func (g *Game) renderHUD(dst *core.Screen) {
	score, length := 0, 0
	if g.engine != nil {
		score = g.engine.Score()
		length = g.engine.Len()
	}
	dst.DrawText(0, 0, fmt.Sprintf(" Score: %d   Length: %d", score, length), core.ColorHUD)

	hint := "R restart  Q quit "
	dst.DrawText(dst.Width()-len(hint), 0, hint, core.ColorBorder)

	for x := 0; x < dst.Width(); x++ {
		dst.SetColor(x, 1, '─', core.ColorBorder)
	}
}

// renderDialog draws a centered box with one line of text per row.
func (g *Game) renderDialog(dst *core.Screen, lines ...string) {
	width := 0
	for _, l := range lines {
		width = max(width, len([]rune(l)))
	}
	boxW := width + 4
	boxH := len(lines)*2 + 1
	box := core.NewRect((dst.Width()-boxW)/2, (dst.Height()-boxH)/2, boxW, boxH)

	dst.DrawRect(box, ' ', core.ColorDialog)
	dst.DrawBox(box, core.ColorDialog)
	for i, l := range lines {
		dst.DrawTextCentered(box.Y+1+i*2, l, core.ColorDialog)
	}
}
