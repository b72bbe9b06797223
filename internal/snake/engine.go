// Package snake implements the Snake simulation: the state of one game and
// the per-tick rules that move the snake, collect food and end the game.
//
// The engine has no timers and no I/O. A driver calls SetDirection when a
// swipe completes and Step on every timer tick, then renders the result.
package snake

import (
	"math/rand"

	"github.com/vovakirdan/tui-snake/internal/core"
)

// Engine owns the state of a single game.
type Engine struct {
	bounds Bounds
	rng    *rand.Rand

	body      []Cell // Head at index 0
	food      Cell
	direction Direction
	score     int
	gameOver  bool
	running   bool
	tick      uint64 // Steps that advanced the snake
}

// New validates bounds and starts a game seeded with seed.
// Two engines built from the same bounds and seed evolve identically.
func New(bounds Bounds, seed int64) (*Engine, error) {
	if err := bounds.Validate(); err != nil {
		return nil, err
	}
	e := &Engine{
		bounds: bounds,
		rng:    rand.New(rand.NewSource(seed)),
	}
	e.Reset()
	return e, nil
}

// RandomCell returns a cell whose coordinates are cellSize times a uniform
// integer in [1, width/cellSize) and [1, height/cellSize). Row and column 0
// and the outer edge are never chosen. width/cellSize and height/cellSize
// must both be at least 2.
func RandomCell(rng *rand.Rand, width, height, cellSize int) Cell {
	cols := width / cellSize
	rows := height / cellSize
	return Cell{
		X: (1 + rng.Intn(cols-1)) * cellSize,
		Y: (1 + rng.Intn(rows-1)) * cellSize,
	}
}

// RandomCell draws a spawn cell inside the engine's bounds.
// The result may coincide with the body or the food.
func (e *Engine) RandomCell() Cell {
	c := RandomCell(e.rng, e.bounds.MaxX-e.bounds.MinX, e.bounds.MaxY-e.bounds.MinY, e.bounds.CellSize)
	c.X += e.bounds.MinX
	c.Y += e.bounds.MinY
	return c
}

// Reset starts a new game: food and head are two independent draws, the
// heading is random, score is zero and the game is running.
func (e *Engine) Reset() {
	e.body = []Cell{{X: e.bounds.MinX, Y: e.bounds.MinY}}
	e.placeFood()
	e.body[0] = e.RandomCell()
	e.direction = Directions[e.rng.Intn(len(Directions))]
	e.score = 0
	e.gameOver = false
	e.running = true
	e.tick = 0
}

// placeFood draws food cells until one misses the body. When the field is
// too crowded to find one quickly, the last draw is kept.
func (e *Engine) placeFood() {
	attempts := max(e.bounds.Columns()*e.bounds.Rows(), 1)
	for i := 0; i < attempts; i++ {
		e.food = e.RandomCell()
		if !e.occupies(e.food) {
			return
		}
	}
}

func (e *Engine) occupies(c Cell) bool {
	for _, seg := range e.body {
		if seg == c {
			return true
		}
	}
	return false
}

// Step advances the game by one tick and reports whether the snake moved.
// It is a no-op while the game is stopped or over.
func (e *Engine) Step() bool {
	if !e.running || e.gameOver {
		return false
	}

	head := e.body[0]
	if !e.bounds.Contains(head) {
		e.gameOver = true
		return false
	}

	dx, dy := e.direction.Offset(e.bounds.CellSize)
	prev := head
	e.body[0] = Cell{X: head.X + dx, Y: head.Y + dy}
	for i := 1; i < len(e.body); i++ {
		prev, e.body[i] = e.body[i], prev
	}
	e.tick++

	if !e.bounds.Contains(e.body[0]) {
		e.gameOver = true
		return true
	}

	if e.body[0] == e.food {
		e.body = append(e.body, e.body[0])
		e.placeFood()
		e.score++
	}
	return true
}

// SetDirection applies a completed swipe and returns the resulting heading.
func (e *Engine) SetDirection(g core.Gesture) Direction {
	e.direction = ResolveGesture(g, e.direction)
	return e.direction
}

// DismissGameOver clears the game over flag and stops the game.
// The snake stays where it is until the next Reset.
func (e *Engine) DismissGameOver() {
	e.gameOver = false
	e.running = false
}

// Bounds returns the playfield the engine was built with.
func (e *Engine) Bounds() Bounds { return e.bounds }

// Score returns the number of food items eaten this game.
func (e *Engine) Score() int { return e.score }

// IsGameOver reports whether the head has left the field.
func (e *Engine) IsGameOver() bool { return e.gameOver }

// Running reports whether Step has any effect.
func (e *Engine) Running() bool { return e.running }

// Direction returns the current heading.
func (e *Engine) Direction() Direction { return e.direction }

// Food returns the food cell.
func (e *Engine) Food() Cell { return e.food }

// Head returns the head cell.
func (e *Engine) Head() Cell { return e.body[0] }

// Len returns the number of body segments.
func (e *Engine) Len() int { return len(e.body) }

// Tick returns how many steps have moved the snake since Reset.
func (e *Engine) Tick() uint64 { return e.tick }

// Body returns a copy of the body cells, head first.
func (e *Engine) Body() []Cell {
	out := make([]Cell, len(e.body))
	copy(out, e.body)
	return out
}
