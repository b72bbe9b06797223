// Package core provides fundamental types shared by the snake engine and its
// drivers. It contains no external dependencies (especially no Bubble Tea) to
// keep game logic pure and testable.
package core

import "math"

// Rect is an axis-aligned area on the terminal screen.
type Rect struct {
	X, Y int // Top-left corner position
	W, H int // Width and height
}

// NewRect creates a new rectangle with the given position and dimensions.
func NewRect(x, y, w, h int) Rect {
	return Rect{X: x, Y: y, W: w, H: h}
}

// Right returns the x-coordinate just past the right edge.
func (r Rect) Right() int {
	return r.X + r.W
}

// Bottom returns the y-coordinate just past the bottom edge.
func (r Rect) Bottom() int {
	return r.Y + r.H
}

// Contains returns true if the point (x, y) is inside this rectangle.
func (r Rect) Contains(x, y int) bool {
	return x >= r.X && x < r.Right() && y >= r.Y && y < r.Bottom()
}

// Point is a continuous 2D coordinate, as reported by a pointer device.
type Point struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Gesture is a completed swipe from Start to End.
type Gesture struct {
	Start Point `json:"start"`
	End   Point `json:"end"`
}

// Dx returns the absolute horizontal displacement of the swipe.
func (g Gesture) Dx() float64 {
	return math.Abs(g.End.X - g.Start.X)
}

// Dy returns the absolute vertical displacement of the swipe.
func (g Gesture) Dy() float64 {
	return math.Abs(g.End.Y - g.Start.Y)
}

// Clamp restricts a value to be within [lo, hi].
func Clamp(val, lo, hi int) int {
	if val < lo {
		return lo
	}
	if val > hi {
		return hi
	}
	return val
}
