package snake

import "github.com/vovakirdan/tui-snake/internal/core"

// ResolveGesture maps a completed swipe to a heading. The dominant axis wins;
// a swipe with equal displacement on both axes keeps the current heading.
func ResolveGesture(g core.Gesture, current Direction) Direction {
	dx, dy := g.Dx(), g.Dy()

	switch {
	case g.End.Y > g.Start.Y && dy > dx:
		return DirDown
	case g.End.Y < g.Start.Y && dy > dx:
		return DirUp
	case g.End.X < g.Start.X && dy < dx:
		return DirLeft
	case g.End.X > g.Start.X && dy < dx:
		return DirRight
	}
	return current
}

// SwipeFor synthesizes a unit swipe that resolves to d.
// Keyboard input goes through the same path as pointer swipes.
func SwipeFor(d Direction) core.Gesture {
	dx, dy := d.Offset(1)
	return core.Gesture{
		End: core.Point{X: float64(dx), Y: float64(dy)},
	}
}
