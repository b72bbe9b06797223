package snake

import (
	"errors"
	"fmt"
)

// ErrInvalidBounds is returned when a Bounds value cannot host a game.
var ErrInvalidBounds = errors.New("invalid bounds")

// MaxCells caps Columns()*Rows() for any field.
const MaxCells = 1 << 20

// Bounds describes the playfield in cell-space units.
// Positions from Min to Max inclusive are on the field.
type Bounds struct {
	CellSize int `json:"cell_size"`
	MinX     int `json:"min_x"`
	MaxX     int `json:"max_x"`
	MinY     int `json:"min_y"`
	MaxY     int `json:"max_y"`
}

// GridBounds returns bounds for a field of cols x rows cells anchored at the origin.
func GridBounds(cols, rows, cellSize int) Bounds {
	return Bounds{
		CellSize: cellSize,
		MinX:     0,
		MaxX:     (cols - 1) * cellSize,
		MinY:     0,
		MaxY:     (rows - 1) * cellSize,
	}
}

// Validate reports whether food and spawn points can be placed inside b.
func (b Bounds) Validate() error {
	switch {
	case b.CellSize <= 0:
		return fmt.Errorf("snake: cell size %d: %w", b.CellSize, ErrInvalidBounds)
	case b.MaxX <= b.MinX:
		return fmt.Errorf("snake: max x %d <= min x %d: %w", b.MaxX, b.MinX, ErrInvalidBounds)
	case b.MaxY <= b.MinY:
		return fmt.Errorf("snake: max y %d <= min y %d: %w", b.MaxY, b.MinY, ErrInvalidBounds)
	case b.MaxX-b.MinX < 0 || b.MaxY-b.MinY < 0:
		return fmt.Errorf("snake: extent overflows: %w", ErrInvalidBounds)
	case b.Columns() < 2:
		return fmt.Errorf("snake: width %d fits fewer than 2 cells: %w", b.MaxX-b.MinX, ErrInvalidBounds)
	case b.Rows() < 2:
		return fmt.Errorf("snake: height %d fits fewer than 2 cells: %w", b.MaxY-b.MinY, ErrInvalidBounds)
	case b.Columns() > MaxCells/b.Rows():
		return fmt.Errorf("snake: %dx%d grid exceeds %d cells: %w", b.Columns(), b.Rows(), MaxCells, ErrInvalidBounds)
	}
	return nil
}

// Columns is the number of whole cells between MinX and MaxX.
func (b Bounds) Columns() int {
	return (b.MaxX - b.MinX) / b.CellSize
}

// Rows is the number of whole cells between MinY and MaxY.
func (b Bounds) Rows() int {
	return (b.MaxY - b.MinY) / b.CellSize
}

// Contains reports whether c lies on the field. Each axis is checked on its own.
func (b Bounds) Contains(c Cell) bool {
	if c.X < b.MinX || c.X > b.MaxX {
		return false
	}
	if c.Y < b.MinY || c.Y > b.MaxY {
		return false
	}
	return true
}
