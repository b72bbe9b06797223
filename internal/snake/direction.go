package snake

import (
	"encoding/json"
	"fmt"
)

// Cell is a grid-aligned position in cell-space units.
type Cell struct {
	X int `json:"x"`
	Y int `json:"y"`
}

// Direction is the snake's heading.
type Direction int

const (
	DirUp Direction = iota
	DirDown
	DirLeft
	DirRight
)

// Directions lists every heading, in the order used for random draws.
var Directions = [...]Direction{DirUp, DirDown, DirLeft, DirRight}

// Offset returns the displacement of one step of size cellSize.
// Screen coordinates grow downward, so Up decreases Y.
func (d Direction) Offset(cellSize int) (dx, dy int) {
	switch d {
	case DirUp:
		return 0, -cellSize
	case DirDown:
		return 0, cellSize
	case DirLeft:
		return -cellSize, 0
	default:
		return cellSize, 0
	}
}

func (d Direction) String() string {
	switch d {
	case DirUp:
		return "up"
	case DirDown:
		return "down"
	case DirLeft:
		return "left"
	case DirRight:
		return "right"
	default:
		return "unknown"
	}
}

// ParseDirection converts a direction name back to a Direction.
func ParseDirection(s string) (Direction, error) {
	for _, d := range Directions {
		if d.String() == s {
			return d, nil
		}
	}
	return DirUp, fmt.Errorf("snake: unknown direction %q", s)
}

// MarshalJSON encodes the direction by name.
func (d Direction) MarshalJSON() ([]byte, error) {
	return json.Marshal(d.String())
}

// UnmarshalJSON decodes a direction name.
func (d *Direction) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	parsed, err := ParseDirection(s)
	if err != nil {
		return err
	}
	*d = parsed
	return nil
}
