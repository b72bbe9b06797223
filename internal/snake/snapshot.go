package snake

// Snapshot captures the complete game state for determinism testing,
// replay verification and the network drivers.
type Snapshot struct {
	Tick      uint64    `json:"tick"`
	Body      []Cell    `json:"body"`
	Food      Cell      `json:"food"`
	Direction Direction `json:"direction"`
	Score     int       `json:"score"`
	Length    int       `json:"length"`
	GameOver  bool      `json:"game_over"`
	Running   bool      `json:"running"`
}

// Head returns the head cell of the snapshot.
func (s Snapshot) Head() Cell {
	if len(s.Body) == 0 {
		return Cell{}
	}
	return s.Body[0]
}

// Snapshot returns a copy of the current state.
func (e *Engine) Snapshot() Snapshot {
	return Snapshot{
		Tick:      e.tick,
		Body:      e.Body(),
		Food:      e.food,
		Direction: e.direction,
		Score:     e.score,
		Length:    len(e.body),
		GameOver:  e.gameOver,
		Running:   e.running,
	}
}

// Equal reports whether two snapshots describe the same state.
func (s Snapshot) Equal(o Snapshot) bool {
	if s.Tick != o.Tick || s.Food != o.Food || s.Direction != o.Direction ||
		s.Score != o.Score || s.GameOver != o.GameOver || s.Running != o.Running ||
		len(s.Body) != len(o.Body) {
		return false
	}
	for i := range s.Body {
		if s.Body[i] != o.Body[i] {
			return false
		}
	}
	return true
}
