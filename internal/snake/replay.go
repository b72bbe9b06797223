package snake

import (
	"sort"

	"github.com/vovakirdan/tui-snake/internal/core"
)

// Event is a swipe applied while the engine had advanced Tick steps.
type Event struct {
	Tick    uint64       `json:"tick"`
	Gesture core.Gesture `json:"gesture"`
}

// Replay rebuilds a game from its seed and recorded swipes. Swipes recorded
// at tick t are applied before the step that moves the snake to tick t+1.
// The replay stops after ticks steps or when the game ends, whichever is first.
func Replay(bounds Bounds, seed int64, events []Event, ticks uint64) (*Engine, error) {
	e, err := New(bounds, seed)
	if err != nil {
		return nil, err
	}

	ordered := make([]Event, len(events))
	copy(ordered, events)
	sort.SliceStable(ordered, func(i, j int) bool {
		return ordered[i].Tick < ordered[j].Tick
	})

	next := 0
	apply := func() {
		for next < len(ordered) && ordered[next].Tick <= e.Tick() {
			e.SetDirection(ordered[next].Gesture)
			next++
		}
	}

	for e.Tick() < ticks && !e.IsGameOver() {
		apply()
		if !e.Step() {
			break
		}
	}
	apply()

	return e, nil
}
