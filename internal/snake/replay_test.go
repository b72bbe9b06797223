package snake

import (
	"testing"

	"github.com/vovakirdan/tui-snake/internal/core"
)

// memRecorder keeps the last run in memory.
type memRecorder struct {
	seed     int64
	bounds   Bounds
	events   []Event
	finished bool
	ticks    uint64
	runs     int
}

func (r *memRecorder) BeginRun(seed int64, b Bounds) {
	*r = memRecorder{seed: seed, bounds: b, runs: r.runs + 1}
}

func (r *memRecorder) RecordGesture(tick uint64, g core.Gesture) {
	r.events = append(r.events, Event{Tick: tick, Gesture: g})
}

func (r *memRecorder) FinishRun(tick uint64) {
	r.finished = true
	r.ticks = tick
}

func TestReplayReproducesLiveGame(t *testing.T) {
	rec := &memRecorder{}
	g := NewGame(12)
	g.SetRecorder(rec)
	g.Reset(core.RuntimeConfig{ScreenW: 80, ScreenH: 24, Seed: 2024})

	keys := []core.Action{core.ActionRight, core.ActionDown, core.ActionLeft, core.ActionUp}
	in := core.NewInputFrame()
	for i := 0; i < 400 && !g.State().GameOver; i++ {
		in.Clear()
		if i%5 == 0 {
			in.Set(keys[(i/5)%len(keys)])
		}
		g.Step(in)
	}

	live := g.Engine().Snapshot()
	ticks := live.Tick
	if rec.finished {
		ticks = rec.ticks
	}

	replayed, err := Replay(rec.bounds, rec.seed, rec.events, ticks)
	if err != nil {
		t.Fatalf("Replay() failed: %v", err)
	}
	if !replayed.Snapshot().Equal(live) {
		t.Errorf("replay diverged:\n live   %+v\n replay %+v", live, replayed.Snapshot())
	}
}

func TestReplayAppliesEventsInTickOrder(t *testing.T) {
	events := []Event{
		{Tick: 2, Gesture: SwipeFor(DirRight)},
		{Tick: 0, Gesture: SwipeFor(DirDown)},
	}

	e, err := Replay(testBounds, 77, events, 2)
	if err != nil {
		t.Fatalf("Replay() failed: %v", err)
	}
	if e.Direction() != DirRight {
		t.Errorf("Direction() = %v, expected right after trailing event", e.Direction())
	}

	ref := newTestEngine(t, 77)
	ref.SetDirection(SwipeFor(DirDown))
	ref.Step()
	ref.Step()
	if e.Head() != ref.Head() {
		t.Errorf("Head() = %v, expected %v", e.Head(), ref.Head())
	}
}

func TestReplayRejectsInvalidBounds(t *testing.T) {
	if _, err := Replay(Bounds{}, 1, nil, 10); err == nil {
		t.Error("Replay() with zero bounds should fail")
	}
}
