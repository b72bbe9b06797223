package storage

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/vovakirdan/tui-snake/internal/core"
	"github.com/vovakirdan/tui-snake/internal/snake"
)

var testBounds = snake.Bounds{CellSize: 12, MinX: 0, MaxX: 120, MinY: 0, MaxY: 120}

func openTestStore(t *testing.T) *Store {
	t.Helper()
	store, err := Open(filepath.Join(t.TempDir(), "runs.db"))
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	t.Cleanup(func() { store.Close() })
	return store
}

func TestStoreOpenClose(t *testing.T) {
	tmpDir := t.TempDir()
	dbPath := filepath.Join(tmpDir, "nested", "runs.db")

	store, err := Open(dbPath)
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	defer store.Close()

	if _, err := os.Stat(dbPath); os.IsNotExist(err) {
		t.Error("Database file was not created")
	}
}

func TestStoreReopenKeepsRuns(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "runs.db")

	store, err := Open(dbPath)
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	id, err := store.BeginRun(5, testBounds)
	if err != nil {
		t.Fatalf("BeginRun() failed: %v", err)
	}
	store.Close()

	store, err = Open(dbPath)
	if err != nil {
		t.Fatalf("reopen failed: %v", err)
	}
	defer store.Close()

	if _, _, err := store.LoadRun(id); err != nil {
		t.Errorf("LoadRun() after reopen failed: %v", err)
	}
}

func TestStoreRunLifecycle(t *testing.T) {
	store := openTestStore(t)

	id, err := store.BeginRun(99, testBounds)
	if err != nil {
		t.Fatalf("BeginRun() failed: %v", err)
	}

	swipes := []snake.Event{
		{Tick: 0, Gesture: core.Gesture{End: core.Point{X: 1}}},
		{Tick: 3, Gesture: core.Gesture{Start: core.Point{X: 10.5, Y: 4}, End: core.Point{X: 10.5, Y: 20.25}}},
		{Tick: 3, Gesture: snake.SwipeFor(snake.DirLeft)},
	}
	for _, ev := range swipes {
		if err := store.AppendGesture(id, ev.Tick, ev.Gesture); err != nil {
			t.Fatalf("AppendGesture() failed: %v", err)
		}
	}

	run, _, err := store.LoadRun(id)
	if err != nil {
		t.Fatalf("LoadRun() failed: %v", err)
	}
	if run.Finished() {
		t.Error("run should be open before FinishRun")
	}

	if err := store.FinishRun(id, 17); err != nil {
		t.Fatalf("FinishRun() failed: %v", err)
	}

	run, events, err := store.LoadRun(id)
	if err != nil {
		t.Fatalf("LoadRun() failed: %v", err)
	}
	if run.Seed != 99 || run.Bounds != testBounds {
		t.Errorf("run mismatch: %+v", run)
	}
	if !run.Finished() || run.Ticks != 17 {
		t.Errorf("finished=%v ticks=%d, expected finished at 17", run.Finished(), run.Ticks)
	}
	if run.Events != len(swipes) {
		t.Errorf("event count mismatch: %d vs %d", run.Events, len(swipes))
	}
	if len(events) != len(swipes) {
		t.Fatalf("events mismatch: %d vs %d", len(events), len(swipes))
	}
	for i := range swipes {
		if events[i] != swipes[i] {
			t.Errorf("event %d = %+v, expected %+v", i, events[i], swipes[i])
		}
	}
}

func TestStoreListRuns(t *testing.T) {
	store := openTestStore(t)

	var ids []string
	for seed := int64(1); seed <= 3; seed++ {
		id, err := store.BeginRun(seed, testBounds)
		if err != nil {
			t.Fatalf("BeginRun() failed: %v", err)
		}
		ids = append(ids, id)
	}

	runs, err := store.ListRuns(10)
	if err != nil {
		t.Fatalf("ListRuns() failed: %v", err)
	}
	if len(runs) != 3 {
		t.Fatalf("Expected 3 runs, got %d", len(runs))
	}
	if runs[0].ID != ids[2] {
		t.Errorf("newest run should come first, got seed %d", runs[0].Seed)
	}

	runs, err = store.ListRuns(2)
	if err != nil {
		t.Fatalf("ListRuns() failed: %v", err)
	}
	if len(runs) != 2 {
		t.Errorf("Expected limit of 2 runs, got %d", len(runs))
	}
}

func TestStoreUnknownRun(t *testing.T) {
	store := openTestStore(t)

	if _, _, err := store.LoadRun("nope"); !errors.Is(err, ErrRunNotFound) {
		t.Errorf("LoadRun() error = %v, expected ErrRunNotFound", err)
	}
	if err := store.FinishRun("nope", 1); !errors.Is(err, ErrRunNotFound) {
		t.Errorf("FinishRun() error = %v, expected ErrRunNotFound", err)
	}
	if err := store.DeleteRun("nope"); !errors.Is(err, ErrRunNotFound) {
		t.Errorf("DeleteRun() error = %v, expected ErrRunNotFound", err)
	}
}

func TestStoreDeleteRun(t *testing.T) {
	store := openTestStore(t)

	id, _ := store.BeginRun(1, testBounds)
	store.AppendGesture(id, 0, snake.SwipeFor(snake.DirUp))

	if err := store.DeleteRun(id); err != nil {
		t.Fatalf("DeleteRun() failed: %v", err)
	}
	if _, _, err := store.LoadRun(id); !errors.Is(err, ErrRunNotFound) {
		t.Errorf("run still present after delete: %v", err)
	}
}

func TestRecorderJournalsReplayableGame(t *testing.T) {
	store := openTestStore(t)
	rec := NewRecorder(store, nil)

	g := snake.NewGame(12)
	g.SetRecorder(rec)
	g.Reset(core.RuntimeConfig{ScreenW: 60, ScreenH: 20, Seed: 31})
	id := rec.RunID()
	if id == "" {
		t.Fatal("Reset should open a run")
	}

	keys := []core.Action{core.ActionDown, core.ActionRight, core.ActionUp, core.ActionLeft}
	in := core.NewInputFrame()
	for i := 0; i < 120 && !g.State().GameOver; i++ {
		in.Clear()
		if i%3 == 0 {
			in.Set(keys[(i/3)%len(keys)])
		}
		g.Step(in)
	}
	live := g.Engine().Snapshot()

	// Restart closes the current run and opens another.
	in.Clear()
	in.Set(core.ActionRestart)
	g.Step(in)
	if rec.RunID() == id || rec.RunID() == "" {
		t.Errorf("restart should open a new run, got %q", rec.RunID())
	}

	run, events, err := store.LoadRun(id)
	if err != nil {
		t.Fatalf("LoadRun() failed: %v", err)
	}
	if !run.Finished() || run.Ticks != live.Tick {
		t.Errorf("run finished=%v ticks=%d, expected %d", run.Finished(), run.Ticks, live.Tick)
	}

	replayed, err := snake.Replay(run.Bounds, run.Seed, events, run.Ticks)
	if err != nil {
		t.Fatalf("Replay() failed: %v", err)
	}
	if !replayed.Snapshot().Equal(live) {
		t.Errorf("replay diverged:\n live   %+v\n replay %+v", live, replayed.Snapshot())
	}
}
