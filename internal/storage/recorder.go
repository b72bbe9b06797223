package storage

import (
	"github.com/charmbracelet/log"

	"github.com/vovakirdan/tui-snake/internal/core"
	"github.com/vovakirdan/tui-snake/internal/snake"
)

// Recorder journals a live game into a Store. Write failures are logged
// and never interrupt the game.
type Recorder struct {
	store  *Store
	logger *log.Logger
	runID  string
}

// NewRecorder returns a recorder writing to store. A nil logger discards
// failures.
func NewRecorder(store *Store, logger *log.Logger) *Recorder {
	return &Recorder{store: store, logger: logger}
}

// RunID returns the ID of the open run, or "" between runs.
func (r *Recorder) RunID() string {
	return r.runID
}

// BeginRun implements snake.Recorder.
func (r *Recorder) BeginRun(seed int64, b snake.Bounds) {
	id, err := r.store.BeginRun(seed, b)
	if err != nil {
		r.warn("Journal begin failed", err)
		r.runID = ""
		return
	}
	r.runID = id
}

// RecordGesture implements snake.Recorder.
func (r *Recorder) RecordGesture(tick uint64, g core.Gesture) {
	if r.runID == "" {
		return
	}
	if err := r.store.AppendGesture(r.runID, tick, g); err != nil {
		r.warn("Journal append failed", err)
	}
}

// FinishRun implements snake.Recorder.
func (r *Recorder) FinishRun(tick uint64) {
	if r.runID == "" {
		return
	}
	if err := r.store.FinishRun(r.runID, tick); err != nil {
		r.warn("Journal finish failed", err)
	}
	r.runID = ""
}

func (r *Recorder) warn(msg string, err error) {
	if r.logger != nil {
		r.logger.Warn(msg, "run", r.runID, "error", err)
	}
}

var _ snake.Recorder = (*Recorder)(nil)
