package httpapi

import (
	"context"
	"errors"
	"io"
	"testing"
	"time"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/tui-snake/internal/config"
	"github.com/vovakirdan/tui-snake/internal/snake"
)

var fastTiming = config.TimingConfig{TickPeriod: 5 * time.Millisecond}

func newTestHub(t *testing.T) *Hub {
	t.Helper()
	h := NewHub(testBounds, 1000, log.New(io.Discard))
	t.Cleanup(h.Close)
	return h
}

func clockRunning(s *Session) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.stop != nil
}

func TestHubGetUnknown(t *testing.T) {
	h := newTestHub(t)
	if _, err := h.Get("missing"); !errors.Is(err, ErrGameNotFound) {
		t.Errorf("Get() error = %v, expected ErrGameNotFound", err)
	}
	if err := h.Delete("missing"); !errors.Is(err, ErrGameNotFound) {
		t.Errorf("Delete() error = %v, expected ErrGameNotFound", err)
	}
}

func TestHubSeededSessionsMatch(t *testing.T) {
	h := newTestHub(t)
	seed := int64(123)
	a, err := h.Create(&seed, nil)
	if err != nil {
		t.Fatal(err)
	}
	b, err := h.Create(&seed, nil)
	if err != nil {
		t.Fatal(err)
	}
	if a.ID == b.ID {
		t.Error("sessions should get distinct IDs")
	}
	for i := 0; i < 5; i++ {
		a.Tick()
		b.Tick()
	}
	if !a.Snapshot().Equal(b.Snapshot()) {
		t.Error("sessions with the same seed diverged")
	}
}

func TestSessionClockFollowsSubscribers(t *testing.T) {
	h := newTestHub(t)
	sess, err := h.Create(nil, nil)
	if err != nil {
		t.Fatal(err)
	}

	first, leaveFirst := sess.Subscribe(h.Context(), fastTiming, h.logger)
	second, leaveSecond := sess.Subscribe(h.Context(), fastTiming, h.logger)
	if !clockRunning(sess) {
		t.Fatal("first subscriber should start the clock")
	}

	select {
	case <-first:
	case <-time.After(2 * time.Second):
		t.Fatal("no frame from the clock")
	}

	leaveFirst()
	leaveFirst()
	if !clockRunning(sess) {
		t.Error("clock should keep running for the remaining subscriber")
	}
	for range first {
		// Buffered frames drain until the channel is closed.
	}

	leaveSecond()
	if clockRunning(sess) {
		t.Error("clock should stop with the last subscriber")
	}
	for range second {
	}
}

func TestHubDeleteClosesStreams(t *testing.T) {
	h := newTestHub(t)
	sess, err := h.Create(nil, nil)
	if err != nil {
		t.Fatal(err)
	}
	frames, leave := sess.Subscribe(context.Background(), fastTiming, h.logger)
	defer leave()

	if err := h.Delete(sess.ID); err != nil {
		t.Fatalf("Delete() failed: %v", err)
	}

	deadline := time.After(2 * time.Second)
	for {
		select {
		case _, ok := <-frames:
			if !ok {
				if clockRunning(sess) {
					t.Error("clock should stop on delete")
				}
				return
			}
		case <-deadline:
			t.Fatal("stream not closed after delete")
		}
	}
}

func TestHubCloseEndsSessions(t *testing.T) {
	h := NewHub(testBounds, 1000, log.New(io.Discard))
	if _, err := h.Create(nil, nil); err != nil {
		t.Fatal(err)
	}
	h.Close()
	if h.Len() != 0 {
		t.Errorf("hub has %d games after Close, expected 0", h.Len())
	}
	if h.Context().Err() == nil {
		t.Error("hub context should be cancelled")
	}
}

func TestHubRejectsLargeFields(t *testing.T) {
	h := newTestHub(t)

	tests := []struct {
		name   string
		bounds snake.Bounds
		want   error
	}{
		{"over hub limit", snake.Bounds{CellSize: 1, MaxX: 100, MaxY: 100}, ErrFieldTooLarge},
		{"over engine limit", snake.Bounds{CellSize: 1, MaxX: 1 << 32, MaxY: 1 << 32}, snake.ErrInvalidBounds},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b := tt.bounds
			if _, err := h.Create(nil, &b); !errors.Is(err, tt.want) {
				t.Errorf("Create() error = %v, expected %v", err, tt.want)
			}
		})
	}
	if h.Len() != 0 {
		t.Errorf("hub has %d games, expected 0", h.Len())
	}

	small := snake.Bounds{CellSize: 1, MaxX: 30, MaxY: 30}
	if _, err := h.Create(nil, &small); err != nil {
		t.Errorf("Create() within the limit failed: %v", err)
	}
}
