// Package httpapi drives snake games over HTTP. Each game is a session
// addressed by ID; clients step it explicitly or subscribe to a WebSocket
// stream that ticks it on the configured clock.
package httpapi

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"

	"github.com/vovakirdan/tui-snake/internal/config"
	"github.com/vovakirdan/tui-snake/internal/core"
	"github.com/vovakirdan/tui-snake/internal/snake"
)

// ErrGameNotFound is returned for session IDs the hub does not know.
var ErrGameNotFound = errors.New("game not found")

// ErrFieldTooLarge is returned for requested bounds above the hub limit.
var ErrFieldTooLarge = errors.New("field too large")

// streamBuffer is how many frames a slow subscriber may fall behind
// before frames are dropped for it.
const streamBuffer = 8

// Session is one game owned by the hub. All methods are safe for
// concurrent use.
type Session struct {
	ID      string
	Seed    int64
	Created time.Time

	mu     sync.Mutex
	engine *snake.Engine
	subs   map[chan snake.Snapshot]struct{}
	stop   context.CancelFunc // Stops the ticker, nil when idle
	closed bool
}

// Snapshot returns the current state.
func (s *Session) Snapshot() snake.Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.engine.Snapshot()
}

// Bounds returns the playfield of the session.
func (s *Session) Bounds() snake.Bounds {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.engine.Bounds()
}

// Tick advances the game one step.
func (s *Session) Tick() snake.Snapshot {
	return s.apply(func(e *snake.Engine) { e.Step() })
}

// Gesture applies a completed swipe.
func (s *Session) Gesture(g core.Gesture) snake.Snapshot {
	return s.apply(func(e *snake.Engine) { e.SetDirection(g) })
}

// Reset starts a new game in the same session.
func (s *Session) Reset() snake.Snapshot {
	return s.apply(func(e *snake.Engine) { e.Reset() })
}

// Dismiss clears a game over and stops the game.
func (s *Session) Dismiss() snake.Snapshot {
	return s.apply(func(e *snake.Engine) {
		if e.IsGameOver() {
			e.DismissGameOver()
		}
	})
}

// apply runs fn under the session lock and fans the new state out to
// stream subscribers.
func (s *Session) apply(fn func(*snake.Engine)) snake.Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	fn(s.engine)
	snap := s.engine.Snapshot()
	s.publishLocked(snap)
	return snap
}

func (s *Session) publishLocked(snap snake.Snapshot) {
	for ch := range s.subs {
		select {
		case ch <- snap:
		default:
		}
	}
}

// Subscribe registers a stream subscriber. The first subscriber starts
// the session clock; it stops when the last one leaves. The returned
// channel is closed when the session is deleted.
func (s *Session) Subscribe(ctx context.Context, timing config.TimingConfig, logger *log.Logger) (<-chan snake.Snapshot, func()) {
	ch := make(chan snake.Snapshot, streamBuffer)

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		close(ch)
		return ch, func() {}
	}
	s.subs[ch] = struct{}{}
	if s.stop == nil {
		tickCtx, cancel := context.WithCancel(ctx)
		s.stop = cancel
		go s.run(tickCtx, timing, logger)
	}

	var once sync.Once
	return ch, func() {
		once.Do(func() { s.unsubscribe(ch) })
	}
}

func (s *Session) unsubscribe(ch chan snake.Snapshot) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.subs[ch]; !ok {
		return
	}
	delete(s.subs, ch)
	close(ch)
	if len(s.subs) == 0 && s.stop != nil {
		s.stop()
		s.stop = nil
	}
}

// run ticks the game until ctx is done.
func (s *Session) run(ctx context.Context, timing config.TimingConfig, logger *log.Logger) {
	if timing.StartDelay > 0 {
		select {
		case <-ctx.Done():
			return
		case <-time.After(timing.StartDelay):
		}
	}

	ticker := time.NewTicker(timing.TickPeriod)
	defer ticker.Stop()
	logger.Debug("Session clock started", "game", s.ID)
	for {
		select {
		case <-ctx.Done():
			logger.Debug("Session clock stopped", "game", s.ID)
			return
		case <-ticker.C:
			s.Tick()
		}
	}
}

// close stops the clock and ends every stream.
func (s *Session) close() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.closed = true
	if s.stop != nil {
		s.stop()
		s.stop = nil
	}
	for ch := range s.subs {
		close(ch)
	}
	s.subs = nil
}

// Hub owns the live sessions.
type Hub struct {
	mu       sync.RWMutex
	sessions map[string]*Session
	bounds   snake.Bounds
	maxCells int
	logger   *log.Logger

	ctx    context.Context
	cancel context.CancelFunc
}

// NewHub creates a hub whose games use bounds unless a caller overrides them.
// Overrides may cover at most maxCells cells.
func NewHub(bounds snake.Bounds, maxCells int, logger *log.Logger) *Hub {
	ctx, cancel := context.WithCancel(context.Background())
	return &Hub{
		sessions: make(map[string]*Session),
		bounds:   bounds,
		maxCells: maxCells,
		logger:   logger,
		ctx:      ctx,
		cancel:   cancel,
	}
}

// Create starts a new session. A nil seed picks a time-based one; nil
// bounds use the hub default.
func (h *Hub) Create(seed *int64, bounds *snake.Bounds) (*Session, error) {
	b := h.bounds
	if bounds != nil {
		b = *bounds
		if err := b.Validate(); err != nil {
			return nil, err
		}
		if cells := (b.Columns() + 1) * (b.Rows() + 1); cells > h.maxCells {
			return nil, fmt.Errorf("%d cells over the limit of %d: %w", cells, h.maxCells, ErrFieldTooLarge)
		}
	}
	s := time.Now().UnixNano()
	if seed != nil {
		s = *seed
	}

	engine, err := snake.New(b, s)
	if err != nil {
		return nil, err
	}

	sess := &Session{
		ID:      uuid.NewString(),
		Seed:    s,
		Created: time.Now(),
		engine:  engine,
		subs:    make(map[chan snake.Snapshot]struct{}),
	}

	h.mu.Lock()
	h.sessions[sess.ID] = sess
	h.mu.Unlock()

	h.logger.Info("Game created", "game", sess.ID, "seed", s)
	return sess, nil
}

// Get returns a session by ID.
func (h *Hub) Get(id string) (*Session, error) {
	h.mu.RLock()
	defer h.mu.RUnlock()
	sess, ok := h.sessions[id]
	if !ok {
		return nil, ErrGameNotFound
	}
	return sess, nil
}

// Delete removes a session and ends its streams.
func (h *Hub) Delete(id string) error {
	h.mu.Lock()
	sess, ok := h.sessions[id]
	delete(h.sessions, id)
	h.mu.Unlock()

	if !ok {
		return ErrGameNotFound
	}
	sess.close()
	h.logger.Info("Game deleted", "game", id)
	return nil
}

// Len returns the number of live sessions.
func (h *Hub) Len() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.sessions)
}

// Context is cancelled when the hub closes. Session clocks derive from it.
func (h *Hub) Context() context.Context {
	return h.ctx
}

// Close ends every session.
func (h *Hub) Close() {
	h.cancel()

	h.mu.Lock()
	sessions := h.sessions
	h.sessions = make(map[string]*Session)
	h.mu.Unlock()

	for _, sess := range sessions {
		sess.close()
	}
}
