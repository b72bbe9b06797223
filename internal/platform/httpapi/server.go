package httpapi

import (
	"context"
	"errors"
	"net/http"
	"os"
	"strconv"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"

	"github.com/vovakirdan/tui-snake/internal/config"
	"github.com/vovakirdan/tui-snake/internal/core"
	"github.com/vovakirdan/tui-snake/internal/render"
	"github.com/vovakirdan/tui-snake/internal/snake"
)

// Headless games use a fixed field when the grid is sized from the terminal.
const (
	defaultColumns = 40
	defaultRows    = 20
)

const writeWait = 5 * time.Second

// Server is the HTTP driver.
type Server struct {
	hub      *Hub
	router   *gin.Engine
	logger   *log.Logger
	upgrader websocket.Upgrader

	mu     sync.RWMutex
	timing config.TimingConfig
	render render.Options
}

type createRequest struct {
	Seed   *int64        `json:"seed"`
	Bounds *snake.Bounds `json:"bounds"`
}

type createResponse struct {
	ID       string         `json:"id"`
	Seed     int64          `json:"seed"`
	Bounds   snake.Bounds   `json:"bounds"`
	Snapshot snake.Snapshot `json:"snapshot"`
}

// NewServer builds the router for cfg. A nil logger writes to stderr.
func NewServer(cfg config.Config, logger *log.Logger) *Server {
	if logger == nil {
		logger = log.NewWithOptions(os.Stderr, log.Options{
			ReportTimestamp: true,
			Prefix:          "snake-api",
		})
	}

	s := &Server{
		hub:    NewHub(cfg.Grid.HeadlessBounds(defaultColumns, defaultRows), cfg.Server.MaxFieldCells, logger),
		logger: logger,
		upgrader: websocket.Upgrader{
			CheckOrigin: func(r *http.Request) bool { return true },
		},
		timing: cfg.Timing,
		render: render.OptionsFrom(cfg),
	}

	router := gin.New()
	router.Use(gin.Recovery(), s.loggingMiddleware)

	v1 := router.Group("/v1/games")
	v1.POST("", s.createGame)
	v1.GET("/:id", s.withSession(s.getGame))
	v1.DELETE("/:id", s.deleteGame)
	v1.POST("/:id/tick", s.withSession(s.tick))
	v1.POST("/:id/gesture", s.withSession(s.gesture))
	v1.POST("/:id/reset", s.withSession(s.reset))
	v1.POST("/:id/dismiss", s.withSession(s.dismiss))
	v1.GET("/:id/board.png", s.withSession(s.board))
	v1.GET("/:id/stream", s.withSession(s.stream))

	s.router = router
	return s
}

// Handler returns the HTTP handler.
func (s *Server) Handler() http.Handler {
	return s.router
}

// Hub returns the session hub.
func (s *Server) Hub() *Hub {
	return s.hub
}

// SetConfig applies a reloaded configuration. Timing and render settings
// affect new streams and boards; existing games keep their bounds.
func (s *Server) SetConfig(cfg config.Config) {
	s.mu.Lock()
	s.timing = cfg.Timing
	s.render = render.OptionsFrom(cfg)
	s.mu.Unlock()
}

func (s *Server) settings() (config.TimingConfig, render.Options) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.timing, s.render
}

// ListenAndServe serves on addr until ctx is done, then shuts down.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("starting HTTP server", "address", addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err, ok := <-errCh:
		s.hub.Close()
		if ok {
			return err
		}
		return nil
	case <-ctx.Done():
	}

	s.logger.Info("shutting down...")
	s.hub.Close()
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}

// loggingMiddleware logs each request.
func (s *Server) loggingMiddleware(c *gin.Context) {
	start := time.Now()
	c.Next()
	s.logger.Debug("request",
		"method", c.Request.Method,
		"path", c.Request.URL.Path,
		"status", c.Writer.Status(),
		"duration", time.Since(start),
	)
}

// withSession resolves the :id parameter before calling h.
func (s *Server) withSession(h func(*gin.Context, *Session)) gin.HandlerFunc {
	return func(c *gin.Context) {
		sess, err := s.hub.Get(c.Param("id"))
		if err != nil {
			abortError(c, err)
			return
		}
		h(c, sess)
	}
}

func abortError(c *gin.Context, err error) {
	status := http.StatusBadRequest
	if errors.Is(err, ErrGameNotFound) {
		status = http.StatusNotFound
	}
	c.AbortWithStatusJSON(status, gin.H{"error": err.Error()})
}

func (s *Server) createGame(c *gin.Context) {
	var req createRequest
	if c.Request.ContentLength != 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			abortError(c, err)
			return
		}
	}

	sess, err := s.hub.Create(req.Seed, req.Bounds)
	if err != nil {
		abortError(c, err)
		return
	}
	c.JSON(http.StatusCreated, createResponse{
		ID:       sess.ID,
		Seed:     sess.Seed,
		Bounds:   sess.Bounds(),
		Snapshot: sess.Snapshot(),
	})
}

func (s *Server) getGame(c *gin.Context, sess *Session) {
	c.JSON(http.StatusOK, sess.Snapshot())
}

func (s *Server) deleteGame(c *gin.Context) {
	if err := s.hub.Delete(c.Param("id")); err != nil {
		abortError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (s *Server) tick(c *gin.Context, sess *Session) {
	c.JSON(http.StatusOK, sess.Tick())
}

func (s *Server) gesture(c *gin.Context, sess *Session) {
	var g core.Gesture
	if err := c.ShouldBindJSON(&g); err != nil {
		abortError(c, err)
		return
	}
	c.JSON(http.StatusOK, sess.Gesture(g))
}

func (s *Server) reset(c *gin.Context, sess *Session) {
	c.JSON(http.StatusOK, sess.Reset())
}

func (s *Server) dismiss(c *gin.Context, sess *Session) {
	c.JSON(http.StatusOK, sess.Dismiss())
}

func (s *Server) board(c *gin.Context, sess *Session) {
	_, opts := s.settings()
	if w := c.Query("width"); w != "" {
		width, err := strconv.Atoi(w)
		if err != nil || width <= 0 {
			c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "width must be a positive integer"})
			return
		}
		opts.Width = width
	}

	img := render.Board(sess.Snapshot(), sess.Bounds(), opts)
	c.Header("Content-Type", "image/png")
	c.Status(http.StatusOK)
	if err := render.Encode(c.Writer, img); err != nil {
		s.logger.Error("Board encode failed", "game", sess.ID, "error", err)
	}
}

// stream upgrades to a WebSocket. The server pushes a snapshot on every
// tick; the client sends gestures as JSON.
func (s *Server) stream(c *gin.Context, sess *Session) {
	conn, err := s.upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		s.logger.Warn("WebSocket upgrade failed", "game", sess.ID, "error", err)
		return
	}
	defer conn.Close()

	timing, _ := s.settings()
	ctx, cancel := context.WithCancel(s.hub.Context())
	defer cancel()

	// The clock outlives any single stream; it stops with the last one.
	frames, unsubscribe := sess.Subscribe(s.hub.Context(), timing, s.logger)
	defer unsubscribe()

	s.logger.Info("Stream opened", "game", sess.ID, "remote", conn.RemoteAddr().String())
	defer s.logger.Info("Stream closed", "game", sess.ID)

	go func() {
		defer cancel()
		for {
			var g core.Gesture
			if err := conn.ReadJSON(&g); err != nil {
				return
			}
			sess.Gesture(g)
		}
	}()

	if err := writeFrame(conn, sess.Snapshot()); err != nil {
		return
	}
	for {
		select {
		case <-ctx.Done():
			conn.WriteControl(websocket.CloseMessage,
				websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""),
				time.Now().Add(writeWait))
			return
		case snap, ok := <-frames:
			if !ok {
				conn.WriteControl(websocket.CloseMessage,
					websocket.FormatCloseMessage(websocket.CloseGoingAway, "game deleted"),
					time.Now().Add(writeWait))
				return
			}
			if err := writeFrame(conn, snap); err != nil {
				return
			}
		}
	}
}

func writeFrame(conn *websocket.Conn, snap snake.Snapshot) error {
	conn.SetWriteDeadline(time.Now().Add(writeWait))
	return conn.WriteJSON(snap)
}
