// Package web serves the arcade over HTTP: a JSON API for the game records
// and feedback, websocket play sessions, and runtime metrics.
package web

import (
	"context"
	_ "embed"
	"errors"
	"fmt"
	"net/http"
	"os"
	"strconv"
	"sync"
	"sync/atomic"
	"time"

	"github.com/arl/statsviz"
	"github.com/charmbracelet/log"
	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/gorilla/websocket"

	"github.com/vovakirdan/crescent-arcade/internal/config"
	"github.com/vovakirdan/crescent-arcade/internal/core"
	"github.com/vovakirdan/crescent-arcade/internal/games/puzzle"
	"github.com/vovakirdan/crescent-arcade/internal/registry"
	"github.com/vovakirdan/crescent-arcade/internal/storage"
)

//go:embed static/index.html
var indexHTML []byte

// FeedbackSaver persists feedback entries. *storage.Store implements it.
type FeedbackSaver interface {
	SaveFeedback(f storage.Feedback) (storage.Feedback, error)
}

// Server is the HTTP/websocket host.
type Server struct {
	app      config.AppConfig
	saver    FeedbackSaver
	logger   *log.Logger
	engine   *gin.Engine
	upgrader websocket.Upgrader

	// ctx ends every play session on shutdown.
	ctx    context.Context
	cancel context.CancelFunc
	wg     sync.WaitGroup
	active atomic.Int64
}

// NewServer builds the router. saver may be nil, in which case feedback
// submissions answer 503.
func NewServer(app config.AppConfig, saver FeedbackSaver, logger *log.Logger) (*Server, error) {
	if logger == nil {
		logger = log.NewWithOptions(os.Stderr, log.Options{
			ReportTimestamp: true,
			Prefix:          "arcade-web",
		})
	}

	ctx, cancel := context.WithCancel(context.Background())
	s := &Server{
		app:    app,
		saver:  saver,
		logger: logger,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 4096,
		},
		ctx:    ctx,
		cancel: cancel,
	}

	mux := http.NewServeMux()
	if err := statsviz.Register(mux); err != nil {
		cancel()
		return nil, fmt.Errorf("web: register statsviz: %w", err)
	}

	r := gin.New()
	r.Use(gin.Recovery(), s.requestLogger())

	r.GET("/", s.handleIndex)
	r.GET("/healthz", s.handleHealth)
	r.GET("/api/games", s.handleListGames)
	r.GET("/api/games/:id", s.handleGetGame)
	r.POST("/api/feedback", s.handleFeedback)
	r.GET("/ws/play/:id", s.handlePlay)
	r.GET("/debug/statsviz/*filepath", gin.WrapH(mux))

	s.engine = r
	return s, nil
}

// Handler returns the HTTP handler, for tests and custom listeners.
func (s *Server) Handler() http.Handler {
	return s.engine
}

// ListenAndServe serves on the configured address until ctx is cancelled,
// then closes every play session and shuts down gracefully.
func (s *Server) ListenAndServe(ctx context.Context) error {
	srv := &http.Server{
		Addr:              s.app.Web.Addr,
		Handler:           s.engine,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("starting web server", "address", srv.Addr, "metrics", "/debug/statsviz/")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		s.cancel()
		if err != nil {
			return fmt.Errorf("web: listen: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	s.logger.Info("shutting down...", "sessions", s.ActiveSessions())
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	err := srv.Shutdown(shutdownCtx)
	s.Close()
	return err
}

// Close ends every play session and waits for their games to be disposed.
func (s *Server) Close() {
	s.cancel()
	s.wg.Wait()
}

// SetLogLevel changes the server's log level, e.g. after a config reload.
func (s *Server) SetLogLevel(level log.Level) {
	s.logger.SetLevel(level)
}

// ActiveSessions returns the number of running play sessions.
func (s *Server) ActiveSessions() int64 {
	return s.active.Load()
}

func (s *Server) requestLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		s.logger.Debug("request",
			"method", c.Request.Method,
			"path", c.Request.URL.Path,
			"status", c.Writer.Status(),
			"duration", time.Since(start),
		)
	}
}

func (s *Server) handleIndex(c *gin.Context) {
	c.Data(http.StatusOK, "text/html; charset=utf-8", indexHTML)
}

func (s *Server) handleHealth(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":   "ok",
		"sessions": s.ActiveSessions(),
		"storage":  s.saver != nil,
	})
}

func (s *Server) handleListGames(c *gin.Context) {
	c.JSON(http.StatusOK, registry.List())
}

func (s *Server) handleGetGame(c *gin.Context) {
	info, err := registry.Describe(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusNotFound, ErrorResponse{Error: err.Error()})
		return
	}
	c.JSON(http.StatusOK, info)
}

func (s *Server) handleFeedback(c *gin.Context) {
	if s.saver == nil {
		c.JSON(http.StatusServiceUnavailable, ErrorResponse{Error: "feedback storage is unavailable"})
		return
	}

	var req FeedbackRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) {
			c.JSON(http.StatusBadRequest, ErrorResponse{Error: storage.ValidationError(err).Error()})
			return
		}
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid JSON body"})
		return
	}

	saved, err := s.saver.SaveFeedback(storage.Feedback{
		Kind:    storage.Kind(req.Kind),
		Message: req.Message,
		Email:   req.Email,
		Source:  "web",
	})
	switch {
	case errors.Is(err, storage.ErrEmptyMessage),
		errors.Is(err, storage.ErrMessageTooLong),
		errors.Is(err, storage.ErrInvalidKind),
		errors.Is(err, storage.ErrInvalidEmail):
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
		return
	case err != nil:
		s.logger.Error("save feedback", "error", err)
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "could not save feedback"})
		return
	}

	s.logger.Info("feedback received", "ref", saved.Ref, "kind", saved.Kind)
	c.JSON(http.StatusCreated, saved)
}

// handlePlay upgrades to a websocket and runs one game session on it.
// Query parameters: w and h (screen cells), size (puzzle board size).
func (s *Server) handlePlay(c *gin.Context) {
	game, err := s.createGame(c.Param("id"), queryInt(c, "size", 0))
	if err != nil {
		c.JSON(http.StatusNotFound, ErrorResponse{Error: err.Error()})
		return
	}

	conn, err := s.upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		// The upgrader already wrote the HTTP error.
		s.logger.Warn("websocket upgrade failed", "error", err)
		return
	}

	cfg := core.RuntimeConfig{
		ScreenW:  core.Clamp(queryInt(c, "w", 80), 20, maxScreenW),
		ScreenH:  core.Clamp(queryInt(c, "h", 24), 10, maxScreenH),
		TickRate: s.app.TickRate,
		Seed:     s.app.Seed,
	}
	if cfg.Seed == 0 {
		cfg.Seed = time.Now().UnixNano()
	}

	sess := newPlaySession(uuid.NewString(), conn, game, cfg, s.logger)
	s.wg.Add(1)
	s.active.Add(1)
	go func() {
		defer s.wg.Done()
		defer s.active.Add(-1)
		sess.run(s.ctx)
	}()
}

func (s *Server) createGame(id string, size int) (registry.Game, error) {
	if id == "puzzle" && size > 0 {
		return puzzle.NewSized(size), nil
	}
	return registry.Create(id)
}

func queryInt(c *gin.Context, key string, def int) int {
	v, err := strconv.Atoi(c.Query(key))
	if err != nil {
		return def
	}
	return v
}
