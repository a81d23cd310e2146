package tui

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync/atomic"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"
	"github.com/charmbracelet/ssh"
	"github.com/charmbracelet/wish"
	"github.com/charmbracelet/wish/bubbletea"

	"github.com/vovakirdan/crescent-arcade/internal/config"
	"github.com/vovakirdan/crescent-arcade/internal/core"
)

// sessionCloserKey stores the session's dispose hook in the SSH context.
type sessionCloserKey struct{}

// SSHServer wraps a Wish SSH server for the arcade.
// Every SSH session gets its own menu and its own game instances.
type SSHServer struct {
	config   config.SSHConf
	tickRate int
	seed     int64
	server   *ssh.Server
	saver    FeedbackSaver
	logger   *log.Logger
	active   atomic.Int64
}

// NewSSHServer creates a new SSH server. saver may be nil, in which case
// the feedback form reports that storage is unavailable.
func NewSSHServer(app config.AppConfig, saver FeedbackSaver, logger *log.Logger) (*SSHServer, error) {
	if logger == nil {
		logger = log.NewWithOptions(os.Stderr, log.Options{
			ReportTimestamp: true,
			Prefix:          "arcade-ssh",
		})
	}

	srv := &SSHServer{
		config:   app.SSH,
		tickRate: app.TickRate,
		seed:     app.Seed,
		saver:    saver,
		logger:   logger,
	}

	hostKeyPath := app.SSH.HostKey
	if hostKeyPath == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("tui: cannot get home directory: %w", err)
		}
		hostKeyPath = filepath.Join(home, ".arcade", "host_key")
	}
	if err := os.MkdirAll(filepath.Dir(hostKeyPath), 0o700); err != nil {
		return nil, fmt.Errorf("tui: cannot create host key directory: %w", err)
	}

	opts := []ssh.Option{
		wish.WithAddress(app.SSH.Addr),
		wish.WithHostKeyPath(hostKeyPath),
		wish.WithMiddleware(
			bubbletea.Middleware(srv.teaHandler),
			srv.loggingMiddleware,
		),
	}
	if app.SSH.IdleTimeout > 0 {
		opts = append(opts, wish.WithIdleTimeout(app.SSH.IdleTimeout))
	}
	if app.SSH.MaxTimeout > 0 {
		opts = append(opts, wish.WithMaxTimeout(app.SSH.MaxTimeout))
	}

	server, err := wish.NewServer(opts...)
	if err != nil {
		return nil, fmt.Errorf("tui: cannot create SSH server: %w", err)
	}

	srv.server = server
	return srv, nil
}

// teaHandler creates a Bubble Tea program for each SSH session.
func (s *SSHServer) teaHandler(sshSession ssh.Session) (tea.Model, []tea.ProgramOption) {
	pty, _, ok := sshSession.Pty()
	if !ok {
		s.logger.Warn("no PTY requested", "user", sshSession.User())
		return nil, nil
	}

	cfg := core.RuntimeConfig{
		ScreenW:  pty.Window.Width,
		ScreenH:  pty.Window.Height,
		TickRate: s.tickRate,
		Seed:     s.seed,
	}

	model := NewSessionModel(s.saver, cfg, "ssh:"+sshSession.User())
	sshSession.Context().SetValue(sessionCloserKey{}, model.Close)
	s.logger.Debug("session model created", "user", sshSession.User(), "session", model.ID())

	return model, []tea.ProgramOption{
		tea.WithAltScreen(),
		tea.WithMouseCellMotion(),
	}
}

// loggingMiddleware logs SSH session events and disposes whatever game
// the session left mounted once the program has ended.
func (s *SSHServer) loggingMiddleware(next ssh.Handler) ssh.Handler {
	return func(sshSession ssh.Session) {
		start := time.Now()
		n := s.active.Add(1)
		s.logger.Info("session started",
			"user", sshSession.User(),
			"remote", sshSession.RemoteAddr().String(),
			"active", n,
		)

		next(sshSession)

		if closeFn, ok := sshSession.Context().Value(sessionCloserKey{}).(func()); ok {
			closeFn()
		}
		n = s.active.Add(-1)
		s.logger.Info("session ended",
			"user", sshSession.User(),
			"remote", sshSession.RemoteAddr().String(),
			"duration", time.Since(start).Round(time.Second),
			"active", n,
		)
	}
}

// ListenAndServe starts the SSH server and blocks until ctx is cancelled,
// then shuts down gracefully.
func (s *SSHServer) ListenAndServe(ctx context.Context) error {
	s.logger.Info("starting SSH server", "address", s.Addr())

	errCh := make(chan error, 1)
	go func() {
		if err := s.server.ListenAndServe(); err != nil && !errors.Is(err, ssh.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("tui: ssh server: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	s.logger.Info("shutting down...", "sessions", s.ActiveSessions())
	return s.Shutdown()
}

// Shutdown gracefully stops the server.
func (s *SSHServer) Shutdown() error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return s.server.Shutdown(ctx)
}

// SetLogLevel changes the server's log level, e.g. after a config reload.
func (s *SSHServer) SetLogLevel(level log.Level) {
	s.logger.SetLevel(level)
}

// ActiveSessions returns the number of connected sessions.
func (s *SSHServer) ActiveSessions() int64 {
	return s.active.Load()
}

// Addr returns the server's listen address string.
func (s *SSHServer) Addr() string {
	return s.config.Addr
}
