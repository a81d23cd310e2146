package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/charmbracelet/log"
	"github.com/gin-gonic/gin"
	"github.com/spf13/cobra"

	"github.com/vovakirdan/crescent-arcade/internal/config"
	"github.com/vovakirdan/crescent-arcade/internal/platform/web"
	"github.com/vovakirdan/crescent-arcade/internal/storage"
)

var webCmd = &cobra.Command{
	Use:   "web",
	Short: "Serve the games to browsers",
	Long: `Start an HTTP server with a small browser client.

Routes:
  GET  /                  - Browser client
  GET  /api/games         - Game records
  GET  /api/games/:id     - One game record
  POST /api/feedback      - Send feedback (JSON: kind, message, email)
  GET  /ws/play/:id       - Websocket play session (?w=80&h=24&size=4)
  GET  /debug/statsviz/   - Runtime metrics
  GET  /healthz           - Health check

Examples:
  arcade web
  arcade web --addr :9090`,
	RunE: runWeb,
}

func init() {
	webCmd.Flags().String("addr", ":8080", "HTTP listen address (host:port)")
}

func runWeb(_ *cobra.Command, _ []string) error {
	logger := newLogger("arcade-web")
	if logger.GetLevel() > log.DebugLevel {
		gin.SetMode(gin.ReleaseMode)
	}

	store, err := storage.Open(app.DBPath)
	if err != nil {
		logger.Warn("could not open feedback database", "error", err)
		store = nil
	}
	if store != nil {
		defer store.Close()
	}

	var saver web.FeedbackSaver
	if store != nil {
		saver = store
	}
	server, err := web.NewServer(app, saver, logger)
	if err != nil {
		return err
	}

	config.WatchApp(appViper, func(cfg config.AppConfig, err error) {
		if err != nil {
			logger.Warn("config reload failed", "error", err)
			return
		}
		server.SetLogLevel(parseLevel(cfg.LogLevel))
		logger.Info("config reloaded", "log_level", cfg.LogLevel)
	})

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	return server.ListenAndServe(ctx)
}
