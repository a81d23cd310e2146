package main

import (
	"context"
	"net"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/crescent-arcade/internal/config"
	"github.com/vovakirdan/crescent-arcade/internal/platform/tui"
	"github.com/vovakirdan/crescent-arcade/internal/storage"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the arcade SSH server",
	Long: `Start an SSH server that allows users to connect and play games.

Each SSH connection gets its own session with a game picker menu.
Feedback sent over SSH is stored in the server's database, tagged
with the SSH user name.

Host key handling:
  - --host-key (or ssh.host_key in the config) names the key file
  - Without one the key lives in ~/.arcade/host_key
  - A missing key is generated on first start

Editing the app config file while the server runs changes the log
level without a restart.

Examples:
  arcade serve                           # Listen on :2222
  arcade serve --ssh :23234              # Listen on port 23234
  arcade serve --host-key ./my_host_key  # Use specific host key
  arcade serve --idle-timeout 5m         # Drop idle players sooner

Users can connect with:
  ssh localhost -p 2222`,
	RunE: runServe,
}

func init() {
	serveCmd.Flags().String("ssh", ":2222", "SSH server address (host:port)")
	serveCmd.Flags().String("host-key", "", "Path to host key file (default ~/.arcade/host_key, generated if missing)")
	serveCmd.Flags().Duration("idle-timeout", 10*time.Minute, "Idle time before disconnecting")
	serveCmd.Flags().Duration("max-timeout", 2*time.Hour, "Longest allowed session")
}

func runServe(_ *cobra.Command, _ []string) error {
	logger := newLogger("arcade-ssh")

	store, err := storage.Open(app.DBPath)
	if err != nil {
		logger.Warn("could not open feedback database", "error", err)
		store = nil
	}
	if store != nil {
		defer store.Close()
	}

	server, err := tui.NewSSHServer(app, tuiSaver(store), logger)
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

	if _, port, err := net.SplitHostPort(app.SSH.Addr); err == nil {
		logger.Info("connect with", "command", "ssh localhost -p "+port)
	}
	return server.ListenAndServe(ctx)
}
