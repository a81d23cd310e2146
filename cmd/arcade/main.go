// arcade is a terminal arcade of four casual games: Snake, Block-Stack,
// Memory Match and Sliding Puzzle.
//
// Usage:
//
//	arcade list              - List available games
//	arcade info <game>       - Describe a game
//	arcade play <game>       - Play a game
//	arcade menu              - Start menu to pick games interactively
//	arcade serve             - Start SSH server for remote play
//	arcade web               - Serve the games to browsers over websockets
//	arcade feedback          - Send or read player feedback
//	arcade config <game>     - Print a game's default tuning YAML
//
// Global flags:
//
//	--config <path>     - App config file (default: ~/.arcade/arcade.yaml)
//	--fps <rate>        - Set tick rate (default: 60)
//	--seed <value>      - Set RNG seed for reproducible gameplay
//	--db <path>         - Set database path (default: ~/.arcade/arcade.db)
//	--log-level <level> - debug, info, warn or error
package main

import (
	"fmt"
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/vovakirdan/crescent-arcade/internal/config"

	// Import games to register them
	_ "github.com/vovakirdan/crescent-arcade/internal/games/blocks"
	_ "github.com/vovakirdan/crescent-arcade/internal/games/match"
	_ "github.com/vovakirdan/crescent-arcade/internal/games/puzzle"
	_ "github.com/vovakirdan/crescent-arcade/internal/games/snake"
)

var (
	// Global flags
	flagAppConfig string
	flagFPS       int
	flagSeed      int64
	flagDBPath    string
	flagLogLevel  string

	// Resolved in PersistentPreRunE.
	appViper *viper.Viper
	app      config.AppConfig
)

// flagKeys maps command-line flags to app config keys. Flags only
// override the config file and ARCADE_* variables when set explicitly.
var flagKeys = map[string]string{
	"fps":          "tick_rate",
	"seed":         "seed",
	"db":           "db_path",
	"log-level":    "log_level",
	"ssh":          "ssh.addr",
	"host-key":     "ssh.host_key",
	"idle-timeout": "ssh.idle_timeout",
	"max-timeout":  "ssh.max_timeout",
	"addr":         "web.addr",
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "arcade",
	Short: "Crescent Arcade - casual games in your terminal",
	Long: `Crescent Arcade is a terminal gaming platform with four casual games
under a crescent-and-lantern theme.

Available commands:
  list      - Show all available games
  info      - Describe a game
  play      - Play a specific game directly
  menu      - Interactive game picker menu
  serve     - Start SSH server for remote play
  web       - Serve the games to browsers
  feedback  - Send or read player feedback
  config    - Print a game's default tuning

Examples:
  arcade list
  arcade play snake
  arcade play puzzle --size 4
  arcade menu
  arcade serve --ssh :2222
  arcade web --addr :8080`,
	SilenceUsage:      true,
	SilenceErrors:     true,
	PersistentPreRunE: loadAppConfig,
}

func init() {
	pf := rootCmd.PersistentFlags()
	pf.StringVar(&flagAppConfig, "config", "", "Path to app config YAML (default ~/.arcade/arcade.yaml)")
	pf.IntVar(&flagFPS, "fps", 60, "Tick rate (frames per second)")
	pf.Int64Var(&flagSeed, "seed", 0, "RNG seed (0 = random based on time)")
	pf.StringVar(&flagDBPath, "db", "~/.arcade/arcade.db", "Path to feedback database")
	pf.StringVar(&flagLogLevel, "log-level", "info", "Log level: debug, info, warn, error")

	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(infoCmd)
	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(menuCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(webCmd)
	rootCmd.AddCommand(feedbackCmd)
	rootCmd.AddCommand(configCmd)
}

// loadAppConfig merges defaults, the config file, ARCADE_* variables and
// explicitly set flags into app.
func loadAppConfig(cmd *cobra.Command, _ []string) error {
	appViper = config.NewViper(flagAppConfig)
	for name, key := range flagKeys {
		f := cmd.Flags().Lookup(name)
		if f == nil || !f.Changed {
			continue
		}
		if err := appViper.BindPFlag(key, f); err != nil {
			return fmt.Errorf("bind flag --%s: %w", name, err)
		}
	}

	cfg, err := config.LoadApp(appViper)
	if err != nil {
		return err
	}
	app = cfg
	return nil
}

// newLogger builds a stderr logger at the configured level.
func newLogger(prefix string) *log.Logger {
	logger := log.NewWithOptions(os.Stderr, log.Options{
		ReportTimestamp: true,
		Prefix:          prefix,
	})
	logger.SetLevel(parseLevel(app.LogLevel))
	return logger
}

func parseLevel(s string) log.Level {
	level, err := log.ParseLevel(s)
	if err != nil {
		return log.InfoLevel
	}
	return level
}
