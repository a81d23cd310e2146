package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/viper"
)

// AppConfig holds host-level settings shared by every subcommand.
type AppConfig struct {
	TickRate int     `mapstructure:"tick_rate"`
	Seed     int64   `mapstructure:"seed"`
	DBPath   string  `mapstructure:"db_path"`
	LogLevel string  `mapstructure:"log_level"`
	SSH      SSHConf `mapstructure:"ssh"`
	Web      WebConf `mapstructure:"web"`
}

// SSHConf configures the wish server.
type SSHConf struct {
	Addr        string        `mapstructure:"addr"`
	HostKey     string        `mapstructure:"host_key"`
	IdleTimeout time.Duration `mapstructure:"idle_timeout"`
	MaxTimeout  time.Duration `mapstructure:"max_timeout"`
}

// WebConf configures the HTTP/websocket host.
type WebConf struct {
	Addr string `mapstructure:"addr"`
}

// NewViper returns a viper instance with defaults, ARCADE_* env overrides
// and ~/.arcade/arcade.yaml (or configFile) as the optional config source.
func NewViper(configFile string) *viper.Viper {
	v := viper.New()

	v.SetDefault("tick_rate", 60)
	v.SetDefault("seed", 0)
	v.SetDefault("db_path", defaultDBPath())
	v.SetDefault("log_level", "info")
	v.SetDefault("ssh.addr", ":2222")
	v.SetDefault("ssh.host_key", "") // empty: ~/.arcade/host_key
	v.SetDefault("ssh.idle_timeout", 10*time.Minute)
	v.SetDefault("ssh.max_timeout", 2*time.Hour)
	v.SetDefault("web.addr", ":8080")

	v.SetEnvPrefix("ARCADE")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if configFile != "" {
		v.SetConfigFile(configFile)
	} else {
		v.SetConfigName("arcade")
		v.SetConfigType("yaml")
		if home, err := os.UserHomeDir(); err == nil {
			v.AddConfigPath(filepath.Join(home, ".arcade"))
		}
		v.AddConfigPath(".")
	}
	return v
}

// LoadApp reads the config file if there is one and decodes the merged settings.
// A missing default config file is not an error; a missing explicit one is.
func LoadApp(v *viper.Viper) (AppConfig, error) {
	var cfg AppConfig

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return cfg, fmt.Errorf("config: read app config: %w", err)
		}
	}
	if err := v.Unmarshal(&cfg); err != nil {
		return cfg, fmt.Errorf("config: decode app config: %w", err)
	}
	if cfg.TickRate <= 0 || cfg.TickRate > 240 {
		cfg.TickRate = 60
	}
	return cfg, nil
}

// WatchApp reloads the app config whenever its file changes on disk and
// hands the fresh value to onChange. Decoding failures are passed as errors.
func WatchApp(v *viper.Viper, onChange func(AppConfig, error)) {
	if v.ConfigFileUsed() == "" {
		return
	}
	v.OnConfigChange(func(e fsnotify.Event) {
		if !e.Has(fsnotify.Write) && !e.Has(fsnotify.Create) {
			return
		}
		var cfg AppConfig
		err := v.Unmarshal(&cfg)
		onChange(cfg, err)
	})
	v.WatchConfig()
}

func defaultDBPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "arcade.db"
	}
	return filepath.Join(home, ".arcade", "arcade.db")
}
