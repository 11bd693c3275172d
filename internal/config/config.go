package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config is the root server configuration.
type Config struct {
	Server   ServerConfig   `mapstructure:"server"`
	Logging  LoggingConfig  `mapstructure:"logging"`
	Database DatabaseConfig `mapstructure:"database"`
	Game     GameConfig     `mapstructure:"game"`
}

// ServerConfig holds the listener settings.
type ServerConfig struct {
	Address string `mapstructure:"address"`
}

// LoggingConfig controls the zap logger.
type LoggingConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

// DatabaseConfig holds the optional card catalog database. An empty URL
// means the built-in catalog is used.
type DatabaseConfig struct {
	URL string `mapstructure:"url"`
}

// GameConfig holds the default rule values applied to new games.
type GameConfig struct {
	HandSize            int           `mapstructure:"hand_size"`
	TurnTimeout         time.Duration `mapstructure:"turn_timeout"`
	NopeWindow          time.Duration `mapstructure:"nope_window"`
	SelectionWindow     time.Duration `mapstructure:"selection_window"`
	MaxInactivityStreak int           `mapstructure:"max_inactivity_streak"`
	TickInterval        time.Duration `mapstructure:"tick_interval"`
}

// Load reads the configuration file at path, applying defaults and
// EGGSPLODE_ environment overrides.
func Load(path string) (*Config, error) {
	v := viper.New()
	v.SetConfigFile(path)

	v.SetDefault("server.address", ":8080")
	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.format", "json")
	v.SetDefault("database.url", "")
	v.SetDefault("game.hand_size", 7)
	v.SetDefault("game.turn_timeout", "60s")
	v.SetDefault("game.nope_window", "10s")
	v.SetDefault("game.selection_window", "20s")
	v.SetDefault("game.max_inactivity_streak", 5)
	v.SetDefault("game.tick_interval", "1s")

	v.SetEnvPrefix("EGGSPLODE")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("read config %s: %w", path, err)
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}
	return &cfg, nil
}
