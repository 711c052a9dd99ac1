package config

import (
	"fmt"

	"github.com/spf13/viper"

	"bigtwo/internal/domain"
)

// GameConfig holds rule-adjacent tunables.
type GameConfig struct {
	// AutoPassSeconds is the countdown granted to the other seats when a play
	// is judged unbeatable.
	AutoPassSeconds int `mapstructure:"auto_pass_seconds"`
	// GameOverThreshold is the cumulative total that ends the game.
	GameOverThreshold int `mapstructure:"game_over_threshold"`
}

// Config is the server configuration.
type Config struct {
	LogLevel string     `mapstructure:"log_level"`
	LogFile  string     `mapstructure:"log_file"`
	NATSURL  string     `mapstructure:"nats_url"`
	Game     GameConfig `mapstructure:"game"`
}

// Default returns the configuration used when no file overrides it.
func Default() *Config {
	return &Config{
		LogLevel: "info",
		NATSURL:  "nats://localhost:4222",
		Game: GameConfig{
			AutoPassSeconds:   15,
			GameOverThreshold: domain.DefaultGameOverThreshold,
		},
	}
}

// Load reads a config file (yaml or json, decided by extension) over the
// defaults. An empty path returns the defaults unchanged.
func Load(path string) (*Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}

	v := viper.New()
	v.SetConfigFile(path)
	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("read config %s: %w", path, err)
	}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config %s: %w", path, err)
	}

	if cfg.Game.AutoPassSeconds <= 0 {
		cfg.Game.AutoPassSeconds = Default().Game.AutoPassSeconds
	}
	if cfg.Game.GameOverThreshold <= 0 {
		cfg.Game.GameOverThreshold = Default().Game.GameOverThreshold
	}
	return cfg, nil
}
