// Package config reads process settings from the environment.
package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/KirkDiggler/shoots/internal/board"
)

// Config holds the settings shared by the bot and the web server
type Config struct {
	Env string

	RedisAddr     string
	RedisPassword string
	RedisDB       int

	DiscordToken  string
	ApplicationID string

	// GuildID registers commands on a single guild, for development
	GuildID string

	HTTPAddr string

	Board board.Config

	// AutomaticInterval overrides the automatic mode tick when set
	AutomaticInterval time.Duration

	// DiceSeed makes rolls repeatable when set
	DiceSeed int64
}

// Load reads the configuration. Unset variables take their defaults.
func Load() (*Config, error) {
	cfg := &Config{
		Env:           getEnv("ENV", "development"),
		RedisAddr:     getEnv("REDIS_ADDR", "localhost:6379"),
		RedisPassword: os.Getenv("REDIS_PASSWORD"),
		DiscordToken:  os.Getenv("DISCORD_TOKEN"),
		ApplicationID: os.Getenv("APPLICATION_ID"),
		GuildID:       os.Getenv("GUILD_ID"),
		HTTPAddr:      getEnv("HTTP_ADDR", ":8080"),
		Board:         board.DefaultConfig(),
	}

	var err error
	if cfg.RedisDB, err = getInt("REDIS_DB", 0); err != nil {
		return nil, err
	}

	if cfg.Board.Size, err = getInt("BOARD_SIZE", board.DefaultSize); err != nil {
		return nil, err
	}

	if cfg.Board.RowLength, err = getInt("ROW_LENGTH", board.DefaultRowLength); err != nil {
		return nil, err
	}

	if err := cfg.Board.Validate(); err != nil {
		return nil, err
	}

	if value := os.Getenv("AUTOMATIC_INTERVAL"); value != "" {
		interval, err := time.ParseDuration(value)
		if err != nil || interval <= 0 {
			return nil, fmt.Errorf("AUTOMATIC_INTERVAL must be a positive duration, got %q", value)
		}
		cfg.AutomaticInterval = interval
	}

	if value := os.Getenv("DICE_SEED"); value != "" {
		seed, err := strconv.ParseInt(value, 10, 64)
		if err != nil {
			return nil, fmt.Errorf("DICE_SEED must be an integer, got %q", value)
		}
		cfg.DiceSeed = seed
	}

	return cfg, nil
}

// IsProduction reports whether ENV is production
func (c *Config) IsProduction() bool {
	return c.Env == "production"
}

// getEnv gets an environment variable or returns a default value
func getEnv(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}

func getInt(key string, defaultValue int) (int, error) {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue, nil
	}

	n, err := strconv.Atoi(value)
	if err != nil {
		return 0, fmt.Errorf("%s must be an integer, got %q", key, value)
	}
	return n, nil
}
