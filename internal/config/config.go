// Package config loads server settings from defaults, an optional YAML file
// and NEKO_* environment variables, in that order.
package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/jaminalder/neko-gomoku/internal/domain"
)

// Mode names accepted for DefaultMode.
const (
	ModePvP = "pvp"
	ModePvE = "pve"
)

var ErrInvalid = errors.New("invalid config")

type Config struct {
	Addr              string        `yaml:"addr"`
	LogLevel          string        `yaml:"log_level"`
	Development       bool          `yaml:"development"`
	AIDelay           time.Duration `yaml:"ai_delay"`
	Heartbeat         time.Duration `yaml:"heartbeat"`
	DefaultMode       string        `yaml:"default_mode"`
	DefaultDifficulty string        `yaml:"default_difficulty"`
	ShutdownTimeout   time.Duration `yaml:"shutdown_timeout"`
	// GameTTL is how long an untouched game is kept in memory.
	GameTTL           time.Duration `yaml:"game_ttl"`
}

func Default() Config {
	return Config{
		Addr:     "127.0.0.1:8080",
		LogLevel: "info",

		// The board waits a beat before the AI answers so the human sees their
		// own stones land first.
		AIDelay: time.Second,

		Heartbeat:         15 * time.Second,
		DefaultMode:       ModePvE,
		DefaultDifficulty: domain.Hard.String(),
		ShutdownTimeout:   5 * time.Second,
		GameTTL:           2 * time.Hour,
	}
}

// Load builds a Config. An empty path skips the file.
func Load(path string) (Config, error) {
	cfg := Default()
	if path != "" {
		raw, err := os.ReadFile(path)
		if err != nil {
			return cfg, fmt.Errorf("read config: %w", err)
		}
		if err := yaml.Unmarshal(raw, &cfg); err != nil {
			return cfg, fmt.Errorf("parse config %s: %w", path, err)
		}
	}
	if err := cfg.applyEnv(); err != nil {
		return cfg, err
	}
	return cfg, cfg.Validate()
}

func (c *Config) applyEnv() error {
	c.Addr = getEnv("NEKO_ADDR", c.Addr)
	c.LogLevel = getEnv("NEKO_LOG_LEVEL", c.LogLevel)
	c.DefaultMode = getEnv("NEKO_DEFAULT_MODE", c.DefaultMode)
	c.DefaultDifficulty = getEnv("NEKO_DEFAULT_DIFFICULTY", c.DefaultDifficulty)
	if v, ok := os.LookupEnv("NEKO_DEVELOPMENT"); ok {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return fmt.Errorf("NEKO_DEVELOPMENT: %w", err)
		}
		c.Development = b
	}
	durations := []struct {
		key string
		dst *time.Duration
	}{
		{"NEKO_AI_DELAY", &c.AIDelay},
		{"NEKO_HEARTBEAT", &c.Heartbeat},
		{"NEKO_SHUTDOWN_TIMEOUT", &c.ShutdownTimeout},
		{"NEKO_GAME_TTL", &c.GameTTL},
	}
	for _, d := range durations {
		v, ok := os.LookupEnv(d.key)
		if !ok {
			continue
		}
		parsed, err := time.ParseDuration(v)
		if err != nil {
			return fmt.Errorf("%s: %w", d.key, err)
		}
		*d.dst = parsed
	}
	return nil
}

// Validate rejects settings the server cannot run with.
func (c Config) Validate() error {
	if c.Addr == "" {
		return fmt.Errorf("%w: addr is empty", ErrInvalid)
	}
	if c.DefaultMode != ModePvP && c.DefaultMode != ModePvE {
		return fmt.Errorf("%w: default_mode %q", ErrInvalid, c.DefaultMode)
	}
	if _, err := domain.ParseDifficulty(c.DefaultDifficulty); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalid, err)
	}
	if c.AIDelay < 0 {
		return fmt.Errorf("%w: ai_delay must not be negative", ErrInvalid)
	}
	if c.Heartbeat <= 0 {
		return fmt.Errorf("%w: heartbeat must be positive", ErrInvalid)
	}
	if c.GameTTL <= 0 {
		return fmt.Errorf("%w: game_ttl must be positive", ErrInvalid)
	}
	return nil
}

func getEnv(key, defaultValue string) string {
	if value, ok := os.LookupEnv(key); ok {
		return value
	}
	return defaultValue
}
