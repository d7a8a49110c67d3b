// Package config loads server settings from the environment.
package config

import (
	"fmt"
	"log/slog"

	"github.com/caarlos0/env/v11"
)

// Config is the full server configuration.
type Config struct {
	// Addr is the HTTP/websocket listen address.
	Addr string `env:"BOARDSYNC_ADDR" envDefault:":8888"`

	// DefaultRoom receives joins that name no room.
	DefaultRoom string `env:"BOARDSYNC_DEFAULT_ROOM" envDefault:"lobby"`

	// SendBuffer is the per-connection outbound queue length; frames
	// beyond it are dropped rather than blocking a broadcast.
	SendBuffer int `env:"BOARDSYNC_SEND_BUFFER" envDefault:"64"`

	// MDNS advertises the server on the local network when set.
	MDNS bool `env:"BOARDSYNC_MDNS" envDefault:"false"`

	// LogLevel is one of debug, info, warn, error.
	LogLevel string `env:"BOARDSYNC_LOG_LEVEL" envDefault:"info"`
}

// Load parses configuration from environment variables.
func Load() (Config, error) {
	var c Config
	if err := env.Parse(&c); err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}
	if c.SendBuffer < 1 {
		return Config{}, fmt.Errorf("send buffer must be positive, got %d", c.SendBuffer)
	}
	return c, nil
}

// SlogLevel maps the configured level name to a slog level. Unknown
// names fall back to info.
func (c Config) SlogLevel() slog.Level {
	switch c.LogLevel {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
