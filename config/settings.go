package config

import (
	"fmt"
	"io"
	"log/slog"
	"strconv"
	"strings"
)

// Configuration keys.
const (
	KeyWildcardsDir   = "wildcards_dir"
	KeySeed           = "seed"
	KeyLogLevel       = "log_level"
	KeyLogFormat      = "log_format"
	KeyWebhookURL     = "webhook_url"
	KeyWatchWildcards = "watch_wildcards"
)

// Keys returns every recognized configuration key.
func Keys() []string {
	return []string{
		KeyWildcardsDir,
		KeySeed,
		KeyLogLevel,
		KeyLogFormat,
		KeyWebhookURL,
		KeyWatchWildcards,
	}
}

// Defaults returns the built-in default values.
func Defaults() map[string]string {
	return map[string]string{
		KeyWildcardsDir:   "wildcards",
		KeySeed:           "0",
		KeyLogLevel:       "info",
		KeyLogFormat:      "text",
		KeyWatchWildcards: "false",
	}
}

// Settings is the typed view of a resolved configuration.
type Settings struct {
	WildcardsDir   string
	Seed           int64
	LogLevel       slog.Level
	LogFormat      string // "text" or "json"
	WebhookURL     string
	WatchWildcards bool
}

// Settings parses the resolved values. The error names the offending key and
// where its value came from.
func (c *Resolved) Settings() (Settings, error) {
	s := Settings{
		WildcardsDir: c.Get(KeyWildcardsDir),
		LogFormat:    strings.ToLower(c.Get(KeyLogFormat)),
		WebhookURL:   c.Get(KeyWebhookURL),
	}

	if raw := c.Get(KeySeed); raw != "" {
		seed, err := strconv.ParseInt(raw, 10, 64)
		if err != nil || seed < 0 {
			return Settings{}, c.invalid(KeySeed, "a non-negative integer")
		}
		s.Seed = seed
	}

	if raw := c.Get(KeyLogLevel); raw != "" {
		if err := s.LogLevel.UnmarshalText([]byte(raw)); err != nil {
			return Settings{}, c.invalid(KeyLogLevel, "one of debug, info, warn, error")
		}
	}

	switch s.LogFormat {
	case "", "text":
		s.LogFormat = "text"
	case "json":
	default:
		return Settings{}, c.invalid(KeyLogFormat, "text or json")
	}

	if raw := c.Get(KeyWatchWildcards); raw != "" {
		watch, err := strconv.ParseBool(raw)
		if err != nil {
			return Settings{}, c.invalid(KeyWatchWildcards, "a boolean")
		}
		s.WatchWildcards = watch
	}

	return s, nil
}

func (c *Resolved) invalid(key, want string) error {
	return fmt.Errorf("config %s=%q (from %s): want %s", key, c.Get(key), c.Source(key), want)
}

// Logger builds a slog logger writing to w at the configured level and format.
func (s Settings) Logger(w io.Writer) *slog.Logger {
	opts := &slog.HandlerOptions{Level: s.LogLevel}
	if s.LogFormat == "json" {
		return slog.New(slog.NewJSONHandler(w, opts))
	}
	return slog.New(slog.NewTextHandler(w, opts))
}
