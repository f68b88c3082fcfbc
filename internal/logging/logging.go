// Package logging provides zerolog loggers for marquee's network clients.
// Command output never goes through here; diagnostics go to stderr and stay
// quiet unless MARQUEE_LOG lowers the level.
package logging

import (
	"os"
	"strings"
	"sync"
	"time"

	"github.com/rs/zerolog"
)

var (
	once sync.Once
	root zerolog.Logger
)

// Named returns a component-tagged logger derived from the process root.
func Named(component string) zerolog.Logger {
	once.Do(initRoot)
	return root.With().Str("component", component).Logger()
}

func initRoot() {
	level := parseLevel(os.Getenv("MARQUEE_LOG"))
	w := zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339}
	root = zerolog.New(w).Level(level).With().Timestamp().Logger()
}

func parseLevel(s string) zerolog.Level {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "trace":
		return zerolog.TraceLevel
	case "debug":
		return zerolog.DebugLevel
	case "info":
		return zerolog.InfoLevel
	case "", "warn", "warning":
		return zerolog.WarnLevel
	case "error":
		return zerolog.ErrorLevel
	case "off", "disabled", "none":
		return zerolog.Disabled
	default:
		return zerolog.WarnLevel
	}
}
