package common

import (
	"fmt"
	"log/slog"
	"strings"
)

// LevelFromFlags returns the slog level corresponding to the given verbosity flags.
// The flags correspond to the following values:
//   - vv: slog.LevelDebug
//   - v: slog.LevelInfo
//   - q: slog.LevelError
//   - (default: slog.LevelWarn)
//
// The flags are evaluated in that order, so if both vv and q are set the result is Debug.
func LevelFromFlags(vv, v, q bool) slog.Level {
	switch {
	case vv:
		return slog.LevelDebug
	case v:
		return slog.LevelInfo
	case q:
		return slog.LevelError
	default:
		return slog.LevelWarn
	}
}

// ParseLevel maps a config level name (debug, info, warn, error) to a slog level.
// An empty name yields Warn.
func ParseLevel(name string) (slog.Level, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "debug":
		return slog.LevelDebug, nil
	case "info":
		return slog.LevelInfo, nil
	case "", "warn", "warning":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	default:
		return slog.LevelWarn, fmt.Errorf("unknown log level %q", name)
	}
}

// LoggerOr returns l, or slog.Default() when l is nil.
func LoggerOr(l *slog.Logger) *slog.Logger {
	if l == nil {
		return slog.Default()
	}
	return l
}
