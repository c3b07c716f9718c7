// Package logging provides the diagnostic logger used by clinspect.
// Reports go to stdout; diagnostics go to stderr and optionally to a log
// file, so that a redirected report stays clean.
package logging

import (
	"fmt"
	"strings"
)

// Level represents logging severity levels.
// Levels are ordered from most verbose (Debug) to least verbose (Error).
type Level int

const (
	// LevelDebug is for per-property retrieval details.
	LevelDebug Level = iota
	// LevelInfo is for enumeration progress.
	LevelInfo
	// LevelWarn is for recoverable problems such as an unparseable version.
	LevelWarn
	// LevelError is for fatal failures.
	LevelError
)

// String returns the string representation of the level.
func (l Level) String() string {
	switch l {
	case LevelDebug:
		return "debug"
	case LevelInfo:
		return "info"
	case LevelWarn:
		return "warn"
	case LevelError:
		return "error"
	default:
		return "unknown"
	}
}

// ParseLevel converts a string to a Level.
// Unrecognized strings default to LevelInfo.
func ParseLevel(s string) Level {
	l, err := LookupLevel(s)
	if err != nil {
		return LevelInfo
	}
	return l
}

// LookupLevel converts a string to a Level, case-insensitively, and
// reports unrecognized names.
func LookupLevel(s string) (Level, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "debug":
		return LevelDebug, nil
	case "info":
		return LevelInfo, nil
	case "warn", "warning":
		return LevelWarn, nil
	case "error":
		return LevelError, nil
	default:
		return LevelInfo, fmt.Errorf("unknown log level %q", s)
	}
}

// Effective resolves the console level from the configured level and the
// verbose and quiet switches. Quiet wins over verbose.
func Effective(configured Level, verbose, quiet bool) Level {
	switch {
	case quiet:
		return LevelError
	case verbose && configured > LevelDebug:
		return LevelDebug
	default:
		return configured
	}
}
