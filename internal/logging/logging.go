// Package logging builds the structured logger shared by the converter and
// the CLI. Records go to a writer (stderr in the CLI) because stdout carries
// workbook bytes.
package logging

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"strings"
)

// LevelTrace is one step below debug.
const LevelTrace = slog.LevelDebug - 4

// MaxVerbosity is the highest meaningful -v count.
const MaxVerbosity = 5

// levelNames maps verbosity counts to level names, indexed by count.
var levelNames = []string{"none", "error", "warn", "info", "debug", "trace"}

// VerbosityFromName returns the verbosity count for a level name.
func VerbosityFromName(name string) (int, error) {
	name = strings.ToLower(strings.TrimSpace(name))
	if name == "" {
		return 0, nil
	}
	for i, n := range levelNames {
		if n == name {
			return i, nil
		}
	}
	return 0, fmt.Errorf("unknown log level %q (valid: %s)", name, strings.Join(levelNames, ", "))
}

// NameFromVerbosity returns the level name for a verbosity count.
// Counts above MaxVerbosity clamp to "trace".
func NameFromVerbosity(verbosity int) string {
	return levelNames[clamp(verbosity)]
}

// Level maps a verbosity count to an slog level. The boolean is false for
// verbosity 0, which disables logging.
func Level(verbosity int) (slog.Level, bool) {
	switch clamp(verbosity) {
	case 1:
		return slog.LevelError, true
	case 2:
		return slog.LevelWarn, true
	case 3:
		return slog.LevelInfo, true
	case 4:
		return slog.LevelDebug, true
	case 5:
		return LevelTrace, true
	}
	return 0, false
}

// New returns a text logger writing to w at the level for verbosity.
func New(w io.Writer, verbosity int) *slog.Logger {
	level, enabled := Level(verbosity)
	if !enabled {
		return Discard()
	}
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{
		Level:       level,
		ReplaceAttr: renameTrace,
	}))
}

// Discard returns a logger that drops every record.
func Discard() *slog.Logger {
	return slog.New(slog.DiscardHandler)
}

// Trace logs at LevelTrace.
func Trace(logger *slog.Logger, msg string, args ...any) {
	logger.Log(context.Background(), LevelTrace, msg, args...)
}

func renameTrace(_ []string, a slog.Attr) slog.Attr {
	if a.Key == slog.LevelKey {
		if level, ok := a.Value.Any().(slog.Level); ok && level <= LevelTrace {
			a.Value = slog.StringValue("TRACE")
		}
	}
	return a
}

func clamp(verbosity int) int {
	if verbosity < 0 {
		return 0
	}
	if verbosity > MaxVerbosity {
		return MaxVerbosity
	}
	return verbosity
}
