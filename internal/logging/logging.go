// Package logging builds the hclog loggers used across domcol.
package logging

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/hashicorp/go-hclog"
)

// Name is the root logger name.
const Name = "domcol"

// DefaultLevel is used when no level is configured.
const DefaultLevel = hclog.Warn

// Options configures New.
type Options struct {
	// Level is an hclog level name ("trace", "debug", "info", "warn",
	// "error", "off"). Empty selects DefaultLevel.
	Level string
	// Output defaults to os.Stderr.
	Output io.Writer
	// JSON switches to JSON lines.
	JSON bool
}

// ParseLevel converts a level name into an hclog.Level.
func ParseLevel(s string) (hclog.Level, error) {
	if strings.TrimSpace(s) == "" {
		return DefaultLevel, nil
	}
	level := hclog.LevelFromString(s)
	if level == hclog.NoLevel {
		return hclog.NoLevel, fmt.Errorf("invalid log level: %s (valid: trace, debug, info, warn, error, off)", s)
	}
	return level, nil
}

// New returns a logger named "domcol". An invalid level falls back to
// DefaultLevel; callers that need to reject it should use ParseLevel first.
func New(opts Options) hclog.Logger {
	level, err := ParseLevel(opts.Level)
	if err != nil {
		level = DefaultLevel
	}

	output := opts.Output
	if output == nil {
		output = os.Stderr
	}

	return hclog.New(&hclog.LoggerOptions{
		Name:       Name,
		Output:     output,
		Level:      level,
		JSONFormat: opts.JSON,
	})
}

// Discard returns a logger that drops everything.
func Discard() hclog.Logger {
	return hclog.New(&hclog.LoggerOptions{
		Name:   Name,
		Output: io.Discard,
		Level:  hclog.Off,
	})
}
