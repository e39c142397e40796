// Package logutils configures the process-wide zerolog logger for CLI use.
package logutils

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/rs/zerolog"
)

// New returns a logger writing JSON lines to file, or to stderr when file
// is empty. The returned closer releases the log file and is safe to call
// either way.
//
// level is one of: trace, debug, info, warn, error, fatal, panic.
func New(level string, file string) (zerolog.Logger, func(), error) {
	closer := func() {}

	lvl, err := zerolog.ParseLevel(level)
	if err != nil {
		return zerolog.Logger{}, closer, fmt.Errorf("parse log level: %w", err)
	}

	writer := os.Stderr
	if file != "" {
		if err := os.MkdirAll(filepath.Dir(file), 0o755); err != nil {
			return zerolog.Logger{}, closer, fmt.Errorf("create log dir: %w", err)
		}
		f, err := os.OpenFile(file, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return zerolog.Logger{}, closer, fmt.Errorf("open log file: %w", err)
		}
		closer = func() { _ = f.Close() }
		writer = f
	}

	l := zerolog.New(writer).
		With().
		Timestamp().
		Logger().
		Level(lvl)

	return l, closer, nil
}
