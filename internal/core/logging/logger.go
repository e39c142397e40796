// Package logging provides component-scoped loggers on top of the global
// zerolog logger.
package logging

import (
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// Component creates a logger tagged with a component identifier under the
// "cmp" key.
func Component(name string) zerolog.Logger {
	return log.With().Str("cmp", name).Logger()
}
