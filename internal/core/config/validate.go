package config

import (
	"fmt"

	"github.com/hay-kot/criterio"
	"github.com/rs/zerolog"

	"github.com/colonyops/tabula/internal/core/styles"
)

// Validate checks the configuration for structural errors.
func (c *Config) Validate() error {
	var errs criterio.FieldErrorsBuilder

	if _, err := zerolog.ParseLevel(c.LogLevel); err != nil {
		errs = errs.Append("log_level", fmt.Errorf("unknown level %q", c.LogLevel))
	}
	if !styles.ThemeExists(c.Theme) {
		errs = errs.Append("theme", fmt.Errorf("unknown theme %q (have: %v)", c.Theme, styles.ThemeNames()))
	}

	return errs.ToError()
}
