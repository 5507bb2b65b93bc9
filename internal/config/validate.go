package config

import (
	"errors"
	"fmt"
)

// Validate checks configuration values that would otherwise fail obscurely at
// runtime. Absent credentials are deliberately not errors; the analyzer treats
// them as a handled state.
func (c *Config) Validate() error {
	if c.Paths.DataDir == "" {
		return errors.New("config: paths.data_dir required")
	}
	if c.Paths.LogDir == "" {
		return errors.New("config: paths.log_dir required")
	}
	switch c.Logging.Format {
	case "", "console", "json":
	default:
		return fmt.Errorf("config: logging.format: unsupported value %q", c.Logging.Format)
	}
	if c.Providers.Anthropic.TimeoutSeconds < 0 {
		return errors.New("config: providers.anthropic.timeout_seconds must not be negative")
	}
	if c.Providers.Gemini.TimeoutSeconds < 0 {
		return errors.New("config: providers.gemini.timeout_seconds must not be negative")
	}
	if c.Export.TimeoutSeconds < 0 {
		return errors.New("config: export.timeout_seconds must not be negative")
	}
	if c.HasExportToken() && c.Export.ParentPageID == "" {
		return errors.New("config: export.parent_page_id required when a token is set")
	}
	return nil
}
