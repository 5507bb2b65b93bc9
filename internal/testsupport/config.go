package testsupport

import (
	"path/filepath"
	"testing"

	"visionboard/internal/config"
)

// ConfigOption allows callers to customize the generated test configuration.
type ConfigOption func(*config.Config)

// NewConfig produces a config seeded with unique temp directories per test.
// It defaults common fields and applies any provided options.
func NewConfig(t testing.TB, opts ...ConfigOption) *config.Config {
	t.Helper()

	base := t.TempDir()
	cfg := config.Default()
	cfg.Paths.DataDir = filepath.Join(base, "data")
	cfg.Paths.LogDir = filepath.Join(base, "logs")
	cfg.Paths.InboxDir = filepath.Join(base, "inbox")

	for _, opt := range opts {
		opt(&cfg)
	}
	return &cfg
}

// WithAnthropicKey sets the Anthropic API key on the test config.
func WithAnthropicKey(key string) ConfigOption {
	return func(cfg *config.Config) {
		cfg.Providers.Anthropic.APIKey = key
	}
}

// WithGeminiKey sets the Gemini API key on the test config.
func WithGeminiKey(key string) ConfigOption {
	return func(cfg *config.Config) {
		cfg.Providers.Gemini.APIKey = key
	}
}

// WithDemoDisabled turns off the demo-asset short circuit.
func WithDemoDisabled() ConfigOption {
	return func(cfg *config.Config) {
		cfg.Analysis.DemoEnabled = false
	}
}

// WithExportToken configures the note-service exporter.
func WithExportToken(token, parentPageID string) ConfigOption {
	return func(cfg *config.Config) {
		cfg.Export.Token = token
		cfg.Export.ParentPageID = parentPageID
	}
}
