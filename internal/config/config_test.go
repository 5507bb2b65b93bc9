package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadMissingFileUsesDefaults(t *testing.T) {
	cfg, _, exists, err := Load(filepath.Join(t.TempDir(), "nope.toml"))
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if exists {
		t.Fatal("expected exists=false for missing file")
	}
	if cfg.Logging.Format != "console" || cfg.Logging.Level != "info" {
		t.Fatalf("unexpected logging defaults %+v", cfg.Logging)
	}
	if !cfg.Analysis.DemoEnabled {
		t.Fatal("expected demo short circuit enabled by default")
	}
	if cfg.HasAnthropicCredential() || cfg.HasGeminiCredential() {
		t.Fatal("defaults must not carry credentials")
	}
}

func TestLoadParsesOverrides(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.toml")
	content := `
[paths]
data_dir = "` + filepath.Join(dir, "data") + `"
log_dir = "` + filepath.Join(dir, "logs") + `"

[providers.anthropic]
api_key = "sk-ant-test"
models = ["model-a", " ", "model-b"]

[providers.gemini]
api_key = "AIzaTest"

[logging]
format = "json"
level = "debug"
`
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	cfg, resolved, exists, err := Load(path)
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if !exists || resolved != path {
		t.Fatalf("expected resolved existing path, got %q exists=%v", resolved, exists)
	}
	if !cfg.HasAnthropicCredential() || !cfg.HasGeminiCredential() {
		t.Fatal("expected both credentials detected")
	}
	if len(cfg.Providers.Anthropic.Models) != 2 {
		t.Fatalf("expected blank model entries dropped, got %v", cfg.Providers.Anthropic.Models)
	}
	if cfg.Logging.Format != "json" {
		t.Fatalf("unexpected format %q", cfg.Logging.Format)
	}
}

func TestCredentialFormatGates(t *testing.T) {
	cfg := Default()
	cfg.Providers.Anthropic.APIKey = "AIza-wrong-provider"
	if cfg.HasAnthropicCredential() {
		t.Fatal("gemini-shaped key must not pass the anthropic gate")
	}
	cfg.Providers.Gemini.APIKey = "sk-wrong-provider"
	if cfg.HasGeminiCredential() {
		t.Fatal("anthropic-shaped key must not pass the gemini gate")
	}
}

func TestValidateRejectsBadFormat(t *testing.T) {
	cfg := Default()
	if err := cfg.normalize(); err != nil {
		t.Fatalf("normalize: %v", err)
	}
	cfg.Logging.Format = "yaml"
	if err := cfg.Validate(); err == nil {
		t.Fatal("expected error for unsupported log format")
	}
}

func TestValidateExportRequiresParent(t *testing.T) {
	cfg := Default()
	if err := cfg.normalize(); err != nil {
		t.Fatalf("normalize: %v", err)
	}
	cfg.Export.Token = "secret"
	if err := cfg.Validate(); err == nil {
		t.Fatal("expected error when token set without parent page")
	}
	cfg.Export.ParentPageID = "page"
	if err := cfg.Validate(); err != nil {
		t.Fatalf("Validate returned error: %v", err)
	}
}

func TestCreateSample(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "config.toml")
	if err := CreateSample(path); err != nil {
		t.Fatalf("CreateSample returned error: %v", err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read sample: %v", err)
	}
	if len(data) == 0 {
		t.Fatal("sample config is empty")
	}
}
