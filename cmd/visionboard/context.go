package main

import (
	"log/slog"
	"strings"
	"sync"

	"visionboard/internal/analysis"
	"visionboard/internal/config"
	"visionboard/internal/logging"
	"visionboard/internal/services/anthropic"
	"visionboard/internal/services/gemini"
	"visionboard/internal/store"
)

type commandContext struct {
	configFlag *string

	configOnce sync.Once
	config     *config.Config
	configErr  error

	loggerOnce sync.Once
	logger     *slog.Logger
}

func newCommandContext(configFlag *string) *commandContext {
	return &commandContext{configFlag: configFlag}
}

func (c *commandContext) ensureConfig() (*config.Config, error) {
	c.configOnce.Do(func() {
		var path string
		if c.configFlag != nil {
			path = strings.TrimSpace(*c.configFlag)
		}
		cfg, _, _, err := config.Load(path)
		if err != nil {
			c.configErr = err
			return
		}
		if err := cfg.EnsureDirectories(); err != nil {
			c.configErr = err
			return
		}
		c.config = cfg
	})
	return c.config, c.configErr
}

func (c *commandContext) ensureLogger() *slog.Logger {
	c.loggerOnce.Do(func() {
		cfg, err := c.ensureConfig()
		if err != nil {
			c.logger = logging.NewNop()
			return
		}
		logger, err := logging.NewFromConfig(cfg)
		if err != nil {
			c.logger = logging.NewNop()
			return
		}
		c.logger = logger
	})
	return c.logger
}

// newAnalyzer wires the configured providers into an analyzer. Clients are
// constructed unconditionally; the analyzer itself gates on credential
// presence.
func (c *commandContext) newAnalyzer() (*analysis.Analyzer, error) {
	cfg, err := c.ensureConfig()
	if err != nil {
		return nil, err
	}
	anthropicClient := anthropic.NewClient(anthropic.Config{
		APIKey:         cfg.Providers.Anthropic.APIKey,
		BaseURL:        cfg.Providers.Anthropic.BaseURL,
		Models:         cfg.Providers.Anthropic.Models,
		TimeoutSeconds: cfg.Providers.Anthropic.TimeoutSeconds,
	})
	geminiClient := gemini.NewClient(gemini.Config{
		APIKey:         cfg.Providers.Gemini.APIKey,
		BaseURL:        cfg.Providers.Gemini.BaseURL,
		Model:          cfg.Providers.Gemini.Model,
		TimeoutSeconds: cfg.Providers.Gemini.TimeoutSeconds,
	})
	return analysis.New(cfg, c.ensureLogger(),
		analysis.WithAnthropic(anthropicClient),
		analysis.WithGemini(geminiClient)), nil
}

// withStore opens the session store, runs fn, and always releases the lock.
func (c *commandContext) withStore(fn func(*store.Store) error) error {
	cfg, err := c.ensureConfig()
	if err != nil {
		return err
	}
	st, err := store.Open(cfg)
	if err != nil {
		return err
	}
	defer st.Close()
	return fn(st)
}
