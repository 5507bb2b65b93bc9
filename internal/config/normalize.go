package config

import "strings"

func (c *Config) normalize() error {
	var err error
	if c.Paths.DataDir, err = expandPath(c.Paths.DataDir); err != nil {
		return err
	}
	if c.Paths.LogDir, err = expandPath(c.Paths.LogDir); err != nil {
		return err
	}
	if strings.TrimSpace(c.Paths.InboxDir) != "" {
		if c.Paths.InboxDir, err = expandPath(c.Paths.InboxDir); err != nil {
			return err
		}
	} else {
		c.Paths.InboxDir = ""
	}

	c.Providers.Anthropic.APIKey = strings.TrimSpace(c.Providers.Anthropic.APIKey)
	c.Providers.Anthropic.BaseURL = strings.TrimSpace(c.Providers.Anthropic.BaseURL)
	models := c.Providers.Anthropic.Models[:0]
	for _, model := range c.Providers.Anthropic.Models {
		if trimmed := strings.TrimSpace(model); trimmed != "" {
			models = append(models, trimmed)
		}
	}
	c.Providers.Anthropic.Models = models

	c.Providers.Gemini.APIKey = strings.TrimSpace(c.Providers.Gemini.APIKey)
	c.Providers.Gemini.BaseURL = strings.TrimSpace(c.Providers.Gemini.BaseURL)
	c.Providers.Gemini.Model = strings.TrimSpace(c.Providers.Gemini.Model)

	c.Export.Token = strings.TrimSpace(c.Export.Token)
	c.Export.BaseURL = strings.TrimSpace(c.Export.BaseURL)
	c.Export.ParentPageID = strings.TrimSpace(c.Export.ParentPageID)

	c.Logging.Format = strings.ToLower(strings.TrimSpace(c.Logging.Format))
	c.Logging.Level = strings.ToLower(strings.TrimSpace(c.Logging.Level))
	return nil
}
