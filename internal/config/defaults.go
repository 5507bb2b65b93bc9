package config

// Default returns the baseline configuration before any file overrides.
func Default() Config {
	return Config{
		Paths: Paths{
			DataDir: "~/.local/share/visionboard",
			LogDir:  "~/.local/share/visionboard/logs",
		},
		Providers: Providers{
			Anthropic: Anthropic{
				TimeoutSeconds: 60,
			},
			Gemini: Gemini{
				TimeoutSeconds: 60,
			},
		},
		Analysis: Analysis{
			DemoEnabled: true,
		},
		Export: Export{
			TimeoutSeconds: 15,
		},
		Logging: Logging{
			Format: "console",
			Level:  "info",
		},
	}
}
