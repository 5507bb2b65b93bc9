// Package config loads, defaults, normalizes, and validates the TOML
// configuration for visionboard: data/log/inbox paths, per-provider
// credentials and endpoints, analyzer behavior, note-service export settings,
// and log output. A missing config file is valid; every section has usable
// defaults and absent provider credentials are a handled state rather than an
// error.
package config
