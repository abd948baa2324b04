// Package config loads runtime settings for promoctl.
package config

import "time"

// Config holds the client's runtime settings.
//
// Fields:
//   - APIBaseURL: base URL of the PromoGPT backend.
//   - RequestTimeout: per-request HTTP timeout.
//   - CredentialsDB: path of the local credentials database.
type Config struct {
	APIBaseURL     string
	RequestTimeout time.Duration
	CredentialsDB  string
}

// LoadDefaults populates c with sensible defaults.
func (c *Config) LoadDefaults() {
	c.APIBaseURL = "http://localhost:8000"
	c.RequestTimeout = 15 * time.Second
	c.CredentialsDB = "promoctl.db"
}

// LoadConfig constructs a Config, applies defaults, then overlays values
// from JSON (if present) and command-line flags (if present). Later sources
// take precedence over earlier ones.
func LoadConfig() *Config {
	cfg := &Config{}
	cfg.LoadDefaults()
	parseJson(cfg)
	parseFlags(cfg)
	return cfg
}
