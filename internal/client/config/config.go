package config

import "time"

// Config holds runtime settings for the branch admin CLI.
//
// Fields:
//   - APIBaseURL: base URL of the REST API, without a trailing slash.
//   - SessionDBPath: SQLite file holding the persisted bearer token.
//   - RequestTimeout: per-request timeout of the HTTP client.
//   - LogLevel: debug, info, warn or error.
//   - LogFile: rotated log file; empty means stderr.
type Config struct {
	APIBaseURL     string
	SessionDBPath  string
	RequestTimeout time.Duration
	LogLevel       string
	LogFile        string
}

// LoadDefaults populates c with sensible defaults.
func (c *Config) LoadDefaults() {
	c.APIBaseURL = "http://localhost:8000/api"
	c.SessionDBPath = "session.db"
	c.RequestTimeout = 10 * time.Second
	c.LogLevel = "info"
}

// LoadConfig constructs a Config, applies defaults, then overlays values from
// JSON (if present) and command-line flags (if present). Later sources take
// precedence over earlier ones.
func LoadConfig() *Config {
	cfg := &Config{}
	cfg.LoadDefaults()
	parseJson(cfg)
	parseFlags(cfg)
	return cfg
}
