// Package config loads runtime configuration for the bizdash terminal
// client. Precedence: defaults, then an optional JSON file (-c/-config),
// then command-line flags.
package config

import "time"

// Config holds runtime settings for the dashboard client.
//
// Fields:
//   - ServerBaseURL: origin of the dashboard API.
//   - RequestTimeout: end-to-end bound for every API call.
//   - StateDBPath: path of the local sqlite database holding session state.
type Config struct {
	ServerBaseURL  string
	RequestTimeout time.Duration
	StateDBPath    string
}

// LoadDefaults populates c with sensible defaults.
func (c *Config) LoadDefaults() {
	c.ServerBaseURL = "http://127.0.0.1:8080"
	c.RequestTimeout = 10 * time.Second
	c.StateDBPath = "bizdash.db"
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
