package config

import (
	"time"
)

const (
	DefaultBaseURL        = "http://127.0.0.1:3000"
	DefaultDatabasePath   = ".fusion/session.db"
	DefaultRequestTimeout = 15 * time.Second
)

// Config holds runtime settings for the Fusion CLI.
//
// Fields:
//   - BaseURL: backend origin, e.g. "https://fusion.example.com".
//   - DatabasePath: SQLite file that keeps the session token.
//   - Ephemeral: keep the token in memory only; DatabasePath is ignored.
//   - RequestTimeout: upper bound for one backend call.
//   - RateLimit: outbound requests per second, 0 for unlimited.
//   - MetricsAddr: when set, Prometheus metrics are served on this address.
//   - Verbose: log every request at debug level.
type Config struct {
	BaseURL        string
	DatabasePath   string
	Ephemeral      bool
	RequestTimeout time.Duration
	RateLimit      float64
	MetricsAddr    string
	Verbose        bool
}

// LoadDefaults populates c with sensible defaults.
func (c *Config) LoadDefaults() {
	c.BaseURL = DefaultBaseURL
	c.DatabasePath = DefaultDatabasePath
	c.RequestTimeout = DefaultRequestTimeout
}

// LoadConfig builds a Config from defaults, then the environment (including
// a .env file), then a JSON file, then command-line flags. args are the
// process arguments without the program name. Later sources take precedence
// over earlier ones.
func LoadConfig(args []string) (*Config, error) {
	cfg := &Config{}
	cfg.LoadDefaults()

	if err := parseEnv(cfg, args); err != nil {
		return nil, err
	}
	if err := parseJson(cfg, args); err != nil {
		return nil, err
	}
	if err := parseFlags(cfg, args); err != nil {
		return nil, err
	}
	return cfg, nil
}
