package config

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/fusion-condo/fusion/internal/flagx"
	"github.com/fusion-condo/fusion/internal/timex"
)

// JsonConfig is a DTO used exclusively for JSON unmarshalling. Absent keys
// leave the corresponding Config field untouched.
type JsonConfig struct {
	BaseURL        string          `json:"base_url"`
	DatabasePath   string          `json:"database_path"`
	Ephemeral      *bool           `json:"ephemeral"`
	RequestTimeout *timex.Duration `json:"request_timeout"`
	RateLimit      *float64        `json:"rate_limit"`
	MetricsAddr    string          `json:"metrics_addr"`
	Verbose        *bool           `json:"verbose"`
}

// parseJson overlays Config with values from the JSON file named by -c or
// -config. Without that flag it does nothing.
func parseJson(cfg *Config, args []string) error {
	path := flagx.JsonConfigFlags(args)
	if path == "" {
		return nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read config %s: %w", path, err)
	}

	var jc JsonConfig
	if err := json.Unmarshal(data, &jc); err != nil {
		return fmt.Errorf("parse config %s: %w", path, err)
	}

	if jc.BaseURL != "" {
		cfg.BaseURL = jc.BaseURL
	}
	if jc.DatabasePath != "" {
		cfg.DatabasePath = jc.DatabasePath
	}
	if jc.Ephemeral != nil {
		cfg.Ephemeral = *jc.Ephemeral
	}
	if jc.RequestTimeout != nil {
		cfg.RequestTimeout = jc.RequestTimeout.Duration
	}
	if jc.RateLimit != nil {
		cfg.RateLimit = *jc.RateLimit
	}
	if jc.MetricsAddr != "" {
		cfg.MetricsAddr = jc.MetricsAddr
	}
	if jc.Verbose != nil {
		cfg.Verbose = *jc.Verbose
	}
	return nil
}
