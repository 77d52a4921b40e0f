// Package config loads runtime configuration for the Fusion CLI.
//
// Sources & precedence
//
//  1. Built-in defaults (see (*Config).LoadDefaults).
//  2. Environment: FUSION_API_URL, FUSION_DB_PATH, FUSION_REQUEST_TIMEOUT,
//     FUSION_RATE_LIMIT. A dotenv file (-e/-env, or ./.env) supplies values
//     the process environment leaves unset.
//  3. Optional JSON file selected with -c or -config.
//  4. Command-line flags, which override everything else.
//
// Supported flags
//
//	-a string    backend base URL
//	-d string    SQLite database path
//	-t int       request timeout (seconds)
//	-r float     requests per second, 0 for unlimited
//	-m string    address to serve /metrics on
//	-v           verbose logging
//	-ephemeral   keep the session in memory only
//
// # JSON schema
//
// Durations use timex.Duration, so they can be strings like "15s" or integer
// nanoseconds:
//
//	{
//	  "base_url": "https://fusion.example.com",
//	  "database_path": "/home/me/.fusion/session.db",
//	  "request_timeout": "15s",
//	  "rate_limit": 5,
//	  "verbose": true
//	}
package config
