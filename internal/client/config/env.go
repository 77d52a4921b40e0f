package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"time"

	"github.com/fusion-condo/fusion/internal/flagx"
	"github.com/joho/godotenv"
)

// Environment variables read by parseEnv.
const (
	EnvBaseURL        = "FUSION_API_URL"
	EnvDatabasePath   = "FUSION_DB_PATH"
	EnvRequestTimeout = "FUSION_REQUEST_TIMEOUT"
	EnvRateLimit      = "FUSION_RATE_LIMIT"
)

const defaultEnvFile = ".env"

// parseEnv overlays Config with environment variables. Values from a dotenv
// file fill in variables the process environment does not set. The file is
// the one named by -e/-env, or ./.env when present; a missing ./.env is not
// an error, a missing explicit file is.
func parseEnv(cfg *Config, args []string) error {
	path := flagx.EnvFileFlags(args)
	explicit := path != ""
	if !explicit {
		path = defaultEnvFile
	}

	fileVals, err := godotenv.Read(path)
	if err != nil {
		if explicit || !errors.Is(err, fs.ErrNotExist) {
			return fmt.Errorf("read env file %s: %w", path, err)
		}
		fileVals = map[string]string{}
	}

	lookup := func(key string) (string, bool) {
		if v, ok := os.LookupEnv(key); ok && v != "" {
			return v, true
		}
		v, ok := fileVals[key]
		return v, ok && v != ""
	}

	if v, ok := lookup(EnvBaseURL); ok {
		cfg.BaseURL = v
	}
	if v, ok := lookup(EnvDatabasePath); ok {
		cfg.DatabasePath = v
	}
	if v, ok := lookup(EnvRequestTimeout); ok {
		d, err := time.ParseDuration(v)
		if err != nil {
			return fmt.Errorf("%s: %w", EnvRequestTimeout, err)
		}
		cfg.RequestTimeout = d
	}
	if v, ok := lookup(EnvRateLimit); ok {
		r, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return fmt.Errorf("%s: %w", EnvRateLimit, err)
		}
		cfg.RateLimit = r
	}
	return nil
}
