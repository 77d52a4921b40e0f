package config

import (
	"flag"
	"io"
	"time"

	"github.com/fusion-condo/fusion/internal/flagx"
)

var knownFlags = []string{"-a", "-d", "-t", "-r", "-m", "-v", "-ephemeral"}

// parseFlags populates Config fields from command-line flags.
//
//	-a string    backend base URL
//	-d string    SQLite database path
//	-t int       request timeout (seconds)
//	-r float     requests per second, 0 for unlimited
//	-m string    address to serve /metrics on
//	-v           verbose logging
//	-ephemeral   keep the session in memory only
//
// args are filtered with flagx.FilterArgs first so flags owned by other
// loaders (-c, -e) do not trip the parser.
func parseFlags(cfg *Config, args []string) error {
	args = flagx.FilterArgs(args, knownFlags)

	fs := flag.NewFlagSet("fusion", flag.ContinueOnError)
	fs.SetOutput(io.Discard)

	fs.StringVar(&cfg.BaseURL, "a", cfg.BaseURL, "backend base URL")
	fs.StringVar(&cfg.DatabasePath, "d", cfg.DatabasePath, "SQLite database path")
	timeout := fs.Int("t", int(cfg.RequestTimeout.Seconds()), "request timeout (in seconds)")
	fs.Float64Var(&cfg.RateLimit, "r", cfg.RateLimit, "requests per second, 0 for unlimited")
	fs.StringVar(&cfg.MetricsAddr, "m", cfg.MetricsAddr, "address to serve /metrics on")
	fs.BoolVar(&cfg.Verbose, "v", cfg.Verbose, "verbose logging")
	fs.BoolVar(&cfg.Ephemeral, "ephemeral", cfg.Ephemeral, "keep the session in memory only")

	if err := fs.Parse(args); err != nil {
		return err
	}

	// -t applies only when given; env and JSON timeouts may be sub-second.
	fs.Visit(func(f *flag.Flag) {
		if f.Name == "t" {
			cfg.RequestTimeout = time.Duration(*timeout) * time.Second
		}
	})
	return nil
}
