package config

import (
	"flag"
	"os"
	"time"

	"petmanager/internal/flagx"
)

// parseFlags populates selected Config fields from command-line flags.
//
// Supported flags:
//
//	-a string   base URL of the pet-manager API
//	-t int      request timeout in seconds
//	-i int      health check interval in seconds
//	-d string   directory holding the session record
//	-p int      default page size for listings
//	-l string   log level (debug|info|warn|error)
//
// Arguments are filtered with flagx.FilterArgs so flags handled elsewhere
// (like -c/-config) do not interfere.
func parseFlags(cfg *Config) {
	args := flagx.FilterArgs(os.Args[1:], []string{"-a", "-t", "-i", "-d", "-p", "-l"})

	fs := flag.NewFlagSet("main", flag.ContinueOnError)

	fs.StringVar(&cfg.APIBaseURL, "a", cfg.APIBaseURL, "base URL of the pet-manager API")
	timeout := fs.Int("t", int(cfg.RequestTimeout.Seconds()), "request timeout (in seconds)")
	healthInterval := fs.Int("i", int(cfg.HealthCheckInterval.Seconds()), "health check interval (in seconds)")
	fs.StringVar(&cfg.SessionDir, "d", cfg.SessionDir, "directory holding the session record")
	fs.IntVar(&cfg.PageSize, "p", cfg.PageSize, "default page size for listings")
	fs.StringVar(&cfg.LogLevel, "l", cfg.LogLevel, "log level")

	if err := fs.Parse(args); err != nil {
		panic(err)
	}

	cfg.RequestTimeout = time.Duration(*timeout) * time.Second
	cfg.HealthCheckInterval = time.Duration(*healthInterval) * time.Second
}
