package config

import (
	"flag"
	"os"
	"time"

	"github.com/dmitrijs2005/branchadmin/internal/flagx"
)

// parseFlags overlays Config with command-line flags:
//
//	-a string   REST API base URL
//	-d string   path of the session database
//	-t int      request timeout (in seconds)
//	-l string   log level
//	-o string   log file (rotated); stderr when empty
//
// Only these flags are taken from os.Args (see flagx.FilterArgs), so the
// -c/-config flag of the JSON loader does not trip the parser.
func parseFlags(cfg *Config) {
	args := flagx.FilterArgs(os.Args[1:], []string{"-a", "-d", "-t", "-l", "-o"})

	fs := flag.NewFlagSet("main", flag.ContinueOnError)

	fs.StringVar(&cfg.APIBaseURL, "a", cfg.APIBaseURL, "REST API base URL")
	fs.StringVar(&cfg.SessionDBPath, "d", cfg.SessionDBPath, "path of the session database")
	timeout := fs.Int("t", int(cfg.RequestTimeout.Seconds()), "request timeout (in seconds)")
	fs.StringVar(&cfg.LogLevel, "l", cfg.LogLevel, "log level: debug, info, warn, error")
	fs.StringVar(&cfg.LogFile, "o", cfg.LogFile, "log file (rotated); stderr when empty")

	if err := fs.Parse(args); err != nil {
		panic(err)
	}

	cfg.RequestTimeout = time.Duration(*timeout) * time.Second
}
