// Package config loads runtime configuration for the branch admin CLI.
//
// Sources & precedence
//
//  1. Built-in defaults (see (*Config).LoadDefaults).
//  2. Optional JSON file selected with -c or -config.
//  3. Command-line flags, which override earlier values.
//
// Supported flags
//
//	-a string   REST API base URL (default http://localhost:8000/api)
//	-d string   session database file (default session.db)
//	-t int      request timeout in seconds (default 10)
//	-l string   log level (default info)
//
// # JSON schema
//
// request_timeout uses timex.Duration, so it is either a string like "10s"
// or integer nanoseconds:
//
//	{
//	  "api_base_url": "https://panel.example.com/api",
//	  "session_db_path": "/var/lib/branchadmin/session.db",
//	  "request_timeout": "15s",
//	  "log_level": "debug"
//	}
package config
