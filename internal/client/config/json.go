package config

import (
	"encoding/json"
	"os"

	"github.com/dmitrijs2005/branchadmin/internal/flagx"
	"github.com/dmitrijs2005/branchadmin/internal/timex"
)

// JsonConfig is the on-disk shape of the config file. Absent fields leave
// the corresponding Config value untouched.
type JsonConfig struct {
	APIBaseURL     string          `json:"api_base_url"`
	SessionDBPath  string          `json:"session_db_path"`
	RequestTimeout *timex.Duration `json:"request_timeout"`
	LogLevel       string          `json:"log_level"`
	LogFile        string          `json:"log_file"`
}

// parseJson overlays Config with the file named by -c / -config. Without
// the flag nothing happens. Read and decode errors panic, as with flags.
func parseJson(cfg *Config) {
	path := flagx.ConfigFilePath(os.Args[1:])
	if path == "" {
		return
	}

	data, err := os.ReadFile(path)
	if err != nil {
		panic(err)
	}

	var jc JsonConfig
	if err := json.Unmarshal(data, &jc); err != nil {
		panic(err)
	}

	if jc.APIBaseURL != "" {
		cfg.APIBaseURL = jc.APIBaseURL
	}
	if jc.SessionDBPath != "" {
		cfg.SessionDBPath = jc.SessionDBPath
	}
	if jc.RequestTimeout != nil {
		cfg.RequestTimeout = jc.RequestTimeout.Duration
	}
	if jc.LogLevel != "" {
		cfg.LogLevel = jc.LogLevel
	}
	if jc.LogFile != "" {
		cfg.LogFile = jc.LogFile
	}
}
