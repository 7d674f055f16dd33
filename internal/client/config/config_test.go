package config

import (
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	var c Config
	c.LoadDefaults()

	assert.Equal(t, "http://localhost:8000/api", c.APIBaseURL)
	assert.Equal(t, "session.db", c.SessionDBPath)
	assert.Equal(t, 10*time.Second, c.RequestTimeout)
	assert.Equal(t, "info", c.LogLevel)
}

func TestLoadConfig_DefaultsJSONThenFlags(t *testing.T) {
	origArgs := os.Args
	t.Cleanup(func() { os.Args = origArgs })

	path := writeTempJSON(t, "", "", map[string]any{
		"api_base_url":    "https://json.example/api",
		"request_timeout": "30s",
	})
	os.Args = []string{"testbin", "-c", path, "-a", "https://flag.example/api"}

	cfg := LoadConfig()

	require.NotNil(t, cfg)
	assert.Equal(t, "https://flag.example/api", cfg.APIBaseURL, "flag overrides JSON")
	assert.Equal(t, 30*time.Second, cfg.RequestTimeout, "JSON overrides default")
	assert.Equal(t, "session.db", cfg.SessionDBPath, "default kept")
}
