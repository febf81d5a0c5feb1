package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	t.Setenv("FOODRUN_CONFIG", "")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "http://localhost:3000", cfg.Server.BaseURL)
	assert.Equal(t, 15*time.Second, cfg.Server.Timeout)
	assert.Equal(t, "connect.sid", cfg.Server.CookieName)
	assert.Equal(t, "info", cfg.Log.Level)
	assert.Equal(t, "http://localhost:3000/auth/facebook", cfg.UI.LoginURL)
	assert.Contains(t, cfg.Log.Path, filepath.Join(".local", "state", "foodrun"))
}

func TestLoadFromFile(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	path := filepath.Join(t.TempDir(), "config.toml")
	data := `
[server]
base_url = "https://food.example.org/"
timeout = "3s"

[log]
level = "debug"

[ui]
login_url = "https://food.example.org/login"
`
	require.NoError(t, os.WriteFile(path, []byte(data), 0o600))

	cfg, err := LoadFrom(path)
	require.NoError(t, err)
	assert.Equal(t, "https://food.example.org", cfg.Server.BaseURL)
	assert.Equal(t, 3*time.Second, cfg.Server.Timeout)
	assert.Equal(t, "debug", cfg.Log.Level)
	assert.Equal(t, "https://food.example.org/login", cfg.UI.LoginURL)
}

func TestLoadEnvOverride(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	t.Setenv("FOODRUN_CONFIG", "")
	t.Setenv("FOODRUN_SERVER_BASE_URL", "http://10.0.0.5:8080")
	t.Setenv("FOODRUN_LOG_LEVEL", "warn")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "http://10.0.0.5:8080", cfg.Server.BaseURL)
	assert.Equal(t, "warn", cfg.Log.Level)
	assert.Equal(t, "http://10.0.0.5:8080/auth/facebook", cfg.UI.LoginURL)
}

func TestLoadMissingExplicitFile(t *testing.T) {
	t.Setenv("HOME", t.TempDir())

	_, err := LoadFrom(filepath.Join(t.TempDir(), "nope.toml"))
	require.Error(t, err)
}

func TestValidateRejectsBadValues(t *testing.T) {
	tests := []struct {
		name string
		cfg  Config
	}{
		{name: "missing base url", cfg: Config{Log: LogConfig{Level: "info"}}},
		{name: "bad base url", cfg: Config{Server: ServerConfig{BaseURL: "not a url", CookieName: "sid"}}},
		{name: "missing cookie name", cfg: Config{Server: ServerConfig{BaseURL: "http://x.org"}}},
		{name: "bad level", cfg: Config{Server: ServerConfig{BaseURL: "http://x.org", CookieName: "sid"}, Log: LogConfig{Level: "loud"}}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Error(t, Validate(tt.cfg))
		})
	}
}
