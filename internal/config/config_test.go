package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoadConfig(t *testing.T) {
	t.Chdir(t.TempDir())
	t.Setenv("STALL_HOST", "api.example.com")
	t.Setenv("ADMIN_PW", "kopi-peng-2024")

	path := writeConfig(t, `
backend:
  base_url: "https://${STALL_HOST}/"
  timeout: 5s
logging:
  level: debug
preview:
  max_dimension: 128
devserver:
  admin_password: "${ADMIN_PW}"
metrics:
  textfile: /var/lib/node_exporter/foodcourt.prom
`)

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "https://api.example.com", cfg.Backend.BaseURL)
	assert.Equal(t, 5*time.Second, cfg.Backend.Timeout)
	assert.Equal(t, "debug", cfg.Logging.Level)
	assert.Equal(t, 128, cfg.Preview.MaxDimension)
	assert.Equal(t, ":4000", cfg.DevServer.Addr)
	assert.Equal(t, "kopi-peng-2024", cfg.DevServer.AdminPassword)
	assert.Equal(t, "/var/lib/node_exporter/foodcourt.prom", cfg.Metrics.Textfile)
}

func TestLoadWithoutFile(t *testing.T) {
	t.Chdir(t.TempDir())

	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, "http://localhost:4000", cfg.Backend.BaseURL)
	assert.Equal(t, 30*time.Second, cfg.Backend.Timeout)
	assert.NotEmpty(t, cfg.Session.Path)
}

func TestLoadEnvOverrides(t *testing.T) {
	dir := t.TempDir()
	t.Chdir(dir)
	require.NoError(t, os.WriteFile(filepath.Join(dir, ".env"), []byte("FOODCOURT_TOKEN=from-dotenv\n"), 0o644))
	t.Setenv(EnvBaseURL, "http://backend:9000")
	// Make sure the variable is restored after godotenv sets it.
	t.Setenv(EnvToken, "")
	os.Unsetenv(EnvToken)

	path := writeConfig(t, `
backend:
  base_url: "http://ignored:1"
`)

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "http://backend:9000", cfg.Backend.BaseURL)
	assert.Equal(t, "from-dotenv", cfg.Session.Token)
}

func TestValidateConfig(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr bool
	}{
		{"defaults", func(*Config) {}, false},
		{"relative url", func(c *Config) { c.Backend.BaseURL = "localhost:4000" }, true},
		{"ftp url", func(c *Config) { c.Backend.BaseURL = "ftp://host" }, true},
		{"negative timeout", func(c *Config) { c.Backend.Timeout = -time.Second }, true},
		{"bad log level", func(c *Config) { c.Logging.Level = "loud" }, true},
		{"negative preview", func(c *Config) { c.Preview.MaxDimension = -1 }, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(cfg)
			err := cfg.Validate()
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestLoadInvalidYAML(t *testing.T) {
	t.Chdir(t.TempDir())
	path := writeConfig(t, "backend: [unterminated")

	_, err := Load(path)
	assert.Error(t, err)
}
