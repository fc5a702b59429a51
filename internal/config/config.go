package config

import (
	"errors"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Environment variables that override the file.
const (
	EnvBaseURL = "FOODCOURT_BASE_URL"
	EnvToken   = "FOODCOURT_TOKEN"
)

type Config struct {
	Backend   BackendConfig   `yaml:"backend"`
	Session   SessionConfig   `yaml:"session"`
	Logging   LoggingConfig   `yaml:"logging"`
	Preview   PreviewConfig   `yaml:"preview"`
	DevServer DevServerConfig `yaml:"devserver"`
	Metrics   MetricsConfig   `yaml:"metrics"`
}

type BackendConfig struct {
	BaseURL string        `yaml:"base_url"`
	Timeout time.Duration `yaml:"timeout"`
	Debug   bool          `yaml:"debug"`
}

type SessionConfig struct {
	Path string `yaml:"path"`
	// Token, when set, is used instead of the stored session.
	Token string `yaml:"token"`
}

type LoggingConfig struct {
	Level string `yaml:"level"`
	File  string `yaml:"file"`
}

type PreviewConfig struct {
	MaxDimension int    `yaml:"max_dimension"`
	Dir          string `yaml:"dir"`
}

type DevServerConfig struct {
	Addr       string `yaml:"addr"`
	DB         string `yaml:"db"`
	AdminEmail string `yaml:"admin_email"`
	// AdminPassword is used for the first admin instead of a generated one.
	AdminPassword string `yaml:"admin_password"`
}

type MetricsConfig struct {
	// Textfile receives the client counters in Prometheus text format
	// when a command exits. Empty disables the export.
	Textfile string `yaml:"textfile"`
}

// Default returns the configuration used when no file is given.
func Default() *Config {
	c := &Config{}
	c.applyDefaults()
	return c
}

// Load reads configPath (if non-empty), loads a .env file from the
// working directory when present, expands ${VAR} references in the
// YAML, applies environment overrides and defaults, and validates.
func Load(configPath string) (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("loading .env: %w", err)
	}

	var config Config
	if configPath != "" {
		data, err := os.ReadFile(configPath)
		if err != nil {
			return nil, fmt.Errorf("reading config: %w", err)
		}

		expandedData := []byte(os.ExpandEnv(string(data)))
		if err := yaml.Unmarshal(expandedData, &config); err != nil {
			return nil, fmt.Errorf("parsing config: %w", err)
		}
	}

	config.applyEnv()
	config.applyDefaults()

	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return &config, nil
}

func (c *Config) applyEnv() {
	if v := os.Getenv(EnvBaseURL); v != "" {
		c.Backend.BaseURL = v
	}
	if v := os.Getenv(EnvToken); v != "" {
		c.Session.Token = v
	}
}

func (c *Config) applyDefaults() {
	if c.Backend.BaseURL == "" {
		c.Backend.BaseURL = "http://localhost:4000"
	}
	c.Backend.BaseURL = strings.TrimRight(c.Backend.BaseURL, "/")
	if c.Backend.Timeout == 0 {
		c.Backend.Timeout = 30 * time.Second
	}
	if c.Session.Path == "" {
		c.Session.Path = defaultSessionPath()
	}
	if c.Logging.Level == "" {
		c.Logging.Level = "info"
	}
	if c.Preview.MaxDimension == 0 {
		c.Preview.MaxDimension = 256
	}
	if c.DevServer.Addr == "" {
		c.DevServer.Addr = ":4000"
	}
	if c.DevServer.DB == "" {
		c.DevServer.DB = "foodcourt.sqlite3"
	}
	if c.DevServer.AdminEmail == "" {
		c.DevServer.AdminEmail = "admin@foodcourt.local"
	}
}

// Validate checks the values that cannot be defaulted.
func (c *Config) Validate() error {
	u, err := url.Parse(c.Backend.BaseURL)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return fmt.Errorf("backend.base_url must be an http(s) URL, got %q", c.Backend.BaseURL)
	}
	if c.Backend.Timeout < 0 {
		return errors.New("backend.timeout must not be negative")
	}
	if c.Preview.MaxDimension < 0 {
		return errors.New("preview.max_dimension must not be negative")
	}
	switch strings.ToLower(c.Logging.Level) {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("logging.level must be debug, info, warn or error, got %q", c.Logging.Level)
	}
	return nil
}

func defaultSessionPath() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "foodcourt-session.sqlite3"
	}
	return filepath.Join(dir, "foodcourt", "session.sqlite3")
}
