package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/caarlos0/env/v11"
	"gopkg.in/yaml.v3"
)

// Defaults applied by Load for unset fields.
const (
	DefaultBaseURL           = "https://reqres.in/api"
	DefaultTimeout           = 30 * time.Second
	DefaultAvatar            = "https://reqres.in/img/faces/7-image.jpg"
	DefaultSearchConcurrency = 4
	DefaultTheme             = "light"
	DefaultLogLevel          = "info"
	DefaultLogFormat         = "auto"
	DefaultFakeAddr          = "127.0.0.1:8089"
)

// Config holds settings loaded from useradmin.yml and USERADMIN_*
// environment variables. Environment values win over the file.
type Config struct {
	BaseURL           string        `yaml:"baseURL,omitempty" env:"USERADMIN_BASE_URL"`
	Timeout           time.Duration `yaml:"timeout,omitempty" env:"USERADMIN_TIMEOUT"`
	DefaultAvatar     string        `yaml:"defaultAvatar,omitempty" env:"USERADMIN_DEFAULT_AVATAR"`
	TrustServerIDs    bool          `yaml:"trustServerIDs,omitempty" env:"USERADMIN_TRUST_SERVER_IDS"`
	SearchConcurrency int           `yaml:"searchConcurrency,omitempty" env:"USERADMIN_SEARCH_CONCURRENCY"`
	Theme             string        `yaml:"theme,omitempty" env:"USERADMIN_THEME"`
	LogLevel          string        `yaml:"logLevel,omitempty" env:"USERADMIN_LOG_LEVEL"`
	LogFormat         string        `yaml:"logFormat,omitempty" env:"USERADMIN_LOG_FORMAT"`
	MCPAddr           string        `yaml:"mcpAddr,omitempty" env:"USERADMIN_MCP_ADDR"`
	FakeAddr          string        `yaml:"fakeAddr,omitempty" env:"USERADMIN_FAKE_ADDR"`
}

// Load reads useradmin.yml or useradmin.yaml from dir, applies environment
// overrides and fills defaults. A missing file is not an error.
func Load(dir string) (*Config, error) {
	var cfg Config
	for _, name := range []string{"useradmin.yml", "useradmin.yaml"} {
		path := filepath.Join(dir, name)
		data, err := os.ReadFile(path)
		if err != nil {
			continue
		}
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return nil, fmt.Errorf("config: parse %s: %w", name, err)
		}
		break
	}

	if err := env.Parse(&cfg); err != nil {
		return nil, fmt.Errorf("config: parse env: %w", err)
	}

	cfg.applyDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) applyDefaults() {
	if c.BaseURL == "" {
		c.BaseURL = DefaultBaseURL
	}
	if c.Timeout <= 0 {
		c.Timeout = DefaultTimeout
	}
	if c.DefaultAvatar == "" {
		c.DefaultAvatar = DefaultAvatar
	}
	if c.SearchConcurrency <= 0 {
		c.SearchConcurrency = DefaultSearchConcurrency
	}
	if c.Theme == "" {
		c.Theme = DefaultTheme
	}
	if c.LogLevel == "" {
		c.LogLevel = DefaultLogLevel
	}
	if c.LogFormat == "" {
		c.LogFormat = DefaultLogFormat
	}
	if c.FakeAddr == "" {
		c.FakeAddr = DefaultFakeAddr
	}
}

// Validate reports settings that cannot be used.
func (c *Config) Validate() error {
	switch c.Theme {
	case "light", "dark":
	default:
		return fmt.Errorf("config: theme must be light or dark, got %q", c.Theme)
	}
	return nil
}
