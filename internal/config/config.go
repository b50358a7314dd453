// Package config loads taskdeck.yaml.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"
)

// Config represents the taskdeck.yaml configuration structure
type Config struct {
	Version string `yaml:"version"`

	Database struct {
		URL              string        `yaml:"url"`
		MaxConnections   int           `yaml:"max_connections"`
		StatementTimeout time.Duration `yaml:"statement_timeout"`
	} `yaml:"database"`

	Local struct {
		Path string `yaml:"path"`
	} `yaml:"local"`

	Email struct {
		Provider     string   `yaml:"provider"`
		From         string   `yaml:"from"`
		To           []string `yaml:"to"`
		Layout       string   `yaml:"layout"`
		ResendAPIKey string   `yaml:"resend_api_key"`
		SMTPHost     string   `yaml:"smtp_host"`
		SMTPPort     string   `yaml:"smtp_port"`
		SMTPUser     string   `yaml:"smtp_user"`
		SMTPPassword string   `yaml:"smtp_password"`
	} `yaml:"email"`
}

// Email providers.
const (
	ProviderLog    = "log"
	ProviderResend = "resend"
	ProviderSMTP   = "smtp"
)

var locations = []string{"taskdeck.yaml", "taskdeck.yml", ".taskdeck.yaml", ".taskdeck.yml"}

// Default returns a configuration with every default applied.
func Default() *Config {
	cfg := &Config{Version: "1"}
	cfg.applyDefaults()
	return cfg
}

func (c *Config) applyDefaults() {
	if c.Database.MaxConnections == 0 {
		c.Database.MaxConnections = 10
	}
	if c.Database.StatementTimeout == 0 {
		c.Database.StatementTimeout = 30 * time.Second
	}
	if c.Local.Path == "" {
		c.Local.Path = DefaultLocalPath()
	}
	if c.Email.Provider == "" {
		c.Email.Provider = ProviderLog
	}
	if c.Email.Layout == "" {
		c.Email.Layout = "card"
	}
	if c.Email.SMTPPort == "" {
		c.Email.SMTPPort = "587"
	}
}

// Validate checks values the defaults cannot fix.
func (c *Config) Validate() error {
	switch c.Email.Provider {
	case ProviderLog, ProviderResend, ProviderSMTP:
	default:
		return fmt.Errorf("unknown email provider %q", c.Email.Provider)
	}
	if c.Email.Provider == ProviderResend && c.Email.ResendAPIKey == "" {
		return fmt.Errorf("email provider resend requires resend_api_key")
	}
	if c.Email.Provider == ProviderSMTP && c.Email.SMTPHost == "" {
		return fmt.Errorf("email provider smtp requires smtp_host")
	}
	if c.Database.MaxConnections < 0 {
		return fmt.Errorf("database.max_connections must not be negative")
	}
	return nil
}

// DefaultLocalPath is where the local fallback store lives unless configured.
func DefaultLocalPath() string {
	if dir, err := os.UserConfigDir(); err == nil {
		return filepath.Join(dir, "taskdeck", "local.db")
	}
	return filepath.Join(".taskdeck", "local.db")
}

// Load reads the file at path, or the first of the usual locations when path
// is empty. A missing file yields the defaults.
func Load(path string) (*Config, error) {
	if path == "" {
		path = GetConfigPath()
		if path == "" {
			return Default(), nil
		}
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}
	cfg.applyDefaults()

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config file %s: %w", path, err)
	}
	return &cfg, nil
}

func GetConfigPath() string {
	if path := os.Getenv("TASKDECK_CONFIG"); path != "" {
		return path
	}

	for _, loc := range locations {
		if _, err := os.Stat(loc); err == nil {
			return loc
		}
	}

	return ""
}

func Save(cfg *Config, path string) error {
	if path == "" {
		path = "taskdeck.yaml"
	}

	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create directory: %w", err)
	}

	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(path, data, 0600); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}
