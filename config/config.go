package config

import (
	"errors"
	"fmt"
	"os"
	"time"
	_ "time/tzdata"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

type Config struct {
	Server       ServerConfig        `yaml:"server"`
	Database     DatabaseConfig      `yaml:"database"`
	Mendix       MendixConfig        `yaml:"mendix"`
	Applications []ApplicationConfig `yaml:"applications"`
	Display      DisplayConfig       `yaml:"display"`
	Logging      LoggingConfig       `yaml:"logging"`
}

type ServerConfig struct {
	Port    int      `yaml:"port"`
	APIKeys []APIKey `yaml:"api_keys"`
}

type APIKey struct {
	Name string `yaml:"name"`
	Key  string `yaml:"key"`
}

type DatabaseConfig struct {
	Path string `yaml:"path"`
}

// MendixConfig seeds the stored API configuration on first start. Once an operator
// saves a configuration through the API, the stored one wins.
type MendixConfig struct {
	BaseURL string `yaml:"base_url"`
	Token   string `yaml:"token"`
}

// ApplicationConfig seeds the application registry on first start
type ApplicationConfig struct {
	Name  string `yaml:"name"`
	AppID string `yaml:"app_id"`
}

type DisplayConfig struct {
	Locale   string `yaml:"locale"`   // BCP 47 tag, e.g. "en", "pt-BR"
	Timezone string `yaml:"timezone"` // IANA name, e.g. "America/Sao_Paulo"
}

type LoggingConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
}

// Load reads the YAML config at path. A .env file in the working directory, if any, is
// loaded first so its variables can be referenced as ${VAR} in the config.
func Load(path string) (*Config, error) {
	if err := godotenv.Load(); err != nil {
		var pathErr *os.PathError
		if !errors.As(err, &pathErr) {
			return nil, fmt.Errorf("failed to load .env: %w", err)
		}
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	// Expand environment variables
	dataStr := os.ExpandEnv(string(data))

	var cfg Config
	if err := yaml.Unmarshal([]byte(dataStr), &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	// Set defaults
	if cfg.Server.Port == 0 {
		cfg.Server.Port = 8080
	}
	if cfg.Database.Path == "" {
		cfg.Database.Path = "/data/package-browser.db"
	}
	if cfg.Display.Locale == "" {
		cfg.Display.Locale = "en"
	}
	if cfg.Display.Timezone == "" {
		cfg.Display.Timezone = "UTC"
	}
	if cfg.Logging.Level == "" {
		cfg.Logging.Level = "info"
	}
	if cfg.Logging.Format == "" {
		cfg.Logging.Format = "json"
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// Validate checks settings that cannot be defaulted
func (c *Config) Validate() error {
	if len(c.Server.APIKeys) == 0 {
		return fmt.Errorf("at least one server.api_keys entry is required")
	}
	for i, ak := range c.Server.APIKeys {
		if ak.Key == "" {
			return fmt.Errorf("server.api_keys[%d] has an empty key", i)
		}
	}
	for i, app := range c.Applications {
		if app.Name == "" || app.AppID == "" {
			return fmt.Errorf("applications[%d] requires name and app_id", i)
		}
	}
	if _, err := time.LoadLocation(c.Display.Timezone); err != nil {
		return fmt.Errorf("invalid display.timezone %q: %w", c.Display.Timezone, err)
	}
	return nil
}

// Location returns the configured display time zone, UTC if it cannot be loaded
func (c *Config) Location() *time.Location {
	loc, err := time.LoadLocation(c.Display.Timezone)
	if err != nil {
		return time.UTC
	}
	return loc
}

func (c *Config) ValidateAPIKey(key string) bool {
	for _, ak := range c.Server.APIKeys {
		if ak.Key == key {
			return true
		}
	}
	return false
}
