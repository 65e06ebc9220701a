package config

import (
	"fmt"
	"log"
	"os"
	"sync"

	"github.com/caarlos0/env/v10"
	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

type Config struct {
	// BaseURL is the catalog instance the client writes to (login, book
	// creation). Lookups use it too unless SourceBaseURL differs.
	BaseURL       string `env:"OL_BASE_URL" envDefault:"https://openlibrary.org"`
	SourceBaseURL string `env:"OL_SOURCE_BASE_URL" envDefault:"https://openlibrary.org"`

	Username string `env:"OL_USERNAME"`
	Password string `env:"OL_PASSWORD"`

	LogLevel    string `env:"OL_LOG_LEVEL" envDefault:"info"`
	MaxAttempts int    `env:"OL_MAX_ATTEMPTS" envDefault:"5"`

	ImportDelayMS   int    `env:"OL_IMPORT_DELAY_MS" envDefault:"0"`
	ImportStatePath string `env:"OL_IMPORT_STATE_PATH" envDefault:".openshelf/state.json"`

	// ConfigFile points at an optional YAML file supplying base_url,
	// source_base_url, username and password for fields the environment
	// left unset.
	ConfigFile string `env:"OL_CONFIG_FILE"`
}

func (c *Config) Validate() error {
	if c.BaseURL == "" {
		return fmt.Errorf("OL_BASE_URL is required")
	}

	if c.MaxAttempts < 1 {
		return fmt.Errorf("OL_MAX_ATTEMPTS must be at least 1")
	}

	if c.ImportDelayMS < 0 {
		return fmt.Errorf("OL_IMPORT_DELAY_MS cannot be negative")
	}

	if c.Username != "" && c.Password == "" {
		return fmt.Errorf("OL_PASSWORD is required when OL_USERNAME is set")
	}

	return nil
}

// Load parses the environment and overlays the optional config file.
func Load() (*Config, error) {
	_ = godotenv.Load()
	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}
	if err := cfg.applyFile(); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}
	return cfg, nil
}

// applyFile fills unset fields from the YAML config file, when one exists.
func (c *Config) applyFile() error {
	path := c.ConfigFile
	if path == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil
		}
		path = home + "/.config/openshelf.yaml"
	}
	if _, err := os.Stat(path); err != nil {
		if c.ConfigFile != "" {
			return fmt.Errorf("config file %s: %w", path, err)
		}
		return nil
	}

	v := viper.New()
	v.SetConfigFile(path)
	if err := v.ReadInConfig(); err != nil {
		return fmt.Errorf("failed to read config file %s: %w", path, err)
	}

	if os.Getenv("OL_BASE_URL") == "" && v.GetString("base_url") != "" {
		c.BaseURL = v.GetString("base_url")
	}
	if os.Getenv("OL_SOURCE_BASE_URL") == "" && v.GetString("source_base_url") != "" {
		c.SourceBaseURL = v.GetString("source_base_url")
	}
	if c.Username == "" {
		c.Username = v.GetString("username")
	}
	if c.Password == "" {
		c.Password = v.GetString("password")
	}
	return nil
}

var (
	cfg  *Config
	once sync.Once
)

func GetConfig() *Config {
	once.Do(func() {
		var err error
		cfg, err = Load()
		if err != nil {
			log.Fatalf("%v", err)
		}
	})
	return cfg
}
