package infra

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

const (
	// DefaultUserAgent is a browser-like user agent string to avoid bot detection
	DefaultUserAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36"
)

// Config holds all application settings. Credential-like values are
// overridden from the environment after the file is loaded; they are
// never committed literally.
type Config struct {
	App struct {
		Name    string `yaml:"name"`
		Version string `yaml:"version"`
	} `yaml:"app"`

	API struct {
		Price struct {
			URL             string `yaml:"url"`
			APIKey          string `yaml:"api_key"`
			PollIntervalSec int    `yaml:"poll_interval_sec"`
		} `yaml:"price"`
	} `yaml:"api"`

	Studio struct {
		Width     int    `yaml:"width"`
		Height    int    `yaml:"height"`
		OutputDir string `yaml:"output_dir"`
	} `yaml:"studio"`

	Feed struct {
		PageSize int `yaml:"page_size"`
	} `yaml:"feed"`

	Storage struct {
		Path string `yaml:"path"` // empty = per-user default location
	} `yaml:"storage"`

	Logging struct {
		Level string `yaml:"level"`
	} `yaml:"logging"`
}

// LoadConfig reads and parses the configuration file.
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, err
	}

	overrideWithEnv(&cfg)

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &cfg, nil
}

// Validate checks configuration validity
func (c *Config) Validate() error {
	if c.API.Price.URL == "" || (!hasPrefix(c.API.Price.URL, "http://") && !hasPrefix(c.API.Price.URL, "https://")) {
		return fmt.Errorf("invalid price API URL: %s", c.API.Price.URL)
	}
	if c.API.Price.PollIntervalSec <= 0 {
		return fmt.Errorf("price poll interval must be positive")
	}

	if c.Studio.Width <= 0 || c.Studio.Height <= 0 {
		return fmt.Errorf("studio surface dimensions must be positive")
	}

	if c.Feed.PageSize <= 0 {
		return fmt.Errorf("feed page size must be positive")
	}

	return nil
}

func hasPrefix(s, prefix string) bool {
	return len(s) >= len(prefix) && s[0:len(prefix)] == prefix
}

// overrideWithEnv applies environment overrides for sensitive values.
func overrideWithEnv(cfg *Config) {
	if key := os.Getenv("ODINARY_PRICE_API_KEY"); key != "" {
		cfg.API.Price.APIKey = key
	}
	if path := os.Getenv("ODINARY_STORAGE_PATH"); path != "" {
		cfg.Storage.Path = path
	}
}
