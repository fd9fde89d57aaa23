package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Config represents the top-level custodia.yaml configuration.
type Config struct {
	DataDir         string           `yaml:"data_dir"`
	DefaultCurrency string           `yaml:"default_currency"`
	MarketData      MarketDataConfig `yaml:"market_data"`
}

// MarketDataConfig identifies the quote provider.
type MarketDataConfig struct {
	Provider string `yaml:"provider"`
	APIKey   string `yaml:"api_key,omitempty"`
}

// Load reads a custodia.yaml file from disk.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config: %w", err)
	}
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	return &cfg, nil
}

// Save writes a Config to a YAML file.
func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("writing config: %w", err)
	}
	return nil
}

// Default returns a Config with sensible defaults for a new portfolio.
func Default() *Config {
	return &Config{
		DataDir:         "data",
		DefaultCurrency: "EUR",
		MarketData: MarketDataConfig{
			Provider: "eodhd",
		},
	}
}
