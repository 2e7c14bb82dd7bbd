package config

import (
	"errors"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// Config holds optional defaults loaded from ~/.config/s3browse/config.yaml.
type Config struct {
	Endpoint       string `yaml:"endpoint"`
	UserAgent      string `yaml:"user_agent"`
	DefaultProfile string `yaml:"default_profile"`
}

// Load reads the config file. Returns zero-value Config if the file doesn't exist.
func Load() (*Config, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return &Config{}, nil
	}

	path := filepath.Join(home, ".config", "s3browse", "config.yaml")
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return &Config{}, nil
		}
		return nil, err
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Merge applies explicit overrides. Arguments take precedence over config defaults.
func (c *Config) Merge(endpoint, profile string) (string, string) {
	e := c.Endpoint
	if endpoint != "" {
		e = endpoint
	}
	p := c.DefaultProfile
	if profile != "" {
		p = profile
	}
	return e, p
}
