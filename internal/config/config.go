// Package config loads the server configuration from a YAML file, applying
// defaults and environment variable overrides.
package config

import (
	"fmt"
	"os"
	"strconv"

	"gopkg.in/yaml.v3"
)

// Config is the top-level server configuration.
type Config struct {
	Server    ServerConfig    `yaml:"server"`
	Storage   StorageConfig   `yaml:"storage"`
	RateLimit RateLimitConfig `yaml:"rate_limit"`
	CORS      CORSConfig      `yaml:"cors"`
	Docs      DocsConfig      `yaml:"docs"`
}

type ServerConfig struct {
	Port            int `yaml:"port"`
	ShutdownSeconds int `yaml:"shutdown_seconds"`
}

type StorageConfig struct {
	// File is the path of the JSON document holding all posts.
	File string `yaml:"file"`
}

type RateLimitConfig struct {
	// RequestsPerMinute is the sustained per-IP budget; Burst is the number
	// of requests an idle client may send at once.
	RequestsPerMinute float64 `yaml:"requests_per_minute"`
	Burst             int     `yaml:"burst"`
}

type CORSConfig struct {
	AllowOrigins []string `yaml:"allow_origins"`
}

type DocsConfig struct {
	Enabled  bool   `yaml:"enabled"`
	SpecFile string `yaml:"spec_file"`
}

// Load reads the configuration at path. A missing file yields the defaults;
// a malformed one is an error. Environment variables PORT and
// MASTERBLOG_DATA override the file.
func Load(path string) (*Config, error) {
	cfg := defaults()

	data, err := os.ReadFile(path)
	if err == nil {
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("invalid config file %s: %w", path, err)
		}
	} else if !os.IsNotExist(err) {
		return nil, fmt.Errorf("reading config file %s: %w", path, err)
	}

	applyEnvOverrides(cfg)

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return cfg, nil
}

func defaults() *Config {
	return &Config{
		Server: ServerConfig{
			Port:            5002,
			ShutdownSeconds: 5,
		},
		Storage: StorageConfig{
			File: "data/posts.json",
		},
		RateLimit: RateLimitConfig{
			RequestsPerMinute: 100,
			Burst:             20,
		},
		CORS: CORSConfig{
			AllowOrigins: []string{"*"},
		},
		Docs: DocsConfig{
			Enabled:  true,
			SpecFile: "docs/swagger.json",
		},
	}
}

func applyEnvOverrides(cfg *Config) {
	if port := os.Getenv("PORT"); port != "" {
		if p, err := strconv.Atoi(port); err == nil {
			cfg.Server.Port = p
		}
	}
	if file := os.Getenv("MASTERBLOG_DATA"); file != "" {
		cfg.Storage.File = file
	}
}

// Validate checks the configuration for values the server cannot run with.
func (c *Config) Validate() error {
	if c.Server.Port < 1 || c.Server.Port > 65535 {
		return fmt.Errorf("server.port must be between 1 and 65535, got %d", c.Server.Port)
	}
	if c.Server.ShutdownSeconds < 1 {
		return fmt.Errorf("server.shutdown_seconds must be positive, got %d", c.Server.ShutdownSeconds)
	}
	if c.Storage.File == "" {
		return fmt.Errorf("storage.file cannot be empty")
	}
	if c.RateLimit.RequestsPerMinute <= 0 {
		return fmt.Errorf("rate_limit.requests_per_minute must be positive, got %v", c.RateLimit.RequestsPerMinute)
	}
	if c.RateLimit.Burst < 1 {
		return fmt.Errorf("rate_limit.burst must be positive, got %d", c.RateLimit.Burst)
	}
	if len(c.CORS.AllowOrigins) == 0 {
		return fmt.Errorf("cors.allow_origins cannot be empty")
	}
	return nil
}
