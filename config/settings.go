// Package config provides the application configuration for the posting index
// service: which store backend to run on, where data lives, and how the HTTP
// server is exposed. Configuration loads from a YAML file with sensible
// defaults; command-line flags may override individual values.
package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Store backends selectable via Config.Store.Backend.
const (
	BackendMemory = "memory"
	BackendBolt   = "bolt"
	BackendRedis  = "redis"
)

// Config is the top-level application configuration.
type Config struct {
	Server ServerConfig `yaml:"server"`
	Store  StoreConfig  `yaml:"store"`
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Port string `yaml:"port"`
}

// StoreConfig selects and configures the key-value backend that posting lists
// persist into.
type StoreConfig struct {
	Backend string      `yaml:"backend"` // memory | bolt | redis
	DataDir string      `yaml:"dataDir"` // settings files and the bolt database live here
	Redis   RedisConfig `yaml:"redis"`
}

// RedisConfig holds Redis connection parameters, used when Backend is "redis".
type RedisConfig struct {
	Addr     string `yaml:"addr"`
	Password string `yaml:"password"`
	DB       int    `yaml:"db"`
}

// Default returns the configuration used when no config file is given: an
// in-memory store (reference behavior, nothing survives process exit) behind
// a server on port 8080.
func Default() Config {
	return Config{
		Server: ServerConfig{Port: "8080"},
		Store: StoreConfig{
			Backend: BackendMemory,
			DataDir: "./posting_data",
			Redis:   RedisConfig{Addr: "localhost:6379"},
		},
	}
}

// Load reads a YAML config file over the defaults and validates the result.
func Load(path string) (Config, error) {
	cfg := Default()
	data, err := os.ReadFile(path) // #nosec G304 -- path comes from the operator's --config flag
	if err != nil {
		return cfg, fmt.Errorf("failed to read config file %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("failed to parse config file %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// Validate checks that the configuration is runnable.
func (c Config) Validate() error {
	switch c.Store.Backend {
	case BackendMemory, BackendBolt, BackendRedis:
	default:
		return fmt.Errorf("unknown store backend '%s' (want %s, %s or %s)",
			c.Store.Backend, BackendMemory, BackendBolt, BackendRedis)
	}
	if c.Store.DataDir == "" {
		return fmt.Errorf("store dataDir cannot be empty")
	}
	if c.Store.Backend == BackendRedis && c.Store.Redis.Addr == "" {
		return fmt.Errorf("redis addr cannot be empty when backend is %s", BackendRedis)
	}
	if c.Server.Port == "" {
		return fmt.Errorf("server port cannot be empty")
	}
	return nil
}
