package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// Config is the full server configuration tree, loadable from yaml.
// Balance falls back to the difficulty preset when absent from the
// file.
type Config struct {
	Server     ServerConfig `yaml:"server" json:"server"`
	Data       DataConfig   `yaml:"data" json:"data"`
	Sim        SimConfig    `yaml:"sim" json:"sim"`
	Difficulty string       `yaml:"difficulty" json:"difficulty"`
	Balance    *Balance     `yaml:"balance" json:"balance,omitempty"`
}

type ServerConfig struct {
	Addr string `yaml:"addr" json:"addr"`
}

type DataConfig struct {
	Path string `yaml:"path" json:"path"`
}

type SimConfig struct {
	TickMillis      int `yaml:"tick_millis" json:"tick_millis"`
	AutoSaveSeconds int `yaml:"auto_save_seconds" json:"auto_save_seconds"`
}

// DefaultConfig returns the configuration used when no file exists.
func DefaultConfig() *Config {
	return &Config{
		Server: ServerConfig{Addr: ":8080"},
		Data:   DataConfig{Path: "data/idlepark.db"},
		Sim: SimConfig{
			TickMillis:      100,
			AutoSaveSeconds: 30,
		},
	}
}

// Load reads the yaml config at path. A missing file is not an error:
// defaults (plus env overrides for balance) apply.
func Load(path string) (*Config, error) {
	cfg := DefaultConfig()

	b, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg.normalize(), nil
		}
		return nil, fmt.Errorf("read config %s: %w", path, err)
	}

	if err := yaml.Unmarshal(b, cfg); err != nil {
		return nil, fmt.Errorf("parse config %s: %w", path, err)
	}
	return cfg.normalize(), nil
}

func (c *Config) normalize() *Config {
	if c.Server.Addr == "" {
		c.Server.Addr = ":8080"
	}
	if c.Data.Path == "" {
		c.Data.Path = "data/idlepark.db"
	}
	if c.Sim.TickMillis <= 0 {
		c.Sim.TickMillis = 100
	}
	if c.Sim.AutoSaveSeconds <= 0 {
		c.Sim.AutoSaveSeconds = 30
	}
	return c
}

// EffectiveBalance resolves the balance to run with: explicit yaml
// balance wins, then the named difficulty preset, then env overrides.
func (c *Config) EffectiveBalance() Balance {
	if c.Balance != nil {
		return *c.Balance
	}
	switch c.Difficulty {
	case "casual":
		return Casual()
	case "hard":
		return Hard()
	}
	return FromEnv()
}

func (c *Config) TickInterval() time.Duration {
	return time.Duration(c.Sim.TickMillis) * time.Millisecond
}

func (c *Config) AutoSaveInterval() time.Duration {
	return time.Duration(c.Sim.AutoSaveSeconds) * time.Second
}
