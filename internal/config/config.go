// Package config loads the lanes configuration file
// ($XDG_CONFIG_HOME/lanes/config.yaml) and applies defaults and environment
// overrides on top of it.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"gopkg.in/yaml.v3"

	"github.com/thenoetrevino/lanes/internal/models"
	"github.com/thenoetrevino/lanes/internal/types"
	"github.com/thenoetrevino/lanes/internal/user"
)

// Defaults for values the file leaves out
const (
	DefaultActivationDistance = 2
	DefaultWriteConcurrency   = 4
	DefaultDriver             = "sqlite"
)

// ErrInvalidConfig wraps every validation failure
var ErrInvalidConfig = errors.New("invalid config")

// Config represents the application configuration
type Config struct {
	Owner       string         `yaml:"owner"`
	Database    DatabaseConfig `yaml:"database"`
	Lanes       []string       `yaml:"lanes"`
	Board       BoardConfig    `yaml:"board"`
	Events      EventsConfig   `yaml:"events"`
	KeyMappings KeyMappings    `yaml:"key_mappings"`
	Theme       Theme          `yaml:"theme"`
}

type DatabaseConfig struct {
	Driver string `yaml:"driver"`
	DSN    string `yaml:"dsn"`
}

type BoardConfig struct {
	ActivationDistance float64 `yaml:"activation_distance"`
	ReadOnly           bool    `yaml:"read_only"`
	WriteConcurrency   int     `yaml:"write_concurrency"`
}

// EventsConfig selects the invalidation transport. A RedisURL takes
// precedence over the daemon socket.
type EventsConfig struct {
	Socket   string `yaml:"socket"`
	RedisURL string `yaml:"redis_url"`
	Disabled bool   `yaml:"disabled"`
}

// Default returns the configuration used when there is no file
func Default() *Config {
	cfg := &Config{}
	cfg.applyDefaults()
	return cfg
}

// Load reads the config file from the user's config directory. A missing
// file yields the defaults. Environment overrides are applied last.
func Load() (*Config, error) {
	path, err := Path()
	if err != nil {
		cfg := Default()
		cfg.applyEnv()
		return cfg, nil
	}
	return LoadFrom(path)
}

// LoadFrom reads the config at path
func LoadFrom(path string) (*Config, error) {
	var cfg Config

	data, err := os.ReadFile(path)
	switch {
	case errors.Is(err, os.ErrNotExist):
	case err != nil:
		return nil, fmt.Errorf("failed to read config: %w", err)
	default:
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return nil, fmt.Errorf("failed to parse %s: %w", path, err)
		}
	}

	cfg.applyDefaults()
	cfg.applyEnv()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Save writes the config to the user's config directory
func (c *Config) Save() error {
	path, err := Path()
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	data, err := yaml.Marshal(c)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o644)
}

// Path returns the config file location
func Path() (string, error) {
	if configHome := os.Getenv("XDG_CONFIG_HOME"); configHome != "" {
		return filepath.Join(configHome, "lanes", "config.yaml"), nil
	}
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(homeDir, ".config", "lanes", "config.yaml"), nil
}

// applyDefaults fills in missing configuration with defaults
func (c *Config) applyDefaults() {
	if c.Owner == "" {
		c.Owner = user.CurrentUsername()
	}
	if c.Database.Driver == "" {
		c.Database.Driver = DefaultDriver
	}
	if len(c.Lanes) == 0 {
		for _, l := range models.DefaultLanes() {
			c.Lanes = append(c.Lanes, string(l))
		}
	}
	if c.Board.ActivationDistance <= 0 {
		c.Board.ActivationDistance = DefaultActivationDistance
	}
	if c.Board.WriteConcurrency <= 0 {
		c.Board.WriteConcurrency = DefaultWriteConcurrency
	}
	if c.Events.Socket == "" {
		if home, err := os.UserHomeDir(); err == nil {
			c.Events.Socket = filepath.Join(home, ".lanes", "lanes.sock")
		}
	}
	c.KeyMappings.applyDefaults()
	c.Theme.ApplyDefaults()
}

// applyEnv lets LANES_* variables override the file
func (c *Config) applyEnv() {
	if v := os.Getenv("LANES_OWNER"); v != "" {
		c.Owner = v
	}
	if v := os.Getenv("LANES_DB_DRIVER"); v != "" {
		c.Database.Driver = v
	}
	if v := os.Getenv("LANES_DB_DSN"); v != "" {
		c.Database.DSN = v
	}
	if v := os.Getenv("LANES_REDIS_URL"); v != "" {
		c.Events.RedisURL = v
	}
	if v := os.Getenv("LANES_SOCKET"); v != "" {
		c.Events.Socket = v
	}
	if v := os.Getenv("LANES_READ_ONLY"); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			c.Board.ReadOnly = b
		}
	}
}

// Validate checks values that defaults cannot repair
func (c *Config) Validate() error {
	switch c.Database.Driver {
	case "sqlite", "postgres":
	default:
		return fmt.Errorf("%w: database.driver must be sqlite or postgres, got %q", ErrInvalidConfig, c.Database.Driver)
	}
	if c.Database.Driver == "postgres" && c.Database.DSN == "" {
		return fmt.Errorf("%w: database.dsn is required for postgres", ErrInvalidConfig)
	}
	seen := make(map[string]bool, len(c.Lanes))
	for _, l := range c.Lanes {
		if l == "" {
			return fmt.Errorf("%w: empty lane id", ErrInvalidConfig)
		}
		if seen[l] {
			return fmt.Errorf("%w: lane %q listed twice", ErrInvalidConfig, l)
		}
		seen[l] = true
	}
	return nil
}

// LaneSet returns the configured lanes in display order
func (c *Config) LaneSet() models.LaneSet {
	set := make(models.LaneSet, 0, len(c.Lanes))
	for _, l := range c.Lanes {
		set = append(set, types.LaneID(l))
	}
	return set
}

// OwnerID returns the configured owner
func (c *Config) OwnerID() types.OwnerID {
	return types.OwnerID(c.Owner)
}
