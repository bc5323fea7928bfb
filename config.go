package coroutines

import (
	"fmt"
	"os"
	"runtime"

	"gopkg.in/yaml.v3"
)

// Config configures a Runtime and its executor. All fields are optional in
// the YAML file; zero values select the defaults.
type Config struct {
	// Name names the scheduler in stats and diagnostics.
	Name string `yaml:"name"`

	// Workers sizes the background executor. Defaults to GOMAXPROCS.
	Workers int `yaml:"workers"`

	// ProcessHz is the rate of the process tick channel. Defaults to 60.
	ProcessHz float64 `yaml:"process_hz"`

	// PhysicsHz is the rate of the physics tick channel. Defaults to 60.
	PhysicsHz float64 `yaml:"physics_hz"`

	// HistoryCapacity sizes the completion-history ring. Defaults to 100.
	HistoryCapacity int `yaml:"history_capacity"`
}

// DefaultConfig returns the default runtime configuration.
func DefaultConfig() Config {
	return Config{
		Name:            "coroutines",
		Workers:         runtime.GOMAXPROCS(0),
		ProcessHz:       60,
		PhysicsHz:       60,
		HistoryCapacity: 100,
	}
}

func (c Config) withDefaults() Config {
	defaults := DefaultConfig()
	if c.Name == "" {
		c.Name = defaults.Name
	}
	if c.Workers <= 0 {
		c.Workers = defaults.Workers
	}
	if c.ProcessHz <= 0 {
		c.ProcessHz = defaults.ProcessHz
	}
	if c.PhysicsHz <= 0 {
		c.PhysicsHz = defaults.PhysicsHz
	}
	if c.HistoryCapacity <= 0 {
		c.HistoryCapacity = defaults.HistoryCapacity
	}
	return c
}

// LoadConfig reads a YAML config file and fills unset fields with defaults.
func LoadConfig(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("read config: %w", err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("parse config %s: %w", path, err)
	}
	if cfg.Workers < 0 {
		return Config{}, fmt.Errorf("config %s: workers must not be negative", path)
	}
	if cfg.ProcessHz < 0 || cfg.PhysicsHz < 0 {
		return Config{}, fmt.Errorf("config %s: tick rates must not be negative", path)
	}

	return cfg.withDefaults(), nil
}
