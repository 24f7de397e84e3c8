package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Calculator holds all configuration for the skill calculator.
type Calculator struct {
	// Logging: debug, info, warn, error
	LogLevel string `yaml:"log_level"`

	// Optional skill table override; empty uses the embedded table.
	SkillsFile string `yaml:"skills_file"`

	// Random seed; 0 picks a fresh seed at startup.
	Seed uint64 `yaml:"seed"`

	Simulation SimulationConfig `yaml:"simulation"`

	// Resolution log
	RecordOutcomes bool           `yaml:"record_outcomes"`
	Database       DatabaseConfig `yaml:"database"`
}

// SimulationConfig controls the parallel trial runner.
type SimulationConfig struct {
	Trials  int `yaml:"trials"`
	Workers int `yaml:"workers"` // 0 = GOMAXPROCS
}

// DatabaseConfig holds PostgreSQL connection parameters.
type DatabaseConfig struct {
	Host     string `yaml:"host"`
	Port     int    `yaml:"port"`
	User     string `yaml:"user"`
	Password string `yaml:"password"`
	DBName   string `yaml:"dbname"`
	SSLMode  string `yaml:"sslmode"`
}

// DSN returns the PostgreSQL connection string.
func (d DatabaseConfig) DSN() string {
	return fmt.Sprintf(
		"postgres://%s:%s@%s:%d/%s?sslmode=%s",
		d.User, d.Password, d.Host, d.Port, d.DBName, d.SSLMode,
	)
}

// DefaultCalculator returns Calculator config with sensible defaults.
func DefaultCalculator() Calculator {
	return Calculator{
		LogLevel: "info",
		Simulation: SimulationConfig{
			Trials:  10000,
			Workers: 0,
		},
		RecordOutcomes: false,
		Database: DatabaseConfig{
			Host:     "127.0.0.1",
			Port:     5432,
			User:     "battleskill",
			Password: "battleskill",
			DBName:   "battleskill",
			SSLMode:  "disable",
		},
	}
}

// Validate checks values that have no safe fallback.
func (c Calculator) Validate() error {
	switch c.LogLevel {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("unknown log_level %q", c.LogLevel)
	}
	if c.Simulation.Trials < 0 {
		return fmt.Errorf("simulation.trials must be >= 0, got %d", c.Simulation.Trials)
	}
	if c.Simulation.Workers < 0 {
		return fmt.Errorf("simulation.workers must be >= 0, got %d", c.Simulation.Workers)
	}
	return nil
}

// LoadCalculator loads calculator config from a YAML file.
// If the file doesn't exist, returns defaults.
func LoadCalculator(path string) (Calculator, error) {
	cfg := DefaultCalculator()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return cfg, fmt.Errorf("reading config %s: %w", path, err)
	}

	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parsing config %s: %w", path, err)
	}

	if err := cfg.Validate(); err != nil {
		return cfg, fmt.Errorf("validating config %s: %w", path, err)
	}

	return cfg, nil
}
