package config

import (
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"financial-twin/internal/simulation"
)

// Config is the on-disk configuration shape (YAML).
type Config struct {
	Server     ServerConfig     `yaml:"server"`
	Model      ModelConfig      `yaml:"model"`
	Database   DatabaseConfig   `yaml:"database"`
	Simulation SimulationConfig `yaml:"simulation"`
	Logging    LoggingConfig    `yaml:"logging"`
}

type ServerConfig struct {
	Port        string   `yaml:"port"`
	CORSOrigins []string `yaml:"cors_origins"`
}

type ModelConfig struct {
	// File is the path to the serialized risk model artifact.
	File string `yaml:"file"`
}

type DatabaseConfig struct {
	// DSN is the PostgreSQL connection string. Empty disables persistence
	// and the assessment history endpoint.
	DSN string `yaml:"dsn"`
}

// SimulationConfig overrides the engine defaults. Zero values mean
// "use the default". Note: a zero stress threshold is therefore not
// expressible from config; our deployments only use negative thresholds.
type SimulationConfig struct {
	NSimulations      int     `yaml:"n_simulations"`
	HorizonMonths     int     `yaml:"horizon_months"`
	StressThreshold   float64 `yaml:"stress_threshold"`
	ConsecutiveMonths int     `yaml:"consecutive_months"`
}

type LoggingConfig struct {
	Level string `yaml:"level"`
}

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		Server:   ServerConfig{Port: "8080"},
		Model:    ModelConfig{File: "models/loan_risk_model.yaml"},
		Database: DatabaseConfig{DSN: ""},
		Logging:  LoggingConfig{Level: "info"},
	}
}

// Load reads the YAML config at path, fills defaults, applies environment
// overrides, and validates. An empty path yields defaults + environment.
func Load(path string) (*Config, error) {
	c := Default()
	if path != "" {
		raw, err := os.ReadFile(path)
		if err != nil {
			return nil, err
		}
		if err := yaml.Unmarshal(raw, c); err != nil {
			return nil, fmt.Errorf("parse config %s: %w", path, err)
		}
	}
	c.applyEnv()
	if err := c.Validate(); err != nil {
		return nil, err
	}
	return c, nil
}

func (c *Config) applyEnv() {
	c.Server.Port = getEnv("PORT", c.Server.Port)
	c.Model.File = getEnv("MODEL_FILE", c.Model.File)
	c.Database.DSN = getEnv("DATABASE_DSN", c.Database.DSN)
	c.Logging.Level = getEnv("LOG_LEVEL", c.Logging.Level)
}

func (c *Config) Validate() error {
	if c == nil {
		return errors.New("config is nil")
	}
	if c.Server.Port == "" {
		return errors.New("server.port is required")
	}
	if c.Model.File == "" {
		return errors.New("model.file is required")
	}
	if c.Simulation.NSimulations < 0 {
		return errors.New("simulation.n_simulations must be >= 0")
	}
	if c.Simulation.HorizonMonths < 0 {
		return errors.New("simulation.horizon_months must be >= 0")
	}
	if c.Simulation.ConsecutiveMonths < 0 {
		return errors.New("simulation.consecutive_months must be >= 0")
	}
	return nil
}

// SimulationParams overlays the configured overrides onto the engine
// defaults.
func (c *Config) SimulationParams() simulation.Params {
	p := simulation.DefaultParams()
	if c.Simulation.NSimulations > 0 {
		p.NSimulations = c.Simulation.NSimulations
	}
	if c.Simulation.HorizonMonths > 0 {
		p.HorizonMonths = c.Simulation.HorizonMonths
	}
	if c.Simulation.StressThreshold != 0 {
		p.StressThreshold = c.Simulation.StressThreshold
	}
	if c.Simulation.ConsecutiveMonths > 0 {
		p.ConsecutiveMonths = c.Simulation.ConsecutiveMonths
	}
	return p
}

func getEnv(key, defaultVal string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultVal
}
