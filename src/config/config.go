package config

import (
	"fmt"
	"os"

	"chart-challenge/src/models"

	"github.com/kelseyhightower/envconfig"
	"gopkg.in/yaml.v3"
)

// -----------------------------------------------------------------------------

// Config wraps models.MConfig and provides business logic methods
type Config struct {
	*models.MConfig
}

// -----------------------------------------------------------------------------

// NewConfig creates a new Config instance from a YAML file, applies
// environment overrides (CHART_ prefix) and validates the result.
func NewConfig(configPath string) (*Config, error) {
	// 1. Read the YAML file content
	data, err := os.ReadFile(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file '%s': %w", configPath, err)
	}

	// 2. Unmarshal data into the models struct
	var modelConfig models.MConfig
	if err := yaml.Unmarshal(data, &modelConfig); err != nil {
		return nil, fmt.Errorf("failed to parse config from YAML: %w", err)
	}

	config := &Config{MConfig: &modelConfig}

	// 3. Environment overrides on top of the file
	if err := config.applyEnvOverrides(); err != nil {
		return nil, fmt.Errorf("failed to apply env overrides: %w", err)
	}

	// 4. Validate the loaded configuration
	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return config, nil
}

// -----------------------------------------------------------------------------

// applyEnvOverrides overlays CHART_* environment variables onto the file
// values. Only variables that are actually set replace anything.
func (c *Config) applyEnvOverrides() error {
	var env models.MEnvOverrides
	if err := envconfig.Process("chart", &env); err != nil {
		return err
	}

	if env.Host != "" {
		c.Host = env.Host
	}
	if env.Port != 0 {
		c.Port = env.Port
	}
	if env.LogLevel != "" {
		c.LogLevel = env.LogLevel
	}
	if env.DBType != "" {
		c.Storage.DBType = env.DBType
	}
	if env.DBPath != "" {
		c.Storage.DBPath = env.DBPath
	}
	if env.DBConnectionString != "" {
		c.Storage.DBConnectionString = env.DBConnectionString
	}
	return nil
}

// -----------------------------------------------------------------------------

// Validate performs basic configuration validation
func (c *Config) Validate() error {
	// Validate App configuration (Flattened)
	if c.Name == "" {
		return fmt.Errorf("application name cannot be empty")
	}

	// Validate Server configuration (Flattened)
	if c.Host == "" {
		return fmt.Errorf("server host cannot be empty")
	}
	if c.Port <= 1024 || c.Port > 65535 {
		return fmt.Errorf("invalid server port number: %d (must be between 1025 and 65535)", c.Port)
	}

	// Validate Storage configuration
	if c.Storage.DBType == "" {
		return fmt.Errorf("database type cannot be empty")
	}
	if c.Storage.DBType == "sqlite" && c.Storage.DBPath == "" {
		return fmt.Errorf("database path cannot be empty for sqlite")
	}
	if c.Storage.DBType == "postgres" && c.Storage.DBConnectionString == "" {
		return fmt.Errorf("connection string cannot be empty for postgres")
	}
	if c.Storage.RetentionDays <= 0 {
		return fmt.Errorf("outcome retention days must be greater than 0")
	}

	// Validate Generation defaults
	if c.Generation.DaysNeeded <= 0 {
		return fmt.Errorf("generation days_needed must be greater than 0")
	}
	if c.Generation.StartPrice <= 0 {
		return fmt.Errorf("generation start_price must be greater than 0")
	}
	if c.Generation.Volatility < 0 {
		return fmt.Errorf("generation volatility cannot be negative")
	}

	// Validate Game configuration
	if len(c.Game.Difficulties) == 0 {
		return fmt.Errorf("at least one difficulty must be configured")
	}
	for i, d := range c.Game.Difficulties {
		if d.Name == "" {
			return fmt.Errorf("difficulty %d must have a name", i)
		}
		if d.HiddenDays <= 0 || d.HiddenDays >= c.Generation.DaysNeeded {
			return fmt.Errorf("difficulty '%s' hidden_days must be in (0, %d)", d.Name, c.Generation.DaysNeeded)
		}
	}
	if c.Game.ChoiceCount < 2 {
		return fmt.Errorf("choice count must be at least 2")
	}
	if c.Game.DecoyBandPct <= 0 || c.Game.DecoyBandPct >= 100 {
		return fmt.Errorf("decoy band must be a percentage in (0, 100)")
	}
	if c.Game.MaxGenerationAttempts <= 0 {
		return fmt.Errorf("max generation attempts must be greater than 0")
	}
	if c.Game.RoundTTLMinutes <= 0 {
		return fmt.Errorf("round ttl must be greater than 0")
	}

	return nil
}

// -----------------------------------------------------------------------------

// Difficulty resolves a difficulty preset by name.
func (c *Config) Difficulty(name string) (models.MDifficultyConfig, bool) {
	for _, d := range c.Game.Difficulties {
		if d.Name == name {
			return d, true
		}
	}
	return models.MDifficultyConfig{}, false
}

// -----------------------------------------------------------------------------

// Save persists the current configuration to the specified YAML file path
func (c *Config) Save(configPath string) error {
	// 1. Marshal the struct to YAML
	data, err := yaml.Marshal(c.MConfig)
	if err != nil {
		return fmt.Errorf("failed to marshal config to YAML: %w", err)
	}

	// 2. Write to file (0644 permissions)
	if err := os.WriteFile(configPath, data, 0644); err != nil {
		return fmt.Errorf("failed to write config to file '%s': %w", configPath, err)
	}

	return nil
}
