package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"

	"github.com/jakechorley/bonuspool/pkg/core/allocation"
)

const configFileName = "bonuspool_config.yaml"

// Config represents the application configuration
type Config struct {
	// Allocation holds the computation settings, with documented defaults
	// applied before the file is read
	Allocation allocation.Config `yaml:"allocation"`

	// LogDir is where the JSON log files are written
	LogDir string `yaml:"logDir,omitempty"`
}

var validate *validator.Validate

func init() {
	validate = validator.New()
}

// Default returns the configuration used when no file is present.
func Default() *Config {
	return &Config{
		Allocation: allocation.DefaultConfig(),
		LogDir:     "logs",
	}
}

// Load loads and validates the configuration from bonuspool_config.yaml.
// It looks for the config file in the current directory first, then in the
// user's home directory; absence of a file yields the defaults.
func Load() (*Config, error) {
	configPath, err := findConfigFile()
	if err != nil {
		return nil, err
	}
	if configPath == "" {
		return Default(), nil
	}

	return LoadFromPath(configPath)
}

// LoadFromPath loads and validates the configuration from a specific path.
// File values are merged over the defaults.
func LoadFromPath(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	cfg := Default()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	if err := Validate(cfg); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Validate validates the configuration struct and the allocation semantics
// (weights summing to 100% within tolerance).
func Validate(cfg *Config) error {
	if err := validate.Struct(cfg); err != nil {
		return fmt.Errorf("config validation failed: %w", err)
	}

	if err := cfg.Allocation.Validate(); err != nil {
		return err
	}

	return nil
}

// findConfigFile searches for bonuspool_config.yaml in the current directory
// and the home directory. An empty path means no file was found.
func findConfigFile() (string, error) {
	if _, err := os.Stat(configFileName); err == nil {
		return configFileName, nil
	}

	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get home directory: %w", err)
	}

	homeConfigPath := filepath.Join(homeDir, configFileName)
	if _, err := os.Stat(homeConfigPath); err == nil {
		return homeConfigPath, nil
	}

	return "", nil
}
