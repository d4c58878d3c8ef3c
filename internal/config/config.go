package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

type Config struct {
	DatabasePath string `yaml:"DatabasePath"`
	ReportDir    string `yaml:"ReportDir"`
	BackupDir    string `yaml:"BackupDir"`

	// ActiveEmployee is the employee commands act on when --employee is
	// not given.
	ActiveEmployee string `yaml:"ActiveEmployee"`
}

func Load() (*Config, error) {
	return loadFrom(getConfigPath())
}

func loadFrom(configPath string) (*Config, error) {
	data, err := os.ReadFile(configPath)
	if err != nil {
		if os.IsNotExist(err) {
			return getDefaultConfig(), nil
		}
		return nil, err
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, err
	}

	// Apply defaults for missing values
	defaults := getDefaultConfig()
	if cfg.DatabasePath == "" {
		cfg.DatabasePath = defaults.DatabasePath
	}
	if cfg.ReportDir == "" {
		cfg.ReportDir = defaults.ReportDir
	}
	if cfg.BackupDir == "" {
		cfg.BackupDir = defaults.BackupDir
	}

	cfg.DatabasePath = expandHome(cfg.DatabasePath)
	cfg.ReportDir = expandHome(cfg.ReportDir)
	cfg.BackupDir = expandHome(cfg.BackupDir)

	return &cfg, nil
}

func Save(cfg *Config) error {
	configPath := getConfigPath()
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(configPath, data, 0644)
}

func getConfigPath() string {
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".vykaz.yaml")
}

func getDefaultConfig() *Config {
	home, _ := os.UserHomeDir()
	return &Config{
		DatabasePath: filepath.Join(home, ".vykaz", "data.db"),
		ReportDir:    filepath.Join(home, ".vykaz", "reports"),
		BackupDir:    filepath.Join(home, ".vykaz", "backups"),
	}
}

func expandHome(path string) string {
	if strings.HasPrefix(path, "~/") {
		home, _ := os.UserHomeDir()
		return filepath.Join(home, path[2:])
	}
	return path
}

// ValidationError represents a configuration validation error
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("config validation error: %s - %s", e.Field, e.Message)
}

// Validate checks the configuration for common issues
func (c *Config) Validate() error {
	if c.DatabasePath == "" {
		return &ValidationError{Field: "DatabasePath", Message: "Database path is required"}
	}
	if c.ReportDir == "" {
		return &ValidationError{Field: "ReportDir", Message: "Report directory is required"}
	}
	if c.BackupDir == "" {
		return &ValidationError{Field: "BackupDir", Message: "Backup directory is required"}
	}
	return nil
}
