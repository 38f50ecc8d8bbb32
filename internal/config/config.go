// Package config provides configuration management for the application.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/viper"
)

// Config holds all application configuration.
type Config struct {
	Store   StoreConfig   `mapstructure:"store"`
	Logging LoggingConfig `mapstructure:"logging"`
}

// StoreConfig selects and configures the persistence backend.
type StoreConfig struct {
	Backend      string `mapstructure:"backend"`   // "sqlite", "json"
	DBPath       string `mapstructure:"db_path"`   // sqlite backend
	DataFile     string `mapstructure:"data_file"` // json backend
	UniqueSymbol bool   `mapstructure:"unique_symbol"`
}

// LoggingConfig holds logging configuration.
type LoggingConfig struct {
	Level      string `mapstructure:"level"`
	Console    bool   `mapstructure:"console"`
	File       bool   `mapstructure:"file"`
	FilePath   string `mapstructure:"file_path"`
	MaxSize    int    `mapstructure:"max_size"` // megabytes
	MaxBackups int    `mapstructure:"max_backups"`
	MaxAge     int    `mapstructure:"max_age"` // days
}

// DefaultConfigDir returns the default configuration directory.
func DefaultConfigDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ".config/stock-manager"
	}
	return filepath.Join(home, ".config", "stock-manager")
}

// Default returns the configuration used when no config file exists.
func Default() *Config {
	dir := DefaultConfigDir()
	return &Config{
		Store: StoreConfig{
			Backend:      "sqlite",
			DBPath:       filepath.Join(dir, "stocks.db"),
			DataFile:     filepath.Join(dir, "stocks.json"),
			UniqueSymbol: true,
		},
		Logging: LoggingConfig{
			Level:      "info",
			Console:    true,
			File:       true,
			FilePath:   filepath.Join(dir, "logs", "stockman.log"),
			MaxSize:    20,
			MaxBackups: 3,
			MaxAge:     30,
		},
	}
}

// Load loads configuration from the specified directory. If configDir is
// empty, the default config directory is used. A missing config file is
// replaced with a generated template holding the defaults.
func Load(configDir string) (*Config, error) {
	if configDir == "" {
		configDir = DefaultConfigDir()
	}

	def := Default()

	v := viper.New()
	v.SetConfigName("config")
	v.SetConfigType("toml")
	v.AddConfigPath(configDir)

	v.SetDefault("store.backend", def.Store.Backend)
	v.SetDefault("store.db_path", def.Store.DBPath)
	v.SetDefault("store.data_file", def.Store.DataFile)
	v.SetDefault("store.unique_symbol", def.Store.UniqueSymbol)
	v.SetDefault("logging.level", def.Logging.Level)
	v.SetDefault("logging.console", def.Logging.Console)
	v.SetDefault("logging.file", def.Logging.File)
	v.SetDefault("logging.file_path", def.Logging.FilePath)
	v.SetDefault("logging.max_size", def.Logging.MaxSize)
	v.SetDefault("logging.max_backups", def.Logging.MaxBackups)
	v.SetDefault("logging.max_age", def.Logging.MaxAge)

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); ok {
			if werr := writeTemplate(configDir); werr != nil {
				return nil, fmt.Errorf("creating config template: %w", werr)
			}
		} else {
			return nil, fmt.Errorf("reading config.toml: %w", err)
		}
	}

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("parsing config.toml: %w", err)
	}

	applyEnvOverrides(cfg)

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("validating config: %w", err)
	}
	return cfg, nil
}

func applyEnvOverrides(cfg *Config) {
	if v := os.Getenv("STOCKMAN_BACKEND"); v != "" {
		cfg.Store.Backend = v
	}
	if v := os.Getenv("STOCKMAN_DB_PATH"); v != "" {
		cfg.Store.DBPath = v
	}
	if v := os.Getenv("STOCKMAN_DATA_FILE"); v != "" {
		cfg.Store.DataFile = v
	}
	if v := os.Getenv("STOCKMAN_LOG_LEVEL"); v != "" {
		cfg.Logging.Level = v
	}
}

// Validate validates the configuration.
func (c *Config) Validate() error {
	switch c.Store.Backend {
	case "sqlite":
		if c.Store.DBPath == "" {
			return fmt.Errorf("store.db_path is required for the sqlite backend")
		}
	case "json":
		if c.Store.DataFile == "" {
			return fmt.Errorf("store.data_file is required for the json backend")
		}
	default:
		return fmt.Errorf("invalid store backend: %s (must be 'sqlite' or 'json')", c.Store.Backend)
	}

	switch c.Logging.Level {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("invalid logging level: %s", c.Logging.Level)
	}
	return nil
}
