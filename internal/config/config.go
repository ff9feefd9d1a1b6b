// Package config provides configuration management for ockit using Viper.
package config

import (
	"fmt"

	"github.com/spf13/viper"

	"github.com/the-perfect-developer/the-perfect-opencode-sub000/internal/paths"
)

// Config represents the top-level configuration structure.
type Config struct {
	// Source is the root of the configuration source tree to scan.
	Source string `mapstructure:"source" yaml:"source"`

	// Output is the catalog file path. When empty, the catalog command
	// derives catalog.<ext> from the format.
	Output string `mapstructure:"output" yaml:"output,omitempty"`

	// Format is the catalog serialization format: json, yaml, or toml.
	Format string `mapstructure:"format" yaml:"format"`

	// Recurse enables discovery of nested skill directories
	// (skills/<a>/<b>/SKILL.md listed as "a/b").
	Recurse bool `mapstructure:"recurse" yaml:"recurse"`

	// Exclude holds glob patterns (doublestar syntax) matched against
	// entry paths relative to their category root.
	Exclude []string `mapstructure:"exclude" yaml:"exclude,omitempty"`

	// Backup controls preservation of files overwritten by install.
	Backup BackupConfig `mapstructure:"backup" yaml:"backup"`
}

// BackupConfig controls the install backup behavior.
type BackupConfig struct {
	// Enabled toggles backups of overwritten files. Defaults to true.
	Enabled bool `mapstructure:"enabled" yaml:"enabled"`

	// Retention is the number of backup sets kept per target. Older sets
	// are pruned after each backup. Zero keeps everything.
	Retention int `mapstructure:"retention" yaml:"retention"`
}

// Init initializes Viper with default configuration.
// Call this once at application startup before accessing config values.
func Init() {
	// Config file settings
	viper.SetConfigName("config")
	viper.SetConfigType("yaml")

	// Search paths (in order of precedence)
	viper.AddConfigPath(".") // Current directory
	viper.AddConfigPath(paths.ConfigDir())

	// Environment variable support
	viper.SetEnvPrefix("OCKIT")
	viper.AutomaticEnv()

	// Defaults
	viper.SetDefault("source", ".")
	viper.SetDefault("output", "")
	viper.SetDefault("format", "json")
	viper.SetDefault("recurse", false)
	viper.SetDefault("exclude", []string{})
	viper.SetDefault("backup.enabled", true)
	viper.SetDefault("backup.retention", 10)
}

// Load reads the configuration file.
// If path is provided, it reads from that specific file.
// If path is empty, it searches in the default locations.
// Returns the loaded configuration or default values if no file is found (when path is empty).
func Load(path string) (*Config, error) {
	if path != "" {
		viper.SetConfigFile(path)
	}

	if err := viper.ReadInConfig(); err != nil {
		// If config file not found...
		if _, ok := err.(viper.ConfigFileNotFoundError); ok {
			// If user specified a path, this is an error
			if path != "" {
				return nil, fmt.Errorf("config file not found at %s: %w", path, err)
			}
			// Otherwise (implicit load), it's fine to use defaults
		} else {
			// Real read error (parsing, permissions, etc)
			return nil, fmt.Errorf("reading config file: %w", err)
		}
	}

	var cfg Config
	if err := viper.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshaling config: %w", err)
	}

	return &cfg, nil
}

// Default returns a configuration populated with the documented defaults.
// It does not consult Viper; use it for scaffolding a starter config file.
func Default() *Config {
	return &Config{
		Source:  ".",
		Format:  "json",
		Recurse: false,
		Backup: BackupConfig{
			Enabled:   true,
			Retention: 10,
		},
	}
}
