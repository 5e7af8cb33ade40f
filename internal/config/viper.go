package config

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"
)

// Config represents the complete application configuration.
type Config struct {
	Log struct {
		Level  string `mapstructure:"level" yaml:"level"`
		Format string `mapstructure:"format" yaml:"format"`
	} `mapstructure:"log" yaml:"log"`

	Data struct {
		Directory    string `mapstructure:"directory" yaml:"directory"`
		DatabaseFile string `mapstructure:"database_file" yaml:"database_file"`
		ProfileFile  string `mapstructure:"profile_file" yaml:"profile_file"`
	} `mapstructure:"data" yaml:"data"`

	Validation struct {
		// AmountCeiling is the maximum accepted entry amount. It is a
		// presentation-layer convention, not a domain invariant, which is
		// why it lives in configuration.
		AmountCeiling float64 `mapstructure:"amount_ceiling" yaml:"amount_ceiling"`
		NoteMaxLength int     `mapstructure:"note_max_length" yaml:"note_max_length"`
	} `mapstructure:"validation" yaml:"validation"`

	Report struct {
		CurrencySymbol string `mapstructure:"currency_symbol" yaml:"currency_symbol"`
		Title          string `mapstructure:"title" yaml:"title"`
	} `mapstructure:"report" yaml:"report"`

	Server struct {
		Addr string `mapstructure:"addr" yaml:"addr"`
	} `mapstructure:"server" yaml:"server"`
}

// DatabasePath returns the full path of the sqlite database file.
func (c *Config) DatabasePath() string {
	return filepath.Join(c.Data.Directory, c.Data.DatabaseFile)
}

// ProfilePath returns the full path of the user profile file.
func (c *Config) ProfilePath() string {
	return filepath.Join(c.Data.Directory, c.Data.ProfileFile)
}

// InitializeConfig initializes Viper configuration with hierarchical
// loading: defaults, then config file, then FINANZA_* environment variables.
func InitializeConfig() (*Config, error) {
	v := viper.New()

	setDefaults(v)

	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath("$HOME/.finanza")
	v.AddConfigPath(".finanza")
	v.AddConfigPath(".")

	v.SetEnvPrefix("FINANZA")
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			// Keep going with defaults and env vars.
			Logger.Warnf("error reading config file %s: %v", v.ConfigFileUsed(), err)
		}
	}

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := validateConfig(&config); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &config, nil
}

// setDefaults sets default configuration values.
func setDefaults(v *viper.Viper) {
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "text")

	v.SetDefault("data.directory", ".")
	v.SetDefault("data.database_file", "finanza.db")
	v.SetDefault("data.profile_file", "profile.yaml")

	v.SetDefault("validation.amount_ceiling", 1000000)
	v.SetDefault("validation.note_max_length", 30)

	v.SetDefault("report.currency_symbol", "₹")
	v.SetDefault("report.title", "FINANZA")

	v.SetDefault("server.addr", ":8085")
}

// validateConfig checks configuration values for consistency.
func validateConfig(c *Config) error {
	switch strings.ToLower(c.Log.Level) {
	case "debug", "info", "warn", "warning", "error":
	default:
		return fmt.Errorf("unsupported log level: %s", c.Log.Level)
	}

	if c.Log.Format != "text" && c.Log.Format != "json" {
		return fmt.Errorf("unsupported log format: %s", c.Log.Format)
	}

	if c.Validation.AmountCeiling <= 0 {
		return fmt.Errorf("amount ceiling must be positive, got %v", c.Validation.AmountCeiling)
	}

	if c.Validation.NoteMaxLength <= 0 {
		return fmt.Errorf("note max length must be positive, got %d", c.Validation.NoteMaxLength)
	}

	return nil
}
