// Package config provides Viper-based hierarchical configuration management
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/sirupsen/logrus"
	"github.com/spf13/viper"
)

// EnvPrefix prefixes every environment override (SPENDLOG_LOG_LEVEL, ...).
const EnvPrefix = "SPENDLOG"

// Storage backends.
const (
	BackendFile   = "file"
	BackendSQLite = "sqlite"
	BackendMemory = "memory"
)

// Config represents the complete application configuration
type Config struct {
	Log struct {
		Level  string `mapstructure:"level" yaml:"level"`
		Format string `mapstructure:"format" yaml:"format"`
	} `mapstructure:"log" yaml:"log"`

	Storage struct {
		Backend string `mapstructure:"backend" yaml:"backend"`
		Path    string `mapstructure:"path" yaml:"path"`
	} `mapstructure:"storage" yaml:"storage"`

	Search struct {
		Flags          string `mapstructure:"flags" yaml:"flags"`
		SettleDelayMS  int    `mapstructure:"settle_delay_ms" yaml:"settle_delay_ms"`
		MatchTimeoutMS int    `mapstructure:"match_timeout_ms" yaml:"match_timeout_ms"`
	} `mapstructure:"search" yaml:"search"`

	Export struct {
		Dir       string `mapstructure:"dir" yaml:"dir"`
		Delimiter string `mapstructure:"delimiter" yaml:"delimiter"`
	} `mapstructure:"export" yaml:"export"`
}

// InitializeConfig initializes Viper configuration with hierarchical loading
func InitializeConfig() (*Config, error) {
	return InitializeConfigFile("")
}

// InitializeConfigFile loads configuration like InitializeConfig, reading
// configFile instead of searching the standard locations when it is set.
func InitializeConfigFile(configFile string) (*Config, error) {
	v := viper.New()

	// 1. Set defaults
	setDefaults(v)

	// 2. Config file locations
	if configFile != "" {
		v.SetConfigFile(configFile)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath("$HOME/.spendlog")
		v.AddConfigPath(".spendlog")
		v.AddConfigPath(".")
	}

	// 3. Environment variables
	v.SetEnvPrefix(EnvPrefix)
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	// 4. Read config file (optional unless named explicitly)
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if configFile != "" {
			return nil, fmt.Errorf("error reading config file %s: %w", configFile, err)
		}
		if !errors.As(err, &notFound) {
			fmt.Fprintf(os.Stderr, "Warning: error reading config file %s: %v\n", v.ConfigFileUsed(), err)
		}
	}

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	// 5. Validate configuration
	if err := validateConfig(&config); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &config, nil
}

// Defaults returns the configuration used when no file or environment
// override is present.
func Defaults() *Config {
	v := viper.New()
	setDefaults(v)
	var config Config
	if err := v.Unmarshal(&config); err != nil {
		panic(fmt.Sprintf("config defaults do not decode: %v", err))
	}
	return &config
}

// setDefaults sets default configuration values
func setDefaults(v *viper.Viper) {
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "text")

	v.SetDefault("storage.backend", BackendFile)
	v.SetDefault("storage.path", "")

	v.SetDefault("search.flags", "i")
	v.SetDefault("search.settle_delay_ms", 300)
	v.SetDefault("search.match_timeout_ms", 250)

	v.SetDefault("export.dir", ".")
	v.SetDefault("export.delimiter", ",")
}

// validateConfig validates the configuration values
func validateConfig(config *Config) error {
	if _, err := logrus.ParseLevel(config.Log.Level); err != nil {
		return fmt.Errorf("invalid log level: %s", config.Log.Level)
	}

	if config.Log.Format != "text" && config.Log.Format != "json" {
		return fmt.Errorf("invalid log format: %s (must be 'text' or 'json')", config.Log.Format)
	}

	switch config.Storage.Backend {
	case BackendFile, BackendSQLite, BackendMemory:
	default:
		return fmt.Errorf("invalid storage backend: %s (must be 'file', 'sqlite' or 'memory')", config.Storage.Backend)
	}

	for _, f := range config.Search.Flags {
		if !strings.ContainsRune("imsug", f) {
			return fmt.Errorf("invalid search flag %q (allowed: i, m, s, u, g)", f)
		}
	}

	if config.Search.SettleDelayMS < 0 || config.Search.SettleDelayMS > 10000 {
		return fmt.Errorf("search.settle_delay_ms must be between 0 and 10000, got: %d", config.Search.SettleDelayMS)
	}

	if config.Search.MatchTimeoutMS < 1 || config.Search.MatchTimeoutMS > 60000 {
		return fmt.Errorf("search.match_timeout_ms must be between 1 and 60000, got: %d", config.Search.MatchTimeoutMS)
	}

	if utf8.RuneCountInString(config.Export.Delimiter) != 1 {
		return fmt.Errorf("export delimiter must be a single character, got: %s", config.Export.Delimiter)
	}

	return nil
}

// Validate re-checks the configuration, typically after command-line
// overrides were applied.
func (c *Config) Validate() error {
	return validateConfig(c)
}

// SettleDelay is the debounce delay of interactive search.
func (c *Config) SettleDelay() time.Duration {
	return time.Duration(c.Search.SettleDelayMS) * time.Millisecond
}

// MatchTimeout bounds a single pattern match.
func (c *Config) MatchTimeout() time.Duration {
	return time.Duration(c.Search.MatchTimeoutMS) * time.Millisecond
}

// DelimiterRune returns the CSV export delimiter.
func (c *Config) DelimiterRune() rune {
	r, _ := utf8.DecodeRuneInString(c.Export.Delimiter)
	return r
}

// StoragePath returns the configured storage path, or the backend's default
// location under $HOME/.spendlog when none is set.
func (c *Config) StoragePath() string {
	if c.Storage.Path != "" {
		return c.Storage.Path
	}
	base := ".spendlog"
	if home, err := os.UserHomeDir(); err == nil {
		base = filepath.Join(home, ".spendlog")
	}
	if c.Storage.Backend == BackendSQLite {
		return filepath.Join(base, "spendlog.db")
	}
	return filepath.Join(base, "data")
}

// ConfigureLoggingFromConfig configures logging based on the Config struct
func ConfigureLoggingFromConfig(config *Config) *logrus.Logger {
	logger := logrus.New()

	logLevel, err := logrus.ParseLevel(strings.ToLower(config.Log.Level))
	if err != nil {
		logger.Warnf("Invalid log level '%s', using 'info'", config.Log.Level)
		logLevel = logrus.InfoLevel
	}
	logger.SetLevel(logLevel)

	if strings.ToLower(config.Log.Format) == "json" {
		logger.SetFormatter(&logrus.JSONFormatter{})
	} else {
		logger.SetFormatter(&logrus.TextFormatter{
			FullTimestamp: true,
		})
	}

	return logger
}
