// Package root contains the root command for the application
package root

import (
	"errors"

	"fjacquet/spendlog/internal/config"
	"fjacquet/spendlog/internal/container"
	"fjacquet/spendlog/internal/logging"

	"github.com/spf13/cobra"
)

// GlobalFlags holds the persistent flags every command accepts.
type GlobalFlags struct {
	ConfigFile  string
	LogLevel    string
	LogFormat   string
	Backend     string
	StoragePath string
}

var (
	// Log is the shared logger instance for commands
	Log = logging.NewLogrusAdapter("info", "text")

	// AppConfig is the configuration loaded for the running command.
	AppConfig *config.Config

	// AppContainer is the dependency container of the running command. Tests
	// may set it before executing a command; it is then used as is.
	AppContainer *container.Container

	// Flags are the persistent flag values.
	Flags = GlobalFlags{}

	// Cmd is the root command
	Cmd = &cobra.Command{
		Use:   "spendlog",
		Short: "A local spending ledger: record, search and summarise expenses.",
		Long: `spendlog records spending transactions in a local ledger, validates every
entry, and answers totals, per-category, daily and budget questions over it.
Snapshots can be exported to JSON or CSV and imported back.`,
		SilenceUsage:       true,
		SilenceErrors:      true,
		PersistentPreRunE:  setup,
		PersistentPostRunE: teardown,
	}
)

// ErrNotInitialized is returned when a command runs without a container.
var ErrNotInitialized = errors.New("application container not initialized")

// Init registers the persistent flags.
func Init() {
	pf := Cmd.PersistentFlags()
	pf.StringVar(&Flags.ConfigFile, "config", "", "Config file (default: $HOME/.spendlog/config.yaml)")
	pf.StringVar(&Flags.LogLevel, "log-level", "", "Log level (debug, info, warn, error)")
	pf.StringVar(&Flags.LogFormat, "log-format", "", "Log format (text, json)")
	pf.StringVar(&Flags.Backend, "backend", "", "Storage backend (file, sqlite, memory)")
	pf.StringVar(&Flags.StoragePath, "storage-path", "", "Storage directory (file) or database file (sqlite)")
}

func setup(cmd *cobra.Command, args []string) error {
	if AppContainer != nil {
		return nil
	}

	cfg, err := config.InitializeConfigFile(Flags.ConfigFile)
	if err != nil {
		return err
	}
	applyFlagOverrides(cfg)
	if err := cfg.Validate(); err != nil {
		return err
	}

	logger := config.ConfigureLoggingFromConfig(cfg)
	logger.SetOutput(cmd.ErrOrStderr())
	Log = logging.NewLogrusAdapterFromLogger(logger)
	c, err := container.NewContainer(cfg, container.WithLogger(Log))
	if err != nil {
		return err
	}
	AppConfig = cfg
	AppContainer = c
	return nil
}

func applyFlagOverrides(cfg *config.Config) {
	if Flags.LogLevel != "" {
		cfg.Log.Level = Flags.LogLevel
	}
	if Flags.LogFormat != "" {
		cfg.Log.Format = Flags.LogFormat
	}
	if Flags.Backend != "" {
		cfg.Storage.Backend = Flags.Backend
	}
	if Flags.StoragePath != "" {
		cfg.Storage.Path = Flags.StoragePath
	}
}

func teardown(cmd *cobra.Command, args []string) error {
	if AppContainer == nil {
		return nil
	}
	err := AppContainer.Close()
	AppContainer = nil
	return err
}

// GetContainer returns the container of the running command.
func GetContainer() (*container.Container, error) {
	if AppContainer == nil {
		return nil, ErrNotInitialized
	}
	return AppContainer, nil
}

// GetConfig returns the loaded configuration, or nil before setup.
func GetConfig() *config.Config {
	if AppContainer != nil {
		return AppContainer.GetConfig()
	}
	return AppConfig
}

// GetLogger returns the logger commands should use.
func GetLogger() logging.Logger {
	if AppContainer != nil {
		return AppContainer.GetLogger()
	}
	return Log
}
