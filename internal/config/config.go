package config

import (
	"os"
	"path/filepath"

	"fjacquet/spendlog/internal/logging"

	"github.com/joho/godotenv"
)

// LoadEnv loads a .env file from the working directory or its parent into
// the process environment. Variables already set are not overridden. It
// returns the file loaded, or "" when none was found.
func LoadEnv(logger logging.Logger) string {
	if logger == nil {
		logger = logging.Discard()
	}
	for _, envFile := range []string{".env", filepath.Join("..", ".env")} {
		if _, err := os.Stat(envFile); err != nil {
			continue
		}
		if err := godotenv.Load(envFile); err != nil {
			logger.WithError(err).Warn("Error loading .env file", logging.F(logging.FieldFile, envFile))
			return ""
		}
		logger.Debug("Loaded environment variables", logging.F(logging.FieldFile, envFile))
		return envFile
	}
	return ""
}

// GetEnv retrieves an environment variable with a fallback value if not set
func GetEnv(key, fallback string) string {
	value, exists := os.LookupEnv(key)
	if !exists {
		return fallback
	}
	return value
}
