package config

import (
	"os"
	"path/filepath"
	"sync"

	"github.com/joho/godotenv"

	"amifi/txn-pipeline/internal/logging"
)

var once sync.Once

// LoadEnv loads environment variables from a .env file if one exists.
// Variables already present in the environment keep their values.
func LoadEnv() {
	once.Do(func() {
		log := logging.GetLogger()

		envFile := ".env"
		if _, err := os.Stat(envFile); os.IsNotExist(err) {
			envFile = filepath.Join("..", ".env")
			if _, err := os.Stat(envFile); os.IsNotExist(err) {
				log.Debug("No .env file found, using environment variables")
				return
			}
		}

		if err := godotenv.Load(envFile); err != nil {
			log.WithError(err).Warn("Error loading .env file")
			return
		}
		log.WithField("file", envFile).Info("Loaded environment variables")
	})
}

// GetEnv retrieves an environment variable with a fallback value if not
// set.
func GetEnv(key, fallback string) string {
	value, exists := os.LookupEnv(key)
	if !exists {
		return fallback
	}
	return value
}
