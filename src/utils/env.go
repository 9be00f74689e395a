package utils

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	log "github.com/sirupsen/logrus"
)

const envFilename = ".env"

// InitEnvironmentVariables loads the local .env file. Production deployments
// inject real environment variables instead, so a missing file is not fatal
// there.
func InitEnvironmentVariables() error {
	if os.Getenv("ENV") == "production" {
		log.Info("Running in production environment")
		return nil
	}

	if err := godotenv.Load(envFilename); err != nil {
		if os.IsNotExist(err) {
			log.Debugf("no %s file found, using process environment", envFilename)
			return nil
		}

		return fmt.Errorf("failed to load %s file: %v", envFilename, err)
	}

	return nil
}

func GetEnv(key string) (string, error) {
	value := os.Getenv(key)
	if value == "" {
		return "", fmt.Errorf("environment variable %s not set", key)
	}

	return value, nil
}
