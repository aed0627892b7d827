package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

type DatabaseConfig struct {
	Driver string // "sqlite" or "postgres"
	DSN    string
}

type Config struct {
	DataPath    string
	ModelPath   string
	HTTPPort    int
	DB          DatabaseConfig
	LogLevel    string
	LogFormat   string
	GinMode     string
	ServiceName string
}

// Load reads an optional .env file from the working directory and then the
// environment. Variables already set in the environment win over .env.
func Load() (Config, error) {
	return LoadFile(".env")
}

// LoadFile is Load with an explicit dotenv path. A missing file is not an error.
func LoadFile(path string) (Config, error) {
	if err := godotenv.Load(path); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return Config{}, fmt.Errorf("config: read %s: %w", path, err)
	}
	return Config{
		DataPath:  getEnv("CREDITRISK_DATA_PATH", "data/german_credit_data.csv"),
		ModelPath: getEnv("CREDITRISK_MODEL_PATH", "models/credit_risk.json"),
		HTTPPort:  getEnvInt("HTTP_PORT", 8080),
		DB: DatabaseConfig{
			Driver: getEnv("DB_DRIVER", "sqlite"),
			DSN:    getEnv("DB_DSN", "creditrisk.db"),
		},
		LogLevel:    getEnv("LOG_LEVEL", "info"),
		LogFormat:   getEnv("LOG_FORMAT", "text"),
		GinMode:     getEnv("GIN_MODE", "release"),
		ServiceName: "credit-risk",
	}, nil
}

func (c Config) HTTPAddr() string {
	return fmt.Sprintf(":%d", c.HTTPPort)
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if i, err := strconv.Atoi(v); err == nil {
			return i
		}
	}
	return fallback
}
