// Package config loads the application configuration from the
// environment, with an optional .env file for local development.
package config

import (
	"os"

	"github.com/joho/godotenv"
)

// AppConfig holds every configuration knob the server reads.
type AppConfig struct {
	Port        string
	StoreDriver string // "mongo" or "memory"
	MongoURI    string
	MongoName   string
	JwtSecret   string
	RedisAddr   string // empty disables the product cache
	SendgridKey string // empty disables email
	EmailFrom   string
}

// Load reads the configuration. A missing .env file is not an error.
func Load() *AppConfig {
	_ = godotenv.Load()

	return &AppConfig{
		Port:        getEnv("PORT", "8000"),
		StoreDriver: getEnv("STORE_DRIVER", "mongo"),
		MongoURI:    getEnv("MONGODB_URI", "mongodb://localhost:27017"),
		MongoName:   getEnv("MONGODB_NAME", "nambikkai"),
		JwtSecret:   getEnv("JWT_SECRET", ""),
		RedisAddr:   getEnv("REDIS_ADDR", ""),
		SendgridKey: getEnv("SENDGRID_API_KEY", ""),
		EmailFrom:   getEnv("EMAIL_FROM", "orders@nambikkai.example"),
	}
}

func getEnv(key, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultValue
}
