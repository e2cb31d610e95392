package config

import (
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config carries every runtime setting the server needs.
type Config struct {
	DBHost     string
	DBPort     string
	DBUser     string
	DBPassword string
	DBName     string
	DBSSLMode  string
	DBSchema   string

	RedisURL string
	CartTTL  time.Duration

	JWTSecret string

	ServerPort  string
	CORSOrigins []string

	// MessengerBaseURL is the chat deep-link base the checkout handoff targets,
	// e.g. https://m.me/oesterscafeandresto.
	MessengerBaseURL string
	CurrencySymbol   string
}

// Load reads .env (if present) and builds the configuration from the
// environment with development defaults.
func Load() *Config {
	godotenv.Load()

	return &Config{
		DBHost:     getEnv("DB_HOST", "localhost"),
		DBPort:     getEnv("DB_PORT", "5432"),
		DBUser:     getEnv("DB_USER", "oesters_user"),
		DBPassword: getEnv("DB_PASSWORD", "oesters_password"),
		DBName:     getEnv("DB_NAME", "oesters_storefront"),
		DBSSLMode:  getEnv("DB_SSLMODE", "disable"),
		DBSchema:   getEnv("DB_SCHEMA_PATH", ""),

		RedisURL: getEnv("REDIS_URL", "redis://localhost:6379"),
		CartTTL:  time.Duration(getEnvAsInt("CART_TTL_HOURS", 72)) * time.Hour,

		JWTSecret: getEnv("JWT_SECRET", "dev-only-oesters-jwt-secret"),

		ServerPort:  getEnv("PORT", "8080"),
		CORSOrigins: getEnvAsList("CORS_ALLOWED_ORIGINS", []string{"http://localhost:3000", "http://localhost:5173"}),

		MessengerBaseURL: getEnv("MESSENGER_BASE_URL", "https://m.me/oesterscafeandresto"),
		CurrencySymbol:   getEnv("CURRENCY_SYMBOL", "₱"),
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

func getEnvAsList(key string, defaultValue []string) []string {
	if value := os.Getenv(key); value != "" {
		parts := strings.Split(value, ",")
		for i := range parts {
			parts[i] = strings.TrimSpace(parts[i])
		}
		return parts
	}
	return defaultValue
}
