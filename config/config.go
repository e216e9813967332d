package config

import (
	"log"
	"os"
	"strconv"
)

type Config struct {
	Env         string
	Port        string
	DBURL       string
	EmailSender string

	JWTSecret        string
	JWTIssuer        string
	JWTAudience      string
	AccessExpiryMin  int
	RefreshExpiryMin int

	CodeTTLMin         int
	ResendIntervalSec  int
	CleanupIntervalMin int
	CleanupBatchSize   int

	LoginRateLimit          int
	LoginRateIntervalSec    int
	RegisterRateLimit       int
	RegisterRateIntervalSec int
	RefreshRateLimit        int
	RefreshRateIntervalSec  int
	DefaultRateLimit        int
	DefaultRateIntervalSec  int
}

func Load() *Config {
	return &Config{
		Env:         getEnv("ENV", "development"),
		Port:        getEnv("PORT", "8080"),
		DBURL:       mustGetEnv("DB_URL"),
		EmailSender: mustGetEnv("EMAIL_SENDER"),

		JWTSecret:        mustGetEnv("JWT_SECRET"),
		JWTIssuer:        getEnv("JWT_ISSUER", "schedule-auth"),
		JWTAudience:      getEnv("JWT_AUDIENCE", "schedule-university"),
		AccessExpiryMin:  getEnvAsInt("ACCESS_TOKEN_EXPIRY", 15),
		RefreshExpiryMin: getEnvAsInt("REFRESH_TOKEN_EXPIRY", 10080),

		CodeTTLMin:         getEnvAsInt("CONFIRMATION_CODE_TTL", 5),
		ResendIntervalSec:  getEnvAsInt("CONFIRMATION_RESEND_INTERVAL", 120),
		CleanupIntervalMin: getEnvAsInt("CONFIRMATION_CLEANUP_INTERVAL", 15),
		CleanupBatchSize:   getEnvAsInt("CONFIRMATION_CLEANUP_BATCH", 1000),

		LoginRateLimit:          getEnvAsInt("LOGIN_RATE_LIMIT", 3),
		LoginRateIntervalSec:    getEnvAsInt("LOGIN_RATE_INTERVAL", 100),
		RegisterRateLimit:       getEnvAsInt("REGISTER_RATE_LIMIT", 10),
		RegisterRateIntervalSec: getEnvAsInt("REGISTER_RATE_INTERVAL", 30),
		RefreshRateLimit:        getEnvAsInt("REFRESH_RATE_LIMIT", 10),
		RefreshRateIntervalSec:  getEnvAsInt("REFRESH_RATE_INTERVAL", 30),
		DefaultRateLimit:        getEnvAsInt("DEFAULT_RATE_LIMIT", 5),
		DefaultRateIntervalSec:  getEnvAsInt("DEFAULT_RATE_INTERVAL", 60),
	}
}

func getEnv(key string, defaultVal string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultVal
}

func mustGetEnv(key string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	log.Fatalf("Missing required environment variable: %s", key)
	return ""
}

func getEnvAsInt(key string, defaultVal int) int {
	valStr := os.Getenv(key)
	if valStr == "" {
		return defaultVal
	}
	val, err := strconv.Atoi(valStr)
	if err != nil {
		log.Printf("Invalid value for %s, using default %d", key, defaultVal)
		return defaultVal
	}
	return val
}
