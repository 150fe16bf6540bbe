package config

import (
	"log"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Config holds application configuration values. DATABASE_URL, GEMINI_API_KEY
// and SENTRY_DSN are optional; leaving one unset disables that integration and
// the app degrades to local-only behavior for it.
type Config struct {
	AppPort      string
	DatabaseURL  string
	DataDir      string
	JWTSecret    string
	TokenExpires time.Duration
	GeminiAPIKey string
	GeminiModel  string
	AdminMobile  string
	MasterOTP    string
	SentryDSN    string
}

// Load reads environment variables and returns a populated Config.
func Load() *Config {
	_ = godotenv.Load()

	cfg := &Config{
		AppPort:      getEnv("APP_PORT", "8080"),
		DatabaseURL:  getEnv("DATABASE_URL", ""),
		DataDir:      getEnv("DATA_DIR", "./data"),
		JWTSecret:    getEnv("JWT_SECRET", "9c1f3a72d5b84e06a92c4f1d8e37b65a0d2c81f4b79e53a6c08d14e2f6a93b70"),
		TokenExpires: getEnvDuration("JWT_TTL_HOURS", 24) * time.Hour,
		GeminiAPIKey: getEnv("GEMINI_API_KEY", ""),
		GeminiModel:  getEnv("GEMINI_MODEL", "gemini-3-flash-preview"),
		AdminMobile:  getEnv("ADMIN_MOBILE", "0000000000"),
		MasterOTP:    getEnv("MASTER_OTP", "1234"),
		SentryDSN:    getEnv("SENTRY_DSN", ""),
	}

	if cfg.AppPort == "" {
		log.Fatal("APP_PORT must be set")
	}

	if cfg.JWTSecret == "" {
		log.Fatal("JWT_SECRET must be set")
	}

	return cfg
}

func getEnv(key, fallback string) string {
	if value, ok := os.LookupEnv(key); ok {
		return value
	}
	return fallback
}

func getEnvDuration(key string, fallback int) time.Duration {
	if value, ok := os.LookupEnv(key); ok {
		if parsed, err := strconv.Atoi(value); err == nil {
			return time.Duration(parsed)
		}
	}
	return time.Duration(fallback)
}
