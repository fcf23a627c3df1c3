package app

import (
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	Issuer         string // Issuer claim for bearer tokens
	TokenSecret    string // Required: shared HS256 secret
	TokenTTL       time.Duration // Bearer token lifetime (default: 24h)
	BootstrapToken string // Optional: required header value for /create-superadmin

	OTPTTL time.Duration // OTP challenge lifetime (default: 2m)

	SMTPHost     string // Optional: empty disables real mail and logs codes instead
	SMTPPort     string
	SMTPUsername string
	SMTPPassword string
	SMTPFrom     string

	DatabaseFile         string        // Path to SQLite database file (default: ./iam.db)
	PepperFile           string        // Path to password pepper file (default: ./pepper)
	Env                  string        // Environment (dev, staging, prod) (default: dev)
	LogLevel             string        // Log level (debug, info, warn, error) (default: info)
	LogFormat            string        // Log format (json, text) (default: json)
	Port                 int           // HTTP server port (default: 8080)
	ShutdownGracePeriod  time.Duration // Graceful shutdown timeout (default: 10s)
	HousekeepingInterval time.Duration // OTP sweep interval (default: 1m)
}

// LoadConfig reads configuration from the environment, after loading a .env
// file when one is present.
func LoadConfig() Config {
	_ = godotenv.Load()

	cfg := Config{
		Issuer:         getEnvOrDefault("IAM_ISSUER", "cobaltgate-iam"),
		TokenSecret:    os.Getenv("IAM_TOKEN_SECRET"),
		TokenTTL:       getEnvDurationOrDefault("IAM_TOKEN_TTL", 24*time.Hour),
		BootstrapToken: os.Getenv("IAM_BOOTSTRAP_TOKEN"),

		OTPTTL: getEnvDurationOrDefault("IAM_OTP_TTL", 2*time.Minute),

		SMTPHost:     os.Getenv("IAM_SMTP_HOST"),
		SMTPPort:     getEnvOrDefault("IAM_SMTP_PORT", "465"),
		SMTPUsername: os.Getenv("IAM_SMTP_USERNAME"),
		SMTPPassword: os.Getenv("IAM_SMTP_PASSWORD"),
		SMTPFrom:     os.Getenv("IAM_SMTP_FROM"),

		DatabaseFile:         getEnvOrDefault("IAM_DATABASE_FILE", "iam.db"),
		PepperFile:           getEnvOrDefault("IAM_PEPPER_FILE", "pepper"),
		Env:                  getEnvOrDefault("ENV", "dev"),
		LogLevel:             getEnvOrDefault("LOG_LEVEL", "info"),
		LogFormat:            getEnvOrDefault("LOG_FORMAT", "json"),
		Port:                 getEnvIntOrDefault("PORT", 8080),
		ShutdownGracePeriod:  getEnvDurationOrDefault("SHUTDOWN_GRACE_PERIOD", 10*time.Second),
		HousekeepingInterval: getEnvDurationOrDefault("HOUSEKEEPING_INTERVAL", 1*time.Minute),
	}

	return cfg
}

func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvIntOrDefault(key string, defaultValue int) int {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}

	if intValue, err := strconv.Atoi(value); err == nil {
		return intValue
	}

	return defaultValue
}

func getEnvDurationOrDefault(key string, defaultValue time.Duration) time.Duration {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}

	if duration, err := time.ParseDuration(value); err == nil {
		return duration
	}

	return defaultValue
}
