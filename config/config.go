package config

import (
	"log"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Config holds application configuration
type Config struct {
	Port   string
	JWTKey string

	BackendBaseURL string // Base URL of the commerce/LMS backend API
	UploadDir      string // Staging directory for payment slip uploads

	PaymentPollInterval time.Duration
	PaymentPollTimeout  time.Duration
	SessionTTL          time.Duration
}

// AppConfig is a global variable to access configuration
var AppConfig *Config

// LoadConfig initializes configuration from environment variables or defaults
func LoadConfig() {
	// Load .env file if it exists
	if err := godotenv.Load(); err != nil {
		log.Println("Warning: .env file not found. Using system environment variables.")
	}

	// Initialize AppConfig with values from environment variables
	AppConfig = &Config{
		Port:   getEnv("PORT", "3000"),
		JWTKey: getEnv("JWT_SECRET_KEY", "defaultSecret"),

		BackendBaseURL: getEnv("BACKEND_API_URL", "http://localhost:4000"),
		UploadDir:      getEnv("UPLOAD_DIR", "./uploads/slips"),

		PaymentPollInterval: time.Duration(getEnvInt("PAYMENT_POLL_INTERVAL_MS", 2500)) * time.Millisecond,
		PaymentPollTimeout:  time.Duration(getEnvInt("PAYMENT_POLL_TIMEOUT_MS", 60000)) * time.Millisecond,
		SessionTTL:          time.Duration(getEnvInt("SESSION_TTL_MIN", 45)) * time.Minute,
	}

	// Validate critical configuration
	if AppConfig.JWTKey == "defaultSecret" {
		log.Println("Warning: Using default JWT_SECRET_KEY. Update it in your environment.")
	}
	if AppConfig.BackendBaseURL == "http://localhost:4000" {
		log.Println("Warning: Using default BACKEND_API_URL. Update it in your environment.")
	}
}

// getEnv retrieves an environment variable or returns a default value
func getEnv(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}

// getEnvInt retrieves an environment variable as an integer or returns the default integer value
func getEnvInt(key string, defaultValue int) int {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	intValue, err := strconv.Atoi(value)
	if err != nil {
		log.Printf("Error converting environment variable %s to int: %v", key, err)
		return defaultValue
	}
	return intValue
}
