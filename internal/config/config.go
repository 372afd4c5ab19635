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
	// Server
	Port string

	// Database
	DBHost     string
	DBPort     string
	DBUser     string
	DBPassword string
	DBName     string
	DBSSLMode  string

	// JWT
	JWTSecret        string
	JWTExpirationDur time.Duration

	// Platform
	MinimumTicket int64   // smallest investable amount, in whole currency units
	FeeRate       float64 // platform fee levied on every investment
	KYCPassRate   float64 // success probability of the document review gate

	// Analytics
	AnalyticsWorkers int           // bounded pool size for model stages
	StageTimeout     time.Duration // per-stage fitting deadline
}

var appConfig *Config

// Load loads configuration from environment variables
func Load() (*Config, error) {
	// Load .env file if not already loaded
	if err := godotenv.Load(); err != nil {
		log.Println("Warning: .env file not found")
	}

	// Get values from environment variables with defaults
	config := &Config{
		// Server
		Port: getEnv("PORT", "8080"),

		// Database
		DBHost:     getEnv("DB_HOST", "localhost"),
		DBPort:     getEnv("DB_PORT", "5432"),
		DBUser:     getEnv("DB_USER", "proptoken"),
		DBPassword: getEnv("DB_PASSWORD", "proptoken"),
		DBName:     getEnv("DB_NAME", "proptoken"),
		DBSSLMode:  getEnv("DB_SSLMODE", "disable"),

		// JWT
		JWTSecret: getEnv("JWT_SECRET", "fallback-secret-key-for-dev-only"),

		// Platform
		MinimumTicket: getEnvInt64("MIN_TICKET", 100000),
		FeeRate:       getEnvFloat("FEE_RATE", 0.02),
		KYCPassRate:   getEnvFloat("KYC_PASS_RATE", 0.90),

		// Analytics
		AnalyticsWorkers: int(getEnvInt64("ANALYTICS_WORKERS", 3)),
	}

	// Parse JWT expiration duration
	expStr := getEnv("JWT_EXPIRES_IN", "24h")
	expDur, err := time.ParseDuration(expStr)
	if err != nil {
		log.Printf("Warning: invalid JWT_EXPIRES_IN value '%s', falling back to 24h\n", expStr)
		expDur = 24 * time.Hour
	}
	config.JWTExpirationDur = expDur

	// Parse per-stage model fitting timeout
	stageStr := getEnv("STAGE_TIMEOUT", "30s")
	stageDur, err := time.ParseDuration(stageStr)
	if err != nil {
		log.Printf("Warning: invalid STAGE_TIMEOUT value '%s', falling back to 30s\n", stageStr)
		stageDur = 30 * time.Second
	}
	config.StageTimeout = stageDur

	appConfig = config
	return config, nil
}

// Get returns the application configuration
func Get() *Config {
	if appConfig == nil {
		var err error
		appConfig, err = Load()
		if err != nil {
			log.Fatalf("Failed to load configuration: %v", err)
		}
	}
	return appConfig
}

// getEnv retrieves an environment variable or returns a default value
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// getEnvInt64 retrieves an integer environment variable or returns a default value
func getEnvInt64(key string, defaultValue int64) int64 {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	parsed, err := strconv.ParseInt(value, 10, 64)
	if err != nil {
		log.Printf("Warning: invalid %s value '%s', falling back to %d\n", key, value, defaultValue)
		return defaultValue
	}
	return parsed
}

// getEnvFloat retrieves a float environment variable or returns a default value
func getEnvFloat(key string, defaultValue float64) float64 {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	parsed, err := strconv.ParseFloat(value, 64)
	if err != nil {
		log.Printf("Warning: invalid %s value '%s', falling back to %g\n", key, value, defaultValue)
		return defaultValue
	}
	return parsed
}
