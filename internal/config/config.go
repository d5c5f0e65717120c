// Package config provides environment configuration for the API server.
package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
)

// Config holds all configuration for the application.
type Config struct {
	// Environment
	Env string `validate:"required"`

	// Server settings
	ServerPort         string        `validate:"required,numeric"`
	ServerReadTimeout  time.Duration `validate:"gt=0"`
	ServerWriteTimeout time.Duration `validate:"gt=0"`
	CORSOrigins        []string

	// Storage
	DBPath string `validate:"required"`

	// FAQ document
	FAQPath         string `validate:"required"`
	FAQCacheEnabled bool

	// NATS settings
	NATSEnabled  bool
	NATSURL      string `validate:"required_if=NATSEnabled true"`
	NATSCAFile   string
	NATSCertFile string
	NATSKeyFile  string
	NATSToken    string

	// JWT settings
	JWTSecret string `validate:"required,min=8"`

	// Rate limiting
	RateLimitRequests int           `validate:"gte=0"`
	RateLimitWindow   time.Duration `validate:"required_with=RateLimitRequests"`

	// Validation
	MaxMessageLength int `validate:"gt=0"`

	// Logging
	LogLevel string

	// Tracing
	TracingEndpoint string `validate:"required_if=TracingEnabled true"`
	TracingEnabled  bool
}

// Load reads configuration from environment variables. A .env file in the
// working directory is applied first when present; variables already set
// in the environment take precedence.
func Load() *Config {
	_ = godotenv.Load()

	return &Config{
		Env: getEnv("ENV", "production"),

		// Server
		ServerPort:         getEnv("PORT", "8080"),
		ServerReadTimeout:  getDurationEnv("SERVER_READ_TIMEOUT", 30*time.Second),
		ServerWriteTimeout: getDurationEnv("SERVER_WRITE_TIMEOUT", 30*time.Second),
		CORSOrigins:        getListEnv("CORS_ALLOWED_ORIGINS", nil),

		// Storage
		DBPath: getEnv("DB_PATH", "storage/chatbot.db"),

		// FAQ
		FAQPath:         getEnv("FAQ_PATH", "storage/app/faq.json"),
		FAQCacheEnabled: getBoolEnv("FAQ_CACHE_ENABLED", true),

		// NATS
		NATSEnabled:  getBoolEnv("NATS_ENABLED", false),
		NATSURL:      getEnv("NATS_URL", "nats://localhost:4222"),
		NATSCAFile:   getEnv("NATS_CA_FILE", ""),
		NATSCertFile: getEnv("NATS_CERT_FILE", ""),
		NATSKeyFile:  getEnv("NATS_KEY_FILE", ""),
		NATSToken:    getEnv("NATS_TOKEN", ""),

		// JWT
		JWTSecret: getEnv("JWT_SECRET", "development-secret-change-in-production"),

		// Rate limiting
		RateLimitRequests: getIntEnv("RATE_LIMIT_REQUESTS", 60),
		RateLimitWindow:   getDurationEnv("RATE_LIMIT_WINDOW", time.Minute),

		MaxMessageLength: getIntEnv("MAX_MESSAGE_LENGTH", 4000),

		// Logging
		LogLevel: getEnv("LOG_LEVEL", "info"),

		// Tracing
		TracingEndpoint: getEnv("TRACING_ENDPOINT", "localhost:4318"),
		TracingEnabled:  getBoolEnv("TRACING_ENABLED", false),
	}
}

// Validate checks the loaded values for consistency.
func (c *Config) Validate() error {
	if err := validator.New().Struct(c); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}
	return nil
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getIntEnv(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if i, err := strconv.Atoi(value); err == nil {
			return i
		}
	}
	return defaultValue
}

func getBoolEnv(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if b, err := strconv.ParseBool(value); err == nil {
			return b
		}
	}
	return defaultValue
}

func getDurationEnv(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if d, err := time.ParseDuration(value); err == nil {
			return d
		}
	}
	return defaultValue
}

func getListEnv(key string, defaultValue []string) []string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	var out []string
	for _, part := range strings.Split(value, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
