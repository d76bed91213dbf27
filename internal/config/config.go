package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"time"
)

// Store drivers
const (
	StoreDriverPostgres = "postgres"
	StoreDriverMongo    = "mongo"
)

type Config struct {
	Port        string
	Environment string
	CORSOrigins string
	TablePrefix string
	// Conversation store
	StoreDriver   string
	DatabaseURL   string
	MongoURI      string
	MongoDatabase string
	// Auth
	JWTSecret   string
	JWTTTL      time.Duration
	AuthJWKSURL string // Optional: accept tokens from an external identity provider
	// LLM Configuration
	OpenAIAPIKey    string
	AnthropicAPIKey string
	DefaultModel    string
	TitleModel      string
	// Session grouping
	Timezone string
	// Logging
	LogDir      string
	LogMaxFiles int
}

func Load() *Config {
	env := getEnv("ENVIRONMENT", "dev")
	defaultModel := getEnv("DEFAULT_MODEL", "gpt-4o")

	return &Config{
		Port:          getEnv("PORT", "8080"),
		Environment:   env,
		CORSOrigins:   getEnv("CORS_ORIGINS", "*"),
		TablePrefix:   getTablePrefix(env),
		StoreDriver:   getEnv("STORE_DRIVER", StoreDriverPostgres),
		DatabaseURL:   getEnv("DATABASE_URL", ""),
		MongoURI:      getEnv("MONGO_URI", "mongodb://localhost:27017"),
		MongoDatabase: getEnv("MONGO_DATABASE", "solace"),
		JWTSecret:     getEnv("JWT_SECRET", getDefaultSecret(env)),
		JWTTTL:        getDuration("JWT_TTL", 30*time.Minute),
		AuthJWKSURL:   getEnv("AUTH_JWKS_URL", ""),
		// LLM Configuration
		OpenAIAPIKey:    getEnv("OPENAI_API_KEY", ""),
		AnthropicAPIKey: getEnv("ANTHROPIC_API_KEY", ""),
		DefaultModel:    defaultModel,
		TitleModel:      getEnv("TITLE_MODEL", defaultModel),
		Timezone:        getEnv("TIMEZONE", "Local"),
		LogDir:          getEnv("LOG_DIR", ""),
		LogMaxFiles:     getInt("LOG_MAX_FILES", 10),
	}
}

// Validate fails fast on settings the server cannot start with
func (c *Config) Validate() error {
	switch c.StoreDriver {
	case StoreDriverPostgres:
		if c.DatabaseURL == "" {
			return errors.New("DATABASE_URL is required for the postgres store")
		}
	case StoreDriverMongo:
		if c.MongoURI == "" {
			return errors.New("MONGO_URI is required for the mongo store")
		}
	default:
		return fmt.Errorf("unknown STORE_DRIVER %q", c.StoreDriver)
	}

	if c.JWTSecret == "" {
		return errors.New("JWT_SECRET must be set outside dev/test")
	}
	if c.JWTTTL <= 0 {
		return errors.New("JWT_TTL must be positive")
	}

	if _, err := c.Location(); err != nil {
		return fmt.Errorf("invalid TIMEZONE: %w", err)
	}
	return nil
}

// Location returns the time zone used for calendar-day session grouping
func (c *Config) Location() (*time.Location, error) {
	if c.Timezone == "" || c.Timezone == "Local" {
		return time.Local, nil
	}
	return time.LoadLocation(c.Timezone)
}

// getDefaultSecret returns a fixed signing key for local development only
func getDefaultSecret(env string) string {
	if env == "dev" || env == "test" {
		return "dev-insecure-secret"
	}
	return ""
}

// getTablePrefix returns the table prefix based on environment
func getTablePrefix(env string) string {
	// Allow manual override via TABLE_PREFIX env var
	if prefix := os.Getenv("TABLE_PREFIX"); prefix != "" {
		return prefix
	}

	switch env {
	case "prod":
		return "prod_"
	case "test":
		return "test_"
	default:
		return "dev_"
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getInt(key string, defaultValue int) int {
	value, err := strconv.Atoi(os.Getenv(key))
	if err != nil {
		return defaultValue
	}
	return value
}

func getDuration(key string, defaultValue time.Duration) time.Duration {
	value, err := time.ParseDuration(os.Getenv(key))
	if err != nil {
		return defaultValue
	}
	return value
}
