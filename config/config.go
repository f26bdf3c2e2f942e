package config

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
)

// Config holds all application configuration
type Config struct {
	DatabaseURL        string   `validate:"required"`
	Port               string   `validate:"required,numeric"`
	GoEnv              string   `validate:"oneof=development test production"`
	Auth0Domain        string   `validate:"required_without=AuthDisabled"`
	Auth0Audience      string   `validate:"required_without=AuthDisabled"`
	AuthDisabled       bool
	AWSRegion          string
	AWSS3Bucket        string
	AWSAccessKeyID     string
	AWSSecretAccessKey string
	LogLevel           string   `validate:"oneof=debug info warn error"`
	CORSAllowedOrigins []string `validate:"min=1"`

	// LoadedFrom is the .env file the values came from, empty when only the
	// process environment was used
	LoadedFrom string
}

// Load loads the configuration from environment variables
// It automatically determines which .env file to load based on GO_ENV
func Load() (*Config, error) {
	env := os.Getenv("GO_ENV")
	if env == "" {
		env = "development"
	}

	// Try to load environment-specific file first, then .env. In production
	// variables are set directly so it's okay if neither exists.
	loadedFrom := ""
	envFile := fmt.Sprintf(".env.%s", env)
	if err := godotenv.Load(envFile); err == nil {
		loadedFrom = envFile
	} else if err := godotenv.Load(); err == nil {
		loadedFrom = ".env"
	}

	config := &Config{
		DatabaseURL:        getEnv("DATABASE_URL", ""),
		Port:               getEnv("PORT", "8080"),
		GoEnv:              getEnv("GO_ENV", "development"),
		Auth0Domain:        getEnv("AUTH0_DOMAIN", ""),
		Auth0Audience:      getEnv("AUTH0_AUDIENCE", ""),
		AuthDisabled:       getEnv("AUTH_DISABLED", "false") == "true",
		AWSRegion:          getEnv("AWS_REGION", "us-east-1"),
		AWSS3Bucket:        getEnv("AWS_S3_BUCKET", ""),
		AWSAccessKeyID:     getEnv("AWS_ACCESS_KEY_ID", ""),
		AWSSecretAccessKey: getEnv("AWS_SECRET_ACCESS_KEY", ""),
		LogLevel:           strings.ToLower(getEnv("LOG_LEVEL", "info")),
		CORSAllowedOrigins: splitList(getEnv("CORS_ALLOWED_ORIGINS", "*")),
		LoadedFrom:         loadedFrom,
	}

	// Validate required configuration
	if err := config.Validate(); err != nil {
		return nil, err
	}

	return config, nil
}

// Validate checks that all required configuration values are set
func (c *Config) Validate() error {
	if err := validator.New().Struct(c); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) && len(verrs) > 0 {
			return fmt.Errorf("invalid configuration: %s failed %q", envName(verrs[0].Field()), verrs[0].Tag())
		}
		return fmt.Errorf("invalid configuration: %w", err)
	}
	if c.AuthDisabled && c.IsProduction() {
		return fmt.Errorf("AUTH_DISABLED cannot be set in production")
	}
	return nil
}

// IsProduction returns true if the application is running in production mode
func (c *Config) IsProduction() bool {
	return c.GoEnv == "production"
}

// IsTest returns true if the application is running in test mode
func (c *Config) IsTest() bool {
	return c.GoEnv == "test"
}

// IsDevelopment returns true if the application is running in development mode
func (c *Config) IsDevelopment() bool {
	return c.GoEnv == "development"
}

// GetDatabaseURL returns the database URL
func (c *Config) GetDatabaseURL() string {
	return c.DatabaseURL
}

// S3Enabled reports whether product image storage is configured
func (c *Config) S3Enabled() bool {
	return c.AWSS3Bucket != ""
}

// getEnv retrieves an environment variable or returns a default value
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func splitList(value string) []string {
	var out []string
	for _, part := range strings.Split(value, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

var envNames = map[string]string{
	"DatabaseURL":        "DATABASE_URL",
	"Port":               "PORT",
	"GoEnv":              "GO_ENV",
	"Auth0Domain":        "AUTH0_DOMAIN",
	"Auth0Audience":      "AUTH0_AUDIENCE",
	"LogLevel":           "LOG_LEVEL",
	"CORSAllowedOrigins": "CORS_ALLOWED_ORIGINS",
}

func envName(field string) string {
	if name, ok := envNames[field]; ok {
		return name
	}
	return field
}
