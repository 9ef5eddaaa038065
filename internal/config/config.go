package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

// Config holds all runtime configuration loaded from environment variables.
type Config struct {
	AppPort string
	AppEnv  string

	JWTSecret       string
	SessionTokenTTL time.Duration
	ResetTokenTTL   time.Duration
	CodeTTL         time.Duration

	AWSRegion        string
	AWSEndpointURL   string // empty in prod, set to LocalStack URL in dev
	AWSAccessKeyID   string
	AWSSecretKey     string
	DynamoUsersTable string

	// RedisAddr selects the shared verification-code store. When empty,
	// codes live in a process-local map (single-instance deployments only).
	RedisAddr     string
	RedisPassword string

	SMTPHost     string
	SMTPPort     string
	SMTPFrom     string
	SMTPUsername string
	SMTPPassword string

	AllowedOrigins []string
}

// Load reads all configuration from environment variables. It returns an
// error when the values violate the token-lifetime ordering: a reset
// authorization must always expire before a session token would.
func Load() (*Config, error) {
	cfg := &Config{
		AppPort: getEnv("APP_PORT", "3000"),
		AppEnv:  getEnv("APP_ENV", "development"),

		JWTSecret:       getEnv("JWT_SECRET", "shike_secret_key"),
		SessionTokenTTL: time.Duration(getEnvInt("SESSION_TOKEN_TTL_HOURS", 24)) * time.Hour,
		ResetTokenTTL:   time.Duration(getEnvInt("RESET_TOKEN_TTL_MINUTES", 30)) * time.Minute,
		CodeTTL:         time.Duration(getEnvInt("CODE_TTL_MINUTES", 15)) * time.Minute,

		AWSRegion:        getEnv("AWS_REGION", "us-east-1"),
		AWSEndpointURL:   getEnv("AWS_ENDPOINT_URL", ""),
		AWSAccessKeyID:   getEnv("AWS_ACCESS_KEY_ID", ""),
		AWSSecretKey:     getEnv("AWS_SECRET_ACCESS_KEY", ""),
		DynamoUsersTable: getEnv("DYNAMO_TABLE_USERS", "users"),

		RedisAddr:     getEnv("REDIS_ADDR", ""),
		RedisPassword: getEnv("REDIS_PASSWORD", ""),

		SMTPHost:     getEnv("SMTP_HOST", "localhost"),
		SMTPPort:     getEnv("SMTP_PORT", "1025"),
		SMTPFrom:     getEnv("SMTP_FROM", "noreply@shike.app"),
		SMTPUsername: getEnv("SMTP_USERNAME", ""),
		SMTPPassword: getEnv("SMTP_PASSWORD", ""),

		AllowedOrigins: strings.Split(getEnv("ALLOWED_ORIGINS", "*"), ","),
	}

	if cfg.ResetTokenTTL >= cfg.SessionTokenTTL {
		return nil, fmt.Errorf("reset token TTL (%s) must be shorter than session token TTL (%s)",
			cfg.ResetTokenTTL, cfg.SessionTokenTTL)
	}
	if cfg.CodeTTL <= 0 {
		return nil, fmt.Errorf("code TTL must be positive")
	}
	return cfg, nil
}

// Development reports whether the service runs with development conveniences
// enabled, such as echoing generated verification codes in responses.
func (c *Config) Development() bool {
	return c.AppEnv == "development"
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return fallback
}
