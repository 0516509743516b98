package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

// Config holds all environment-driven settings for the service.
type Config struct {
	Server   ServerConfig
	Database DatabaseConfig
	JWT      JWTConfig
	Storage  StorageConfig
	Redis    RedisConfig
	NATS     NATSConfig
	Email    EmailConfig
	CORS     CORSConfig
	App      AppConfig
}

type ServerConfig struct {
	Port        string
	Environment string
}

type DatabaseConfig struct {
	Host     string
	Port     string
	User     string
	Password string
	Name     string
	SSLMode  string
}

// DSN builds the postgres connection string.
func (d DatabaseConfig) DSN() string {
	return fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		d.Host, d.Port, d.User, d.Password, d.Name, d.SSLMode)
}

type JWTConfig struct {
	Secret string
	Expiry time.Duration
}

type StorageConfig struct {
	Bucket         string
	Region         string
	AccessKey      string
	SecretKey      string
	Endpoint       string
	ForcePathStyle bool
	SignedURLTTL   time.Duration
}

type RedisConfig struct {
	Addr     string
	Password string
	DB       int
	Enabled  bool
}

type NATSConfig struct {
	URL     string
	Enabled bool
}

type EmailConfig struct {
	SMTPHost  string
	SMTPPort  string
	Username  string
	Password  string
	FromEmail string
	FromName  string
}

type CORSConfig struct {
	AllowedOrigins []string
}

type AppConfig struct {
	FrontendURL     string
	InviteTokenTTL  time.Duration
	MaxUploadSizeMB int64
}

// Load reads configuration from the environment, applying defaults
// suitable for local development.
func Load() *Config {
	return &Config{
		Server: ServerConfig{
			Port:        getEnvWithDefault("PORT", "8080"),
			Environment: getEnvWithDefault("ENVIRONMENT", "development"),
		},
		Database: DatabaseConfig{
			Host:     getEnvWithDefault("DB_HOST", "localhost"),
			Port:     getEnvWithDefault("DB_PORT", "5432"),
			User:     getEnvWithDefault("DB_USER", "postgres"),
			Password: getEnvWithDefault("DB_PASSWORD", "postgres"),
			Name:     getEnvWithDefault("DB_NAME", "infinitypower"),
			SSLMode:  getEnvWithDefault("DB_SSLMODE", "disable"),
		},
		JWT: JWTConfig{
			Secret: getEnvWithDefault("JWT_SECRET", "dev-secret-change-me"),
			Expiry: getEnvAsDurationWithDefault("JWT_EXPIRY", 7*24*time.Hour),
		},
		Storage: StorageConfig{
			Bucket:         getEnvWithDefault("STORAGE_BUCKET", "infinitypower-media"),
			Region:         getEnvWithDefault("STORAGE_REGION", "ap-south-1"),
			AccessKey:      os.Getenv("STORAGE_ACCESS_KEY"),
			SecretKey:      os.Getenv("STORAGE_SECRET_KEY"),
			Endpoint:       os.Getenv("STORAGE_ENDPOINT"),
			ForcePathStyle: getEnvAsBoolWithDefault("STORAGE_FORCE_PATH_STYLE", false),
			SignedURLTTL:   getEnvAsDurationWithDefault("STORAGE_SIGNED_URL_TTL", time.Hour),
		},
		Redis: RedisConfig{
			Addr:     getEnvWithDefault("REDIS_ADDR", "localhost:6379"),
			Password: os.Getenv("REDIS_PASSWORD"),
			DB:       getEnvAsIntWithDefault("REDIS_DB", 0),
			Enabled:  getEnvAsBoolWithDefault("REDIS_ENABLED", true),
		},
		NATS: NATSConfig{
			URL:     getEnvWithDefault("NATS_URL", "nats://localhost:4222"),
			Enabled: getEnvAsBoolWithDefault("NATS_ENABLED", true),
		},
		Email: EmailConfig{
			SMTPHost:  getEnvWithDefault("SMTP_HOST", "localhost"),
			SMTPPort:  getEnvWithDefault("SMTP_PORT", "587"),
			Username:  os.Getenv("SMTP_USERNAME"),
			Password:  os.Getenv("SMTP_PASSWORD"),
			FromEmail: getEnvWithDefault("FROM_EMAIL", "noreply@infinitypower.in"),
			FromName:  getEnvWithDefault("FROM_NAME", "InfinityPower"),
		},
		CORS: CORSConfig{
			AllowedOrigins: splitAndTrim(getEnvWithDefault("CORS_ALLOWED_ORIGINS", "http://localhost:3000")),
		},
		App: AppConfig{
			FrontendURL:     getEnvWithDefault("FRONTEND_URL", "http://localhost:3000"),
			InviteTokenTTL:  getEnvAsDurationWithDefault("INVITE_TOKEN_TTL", 72*time.Hour),
			MaxUploadSizeMB: int64(getEnvAsIntWithDefault("MAX_UPLOAD_SIZE_MB", 500)),
		},
	}
}

// IsProduction reports whether the service runs in release configuration.
func (c *Config) IsProduction() bool {
	return strings.EqualFold(c.Server.Environment, "production")
}

func getEnvWithDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsIntWithDefault(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if parsed, err := strconv.Atoi(value); err == nil {
			return parsed
		}
	}
	return defaultValue
}

func getEnvAsBoolWithDefault(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if parsed, err := strconv.ParseBool(value); err == nil {
			return parsed
		}
	}
	return defaultValue
}

func getEnvAsDurationWithDefault(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if parsed, err := time.ParseDuration(value); err == nil {
			return parsed
		}
	}
	return defaultValue
}

func splitAndTrim(s string) []string {
	parts := strings.Split(s, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if trimmed := strings.TrimSpace(p); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}
