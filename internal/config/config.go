package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
	"github.com/shopspring/decimal"
)

// Settings store backends
const (
	StoreFile     = "file"
	StoreMemory   = "memory"
	StorePostgres = "postgres"
	StoreRedis    = "redis"
	StoreS3       = "s3"
)

// Config holds all configuration for the application
type Config struct {
	// Server
	Port        string
	CORSOrigins []string
	Env         string
	LogLevel    string
	PublicURL   string

	// Settings persistence
	SettingsStore string
	SettingsFile  string
	DatabaseURL   string
	Redis         RedisConfig
	S3            S3Config

	// Planner
	PenaltyFreePercent decimal.Decimal

	// Rate limiting
	RateLimitPerMinute int
	RateLimitBurst     int
}

// RedisConfig holds Redis connection configuration
type RedisConfig struct {
	Addr     string
	Password string
	DB       int
}

// S3Config holds AWS S3 configuration
type S3Config struct {
	Region          string
	Bucket          string
	AccessKeyID     string
	SecretAccessKey string
	Endpoint        string // Optional: for MinIO/LocalStack local dev
}

// Load reads configuration from environment variables
func Load() (*Config, error) {
	// Load .env file if it exists (ignore error if not found)
	_ = godotenv.Load()

	penaltyFree, err := decimal.NewFromString(getEnv("PENALTY_FREE_PERCENT", "10"))
	if err != nil {
		return nil, fmt.Errorf("PENALTY_FREE_PERCENT must be a number: %w", err)
	}
	redisDB, err := getEnvInt("REDIS_DB", 0)
	if err != nil {
		return nil, err
	}
	rateLimit, err := getEnvInt("RATE_LIMIT_PER_MINUTE", 300)
	if err != nil {
		return nil, err
	}
	rateBurst, err := getEnvInt("RATE_LIMIT_BURST", 30)
	if err != nil {
		return nil, err
	}

	cfg := &Config{
		Port:          getEnv("PORT", "8080"),
		CORSOrigins:   strings.Split(getEnv("CORS_ORIGINS", "http://localhost:3000"), ","),
		Env:           getEnv("ENV", "development"),
		LogLevel:      getEnv("LOG_LEVEL", "info"),
		PublicURL:     getEnv("PUBLIC_URL", ""),
		SettingsStore: strings.ToLower(getEnv("SETTINGS_STORE", StoreFile)),
		SettingsFile:  getEnv("SETTINGS_FILE", "mortgage-settings.json"),
		DatabaseURL:   getEnv("DATABASE_URL", ""),
		Redis: RedisConfig{
			Addr:     getEnv("REDIS_ADDR", ""),
			Password: getEnv("REDIS_PASSWORD", ""),
			DB:       redisDB,
		},
		S3: S3Config{
			Region:          getEnv("S3_REGION", "us-east-1"),
			Bucket:          getEnv("S3_BUCKET", "mortgagefree-settings"),
			AccessKeyID:     getEnv("AWS_ACCESS_KEY_ID", ""),
			SecretAccessKey: getEnv("AWS_SECRET_ACCESS_KEY", ""),
			Endpoint:        getEnv("S3_ENDPOINT", ""), // Empty = use AWS, set for MinIO/LocalStack
		},
		PenaltyFreePercent: penaltyFree,
		RateLimitPerMinute: rateLimit,
		RateLimitBurst:     rateBurst,
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// IsProduction reports whether the service runs in production mode
func (c *Config) IsProduction() bool {
	return c.Env == "production"
}

func (c *Config) validate() error {
	switch c.SettingsStore {
	case StoreFile:
		if c.SettingsFile == "" {
			return fmt.Errorf("SETTINGS_FILE is required for the file store")
		}
	case StoreMemory:
	case StorePostgres:
		if c.DatabaseURL == "" {
			return fmt.Errorf("DATABASE_URL is required for the postgres store")
		}
	case StoreRedis:
		if c.Redis.Addr == "" {
			return fmt.Errorf("REDIS_ADDR is required for the redis store")
		}
	case StoreS3:
		if c.S3.Bucket == "" {
			return fmt.Errorf("S3_BUCKET is required for the s3 store")
		}
	default:
		return fmt.Errorf("SETTINGS_STORE %q is not one of file, memory, postgres, redis, s3", c.SettingsStore)
	}

	if c.PenaltyFreePercent.IsNegative() || c.PenaltyFreePercent.GreaterThan(decimal.NewFromInt(100)) {
		return fmt.Errorf("PENALTY_FREE_PERCENT must be between 0 and 100")
	}
	if c.RateLimitPerMinute <= 0 || c.RateLimitBurst <= 0 {
		return fmt.Errorf("RATE_LIMIT_PER_MINUTE and RATE_LIMIT_BURST must be positive")
	}
	return nil
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) (int, error) {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue, nil
	}
	n, err := strconv.Atoi(value)
	if err != nil {
		return 0, fmt.Errorf("%s must be an integer: %w", key, err)
	}
	return n, nil
}
