package config

import (
	"fmt"
	"os"
	"strconv"
)

// Config is the process configuration, populated from the environment.
type Config struct {
	DatabaseURL string
	Port        int
	Environment string

	RBAC  RBACConfig
	Redis RedisConfig
	Minio MinioConfig
}

// RBACConfig configures the access guard. DevDefaultRole is only honored
// outside production; in production no fallback exists and Load leaves it
// empty regardless of the environment variable.
type RBACConfig struct {
	DevDefaultRole string
	JWTSecret      string
}

// RedisConfig contains cache connection settings
type RedisConfig struct {
	Addr     string
	Password string
	DB       int
}

// MinioConfig contains object storage settings
type MinioConfig struct {
	Endpoint  string
	AccessKey string
	SecretKey string
	UseSSL    bool
	Bucket    string
}

// Load reads configuration from environment variables with development
// defaults for everything except the database URL.
func Load() (*Config, error) {
	cfg := &Config{
		DatabaseURL: os.Getenv("DATABASE_URL"),
		Environment: getEnv("APP_ENV", "development"),
		Port:        8080,
	}
	if cfg.DatabaseURL == "" {
		return nil, fmt.Errorf("DATABASE_URL environment variable is required")
	}

	if portStr := os.Getenv("PORT"); portStr != "" {
		port, err := strconv.Atoi(portStr)
		if err != nil {
			return nil, fmt.Errorf("invalid PORT %q: %w", portStr, err)
		}
		cfg.Port = port
	}

	cfg.RBAC = RBACConfig{
		JWTSecret: os.Getenv("RBAC_JWT_SECRET"),
	}
	if !cfg.IsProduction() {
		cfg.RBAC.DevDefaultRole = os.Getenv("RBAC_DEV_DEFAULT_ROLE")
	}

	redisDB := 0
	if dbStr := os.Getenv("REDIS_DB"); dbStr != "" {
		if db, err := strconv.Atoi(dbStr); err == nil {
			redisDB = db
		}
	}
	cfg.Redis = RedisConfig{
		Addr:     getEnv("REDIS_ADDR", "localhost:6379"),
		Password: os.Getenv("REDIS_PASSWORD"),
		DB:       redisDB,
	}

	cfg.Minio = MinioConfig{
		Endpoint:  getEnv("MINIO_ENDPOINT", "localhost:9000"),
		AccessKey: getEnv("MINIO_ACCESS_KEY", "minioadmin"),
		SecretKey: getEnv("MINIO_SECRET_KEY", "minioadmin"),
		UseSSL:    os.Getenv("MINIO_USE_SSL") == "true",
		Bucket:    getEnv("MINIO_BUCKET", "dinehub-assets"),
	}

	return cfg, nil
}

func (c *Config) IsProduction() bool {
	return c.Environment == "production"
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
