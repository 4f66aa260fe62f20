package config

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
)

// Service names understood by Load.
const (
	ServiceNews       = "news"
	ServiceNewsSource = "newssource"
)

// Store drivers.
const (
	DriverMongo  = "mongo"
	DriverRedis  = "redis"
	DriverFile   = "file"
	DriverMemory = "memory"
)

// Config holds all configuration for one service process
type Config struct {
	// Service identity
	Service    string `json:"service" validate:"oneof=news newssource"`
	Collection string `json:"collection" validate:"required"`

	// Server configuration
	Port            string        `json:"port" validate:"required,numeric"`
	Env             string        `json:"env"`
	ShutdownTimeout time.Duration `json:"shutdown_timeout" validate:"gt=0"`
	HTTPTimeout     time.Duration `json:"http_timeout" validate:"gt=0"`

	// Document store
	StoreDriver   string `json:"store_driver" validate:"oneof=mongo redis file memory"`
	MongoURI      string `json:"mongo_uri" validate:"required_if=StoreDriver mongo"`
	MongoDatabase string `json:"mongo_database" validate:"required_if=StoreDriver mongo"`
	RedisURL      string `json:"redis_url" validate:"required_if=StoreDriver redis"`
	RedisPrefix   string `json:"redis_prefix"`
	StoragePath   string `json:"storage_path" validate:"required_if=StoreDriver file"`

	// Logging
	LogLevel  string `json:"log_level"`
	LogFile   string `json:"log_file"`
	LogPretty bool   `json:"log_pretty"`

	// News Source service lookup (news service only)
	NewsSourceServiceURL string        `json:"newssource_service_url" validate:"omitempty,url"`
	NewsSourceTimeout    time.Duration `json:"newssource_timeout"`

	// CloudFlare R2 archive (news service only)
	R2Endpoint  string `json:"r2_endpoint" validate:"omitempty,url"`
	R2AccessKey string `json:"r2_access_key"`
	R2SecretKey string `json:"r2_secret_key"`
	R2Bucket    string `json:"r2_bucket"`
	R2Region    string `json:"r2_region"`
}

var defaultPorts = map[string]string{
	ServiceNews:       "8081",
	ServiceNewsSource: "8082",
}

// Load loads configuration for the given service from environment variables
// (and an optional .env file) and validates it.
func Load(service string) (*Config, error) {
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		log.Printf("Warning: Error loading .env file: %v", err)
	}

	env := getEnv("APP_ENV", "development")

	cfg := &Config{
		Service:    service,
		Collection: getEnv("COLLECTION", service),

		Port:            getEnv("PORT", defaultPorts[service]),
		Env:             env,
		ShutdownTimeout: getEnvAsDuration("SHUTDOWN_TIMEOUT", 10*time.Second),
		HTTPTimeout:     getEnvAsDuration("HTTP_TIMEOUT", 30*time.Second),

		StoreDriver:   strings.ToLower(getEnv("STORE_DRIVER", DriverMongo)),
		MongoURI:      getEnv("MONGO_URI", "mongodb://localhost:27017"),
		MongoDatabase: getEnv("MONGO_DATABASE", "newz"),
		RedisURL:      getEnv("REDIS_URL", "redis://localhost:6379/0"),
		RedisPrefix:   getEnv("REDIS_PREFIX", "newz:"),
		StoragePath:   getEnv("STORAGE_PATH", "./data"),

		LogLevel:  getEnv("LOG_LEVEL", "info"),
		LogFile:   getEnv("LOG_FILE", ""),
		LogPretty: getEnvAsBool("LOG_PRETTY", env == "development"),

		NewsSourceServiceURL: getEnv("NEWSSOURCE_SERVICE_URL", ""),
		NewsSourceTimeout:    getEnvAsDuration("NEWSSOURCE_TIMEOUT", 5*time.Second),

		R2Endpoint:  getEnv("R2_ENDPOINT", ""),
		R2AccessKey: getEnv("R2_ACCESS_KEY", ""),
		R2SecretKey: getEnv("R2_SECRET_ACCESS_KEY", ""),
		R2Bucket:    getEnv("R2_BUCKET", ""),
		R2Region:    getEnv("R2_REGION", "auto"),
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return cfg, nil
}

// Validate checks the struct tags on Config.
func (c *Config) Validate() error {
	return validator.New().Struct(c)
}

// ArchiveEnabled reports whether every R2 setting needed by the archiver is present.
func (c *Config) ArchiveEnabled() bool {
	return c.R2Endpoint != "" && c.R2Bucket != "" && c.R2AccessKey != "" && c.R2SecretKey != ""
}

// IsDevelopment reports whether APP_ENV is development.
func (c *Config) IsDevelopment() bool {
	return c.Env == "development"
}

// Helper functions for environment variable handling
func getEnv(key, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultValue
}

func getEnvAsBool(name string, defaultVal bool) bool {
	valueStr := getEnv(name, "")
	if valueStr == "" {
		return defaultVal
	}
	value, err := strconv.ParseBool(valueStr)
	if err != nil {
		log.Printf("Invalid %s value: %v, using default: %t", name, err, defaultVal)
		return defaultVal
	}
	return value
}

func getEnvAsDuration(name string, defaultVal time.Duration) time.Duration {
	valueStr := getEnv(name, "")
	if valueStr == "" {
		return defaultVal
	}
	value, err := time.ParseDuration(valueStr)
	if err != nil {
		log.Printf("Invalid %s value: %v, using default: %v", name, err, defaultVal)
		return defaultVal
	}
	return value
}
