package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/joho/godotenv"
	"go.uber.org/zap"
)

type Config struct {
	MongoURI        string
	MongoDatabase   string
	MongoCollection string
	Port            string
	StorageTimeout  time.Duration
	ShutdownTimeout time.Duration
	CORSOrigins     []string
	RateLimitRPS    float64
	RateLimitBurst  int
	DataDir         string
	APIURL          string
	LogLevel        string
	LogFormat       string
}

var (
	configInstance *Config
	once           sync.Once
)

// InitConfig loads .env (when present) into the process environment and builds
// the Config once per process.
func InitConfig(logger *zap.Logger) (*Config, error) {
	var initErr error

	once.Do(func() {
		if err := godotenv.Load(); err != nil {
			if os.IsNotExist(err) {
				logger.Debug("No .env file found; falling back to system environment variables")
			} else {
				initErr = fmt.Errorf("failed to load .env file: %w", err)
				logger.Error("Config file load error", zap.Error(err))
				return
			}
		} else {
			logger.Debug("Successfully loaded .env file")
		}

		cfg, err := Load(os.LookupEnv)
		if err != nil {
			initErr = err
			return
		}
		if os.Getenv("MONGO_URI") == "" {
			logger.Warn("MONGO_URI not set, using default", zap.String("default", cfg.MongoURI))
		}

		configInstance = cfg
	})

	if initErr != nil {
		return nil, initErr
	}
	if configInstance == nil {
		return nil, fmt.Errorf("configuration initialization failed unexpectedly")
	}

	return configInstance, nil
}

// Load builds a Config from lookupEnv (os.LookupEnv in production), applying
// defaults for unset values.
func Load(lookupEnv func(string) (string, bool)) (*Config, error) {
	getenv := func(key string) string {
		value, _ := lookupEnv(key)
		return value
	}

	cfg := &Config{
		MongoURI:        "mongodb://localhost:27017",
		MongoDatabase:   "TodoListCluster",
		MongoCollection: "tasks",
		Port:            "8080",
		StorageTimeout:  5 * time.Second,
		ShutdownTimeout: 5 * time.Second,
		CORSOrigins:     []string{"*"},
		APIURL:          "http://localhost:8080",
		LogLevel:        "info",
		LogFormat:       "console",
	}

	setString(getenv, "MONGO_URI", &cfg.MongoURI)
	setString(getenv, "MONGO_DATABASE", &cfg.MongoDatabase)
	setString(getenv, "MONGO_COLLECTION", &cfg.MongoCollection)
	setString(getenv, "PORT", &cfg.Port)
	setString(getenv, "DATA_DIR", &cfg.DataDir)
	setString(getenv, "TODO_API_URL", &cfg.APIURL)
	setString(getenv, "LOG_LEVEL", &cfg.LogLevel)
	setString(getenv, "LOG_FORMAT", &cfg.LogFormat)

	if err := setDuration(getenv, "STORAGE_TIMEOUT", &cfg.StorageTimeout); err != nil {
		return nil, err
	}
	if err := setDuration(getenv, "SHUTDOWN_TIMEOUT", &cfg.ShutdownTimeout); err != nil {
		return nil, err
	}

	// An explicitly empty CORS_ALLOW_ORIGINS disables CORS.
	if origins, ok := lookupEnv("CORS_ALLOW_ORIGINS"); ok {
		cfg.CORSOrigins = splitList(origins)
	}

	if rps := getenv("RATE_LIMIT_RPS"); rps != "" {
		value, err := strconv.ParseFloat(rps, 64)
		if err != nil || value < 0 {
			return nil, fmt.Errorf("parse RATE_LIMIT_RPS: invalid value %q", rps)
		}
		cfg.RateLimitRPS = value
	}
	if burst := getenv("RATE_LIMIT_BURST"); burst != "" {
		value, err := strconv.Atoi(burst)
		if err != nil || value < 0 {
			return nil, fmt.Errorf("parse RATE_LIMIT_BURST: invalid value %q", burst)
		}
		cfg.RateLimitBurst = value
	}

	if cfg.DataDir == "" {
		wd, err := os.Getwd()
		if err != nil {
			return nil, fmt.Errorf("resolve working directory: %w", err)
		}
		cfg.DataDir = wd
	}

	return cfg, nil
}

// Addr is the listen address for the HTTP server.
func (c *Config) Addr() string {
	return ":" + c.Port
}

func setString(getenv func(string) string, key string, dst *string) {
	if value := getenv(key); value != "" {
		*dst = value
	}
}

func setDuration(getenv func(string) string, key string, dst *time.Duration) error {
	value := getenv(key)
	if value == "" {
		return nil
	}
	dur, err := time.ParseDuration(value)
	if err != nil {
		return fmt.Errorf("parse %s: %w", key, err)
	}
	if dur <= 0 {
		return fmt.Errorf("parse %s: must be positive, got %s", key, value)
	}
	*dst = dur
	return nil
}

func splitList(value string) []string {
	var items []string
	for _, item := range strings.Split(value, ",") {
		if item = strings.TrimSpace(item); item != "" {
			items = append(items, item)
		}
	}
	return items
}
