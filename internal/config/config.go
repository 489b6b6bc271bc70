package config

import (
	"errors"
	"fmt"
	"os"
	"runtime"
	"strconv"
	"time"
)

// ErrMissingJWTSecret is returned when JWT_SECRET is not provided.
var ErrMissingJWTSecret = errors.New("JWT_SECRET must be set")

// Config holds application level configuration loaded from environment variables.
type Config struct {
	ServerPort  string
	DBDriver    string
	DBDSN       string
	RedisAddr   string
	RedisDB     int
	RedisPass   string
	SwaggerHost string
	LogLevel    string
	ResetDB     bool

	JWTSecret string
	JWTTTL    time.Duration

	Argon2MemoryKiB  uint32
	Argon2Iterations uint32
	Argon2Threads    uint8
	HashConcurrency  int64

	BookmarkCacheTTL time.Duration
}

// Load builds Config from environment with sensible defaults.
// The signing secret has no default.
func Load() (*Config, error) {
	cfg := &Config{
		ServerPort:       getEnv("SERVER_PORT", "8080"),
		DBDriver:         getEnv("DB_DRIVER", "mysql"),
		DBDSN:            getEnv("DB_DSN", getEnv("MYSQL_DSN", "user:password@tcp(localhost:3306)/app?charset=utf8mb4&parseTime=True&loc=Local")),
		RedisAddr:        getEnv("REDIS_ADDR", "localhost:6379"),
		RedisDB:          getEnvInt("REDIS_DB", 0),
		RedisPass:        os.Getenv("REDIS_PASSWORD"),
		SwaggerHost:      os.Getenv("SWAGGER_HOST"),
		LogLevel:         getEnv("LOG_LEVEL", "info"),
		ResetDB:          os.Getenv("RESET_DB") == "true",
		JWTSecret:        os.Getenv("JWT_SECRET"),
		JWTTTL:           getEnvDuration("JWT_TTL", 15*time.Minute),
		Argon2MemoryKiB:  uint32(getEnvInt("ARGON2_MEMORY_KIB", 64*1024)),
		Argon2Iterations: uint32(getEnvInt("ARGON2_ITERATIONS", 3)),
		Argon2Threads:    uint8(getEnvInt("ARGON2_THREADS", 2)),
		HashConcurrency:  int64(getEnvInt("HASH_CONCURRENCY", runtime.NumCPU())),
		BookmarkCacheTTL: getEnvDuration("BOOKMARK_CACHE_TTL", 5*time.Minute),
	}

	if cfg.JWTSecret == "" {
		return nil, ErrMissingJWTSecret
	}
	switch cfg.DBDriver {
	case "mysql", "postgres":
	default:
		return nil, fmt.Errorf("unsupported DB_DRIVER %q", cfg.DBDriver)
	}
	if cfg.JWTTTL <= 0 {
		return nil, fmt.Errorf("JWT_TTL must be positive, got %s", cfg.JWTTTL)
	}
	if cfg.HashConcurrency < 1 {
		cfg.HashConcurrency = 1
	}
	return cfg, nil
}

func getEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getEnvInt(key string, def int) int {
	if v := os.Getenv(key); v != "" {
		if parsed, err := strconv.Atoi(v); err == nil {
			return parsed
		}
	}
	return def
}

func getEnvDuration(key string, def time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if parsed, err := time.ParseDuration(v); err == nil {
			return parsed
		}
	}
	return def
}
