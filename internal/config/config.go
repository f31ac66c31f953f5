package config

import (
	"context"
	"errors"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	Env  string
	Port int

	DBURL string

	// JWTSecret signs every session token. It has no default: a process
	// without a secret must fail at startup, not at the first login.
	JWTSecret     string
	TokenTTLHours int

	// RedisAddr is optional; when empty the catalog cache stays in-process.
	RedisAddr     string
	RedisPassword string
	RedisDB       int

	CORSAllowedOrigins []string
	OTLPEndpoint       string

	MaxBodyBytes   int64
	CacheTTL       time.Duration
	SeedCatalog    bool
	AuthRateLimit  int
	AuthRateWindow time.Duration
}

var ErrMissingJWTSecret = errors.New("config: JWT_SECRET is not set")

// Load reads the process environment into a Config. A .env file, when
// present, fills in anything the environment left unset.
func Load() (Config, error) {
	_ = godotenv.Load()

	cfg := Config{
		Env:                getEnv("APP_ENV", "dev"),
		Port:               getEnvInt("PORT", 8080),
		DBURL:              buildDBURL(),
		JWTSecret:          os.Getenv("JWT_SECRET"),
		TokenTTLHours:      getEnvInt("TOKEN_TTL_HOURS", 48),
		RedisAddr:          os.Getenv("REDIS_ADDR"),
		RedisPassword:      os.Getenv("REDIS_PASSWORD"),
		RedisDB:            getEnvInt("REDIS_DB", 0),
		CORSAllowedOrigins: splitList(getEnv("CORS_ALLOWED_ORIGINS", "http://localhost:5173")),
		OTLPEndpoint:       os.Getenv("OTEL_EXPORTER_OTLP_ENDPOINT"),
		MaxBodyBytes:       int64(getEnvInt("MAX_BODY_BYTES", 1<<20)),
		CacheTTL:           time.Duration(getEnvInt("CATALOG_CACHE_TTL_SECONDS", 30)) * time.Second,
		SeedCatalog:        getEnv("SEED_CATALOG", "") == "true",
		AuthRateLimit:      getEnvInt("AUTH_RATE_LIMIT", 20),
		AuthRateWindow:     time.Duration(getEnvInt("AUTH_RATE_WINDOW_SECONDS", 60)) * time.Second,
	}

	if cfg.JWTSecret == "" {
		return Config{}, ErrMissingJWTSecret
	}

	return cfg, nil
}

func (c Config) TokenTTL() time.Duration {
	return time.Duration(c.TokenTTLHours) * time.Hour
}

func buildDBURL() string {
	if url := os.Getenv("DATABASE_URL"); url != "" {
		return url
	}

	host := getEnv("DB_HOST", "127.0.0.1")
	port := getEnv("DB_PORT", "5432")
	user := getEnv("DB_USER", "freshbite")
	pass := getEnv("DB_PASSWORD", "freshbite")
	name := getEnv("DB_NAME", "freshbite")
	ssl := getEnv("DB_SSLMODE", "disable")

	return "postgres://" + user + ":" + pass + "@" + host + ":" + port + "/" + name + "?sslmode=" + ssl
}

func WithTimeout(duration time.Duration) (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), duration)
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}

	return fallback
}

func getEnvInt(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		num, err := strconv.Atoi(v)

		if err != nil {
			return fallback
		}

		return num
	}
	return fallback
}

func splitList(raw string) []string {
	parts := strings.Split(raw, ",")
	out := make([]string, 0, len(parts))

	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p != "" {
			out = append(out, p)
		}
	}

	return out
}
