package config

import (
	"errors"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	Port        string
	Env         string
	DatabaseURL string

	JWTSecret string
	AccessTTL time.Duration

	CorsAllowedOrigins []string

	DBMaxOpenConns    int
	DBMaxIdleConns    int
	DBConnMaxLifetime time.Duration
	DBConnectAttempts int
	DBConnectDelay    time.Duration
}

// Load reads configuration from the environment, after loading a .env
// file if one is present. It fails instead of filling in defaults for
// the values the server cannot run without.
func Load() (Config, error) {
	_ = godotenv.Load()

	cfg := Config{
		Port:               getEnv("PORT", "8000"),
		Env:                getEnv("ENV", "development"),
		DatabaseURL:        getEnv("DATABASE_URL", ""),
		JWTSecret:          getEnv("JWT_SECRET", ""),
		CorsAllowedOrigins: splitCSV(getEnv("CORS_ALLOWED_ORIGINS", "*")),
		DBMaxOpenConns:     getEnvInt("DB_MAX_OPEN", 25),
		DBMaxIdleConns:     getEnvInt("DB_MAX_IDLE", 25),
		DBConnMaxLifetime:  time.Duration(getEnvInt("DB_MAX_LIFETIME", 300)) * time.Second,
		DBConnectAttempts:  getEnvInt("DB_CONNECT_ATTEMPTS", 5),
		DBConnectDelay:     time.Duration(getEnvInt("DB_CONNECT_DELAY", 2)) * time.Second,
	}

	ttl, err := parseTTL(getEnv("ACCESS_TTL", "30m"))
	if err != nil {
		return Config{}, errors.New("config: invalid ACCESS_TTL")
	}
	cfg.AccessTTL = ttl

	if cfg.DatabaseURL == "" {
		return Config{}, errors.New("config: DATABASE_URL is required")
	}
	if cfg.JWTSecret == "" {
		return Config{}, errors.New("config: JWT_SECRET is required")
	}

	return cfg, nil
}

func getEnv(key, fallback string) string {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return fallback
	}
	return v
}

func getEnvInt(key string, fallback int) int {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return fallback
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return fallback
	}
	return n
}

// parseTTL accepts durations such as "15m", "1h", "20s", or a bare
// number of minutes ("30").
func parseTTL(s string) (time.Duration, error) {
	if strings.HasSuffix(s, "s") || strings.HasSuffix(s, "m") || strings.HasSuffix(s, "h") {
		return time.ParseDuration(s)
	}
	min, err := strconv.Atoi(s)
	if err != nil {
		return 0, err
	}
	return time.Duration(min) * time.Minute, nil
}

func splitCSV(value string) []string {
	parts := strings.Split(value, ",")
	out := make([]string, 0, len(parts))
	for _, part := range parts {
		if item := strings.TrimSpace(part); item != "" {
			out = append(out, item)
		}
	}
	if len(out) == 0 {
		return []string{"*"}
	}
	return out
}
