package db

import (
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/stdlib"
	"github.com/jmoiron/sqlx"
	"go.uber.org/zap"

	"postboard/internal/config"
)

func Connect(cfg config.Config) (*sqlx.DB, error) {
	// Parse DSN → pgx config struct
	pgcfg, err := pgx.ParseConfig(cfg.DatabaseURL)
	if err != nil {
		return nil, fmt.Errorf("db: failed to parse DSN: %w", err)
	}

	// Fail fast if PG is unreachable
	pgcfg.ConnectTimeout = 5 * time.Second

	// Create sql.DB using pgx's stdlib adapter, wrap in sqlx for
	// struct scanning
	database := sqlx.NewDb(stdlib.OpenDB(*pgcfg), "pgx")

	database.SetMaxOpenConns(cfg.DBMaxOpenConns)
	database.SetMaxIdleConns(cfg.DBMaxIdleConns)
	database.SetConnMaxLifetime(cfg.DBConnMaxLifetime)

	if err := database.Ping(); err != nil {
		database.Close()
		return nil, fmt.Errorf("db: failed to connect to Postgres: %w", err)
	}

	var tmp int
	if err := database.QueryRow("SELECT 1").Scan(&tmp); err != nil {
		database.Close()
		return nil, fmt.Errorf("db: health check failed: %w", err)
	}

	return database, nil
}

// ConnectWithRetry attempts Connect up to cfg.DBConnectAttempts times
// with a fixed delay between attempts. The retry is bounded: once the
// attempts are exhausted the last error is returned and the caller
// decides whether to exit.
func ConnectWithRetry(cfg config.Config, logger *zap.Logger) (*sqlx.DB, error) {
	var lastErr error
	for attempt := 1; attempt <= cfg.DBConnectAttempts; attempt++ {
		database, err := Connect(cfg)
		if err == nil {
			return database, nil
		}
		lastErr = err
		logger.Warn("database not ready",
			zap.Int("attempt", attempt),
			zap.Int("max_attempts", cfg.DBConnectAttempts),
			zap.Error(err),
		)
		if attempt < cfg.DBConnectAttempts {
			time.Sleep(cfg.DBConnectDelay)
		}
	}
	return nil, fmt.Errorf("db: giving up after %d attempts: %w", cfg.DBConnectAttempts, lastErr)
}
