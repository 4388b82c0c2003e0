package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"postboard/internal/config"
	"postboard/internal/db"
	"postboard/internal/handlers"
	"postboard/internal/hash"
	"postboard/internal/middleware"
	"postboard/internal/store"
	"postboard/internal/token"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	logger, err := newLogger(cfg.Env)
	if err != nil {
		log.Fatalf("logger: %v", err)
	}
	defer logger.Sync()

	dbConn, err := db.ConnectWithRetry(cfg, logger)
	if err != nil {
		logger.Fatal("db connect", zap.Error(err))
	}
	defer dbConn.Close()

	tokens, err := token.NewService(cfg.JWTSecret, cfg.AccessTTL)
	if err != nil {
		logger.Fatal("token service", zap.Error(err))
	}

	st := store.New(dbConn)
	h := handlers.New(st, st, st, tokens, hash.Bcrypt{})

	router := handlers.NewRouter(h, handlers.RouterConfig{
		Auth:         middleware.Auth(tokens, st),
		LoginLimiter: middleware.NewRateLimiter(5, time.Minute).Limit,
		Logger:       logger,
		CORSOrigins:  cfg.CorsAllowedOrigins,
	})

	srv := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		logger.Info("listening", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("listen", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Info("shutting down server")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logger.Fatal("server forced to shutdown", zap.Error(err))
	}

	logger.Info("server exited")
}

func newLogger(env string) (*zap.Logger, error) {
	if env == "production" {
		return zap.NewProduction()
	}
	return zap.NewDevelopment()
}
