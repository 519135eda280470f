package main

import (
	"context"
	"errors"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/cognitodo/todo-system/internal/api"
	"github.com/cognitodo/todo-system/internal/infrastructure/config"
	"github.com/cognitodo/todo-system/internal/infrastructure/db/postgres"
	redisdb "github.com/cognitodo/todo-system/internal/infrastructure/db/redis"
	"github.com/cognitodo/todo-system/internal/infrastructure/identity/cognito"
	"github.com/cognitodo/todo-system/pkg/logger"
)

const shutdownTimeout = 10 * time.Second

func main() {
	cfg := config.Load()
	log := logger.Init(logger.Options{
		Level:  cfg.LogLevel,
		Pretty: !cfg.IsProduction(),
	})

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	pool, err := postgres.Connect(ctx, postgres.Config{DSN: cfg.Postgres.DSN})
	if err != nil {
		log.Fatal().Err(err).Msg("postgres connection failed")
	}
	defer pool.Close()

	if err := postgres.Migrate(ctx, pool); err != nil {
		log.Fatal().Err(err).Msg("migrations failed")
	}

	rdb, err := redisdb.Connect(ctx, cfg.Redis.Addr, cfg.Redis.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("redis connection failed")
	}
	defer rdb.Close()

	idp, err := cognito.NewClient(ctx, cfg.Cognito.Region, cfg.Cognito.ClientID)
	if err != nil {
		log.Fatal().Err(err).Msg("cognito client failed")
	}
	verifier, err := cognito.NewVerifier(ctx, cfg.Cognito.Region, cfg.Cognito.UserPoolID, cfg.Cognito.ClientID)
	if err != nil {
		log.Fatal().Err(err).Msg("cognito verifier failed")
	}

	e := api.NewRouter(pool, rdb, idp, verifier, cfg)

	go func() {
		log.Info().Str("port", cfg.Port).Str("env", cfg.Env).Msg("starting server")
		if err := e.Start(":" + cfg.Port); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("server stopped")
		}
	}()

	<-ctx.Done()
	log.Info().Msg("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("shutdown failed")
	}
}
