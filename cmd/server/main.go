package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/khata/ledger-api/internal/api"
	"github.com/khata/ledger-api/internal/core/token"
	"github.com/khata/ledger-api/internal/infrastructure/config"
	mongodb "github.com/khata/ledger-api/internal/infrastructure/db/mongo"
	redisdb "github.com/khata/ledger-api/internal/infrastructure/db/redis"
	"github.com/khata/ledger-api/pkg/logger"
)

const shutdownTimeout = 10 * time.Second

func main() {
	cfg := config.Load()

	log := logger.Init(logger.Options{
		Level:  cfg.LogLevel,
		Pretty: cfg.Env == "development",
	})

	ctx := context.Background()

	client, db, err := mongodb.Connect(ctx, mongodb.Config{
		URI:      cfg.Mongo.URI,
		Database: cfg.Mongo.Database,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("mongo connection failed")
	}
	defer func() {
		if err := client.Disconnect(context.Background()); err != nil {
			log.Warn().Err(err).Msg("mongo disconnect")
		}
	}()

	rdb, err := redisdb.Connect(ctx, redisdb.Config{
		Addr: cfg.Redis.Addr,
		DB:   cfg.Redis.DB,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("redis connection failed")
	}
	defer func() {
		if err := rdb.Close(); err != nil {
			log.Warn().Err(err).Msg("redis close")
		}
	}()

	if err := mongodb.NewAccountRepository(db).EnsureIndexes(ctx); err != nil {
		log.Fatal().Err(err).Msg("account indexes")
	}
	if err := mongodb.NewPartyRepository(db).EnsureIndexes(ctx); err != nil {
		log.Fatal().Err(err).Msg("party indexes")
	}

	key := []byte(cfg.JWTSecret)
	if len(key) == 0 {
		key, err = token.NewRandomKey()
		if err != nil {
			log.Fatal().Err(err).Msg("signing key generation failed")
		}
		// Sessions do not survive a restart without a configured JWT_SECRET.
		log.Warn().Msg("JWT_SECRET not set, generated an ephemeral signing key; outstanding tokens will not survive a restart")
	}
	codec := token.NewCodec(key, cfg.TokenTTL)

	e := api.NewRouter(db, rdb, codec, log)

	go func() {
		if err := e.Start(":" + cfg.Port); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("server start failed")
		}
	}()
	log.Info().Str("port", cfg.Port).Str("env", cfg.Env).Msg("server started")

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	sig := <-sigCh
	log.Info().Str("signal", sig.String()).Msg("shutdown signal received")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := e.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("shutdown error")
		os.Exit(1)
	}
	log.Info().Msg("server exited cleanly")
}
