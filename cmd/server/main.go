package main

import (
	"context"
	"errors"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/nik0sc/esc-ticket-service/internal/api"
	"github.com/nik0sc/esc-ticket-service/internal/infrastructure/config"
	mongostore "github.com/nik0sc/esc-ticket-service/internal/infrastructure/db/mongo"
	redisstore "github.com/nik0sc/esc-ticket-service/internal/infrastructure/db/redis"
	"github.com/nik0sc/esc-ticket-service/internal/upstream"
	"github.com/nik0sc/esc-ticket-service/pkg/logger"
)

const shutdownTimeout = 10 * time.Second

func main() {
	cfg := config.Load()

	log := logger.Init(logger.Options{
		Level:  cfg.LogLevel,
		Pretty: cfg.Env == "development",
	})

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	mongoClient, db, err := mongostore.Connect(ctx, mongostore.Config{
		URI:      cfg.Mongo.URI,
		Database: cfg.Mongo.Database,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("mongo connection failed")
	}
	defer func() {
		if err := mongoClient.Disconnect(context.Background()); err != nil {
			log.Warn().Err(err).Msg("mongo disconnect failed")
		}
	}()

	if err := mongostore.NewTicketRepository(db).EnsureIndexes(ctx); err != nil {
		log.Warn().Err(err).Msg("index creation failed")
	}

	rdb, err := redisstore.Connect(ctx, redisstore.Config{
		Addr: cfg.Redis.Addr,
		DB:   cfg.Redis.DB,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("redis connection failed")
	}
	defer func() {
		if err := rdb.Close(); err != nil {
			log.Warn().Err(err).Msg("redis close failed")
		}
	}()

	if cfg.Users.BaseURL == "" {
		log.Warn().Msg("USER_SERVICE_BASE_URL is not in environment")
	}

	sessions := upstream.NewSessionClient(upstream.SessionConfig{
		BaseURL:     cfg.Session.BaseURL,
		ServerToken: cfg.Session.ServerToken,
		Timeout:     cfg.Session.Timeout,
	})
	users := upstream.NewUserClient(upstream.UserConfig{
		BaseURL: cfg.Users.BaseURL,
		Timeout: cfg.Users.Timeout,
		Log:     log,
	})

	e := api.NewRouter(api.RouterDeps{
		DB:       db,
		Redis:    rdb,
		Sessions: sessions,
		Roles:    users,
		GitRev:   cfg.GitRev,
		Log:      log,
	})

	go func() {
		log.Info().Str("port", cfg.Port).Msg("starting server")
		if err := e.Start(":" + cfg.Port); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("server stopped")
		}
	}()

	<-ctx.Done()
	log.Info().Msg("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("graceful shutdown failed")
	}
}
