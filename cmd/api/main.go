package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/eventura/marketplace-system/internal/api"
	"github.com/eventura/marketplace-system/internal/core/service"
	"github.com/eventura/marketplace-system/internal/infrastructure/config"
	mongorepo "github.com/eventura/marketplace-system/internal/infrastructure/db/mongo"
	redisinfra "github.com/eventura/marketplace-system/internal/infrastructure/db/redis"
	"github.com/eventura/marketplace-system/internal/infrastructure/mail"
	"github.com/eventura/marketplace-system/internal/infrastructure/queue"
	"github.com/eventura/marketplace-system/pkg/logger"
)

// @title        Eventura Marketplace API
// @version      1.0
// @description  Events-services marketplace backend.
//
// @securityDefinitions.apikey  BearerAuth
// @in                          header
// @name                        Authorization
func main() {
	cfg := config.Load()

	log := logger.Init(logger.Options{
		Level:  cfg.LogLevel,
		Pretty: cfg.Env == "development",
	})

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// --- MongoDB ---
	mongoClient, db, err := mongorepo.Connect(ctx, mongorepo.Config{
		URI:      cfg.Mongo.URI,
		Database: cfg.Mongo.Database,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("mongodb connection failed")
	}
	defer func() {
		if err := mongoClient.Disconnect(context.Background()); err != nil {
			log.Error().Err(err).Msg("mongodb disconnect failed")
		}
	}()

	if err := mongorepo.EnsureIndexes(ctx, db); err != nil {
		log.Fatal().Err(err).Msg("index creation failed")
	}

	// --- Redis ---
	rdb, err := redisinfra.Connect(ctx, redisinfra.Config{
		Addr: cfg.Redis.Addr,
		DB:   cfg.Redis.DB,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("redis connection failed")
	}
	defer func() {
		if err := rdb.Close(); err != nil {
			log.Error().Err(err).Msg("redis close failed")
		}
	}()

	// --- Notification pipeline ---
	notificationRepo := mongorepo.NewNotificationRepository(db)
	unreadCounter := redisinfra.NewUnreadCounter(rdb, "")
	notificationSvc := service.NewNotificationService(notificationRepo, unreadCounter, log)

	mailer := mail.NewSMTPMailer(cfg.SMTP)
	dispatcher := queue.NewDispatcher(cfg.NotifyWorkers, notificationSvc, mailer, log)
	dispatcher.Start(ctx)

	// --- HTTP server ---
	e := api.NewRouter(db, rdb, cfg, notificationSvc, dispatcher, log)

	go func() {
		addr := ":" + cfg.Port
		log.Info().Str("addr", addr).Str("env", cfg.Env).Msg("starting server")
		if err := e.Start(addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("server stopped unexpectedly")
		}
	}()

	<-ctx.Done()
	log.Info().Msg("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("graceful shutdown failed")
	}
}
