// Command api runs the store-rating HTTP API.
//
// @title                       Store Rating API
// @version                     1.0
// @description                 Accounts, store ratings and the administrator dashboard.
// @BasePath                    /
// @securityDefinitions.apikey  BearerAuth
// @in                          header
// @name                        Authorization
package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	_ "github.com/storerating/store-rating/docs"
	"github.com/storerating/store-rating/internal/api"
	"github.com/storerating/store-rating/internal/api/handler"
	"github.com/storerating/store-rating/internal/api/metrics"
	"github.com/storerating/store-rating/internal/core/service"
	"github.com/storerating/store-rating/internal/infrastructure/db/mongo"
	"github.com/storerating/store-rating/internal/infrastructure/db/redis"
	"github.com/storerating/store-rating/internal/infrastructure/queue"
	"github.com/storerating/store-rating/internal/pkg/config"
	"github.com/storerating/store-rating/pkg/logger"
)

func main() {
	cfg := config.Load()
	log := logger.Init(logger.Options{
		Level:   cfg.LogLevel,
		Pretty:  !cfg.IsProduction(),
		Service: "store-rating-api",
		Env:     cfg.Env,
	})

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	client, db, err := mongo.Connect(ctx, mongo.Config{URI: cfg.Mongo.URI, Database: cfg.Mongo.Database})
	if err != nil {
		log.Fatal().Err(err).Msg("mongo unavailable")
	}
	defer func() { _ = client.Disconnect(context.Background()) }()

	rdb, err := redis.Connect(ctx, redis.Config{Addr: cfg.Redis.Addr, Password: cfg.Redis.Password, DB: cfg.Redis.DB})
	if err != nil {
		log.Fatal().Err(err).Msg("redis unavailable")
	}
	defer func() { _ = rdb.Close() }()

	users := mongo.NewUserRepository(db)
	stores := mongo.NewStoreRepository(db)
	ratings := mongo.NewRatingRepository(db)
	if err := mongo.EnsureIndexes(ctx, users, stores, ratings); err != nil {
		log.Fatal().Err(err).Msg("mongo indexes")
	}

	aggregates := service.NewAggregateService(stores, ratings, logger.Component("aggregate"))
	dispatcher := queue.NewDispatcher(cfg.AggregateWorkers, aggregates, metrics.DispatcherObserver{}, logger.Component("dispatcher"))
	dispatcher.Start(ctx)

	revoker := redis.NewRevocationList(rdb, cfg.TokenTTL)
	e := api.NewRouter(api.Deps{
		Auth:   service.NewAuthService(users, revoker, cfg.JWTSecret, cfg.TokenTTL, logger.Component("auth")),
		Stores: service.NewStoreService(stores, ratings, dispatcher, logger.Component("stores")),
		Admin:  service.NewAdminService(users, stores, ratings, logger.Component("admin")),
		Checks: map[string]handler.Check{
			"mongodb": handler.MongoCheck(db),
			"redis":   handler.RedisCheck(rdb),
		},
		Revoker:   revoker,
		JWTSecret: cfg.JWTSecret,
		Origins:   cfg.CORSOrigins,
		Log:       log,
	})

	go func() {
		log.Info().Str("port", cfg.Port).Msg("server starting")
		if err := e.Start(":" + cfg.Port); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("listen")
		}
	}()

	<-ctx.Done()
	log.Info().Msg("shutting down server")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("server forced to shutdown")
	}
	log.Info().Msg("server exited properly")
}
