package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/getsentry/sentry-go"

	"github.com/abodeconnect/marketplace-api/internal/api"
	"github.com/abodeconnect/marketplace-api/internal/api/handler"
	"github.com/abodeconnect/marketplace-api/internal/core/ports"
	"github.com/abodeconnect/marketplace-api/internal/core/service"
	"github.com/abodeconnect/marketplace-api/internal/infrastructure/broker"
	"github.com/abodeconnect/marketplace-api/internal/infrastructure/config"
	mongodb "github.com/abodeconnect/marketplace-api/internal/infrastructure/db/mongo"
	rediscache "github.com/abodeconnect/marketplace-api/internal/infrastructure/db/redis"
	"github.com/abodeconnect/marketplace-api/internal/infrastructure/queue"
	"github.com/abodeconnect/marketplace-api/pkg/logger"
)

const shutdownTimeout = 10 * time.Second

// @title                       AbodeConnect Marketplace API
// @version                     1.0
// @description                 Real estate listing marketplace.
// @BasePath                    /api/v1
// @securityDefinitions.apikey  BearerAuth
// @in                          header
// @name                        Authorization
func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg, err := config.Load(ctx)
	if err != nil {
		bootLog := logger.New(logger.Options{})
		bootLog.Fatal().Err(err).Msg("failed to load configuration")
	}

	log := logger.Init(logger.Options{
		Level:   cfg.LogLevel,
		Pretty:  !cfg.IsProduction(),
		Service: "marketplace-api",
		Env:     cfg.Env,
	})

	if cfg.SentryDSN != "" {
		if err := sentry.Init(sentry.ClientOptions{
			Dsn:              cfg.SentryDSN,
			Environment:      cfg.Env,
			EnableTracing:    true,
			TracesSampleRate: 0.2,
		}); err != nil {
			log.Error().Err(err).Msg("sentry init failed")
		} else {
			defer sentry.Flush(2 * time.Second)
		}
	}

	// --- MongoDB ---
	mongoClient, db, err := mongodb.Connect(ctx, mongodb.Config{URI: cfg.Mongo.URI, Database: cfg.Mongo.Database})
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to mongodb")
	}
	defer func() {
		dctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		_ = mongoClient.Disconnect(dctx)
	}()

	userRepo := mongodb.NewUserRepository(db)
	listingRepo := mongodb.NewListingRepository(db)
	eventRepo := mongodb.NewListingEventRepository(db)
	if err := mongodb.EnsureIndexes(ctx, userRepo, listingRepo, eventRepo); err != nil {
		log.Fatal().Err(err).Msg("failed to create indexes")
	}

	healthChecks := map[string]handler.Check{
		"mongodb": func(ctx context.Context) error { return mongoClient.Ping(ctx, nil) },
	}

	// --- Redis (optional) ---
	var cache ports.HomepageCache
	if cfg.Redis.Addr != "" {
		rdb, err := rediscache.Connect(ctx, rediscache.Config{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		if err != nil {
			log.Warn().Err(err).Msg("redis unavailable, homepage cache disabled")
		} else {
			defer rdb.Close()
			cache = rediscache.NewHomepageCache(rdb, cfg.Redis.HomepageTTL)
			healthChecks["redis"] = rediscache.Ping(rdb)
		}
	}

	// --- Listing events ---
	var publisher ports.ListingEventPublisher = broker.NewLogPublisher(log)
	if cfg.Events.AMQPURL != "" {
		conn, err := broker.Dial(cfg.Events.AMQPURL)
		if err != nil {
			log.Warn().Err(err).Msg("rabbitmq unavailable, listing events will only be logged")
		} else {
			defer conn.Close()
			publisher = broker.NewAMQPPublisher(conn, cfg.Events.Queue)
		}
	}

	workerCtx, stopWorkers := context.WithCancel(context.Background())
	dispatcher := queue.NewDispatcher(cfg.Events.Workers, service.NewListingEventService(publisher, eventRepo, log), log)
	dispatcher.Start(workerCtx)

	// --- Services ---
	authService := service.NewAuthService(userRepo, cfg.Auth.JWTSecret, service.AuthOptions{
		SigninTTL:    cfg.Auth.SigninTokenTTL,
		FederatedTTL: cfg.Auth.FederatedTokenTTL,
	}, log)
	listingService := service.NewListingService(listingRepo, cache, dispatcher, log)
	userService := service.NewUserService(userRepo, listingRepo, log)

	e := api.NewRouter(api.Deps{
		AuthService:    authService,
		ListingService: listingService,
		UserService:    userService,
		HealthChecks:   healthChecks,
		Logger:         log,
		AllowOrigins:   cfg.AllowOrigins(),
		Session: handler.SessionOptions{
			Secure:          cfg.IsProduction(),
			SigninMaxAge:    cfg.Auth.SigninTokenTTL,
			FederatedMaxAge: cfg.Auth.FederatedTokenTTL,
		},
		AuthRateLimit: cfg.Auth.RateLimit,
		AuthRateBurst: cfg.Auth.RateBurst,
		Sentry:        cfg.SentryDSN != "",
	})

	go func() {
		log.Info().Str("port", cfg.Port).Str("env", cfg.Env).Msg("starting server")
		if err := e.Start(":" + cfg.Port); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("server error")
		}
	}()

	<-ctx.Done()
	log.Info().Msg("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("server shutdown failed")
	}

	stopWorkers()
	dispatcher.Wait()
	log.Info().Msg("shutdown complete")
}
