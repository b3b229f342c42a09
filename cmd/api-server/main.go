// cmd/api-server/main.go
package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"matchpoint/internal/api"
	"matchpoint/internal/api/classification"
	"matchpoint/internal/api/club"
	"matchpoint/internal/api/competition"
	"matchpoint/internal/api/match"
	"matchpoint/internal/api/middleware"
	"matchpoint/internal/api/payments"
	"matchpoint/internal/api/users"
	"matchpoint/internal/common/auth"
	"matchpoint/internal/common/config"
	"matchpoint/internal/common/database"
	"matchpoint/internal/common/logger"
	"matchpoint/internal/common/observability"
	"matchpoint/internal/notification"
)

// retryWithBackoff attempts to execute a function with exponential backoff
func retryWithBackoff(operation func() error, maxRetries int, initialDelay time.Duration, log *zap.Logger, operationName string) error {
	var err error
	delay := initialDelay

	for i := 0; i < maxRetries; i++ {
		err = operation()
		if err == nil {
			return nil
		}

		if i < maxRetries-1 {
			log.Warn(fmt.Sprintf("%s failed, retrying...", operationName),
				zap.Error(err),
				zap.Int("attempt", i+1),
				zap.Int("maxRetries", maxRetries),
				zap.Duration("nextRetryIn", delay),
			)
			time.Sleep(delay)
			delay *= 2
		}
	}

	return fmt.Errorf("%s failed after %d attempts: %w", operationName, maxRetries, err)
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "config load failed: %v\n", err)
		os.Exit(1)
	}

	zapLog := logger.New(cfg.Logging.Level, cfg.Logging.Format)
	defer zapLog.Sync()
	log := logger.NewZapAdapter(zapLog)

	zapLog.Info("Starting api server...",
		zap.String("app", cfg.App.Name),
		zap.String("environment", cfg.App.Environment),
	)

	obs := observability.New(cfg.App.Name)
	defer obs.Shutdown()

	ctx := context.Background()

	// --- Init Postgres with retry ---
	var pg *database.PostgresClient
	err = retryWithBackoff(func() error {
		var err error
		pg, err = database.NewPostgres(cfg.Database.Postgres)
		if err != nil {
			return err
		}
		return pg.Ping(ctx)
	}, 10, 2*time.Second, zapLog, "Postgres connection")
	if err != nil {
		zapLog.Fatal("postgres init failed", zap.Error(err))
	}
	defer pg.Close()
	zapLog.Info("Postgres connected successfully")

	// --- Init Redis with retry; degraded mode without it ---
	var redisClient *database.RedisClient
	err = retryWithBackoff(func() error {
		var err error
		redisClient, err = database.NewRedis(cfg.Database.Redis)
		if err != nil {
			return err
		}
		return redisClient.Ping(ctx)
	}, 5, 2*time.Second, zapLog, "Redis connection")
	if err != nil {
		zapLog.Warn("redis unavailable, running without token blacklist and count cache", zap.Error(err))
		redisClient = nil
	} else {
		defer redisClient.Close()
		zapLog.Info("Redis connected successfully")
	}

	// --- Optional Elasticsearch ---
	var es *database.ElasticsearchClient
	if cfg.Database.Elasticsearch.Enabled {
		es, err = database.NewElasticsearch(cfg.Database.Elasticsearch)
		if err != nil {
			zapLog.Warn("elasticsearch init failed, partner search will use sql", zap.Error(err))
			es = nil
		} else if err := es.Ping(); err != nil {
			zapLog.Warn("elasticsearch unreachable, partner search will use sql", zap.Error(err))
			es = nil
		}
	}

	// --- Notifications ---
	notifier, err := notification.New(ctx, cfg.Notifications, log)
	if err != nil {
		zapLog.Warn("notification init failed, notifications disabled", zap.Error(err))
		notifier = notification.NewNoOp()
	}

	// --- Auth ---
	tokens := auth.NewTokenManager(cfg.Auth)
	var blacklist *auth.Blacklist
	if redisClient != nil {
		blacklist = auth.NewBlacklist(redisClient.GetClient())
	}
	authn := middleware.NewAuthenticator(tokens, blacklist, log)

	// --- Services and handlers ---
	db := pg.GetDB()
	countTTL := time.Duration(cfg.Registration.CountCacheTTL) * time.Second

	var rawRedis = redisClientOrNil(redisClient)
	competitionSvc := competition.NewService(db, rawRedis, es, cfg.Database.Elasticsearch.UserIndex, countTTL, log)
	usersSvc := users.NewService(db, tokens, blacklist, log)
	paymentsSvc := payments.NewService(db, notifier, log)

	handlers := api.Handlers{
		Users:          users.NewHandler(usersSvc, log),
		Classification: classification.NewHandler(classification.NewService(db)),
		Club:           club.NewHandler(club.NewService(db, log), log),
		Competition:    competition.NewHandler(competitionSvc, log),
		Payments:       payments.NewHandler(paymentsSvc, log),
		Match:          match.NewHandler(match.NewService(db, log), log),
	}
	router := api.NewRouter(handlers, authn, log)

	// --- Payment expiry sweep ---
	sweeper := payments.NewSweeper(db, paymentsSvc, notifier, log)
	if err := sweeper.Start(cfg.Registration.SweepSchedule); err != nil {
		zapLog.Fatal("sweep schedule invalid", zap.Error(err))
	}
	defer sweeper.Stop()

	server := &http.Server{
		Addr:         cfg.Server.Addr(),
		Handler:      router,
		ReadTimeout:  time.Duration(cfg.Server.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(cfg.Server.WriteTimeout) * time.Second,
	}

	go func() {
		zapLog.Info("HTTP server listening", zap.String("addr", server.Addr))
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			zapLog.Fatal("http server failed", zap.Error(err))
		}
	}()

	// --- Graceful Shutdown ---
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	<-sigCh

	zapLog.Info("Shutdown signal received, stopping server...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), time.Duration(cfg.Server.ShutdownTimeout)*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		zapLog.Error("server shutdown failed", zap.Error(err))
	}
	zapLog.Info("Server stopped gracefully")
}

// redisClientOrNil unwraps the shared client; a nil wrapper yields a nil
// raw client so dependents can detect degraded mode.
func redisClientOrNil(c *database.RedisClient) *redis.Client {
	if c == nil {
		return nil
	}
	return c.GetClient()
}
