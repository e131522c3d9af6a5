// cmd/api/main.go

package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/gorilla/mux"
	"github.com/imadgeboyega/kiekky-matching/internal/auth"
	"github.com/imadgeboyega/kiekky-matching/internal/common/database"
	"github.com/imadgeboyega/kiekky-matching/internal/config"
	"github.com/imadgeboyega/kiekky-matching/internal/dating"
	"github.com/imadgeboyega/kiekky-matching/internal/logger"
	"github.com/imadgeboyega/kiekky-matching/internal/matching"
	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"
)

func main() {
	// .env is optional; real environment variables win
	envErr := godotenv.Load()

	cfg := config.Load()

	zlog, err := logger.New(cfg.Environment, cfg.Debug)
	if err != nil {
		log.Fatalf("failed to create logger: %v", err)
	}
	defer logger.Sync(zlog)

	if envErr != nil {
		zlog.Debug("no .env file loaded", zap.Error(envErr))
	}

	if err := run(cfg, zlog); err != nil {
		zlog.Fatal("server stopped", zap.Error(err))
	}
}

func run(cfg *config.Config, zlog *zap.Logger) error {
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	db, err := database.NewPostgresDB(ctx, cfg.DatabaseURL, database.PoolConfig{
		MaxOpenConns: cfg.DBMaxOpenConns,
		MaxIdleConns: cfg.DBMaxIdleConns,
		MaxLifetime:  cfg.DBConnMaxLifetime,
	})
	if err != nil {
		return err
	}
	defer db.Close()
	zlog.Info("connected to PostgreSQL")

	if err := database.RunMigrations(ctx, db, zlog); err != nil {
		return err
	}

	// Redis is optional: without it scores are not cached and taste
	// profiles live in process memory
	var redisClient *redis.Client
	if cfg.RedisURL != "" {
		redisClient, err = database.NewRedisClientFromURL(ctx, cfg.RedisURL)
		if err != nil {
			zlog.Warn("continuing without Redis", zap.Error(err))
			redisClient = nil
		} else {
			defer redisClient.Close()
			zlog.Info("connected to Redis")
		}
	}

	hub := dating.NewHub(zlog.Named("hub"))
	go hub.Run(ctx)

	opts := []dating.ServiceOption{dating.WithNotifier(hub)}
	if redisClient != nil {
		opts = append(opts, dating.WithTasteStore(dating.NewRedisTasteStore(redisClient, cfg.TasteCacheTTL)))
		if cfg.EnableScoreCache {
			opts = append(opts, dating.WithScoreCache(dating.NewRedisScoreCache(redisClient, cfg.ScoreCacheTTL)))
		}
	}

	service := dating.NewService(
		dating.NewPostgresRepository(db),
		matching.NewEngine(),
		dating.Settings{
			ViewWindowSize:     cfg.ViewWindowSize,
			CandidatePoolLimit: cfg.CandidatePoolLimit,
			HotpicksPerUser:    cfg.HotpicksPerUser,
			ScoringWorkers:     cfg.ScoringWorkers,
		},
		zlog.Named("matching"),
		opts...,
	)

	dating.NewScheduler(service, cfg.HotpicksHour, cfg.TasteRefreshHour, zlog.Named("scheduler")).Start(ctx)

	router := mux.NewRouter()
	router.HandleFunc("/health", healthCheck(db, redisClient)).Methods("GET")
	router.Handle("/metrics", promhttp.Handler()).Methods("GET")
	dating.RegisterRoutes(router, dating.NewHandler(service, zlog.Named("http")), hub, auth.NewMiddleware(cfg.JWTSecret))

	router.Use(loggingMiddleware(zlog.Named("http")))
	router.Use(corsMiddleware)

	srv := &http.Server{
		Addr:         fmt.Sprintf(":%s", cfg.Port),
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	serverErr := make(chan error, 1)
	go func() {
		zlog.Info("server starting",
			zap.String("addr", srv.Addr),
			zap.String("environment", cfg.Environment),
		)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
	}()

	select {
	case err := <-serverErr:
		return err
	case <-ctx.Done():
	}

	zlog.Info("shutdown signal received")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server forced to shutdown: %w", err)
	}

	zlog.Info("server exited gracefully")
	return nil
}
