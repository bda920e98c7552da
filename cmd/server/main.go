// File: cmd/server/main.go
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/jackc/pgx/v4/pgxpool"

	"oja-pos-licensing/internal/config"
	"oja-pos-licensing/internal/domain/activation"
	"oja-pos-licensing/internal/infra/api"
	pg "oja-pos-licensing/internal/infra/db/postgres"
	"oja-pos-licensing/internal/infra/logging"
	"oja-pos-licensing/internal/infra/metrics"
	red "oja-pos-licensing/internal/infra/redis"
	"oja-pos-licensing/internal/infra/sched"
	"oja-pos-licensing/internal/usecase"
)

var (
	version = "dev"
	commit  = "none"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// ---- CLI flags ----
	cfgPath := flag.String("config", "config.yaml", "path to YAML config file")
	devMode := flag.Bool("dev", false, "enable developer mode (console logs, unmasked codes)")
	flag.Parse()

	cfg, err := config.LoadConfig(*cfgPath, *devMode)
	if err != nil {
		log.Fatalf("config: %v", err)
	}
	logger := logging.New(cfg.Log, cfg.Runtime.Dev)

	key := []byte(cfg.Activation.SecretKey)
	keyID := activation.KeyID(key)
	if cfg.Activation.SecretKey == activation.DefaultSecretKey {
		logger.Warn().Str("key_id", keyID).Msg("using the compiled-in activation key")
	}

	// ---- Metrics ----
	metrics.MustRegister()
	metrics.SetBuildInfo(version, commit, keyID)

	// ---- Postgres ----
	pool, err := pg.NewPgxPool(ctx, cfg.Database.URL, cfg.Database.MaxConns)
	if err != nil {
		logger.Fatal().Err(err).Msg("postgres")
	}
	defer pool.Close()

	// ---- Redis ----
	redisClient, err := red.NewClient(ctx, &cfg.Redis)
	if err != nil {
		logger.Fatal().Err(err).Msg("redis")
	}
	defer redisClient.Close()
	locker := red.NewLocker(redisClient)
	limiter := red.NewRateLimiter(redisClient)

	// ---- Repositories ----
	tm := pg.NewTxManager(pool)
	redemptionRepo := pg.NewRedemptionRepo(pool)
	subRepo := pg.NewSubscriptionRepoCacheDecorator(pg.NewSubscriptionRepo(pool), redisClient, cfg.Activation.StatusTTL)

	// ---- Use cases ----
	activationUC := usecase.NewActivationUseCase(
		redemptionRepo, subRepo, tm, locker, limiter,
		activation.NewValidator(key),
		usecase.ActivationPolicy{
			AttemptLimit:  cfg.Activation.AttemptLimit,
			AttemptWindow: cfg.Activation.AttemptWindow,
			LockTTL:       cfg.Activation.LockTTL,
		},
		logger, cfg.Runtime.Dev,
	)
	codegenUC := usecase.NewCodegenUseCase(activation.NewGenerator(key), logger)

	// ---- HTTP ----
	auth := api.NewAuthManager(cfg.Admin.JWTSecret, cfg.Admin.TokenTTL)
	srv, err := api.NewServer(activationUC, codegenUC, auth, cfg.Admin.APIKey, logger)
	if err != nil {
		logger.Fatal().Err(err).Msg("api")
	}
	srv.AddHealthCheck("postgres", pool.Ping)
	srv.AddHealthCheck("redis", redisClient.Ping)

	server := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.HTTP.Port),
		Handler:      srv.Handler(cfg.HTTP.WriteTimeout),
		ReadTimeout:  cfg.HTTP.ReadTimeout,
		WriteTimeout: cfg.HTTP.WriteTimeout,
	}
	go func() {
		logger.Info().Str("addr", server.Addr).Str("version", version).Str("key_id", keyID).Msg("activation service listening")
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error().Err(err).Msg("http server error")
			stop()
		}
	}()

	// ---- Stats worker ----
	worker := sched.NewStatsWorker(time.Minute, redemptionRepo, poolStats(pool), logger)
	go func() { _ = worker.Run(ctx) }()

	// ---- Graceful shutdown ----
	<-ctx.Done()
	logger.Info().Msg("shutdown requested")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.HTTP.ShutdownTimeout)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error().Err(err).Msg("http shutdown")
		os.Exit(1)
	}
	logger.Info().Msg("bye")
}

func poolStats(pool *pgxpool.Pool) sched.PoolStatsFunc {
	return func() (int32, int32, int32) {
		s := pool.Stat()
		return s.TotalConns(), s.IdleConns(), s.AcquiredConns()
	}
}
