package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	httpAdapter "github.com/fintra/corebank/internal/adapter/http"
	"github.com/fintra/corebank/internal/adapter/http/handler"
	"github.com/fintra/corebank/internal/adapter/http/middleware"
	postgresRepo "github.com/fintra/corebank/internal/adapter/repository/postgres"
	redisRepo "github.com/fintra/corebank/internal/adapter/repository/redis"
	"github.com/fintra/corebank/internal/infrastructure/auth"
	"github.com/fintra/corebank/internal/infrastructure/config"
	"github.com/fintra/corebank/internal/infrastructure/logger"
	"github.com/fintra/corebank/internal/infrastructure/metrics"
	"github.com/fintra/corebank/internal/infrastructure/postgres"
	"github.com/fintra/corebank/internal/infrastructure/redis"
	"github.com/fintra/corebank/internal/usecase"
)

const connectRetryWindow = 30 * time.Second

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	log := logger.New(logger.Config{Level: cfg.LogLevel, Format: cfg.LogFormat})

	if cfg.JWTSecret == "" {
		log.Fatal().Msg("JWT_SECRET must be set")
	}

	ctx := context.Background()

	pool, err := postgres.NewPoolWithRetry(ctx, cfg.DatabaseURL, cfg.DatabaseMaxConns, cfg.DatabaseMinConns, connectRetryWindow)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to postgres")
	}
	defer pool.Close()
	log.Info().Msg("connected to postgres")

	if cfg.MigrationsPath != "" {
		if err := postgres.RunMigrations(cfg.DatabaseURL, cfg.MigrationsPath); err != nil {
			log.Fatal().Err(err).Msg("failed to run migrations")
		}
		log.Info().Msg("migrations applied")
	}

	redisClient, err := redis.NewClientWithRetry(ctx, cfg.RedisURL, connectRetryWindow)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to redis")
	}
	defer redisClient.Close()
	log.Info().Msg("connected to redis")

	m := metrics.New()
	jwtManager := auth.NewJWTManager(cfg.JWTSecret, cfg.JWTExpiration)

	// Repositories
	txManager := postgresRepo.NewTxManager(pool)
	accountRepo := postgresRepo.NewAccountRepository(pool)
	transferRepo := postgresRepo.NewTransferRepository(pool)
	entryRepo := postgresRepo.NewEntryRepository(pool)
	ledgerRepo := postgresRepo.NewLedgerRepository(pool)
	userRepo := postgresRepo.NewUserRepository(pool)
	idempotencyStore := redisRepo.NewIdempotencyStore(redisClient)
	refGen := postgresRepo.NewULIDGenerator()

	// Use cases
	userUC := usecase.NewUserUseCase(userRepo, m, log)
	accountUC := usecase.NewAccountUseCase(accountRepo, m, log)
	transactionUC := usecase.NewTransactionUseCase(txManager, accountRepo, entryRepo, m, log)
	transferUC := usecase.NewTransferUseCase(txManager, accountRepo, transferRepo, entryRepo, refGen, m, log)
	entryUC := usecase.NewEntryUseCase(entryRepo, log)
	ledgerUC := usecase.NewLedgerUseCase(ledgerRepo, accountRepo, entryRepo, m, log)

	// Handlers
	authHandler := handler.NewAuthHandler(userUC, jwtManager)
	accountHandler := handler.NewAccountHandler(accountUC)
	transactionHandler := handler.NewTransactionHandler(transactionUC)
	transferHandler := handler.NewTransferHandler(transferUC, accountUC)
	entryHandler := handler.NewEntryHandler(entryUC, accountUC)
	ledgerHandler := handler.NewLedgerHandler(ledgerUC, accountUC)
	healthHandler := handler.NewHealthHandler(pool, redisClient)

	var rateLimiter *middleware.RateLimiter
	if cfg.RateLimitRPS > 0 {
		rateLimiter = middleware.NewRateLimiter(cfg.RateLimitRPS, cfg.RateLimitBurst)
	}

	router := httpAdapter.NewRouter(httpAdapter.RouterConfig{
		AuthHandler:        authHandler,
		AccountHandler:     accountHandler,
		TransactionHandler: transactionHandler,
		TransferHandler:    transferHandler,
		EntryHandler:       entryHandler,
		LedgerHandler:      ledgerHandler,
		HealthHandler:      healthHandler,
		JWTManager:         jwtManager,
		IdempotencyStore:   idempotencyStore,
		RateLimiter:        rateLimiter,
		Logger:             log,
	})

	server := &http.Server{
		Addr:         fmt.Sprintf(":%s", cfg.HTTPPort),
		Handler:      router,
		ReadTimeout:  cfg.HTTPReadTimeout,
		WriteTimeout: cfg.HTTPWriteTimeout,
		IdleTimeout:  cfg.HTTPIdleTimeout,
	}

	go func() {
		log.Info().Str("port", cfg.HTTPPort).Msg("starting server")
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("server failed")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.HTTPShutdownTimeout)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Fatal().Err(err).Msg("server forced to shutdown")
	}

	log.Info().Msg("server stopped")
}
