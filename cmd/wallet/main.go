package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/rs/zerolog/log"

	"github.com/akarpov/walletsvc/internal/infrastructure/assertion"
	"github.com/akarpov/walletsvc/internal/infrastructure/auth"
	"github.com/akarpov/walletsvc/internal/infrastructure/config"
	"github.com/akarpov/walletsvc/internal/infrastructure/logger"
	"github.com/akarpov/walletsvc/internal/infrastructure/postgres"
	"github.com/akarpov/walletsvc/internal/infrastructure/redis"
	httpAdapter "github.com/akarpov/walletsvc/internal/wallet/adapter/http"
	"github.com/akarpov/walletsvc/internal/wallet/adapter/http/handler"
	identityClient "github.com/akarpov/walletsvc/internal/wallet/adapter/identity"
	postgresRepo "github.com/akarpov/walletsvc/internal/wallet/adapter/repository/postgres"
	redisRepo "github.com/akarpov/walletsvc/internal/wallet/adapter/repository/redis"
	"github.com/akarpov/walletsvc/internal/wallet/usecase"
)

func main() {
	// Load configuration
	cfg, err := config.LoadWallet()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load configuration")
	}

	// Setup logger
	appLogger := logger.New(logger.Config{Level: cfg.LogLevel, Format: cfg.LogFormat})
	log.Logger = appLogger

	if cfg.JWTSecret == "" {
		log.Fatal().Msg("JWT_SECRET is required")
	}
	if cfg.InternalTokenSecret == "" {
		log.Fatal().Msg("INTERNAL_TOKEN_SECRET is required")
	}

	ctx := context.Background()

	// Run migrations
	if err := postgres.RunMigrations(cfg.DatabaseURL, cfg.MigrationsPath); err != nil {
		log.Fatal().Err(err).Msg("failed to run migrations")
	}

	// Connect to PostgreSQL
	pool, err := postgres.NewPool(ctx, cfg.DatabaseURL, cfg.DatabaseMaxConns, cfg.DatabaseMinConns, cfg.DatabaseTimeout)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to postgres")
	}
	defer pool.Close()
	log.Info().Msg("connected to postgres")

	// Connect to Redis
	redisClient, err := redis.NewClient(ctx, cfg.RedisURL)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to redis")
	}
	defer redisClient.Close()
	log.Info().Msg("connected to redis")

	// Initialize repositories
	entryRepo := postgresRepo.NewEntryRepository(pool)
	idempotencyStore := redisRepo.NewIdempotencyStore(redisClient)
	idGen := postgresRepo.NewULIDGenerator()

	// Service-to-service credential for identity validation calls
	cred := assertion.NewCredential(cfg.InternalTokenSecret)
	signer := assertion.NewSigner(cred, cfg.InternalTokenTTL)
	identity := identityClient.NewClient(cfg.IdentityURL, signer, cfg.IdentityTimeout, appLogger)

	// Initialize use cases
	transactionUC := usecase.NewTransactionUseCase(entryRepo, identity, idGen)

	// Initialize handlers
	transactionHandler := handler.NewTransactionHandler(transactionUC)
	healthHandler := handler.NewHealthHandler(pool, redisClient)

	jwtManager := auth.NewJWTManager(cfg.JWTSecret, cfg.JWTExpiration)

	// Create router
	router := httpAdapter.NewRouter(httpAdapter.RouterConfig{
		TransactionHandler: transactionHandler,
		HealthHandler:      healthHandler,
		JWTManager:         jwtManager,
		IdempotencyStore:   idempotencyStore,
		IdempotencyTTL:     cfg.IdempotencyTTL,
		Logger:             appLogger,
	})

	// Create server
	server := &http.Server{
		Addr:         fmt.Sprintf(":%s", cfg.HTTPPort),
		Handler:      router,
		ReadTimeout:  cfg.HTTPReadTimeout,
		WriteTimeout: cfg.HTTPWriteTimeout,
		IdleTimeout:  cfg.HTTPIdleTimeout,
	}

	// Start server in goroutine
	go func() {
		log.Info().Str("port", cfg.HTTPPort).Msg("starting wallet service")
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("server failed")
		}
	}()

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("shutting down server...")

	// Graceful shutdown
	ctx, cancel := context.WithTimeout(context.Background(), cfg.HTTPShutdownTimeout)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		log.Fatal().Err(err).Msg("server forced to shutdown")
	}

	log.Info().Msg("server stopped")
}
