package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/rs/zerolog/log"

	httpAdapter "github.com/akarpov/walletsvc/internal/identity/adapter/http"
	"github.com/akarpov/walletsvc/internal/identity/adapter/http/handler"
	postgresRepo "github.com/akarpov/walletsvc/internal/identity/adapter/repository/postgres"
	"github.com/akarpov/walletsvc/internal/identity/usecase"
	"github.com/akarpov/walletsvc/internal/infrastructure/assertion"
	"github.com/akarpov/walletsvc/internal/infrastructure/auth"
	"github.com/akarpov/walletsvc/internal/infrastructure/config"
	"github.com/akarpov/walletsvc/internal/infrastructure/logger"
	"github.com/akarpov/walletsvc/internal/infrastructure/postgres"
)

func main() {
	// Load configuration
	cfg, err := config.LoadIdentity()
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

	// Initialize repositories
	userRepo := postgresRepo.NewUserRepository(pool)
	idGen := postgresRepo.NewULIDGenerator()

	// Initialize use cases
	userUC := usecase.NewUserUseCase(userRepo, idGen)

	jwtManager := auth.NewJWTManager(cfg.JWTSecret, cfg.JWTExpiration)
	verifier := assertion.NewVerifier(assertion.NewCredential(cfg.InternalTokenSecret))

	// Initialize handlers
	authHandler := handler.NewAuthHandler(userUC, jwtManager)
	userHandler := handler.NewUserHandler(userUC)
	internalHandler := handler.NewInternalHandler(userUC, verifier, appLogger)
	healthHandler := handler.NewHealthHandler(pool)

	// Create router
	router := httpAdapter.NewRouter(httpAdapter.RouterConfig{
		AuthHandler:     authHandler,
		UserHandler:     userHandler,
		InternalHandler: internalHandler,
		HealthHandler:   healthHandler,
		JWTManager:      jwtManager,
		Logger:          appLogger,
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
		log.Info().Str("port", cfg.HTTPPort).Msg("starting identity service")
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
