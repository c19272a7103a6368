package main

import (
	"context"
	"crypto/rsa"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"ecommerce-connect/config"
	httpHandler "ecommerce-connect/internal/adapter/http/handler"
	"ecommerce-connect/internal/adapter/storage/keyfile"
	redisStorage "ecommerce-connect/internal/adapter/storage/redis"
	"ecommerce-connect/internal/core/ports"
	"ecommerce-connect/internal/service"
	"ecommerce-connect/pkg/logger"

	"github.com/gin-gonic/gin"
)

func main() {
	// Load configuration
	cfg, err := config.Load(os.Getenv("ECC_CONFIG"))
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load config: %v\n", err)
		os.Exit(1)
	}

	// Initialize logger
	log := logger.New(cfg.Log.Level, cfg.Log.Pretty)

	if err := cfg.Validate(); err != nil {
		log.Fatal().Err(err).Msg("Invalid configuration")
	}

	log.Info().
		Str("mode", cfg.Server.Mode).
		Int("port", cfg.Server.Port).
		Msg("Starting ECommerceConnect signing service")

	ctx := context.Background()

	// Signing key: read per call, or once when caching is enabled
	var keys ports.PrivateKeySource = keyfile.NewFile(cfg.Signing.PrivateKeyPath)
	if cfg.Signing.CacheKey {
		keys = keyfile.NewCache(keys)
	}
	if _, err := keys.PrivateKey(); err != nil {
		log.Warn().Err(err).Str("path", cfg.Signing.PrivateKeyPath).Msg("Signing key not loadable yet, signing requests will fail until fixed")
	}

	var gatewayKey *rsa.PublicKey
	if cfg.Signing.GatewayKeyPath != "" {
		gatewayKey, err = keyfile.ReadPublicKey(cfg.Signing.GatewayKeyPath)
		if err != nil {
			log.Fatal().Err(err).Msg("Failed to load gateway public key")
		}
		log.Info().Msg("Gateway response signatures will be verified")
	}

	healthCheckers := []ports.HealthChecker{keyfile.NewHealthCheck(keys)}

	// Redis is only needed for rate limiting
	var rateLimitStore *redisStorage.RateLimitStore
	if cfg.Redis.Enabled {
		rdb, err := redisStorage.NewClient(ctx, cfg.Redis, log)
		if err != nil {
			log.Fatal().Err(err).Msg("Failed to connect to Redis")
		}
		defer rdb.Close()
		rateLimitStore = redisStorage.NewRateLimitStore(rdb)
		healthCheckers = append(healthCheckers, redisStorage.NewHealthCheck(rdb))
	}

	// Bearer auth is enabled by a JWT secret
	var tokenSvc ports.TokenService
	if cfg.JWT.Secret != "" {
		tokenSvc = service.NewJWTTokenService(cfg.JWT.Secret, cfg.JWT.Expiry, cfg.JWT.Issuer)
	} else {
		log.Warn().Msg("jwt.secret not set, API is unauthenticated")
	}

	gin.SetMode(cfg.Server.Mode)
	router := httpHandler.SetupRouter(httpHandler.RouterDeps{
		MessageSvc:     service.NewMessageSigningService(keys, log),
		FormSvc:        service.NewFormSigningService(keys, log),
		ResponseSvc:    service.NewResponseDecodingService(gatewayKey, log),
		TokenSvc:       tokenSvc,
		RateLimitStore: rateLimitStore,
		HealthCheckers: healthCheckers,
		MaxBodyBytes:   cfg.Server.MaxBodyBytes,
		Logger:         log,
	})

	srv := &http.Server{
		Addr:    cfg.Server.Addr(),
		Handler: router,
	}

	// Start server in goroutine
	go func() {
		log.Info().Str("addr", srv.Addr).Msg("HTTP server listening")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("HTTP server failed")
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info().Msg("Shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("Server forced to shutdown")
	}

	log.Info().Msg("Server exited")
}
