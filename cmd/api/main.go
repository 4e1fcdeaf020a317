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

	gatewayplatform "github.com/growvest/ledger-engine/internal/infra/gateway/platform"
	infraredis "github.com/growvest/ledger-engine/internal/infra/redis"
	"github.com/growvest/ledger-engine/internal/ledger/service"
	"github.com/growvest/ledger-engine/internal/transport/httpapi"
	"github.com/growvest/ledger-engine/internal/transport/httpapi/handler"
	"github.com/growvest/ledger-engine/internal/transport/httpapi/middleware"
	"github.com/growvest/ledger-engine/pkg/config"
	"github.com/growvest/ledger-engine/pkg/logger"
)

func main() {
	// Create context that listens for termination signals
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	// Initialize logger
	log := logger.NewDefault(cfg.Env)
	log.Info("Starting ledger engine API server",
		"env", cfg.Env,
		"port", cfg.Port,
	)

	// Initialize Redis (balance fallback cache). An unreachable cache only
	// removes one rung of the balance ladder, so startup proceeds.
	redisClient := redis.NewClient(&redis.Options{
		Addr:     cfg.RedisURL,
		Password: cfg.RedisPassword,
	})
	pingCtx, cancel := context.WithTimeout(ctx, 3*time.Second)
	if err := redisClient.Ping(pingCtx).Err(); err != nil {
		log.Warn("Redis unavailable, balance fallback cache degraded", "error", err)
	}
	cancel()
	balanceCache := infraredis.NewBalanceCache(redisClient, log)

	// Platform backend client and ledger pipeline
	platformClient := gatewayplatform.NewClient(cfg.PlatformAPIURL, cfg.PlatformAPIKey)
	ledgerSvc := service.New(platformClient, balanceCache, log)

	// HTTP transport
	jwtService := middleware.NewJWTService(cfg.JWTSecret)
	router := httpapi.NewRouter(httpapi.Config{
		Logger:          log,
		AllowedOrigins:  cfg.AllowedOrigins,
		LedgerHandler:   handler.NewLedgerHandler(ledgerSvc),
		ReferralHandler: handler.NewReferralHandler(ledgerSvc),
		HealthHandler:   handler.NewHealthHandler(balanceCache),
		JWTMiddleware:   middleware.JWT(jwtService),
	})

	server := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Start server in a goroutine so shutdown can be handled below
	errCh := make(chan error, 1)
	go func() {
		log.Info("HTTP server listening", "addr", server.Addr)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		log.Error("HTTP server failed", "error", err)
		os.Exit(1)
	case <-ctx.Done():
		log.Info("Shutdown signal received")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Error("Graceful shutdown failed", "error", err)
	}
	if err := redisClient.Close(); err != nil {
		log.Warn("Failed to close Redis client", "error", err)
	}

	log.Info("Server stopped")
}
