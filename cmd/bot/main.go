package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"token-earn-bot/config"
	"token-earn-bot/internal/adapter/chain/ethereum"
	httpHandler "token-earn-bot/internal/adapter/http/handler"
	pgStorage "token-earn-bot/internal/adapter/storage/postgres"
	redisStorage "token-earn-bot/internal/adapter/storage/redis"
	"token-earn-bot/internal/adapter/telegram"
	"token-earn-bot/internal/core/ports"
	"token-earn-bot/internal/service"
	"token-earn-bot/pkg/logger"
)

func main() {
	// Load configuration
	cfg, err := config.Load("")
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load config: %v\n", err)
		os.Exit(1)
	}

	// Initialize logger
	log := logger.New(cfg.Log.Level, cfg.Log.Pretty)

	log.Info().
		Str("currency", cfg.Withdrawal.Currency).
		Int64("chain_id", cfg.Chain.ChainID).
		Msg("Starting Token Earn Bot")

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Initialize PostgreSQL pool
	pool, err := pgStorage.NewPool(ctx, cfg.Database, log)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to connect to PostgreSQL")
	}
	defer pool.Close()
	log.Info().Msg("PostgreSQL connected")

	// Initialize Redis client
	rdb, err := redisStorage.NewClient(ctx, cfg.Redis, log)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to connect to Redis")
	}
	defer rdb.Close()
	log.Info().Msg("Redis connected")

	// Initialize chain wallet gateway
	wallet, err := ethereum.NewWallet(ctx, cfg.Chain, log)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to initialize wallet gateway")
	}
	defer wallet.Close()
	log.Info().Str("address", wallet.Address()).Msg("Hot wallet connected")

	// Initialize repositories
	userRepo := pgStorage.NewUserRepo(pool)
	withdrawalRepo := pgStorage.NewWithdrawalRepo(pool)
	transactor := pgStorage.NewTransactor(pool)

	// Initialize Redis stores
	confirmStore := redisStorage.NewConfirmStore(rdb)

	// Initialize pending withdrawal registry with its background sweeper
	registry := service.NewRegistry(cfg.Withdrawal.PendingTTL, cfg.Withdrawal.SweepInterval, log)
	go registry.Run(ctx)

	// Initialize business services
	userSvc := service.NewUserService(userRepo, log)
	withdrawalSvc := service.NewWithdrawalService(
		userRepo,
		withdrawalRepo,
		wallet,
		registry,
		confirmStore,
		transactor,
		cfg.Withdrawal,
		log,
	)

	// Initialize health checkers
	pgHealth := pgStorage.NewHealthCheck(pool)
	redisHealth := redisStorage.NewHealthCheck(rdb)

	// Setup Gin router for the operator API
	router := httpHandler.SetupRouter(httpHandler.RouterDeps{
		Gateway:        wallet,
		WithdrawalRepo: withdrawalRepo,
		Registry:       registry,
		HealthCheckers: []ports.HealthChecker{pgHealth, redisHealth, wallet},
		AdminToken:     cfg.Admin.Token,
		Mode:           cfg.Admin.Mode,
		Logger:         log,
	})

	addr := fmt.Sprintf("%s:%d", cfg.Admin.Host, cfg.Admin.Port)
	srv := &http.Server{
		Addr:    addr,
		Handler: router,
	}

	// Start operator API in goroutine
	go func() {
		log.Info().Str("addr", addr).Msg("Operator API listening")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("Operator API failed")
		}
	}()

	// Start the Telegram bot loop
	bot, err := telegram.NewBot(cfg.Telegram, cfg.Withdrawal, userSvc, withdrawalSvc, log)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to connect to Telegram")
	}
	go bot.Run(ctx)

	// Wait for shutdown signal
	<-ctx.Done()
	log.Info().Msg("Shutting down...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("Operator API forced to shutdown")
	}

	log.Info().Msg("Bot exited")
}
