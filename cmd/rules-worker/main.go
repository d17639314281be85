package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/aescanero/dago-node-rules/internal/config"
	"github.com/aescanero/dago-node-rules/internal/eval/cel"
	"github.com/aescanero/dago-node-rules/internal/logging"
	"github.com/aescanero/dago-node-rules/internal/metrics"
	"github.com/aescanero/dago-node-rules/internal/rules"
	"github.com/aescanero/dago-node-rules/internal/worker"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

var (
	// Version is set at build time
	Version = "dev"
	// BuildTime is set at build time
	BuildTime = "unknown"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load config: %v\n", err)
		os.Exit(1)
	}

	// Initialize logger
	logger, err := logging.New(cfg.LogLevel)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer func() { _ = logger.Sync() }()

	logger.Info("starting rule worker",
		zap.String("version", Version),
		zap.String("build_time", BuildTime),
		zap.String("worker_id", cfg.WorkerID),
	)

	// Log configuration (without sensitive data)
	logger.Info("configuration loaded", zap.String("config", cfg.String()))

	// Compile rules before touching Redis so a bad rule file fails fast
	ruleSet, err := rules.LoadRuleSet(cfg.RulesFile)
	if err != nil {
		logger.Fatal("failed to load rule file", zap.String("path", cfg.RulesFile), zap.Error(err))
	}
	engine, err := rules.NewFromRuleSet(ruleSet,
		rules.WithLogger(logger),
		rules.WithMaxDepth(cfg.MaxDepth),
	)
	if err != nil {
		logger.Fatal("failed to compile rules", zap.Error(err))
	}

	filter, err := cel.NewFilter(cfg.RowFilter)
	if err != nil {
		logger.Fatal("failed to compile row filter", zap.Error(err))
	}
	if filter.Enabled() {
		logger.Info("row filter enabled", zap.String("expression", filter.Expression()))
	}

	var collector *metrics.Collector
	if cfg.MetricsEnabled {
		collector = metrics.NewCollector("rules", nil)
	}

	// Initialize Redis client
	redisClient := redis.NewClient(&redis.Options{
		Addr:     cfg.RedisAddr,
		Password: cfg.RedisPassword,
		DB:       cfg.RedisDB,
	})

	// Test Redis connection
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := redisClient.Ping(ctx).Err(); err != nil {
		logger.Fatal("failed to connect to redis", zap.Error(err))
	}
	logger.Info("connected to redis", zap.String("addr", cfg.RedisAddr))

	// Initialize worker
	w := worker.NewWorker(cfg, redisClient, engine, filter, collector, logger)

	// Start worker
	if err := w.Start(); err != nil {
		logger.Fatal("failed to start worker", zap.Error(err))
	}

	// Start health server
	healthServer := worker.NewHealthServer(cfg.HealthPort, redisClient, collector, logger)
	if err := healthServer.Start(); err != nil {
		logger.Fatal("failed to start health server", zap.Error(err))
	}

	// Wait for shutdown signal
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

	logger.Info("rule worker running, press Ctrl+C to stop")
	<-sigChan

	logger.Info("shutdown signal received, stopping worker")

	// Stop health server
	if err := healthServer.Stop(); err != nil {
		logger.Error("failed to stop health server", zap.Error(err))
	}

	// Stop worker
	if err := w.Stop(); err != nil {
		logger.Error("failed to stop worker", zap.Error(err))
	}

	// Close Redis connection
	if err := redisClient.Close(); err != nil {
		logger.Error("failed to close redis connection", zap.Error(err))
	}

	logger.Info("worker stopped gracefully")
}
