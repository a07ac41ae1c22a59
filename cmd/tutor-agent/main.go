package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/kvistberg/mentor-platform/internal/profile"
	"github.com/kvistberg/mentor-platform/internal/tutor"
	"github.com/kvistberg/mentor-platform/pkg/config"
	"github.com/kvistberg/mentor-platform/pkg/health"
	"github.com/kvistberg/mentor-platform/pkg/llm"
	"github.com/kvistberg/mentor-platform/pkg/mqtt"
	"github.com/kvistberg/mentor-platform/pkg/postgres"
	"github.com/kvistberg/mentor-platform/pkg/redis"
)

func main() {
	// Standard bootstrap (consistent with other agents)
	cfg := config.NewConfig()
	cfg.ServiceName = "tutor-agent"
	cfg.HealthPort = 8081
	if path := os.Getenv("MENTOR_CONFIG_FILE"); path != "" {
		if err := cfg.LoadFromFile(path); err != nil {
			fmt.Fprintf(os.Stderr, "Config file error: %v\n", err)
			os.Exit(1)
		}
	}
	cfg.LoadFromEnv()
	cfg.LoadFromFlags()

	if err := cfg.Validate(); err != nil {
		fmt.Fprintf(os.Stderr, "Config error: %v\n", err)
		os.Exit(1)
	}

	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
		Level: logLevel(cfg.LogLevel),
	}))
	slog.SetDefault(logger)

	logger.Info("Starting Tutor Agent",
		"mqtt", cfg.MQTTAddress(),
		"redis", cfg.RedisAddress(),
		"llm", cfg.LLMEndpoint,
		"model", cfg.LLMModel)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	// Initialize clients
	mqttClient := mqtt.NewClient(cfg, logger)
	redisClient := redis.NewClient(cfg, logger)
	llmClient := llm.NewOllamaClient(cfg.LLMEndpoint, logger)

	pgClient := postgres.NewClient(cfg, logger)
	if err := pgClient.Connect(ctx); err != nil {
		logger.Error("Failed to connect to postgres", "error", err)
		os.Exit(1)
	}

	// The tutor reads profiles through the same bridge the profile agent
	// writes through, so both sides apply one decision policy
	cache := profile.NewCache(redisClient, cfg, logger)
	store := profile.NewStore(pgClient, logger)
	bridge := profile.NewBridge(cache, store, logger)

	agent := tutor.NewAgent(mqttClient, bridge, llmClient, cfg, logger)

	// Health endpoint
	checker := health.NewChecker(mqttClient, redisClient, logger)
	httpMux := http.NewServeMux()
	httpMux.HandleFunc("/health", checker.HandlerFunc())
	httpMux.HandleFunc("/health/detailed", checker.DetailedHandlerFunc())
	go func() {
		addr := fmt.Sprintf(":%d", cfg.HealthPort)
		if err := http.ListenAndServe(addr, httpMux); err != nil {
			logger.Error("Health endpoint failed", "error", err)
		}
	}()

	// Start agent
	agentErr := make(chan error, 1)
	go func() {
		if err := agent.Start(ctx); err != nil {
			agentErr <- err
		}
	}()

	// Wait for shutdown
	select {
	case <-sigChan:
		logger.Info("Shutdown signal received")
	case err := <-agentErr:
		logger.Error("Agent failed", "error", err)
	}

	cancel()
	agent.Stop()
	pgClient.Disconnect()
	redisClient.Close()
	logger.Info("Tutor agent stopped")
}

func logLevel(level string) slog.Level {
	switch level {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
