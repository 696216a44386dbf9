package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/aescanero/dago-adapters/pkg/llm"
	"github.com/aescanero/dago-libs/pkg/ports"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/aescanero/dago-node-renderer/internal/config"
	"github.com/aescanero/dago-node-renderer/internal/eval/cel"
	"github.com/aescanero/dago-node-renderer/internal/eval/template"
	"github.com/aescanero/dago-node-renderer/internal/render"
	"github.com/aescanero/dago-node-renderer/internal/worker"
)

var (
	// Version is set at build time
	Version = "dev"
	// BuildTime is set at build time
	BuildTime = "unknown"
)

// probeTemplate exercises the collection helpers in the readiness check
const probeTemplate = `{{#withSort probe}}{{this}}{{/withSort}}`

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load config: %v\n", err)
		os.Exit(1)
	}

	// Initialize logger
	logger, err := initLogger(cfg.LogLevel)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer func() { _ = logger.Sync() }()

	logger.Info("starting render worker",
		zap.String("version", Version),
		zap.String("build_time", BuildTime),
		zap.String("worker_id", cfg.WorkerID),
	)

	// Log configuration (without sensitive data)
	logger.Info("configuration loaded", zap.String("config", cfg.String()))

	// Initialize Redis client
	redisClient := redis.NewClient(cfg.RedisOptions())

	// Test Redis connection
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := redisClient.Ping(ctx).Err(); err != nil {
		logger.Fatal("failed to connect to redis", zap.Error(err))
	}
	logger.Info("connected to redis", zap.String("addr", cfg.RedisAddr))

	// Initialize LLM client (optional for template-only mode)
	var llmClient ports.LLMClient
	if cfg.LLMAPIKey != "" {
		llmClient, err = initLLMClient(cfg, logger)
		if err != nil {
			llmClient = nil
			logger.Warn("failed to initialize llm client (llm rendering will not be available)",
				zap.Error(err),
			)
		} else {
			logger.Info("llm client initialized",
				zap.String("provider", cfg.LLMProvider),
				zap.String("model", cfg.LLMModel),
			)
		}
	} else {
		logger.Warn("llm api key not provided (llm rendering will not be available)")
	}

	// Initialize state store (Redis JSON implementation)
	stateStore := NewRedisStateStore(redisClient, cfg.StateKeyPrefix, logger)

	// Initialize template engine
	engineOpts := []template.Option{
		template.WithLogger(logger.Named("template")),
		template.WithMaxCounters(cfg.TemplateMaxCounters),
	}
	if cfg.CELEnabled {
		engineOpts = append(engineOpts, template.WithEvaluator(cel.NewEvaluator()))
	} else {
		engineOpts = append(engineOpts, template.WithEvaluator(nil))
	}
	engine := template.NewEngine(engineOpts...)

	// Initialize renderer
	renderer := render.NewRenderer(engine, llmClient, cfg.LLMModel, cfg.LLMMaxTokens, logger)
	logger.Info("renderer initialized")

	// Initialize worker
	w := worker.NewWorker(cfg, redisClient, renderer, stateStore, logger)

	// Start worker
	if err := w.Start(); err != nil {
		logger.Fatal("failed to start worker", zap.Error(err))
	}

	// Start health server
	healthServer := worker.NewHealthServer(cfg.HealthPort, redisClient, logger, worker.Check{
		Name: "templates",
		Probe: func(context.Context) error {
			_, err := engine.Render(probeTemplate, map[string]interface{}{
				"probe": []interface{}{"b", "a"},
			})
			return err
		},
	})
	if err := healthServer.Start(); err != nil {
		logger.Fatal("failed to start health server", zap.Error(err))
	}

	// Wait for shutdown signal
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

	logger.Info("render worker running, press Ctrl+C to stop")
	<-sigChan

	logger.Info("shutdown signal received, stopping worker")

	// Stop health server
	if err := healthServer.Stop(); err != nil {
		logger.Error("failed to stop health server", zap.Error(err))
	}

	// Stop worker
	if err := w.Stop(10 * time.Second); err != nil {
		logger.Error("failed to stop worker", zap.Error(err))
	}

	// Close Redis connection
	if err := redisClient.Close(); err != nil {
		logger.Error("failed to close redis connection", zap.Error(err))
	}

	logger.Info("worker stopped gracefully")
}

// initLogger initializes the logger
func initLogger(level string) (*zap.Logger, error) {
	var zapLevel zapcore.Level
	switch level {
	case "debug":
		zapLevel = zapcore.DebugLevel
	case "info":
		zapLevel = zapcore.InfoLevel
	case "warn":
		zapLevel = zapcore.WarnLevel
	case "error":
		zapLevel = zapcore.ErrorLevel
	default:
		zapLevel = zapcore.InfoLevel
	}

	config := zap.Config{
		Level:            zap.NewAtomicLevelAt(zapLevel),
		Development:      false,
		Encoding:         "json",
		EncoderConfig:    zap.NewProductionEncoderConfig(),
		OutputPaths:      []string{"stdout"},
		ErrorOutputPaths: []string{"stderr"},
	}

	return config.Build()
}

// initLLMClient initializes the LLM client using dago-adapters
func initLLMClient(cfg *config.Config, logger *zap.Logger) (ports.LLMClient, error) {
	return llm.NewClient(cfg.LLMConfig(logger.Named("llm")))
}
