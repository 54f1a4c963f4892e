// Package cli provides common initialization for the command entrypoint:
// logging, env loading, config validation, and wiring of the optional
// evaluation cache and broker client.
package cli

import (
	"log/slog"
	"os"
	"strings"

	"github.com/joho/godotenv"

	"donare/internal/amqp"
	"donare/internal/charapi"
	"donare/internal/config"
	"donare/internal/evalstore"
	"donare/internal/log"
)

// SetupLogger initializes structured logging at the given level and installs
// it as the process default.
func SetupLogger(level string) *log.Logger {
	logger := log.New(log.ComponentApp, log.Config{Level: parseLevel(level)})
	log.SetDefault(logger)
	return logger
}

func parseLevel(level string) slog.Level {
	switch strings.ToLower(level) {
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

// LoadEnvFile loads the .env file for local development. Errors are ignored
// silently as this is optional in production.
func LoadEnvFile() {
	_ = godotenv.Load()
}

// LoadAndValidateConfig loads configuration and validates it. Returns the
// config or exits the process on validation failure.
func LoadAndValidateConfig(logger *log.Logger) *config.Config {
	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		logger.Error("Configuration validation failed", log.FieldError, err)
		os.Exit(1)
	}
	return cfg
}

// InitEvaluator builds the charity evaluator, wrapping it with the sqlite
// cache when one is configured. The returned cleanup closes the cache.
func InitEvaluator(cfg *config.Config, logger *log.Logger) (charapi.Evaluator, func() error) {
	base := charapi.NewMockEvaluator(logger)
	if cfg.EvalCachePath == "" {
		return base, nil
	}

	store, err := evalstore.New(cfg.EvalCachePath)
	if err != nil {
		logger.Warn("Failed to open evaluation cache, continuing without it",
			log.FieldPath, cfg.EvalCachePath, log.FieldError, err)
		return base, nil
	}

	logger.Info("Opened evaluation cache", log.FieldPath, cfg.EvalCachePath)
	cached := evalstore.NewCachingEvaluator(base, store, cfg.EvalCacheTTL,
		logger.WithComponent(log.ComponentStore))
	return cached, store.Close
}

// InitPublisher connects to the broker when one is configured. Connection
// failures are a warning; the run proceeds without notifications.
func InitPublisher(cfg *config.Config, logger *log.Logger) *amqp.Client {
	if cfg.AMQPURL == "" {
		return nil
	}

	client, err := amqp.NewClient(cfg.AMQPURL, cfg.AMQPExchange, cfg.AMQPQueue, logger)
	if err != nil {
		logger.Warn("Failed to initialize AMQP client, continuing without notifications",
			log.FieldError, err)
		return nil
	}

	logger.Info("Initialized AMQP client",
		"exchange", cfg.AMQPExchange,
		"queue", cfg.AMQPQueue)
	return client
}
