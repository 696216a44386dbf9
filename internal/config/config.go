package config

import (
	"errors"
	"fmt"
	"time"

	"github.com/aescanero/dago-adapters/pkg/llm"
	"github.com/caarlos0/env/v10"
	"github.com/redis/go-redis/v9"
	"go.uber.org/multierr"
	"go.uber.org/zap"
)

// Config holds all configuration for the render worker
type Config struct {
	// Worker configuration
	WorkerID string `env:"WORKER_ID" envDefault:"renderer-1"`

	// Redis configuration
	RedisAddr     string `env:"REDIS_ADDR" envDefault:"localhost:6379"`
	RedisPassword string `env:"REDIS_PASS" envDefault:""`
	RedisDB       int    `env:"REDIS_DB" envDefault:"0"`

	// Stream configuration
	StreamKey     string        `env:"STREAM_KEY" envDefault:"render.work"`
	ConsumerGroup string        `env:"CONSUMER_GROUP" envDefault:"render-workers"`
	ResultStream  string        `env:"RESULT_STREAM" envDefault:"render.done"`
	BlockTime     time.Duration `env:"BLOCK_TIME" envDefault:"1s"`
	MaxRetries    int           `env:"MAX_RETRIES" envDefault:"3"`

	// State configuration
	StateKeyPrefix string `env:"STATE_KEY_PREFIX" envDefault:"graph:state:"`

	// LLM configuration
	LLMProvider  string        `env:"LLM_PROVIDER" envDefault:"anthropic"`
	LLMAPIKey    string        `env:"LLM_API_KEY"`
	LLMModel     string        `env:"LLM_MODEL" envDefault:"claude-sonnet-4-20250514"`
	LLMTimeout   time.Duration `env:"LLM_TIMEOUT" envDefault:"30s"`
	LLMMaxTokens int           `env:"LLM_MAX_TOKENS" envDefault:"1024"`

	// Template configuration
	TemplateMaxCounters int  `env:"TEMPLATE_MAX_COUNTERS" envDefault:"50"`
	CELEnabled          bool `env:"CEL_ENABLED" envDefault:"true"`

	// Health check configuration
	HealthPort int `env:"HEALTH_PORT" envDefault:"8083"`

	// Logging configuration
	LogLevel string `env:"LOG_LEVEL" envDefault:"info"`
}

// Load loads configuration from environment variables
func Load() (*Config, error) {
	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	// Validate configuration
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return cfg, nil
}

// Validate validates the configuration and reports every invalid option
func (c *Config) Validate() error {
	var err error

	required := []struct {
		name  string
		value string
	}{
		{"WORKER_ID", c.WorkerID},
		{"REDIS_ADDR", c.RedisAddr},
		{"STREAM_KEY", c.StreamKey},
		{"CONSUMER_GROUP", c.ConsumerGroup},
		{"RESULT_STREAM", c.ResultStream},
		{"STATE_KEY_PREFIX", c.StateKeyPrefix},
		{"LLM_PROVIDER", c.LLMProvider},
		{"LLM_MODEL", c.LLMModel},
	}
	for _, r := range required {
		if r.value == "" {
			err = multierr.Append(err, fmt.Errorf("%s is required", r.name))
		}
	}

	// LLM_API_KEY is optional - only required when using LLM mode
	// It will be validated at runtime if LLM rendering is attempted

	if c.StreamKey != "" && c.StreamKey == c.ResultStream {
		err = multierr.Append(err, errors.New("STREAM_KEY and RESULT_STREAM must differ"))
	}

	if c.LLMTimeout <= 0 {
		err = multierr.Append(err, errors.New("LLM_TIMEOUT must be positive"))
	}

	if c.LLMMaxTokens <= 0 {
		err = multierr.Append(err, errors.New("LLM_MAX_TOKENS must be positive"))
	}

	if c.BlockTime <= 0 {
		err = multierr.Append(err, errors.New("BLOCK_TIME must be positive"))
	}

	if c.MaxRetries < 0 {
		err = multierr.Append(err, errors.New("MAX_RETRIES must be non-negative"))
	}

	if c.TemplateMaxCounters <= 0 {
		err = multierr.Append(err, errors.New("TEMPLATE_MAX_COUNTERS must be positive"))
	}

	if c.HealthPort <= 0 || c.HealthPort > 65535 {
		err = multierr.Append(err, errors.New("HEALTH_PORT must be between 1 and 65535"))
	}

	if !isValidLogLevel(c.LogLevel) {
		err = multierr.Append(err, errors.New("LOG_LEVEL must be one of: debug, info, warn, error"))
	}

	return err
}

// isValidLogLevel checks if the log level is valid
func isValidLogLevel(level string) bool {
	validLevels := map[string]bool{
		"debug": true,
		"info":  true,
		"warn":  true,
		"error": true,
	}
	return validLevels[level]
}

// RedisOptions returns Redis client options
func (c *Config) RedisOptions() *redis.Options {
	return &redis.Options{
		Addr:     c.RedisAddr,
		Password: c.RedisPassword,
		DB:       c.RedisDB,
	}
}

// LLMConfig returns LLM client options
func (c *Config) LLMConfig(logger *zap.Logger) *llm.Config {
	return &llm.Config{
		Provider: c.LLMProvider,
		APIKey:   c.LLMAPIKey,
		Logger:   logger,
	}
}

// String returns a string representation of the config (without sensitive data)
func (c *Config) String() string {
	return fmt.Sprintf(
		"Config{WorkerID=%s, RedisAddr=%s, RedisDB=%d, StreamKey=%s, ConsumerGroup=%s, ResultStream=%s, "+
			"LLMProvider=%s, LLMModel=%s, TemplateMaxCounters=%d, CELEnabled=%v, HealthPort=%d, LogLevel=%s}",
		c.WorkerID,
		c.RedisAddr,
		c.RedisDB,
		c.StreamKey,
		c.ConsumerGroup,
		c.ResultStream,
		c.LLMProvider,
		c.LLMModel,
		c.TemplateMaxCounters,
		c.CELEnabled,
		c.HealthPort,
		c.LogLevel,
	)
}
