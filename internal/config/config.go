package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/caarlos0/env/v10"
)

// Config holds all configuration for the gateway experiment harness
type Config struct {
	LogLevel string `env:"LOG_LEVEL" envDefault:"info"`

	// Gateway configuration
	Gateway GatewayConfig

	// Experiment configuration
	Experiments ExperimentConfig

	// Result sink configuration
	Sink SinkConfig

	// Optional status server (0 disables it)
	StatusPort int `env:"GATELAB_STATUS_PORT" envDefault:"0"`

	// Redis configuration (used when the redis sink is selected)
	Redis RedisConfig
}

// GatewayConfig holds gateway endpoint configuration
type GatewayConfig struct {
	APIKey  string        `env:"GATEWAY_API_KEY"`
	BaseURL string        `env:"GATEWAY_BASE_URL" envDefault:"https://api.concentrate.ai/v1"`
	Timeout time.Duration `env:"GATEWAY_TIMEOUT" envDefault:"30s"`

	// Comma-separated provider-prefixed model identifiers
	OpenAIModels    string `env:"OPENAI_MODELS" envDefault:"openai/gpt-4o-mini"`
	AnthropicModels string `env:"ANTHROPIC_MODELS" envDefault:"anthropic/claude-haiku-3"`
}

// ExperimentConfig holds experiment runner knobs
type ExperimentConfig struct {
	// Pause between sequential calls; naive fixed delay, no backoff
	RequestPause time.Duration `env:"GATELAB_REQUEST_PAUSE" envDefault:"500ms"`

	// PerfRequests is N for both phases of the performance experiment
	PerfRequests int           `env:"GATELAB_PERF_REQUESTS" envDefault:"5"`
	PerfPause    time.Duration `env:"GATELAB_PERF_PAUSE" envDefault:"300ms"`

	// Optional YAML overlay extending the built-in prompt sets
	PromptsFile string `env:"GATELAB_PROMPTS_FILE"`
}

// SinkConfig selects where the run report is written
type SinkConfig struct {
	Kind      string        `env:"GATELAB_SINK" envDefault:"file"`
	OutputDir string        `env:"GATELAB_OUTPUT_DIR" envDefault:"outputs"`
	ReportTTL time.Duration `env:"GATELAB_REPORT_TTL" envDefault:"168h"`
}

// RedisConfig holds Redis connection configuration
type RedisConfig struct {
	Addr     string `env:"REDIS_ADDR" envDefault:"localhost:6379"`
	Password string `env:"REDIS_PASS"`
	DB       int    `env:"REDIS_DB" envDefault:"0"`

	DialTimeout  time.Duration `env:"REDIS_DIAL_TIMEOUT" envDefault:"5s"`
	ReadTimeout  time.Duration `env:"REDIS_READ_TIMEOUT" envDefault:"3s"`
	WriteTimeout time.Duration `env:"REDIS_WRITE_TIMEOUT" envDefault:"3s"`
}

// Load reads configuration from environment variables
func Load() (*Config, error) {
	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return cfg, nil
}

// Validate checks if the configuration is valid
func (c *Config) Validate() error {
	if c.Gateway.APIKey == "" {
		return fmt.Errorf("gateway API key is required (set GATEWAY_API_KEY)")
	}
	if c.Gateway.BaseURL == "" {
		return fmt.Errorf("gateway base URL is required")
	}
	if len(c.OpenAIModelList()) == 0 && len(c.AnthropicModelList()) == 0 {
		return fmt.Errorf("at least one model identifier is required")
	}

	if c.Sink.Kind != "file" && c.Sink.Kind != "redis" {
		return fmt.Errorf("unsupported sink: %s (must be file or redis)", c.Sink.Kind)
	}
	if c.Sink.Kind == "redis" && c.Redis.Addr == "" {
		return fmt.Errorf("redis address is required for the redis sink")
	}

	if c.Experiments.PerfRequests < 1 {
		return fmt.Errorf("perf request count must be at least 1")
	}

	if c.StatusPort < 0 || c.StatusPort > 65535 {
		return fmt.Errorf("invalid status port: %d", c.StatusPort)
	}

	validLogLevels := map[string]bool{
		"debug": true,
		"info":  true,
		"warn":  true,
		"error": true,
	}
	if !validLogLevels[c.LogLevel] {
		return fmt.Errorf("invalid log level: %s (must be debug, info, warn, or error)", c.LogLevel)
	}

	return nil
}

// OpenAIModelList returns the configured OpenAI-style model identifiers
func (c *Config) OpenAIModelList() []string {
	return splitModels(c.Gateway.OpenAIModels)
}

// AnthropicModelList returns the configured Anthropic-style model identifiers
func (c *Config) AnthropicModelList() []string {
	return splitModels(c.Gateway.AnthropicModels)
}

// AllModels returns every configured model identifier, OpenAI first
func (c *Config) AllModels() []string {
	return append(c.OpenAIModelList(), c.AnthropicModelList()...)
}

func splitModels(s string) []string {
	var models []string
	for _, m := range strings.Split(s, ",") {
		if m = strings.TrimSpace(m); m != "" {
			models = append(models, m)
		}
	}
	return models
}
