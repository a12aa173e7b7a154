package config

import (
	"fmt"
	"time"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
	"github.com/rs/zerolog/log"
)

// Environment represents different deployment environments
type Environment string

const (
	EnvDevelopment Environment = "development"
	EnvTesting     Environment = "testing"
	EnvProduction  Environment = "production"
)

const envPrefix = "SNIPPET_SERVICE"

// Config holds the configuration for the snippet service.
// Environment variables are parsed from the SNIPPET_SERVICE_ prefix; tagged
// fields also fall back to the bare name (e.g. ANTHROPIC_API_KEY).
type Config struct {
	// Build target selects high-level environment: local, cloud-dev, cloud
	BuildTarget string `envconfig:"BUILD_TARGET" default:"cloud-dev"`

	// Derived or override drivers
	DBDriver   string `envconfig:"DB_DRIVER" default:"auto"`
	Summarizer string `envconfig:"SUMMARIZER" default:"auto"`

	Environment Environment `envconfig:"ENVIRONMENT" default:"development"`

	// Logging
	LogLevel  string `envconfig:"LOG_LEVEL" default:"info"`
	LogFormat string `envconfig:"LOG_FORMAT" default:"json"`

	// HTTP Configuration
	HTTPPort   int    `envconfig:"HTTP_PORT" default:"3000"`
	CORSOrigin string `envconfig:"CORS_ORIGIN" default:""`

	// Storage
	PostgresDSN string `envconfig:"POSTGRES_DSN" default:""`
	SQLitePath  string `envconfig:"SQLITE_PATH" default:""`

	// Anthropic Messages API
	AnthropicAPIKey     string `envconfig:"ANTHROPIC_API_KEY" default:""`
	AnthropicModel      string `envconfig:"ANTHROPIC_MODEL" default:"claude-3-haiku-20240307"`
	AnthropicAPIVersion string `envconfig:"ANTHROPIC_API_VERSION" default:"2023-06-01"`
	AnthropicBaseURL    string `envconfig:"ANTHROPIC_BASE_URL" default:"https://api.anthropic.com"`

	// OpenAI-compatible chat completions
	OpenAIAPIKey  string `envconfig:"OPENAI_API_KEY" default:""`
	OpenAIModel   string `envconfig:"OPENAI_MODEL" default:"gpt-4o-mini"`
	OpenAIBaseURL string `envconfig:"OPENAI_BASE_URL" default:""`

	// Summary shape
	SummaryMaxWords          int `envconfig:"SUMMARY_MAX_WORDS" default:"30"`
	SummaryMaxTokens         int `envconfig:"SUMMARY_MAX_TOKENS" default:"100"`
	SummarizerTimeoutSeconds int `envconfig:"SUMMARIZER_TIMEOUT_SECONDS" default:"0"`

	// Health / bootstrap
	HealthIntervalSeconds     int  `envconfig:"HEALTH_INTERVAL_SECONDS" default:"30"`
	HealthProbeTimeoutSeconds int  `envconfig:"HEALTH_PROBE_TIMEOUT_SECONDS" default:"5"`
	BootstrapTimeoutSeconds   int  `envconfig:"BOOTSTRAP_TIMEOUT_SECONDS" default:"5"`
	WaitForHealthy            bool `envconfig:"WAIT_FOR_HEALTHY" default:"true"`

	// set by ResolveDefaults when the driver was derived from BuildTarget
	dbDriverDerived   bool
	summarizerDerived bool
}

// ResolveDefaults validates BuildTarget and derives DBDriver and Summarizer when set to "auto" or empty.
func (c *Config) ResolveDefaults() error {
	var defaultDB, defaultSummarizer string

	switch c.BuildTarget {
	case "local":
		defaultDB = "sqlite"
		defaultSummarizer = "local"
	case "cloud-dev", "cloud":
		defaultDB = "postgres"
		defaultSummarizer = "anthropic"
	default:
		return fmt.Errorf("unsupported BUILD_TARGET: %s", c.BuildTarget)
	}

	if c.DBDriver == "" || c.DBDriver == "auto" {
		c.DBDriver = defaultDB
		c.dbDriverDerived = true
	}
	if c.Summarizer == "" || c.Summarizer == "auto" {
		c.Summarizer = defaultSummarizer
		c.summarizerDerived = true
	}

	allowedDB := map[string]bool{"postgres": true, "sqlite": true}
	if !allowedDB[c.DBDriver] {
		return fmt.Errorf("unsupported DB_DRIVER: %s", c.DBDriver)
	}
	allowedSummarizer := map[string]bool{"anthropic": true, "openai": true, "local": true}
	if !allowedSummarizer[c.Summarizer] {
		return fmt.Errorf("unsupported SUMMARIZER: %s", c.Summarizer)
	}
	if c.SummaryMaxWords <= 0 {
		return fmt.Errorf("SUMMARY_MAX_WORDS must be positive, got %d", c.SummaryMaxWords)
	}
	if c.CORSOrigin == "" {
		c.CORSOrigin = fmt.Sprintf("http://localhost:%d", c.HTTPPort)
	}
	return nil
}

// OverrideBuildTarget switches the build target and re-derives the drivers
// that were not set explicitly.
func (c *Config) OverrideBuildTarget(target string) error {
	c.BuildTarget = target
	if c.dbDriverDerived {
		c.DBDriver = "auto"
	}
	if c.summarizerDerived {
		c.Summarizer = "auto"
	}
	return c.ResolveDefaults()
}

// New creates a new Config by parsing environment variables.
// A .env file in the working directory is loaded first when present; real
// environment variables win over it.
// Example: SNIPPET_SERVICE_HTTP_PORT, SNIPPET_SERVICE_DB_DRIVER
func New() (*Config, error) {
	_ = godotenv.Load()

	var cfg Config
	if err := envconfig.Process(envPrefix, &cfg); err != nil {
		return nil, fmt.Errorf("failed to process environment variables: %w", err)
	}

	if err := cfg.ResolveDefaults(); err != nil {
		return nil, err
	}

	log.Info().
		Str("build_target", cfg.BuildTarget).
		Str("db_driver", cfg.DBDriver).
		Str("summarizer", cfg.Summarizer).
		Str("environment", string(cfg.Environment)).
		Int("port", cfg.HTTPPort).
		Str("cors_origin", cfg.CORSOrigin).
		Int("summary_max_words", cfg.SummaryMaxWords).
		Bool("postgres_dsn_present", cfg.PostgresDSN != "").
		Bool("anthropic_key_present", cfg.AnthropicAPIKey != "").
		Bool("openai_key_present", cfg.OpenAIAPIKey != "").
		Msg("Configuration loaded")

	return &cfg, nil
}

// NewForTesting creates a config specifically for testing
func NewForTesting() *Config {
	cfg := &Config{
		Environment: EnvTesting,
		BuildTarget: "local",
		DBDriver:    "sqlite",
		Summarizer:  "local",
		HTTPPort:    3000,
		SQLitePath:  ":memory:",
		LogLevel:    "debug",
		LogFormat:   "json",

		AnthropicModel:      "claude-3-haiku-20240307",
		AnthropicAPIVersion: "2023-06-01",
		AnthropicBaseURL:    "https://api.anthropic.com",
		OpenAIModel:         "gpt-4o-mini",

		SummaryMaxWords:  30,
		SummaryMaxTokens: 100,

		HealthIntervalSeconds:     1,
		HealthProbeTimeoutSeconds: 1,
		BootstrapTimeoutSeconds:   1,
	}
	cfg.CORSOrigin = fmt.Sprintf("http://localhost:%d", cfg.HTTPPort)
	return cfg
}

// IsTesting returns true if the environment is set to testing
func (c *Config) IsTesting() bool {
	return c.Environment == EnvTesting
}

// IsProduction returns true if the environment is set to production
func (c *Config) IsProduction() bool {
	return c.Environment == EnvProduction
}

// GetHTTPAddr returns the HTTP server address
func (c *Config) GetHTTPAddr() string {
	return fmt.Sprintf(":%d", c.HTTPPort)
}

// SummarizerTimeout returns the per-call HTTP timeout for remote summarizers; zero disables it.
func (c *Config) SummarizerTimeout() time.Duration {
	return time.Duration(c.SummarizerTimeoutSeconds) * time.Second
}
