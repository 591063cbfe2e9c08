package config

import (
	"errors"
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/caarlos0/env/v10"
)

// Global singleton so infrastructure helpers can reach configuration
// without threading it through every call site.
var globalConfig *Config

// Config holds all environment backed configuration for the reaction API.
type Config struct {
	// HTTP Server
	HTTPPort    int    `env:"HTTP_PORT" envDefault:"8080"`
	MetricsPort int    `env:"METRICS_PORT" envDefault:"9091"`
	DatabaseURL string `env:"DATABASE_URL,notEmpty"`

	// Reasoning backend. An empty API key is a valid configuration state:
	// the engine then serves heuristic fallback predictions only.
	OpenAIAPIKey         string `env:"OPENAI_API_KEY"`
	OpenAIModel          string `env:"OPENAI_MODEL" envDefault:"gpt-4o-mini"`
	OpenAIBaseURL        string `env:"OPENAI_BASE_URL"`
	ReasoningMaxAttempts int    `env:"REASONING_MAX_ATTEMPTS" envDefault:"3"`
	ReasoningReflection  bool   `env:"REASONING_REFLECTION" envDefault:"true"`

	// PubChem fact retrieval
	PubChemBaseURL     string        `env:"PUBCHEM_BASE_URL" envDefault:"https://pubchem.ncbi.nlm.nih.gov/rest/pug"`
	PubChemTimeout     time.Duration `env:"PUBCHEM_TIMEOUT" envDefault:"10s"`
	PubChemMaxAttempts int           `env:"PUBCHEM_MAX_ATTEMPTS" envDefault:"3"`

	// Observability / Logging
	HTTPTimeout      time.Duration `env:"HTTP_TIMEOUT" envDefault:"30s"`
	OTLPEndpoint     string        `env:"OTEL_EXPORTER_OTLP_ENDPOINT"`
	OTLPHeaders      string        `env:"OTEL_EXPORTER_OTLP_HEADERS"`
	ServiceName      string        `env:"SERVICE_NAME" envDefault:"reaction-api"`
	ServiceNamespace string        `env:"SERVICE_NAMESPACE" envDefault:"chemezy"`
	Environment      string        `env:"ENVIRONMENT" envDefault:"development"`
	LogLevel         string        `env:"LOG_LEVEL" envDefault:"info"`
	LogFormat        string        `env:"LOG_FORMAT" envDefault:"console"`

	// Features
	AutoMigrate           bool `env:"AUTO_MIGRATE" envDefault:"true"`
	SeedChemicals         bool `env:"SEED_CHEMICALS" envDefault:"true"`
	StatsCronEnabled      bool `env:"STATS_CRON_ENABLED" envDefault:"true"`
	StatsIntervalMinutes  int  `env:"STATS_CRON_INTERVAL_MINUTES" envDefault:"60"`

	// Internal
	EnvReloadedAt time.Time
}

// Load parses environment variables into Config and performs minimal validation.
func Load() (*Config, error) {
	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parse env: %w", err)
	}

	if cfg.OpenAIBaseURL != "" {
		if _, err := url.ParseRequestURI(cfg.OpenAIBaseURL); err != nil {
			return nil, fmt.Errorf("invalid OPENAI_BASE_URL: %w", err)
		}
	}
	if _, err := url.ParseRequestURI(cfg.PubChemBaseURL); err != nil {
		return nil, fmt.Errorf("invalid PUBCHEM_BASE_URL: %w", err)
	}

	if cfg.ReasoningMaxAttempts < 1 {
		return nil, errors.New("REASONING_MAX_ATTEMPTS must be at least 1")
	}
	if cfg.PubChemMaxAttempts < 1 {
		return nil, errors.New("PUBCHEM_MAX_ATTEMPTS must be at least 1")
	}

	cfg.LogLevel = strings.ToLower(cfg.LogLevel)
	cfg.LogFormat = strings.ToLower(cfg.LogFormat)
	cfg.EnvReloadedAt = time.Now()

	globalConfig = cfg

	return cfg, nil
}

// GetGlobal returns the last loaded configuration, or nil when Load has not run.
func GetGlobal() *Config {
	return globalConfig
}

// ReasoningConfigured reports whether a reasoning backend is available.
func (c *Config) ReasoningConfigured() bool {
	return strings.TrimSpace(c.OpenAIAPIKey) != ""
}
