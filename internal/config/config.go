package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/caarlos0/env/v10"
)

// Config holds all configuration for the translate mock server.
type Config struct {
	// Service settings
	ServiceName     string        `env:"SERVICE_NAME" envDefault:"translate-mock"`
	Environment     string        `env:"ENVIRONMENT" envDefault:"development"`
	HTTPPort        int           `env:"DEEPL_MOCK_SERVER_PORT,required,notEmpty"`
	LogLevel        string        `env:"LOG_LEVEL" envDefault:"info"`
	LogFormat       string        `env:"LOG_FORMAT" envDefault:"console"`
	PIILevel        string        `env:"LOG_PII_LEVEL" envDefault:"hashed"`
	ShutdownTimeout time.Duration `env:"SHUTDOWN_TIMEOUT" envDefault:"10s"`

	// OpenTelemetry
	EnableTracing        bool          `env:"OTEL_ENABLED" envDefault:"false"`
	OTLPEndpoint         string        `env:"OTEL_EXPORTER_OTLP_ENDPOINT" envDefault:""`
	TraceSampleRatio     float64       `env:"OTEL_TRACES_SAMPLER_ARG" envDefault:"1"`
	MetricExportInterval time.Duration `env:"OTEL_METRIC_EXPORT_INTERVAL" envDefault:"30s"`

	// Resource lifetime
	ResourceLifetime time.Duration `env:"MOCK_RESOURCE_LIFETIME" envDefault:"10m"`
	SweepInterval    time.Duration `env:"MOCK_SWEEP_INTERVAL" envDefault:"1s"`

	// Documents
	DocumentDir          string `env:"MOCK_DOCUMENT_DIR" envDefault:"./documents"`
	MaxUploadBytes       int64  `env:"MOCK_MAX_UPLOAD_BYTES" envDefault:"33554432"`
	TranslationWorkers   int    `env:"MOCK_TRANSLATION_WORKERS" envDefault:"4"`
	TranslationQueueSize int    `env:"MOCK_TRANSLATION_QUEUE_SIZE" envDefault:"256"`

	// Accounts
	DefaultCharacterLimit int64         `env:"MOCK_DEFAULT_CHARACTER_LIMIT" envDefault:"20000000"`
	DefaultDocumentLimit  int64         `env:"MOCK_DEFAULT_DOCUMENT_LIMIT" envDefault:"10000"`
	BillingPeriodOffset   time.Duration `env:"MOCK_BILLING_PERIOD_OFFSET" envDefault:"0s"`

	// Fault injection
	NoResponseTimeout time.Duration `env:"MOCK_NO_RESPONSE_TIMEOUT" envDefault:"60s"`
}

// Load parses environment variables into Config.
func Load() (*Config, error) {
	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parse env config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks value ranges env tags cannot express.
func (c *Config) Validate() error {
	if c.HTTPPort <= 0 || c.HTTPPort > 65535 {
		return fmt.Errorf("DEEPL_MOCK_SERVER_PORT must be a valid port, got %d", c.HTTPPort)
	}
	if c.ResourceLifetime <= 0 {
		return fmt.Errorf("MOCK_RESOURCE_LIFETIME must be positive")
	}
	if c.SweepInterval <= 0 {
		return fmt.Errorf("MOCK_SWEEP_INTERVAL must be positive")
	}
	if strings.TrimSpace(c.DocumentDir) == "" {
		return fmt.Errorf("MOCK_DOCUMENT_DIR is required")
	}
	if c.TranslationWorkers <= 0 {
		return fmt.Errorf("MOCK_TRANSLATION_WORKERS must be positive")
	}
	if c.TranslationQueueSize <= 0 {
		return fmt.Errorf("MOCK_TRANSLATION_QUEUE_SIZE must be positive")
	}
	if c.TraceSampleRatio < 0 || c.TraceSampleRatio > 1 {
		return fmt.Errorf("OTEL_TRACES_SAMPLER_ARG must be between 0 and 1")
	}
	if c.MetricExportInterval <= 0 {
		return fmt.Errorf("OTEL_METRIC_EXPORT_INTERVAL must be positive")
	}
	if c.DefaultCharacterLimit < 0 || c.DefaultDocumentLimit < 0 {
		return fmt.Errorf("default quota limits must not be negative")
	}
	return nil
}

// Addr returns the HTTP server address.
func (c *Config) Addr() string {
	return fmt.Sprintf(":%d", c.HTTPPort)
}

// IsProduction reports whether the service runs in production mode.
func (c *Config) IsProduction() bool {
	return strings.EqualFold(c.Environment, "production")
}
