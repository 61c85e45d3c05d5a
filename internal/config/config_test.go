package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadRequiresPort(t *testing.T) {
	t.Setenv("DEEPL_MOCK_SERVER_PORT", "")

	_, err := Load()
	assert.Error(t, err)
}

func TestLoadDefaults(t *testing.T) {
	t.Setenv("DEEPL_MOCK_SERVER_PORT", "3000")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, ":3000", cfg.Addr())
	assert.Equal(t, 10*time.Minute, cfg.ResourceLifetime)
	assert.Equal(t, time.Second, cfg.SweepInterval)
	assert.Equal(t, int64(20000000), cfg.DefaultCharacterLimit)
	assert.Equal(t, int64(10000), cfg.DefaultDocumentLimit)
	assert.Equal(t, "hashed", cfg.PIILevel)
	assert.Equal(t, 1.0, cfg.TraceSampleRatio)
	assert.Equal(t, 30*time.Second, cfg.MetricExportInterval)
	assert.False(t, cfg.IsProduction())
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("DEEPL_MOCK_SERVER_PORT", "3001")
	t.Setenv("MOCK_RESOURCE_LIFETIME", "30s")
	t.Setenv("MOCK_DEFAULT_CHARACTER_LIMIT", "500")
	t.Setenv("ENVIRONMENT", "Production")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 30*time.Second, cfg.ResourceLifetime)
	assert.Equal(t, int64(500), cfg.DefaultCharacterLimit)
	assert.True(t, cfg.IsProduction())
}

func TestValidate(t *testing.T) {
	valid := func() Config {
		return Config{
			HTTPPort:             3000,
			ResourceLifetime:     time.Minute,
			SweepInterval:        time.Second,
			DocumentDir:          "docs",
			TranslationWorkers:   1,
			TranslationQueueSize: 1,
			TraceSampleRatio:     1,
			MetricExportInterval: time.Second,
		}
	}

	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"port out of range", func(c *Config) { c.HTTPPort = 70000 }},
		{"zero lifetime", func(c *Config) { c.ResourceLifetime = 0 }},
		{"zero sweep interval", func(c *Config) { c.SweepInterval = 0 }},
		{"blank document dir", func(c *Config) { c.DocumentDir = " " }},
		{"no workers", func(c *Config) { c.TranslationWorkers = 0 }},
		{"negative limit", func(c *Config) { c.DefaultDocumentLimit = -1 }},
		{"sample ratio above one", func(c *Config) { c.TraceSampleRatio = 1.5 }},
		{"zero metric interval", func(c *Config) { c.MetricExportInterval = 0 }},
	}

	base := valid()
	require.NoError(t, base.Validate())
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := valid()
			tt.mutate(&cfg)
			assert.Error(t, cfg.Validate())
		})
	}
}
