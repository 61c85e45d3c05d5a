package logger

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/rs/zerolog"
	zlog "github.com/rs/zerolog/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/janhq/translate-mock/internal/config"
)

func TestParseLevel(t *testing.T) {
	tests := []struct {
		in   string
		want zerolog.Level
	}{
		{"", zerolog.InfoLevel},
		{"debug", zerolog.DebugLevel},
		{"WARN", zerolog.WarnLevel},
		{"nonsense", zerolog.InfoLevel},
	}
	for _, tt := range tests {
		if got := parseLevel(tt.in); got != tt.want {
			t.Errorf("parseLevel(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestJSONFormat(t *testing.T) {
	var buf bytes.Buffer
	log := NewWithWriter(&config.Config{ServiceName: "translate-mock", Environment: "test", LogFormat: "json", LogLevel: "info"}, &buf)

	log.Debug().Msg("hidden")
	log.Info().Str("component", "test").Msg("visible")

	var line map[string]any
	require.NoError(t, json.Unmarshal(bytes.TrimSpace(buf.Bytes()), &line))
	assert.Equal(t, "visible", line["message"])
	assert.Equal(t, "translate-mock", line["service"])
	assert.Equal(t, "test", line["component"])
}

func TestNewInstallsGlobalLogger(t *testing.T) {
	prev := zlog.Logger
	t.Cleanup(func() { zlog.Logger = prev })

	log := New(&config.Config{ServiceName: "translate-mock", LogFormat: "json", LogLevel: "error"})

	assert.Equal(t, zerolog.ErrorLevel, log.GetLevel())
	assert.Equal(t, zerolog.ErrorLevel, zlog.Logger.GetLevel())
}
