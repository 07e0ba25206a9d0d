package logger

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

func TestNew_WritesToFile(t *testing.T) {
	out := filepath.Join(t.TempDir(), "app.log")

	log, err := New(Config{Level: "debug", Encoding: "json", OutputPath: out})
	require.NoError(t, err)
	log.Debug("hello from test")
	_ = log.Sync()

	data, err := os.ReadFile(out)
	require.NoError(t, err)
	assert.Contains(t, string(data), "hello from test")
	assert.Contains(t, string(data), `"level":"DEBUG"`)
}

func TestNew_InvalidLevelFallsBackToInfo(t *testing.T) {
	out := filepath.Join(t.TempDir(), "app.log")

	log, err := New(Config{Level: "verbose", Encoding: "xml", OutputPath: out})
	require.NoError(t, err)
	log.Debug("должно быть отброшено")
	log.Info("visible")
	_ = log.Sync()

	data, err := os.ReadFile(out)
	require.NoError(t, err)
	assert.NotContains(t, string(data), "отброшено")
	assert.Contains(t, string(data), "visible")
}

func TestNew_ServiceAndEnvOnEveryEntry(t *testing.T) {
	var buf bytes.Buffer

	log, err := New(Config{Service: "storysite", Env: "production", Encoding: "json", Writer: &buf})
	require.NoError(t, err)
	log.Named("HTTP").Info("request", zap.Int("status", 200))
	_ = log.Sync()

	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "storysite.HTTP", entry["logger"])
	assert.Equal(t, "production", entry["env"])
	assert.Equal(t, "INFO", entry["level"])
	assert.NotContains(t, entry, "caller", "caller is only added in development")
}

func TestNew_DevelopmentDefaultsToConsoleWithCaller(t *testing.T) {
	var buf bytes.Buffer

	log, err := New(Config{Service: "storyctl", Env: "development", Writer: &buf})
	require.NoError(t, err)
	log.Info("started")
	_ = log.Sync()

	line := buf.String()
	assert.False(t, strings.HasPrefix(line, "{"), "console encoding expected, got %q", line)
	assert.Contains(t, line, "storyctl")
	assert.Contains(t, line, "logger_test.go")
}

func TestNew_BadOutputPath(t *testing.T) {
	_, err := New(Config{OutputPath: filepath.Join(t.TempDir(), "missing", "dir", "app.log")})
	assert.Error(t, err)
}

func TestParseLevel(t *testing.T) {
	tests := []struct {
		in      string
		want    zapcore.Level
		wantErr bool
	}{
		{in: "", want: zapcore.InfoLevel},
		{in: " WARN ", want: zapcore.WarnLevel},
		{in: "debug", want: zapcore.DebugLevel},
		{in: "loud", wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseLevel(tt.in)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}
