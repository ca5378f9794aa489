package logger_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	logpkg "github.com/maxviazov/railway-blog-service/internal/logger"
)

func TestNew(t *testing.T) {
	tests := []struct {
		name        string
		config      *logpkg.LoggerConfig
		expectError bool
		wantLevel   zerolog.Level
	}{
		{
			name: "valid production environment",
			config: &logpkg.LoggerConfig{
				ServiceName: "railway-blog", ServiceVersion: "1.0.0", Env: "prod", Level: "info",
				TimeField: "timestamp", TimeFormat: "unix", Fields: map[string]interface{}{"key": "value"},
			},
			wantLevel: zerolog.InfoLevel,
		},
		{
			name:        "invalid configuration - wrong env",
			config:      &logpkg.LoggerConfig{ServiceName: "bad-service", Env: "wrong-env", Level: "debug"},
			expectError: true,
		},
		{
			name: "invalid log level",
			config: &logpkg.LoggerConfig{
				ServiceName: "railway-blog", Env: "prod", Level: "invalid-level", TimeFormat: "unix",
			},
			expectError: true,
		},
		{
			name:        "invalid time format",
			config:      &logpkg.LoggerConfig{Env: "prod", Level: "info", TimeFormat: "iso"},
			expectError: true,
		},
		{
			name: "valid staging environment",
			config: &logpkg.LoggerConfig{
				ServiceName: "railway-blog", ServiceVersion: "2.0.0", Env: "staging", Level: "warn",
				TimeField: "time", TimeFormat: "rfc3339", Stacktrace: true,
			},
			wantLevel: zerolog.WarnLevel,
		},
		{
			name:      "development defaults to debug",
			config:    &logpkg.LoggerConfig{Env: "dev"},
			wantLevel: zerolog.DebugLevel,
		},
		{
			name: "production with additional fields",
			config: &logpkg.LoggerConfig{
				Env: "prod", Level: "error", Fields: map[string]interface{}{"customField": "customValue"}, WithCaller: true,
			},
			wantLevel: zerolog.ErrorLevel,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := logpkg.New(tt.config)
			if tt.expectError {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.wantLevel, zerolog.GlobalLevel())
		})
	}
}

func TestNew_DebugFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "logs", "debug.log")
	cfg := &logpkg.LoggerConfig{Env: "dev", Level: "debug", OutputTarget: "stderr", DebugFile: path}

	l, err := logpkg.New(cfg)
	require.NoError(t, err)
	l.Debug().Msg("written to file")

	b, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(b), "written to file")
}

func TestNew_DebugFileIgnoredOutsideDev(t *testing.T) {
	path := filepath.Join(t.TempDir(), "debug.log")
	_, err := logpkg.New(&logpkg.LoggerConfig{Env: "prod", Level: "debug", DebugFile: path})
	require.NoError(t, err)

	_, statErr := os.Stat(path)
	assert.True(t, os.IsNotExist(statErr))
}
