package config

import (
	"log/slog"
	"os"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// allConfigKeys lists every WIZEPORTAL_ env var that Load() reads.
var allConfigKeys = []string{
	"WIZEPORTAL_API_URL",
	"WIZEPORTAL_API_USERNAME",
	"WIZEPORTAL_API_PASSWORD",
	"WIZEPORTAL_LISTEN_ADDR",
	"WIZEPORTAL_ENV",
	"WIZEPORTAL_LOG_LEVEL",
	"WIZEPORTAL_SESSION_KEY",
	"WIZEPORTAL_DB_PATH",
	"WIZEPORTAL_ROOT_ROUTE",
	"WIZEPORTAL_BACKEND_TIMEOUT",
	"WIZEPORTAL_OTEL_ENDPOINT",
	"WIZEPORTAL_OTEL_INSECURE",
}

// isolateConfigEnv saves and unsets all WIZEPORTAL_ env vars so tests don't
// inherit values from the host environment (e.g. a running dev server).
// t.Cleanup restores original values after the test.
func isolateConfigEnv(t *testing.T) {
	t.Helper()
	for _, key := range allConfigKeys {
		if orig, ok := os.LookupEnv(key); ok {
			t.Cleanup(func() { os.Setenv(key, orig) })
		} else {
			t.Cleanup(func() { os.Unsetenv(key) })
		}
		os.Unsetenv(key)
	}
}

func TestLoad_Success(t *testing.T) {
	isolateConfigEnv(t)
	t.Setenv("WIZEPORTAL_API_URL", "https://api.example.com/")
	t.Setenv("WIZEPORTAL_API_USERNAME", "svc")
	t.Setenv("WIZEPORTAL_API_PASSWORD", "secret")
	t.Setenv("WIZEPORTAL_LISTEN_ADDR", "0.0.0.0:9090")
	t.Setenv("WIZEPORTAL_ENV", "Production")
	t.Setenv("WIZEPORTAL_LOG_LEVEL", "debug")
	t.Setenv("WIZEPORTAL_SESSION_KEY", strings.Repeat("ab", 32))
	t.Setenv("WIZEPORTAL_DB_PATH", "/tmp/test.db")
	t.Setenv("WIZEPORTAL_ROOT_ROUTE", "public")
	t.Setenv("WIZEPORTAL_BACKEND_TIMEOUT", "5s")
	t.Setenv("WIZEPORTAL_OTEL_ENDPOINT", "collector:4317")
	t.Setenv("WIZEPORTAL_OTEL_INSECURE", "true")

	cfg, err := Load()

	require.NoError(t, err)
	assert.Equal(t, "https://api.example.com", cfg.APIURL)
	assert.Equal(t, "svc", cfg.APIUsername)
	assert.Equal(t, "secret", cfg.APIPassword)
	assert.True(t, cfg.HasServiceCredentials())
	assert.Equal(t, "0.0.0.0:9090", cfg.ListenAddr)
	assert.True(t, cfg.IsProduction())
	assert.Equal(t, slog.LevelDebug, cfg.LogLevel)
	assert.Len(t, cfg.SessionKey, 32)
	assert.Equal(t, "/tmp/test.db", cfg.DBPath)
	assert.Equal(t, RootRoutePublic, cfg.RootRoute)
	assert.Equal(t, 5*time.Second, cfg.BackendTimeout)
	assert.Equal(t, "collector:4317", cfg.OTelEndpoint)
	assert.True(t, cfg.OTelInsecure)
}

func TestLoad_Defaults(t *testing.T) {
	isolateConfigEnv(t)
	t.Setenv("WIZEPORTAL_API_URL", "http://localhost:5000")

	cfg, err := Load()

	require.NoError(t, err)
	assert.Equal(t, "127.0.0.1:8080", cfg.ListenAddr)
	assert.Equal(t, "development", cfg.Env)
	assert.False(t, cfg.IsProduction())
	assert.Equal(t, slog.LevelInfo, cfg.LogLevel)
	assert.Nil(t, cfg.SessionKey)
	assert.Equal(t, "wizeportal.db", cfg.DBPath)
	assert.True(t, cfg.DraftsEnabled())
	assert.Equal(t, RootRouteRedirect, cfg.RootRoute)
	assert.Equal(t, 30*time.Second, cfg.BackendTimeout)
	assert.False(t, cfg.HasServiceCredentials())
	assert.Empty(t, cfg.OTelEndpoint)
}

func TestLoad_EmptyDBPathDisablesDrafts(t *testing.T) {
	isolateConfigEnv(t)
	t.Setenv("WIZEPORTAL_API_URL", "http://localhost:5000")
	t.Setenv("WIZEPORTAL_DB_PATH", "")

	cfg, err := Load()

	require.NoError(t, err)
	assert.False(t, cfg.DraftsEnabled())
}

func TestLoad_Invalid(t *testing.T) {
	tests := []struct {
		name    string
		env     map[string]string
		wantErr string
	}{
		{
			name:    "missing api url",
			env:     map[string]string{},
			wantErr: "WIZEPORTAL_API_URL",
		},
		{
			name:    "relative api url",
			env:     map[string]string{"WIZEPORTAL_API_URL": "api.example.com"},
			wantErr: "WIZEPORTAL_API_URL",
		},
		{
			name: "bad log level",
			env: map[string]string{
				"WIZEPORTAL_API_URL":   "http://localhost",
				"WIZEPORTAL_LOG_LEVEL": "loud",
			},
			wantErr: "WIZEPORTAL_LOG_LEVEL",
		},
		{
			name: "short session key",
			env: map[string]string{
				"WIZEPORTAL_API_URL":     "http://localhost",
				"WIZEPORTAL_SESSION_KEY": "abcd",
			},
			wantErr: "WIZEPORTAL_SESSION_KEY",
		},
		{
			name: "unknown root route",
			env: map[string]string{
				"WIZEPORTAL_API_URL":    "http://localhost",
				"WIZEPORTAL_ROOT_ROUTE": "sometimes",
			},
			wantErr: "WIZEPORTAL_ROOT_ROUTE",
		},
		{
			name: "bad timeout",
			env: map[string]string{
				"WIZEPORTAL_API_URL":         "http://localhost",
				"WIZEPORTAL_BACKEND_TIMEOUT": "soon",
			},
			wantErr: "WIZEPORTAL_BACKEND_TIMEOUT",
		},
		{
			name: "zero timeout",
			env: map[string]string{
				"WIZEPORTAL_API_URL":         "http://localhost",
				"WIZEPORTAL_BACKEND_TIMEOUT": "0s",
			},
			wantErr: "WIZEPORTAL_BACKEND_TIMEOUT must be positive",
		},
		{
			name: "negative timeout",
			env: map[string]string{
				"WIZEPORTAL_API_URL":         "http://localhost",
				"WIZEPORTAL_BACKEND_TIMEOUT": "-5s",
			},
			wantErr: "WIZEPORTAL_BACKEND_TIMEOUT must be positive",
		},
		{
			name: "bad otel insecure flag",
			env: map[string]string{
				"WIZEPORTAL_API_URL":       "http://localhost",
				"WIZEPORTAL_OTEL_INSECURE": "maybe",
			},
			wantErr: "WIZEPORTAL_OTEL_INSECURE",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			isolateConfigEnv(t)
			for k, v := range tt.env {
				t.Setenv(k, v)
			}

			cfg, err := Load()

			assert.Nil(t, cfg)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}
