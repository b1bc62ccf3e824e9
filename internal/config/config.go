// Package config loads application configuration from environment variables.
package config

import (
	"encoding/hex"
	"fmt"
	"log/slog"
	"net/url"
	"os"
	"strconv"
	"strings"
	"time"
)

// RootRoute selects how the guard treats "/".
type RootRoute string

const (
	// RootRouteRedirect sends "/" to /home with a session and /login without.
	RootRouteRedirect RootRoute = "redirect"
	// RootRoutePublic treats "/" like any other public page.
	RootRoutePublic RootRoute = "public"
)

// Config holds the application configuration loaded from environment variables.
type Config struct {
	APIURL         string
	APIUsername    string
	APIPassword    string
	ListenAddr     string
	Env            string
	LogLevel       slog.Level
	SessionKey     []byte
	DBPath         string
	RootRoute      RootRoute
	BackendTimeout time.Duration
	OTelEndpoint   string
	OTelInsecure   bool
}

// HasServiceCredentials returns true when both service username and password
// are set. Without them the signup and password-reset flows cannot run.
func (c *Config) HasServiceCredentials() bool {
	return c.APIUsername != "" && c.APIPassword != ""
}

// IsProduction reports whether cookies must carry the Secure flag.
func (c *Config) IsProduction() bool {
	return c.Env == "production"
}

// DraftsEnabled reports whether the local invoice generator has a database.
func (c *Config) DraftsEnabled() bool {
	return c.DBPath != ""
}

// Load reads configuration from environment variables and returns a validated Config.
// WIZEPORTAL_API_URL is required. Optional variables with defaults:
// WIZEPORTAL_LISTEN_ADDR (127.0.0.1:8080), WIZEPORTAL_ENV (development),
// WIZEPORTAL_LOG_LEVEL (info), WIZEPORTAL_DB_PATH (wizeportal.db, empty disables drafts),
// WIZEPORTAL_ROOT_ROUTE (redirect), WIZEPORTAL_BACKEND_TIMEOUT (30s).
func Load() (*Config, error) {
	apiURL := strings.TrimRight(strings.TrimSpace(os.Getenv("WIZEPORTAL_API_URL")), "/")
	if apiURL == "" {
		return nil, fmt.Errorf("WIZEPORTAL_API_URL is required")
	}
	if u, err := url.Parse(apiURL); err != nil || u.Scheme == "" || u.Host == "" {
		return nil, fmt.Errorf("WIZEPORTAL_API_URL must be an absolute URL, got %q", apiURL)
	}

	listenAddr := "127.0.0.1:8080"
	if v, ok := os.LookupEnv("WIZEPORTAL_LISTEN_ADDR"); ok {
		listenAddr = v
	}

	env := "development"
	if v, ok := os.LookupEnv("WIZEPORTAL_ENV"); ok && v != "" {
		env = strings.ToLower(v)
	}

	logLevel := slog.LevelInfo
	if v, ok := os.LookupEnv("WIZEPORTAL_LOG_LEVEL"); ok && v != "" {
		if err := logLevel.UnmarshalText([]byte(v)); err != nil {
			return nil, fmt.Errorf("WIZEPORTAL_LOG_LEVEL has invalid level %q: %w", v, err)
		}
	}

	var sessionKey []byte
	if v, ok := os.LookupEnv("WIZEPORTAL_SESSION_KEY"); ok && v != "" {
		key, err := hex.DecodeString(v)
		if err != nil || len(key) != 32 {
			return nil, fmt.Errorf("WIZEPORTAL_SESSION_KEY must be 64 hex characters (32 bytes)")
		}
		sessionKey = key
	}

	dbPath := "wizeportal.db"
	if v, ok := os.LookupEnv("WIZEPORTAL_DB_PATH"); ok {
		dbPath = v
	}

	rootRoute := RootRouteRedirect
	if v, ok := os.LookupEnv("WIZEPORTAL_ROOT_ROUTE"); ok && v != "" {
		switch RootRoute(strings.ToLower(v)) {
		case RootRouteRedirect:
			rootRoute = RootRouteRedirect
		case RootRoutePublic:
			rootRoute = RootRoutePublic
		default:
			return nil, fmt.Errorf("WIZEPORTAL_ROOT_ROUTE must be %q or %q, got %q", RootRouteRedirect, RootRoutePublic, v)
		}
	}

	backendTimeout := 30 * time.Second
	if v, ok := os.LookupEnv("WIZEPORTAL_BACKEND_TIMEOUT"); ok {
		parsed, err := time.ParseDuration(v)
		if err != nil {
			return nil, fmt.Errorf("WIZEPORTAL_BACKEND_TIMEOUT has invalid duration %q: %w", v, err)
		}
		if parsed <= 0 {
			return nil, fmt.Errorf("WIZEPORTAL_BACKEND_TIMEOUT must be positive, got %q", v)
		}
		backendTimeout = parsed
	}

	otelInsecure := false
	if v, ok := os.LookupEnv("WIZEPORTAL_OTEL_INSECURE"); ok && v != "" {
		parsed, err := strconv.ParseBool(v)
		if err != nil {
			return nil, fmt.Errorf("WIZEPORTAL_OTEL_INSECURE has invalid bool %q: %w", v, err)
		}
		otelInsecure = parsed
	}

	return &Config{
		APIURL:         apiURL,
		APIUsername:    os.Getenv("WIZEPORTAL_API_USERNAME"),
		APIPassword:    os.Getenv("WIZEPORTAL_API_PASSWORD"),
		ListenAddr:     listenAddr,
		Env:            env,
		LogLevel:       logLevel,
		SessionKey:     sessionKey,
		DBPath:         dbPath,
		RootRoute:      rootRoute,
		BackendTimeout: backendTimeout,
		OTelEndpoint:   os.Getenv("WIZEPORTAL_OTEL_ENDPOINT"),
		OTelInsecure:   otelInsecure,
	}, nil
}
