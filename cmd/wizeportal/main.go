package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/common-nighthawk/go-figure"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"

	_ "golang.org/x/crypto/x509roots/fallback" // Embed CA certs for scratch container

	"github.com/ericfisherdev/wizeportal/internal/adapter/driven/backend"
	sqliteadapter "github.com/ericfisherdev/wizeportal/internal/adapter/driven/sqlite"
	httphandler "github.com/ericfisherdev/wizeportal/internal/adapter/driving/http"
	"github.com/ericfisherdev/wizeportal/internal/adapter/driving/session"
	webhandler "github.com/ericfisherdev/wizeportal/internal/adapter/driving/web"
	"github.com/ericfisherdev/wizeportal/internal/application"
	"github.com/ericfisherdev/wizeportal/internal/config"
	"github.com/ericfisherdev/wizeportal/internal/telemetry"
)

const serviceName = "wizeportal"

func main() {
	if err := run(); err != nil {
		slog.Error("fatal error", "error", err)
		os.Exit(1)
	}
}

func run() error {
	// 1. Load configuration (fail fast on missing required env vars).
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	logger := newLogger(cfg)
	slog.SetDefault(logger)
	if !cfg.IsProduction() {
		displayAppname("Wize Portal")
	}
	logger.Info("config loaded",
		"listen_addr", cfg.ListenAddr,
		"api_url", cfg.APIURL,
		"env", cfg.Env,
		"root_route", cfg.RootRoute,
		"drafts_enabled", cfg.DraftsEnabled(),
	)
	if !cfg.HasServiceCredentials() {
		logger.Warn("no service credentials configured, signup and password reset will fail")
	}
	if len(cfg.SessionKey) == 0 {
		logger.Warn("no session key configured, session cookies are encoded but not sealed")
	}

	// 2. Setup signal-based context (SIGINT, SIGTERM).
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// 3. Tracing (no-op without an OTLP endpoint).
	shutdownTracing, err := telemetry.Setup(ctx, serviceName, cfg.OTelEndpoint, cfg.OTelInsecure, logger)
	if err != nil {
		return err
	}
	defer func() {
		if err := shutdownTracing(context.Background()); err != nil {
			logger.Error("tracing shutdown error", "error", err)
		}
	}()

	// 4. Open the draft database when the invoice generator is enabled.
	var drafts *application.DraftService
	if cfg.DraftsEnabled() {
		db, err := sqliteadapter.NewDB(ctx, cfg.DBPath)
		if err != nil {
			return err
		}
		defer func() {
			if closeErr := db.Close(); closeErr != nil {
				logger.Error("error closing database", "error", closeErr)
			}
		}()
		logger.Info("database opened", "path", cfg.DBPath)

		version, err := sqliteadapter.RunMigrations(db.Writer)
		if err != nil {
			return err
		}
		logger.Info("migrations complete", "schema_version", version)

		drafts = application.NewDraftService(sqliteadapter.NewDraftRepo(db))
	}

	// 5. Wire the backend adapter.
	client := backend.NewClient(cfg.APIURL, cfg.BackendTimeout, logger)
	creds := backend.NewServiceCredentials(client, cfg.APIUsername, cfg.APIPassword)

	// 6. Cookie stores.
	sessions, err := session.NewStore(cfg.SessionKey, cfg.IsProduction(), logger)
	if err != nil {
		return fmt.Errorf("session store: %w", err)
	}
	flows, err := session.NewFlowStore(cfg.SessionKey, cfg.IsProduction(), logger)
	if err != nil {
		return fmt.Errorf("flow store: %w", err)
	}

	// 7. Application services and the web handler.
	webHandler := webhandler.NewHandler(webhandler.Deps{
		Accounts:      client,
		CostCenters:   client,
		ExpenseTypes:  client,
		APIKeys:       client,
		Invoices:      client,
		Dashboard:     client,
		Sessions:      sessions,
		Flows:         flows,
		AuthFlow:      application.NewAuthFlow(client, creds, logger),
		Home:          application.NewHomeService(client, client, client),
		Drafts:        drafts,
		SecureCookies: cfg.IsProduction(),
		Logger:        logger,
	})

	handler := httphandler.NewServeMux(httphandler.NewHandler(logger), webHandler, httphandler.Guard{
		Table:      httphandler.DefaultRouteTable(cfg.RootRoute),
		HasSession: sessions.Has,
	}, logger)

	srv := &http.Server{
		Addr:              cfg.ListenAddr,
		Handler:           otelhttp.NewHandler(handler, serviceName),
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       60 * time.Second,
		WriteTimeout:      cfg.BackendTimeout + 30*time.Second,
		IdleTimeout:       120 * time.Second,
	}

	go func() {
		logger.Info("http server starting", "addr", cfg.ListenAddr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("http server error", "error", err)
			stop()
		}
	}()

	// 8. Wait for shutdown signal.
	<-ctx.Done()
	logger.Info("shutting down")

	// 9. Graceful shutdown with 10s timeout for in-flight requests.
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("http server shutdown error", "error", err)
	}

	logger.Info("shutdown complete")
	return nil
}

// newLogger logs JSON in production and text otherwise.
func newLogger(cfg *config.Config) *slog.Logger {
	opts := &slog.HandlerOptions{Level: cfg.LogLevel}
	if cfg.IsProduction() {
		return slog.New(slog.NewJSONHandler(os.Stdout, opts))
	}
	return slog.New(slog.NewTextHandler(os.Stdout, opts))
}

func displayAppname(appname string) {
	banner := figure.NewFigure(appname, "cybermedium", true)
	banner.Print()
	fmt.Println()
}
