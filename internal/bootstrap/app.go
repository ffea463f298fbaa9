package bootstrap

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/singhHarcharan/trip-planner-agent/internal/domain/auth"
	"github.com/singhHarcharan/trip-planner-agent/internal/domain/hotelpref"
	"github.com/singhHarcharan/trip-planner-agent/internal/domain/trip"
	"github.com/singhHarcharan/trip-planner-agent/internal/infra/config"
)

// App encapsulates the HTTP server lifecycle and the one-shot commands
// that share its wiring.
type App struct {
	cfg     *config.Config
	logger  *slog.Logger
	server  *http.Server
	prefs   hotelpref.Service
	planner trip.Planner
	authSvc auth.Service
}

// NewApp is used by Wire to build the runnable app.
func NewApp(cfg *config.Config, logger *slog.Logger, server *http.Server, prefs hotelpref.Service, planner trip.Planner, authSvc auth.Service) *App {
	return &App{
		cfg:     cfg,
		logger:  logger.With("component", "bootstrap"),
		server:  server,
		prefs:   prefs,
		planner: planner,
		authSvc: authSvc,
	}
}

// Run starts the HTTP server and blocks until shutdown.
func (a *App) Run(ctx context.Context) error {
	if a.cfg.Preferences.IndexOnStartup {
		go a.indexPreferences(ctx)
	}

	errCh := make(chan error, 1)
	go func() {
		a.logger.Info("http server starting", "address", a.cfg.HTTP.Address)
		if err := a.server.ListenAndServe(); err != nil {
			errCh <- err
		}
	}()

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		a.logger.Info("shutdown signal received")
		return a.server.Shutdown(shutdownCtx)
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	}
}

// Plan runs a single planning request outside the HTTP server.
func (a *App) Plan(ctx context.Context, req trip.PlanRequest) (trip.PlanResponse, error) {
	if a.cfg.Preferences.IndexOnStartup {
		a.indexPreferences(ctx)
	}
	if req.EmployeeID <= 0 {
		req.EmployeeID = a.cfg.Holidays.DefaultEmployeeID
	}
	return a.planner.Plan(ctx, req)
}

// IssueToken mints a bearer token for an employee.
func (a *App) IssueToken(ctx context.Context, req auth.IssueRequest) (auth.Token, error) {
	return a.authSvc.Issue(ctx, req)
}

func (a *App) indexPreferences(ctx context.Context) {
	result, err := a.prefs.Index(ctx)
	if err != nil {
		a.logger.Warn("preference indexing failed", "error", err)
		return
	}
	a.logger.Info("preferences indexed", "collection", result.Collection, "chunks", result.Chunks, "tokens", result.Tokens)
}
