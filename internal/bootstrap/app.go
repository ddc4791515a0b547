package bootstrap

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/yanqian/healthdash/internal/domain/dashboard"
	"github.com/yanqian/healthdash/internal/domain/session"
	"github.com/yanqian/healthdash/internal/domain/social"
	"github.com/yanqian/healthdash/internal/infra/config"
)

// App encapsulates the HTTP shell lifecycle.
type App struct {
	cfg        *config.Config
	logger     *slog.Logger
	server     *http.Server
	sessions   *session.Manager
	aggregator *dashboard.Aggregator
	search     *social.Flow
}

// NewApp is used by Wire to build the runnable app. Leaving the dashboard shell drops
// every view snapshot, chart and pending search. The page loads sections on navigation.
func NewApp(cfg *config.Config, logger *slog.Logger, server *http.Server, sessions *session.Manager, aggregator *dashboard.Aggregator, search *social.Flow) *App {
	app := &App{
		cfg:        cfg,
		logger:     logger.With("component", "bootstrap"),
		server:     server,
		sessions:   sessions,
		aggregator: aggregator,
		search:     search,
	}
	sessions.Subscribe(app.onViewChange)
	return app
}

func (a *App) onViewChange(view session.View, identity session.Identity) {
	switch view {
	case session.ViewAuth:
		a.aggregator.Reset()
		a.search.Reset()
		a.logger.Info("dashboard shell closed")
	case session.ViewDashboard:
		a.logger.Info("dashboard shell open", "username", identity.Username)
	}
}

// restore brings back a persisted session. A broken store leaves the auth view up.
func (a *App) restore(ctx context.Context) session.View {
	view, err := a.sessions.Restore(ctx)
	if err != nil {
		a.logger.Error("session restore failed", "error", err)
	}
	return view
}

// Run restores the session, starts the HTTP server and blocks until shutdown.
func (a *App) Run(ctx context.Context) error {
	view := a.restore(ctx)
	a.logger.Info("shell ready", "view", view)

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
		if err := a.server.Shutdown(shutdownCtx); err != nil {
			return err
		}
		return nil
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	}
}
