package bootstrap

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/yanqian/healthdash/internal/domain/chart"
	"github.com/yanqian/healthdash/internal/domain/dashboard"
	"github.com/yanqian/healthdash/internal/domain/notify"
	"github.com/yanqian/healthdash/internal/domain/session"
	"github.com/yanqian/healthdash/internal/domain/social"
	"github.com/yanqian/healthdash/internal/infra/config"
	"github.com/yanqian/healthdash/internal/infra/gateway"
	"github.com/yanqian/healthdash/internal/infra/sessionstore"
	"github.com/yanqian/healthdash/pkg/metrics"
)

func TestRestoredSessionOpensDashboardShell(t *testing.T) {
	backend := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Errorf("unexpected backend call %s", r.URL.Path)
	}))
	t.Cleanup(backend.Close)

	store := sessionstore.NewMemoryStore()
	require.NoError(t, store.Save(context.Background(), session.Record{
		Credential: "tok",
		Identity:   session.Identity{UserID: "alice", Username: "alice", DisplayName: "Alice"},
	}))

	app, _, _ := newAppUnderTest(t, store, backend.URL+"/api")

	require.Equal(t, session.ViewDashboard, app.restore(context.Background()))
	require.Equal(t, "tok", app.sessions.CurrentCredential())
	require.Equal(t, "Alice", app.sessions.CurrentIdentity().DisplayName)
}

func TestMissingSessionStaysOnAuth(t *testing.T) {
	backend := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Errorf("unexpected backend call %s", r.URL.Path)
	}))
	t.Cleanup(backend.Close)

	app, views, _ := newAppUnderTest(t, sessionstore.NewMemoryStore(), backend.URL+"/api")

	require.Equal(t, session.ViewAuth, app.restore(context.Background()))
	_, ok := views.Dashboard()
	require.False(t, ok)
}

func TestLogoutDropsViews(t *testing.T) {
	backend := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"todaySteps":9000,"stepsProgress":90}`))
	}))
	t.Cleanup(backend.Close)

	store := sessionstore.NewMemoryStore()
	app, views, notices := newAppUnderTest(t, store, backend.URL+"/api")

	require.NoError(t, app.sessions.SetSession(context.Background(), "tok", session.Identity{Username: "bob"}))
	require.NoError(t, app.aggregator.LoadDashboard(context.Background()))
	_, ok := views.Dashboard()
	require.True(t, ok)
	require.Empty(t, notices.Drain())

	require.NoError(t, app.sessions.ClearSession(context.Background()))
	_, ok = views.Dashboard()
	require.False(t, ok)
	_, found, err := store.Load(context.Background())
	require.NoError(t, err)
	require.False(t, found)
}

func newAppUnderTest(t *testing.T, store session.Store, baseURL string) (*App, *dashboard.Views, *notify.Center) {
	t.Helper()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	cfg := &config.Config{HTTP: config.HTTPConfig{Address: "127.0.0.1:0"}}

	sessions := session.NewManager(store, logger)
	api := gateway.NewAPI(gateway.NewClient(baseURL, sessions, metrics.NewCallStats(), logger))
	notices := notify.NewCenter(time.Minute, logger)
	views := dashboard.NewViews()
	charts := chart.NewManager(chart.NewSurface(), logger)
	aggregator := dashboard.NewAggregator(dashboard.DefaultConfig(), api, views, charts, notices, logger)
	search := social.NewFlow(social.DefaultConfig(), api, sessions, aggregator, notices, logger)

	app := NewApp(cfg, logger, &http.Server{}, sessions, aggregator, search)
	return app, views, notices
}
