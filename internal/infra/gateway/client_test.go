package gateway

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/yanqian/healthdash/internal/domain/health"
	"github.com/yanqian/healthdash/pkg/metrics"
)

type staticCredential string

func (s staticCredential) CurrentCredential() string { return string(s) }

func TestCallAttachesBearerAndBody(t *testing.T) {
	var (
		gotAuth   string
		gotBody   health.EntryRequest
		gotMethod string
		gotPath   string
	)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		gotMethod = r.Method
		gotPath = r.URL.Path
		require.NotEmpty(t, r.Header.Get("X-Request-ID"))
		require.Equal(t, "application/json", r.Header.Get("Content-Type"))
		require.NoError(t, json.NewDecoder(r.Body).Decode(&gotBody))
		_, _ = w.Write([]byte(`{"date":"2024-01-01","steps":4200}`))
	}))
	defer srv.Close()

	stats := metrics.NewCallStats()
	client := NewClient(srv.URL+"/api", staticCredential("tok-123"), stats, newTestLogger())

	var out health.Entry
	err := client.Call(context.Background(), http.MethodPost, "/entry", health.EntryRequest{Date: "2024-01-01", Steps: 4200}, &out)
	require.NoError(t, err)
	require.Equal(t, "Bearer tok-123", gotAuth)
	require.Equal(t, http.MethodPost, gotMethod)
	require.Equal(t, "/api/entry", gotPath)
	require.Equal(t, 4200, gotBody.Steps)
	require.Equal(t, 4200, out.Steps)
	require.EqualValues(t, 1, stats.Calls("POST /entry"))
}

func TestCallOmitsAuthorizationWhenSignedOut(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Empty(t, r.Header.Get("Authorization"))
		_, _ = w.Write([]byte(`{}`))
	}))
	defer srv.Close()

	client := NewClient(srv.URL, staticCredential(""), nil, newTestLogger())
	require.NoError(t, client.Call(context.Background(), http.MethodGet, "/summary", nil, nil))
}

func TestCallUsesPayloadErrorMessage(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		_, _ = w.Write([]byte(`{"error":"Already friends"}`))
	}))
	defer srv.Close()

	client := NewClient(srv.URL, nil, nil, newTestLogger())
	err := client.Call(context.Background(), http.MethodPost, "/friends", health.AddFriendRequest{FriendUsername: "bob"}, nil)

	var reqErr *RequestError
	require.True(t, errors.As(err, &reqErr))
	require.Equal(t, http.StatusBadRequest, reqErr.Status)
	require.Equal(t, "Already friends", reqErr.Message)
	require.Equal(t, "Already friends", err.Error())
}

func TestCallDefaultsErrorMessage(t *testing.T) {
	cases := map[string]string{
		"empty body":     ``,
		"not json":       `<html>oops</html>`,
		"missing field":  `{"message":"nope"}`,
		"non-string err": `{"error":{"code":"x"}}`,
	}
	for name, body := range cases {
		t.Run(name, func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(http.StatusInternalServerError)
				_, _ = w.Write([]byte(body))
			}))
			defer srv.Close()

			client := NewClient(srv.URL, nil, nil, newTestLogger())
			err := client.Call(context.Background(), http.MethodGet, "/summary", nil, nil)
			var reqErr *RequestError
			require.True(t, errors.As(err, &reqErr))
			require.Equal(t, "Request failed", reqErr.Message)
		})
	}
}

func TestCallTransportFailure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	url := srv.URL
	srv.Close()

	stats := metrics.NewCallStats()
	client := NewClient(url, nil, stats, newTestLogger())
	err := client.Call(context.Background(), http.MethodGet, "/leaderboard", nil, nil)

	var transportErr *TransportError
	require.True(t, errors.As(err, &transportErr))
	require.Equal(t, "/leaderboard", transportErr.Endpoint)
	require.Equal(t, []metrics.EndpointUsage{{Endpoint: "GET /leaderboard", Calls: 1, Failures: 1}}, stats.Snapshot())
}

func TestCallNeverRetries(t *testing.T) {
	hits := 0
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits++
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer srv.Close()

	client := NewClient(srv.URL, nil, nil, newTestLogger())
	require.Error(t, client.Call(context.Background(), http.MethodGet, "/summary", nil, nil))
	require.Equal(t, 1, hits)
}

func TestAPIEscapesSearchQuery(t *testing.T) {
	var rawQuery string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		rawQuery = r.URL.Query().Get("q")
		_, _ = w.Write([]byte(`[{"username":"ann smith","displayName":"Ann"}]`))
	}))
	defer srv.Close()

	api := NewAPI(NewClient(srv.URL, nil, nil, newTestLogger()))
	users, err := api.SearchUsers(context.Background(), "ann smith&x=1")
	require.NoError(t, err)
	require.Equal(t, "ann smith&x=1", rawQuery)
	require.Len(t, users, 1)
}

func TestAPIMonthlyReportQuery(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/monthly-report", r.URL.Path)
		require.Equal(t, "2024", r.URL.Query().Get("year"))
		require.Equal(t, "1", r.URL.Query().Get("month"))
		_, _ = w.Write([]byte(`{"year":2024,"month":1,"totalSteps":150000,"entries":[]}`))
	}))
	defer srv.Close()

	api := NewAPI(NewClient(srv.URL, nil, nil, newTestLogger()))
	report, err := api.MonthlyReport(context.Background(), 2024, 1)
	require.NoError(t, err)
	require.Equal(t, 150000, report.TotalSteps)
}

func newTestLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}
