package gateway

import (
	"context"
	"fmt"
	"net/http"
	"net/url"

	"github.com/yanqian/healthdash/internal/domain/health"
)

// Caller is the contract API needs from Client.
type Caller interface {
	Call(ctx context.Context, method, endpoint string, body, out any) error
}

// API exposes each backend endpoint with typed payloads.
type API struct {
	caller Caller
}

// NewAPI wraps a caller.
func NewAPI(caller Caller) *API {
	return &API{caller: caller}
}

func (a *API) Register(ctx context.Context, req health.RegisterRequest) (health.AuthResponse, error) {
	var resp health.AuthResponse
	err := a.caller.Call(ctx, http.MethodPost, "/auth/register", req, &resp)
	return resp, err
}

func (a *API) Login(ctx context.Context, req health.LoginRequest) (health.AuthResponse, error) {
	var resp health.AuthResponse
	err := a.caller.Call(ctx, http.MethodPost, "/auth/login", req, &resp)
	return resp, err
}

func (a *API) Summary(ctx context.Context) (health.Summary, error) {
	var resp health.Summary
	err := a.caller.Call(ctx, http.MethodGet, "/summary", nil, &resp)
	return resp, err
}

func (a *API) SaveEntry(ctx context.Context, req health.EntryRequest) error {
	return a.caller.Call(ctx, http.MethodPost, "/entry", req, nil)
}

func (a *API) SaveMeal(ctx context.Context, req health.MealRequest) error {
	return a.caller.Call(ctx, http.MethodPost, "/meal", req, nil)
}

// Entries returns the last days of entries, newest first.
func (a *API) Entries(ctx context.Context, days int) ([]health.Entry, error) {
	var resp []health.Entry
	err := a.caller.Call(ctx, http.MethodGet, fmt.Sprintf("/entries?days=%d", days), nil, &resp)
	return resp, err
}

func (a *API) Predict(ctx context.Context, days int) (health.Prediction, error) {
	var resp health.Prediction
	err := a.caller.Call(ctx, http.MethodGet, fmt.Sprintf("/predict?days=%d", days), nil, &resp)
	return resp, err
}

func (a *API) Leaderboard(ctx context.Context) ([]health.LeaderboardEntry, error) {
	var resp []health.LeaderboardEntry
	err := a.caller.Call(ctx, http.MethodGet, "/leaderboard", nil, &resp)
	return resp, err
}

func (a *API) FriendsActivity(ctx context.Context) ([]health.FriendActivity, error) {
	var resp []health.FriendActivity
	err := a.caller.Call(ctx, http.MethodGet, "/friends-activity", nil, &resp)
	return resp, err
}

func (a *API) SearchUsers(ctx context.Context, query string) ([]health.UserCandidate, error) {
	var resp []health.UserCandidate
	err := a.caller.Call(ctx, http.MethodGet, "/users/search?q="+url.QueryEscape(query), nil, &resp)
	return resp, err
}

func (a *API) AddFriend(ctx context.Context, username string) error {
	return a.caller.Call(ctx, http.MethodPost, "/friends", health.AddFriendRequest{FriendUsername: username}, nil)
}

func (a *API) UpdateTargets(ctx context.Context, targets health.Targets) error {
	return a.caller.Call(ctx, http.MethodPut, "/targets", targets, nil)
}

func (a *API) MonthlyReport(ctx context.Context, year, month int) (health.MonthlyReport, error) {
	var resp health.MonthlyReport
	err := a.caller.Call(ctx, http.MethodGet, fmt.Sprintf("/monthly-report?year=%d&month=%d", year, month), nil, &resp)
	return resp, err
}
