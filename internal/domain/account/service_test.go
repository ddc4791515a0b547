package account

import (
	"context"
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/yanqian/healthdash/internal/domain/health"
	"github.com/yanqian/healthdash/internal/domain/notify"
	"github.com/yanqian/healthdash/internal/domain/session"
	"github.com/yanqian/healthdash/internal/infra/gateway"
	"github.com/yanqian/healthdash/internal/infra/sessionstore"
	apperrors "github.com/yanqian/healthdash/pkg/errors"
)

func TestLoginEstablishesSession(t *testing.T) {
	api := &stubAuthAPI{resp: health.AuthResponse{Token: "tok", Username: "ann", DisplayName: "Ann"}}
	svc, sessions, center := newServiceUnderTest(api)

	identity, err := svc.Login(context.Background(), health.LoginRequest{Username: "ann", Password: "pw"})
	require.NoError(t, err)
	require.Equal(t, "Ann", identity.DisplayName)
	require.Equal(t, "tok", sessions.CurrentCredential())
	require.Equal(t, session.ViewDashboard, sessions.View())

	toasts := center.Drain()
	require.Len(t, toasts, 1)
	require.Equal(t, "Login successful!", toasts[0].Message)
}

func TestLoginValidationBlocksCall(t *testing.T) {
	api := &stubAuthAPI{}
	svc, _, center := newServiceUnderTest(api)

	_, err := svc.Login(context.Background(), health.LoginRequest{Username: "ann"})
	require.True(t, apperrors.IsCode(err, apperrors.CodeInvalidInput))
	require.Zero(t, api.calls)

	toasts := center.Drain()
	require.Len(t, toasts, 1)
	require.Equal(t, notify.LevelError, toasts[0].Level)
	require.Equal(t, "Username and password are required", toasts[0].Message)
}

func TestRegisterRequiresFields(t *testing.T) {
	api := &stubAuthAPI{}
	svc, _, center := newServiceUnderTest(api)

	_, err := svc.Register(context.Background(), health.RegisterRequest{Username: "ann", Password: "pw"})
	require.Error(t, err)
	require.Zero(t, api.calls)
	require.Equal(t, "All fields are required", center.Drain()[0].Message)
}

func TestLoginSurfacesBackendMessage(t *testing.T) {
	api := &stubAuthAPI{err: &gateway.RequestError{Status: 400, Message: "Invalid credentials"}}
	svc, sessions, center := newServiceUnderTest(api)

	_, err := svc.Login(context.Background(), health.LoginRequest{Username: "ann", Password: "bad"})
	require.Error(t, err)
	require.False(t, sessions.Authenticated())
	require.Equal(t, "Invalid credentials", center.Drain()[0].Message)
}

func TestLogoutClearsSession(t *testing.T) {
	api := &stubAuthAPI{resp: health.AuthResponse{Token: "tok", Username: "ann"}}
	svc, sessions, center := newServiceUnderTest(api)
	_, err := svc.Login(context.Background(), health.LoginRequest{Username: "ann", Password: "pw"})
	require.NoError(t, err)
	center.Drain()

	require.NoError(t, svc.Logout(context.Background()))
	require.False(t, sessions.Authenticated())
	require.Equal(t, "Logged out successfully", center.Drain()[0].Message)
}

func newServiceUnderTest(api AuthAPI) (*Service, *session.Manager, *notify.Center) {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	sessions := session.NewManager(sessionstore.NewMemoryStore(), logger)
	center := notify.NewCenter(notify.DefaultTTL, logger)
	return NewService(api, sessions, center, logger), sessions, center
}

type stubAuthAPI struct {
	resp  health.AuthResponse
	err   error
	calls int
}

func (s *stubAuthAPI) Register(_ context.Context, _ health.RegisterRequest) (health.AuthResponse, error) {
	s.calls++
	return s.resp, s.err
}

func (s *stubAuthAPI) Login(_ context.Context, _ health.LoginRequest) (health.AuthResponse, error) {
	s.calls++
	return s.resp, s.err
}
