package account

import (
	"context"
	"log/slog"
	"strings"

	"github.com/yanqian/healthdash/internal/domain/health"
	"github.com/yanqian/healthdash/internal/domain/notify"
	"github.com/yanqian/healthdash/internal/domain/session"
	apperrors "github.com/yanqian/healthdash/pkg/errors"
)

// AuthAPI is the slice of the backend used for sign-in.
type AuthAPI interface {
	Register(ctx context.Context, req health.RegisterRequest) (health.AuthResponse, error)
	Login(ctx context.Context, req health.LoginRequest) (health.AuthResponse, error)
}

// Service runs the register, login and logout flows.
type Service struct {
	api      AuthAPI
	sessions *session.Manager
	notifier notify.Notifier
	logger   *slog.Logger
}

// NewService wires the account flows.
func NewService(api AuthAPI, sessions *session.Manager, notifier notify.Notifier, logger *slog.Logger) *Service {
	return &Service{
		api:      api,
		sessions: sessions,
		notifier: notifier,
		logger:   logger.With("component", "account.service"),
	}
}

// Register creates an account and signs in with the returned credential.
func (s *Service) Register(ctx context.Context, req health.RegisterRequest) (session.Identity, error) {
	if strings.TrimSpace(req.Username) == "" || strings.TrimSpace(req.Email) == "" || req.Password == "" {
		return session.Identity{}, s.fail(apperrors.Invalid("All fields are required"))
	}
	resp, err := s.api.Register(ctx, req)
	if err != nil {
		return session.Identity{}, s.fail(err)
	}
	identity, err := s.establish(ctx, resp)
	if err != nil {
		return session.Identity{}, s.fail(err)
	}
	s.notifier.Notify(notify.LevelSuccess, "Registration successful!")
	return identity, nil
}

// Login signs in an existing account.
func (s *Service) Login(ctx context.Context, req health.LoginRequest) (session.Identity, error) {
	if strings.TrimSpace(req.Username) == "" || req.Password == "" {
		return session.Identity{}, s.fail(apperrors.Invalid("Username and password are required"))
	}
	resp, err := s.api.Login(ctx, req)
	if err != nil {
		return session.Identity{}, s.fail(err)
	}
	identity, err := s.establish(ctx, resp)
	if err != nil {
		return session.Identity{}, s.fail(err)
	}
	s.notifier.Notify(notify.LevelSuccess, "Login successful!")
	return identity, nil
}

// Logout clears the session. It never calls the backend.
func (s *Service) Logout(ctx context.Context) error {
	if err := s.sessions.ClearSession(ctx); err != nil {
		s.logger.Warn("clear session failed", "error", err)
	}
	s.notifier.Notify(notify.LevelSuccess, "Logged out successfully")
	return nil
}

func (s *Service) establish(ctx context.Context, resp health.AuthResponse) (session.Identity, error) {
	identity := session.Identity{Username: resp.Username, DisplayName: resp.DisplayName}
	if err := s.sessions.SetSession(ctx, resp.Token, identity); err != nil {
		return session.Identity{}, err
	}
	return s.sessions.CurrentIdentity(), nil
}

func (s *Service) fail(err error) error {
	s.notifier.Notify(notify.LevelError, apperrors.Message(err))
	return err
}
