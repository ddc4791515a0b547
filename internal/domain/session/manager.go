package session

import (
	"context"
	"log/slog"
	"strings"
	"sync"

	"github.com/golang-jwt/jwt/v5"

	apperrors "github.com/yanqian/healthdash/pkg/errors"
)

// Manager owns the process-scoped session state.
type Manager struct {
	mu        sync.RWMutex
	store     Store
	record    Record
	listeners []Listener
	logger    *slog.Logger
}

// NewManager builds a signed-out manager over store.
func NewManager(store Store, logger *slog.Logger) *Manager {
	if logger == nil {
		logger = slog.Default()
	}
	return &Manager{
		store:  store,
		logger: logger.With("component", "session.manager"),
	}
}

// Subscribe registers a listener for shell transitions.
func (m *Manager) Subscribe(l Listener) {
	if l == nil {
		return
	}
	m.mu.Lock()
	m.listeners = append(m.listeners, l)
	m.mu.Unlock()
}

// Restore loads a persisted session. A missing record keeps the auth view.
func (m *Manager) Restore(ctx context.Context) (View, error) {
	record, found, err := m.store.Load(ctx)
	if err != nil {
		return ViewAuth, apperrors.Wrap(apperrors.CodeSessionStore, "failed to restore session", err)
	}
	if !found || record.Empty() {
		return ViewAuth, nil
	}
	m.mu.Lock()
	m.record = record
	listeners := m.snapshotListenersLocked()
	m.mu.Unlock()
	m.logger.Info("session restored", "username", record.Identity.Username)
	m.emit(listeners, ViewDashboard, record.Identity)
	return ViewDashboard, nil
}

// SetSession persists credential and identity together, then switches to the dashboard.
func (m *Manager) SetSession(ctx context.Context, credential string, identity Identity) error {
	credential = strings.TrimSpace(credential)
	if credential == "" {
		return apperrors.Invalid("credential cannot be empty")
	}
	if identity.UserID == "" {
		identity.UserID = subjectOf(credential)
	}
	if identity.UserID == "" {
		identity.UserID = identity.Username
	}
	record := Record{Credential: credential, Identity: identity}

	m.mu.Lock()
	if err := m.store.Save(ctx, record); err != nil {
		m.mu.Unlock()
		return apperrors.Wrap(apperrors.CodeSessionStore, "failed to persist session", err)
	}
	m.record = record
	listeners := m.snapshotListenersLocked()
	m.mu.Unlock()

	m.logger.Info("session established", "username", identity.Username)
	m.emit(listeners, ViewDashboard, identity)
	return nil
}

// ClearSession forgets the session in memory and in the store, then switches to auth.
// The in-memory state is cleared even when the store fails.
func (m *Manager) ClearSession(ctx context.Context) error {
	m.mu.Lock()
	storeErr := m.store.Clear(ctx)
	m.record = Record{}
	listeners := m.snapshotListenersLocked()
	m.mu.Unlock()

	m.emit(listeners, ViewAuth, Identity{})
	if storeErr != nil {
		return apperrors.Wrap(apperrors.CodeSessionStore, "failed to clear persisted session", storeErr)
	}
	m.logger.Info("session cleared")
	return nil
}

// CurrentCredential returns the bearer credential or "".
func (m *Manager) CurrentCredential() string {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.record.Credential
}

// CurrentIdentity returns the signed-in identity, zero when signed out.
func (m *Manager) CurrentIdentity() Identity {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.record.Identity
}

// Authenticated reports whether a credential is held.
func (m *Manager) Authenticated() bool {
	return m.CurrentCredential() != ""
}

// View returns the shell matching the current state.
func (m *Manager) View() View {
	if m.Authenticated() {
		return ViewDashboard
	}
	return ViewAuth
}

func (m *Manager) snapshotListenersLocked() []Listener {
	out := make([]Listener, len(m.listeners))
	copy(out, m.listeners)
	return out
}

func (m *Manager) emit(listeners []Listener, view View, identity Identity) {
	for _, l := range listeners {
		l(view, identity)
	}
}

// subjectOf reads the sub claim of a JWT credential without verifying it; the backend
// is the only party that validates tokens.
func subjectOf(credential string) string {
	token, _, err := jwt.NewParser().ParseUnverified(credential, jwt.MapClaims{})
	if err != nil {
		return ""
	}
	sub, err := token.Claims.GetSubject()
	if err != nil {
		return ""
	}
	return sub
}
