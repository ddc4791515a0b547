package session

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/require"

	apperrors "github.com/yanqian/healthdash/pkg/errors"
)

func TestSetSessionPersistsAndSwitchesView(t *testing.T) {
	store := &stubStore{}
	m := NewManager(store, newTestLogger())
	var views []View
	m.Subscribe(func(view View, _ Identity) { views = append(views, view) })

	require.Equal(t, ViewAuth, m.View())
	err := m.SetSession(context.Background(), "opaque-token", Identity{Username: "ann", DisplayName: "Ann"})
	require.NoError(t, err)

	require.Equal(t, "opaque-token", m.CurrentCredential())
	require.Equal(t, "ann", m.CurrentIdentity().UserID)
	require.Equal(t, ViewDashboard, m.View())
	require.Equal(t, []View{ViewDashboard}, views)
	require.Equal(t, "opaque-token", store.record.Credential)
	require.Equal(t, "Ann", store.record.Identity.DisplayName)
}

func TestSetSessionTakesUserIDFromJWTSubject(t *testing.T) {
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.RegisteredClaims{Subject: "42"}).SignedString([]byte("secret"))
	require.NoError(t, err)

	m := NewManager(&stubStore{}, newTestLogger())
	require.NoError(t, m.SetSession(context.Background(), token, Identity{Username: "ann"}))
	require.Equal(t, "42", m.CurrentIdentity().UserID)
}

func TestSetSessionFailureLeavesStateUntouched(t *testing.T) {
	store := &stubStore{saveErr: errors.New("disk full")}
	m := NewManager(store, newTestLogger())

	err := m.SetSession(context.Background(), "tok", Identity{Username: "ann"})
	require.Error(t, err)
	require.True(t, apperrors.IsCode(err, apperrors.CodeSessionStore))
	require.Empty(t, m.CurrentCredential())
	require.Equal(t, Identity{}, m.CurrentIdentity())
}

func TestSetSessionRejectsEmptyCredential(t *testing.T) {
	m := NewManager(&stubStore{}, newTestLogger())
	err := m.SetSession(context.Background(), "  ", Identity{Username: "ann"})
	require.True(t, apperrors.IsCode(err, apperrors.CodeInvalidInput))
}

func TestClearSessionRemovesEverything(t *testing.T) {
	store := &stubStore{}
	m := NewManager(store, newTestLogger())
	require.NoError(t, m.SetSession(context.Background(), "tok", Identity{Username: "ann"}))

	var last View
	m.Subscribe(func(view View, _ Identity) { last = view })
	require.NoError(t, m.ClearSession(context.Background()))

	require.Empty(t, m.CurrentCredential())
	require.Equal(t, ViewAuth, last)
	require.True(t, store.cleared)
	require.True(t, store.record.Empty())
}

func TestRestore(t *testing.T) {
	store := &stubStore{record: Record{Credential: "tok", Identity: Identity{UserID: "7", Username: "ann"}}, found: true}
	m := NewManager(store, newTestLogger())

	view, err := m.Restore(context.Background())
	require.NoError(t, err)
	require.Equal(t, ViewDashboard, view)
	require.Equal(t, "tok", m.CurrentCredential())

	empty := NewManager(&stubStore{}, newTestLogger())
	view, err = empty.Restore(context.Background())
	require.NoError(t, err)
	require.Equal(t, ViewAuth, view)
}

type stubStore struct {
	record  Record
	found   bool
	saveErr error
	cleared bool
}

func (s *stubStore) Load(context.Context) (Record, bool, error) {
	return s.record, s.found, nil
}

func (s *stubStore) Save(_ context.Context, record Record) error {
	if s.saveErr != nil {
		return s.saveErr
	}
	s.record = record
	s.found = true
	return nil
}

func (s *stubStore) Clear(context.Context) error {
	s.record = Record{}
	s.found = false
	s.cleared = true
	return nil
}

func newTestLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}
