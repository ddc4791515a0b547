package sessionstore

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/yanqian/healthdash/internal/domain/session"
)

func TestFileStoreRoundTripSealed(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "session.yaml")
	store, err := NewFileStore(path, "local secret")
	require.NoError(t, err)

	_, found, err := store.Load(context.Background())
	require.NoError(t, err)
	require.False(t, found)

	rec := session.Record{Credential: "tok-abc", Identity: session.Identity{UserID: "1", Username: "ann", DisplayName: "Ann"}}
	require.NoError(t, store.Save(context.Background(), rec))

	raw, err := os.ReadFile(path)
	require.NoError(t, err)
	require.NotContains(t, string(raw), "tok-abc")
	require.Contains(t, string(raw), "ann")

	got, found, err := store.Load(context.Background())
	require.NoError(t, err)
	require.True(t, found)
	require.Equal(t, rec, got)

	require.NoError(t, store.Clear(context.Background()))
	_, found, err = store.Load(context.Background())
	require.NoError(t, err)
	require.False(t, found)
	require.NoError(t, store.Clear(context.Background()))
}

func TestFileStoreWrongKeyFails(t *testing.T) {
	path := filepath.Join(t.TempDir(), "session.yaml")
	writer, err := NewFileStore(path, "first")
	require.NoError(t, err)
	require.NoError(t, writer.Save(context.Background(), session.Record{Credential: "tok"}))

	reader, err := NewFileStore(path, "second")
	require.NoError(t, err)
	_, _, err = reader.Load(context.Background())
	require.Error(t, err)

	unkeyed, err := NewFileStore(path, "")
	require.NoError(t, err)
	_, _, err = unkeyed.Load(context.Background())
	require.Error(t, err)
}

func TestFileStorePlainWhenNoKey(t *testing.T) {
	path := filepath.Join(t.TempDir(), "session.yaml")
	store, err := NewFileStore(path, "")
	require.NoError(t, err)
	require.NoError(t, store.Save(context.Background(), session.Record{Credential: "tok", Identity: session.Identity{Username: "bob"}}))

	got, found, err := store.Load(context.Background())
	require.NoError(t, err)
	require.True(t, found)
	require.Equal(t, "tok", got.Credential)
}

func TestMemoryStore(t *testing.T) {
	store := NewMemoryStore()
	require.NoError(t, store.Save(context.Background(), session.Record{Credential: "tok"}))
	got, found, err := store.Load(context.Background())
	require.NoError(t, err)
	require.True(t, found)
	require.Equal(t, "tok", got.Credential)

	require.NoError(t, store.Clear(context.Background()))
	_, found, _ = store.Load(context.Background())
	require.False(t, found)
}
