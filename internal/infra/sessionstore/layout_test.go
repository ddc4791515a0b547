package sessionstore

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/yanqian/healthdash/internal/domain/session"
)

func TestValkeyKeyNaming(t *testing.T) {
	require.Equal(t, "healthdash:session:default", sessionKey("", ""))
	require.Equal(t, "hd:session:work", sessionKey("hd", "work"))
	require.Equal(t, "healthdash:session:work", NewValkeyStore(nil, "", "work").key)
}

func TestValkeyHashLayout(t *testing.T) {
	record := session.Record{
		Credential: "tok",
		Identity:   session.Identity{UserID: "u1", Username: "ann", DisplayName: "Ann"},
	}
	fields := hashFields(record)
	require.Equal(t, [][2]string{
		{"credential", "tok"},
		{"userId", "u1"},
		{"username", "ann"},
		{"displayName", "Ann"},
	}, fields)

	hash := make(map[string]string, len(fields))
	for _, f := range fields {
		hash[f[0]] = f[1]
	}
	got, found := recordFromHash(hash)
	require.True(t, found)
	require.Equal(t, record, got)

	_, found = recordFromHash(map[string]string{"username": "ann"})
	require.False(t, found)
}

func TestPostgresUpsertByProfile(t *testing.T) {
	require.Equal(t, "default", NewPostgresStore(nil, "").profile)

	require.Contains(t, upsertSessionSQL, "ON CONFLICT (profile) DO UPDATE")
	for _, col := range []string{"credential", "user_id", "username", "display_name", "updated_at"} {
		require.Contains(t, upsertSessionSQL, col+" = EXCLUDED."+col)
	}
	require.Contains(t, loadSessionSQL, "WHERE profile = $1")
	require.True(t, strings.HasSuffix(deleteSessionSQL, "WHERE profile = $1"))

	args := upsertArgs("work", session.Record{
		Credential: "tok",
		Identity:   session.Identity{UserID: "u1", Username: "ann", DisplayName: "Ann"},
	})
	require.Equal(t, []any{"work", "tok", "u1", "ann", "Ann"}, args)
	require.Contains(t, upsertSessionSQL, "VALUES ($1, $2, $3, $4, $5, NOW())")
}
