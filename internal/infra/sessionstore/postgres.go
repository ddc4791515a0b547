package sessionstore

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/yanqian/healthdash/internal/domain/session"
)

const (
	loadSessionSQL = `
		SELECT credential, user_id, username, display_name
		FROM dashboard_sessions
		WHERE profile = $1
	`
	upsertSessionSQL = `
		INSERT INTO dashboard_sessions (profile, credential, user_id, username, display_name, updated_at)
		VALUES ($1, $2, $3, $4, $5, NOW())
		ON CONFLICT (profile) DO UPDATE SET
			credential = EXCLUDED.credential,
			user_id = EXCLUDED.user_id,
			username = EXCLUDED.username,
			display_name = EXCLUDED.display_name,
			updated_at = EXCLUDED.updated_at
	`
	deleteSessionSQL = `DELETE FROM dashboard_sessions WHERE profile = $1`
)

// PostgresStore keeps one session row per profile.
type PostgresStore struct {
	pool    *pgxpool.Pool
	profile string
}

// NewPostgresStore creates a new store.
func NewPostgresStore(pool *pgxpool.Pool, profile string) *PostgresStore {
	if profile == "" {
		profile = "default"
	}
	return &PostgresStore{pool: pool, profile: profile}
}

// EnsureSchema creates the sessions table when missing.
func (s *PostgresStore) EnsureSchema(ctx context.Context) error {
	_, err := s.pool.Exec(ctx, `
		CREATE TABLE IF NOT EXISTS dashboard_sessions (
			profile      TEXT PRIMARY KEY,
			credential   TEXT NOT NULL,
			user_id      TEXT NOT NULL DEFAULT '',
			username     TEXT NOT NULL DEFAULT '',
			display_name TEXT NOT NULL DEFAULT '',
			updated_at   TIMESTAMPTZ NOT NULL DEFAULT NOW()
		)
	`)
	return err
}

func (s *PostgresStore) Load(ctx context.Context) (session.Record, bool, error) {
	var rec session.Record
	err := s.pool.QueryRow(ctx, loadSessionSQL, s.profile).Scan(&rec.Credential, &rec.Identity.UserID, &rec.Identity.Username, &rec.Identity.DisplayName)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return session.Record{}, false, nil
		}
		return session.Record{}, false, err
	}
	return rec, true, nil
}

func (s *PostgresStore) Save(ctx context.Context, record session.Record) error {
	_, err := s.pool.Exec(ctx, upsertSessionSQL, upsertArgs(s.profile, record)...)
	return err
}

func (s *PostgresStore) Clear(ctx context.Context) error {
	_, err := s.pool.Exec(ctx, deleteSessionSQL, s.profile)
	return err
}

// upsertArgs follows the column order of upsertSessionSQL.
func upsertArgs(profile string, record session.Record) []any {
	return []any{profile, record.Credential, record.Identity.UserID, record.Identity.Username, record.Identity.DisplayName}
}

var _ session.Store = (*PostgresStore)(nil)
