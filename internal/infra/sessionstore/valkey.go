package sessionstore

import (
	"context"
	"fmt"

	"github.com/valkey-io/valkey-go"

	"github.com/yanqian/healthdash/internal/domain/session"
)

// ValkeyStore keeps the session in a single Valkey hash per profile.
type ValkeyStore struct {
	client valkey.Client
	key    string
}

// NewValkeyStore constructs a store for profile under prefix.
func NewValkeyStore(client valkey.Client, prefix, profile string) *ValkeyStore {
	return &ValkeyStore{client: client, key: sessionKey(prefix, profile)}
}

func sessionKey(prefix, profile string) string {
	if prefix == "" {
		prefix = "healthdash"
	}
	if profile == "" {
		profile = "default"
	}
	return fmt.Sprintf("%s:session:%s", prefix, profile)
}

func (s *ValkeyStore) Load(ctx context.Context) (session.Record, bool, error) {
	fields, err := s.client.Do(ctx, s.client.B().Hgetall().Key(s.key).Build()).AsStrMap()
	if err != nil {
		if valkey.IsValkeyNil(err) {
			return session.Record{}, false, nil
		}
		return session.Record{}, false, err
	}
	record, found := recordFromHash(fields)
	return record, found, nil
}

// Save writes every field in one HSET so readers never see half a session.
func (s *ValkeyStore) Save(ctx context.Context, record session.Record) error {
	cmd := s.client.B().Hset().Key(s.key).FieldValue()
	for _, f := range hashFields(record) {
		cmd = cmd.FieldValue(f[0], f[1])
	}
	return s.client.Do(ctx, cmd.Build()).Error()
}

// hashFields lays a record out as HSET field/value pairs.
func hashFields(record session.Record) [][2]string {
	return [][2]string{
		{"credential", record.Credential},
		{"userId", record.Identity.UserID},
		{"username", record.Identity.Username},
		{"displayName", record.Identity.DisplayName},
	}
}

// recordFromHash reads back what hashFields wrote. A hash without a credential is no session.
func recordFromHash(fields map[string]string) (session.Record, bool) {
	if fields["credential"] == "" {
		return session.Record{}, false
	}
	return session.Record{
		Credential: fields["credential"],
		Identity: session.Identity{
			UserID:      fields["userId"],
			Username:    fields["username"],
			DisplayName: fields["displayName"],
		},
	}, true
}

func (s *ValkeyStore) Clear(ctx context.Context) error {
	return s.client.Do(ctx, s.client.B().Del().Key(s.key).Build()).Error()
}

var _ session.Store = (*ValkeyStore)(nil)
