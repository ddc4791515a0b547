package sessionstore

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/yanqian/healthdash/internal/domain/session"
)

type fileRecord struct {
	Credential string           `yaml:"credential"`
	Sealed     bool             `yaml:"sealed"`
	Identity   session.Identity `yaml:"identity"`
}

// FileStore persists the session as a YAML file, replacing it atomically on save.
type FileStore struct {
	path   string
	sealer *sealer
}

// NewFileStore builds a store at path. secret seals the credential when non-empty.
func NewFileStore(path, secret string) (*FileStore, error) {
	if path == "" {
		return nil, errors.New("session file path cannot be empty")
	}
	s, err := newSealer(secret)
	if err != nil {
		return nil, fmt.Errorf("derive session key: %w", err)
	}
	return &FileStore{path: path, sealer: s}, nil
}

func (s *FileStore) Load(context.Context) (session.Record, bool, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return session.Record{}, false, nil
		}
		return session.Record{}, false, fmt.Errorf("read session file: %w", err)
	}
	var rec fileRecord
	if err := yaml.Unmarshal(data, &rec); err != nil {
		return session.Record{}, false, fmt.Errorf("parse session file: %w", err)
	}
	credential := rec.Credential
	if rec.Sealed {
		if !s.sealer.enabled() {
			return session.Record{}, false, errors.New("session file is sealed but no key is configured")
		}
		if credential, err = s.sealer.open(rec.Credential); err != nil {
			return session.Record{}, false, fmt.Errorf("open sealed credential: %w", err)
		}
	}
	if credential == "" {
		return session.Record{}, false, nil
	}
	return session.Record{Credential: credential, Identity: rec.Identity}, true, nil
}

func (s *FileStore) Save(_ context.Context, record session.Record) error {
	sealed, err := s.sealer.seal(record.Credential)
	if err != nil {
		return fmt.Errorf("seal credential: %w", err)
	}
	data, err := yaml.Marshal(fileRecord{
		Credential: sealed,
		Sealed:     s.sealer.enabled(),
		Identity:   record.Identity,
	})
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(s.path), 0o700); err != nil {
		return fmt.Errorf("create session dir: %w", err)
	}
	tmp, err := os.CreateTemp(filepath.Dir(s.path), ".session-*")
	if err != nil {
		return fmt.Errorf("create temp session file: %w", err)
	}
	defer os.Remove(tmp.Name())
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return fmt.Errorf("write session file: %w", err)
	}
	if err := tmp.Chmod(0o600); err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Close(); err != nil {
		return err
	}
	return os.Rename(tmp.Name(), s.path)
}

func (s *FileStore) Clear(context.Context) error {
	if err := os.Remove(s.path); err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("remove session file: %w", err)
	}
	return nil
}

var _ session.Store = (*FileStore)(nil)
