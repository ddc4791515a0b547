package artifactstore

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/yanqian/healthdash/internal/domain/report"
)

// DirStore writes artifacts into a local export directory.
type DirStore struct {
	dir string
}

// NewDirStore uses dir, creating it on first save.
func NewDirStore(dir string) *DirStore {
	return &DirStore{dir: dir}
}

// Save writes the artifact atomically and returns its path.
func (s *DirStore) Save(_ context.Context, artifact report.Artifact) (string, error) {
	if err := os.MkdirAll(s.dir, 0o755); err != nil {
		return "", fmt.Errorf("create export dir: %w", err)
	}
	target := filepath.Join(s.dir, filepath.Base(artifact.Name))
	tmp, err := os.CreateTemp(s.dir, ".export-*")
	if err != nil {
		return "", fmt.Errorf("create temp file: %w", err)
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(artifact.Data); err != nil {
		tmp.Close()
		return "", fmt.Errorf("write export: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return "", fmt.Errorf("close export: %w", err)
	}
	if err := os.Chmod(tmp.Name(), 0o644); err != nil {
		return "", fmt.Errorf("chmod export: %w", err)
	}
	if err := os.Rename(tmp.Name(), target); err != nil {
		return "", fmt.Errorf("move export: %w", err)
	}
	return target, nil
}

var _ report.Sink = (*DirStore)(nil)
