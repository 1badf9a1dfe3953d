package archive

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
)

// LocalStore writes snapshots below a directory on disk.
type LocalStore struct {
	root string
}

// NewLocalStore creates a LocalStore rooted at dir.
func NewLocalStore(dir string) *LocalStore {
	return &LocalStore{root: dir}
}

// Put writes body to root/key, creating parent directories, and returns the file path.
// PRE: key passes CleanKey
// POST: File exists with exactly body; an existing file is replaced
func (s *LocalStore) Put(_ context.Context, key string, body []byte, _ string) (string, error) {
	clean, err := CleanKey(key)
	if err != nil {
		return "", err
	}
	dest := filepath.Join(s.root, filepath.FromSlash(clean))
	if err := os.MkdirAll(filepath.Dir(dest), 0o755); err != nil {
		return "", fmt.Errorf("archive: create directory: %w", err)
	}

	tmp := dest + ".tmp"
	if err := os.WriteFile(tmp, body, 0o644); err != nil {
		return "", fmt.Errorf("archive: write %s: %w", tmp, err)
	}
	if err := os.Rename(tmp, dest); err != nil {
		os.Remove(tmp)
		return "", fmt.Errorf("archive: rename into place: %w", err)
	}

	slog.Info("archive_event", "event", "report_written", "backend", "local", "path", dest, "bytes", len(body))
	return dest, nil
}
