package archive

import (
	"context"
	"errors"
	"path"
	"strings"
)

// ErrInvalidKey is returned for keys that are empty or escape the archive root.
var ErrInvalidKey = errors.New("archive key must be a relative path without '..'")

// Store keeps report snapshots.
type Store interface {
	// Put writes body under key and returns where it landed.
	Put(ctx context.Context, key string, body []byte, contentType string) (string, error)
}

// CleanKey normalizes an object key to slash-separated form and rejects traversal.
func CleanKey(key string) (string, error) {
	key = strings.TrimSpace(strings.ReplaceAll(key, "\\", "/"))
	if key == "" || strings.HasPrefix(key, "/") {
		return "", ErrInvalidKey
	}
	for _, part := range strings.Split(key, "/") {
		if part == ".." {
			return "", ErrInvalidKey
		}
	}
	return path.Clean(key), nil
}
