// Package storage persists post images as opaque byte blobs.
package storage

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/google/uuid"
)

// FileStore accepts opaque file bytes and returns a stored-reference token.
// The application never interprets the content.
type FileStore interface {
	Save(ctx context.Context, filename string, data []byte) (string, error)
	Remove(ctx context.Context, ref string) error
}

// LocalStore writes files under a media directory on local disk. Stored
// references are relative paths of the form "posts/<uuid><ext>".
type LocalStore struct {
	root string
}

// NewLocalStore creates a LocalStore rooted at dir, creating it if needed.
func NewLocalStore(dir string) (*LocalStore, error) {
	if err := os.MkdirAll(filepath.Join(dir, "posts"), 0o755); err != nil {
		return nil, fmt.Errorf("create media dir: %w", err)
	}
	return &LocalStore{root: dir}, nil
}

// Save stores data under a fresh uuid name, keeping only the original
// file extension.
func (s *LocalStore) Save(_ context.Context, filename string, data []byte) (string, error) {
	ref := filepath.Join("posts", uuid.NewString()+filepath.Ext(filename))
	if err := os.WriteFile(filepath.Join(s.root, ref), data, 0o644); err != nil {
		return "", fmt.Errorf("write %s: %w", ref, err)
	}
	return ref, nil
}

// Remove deletes a stored file; a missing file is not an error.
func (s *LocalStore) Remove(_ context.Context, ref string) error {
	err := os.Remove(filepath.Join(s.root, ref))
	if err != nil && !os.IsNotExist(err) {
		return err
	}
	return nil
}
