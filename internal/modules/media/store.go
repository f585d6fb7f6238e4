package media

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
)

// Store persists media bytes under slash-separated keys such as
// "images/post-1700000000000-42.png".
type Store interface {
	Put(ctx context.Context, key, contentType string, r io.Reader, size int64) error
	Remove(ctx context.Context, key string) error
}

// LocalStore keeps media in a directory tree that is also served statically.
type LocalStore struct {
	baseDir string
}

func NewLocalStore(baseDir string) (*LocalStore, error) {
	for _, dir := range []string{baseDir, filepath.Join(baseDir, "images"), filepath.Join(baseDir, "videos")} {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("create upload directory %s: %w", dir, err)
		}
	}
	return &LocalStore{baseDir: baseDir}, nil
}

func (s *LocalStore) BaseDir() string { return s.baseDir }

// Path maps a key to its location on disk.
func (s *LocalStore) Path(key string) string {
	return filepath.Join(s.baseDir, filepath.FromSlash(key))
}

func (s *LocalStore) Put(_ context.Context, key, _ string, r io.Reader, _ int64) error {
	absPath := s.Path(key)
	if err := os.MkdirAll(filepath.Dir(absPath), 0o755); err != nil {
		return fmt.Errorf("failed to create upload directory: %w", err)
	}

	dst, err := os.OpenFile(absPath, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o644)
	if err != nil {
		return fmt.Errorf("failed to create file: %w", err)
	}

	if _, err := io.Copy(dst, r); err != nil {
		dst.Close()
		_ = os.Remove(absPath)
		return fmt.Errorf("failed to write file: %w", err)
	}
	if err := dst.Close(); err != nil {
		_ = os.Remove(absPath)
		return fmt.Errorf("failed to write file: %w", err)
	}
	return nil
}

func (s *LocalStore) Remove(_ context.Context, key string) error {
	err := os.Remove(s.Path(key))
	if err != nil && !errors.Is(err, fs.ErrNotExist) {
		return err
	}
	return nil
}

// cleanKey accepts only "images/<name>" or "videos/<name>" without traversal.
func cleanKey(key string) (string, error) {
	key = strings.TrimPrefix(key, "/")
	dir, name, ok := strings.Cut(key, "/")
	if !ok || (dir != "images" && dir != "videos") {
		return "", ErrInvalidKey
	}
	if name == "" || strings.Contains(name, "/") || strings.Contains(name, `\`) || name == "." || name == ".." {
		return "", ErrInvalidKey
	}
	return dir + "/" + name, nil
}
