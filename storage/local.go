package storage

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path"
	"path/filepath"
	"strings"
)

// LocalBlobStore writes images below a directory that the HTTP server exposes
// at baseURL. It stands in for the hosted bucket during development.
type LocalBlobStore struct {
	dir     string
	baseURL string
}

func NewLocalBlobStore(dir, baseURL string) (*LocalBlobStore, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}
	return &LocalBlobStore{dir: dir, baseURL: strings.TrimSuffix(baseURL, "/")}, nil
}

func (s *LocalBlobStore) Upload(ctx context.Context, objectPath, contentType string, body io.Reader) (string, error) {
	full, err := s.resolve(objectPath)
	if err != nil {
		return "", err
	}
	if err := ctx.Err(); err != nil {
		return "", err
	}
	if err := os.MkdirAll(filepath.Dir(full), 0o755); err != nil {
		return "", err
	}

	f, err := os.Create(full)
	if err != nil {
		return "", err
	}
	if _, err := io.Copy(f, body); err != nil {
		f.Close()
		os.Remove(full)
		return "", fmt.Errorf("upload %s: %w", objectPath, err)
	}
	if err := f.Close(); err != nil {
		return "", err
	}
	return s.baseURL + path.Clean("/"+objectPath), nil
}

func (s *LocalBlobStore) Delete(ctx context.Context, ref string) error {
	objectPath := strings.TrimPrefix(strings.TrimSpace(ref), s.baseURL+"/")
	if strings.Contains(objectPath, "://") {
		return fmt.Errorf("%w: %s", ErrInvalidRef, ref)
	}
	full, err := s.resolve(objectPath)
	if err != nil {
		return err
	}
	if err := os.Remove(full); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return ErrNotFound
		}
		return err
	}
	return nil
}

// resolve maps an object path into dir and refuses paths that escape it.
func (s *LocalBlobStore) resolve(objectPath string) (string, error) {
	clean := path.Clean("/" + objectPath)
	if clean == "/" {
		return "", ErrInvalidRef
	}
	return filepath.Join(s.dir, filepath.FromSlash(clean)), nil
}
