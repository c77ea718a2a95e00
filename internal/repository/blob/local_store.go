package blob

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/swappi-app/swappi-backend/internal/repository"
)

// MediaRoute is where the HTTP server exposes the local store.
const MediaRoute = "/media"

// LocalStore writes blobs under a base directory, served by the router under MediaRoute.
type LocalStore struct {
	basePath      string
	publicBaseURL string
}

var _ repository.BlobStore = (*LocalStore)(nil)

func NewLocalStore(basePath, publicBaseURL string) (*LocalStore, error) {
	if basePath == "" {
		return nil, fmt.Errorf("base path cannot be empty")
	}
	if err := os.MkdirAll(basePath, 0755); err != nil {
		return nil, fmt.Errorf("failed to create media directory: %w", err)
	}
	return &LocalStore{
		basePath:      basePath,
		publicBaseURL: strings.TrimSuffix(publicBaseURL, "/"),
	}, nil
}

func (s *LocalStore) BasePath() string {
	return s.basePath
}

func (s *LocalStore) Put(_ context.Context, key string, data []byte, _ string) (string, error) {
	path, err := s.Path(key)
	if err != nil {
		return "", err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return "", fmt.Errorf("failed to create media directory: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return "", fmt.Errorf("failed to write media file: %w", err)
	}
	return s.publicBaseURL + MediaRoute + "/" + filepath.ToSlash(filepath.Clean(key)), nil
}

// Path resolves key inside the base directory and rejects keys that escape it.
func (s *LocalStore) Path(key string) (string, error) {
	if key == "" {
		return "", fmt.Errorf("blob key cannot be empty")
	}
	cleaned := filepath.Clean(filepath.FromSlash(key))
	if filepath.IsAbs(cleaned) || cleaned == ".." || strings.HasPrefix(cleaned, ".."+string(filepath.Separator)) {
		return "", fmt.Errorf("invalid blob key %q", key)
	}
	return filepath.Join(s.basePath, cleaned), nil
}
