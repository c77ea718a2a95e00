package memory

import (
	"context"
	"fmt"
	"sync"

	"github.com/swappi-app/swappi-backend/internal/repository"
)

// BlobStore keeps uploads in memory and hands out memory:// URLs.
type BlobStore struct {
	mu    sync.RWMutex
	blobs map[string][]byte
}

var _ repository.BlobStore = (*BlobStore)(nil)

func NewBlobStore() *BlobStore {
	return &BlobStore{blobs: make(map[string][]byte)}
}

func (s *BlobStore) Put(_ context.Context, key string, data []byte, _ string) (string, error) {
	if key == "" {
		return "", fmt.Errorf("blob key cannot be empty")
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	stored := make([]byte, len(data))
	copy(stored, data)
	s.blobs[key] = stored
	return "memory://" + key, nil
}

func (s *BlobStore) Get(key string) ([]byte, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	data, ok := s.blobs[key]
	return data, ok
}

func (s *BlobStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.blobs)
}
