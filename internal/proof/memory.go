package proof

import (
	"context"
	"fmt"
	"io"
	"sync"
)

type memoryStore struct {
	mu    sync.Mutex
	blobs map[string][]byte
}

// NewMemoryStore builds an in-memory proof store for tests and development.
func NewMemoryStore() Store {
	return &memoryStore{blobs: make(map[string][]byte)}
}

func (s *memoryStore) Save(_ context.Context, ownerID, filename string, r io.Reader) (string, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return "", err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	ref := fmt.Sprintf("mem://%s/%d-%s", ownerID, len(s.blobs), filename)
	s.blobs[ref] = data
	return ref, nil
}
