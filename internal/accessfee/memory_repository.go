package accessfee

import (
	"context"
	"sync"
)

type memoryRepository struct {
	mu   sync.RWMutex
	fees map[string]int64
}

// NewMemoryRepository constructs an in-memory fee repository for tests.
func NewMemoryRepository() Repository {
	return &memoryRepository{fees: make(map[string]int64)}
}

func (r *memoryRepository) Get(_ context.Context, jobID string) (int64, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	coins, ok := r.fees[jobID]
	return coins, ok, nil
}

func (r *memoryRepository) Set(_ context.Context, jobID string, feeCoins int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.fees[jobID] = feeCoins
	return nil
}
