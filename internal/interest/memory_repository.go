package interest

import (
	"context"
	"sort"
	"sync"
	"time"
)

type memoryRepository struct {
	mu        sync.Mutex
	interests map[string]Interest
	// pairs maps jobID+"|"+tradespersonID to the interest id.
	pairs map[string]string
}

// NewMemoryRepository constructs an in-memory interest repository for tests.
func NewMemoryRepository() Repository {
	return &memoryRepository{
		interests: make(map[string]Interest),
		pairs:     make(map[string]string),
	}
}

func pairKey(jobID, tradespersonID string) string {
	return jobID + "|" + tradespersonID
}

func (r *memoryRepository) Create(_ context.Context, in Interest) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	key := pairKey(in.JobID, in.TradespersonID)
	if _, exists := r.pairs[key]; exists {
		return ErrDuplicateInterest
	}
	r.interests[in.ID] = in
	r.pairs[key] = in.ID
	return nil
}

func (r *memoryRepository) Get(_ context.Context, id string) (Interest, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	in, ok := r.interests[id]
	if !ok {
		return Interest{}, ErrInterestNotFound
	}
	return in, nil
}

func (r *memoryRepository) FindByJobAndTradesperson(_ context.Context, jobID, tradespersonID string) (Interest, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	id, ok := r.pairs[pairKey(jobID, tradespersonID)]
	if !ok {
		return Interest{}, ErrInterestNotFound
	}
	return r.interests[id], nil
}

func (r *memoryRepository) MarkContactShared(_ context.Context, id string, at time.Time) (Interest, error) {
	return r.transition(id, StatusPending, StatusContactShared, at)
}

func (r *memoryRepository) MarkPaid(_ context.Context, id string, at time.Time) (Interest, error) {
	return r.transition(id, StatusContactShared, StatusPaidAccess, at)
}

func (r *memoryRepository) transition(id, from, to string, at time.Time) (Interest, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	in, ok := r.interests[id]
	if !ok {
		return Interest{}, ErrInterestNotFound
	}
	if in.Status != from {
		return in, ErrInvalidTransition
	}
	in.Status = to
	stamp := at.UTC()
	switch to {
	case StatusContactShared:
		in.ContactSharedAt = &stamp
	case StatusPaidAccess:
		in.PaymentMadeAt = &stamp
	}
	r.interests[id] = in
	return in, nil
}

func (r *memoryRepository) ExpireForJob(_ context.Context, jobID string, at time.Time) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	stamp := at.UTC()
	var count int64
	for id, in := range r.interests {
		if in.JobID != jobID {
			continue
		}
		if in.Status == StatusPending || in.Status == StatusContactShared {
			in.Status = StatusExpired
			in.ExpiredAt = &stamp
			r.interests[id] = in
			count++
		}
	}
	return count, nil
}

func (r *memoryRepository) ListForJob(_ context.Context, jobID string) ([]Interest, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []Interest
	for _, in := range r.interests {
		if in.JobID == jobID {
			out = append(out, in)
		}
	}
	sortNewestFirst(out)
	return out, nil
}

func (r *memoryRepository) ListForTradesperson(_ context.Context, tradespersonID string) ([]Interest, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []Interest
	for _, in := range r.interests {
		if in.TradespersonID == tradespersonID {
			out = append(out, in)
		}
	}
	sortNewestFirst(out)
	return out, nil
}

func sortNewestFirst(interests []Interest) {
	sort.Slice(interests, func(i, j int) bool {
		return interests[i].CreatedAt.After(interests[j].CreatedAt)
	})
}
