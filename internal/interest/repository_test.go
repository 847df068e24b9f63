package interest

import (
	"context"
	"errors"
	"testing"
	"time"
)

func TestPostgresMalformedIdentifiersShortCircuit(t *testing.T) {
	// Each malformed-id guard must reject before any query is issued, so a
	// nil pool is never touched.
	r := NewPostgresRepository(nil)
	ctx := context.Background()

	if _, err := r.Get(ctx, "not-a-uuid"); !errors.Is(err, ErrInterestNotFound) {
		t.Fatalf("get: expected ErrInterestNotFound got %v", err)
	}
	if _, err := r.FindByJobAndTradesperson(ctx, "not-a-uuid", "also-not"); !errors.Is(err, ErrInterestNotFound) {
		t.Fatalf("find: expected ErrInterestNotFound got %v", err)
	}
	if _, err := r.MarkContactShared(ctx, "not-a-uuid", time.Now()); !errors.Is(err, ErrInterestNotFound) {
		t.Fatalf("mark shared: expected ErrInterestNotFound got %v", err)
	}

	count, err := r.ExpireForJob(ctx, "not-a-uuid", time.Now())
	if err != nil || count != 0 {
		t.Fatalf("expire: expected 0 expired, got %d err %v", count, err)
	}
}
