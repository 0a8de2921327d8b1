package save

import (
	"context"
	"sync"
)

// Repository stores at most one snapshot: the current save.
type Repository interface {
	// Save overwrites the stored snapshot.
	Save(ctx context.Context, snap Snapshot) error
	// Load returns the stored snapshot; ok is false when no save exists.
	Load(ctx context.Context) (snap Snapshot, ok bool, err error)
	// Clear deletes the stored snapshot.
	Clear(ctx context.Context) error
	// Close releases underlying resources.
	Close() error
}

// MemoryRepo is an in-memory Repository for tests and ephemeral runs.
type MemoryRepo struct {
	mu   sync.RWMutex
	snap Snapshot
	has  bool
}

func NewMemoryRepo() *MemoryRepo {
	return &MemoryRepo{}
}

func (r *MemoryRepo) Save(_ context.Context, snap Snapshot) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.snap = snap
	r.has = true
	return nil
}

func (r *MemoryRepo) Load(_ context.Context) (Snapshot, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.snap, r.has, nil
}

func (r *MemoryRepo) Clear(_ context.Context) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.snap = Snapshot{}
	r.has = false
	return nil
}

func (r *MemoryRepo) Close() error { return nil }
