package profiles

import (
	"context"
	"sync"
	"time"
)

type memoryRepo struct {
	mu   sync.RWMutex
	rows map[string]Profile
}

// NewMemoryRepo constructs an in-memory profile repo for development and tests.
func NewMemoryRepo() Repo {
	return &memoryRepo{rows: make(map[string]Profile)}
}

func (r *memoryRepo) Create(ctx context.Context, p Profile) (bool, error) {
	if err := ctx.Err(); err != nil {
		return false, err
	}
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.rows[p.UserID]; ok {
		return false, nil
	}
	now := time.Now().UTC()
	p.CreatedAt = now
	p.UpdatedAt = now
	r.rows[p.UserID] = p
	return true, nil
}

func (r *memoryRepo) GetByUserID(ctx context.Context, userID string) (Profile, error) {
	if err := ctx.Err(); err != nil {
		return Profile{}, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()

	p, ok := r.rows[userID]
	if !ok {
		return Profile{}, ErrNotFound
	}
	return p, nil
}
