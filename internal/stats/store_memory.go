package stats

import (
	"context"
	"sync"
	"time"
)

type memoryStore struct {
	mu   sync.RWMutex
	rows map[string]Stats
}

// NewMemoryStore constructs an in-memory stats store for development and tests.
func NewMemoryStore() Store {
	return &memoryStore{rows: make(map[string]Stats)}
}

func (s *memoryStore) Increment(ctx context.Context, userID string, promptTokens, completionTokens, totalTokens int) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	row := s.rows[userID]
	row.UserID = userID
	row.ResumesParsed++
	row.PromptTokens += int64(promptTokens)
	row.CompletionTokens += int64(completionTokens)
	row.TotalTokens += int64(totalTokens)
	row.UpdatedAt = time.Now().UTC()
	s.rows[userID] = row
	return nil
}

func (s *memoryStore) Get(ctx context.Context, userID string) (Stats, error) {
	if err := ctx.Err(); err != nil {
		return Stats{}, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()

	row, ok := s.rows[userID]
	if !ok {
		return Stats{UserID: userID}, nil
	}
	return row, nil
}
