package stats

import "context"

// Service fronts the stats store.
type Service struct {
	store Store
}

// NewService constructs the stats service.
func NewService(store Store) *Service {
	return &Service{store: store}
}

// Record adds one parsed resume and its token spend for the user.
func (s *Service) Record(ctx context.Context, userID string, promptTokens, completionTokens, totalTokens int) error {
	return s.store.Increment(ctx, userID, promptTokens, completionTokens, totalTokens)
}

// Get returns the user's accumulated stats.
func (s *Service) Get(ctx context.Context, userID string) (Stats, error) {
	return s.store.Get(ctx, userID)
}
