package stats

import "context"

// Store persists per-user parse accounting.
type Store interface {
	// Increment adds one parsed resume and the given token counts to the
	// user's row, creating it when missing.
	Increment(ctx context.Context, userID string, promptTokens, completionTokens, totalTokens int) error
	// Get returns the user's accumulated stats. A user with no recorded
	// parses gets a zero-valued row, not an error.
	Get(ctx context.Context, userID string) (Stats, error)
}
