package profiles

import "context"

// Repo persists profiles.
type Repo interface {
	// Create inserts a new profile. Returns nil without changes when the
	// profile already exists.
	Create(ctx context.Context, p Profile) (created bool, err error)
	GetByUserID(ctx context.Context, userID string) (Profile, error)
}
