package profiles

import (
	"context"
	"errors"
)

// Service fronts the profile repo.
type Service struct {
	repo Repo
}

// NewService constructs the profile service.
func NewService(repo Repo) *Service {
	return &Service{repo: repo}
}

// CreateIfMissing inserts a profile for the user unless one already exists.
func (s *Service) CreateIfMissing(ctx context.Context, userID, email, fullName, pictureURL string) (created bool, err error) {
	return s.repo.Create(ctx, Profile{
		UserID:     userID,
		Email:      email,
		FullName:   fullName,
		PictureURL: pictureURL,
	})
}

// Get returns the user's profile.
func (s *Service) Get(ctx context.Context, userID string) (Profile, error) {
	return s.repo.GetByUserID(ctx, userID)
}

// SubscriptionActive reports whether the user has an active subscription.
// Users without a profile are simply inactive.
func (s *Service) SubscriptionActive(ctx context.Context, userID string) (bool, error) {
	p, err := s.repo.GetByUserID(ctx, userID)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return false, nil
		}
		return false, err
	}
	return p.SubscriptionActive, nil
}
