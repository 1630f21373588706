package profiles

import (
	"context"
	"database/sql"
	"errors"
	"time"
)

// PGRepo is a Postgres-backed profile repo.
type PGRepo struct {
	DB *sql.DB
}

func (r *PGRepo) Create(ctx context.Context, p Profile) (bool, error) {
	const query = `
INSERT INTO profiles (user_id, email, full_name, picture_url, subscription_tier, subscription_active, stripe_subscription_id, created_at, updated_at)
VALUES ($1, $2, $3, $4, $5, $6, $7, now(), now())
ON CONFLICT (user_id) DO NOTHING`
	res, err := r.DB.ExecContext(ctx, query,
		p.UserID,
		p.Email,
		nullableString(p.FullName),
		nullableString(p.PictureURL),
		nullableString(p.SubscriptionTier),
		p.SubscriptionActive,
		nullableString(p.StripeSubscriptionID),
	)
	if err != nil {
		return false, err
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	return affected > 0, nil
}

func (r *PGRepo) GetByUserID(ctx context.Context, userID string) (Profile, error) {
	const query = `
SELECT user_id, email, full_name, picture_url, subscription_tier, subscription_active, stripe_subscription_id, created_at, updated_at
FROM profiles
WHERE user_id = $1
LIMIT 1`
	var p Profile
	var fullName sql.NullString
	var pictureURL sql.NullString
	var tier sql.NullString
	var stripeID sql.NullString
	var updatedAt sql.NullTime
	err := r.DB.QueryRowContext(ctx, query, userID).Scan(
		&p.UserID,
		&p.Email,
		&fullName,
		&pictureURL,
		&tier,
		&p.SubscriptionActive,
		&stripeID,
		&p.CreatedAt,
		&updatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return Profile{}, ErrNotFound
		}
		return Profile{}, err
	}
	if fullName.Valid {
		p.FullName = fullName.String
	}
	if pictureURL.Valid {
		p.PictureURL = pictureURL.String
	}
	if tier.Valid {
		p.SubscriptionTier = tier.String
	}
	if stripeID.Valid {
		p.StripeSubscriptionID = stripeID.String
	}
	if updatedAt.Valid {
		p.UpdatedAt = updatedAt.Time
	} else {
		p.UpdatedAt = time.Now().UTC()
	}
	return p, nil
}

func nullableString(value string) any {
	if value == "" {
		return nil
	}
	return value
}

var _ Repo = (*PGRepo)(nil)
