package profiles

import "time"

// Profile is an account record for a signed-in user.
type Profile struct {
	UserID               string    `json:"userId"`
	Email                string    `json:"email"`
	FullName             string    `json:"fullName"`
	PictureURL           string    `json:"pictureUrl"`
	SubscriptionTier     string    `json:"subscriptionTier"`
	SubscriptionActive   bool      `json:"subscriptionActive"`
	StripeSubscriptionID string    `json:"stripeSubscriptionId"`
	CreatedAt            time.Time `json:"createdAt"`
	UpdatedAt            time.Time `json:"updatedAt"`
}
