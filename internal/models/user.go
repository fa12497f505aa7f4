package models

import "time"

// Subscription tiers.
const (
	TierFree    = "free"
	TierBasic   = "basic"
	TierPremium = "premium"
)

// User is the current identity as supplied by the auth service. The quiz core
// only ever reads IsPremium; a nil *User is treated as an anonymous free user.
type User struct {
	ID                 string     `json:"id"`
	Email              string     `json:"email"`
	Name               string     `json:"name"`
	IsPremium          bool       `json:"isPremium"`
	SubscriptionTier   string     `json:"subscriptionTier"`
	SubscriptionExpiry *time.Time `json:"subscriptionExpiry,omitempty"`
	CreatedAt          time.Time  `json:"createdAt"`
}

// Premium reports whether the identity bypasses the free-usage gate.
// Safe to call on a nil user.
func (u *User) Premium() bool {
	return u != nil && u.IsPremium
}
