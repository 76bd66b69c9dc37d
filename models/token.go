package models

import "time"

// TokenStatus is the lifecycle state of a RegistrationToken.
type TokenStatus string

const (
	TokenPending   TokenStatus = "pending"
	TokenCompleted TokenStatus = "completed"
)

// RegistrationToken is a one-time invite a shop owner hands to a barber
// for self-registration. It transitions pending -> completed exactly
// once: consumption is a conditional update on used=false, so a
// concurrent second use sees zero matched documents and is rejected.
type RegistrationToken struct {
	ID         string      `bson:"id" json:"id"`
	ShopID     string      `bson:"shopId" json:"shopId"`
	Token      string      `bson:"token" json:"token"`
	Status     TokenStatus `bson:"status" json:"status"`
	Used       bool        `bson:"used" json:"used"`
	EmployeeID string      `bson:"employeeId,omitempty" json:"employeeId,omitempty"`
	ExpiresAt  time.Time   `bson:"expiresAt" json:"expiresAt"`
	UsedAt     *time.Time  `bson:"usedAt,omitempty" json:"usedAt,omitempty"`
	CreatedAt  time.Time   `bson:"createdAt" json:"createdAt"`
}

// Expired reports whether the token is past its expiry at the given instant.
func (t *RegistrationToken) Expired(now time.Time) bool {
	return now.After(t.ExpiresAt)
}
