package models

import "time"

// Notification is an informational record for a shop owner. Creation is
// best-effort: a failed insert is logged and never fails the booking
// that triggered it.
type Notification struct {
	ID        string         `bson:"id" json:"id"`
	ShopID    string         `bson:"shopId" json:"shopId"`
	Type      string         `bson:"type" json:"type"` // "booking_created", "booking_cancelled", ...
	Title     string         `bson:"title" json:"title"`
	Message   string         `bson:"message" json:"message"`
	Data      map[string]any `bson:"data,omitempty" json:"data,omitempty"`
	Read      bool           `bson:"read" json:"read"`
	CreatedAt time.Time      `bson:"createdAt" json:"createdAt"`
}
