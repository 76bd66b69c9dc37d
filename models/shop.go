package models

import (
	"strings"
	"time"
)

// DayHours describes a shop's opening window for one weekday,
// as wall-clock strings ("09:00", "17:00"). A missing weekday
// entry means the shop is closed that day.
type DayHours struct {
	Open  string `bson:"open" json:"open"`
	Close string `bson:"close" json:"close"`
}

// Shop is a barbershop listed on the marketplace.
type Shop struct {
	ID          string              `bson:"id" json:"id"`
	OwnerID     string              `bson:"ownerId" json:"ownerId"`
	Name        string              `bson:"name" json:"name"`
	Address     string              `bson:"address,omitempty" json:"address,omitempty"`
	Phone       string              `bson:"phone,omitempty" json:"phone,omitempty"`
	SlotMinutes int                 `bson:"slotMinutes" json:"slotMinutes"` // slot grid step, e.g. 30
	Hours       map[string]DayHours `bson:"hours" json:"hours"`            // keyed by lowercase weekday name
	CreatedAt   time.Time           `bson:"createdAt" json:"createdAt"`
}

// WeekdayKey normalizes a time.Weekday into the map key used by
// Shop.Hours and WeeklySchedule ("monday", "tuesday", ...).
func WeekdayKey(d time.Weekday) string {
	return strings.ToLower(d.String())
}

// HoursFor returns the opening window for the given weekday, or
// false when the shop is closed that day.
func (s *Shop) HoursFor(d time.Weekday) (DayHours, bool) {
	h, ok := s.Hours[WeekdayKey(d)]
	return h, ok
}
