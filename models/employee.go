package models

import "time"

// WeeklySchedule maps a lowercase weekday name to the hours (0-23)
// during which an employee accepts bookings. An employee with no
// entry for a weekday is off that day.
type WeeklySchedule map[string][]int

// HasHour reports whether the schedule includes the given hour on
// the given weekday.
func (ws WeeklySchedule) HasHour(d time.Weekday, hour int) bool {
	for _, h := range ws[WeekdayKey(d)] {
		if h == hour {
			return true
		}
	}
	return false
}

// Employee is a barber attached to a shop.
type Employee struct {
	ID        string         `bson:"id" json:"id"`
	ShopID    string         `bson:"shopId" json:"shopId"`
	Name      string         `bson:"name" json:"name"`
	Email     string         `bson:"email,omitempty" json:"email,omitempty"`
	Phone     string         `bson:"phone,omitempty" json:"phone,omitempty"`
	Schedule  WeeklySchedule `bson:"schedule" json:"schedule"`
	Active    bool           `bson:"active" json:"active"`
	CreatedAt time.Time      `bson:"createdAt" json:"createdAt"`
}
