package models

import "time"

// HoldStatus is the lifecycle state of a TimeSlotHold.
type HoldStatus string

const (
	HoldPending   HoldStatus = "pending"
	HoldBooked    HoldStatus = "booked"
	HoldCancelled HoldStatus = "cancelled"
)

// TimeSlotHold marks a (shop, date, time, employee) tuple as claimed.
// At most one hold may be active (pending or booked) for a tuple at any
// instant; the store enforces this with a unique partial index over
// (shopId, date, time, employeeKey) filtered to active holds.
//
// EmployeeKey is the employee ID, or "" for a shop-generic hold. It is
// always set, so generic holds compete only with generic holds and two
// employees can hold the same wall-clock slot independently.
type TimeSlotHold struct {
	ID           string     `bson:"id" json:"id"`
	ShopID       string     `bson:"shopId" json:"shopId"`
	Date         string     `bson:"date" json:"date"` // "2006-01-02"
	Time         string     `bson:"time" json:"time"` // "15:04"
	EmployeeID   string     `bson:"employeeId,omitempty" json:"employeeId,omitempty"`
	EmployeeKey  string     `bson:"employeeKey" json:"-"`
	Status       HoldStatus `bson:"status" json:"status"`
	Active       bool       `bson:"active" json:"-"` // true while status is pending or booked
	BookingID    string     `bson:"bookingId,omitempty" json:"bookingId,omitempty"`
	CancelReason string     `bson:"cancelReason,omitempty" json:"cancelReason,omitempty"`
	CreatedAt    time.Time  `bson:"createdAt" json:"createdAt"`
}
