package models

import "time"

// BookingStatus is the lifecycle state of a Booking.
type BookingStatus string

const (
	BookingPending   BookingStatus = "pending"
	BookingConfirmed BookingStatus = "confirmed"
	BookingCompleted BookingStatus = "completed"
	BookingCancelled BookingStatus = "cancelled"
)

// ServiceItem is one service line on a booking (e.g. "Fade", 18.50, 30min).
type ServiceItem struct {
	Name            string  `bson:"name" json:"name"`
	Price           float64 `bson:"price" json:"price"`
	DurationMinutes int     `bson:"durationMinutes" json:"durationMinutes"`
}

// TotalPriceOf sums the prices of the selected services.
func TotalPriceOf(items []ServiceItem) float64 {
	var total float64
	for _, it := range items {
		total += it.Price
	}
	return total
}

// Booking is the durable record of a confirmed customer appointment.
// Exactly one booking references exactly one TimeSlotHold.
type Booking struct {
	ID                 string        `bson:"id" json:"id"`
	ShopID             string        `bson:"shopId" json:"shopId"`
	EmployeeID         string        `bson:"employeeId,omitempty" json:"employeeId,omitempty"`
	CustomerName       string        `bson:"customerName" json:"customerName"`
	CustomerEmail      string        `bson:"customerEmail,omitempty" json:"customerEmail,omitempty"`
	CustomerPhone      string        `bson:"customerPhone,omitempty" json:"customerPhone,omitempty"`
	Services           []ServiceItem `bson:"services" json:"services"`
	Date               string        `bson:"date" json:"date"` // "2006-01-02"
	Time               string        `bson:"time" json:"time"` // "15:04"
	TotalPrice         float64       `bson:"totalPrice" json:"totalPrice"`
	Status             BookingStatus `bson:"status" json:"status"`
	TimeSlotID         string        `bson:"timeSlotId" json:"timeSlotId"` // back-reference to the hold
	CancellationReason string        `bson:"cancellationReason,omitempty" json:"cancellationReason,omitempty"`
	CreatedAt          time.Time     `bson:"createdAt" json:"createdAt"`
}
