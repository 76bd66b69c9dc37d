package models

// ReservationRequest is the payload a customer submits to claim a slot
// and create a booking in one go.
type ReservationRequest struct {
	ShopID        string        `json:"shopId" binding:"required"`
	Date          string        `json:"date" binding:"required"` // "2006-01-02"
	Time          string        `json:"time" binding:"required"` // "15:04"
	EmployeeID    string        `json:"employeeId,omitempty"`
	CustomerName  string        `json:"customerName" binding:"required"`
	CustomerEmail string        `json:"customerEmail,omitempty"`
	CustomerPhone string        `json:"customerPhone,omitempty"`
	Services      []ServiceItem `json:"services" binding:"required"`
}

// CancelRequest carries the cancellation payload for a booking.
type CancelRequest struct {
	Reason string `json:"reason"`
}

// DailyStat is one row of the shop analytics aggregation.
type DailyStat struct {
	Date     string  `bson:"_id" json:"date"`
	Bookings int     `bson:"bookings" json:"bookings"`
	Revenue  float64 `bson:"revenue" json:"revenue"`
}
