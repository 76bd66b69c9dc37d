package models

import "time"

// Invoice is issued when a booking is marked completed.
type Invoice struct {
	InvoiceID string        `bson:"invoiceId" json:"invoiceId"`
	Number    string        `bson:"number" json:"number"` // human-readable, e.g. "INV-2025-000123"
	BookingID string        `bson:"bookingId" json:"bookingId"`
	ShopID    string        `bson:"shopId" json:"shopId"`
	Customer  string        `bson:"customer" json:"customer"`
	Items     []ServiceItem `bson:"items" json:"items"`
	Amount    float64       `bson:"amount" json:"amount"`
	IssuedAt  time.Time     `bson:"issuedAt" json:"issuedAt"`
}
