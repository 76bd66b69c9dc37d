package models

// SlotUpdate is one live-feed event: a slot became blocked (a hold went
// active) or free (a hold was cancelled) for a shop/date, scoped to an
// employee key ("" for shop-generic slots).
type SlotUpdate struct {
	ShopID      string `json:"shopId"`
	Date        string `json:"date"`
	Time        string `json:"time"`
	EmployeeKey string `json:"employeeId,omitempty"`
	Blocked     bool   `json:"blocked"`
}

// FeedSnapshot is the first frame sent to a new feed subscriber: the
// currently blocked times for the subscribed shop/date/employee.
type FeedSnapshot struct {
	ShopID       string   `json:"shopId"`
	Date         string   `json:"date"`
	EmployeeKey  string   `json:"employeeId,omitempty"`
	BlockedTimes []string `json:"blockedTimes"`
}
