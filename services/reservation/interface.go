package reservation

import (
	"context"
	"time"

	"github.com/go-redis/redis/v8"

	bookingRepo "shearbook/database/repository/booking"
	holdRepo "shearbook/database/repository/hold"
	shopRepo "shearbook/database/repository/shop"
	"shearbook/models"
	"shearbook/services/notification"
)

// ReservationService coordinates slot holds and booking creation so a
// given (shop, date, time, employee) slot is claimed by at most one
// customer, with compensating rollback on partial failure.
type ReservationService interface {
	ReserveSlot(ctx context.Context, req models.ReservationRequest) (*models.Booking, error)
	AvailableSlots(ctx context.Context, shopID, date, employeeID string) ([]string, error)
	BlockedTimes(ctx context.Context, shopID, date, employeeID string) ([]string, error)
	CancelBooking(ctx context.Context, bookingID, reason string) error
	CompleteBooking(ctx context.Context, bookingID string) (*models.Invoice, error)
	ReleaseSlot(ctx context.Context, holdID, reason string) error
}

// FeedPublisher pushes live slot updates to subscribed clients.
type FeedPublisher interface {
	Publish(u models.SlotUpdate)
}

// Compensator queues a hold release for retried, backed-off execution
// when the inline rollback fails.
type Compensator interface {
	EnqueueHoldRelease(holdID, reason string) error
}

// InvoiceIssuer produces and stores an invoice for a completed booking.
type InvoiceIssuer interface {
	Issue(ctx context.Context, booking *models.Booking) (*models.Invoice, error)
}

// DefaultReservationService implements ReservationService.
type DefaultReservationService struct {
	Shops    shopRepo.ShopRepository
	Holds    holdRepo.HoldRepository
	Bookings bookingRepo.BookingRepository
	Notifier notification.NotificationService

	Feed        FeedPublisher // optional
	Compensator Compensator   // optional
	Invoices    InvoiceIssuer // optional
	Cache       *redis.Client // optional availability cache

	// Now is the clock used for past-buffer checks; defaults to time.Now.
	Now func() time.Time
	// PastBuffer is how close to the current time a "today" slot may be
	// before it is treated as unavailable.
	PastBuffer time.Duration
}

func (s *DefaultReservationService) now() time.Time {
	if s.Now != nil {
		return s.Now()
	}
	return time.Now()
}
