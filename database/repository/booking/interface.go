// File: database/repository/booking/interface.go
package bookingRepo

import (
	"context"
	"errors"

	"go.mongodb.org/mongo-driver/mongo"

	"shearbook/database"
	"shearbook/models"
)

// ErrHoldGone is returned by CommitWithHold when the referenced hold is
// no longer pending — the winner of a racing reservation flipped or a
// sweep cancelled it first. The commit transaction aborts and nothing
// is written.
var ErrHoldGone = errors.New("hold no longer pending")

// ErrAlreadyCancelled is returned by CancelWithHold when the booking is
// already cancelled. Callers treat it as a no-op signal, not a failure.
var ErrAlreadyCancelled = errors.New("booking already cancelled")

type BookingRepository interface {
	// CommitWithHold durably creates the booking and flips its hold from
	// pending to booked in a single multi-document transaction. This is
	// the atomic commit point of the reservation saga.
	CommitWithHold(ctx context.Context, booking *models.Booking, holdID string) error

	// CancelWithHold transitions the booking and its linked hold to
	// cancelled in a single multi-document transaction, so a slot can
	// never stay falsely blocked by a cancelled booking.
	CancelWithHold(ctx context.Context, bookingID, reason string) error

	GetByID(ctx context.Context, bookingID string) (*models.Booking, error)
	SetStatus(ctx context.Context, bookingID string, status models.BookingStatus) error
	ListByShopDate(ctx context.Context, shopID, date string) ([]models.Booking, error)
	DailyStats(ctx context.Context, shopID, fromDate, toDate string) ([]models.DailyStat, error)

	SaveInvoice(ctx context.Context, inv *models.Invoice) error
	GetInvoiceByBooking(ctx context.Context, bookingID string) (*models.Invoice, error)

	EnsureIndexes() error
}

type mongoBookingRepo struct {
	bookingColl *mongo.Collection
	holdColl    *mongo.Collection
	invoiceColl *mongo.Collection
}

// NewMongoBookingRepo constructs a new MongoDB BookingRepository.
func NewMongoBookingRepo() BookingRepository {
	db := database.DB()
	return &mongoBookingRepo{
		bookingColl: db.Collection("bookings"),
		holdColl:    db.Collection("timeslot_holds"),
		invoiceColl: db.Collection("invoices"),
	}
}
