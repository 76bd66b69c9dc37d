// File: database/repository/hold/interface.go
package holdRepo

import (
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/mongo"

	"shearbook/database"
	"shearbook/models"
)

// ErrDuplicateActiveHold is returned by Create when another active
// (pending or booked) hold already occupies the same
// (shopId, date, time, employeeKey) tuple. The unique partial index
// closes the check-then-create race window.
var ErrDuplicateActiveHold = errors.New("an active hold already exists for this slot")

// ErrNoPendingHold is returned by MarkBooked when the hold is no longer
// in the pending state (already booked, cancelled, or swept).
var ErrNoPendingHold = errors.New("hold is not pending")

type HoldRepository interface {
	Create(ctx context.Context, hold *models.TimeSlotHold) error
	GetByID(ctx context.Context, holdID string) (*models.TimeSlotHold, error)
	FindActive(ctx context.Context, shopID, date, timeOfDay, employeeKey string) ([]models.TimeSlotHold, error)
	ActiveTimes(ctx context.Context, shopID, date, employeeKey string) ([]string, error)
	MarkBooked(ctx context.Context, holdID, bookingID string) error
	Cancel(ctx context.Context, holdID, reason string) error
	SweepOrphans(ctx context.Context, olderThan time.Time) (int64, error)
	EnsureIndexes() error
}

type mongoHoldRepo struct {
	coll *mongo.Collection
}

// NewMongoHoldRepo constructs a new MongoDB HoldRepository.
func NewMongoHoldRepo() HoldRepository {
	return &mongoHoldRepo{
		coll: database.DB().Collection("timeslot_holds"),
	}
}
