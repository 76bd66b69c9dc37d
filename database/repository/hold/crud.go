// File: database/repository/hold/crud.go
package holdRepo

import (
	"context"
	"time"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	"shearbook/models"
)

func (r *mongoHoldRepo) Create(ctx context.Context, hold *models.TimeSlotHold) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	if hold.ID == "" {
		hold.ID = uuid.New().String()
	}
	hold.EmployeeKey = hold.EmployeeID
	hold.Status = models.HoldPending
	hold.Active = true
	if hold.CreatedAt.IsZero() {
		hold.CreatedAt = time.Now()
	}

	if _, err := r.coll.InsertOne(ctx, hold); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return ErrDuplicateActiveHold
		}
		return err
	}
	return nil
}

func (r *mongoHoldRepo) GetByID(ctx context.Context, holdID string) (*models.TimeSlotHold, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	var hold models.TimeSlotHold
	if err := r.coll.FindOne(ctx, bson.M{"id": holdID}).Decode(&hold); err != nil {
		return nil, err
	}
	return &hold, nil
}

// MarkBooked flips a pending hold to booked and stamps the booking id.
// The status filter makes the flip conditional: a hold that was swept
// or cancelled in the meantime is not resurrected.
func (r *mongoHoldRepo) MarkBooked(ctx context.Context, holdID, bookingID string) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	filter := bson.M{"id": holdID, "status": models.HoldPending}
	update := bson.M{"$set": bson.M{
		"status":    models.HoldBooked,
		"bookingId": bookingID,
	}}
	res, err := r.coll.UpdateOne(ctx, filter, update)
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return ErrNoPendingHold
	}
	return nil
}

// Cancel transitions a hold to cancelled and removes it from the active
// set, freeing the slot. Cancelling an already-cancelled hold is a no-op.
func (r *mongoHoldRepo) Cancel(ctx context.Context, holdID, reason string) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	filter := bson.M{"id": holdID, "active": true}
	update := bson.M{"$set": bson.M{
		"status":       models.HoldCancelled,
		"active":       false,
		"cancelReason": reason,
	}}
	_, err := r.coll.UpdateOne(ctx, filter, update)
	return err
}
