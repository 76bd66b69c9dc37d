// File: database/repository/hold/queries.go
package holdRepo

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"

	"shearbook/models"
)

// FindActive returns holds with status in {pending, booked} for the
// given (shop, date, time) tuple, scoped to the employee key. A key of
// "" matches only shop-generic holds, so employee-specific holds never
// block generic ones and vice versa.
func (r *mongoHoldRepo) FindActive(ctx context.Context, shopID, date, timeOfDay, employeeKey string) ([]models.TimeSlotHold, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	filter := bson.M{
		"shopId":      shopID,
		"date":        date,
		"time":        timeOfDay,
		"employeeKey": employeeKey,
		"status":      bson.M{"$in": []models.HoldStatus{models.HoldPending, models.HoldBooked}},
	}

	cursor, err := r.coll.Find(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch holds: %w", err)
	}
	defer cursor.Close(ctx)

	var holds []models.TimeSlotHold
	if err := cursor.All(ctx, &holds); err != nil {
		return nil, fmt.Errorf("error decoding holds: %w", err)
	}
	return holds, nil
}

// ActiveTimes returns the distinct blocked times for a shop/date,
// scoped to the employee key. It backs the availability endpoint and
// the snapshot sent to new feed subscribers.
func (r *mongoHoldRepo) ActiveTimes(ctx context.Context, shopID, date, employeeKey string) ([]string, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	filter := bson.M{
		"shopId":      shopID,
		"date":        date,
		"employeeKey": employeeKey,
		"active":      true,
	}

	raw, err := r.coll.Distinct(ctx, "time", filter)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch blocked times: %w", err)
	}

	times := make([]string, 0, len(raw))
	for _, v := range raw {
		if s, ok := v.(string); ok {
			times = append(times, s)
		}
	}
	return times, nil
}

// SweepOrphans cancels pending holds created before the cutoff. These
// are holds whose creator died between hold creation and booking commit
// without managing to run its own rollback.
func (r *mongoHoldRepo) SweepOrphans(ctx context.Context, olderThan time.Time) (int64, error) {
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	filter := bson.M{
		"status":    models.HoldPending,
		"createdAt": bson.M{"$lt": olderThan},
	}
	update := bson.M{"$set": bson.M{
		"status":       models.HoldCancelled,
		"active":       false,
		"cancelReason": "orphan sweep",
	}}

	res, err := r.coll.UpdateMany(ctx, filter, update)
	if err != nil {
		return 0, fmt.Errorf("orphan sweep failed: %w", err)
	}
	return res.ModifiedCount, nil
}
