// FILE: database/repository/hold/indexes.go
package holdRepo

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// EnsureIndexes creates the necessary indexes on the holds collection.
//
// The unique partial index over (shopId, date, time, employeeKey) with
// active=true is the mutual-exclusion contract: two concurrent inserts
// for the same tuple cannot both succeed, whatever the outcome of the
// preceding availability check. Cancelled holds drop out of the index
// (active=false), so a slot frees up the moment its hold is cancelled.
func (r *mongoHoldRepo) EnsureIndexes() error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	indexModels := []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "id", Value: 1}},
			Options: options.Index().SetUnique(true).SetName("unique_id"),
		},
		{
			Keys: bson.D{
				{Key: "shopId", Value: 1},
				{Key: "date", Value: 1},
				{Key: "time", Value: 1},
				{Key: "employeeKey", Value: 1},
			},
			Options: options.Index().
				SetUnique(true).
				SetPartialFilterExpression(bson.M{"active": true}).
				SetName("unique_active_slot"),
		},
		// Primary availability query pattern.
		{
			Keys: bson.D{
				{Key: "shopId", Value: 1},
				{Key: "date", Value: 1},
				{Key: "active", Value: 1},
			},
			Options: options.Index().SetName("shop_date_active_idx"),
		},
		// Orphan sweep scans pending holds by age.
		{
			Keys: bson.D{
				{Key: "status", Value: 1},
				{Key: "createdAt", Value: 1},
			},
			Options: options.Index().SetName("status_created_idx"),
		},
	}

	_, err := r.coll.Indexes().CreateMany(ctx, indexModels)
	if err != nil {
		return fmt.Errorf("failed to create hold indexes: %w", err)
	}
	return nil
}
