// File: database/repository/booking/aggregates.go
package bookingRepo

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	"shearbook/models"
)

// DailyStats aggregates booking counts and revenue per day for a shop
// over an inclusive date range. Cancelled bookings are excluded.
func (repo *mongoBookingRepo) DailyStats(ctx context.Context, shopID, fromDate, toDate string) ([]models.DailyStat, error) {
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	pipeline := mongo.Pipeline{
		{{Key: "$match", Value: bson.M{
			"shopId": shopID,
			"date":   bson.M{"$gte": fromDate, "$lte": toDate},
			"status": bson.M{"$ne": models.BookingCancelled},
		}}},
		{{Key: "$group", Value: bson.M{
			"_id":      "$date",
			"bookings": bson.M{"$sum": 1},
			"revenue":  bson.M{"$sum": "$totalPrice"},
		}}},
		{{Key: "$sort", Value: bson.M{"_id": 1}}},
	}

	cursor, err := repo.bookingColl.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, fmt.Errorf("error aggregating daily stats for shop %s: %w", shopID, err)
	}
	defer cursor.Close(ctx)

	var stats []models.DailyStat
	if err := cursor.All(ctx, &stats); err != nil {
		return nil, fmt.Errorf("error decoding daily stats: %w", err)
	}
	return stats, nil
}
