// File: database/repository/booking/crud.go
package bookingRepo

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"shearbook/models"
)

func (repo *mongoBookingRepo) GetByID(ctx context.Context, bookingID string) (*models.Booking, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	var booking models.Booking
	if err := repo.bookingColl.FindOne(ctx, bson.M{"id": bookingID}).Decode(&booking); err != nil {
		return nil, err
	}
	return &booking, nil
}

func (repo *mongoBookingRepo) SetStatus(ctx context.Context, bookingID string, status models.BookingStatus) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	res, err := repo.bookingColl.UpdateOne(ctx,
		bson.M{"id": bookingID},
		bson.M{"$set": bson.M{"status": status}},
	)
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return mongo.ErrNoDocuments
	}
	return nil
}

func (repo *mongoBookingRepo) ListByShopDate(ctx context.Context, shopID, date string) ([]models.Booking, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	filter := bson.M{"shopId": shopID, "date": date}
	cursor, err := repo.bookingColl.Find(ctx, filter, options.Find().SetSort(bson.D{{Key: "time", Value: 1}}))
	if err != nil {
		return nil, fmt.Errorf("failed to fetch bookings: %w", err)
	}
	defer cursor.Close(ctx)

	var bookings []models.Booking
	if err := cursor.All(ctx, &bookings); err != nil {
		return nil, fmt.Errorf("error decoding bookings: %w", err)
	}
	return bookings, nil
}

func (repo *mongoBookingRepo) SaveInvoice(ctx context.Context, inv *models.Invoice) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	_, err := repo.invoiceColl.InsertOne(ctx, inv)
	return err
}

func (repo *mongoBookingRepo) GetInvoiceByBooking(ctx context.Context, bookingID string) (*models.Invoice, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	var inv models.Invoice
	if err := repo.invoiceColl.FindOne(ctx, bson.M{"bookingId": bookingID}).Decode(&inv); err != nil {
		return nil, err
	}
	return &inv, nil
}

// EnsureIndexes creates the necessary indexes on the bookings and
// invoices collections.
func (repo *mongoBookingRepo) EnsureIndexes() error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	_, err := repo.bookingColl.Indexes().CreateMany(ctx, []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "id", Value: 1}},
			Options: options.Index().SetUnique(true).SetName("unique_id"),
		},
		{
			Keys:    bson.D{{Key: "shopId", Value: 1}, {Key: "date", Value: 1}},
			Options: options.Index().SetName("shop_date_idx"),
		},
		{
			Keys:    bson.D{{Key: "timeSlotId", Value: 1}},
			Options: options.Index().SetName("timeslot_idx"),
		},
	})
	if err != nil {
		return fmt.Errorf("failed to create booking indexes: %w", err)
	}

	_, err = repo.invoiceColl.Indexes().CreateMany(ctx, []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "invoiceId", Value: 1}},
			Options: options.Index().SetUnique(true).SetName("unique_invoice_id"),
		},
		{
			Keys:    bson.D{{Key: "bookingId", Value: 1}},
			Options: options.Index().SetName("booking_idx"),
		},
	})
	if err != nil {
		return fmt.Errorf("failed to create invoice indexes: %w", err)
	}
	return nil
}
