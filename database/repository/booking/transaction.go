// File: database/repository/booking/transaction.go
package bookingRepo

import (
	"context"
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	"shearbook/models"
)

func (repo *mongoBookingRepo) CommitWithHold(
	ctx context.Context,
	booking *models.Booking,
	holdID string,
) error {
	client := repo.bookingColl.Database().Client()
	sess, err := client.StartSession()
	if err != nil {
		return fmt.Errorf("could not start mongo session: %w", err)
	}
	defer sess.EndSession(ctx)

	txnFn := func(sc mongo.SessionContext) error {
		if _, err := repo.bookingColl.InsertOne(sc, booking); err != nil {
			return fmt.Errorf("insert booking failed: %w", err)
		}

		filter := bson.M{
			"id":     holdID,
			"status": models.HoldPending,
		}
		update := bson.M{"$set": bson.M{
			"status":    models.HoldBooked,
			"bookingId": booking.ID,
		}}

		res, err := repo.holdColl.UpdateOne(sc, filter, update)
		if err != nil {
			return fmt.Errorf("flip hold failed: %w", err)
		}
		if res.MatchedCount == 0 {
			return ErrHoldGone
		}
		return nil
	}

	if err := mongo.WithSession(ctx, sess, func(sc mongo.SessionContext) error {
		if err := sc.StartTransaction(); err != nil {
			return err
		}
		if err := txnFn(sc); err != nil {
			_ = sc.AbortTransaction(sc)
			return err
		}
		return sc.CommitTransaction(sc)
	}); err != nil {
		if errors.Is(err, ErrHoldGone) {
			return ErrHoldGone
		}
		return fmt.Errorf("booking commit transaction failed: %w", err)
	}

	return nil
}

func (repo *mongoBookingRepo) CancelWithHold(ctx context.Context, bookingID, reason string) error {
	client := repo.bookingColl.Database().Client()
	sess, err := client.StartSession()
	if err != nil {
		return fmt.Errorf("could not start mongo session: %w", err)
	}
	defer sess.EndSession(ctx)

	txnFn := func(sc mongo.SessionContext) error {
		var booking models.Booking
		if err := repo.bookingColl.FindOne(sc, bson.M{"id": bookingID}).Decode(&booking); err != nil {
			return fmt.Errorf("booking lookup failed: %w", err)
		}
		if booking.Status == models.BookingCancelled {
			return ErrAlreadyCancelled
		}

		update := bson.M{"$set": bson.M{
			"status":             models.BookingCancelled,
			"cancellationReason": reason,
		}}
		if _, err := repo.bookingColl.UpdateOne(sc, bson.M{"id": bookingID}, update); err != nil {
			return fmt.Errorf("cancel booking failed: %w", err)
		}

		holdUpdate := bson.M{"$set": bson.M{
			"status":       models.HoldCancelled,
			"active":       false,
			"cancelReason": reason,
		}}
		if _, err := repo.holdColl.UpdateOne(sc, bson.M{"id": booking.TimeSlotID}, holdUpdate); err != nil {
			return fmt.Errorf("cancel hold failed: %w", err)
		}
		return nil
	}

	if err := mongo.WithSession(ctx, sess, func(sc mongo.SessionContext) error {
		if err := sc.StartTransaction(); err != nil {
			return err
		}
		if err := txnFn(sc); err != nil {
			_ = sc.AbortTransaction(sc)
			return err
		}
		return sc.CommitTransaction(sc)
	}); err != nil {
		if errors.Is(err, ErrAlreadyCancelled) {
			return ErrAlreadyCancelled
		}
		return fmt.Errorf("cancel transaction failed: %w", err)
	}

	return nil
}
