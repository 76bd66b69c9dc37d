package reservation

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"

	bookingRepo "shearbook/database/repository/booking"
	"shearbook/models"
	"shearbook/utils"
)

// CancelBooking transitions a booking and its linked hold to cancelled
// as one atomic pair, so the slot frees up exactly when the booking
// dies. Cancelling an already-cancelled booking is a no-op: no error,
// no second notification.
func (s *DefaultReservationService) CancelBooking(ctx context.Context, bookingID, reason string) error {
	logger := utils.GetLogger()

	booking, err := s.Bookings.GetByID(ctx, bookingID)
	if err != nil {
		return fmt.Errorf("%w: booking %s", ErrNotFound, bookingID)
	}
	if booking.Status == models.BookingCancelled {
		return nil
	}

	if err := s.Bookings.CancelWithHold(ctx, bookingID, reason); err != nil {
		if errors.Is(err, bookingRepo.ErrAlreadyCancelled) {
			return nil
		}
		return fmt.Errorf("failed to cancel booking %s: %w", bookingID, err)
	}

	if err := s.Notifier.BookingCancelled(ctx, booking, reason); err != nil {
		logger.Warn("cancellation notification failed",
			zap.String("bookingId", bookingID), zap.Error(err))
	}

	hold := &models.TimeSlotHold{
		ID:         booking.TimeSlotID,
		ShopID:     booking.ShopID,
		Date:       booking.Date,
		Time:       booking.Time,
		EmployeeID: booking.EmployeeID,
	}
	s.publish(hold, false)
	s.invalidateBlocked(ctx, booking.ShopID, booking.Date, booking.EmployeeID)

	logger.Info("booking cancelled",
		zap.String("bookingId", bookingID),
		zap.String("reason", reason))
	return nil
}

// CompleteBooking marks a booking completed and issues its invoice.
// Invoice failures are logged but do not undo the completion.
func (s *DefaultReservationService) CompleteBooking(ctx context.Context, bookingID string) (*models.Invoice, error) {
	booking, err := s.Bookings.GetByID(ctx, bookingID)
	if err != nil {
		return nil, fmt.Errorf("%w: booking %s", ErrNotFound, bookingID)
	}
	if booking.Status == models.BookingCancelled {
		return nil, fmt.Errorf("cannot complete a cancelled booking")
	}

	if err := s.Bookings.SetStatus(ctx, bookingID, models.BookingCompleted); err != nil {
		return nil, fmt.Errorf("failed to complete booking %s: %w", bookingID, err)
	}

	if s.Invoices == nil {
		return nil, nil
	}
	inv, err := s.Invoices.Issue(ctx, booking)
	if err != nil {
		utils.GetLogger().Warn("invoice generation failed",
			zap.String("bookingId", bookingID), zap.Error(err))
		return nil, nil
	}
	return inv, nil
}

// ReleaseSlot cancels a hold directly. It backs the queued compensation
// path and administrative slot releases.
func (s *DefaultReservationService) ReleaseSlot(ctx context.Context, holdID, reason string) error {
	hold, err := s.Holds.GetByID(ctx, holdID)
	if err != nil {
		return fmt.Errorf("%w: hold %s", ErrNotFound, holdID)
	}
	if err := s.Holds.Cancel(ctx, holdID, reason); err != nil {
		return fmt.Errorf("%w: %v", ErrCleanupFailed, err)
	}
	s.publish(hold, false)
	s.invalidateBlocked(ctx, hold.ShopID, hold.Date, hold.EmployeeID)
	return nil
}
