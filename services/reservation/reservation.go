package reservation

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"go.uber.org/zap"

	bookingRepo "shearbook/database/repository/booking"
	holdRepo "shearbook/database/repository/hold"
	"shearbook/models"
	"shearbook/utils"
)

// ReserveSlot runs the reservation saga:
//
//  1. validate the request against shop and employee schedules
//  2. check for a conflicting active hold
//  3. create a pending hold (the mutual-exclusion checkpoint; the
//     unique partial index makes the loser of any remaining race fail
//     here with a duplicate-key error)
//  4. commit the booking and flip the hold to booked in one transaction
//  5. on any failure after step 3, cancel the hold; if that cancel
//     fails too, queue it for retried release
//
// Best-effort side effects (owner notification, feed publish, cache
// invalidation) never affect the outcome.
func (s *DefaultReservationService) ReserveSlot(ctx context.Context, req models.ReservationRequest) (*models.Booking, error) {
	logger := utils.GetLogger()

	shop, err := s.Shops.GetShop(ctx, req.ShopID)
	if err != nil {
		return nil, fmt.Errorf("%w: shop %s", ErrNotFound, req.ShopID)
	}
	if err := s.validateSchedule(ctx, shop, req); err != nil {
		return nil, err
	}

	employeeKey := req.EmployeeID

	// Fast-path conflict check. The unique index below is the real
	// guarantee; this read just avoids burning a hold insert on a slot
	// the caller can already see is taken.
	existing, err := s.Holds.FindActive(ctx, req.ShopID, req.Date, req.Time, employeeKey)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrHoldCreationFailed, err)
	}
	if len(existing) > 0 {
		return nil, ErrSlotUnavailable
	}

	hold := &models.TimeSlotHold{
		ID:         uuid.New().String(),
		ShopID:     req.ShopID,
		Date:       req.Date,
		Time:       req.Time,
		EmployeeID: req.EmployeeID,
		CreatedAt:  s.now(),
	}
	if err := s.Holds.Create(ctx, hold); err != nil {
		if errors.Is(err, holdRepo.ErrDuplicateActiveHold) {
			return nil, ErrSlotUnavailable
		}
		return nil, fmt.Errorf("%w: %v", ErrHoldCreationFailed, err)
	}
	s.publish(hold, true)

	booking := &models.Booking{
		ID:            uuid.New().String(),
		ShopID:        req.ShopID,
		EmployeeID:    req.EmployeeID,
		CustomerName:  req.CustomerName,
		CustomerEmail: req.CustomerEmail,
		CustomerPhone: req.CustomerPhone,
		Services:      req.Services,
		Date:          req.Date,
		Time:          req.Time,
		TotalPrice:    models.TotalPriceOf(req.Services),
		Status:        models.BookingConfirmed,
		TimeSlotID:    hold.ID,
		CreatedAt:     s.now(),
	}

	if err := s.Bookings.CommitWithHold(ctx, booking, hold.ID); err != nil {
		logger.Warn("booking commit failed, rolling back hold",
			zap.String("holdId", hold.ID),
			zap.String("shopId", req.ShopID),
			zap.Error(err))
		s.compensate(ctx, hold, "booking commit failed")
		if errors.Is(err, bookingRepo.ErrHoldGone) {
			return nil, ErrSlotUnavailable
		}
		return nil, fmt.Errorf("%w: %v", ErrBookingCreationFailed, err)
	}

	if err := s.Notifier.BookingCreated(ctx, booking); err != nil {
		// Informational only; a failed notification never fails the booking.
		logger.Warn("booking notification failed",
			zap.String("bookingId", booking.ID), zap.Error(err))
	}
	s.invalidateBlocked(ctx, hold.ShopID, hold.Date, hold.EmployeeID)

	logger.Info("slot reserved",
		zap.String("bookingId", booking.ID),
		zap.String("shopId", booking.ShopID),
		zap.String("date", booking.Date),
		zap.String("time", booking.Time),
		zap.String("employeeId", booking.EmployeeID))
	return booking, nil
}

// validateSchedule enforces the schedule preconditions before any write:
// parseable date, time on the shop's slot grid, outside the past buffer,
// and within the employee's weekly hours when one is requested.
func (s *DefaultReservationService) validateSchedule(ctx context.Context, shop *models.Shop, req models.ReservationRequest) error {
	start, err := slotStart(req.Date, req.Time)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrScheduleViolation, err)
	}

	grid := SlotGrid(shop, start.Weekday())
	if len(grid) == 0 {
		return fmt.Errorf("%w: shop is closed on %s", ErrScheduleViolation, models.WeekdayKey(start.Weekday()))
	}
	if !containsTime(grid, req.Time) {
		return fmt.Errorf("%w: %s is outside shop hours", ErrScheduleViolation, req.Time)
	}
	if start.Before(s.now().Add(s.PastBuffer)) {
		return fmt.Errorf("%w: slot starts too soon", ErrScheduleViolation)
	}

	if req.EmployeeID != "" {
		emp, err := s.Shops.GetEmployee(ctx, req.ShopID, req.EmployeeID)
		if err != nil {
			return fmt.Errorf("%w: employee %s", ErrNotFound, req.EmployeeID)
		}
		if !emp.Schedule.HasHour(start.Weekday(), start.Hour()) {
			return fmt.Errorf("%w: %s is outside %s's hours", ErrScheduleViolation, req.Time, emp.Name)
		}
	}
	return nil
}

// compensate cancels a hold after a downstream failure. When the cancel
// itself fails the hold is orphaned until the retry queue or the orphan
// sweep reaches it; that condition is logged distinctly.
func (s *DefaultReservationService) compensate(ctx context.Context, hold *models.TimeSlotHold, reason string) {
	logger := utils.GetLogger()

	if err := s.Holds.Cancel(ctx, hold.ID, reason); err != nil {
		logger.Error("hold cleanup failed, slot may stay falsely blocked",
			zap.String("holdId", hold.ID),
			zap.String("shopId", hold.ShopID),
			zap.String("date", hold.Date),
			zap.String("time", hold.Time),
			zap.NamedError("cleanupError", fmt.Errorf("%w: %v", ErrCleanupFailed, err)))
		if s.Compensator != nil {
			if qerr := s.Compensator.EnqueueHoldRelease(hold.ID, reason); qerr != nil {
				logger.Error("failed to enqueue hold release, orphan sweep will collect it",
					zap.String("holdId", hold.ID), zap.Error(qerr))
			}
		}
		return
	}
	s.publish(hold, false)
	s.invalidateBlocked(ctx, hold.ShopID, hold.Date, hold.EmployeeID)
}

// publish pushes a slot update to the live feed, if one is attached.
func (s *DefaultReservationService) publish(hold *models.TimeSlotHold, blocked bool) {
	if s.Feed == nil {
		return
	}
	s.Feed.Publish(models.SlotUpdate{
		ShopID:      hold.ShopID,
		Date:        hold.Date,
		Time:        hold.Time,
		EmployeeKey: hold.EmployeeID,
		Blocked:     blocked,
	})
}
