package notification

import (
	"context"
	"fmt"
	"time"

	notificationRepo "shearbook/database/repository/notification"
	"shearbook/models"
)

// NotificationService records informational events for shop owners.
// All methods are best-effort from the caller's perspective: a returned
// error is logged upstream and never escalates into the outcome of the
// booking that triggered it.
type NotificationService interface {
	BookingCreated(ctx context.Context, booking *models.Booking) error
	BookingCancelled(ctx context.Context, booking *models.Booking, reason string) error
}

// DefaultNotificationService implements NotificationService.
type DefaultNotificationService struct {
	Repo notificationRepo.NotificationRepository
}

func formatBookingDateTime(dateStr, clock string) string {
	t, err := time.Parse("2006-01-02 15:04", dateStr+" "+clock)
	if err != nil {
		return dateStr + " " + clock
	}
	return t.Format("2 January, 3:04 PM")
}

func (svc *DefaultNotificationService) BookingCreated(ctx context.Context, booking *models.Booking) error {
	when := formatBookingDateTime(booking.Date, booking.Time)
	n := &models.Notification{
		ShopID:  booking.ShopID,
		Type:    "booking_created",
		Title:   "New booking",
		Message: fmt.Sprintf("%s booked an appointment on %s.", booking.CustomerName, when),
		Data: map[string]any{
			"bookingId":  booking.ID,
			"date":       booking.Date,
			"time":       booking.Time,
			"employeeId": booking.EmployeeID,
			"amount":     booking.TotalPrice,
		},
	}
	return svc.Repo.Create(ctx, n)
}

func (svc *DefaultNotificationService) BookingCancelled(ctx context.Context, booking *models.Booking, reason string) error {
	when := formatBookingDateTime(booking.Date, booking.Time)
	n := &models.Notification{
		ShopID:  booking.ShopID,
		Type:    "booking_cancelled",
		Title:   "Booking cancelled",
		Message: fmt.Sprintf("The appointment of %s on %s was cancelled.", booking.CustomerName, when),
		Data: map[string]any{
			"bookingId": booking.ID,
			"date":      booking.Date,
			"time":      booking.Time,
			"reason":    reason,
		},
	}
	return svc.Repo.Create(ctx, n)
}
