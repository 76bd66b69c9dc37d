package invoice

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	bookingRepo "shearbook/database/repository/booking"
	"shearbook/models"
)

// Service issues invoices for completed bookings and renders them as
// PDF documents.
type Service interface {
	Issue(ctx context.Context, booking *models.Booking) (*models.Invoice, error)
	RenderPDF(inv *models.Invoice) ([]byte, error)
	GetByBooking(ctx context.Context, bookingID string) (*models.Invoice, error)
}

// DefaultInvoiceService implements Service.
type DefaultInvoiceService struct {
	Repo bookingRepo.BookingRepository

	// Now is the issue-time clock; defaults to time.Now.
	Now func() time.Time
}

func (svc *DefaultInvoiceService) now() time.Time {
	if svc.Now != nil {
		return svc.Now()
	}
	return time.Now()
}

// Issue builds and stores an invoice for the booking. Amount is the
// booking total; line items mirror the selected services.
func (svc *DefaultInvoiceService) Issue(ctx context.Context, booking *models.Booking) (*models.Invoice, error) {
	issuedAt := svc.now()
	inv := &models.Invoice{
		InvoiceID: uuid.New().String(),
		Number:    fmt.Sprintf("INV-%d-%s", issuedAt.Year(), booking.ID[:8]),
		BookingID: booking.ID,
		ShopID:    booking.ShopID,
		Customer:  booking.CustomerName,
		Items:     booking.Services,
		Amount:    booking.TotalPrice,
		IssuedAt:  issuedAt,
	}
	if err := svc.Repo.SaveInvoice(ctx, inv); err != nil {
		return nil, fmt.Errorf("failed to store invoice: %w", err)
	}
	return inv, nil
}

func (svc *DefaultInvoiceService) GetByBooking(ctx context.Context, bookingID string) (*models.Invoice, error) {
	return svc.Repo.GetInvoiceByBooking(ctx, bookingID)
}
