package invoice

import (
	"bytes"
	"context"
	"errors"
	"testing"
	"time"

	"shearbook/models"
)

// memInvoiceStore stubs the booking repository surface the service uses.
type memInvoiceStore struct {
	invoices map[string]*models.Invoice
	saveErr  error
}

func (s *memInvoiceStore) SaveInvoice(_ context.Context, inv *models.Invoice) error {
	if s.saveErr != nil {
		return s.saveErr
	}
	if s.invoices == nil {
		s.invoices = make(map[string]*models.Invoice)
	}
	cp := *inv
	s.invoices[inv.BookingID] = &cp
	return nil
}

func (s *memInvoiceStore) GetInvoiceByBooking(_ context.Context, bookingID string) (*models.Invoice, error) {
	inv, ok := s.invoices[bookingID]
	if !ok {
		return nil, errors.New("invoice not found")
	}
	return inv, nil
}

func (s *memInvoiceStore) CommitWithHold(context.Context, *models.Booking, string) error {
	return nil
}

func (s *memInvoiceStore) CancelWithHold(context.Context, string, string) error { return nil }

func (s *memInvoiceStore) GetByID(context.Context, string) (*models.Booking, error) {
	return nil, errors.New("not implemented")
}

func (s *memInvoiceStore) SetStatus(context.Context, string, models.BookingStatus) error {
	return nil
}
func (s *memInvoiceStore) ListByShopDate(context.Context, string, string) ([]models.Booking, error) {
	return nil, nil
}

func (s *memInvoiceStore) DailyStats(context.Context, string, string, string) ([]models.DailyStat, error) {
	return nil, nil
}

func (s *memInvoiceStore) EnsureIndexes() error { return nil }

func testBooking() *models.Booking {
	return &models.Booking{
		ID:           "7f3c9a1e-booking",
		ShopID:       "acme-cuts",
		CustomerName: "Sam Rivera",
		Services: []models.ServiceItem{
			{Name: "Fade", Price: 18.50, DurationMinutes: 30},
			{Name: "Beard trim", Price: 8.00, DurationMinutes: 15},
		},
		Date:       "2025-03-01",
		Time:       "09:00",
		TotalPrice: 26.50,
		Status:     models.BookingCompleted,
	}
}

func TestIssue(t *testing.T) {
	store := &memInvoiceStore{}
	svc := &DefaultInvoiceService{
		Repo: store,
		Now:  func() time.Time { return time.Date(2025, 3, 1, 17, 30, 0, 0, time.UTC) },
	}

	inv, err := svc.Issue(context.Background(), testBooking())
	if err != nil {
		t.Fatalf("Issue: %v", err)
	}
	if inv.Number != "INV-2025-7f3c9a1e" {
		t.Errorf("invoice number = %q, want INV-2025-7f3c9a1e", inv.Number)
	}
	if inv.Amount != 26.50 {
		t.Errorf("amount = %v, want 26.50", inv.Amount)
	}
	if len(inv.Items) != 2 {
		t.Errorf("line items = %d, want 2", len(inv.Items))
	}

	stored, err := svc.GetByBooking(context.Background(), "7f3c9a1e-booking")
	if err != nil {
		t.Fatalf("GetByBooking: %v", err)
	}
	if stored.InvoiceID != inv.InvoiceID {
		t.Errorf("stored invoice %q, want %q", stored.InvoiceID, inv.InvoiceID)
	}
}

func TestIssueStoreFailure(t *testing.T) {
	store := &memInvoiceStore{saveErr: errors.New("connection reset")}
	svc := &DefaultInvoiceService{Repo: store}

	if _, err := svc.Issue(context.Background(), testBooking()); err == nil {
		t.Fatal("Issue with failing store succeeded, want error")
	}
}

func TestRenderPDF(t *testing.T) {
	svc := &DefaultInvoiceService{}
	inv := &models.Invoice{
		Number:    "INV-2025-7f3c9a1e",
		BookingID: "7f3c9a1e-booking",
		Customer:  "Sam Rivera",
		Items: []models.ServiceItem{
			{Name: "Fade", Price: 18.50, DurationMinutes: 30},
		},
		Amount:   18.50,
		IssuedAt: time.Date(2025, 3, 1, 17, 30, 0, 0, time.UTC),
	}

	data, err := svc.RenderPDF(inv)
	if err != nil {
		t.Fatalf("RenderPDF: %v", err)
	}
	if !bytes.HasPrefix(data, []byte("%PDF")) {
		t.Errorf("output does not start with a PDF header: %q", data[:min(len(data), 8)])
	}
}
