package reservation

import (
	"context"
	"errors"
	"sync"
	"time"

	bookingRepo "shearbook/database/repository/booking"
	holdRepo "shearbook/database/repository/hold"
	"shearbook/models"
)

// fakeHolds is an in-memory HoldRepository that mirrors the store's
// uniqueness guarantee: at most one active hold per tuple.
type fakeHolds struct {
	mu          sync.Mutex
	holds       map[string]*models.TimeSlotHold
	createErr   error
	cancelErr   error
	createCalls int
	findCalls   int
}

func newFakeHolds() *fakeHolds {
	return &fakeHolds{holds: make(map[string]*models.TimeSlotHold)}
}

func (f *fakeHolds) Create(_ context.Context, hold *models.TimeSlotHold) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.createCalls++
	if f.createErr != nil {
		return f.createErr
	}
	for _, h := range f.holds {
		if h.Active && h.ShopID == hold.ShopID && h.Date == hold.Date &&
			h.Time == hold.Time && h.EmployeeKey == hold.EmployeeID {
			return holdRepo.ErrDuplicateActiveHold
		}
	}
	hold.EmployeeKey = hold.EmployeeID
	hold.Status = models.HoldPending
	hold.Active = true
	cp := *hold
	f.holds[hold.ID] = &cp
	return nil
}

func (f *fakeHolds) GetByID(_ context.Context, holdID string) (*models.TimeSlotHold, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	h, ok := f.holds[holdID]
	if !ok {
		return nil, errors.New("hold not found")
	}
	cp := *h
	return &cp, nil
}

func (f *fakeHolds) FindActive(_ context.Context, shopID, date, timeOfDay, employeeKey string) ([]models.TimeSlotHold, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.findCalls++
	var out []models.TimeSlotHold
	for _, h := range f.holds {
		if h.Active && h.ShopID == shopID && h.Date == date &&
			h.Time == timeOfDay && h.EmployeeKey == employeeKey {
			out = append(out, *h)
		}
	}
	return out, nil
}

func (f *fakeHolds) ActiveTimes(_ context.Context, shopID, date, employeeKey string) ([]string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []string
	for _, h := range f.holds {
		if h.Active && h.ShopID == shopID && h.Date == date && h.EmployeeKey == employeeKey {
			out = append(out, h.Time)
		}
	}
	return out, nil
}

func (f *fakeHolds) MarkBooked(_ context.Context, holdID, bookingID string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	h, ok := f.holds[holdID]
	if !ok || h.Status != models.HoldPending {
		return holdRepo.ErrNoPendingHold
	}
	h.Status = models.HoldBooked
	h.BookingID = bookingID
	return nil
}

func (f *fakeHolds) Cancel(_ context.Context, holdID, reason string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.cancelErr != nil {
		return f.cancelErr
	}
	if h, ok := f.holds[holdID]; ok && h.Active {
		h.Status = models.HoldCancelled
		h.Active = false
		h.CancelReason = reason
	}
	return nil
}

func (f *fakeHolds) SweepOrphans(_ context.Context, olderThan time.Time) (int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var n int64
	for _, h := range f.holds {
		if h.Status == models.HoldPending && h.CreatedAt.Before(olderThan) {
			h.Status = models.HoldCancelled
			h.Active = false
			n++
		}
	}
	return n, nil
}

func (f *fakeHolds) EnsureIndexes() error { return nil }

func (f *fakeHolds) activeCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	n := 0
	for _, h := range f.holds {
		if h.Active {
			n++
		}
	}
	return n
}

// fakeBookings is an in-memory BookingRepository whose commit and
// cancel paths flip holds the same way the mongo transactions do.
type fakeBookings struct {
	mu        sync.Mutex
	holds     *fakeHolds
	bookings  map[string]*models.Booking
	invoices  map[string]*models.Invoice
	commitErr error
}

func newFakeBookings(holds *fakeHolds) *fakeBookings {
	return &fakeBookings{
		holds:    holds,
		bookings: make(map[string]*models.Booking),
		invoices: make(map[string]*models.Invoice),
	}
}

func (f *fakeBookings) CommitWithHold(ctx context.Context, booking *models.Booking, holdID string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.commitErr != nil {
		return f.commitErr
	}
	if err := f.holds.MarkBooked(ctx, holdID, booking.ID); err != nil {
		return bookingRepo.ErrHoldGone
	}
	cp := *booking
	f.bookings[booking.ID] = &cp
	return nil
}

func (f *fakeBookings) CancelWithHold(ctx context.Context, bookingID, reason string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	b, ok := f.bookings[bookingID]
	if !ok {
		return errors.New("booking not found")
	}
	if b.Status == models.BookingCancelled {
		return bookingRepo.ErrAlreadyCancelled
	}
	b.Status = models.BookingCancelled
	b.CancellationReason = reason
	return f.holds.Cancel(ctx, b.TimeSlotID, reason)
}

func (f *fakeBookings) GetByID(_ context.Context, bookingID string) (*models.Booking, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	b, ok := f.bookings[bookingID]
	if !ok {
		return nil, errors.New("booking not found")
	}
	cp := *b
	return &cp, nil
}

func (f *fakeBookings) SetStatus(_ context.Context, bookingID string, status models.BookingStatus) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	b, ok := f.bookings[bookingID]
	if !ok {
		return errors.New("booking not found")
	}
	b.Status = status
	return nil
}

func (f *fakeBookings) ListByShopDate(_ context.Context, shopID, date string) ([]models.Booking, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []models.Booking
	for _, b := range f.bookings {
		if b.ShopID == shopID && b.Date == date {
			out = append(out, *b)
		}
	}
	return out, nil
}

func (f *fakeBookings) DailyStats(_ context.Context, shopID, fromDate, toDate string) ([]models.DailyStat, error) {
	return nil, nil
}

func (f *fakeBookings) SaveInvoice(_ context.Context, inv *models.Invoice) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	cp := *inv
	f.invoices[inv.BookingID] = &cp
	return nil
}

func (f *fakeBookings) GetInvoiceByBooking(_ context.Context, bookingID string) (*models.Invoice, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	inv, ok := f.invoices[bookingID]
	if !ok {
		return nil, errors.New("invoice not found")
	}
	cp := *inv
	return &cp, nil
}

func (f *fakeBookings) EnsureIndexes() error { return nil }

// fakeShops serves shop and employee reads.
type fakeShops struct {
	mu        sync.Mutex
	shops     map[string]*models.Shop
	employees map[string]*models.Employee
}

func newFakeShops(shops ...*models.Shop) *fakeShops {
	f := &fakeShops{
		shops:     make(map[string]*models.Shop),
		employees: make(map[string]*models.Employee),
	}
	for _, s := range shops {
		f.shops[s.ID] = s
	}
	return f
}

func (f *fakeShops) addEmployee(emp *models.Employee) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.employees[emp.ShopID+"/"+emp.ID] = emp
}

func (f *fakeShops) CreateShop(_ context.Context, shop *models.Shop) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.shops[shop.ID] = shop
	return nil
}

func (f *fakeShops) GetShop(_ context.Context, shopID string) (*models.Shop, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	s, ok := f.shops[shopID]
	if !ok {
		return nil, errors.New("shop not found")
	}
	return s, nil
}

func (f *fakeShops) UpdateHours(_ context.Context, shopID string, slotMinutes int, hours map[string]models.DayHours) error {
	return nil
}

func (f *fakeShops) CreateOwner(_ context.Context, owner *models.Owner) error { return nil }

func (f *fakeShops) GetOwnerByEmail(_ context.Context, email string) (*models.Owner, error) {
	return nil, errors.New("owner not found")
}

func (f *fakeShops) CreateEmployee(_ context.Context, emp *models.Employee) error {
	f.addEmployee(emp)
	return nil
}

func (f *fakeShops) GetEmployee(_ context.Context, shopID, employeeID string) (*models.Employee, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	emp, ok := f.employees[shopID+"/"+employeeID]
	if !ok {
		return nil, errors.New("employee not found")
	}
	return emp, nil
}

func (f *fakeShops) ListEmployees(_ context.Context, shopID string) ([]models.Employee, error) {
	return nil, nil
}

func (f *fakeShops) UpdateEmployeeSchedule(_ context.Context, shopID, employeeID string, schedule models.WeeklySchedule) error {
	return nil
}

func (f *fakeShops) CreateToken(_ context.Context, token *models.RegistrationToken) error {
	return nil
}

func (f *fakeShops) ConsumeToken(_ context.Context, token, employeeID string) (*models.RegistrationToken, error) {
	return nil, errors.New("not implemented")
}

func (f *fakeShops) EnsureIndexes() error { return nil }

// fakeNotifier counts notifications.
type fakeNotifier struct {
	mu        sync.Mutex
	created   int
	cancelled int
	err       error
}

func (f *fakeNotifier) BookingCreated(_ context.Context, _ *models.Booking) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return f.err
	}
	f.created++
	return nil
}

func (f *fakeNotifier) BookingCancelled(_ context.Context, _ *models.Booking, _ string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return f.err
	}
	f.cancelled++
	return nil
}

// fakeFeed records published slot updates.
type fakeFeed struct {
	mu      sync.Mutex
	updates []models.SlotUpdate
}

func (f *fakeFeed) Publish(u models.SlotUpdate) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.updates = append(f.updates, u)
}

func (f *fakeFeed) last() (models.SlotUpdate, bool) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if len(f.updates) == 0 {
		return models.SlotUpdate{}, false
	}
	return f.updates[len(f.updates)-1], true
}

// fakeCompensator records queued hold releases.
type fakeCompensator struct {
	mu      sync.Mutex
	holdIDs []string
}

func (f *fakeCompensator) EnqueueHoldRelease(holdID, reason string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.holdIDs = append(f.holdIDs, holdID)
	return nil
}
