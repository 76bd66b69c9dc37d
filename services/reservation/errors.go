package reservation

import "errors"

// Reservation error taxonomy. Everything the saga can fail with is
// classified into one of these so the HTTP boundary can map it to a
// user-facing message; nothing propagates as an unhandled fault.
var (
	// ErrSlotUnavailable: another hold already occupies the requested
	// tuple. Nothing was mutated on behalf of this request.
	ErrSlotUnavailable = errors.New("slot unavailable")

	// ErrScheduleViolation: the requested time falls outside the shop's
	// or employee's declared hours, or within the past buffer. Rejected
	// before any write is attempted.
	ErrScheduleViolation = errors.New("schedule violation")

	// ErrHoldCreationFailed: transient store failure before or during
	// hold creation. Retryable; no booking was attempted.
	ErrHoldCreationFailed = errors.New("hold creation failed")

	// ErrBookingCreationFailed: the hold was created but the booking
	// commit failed. The compensating rollback has been run (or queued).
	// Retryable; a retry starts a fresh availability check.
	ErrBookingCreationFailed = errors.New("booking creation failed")

	// ErrCleanupFailed: the compensating rollback itself failed, leaving
	// a pending hold that silently blocks a slot until the retry queue
	// or the orphan sweep reaches it. Logged distinctly wherever it
	// occurs.
	ErrCleanupFailed = errors.New("hold cleanup failed")

	// ErrNotFound: the referenced shop, employee, or booking does not exist.
	ErrNotFound = errors.New("not found")
)
