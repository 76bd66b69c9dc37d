package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"shearbook/models"
	"shearbook/services/invoice"
	"shearbook/services/reservation"
	"shearbook/utils"
)

// BookingHandler exposes the reservation API.
type BookingHandler struct {
	Svc      reservation.ReservationService
	Invoices invoice.Service
	Logger   *zap.Logger
}

func NewBookingHandler(svc reservation.ReservationService, invoices invoice.Service, logger *zap.Logger) *BookingHandler {
	return &BookingHandler{Svc: svc, Invoices: invoices, Logger: logger}
}

// Reserve handles POST /api/bookings: claim the slot and create the
// booking in one request.
func (h *BookingHandler) Reserve(c *gin.Context) {
	var req models.ReservationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid input", err.Error())
		return
	}
	if len(req.Services) == 0 {
		utils.JSONError(c, http.StatusBadRequest, "invalid input", "at least one service is required")
		return
	}

	booking, err := h.Svc.ReserveSlot(c.Request.Context(), req)
	if err != nil {
		h.writeReservationError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"booking": booking})
}

// Cancel handles POST /api/bookings/:id/cancel.
func (h *BookingHandler) Cancel(c *gin.Context) {
	bookingID := c.Param("id")
	var req models.CancelRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid input", err.Error())
		return
	}

	if err := h.Svc.CancelBooking(c.Request.Context(), bookingID, req.Reason); err != nil {
		h.writeReservationError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "cancelled"})
}

// Complete handles POST /api/bookings/:id/complete (staff action).
func (h *BookingHandler) Complete(c *gin.Context) {
	bookingID := c.Param("id")

	inv, err := h.Svc.CompleteBooking(c.Request.Context(), bookingID)
	if err != nil {
		h.writeReservationError(c, err)
		return
	}
	resp := gin.H{"status": "completed"}
	if inv != nil {
		resp["invoice"] = inv
	}
	c.JSON(http.StatusOK, resp)
}

// Availability handles GET /api/shops/:id/slots?date=&employeeId=.
func (h *BookingHandler) Availability(c *gin.Context) {
	shopID := c.Param("id")
	date := c.Query("date")
	employeeID := c.Query("employeeId")
	if date == "" {
		utils.JSONError(c, http.StatusBadRequest, "invalid input", "date query parameter is required")
		return
	}

	slots, err := h.Svc.AvailableSlots(c.Request.Context(), shopID, date, employeeID)
	if err != nil {
		h.writeReservationError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"shopId":     shopID,
		"date":       date,
		"employeeId": employeeID,
		"slots":      slots,
	})
}

// InvoicePDF handles GET /api/bookings/:id/invoice, streaming the
// rendered PDF.
func (h *BookingHandler) InvoicePDF(c *gin.Context) {
	bookingID := c.Param("id")

	inv, err := h.Invoices.GetByBooking(c.Request.Context(), bookingID)
	if err != nil {
		utils.JSONError(c, http.StatusNotFound, "invoice not found", bookingID)
		return
	}
	pdf, err := h.Invoices.RenderPDF(inv)
	if err != nil {
		h.Logger.Error("invoice render failed", zap.String("bookingId", bookingID), zap.Error(err))
		utils.JSONError(c, http.StatusInternalServerError, "failed to render invoice", "")
		return
	}

	c.Header("Content-Disposition", "attachment; filename="+inv.Number+".pdf")
	c.Data(http.StatusOK, "application/pdf", pdf)
}

// writeReservationError maps the reservation error taxonomy onto HTTP
// responses. Nothing escapes unclassified.
func (h *BookingHandler) writeReservationError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, reservation.ErrSlotUnavailable):
		utils.JSONError(c, http.StatusConflict, "slot unavailable", "that time was just taken, please pick another slot")
	case errors.Is(err, reservation.ErrScheduleViolation):
		utils.JSONError(c, http.StatusUnprocessableEntity, "schedule violation", err.Error())
	case errors.Is(err, reservation.ErrNotFound):
		utils.JSONError(c, http.StatusNotFound, "not found", err.Error())
	case errors.Is(err, reservation.ErrHoldCreationFailed),
		errors.Is(err, reservation.ErrBookingCreationFailed):
		utils.JSONError(c, http.StatusServiceUnavailable, "temporary failure", "please retry your booking")
	default:
		h.Logger.Error("unclassified reservation error", zap.Error(err))
		utils.JSONError(c, http.StatusInternalServerError, "internal error", "")
	}
}
