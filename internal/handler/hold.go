package handler

import (
	"errors"
	"log"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/ticket-inventory/internal/queue"
	"github.com/iliyamo/ticket-inventory/internal/repository"
	"github.com/iliyamo/ticket-inventory/internal/service"
)

// HoldHandler exposes the reservation core over HTTP: creating seat holds
// and confirming them.  All correctness-critical logic lives in the service
// layer; this handler only binds input, maps sentinel errors to HTTP status
// codes and publishes the booking.confirmed event after a fresh booking.
type HoldHandler struct {
	Holds    *service.HoldService
	Bookings *service.BookingService
	Shows    *repository.ShowRepo
}

// NewHoldHandler constructs a HoldHandler.  All dependencies must be non-nil.
func NewHoldHandler(holds *service.HoldService, bookings *service.BookingService, shows *repository.ShowRepo) *HoldHandler {
	if holds == nil || bookings == nil || shows == nil {
		panic("nil dependency passed to NewHoldHandler")
	}
	return &HoldHandler{Holds: holds, Bookings: bookings, Shows: shows}
}

// HoldSeats handles POST /v1/shows/:id/holds.  The request body carries a
// "seat_numbers" array and an optional "hold_duration_seconds" (default
// 120, maximum 300).  On success it returns 201 with the hold ID and its
// expiry.  Requests for seats that are unknown or not Available fail with
// 409 and no seat is mutated.
func (h *HoldHandler) HoldSeats(c echo.Context) error {
	showID, err := parseShowID(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid show id"})
	}
	var body struct {
		SeatNumbers         []string `json:"seat_numbers"`
		HoldDurationSeconds int      `json:"hold_duration_seconds"`
	}
	if err := c.Bind(&body); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
	}
	if body.HoldDurationSeconds == 0 {
		body.HoldDurationSeconds = service.DefaultHoldDurationSeconds
	}

	res, err := h.Holds.CreateHold(c.Request().Context(), showID, body.SeatNumbers, body.HoldDurationSeconds)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrNoSeats),
			errors.Is(err, service.ErrDuplicateSeats),
			errors.Is(err, service.ErrHoldDuration):
			return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
		case errors.Is(err, repository.ErrShowNotFound):
			return c.JSON(http.StatusNotFound, echo.Map{"error": "show not found"})
		case errors.Is(err, repository.ErrSeatsUnavailable):
			return c.JSON(http.StatusConflict, echo.Map{"error": "one or more seats unavailable"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to create hold"})
	}
	return c.JSON(http.StatusCreated, echo.Map{
		"hold_id":    res.HoldID,
		"expires_at": res.ExpiresAt.Format(time.RFC3339),
	})
}

// Confirm handles POST /v1/holds/:id/confirm.  Confirmation is idempotent:
// repeating it after success answers 200 again without creating a second
// booking.  A missing, expired or already-reclaimed hold fails with 409.
func (h *HoldHandler) Confirm(c echo.Context) error {
	holdID := c.Param("id")
	if holdID == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid hold id"})
	}

	res, err := h.Bookings.Confirm(c.Request().Context(), holdID)
	if err != nil {
		if errors.Is(err, repository.ErrInvalidHold) {
			return c.JSON(http.StatusConflict, echo.Map{"error": "invalid or expired hold"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to confirm hold"})
	}
	if res.AlreadyBooked {
		return c.JSON(http.StatusOK, echo.Map{"status": "booked"})
	}

	// Best effort: a broker outage must not fail a booking that already
	// committed.
	event := queue.BookingConfirmedEvent{
		BookingID:   res.BookingID,
		HoldID:      res.HoldID,
		ShowID:      res.ShowID,
		Seats:       res.SeatNumbers,
		ConfirmedAt: time.Now().UTC().Format(time.RFC3339),
	}
	if show, err := h.Shows.GetByID(c.Request().Context(), res.ShowID); err == nil {
		event.MovieName = show.MovieName
	}
	if err := queue.PublishBookingConfirmed(c.Request().Context(), event); err != nil {
		log.Printf("hold: publish booking.confirmed failed: %v", err)
	}

	return c.JSON(http.StatusOK, echo.Map{
		"status":     "booked",
		"booking_id": res.BookingID,
	})
}
