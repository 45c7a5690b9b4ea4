package handler

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/ticket-inventory/internal/repository"
)

// ShowHandler exposes the show inventory endpoints: creation with seat
// seeding, listing, per-show seat summary and available-seat listing.  This
// is plain data entry; the reservation core in the service package owns all
// seat state transitions after creation.
type ShowHandler struct {
	Shows *repository.ShowRepo
	Seats *repository.SeatRepo
}

// NewShowHandler constructs a ShowHandler with the provided repositories.
func NewShowHandler(shows *repository.ShowRepo, seats *repository.SeatRepo) *ShowHandler {
	if shows == nil || seats == nil {
		panic("nil repository passed to NewShowHandler")
	}
	return &ShowHandler{Shows: shows, Seats: seats}
}

// CreateShow handles POST /v1/shows.  It creates a show together with its
// fixed seat inventory S1..SN, all Available, in one transaction.  The seat
// count is immutable afterwards.
func (h *ShowHandler) CreateShow(c echo.Context) error {
	var body struct {
		MovieName  string `json:"movie_name"`
		TotalSeats uint32 `json:"total_seats"`
	}
	if err := c.Bind(&body); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
	}
	name := strings.TrimSpace(body.MovieName)
	if name == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "movie_name is required"})
	}
	if len(name) > 200 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "movie_name too long"})
	}
	if body.TotalSeats < 1 || body.TotalSeats > 500 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "total_seats must be between 1 and 500"})
	}

	ctx := c.Request().Context()
	tx, err := h.Shows.DB().BeginTx(ctx, nil)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to start transaction"})
	}
	committed := false
	defer func() {
		if !committed {
			_ = tx.Rollback()
		}
	}()

	showID, err := h.Shows.CreateTx(ctx, tx, name, body.TotalSeats)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "could not create show"})
	}
	numbers := make([]string, 0, body.TotalSeats)
	for i := uint32(1); i <= body.TotalSeats; i++ {
		numbers = append(numbers, fmt.Sprintf("S%d", i))
	}
	if err := h.Seats.CreateBulkTx(ctx, tx, showID, numbers); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to create seats"})
	}
	if err := tx.Commit(); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to commit transaction"})
	}
	committed = true
	return c.JSON(http.StatusCreated, echo.Map{"id": showID})
}

// ListShows handles GET /v1/shows and returns all shows.
func (h *ShowHandler) ListShows(c echo.Context) error {
	shows, err := h.Shows.List(c.Request().Context())
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to load shows"})
	}
	items := make([]echo.Map, 0, len(shows))
	for _, s := range shows {
		items = append(items, echo.Map{"id": s.ID, "movie_name": s.MovieName})
	}
	return c.JSON(http.StatusOK, echo.Map{"items": items})
}

// SeatSummary handles GET /v1/shows/:id/seats/summary and returns seat
// counts grouped by status.
func (h *ShowHandler) SeatSummary(c echo.Context) error {
	showID, err := parseShowID(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid show id"})
	}
	ctx := c.Request().Context()
	if _, err := h.Shows.GetByID(ctx, showID); err != nil {
		if errors.Is(err, repository.ErrShowNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "show not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	}
	summary, err := h.Seats.SummaryByShow(ctx, showID)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to load seat summary"})
	}
	return c.JSON(http.StatusOK, summary)
}

// AvailableSeats handles GET /v1/shows/:id/seats/available and returns the
// seat numbers currently Available, in seat-number order.
func (h *ShowHandler) AvailableSeats(c echo.Context) error {
	showID, err := parseShowID(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid show id"})
	}
	ctx := c.Request().Context()
	if _, err := h.Shows.GetByID(ctx, showID); err != nil {
		if errors.Is(err, repository.ErrShowNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "show not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	}
	numbers, err := h.Seats.AvailableNumbers(ctx, showID)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to load seats"})
	}
	return c.JSON(http.StatusOK, echo.Map{"seats": numbers})
}

func parseShowID(c echo.Context) (uint64, error) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || id == 0 {
		return 0, errors.New("invalid show id")
	}
	return id, nil
}
