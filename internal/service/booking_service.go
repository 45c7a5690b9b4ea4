package service

import (
	"context"
	"database/sql"
	"errors"

	"github.com/google/uuid"

	"github.com/iliyamo/ticket-inventory/internal/database"
	"github.com/iliyamo/ticket-inventory/internal/repository"
)

// BookingService converts valid, unexpired holds into permanent bookings,
// exactly once per hold.
type BookingService struct {
	db       *sql.DB
	seats    *repository.SeatRepo
	holds    *repository.HoldRepo
	bookings *repository.BookingRepo
}

// NewBookingService constructs a BookingService.
func NewBookingService(db *sql.DB, seats *repository.SeatRepo, holds *repository.HoldRepo, bookings *repository.BookingRepo) *BookingService {
	return &BookingService{db: db, seats: seats, holds: holds, bookings: bookings}
}

// ConfirmResult describes the outcome of a confirmation.  When
// AlreadyBooked is true the hold had been confirmed before and nothing was
// mutated; BookingID and SeatNumbers are only populated for a fresh booking.
type ConfirmResult struct {
	BookingID     string
	HoldID        string
	ShowID        uint64
	SeatNumbers   []string
	AlreadyBooked bool
}

// Confirm books every seat still held by holdID.  The operation is safely
// retriable: a second call after success answers "already booked" without
// touching any row.  A hold that never existed, has expired, or whose seats
// were already transitioned fails with repository.ErrInvalidHold.  The seat
// expiry is re-checked against the database clock inside the transaction,
// so confirmation after expiry fails even if the reclaimer sweep has not
// run yet.
func (s *BookingService) Confirm(ctx context.Context, holdID string) (ConfirmResult, error) {
	// Hold IDs are UUIDs; anything else can only be a never-existing hold.
	if _, err := uuid.Parse(holdID); err != nil {
		return ConfirmResult{}, repository.ErrInvalidHold
	}

	var result ConfirmResult
	err := database.RunSerializable(ctx, s.db, func(tx *sql.Tx) error {
		result = ConfirmResult{HoldID: holdID}

		booked, err := s.bookings.ExistsByHoldTx(ctx, tx, holdID)
		if err != nil {
			return err
		}
		if booked {
			result.AlreadyBooked = true
			return nil
		}

		seats, err := s.seats.ActiveByHoldTx(ctx, tx, holdID)
		if err != nil {
			return err
		}
		if len(seats) == 0 {
			return repository.ErrInvalidHold
		}

		seatIDs := make([]uint64, 0, len(seats))
		numbers := make([]string, 0, len(seats))
		for _, seat := range seats {
			seatIDs = append(seatIDs, seat.ID)
			numbers = append(numbers, seat.SeatNumber)
		}
		result.ShowID = seats[0].ShowID

		// Seats keep their hold_id and hold_expiry after booking as an
		// audit trail; only the status changes.
		if err := s.seats.MarkBookedTx(ctx, tx, seatIDs); err != nil {
			return err
		}
		bookingID := uuid.NewString()
		if err := s.bookings.CreateTx(ctx, tx, bookingID, holdID); err != nil {
			return err
		}
		if err := s.holds.MarkBookedTx(ctx, tx, holdID); err != nil {
			return err
		}
		result.BookingID = bookingID
		result.SeatNumbers = numbers
		return nil
	})
	if errors.Is(err, database.ErrTxContention) {
		return ConfirmResult{}, repository.ErrInvalidHold
	}
	if err != nil {
		return ConfirmResult{}, err
	}
	return result, nil
}
