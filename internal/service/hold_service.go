// Package service implements the seat reservation core: hold creation and
// hold confirmation.  Both operations run inside serializable transactions
// so that checking seat state and mutating it form one atomic unit; a
// check-then-act split under weaker isolation would let two concurrent
// callers both observe Available and double-reserve a seat.
package service

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/google/uuid"

	"github.com/iliyamo/ticket-inventory/internal/database"
	"github.com/iliyamo/ticket-inventory/internal/model"
	"github.com/iliyamo/ticket-inventory/internal/repository"
)

// Validation sentinels for hold creation.  All are recoverable by the
// caller with corrected input.
var (
	ErrNoSeats        = errors.New("select at least one seat")
	ErrDuplicateSeats = errors.New("duplicate seat numbers")
	ErrHoldDuration   = errors.New("hold duration must be between 1 and 300 seconds")
)

const (
	// MaxHoldDurationSeconds caps how long a hold may claim seats.
	MaxHoldDurationSeconds = 300
	// DefaultHoldDurationSeconds applies when a request omits the duration.
	DefaultHoldDurationSeconds = 120
)

// HoldService creates time-boxed exclusive holds over sets of seats.
type HoldService struct {
	db    *sql.DB
	shows *repository.ShowRepo
	seats *repository.SeatRepo
	holds *repository.HoldRepo
}

// NewHoldService constructs a HoldService.  All dependencies must be non-nil.
func NewHoldService(db *sql.DB, shows *repository.ShowRepo, seats *repository.SeatRepo, holds *repository.HoldRepo) *HoldService {
	return &HoldService{db: db, shows: shows, seats: seats, holds: holds}
}

// HoldResult is returned to the caller on a successful hold.
type HoldResult struct {
	HoldID    string
	ExpiresAt time.Time
}

// CreateHold claims the given seats of a show for holdDurationSeconds.
// Either every requested seat transitions to Held and a hold record is
// inserted, or nothing changes at all.
//
// Errors: ErrNoSeats / ErrDuplicateSeats / ErrHoldDuration for malformed
// input, repository.ErrShowNotFound for an unknown show, and
// repository.ErrSeatsUnavailable when any seat is unknown for the show, not
// Available, or the transaction kept losing serialization conflicts.
func (s *HoldService) CreateHold(ctx context.Context, showID uint64, seatNumbers []string, holdDurationSeconds int) (HoldResult, error) {
	if len(seatNumbers) == 0 {
		return HoldResult{}, ErrNoSeats
	}
	seen := make(map[string]struct{}, len(seatNumbers))
	for _, num := range seatNumbers {
		if _, dup := seen[num]; dup {
			return HoldResult{}, ErrDuplicateSeats
		}
		seen[num] = struct{}{}
	}
	if holdDurationSeconds <= 0 || holdDurationSeconds > MaxHoldDurationSeconds {
		return HoldResult{}, ErrHoldDuration
	}
	exists, err := s.shows.Exists(ctx, showID)
	if err != nil {
		return HoldResult{}, err
	}
	if !exists {
		return HoldResult{}, repository.ErrShowNotFound
	}

	holdID := uuid.NewString()
	expiresAt := time.Now().UTC().Add(time.Duration(holdDurationSeconds) * time.Second).Truncate(time.Second)

	err = database.RunSerializable(ctx, s.db, func(tx *sql.Tx) error {
		seats, err := s.seats.ByShowAndNumbersTx(ctx, tx, showID, seatNumbers)
		if err != nil {
			return err
		}
		// A missing row means an unknown seat number for this show; both
		// that and a non-Available seat fail the whole request.
		if len(seats) != len(seatNumbers) {
			return repository.ErrSeatsUnavailable
		}
		seatIDs := make([]uint64, 0, len(seats))
		for _, seat := range seats {
			if seat.Status != model.SeatAvailable {
				return repository.ErrSeatsUnavailable
			}
			seatIDs = append(seatIDs, seat.ID)
		}
		if err := s.seats.MarkHeldTx(ctx, tx, seatIDs, holdID, expiresAt); err != nil {
			return err
		}
		return s.holds.CreateTx(ctx, tx, model.SeatHold{
			ID:        holdID,
			ShowID:    showID,
			Status:    model.HoldHeld,
			ExpiresAt: expiresAt,
		})
	})
	if errors.Is(err, database.ErrTxContention) {
		return HoldResult{}, repository.ErrSeatsUnavailable
	}
	if err != nil {
		return HoldResult{}, err
	}
	return HoldResult{HoldID: holdID, ExpiresAt: expiresAt}, nil
}
