package repository

import (
	"context"
	"database/sql"
)

// BookingRepo provides data access to the bookings table.  Bookings are
// written once and never mutated or deleted.
type BookingRepo struct {
	db *sql.DB
}

// NewBookingRepo returns a new BookingRepo bound to the provided database.
func NewBookingRepo(db *sql.DB) *BookingRepo { return &BookingRepo{db: db} }

// ExistsByHoldTx reports whether a booking already references the hold.
// Confirmation checks this inside its transaction so retried confirms are
// answered idempotently instead of tripping the unique key on hold_id.
func (r *BookingRepo) ExistsByHoldTx(ctx context.Context, tx *sql.Tx, holdID string) (bool, error) {
	const q = `SELECT EXISTS(SELECT 1 FROM bookings WHERE hold_id = ?)`
	var exists bool
	err := tx.QueryRowContext(ctx, q, holdID).Scan(&exists)
	return exists, err
}

// CreateTx inserts the permanent booking record for a hold.
func (r *BookingRepo) CreateTx(ctx context.Context, tx *sql.Tx, bookingID, holdID string) error {
	const q = `INSERT INTO bookings (id, hold_id) VALUES (?, ?)`
	_, err := tx.ExecContext(ctx, q, bookingID, holdID)
	return err
}
