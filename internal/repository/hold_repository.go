package repository

import (
	"context"
	"database/sql"

	"github.com/iliyamo/ticket-inventory/internal/model"
)

// HoldRepo provides data access to the seat_holds table.
type HoldRepo struct {
	db *sql.DB
}

// NewHoldRepo returns a new HoldRepo bound to the provided database.
func NewHoldRepo(db *sql.DB) *HoldRepo { return &HoldRepo{db: db} }

// CreateTx inserts a new hold with status Held.  CreatedAt defaults in the
// DB; the caller supplies the UUID and the expiry.
func (r *HoldRepo) CreateTx(ctx context.Context, tx *sql.Tx, h model.SeatHold) error {
	const q = `INSERT INTO seat_holds (id, show_id, status, expires_at) VALUES (?, ?, 'Held', ?)`
	_, err := tx.ExecContext(ctx, q, h.ID, h.ShowID, h.ExpiresAt.UTC().Format(dbTimeLayout))
	return err
}

// MarkBookedTx moves a hold into its terminal Booked state.
func (r *HoldRepo) MarkBookedTx(ctx context.Context, tx *sql.Tx, holdID string) error {
	const q = `UPDATE seat_holds SET status = 'Booked' WHERE id = ?`
	_, err := tx.ExecContext(ctx, q, holdID)
	return err
}

// ExpireLapsedTx moves every Held hold whose expires_at has passed into the
// terminal Expired state and returns how many were affected.  Booked holds
// are never touched; the sweep is idempotent.
func (r *HoldRepo) ExpireLapsedTx(ctx context.Context, tx *sql.Tx) (int64, error) {
	const q = `UPDATE seat_holds SET status = 'Expired' WHERE status = 'Held' AND expires_at < UTC_TIMESTAMP()`
	res, err := tx.ExecContext(ctx, q)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}
