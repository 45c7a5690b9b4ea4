package repository

import (
	"context"
	"database/sql"
	"strings"
	"time"

	"github.com/iliyamo/ticket-inventory/internal/model"
)

// dbTimeLayout is the MySQL DATETIME format used when binding timestamps.
// All values are formatted in UTC so comparisons against UTC_TIMESTAMP()
// on the server are consistent.
const dbTimeLayout = "2006-01-02 15:04:05"

// SeatRepo encapsulates database operations on the seats table.  Methods
// with a Tx suffix run inside a caller-supplied transaction; the caller is
// responsible for committing or rolling back.
type SeatRepo struct {
	db *sql.DB
}

// NewSeatRepo constructs a SeatRepo given a DB handle.
func NewSeatRepo(db *sql.DB) *SeatRepo { return &SeatRepo{db: db} }

// placeholders returns "?, ?, ..." with n markers, for IN clauses and
// multi-row inserts.
func placeholders(n int) string {
	return strings.TrimSuffix(strings.Repeat("?, ", n), ", ")
}

// CreateBulkTx inserts one Available seat row per seat number for the given
// show in a single statement.  Timestamps and status default in the DB.
func (r *SeatRepo) CreateBulkTx(ctx context.Context, tx *sql.Tx, showID uint64, seatNumbers []string) error {
	if len(seatNumbers) == 0 {
		return nil
	}
	query := `INSERT INTO seats (show_id, seat_number) VALUES `
	args := make([]interface{}, 0, len(seatNumbers)*2)
	for i, num := range seatNumbers {
		if i > 0 {
			query += ","
		}
		query += "(?, ?)"
		args = append(args, showID, num)
	}
	_, err := tx.ExecContext(ctx, query, args...)
	return err
}

// ByShowAndNumbersTx loads the seats matching (showID, seatNumber) for every
// requested number.  Seats that do not exist are simply absent from the
// result; callers detect unknown seat numbers by comparing lengths.  Under a
// serializable transaction this read locks the returned rows, which is what
// prevents two concurrent holds from both observing Available.
func (r *SeatRepo) ByShowAndNumbersTx(ctx context.Context, tx *sql.Tx, showID uint64, seatNumbers []string) ([]model.Seat, error) {
	if len(seatNumbers) == 0 {
		return nil, nil
	}
	query := `SELECT id, show_id, seat_number, status FROM seats WHERE show_id = ? AND seat_number IN (` +
		placeholders(len(seatNumbers)) + `)`
	args := make([]interface{}, 0, len(seatNumbers)+1)
	args = append(args, showID)
	for _, num := range seatNumbers {
		args = append(args, num)
	}
	rows, err := tx.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var seats []model.Seat
	for rows.Next() {
		var s model.Seat
		if err := rows.Scan(&s.ID, &s.ShowID, &s.SeatNumber, &s.Status); err != nil {
			return nil, err
		}
		seats = append(seats, s)
	}
	return seats, rows.Err()
}

// MarkHeldTx transitions the given seats to Held, stamping the owning hold
// and its expiry onto every row.
func (r *SeatRepo) MarkHeldTx(ctx context.Context, tx *sql.Tx, seatIDs []uint64, holdID string, expiresAt time.Time) error {
	if len(seatIDs) == 0 {
		return nil
	}
	query := `UPDATE seats SET status = 'Held', hold_id = ?, hold_expiry = ? WHERE id IN (` +
		placeholders(len(seatIDs)) + `)`
	args := make([]interface{}, 0, len(seatIDs)+2)
	args = append(args, holdID, expiresAt.UTC().Format(dbTimeLayout))
	for _, id := range seatIDs {
		args = append(args, id)
	}
	_, err := tx.ExecContext(ctx, query, args...)
	return err
}

// ActiveByHoldTx returns the seats still Held by the given hold whose expiry
// has not passed.  The expiry is re-checked against the database clock here
// rather than trusting the hold's cached status, so a confirm that races the
// reclaimer (or simply arrives late) sees an empty set.
func (r *SeatRepo) ActiveByHoldTx(ctx context.Context, tx *sql.Tx, holdID string) ([]model.Seat, error) {
	const q = `SELECT id, show_id, seat_number FROM seats
               WHERE hold_id = ? AND status = 'Held' AND hold_expiry > UTC_TIMESTAMP()`
	rows, err := tx.QueryContext(ctx, q, holdID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var seats []model.Seat
	for rows.Next() {
		var s model.Seat
		if err := rows.Scan(&s.ID, &s.ShowID, &s.SeatNumber); err != nil {
			return nil, err
		}
		s.Status = model.SeatHeld
		seats = append(seats, s)
	}
	return seats, rows.Err()
}

// MarkBookedTx transitions the given seats to Booked.  hold_id and
// hold_expiry are intentionally left in place as an audit trail of which
// hold produced the booking.
func (r *SeatRepo) MarkBookedTx(ctx context.Context, tx *sql.Tx, seatIDs []uint64) error {
	if len(seatIDs) == 0 {
		return nil
	}
	query := `UPDATE seats SET status = 'Booked' WHERE id IN (` + placeholders(len(seatIDs)) + `)`
	args := make([]interface{}, 0, len(seatIDs))
	for _, id := range seatIDs {
		args = append(args, id)
	}
	_, err := tx.ExecContext(ctx, query, args...)
	return err
}

// ReleaseExpiredTx resets every Held seat whose hold has lapsed back to
// Available, clearing the hold reference and expiry.  The status filter
// guarantees Booked seats are never touched.  Returns the number of seats
// released; running it again on the same data is a no-op.
func (r *SeatRepo) ReleaseExpiredTx(ctx context.Context, tx *sql.Tx) (int64, error) {
	const q = `UPDATE seats SET status = 'Available', hold_id = NULL, hold_expiry = NULL
               WHERE status = 'Held' AND hold_expiry < UTC_TIMESTAMP()`
	res, err := tx.ExecContext(ctx, q)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}

// SummaryByShow aggregates seat counts per status for one show.
func (r *SeatRepo) SummaryByShow(ctx context.Context, showID uint64) (model.SeatSummary, error) {
	const q = `SELECT COUNT(*),
               COALESCE(SUM(status = 'Available'), 0),
               COALESCE(SUM(status = 'Held'), 0),
               COALESCE(SUM(status = 'Booked'), 0)
               FROM seats WHERE show_id = ?`
	var s model.SeatSummary
	err := r.db.QueryRowContext(ctx, q, showID).Scan(&s.Total, &s.Available, &s.Held, &s.Booked)
	return s, err
}

// AvailableNumbers returns the seat numbers currently Available for a show,
// in seat-number order.
func (r *SeatRepo) AvailableNumbers(ctx context.Context, showID uint64) ([]string, error) {
	const q = `SELECT seat_number FROM seats WHERE show_id = ? AND status = 'Available' ORDER BY seat_number`
	rows, err := r.db.QueryContext(ctx, q, showID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	numbers := []string{}
	for rows.Next() {
		var n string
		if err := rows.Scan(&n); err != nil {
			return nil, err
		}
		numbers = append(numbers, n)
	}
	return numbers, rows.Err()
}
