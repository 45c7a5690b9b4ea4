package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/iliyamo/ticket-inventory/internal/model"
)

// ShowRepo provides data access to the shows table.
type ShowRepo struct {
	db *sql.DB
}

// NewShowRepo constructs a ShowRepo given a DB handle.
func NewShowRepo(db *sql.DB) *ShowRepo { return &ShowRepo{db: db} }

// DB exposes the underlying handle so handlers can open transactions that
// span shows and seats.
func (r *ShowRepo) DB() *sql.DB { return r.db }

// CreateTx inserts a show and returns its generated ID.  Seats are created
// separately (in the same transaction) by SeatRepo.CreateBulkTx.
func (r *ShowRepo) CreateTx(ctx context.Context, tx *sql.Tx, movieName string, totalSeats uint32) (uint64, error) {
	const q = `INSERT INTO shows (movie_name, total_seats) VALUES (?, ?)`
	res, err := tx.ExecContext(ctx, q, movieName, totalSeats)
	if err != nil {
		return 0, err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, err
	}
	return uint64(id), nil
}

// Exists reports whether a show with the given ID exists.
func (r *ShowRepo) Exists(ctx context.Context, id uint64) (bool, error) {
	const q = `SELECT EXISTS(SELECT 1 FROM shows WHERE id = ?)`
	var exists bool
	err := r.db.QueryRowContext(ctx, q, id).Scan(&exists)
	return exists, err
}

// GetByID fetches a single show.  Returns ErrShowNotFound when absent.
func (r *ShowRepo) GetByID(ctx context.Context, id uint64) (model.Show, error) {
	const q = `SELECT id, movie_name, total_seats, created_at FROM shows WHERE id = ? LIMIT 1`
	var s model.Show
	err := r.db.QueryRowContext(ctx, q, id).Scan(&s.ID, &s.MovieName, &s.TotalSeats, &s.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return model.Show{}, ErrShowNotFound
	}
	return s, err
}

// List returns all shows with their IDs and movie names, oldest first.
func (r *ShowRepo) List(ctx context.Context) ([]model.Show, error) {
	const q = `SELECT id, movie_name, total_seats, created_at FROM shows ORDER BY id`
	rows, err := r.db.QueryContext(ctx, q)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	shows := []model.Show{}
	for rows.Next() {
		var s model.Show
		if err := rows.Scan(&s.ID, &s.MovieName, &s.TotalSeats, &s.CreatedAt); err != nil {
			return nil, err
		}
		shows = append(shows, s)
	}
	return shows, rows.Err()
}
