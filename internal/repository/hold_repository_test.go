package repository

import (
	"context"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iliyamo/ticket-inventory/internal/model"
)

func TestHoldCreateTxFormatsExpiryAsUTCDatetime(t *testing.T) {
	db, mock := newMockDB(t)
	tx := beginTx(t, db, mock)

	mock.ExpectExec(regexp.QuoteMeta(`INSERT INTO seat_holds (id, show_id, status, expires_at) VALUES (?, ?, 'Held', ?)`)).
		WithArgs("hold-1", uint64(5), "2026-03-01 10:32:00").
		WillReturnResult(sqlmock.NewResult(0, 1))

	repo := NewHoldRepo(db)
	err := repo.CreateTx(context.Background(), tx, model.SeatHold{
		ID:        "hold-1",
		ShowID:    5,
		Status:    model.HoldHeld,
		ExpiresAt: time.Date(2026, 3, 1, 10, 32, 0, 0, time.UTC),
	})
	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestExpireLapsedTxReportsRowsAffected(t *testing.T) {
	db, mock := newMockDB(t)
	tx := beginTx(t, db, mock)

	mock.ExpectExec(regexp.QuoteMeta(`UPDATE seat_holds SET status = 'Expired' WHERE status = 'Held' AND expires_at < UTC_TIMESTAMP()`)).
		WillReturnResult(sqlmock.NewResult(0, 2))

	repo := NewHoldRepo(db)
	n, err := repo.ExpireLapsedTx(context.Background(), tx)
	require.NoError(t, err)
	assert.Equal(t, int64(2), n)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestBookingExistsByHoldTx(t *testing.T) {
	db, mock := newMockDB(t)
	tx := beginTx(t, db, mock)

	mock.ExpectQuery(regexp.QuoteMeta(`SELECT EXISTS(SELECT 1 FROM bookings WHERE hold_id = ?)`)).
		WithArgs("hold-1").
		WillReturnRows(sqlmock.NewRows([]string{"exists"}).AddRow(1))

	repo := NewBookingRepo(db)
	exists, err := repo.ExistsByHoldTx(context.Background(), tx, "hold-1")
	require.NoError(t, err)
	assert.True(t, exists)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestBookingCreateTx(t *testing.T) {
	db, mock := newMockDB(t)
	tx := beginTx(t, db, mock)

	mock.ExpectExec(regexp.QuoteMeta(`INSERT INTO bookings (id, hold_id) VALUES (?, ?)`)).
		WithArgs("booking-1", "hold-1").
		WillReturnResult(sqlmock.NewResult(0, 1))

	repo := NewBookingRepo(db)
	err := repo.CreateTx(context.Background(), tx, "booking-1", "hold-1")
	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}
