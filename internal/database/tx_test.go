package database

import (
	"context"
	"database/sql"
	"errors"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/go-sql-driver/mysql"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newMockDB(t *testing.T) (*sql.DB, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	return db, mock
}

func TestRunSerializableCommitsOnSuccess(t *testing.T) {
	db, mock := newMockDB(t)
	mock.ExpectBegin()
	mock.ExpectCommit()

	calls := 0
	err := RunSerializable(context.Background(), db, func(tx *sql.Tx) error {
		calls++
		return nil
	})
	require.NoError(t, err)
	assert.Equal(t, 1, calls)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRunSerializableRollsBackAndPropagates(t *testing.T) {
	db, mock := newMockDB(t)
	mock.ExpectBegin()
	mock.ExpectRollback()

	boom := errors.New("boom")
	calls := 0
	err := RunSerializable(context.Background(), db, func(tx *sql.Tx) error {
		calls++
		return boom
	})
	assert.ErrorIs(t, err, boom)
	// A non-retryable error must not trigger another attempt.
	assert.Equal(t, 1, calls)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRunSerializableRetriesDeadlocks(t *testing.T) {
	db, mock := newMockDB(t)
	mock.ExpectBegin()
	mock.ExpectRollback()
	mock.ExpectBegin()
	mock.ExpectCommit()

	deadlock := &mysql.MySQLError{Number: 1213, Message: "Deadlock found when trying to get lock"}
	calls := 0
	err := RunSerializable(context.Background(), db, func(tx *sql.Tx) error {
		calls++
		if calls == 1 {
			return deadlock
		}
		return nil
	})
	require.NoError(t, err)
	assert.Equal(t, 2, calls)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRunSerializableGivesUpAfterBoundedAttempts(t *testing.T) {
	db, mock := newMockDB(t)
	for i := 0; i < txMaxAttempts; i++ {
		mock.ExpectBegin()
		mock.ExpectRollback()
	}

	lockWait := &mysql.MySQLError{Number: 1205, Message: "Lock wait timeout exceeded"}
	calls := 0
	err := RunSerializable(context.Background(), db, func(tx *sql.Tx) error {
		calls++
		return lockWait
	})
	assert.ErrorIs(t, err, ErrTxContention)
	assert.Equal(t, txMaxAttempts, calls)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRetryableClassification(t *testing.T) {
	assert.True(t, retryable(&mysql.MySQLError{Number: 1213}))
	assert.True(t, retryable(&mysql.MySQLError{Number: 1205}))
	assert.False(t, retryable(&mysql.MySQLError{Number: 1062}))
	assert.False(t, retryable(errors.New("plain")))
	assert.False(t, retryable(nil))
}
