package database

import (
	"context"
	"database/sql"
	"errors"

	"github.com/go-sql-driver/mysql"
)

// ErrTxContention is returned when a serializable transaction kept hitting
// serialization failures after all retry attempts.  Callers translate it
// into their own conflict error.
var ErrTxContention = errors.New("transaction contention")

// txMaxAttempts bounds the transparent retry of serialization failures.
const txMaxAttempts = 3

// RunSerializable executes fn inside a SERIALIZABLE transaction.  The
// transaction commits when fn returns nil and rolls back otherwise.  Under
// InnoDB, serializable isolation turns plain SELECTs into locking reads, so
// two transactions reading the same seat rows cannot both proceed to write
// them; the loser fails with a deadlock or lock-wait error, which is retried
// here up to txMaxAttempts times before surfacing ErrTxContention.
func RunSerializable(ctx context.Context, db *sql.DB, fn func(tx *sql.Tx) error) error {
	var err error
	for attempt := 1; attempt <= txMaxAttempts; attempt++ {
		err = runOnce(ctx, db, fn)
		if err == nil || !retryable(err) {
			return err
		}
	}
	return ErrTxContention
}

func runOnce(ctx context.Context, db *sql.DB, fn func(tx *sql.Tx) error) error {
	tx, err := db.BeginTx(ctx, &sql.TxOptions{Isolation: sql.LevelSerializable})
	if err != nil {
		return err
	}
	committed := false
	defer func() {
		if !committed {
			_ = tx.Rollback()
		}
	}()
	if err := fn(tx); err != nil {
		return err
	}
	if err := tx.Commit(); err != nil {
		return err
	}
	committed = true
	return nil
}

// retryable reports whether err is a MySQL serialization failure that a
// fresh attempt can resolve: 1213 (deadlock victim) or 1205 (lock wait
// timeout).
func retryable(err error) bool {
	var me *mysql.MySQLError
	if !errors.As(err, &me) {
		return false
	}
	return me.Number == 1213 || me.Number == 1205
}
