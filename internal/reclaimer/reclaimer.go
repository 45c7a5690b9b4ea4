// Package reclaimer contains the background sweep that releases seats whose
// hold has lapsed and marks the corresponding hold records Expired.
package reclaimer

import (
	"context"
	"database/sql"
	"log"
	"time"

	"github.com/iliyamo/ticket-inventory/internal/database"
	"github.com/iliyamo/ticket-inventory/internal/repository"
)

// DefaultInterval is how often the sweep runs unless configured otherwise.
const DefaultInterval = 30 * time.Second

// Reclaimer periodically resets Held seats with a lapsed expiry back to
// Available and expires their hold records.  It is an explicit task owned by
// the process supervisor: Run loops until the context is cancelled, and
// Sweep performs a single pass synchronously so tests can drive it without
// the timer.
type Reclaimer struct {
	db       *sql.DB
	seats    *repository.SeatRepo
	holds    *repository.HoldRepo
	interval time.Duration
}

// New constructs a Reclaimer.  A non-positive interval falls back to
// DefaultInterval.
func New(db *sql.DB, seats *repository.SeatRepo, holds *repository.HoldRepo, interval time.Duration) *Reclaimer {
	if interval <= 0 {
		interval = DefaultInterval
	}
	return &Reclaimer{db: db, seats: seats, holds: holds, interval: interval}
}

// Run executes the sweep on a fixed interval until ctx is cancelled.  A
// failed sweep is logged and retried on the next tick; it never terminates
// the loop, since the reclaimer has no caller to report to.
func (r *Reclaimer) Run(ctx context.Context) {
	log.Printf("reclaimer: sweeping every %s", r.interval)
	ticker := time.NewTicker(r.interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			log.Printf("reclaimer: shutting down")
			return
		case <-ticker.C:
			released, expired, err := r.Sweep(ctx)
			if err != nil {
				log.Printf("reclaimer: sweep failed: %v; retrying next tick", err)
				continue
			}
			if released > 0 || expired > 0 {
				log.Printf("reclaimer: released %d seats, expired %d holds", released, expired)
			}
		}
	}
}

// Sweep runs one reclamation pass in a single serializable transaction:
// lapsed Held seats return to Available with their hold fields cleared, and
// lapsed Held holds become Expired.  Both updates filter on status Held, so
// Booked seats and holds are never touched and a second sweep over the same
// data is a no-op.
func (r *Reclaimer) Sweep(ctx context.Context) (released, expired int64, err error) {
	err = database.RunSerializable(ctx, r.db, func(tx *sql.Tx) error {
		var inner error
		released, inner = r.seats.ReleaseExpiredTx(ctx, tx)
		if inner != nil {
			return inner
		}
		expired, inner = r.holds.ExpireLapsedTx(ctx, tx)
		return inner
	})
	if err != nil {
		return 0, 0, err
	}
	return released, expired, nil
}
