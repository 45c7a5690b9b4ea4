package database

import (
	"context"
	"database/sql"
	"fmt"
)

// migrations are applied in order on startup.  Every statement is idempotent
// (CREATE TABLE IF NOT EXISTS) so restarting the service against an existing
// schema is a no-op.
var migrations = []string{
	`CREATE TABLE IF NOT EXISTS users (
		id BIGINT UNSIGNED NOT NULL AUTO_INCREMENT,
		email VARCHAR(255) NOT NULL,
		password_hash VARCHAR(100) NOT NULL,
		created_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP,
		updated_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP ON UPDATE CURRENT_TIMESTAMP,
		PRIMARY KEY (id),
		UNIQUE KEY uq_users_email (email)
	) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4`,

	`CREATE TABLE IF NOT EXISTS shows (
		id BIGINT UNSIGNED NOT NULL AUTO_INCREMENT,
		movie_name VARCHAR(200) NOT NULL,
		total_seats INT UNSIGNED NOT NULL,
		created_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP,
		PRIMARY KEY (id)
	) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4`,

	`CREATE TABLE IF NOT EXISTS seats (
		id BIGINT UNSIGNED NOT NULL AUTO_INCREMENT,
		show_id BIGINT UNSIGNED NOT NULL,
		seat_number VARCHAR(16) NOT NULL,
		status ENUM('Available','Held','Booked') NOT NULL DEFAULT 'Available',
		hold_id CHAR(36) NULL,
		hold_expiry DATETIME NULL,
		PRIMARY KEY (id),
		UNIQUE KEY uq_seats_show_number (show_id, seat_number),
		KEY idx_seats_hold (hold_id),
		KEY idx_seats_status_expiry (status, hold_expiry),
		CONSTRAINT fk_seats_show FOREIGN KEY (show_id) REFERENCES shows (id)
	) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4`,

	`CREATE TABLE IF NOT EXISTS seat_holds (
		id CHAR(36) NOT NULL,
		show_id BIGINT UNSIGNED NOT NULL,
		status ENUM('Held','Booked','Expired') NOT NULL DEFAULT 'Held',
		created_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP,
		expires_at DATETIME NOT NULL,
		PRIMARY KEY (id),
		KEY idx_holds_status_expires (status, expires_at),
		CONSTRAINT fk_holds_show FOREIGN KEY (show_id) REFERENCES shows (id)
	) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4`,

	`CREATE TABLE IF NOT EXISTS bookings (
		id CHAR(36) NOT NULL,
		hold_id CHAR(36) NOT NULL,
		created_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP,
		PRIMARY KEY (id),
		UNIQUE KEY uq_bookings_hold (hold_id)
	) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4`,
}

// Migrate applies the schema to the connected database.  The unique key on
// bookings.hold_id backs the at-most-one-booking-per-hold invariant at the
// storage level; the confirmation service still checks inside its
// transaction so the caller sees a clean idempotent response instead of a
// duplicate-key error.
func Migrate(ctx context.Context, db *sql.DB) error {
	for i, stmt := range migrations {
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("migration %d: %w", i+1, err)
		}
	}
	return nil
}
