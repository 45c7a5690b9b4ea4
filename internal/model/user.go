package model

import "time"

// User represents an application user as stored in the `users` table.  Only
// the bcrypt hash of the password is persisted, never the plain text.
type User struct {
    ID           uint64    // users.id
    Email        string    // users.email (unique, stored lower-case)
    PasswordHash string    // users.password_hash
    CreatedAt    time.Time // users.created_at
    UpdatedAt    time.Time // users.updated_at
}
