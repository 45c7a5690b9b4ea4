package model

import "time"

// Booking is the permanent record that a hold was confirmed.  At most one
// booking exists per hold; the core never mutates or deletes bookings.
type Booking struct {
    ID        string    // bookings.id (UUID)
    HoldID    string    // bookings.hold_id (UUID, unique)
    CreatedAt time.Time // bookings.created_at
}
