// Package queue defines the booking.confirmed message payload, its
// best-effort publisher and the background consumer that records confirmed
// bookings to a log file.
package queue

// BookingConfirmedEvent is published when a hold is successfully confirmed.
// It carries enough information for downstream consumers to log or notify
// without querying the primary database.
type BookingConfirmedEvent struct {
    BookingID   string   `json:"booking_id"`
    HoldID      string   `json:"hold_id"`
    ShowID      uint64   `json:"show_id"`
    MovieName   string   `json:"movie_name"`
    Seats       []string `json:"seats"`
    ConfirmedAt string   `json:"confirmed_at"`
}
