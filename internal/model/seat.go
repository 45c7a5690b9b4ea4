package model

import "time"

// Seat is one seat of one show.  The pair (ShowID, SeatNumber) is unique.
// While a seat is Held it carries the identifier and expiry of the owning
// hold; once Booked those fields are intentionally left in place as an audit
// trail of which hold produced the booking.  Only the expiry reclaimer
// clears them, and only on Held seats whose hold has lapsed.
//
// Invariant: HoldID is non-null iff Status is Held or Booked.
//
// Fields:
//  ID         – primary key identifier.
//  ShowID     – show this seat belongs to.
//  SeatNumber – label unique within the show (S1, S2, ...).
//  Status     – Available, Held or Booked.
//  HoldID     – UUID of the owning hold (nil when Available).
//  HoldExpiry – when the owning hold lapses (nil when Available).
type Seat struct {
    ID         uint64     // seats.id
    ShowID     uint64     // seats.show_id
    SeatNumber string     // seats.seat_number
    Status     SeatStatus // seats.status
    HoldID     *string    // seats.hold_id (nullable)
    HoldExpiry *time.Time // seats.hold_expiry (nullable)
}

// SeatSummary aggregates seat counts per status for one show.
type SeatSummary struct {
    Total     uint32 `json:"total"`
    Available uint32 `json:"available"`
    Held      uint32 `json:"held"`
    Booked    uint32 `json:"booked"`
}
