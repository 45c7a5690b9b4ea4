package model

// SeatStatus enumerates the closed set of states a seat can be in.  Using a
// named string type keeps the persisted representation human-readable while
// preventing arbitrary strings from leaking into seat rows.
type SeatStatus string

const (
    SeatAvailable SeatStatus = "Available" // seat can be claimed by a new hold
    SeatHeld      SeatStatus = "Held"      // seat is exclusively claimed, pending confirmation
    SeatBooked    SeatStatus = "Booked"    // seat is permanently sold
)

// HoldStatus enumerates the lifecycle states of a seat hold.  Booked and
// Expired are terminal; a hold never leaves either state.
type HoldStatus string

const (
    HoldHeld    HoldStatus = "Held"
    HoldBooked  HoldStatus = "Booked"
    HoldExpired HoldStatus = "Expired"
)
