package model

import "time"

// SeatHold represents one reservation attempt over one or more seats of a
// show.  The hold does not store its seat list; the seats referencing it via
// their hold_id column are its members.  Holds expire automatically at
// ExpiresAt unless confirmed first.
//
// Fields:
//  ID        – UUID primary key, returned to the client.
//  ShowID    – show whose seats are held.
//  Status    – Held, Booked or Expired (the last two are terminal).
//  CreatedAt – when the hold was created.
//  ExpiresAt – when the hold lapses if not confirmed.
type SeatHold struct {
    ID        string     // seat_holds.id
    ShowID    uint64     // seat_holds.show_id
    Status    HoldStatus // seat_holds.status
    CreatedAt time.Time  // seat_holds.created_at
    ExpiresAt time.Time  // seat_holds.expires_at
}
