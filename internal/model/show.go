package model

import "time"

// Show represents a scheduled event with a fixed seat inventory.  Seats are
// created together with the show and the seat count never changes afterwards.
// This struct corresponds to a row in the `shows` table.
//
// Fields:
//  ID         – primary key identifier.
//  MovieName  – title of the movie being shown.
//  TotalSeats – number of seats created for this show (immutable).
//  CreatedAt  – timestamp when the show was created.
type Show struct {
    ID         uint64    // shows.id
    MovieName  string    // shows.movie_name
    TotalSeats uint32    // shows.total_seats
    CreatedAt  time.Time // shows.created_at
}
