// Package repository provides data access to the seat, hold, booking, show
// and user tables.  Sentinel errors defined here let handlers distinguish
// failure kinds without inspecting driver errors.
package repository

import "errors"

// ErrShowNotFound is returned when a referenced show does not exist.
// Handlers translate this into an HTTP 404 response.
var ErrShowNotFound = errors.New("show not found")

// ErrSeatsUnavailable is returned by hold creation when one or more of the
// requested seats is unknown for the show or not currently Available.
// Handlers translate this into an HTTP 409 response.
var ErrSeatsUnavailable = errors.New("one or more seats unavailable")

// ErrInvalidHold is returned by confirmation when the hold does not exist,
// has expired, or its seats have already been transitioned away from Held.
// Handlers translate this into an HTTP 409 response.
var ErrInvalidHold = errors.New("invalid or expired hold")
