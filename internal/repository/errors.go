// Package repository defines sentinel errors shared by the repositories so
// that higher layers can map failure scenarios to responses without
// inspecting driver-level errors.
package repository

import "errors"

// ErrSeatTaken is returned when an insert collides with an existing
// CONFIRMED booking for the same (flight, seat) pair. Handlers should
// translate this into an HTTP 400 response.
var ErrSeatTaken = errors.New("seat already booked")

// ErrBookingNotFound is returned when an operation references a booking
// id that does not exist.
var ErrBookingNotFound = errors.New("booking not found")

// ErrFlightNotFound is returned when an operation references a flight id
// that does not exist.
var ErrFlightNotFound = errors.New("flight not found")

// ErrEmailTaken is returned when a registration collides with an already
// registered passenger email.
var ErrEmailTaken = errors.New("email already registered")
