package domain

import "time"

type Flight struct {
	ID            int64
	FlightNumber  string
	Destination   string
	DepartureDate string
	TotalSeats    int
	ClassType     string
	PriceCents    int64
	CreatedAt     time.Time
}

// FlightAvailability is the catalog read model: a flight together with the
// number of seats not held by a CONFIRMED booking.
type FlightAvailability struct {
	Flight
	AvailableSeats int
}
