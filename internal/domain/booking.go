package domain

import "time"

type BookingStatus string

const (
	BookingStatusConfirmed   BookingStatus = "CONFIRMED"
	BookingStatusCancelled   BookingStatus = "CANCELLED"
	BookingStatusRescheduled BookingStatus = "RESCHEDULED"
)

type Booking struct {
	ID             int64
	FlightID       int64
	PassengerName  string
	PassengerEmail string
	SeatNumber     int
	BookingDate    time.Time
	Status         BookingStatus
}

// BookingWithFlight joins a booking to its flight for listing.
type BookingWithFlight struct {
	Booking
	FlightNumber  string
	Destination   string
	DepartureDate string
	ClassType     string
	PriceCents    int64
}
