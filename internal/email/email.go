package email

import (
	"context"
	"fmt"

	"github.com/akazantsev/flightdesk/internal/kafka"
)

// Sender writes booking notifications to stdout. A real mail integration
// would replace this without touching the worker loop.
type Sender struct{}

func NewSender() *Sender {
	return &Sender{}
}

func (s *Sender) Send(ctx context.Context, event kafka.BookingEvent) error {
	fmt.Printf("send email to %s about %s for booking %d (flight %d seat %d)\n",
		event.PassengerEmail, event.Type, event.BookingID, event.FlightID, event.SeatNumber)
	return nil
}
