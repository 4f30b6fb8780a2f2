package flights

import (
	"context"
	"fmt"

	"github.com/akazantsev/flightdesk/internal/domain"
	"github.com/akazantsev/flightdesk/internal/repository"
	"github.com/akazantsev/flightdesk/internal/service/booking"
)

// seatMapCeiling bounds the per-flight seat enumeration. Seat maps always
// cover [1..100] regardless of a flight's declared capacity, and bookings
// above the ceiling are ignored when computing the free set.
const seatMapCeiling = 100

type FlightUseCase interface {
	ListAvailable(ctx context.Context) ([]domain.FlightAvailability, error)
	GetByID(ctx context.Context, id int64) (*domain.Flight, error)
	AddFlight(ctx context.Context, input AddFlightInput) (*domain.Flight, error)
	AvailableSeats(ctx context.Context, flightID int64) ([]int, error)
}

type Cache interface {
	GetAvailableFlights(ctx context.Context) ([]domain.FlightAvailability, error)
	SetAvailableFlights(ctx context.Context, flights []domain.FlightAvailability) error
	InvalidateFlights(ctx context.Context) error
}

type AddFlightInput struct {
	FlightNumber  string `json:"flight_number"`
	Destination   string `json:"destination"`
	DepartureDate string `json:"departure_date"`
	TotalSeats    int    `json:"total_seats"`
	ClassType     string `json:"class_type"`
	PriceCents    int64  `json:"price_cents"`
}

type FlightService struct {
	repo  repository.FlightRepository
	cache Cache
}

func NewFlightService(repo repository.FlightRepository, cache Cache) *FlightService {
	return &FlightService{repo: repo, cache: cache}
}

func (s *FlightService) ListAvailable(ctx context.Context) ([]domain.FlightAvailability, error) {
	if s.cache != nil {
		if cached, err := s.cache.GetAvailableFlights(ctx); err == nil && cached != nil {
			return cached, nil
		}
	}

	flights, err := s.repo.ListAvailable(ctx)
	if err != nil {
		return nil, err
	}
	if s.cache != nil {
		_ = s.cache.SetAvailableFlights(ctx, flights)
	}
	return flights, nil
}

func (s *FlightService) GetByID(ctx context.Context, id int64) (*domain.Flight, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *FlightService) AddFlight(ctx context.Context, input AddFlightInput) (*domain.Flight, error) {
	if input.FlightNumber == "" || input.Destination == "" || input.DepartureDate == "" || input.ClassType == "" {
		return nil, fmt.Errorf("%w: all flight fields are required", booking.ErrInvalidInput)
	}
	if input.TotalSeats <= 0 {
		return nil, fmt.Errorf("%w: total seats must be positive", booking.ErrInvalidInput)
	}
	if input.PriceCents < 0 {
		return nil, fmt.Errorf("%w: price must not be negative", booking.ErrInvalidInput)
	}

	flight := &domain.Flight{
		FlightNumber:  input.FlightNumber,
		Destination:   input.Destination,
		DepartureDate: input.DepartureDate,
		TotalSeats:    input.TotalSeats,
		ClassType:     input.ClassType,
		PriceCents:    input.PriceCents,
	}
	if err := s.repo.Create(ctx, flight); err != nil {
		return nil, err
	}
	if s.cache != nil {
		_ = s.cache.InvalidateFlights(ctx)
	}
	return flight, nil
}

// AvailableSeats returns the free seat numbers for a flight within the
// fixed [1..seatMapCeiling] range.
func (s *FlightService) AvailableSeats(ctx context.Context, flightID int64) ([]int, error) {
	exists, err := s.repo.Exists(ctx, flightID)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, repository.ErrFlightNotFound
	}

	booked, err := s.repo.BookedSeatNumbers(ctx, flightID)
	if err != nil {
		return nil, err
	}

	taken := make([]bool, seatMapCeiling)
	for _, seat := range booked {
		if seat >= 1 && seat <= seatMapCeiling {
			taken[seat-1] = true
		}
	}

	seats := make([]int, 0, seatMapCeiling)
	for i := 0; i < seatMapCeiling; i++ {
		if !taken[i] {
			seats = append(seats, i+1)
		}
	}
	return seats, nil
}

var _ FlightUseCase = (*FlightService)(nil)
