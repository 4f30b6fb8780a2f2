package booking

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/akazantsev/flightdesk/internal/domain"
	"github.com/akazantsev/flightdesk/internal/kafka"
	"github.com/akazantsev/flightdesk/internal/logger"
	"github.com/akazantsev/flightdesk/internal/metrics"
	"github.com/akazantsev/flightdesk/internal/repository"
	"github.com/google/uuid"
)

// ErrInvalidInput marks request-level validation failures so handlers can
// reject them before the store is touched.
var ErrInvalidInput = errors.New("invalid input")

type BookingUseCase interface {
	Create(ctx context.Context, input CreateBookingInput) (*domain.Booking, error)
	Cancel(ctx context.Context, bookingID int64) (*domain.Booking, error)
	Reschedule(ctx context.Context, input RescheduleInput) (*domain.Booking, error)
	List(ctx context.Context, email string) ([]domain.BookingWithFlight, error)
}

type Cache interface {
	AcquireSeatLock(ctx context.Context, flightID int64, seatNumber int, ttl time.Duration) (bool, error)
	ReleaseSeatLock(ctx context.Context, flightID int64, seatNumber int) error
	InvalidateFlights(ctx context.Context) error
}

type Producer interface {
	Publish(ctx context.Context, topic, key string, value interface{}) error
}

type BookingService struct {
	bookings           repository.BookingRepository
	flights            repository.FlightRepository
	cache              Cache
	producer           Producer
	log                logger.Logger
	metrics            *metrics.Metrics
	bookingTopic       string
	notificationsTopic string
	holdTTL            time.Duration
}

type CreateBookingInput struct {
	FlightID       int64  `json:"flight_id"`
	PassengerName  string `json:"passenger_name"`
	PassengerEmail string `json:"passenger_email"`
	SeatNumber     int    `json:"seat_number"`
}

type RescheduleInput struct {
	BookingID   int64  `json:"booking_id"`
	NewFlightID int64  `json:"new_flight_id"`
	NewDate     string `json:"new_date"`
}

type BookingServiceOption func(*BookingService)

func WithNotificationsTopic(topic string) BookingServiceOption {
	return func(s *BookingService) {
		s.notificationsTopic = topic
	}
}

func WithMetrics(m *metrics.Metrics) BookingServiceOption {
	return func(s *BookingService) {
		s.metrics = m
	}
}

func NewBookingService(
	bookings repository.BookingRepository,
	flights repository.FlightRepository,
	cache Cache,
	producer Producer,
	log logger.Logger,
	bookingTopic string,
	holdTTL time.Duration,
	opts ...BookingServiceOption,
) *BookingService {
	service := &BookingService{
		bookings:     bookings,
		flights:      flights,
		cache:        cache,
		producer:     producer,
		log:          log,
		bookingTopic: bookingTopic,
		holdTTL:      holdTTL,
	}
	for _, opt := range opts {
		opt(service)
	}
	return service
}

// Create books a seat. The seat-uniqueness decision is made by the store:
// the constrained insert either commits or reports ErrSeatTaken, so two
// concurrent requests for the same seat cannot both succeed. The optional
// redis hold in front of it only short-circuits obvious losers.
func (s *BookingService) Create(ctx context.Context, input CreateBookingInput) (*domain.Booking, error) {
	started := time.Now()

	if input.SeatNumber <= 0 {
		return nil, fmt.Errorf("%w: seat number must be positive", ErrInvalidInput)
	}
	if input.PassengerName == "" {
		return nil, fmt.Errorf("%w: passenger name is required", ErrInvalidInput)
	}
	if input.PassengerEmail == "" {
		return nil, fmt.Errorf("%w: passenger email is required", ErrInvalidInput)
	}

	flight, err := s.flights.GetByID(ctx, input.FlightID)
	if err != nil {
		return nil, err
	}
	if input.SeatNumber > flight.TotalSeats {
		return nil, fmt.Errorf("%w: seat number exceeds flight capacity", ErrInvalidInput)
	}

	locked := false
	if s.cache != nil {
		ok, err := s.cache.AcquireSeatLock(ctx, input.FlightID, input.SeatNumber, s.holdTTL)
		if err != nil {
			return nil, err
		}
		if !ok {
			if s.metrics != nil {
				s.metrics.SeatConflicts.Inc()
			}
			return nil, repository.ErrSeatTaken
		}
		locked = true
	}

	booking := &domain.Booking{
		FlightID:       input.FlightID,
		PassengerName:  input.PassengerName,
		PassengerEmail: input.PassengerEmail,
		SeatNumber:     input.SeatNumber,
		Status:         domain.BookingStatusConfirmed,
	}

	if err := s.bookings.Create(ctx, booking); err != nil {
		if locked {
			_ = s.cache.ReleaseSeatLock(ctx, input.FlightID, input.SeatNumber)
		}
		if errors.Is(err, repository.ErrSeatTaken) && s.metrics != nil {
			s.metrics.SeatConflicts.Inc()
		}
		return nil, err
	}

	if s.cache != nil {
		_ = s.cache.InvalidateFlights(ctx)
	}
	if s.metrics != nil {
		s.metrics.BookingsCreated.Inc()
		s.metrics.BookingDuration.Observe(time.Since(started).Seconds())
	}
	s.publish(ctx, "booking_created", booking)
	return booking, nil
}

// Cancel marks a booking CANCELLED. Cancelling an already cancelled
// booking succeeds and leaves the row untouched; an unknown id is
// rejected with ErrBookingNotFound.
func (s *BookingService) Cancel(ctx context.Context, bookingID int64) (*domain.Booking, error) {
	current, err := s.bookings.GetByID(ctx, bookingID)
	if err != nil {
		return nil, err
	}
	if current.Status == domain.BookingStatusCancelled {
		return current, nil
	}

	updated, err := s.bookings.UpdateStatus(ctx, bookingID, domain.BookingStatusCancelled)
	if err != nil {
		return nil, err
	}
	if s.cache != nil {
		_ = s.cache.ReleaseSeatLock(ctx, updated.FlightID, updated.SeatNumber)
		_ = s.cache.InvalidateFlights(ctx)
	}
	if s.metrics != nil {
		s.metrics.BookingsCancelled.Inc()
	}
	s.publish(ctx, "booking_cancelled", updated)
	return updated, nil
}

// Reschedule moves the booking to another flight in place. The seat
// number is carried over unchecked against the destination flight and the
// supplied date is accepted for wire compatibility but never stored; the
// row keeps its original booking_date.
func (s *BookingService) Reschedule(ctx context.Context, input RescheduleInput) (*domain.Booking, error) {
	current, err := s.bookings.GetByID(ctx, input.BookingID)
	if err != nil {
		return nil, err
	}

	exists, err := s.flights.Exists(ctx, input.NewFlightID)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, repository.ErrFlightNotFound
	}

	updated, err := s.bookings.Reschedule(ctx, input.BookingID, input.NewFlightID)
	if err != nil {
		return nil, err
	}
	if s.cache != nil {
		_ = s.cache.ReleaseSeatLock(ctx, current.FlightID, current.SeatNumber)
		_ = s.cache.InvalidateFlights(ctx)
	}
	if s.metrics != nil {
		s.metrics.BookingsRescheduled.Inc()
	}
	s.publish(ctx, "booking_rescheduled", updated)
	return updated, nil
}

func (s *BookingService) List(ctx context.Context, email string) ([]domain.BookingWithFlight, error) {
	return s.bookings.ListWithFlight(ctx, email)
}

func (s *BookingService) publish(ctx context.Context, eventType string, booking *domain.Booking) {
	if s.producer == nil || s.bookingTopic == "" {
		return
	}
	event := kafka.BookingEvent{
		EventID:        uuid.NewString(),
		Type:           eventType,
		BookingID:      booking.ID,
		FlightID:       booking.FlightID,
		SeatNumber:     booking.SeatNumber,
		PassengerName:  booking.PassengerName,
		PassengerEmail: booking.PassengerEmail,
		Status:         string(booking.Status),
		BookingDate:    booking.BookingDate,
	}
	key := strconv.FormatInt(booking.ID, 10)
	if err := s.producer.Publish(ctx, s.bookingTopic, key, event); err != nil {
		s.log.Warn("publish booking event failed", "type", eventType, "booking_id", booking.ID, "error", err)
		return
	}
	if s.notificationsTopic != "" {
		if err := s.producer.Publish(ctx, s.notificationsTopic, key, event); err != nil {
			s.log.Warn("publish notification event failed", "type", eventType, "booking_id", booking.ID, "error", err)
		}
	}
}

var _ BookingUseCase = (*BookingService)(nil)
