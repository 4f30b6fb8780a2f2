package repository

import (
	"context"
	"errors"

	"github.com/akazantsev/flightdesk/internal/domain"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type FlightRepository interface {
	Create(ctx context.Context, flight *domain.Flight) error
	ListAvailable(ctx context.Context) ([]domain.FlightAvailability, error)
	GetByID(ctx context.Context, id int64) (*domain.Flight, error)
	Exists(ctx context.Context, id int64) (bool, error)
	BookedSeatNumbers(ctx context.Context, flightID int64) ([]int, error)
}

type PGFlightRepository struct {
	db *pgxpool.Pool
}

func NewFlightRepository(db *pgxpool.Pool) FlightRepository {
	return &PGFlightRepository{db: db}
}

func (r *PGFlightRepository) Create(ctx context.Context, flight *domain.Flight) error {
	return r.db.QueryRow(ctx, `INSERT INTO flights (flight_number, destination, departure_date, total_seats, class_type, price_cents)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING flight_id, created_at`,
		flight.FlightNumber, flight.Destination, flight.DepartureDate, flight.TotalSeats, flight.ClassType, flight.PriceCents).
		Scan(&flight.ID, &flight.CreatedAt)
}

// ListAvailable returns flights that still have at least one free seat.
// Availability counts only CONFIRMED bookings; cancelled and rescheduled
// rows do not hold a seat.
func (r *PGFlightRepository) ListAvailable(ctx context.Context) ([]domain.FlightAvailability, error) {
	rows, err := r.db.Query(ctx, `SELECT flight_id, flight_number, destination, departure_date, total_seats, class_type, price_cents, created_at,
			total_seats - (SELECT COUNT(*) FROM bookings WHERE bookings.flight_id = flights.flight_id AND status = 'CONFIRMED') AS available_seats
		FROM flights
		WHERE total_seats > (SELECT COUNT(*) FROM bookings WHERE bookings.flight_id = flights.flight_id AND status = 'CONFIRMED')
		ORDER BY flight_id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	flights := make([]domain.FlightAvailability, 0)
	for rows.Next() {
		var f domain.FlightAvailability
		if err := rows.Scan(&f.ID, &f.FlightNumber, &f.Destination, &f.DepartureDate, &f.TotalSeats, &f.ClassType, &f.PriceCents, &f.CreatedAt, &f.AvailableSeats); err != nil {
			return nil, err
		}
		flights = append(flights, f)
	}
	return flights, rows.Err()
}

func (r *PGFlightRepository) GetByID(ctx context.Context, id int64) (*domain.Flight, error) {
	row := r.db.QueryRow(ctx, `SELECT flight_id, flight_number, destination, departure_date, total_seats, class_type, price_cents, created_at FROM flights WHERE flight_id=$1`, id)
	var f domain.Flight
	if err := row.Scan(&f.ID, &f.FlightNumber, &f.Destination, &f.DepartureDate, &f.TotalSeats, &f.ClassType, &f.PriceCents, &f.CreatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrFlightNotFound
		}
		return nil, err
	}
	return &f, nil
}

func (r *PGFlightRepository) Exists(ctx context.Context, id int64) (bool, error) {
	var exists bool
	if err := r.db.QueryRow(ctx, `SELECT EXISTS (SELECT 1 FROM flights WHERE flight_id=$1)`, id).Scan(&exists); err != nil {
		return false, err
	}
	return exists, nil
}

func (r *PGFlightRepository) BookedSeatNumbers(ctx context.Context, flightID int64) ([]int, error) {
	rows, err := r.db.Query(ctx, `SELECT seat_number FROM bookings WHERE flight_id=$1 AND status = 'CONFIRMED'`, flightID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	seats := make([]int, 0)
	for rows.Next() {
		var seat int
		if err := rows.Scan(&seat); err != nil {
			return nil, err
		}
		seats = append(seats, seat)
	}
	return seats, rows.Err()
}

var _ FlightRepository = (*PGFlightRepository)(nil)
