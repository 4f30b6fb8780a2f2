package repository

import (
	"context"
	"errors"

	"github.com/akazantsev/flightdesk/internal/domain"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

const pgUniqueViolation = "23505"

type BookingRepository interface {
	Create(ctx context.Context, booking *domain.Booking) error
	GetByID(ctx context.Context, id int64) (*domain.Booking, error)
	UpdateStatus(ctx context.Context, id int64, status domain.BookingStatus) (*domain.Booking, error)
	Reschedule(ctx context.Context, id int64, newFlightID int64) (*domain.Booking, error)
	ListWithFlight(ctx context.Context, email string) ([]domain.BookingWithFlight, error)
}

type PGBookingRepository struct {
	db *pgxpool.Pool
}

func NewBookingRepository(db *pgxpool.Pool) BookingRepository {
	return &PGBookingRepository{db: db}
}

// Create inserts a CONFIRMED booking in a single constrained statement.
// The partial unique index on (flight_id, seat_number) WHERE status =
// 'CONFIRMED' makes the availability check and the insert one atomic unit:
// of any number of concurrent inserts for the same seat exactly one
// commits, the rest fail with a unique violation mapped to ErrSeatTaken.
func (r *PGBookingRepository) Create(ctx context.Context, booking *domain.Booking) error {
	booking.Status = domain.BookingStatusConfirmed
	err := r.db.QueryRow(ctx, `INSERT INTO bookings (flight_id, passenger_name, passenger_email, seat_number, status)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING booking_id, booking_date`,
		booking.FlightID, booking.PassengerName, booking.PassengerEmail, booking.SeatNumber, booking.Status).
		Scan(&booking.ID, &booking.BookingDate)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == pgUniqueViolation {
			return ErrSeatTaken
		}
		return err
	}
	return nil
}

func (r *PGBookingRepository) GetByID(ctx context.Context, id int64) (*domain.Booking, error) {
	row := r.db.QueryRow(ctx, `SELECT booking_id, flight_id, passenger_name, passenger_email, seat_number, booking_date, status FROM bookings WHERE booking_id=$1`, id)
	var b domain.Booking
	if err := row.Scan(&b.ID, &b.FlightID, &b.PassengerName, &b.PassengerEmail, &b.SeatNumber, &b.BookingDate, &b.Status); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrBookingNotFound
		}
		return nil, err
	}
	return &b, nil
}

func (r *PGBookingRepository) UpdateStatus(ctx context.Context, id int64, status domain.BookingStatus) (*domain.Booking, error) {
	row := r.db.QueryRow(ctx, `UPDATE bookings SET status=$1 WHERE booking_id=$2 RETURNING booking_id, flight_id, passenger_name, passenger_email, seat_number, booking_date, status`, status, id)
	var b domain.Booking
	if err := row.Scan(&b.ID, &b.FlightID, &b.PassengerName, &b.PassengerEmail, &b.SeatNumber, &b.BookingDate, &b.Status); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrBookingNotFound
		}
		return nil, err
	}
	return &b, nil
}

// Reschedule moves the booking to another flight in place. The booking
// keeps its id, seat number and booking_date; only flight_id and status
// change.
func (r *PGBookingRepository) Reschedule(ctx context.Context, id int64, newFlightID int64) (*domain.Booking, error) {
	row := r.db.QueryRow(ctx, `UPDATE bookings SET flight_id=$1, status=$2 WHERE booking_id=$3 RETURNING booking_id, flight_id, passenger_name, passenger_email, seat_number, booking_date, status`,
		newFlightID, domain.BookingStatusRescheduled, id)
	var b domain.Booking
	if err := row.Scan(&b.ID, &b.FlightID, &b.PassengerName, &b.PassengerEmail, &b.SeatNumber, &b.BookingDate, &b.Status); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrBookingNotFound
		}
		return nil, err
	}
	return &b, nil
}

// ListWithFlight returns non-cancelled bookings joined to their flight,
// newest first. A non-empty email restricts to exact matches.
func (r *PGBookingRepository) ListWithFlight(ctx context.Context, email string) ([]domain.BookingWithFlight, error) {
	query := `SELECT b.booking_id, b.flight_id, b.passenger_name, b.passenger_email, b.seat_number, b.booking_date, b.status,
			f.flight_number, f.destination, f.departure_date, f.class_type, f.price_cents
		FROM bookings b
		JOIN flights f ON b.flight_id = f.flight_id
		WHERE b.status != 'CANCELLED'
		ORDER BY b.booking_date DESC`
	args := []any{}
	if email != "" {
		query = `SELECT b.booking_id, b.flight_id, b.passenger_name, b.passenger_email, b.seat_number, b.booking_date, b.status,
				f.flight_number, f.destination, f.departure_date, f.class_type, f.price_cents
			FROM bookings b
			JOIN flights f ON b.flight_id = f.flight_id
			WHERE b.passenger_email = $1 AND b.status != 'CANCELLED'
			ORDER BY b.booking_date DESC`
		args = append(args, email)
	}

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	bookings := make([]domain.BookingWithFlight, 0)
	for rows.Next() {
		var b domain.BookingWithFlight
		if err := rows.Scan(&b.ID, &b.FlightID, &b.PassengerName, &b.PassengerEmail, &b.SeatNumber, &b.BookingDate, &b.Status,
			&b.FlightNumber, &b.Destination, &b.DepartureDate, &b.ClassType, &b.PriceCents); err != nil {
			return nil, err
		}
		bookings = append(bookings, b)
	}
	return bookings, rows.Err()
}

var _ BookingRepository = (*PGBookingRepository)(nil)
