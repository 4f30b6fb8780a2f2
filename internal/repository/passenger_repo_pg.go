package repository

import (
	"context"
	"errors"

	"github.com/akazantsev/flightdesk/internal/domain"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

// ErrPassengerNotFound is returned when a login references an email with
// no registered passenger.
var ErrPassengerNotFound = errors.New("passenger not found")

type PassengerRepository interface {
	Create(ctx context.Context, passenger *domain.Passenger) error
	GetByEmail(ctx context.Context, email string) (*domain.Passenger, error)
}

type PGPassengerRepository struct {
	db *pgxpool.Pool
}

func NewPassengerRepository(db *pgxpool.Pool) PassengerRepository {
	return &PGPassengerRepository{db: db}
}

func (r *PGPassengerRepository) Create(ctx context.Context, passenger *domain.Passenger) error {
	err := r.db.QueryRow(ctx, `INSERT INTO passengers (name, email, password_hash)
		VALUES ($1, $2, $3)
		RETURNING id, created_at`,
		passenger.Name, passenger.Email, passenger.PasswordHash).
		Scan(&passenger.ID, &passenger.CreatedAt)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == pgUniqueViolation {
			return ErrEmailTaken
		}
		return err
	}
	return nil
}

func (r *PGPassengerRepository) GetByEmail(ctx context.Context, email string) (*domain.Passenger, error) {
	row := r.db.QueryRow(ctx, `SELECT id, name, email, password_hash, created_at FROM passengers WHERE email=$1`, email)
	var p domain.Passenger
	if err := row.Scan(&p.ID, &p.Name, &p.Email, &p.PasswordHash, &p.CreatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrPassengerNotFound
		}
		return nil, err
	}
	return &p, nil
}

var _ PassengerRepository = (*PGPassengerRepository)(nil)
