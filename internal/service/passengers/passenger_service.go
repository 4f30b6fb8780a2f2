package passengers

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/akazantsev/flightdesk/internal/domain"
	"github.com/akazantsev/flightdesk/internal/repository"
	"github.com/akazantsev/flightdesk/internal/service/booking"
	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"
)

// ErrInvalidCredentials is returned on login when the email is unknown or
// the password does not match. The two cases are deliberately not
// distinguished in the response.
var ErrInvalidCredentials = errors.New("invalid email or password")

type PassengerUseCase interface {
	Register(ctx context.Context, input RegisterInput) (*domain.Passenger, error)
	Login(ctx context.Context, email, password string) (string, error)
}

type RegisterInput struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

type PassengerService struct {
	repo      repository.PassengerRepository
	jwtSecret string
	tokenTTL  time.Duration
}

func NewPassengerService(repo repository.PassengerRepository, jwtSecret string, tokenTTL time.Duration) *PassengerService {
	return &PassengerService{repo: repo, jwtSecret: jwtSecret, tokenTTL: tokenTTL}
}

func (s *PassengerService) Register(ctx context.Context, input RegisterInput) (*domain.Passenger, error) {
	if input.Name == "" || input.Email == "" || input.Password == "" {
		return nil, fmt.Errorf("%w: all fields are required", booking.ErrInvalidInput)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	passenger := &domain.Passenger{
		Name:         input.Name,
		Email:        input.Email,
		PasswordHash: string(hash),
	}
	if err := s.repo.Create(ctx, passenger); err != nil {
		return nil, err
	}
	return passenger, nil
}

// Login verifies the password and issues an HS256 access token.
func (s *PassengerService) Login(ctx context.Context, email, password string) (string, error) {
	passenger, err := s.repo.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, repository.ErrPassengerNotFound) {
			return "", ErrInvalidCredentials
		}
		return "", err
	}

	if bcrypt.CompareHashAndPassword([]byte(passenger.PasswordHash), []byte(password)) != nil {
		return "", ErrInvalidCredentials
	}

	now := time.Now().UTC()
	claims := jwt.MapClaims{
		"sub":   passenger.ID,
		"email": passenger.Email,
		"exp":   now.Add(s.tokenTTL).Unix(),
		"iat":   now.Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(s.jwtSecret))
	if err != nil {
		return "", err
	}
	return signed, nil
}

var _ PassengerUseCase = (*PassengerService)(nil)
