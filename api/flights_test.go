package api

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/akazantsev/flightdesk/internal/domain"
	"github.com/akazantsev/flightdesk/internal/logger"
	"github.com/akazantsev/flightdesk/internal/repository"
	"github.com/akazantsev/flightdesk/internal/service/flights"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

// MockFlightUseCase is a mock implementation of flights.FlightUseCase
type MockFlightUseCase struct {
	mock.Mock
}

func (m *MockFlightUseCase) ListAvailable(ctx context.Context) ([]domain.FlightAvailability, error) {
	args := m.Called(ctx)
	return args.Get(0).([]domain.FlightAvailability), args.Error(1)
}

func (m *MockFlightUseCase) GetByID(ctx context.Context, id int64) (*domain.Flight, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Flight), args.Error(1)
}

func (m *MockFlightUseCase) AddFlight(ctx context.Context, input flights.AddFlightInput) (*domain.Flight, error) {
	args := m.Called(ctx, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Flight), args.Error(1)
}

func (m *MockFlightUseCase) AvailableSeats(ctx context.Context, flightID int64) ([]int, error) {
	args := m.Called(ctx, flightID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]int), args.Error(1)
}

func TestFlightHandler_list(t *testing.T) {
	mockService := &MockFlightUseCase{}
	handler := NewFlightHandler(mockService, logger.NewLogger())

	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest("GET", "/api/flights", nil)

	list := []domain.FlightAvailability{
		{
			Flight: domain.Flight{
				ID:            1,
				FlightNumber:  "SU100",
				Destination:   "LED",
				DepartureDate: "2025-06-01",
				TotalSeats:    100,
				ClassType:     "economy",
				PriceCents:    459900,
			},
			AvailableSeats: 58,
		},
	}
	mockService.On("ListAvailable", c.Request.Context()).Return(list, nil)

	handler.list(c)

	assert.Equal(t, http.StatusOK, w.Code)

	var response []flightResponse
	err := json.Unmarshal(w.Body.Bytes(), &response)
	assert.NoError(t, err)
	assert.Len(t, response, 1)
	assert.Equal(t, int64(1), response[0].FlightID)
	assert.Equal(t, "SU100", response[0].FlightNumber)
	assert.Equal(t, 58, response[0].AvailableSeats)

	mockService.AssertExpectations(t)
}

func TestFlightHandler_seats(t *testing.T) {
	mockService := &MockFlightUseCase{}
	handler := NewFlightHandler(mockService, logger.NewLogger())

	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)

	c.Params = gin.Params{{Key: "id", Value: "3"}}
	c.Request = httptest.NewRequest("GET", "/api/flights/3/seats", nil)

	mockService.On("AvailableSeats", c.Request.Context(), int64(3)).Return([]int{3, 4, 5}, nil)

	handler.seats(c)

	assert.Equal(t, http.StatusOK, w.Code)

	var response []int
	err := json.Unmarshal(w.Body.Bytes(), &response)
	assert.NoError(t, err)
	assert.Equal(t, []int{3, 4, 5}, response)

	mockService.AssertExpectations(t)
}

func TestFlightHandler_seats_invalidID(t *testing.T) {
	mockService := &MockFlightUseCase{}
	handler := NewFlightHandler(mockService, logger.NewLogger())

	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)

	c.Params = gin.Params{{Key: "id", Value: "abc"}}
	c.Request = httptest.NewRequest("GET", "/api/flights/abc/seats", nil)

	handler.seats(c)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	mockService.AssertNotCalled(t, "AvailableSeats")
}

func TestFlightHandler_seats_notFound(t *testing.T) {
	mockService := &MockFlightUseCase{}
	handler := NewFlightHandler(mockService, logger.NewLogger())

	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)

	c.Params = gin.Params{{Key: "id", Value: "404"}}
	c.Request = httptest.NewRequest("GET", "/api/flights/404/seats", nil)

	mockService.On("AvailableSeats", c.Request.Context(), int64(404)).Return(nil, repository.ErrFlightNotFound)

	handler.seats(c)

	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestFlightHandler_create(t *testing.T) {
	mockService := &MockFlightUseCase{}
	handler := NewFlightHandler(mockService, logger.NewLogger())

	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)

	input := flights.AddFlightInput{
		FlightNumber:  "SU100",
		Destination:   "LED",
		DepartureDate: "2025-06-01",
		TotalSeats:    100,
		ClassType:     "economy",
		PriceCents:    459900,
	}
	body, _ := json.Marshal(input)
	c.Request = httptest.NewRequest("POST", "/api/flights", bytes.NewReader(body))
	c.Request.Header.Set("Content-Type", "application/json")

	mockService.On("AddFlight", c.Request.Context(), input).Return(&domain.Flight{ID: 1, FlightNumber: "SU100"}, nil)

	handler.create(c)

	assert.Equal(t, http.StatusOK, w.Code)

	var response statusResponse
	err := json.Unmarshal(w.Body.Bytes(), &response)
	assert.NoError(t, err)
	assert.True(t, response.Success)
	assert.Equal(t, "Flight added successfully", response.Message)

	mockService.AssertExpectations(t)
}
