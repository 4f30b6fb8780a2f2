package api

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/akazantsev/flightdesk/internal/domain"
	"github.com/akazantsev/flightdesk/internal/logger"
	"github.com/akazantsev/flightdesk/internal/repository"
	"github.com/akazantsev/flightdesk/internal/service/booking"
	"github.com/akazantsev/flightdesk/internal/service/flights"
	"github.com/gin-gonic/gin"
)

type FlightHandler struct {
	service flights.FlightUseCase
	log     logger.Logger
}

type flightResponse struct {
	FlightID       int64  `json:"flight_id"`
	FlightNumber   string `json:"flight_number"`
	Destination    string `json:"destination"`
	DepartureDate  string `json:"departure_date"`
	ClassType      string `json:"class_type"`
	PriceCents     int64  `json:"price_cents"`
	AvailableSeats int    `json:"available_seats"`
}

func NewFlightHandler(service flights.FlightUseCase, log logger.Logger) *FlightHandler {
	return &FlightHandler{service: service, log: log}
}

// Register wires the read endpoints on the public group and flight
// creation on the authenticated one.
func (h *FlightHandler) Register(public, admin *gin.RouterGroup) {
	public.GET("", h.list)
	public.GET("/:id/seats", h.seats)
	admin.POST("", h.create)
}

func (h *FlightHandler) list(c *gin.Context) {
	list, err := h.service.ListAvailable(c.Request.Context())
	if err != nil {
		h.log.Error("list flights failed", "error", err)
		c.JSON(http.StatusInternalServerError, statusResponse{Success: false, Message: "internal server error"})
		return
	}

	resp := make([]flightResponse, 0, len(list))
	for _, f := range list {
		resp = append(resp, toFlightResponse(f))
	}
	c.JSON(http.StatusOK, resp)
}

func (h *FlightHandler) seats(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, statusResponse{Success: false, Message: "invalid flight id"})
		return
	}

	seats, err := h.service.AvailableSeats(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, repository.ErrFlightNotFound) {
			c.JSON(http.StatusNotFound, statusResponse{Success: false, Message: "flight not found"})
			return
		}
		h.log.Error("list seats failed", "flight_id", id, "error", err)
		c.JSON(http.StatusInternalServerError, statusResponse{Success: false, Message: "internal server error"})
		return
	}
	c.JSON(http.StatusOK, seats)
}

func (h *FlightHandler) create(c *gin.Context) {
	var req flights.AddFlightInput
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, statusResponse{Success: false, Message: err.Error()})
		return
	}

	if _, err := h.service.AddFlight(c.Request.Context(), req); err != nil {
		if errors.Is(err, booking.ErrInvalidInput) {
			c.JSON(http.StatusBadRequest, statusResponse{Success: false, Message: "Failed to add flight"})
			return
		}
		h.log.Error("add flight failed", "error", err)
		c.JSON(http.StatusInternalServerError, statusResponse{Success: false, Message: "internal server error"})
		return
	}

	c.JSON(http.StatusOK, statusResponse{Success: true, Message: "Flight added successfully"})
}

func toFlightResponse(f domain.FlightAvailability) flightResponse {
	return flightResponse{
		FlightID:       f.ID,
		FlightNumber:   f.FlightNumber,
		Destination:    f.Destination,
		DepartureDate:  f.DepartureDate,
		ClassType:      f.ClassType,
		PriceCents:     f.PriceCents,
		AvailableSeats: f.AvailableSeats,
	}
}
