package api

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/akazantsev/flightdesk/internal/domain"
	"github.com/akazantsev/flightdesk/internal/logger"
	"github.com/akazantsev/flightdesk/internal/repository"
	"github.com/akazantsev/flightdesk/internal/service/booking"
	"github.com/gin-gonic/gin"
)

type BookingHandler struct {
	service booking.BookingUseCase
	log     logger.Logger
}

// statusResponse is the {success, message} envelope shared by all
// mutating endpoints.
type statusResponse struct {
	Success   bool   `json:"success"`
	Message   string `json:"message"`
	BookingID int64  `json:"booking_id,omitempty"`
}

type bookingRecord struct {
	BookingID      int64  `json:"booking_id"`
	FlightID       int64  `json:"flight_id"`
	PassengerName  string `json:"passenger_name"`
	PassengerEmail string `json:"passenger_email"`
	SeatNumber     int    `json:"seat_number"`
	BookingDate    string `json:"booking_date"`
	Status         string `json:"status"`
	FlightNumber   string `json:"flight_number"`
	Destination    string `json:"destination"`
	DepartureDate  string `json:"departure_date"`
	ClassType      string `json:"class_type"`
	PriceCents     int64  `json:"price_cents"`
}

func NewBookingHandler(service booking.BookingUseCase, log logger.Logger) *BookingHandler {
	return &BookingHandler{service: service, log: log}
}

// Register wires listing on the public group and the state-changing
// endpoints on the authenticated one.
func (h *BookingHandler) Register(public, authed *gin.RouterGroup) {
	public.GET("", h.list)
	authed.POST("", h.create)
	authed.DELETE("/:id", h.cancel)
	authed.PUT("/reschedule", h.reschedule)
}

func (h *BookingHandler) create(c *gin.Context) {
	var req booking.CreateBookingInput
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, statusResponse{Success: false, Message: err.Error()})
		return
	}

	created, err := h.service.Create(c.Request.Context(), req)
	if err != nil {
		switch {
		case errors.Is(err, repository.ErrSeatTaken):
			c.JSON(http.StatusBadRequest, statusResponse{Success: false, Message: "Failed to book flight. Seat may no longer be available."})
		case errors.Is(err, repository.ErrFlightNotFound):
			c.JSON(http.StatusNotFound, statusResponse{Success: false, Message: "flight not found"})
		case errors.Is(err, booking.ErrInvalidInput):
			c.JSON(http.StatusBadRequest, statusResponse{Success: false, Message: err.Error()})
		default:
			h.log.Error("create booking failed", "flight_id", req.FlightID, "seat", req.SeatNumber, "error", err)
			c.JSON(http.StatusInternalServerError, statusResponse{Success: false, Message: "internal server error"})
		}
		return
	}

	c.JSON(http.StatusOK, statusResponse{Success: true, Message: "Flight booked successfully", BookingID: created.ID})
}

func (h *BookingHandler) cancel(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, statusResponse{Success: false, Message: "invalid booking id"})
		return
	}

	if _, err := h.service.Cancel(c.Request.Context(), id); err != nil {
		if errors.Is(err, repository.ErrBookingNotFound) {
			c.JSON(http.StatusNotFound, statusResponse{Success: false, Message: "Failed to cancel booking"})
			return
		}
		h.log.Error("cancel booking failed", "booking_id", id, "error", err)
		c.JSON(http.StatusInternalServerError, statusResponse{Success: false, Message: "internal server error"})
		return
	}

	c.JSON(http.StatusOK, statusResponse{Success: true, Message: "Booking cancelled successfully"})
}

func (h *BookingHandler) reschedule(c *gin.Context) {
	var req booking.RescheduleInput
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, statusResponse{Success: false, Message: err.Error()})
		return
	}

	if _, err := h.service.Reschedule(c.Request.Context(), req); err != nil {
		switch {
		case errors.Is(err, repository.ErrBookingNotFound):
			c.JSON(http.StatusNotFound, statusResponse{Success: false, Message: "Failed to reschedule flight"})
		case errors.Is(err, repository.ErrFlightNotFound):
			c.JSON(http.StatusNotFound, statusResponse{Success: false, Message: "flight not found"})
		default:
			h.log.Error("reschedule booking failed", "booking_id", req.BookingID, "error", err)
			c.JSON(http.StatusInternalServerError, statusResponse{Success: false, Message: "internal server error"})
		}
		return
	}

	c.JSON(http.StatusOK, statusResponse{Success: true, Message: "Flight rescheduled successfully"})
}

func (h *BookingHandler) list(c *gin.Context) {
	email := c.Query("email")

	bookings, err := h.service.List(c.Request.Context(), email)
	if err != nil {
		h.log.Error("list bookings failed", "error", err)
		c.JSON(http.StatusInternalServerError, statusResponse{Success: false, Message: "internal server error"})
		return
	}

	resp := make([]bookingRecord, 0, len(bookings))
	for _, b := range bookings {
		resp = append(resp, toBookingRecord(b))
	}
	c.JSON(http.StatusOK, resp)
}

func toBookingRecord(b domain.BookingWithFlight) bookingRecord {
	return bookingRecord{
		BookingID:      b.ID,
		FlightID:       b.FlightID,
		PassengerName:  b.PassengerName,
		PassengerEmail: b.PassengerEmail,
		SeatNumber:     b.SeatNumber,
		BookingDate:    b.BookingDate.Format(time.RFC3339),
		Status:         string(b.Status),
		FlightNumber:   b.FlightNumber,
		Destination:    b.Destination,
		DepartureDate:  b.DepartureDate,
		ClassType:      b.ClassType,
		PriceCents:     b.PriceCents,
	}
}
