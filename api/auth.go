package api

import (
	"errors"
	"net/http"

	"github.com/akazantsev/flightdesk/internal/logger"
	"github.com/akazantsev/flightdesk/internal/repository"
	"github.com/akazantsev/flightdesk/internal/service/booking"
	"github.com/akazantsev/flightdesk/internal/service/passengers"
	"github.com/gin-gonic/gin"
)

type AuthHandler struct {
	service passengers.PassengerUseCase
	log     logger.Logger
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type loginResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
	Token   string `json:"token,omitempty"`
}

func NewAuthHandler(service passengers.PassengerUseCase, log logger.Logger) *AuthHandler {
	return &AuthHandler{service: service, log: log}
}

func (h *AuthHandler) Register(router *gin.RouterGroup) {
	router.POST("/register", h.register)
	router.POST("/login", h.login)
}

func (h *AuthHandler) register(c *gin.Context) {
	var req passengers.RegisterInput
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, statusResponse{Success: false, Message: err.Error()})
		return
	}

	if _, err := h.service.Register(c.Request.Context(), req); err != nil {
		switch {
		case errors.Is(err, booking.ErrInvalidInput), errors.Is(err, repository.ErrEmailTaken):
			c.JSON(http.StatusBadRequest, statusResponse{Success: false, Message: "Registration failed"})
		default:
			h.log.Error("register passenger failed", "error", err)
			c.JSON(http.StatusInternalServerError, statusResponse{Success: false, Message: "internal server error"})
		}
		return
	}

	c.JSON(http.StatusOK, statusResponse{Success: true, Message: "Registration successful"})
}

func (h *AuthHandler) login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, loginResponse{Success: false, Message: err.Error()})
		return
	}

	token, err := h.service.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		if errors.Is(err, passengers.ErrInvalidCredentials) {
			c.JSON(http.StatusUnauthorized, loginResponse{Success: false, Message: "Invalid email or password"})
			return
		}
		h.log.Error("login failed", "error", err)
		c.JSON(http.StatusInternalServerError, loginResponse{Success: false, Message: "internal server error"})
		return
	}

	c.JSON(http.StatusOK, loginResponse{Success: true, Message: "Login successful", Token: token})
}
