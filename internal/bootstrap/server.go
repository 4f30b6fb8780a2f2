package bootstrap

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/akazantsev/flightdesk/api"
	"github.com/akazantsev/flightdesk/config"
	"github.com/akazantsev/flightdesk/internal/logger"
	"github.com/akazantsev/flightdesk/internal/service/booking"
	"github.com/akazantsev/flightdesk/internal/service/flights"
	"github.com/akazantsev/flightdesk/internal/service/passengers"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Run starts the HTTP server and blocks until the context is canceled or
// the server fails.
func Run(
	ctx context.Context,
	cfg *config.Config,
	log logger.Logger,
	flightSvc flights.FlightUseCase,
	bookingSvc booking.BookingUseCase,
	passengerSvc passengers.PassengerUseCase,
) error {
	router := newRouter(cfg, log, flightSvc, bookingSvc, passengerSvc)

	httpSrv := &http.Server{
		Addr:    cfg.HTTP.Address,
		Handler: router,
	}

	errCh := make(chan error, 1)
	go func() { errCh <- httpSrv.ListenAndServe() }()
	log.Info("http server started", "address", cfg.HTTP.Address)

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := httpSrv.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("shutdown http server: %w", err)
		}
		return nil
	}
}

func newRouter(
	cfg *config.Config,
	log logger.Logger,
	flightSvc flights.FlightUseCase,
	bookingSvc booking.BookingUseCase,
	passengerSvc passengers.PassengerUseCase,
) *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery(), api.CORS())

	router.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	authHandler := api.NewAuthHandler(passengerSvc, log)
	authHandler.Register(router.Group("/"))

	authRequired := api.AuthRequired(cfg.Auth.JWTSecret)

	flightsPublic := router.Group("/api/flights")
	flightsAdmin := router.Group("/api/flights", authRequired)
	api.NewFlightHandler(flightSvc, log).Register(flightsPublic, flightsAdmin)

	bookingsPublic := router.Group("/api/bookings")
	bookingsAuthed := router.Group("/api/bookings", authRequired)
	api.NewBookingHandler(bookingSvc, log).Register(bookingsPublic, bookingsAuthed)

	if cfg.HTTP.StaticDir != "" {
		router.Static("/app", cfg.HTTP.StaticDir)
	}

	return router
}
