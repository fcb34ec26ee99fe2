package handler

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/redis/go-redis/v9"

	"cinema-box-office/internal/config"
	"cinema-box-office/internal/middleware"
	"cinema-box-office/internal/model"
	"cinema-box-office/internal/repository"
	"cinema-box-office/internal/service"
)

// BookingHandler exposes the sell operation.  Age confirmation is a
// synchronous step the client performs before calling sell; the
// request simply carries the resulting boolean.
type BookingHandler struct {
	Booking *service.BookingService
	Redis   *redis.Client
	Cache   config.CacheConfig
}

// NewBookingHandler constructs a BookingHandler.  The Redis client may
// be nil when caching is disabled.
func NewBookingHandler(booking *service.BookingService, rdb *redis.Client, cache config.CacheConfig) *BookingHandler {
	if booking == nil {
		panic("nil booking service passed to NewBookingHandler")
	}
	return &BookingHandler{Booking: booking, Redis: rdb, Cache: cache}
}

// sellRequest is the body of POST /v1/showings/:id/sell.  Seats are
// zero-based grid coordinates.
type sellRequest struct {
	Seats        []model.Seat `json:"seats"`
	Customer     string       `json:"customer"`
	AgeConfirmed bool         `json:"age_confirmed"`
}

// SellTickets handles POST /v1/showings/:id/sell.  On success it
// responds 201 with the committed selling; on failure nothing has been
// sold, not even part of the batch.
func (h *BookingHandler) SellTickets(c echo.Context) error {
	showingID, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid showing id"})
	}
	var body sellRequest
	if err := c.Bind(&body); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
	}

	selling, err := h.Booking.Sell(c.Request().Context(), showingID, body.Seats, body.Customer, time.Now(), body.AgeConfirmed)
	if err != nil {
		return sellError(c, err)
	}

	middleware.InvalidateCache(h.Redis, h.Cache)
	return c.JSON(http.StatusCreated, echo.Map{
		"id":           selling.ID,
		"date_time":    selling.DateTime.Format(time.RFC3339),
		"showing_id":   selling.ShowingID,
		"customer":     selling.Customer,
		"tickets_sold": selling.TicketsSold,
		"seats":        selling.Seats,
	})
}

// sellError translates a Sell failure into an HTTP response.  Every
// failure is caller-recoverable; the distinction that matters to a
// client is between bad input (400), an unknown showing (404) and a
// seat race lost to an earlier sale (409).
func sellError(c echo.Context, err error) error {
	switch {
	case errors.Is(err, service.ErrNoSeatsSelected):
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "no seats selected"})
	case errors.Is(err, service.ErrMissingCustomerName):
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "customer name is required"})
	case errors.Is(err, service.ErrAgeConfirmationRequired):
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "age confirmation is required for this showing"})
	case errors.Is(err, service.ErrDuplicateSeatInBatch):
		return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
	case errors.Is(err, model.ErrSeatOutOfRange):
		return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
	case errors.Is(err, repository.ErrShowingNotFound):
		return c.JSON(http.StatusNotFound, echo.Map{"error": "showing not found"})
	case errors.Is(err, model.ErrSeatAlreadySold):
		return c.JSON(http.StatusConflict, echo.Map{"error": err.Error()})
	default:
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "could not complete sale"})
	}
}
