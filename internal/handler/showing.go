package handler

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/redis/go-redis/v9"

	"cinema-box-office/internal/config"
	"cinema-box-office/internal/export"
	"cinema-box-office/internal/middleware"
	"cinema-box-office/internal/model"
	"cinema-box-office/internal/repository"
	"cinema-box-office/internal/service"
)

// ShowingHandler exposes the showing schedule: listing, the add/edit
// workflow, removal, seat-map snapshots and the CSV export.  Write
// operations invalidate the response cache so list endpoints never
// serve a stale schedule.
type ShowingHandler struct {
	Showings *service.ShowingService
	Redis    *redis.Client
	Cache    config.CacheConfig
}

// NewShowingHandler constructs a ShowingHandler.  The Redis client may
// be nil when caching is disabled.
func NewShowingHandler(showings *service.ShowingService, rdb *redis.Client, cache config.CacheConfig) *ShowingHandler {
	if showings == nil {
		panic("nil showing service passed to NewShowingHandler")
	}
	return &ShowingHandler{Showings: showings, Redis: rdb, Cache: cache}
}

// showingResponse is the JSON shape of one showing.  Timestamps are
// RFC3339; the duration is given in minutes to match how schedules are
// entered.
type showingResponse struct {
	ID              int    `json:"id"`
	Title           string `json:"title"`
	StartDateTime   string `json:"start_date_time"`
	EndDateTime     string `json:"end_date_time"`
	DurationMinutes int    `json:"duration_minutes"`
	TicketsSold     int    `json:"tickets_sold"`
	SeatsTotal      int    `json:"seats_total"`
	SeatsLeft       int    `json:"seats_left"`
	AgeRestricted   bool   `json:"age_restricted"`
}

func toShowingResponse(s *model.Showing) showingResponse {
	return showingResponse{
		ID:              s.ID,
		Title:           s.Title,
		StartDateTime:   s.StartDateTime.Format(time.RFC3339),
		EndDateTime:     s.EndDateTime().Format(time.RFC3339),
		DurationMinutes: int(s.Duration / time.Minute),
		TicketsSold:     s.TicketsSold,
		SeatsTotal:      s.SeatsTotal(),
		SeatsLeft:       s.SeatsLeft(),
		AgeRestricted:   s.AgeRestricted,
	}
}

func toShowingResponses(showings []*model.Showing) []showingResponse {
	out := make([]showingResponse, 0, len(showings))
	for _, s := range showings {
		out = append(out, toShowingResponse(s))
	}
	return out
}

// upsertRequest is the body of create and update calls.  An empty
// start_date_time or a zero duration is reported by the scheduling
// service as a validation failure, together with every other violated
// rule.
type upsertRequest struct {
	Title           string `json:"title"`
	StartDateTime   string `json:"start_date_time"`
	DurationMinutes int    `json:"duration_minutes"`
	AgeRestricted   bool   `json:"age_restricted"`
}

// ListShowings handles GET /v1/showings and returns the full schedule
// in insertion order.
func (h *ShowingHandler) ListShowings(c echo.Context) error {
	return c.JSON(http.StatusOK, echo.Map{"items": toShowingResponses(h.Showings.ListAll())})
}

// ListUpcomingShowings handles GET /v1/showings/upcoming and returns
// the showings starting after the current time.
func (h *ShowingHandler) ListUpcomingShowings(c echo.Context) error {
	return c.JSON(http.StatusOK, echo.Map{"items": toShowingResponses(h.Showings.ListUpcoming(time.Now()))})
}

// GetShowing handles GET /v1/showings/:id.
func (h *ShowingHandler) GetShowing(c echo.Context) error {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid showing id"})
	}
	showing, err := h.Showings.Get(id)
	if err != nil {
		return c.JSON(http.StatusNotFound, echo.Map{"error": "showing not found"})
	}
	return c.JSON(http.StatusOK, toShowingResponse(showing))
}

// CreateShowing handles POST /v1/showings and schedules a new showing
// with an empty seat map of the configured grid size.
func (h *ShowingHandler) CreateShowing(c echo.Context) error {
	return h.upsert(c, model.UnsavedID)
}

// UpdateShowing handles PUT /v1/showings/:id and edits a showing in
// place, preserving its seat map and sold-ticket counter.
func (h *ShowingHandler) UpdateShowing(c echo.Context) error {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid showing id"})
	}
	return h.upsert(c, id)
}

func (h *ShowingHandler) upsert(c echo.Context, id int) error {
	var body upsertRequest
	if err := c.Bind(&body); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
	}

	var start time.Time
	if body.StartDateTime != "" {
		parsed, err := time.Parse(time.RFC3339, body.StartDateTime)
		if err != nil {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid start_date_time format, expected RFC3339"})
		}
		start = parsed
	}
	duration := time.Duration(body.DurationMinutes) * time.Minute

	showing, err := h.Showings.Upsert(id, body.Title, start, duration, body.AgeRestricted)
	if err != nil {
		if errors.Is(err, repository.ErrShowingNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "showing not found"})
		}
		// Report every violated rule at once, the way the add/edit
		// form shows all of its error labels together.
		msgs := validationMessages(err)
		if len(msgs) == 0 {
			return c.JSON(http.StatusInternalServerError, echo.Map{"error": "could not save showing"})
		}
		status := http.StatusBadRequest
		if len(msgs) == 1 && errors.Is(err, repository.ErrRoomUnavailable) {
			status = http.StatusConflict
		}
		return c.JSON(status, echo.Map{"errors": msgs})
	}

	middleware.InvalidateCache(h.Redis, h.Cache)
	status := http.StatusOK
	if id == model.UnsavedID {
		status = http.StatusCreated
	}
	return c.JSON(status, toShowingResponse(showing))
}

// DeleteShowing handles DELETE /v1/showings/:id.  Removal is refused
// with 409 once any ticket has been sold; the UI must have asked the
// user for confirmation before calling this.
func (h *ShowingHandler) DeleteShowing(c echo.Context) error {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid showing id"})
	}
	if err := h.Showings.Remove(id); err != nil {
		switch {
		case errors.Is(err, repository.ErrShowingNotFound):
			return c.JSON(http.StatusNotFound, echo.Map{"error": "showing not found"})
		case errors.Is(err, repository.ErrHasSoldTickets):
			return c.JSON(http.StatusConflict, echo.Map{"error": "showing has sold tickets and cannot be deleted"})
		default:
			return c.JSON(http.StatusInternalServerError, echo.Map{"error": "could not delete showing"})
		}
	}
	middleware.InvalidateCache(h.Redis, h.Cache)
	return c.NoContent(http.StatusNoContent)
}

// GetSeatMap handles GET /v1/showings/:id/seats and returns a snapshot
// of the occupancy grid, row-major with zero-based coordinates.
func (h *ShowingHandler) GetSeatMap(c echo.Context) error {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid showing id"})
	}
	showing, err := h.Showings.Get(id)
	if err != nil {
		return c.JSON(http.StatusNotFound, echo.Map{"error": "showing not found"})
	}
	return c.JSON(http.StatusOK, echo.Map{
		"showing_id": showing.ID,
		"rows":       showing.Seats.Rows(),
		"cols":       showing.Seats.Cols(),
		"occupied":   showing.Seats.Snapshot(),
	})
}

// ExportShowingsCSV handles GET /v1/showings/export.csv and streams
// the schedule as CSV: start, end, title, seats left per line.
func (h *ShowingHandler) ExportShowingsCSV(c echo.Context) error {
	c.Response().Header().Set(echo.HeaderContentType, "text/csv")
	c.Response().Header().Set(echo.HeaderContentDisposition, `attachment; filename="showings.csv"`)
	c.Response().WriteHeader(http.StatusOK)
	return export.WriteShowingsCSV(c.Response(), h.Showings.ListAll())
}

// validationMessages flattens an upsert error into one message per
// violated rule.
func validationMessages(err error) []string {
	var msgs []string
	for _, sentinel := range []struct {
		err error
		msg string
	}{
		{service.ErrMissingTitle, "title is required"},
		{service.ErrMissingStartDate, "start date is required"},
		{service.ErrMissingDuration, "duration must be positive"},
		{repository.ErrRoomUnavailable, "room is not available for the requested time slot"},
	} {
		if errors.Is(err, sentinel.err) {
			msgs = append(msgs, sentinel.msg)
		}
	}
	return msgs
}
