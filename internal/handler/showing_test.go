package handler

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"cinema-box-office/internal/config"
	"cinema-box-office/internal/model"
	"cinema-box-office/internal/repository"
	"cinema-box-office/internal/service"
)

func newShowingHandler(t *testing.T) (*ShowingHandler, *repository.Store) {
	t.Helper()
	store := repository.NewStore()
	showings := service.NewShowingService(repository.NewShowingCatalog(store), 6, 12)
	return NewShowingHandler(showings, nil, config.CacheConfig{}), store
}

func doJSON(e *echo.Echo, method, target, body string) *httptest.ResponseRecorder {
	var reader *strings.Reader
	if body == "" {
		reader = strings.NewReader("")
	} else {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, target, reader)
	if body != "" {
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	return rec
}

func TestCreateShowing(t *testing.T) {
	h, _ := newShowingHandler(t)
	e := echo.New()
	e.POST("/v1/showings", h.CreateShowing)
	e.GET("/v1/showings", h.ListShowings)

	rec := doJSON(e, http.MethodPost, "/v1/showings",
		`{"title":"The Wild Robot","start_date_time":"2024-11-12T18:00:00Z","duration_minutes":120}`)
	require.Equal(t, http.StatusCreated, rec.Code)

	var created map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &created))
	assert.Equal(t, float64(0), created["id"])
	assert.Equal(t, "The Wild Robot", created["title"])
	assert.Equal(t, "2024-11-12T20:00:00Z", created["end_date_time"])
	assert.Equal(t, float64(72), created["seats_left"])

	rec = doJSON(e, http.MethodGet, "/v1/showings", "")
	require.Equal(t, http.StatusOK, rec.Code)
	var listed struct {
		Items []map[string]any `json:"items"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &listed))
	assert.Len(t, listed.Items, 1)
}

func TestCreateShowingReportsAllViolations(t *testing.T) {
	h, _ := newShowingHandler(t)
	e := echo.New()
	e.POST("/v1/showings", h.CreateShowing)

	rec := doJSON(e, http.MethodPost, "/v1/showings", `{"title":"  "}`)
	require.Equal(t, http.StatusBadRequest, rec.Code)

	var body struct {
		Errors []string `json:"errors"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.ElementsMatch(t, []string{
		"title is required",
		"start date is required",
		"duration must be positive",
	}, body.Errors)
}

func TestCreateShowingRoomConflict(t *testing.T) {
	h, _ := newShowingHandler(t)
	e := echo.New()
	e.POST("/v1/showings", h.CreateShowing)

	rec := doJSON(e, http.MethodPost, "/v1/showings",
		`{"title":"Joker: Folie à Deux","start_date_time":"2024-11-15T14:00:00Z","duration_minutes":150}`)
	require.Equal(t, http.StatusCreated, rec.Code)

	// 16:00 falls inside the 14:00 showing that runs until 16:30.
	rec = doJSON(e, http.MethodPost, "/v1/showings",
		`{"title":"The Wild Robot","start_date_time":"2024-11-15T16:00:00Z","duration_minutes":120}`)
	assert.Equal(t, http.StatusConflict, rec.Code)

	rec = doJSON(e, http.MethodPost, "/v1/showings",
		`{"title":"The Wild Robot","start_date_time":"2024-11-15T16:30:00Z","duration_minutes":120}`)
	assert.Equal(t, http.StatusCreated, rec.Code)
}

func TestDeleteShowing(t *testing.T) {
	h, store := newShowingHandler(t)
	e := echo.New()
	e.POST("/v1/showings", h.CreateShowing)
	e.DELETE("/v1/showings/:id", h.DeleteShowing)

	rec := doJSON(e, http.MethodPost, "/v1/showings",
		`{"title":"Removable","start_date_time":"2024-11-12T18:00:00Z","duration_minutes":60}`)
	require.Equal(t, http.StatusCreated, rec.Code)
	rec = doJSON(e, http.MethodPost, "/v1/showings",
		`{"title":"Sold","start_date_time":"2024-11-13T18:00:00Z","duration_minutes":60}`)
	require.Equal(t, http.StatusCreated, rec.Code)

	_, err := store.CommitSale(1, []model.Seat{{Row: 0, Col: 0}}, "John Doe", time.Now())
	require.NoError(t, err)

	rec = doJSON(e, http.MethodDelete, "/v1/showings/0", "")
	assert.Equal(t, http.StatusNoContent, rec.Code)

	rec = doJSON(e, http.MethodDelete, "/v1/showings/0", "")
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = doJSON(e, http.MethodDelete, "/v1/showings/1", "")
	assert.Equal(t, http.StatusConflict, rec.Code)
}

func TestGetSeatMap(t *testing.T) {
	h, store := newShowingHandler(t)
	e := echo.New()
	e.POST("/v1/showings", h.CreateShowing)
	e.GET("/v1/showings/:id/seats", h.GetSeatMap)

	rec := doJSON(e, http.MethodPost, "/v1/showings",
		`{"title":"The Wild Robot","start_date_time":"2024-11-12T18:00:00Z","duration_minutes":120}`)
	require.Equal(t, http.StatusCreated, rec.Code)

	_, err := store.CommitSale(0, []model.Seat{{Row: 4, Col: 3}}, "John Doe", time.Now())
	require.NoError(t, err)

	rec = doJSON(e, http.MethodGet, "/v1/showings/0/seats", "")
	require.Equal(t, http.StatusOK, rec.Code)

	var body struct {
		Rows     int      `json:"rows"`
		Cols     int      `json:"cols"`
		Occupied [][]bool `json:"occupied"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, 6, body.Rows)
	assert.Equal(t, 12, body.Cols)
	assert.True(t, body.Occupied[4][3])
	assert.False(t, body.Occupied[4][4])
}

func TestExportShowingsCSV(t *testing.T) {
	h, _ := newShowingHandler(t)
	e := echo.New()
	e.POST("/v1/showings", h.CreateShowing)
	e.GET("/v1/showings/export.csv", h.ExportShowingsCSV)

	rec := doJSON(e, http.MethodPost, "/v1/showings",
		`{"title":"The Wild Robot","start_date_time":"2024-11-12T18:00:00Z","duration_minutes":120}`)
	require.Equal(t, http.StatusCreated, rec.Code)

	rec = doJSON(e, http.MethodGet, "/v1/showings/export.csv", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "text/csv", rec.Header().Get(echo.HeaderContentType))
	assert.Equal(t, "12-11-2024 18:00,12-11-2024 20:00,The Wild Robot,72\n", rec.Body.String())
}
