package handler

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"cinema-box-office/internal/model"
	"cinema-box-office/internal/repository"
)

// HistoryHandler exposes the sales ledger for the management history
// view.
type HistoryHandler struct {
	Ledger  *repository.SalesLedger
	Catalog *repository.ShowingCatalog
}

// NewHistoryHandler constructs a HistoryHandler.
func NewHistoryHandler(ledger *repository.SalesLedger, catalog *repository.ShowingCatalog) *HistoryHandler {
	if ledger == nil || catalog == nil {
		panic("nil ledger or catalog passed to NewHistoryHandler")
	}
	return &HistoryHandler{Ledger: ledger, Catalog: catalog}
}

// sellingResponse is the JSON shape of one ledger entry, joined with
// the showing title for display.  A selling outlives its showing only
// when the showing had no sold tickets, so the title is present in
// practice; an empty string marks the degenerate case.
type sellingResponse struct {
	ID          int          `json:"id"`
	DateTime    string       `json:"date_time"`
	TicketsSold int          `json:"tickets_sold"`
	ShowingID   int          `json:"showing_id"`
	Title       string       `json:"title"`
	Customer    string       `json:"customer"`
	Seats       []model.Seat `json:"seats"`
}

// ListSellings handles GET /v1/sellings and returns the ledger in
// append order.  The optional ?showing_id= query filters to one
// showing.
func (h *HistoryHandler) ListSellings(c echo.Context) error {
	var sellings []*model.Selling
	if q := c.QueryParam("showing_id"); q != "" {
		id, err := parseID(q)
		if err != nil {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid showing_id"})
		}
		sellings = h.Ledger.ListByShowing(id)
	} else {
		sellings = h.Ledger.ListAll()
	}

	items := make([]sellingResponse, 0, len(sellings))
	for _, s := range sellings {
		title := ""
		if showing, err := h.Catalog.GetByID(s.ShowingID); err == nil {
			title = showing.Title
		}
		items = append(items, sellingResponse{
			ID:          s.ID,
			DateTime:    s.DateTime.Format(time.RFC3339),
			TicketsSold: s.TicketsSold,
			ShowingID:   s.ShowingID,
			Title:       title,
			Customer:    s.Customer,
			Seats:       s.Seats,
		})
	}
	return c.JSON(http.StatusOK, echo.Map{"items": items})
}
