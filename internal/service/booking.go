// This file implements the booking service: the single entry point for
// selling tickets.  It validates a sale request, commits it atomically
// against the store and fans out the resulting event and metrics.
package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"cinema-box-office/internal/model"
	"cinema-box-office/internal/monitoring"
	"cinema-box-office/internal/queue"
	"cinema-box-office/internal/repository"
)

// ErrNoSeatsSelected is returned when a sale is attempted without any
// seats.
var ErrNoSeatsSelected = errors.New("no seats selected")

// ErrMissingCustomerName is returned when the customer name is empty
// after trimming whitespace.
var ErrMissingCustomerName = errors.New("missing customer name")

// ErrAgeConfirmationRequired is returned when the showing is age
// restricted and the caller has not confirmed the customer's age.  The
// confirmation is a synchronous step the calling layer performs before
// invoking Sell; the service never prompts.
var ErrAgeConfirmationRequired = errors.New("age confirmation required")

// ErrDuplicateSeatInBatch is returned when the same seat appears twice
// in one sale request.
var ErrDuplicateSeatInBatch = errors.New("duplicate seat in batch")

// BookingService orchestrates ticket sales: seat selection comes in,
// validation runs in a fixed order, and on success the ledger entry,
// the seat markings and the ticket counter are committed as one atomic
// unit by the store.
type BookingService struct {
	store     *repository.Store
	catalog   *repository.ShowingCatalog
	publisher SalePublisher // nil disables event publishing
}

// NewBookingService constructs a booking service.  The publisher may
// be nil when no message broker is configured.
func NewBookingService(store *repository.Store, catalog *repository.ShowingCatalog, publisher SalePublisher) *BookingService {
	if store == nil || catalog == nil {
		panic("nil store or catalog passed to NewBookingService")
	}
	return &BookingService{store: store, catalog: catalog, publisher: publisher}
}

// Sell performs one sale of the given seats to the named customer.
// Preconditions are checked in a fixed order, each with its own
// failure: empty batch, blank customer, missing age confirmation,
// duplicate seats, then seat availability for the whole batch.  A sale
// is all-or-nothing: when any seat is already sold, no seat is marked
// and the ledger is untouched.
//
// On success the returned selling carries the ledger-assigned id and a
// tickets.sold event is published fire-and-forget.
func (b *BookingService) Sell(ctx context.Context, showingID int, seats []model.Seat, customer string, now time.Time, ageConfirmed bool) (*model.Selling, error) {
	if len(seats) == 0 {
		monitoring.RecordSaleRejected("no_seats_selected")
		return nil, ErrNoSeatsSelected
	}
	customer = strings.TrimSpace(customer)
	if customer == "" {
		monitoring.RecordSaleRejected("missing_customer_name")
		return nil, ErrMissingCustomerName
	}

	showing, err := b.catalog.GetByID(showingID)
	if err != nil {
		monitoring.RecordSaleRejected("showing_not_found")
		return nil, err
	}
	if showing.AgeRestricted && !ageConfirmed {
		monitoring.RecordSaleRejected("age_confirmation_required")
		return nil, ErrAgeConfirmationRequired
	}

	seen := make(map[model.Seat]struct{}, len(seats))
	for _, seat := range seats {
		if _, dup := seen[seat]; dup {
			monitoring.RecordSaleRejected("duplicate_seat_in_batch")
			return nil, fmt.Errorf("seat (%d,%d): %w", seat.Row, seat.Col, ErrDuplicateSeatInBatch)
		}
		seen[seat] = struct{}{}
	}

	selling, err := b.store.CommitSale(showingID, seats, customer, now)
	if err != nil {
		monitoring.RecordSaleRejected(rejectionReason(err))
		return nil, err
	}
	monitoring.RecordSale(selling.TicketsSold)

	if b.publisher != nil {
		// Fire-and-forget: a broker outage must never fail a sale.
		_ = b.publisher.PublishTicketsSold(ctx, queue.TicketsSoldEvent{
			SellingID:   selling.ID,
			ShowingID:   showingID,
			Title:       showing.Title,
			Customer:    customer,
			SeatLabels:  seatLabels(seats),
			TicketsSold: selling.TicketsSold,
			SoldAt:      selling.DateTime.UTC().Format(time.RFC3339),
		})
	}
	return selling, nil
}

// rejectionReason maps a commit error to a stable metric label.
func rejectionReason(err error) string {
	switch {
	case errors.Is(err, model.ErrSeatAlreadySold):
		return "seat_already_sold"
	case errors.Is(err, model.ErrSeatOutOfRange):
		return "seat_out_of_range"
	case errors.Is(err, repository.ErrShowingNotFound):
		return "showing_not_found"
	default:
		return "other"
	}
}

// seatLabels renders seats as display labels: rows become letters and
// columns 1-based numbers, so seat (4,3) is "E4".
func seatLabels(seats []model.Seat) []string {
	labels := make([]string, 0, len(seats))
	for _, seat := range seats {
		labels = append(labels, fmt.Sprintf("%c%d", 'A'+rune(seat.Row), seat.Col+1))
	}
	return labels
}
