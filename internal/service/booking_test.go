package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"cinema-box-office/internal/model"
	"cinema-box-office/internal/queue"
	"cinema-box-office/internal/repository"
)

// capturingPublisher records published events instead of talking to a
// broker.
type capturingPublisher struct {
	events []queue.TicketsSoldEvent
}

func (p *capturingPublisher) PublishTicketsSold(_ context.Context, event queue.TicketsSoldEvent) error {
	p.events = append(p.events, event)
	return nil
}

func newBookingFixture(t *testing.T, ageRestricted bool) (*BookingService, *repository.ShowingCatalog, *capturingPublisher) {
	t.Helper()
	store := repository.NewStore()
	catalog := repository.NewShowingCatalog(store)
	require.NoError(t, catalog.Add(&model.Showing{
		ID:            model.UnsavedID,
		Title:         "Joker: Folie à Deux",
		StartDateTime: time.Date(2024, 11, 15, 14, 0, 0, 0, time.UTC),
		Duration:      2*time.Hour + 30*time.Minute,
		AgeRestricted: ageRestricted,
		Seats:         model.NewSeatMap(6, 12),
	}))
	publisher := &capturingPublisher{}
	return NewBookingService(store, catalog, publisher), catalog, publisher
}

func TestSellSingleSeat(t *testing.T) {
	booking, catalog, publisher := newBookingFixture(t, false)
	at := time.Date(2024, 11, 1, 10, 0, 0, 0, time.UTC)

	selling, err := booking.Sell(context.Background(), 0, []model.Seat{{Row: 4, Col: 3}}, "John Doe", at, false)
	require.NoError(t, err)
	assert.Equal(t, 1, selling.TicketsSold)
	assert.Equal(t, "John Doe", selling.Customer)

	showing, err := catalog.GetByID(0)
	require.NoError(t, err)
	assert.Equal(t, 1, showing.TicketsSold)

	require.Len(t, publisher.events, 1)
	event := publisher.events[0]
	assert.Equal(t, "Joker: Folie à Deux", event.Title)
	assert.Equal(t, []string{"E4"}, event.SeatLabels)
	assert.Equal(t, 1, event.TicketsSold)
}

func TestSellSameSeatTwice(t *testing.T) {
	booking, catalog, _ := newBookingFixture(t, false)
	seat := []model.Seat{{Row: 4, Col: 3}}

	_, err := booking.Sell(context.Background(), 0, seat, "John Doe", time.Now(), false)
	require.NoError(t, err)

	_, err = booking.Sell(context.Background(), 0, seat, "Jane Doe", time.Now(), false)
	assert.ErrorIs(t, err, model.ErrSeatAlreadySold)

	showing, err := catalog.GetByID(0)
	require.NoError(t, err)
	assert.Equal(t, 1, showing.TicketsSold)
}

func TestSellBatchIsAllOrNothing(t *testing.T) {
	booking, catalog, publisher := newBookingFixture(t, false)

	_, err := booking.Sell(context.Background(), 0, []model.Seat{{Row: 2, Col: 2}}, "John Doe", time.Now(), false)
	require.NoError(t, err)

	_, err = booking.Sell(context.Background(), 0,
		[]model.Seat{{Row: 2, Col: 1}, {Row: 2, Col: 2}, {Row: 2, Col: 3}}, "Jane Doe", time.Now(), false)
	assert.ErrorIs(t, err, model.ErrSeatAlreadySold)

	showing, err := catalog.GetByID(0)
	require.NoError(t, err)
	assert.Equal(t, 1, showing.TicketsSold)
	assert.Equal(t, showing.Seats.CountOccupied(), showing.TicketsSold)
	assert.Len(t, publisher.events, 1, "a failed sale publishes nothing")
}

func TestSellValidation(t *testing.T) {
	cases := []struct {
		name     string
		seats    []model.Seat
		customer string
		want     error
	}{
		{"no seats", nil, "John Doe", ErrNoSeatsSelected},
		{"empty batch beats blank customer", nil, "  ", ErrNoSeatsSelected},
		{"blank customer", []model.Seat{{Row: 0, Col: 0}}, "   ", ErrMissingCustomerName},
		{"duplicate seat", []model.Seat{{Row: 1, Col: 1}, {Row: 1, Col: 1}}, "John Doe", ErrDuplicateSeatInBatch},
		{"out of range", []model.Seat{{Row: 6, Col: 0}}, "John Doe", model.ErrSeatOutOfRange},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			booking, catalog, _ := newBookingFixture(t, false)
			_, err := booking.Sell(context.Background(), 0, tc.seats, tc.customer, time.Now(), false)
			assert.ErrorIs(t, err, tc.want)

			showing, err := catalog.GetByID(0)
			require.NoError(t, err)
			assert.Equal(t, 0, showing.TicketsSold)
		})
	}
}

func TestSellUnknownShowing(t *testing.T) {
	booking, _, _ := newBookingFixture(t, false)
	_, err := booking.Sell(context.Background(), 99, []model.Seat{{Row: 0, Col: 0}}, "John Doe", time.Now(), false)
	assert.ErrorIs(t, err, repository.ErrShowingNotFound)
}

func TestSellAgeRestrictedShowing(t *testing.T) {
	booking, catalog, _ := newBookingFixture(t, true)
	seat := []model.Seat{{Row: 0, Col: 0}}

	_, err := booking.Sell(context.Background(), 0, seat, "John Doe", time.Now(), false)
	assert.ErrorIs(t, err, ErrAgeConfirmationRequired)

	showing, err := catalog.GetByID(0)
	require.NoError(t, err)
	assert.Equal(t, 0, showing.TicketsSold)

	_, err = booking.Sell(context.Background(), 0, seat, "John Doe", time.Now(), true)
	assert.NoError(t, err)
}

func TestSellTrimsCustomerName(t *testing.T) {
	booking, _, _ := newBookingFixture(t, false)
	selling, err := booking.Sell(context.Background(), 0, []model.Seat{{Row: 0, Col: 0}}, "  John Doe  ", time.Now(), false)
	require.NoError(t, err)
	assert.Equal(t, "John Doe", selling.Customer)
}

func TestSellWithoutPublisher(t *testing.T) {
	store := repository.NewStore()
	catalog := repository.NewShowingCatalog(store)
	require.NoError(t, catalog.Add(&model.Showing{
		ID:            model.UnsavedID,
		Title:         "The Wild Robot",
		StartDateTime: time.Date(2024, 11, 12, 18, 0, 0, 0, time.UTC),
		Duration:      2 * time.Hour,
		Seats:         model.NewSeatMap(6, 12),
	}))
	booking := NewBookingService(store, catalog, nil)

	_, err := booking.Sell(context.Background(), 0, []model.Seat{{Row: 0, Col: 0}}, "John Doe", time.Now(), false)
	assert.NoError(t, err, "a nil publisher disables events without failing sales")
}

func TestSeatLabels(t *testing.T) {
	labels := seatLabels([]model.Seat{{Row: 0, Col: 0}, {Row: 4, Col: 3}, {Row: 5, Col: 11}})
	assert.Equal(t, []string{"A1", "E4", "F12"}, labels)
}
