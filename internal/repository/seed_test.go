package repository

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"cinema-box-office/internal/model"
)

func TestSeedFixture(t *testing.T) {
	store := NewStore()
	require.NoError(t, Seed(store, bcrypt.MinCost))

	catalog := NewShowingCatalog(store)
	showings := catalog.ListAll()
	require.Len(t, showings, 3)

	byTitle := make(map[string]*model.Showing, len(showings))
	for _, s := range showings {
		byTitle[s.Title] = s
	}

	joker := byTitle["Joker: Folie à Deux"]
	require.NotNil(t, joker)
	assert.Equal(t, 10, joker.TicketsSold)

	robot := byTitle["The Wild Robot"]
	require.NotNil(t, robot)
	assert.Equal(t, 0, robot.TicketsSold)
	assert.False(t, robot.HasSoldTickets())

	beetlejuice := byTitle["Beetlejuice Beetlejuice"]
	require.NotNil(t, beetlejuice)
	assert.Equal(t, 52, beetlejuice.TicketsSold)
	assert.Equal(t, 20, beetlejuice.SeatsLeft())

	// Ticket counters always match occupancy.
	for _, s := range showings {
		assert.Equal(t, s.Seats.CountOccupied(), s.TicketsSold, s.Title)
	}

	assert.Len(t, NewSalesLedger(store).ListAll(), 9)
}

func TestSeedAccounts(t *testing.T) {
	store := NewStore()
	require.NoError(t, Seed(store, bcrypt.MinCost))

	users := NewUserRepo(store)
	admin, err := users.GetByUsername("admin")
	require.NoError(t, err)
	assert.Equal(t, model.AccessLevelManagement, admin.AccessLevel)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(admin.PasswordHash), []byte("admin")))

	sell, err := users.GetByUsername("sell")
	require.NoError(t, err)
	assert.Equal(t, model.AccessLevelSales, sell.AccessLevel)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(sell.PasswordHash), []byte("sell")))

	_, err = users.GetByUsername("ghost")
	assert.ErrorIs(t, err, ErrUserNotFound)
}
