package model

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testShowing(start time.Time, duration time.Duration) *Showing {
	return &Showing{
		ID:            0,
		Title:         "The Wild Robot",
		StartDateTime: start,
		Duration:      duration,
		Seats:         NewSeatMap(6, 12),
	}
}

func TestShowingEndDateTime(t *testing.T) {
	start := time.Date(2024, 11, 12, 18, 0, 0, 0, time.UTC)
	s := testShowing(start, 2*time.Hour)
	assert.Equal(t, time.Date(2024, 11, 12, 20, 0, 0, 0, time.UTC), s.EndDateTime())
}

func TestShowingSeatsLeft(t *testing.T) {
	s := testShowing(time.Now(), time.Hour)
	assert.Equal(t, 72, s.SeatsTotal())
	assert.Equal(t, 72, s.SeatsLeft())

	require.NoError(t, s.Seats.MarkSold(0, 0))
	require.NoError(t, s.Seats.MarkSold(0, 1))
	s.TicketsSold = 2
	assert.Equal(t, 70, s.SeatsLeft())
	assert.True(t, s.HasSoldTickets())
}

func TestShowingOverlaps(t *testing.T) {
	// 16:30 to 18:30.
	start := time.Date(2024, 11, 12, 16, 30, 0, 0, time.UTC)
	s := testShowing(start, 2*time.Hour)

	cases := []struct {
		name     string
		start    time.Time
		duration time.Duration
		overlaps bool
	}{
		{"starts inside", start.Add(time.Hour), 2 * time.Hour, true},
		{"ends inside", start.Add(-time.Hour), 2 * time.Hour, true},
		{"contains", start.Add(-time.Hour), 4 * time.Hour, true},
		{"contained", start.Add(30 * time.Minute), time.Hour, true},
		{"same window", start, 2 * time.Hour, true},
		{"starts at end", s.EndDateTime(), time.Hour, false},
		{"ends at start", start.Add(-time.Hour), time.Hour, false},
		{"well before", start.Add(-5 * time.Hour), time.Hour, false},
		{"well after", start.Add(5 * time.Hour), time.Hour, false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.overlaps, s.Overlaps(tc.start, tc.start.Add(tc.duration)))
		})
	}
}

func TestShowingCloneDeepCopiesSeats(t *testing.T) {
	s := testShowing(time.Now(), time.Hour)
	dup := s.Clone()

	require.NoError(t, dup.Seats.MarkSold(3, 3))
	occupied, err := s.Seats.IsOccupied(3, 3)
	require.NoError(t, err)
	assert.False(t, occupied, "mutating a clone must not touch the original seat map")
}
