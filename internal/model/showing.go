package model

import "time"

// UnsavedID is the sentinel id carried by a showing that has not been
// inserted into the catalog yet.  The catalog assigns a real id on
// insert.
const UnsavedID = -1

// Showing represents one scheduled screening of a movie in the single
// screening room the catalog models.  A showing owns its seat map and
// tracks how many tickets have been sold for it.
//
// Fields:
//  ID            – catalog-unique identifier, UnsavedID for drafts.
//  Title         – title of the movie being shown.
//  StartDateTime – when the screening begins.
//  Duration      – running time of the screening.
//  TicketsSold   – number of tickets sold so far; always equals the
//                  number of occupied seats in Seats.
//  AgeRestricted – whether selling requires an age confirmation.
//  Seats         – per-showing seat occupancy grid.
type Showing struct {
	ID            int           `json:"id"`
	Title         string        `json:"title"`
	StartDateTime time.Time     `json:"start_date_time"`
	Duration      time.Duration `json:"duration"`
	TicketsSold   int           `json:"tickets_sold"`
	AgeRestricted bool          `json:"age_restricted"`
	Seats         *SeatMap      `json:"-"`
}

// EndDateTime returns the moment the screening finishes.
func (s *Showing) EndDateTime() time.Time {
	return s.StartDateTime.Add(s.Duration)
}

// SeatsTotal returns the capacity of the room for this showing.
func (s *Showing) SeatsTotal() int {
	if s.Seats == nil {
		return 0
	}
	return s.Seats.Rows() * s.Seats.Cols()
}

// SeatsLeft returns how many seats are still available.
func (s *Showing) SeatsLeft() int {
	return s.SeatsTotal() - s.TicketsSold
}

// HasSoldTickets reports whether at least one ticket has been sold.
// A showing with sold tickets can no longer be removed from the
// catalog.
func (s *Showing) HasSoldTickets() bool {
	return s.TicketsSold > 0
}

// Overlaps reports whether the showing's half-open interval
// [start, end) intersects the given half-open interval.  Touching
// endpoints do not count as overlap, so a showing may start exactly
// when another one ends.
func (s *Showing) Overlaps(start, end time.Time) bool {
	return s.StartDateTime.Before(end) && s.EndDateTime().After(start)
}

// Clone returns an independent copy of the showing including a deep
// copy of its seat map.  The catalog hands out clones so collaborators
// can never mutate seat state directly.
func (s *Showing) Clone() *Showing {
	dup := *s
	if s.Seats != nil {
		dup.Seats = s.Seats.Clone()
	}
	return &dup
}
