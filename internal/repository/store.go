package repository

import (
	"fmt"
	"sync"
	"time"

	"cinema-box-office/internal/model"
)

// Store is the single in-memory database of the box office.  It owns
// every showing, selling and user exclusively; collaborators receive
// clones and mutate state only through the repositories layered on top
// of it.  One RWMutex guards the whole store: the catalog models a
// single screening room, so a store-wide critical section is the
// natural scope for the check-then-act sequences in selling and
// scheduling.
//
// A Store is constructed explicitly in main and passed down to the
// repositories and services that need it.  There is no package-level
// instance.
type Store struct {
	mu sync.RWMutex

	showings    []*model.Showing       // insertion order
	showingByID map[int]*model.Showing // stable id lookup

	sellings []*model.Selling

	users  map[string]*model.User        // keyed by username
	tokens map[string]model.RefreshToken // keyed by token hash

	nextShowingID int // monotonic, never reused after removals
	nextSellingID int
}

// NewStore returns an empty store.  Callers either restore a snapshot
// into it or seed it with fixture data.
func NewStore() *Store {
	return &Store{
		showingByID: make(map[int]*model.Showing),
		users:       make(map[string]*model.User),
		tokens:      make(map[string]model.RefreshToken),
	}
}

// CommitSale atomically records a completed sale: it verifies that
// every requested seat is free, marks them all sold, increments the
// showing's ticket counter and appends a new selling to the ledger with
// the next sequential id.  The whole sequence runs inside one critical
// section, so either every seat in the batch is sold together with the
// ledger entry, or nothing changes at all.
//
// It returns ErrShowingNotFound for an unknown showing id,
// model.ErrSeatOutOfRange for a coordinate outside the grid and
// model.ErrSeatAlreadySold when any seat in the batch is occupied.
// The caller is expected to have validated everything that does not
// require seat state: batch emptiness, duplicates, customer name and
// age confirmation.
func (st *Store) CommitSale(showingID int, seats []model.Seat, customer string, at time.Time) (*model.Selling, error) {
	st.mu.Lock()
	defer st.mu.Unlock()

	showing, ok := st.showingByID[showingID]
	if !ok {
		return nil, ErrShowingNotFound
	}

	// Verify the whole batch before touching anything.
	for _, seat := range seats {
		occupied, err := showing.Seats.IsOccupied(seat.Row, seat.Col)
		if err != nil {
			return nil, fmt.Errorf("seat (%d,%d): %w", seat.Row, seat.Col, err)
		}
		if occupied {
			return nil, fmt.Errorf("seat (%d,%d): %w", seat.Row, seat.Col, model.ErrSeatAlreadySold)
		}
	}

	for _, seat := range seats {
		// Cannot fail: every seat was verified free above and the
		// store lock is still held.
		if err := showing.Seats.MarkSold(seat.Row, seat.Col); err != nil {
			return nil, fmt.Errorf("seat (%d,%d): %w", seat.Row, seat.Col, err)
		}
	}
	showing.TicketsSold += len(seats)

	selling := &model.Selling{
		ID:          st.nextSellingID,
		DateTime:    at,
		TicketsSold: len(seats),
		ShowingID:   showingID,
		Customer:    customer,
		Seats:       append([]model.Seat(nil), seats...),
	}
	st.nextSellingID++
	st.sellings = append(st.sellings, selling)
	return selling.Clone(), nil
}

// State is the serializable form of the full store contents.  The
// snapshot collaborator encodes it at process stop and feeds it back
// through Restore at process start.  Every field of every entity is
// included so a snapshot/restore round trip loses nothing.
type State struct {
	Showings      []ShowingState `json:"showings"`
	Sellings      []SellingState `json:"sellings"`
	Users         []UserState    `json:"users"`
	NextShowingID int            `json:"next_showing_id"`
	NextSellingID int            `json:"next_selling_id"`
}

// ShowingState is the serializable form of one showing.  The seat grid
// is stored row-major as booleans.
type ShowingState struct {
	ID            int           `json:"id"`
	Title         string        `json:"title"`
	StartDateTime time.Time     `json:"start_date_time"`
	Duration      time.Duration `json:"duration"`
	TicketsSold   int           `json:"tickets_sold"`
	AgeRestricted bool          `json:"age_restricted"`
	Seats         [][]bool      `json:"seats"`
}

// SellingState is the serializable form of one selling.
type SellingState struct {
	ID          int          `json:"id"`
	DateTime    time.Time    `json:"date_time"`
	TicketsSold int          `json:"tickets_sold"`
	ShowingID   int          `json:"showing_id"`
	Customer    string       `json:"customer"`
	Seats       []model.Seat `json:"seats"`
}

// UserState is the serializable form of one user account.
type UserState struct {
	Username     string `json:"username"`
	PasswordHash string `json:"password_hash"`
	AccessLevel  string `json:"access_level"`
}

// Export captures the full store contents for snapshotting.  Refresh
// tokens are deliberately not exported; sessions do not survive a
// restart.
func (st *Store) Export() *State {
	st.mu.RLock()
	defer st.mu.RUnlock()

	state := &State{
		NextShowingID: st.nextShowingID,
		NextSellingID: st.nextSellingID,
	}
	for _, s := range st.showings {
		state.Showings = append(state.Showings, ShowingState{
			ID:            s.ID,
			Title:         s.Title,
			StartDateTime: s.StartDateTime,
			Duration:      s.Duration,
			TicketsSold:   s.TicketsSold,
			AgeRestricted: s.AgeRestricted,
			Seats:         s.Seats.Snapshot(),
		})
	}
	for _, sell := range st.sellings {
		state.Sellings = append(state.Sellings, SellingState{
			ID:          sell.ID,
			DateTime:    sell.DateTime,
			TicketsSold: sell.TicketsSold,
			ShowingID:   sell.ShowingID,
			Customer:    sell.Customer,
			Seats:       append([]model.Seat(nil), sell.Seats...),
		})
	}
	for _, u := range st.users {
		state.Users = append(state.Users, UserState{
			Username:     u.Username,
			PasswordHash: u.PasswordHash,
			AccessLevel:  u.AccessLevel,
		})
	}
	return state
}

// Restore replaces the store contents with the given state.  It is
// called once at startup before the store is shared, but takes the
// write lock anyway so a misplaced call cannot corrupt live state.
// A seat grid with marks outside its own dimensions (a ragged or
// hand-edited snapshot) fails the restore, so TicketsSold and the
// occupancy count cannot drift apart at the boundary.
func (st *Store) Restore(state *State) error {
	st.mu.Lock()
	defer st.mu.Unlock()

	st.showings = nil
	st.showingByID = make(map[int]*model.Showing)
	st.sellings = nil
	st.users = make(map[string]*model.User)
	st.tokens = make(map[string]model.RefreshToken)
	st.nextShowingID = state.NextShowingID
	st.nextSellingID = state.NextSellingID

	for _, s := range state.Showings {
		rows := len(s.Seats)
		cols := 0
		if rows > 0 {
			cols = len(s.Seats[0])
		}
		seatMap := model.NewSeatMap(rows, cols)
		for r, row := range s.Seats {
			for c, taken := range row {
				if taken {
					if err := seatMap.MarkSold(r, c); err != nil {
						return fmt.Errorf("restore showing %d seat (%d,%d): %w", s.ID, r, c, err)
					}
				}
			}
		}
		showing := &model.Showing{
			ID:            s.ID,
			Title:         s.Title,
			StartDateTime: s.StartDateTime,
			Duration:      s.Duration,
			TicketsSold:   s.TicketsSold,
			AgeRestricted: s.AgeRestricted,
			Seats:         seatMap,
		}
		st.showings = append(st.showings, showing)
		st.showingByID[showing.ID] = showing
		if showing.ID >= st.nextShowingID {
			st.nextShowingID = showing.ID + 1
		}
	}
	for _, s := range state.Sellings {
		selling := &model.Selling{
			ID:          s.ID,
			DateTime:    s.DateTime,
			TicketsSold: s.TicketsSold,
			ShowingID:   s.ShowingID,
			Customer:    s.Customer,
			Seats:       append([]model.Seat(nil), s.Seats...),
		}
		st.sellings = append(st.sellings, selling)
		if selling.ID >= st.nextSellingID {
			st.nextSellingID = selling.ID + 1
		}
	}
	for _, u := range state.Users {
		st.users[u.Username] = &model.User{
			Username:     u.Username,
			PasswordHash: u.PasswordHash,
			AccessLevel:  u.AccessLevel,
		}
	}
	return nil
}
