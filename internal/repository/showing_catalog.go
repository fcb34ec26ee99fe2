// This file implements the showing catalog: the ordered collection of
// all showings in the single screening room the box office models.
// The catalog enforces that no two showings occupy overlapping time
// windows and that a showing with sold tickets is never removed.
package repository

import (
	"time"

	"cinema-box-office/internal/model"
)

// ShowingCatalog provides access to the showings held by the store.
// All methods are atomic with respect to the store lock, and read
// methods return clones so callers can never mutate catalog state or
// seat grids directly.
type ShowingCatalog struct {
	store *Store
}

// NewShowingCatalog constructs a catalog view over the given store.
func NewShowingCatalog(store *Store) *ShowingCatalog {
	return &ShowingCatalog{store: store}
}

// ListAll returns clones of every showing in insertion order.
func (c *ShowingCatalog) ListAll() []*model.Showing {
	c.store.mu.RLock()
	defer c.store.mu.RUnlock()

	out := make([]*model.Showing, 0, len(c.store.showings))
	for _, s := range c.store.showings {
		out = append(out, s.Clone())
	}
	return out
}

// ListUpcoming returns clones of the showings whose start time lies
// strictly after now, in the same relative order as ListAll.
func (c *ShowingCatalog) ListUpcoming(now time.Time) []*model.Showing {
	c.store.mu.RLock()
	defer c.store.mu.RUnlock()

	var out []*model.Showing
	for _, s := range c.store.showings {
		if s.StartDateTime.After(now) {
			out = append(out, s.Clone())
		}
	}
	return out
}

// GetByID returns a clone of the showing with the given id or
// ErrShowingNotFound.
func (c *ShowingCatalog) GetByID(id int) (*model.Showing, error) {
	c.store.mu.RLock()
	defer c.store.mu.RUnlock()

	s, ok := c.store.showingByID[id]
	if !ok {
		return nil, ErrShowingNotFound
	}
	return s.Clone(), nil
}

// Add inserts a draft showing into the catalog.  A draft carries
// model.UnsavedID; the catalog assigns the next stable id and writes it
// back to the given showing.  Ids come from a monotonic counter and are
// never reused, so removals cannot make a later id collide with an
// existing slot.  A showing that already has an id is treated as an
// edit of that slot's schedule fields.
//
// The room availability check runs inside the same critical section as
// the insert, so two concurrent Add calls cannot both pass the check
// and schedule overlapping showings.
func (c *ShowingCatalog) Add(s *model.Showing) error {
	if s.ID != model.UnsavedID {
		_, err := c.Edit(s.ID, s.Title, s.StartDateTime, s.Duration, s.AgeRestricted)
		return err
	}

	c.store.mu.Lock()
	defer c.store.mu.Unlock()

	if c.overlapsLocked(s.StartDateTime, s.EndDateTime(), model.UnsavedID) {
		return ErrRoomUnavailable
	}
	s.ID = c.store.nextShowingID
	c.store.nextShowingID++

	stored := s.Clone()
	c.store.showings = append(c.store.showings, stored)
	c.store.showingByID[stored.ID] = stored
	return nil
}

// Edit updates the schedule fields of the showing with the given id:
// title, start, duration and the age flag.  Lookup, overlap check and
// mutation all run inside one critical section, so a sale committed
// concurrently can never be reverted by a stale write-back.  The seat
// map and ticket counter are never touched.  It returns a clone of the
// edited showing, ErrShowingNotFound for an unknown id and
// ErrRoomUnavailable when the new time window would overlap another
// showing.
func (c *ShowingCatalog) Edit(id int, title string, start time.Time, duration time.Duration, ageRestricted bool) (*model.Showing, error) {
	c.store.mu.Lock()
	defer c.store.mu.Unlock()

	current, ok := c.store.showingByID[id]
	if !ok {
		return nil, ErrShowingNotFound
	}
	if c.overlapsLocked(start, start.Add(duration), id) {
		return nil, ErrRoomUnavailable
	}
	current.Title = title
	current.StartDateTime = start
	current.Duration = duration
	current.AgeRestricted = ageRestricted
	return current.Clone(), nil
}

// Remove deletes the showing with the given id from the catalog.  It
// returns ErrShowingNotFound for an unknown id and ErrHasSoldTickets
// when at least one ticket has been sold; such a showing is locked and
// stays in the catalog forever.
func (c *ShowingCatalog) Remove(id int) error {
	c.store.mu.Lock()
	defer c.store.mu.Unlock()

	s, ok := c.store.showingByID[id]
	if !ok {
		return ErrShowingNotFound
	}
	if s.HasSoldTickets() {
		return ErrHasSoldTickets
	}
	delete(c.store.showingByID, id)
	for i, entry := range c.store.showings {
		if entry.ID == id {
			c.store.showings = append(c.store.showings[:i], c.store.showings[i+1:]...)
			break
		}
	}
	return nil
}

// CheckRoomAvailable reports whether the room is free for the half-open
// window [start, start+duration).  The showing with excludeID is
// skipped, which lets an edit keep its own slot; pass model.UnsavedID
// to exclude nothing.
func (c *ShowingCatalog) CheckRoomAvailable(start time.Time, duration time.Duration, excludeID int) bool {
	c.store.mu.RLock()
	defer c.store.mu.RUnlock()
	return !c.overlapsLocked(start, start.Add(duration), excludeID)
}

// overlapsLocked reports whether any showing other than excludeID
// overlaps [start, end).  Callers must hold the store lock.
func (c *ShowingCatalog) overlapsLocked(start, end time.Time, excludeID int) bool {
	for _, existing := range c.store.showings {
		if existing.ID == excludeID {
			continue
		}
		if existing.Overlaps(start, end) {
			return true
		}
	}
	return false
}
