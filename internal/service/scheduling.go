// This file implements the scheduling service behind the add/edit
// showing workflow: validation of the submitted fields, the room
// availability check and the insert-or-update against the catalog.
package service

import (
	"errors"
	"strings"
	"time"

	"cinema-box-office/internal/model"
	"cinema-box-office/internal/monitoring"
	"cinema-box-office/internal/repository"
)

// ErrMissingTitle is returned when the showing title is empty after
// trimming whitespace.
var ErrMissingTitle = errors.New("missing title")

// ErrMissingStartDate is returned when no start date/time was provided.
var ErrMissingStartDate = errors.New("missing start date")

// ErrMissingDuration is returned when the duration is zero or negative.
var ErrMissingDuration = errors.New("missing duration")

// ShowingService owns the showing lifecycle: listing, the upsert
// workflow and removal.  Drafts get a fresh seat map of the configured
// grid size; edits preserve the existing seat map and ticket counter.
type ShowingService struct {
	catalog  *repository.ShowingCatalog
	seatRows int
	seatCols int
}

// NewShowingService constructs a showing service that allocates seat
// maps of rows×cols for new showings.
func NewShowingService(catalog *repository.ShowingCatalog, seatRows, seatCols int) *ShowingService {
	if catalog == nil {
		panic("nil catalog passed to NewShowingService")
	}
	return &ShowingService{catalog: catalog, seatRows: seatRows, seatCols: seatCols}
}

// ListAll returns every showing in insertion order.
func (s *ShowingService) ListAll() []*model.Showing {
	return s.catalog.ListAll()
}

// ListUpcoming returns the showings starting strictly after now.
func (s *ShowingService) ListUpcoming(now time.Time) []*model.Showing {
	return s.catalog.ListUpcoming(now)
}

// Get returns the showing with the given id.
func (s *ShowingService) Get(id int) (*model.Showing, error) {
	return s.catalog.GetByID(id)
}

// Upsert validates the submitted fields and inserts a new showing
// (id == model.UnsavedID) or edits an existing one in place.  Every
// applicable violation is reported, not just the first: the returned
// error joins ErrMissingTitle, ErrMissingStartDate, ErrMissingDuration
// and repository.ErrRoomUnavailable as needed, so callers test with
// errors.Is and can surface all messages at once.  The availability
// check only runs when start and duration are both usable.
//
// On insert the showing receives an empty seat map of the configured
// grid size.  On edit the title, schedule and age flag change in one
// catalog critical section while the seat map and ticket counter are
// preserved untouched.
func (s *ShowingService) Upsert(id int, title string, start time.Time, duration time.Duration, ageRestricted bool) (*model.Showing, error) {
	title = strings.TrimSpace(title)

	var violations []error
	if title == "" {
		violations = append(violations, ErrMissingTitle)
	}
	if start.IsZero() {
		violations = append(violations, ErrMissingStartDate)
	}
	if duration <= 0 {
		violations = append(violations, ErrMissingDuration)
	}
	if !start.IsZero() && duration > 0 && !s.catalog.CheckRoomAvailable(start, duration, id) {
		violations = append(violations, repository.ErrRoomUnavailable)
	}
	if len(violations) > 0 {
		return nil, errors.Join(violations...)
	}

	if id == model.UnsavedID {
		showing := &model.Showing{
			ID:            model.UnsavedID,
			Title:         title,
			StartDateTime: start,
			Duration:      duration,
			AgeRestricted: ageRestricted,
			Seats:         model.NewSeatMap(s.seatRows, s.seatCols),
		}
		// Add re-runs the availability check inside the catalog's
		// critical section, closing the gap between the check above
		// and the insert.
		if err := s.catalog.Add(showing); err != nil {
			return nil, err
		}
		monitoring.SetShowingsScheduled(len(s.catalog.ListAll()))
		return showing, nil
	}

	// Edit re-checks existence and availability inside the catalog's
	// critical section and mutates only the schedule fields, so a sale
	// committed while this request is in flight is never reverted.
	return s.catalog.Edit(id, title, start, duration, ageRestricted)
}

// Remove deletes a showing without sold tickets from the catalog.  The
// calling layer must have confirmed the removal with the user first.
func (s *ShowingService) Remove(id int) error {
	if err := s.catalog.Remove(id); err != nil {
		return err
	}
	monitoring.SetShowingsScheduled(len(s.catalog.ListAll()))
	return nil
}
