package model

import "errors"

// ErrSeatOutOfRange is returned when a seat coordinate falls outside
// the grid of a SeatMap.  Coordinates are zero-based.
var ErrSeatOutOfRange = errors.New("seat out of range")

// ErrSeatAlreadySold is returned when a seat that is already occupied
// is marked as sold a second time.  Double sale is a correctness
// violation, so marking an occupied seat is an error rather than a
// no-op.
var ErrSeatAlreadySold = errors.New("seat already sold")

// Seat identifies a single seat by its zero-based grid position.
// Presentation layers may render 1-based labels; the core always
// works with zero-based coordinates.
//
// Fields:
//  Row – zero-based row index.
//  Col – zero-based column index.
type Seat struct {
	Row int `json:"row"` // zero-based row index
	Col int `json:"col"` // zero-based column index
}

// SeatMap is a fixed-size grid of seat-occupied flags belonging to one
// showing.  The grid is owned exclusively by the core; collaborators
// only read occupancy or request a Snapshot.  A seat is occupied iff it
// has been sold in some committed selling for the owning showing.
type SeatMap struct {
	rows     int
	cols     int
	occupied [][]bool
}

// NewSeatMap allocates an empty seat map with the given dimensions.
// Dimensions smaller than one row or one column are clamped to one so
// that a seat map always has at least a single seat.
func NewSeatMap(rows, cols int) *SeatMap {
	if rows < 1 {
		rows = 1
	}
	if cols < 1 {
		cols = 1
	}
	grid := make([][]bool, rows)
	for r := range grid {
		grid[r] = make([]bool, cols)
	}
	return &SeatMap{rows: rows, cols: cols, occupied: grid}
}

// Rows returns the number of seat rows in the grid.
func (m *SeatMap) Rows() int { return m.rows }

// Cols returns the number of seats per row.
func (m *SeatMap) Cols() int { return m.cols }

// IsOccupied reports whether the seat at (row, col) has been sold.
// It returns ErrSeatOutOfRange when the coordinate is outside the grid.
func (m *SeatMap) IsOccupied(row, col int) (bool, error) {
	if row < 0 || row >= m.rows || col < 0 || col >= m.cols {
		return false, ErrSeatOutOfRange
	}
	return m.occupied[row][col], nil
}

// MarkSold flags the seat at (row, col) as occupied.  It returns
// ErrSeatOutOfRange for coordinates outside the grid and
// ErrSeatAlreadySold when the seat is already occupied.  Callers that
// mark batches of seats must verify the whole batch up front so that a
// failure leaves no partial mutation behind.
func (m *SeatMap) MarkSold(row, col int) error {
	occupied, err := m.IsOccupied(row, col)
	if err != nil {
		return err
	}
	if occupied {
		return ErrSeatAlreadySold
	}
	m.occupied[row][col] = true
	return nil
}

// CountOccupied returns the number of occupied seats in the grid.
func (m *SeatMap) CountOccupied() int {
	n := 0
	for _, row := range m.occupied {
		for _, taken := range row {
			if taken {
				n++
			}
		}
	}
	return n
}

// Snapshot returns a row-major copy of the occupancy grid.  Mutating
// the returned slices does not affect the seat map.
func (m *SeatMap) Snapshot() [][]bool {
	grid := make([][]bool, m.rows)
	for r, row := range m.occupied {
		grid[r] = make([]bool, m.cols)
		copy(grid[r], row)
	}
	return grid
}

// Clone returns an independent deep copy of the seat map.
func (m *SeatMap) Clone() *SeatMap {
	return &SeatMap{rows: m.rows, cols: m.cols, occupied: m.Snapshot()}
}
