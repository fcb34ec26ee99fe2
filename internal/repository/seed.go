package repository

import (
	"time"

	"golang.org/x/crypto/bcrypt"

	"cinema-box-office/internal/model"
)

// Seed fills an empty store with the demo fixture the box office ships
// with: two employee accounts, three showings with partially sold seat
// grids and the historical sales behind them.  Passwords are hashed
// with bcrypt at the given cost.  Seed is only called when no snapshot
// exists yet.
func Seed(store *Store, bcryptCost int) error {
	users := NewUserRepo(store)
	for _, account := range []struct {
		username, password, accessLevel string
	}{
		{"admin", "admin", model.AccessLevelManagement},
		{"sell", "sell", model.AccessLevelSales},
	} {
		hash, err := bcrypt.GenerateFromPassword([]byte(account.password), bcryptCost)
		if err != nil {
			return err
		}
		users.Create(model.User{
			Username:     account.username,
			PasswordHash: string(hash),
			AccessLevel:  account.accessLevel,
		})
	}

	store.mu.Lock()
	defer store.mu.Unlock()

	const rows, cols = 6, 12

	joker := seedShowing(0, "Joker: Folie à Deux",
		time.Date(2024, 11, 15, 14, 0, 0, 0, time.UTC), 2*time.Hour+30*time.Minute,
		rows, cols, []model.Seat{
			{Row: 0, Col: 1}, {Row: 0, Col: 4}, {Row: 1, Col: 2}, {Row: 1, Col: 5},
			{Row: 2, Col: 3}, {Row: 3, Col: 6}, {Row: 3, Col: 8}, {Row: 4, Col: 1},
			{Row: 5, Col: 5}, {Row: 5, Col: 9},
		})
	wildRobot := seedShowing(1, "The Wild Robot",
		time.Date(2024, 11, 12, 18, 0, 0, 0, time.UTC), 2*time.Hour,
		rows, cols, nil)
	beetlejuice := seedShowing(2, "Beetlejuice Beetlejuice",
		time.Date(2024, 10, 10, 16, 30, 0, 0, time.UTC), 3*time.Hour+10*time.Minute,
		rows, cols, nearlySoldOut())

	for _, s := range []*model.Showing{joker, wildRobot, beetlejuice} {
		store.showings = append(store.showings, s)
		store.showingByID[s.ID] = s
	}
	store.nextShowingID = 3

	for _, sale := range []struct {
		at        time.Time
		showingID int
		customer  string
		seats     []model.Seat
	}{
		{time.Date(2024, 10, 15, 14, 0, 0, 0, time.UTC), joker.ID, "John Doe", seatRun(4, 3, 8)},
		{time.Date(2024, 10, 20, 16, 0, 0, 0, time.UTC), joker.ID, "Jane Doe", seatRun(5, 3, 6)},
		{time.Date(2024, 9, 16, 16, 30, 0, 0, time.UTC), beetlejuice.ID, "Jane Smith", seatRun(1, 3, 8)},
		{time.Date(2024, 9, 17, 18, 0, 0, 0, time.UTC), wildRobot.ID, "Alex Johnson", seatRun(2, 1, 8)},
		{time.Date(2024, 9, 18, 20, 0, 0, 0, time.UTC), joker.ID, "Emily Brown", seatRun(3, 1, 5)},
		{time.Date(2024, 9, 19, 14, 30, 0, 0, time.UTC), wildRobot.ID, "Michael Lee", seatRun(4, 2, 8)},
		{time.Date(2024, 9, 20, 15, 0, 0, 0, time.UTC), joker.ID, "Olivia Davis", seatRun(5, 1, 10)},
		{time.Date(2024, 9, 21, 19, 0, 0, 0, time.UTC), beetlejuice.ID, "Sophia Martinez", seatRun(0, 2, 9)},
		{time.Date(2024, 9, 22, 12, 0, 0, 0, time.UTC), joker.ID, "Liam Wilson", backCorner()},
	} {
		selling := &model.Selling{
			ID:          store.nextSellingID,
			DateTime:    sale.at,
			TicketsSold: len(sale.seats),
			ShowingID:   sale.showingID,
			Customer:    sale.customer,
			Seats:       sale.seats,
		}
		store.nextSellingID++
		store.sellings = append(store.sellings, selling)
	}
	return nil
}

// seedShowing builds a showing with the given occupied seats marked and
// the ticket counter matching the occupancy count.
func seedShowing(id int, title string, start time.Time, duration time.Duration, rows, cols int, occupied []model.Seat) *model.Showing {
	seats := model.NewSeatMap(rows, cols)
	for _, seat := range occupied {
		// Fixture coordinates are inside the grid and unique.
		_ = seats.MarkSold(seat.Row, seat.Col)
	}
	return &model.Showing{
		ID:            id,
		Title:         title,
		StartDateTime: start,
		Duration:      duration,
		TicketsSold:   seats.CountOccupied(),
		Seats:         seats,
	}
}

// seatRun returns the seats of one row from firstCol through lastCol
// inclusive.
func seatRun(row, firstCol, lastCol int) []model.Seat {
	var seats []model.Seat
	for col := firstCol; col <= lastCol; col++ {
		seats = append(seats, model.Seat{Row: row, Col: col})
	}
	return seats
}

// backCorner returns the block of seats in the rear right corner sold
// in the last fixture sale.
func backCorner() []model.Seat {
	var seats []model.Seat
	seats = append(seats, seatRun(1, 9, 11)...)
	seats = append(seats, seatRun(2, 9, 11)...)
	seats = append(seats, seatRun(3, 9, 10)...)
	return seats
}

// nearlySoldOut returns the occupied-seat pattern of the almost full
// demo showing: the first three rows completely sold, most of the
// fourth and fifth and one seat in the last.
func nearlySoldOut() []model.Seat {
	var seats []model.Seat
	seats = append(seats, seatRun(0, 0, 11)...)
	seats = append(seats, seatRun(1, 0, 11)...)
	seats = append(seats, seatRun(2, 0, 11)...)
	seats = append(seats, seatRun(3, 0, 9)...)
	seats = append(seats, seatRun(4, 0, 4)...)
	seats = append(seats, model.Seat{Row: 5, Col: 0})
	return seats
}
