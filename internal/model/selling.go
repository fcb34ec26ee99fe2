package model

import "time"

// Selling is the immutable record of one completed ticket sale.  It is
// a sales-time snapshot of which seats were taken; the referenced
// showing may continue to change state (further sales, edits) after the
// record is created.  Sellings are owned by the sales ledger, which
// assigns the id at append time; no other field changes after creation.
//
// Fields:
//  ID          – ledger-unique identifier, assigned sequentially.
//  DateTime    – when the transaction was completed.
//  TicketsSold – number of tickets in this transaction; always equals
//                len(Seats).
//  ShowingID   – stable id of the showing the tickets belong to.
//  Customer    – non-empty name of the buying customer.
//  Seats       – ordered list of the seats sold in this transaction.
type Selling struct {
	ID          int       `json:"id"`
	DateTime    time.Time `json:"date_time"`
	TicketsSold int       `json:"tickets_sold"`
	ShowingID   int       `json:"showing_id"`
	Customer    string    `json:"customer"`
	Seats       []Seat    `json:"seats"`
}

// Clone returns an independent copy of the selling with its own seats
// slice.
func (s *Selling) Clone() *Selling {
	dup := *s
	dup.Seats = make([]Seat, len(s.Seats))
	copy(dup.Seats, s.Seats)
	return &dup
}
