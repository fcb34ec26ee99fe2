// Package queue defines the message payloads exchanged over the
// message broker and the background consumer that processes them.
package queue

// TicketsSoldEvent is published after a sale has been committed to the
// ledger.  It carries enough information for downstream consumers to
// log or notify without querying the box office.
type TicketsSoldEvent struct {
	SellingID   int      `json:"selling_id"`
	ShowingID   int      `json:"showing_id"`
	Title       string   `json:"title"`
	Customer    string   `json:"customer"`
	SeatLabels  []string `json:"seats"`
	TicketsSold int      `json:"tickets_sold"`
	SoldAt      string   `json:"sold_at"`
}
