package repository

import "cinema-box-office/internal/model"

// SalesLedger is the append-only record of completed sales.  Sellings
// enter the ledger exclusively through Store.CommitSale, which assigns
// sequential ids; this view only reads.
type SalesLedger struct {
	store *Store
}

// NewSalesLedger constructs a ledger view over the given store.
func NewSalesLedger(store *Store) *SalesLedger {
	return &SalesLedger{store: store}
}

// ListAll returns clones of every selling in append order.
func (l *SalesLedger) ListAll() []*model.Selling {
	l.store.mu.RLock()
	defer l.store.mu.RUnlock()

	out := make([]*model.Selling, 0, len(l.store.sellings))
	for _, s := range l.store.sellings {
		out = append(out, s.Clone())
	}
	return out
}

// ListByShowing returns clones of the sellings recorded for one
// showing, in append order.
func (l *SalesLedger) ListByShowing(showingID int) []*model.Selling {
	l.store.mu.RLock()
	defer l.store.mu.RUnlock()

	var out []*model.Selling
	for _, s := range l.store.sellings {
		if s.ShowingID == showingID {
			out = append(out, s.Clone())
		}
	}
	return out
}
