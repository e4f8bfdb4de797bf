package domain

import (
	"fmt"
	"sort"
	"time"
)

// TradeRecord represents one already-closed, already-net trade.
// Records are immutable once appended; the ledger is only ever rewritten whole.
type TradeRecord struct {
	ID        int64     // Unique identifier assigned by storage (0 before first save)
	Date      time.Time // Calendar date of execution
	Asset     string    // Instrument symbol (e.g., "WIN", "WDO")
	Contracts int       // Position size, always >= 1
	NetProfit float64   // Signed result of the trade, net of fees
}

// Validate checks the record's structural constraints.
func (t *TradeRecord) Validate() error {
	if t.Contracts < 1 {
		return fmt.Errorf("contracts must be at least 1, got %d", t.Contracts)
	}
	if t.Asset == "" {
		return fmt.Errorf("asset symbol must not be empty")
	}
	if t.Date.IsZero() {
		return fmt.Errorf("trade date must be set")
	}
	return nil
}

// Ledger is the ordered sequence of trade records. Insertion order is the time
// axis for all running metrics: records are never reordered by Date here.
type Ledger []TradeRecord

// Append validates the record and returns a new ledger with it placed after
// all existing records, regardless of its Date. The receiver is not modified.
func (l Ledger) Append(rec TradeRecord) (Ledger, error) {
	if err := rec.Validate(); err != nil {
		return nil, err
	}
	out := make(Ledger, len(l), len(l)+1)
	copy(out, l)
	return append(out, rec), nil
}

// SortedByDate returns a copy of the ledger stably ordered by Date, ties
// keeping their insertion order. Used only when the chronological-ordering
// policy is enabled; the default contract is insertion order.
func (l Ledger) SortedByDate() Ledger {
	out := make(Ledger, len(l))
	copy(out, l)
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Date.Before(out[j].Date)
	})
	return out
}
