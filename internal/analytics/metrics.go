package analytics

import "tradejournal/internal/domain"

// AnnotatedTrade is a trade record plus the running columns derived from the
// ledger scan. Derived values are recomputed from the raw records on every
// read; they are never a source of truth and are never persisted.
type AnnotatedTrade struct {
	domain.TradeRecord

	CumulativeEquity float64 // Running sum of NetProfit up to and including this record
	PeakEquity       float64 // Running maximum of CumulativeEquity so far
	DrawdownPct      float64 // Signed percent distance below the running peak, always <= 0
	PercentReturn    float64 // NetProfit as percent of equity immediately before this trade
}

// Annotate derives the running metric columns for every record in ledger
// order. It is pure and total: an empty ledger yields an empty result, and
// applying it twice to the same raw records yields identical output.
func Annotate(records []domain.TradeRecord) []AnnotatedTrade {
	annotated := make([]AnnotatedTrade, 0, len(records))

	var equity, peak float64
	for _, rec := range records {
		prior := equity
		equity += rec.NetProfit
		if equity > peak {
			peak = equity
		}

		var drawdownPct float64
		if peak != 0 {
			drawdownPct = (equity - peak) / peak * 100
		}
		var percentReturn float64
		if prior != 0 {
			percentReturn = rec.NetProfit / prior * 100
		}

		annotated = append(annotated, AnnotatedTrade{
			TradeRecord:      rec,
			CumulativeEquity: equity,
			PeakEquity:       peak,
			DrawdownPct:      drawdownPct,
			PercentReturn:    percentReturn,
		})
	}
	return annotated
}

// DrawdownEvent describes one contiguous excursion of equity below its
// running peak. The event starts at the first record whose equity falls below
// the peak, its trough is the deepest point within the excursion, and it
// recovers at the first record that sets a new equity peak. An event still
// open at the end of the ledger has RecoveryIndex == -1.
type DrawdownEvent struct {
	StartIndex    int     // Ledger index where equity first dropped below the peak
	TroughIndex   int     // Ledger index of the deepest equity within the event
	RecoveryIndex int     // Ledger index where a new peak was set, -1 if not recovered
	PeakEquity    float64 // Equity peak the event fell from
	TroughEquity  float64 // Equity at the trough
	DepthPct      float64 // Most negative DrawdownPct reached, <= 0
}

// DrawdownEvents enumerates drawdown excursions over an annotated ledger.
func DrawdownEvents(annotated []AnnotatedTrade) []DrawdownEvent {
	events := make([]DrawdownEvent, 0)

	var current *DrawdownEvent
	for i, at := range annotated {
		if at.DrawdownPct < 0 {
			if current == nil {
				current = &DrawdownEvent{
					StartIndex:    i,
					TroughIndex:   i,
					RecoveryIndex: -1,
					PeakEquity:    at.PeakEquity,
					TroughEquity:  at.CumulativeEquity,
					DepthPct:      at.DrawdownPct,
				}
			} else if at.DrawdownPct < current.DepthPct {
				current.TroughIndex = i
				current.TroughEquity = at.CumulativeEquity
				current.DepthPct = at.DrawdownPct
			}
			continue
		}
		// Equity is back at (or above) the old peak: the excursion recovered here.
		if current != nil {
			current.RecoveryIndex = i
			events = append(events, *current)
			current = nil
		}
	}
	if current != nil {
		events = append(events, *current)
	}
	return events
}
