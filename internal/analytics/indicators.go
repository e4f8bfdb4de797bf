package analytics

import (
	"math"

	"gonum.org/v1/gonum/stat"

	"tradejournal/internal/domain"
)

// Ratio is an aggregate statistic whose denominator can degenerate. Valid is
// false when the statistic is undefined for the given ledger (for example the
// profit factor of a ledger with no losses); an undefined ratio is a normal
// outcome, distinct from zero, and must be rendered as such downstream.
type Ratio struct {
	Float64 float64
	Valid   bool
}

func defined(v float64) Ratio { return Ratio{Float64: v, Valid: true} }

// IndicatorSet holds the aggregate statistics computed over the whole ledger.
// It is recomputed fresh on every read and never persisted.
type IndicatorSet struct {
	TotalTrades     int
	WinningTrades   int // NetProfit > 0
	LosingTrades    int // NetProfit < 0; break-even trades count in neither bucket
	BreakEvenTrades int

	HitRatePct float64 // Winning trades as percent of all trades
	AvgReturn  float64 // Mean NetProfit per trade
	StdDev     float64 // Sample standard deviation of NetProfit, 0 when TotalTrades <= 1
	Expectancy float64 // Probability-weighted average outcome per trade

	GrossProfit    float64 // Sum of winning NetProfit values
	GrossLoss      float64 // Sum of losing NetProfit values, <= 0
	NetProfit      float64 // Sum over all trades
	MaxDrawdownPct float64 // Deepest DrawdownPct over the equity curve, <= 0

	ProfitFactor Ratio // GrossProfit / |GrossLoss|, undefined when GrossLoss == 0
	SharpeLike   Ratio // AvgReturn / StdDev, undefined when StdDev == 0
	SortinoLike  Ratio // AvgReturn / stddev of losses, undefined below 2 losses

	MaxConsecutiveWins   int
	MaxConsecutiveLosses int

	ByAsset map[string]AssetTally // Per-symbol trade count and net result
}

// AssetTally aggregates the trades of a single instrument.
type AssetTally struct {
	Trades    int
	NetProfit float64
}

// Compute derives the aggregate indicator set from the raw ledger. It is pure
// and returns nil for an empty ledger. Degenerate denominators produce
// undefined ratios, never errors and never numeric sentinels.
func Compute(records []domain.TradeRecord) *IndicatorSet {
	if len(records) == 0 {
		return nil
	}

	ind := &IndicatorSet{
		TotalTrades: len(records),
		ByAsset:     make(map[string]AssetTally),
	}

	profits := make([]float64, 0, len(records))
	losses := make([]float64, 0)
	var consecWins, consecLosses int

	for _, rec := range records {
		profits = append(profits, rec.NetProfit)
		ind.NetProfit += rec.NetProfit

		tally := ind.ByAsset[rec.Asset]
		tally.Trades++
		tally.NetProfit += rec.NetProfit
		ind.ByAsset[rec.Asset] = tally

		switch {
		case rec.NetProfit > 0:
			ind.WinningTrades++
			ind.GrossProfit += rec.NetProfit
			consecWins++
			consecLosses = 0
		case rec.NetProfit < 0:
			ind.LosingTrades++
			ind.GrossLoss += rec.NetProfit
			losses = append(losses, rec.NetProfit)
			consecLosses++
			consecWins = 0
		default:
			// Break-even trades count toward the total but end both streaks.
			ind.BreakEvenTrades++
			consecWins = 0
			consecLosses = 0
		}
		if consecWins > ind.MaxConsecutiveWins {
			ind.MaxConsecutiveWins = consecWins
		}
		if consecLosses > ind.MaxConsecutiveLosses {
			ind.MaxConsecutiveLosses = consecLosses
		}
	}

	total := float64(ind.TotalTrades)
	ind.HitRatePct = float64(ind.WinningTrades) / total * 100

	mean, std := stat.MeanStdDev(profits, nil)
	ind.AvgReturn = mean
	if ind.TotalTrades > 1 && !math.IsNaN(std) {
		ind.StdDev = std
	}

	// Each bucket's mean is multiplied by its weight; an empty bucket
	// contributes exactly zero rather than an undefined mean times zero.
	if ind.WinningTrades > 0 {
		avgWin := ind.GrossProfit / float64(ind.WinningTrades)
		ind.Expectancy += avgWin * (float64(ind.WinningTrades) / total)
	}
	if ind.LosingTrades > 0 {
		avgLoss := ind.GrossLoss / float64(ind.LosingTrades)
		ind.Expectancy += avgLoss * (float64(ind.LosingTrades) / total)
	}

	if ind.GrossLoss != 0 {
		ind.ProfitFactor = defined(ind.GrossProfit / math.Abs(ind.GrossLoss))
	}
	if ind.StdDev != 0 {
		ind.SharpeLike = defined(ind.AvgReturn / ind.StdDev)
	}
	if len(losses) >= 2 {
		if downsideStd := stat.StdDev(losses, nil); downsideStd != 0 && !math.IsNaN(downsideStd) {
			ind.SortinoLike = defined(ind.AvgReturn / downsideStd)
		}
	}

	for _, at := range Annotate(records) {
		if at.DrawdownPct < ind.MaxDrawdownPct {
			ind.MaxDrawdownPct = at.DrawdownPct
		}
	}

	return ind
}
