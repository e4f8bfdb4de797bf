package analytics

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tradejournal/internal/domain"
)

func TestComputeEmptyLedger(t *testing.T) {
	assert.Nil(t, Compute(nil))
	assert.Nil(t, Compute([]domain.TradeRecord{}))
}

func TestComputeMixedLedger(t *testing.T) {
	ind := Compute(testRecords(100, -40, 60))
	require.NotNil(t, ind)

	assert.Equal(t, 3, ind.TotalTrades)
	assert.Equal(t, 2, ind.WinningTrades)
	assert.Equal(t, 1, ind.LosingTrades)
	assert.InDelta(t, 66.6667, ind.HitRatePct, 0.001)
	assert.InDelta(t, 40.0, ind.AvgReturn, 1e-9)
	assert.InDelta(t, 40.0, ind.Expectancy, 1e-9)
	assert.InDelta(t, 160.0, ind.GrossProfit, 1e-9)
	assert.InDelta(t, -40.0, ind.GrossLoss, 1e-9)
	assert.InDelta(t, 120.0, ind.NetProfit, 1e-9)
	assert.InDelta(t, -40.0, ind.MaxDrawdownPct, 1e-9)

	// Sample stddev of {100, -40, 60} is sqrt(5200).
	assert.InDelta(t, math.Sqrt(5200), ind.StdDev, 1e-9)

	require.True(t, ind.ProfitFactor.Valid)
	assert.InDelta(t, 4.0, ind.ProfitFactor.Float64, 1e-9)
	require.True(t, ind.SharpeLike.Valid)
	assert.InDelta(t, 40.0/math.Sqrt(5200), ind.SharpeLike.Float64, 1e-9)

	// A single loss leaves the downside deviation undefined.
	assert.False(t, ind.SortinoLike.Valid)
}

func TestComputeNoLosses(t *testing.T) {
	ind := Compute(testRecords(50, 30))
	require.NotNil(t, ind)

	assert.Equal(t, 100.0, ind.HitRatePct)
	assert.False(t, ind.ProfitFactor.Valid, "profit factor must be undefined without losses")
	assert.False(t, ind.SortinoLike.Valid)
	assert.InDelta(t, 40.0, ind.Expectancy, 1e-9)
}

func TestComputeSingleTrade(t *testing.T) {
	ind := Compute(testRecords(-20))
	require.NotNil(t, ind)

	assert.Equal(t, 1, ind.TotalTrades)
	assert.Equal(t, 0.0, ind.StdDev)
	assert.False(t, ind.SharpeLike.Valid, "sharpe must be undefined when stddev is 0")
	assert.InDelta(t, -20.0, ind.Expectancy, 1e-9)
	assert.Equal(t, 0.0, ind.HitRatePct)
}

func TestComputeBreakEvenTrades(t *testing.T) {
	ind := Compute(testRecords(10, 0, -10))
	require.NotNil(t, ind)

	assert.Equal(t, 3, ind.TotalTrades)
	assert.Equal(t, 1, ind.WinningTrades)
	assert.Equal(t, 1, ind.LosingTrades)
	assert.Equal(t, 1, ind.BreakEvenTrades)
	assert.InDelta(t, 33.3333, ind.HitRatePct, 0.001)

	require.True(t, ind.ProfitFactor.Valid)
	assert.InDelta(t, 1.0, ind.ProfitFactor.Float64, 1e-9)

	// Expectancy: 10*(1/3) + (-10)*(1/3); the break-even trade only dilutes.
	assert.InDelta(t, 0.0, ind.Expectancy, 1e-9)
}

func TestComputeIdenticalLosses(t *testing.T) {
	// Two losses with zero spread: downside deviation is 0, sortino undefined.
	ind := Compute(testRecords(30, -10, -10))
	require.NotNil(t, ind)
	assert.False(t, ind.SortinoLike.Valid)
}

func TestComputeSortino(t *testing.T) {
	ind := Compute(testRecords(100, -40, -10, 30))
	require.NotNil(t, ind)

	require.True(t, ind.SortinoLike.Valid)
	// Sample stddev of {-40, -10} is sqrt(450); mean return is 20.
	assert.InDelta(t, 20.0/math.Sqrt(450), ind.SortinoLike.Float64, 1e-9)
}

func TestComputeStreaksAndAssets(t *testing.T) {
	records := testRecords(5, 5, -3, -3, -3, 2)
	records[1].Asset = domain.AssetWDO
	records[4].Asset = domain.AssetWDO

	ind := Compute(records)
	require.NotNil(t, ind)

	assert.Equal(t, 2, ind.MaxConsecutiveWins)
	assert.Equal(t, 3, ind.MaxConsecutiveLosses)

	require.Len(t, ind.ByAsset, 2)
	assert.Equal(t, 4, ind.ByAsset[domain.AssetWIN].Trades)
	assert.InDelta(t, 1.0, ind.ByAsset[domain.AssetWIN].NetProfit, 1e-9)
	assert.Equal(t, 2, ind.ByAsset[domain.AssetWDO].Trades)
	assert.InDelta(t, 2.0, ind.ByAsset[domain.AssetWDO].NetProfit, 1e-9)
}
