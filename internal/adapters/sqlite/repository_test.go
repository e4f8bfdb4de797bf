package sqlite

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tradejournal/internal/domain"
	"tradejournal/internal/ports"
)

// mockLogger implements ports.Logger for testing.
type mockLogger struct{}

func (m *mockLogger) Debug(ctx context.Context, msg string, fields ...map[string]interface{}) {}
func (m *mockLogger) Info(ctx context.Context, msg string, fields ...map[string]interface{})  {}
func (m *mockLogger) Warn(ctx context.Context, msg string, fields ...map[string]interface{})  {}
func (m *mockLogger) Error(ctx context.Context, err error, msg string, fields ...map[string]interface{}) {
}

// setupTestDB creates a temporary database for testing.
func setupTestDB(t *testing.T) (*Repository, func()) {
	t.Helper()

	tmpDir, err := os.MkdirTemp("", "tradejournal-test-*")
	require.NoError(t, err)

	repo, err := NewRepository(Config{
		DBPath: filepath.Join(tmpDir, "test.db"),
		Logger: &mockLogger{},
	})
	require.NoError(t, err)

	cleanup := func() {
		repo.Close()
		os.RemoveAll(tmpDir)
	}
	return repo, cleanup
}

func sampleRecords() []domain.TradeRecord {
	day := func(d int) time.Time { return time.Date(2024, 5, d, 0, 0, 0, 0, time.UTC) }
	return []domain.TradeRecord{
		{Date: day(5), Asset: domain.AssetWIN, Contracts: 2, NetProfit: 12.50},
		{Date: day(6), Asset: domain.AssetWDO, Contracts: 1, NetProfit: -300.40},
		// Backfilled earlier date stays in insertion position.
		{Date: day(1), Asset: domain.AssetWIN, Contracts: 3, NetProfit: 85.00},
	}
}

func TestLoadEmptyDatabase(t *testing.T) {
	repo, cleanup := setupTestDB(t)
	defer cleanup()

	records, err := repo.Load(context.Background())
	require.NoError(t, err, "missing data must not be an error")
	assert.Empty(t, records)
}

func TestSaveAndLoadRoundTrip(t *testing.T) {
	repo, cleanup := setupTestDB(t)
	defer cleanup()
	ctx := context.Background()

	require.NoError(t, repo.Save(ctx, sampleRecords()))

	loaded, err := repo.Load(ctx)
	require.NoError(t, err)
	require.Len(t, loaded, 3)

	for i, want := range sampleRecords() {
		got := loaded[i]
		assert.True(t, got.ID > 0, "record %d: storage must assign an ID", i)
		assert.True(t, got.Date.Equal(want.Date), "record %d: date mismatch", i)
		assert.Equal(t, want.Asset, got.Asset, "record %d", i)
		assert.Equal(t, want.Contracts, got.Contracts, "record %d", i)
		assert.InDelta(t, want.NetProfit, got.NetProfit, 1e-9, "record %d: net profit must survive round trip", i)
	}

	// Insertion order, not date order.
	assert.True(t, loaded[2].Date.Before(loaded[0].Date))
	assert.True(t, loaded[0].ID < loaded[1].ID && loaded[1].ID < loaded[2].ID)
}

func TestSaveReplacesWholeLedger(t *testing.T) {
	repo, cleanup := setupTestDB(t)
	defer cleanup()
	ctx := context.Background()

	require.NoError(t, repo.Save(ctx, sampleRecords()))
	require.NoError(t, repo.Save(ctx, sampleRecords()[:1]))

	loaded, err := repo.Load(ctx)
	require.NoError(t, err)
	require.Len(t, loaded, 1)
	assert.Equal(t, domain.AssetWIN, loaded[0].Asset)
}

func TestLoadDetectsCorruptRows(t *testing.T) {
	repo, cleanup := setupTestDB(t)
	defer cleanup()
	ctx := context.Background()

	require.NoError(t, repo.Save(ctx, sampleRecords()))

	// Simulate an external writer breaking the contracts constraint.
	_, err := repo.db.ExecContext(ctx,
		`INSERT INTO trades (trade_date, asset, contracts, net_profit) VALUES (?, ?, ?, ?)`,
		time.Date(2024, 5, 7, 0, 0, 0, 0, time.UTC), domain.AssetWIN, 0, 10.0)
	require.NoError(t, err)

	_, err = repo.Load(ctx)
	require.Error(t, err)
	assert.True(t, errors.Is(err, ports.ErrDataCorruption), "expected ErrDataCorruption, got %v", err)
}
