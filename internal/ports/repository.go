package ports

import (
	"context"

	"tradejournal/internal/domain"
)

// LedgerRepository defines the interface for durable trade ledger storage.
//
// Load returns the persisted records in insertion order. Missing storage is not
// an error: a repository that has never been written to returns an empty slice.
// Storage that exists but cannot be parsed into valid records is reported as an
// error wrapping ErrDataCorruption; records are never silently dropped or
// repaired.
//
// Save replaces the whole persisted ledger with the given records. Either every
// record is durable after Save returns nil, or storage is unchanged. Concurrent
// external writers are not coordinated: the last successful Save wins.
type LedgerRepository interface {
	Load(ctx context.Context) ([]domain.TradeRecord, error)
	Save(ctx context.Context, records []domain.TradeRecord) error
	Close() error
}
