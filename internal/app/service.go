package app

import (
	"context"
	"fmt"
	"sync"
	"time"

	"tradejournal/internal/analytics"
	"tradejournal/internal/domain"
	"tradejournal/internal/ports"
)

// Config holds the dependencies and policies of the ledger service.
type Config struct {
	Repo   ports.LedgerRepository
	Logger ports.Logger

	// SortByDate orders the ledger chronologically (stable on ties) before any
	// metric computation. Off by default: the ledger's contract is that
	// insertion order is the time axis, and backfilled entries are NOT moved.
	SortByDate bool

	// Now supplies the clock used to default the year of "DD/MM" dates.
	// Defaults to time.Now.
	Now func() time.Time
}

// LedgerService owns the in-memory trade ledger and is the single entry point
// for loading, appending and reading derived views. Derived columns and
// indicators are recomputed from the raw records on every read; nothing
// derived is cached or persisted.
type LedgerService struct {
	repo       ports.LedgerRepository
	logger     ports.Logger
	sortByDate bool
	now        func() time.Time

	mu     sync.Mutex // Protects ledger
	ledger domain.Ledger
}

// NewLedgerService creates the service after validating its dependencies.
func NewLedgerService(cfg Config) (*LedgerService, error) {
	if cfg.Repo == nil || cfg.Logger == nil {
		return nil, fmt.Errorf("%w: repository and logger are required", ports.ErrConfigurationError)
	}
	now := cfg.Now
	if now == nil {
		now = time.Now
	}
	return &LedgerService{
		repo:       cfg.Repo,
		logger:     cfg.Logger,
		sortByDate: cfg.SortByDate,
		now:        now,
	}, nil
}

// Load replaces the in-memory ledger wholesale with the persisted records.
// Missing storage yields an empty ledger; corrupt storage propagates
// ports.ErrDataCorruption and leaves the previous in-memory ledger intact.
func (s *LedgerService) Load(ctx context.Context) error {
	records, err := s.repo.Load(ctx)
	if err != nil {
		s.logger.Error(ctx, err, "Failed to load trade ledger")
		return err
	}

	s.mu.Lock()
	s.ledger = domain.Ledger(records)
	s.mu.Unlock()

	s.logger.Info(ctx, "Trade ledger loaded", map[string]interface{}{"records": len(records)})
	return nil
}

// AppendTrade parses the user-entered fields, validates the resulting record,
// persists the extended ledger and reloads it. On any failure the ledger is
// unchanged both in memory and in storage. The returned slice is the freshly
// re-annotated ledger.
func (s *LedgerService) AppendTrade(ctx context.Context, dateText, asset string, contracts int, netProfitText string) ([]analytics.AnnotatedTrade, error) {
	date, err := ParseTradeDate(dateText, s.now())
	if err != nil {
		s.logger.Warn(ctx, "Rejected trade: bad date", map[string]interface{}{"input": dateText})
		return nil, err
	}
	netProfit, err := ParseAmount(netProfitText)
	if err != nil {
		s.logger.Warn(ctx, "Rejected trade: bad amount", map[string]interface{}{"input": netProfitText})
		return nil, err
	}

	rec := domain.TradeRecord{
		Date:      date,
		Asset:     asset,
		Contracts: contracts,
		NetProfit: netProfit,
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	extended, err := s.ledger.Append(rec)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ports.ErrInvalidTrade, err)
	}
	if err := s.repo.Save(ctx, extended); err != nil {
		s.logger.Error(ctx, err, "Failed to persist appended trade")
		return nil, err
	}

	// Reload from storage so the in-memory ledger reflects exactly what was
	// durably written (including storage-assigned IDs).
	records, err := s.repo.Load(ctx)
	if err != nil {
		s.logger.Error(ctx, err, "Failed to reload ledger after append")
		return nil, err
	}
	s.ledger = domain.Ledger(records)

	s.logger.Info(ctx, "Trade appended", map[string]interface{}{
		"asset":     rec.Asset,
		"contracts": rec.Contracts,
		"netProfit": rec.NetProfit,
		"records":   len(s.ledger),
	})
	return analytics.Annotate(s.view()), nil
}

// Records returns a copy of the raw ledger in the configured order.
func (s *LedgerService) Records() []domain.TradeRecord {
	s.mu.Lock()
	defer s.mu.Unlock()
	view := s.view()
	out := make([]domain.TradeRecord, len(view))
	copy(out, view)
	return out
}

// AnnotatedLedger recomputes and returns the annotated ledger.
func (s *LedgerService) AnnotatedLedger() []analytics.AnnotatedTrade {
	s.mu.Lock()
	defer s.mu.Unlock()
	return analytics.Annotate(s.view())
}

// Indicators recomputes the aggregate indicator set; nil for an empty ledger.
func (s *LedgerService) Indicators() *analytics.IndicatorSet {
	s.mu.Lock()
	defer s.mu.Unlock()
	return analytics.Compute(s.view())
}

// Drawdowns enumerates drawdown events over the current equity curve.
func (s *LedgerService) Drawdowns() []analytics.DrawdownEvent {
	s.mu.Lock()
	defer s.mu.Unlock()
	return analytics.DrawdownEvents(analytics.Annotate(s.view()))
}

// view applies the ordering policy. Callers must hold s.mu.
func (s *LedgerService) view() domain.Ledger {
	if s.sortByDate {
		return s.ledger.SortedByDate()
	}
	return s.ledger
}
