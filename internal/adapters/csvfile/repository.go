package csvfile

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/gocarina/gocsv"

	"tradejournal/internal/domain"
	"tradejournal/internal/ports"
)

const dateLayout = "2006-01-02"

// tradeDate serializes a calendar date as YYYY-MM-DD in the CSV file.
type tradeDate struct {
	time.Time
}

func (d *tradeDate) MarshalCSV() (string, error) {
	return d.Format(dateLayout), nil
}

func (d *tradeDate) UnmarshalCSV(s string) error {
	t, err := time.Parse(dateLayout, s)
	if err != nil {
		return err
	}
	d.Time = t
	return nil
}

// tradeRow is the CSV representation of a trade record.
type tradeRow struct {
	ID        int64     `csv:"id"`
	Date      tradeDate `csv:"date"`
	Asset     string    `csv:"asset"`
	Contracts int       `csv:"contracts"`
	NetProfit float64   `csv:"net_profit"`
}

// Repository implements ports.LedgerRepository on a single CSV file.
type Repository struct {
	path   string
	logger ports.Logger
}

// Config holds configuration for the CSV repository.
type Config struct {
	Path   string
	Logger ports.Logger
}

// NewRepository creates a CSV-file ledger repository. The file is created
// lazily on first Save.
func NewRepository(cfg Config) (*Repository, error) {
	if cfg.Logger == nil {
		return nil, fmt.Errorf("logger is required for CSV repository")
	}
	path := cfg.Path
	if path == "" {
		path = "./data/tradejournal.csv" // Default path
	}
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return nil, fmt.Errorf("failed to create data directory '%s': %w", filepath.Dir(path), err)
	}
	return &Repository{path: path, logger: cfg.Logger}, nil
}

// Close is a no-op; the file is not held open between operations.
func (r *Repository) Close() error { return nil }

// Load reads all records in file order. A missing or empty file yields an
// empty ledger; a file that cannot be parsed into valid records is corruption.
func (r *Repository) Load(ctx context.Context) ([]domain.TradeRecord, error) {
	f, err := os.Open(r.path)
	if err != nil {
		if os.IsNotExist(err) {
			return []domain.TradeRecord{}, nil
		}
		return nil, fmt.Errorf("failed to open ledger file '%s': %w", r.path, err)
	}
	defer f.Close()

	if info, err := f.Stat(); err == nil && info.Size() == 0 {
		return []domain.TradeRecord{}, nil
	}

	var rows []*tradeRow
	if err := gocsv.UnmarshalFile(f, &rows); err != nil {
		return nil, fmt.Errorf("%w: failed to parse ledger file '%s': %v", ports.ErrDataCorruption, r.path, err)
	}

	records := make([]domain.TradeRecord, 0, len(rows))
	for i, row := range rows {
		rec := domain.TradeRecord{
			ID:        row.ID,
			Date:      row.Date.Time,
			Asset:     row.Asset,
			Contracts: row.Contracts,
			NetProfit: row.NetProfit,
		}
		if err := rec.Validate(); err != nil {
			return nil, fmt.Errorf("%w: ledger file row %d: %v", ports.ErrDataCorruption, i+1, err)
		}
		records = append(records, rec)
	}
	return records, nil
}

// Save writes the whole ledger to a temporary file and renames it over the
// target, so a crashed or failed save never leaves a half-written ledger.
func (r *Repository) Save(ctx context.Context, records []domain.TradeRecord) error {
	rows := make([]*tradeRow, 0, len(records))
	for i, rec := range records {
		id := rec.ID
		if id == 0 {
			id = int64(i + 1)
		}
		rows = append(rows, &tradeRow{
			ID:        id,
			Date:      tradeDate{rec.Date},
			Asset:     rec.Asset,
			Contracts: rec.Contracts,
			NetProfit: rec.NetProfit,
		})
	}

	tmp, err := os.CreateTemp(filepath.Dir(r.path), ".ledger-*.csv")
	if err != nil {
		return fmt.Errorf("%w: failed to create temp file: %v", ports.ErrSaveFailed, err)
	}
	tmpPath := tmp.Name()
	defer os.Remove(tmpPath) // No-op after a successful rename

	if err := gocsv.MarshalFile(&rows, tmp); err != nil {
		tmp.Close()
		return fmt.Errorf("%w: failed to write ledger file: %v", ports.ErrSaveFailed, err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("%w: failed to flush ledger file: %v", ports.ErrSaveFailed, err)
	}
	if err := os.Rename(tmpPath, r.path); err != nil {
		return fmt.Errorf("%w: failed to replace ledger file: %v", ports.ErrSaveFailed, err)
	}

	r.logger.Debug(ctx, "Ledger saved", map[string]interface{}{"path": r.path, "records": len(rows)})
	return nil
}
