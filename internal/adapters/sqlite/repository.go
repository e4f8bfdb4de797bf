package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"tradejournal/internal/domain"
	"tradejournal/internal/ports"

	_ "github.com/mattn/go-sqlite3" // SQLite driver
)

// Repository implements ports.LedgerRepository using SQLite.
type Repository struct {
	db     *sql.DB
	logger ports.Logger
}

// Config holds configuration for the SQLite repository.
type Config struct {
	DBPath string
	Logger ports.Logger
}

// NewRepository creates a new SQLite repository instance.
func NewRepository(cfg Config) (*Repository, error) {
	if cfg.Logger == nil {
		return nil, fmt.Errorf("logger is required for SQLite repository")
	}
	dbPath := cfg.DBPath
	if dbPath == "" {
		dbPath = "./data/tradejournal.db" // Default path
	}

	if err := os.MkdirAll(filepath.Dir(dbPath), 0755); err != nil {
		err = fmt.Errorf("failed to create data directory '%s': %w", filepath.Dir(dbPath), err)
		cfg.Logger.Error(context.Background(), err, "SQLite repository initialization failed")
		return nil, err
	}

	db, err := sql.Open("sqlite3", dbPath+"?_journal_mode=WAL&_busy_timeout=5000")
	if err != nil {
		err = fmt.Errorf("failed to open database at '%s': %w", dbPath, err)
		cfg.Logger.Error(context.Background(), err, "SQLite repository initialization failed")
		return nil, err
	}
	if err := db.Ping(); err != nil {
		db.Close()
		err = fmt.Errorf("failed to ping database at '%s': %w", dbPath, err)
		cfg.Logger.Error(context.Background(), err, "SQLite repository initialization failed")
		return nil, err
	}

	// SQLite handles concurrency internally; the Go driver benefits from a
	// single connection.
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)
	db.SetConnMaxLifetime(time.Hour)

	repo := &Repository{db: db, logger: cfg.Logger}
	if err := repo.initializeSchema(context.Background()); err != nil {
		db.Close()
		err = fmt.Errorf("failed to initialize database schema: %w", err)
		cfg.Logger.Error(context.Background(), err, "SQLite repository initialization failed")
		return nil, err
	}
	cfg.Logger.Info(context.Background(), "SQLite ledger storage ready", map[string]interface{}{"path": dbPath})

	return repo, nil
}

// initializeSchema creates the ledger table if it doesn't exist. The rowid
// AUTOINCREMENT column is the insertion-order key.
func (r *Repository) initializeSchema(ctx context.Context) error {
	const schema = `
	CREATE TABLE IF NOT EXISTS trades (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		trade_date TIMESTAMP NOT NULL,
		asset TEXT NOT NULL,
		contracts INTEGER NOT NULL,
		net_profit REAL NOT NULL
	);`
	if _, err := r.db.ExecContext(ctx, schema); err != nil {
		return fmt.Errorf("failed to execute schema initialization: %w", err)
	}
	return nil
}

// Close closes the database connection.
func (r *Repository) Close() error {
	if r.db != nil {
		r.logger.Info(context.Background(), "Closing SQLite database connection")
		return r.db.Close()
	}
	return nil
}

// Load retrieves all trade records in insertion order. A database that has
// never been written to yields an empty slice. Rows that cannot be mapped to
// valid records are reported as corruption, never dropped.
func (r *Repository) Load(ctx context.Context) ([]domain.TradeRecord, error) {
	const query = `
	SELECT id, trade_date, asset, contracts, net_profit
	FROM trades
	ORDER BY id ASC`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query trade ledger: %w", err)
	}
	defer rows.Close()

	records := make([]domain.TradeRecord, 0)
	for rows.Next() {
		var rec domain.TradeRecord
		if err := rows.Scan(&rec.ID, &rec.Date, &rec.Asset, &rec.Contracts, &rec.NetProfit); err != nil {
			return nil, fmt.Errorf("%w: failed to scan trade row: %v", ports.ErrDataCorruption, err)
		}
		if err := rec.Validate(); err != nil {
			return nil, fmt.Errorf("%w: trade row %d: %v", ports.ErrDataCorruption, rec.ID, err)
		}
		records = append(records, rec)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: error iterating trade rows: %v", ports.ErrDataCorruption, err)
	}
	return records, nil
}

// Save replaces the persisted ledger with the given records inside a single
// transaction: either the whole new ledger is durable or storage is unchanged.
func (r *Repository) Save(ctx context.Context, records []domain.TradeRecord) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("%w: failed to begin transaction: %v", ports.ErrSaveFailed, err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `DELETE FROM trades`); err != nil {
		return fmt.Errorf("%w: failed to clear ledger: %v", ports.ErrSaveFailed, err)
	}

	const insert = `
	INSERT INTO trades (trade_date, asset, contracts, net_profit)
	VALUES (?, ?, ?, ?)`
	for _, rec := range records {
		if _, err := tx.ExecContext(ctx, insert, rec.Date, rec.Asset, rec.Contracts, rec.NetProfit); err != nil {
			return fmt.Errorf("%w: failed to insert trade for %s: %v", ports.ErrSaveFailed, rec.Asset, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("%w: failed to commit ledger save: %v", ports.ErrSaveFailed, err)
	}
	r.logger.Debug(ctx, "Ledger saved", map[string]interface{}{"records": len(records)})
	return nil
}
