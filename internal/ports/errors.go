package ports

import "errors"

// Standard application-level errors.
// Adapters should wrap underlying infrastructure errors with these standard errors.
var (
	// General Errors
	ErrNotFound           = errors.New("resource not found")
	ErrConfigurationError = errors.New("invalid or missing configuration")

	// Append Boundary Errors (input rejected, ledger unchanged)
	ErrInvalidDate   = errors.New("malformed or impossible trade date")
	ErrInvalidAmount = errors.New("malformed net profit amount")
	ErrInvalidTrade  = errors.New("trade record violates ledger constraints")

	// Storage Errors
	ErrDataCorruption = errors.New("persisted ledger data cannot be parsed")
	ErrSaveFailed     = errors.New("ledger save failed")
)
