package http

import (
	"context"

	"adcrm/internal/ledger"
	"adcrm/internal/services"
)

// IngestServiceInterface defines the contract the ingest handler depends on.
// Kept minimal so tests can substitute a mock.
type IngestServiceInterface interface {
	Ingest(ctx context.Context, req services.IngestRequest) (*services.IngestSummary, error)
}

// LedgerServiceInterface defines the contract the ledger handler depends on.
type LedgerServiceInterface interface {
	Query(ctx context.Context, f ledger.Filter) (*services.QueryResult, error)
	Dates(ctx context.Context) ([]string, error)
	Stats(ctx context.Context) (ledger.Stats, error)
}
