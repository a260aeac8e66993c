package services

import (
	"context"
	"log/slog"

	"adcrm/internal/ledger"
	"adcrm/pkg/contracts/domain"
)

// QueryResult bundles a filtered ledger page with its on-demand aggregates.
type QueryResult struct {
	Rows       []domain.CampaignRecord `json:"rows"`
	Count      int                     `json:"count"`
	Aggregates domain.LedgerAggregates `json:"aggregates"`
}

// LedgerService exposes the read side of the ledger to the transport layer.
// Scope enforcement stays with the caller: whatever owner string arrives is
// applied as a filter, never interpreted.
type LedgerService struct {
	store  *ledger.Store
	logger *slog.Logger
}

// NewLedgerService creates a ledger service over the given store.
func NewLedgerService(store *ledger.Store, logger *slog.Logger) *LedgerService {
	if logger == nil {
		logger = slog.Default()
	}
	return &LedgerService{
		store:  store,
		logger: logger.With(slog.String("component", "ledger_service")),
	}
}

// Query returns the records matching the filter plus dashboard aggregates.
func (s *LedgerService) Query(ctx context.Context, f ledger.Filter) (*QueryResult, error) {
	rows, err := s.store.Query(ctx, f)
	if err != nil {
		return nil, err
	}
	return &QueryResult{
		Rows:       rows,
		Count:      len(rows),
		Aggregates: ledger.Aggregate(rows),
	}, nil
}

// Dates returns every report date in the ledger, newest first.
func (s *LedgerService) Dates(ctx context.Context) ([]string, error) {
	return s.store.DistinctDates(ctx)
}

// Stats returns whole-store counts for the admin surface.
func (s *LedgerService) Stats(ctx context.Context) (ledger.Stats, error) {
	return s.store.Stats(ctx)
}
