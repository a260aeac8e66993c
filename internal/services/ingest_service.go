package services

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	apperrors "adcrm/internal/errors"
	"adcrm/internal/ingest"
	"adcrm/internal/ledger"
	"adcrm/pkg/contracts/domain"
)

// ReportDateLayout is the canonical report date format.
const ReportDateLayout = "2006-01-02"

// IngestRequest names the source files of one ingestion batch and the report
// date the batch represents. ExtraPath is optional. HeaderOffset is the
// operator-supplied header row for plainly shaped exports.
type IngestRequest struct {
	DeliveryPath string `json:"delivery_file" validate:"required"`
	PanelPath    string `json:"panel_file" validate:"required"`
	ExtraPath    string `json:"extra_file,omitempty"`
	ReportDate   string `json:"report_date" validate:"required,datetime=2006-01-02"`
	HeaderOffset int    `json:"header_offset,omitempty" validate:"gte=0"`
}

// IngestSummary reports what one batch contributed to the ledger.
type IngestSummary struct {
	BatchID            string  `json:"batch_id"`
	ReportDate         string  `json:"report_date"`
	RowCount           int     `json:"row_count"`
	TotalSpend         float64 `json:"total_spend"`
	TotalRegistrations float64 `json:"total_registrations"`
	TotalDepositors    float64 `json:"total_depositors"`
	TotalDepositSum    float64 `json:"total_deposit_sum"`
}

// IngestService runs the reconciliation pipeline end to end for one batch:
// read, transform, reconcile, compute metrics, persist.
type IngestService struct {
	store  *ledger.Store
	logger *slog.Logger
}

// NewIngestService creates an ingest service over the given ledger store.
func NewIngestService(store *ledger.Store, logger *slog.Logger) *IngestService {
	if logger == nil {
		logger = slog.Default()
	}
	return &IngestService{
		store:  store,
		logger: logger.With(slog.String("component", "ingest_service")),
	}
}

// Ingest processes one (delivery, panel[, extra]) file triple for a single
// report date and appends the resulting records to the ledger. An unreadable
// file or a ledger write failure aborts the whole batch; nothing is
// persisted partially.
func (s *IngestService) Ingest(ctx context.Context, req IngestRequest) (*IngestSummary, error) {
	if _, err := time.Parse(ReportDateLayout, req.ReportDate); err != nil {
		return nil, apperrors.NewAppValidationError(
			fmt.Sprintf("invalid report date %q, expected %s", req.ReportDate, ReportDateLayout))
	}

	s.logger.InfoContext(ctx, "starting ingestion batch",
		slog.String("report_date", req.ReportDate),
		slog.String("delivery_file", req.DeliveryPath),
		slog.String("panel_file", req.PanelPath),
		slog.String("extra_file", req.ExtraPath))

	deliveryTable, err := ingest.ReadTable(req.DeliveryPath, req.HeaderOffset)
	if err != nil {
		return nil, err
	}
	panelTable, err := ingest.ReadTable(req.PanelPath, req.HeaderOffset)
	if err != nil {
		return nil, err
	}

	var extra []domain.PanelStats
	if req.ExtraPath != "" {
		extraTable, err := ingest.ReadTable(req.ExtraPath, req.HeaderOffset)
		if err != nil {
			return nil, err
		}
		extra = ingest.TransformExtra(extraTable)
	}

	delivery := ingest.TransformDelivery(deliveryTable)
	panel := ingest.TransformPanel(panelTable)

	records := ingest.Reconcile(delivery, panel, extra, req.ReportDate)
	records = ingest.ComputeBatchMetrics(records)

	batchID := uuid.New().String()
	for i := range records {
		records[i].BatchID = batchID
	}

	if err := s.store.Append(ctx, records); err != nil {
		return nil, err
	}

	summary := &IngestSummary{
		BatchID:    batchID,
		ReportDate: req.ReportDate,
		RowCount:   len(records),
	}
	for _, rec := range records {
		summary.TotalSpend += rec.Spend
		summary.TotalRegistrations += rec.Registrations
		summary.TotalDepositors += rec.Depositors
		summary.TotalDepositSum += rec.DepositSum
	}

	s.logger.InfoContext(ctx, "ingestion batch complete",
		slog.String("batch_id", batchID),
		slog.String("report_date", req.ReportDate),
		slog.Int("row_count", summary.RowCount),
		slog.Float64("total_spend", summary.TotalSpend))

	return summary, nil
}
