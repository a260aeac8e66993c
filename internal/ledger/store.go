package ledger

import (
	"bufio"
	"bytes"
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"
	"sync"

	apperrors "adcrm/internal/errors"
	"adcrm/pkg/contracts/domain"
)

// Filter is a conjunction of query predicates. Zero values match everything.
type Filter struct {
	// Date is an exact match on the report date (2006-01-02).
	Date string
	// Owner is a case-insensitive substring match on the adset name,
	// supplied by the caller for scope-restricted roles.
	Owner string
	// Search is a case-insensitive free-text substring match on the adset name.
	Search string
}

// Stats summarizes the whole store for the admin surface.
type Stats struct {
	RecordCount   int `json:"record_count"`
	DistinctDates int `json:"distinct_dates"`
}

// Store is the CSV-file-backed ledger.
type Store struct {
	path   string
	logger *slog.Logger

	mu sync.Mutex
}

// NewStore creates a ledger store over the given file path. The file is
// created lazily on the first append.
func NewStore(path string, logger *slog.Logger) *Store {
	if logger == nil {
		logger = slog.Default()
	}
	return &Store{
		path:   path,
		logger: logger.With(slog.String("component", "ledger")),
	}
}

var csvHeader = []string{
	"ReportDate", "BatchID", "Adset",
	"Spend", "Impressions", "Clicks",
	"Registrations", "Depositors", "DepositSum", "FTDSum",
	"CPM", "CPC", "CTR", "CPL", "CR", "Approval",
	"ROASFTD", "ROASAll", "ROIFTD", "ROIAll",
}

var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// Append atomically adds a batch of records to the store. The existing
// contents are read back, the batch is concatenated, and the result is
// written to a temp file that replaces the store in one rename; a failure at
// any point leaves the previously persisted rows intact and readable.
func (s *Store) Append(ctx context.Context, batch []domain.CampaignRecord) error {
	if len(batch) == 0 {
		return nil
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	existing, err := s.readAll()
	if err != nil {
		return err
	}

	all := append(existing, batch...)

	if err := os.MkdirAll(filepath.Dir(s.path), 0o755); err != nil {
		return apperrors.NewStorageError("failed to create ledger directory", err)
	}

	tmp, err := os.CreateTemp(filepath.Dir(s.path), ".ledger-*.csv")
	if err != nil {
		return apperrors.NewStorageError("failed to create ledger temp file", err)
	}
	tmpName := tmp.Name()
	defer os.Remove(tmpName)

	if err := writeRecords(tmp, all); err != nil {
		tmp.Close()
		return apperrors.NewStorageError("failed to write ledger batch", err)
	}
	if err := tmp.Close(); err != nil {
		return apperrors.NewStorageError("failed to flush ledger temp file", err)
	}
	if err := os.Rename(tmpName, s.path); err != nil {
		return apperrors.NewStorageError("failed to replace ledger file", err)
	}

	s.logger.InfoContext(ctx, "appended ledger batch",
		slog.Int("batch_size", len(batch)),
		slog.Int("total_records", len(all)),
		slog.String("path", s.path))

	return nil
}

// Query returns the stored records matching every filter, in stored order.
func (s *Store) Query(ctx context.Context, f Filter) ([]domain.CampaignRecord, error) {
	s.mu.Lock()
	rows, err := s.readAll()
	s.mu.Unlock()
	if err != nil {
		return nil, err
	}

	owner := strings.ToLower(f.Owner)
	search := strings.ToLower(f.Search)

	out := make([]domain.CampaignRecord, 0, len(rows))
	for _, rec := range rows {
		if f.Date != "" && rec.ReportDate != f.Date {
			continue
		}
		name := strings.ToLower(rec.Adset)
		if owner != "" && !strings.Contains(name, owner) {
			continue
		}
		if search != "" && !strings.Contains(name, search) {
			continue
		}
		out = append(out, rec)
	}

	s.logger.DebugContext(ctx, "ledger query",
		slog.String("date", f.Date),
		slog.String("owner", f.Owner),
		slog.String("search", f.Search),
		slog.Int("matched", len(out)))

	return out, nil
}

// DistinctDates returns every report date present in the store, newest first.
func (s *Store) DistinctDates(ctx context.Context) ([]string, error) {
	s.mu.Lock()
	rows, err := s.readAll()
	s.mu.Unlock()
	if err != nil {
		return nil, err
	}

	seen := make(map[string]bool)
	var dates []string
	for _, rec := range rows {
		if !seen[rec.ReportDate] {
			seen[rec.ReportDate] = true
			dates = append(dates, rec.ReportDate)
		}
	}
	sort.Sort(sort.Reverse(sort.StringSlice(dates)))
	return dates, nil
}

// Stats returns the record and distinct-date counts over the whole store.
func (s *Store) Stats(ctx context.Context) (Stats, error) {
	s.mu.Lock()
	rows, err := s.readAll()
	s.mu.Unlock()
	if err != nil {
		return Stats{}, err
	}

	seen := make(map[string]bool)
	for _, rec := range rows {
		seen[rec.ReportDate] = true
	}
	return Stats{RecordCount: len(rows), DistinctDates: len(seen)}, nil
}

// Aggregate computes the dashboard totals over a filtered result set. Always
// on demand, never cached.
func Aggregate(rows []domain.CampaignRecord) domain.LedgerAggregates {
	var agg domain.LedgerAggregates
	for _, rec := range rows {
		agg.TotalSpend += rec.Spend
		agg.TotalRegistrations += rec.Registrations
		agg.TotalDepositors += rec.Depositors
		agg.TotalDepositSum += rec.DepositSum
		agg.AvgROI += rec.ROIAll
	}
	if len(rows) > 0 {
		agg.AvgROI /= float64(len(rows))
	} else {
		agg.AvgROI = 0
	}
	return agg
}

// readAll loads every persisted record. A missing file is an empty ledger.
// Callers must hold s.mu.
func (s *Store) readAll() ([]domain.CampaignRecord, error) {
	file, err := os.Open(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, apperrors.NewStorageError("failed to open ledger file", err)
	}
	defer file.Close()

	br := bufio.NewReader(file)
	if err := skipBOM(br); err != nil {
		return nil, apperrors.NewStorageError("failed to read ledger file", err)
	}

	reader := csv.NewReader(br)
	reader.FieldsPerRecord = len(csvHeader)

	// Header row.
	if _, err := reader.Read(); err != nil {
		if err == io.EOF {
			return nil, nil
		}
		return nil, apperrors.NewStorageError("failed to read ledger header", err)
	}

	var out []domain.CampaignRecord
	for line := 2; ; line++ {
		row, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, apperrors.NewStorageError("failed to read ledger row", err)
		}
		rec, err := rowToRecord(row)
		if err != nil {
			return nil, apperrors.NewParsingError(
				fmt.Sprintf("corrupt ledger row at line %d", line), err)
		}
		out = append(out, rec)
	}
	return out, nil
}

func skipBOM(br *bufio.Reader) error {
	prefix, err := br.Peek(len(utf8BOM))
	if err != nil {
		if err == io.EOF {
			return nil
		}
		return err
	}
	if bytes.Equal(prefix, utf8BOM) {
		if _, err := br.Discard(len(utf8BOM)); err != nil {
			return err
		}
	}
	return nil
}

// writeRecords writes the full store contents: BOM, header, every row.
// The BOM keeps the file double-clickable in Excel, per the source exports.
func writeRecords(w io.Writer, rows []domain.CampaignRecord) error {
	if _, err := w.Write(utf8BOM); err != nil {
		return err
	}

	cw := csv.NewWriter(w)
	if err := cw.Write(csvHeader); err != nil {
		return err
	}
	for _, rec := range rows {
		if err := cw.Write(recordToRow(rec)); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

func recordToRow(rec domain.CampaignRecord) []string {
	return []string{
		rec.ReportDate,
		rec.BatchID,
		rec.Adset,
		formatFloat(rec.Spend),
		formatFloat(rec.Impressions),
		formatFloat(rec.Clicks),
		formatFloat(rec.Registrations),
		formatFloat(rec.Depositors),
		formatFloat(rec.DepositSum),
		formatFloat(rec.FTDSum),
		formatFloat(rec.CPM),
		formatFloat(rec.CPC),
		formatFloat(rec.CTR),
		formatFloat(rec.CPL),
		formatFloat(rec.CR),
		formatFloat(rec.Approval),
		formatFloat(rec.ROASFTD),
		formatFloat(rec.ROASAll),
		formatFloat(rec.ROIFTD),
		formatFloat(rec.ROIAll),
	}
}

func rowToRecord(row []string) (domain.CampaignRecord, error) {
	if len(row) != len(csvHeader) {
		return domain.CampaignRecord{}, fmt.Errorf("expected %d fields, got %d", len(csvHeader), len(row))
	}

	floats := make([]float64, len(row)-3)
	for i, cell := range row[3:] {
		f, err := strconv.ParseFloat(cell, 64)
		if err != nil {
			return domain.CampaignRecord{}, fmt.Errorf("field %s: %w", csvHeader[i+3], err)
		}
		floats[i] = f
	}

	return domain.CampaignRecord{
		ReportDate:    row[0],
		BatchID:       row[1],
		Adset:         row[2],
		Spend:         floats[0],
		Impressions:   floats[1],
		Clicks:        floats[2],
		Registrations: floats[3],
		Depositors:    floats[4],
		DepositSum:    floats[5],
		FTDSum:        floats[6],
		CPM:           floats[7],
		CPC:           floats[8],
		CTR:           floats[9],
		CPL:           floats[10],
		CR:            floats[11],
		Approval:      floats[12],
		ROASFTD:       floats[13],
		ROASAll:       floats[14],
		ROIFTD:        floats[15],
		ROIAll:        floats[16],
	}, nil
}

func formatFloat(f float64) string {
	return strconv.FormatFloat(f, 'f', -1, 64)
}
