package http

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apierrors "adcrm/internal/errors"
	"adcrm/internal/ledger"
	"adcrm/internal/services"
	"adcrm/pkg/contracts/domain"
)

type mockLedgerService struct {
	result    *services.QueryResult
	dates     []string
	stats     ledger.Stats
	err       error
	gotFilter ledger.Filter
}

func (m *mockLedgerService) Query(ctx context.Context, f ledger.Filter) (*services.QueryResult, error) {
	m.gotFilter = f
	if m.err != nil {
		return nil, m.err
	}
	return m.result, nil
}

func (m *mockLedgerService) Dates(ctx context.Context) ([]string, error) {
	return m.dates, m.err
}

func (m *mockLedgerService) Stats(ctx context.Context) (ledger.Stats, error) {
	return m.stats, m.err
}

func newLedgerHandler(service LedgerServiceInterface) *LedgerHandler {
	logger := discardLogger()
	return NewLedgerHandler(service, logger, apierrors.NewErrorHandler(logger, false))
}

func TestLedgerHandlerQuery(t *testing.T) {
	mock := &mockLedgerService{result: &services.QueryResult{
		Rows:       []domain.CampaignRecord{{Adset: "adset-a", Spend: 10}},
		Count:      1,
		Aggregates: domain.LedgerAggregates{TotalSpend: 10},
	}}
	handler := newLedgerHandler(mock)

	req := httptest.NewRequest(http.MethodGet, "/?date=2026-04-01&owner=ivan&q=spring", nil)
	rec := httptest.NewRecorder()

	handler.Query(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, ledger.Filter{Date: "2026-04-01", Owner: "ivan", Search: "spring"}, mock.gotFilter)

	var resp struct {
		Status string `json:"status"`
		Count  int    `json:"count"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "success", resp.Status)
	assert.Equal(t, 1, resp.Count)
}

func TestLedgerHandlerQueryBadDate(t *testing.T) {
	mock := &mockLedgerService{}
	handler := newLedgerHandler(mock)

	req := httptest.NewRequest(http.MethodGet, "/?date=april", nil)
	rec := httptest.NewRecorder()

	handler.Query(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	// Service never called with an unparseable date.
	assert.Empty(t, mock.gotFilter.Date)
}

func TestLedgerHandlerQueryStorageError(t *testing.T) {
	mock := &mockLedgerService{err: apierrors.NewStorageError("failed to open ledger file", nil)}
	handler := newLedgerHandler(mock)

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()

	handler.Query(rec, req)

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
}

func TestLedgerHandlerDates(t *testing.T) {
	mock := &mockLedgerService{dates: []string{"2026-04-02", "2026-04-01"}}
	handler := newLedgerHandler(mock)

	req := httptest.NewRequest(http.MethodGet, "/dates", nil)
	rec := httptest.NewRecorder()

	handler.Dates(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)

	var resp struct {
		Data  []string `json:"data"`
		Count int      `json:"count"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, []string{"2026-04-02", "2026-04-01"}, resp.Data)
	assert.Equal(t, 2, resp.Count)
}

func TestLedgerHandlerStats(t *testing.T) {
	mock := &mockLedgerService{stats: ledger.Stats{RecordCount: 5, DistinctDates: 2}}
	handler := newLedgerHandler(mock)

	req := httptest.NewRequest(http.MethodGet, "/stats", nil)
	rec := httptest.NewRecorder()

	handler.Stats(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)

	var resp struct {
		Data ledger.Stats `json:"data"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, 5, resp.Data.RecordCount)
}
