package http

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apierrors "adcrm/internal/errors"
	"adcrm/internal/services"
)

type mockIngestService struct {
	summary *services.IngestSummary
	err     error
	gotReq  services.IngestRequest
}

func (m *mockIngestService) Ingest(ctx context.Context, req services.IngestRequest) (*services.IngestSummary, error) {
	m.gotReq = req
	if m.err != nil {
		return nil, m.err
	}
	return m.summary, nil
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func newIngestHandler(service IngestServiceInterface) *IngestHandler {
	logger := discardLogger()
	return NewIngestHandler(service, logger, apierrors.NewErrorHandler(logger, false))
}

func TestIngestHandlerSuccess(t *testing.T) {
	mock := &mockIngestService{summary: &services.IngestSummary{
		BatchID:    "batch-1",
		ReportDate: "2026-04-01",
		RowCount:   3,
		TotalSpend: 150,
	}}
	handler := newIngestHandler(mock)

	body := `{"delivery_file":"d.xlsx","panel_file":"p.csv","report_date":"2026-04-01"}`
	req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(body))
	rec := httptest.NewRecorder()

	handler.Ingest(rec, req)

	assert.Equal(t, http.StatusCreated, rec.Code)
	assert.Equal(t, "d.xlsx", mock.gotReq.DeliveryPath)
	assert.Equal(t, "2026-04-01", mock.gotReq.ReportDate)

	var resp struct {
		Status string                 `json:"status"`
		Data   services.IngestSummary `json:"data"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "success", resp.Status)
	assert.Equal(t, "batch-1", resp.Data.BatchID)
	assert.Equal(t, 3, resp.Data.RowCount)
}

func TestIngestHandlerInvalidJSON(t *testing.T) {
	handler := newIngestHandler(&mockIngestService{})

	req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader("{not json"))
	rec := httptest.NewRecorder()

	handler.Ingest(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Header().Get("Content-Type"), "application/json")
}

func TestIngestHandlerMissingFields(t *testing.T) {
	mock := &mockIngestService{}
	handler := newIngestHandler(mock)

	req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{"delivery_file":"d.xlsx"}`))
	rec := httptest.NewRecorder()

	handler.Ingest(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	// Service never called on validation failure.
	assert.Empty(t, mock.gotReq.DeliveryPath)
}

func TestIngestHandlerBadDateFormat(t *testing.T) {
	handler := newIngestHandler(&mockIngestService{})

	body := `{"delivery_file":"d.xlsx","panel_file":"p.csv","report_date":"01.04.2026"}`
	req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(body))
	rec := httptest.NewRecorder()

	handler.Ingest(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestIngestHandlerUnreadableFile(t *testing.T) {
	mock := &mockIngestService{err: apierrors.NewFileFormatError("cannot read d.xlsx", nil)}
	handler := newIngestHandler(mock)

	body := `{"delivery_file":"d.xlsx","panel_file":"p.csv","report_date":"2026-04-01"}`
	req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(body))
	rec := httptest.NewRecorder()

	handler.Ingest(rec, req)

	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)

	var problem map[string]interface{}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &problem))
	assert.Equal(t, apierrors.TypeFileFormat, problem["type"])
}
