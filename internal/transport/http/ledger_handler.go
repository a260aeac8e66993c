package http

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"

	apierrors "adcrm/internal/errors"
	"adcrm/internal/ledger"
	"adcrm/internal/middleware"
	"adcrm/internal/services"
)

// LedgerHandler handles ledger read requests with RFC 7807 compliance
type LedgerHandler struct {
	service      LedgerServiceInterface
	logger       *slog.Logger
	errorHandler *apierrors.ErrorHandler
}

// NewLedgerHandler creates a new ledger handler with RFC 7807 error handling
func NewLedgerHandler(service LedgerServiceInterface, logger *slog.Logger, errorHandler *apierrors.ErrorHandler) *LedgerHandler {
	return &LedgerHandler{
		service:      service,
		logger:       logger.With(slog.String("component", "ledger_handler")),
		errorHandler: errorHandler,
	}
}

// Routes returns the ledger routes with proper Chi patterns
func (h *LedgerHandler) Routes() chi.Router {
	r := chi.NewRouter()
	r.Use(render.SetContentType(render.ContentTypeJSON))

	r.Get("/", h.Query)
	r.Get("/dates", h.Dates)
	r.Get("/stats", h.Stats)

	return r
}

// Query handles GET /api/ledger with date/owner/q query parameters
func (h *LedgerHandler) Query(w http.ResponseWriter, r *http.Request) {
	reqID := middleware.GetReqID(r.Context())

	filter := ledger.Filter{
		Date:   r.URL.Query().Get("date"),
		Owner:  r.URL.Query().Get("owner"),
		Search: r.URL.Query().Get("q"),
	}

	if filter.Date != "" {
		if _, err := time.Parse(services.ReportDateLayout, filter.Date); err != nil {
			h.errorHandler.HandleError(w, r, apierrors.ErrValidation("date", "Date must be in YYYY-MM-DD format"))
			return
		}
	}

	h.logger.InfoContext(r.Context(), "querying ledger",
		slog.String("request_id", reqID),
		slog.String("date", filter.Date),
		slog.String("owner", filter.Owner),
		slog.String("search", filter.Search),
	)

	result, err := h.service.Query(r.Context(), filter)
	if err != nil {
		h.logger.ErrorContext(r.Context(), "ledger query failed",
			slog.String("error", err.Error()),
			slog.String("request_id", reqID),
		)
		h.errorHandler.HandleError(w, r, err)
		return
	}

	render.JSON(w, r, map[string]interface{}{
		"status": "success",
		"data":   result,
		"count":  result.Count,
	})
}

// Dates handles GET /api/ledger/dates
func (h *LedgerHandler) Dates(w http.ResponseWriter, r *http.Request) {
	reqID := middleware.GetReqID(r.Context())

	dates, err := h.service.Dates(r.Context())
	if err != nil {
		h.logger.ErrorContext(r.Context(), "failed to list ledger dates",
			slog.String("error", err.Error()),
			slog.String("request_id", reqID),
		)
		h.errorHandler.HandleError(w, r, err)
		return
	}

	render.JSON(w, r, map[string]interface{}{
		"status": "success",
		"data":   dates,
		"count":  len(dates),
	})
}

// Stats handles GET /api/ledger/stats
func (h *LedgerHandler) Stats(w http.ResponseWriter, r *http.Request) {
	reqID := middleware.GetReqID(r.Context())

	stats, err := h.service.Stats(r.Context())
	if err != nil {
		h.logger.ErrorContext(r.Context(), "failed to get ledger stats",
			slog.String("error", err.Error()),
			slog.String("request_id", reqID),
		)
		h.errorHandler.HandleError(w, r, err)
		return
	}

	render.JSON(w, r, map[string]interface{}{
		"status": "success",
		"data":   stats,
	})
}
