package http

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"
	"github.com/go-playground/validator/v10"

	apierrors "adcrm/internal/errors"
	"adcrm/internal/middleware"
	"adcrm/internal/services"
)

// IngestHandler handles ingestion HTTP requests with RFC 7807 compliance
type IngestHandler struct {
	service      IngestServiceInterface
	logger       *slog.Logger
	errorHandler *apierrors.ErrorHandler
	validate     *validator.Validate
}

// NewIngestHandler creates a new ingest handler with RFC 7807 error handling
func NewIngestHandler(service IngestServiceInterface, logger *slog.Logger, errorHandler *apierrors.ErrorHandler) *IngestHandler {
	return &IngestHandler{
		service:      service,
		logger:       logger.With(slog.String("component", "ingest_handler")),
		errorHandler: errorHandler,
		validate:     validator.New(),
	}
}

// Routes returns the ingest routes
func (h *IngestHandler) Routes() chi.Router {
	r := chi.NewRouter()
	r.Use(render.SetContentType(render.ContentTypeJSON))
	r.Post("/", h.Ingest)
	return r
}

// Ingest handles POST /api/ingest with RFC 7807 errors
func (h *IngestHandler) Ingest(w http.ResponseWriter, r *http.Request) {
	reqID := middleware.GetReqID(r.Context())

	var req services.IngestRequest
	if err := render.DecodeJSON(r.Body, &req); err != nil {
		h.errorHandler.HandleError(w, r, apierrors.InvalidRequestWithError(err))
		return
	}

	if err := h.validate.Struct(req); err != nil {
		if verrs, ok := err.(validator.ValidationErrors); ok && len(verrs) > 0 {
			field := verrs[0].Field()
			h.errorHandler.HandleError(w, r, apierrors.ErrValidation(field, "Field failed validation: "+verrs[0].Tag()))
			return
		}
		h.errorHandler.HandleError(w, r, apierrors.InvalidRequestWithError(err))
		return
	}

	h.logger.InfoContext(r.Context(), "ingestion requested",
		slog.String("request_id", reqID),
		slog.String("report_date", req.ReportDate),
		slog.String("delivery_file", req.DeliveryPath),
		slog.String("panel_file", req.PanelPath),
	)

	summary, err := h.service.Ingest(r.Context(), req)
	if err != nil {
		h.logger.ErrorContext(r.Context(), "ingestion failed",
			slog.String("error", err.Error()),
			slog.String("request_id", reqID),
		)
		h.errorHandler.HandleError(w, r, err)
		return
	}

	render.Status(r, http.StatusCreated)
	render.JSON(w, r, map[string]interface{}{
		"status": "success",
		"data":   summary,
	})
}
