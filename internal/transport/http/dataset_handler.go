package http

import (
	"bufio"
	"errors"
	"io"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"

	apierrors "salespulse/internal/errors"
	"salespulse/internal/infrastructure"
	"salespulse/internal/middleware"
	"salespulse/internal/services"
	"salespulse/internal/validation"
	"salespulse/pkg/contracts/domain"
)

// DatasetHandler handles dataset HTTP requests with RFC 7807 compliance
type DatasetHandler struct {
	service      DatasetServiceInterface
	validator    *validation.UploadValidator
	maxUpload    int64
	logger       *slog.Logger
	errorHandler *apierrors.ErrorHandler
}

// NewDatasetHandler creates a new dataset handler with RFC 7807 error handling
func NewDatasetHandler(service DatasetServiceInterface, maxUpload int64, logger *slog.Logger, errorHandler *apierrors.ErrorHandler) *DatasetHandler {
	return &DatasetHandler{
		service:      service,
		validator:    validation.NewUploadValidator(maxUpload, logger),
		maxUpload:    maxUpload,
		logger:       infrastructure.WithComponent(logger, "dataset_handler"),
		errorHandler: errorHandler,
	}
}

// Routes returns the dataset routes with proper Chi patterns
func (h *DatasetHandler) Routes() chi.Router {
	r := chi.NewRouter()

	// Use render for consistent JSON responses
	r.Use(render.SetContentType(render.ContentTypeJSON))

	r.Post("/", h.Upload)
	r.Get("/kpis", h.GetKPIs)
	r.Get("/line-items", h.GetLineItems)
	r.Get("/orders", h.GetOrders)
	r.Get("/render-config", h.GetRenderConfig)

	r.Route("/analytics/{view}", func(r chi.Router) {
		r.Use(h.ViewCtx)
		r.Get("/", h.GetAnalyticsView)
	})
	r.Get("/analytics", h.ListAnalyticsViews)

	return r
}

// ViewCtx middleware validates the view parameter
func (h *DatasetHandler) ViewCtx(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		view := chi.URLParam(r, "view")
		if view == "" {
			h.errorHandler.HandleError(w, r, apierrors.ErrValidation("view", "Analytics view name is required"))
			return
		}
		next.ServeHTTP(w, r)
	})
}

// Upload handles POST /api/dataset. The request is a multipart form with
// a single "file" field holding the workbook. A successful upload swaps
// the served dataset; a failed one leaves it untouched.
func (h *DatasetHandler) Upload(w http.ResponseWriter, r *http.Request) {
	reqID := middleware.GetReqID(r.Context())

	h.logger.InfoContext(r.Context(), "receiving workbook upload",
		slog.String("request_id", reqID),
		slog.Int64("content_length", r.ContentLength),
	)

	r.Body = http.MaxBytesReader(w, r.Body, h.maxUpload)
	if err := r.ParseMultipartForm(h.maxUpload); err != nil {
		var maxErr *http.MaxBytesError
		if errors.As(err, &maxErr) {
			h.errorHandler.HandleError(w, r, apierrors.ErrUploadTooLarge)
			return
		}
		h.errorHandler.HandleError(w, r, apierrors.InvalidRequestWithError(err))
		return
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		h.errorHandler.HandleError(w, r, apierrors.ErrValidation("file", "Multipart field 'file' is required"))
		return
	}
	defer file.Close()

	if err := h.validator.ValidateFilename(header.Filename); err != nil {
		h.errorHandler.HandleError(w, r, apierrors.ErrValidation("file", err.Error()))
		return
	}
	if err := h.validator.ValidateSize(header.Size); err != nil {
		h.errorHandler.HandleError(w, r, apierrors.ErrUploadTooLarge)
		return
	}

	// Sniff the xlsx signature without consuming the stream.
	buffered := bufio.NewReader(file)
	head, err := buffered.Peek(4)
	if err != nil && err != io.EOF {
		h.errorHandler.HandleError(w, r, apierrors.InvalidRequestWithError(err))
		return
	}
	if err := h.validator.ValidateContent(head); err != nil {
		h.errorHandler.HandleError(w, r, apierrors.WorkbookError(err))
		return
	}

	snapshot, err := h.service.LoadFromUpload(r.Context(), buffered, header.Filename)
	if err != nil {
		h.logger.ErrorContext(r.Context(), "workbook processing failed",
			slog.String("error", err.Error()),
			slog.String("request_id", reqID),
		)
		h.errorHandler.HandleError(w, r, h.mapServiceError(err))
		return
	}

	render.Status(r, http.StatusCreated)
	render.JSON(w, r, map[string]interface{}{
		"status":       "success",
		"run_id":       snapshot.Dataset.RunID,
		"generated_at": snapshot.Dataset.GeneratedAt,
		"source_rows":  snapshot.Dataset.SourceRows,
		"dropped_rows": snapshot.Dataset.DroppedRows,
		"orders":       len(snapshot.Dataset.Orders),
		"line_items":   len(snapshot.Dataset.LineItems),
		"kpis":         snapshot.KPIs,
	})
}

// GetKPIs handles GET /api/dataset/kpis
func (h *DatasetHandler) GetKPIs(w http.ResponseWriter, r *http.Request) {
	snapshot, err := h.service.Current(r.Context())
	if err != nil {
		h.errorHandler.HandleError(w, r, h.mapServiceError(err))
		return
	}

	render.JSON(w, r, map[string]interface{}{
		"status": "success",
		"run_id": snapshot.Dataset.RunID,
		"data":   snapshot.KPIs,
	})
}

// GetLineItems handles GET /api/dataset/line-items
func (h *DatasetHandler) GetLineItems(w http.ResponseWriter, r *http.Request) {
	snapshot, err := h.service.Current(r.Context())
	if err != nil {
		h.errorHandler.HandleError(w, r, h.mapServiceError(err))
		return
	}

	render.JSON(w, r, map[string]interface{}{
		"status": "success",
		"data":   snapshot.Dataset.LineItems,
		"count":  len(snapshot.Dataset.LineItems),
	})
}

// GetOrders handles GET /api/dataset/orders
func (h *DatasetHandler) GetOrders(w http.ResponseWriter, r *http.Request) {
	snapshot, err := h.service.Current(r.Context())
	if err != nil {
		h.errorHandler.HandleError(w, r, h.mapServiceError(err))
		return
	}

	render.JSON(w, r, map[string]interface{}{
		"status": "success",
		"data":   snapshot.Dataset.Orders,
		"count":  len(snapshot.Dataset.Orders),
	})
}

// GetRenderConfig handles GET /api/dataset/render-config. The response is
// static chart configuration; it does not require a loaded dataset.
func (h *DatasetHandler) GetRenderConfig(w http.ResponseWriter, r *http.Request) {
	render.JSON(w, r, map[string]interface{}{
		"status": "success",
		"data":   domain.DefaultRenderConfig(),
	})
}

// GetAnalyticsView handles GET /api/dataset/analytics/{view}
func (h *DatasetHandler) GetAnalyticsView(w http.ResponseWriter, r *http.Request) {
	view := chi.URLParam(r, "view")
	reqID := middleware.GetReqID(r.Context())

	h.logger.InfoContext(r.Context(), "computing analytics view",
		slog.String("view", view),
		slog.String("request_id", reqID),
	)

	data, err := h.service.View(r.Context(), view)
	if err != nil {
		h.errorHandler.HandleError(w, r, h.mapServiceError(err))
		return
	}

	render.JSON(w, r, map[string]interface{}{
		"status": "success",
		"view":   view,
		"data":   data,
	})
}

// ListAnalyticsViews handles GET /api/dataset/analytics
func (h *DatasetHandler) ListAnalyticsViews(w http.ResponseWriter, r *http.Request) {
	views := h.service.ViewNames()
	render.JSON(w, r, map[string]interface{}{
		"status": "success",
		"data":   views,
		"count":  len(views),
	})
}

// mapServiceError translates service errors to API errors
func (h *DatasetHandler) mapServiceError(err error) error {
	switch {
	case errors.Is(err, services.ErrNoDataset):
		return apierrors.New(
			http.StatusNotFound,
			"DATASET_NOT_FOUND",
			"No dataset loaded; upload a workbook first",
		)
	case errors.Is(err, services.ErrUnknownView):
		return apierrors.New(
			http.StatusNotFound,
			"VIEW_NOT_FOUND",
			"Unknown analytics view",
		)
	default:
		return err
	}
}
