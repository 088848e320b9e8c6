package errors

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"runtime"
	"strings"

	"salespulse/internal/middleware"
)

// Problem type URIs, RFC 7807 style. Generic types cover cross-cutting
// failures; the dataset and analytics types identify domain failures a
// client can branch on.
const (
	TypeValidation      = "/errors/validation"
	TypeNotFound        = "/errors/not-found"
	TypeRateLimit       = "/errors/rate-limit"
	TypeInternal        = "/errors/internal"
	TypeTimeout         = "/errors/timeout"
	TypePayloadTooLarge = "/errors/payload-too-large"

	TypeDatasetNotFound = "/errors/dataset/not-found"
	TypeWorkbookInvalid = "/errors/dataset/workbook-invalid"
	TypePipelineFailed  = "/errors/dataset/pipeline-failed"
	TypeViewNotFound    = "/errors/analytics/view-not-found"
)

// problemTypeByCode maps APIError codes onto problem type URIs. Codes not
// listed fall back to TypeInternal.
var problemTypeByCode = map[string]string{
	"VALIDATION_FAILED": TypeValidation,
	"INVALID_REQUEST":   TypeValidation,
	"DATASET_NOT_FOUND": TypeDatasetNotFound,
	"VIEW_NOT_FOUND":    TypeViewNotFound,
	"WORKBOOK_INVALID":  TypeWorkbookInvalid,
	"PIPELINE_FAILED":   TypePipelineFailed,
	"UPLOAD_TOO_LARGE":  TypePayloadTooLarge,
}

// ErrorHandler turns service errors into problem responses at the HTTP
// edge. One instance is shared by every handler.
type ErrorHandler struct {
	logger       *slog.Logger
	includeStack bool
}

// NewErrorHandler creates the shared handler. includeStack attaches stack
// traces to problem documents and is for development only.
func NewErrorHandler(logger *slog.Logger, includeStack bool) *ErrorHandler {
	return &ErrorHandler{
		logger:       logger.With(slog.String("component", "error_handler")),
		includeStack: includeStack,
	}
}

// HandleError logs the failure and writes it as a problem document. Nil
// errors are ignored so handlers can call it unconditionally.
func (h *ErrorHandler) HandleError(w http.ResponseWriter, r *http.Request, err error) {
	if err == nil {
		return
	}

	reqID := middleware.GetReqID(r.Context())
	h.logger.ErrorContext(r.Context(), "request failed",
		slog.String("error", err.Error()),
		slog.String("request_id", reqID),
		slog.String("method", r.Method),
		slog.String("path", r.URL.Path),
		slog.String("remote_addr", r.RemoteAddr))

	problem := h.ErrorToProblem(err, r)
	problem.WithExtension("trace_id", reqID)
	if h.includeStack {
		problem.WithExtension("stack", currentStack())
	}
	problem.Write(w, r)
}

// ErrorToProblem classifies an error into a ProblemDetails. APIErrors map
// through their code; context cancellation maps to a timeout; anything
// else is matched on message as a last resort before the 500 fallback.
func (h *ErrorHandler) ErrorToProblem(err error, r *http.Request) *ProblemDetails {
	if errors.Is(err, context.DeadlineExceeded) || errors.Is(err, context.Canceled) {
		return NewProblemDetails(http.StatusGatewayTimeout, TypeTimeout,
			"Request Timeout",
			"The request took too long to process and was cancelled",
			r.URL.Path)
	}

	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return h.apiErrorToProblem(apiErr, r)
	}

	msg := err.Error()
	switch {
	case strings.Contains(msg, "not found"):
		return NewProblemDetails(http.StatusNotFound, TypeNotFound,
			"Resource Not Found", msg, r.URL.Path)
	case strings.Contains(msg, "rate limit"):
		return NewProblemDetails(http.StatusTooManyRequests, TypeRateLimit,
			"Rate Limit Exceeded",
			"Too many requests. Please try again later.",
			r.URL.Path).WithExtension("retry_after", 60)
	case strings.Contains(msg, "payload too large"):
		return NewProblemDetails(http.StatusRequestEntityTooLarge, TypePayloadTooLarge,
			"Payload Too Large",
			"The request body exceeds the maximum allowed size",
			r.URL.Path)
	default:
		return NewProblemDetails(http.StatusInternalServerError, TypeInternal,
			"Internal Server Error",
			"An unexpected error occurred while processing your request",
			r.URL.Path)
	}
}

func (h *ErrorHandler) apiErrorToProblem(apiErr *APIError, r *http.Request) *ProblemDetails {
	problemType, ok := problemTypeByCode[apiErr.ErrorCode]
	if !ok {
		problemType = TypeInternal
	}

	problem := NewProblemDetails(
		apiErr.StatusCode,
		problemType,
		http.StatusText(apiErr.StatusCode),
		apiErr.Message,
		r.URL.Path,
	).WithExtension("error_code", apiErr.ErrorCode)

	if apiErr.Details != nil {
		problem.WithExtension("details", apiErr.Details)
	}
	return problem
}

// NotFound answers unrouted paths with a 404 problem document.
func (h *ErrorHandler) NotFound(w http.ResponseWriter, r *http.Request) {
	NewProblemDetails(http.StatusNotFound, TypeNotFound,
		"Not Found",
		"The requested resource was not found",
		r.URL.Path,
	).WithExtension("trace_id", middleware.GetReqID(r.Context())).Write(w, r)
}

// MethodNotAllowed answers routed paths hit with the wrong verb.
func (h *ErrorHandler) MethodNotAllowed(w http.ResponseWriter, r *http.Request) {
	NewProblemDetails(http.StatusMethodNotAllowed, TypeInternal,
		"Method Not Allowed",
		fmt.Sprintf("Method %s is not allowed for this endpoint", r.Method),
		r.URL.Path,
	).WithExtension("trace_id", middleware.GetReqID(r.Context())).Write(w, r)
}

func currentStack() string {
	buf := make([]byte, 8*1024)
	n := runtime.Stack(buf, false)
	return string(buf[:n])
}
