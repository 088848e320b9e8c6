package errors

import (
	"net/http"

	"github.com/go-chi/render"
)

// APIError is a service-level error carrying the HTTP status and machine
// code the transport layer should answer with.
type APIError struct {
	StatusCode int         `json:"status_code"`
	ErrorCode  string      `json:"error_code"`
	Message    string      `json:"message"`
	Details    interface{} `json:"details,omitempty"`
}

func (e *APIError) Error() string {
	return e.Message
}

// Render satisfies render.Renderer so an APIError can be passed straight
// to chi render call sites.
func (e *APIError) Render(w http.ResponseWriter, r *http.Request) error {
	render.Status(r, e.StatusCode)
	return nil
}

// ValidationError names the offending field in a validation failure.
type ValidationError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// New creates an APIError.
func New(statusCode int, errorCode, message string) *APIError {
	return &APIError{
		StatusCode: statusCode,
		ErrorCode:  errorCode,
		Message:    message,
	}
}

// NewWithDetails creates an APIError with a details payload.
func NewWithDetails(statusCode int, errorCode, message string, details interface{}) *APIError {
	e := New(statusCode, errorCode, message)
	e.Details = details
	return e
}

// Errors the dataset surface answers with.
var (
	// ErrDatasetNotFound: a read endpoint was hit before any successful upload.
	ErrDatasetNotFound = New(http.StatusNotFound, "DATASET_NOT_FOUND", "No dataset loaded; upload a workbook first")
	// ErrViewNotFound: the analytics view name is not one the engine serves.
	ErrViewNotFound = New(http.StatusNotFound, "VIEW_NOT_FOUND", "Unknown analytics view")
	// ErrUploadTooLarge: the multipart body exceeded the configured bound.
	ErrUploadTooLarge = New(http.StatusRequestEntityTooLarge, "UPLOAD_TOO_LARGE", "Uploaded workbook exceeds the size limit")
)

// InvalidRequestWithError wraps a malformed-request cause as a 400.
func InvalidRequestWithError(err error) *APIError {
	return NewWithDetails(http.StatusBadRequest, "INVALID_REQUEST", "Invalid request format", err.Error())
}

// ErrValidation reports a single-field validation failure as a 400.
func ErrValidation(field, message string) *APIError {
	return NewWithDetails(http.StatusBadRequest, "VALIDATION_FAILED", "Request validation failed", ValidationError{
		Field:   field,
		Message: message,
	})
}

// WorkbookError marks an upload that parsed as a file but not as a usable
// workbook (missing columns, no data sheet, corrupt archive).
func WorkbookError(err error) *APIError {
	return NewWithDetails(http.StatusUnprocessableEntity, "WORKBOOK_INVALID", "Workbook could not be processed", err.Error())
}

// PipelineError marks a normalization or aggregation failure after a
// structurally valid workbook was accepted.
func PipelineError(err error) *APIError {
	return NewWithDetails(http.StatusInternalServerError, "PIPELINE_FAILED", "Dataset pipeline execution failed", err.Error())
}
