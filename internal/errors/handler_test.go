package errors

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testHandler() *ErrorHandler {
	return NewErrorHandler(slog.New(slog.NewTextHandler(io.Discard, nil)), false)
}

func decodeProblem(t *testing.T, rec *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var problem map[string]interface{}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &problem))
	return problem
}

func TestHandleErrorAPIError(t *testing.T) {
	h := testHandler()

	req := httptest.NewRequest(http.MethodGet, "/api/dataset/kpis", nil)
	rec := httptest.NewRecorder()
	h.HandleError(rec, req, ErrDatasetNotFound)

	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "application/problem+json", rec.Header().Get("Content-Type"))

	problem := decodeProblem(t, rec)
	assert.Equal(t, TypeDatasetNotFound, problem["type"])
	assert.Equal(t, float64(http.StatusNotFound), problem["status"])
	assert.Equal(t, "DATASET_NOT_FOUND", problem["error_code"])
	assert.Equal(t, "/api/dataset/kpis", problem["instance"])
}

func TestHandleErrorStatusMapping(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
		wantType   string
	}{
		{name: "upload too large", err: ErrUploadTooLarge, wantStatus: http.StatusRequestEntityTooLarge, wantType: TypePayloadTooLarge},
		{name: "workbook invalid", err: WorkbookError(errors.New("no header")), wantStatus: http.StatusUnprocessableEntity, wantType: TypeWorkbookInvalid},
		{name: "pipeline failed", err: PipelineError(errors.New("boom")), wantStatus: http.StatusInternalServerError, wantType: TypePipelineFailed},
		{name: "view not found", err: ErrViewNotFound, wantStatus: http.StatusNotFound, wantType: TypeViewNotFound},
		{name: "validation", err: ErrValidation("file", "required"), wantStatus: http.StatusBadRequest, wantType: TypeValidation},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := testHandler()
			req := httptest.NewRequest(http.MethodGet, "/probe", nil)
			rec := httptest.NewRecorder()
			h.HandleError(rec, req, tt.err)

			assert.Equal(t, tt.wantStatus, rec.Code)
			problem := decodeProblem(t, rec)
			assert.Equal(t, tt.wantType, problem["type"])
		})
	}
}

func TestHandleErrorGenericError(t *testing.T) {
	h := testHandler()

	req := httptest.NewRequest(http.MethodGet, "/probe", nil)
	rec := httptest.NewRecorder()
	h.HandleError(rec, req, errors.New("something broke"))

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	problem := decodeProblem(t, rec)
	assert.Equal(t, TypeInternal, problem["type"])
}

func TestHandleErrorContextCancelled(t *testing.T) {
	h := testHandler()

	req := httptest.NewRequest(http.MethodGet, "/probe", nil)
	rec := httptest.NewRecorder()
	h.HandleError(rec, req, context.Canceled)

	// Client went away; anything but a 2xx is fine, but it must still be
	// a well-formed problem document.
	problem := decodeProblem(t, rec)
	assert.NotEmpty(t, problem["type"])
}

func TestNotFoundAndMethodNotAllowed(t *testing.T) {
	h := testHandler()

	rec := httptest.NewRecorder()
	h.NotFound(rec, httptest.NewRequest(http.MethodGet, "/nope", nil))
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = httptest.NewRecorder()
	h.MethodNotAllowed(rec, httptest.NewRequest(http.MethodDelete, "/api/healthz", nil))
	assert.Equal(t, http.StatusMethodNotAllowed, rec.Code)
	problem := decodeProblem(t, rec)
	assert.Contains(t, problem["detail"], "DELETE")
}

func TestAPIErrorMessage(t *testing.T) {
	err := New(http.StatusConflict, "CONFLICT", "already exists")
	assert.Equal(t, "already exists", err.Error())
}

func TestProblemDetailsMarshalIncludesExtensions(t *testing.T) {
	pd := NewProblemDetails(400, TypeValidation, "Bad Request", "field missing", "/probe").
		WithExtension("error_code", "VALIDATION_FAILED")

	data, err := json.Marshal(pd)
	require.NoError(t, err)

	var decoded map[string]interface{}
	require.NoError(t, json.Unmarshal(data, &decoded))
	assert.Equal(t, "VALIDATION_FAILED", decoded["error_code"])
	assert.Equal(t, "field missing", decoded["detail"])
}
