package http

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apierrors "salespulse/internal/errors"
	"salespulse/internal/services"
	"salespulse/pkg/contracts/domain"
)

// stubDatasetService implements DatasetServiceInterface for handler tests.
type stubDatasetService struct {
	snapshot  *services.Snapshot
	loadErr   error
	viewData  interface{}
	viewErr   error
	lastView  string
	lastBytes []byte
}

func (s *stubDatasetService) LoadFromUpload(ctx context.Context, r io.Reader, filename string) (*services.Snapshot, error) {
	data, _ := io.ReadAll(r)
	s.lastBytes = data
	if s.loadErr != nil {
		return nil, s.loadErr
	}
	return s.snapshot, nil
}

func (s *stubDatasetService) Current(ctx context.Context) (*services.Snapshot, error) {
	if s.snapshot == nil {
		return nil, services.ErrNoDataset
	}
	return s.snapshot, nil
}

func (s *stubDatasetService) View(ctx context.Context, name string) (interface{}, error) {
	s.lastView = name
	if s.viewErr != nil {
		return nil, s.viewErr
	}
	if s.snapshot == nil {
		return nil, services.ErrNoDataset
	}
	return s.viewData, nil
}

func (s *stubDatasetService) ViewNames() []string {
	return []string{"monthly-sales", "kpis"}
}

func testSnapshot() *services.Snapshot {
	return &services.Snapshot{
		Dataset: &domain.Dataset{
			RunID:       "run-1",
			GeneratedAt: time.Date(2025, time.July, 1, 0, 0, 0, 0, time.UTC),
			Orders:      []domain.OrderSummaryRow{{SONumber: "SO-1"}},
			LineItems:   []domain.LineItemRow{{SONumber: "SO-1"}},
			SourceRows:  1,
		},
		KPIs: domain.KPISet{TotalSales: 1000, TotalOrders: 1},
	}
}

func newTestRouter(service DatasetServiceInterface) chi.Router {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	errorHandler := apierrors.NewErrorHandler(logger, false)
	handler := NewDatasetHandler(service, 1<<20, logger, errorHandler)

	r := chi.NewRouter()
	r.Mount("/api/dataset", handler.Routes())
	return r
}

func decodeBody(t *testing.T, rec *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	return body
}

// multipartUpload builds a multipart body with a single "file" field.
func multipartUpload(t *testing.T, filename string, content []byte) (*bytes.Buffer, string) {
	t.Helper()
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	fw, err := mw.CreateFormFile("file", filename)
	require.NoError(t, err)
	_, err = fw.Write(content)
	require.NoError(t, err)
	require.NoError(t, mw.Close())
	return &buf, mw.FormDataContentType()
}

// xlsxStub is a zip-signature-prefixed payload sufficient for the content
// sniff; the stub service never actually parses it.
var xlsxStub = []byte{0x50, 0x4B, 0x03, 0x04, 0x14, 0x00, 0x00, 0x00}

func TestUploadSucceeds(t *testing.T) {
	stub := &stubDatasetService{snapshot: testSnapshot()}
	router := newTestRouter(stub)

	body, contentType := multipartUpload(t, "orders.xlsx", xlsxStub)
	req := httptest.NewRequest(http.MethodPost, "/api/dataset", body)
	req.Header.Set("Content-Type", contentType)
	rec := httptest.NewRecorder()

	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusCreated, rec.Code)
	got := decodeBody(t, rec)
	assert.Equal(t, "success", got["status"])
	assert.Equal(t, "run-1", got["run_id"])
	assert.Equal(t, float64(1), got["orders"])

	// The sniffed bytes must still reach the service intact.
	assert.Equal(t, xlsxStub, stub.lastBytes)
}

func TestUploadRejectsWrongExtension(t *testing.T) {
	router := newTestRouter(&stubDatasetService{snapshot: testSnapshot()})

	body, contentType := multipartUpload(t, "orders.csv", xlsxStub)
	req := httptest.NewRequest(http.MethodPost, "/api/dataset", body)
	req.Header.Set("Content-Type", contentType)
	rec := httptest.NewRecorder()

	router.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Header().Get("Content-Type"), "application/problem+json")
}

func TestUploadRejectsNonXlsxContent(t *testing.T) {
	router := newTestRouter(&stubDatasetService{snapshot: testSnapshot()})

	body, contentType := multipartUpload(t, "orders.xlsx", []byte("plain text, not a workbook"))
	req := httptest.NewRequest(http.MethodPost, "/api/dataset", body)
	req.Header.Set("Content-Type", contentType)
	rec := httptest.NewRecorder()

	router.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
}

func TestUploadRequiresFileField(t *testing.T) {
	router := newTestRouter(&stubDatasetService{snapshot: testSnapshot()})

	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	require.NoError(t, mw.WriteField("other", "value"))
	require.NoError(t, mw.Close())

	req := httptest.NewRequest(http.MethodPost, "/api/dataset", &buf)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	rec := httptest.NewRecorder()

	router.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestGetKPIsBeforeFirstUpload(t *testing.T) {
	router := newTestRouter(&stubDatasetService{})

	req := httptest.NewRequest(http.MethodGet, "/api/dataset/kpis", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusNotFound, rec.Code)
	assert.Contains(t, rec.Header().Get("Content-Type"), "application/problem+json")
}

func TestGetKPIs(t *testing.T) {
	router := newTestRouter(&stubDatasetService{snapshot: testSnapshot()})

	req := httptest.NewRequest(http.MethodGet, "/api/dataset/kpis", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	got := decodeBody(t, rec)
	data, ok := got["data"].(map[string]interface{})
	require.True(t, ok)
	assert.Equal(t, float64(1000), data["total_sales"])
}

func TestGetLineItemsAndOrders(t *testing.T) {
	router := newTestRouter(&stubDatasetService{snapshot: testSnapshot()})

	for _, path := range []string{"/api/dataset/line-items", "/api/dataset/orders"} {
		req := httptest.NewRequest(http.MethodGet, path, nil)
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)

		require.Equal(t, http.StatusOK, rec.Code, path)
		got := decodeBody(t, rec)
		assert.Equal(t, float64(1), got["count"], path)
	}
}

func TestGetRenderConfigWorksWithoutDataset(t *testing.T) {
	router := newTestRouter(&stubDatasetService{})

	req := httptest.NewRequest(http.MethodGet, "/api/dataset/render-config", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	got := decodeBody(t, rec)
	require.Contains(t, got, "data")
}

func TestGetAnalyticsView(t *testing.T) {
	stub := &stubDatasetService{
		snapshot: testSnapshot(),
		viewData: []map[string]interface{}{{"period": "2025-01", "value": 100.0}},
	}
	router := newTestRouter(stub)

	req := httptest.NewRequest(http.MethodGet, "/api/dataset/analytics/monthly-sales", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "monthly-sales", stub.lastView)
	got := decodeBody(t, rec)
	assert.Equal(t, "monthly-sales", got["view"])
}

func TestGetAnalyticsViewUnknown(t *testing.T) {
	stub := &stubDatasetService{
		snapshot: testSnapshot(),
		viewErr:  services.ErrUnknownView,
	}
	router := newTestRouter(stub)

	req := httptest.NewRequest(http.MethodGet, "/api/dataset/analytics/bogus", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestListAnalyticsViews(t *testing.T) {
	router := newTestRouter(&stubDatasetService{})

	req := httptest.NewRequest(http.MethodGet, "/api/dataset/analytics", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	got := decodeBody(t, rec)
	assert.Equal(t, float64(2), got["count"])
}
