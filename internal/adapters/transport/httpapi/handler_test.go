package httpapi

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/bnema/plza-save-editor/internal/adapters/codec/swish"
	"github.com/bnema/plza-save-editor/internal/adapters/session/memory"
	"github.com/bnema/plza-save-editor/internal/application"
	"github.com/bnema/plza-save-editor/internal/catalog"
	"github.com/bnema/plza-save-editor/internal/domain"
	"github.com/bnema/plza-save-editor/internal/fixtures"
	"github.com/bnema/plza-save-editor/internal/workerpool"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestHandler(t *testing.T) *Handler {
	t.Helper()

	cat, err := catalog.Default()
	require.NoError(t, err)
	pool, err := workerpool.New(2, nil)
	require.NoError(t, err)
	store := memory.New(memory.Config{})
	t.Cleanup(func() {
		_ = store.Close(context.Background())
		_ = pool.Close()
	})

	svc := application.NewService(swish.New(), store, pool, cat, nil)
	return NewHandler(svc, Options{MaxUploadBytes: 1 << 20})
}

func multipartUpload(t *testing.T, field string, blob []byte) (*bytes.Buffer, string) {
	t.Helper()

	var body bytes.Buffer
	w := multipart.NewWriter(&body)
	part, err := w.CreateFormFile(field, "main")
	require.NoError(t, err)
	_, err = part.Write(blob)
	require.NoError(t, err)
	require.NoError(t, w.Close())
	return &body, w.FormDataContentType()
}

func serve(h http.Handler, req *http.Request) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func decodeBody[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()

	var out T
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &out), rec.Body.String())
	return out
}

func parseFixture(t *testing.T, h http.Handler) parseResponse {
	t.Helper()

	body, contentType := multipartUpload(t, "file", fixtures.Blob())
	req := httptest.NewRequest(http.MethodPost, "/parse", body)
	req.Header.Set("Content-Type", contentType)

	rec := serve(h, req)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	return decodeBody[parseResponse](t, rec)
}

func modify(h http.Handler, ref string, changes string) *httptest.ResponseRecorder {
	body := fmt.Sprintf(`{"save_data_ref":%q,"changes":%s}`, ref, changes)
	req := httptest.NewRequest(http.MethodPost, "/modify", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	return serve(h, req)
}

func TestParseMultipartUpload(t *testing.T) {
	t.Parallel()

	h := newTestHandler(t)
	parsed := parseFixture(t, h)

	assert.True(t, parsed.Success)
	_, err := domain.ParseSessionRef(parsed.RefID)
	require.NoError(t, err)
	assert.Equal(t, fixtures.Name, parsed.Profile.Name)
	assert.Equal(t, fixtures.TrainerID, parsed.Profile.TrainerID)
	assert.Equal(t, fixtures.Gender, parsed.Profile.Gender)
	assert.Equal(t, uint32(15), parsed.Inventory[5].Quantity)
	assert.NotContains(t, parsed.Inventory, 13)
	assert.NotEmpty(t, parsed.Collection)
}

func TestParseRawBody(t *testing.T) {
	t.Parallel()

	h := newTestHandler(t)
	req := httptest.NewRequest(http.MethodPost, "/parse", bytes.NewReader(fixtures.Blob()))
	req.Header.Set("Content-Type", "application/octet-stream")

	rec := serve(h, req)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	parsed := decodeBody[parseResponse](t, rec)
	assert.Equal(t, fixtures.Name, parsed.Profile.Name)
}

func TestParseRejectsInvalidUploads(t *testing.T) {
	t.Parallel()

	h := newTestHandler(t)

	tests := []struct {
		name    string
		field   string
		blob    []byte
		status  int
		message string
	}{
		{name: "garbage", field: "file", blob: []byte("definitely not a save"), status: http.StatusBadRequest, message: msgNotASave},
		{name: "wrong field", field: "upload", blob: fixtures.Blob(), status: http.StatusBadRequest, message: "no file uploaded"},
		{name: "empty file", field: "file", blob: nil, status: http.StatusBadRequest, message: "no file uploaded"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			body, contentType := multipartUpload(t, tt.field, tt.blob)
			req := httptest.NewRequest(http.MethodPost, "/parse", body)
			req.Header.Set("Content-Type", contentType)

			rec := serve(h, req)
			assert.Equal(t, tt.status, rec.Code)
			resp := decodeBody[errorResponse](t, rec)
			assert.False(t, resp.Success)
			assert.Equal(t, tt.message, resp.Error)
		})
	}
}

func TestParseRejectsOversizedUpload(t *testing.T) {
	t.Parallel()

	h := newTestHandler(t)
	req := httptest.NewRequest(http.MethodPost, "/parse", bytes.NewReader(make([]byte, 2<<20)))

	rec := serve(h, req)
	assert.Equal(t, http.StatusRequestEntityTooLarge, rec.Code)
}

func TestModifyAndDownload(t *testing.T) {
	t.Parallel()

	h := newTestHandler(t)
	parsed := parseFixture(t, h)

	rec := modify(h, parsed.RefID, `{"profile":{"name":"Ash"},"inventory":{"bag_5":1200}}`)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	modified := decodeBody[modifyResponse](t, rec)
	assert.True(t, modified.Success)
	assert.Equal(t, parsed.RefID, modified.DownloadRef)
	assert.Equal(t, "/download/"+parsed.RefID, modified.DownloadURL)

	rec = serve(h, httptest.NewRequest(http.MethodGet, modified.DownloadURL, nil))
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "application/octet-stream", rec.Header().Get("Content-Type"))
	assert.Equal(t, "attachment; filename=main", rec.Header().Get("Content-Disposition"))

	container, err := swish.New().Decode(rec.Body.Bytes())
	require.NoError(t, err)
	cat, err := catalog.Default()
	require.NoError(t, err)
	summary, err := application.Project(container, cat)
	require.NoError(t, err)
	assert.Equal(t, "Ash", summary.Profile.Name)
	assert.Equal(t, uint32(999), summary.Inventory[5].Quantity)
	assert.Equal(t, domain.ItemCategoryMedicine, summary.Inventory[5].Category)
}

func TestModifyErrors(t *testing.T) {
	t.Parallel()

	h := newTestHandler(t)
	parsed := parseFixture(t, h)

	rec := modify(h, "6f1c1c8e-0000-4000-8000-000000000000", `{}`)
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = modify(h, "not-a-ref", `{}`)
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = modify(h, parsed.RefID, `{"profile":{"language":42}}`)
	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	assert.Contains(t, decodeBody[errorResponse](t, rec).Error, "language")

	req := httptest.NewRequest(http.MethodPost, "/modify", strings.NewReader(`{"save_data_ref":`))
	rec = serve(h, req)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestDownloadUnknownRef(t *testing.T) {
	t.Parallel()

	h := newTestHandler(t)
	rec := serve(h, httptest.NewRequest(http.MethodGet, "/download/6f1c1c8e-0000-4000-8000-000000000000", nil))
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.False(t, decodeBody[errorResponse](t, rec).Success)
}

func TestHealthz(t *testing.T) {
	t.Parallel()

	h := newTestHandler(t)
	rec := serve(h, httptest.NewRequest(http.MethodGet, "/healthz", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"status":"ok"}`, rec.Body.String())
}

func TestMethodNotAllowed(t *testing.T) {
	t.Parallel()

	h := newTestHandler(t)
	rec := serve(h, httptest.NewRequest(http.MethodGet, "/parse", nil))
	assert.Equal(t, http.StatusMethodNotAllowed, rec.Code)
}

type failingService struct {
	err error
}

func (f failingService) Parse(context.Context, []byte) (application.ParseResult, error) {
	return application.ParseResult{}, f.err
}

func (f failingService) Modify(context.Context, application.ModifyCommand) (application.ModifyResult, error) {
	return application.ModifyResult{}, f.err
}

func (f failingService) Download(context.Context, domain.SessionRef) ([]byte, error) {
	return nil, f.err
}

func TestInternalErrorsAreHidden(t *testing.T) {
	t.Parallel()

	h := NewHandler(failingService{err: errors.New("disk on fire")}, Options{})
	rec := serve(h, httptest.NewRequest(http.MethodGet, "/download/6f1c1c8e-0000-4000-8000-000000000000", nil))

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Equal(t, "internal error", decodeBody[errorResponse](t, rec).Error)
}

func TestStatusFor(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		err  error
		want int
	}{
		{name: "not found", err: fmt.Errorf("get session: %w", domain.ErrSessionNotFound), want: http.StatusNotFound},
		{name: "validation", err: &domain.ValidationError{Field: "tid", Reason: "not a number"}, want: http.StatusUnprocessableEntity},
		{name: "decode", err: &domain.DecodeError{Err: errors.New("short")}, want: http.StatusBadRequest},
		{name: "block missing", err: &domain.DecodeError{Block: domain.BlockProfile, Err: domain.ErrBlockMissing}, want: http.StatusBadRequest},
		{name: "store full", err: domain.ErrStoreFull, want: http.StatusServiceUnavailable},
		{name: "canceled", err: context.Canceled, want: http.StatusServiceUnavailable},
		{name: "panic", err: domain.ErrTaskPanicked, want: http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, StatusFor(tt.err))
		})
	}
}

func TestServerStartAndShutdown(t *testing.T) {
	t.Parallel()

	srv, err := Start(ServerConfig{MaxConns: 4}, newTestHandler(t))
	require.NoError(t, err)

	resp, err := http.Get(srv.URL() + "/healthz")
	require.NoError(t, err)
	_ = resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	require.NoError(t, srv.Shutdown(context.Background()))
	require.NoError(t, srv.Shutdown(context.Background()))
	_, open := <-srv.Err()
	assert.False(t, open)
}
