// Package httpapi exposes edit sessions over HTTP: upload and parse a save,
// modify it, download the re-encoded blob.
package httpapi

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"mime"
	"net/http"

	"github.com/bnema/plza-save-editor/internal/application"
	"github.com/bnema/plza-save-editor/internal/domain"
	"go.uber.org/zap"
)

const (
	DefaultMaxUploadBytes int64 = 8 << 20

	// DownloadFilename is the name the game expects for its save file.
	DownloadFilename = "main"

	msgNotASave = "Not a PLZA save file"
)

// Service is the subset of the application service the handler drives.
type Service interface {
	Parse(ctx context.Context, blob []byte) (application.ParseResult, error)
	Modify(ctx context.Context, cmd application.ModifyCommand) (application.ModifyResult, error)
	Download(ctx context.Context, ref domain.SessionRef) ([]byte, error)
}

type Options struct {
	MaxUploadBytes int64
	Logger         *zap.Logger
}

type Handler struct {
	svc            Service
	maxUploadBytes int64
	logger         *zap.Logger
	mux            *http.ServeMux
}

var errMissingFile = errors.New("missing file")

func NewHandler(svc Service, opts Options) *Handler {
	if opts.MaxUploadBytes <= 0 {
		opts.MaxUploadBytes = DefaultMaxUploadBytes
	}
	if opts.Logger == nil {
		opts.Logger = zap.NewNop()
	}

	h := &Handler{
		svc:            svc,
		maxUploadBytes: opts.MaxUploadBytes,
		logger:         opts.Logger,
		mux:            http.NewServeMux(),
	}
	h.mux.HandleFunc("POST /parse", h.handleParse)
	h.mux.HandleFunc("POST /modify", h.handleModify)
	h.mux.HandleFunc("GET /download/{ref}", h.handleDownload)
	h.mux.HandleFunc("GET /healthz", h.handleHealth)

	return h
}

func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	h.mux.ServeHTTP(w, r)
}

type parseResponse struct {
	Success    bool                                  `json:"success"`
	RefID      string                                `json:"ref_id"`
	Profile    domain.ProfileSummary                 `json:"profile_summary"`
	Inventory  map[int]domain.InventorySummaryEntry  `json:"inventory_summary"`
	Collection map[int]domain.CollectionSummaryEntry `json:"collection_summary"`
}

type modifyRequest struct {
	SaveDataRef string           `json:"save_data_ref"`
	Changes     domain.ChangeSet `json:"changes"`
}

type modifyResponse struct {
	Success     bool   `json:"success"`
	DownloadRef string `json:"download_ref"`
	DownloadURL string `json:"download_url"`
}

type errorResponse struct {
	Success bool   `json:"success"`
	Error   string `json:"error"`
}

func (h *Handler) handleParse(w http.ResponseWriter, r *http.Request) {
	blob, err := h.readUpload(w, r)
	if err != nil {
		var tooLarge *http.MaxBytesError
		switch {
		case errors.As(err, &tooLarge):
			h.writeJSON(w, http.StatusRequestEntityTooLarge, errorResponse{Error: "upload too large"})
		case errors.Is(err, errMissingFile):
			h.writeJSON(w, http.StatusBadRequest, errorResponse{Error: "no file uploaded"})
		default:
			h.writeJSON(w, http.StatusBadRequest, errorResponse{Error: "read upload: " + err.Error()})
		}
		return
	}

	result, err := h.svc.Parse(r.Context(), blob)
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	h.writeJSON(w, http.StatusOK, parseResponse{
		Success:    true,
		RefID:      result.Ref.String(),
		Profile:    result.Summary.Profile,
		Inventory:  result.Summary.Inventory,
		Collection: result.Summary.Collection,
	})
}

// readUpload accepts either a multipart form with a "file" field or the raw
// save as the request body.
func (h *Handler) readUpload(w http.ResponseWriter, r *http.Request) ([]byte, error) {
	r.Body = http.MaxBytesReader(w, r.Body, h.maxUploadBytes)

	mediaType, _, _ := mime.ParseMediaType(r.Header.Get("Content-Type"))
	if mediaType != "multipart/form-data" {
		blob, err := io.ReadAll(r.Body)
		if err != nil {
			return nil, err
		}
		if len(blob) == 0 {
			return nil, errMissingFile
		}
		return blob, nil
	}

	if err := r.ParseMultipartForm(h.maxUploadBytes); err != nil {
		return nil, err
	}
	defer func() { _ = r.MultipartForm.RemoveAll() }()

	file, _, err := r.FormFile("file")
	if err != nil {
		if errors.Is(err, http.ErrMissingFile) {
			return nil, errMissingFile
		}
		return nil, err
	}
	defer file.Close()

	blob, err := io.ReadAll(file)
	if err != nil {
		return nil, err
	}
	if len(blob) == 0 {
		return nil, errMissingFile
	}
	return blob, nil
}

func (h *Handler) handleModify(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, h.maxUploadBytes)

	var req modifyRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid request body: " + err.Error()})
		return
	}

	ref, err := domain.ParseSessionRef(req.SaveDataRef)
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	result, err := h.svc.Modify(r.Context(), application.ModifyCommand{Ref: ref, Changes: req.Changes})
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	h.writeJSON(w, http.StatusOK, modifyResponse{
		Success:     true,
		DownloadRef: result.DownloadRef.String(),
		DownloadURL: DownloadURL(result.DownloadRef),
	})
}

func (h *Handler) handleDownload(w http.ResponseWriter, r *http.Request) {
	ref, err := domain.ParseSessionRef(r.PathValue("ref"))
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	blob, err := h.svc.Download(r.Context(), ref)
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	w.Header().Set("Content-Type", "application/octet-stream")
	w.Header().Set("Content-Disposition", mime.FormatMediaType("attachment", map[string]string{"filename": DownloadFilename}))
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write(blob); err != nil {
		h.logger.Debug("write download", zap.String("ref", ref.String()), zap.Error(err))
	}
}

func (h *Handler) handleHealth(w http.ResponseWriter, _ *http.Request) {
	h.writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// DownloadURL is the path a client fetches to download ref.
func DownloadURL(ref domain.SessionRef) string {
	return "/download/" + ref.String()
}

// StatusFor maps a service error to the HTTP status reported to the client.
func StatusFor(err error) int {
	var validation *domain.ValidationError
	switch {
	case errors.Is(err, domain.ErrSessionNotFound):
		return http.StatusNotFound
	case errors.As(err, &validation), errors.Is(err, domain.ErrInvalidChange):
		return http.StatusUnprocessableEntity
	case errors.Is(err, domain.ErrInvalidContainer), errors.Is(err, domain.ErrBlockMissing):
		return http.StatusBadRequest
	case errors.Is(err, domain.ErrStoreFull):
		return http.StatusServiceUnavailable
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}

func (h *Handler) writeError(w http.ResponseWriter, r *http.Request, err error) {
	status := StatusFor(err)

	var message string
	var validation *domain.ValidationError
	switch status {
	case http.StatusNotFound:
		message = "save session not found"
	case http.StatusBadRequest:
		message = msgNotASave
	case http.StatusUnprocessableEntity:
		message = err.Error()
		if errors.As(err, &validation) {
			message = validation.Error()
		}
	case http.StatusServiceUnavailable:
		message = "service busy, try again"
	default:
		message = "internal error"
		h.logger.Error("request failed",
			zap.String("method", r.Method),
			zap.String("path", r.URL.Path),
			zap.Error(err),
		)
	}
	if status != http.StatusInternalServerError {
		h.logger.Debug("request rejected",
			zap.String("path", r.URL.Path),
			zap.Int("status", status),
			zap.Error(err),
		)
	}

	h.writeJSON(w, status, errorResponse{Error: message})
}

func (h *Handler) writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		h.logger.Debug("write response", zap.Error(err))
	}
}
