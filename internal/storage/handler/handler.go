// Package handler exposes the wallet file bridge: multipart upload into the
// object store and attachment download by key.
package handler

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"vouch/internal/platform/metrics"
	"vouch/internal/platform/middleware"
	"vouch/internal/storage"
	dErrors "vouch/pkg/domain-errors"
	"vouch/pkg/platform/httputil"
)

// maxUploadBytes bounds a single multipart upload.
const maxUploadBytes = 32 << 20

type Handler struct {
	store   storage.ObjectStore
	logger  *slog.Logger
	metrics *metrics.Metrics
}

// New creates the file bridge handler. Metrics may be nil in tests.
func New(store storage.ObjectStore, logger *slog.Logger, m *metrics.Metrics) *Handler {
	return &Handler{store: store, logger: logger, metrics: m}
}

func (h *Handler) Register(r chi.Router) {
	r.Post("/sync", h.HandleSync)
	r.Get("/fetch/{did}", h.HandleFetch)
}

// HandleSync stores an uploaded file under its client-supplied filename.
func (h *Handler) HandleSync(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	requestID := middleware.GetRequestID(ctx)

	r.Body = http.MaxBytesReader(w, r.Body, maxUploadBytes)
	file, header, err := r.FormFile("file")
	if err != nil {
		httputil.WriteError(w, dErrors.Wrap(err, dErrors.CodeInvalidInput, "missing multipart file field"))
		return
	}
	defer file.Close()

	h.countOp("put")
	if err := h.store.Put(ctx, header.Filename, file); err != nil {
		h.countError("put")
		h.logger.ErrorContext(ctx, "file upload failed",
			"error", err,
			"request_id", requestID,
			"key", header.Filename,
		)
		httputil.WriteError(w, dErrors.Wrap(err, dErrors.CodeStorageUnavailable, "could not store file"))
		return
	}

	h.logger.InfoContext(ctx, "file stored",
		"key", header.Filename,
		"size", header.Size,
		"request_id", requestID,
	)
	httputil.WriteMessage(w, http.StatusOK, "File uploaded successfully.")
}

// HandleFetch streams the stored object back as an attachment.
func (h *Handler) HandleFetch(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	requestID := middleware.GetRequestID(ctx)
	key := chi.URLParam(r, "did")

	h.countOp("get")
	rc, err := h.store.Get(ctx, key)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			httputil.WriteError(w, dErrors.New(dErrors.CodeNotFound, "file not found"))
			return
		}
		h.countError("get")
		h.logger.ErrorContext(ctx, "file fetch failed", "error", err, "request_id", requestID, "key", key)
		httputil.WriteError(w, dErrors.Wrap(err, dErrors.CodeStorageUnavailable, "could not fetch file"))
		return
	}
	defer rc.Close()

	w.Header().Set("Content-Type", "application/octet-stream")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", key))
	if _, err := io.Copy(w, rc); err != nil {
		// Headers are already written; nothing to send but a log line.
		h.logger.WarnContext(ctx, "file stream interrupted", "error", err, "request_id", requestID, "key", key)
	}
}

func (h *Handler) countOp(op string) {
	if h.metrics != nil {
		h.metrics.StorageOps.WithLabelValues(op).Inc()
	}
}

func (h *Handler) countError(op string) {
	if h.metrics != nil {
		h.metrics.StorageErrors.WithLabelValues(op).Inc()
	}
}
