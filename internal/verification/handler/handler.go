// Package handler exposes the verification flow over HTTP.
package handler

import (
	"context"
	"encoding/json"
	"html/template"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"vouch/internal/platform/device"
	"vouch/internal/platform/middleware"
	"vouch/internal/verification/models"
	"vouch/internal/verification/service"
	dErrors "vouch/pkg/domain-errors"
	"vouch/pkg/platform/httputil"
)

// Service defines the orchestration operations the handler needs.
// Returns domain objects, not HTTP response DTOs.
type Service interface {
	StartVerification(ctx context.Context, did models.DID, clientSessionID string) (*service.StartResult, error)
	CheckStatus(ctx context.Context, did models.DID, querySessionID string) (*service.StatusResult, error)
	ClaimCredential(ctx context.Context, connectionID string, accepted bool) (*service.ClaimResult, error)
	HandleCallback(ctx context.Context, vendorSessionID string)
	GetConnectionRecord(ctx context.Context, connectionID string) (json.RawMessage, error)
}

type Handler struct {
	service Service
	logger  *slog.Logger
}

func New(service Service, logger *slog.Logger) *Handler {
	return &Handler{service: service, logger: logger}
}

// Register mounts the API-key protected routes.
func (h *Handler) Register(r chi.Router) {
	r.Post("/verify/start", h.HandleStart)
	r.Get("/verify/{did}/status", h.HandleStatus)
	r.Get("/verify/claims/{id}", h.HandleClaim)
	r.Get("/connections/{id}", h.HandleGetConnection)
}

// RegisterPublic mounts the vendor redirect, which carries no API key because
// the vendor controls the browser at that point.
func (h *Handler) RegisterPublic(r chi.Router) {
	r.Get("/verify/complete", h.HandleComplete)
}

// HandleStart resolves or creates a vendor session for the subject.
func (h *Handler) HandleStart(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	requestID := middleware.GetRequestID(ctx)

	req, err := decode[StartRequest](r)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}

	h.logger.InfoContext(ctx, "verification start requested",
		"did", req.DID,
		"platform", device.Classify(r.UserAgent()),
		"device", device.Describe(r.UserAgent()),
		"request_id", requestID,
	)

	res, err := h.service.StartVerification(ctx, models.DID(req.DID), req.Session)
	if err != nil {
		h.logger.ErrorContext(ctx, "start verification failed", "error", err, "request_id", requestID, "did", req.DID)
		httputil.WriteError(w, err)
		return
	}

	httputil.WriteJSON(w, http.StatusOK, toStartResponse(res))
}

// HandleStatus polls the vendor for the subject's current session.
func (h *Handler) HandleStatus(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	requestID := middleware.GetRequestID(ctx)

	did := chi.URLParam(r, "did")
	if did == "" {
		httputil.WriteError(w, dErrors.New(dErrors.CodeInvalidInput, "missing did"))
		return
	}

	res, err := h.service.CheckStatus(ctx, models.DID(did), r.URL.Query().Get("session"))
	if err != nil {
		h.logger.ErrorContext(ctx, "status check failed", "error", err, "request_id", requestID, "did", did)
		httputil.WriteError(w, err)
		return
	}

	httputil.WriteJSON(w, http.StatusOK, toStatusResponse(res))
}

// HandleClaim accepts or declines a credential offer for a connection.
func (h *Handler) HandleClaim(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	requestID := middleware.GetRequestID(ctx)

	connectionID := chi.URLParam(r, "id")
	accepted := r.URL.Query().Get("accept") == "true"

	res, err := h.service.ClaimCredential(ctx, connectionID, accepted)
	if err != nil {
		h.logger.ErrorContext(ctx, "claim failed", "error", err, "request_id", requestID, "connection_id", connectionID)
		httputil.WriteError(w, err)
		return
	}

	httputil.WriteMessage(w, http.StatusOK, res.Message)
}

// HandleGetConnection proxies the issuance network's connection record.
func (h *Handler) HandleGetConnection(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	requestID := middleware.GetRequestID(ctx)

	connectionID := chi.URLParam(r, "id")
	record, err := h.service.GetConnectionRecord(ctx, connectionID)
	if err != nil {
		h.logger.ErrorContext(ctx, "connection proxy failed", "error", err, "request_id", requestID, "connection_id", connectionID)
		httputil.WriteError(w, err)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(record)
}

var bouncePage = template.Must(template.New("bounce").Parse(`<!DOCTYPE html>
<html>
<head><title>Verification complete</title></head>
<body>
<p>Your identity check has finished. You can close this window and return to your wallet.</p>
</body>
</html>
`))

// HandleComplete receives the vendor's browser redirect after the user
// finishes the hosted flow. The registry is reconciled as a side effect; the
// page renders regardless of the outcome.
func (h *Handler) HandleComplete(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	if sessionID := r.URL.Query().Get("verificationSessionId"); sessionID != "" {
		h.service.HandleCallback(ctx, sessionID)
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	_ = bouncePage.Execute(w, nil)
}
