package handler

import (
	"vouch/internal/verification/models"
	"vouch/internal/verification/service"
)

// StartResponse is the body of a successful POST /verify/start.
type StartResponse struct {
	Message string `json:"message"`
	URL     string `json:"url"`
	Session string `json:"session"`
}

// StatusResponse is the body of GET /verify/{did}/status. Status is null on a
// degraded poll; Connection appears only once the vendor approves and the
// credential has not been issued yet.
type StatusResponse struct {
	Verification VerificationInfo    `json:"verification"`
	Connection   *ConnectionResponse `json:"connection,omitempty"`
}

// VerificationInfo carries the vendor-reported status.
type VerificationInfo struct {
	Status *models.Status `json:"status"`
}

// ConnectionResponse is the issuance network connection offered to the wallet.
type ConnectionResponse struct {
	ID  string `json:"id"`
	URL string `json:"url"`
}

func toStartResponse(res *service.StartResult) *StartResponse {
	return &StartResponse{
		Message: "success",
		URL:     res.URL,
		Session: res.SessionID,
	}
}

func toStatusResponse(res *service.StatusResult) *StatusResponse {
	out := &StatusResponse{Verification: VerificationInfo{Status: res.Status}}
	if res.Connection != nil {
		out.Connection = &ConnectionResponse{
			ID:  res.Connection.ID,
			URL: res.Connection.URL,
		}
	}
	return out
}
