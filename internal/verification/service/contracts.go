package service

//go:generate mockgen -source=contracts.go -destination=mocks/mocks.go -package=mocks VendorClient,IssuanceClient

import (
	"context"
	"encoding/json"

	"vouch/internal/verification/models"
)

// VendorClient talks to the external KYC vendor.
type VendorClient interface {
	// CreateSession starts a fresh verification session for the subject and
	// returns the vendor session id plus the continuation URL the wallet
	// should open.
	CreateSession(ctx context.Context, did models.DID) (*models.VendorSession, error)

	// FetchSession returns the current state of a vendor session: status,
	// continuation URL, the originating subject from the vendor's correlation
	// field, and the decision payload once the vendor has produced one.
	FetchSession(ctx context.Context, sessionID string) (*models.VendorState, error)
}

// IssuanceClient talks to the credential issuance network.
type IssuanceClient interface {
	// CreateConnection establishes a new peer connection for credential delivery.
	CreateConnection(ctx context.Context) (*models.Connection, error)

	// IssueCredential submits a credential offer carrying the claim record
	// over the given connection.
	IssueCredential(ctx context.Context, connectionID string, claim models.ClaimRecord) error

	// GetConnection returns the issuance network's connection record verbatim.
	GetConnection(ctx context.Context, connectionID string) (json.RawMessage, error)
}
