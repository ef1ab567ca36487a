// Package issuance implements the credential issuance network client.
// Every request carries a short-lived bearer token minted from the issuer's
// signing key, so no token exchange round-trip is needed.
package issuance

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"vouch/internal/platform/config"
	"vouch/internal/verification/models"
	dErrors "vouch/pkg/domain-errors"
)

// tokenTTL bounds the validity of a minted bearer token.
const tokenTTL = 2 * time.Minute

// HTTPDoer is the minimal interface needed from an HTTP client.
type HTTPDoer interface {
	Do(req *http.Request) (*http.Response, error)
}

// Client calls the issuance network's connection and credential APIs.
type Client struct {
	baseURL    string
	issuerID   string
	signingKey []byte
	httpClient HTTPDoer
	now        func() time.Time
}

// Option configures the Client.
type Option func(*Client)

// WithHTTPClient sets a custom HTTP client (for testing).
func WithHTTPClient(doer HTTPDoer) Option {
	return func(c *Client) {
		c.httpClient = doer
	}
}

// New creates an issuance client from configuration.
func New(cfg config.Issuance, opts ...Option) *Client {
	c := &Client{
		baseURL:    cfg.BaseURL,
		issuerID:   cfg.IssuerID,
		signingKey: []byte(cfg.SigningKey),
		httpClient: &http.Client{Timeout: cfg.Timeout},
		now:        time.Now,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// connectionResponse is the network's answer to connection creation.
type connectionResponse struct {
	ID  string `json:"id"`
	URL string `json:"url"`
}

// credentialRequest is the credential offer body.
type credentialRequest struct {
	IssuerID string             `json:"issuerId"`
	Claims   models.ClaimRecord `json:"claims"`
}

// CreateConnection establishes a new peer connection for credential delivery.
func (c *Client) CreateConnection(ctx context.Context) (*models.Connection, error) {
	respBody, err := c.do(ctx, http.MethodPost, "/api/v1/connections", nil)
	if err != nil {
		return nil, err
	}

	var created connectionResponse
	if err := json.Unmarshal(respBody, &created); err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeVendorUnavailable, "failed to parse connection response")
	}

	return &models.Connection{ID: created.ID, URL: created.URL}, nil
}

// IssueCredential submits a credential offer carrying the claim record over
// the given connection.
func (c *Client) IssueCredential(ctx context.Context, connectionID string, claim models.ClaimRecord) error {
	body, err := json.Marshal(credentialRequest{IssuerID: c.issuerID, Claims: claim})
	if err != nil {
		return dErrors.Wrap(err, dErrors.CodeInternal, "failed to marshal credential offer")
	}

	path := fmt.Sprintf("/api/v1/connections/%s/credentials", connectionID)
	if _, err := c.do(ctx, http.MethodPost, path, body); err != nil {
		return err
	}
	return nil
}

// GetConnection returns the issuance network's connection record verbatim.
func (c *Client) GetConnection(ctx context.Context, connectionID string) (json.RawMessage, error) {
	respBody, err := c.do(ctx, http.MethodGet, "/api/v1/connections/"+connectionID, nil)
	if err != nil {
		return nil, err
	}
	return json.RawMessage(respBody), nil
}

func (c *Client) do(ctx context.Context, method, path string, body []byte) ([]byte, error) {
	var reader io.Reader
	if body != nil {
		reader = bytes.NewReader(body)
	}
	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to create request")
	}

	token, err := c.mintToken()
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to mint bearer token")
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+token)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeVendorUnavailable, "issuance request failed")
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeVendorUnavailable, "failed to read issuance response")
	}

	switch resp.StatusCode {
	case http.StatusOK, http.StatusCreated, http.StatusAccepted:
		return respBody, nil
	case http.StatusNotFound:
		return nil, dErrors.New(dErrors.CodeNotFound, "connection not found")
	default:
		return nil, dErrors.New(dErrors.CodeVendorUnavailable,
			fmt.Sprintf("issuance network returned status %d", resp.StatusCode))
	}
}

// mintToken builds a self-signed client assertion identifying the issuer.
func (c *Client) mintToken() (string, error) {
	now := c.now()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"iss": c.issuerID,
		"jti": uuid.NewString(),
		"iat": now.Unix(),
		"exp": now.Add(tokenTTL).Unix(),
	})
	return token.SignedString(c.signingKey)
}
