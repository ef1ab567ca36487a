package handler

import (
	"encoding/json"
	"net/http"

	"github.com/go-playground/validator/v10"

	dErrors "vouch/pkg/domain-errors"
)

var validate = validator.New()

// StartRequest is the body of POST /verify/start. Session carries a
// client-supplied vendor session id to resume, when the wallet has one.
type StartRequest struct {
	DID     string `json:"did" validate:"required,startswith=did:"`
	Session string `json:"session"`
}

// decode parses and validates a JSON request body.
func decode[T any](r *http.Request) (T, error) {
	var req T
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		return req, dErrors.Wrap(err, dErrors.CodeInvalidInput, "invalid request body")
	}
	if err := validate.Struct(req); err != nil {
		return req, dErrors.Wrap(err, dErrors.CodeInvalidInput, "missing or malformed fields")
	}
	return req, nil
}
