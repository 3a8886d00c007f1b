package transport

import (
	"context"
	"net/http"
	"strings"

	goerrors "github.com/goliatone/go-errors"
	"github.com/goliatone/go-twilio-sync/core"
)

// BasicAuthSigner authenticates requests with the account SID and auth token,
// which is how the Sync REST API expects account credentials.
type BasicAuthSigner struct {
	AccountSID string
	AuthToken  string
}

func NewBasicAuthSigner(accountSID string, authToken string) core.Signer {
	return BasicAuthSigner{
		AccountSID: strings.TrimSpace(accountSID),
		AuthToken:  strings.TrimSpace(authToken),
	}
}

func (s BasicAuthSigner) Sign(_ context.Context, req *http.Request) error {
	if req == nil {
		return transportError(
			"transport: http request is required",
			goerrors.CategoryInternal,
			http.StatusInternalServerError,
			nil,
		)
	}
	if s.AccountSID == "" || s.AuthToken == "" {
		return transportError(
			"transport: account sid and auth token are required for signing",
			goerrors.CategoryAuth,
			http.StatusUnauthorized,
			map[string]any{"signer": "basic"},
		)
	}
	req.SetBasicAuth(s.AccountSID, s.AuthToken)
	return nil
}

var _ core.SignerFactory = NewBasicAuthSigner
