// Package auth implements stateless credential carriage and the OAuth2
// token lifecycle. The service keeps no server-side session: the three-part
// credential travels on every request as metadata, and refreshed tokens are
// handed straight back to the caller to carry on the next request.
package auth

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/leadforge-labs/leadforge/internal/domain"
)

// Header names for the carried credential. All three must be present on any
// request that touches the spreadsheet.
const (
	HeaderAccessToken  = "X-Goog-Access-Token"
	HeaderRefreshToken = "X-Goog-Refresh-Token"
	HeaderTokenExpiry  = "X-Goog-Token-Expiry"
)

// FromHeader reconstructs the credential from request metadata.
// Returns domain.ErrAuthMissing when any of the three parts is absent or the
// expiry is not parseable; the credential is untrusted input and a broken
// carrier is indistinguishable from a missing one.
func FromHeader(h http.Header) (domain.Credential, error) {
	cred := domain.Credential{
		AccessToken:  h.Get(HeaderAccessToken),
		RefreshToken: h.Get(HeaderRefreshToken),
	}

	expiry := h.Get(HeaderTokenExpiry)
	if cred.AccessToken == "" || cred.RefreshToken == "" || expiry == "" {
		return domain.Credential{}, domain.ErrAuthMissing
	}

	millis, err := strconv.ParseInt(expiry, 10, 64)
	if err != nil {
		return domain.Credential{}, fmt.Errorf("%w: bad expiry %q", domain.ErrAuthMissing, expiry)
	}
	cred.ExpiryMillis = millis

	return cred, nil
}

// SetHeader writes the credential onto h. Used on responses after a refresh
// so the caller can carry the new values on its next request.
func SetHeader(h http.Header, cred domain.Credential) {
	h.Set(HeaderAccessToken, cred.AccessToken)
	h.Set(HeaderRefreshToken, cred.RefreshToken)
	h.Set(HeaderTokenExpiry, strconv.FormatInt(cred.ExpiryMillis, 10))
}
