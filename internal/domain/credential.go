package domain

import "time"

// Credential is the three-part OAuth credential carried on every request.
// The service never persists it; it is reconstructed from request metadata
// on each call and must be treated as untrusted input.
type Credential struct {
	// AccessToken is the bearer token for spreadsheet API access.
	AccessToken string `json:"access_token"`
	// RefreshToken is used to obtain new access tokens.
	RefreshToken string `json:"refresh_token"`
	// ExpiryMillis is the access token expiry as Unix epoch milliseconds.
	ExpiryMillis int64 `json:"expiry"`
}

// Complete reports whether all three parts are present.
func (c Credential) Complete() bool {
	return c.AccessToken != "" && c.RefreshToken != "" && c.ExpiryMillis != 0
}

// Expiry returns the access token expiry as a time.Time.
func (c Credential) Expiry() time.Time {
	return time.UnixMilli(c.ExpiryMillis)
}

// ExpiresWithin reports whether the token is already expired at now or will
// expire within margin.
func (c Credential) ExpiresWithin(now time.Time, margin time.Duration) bool {
	return !now.Add(margin).Before(c.Expiry())
}
