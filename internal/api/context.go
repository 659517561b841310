package api

import (
	"context"

	"github.com/leadforge-labs/leadforge/internal/domain"
)

type contextKey string

const credentialKey contextKey = "credential"

// withCredential stores the (fresh) carried credential on the context for
// the duration of one request. Nothing outlives the request.
func withCredential(ctx context.Context, cred domain.Credential) context.Context {
	return context.WithValue(ctx, credentialKey, cred)
}

// CredentialFrom returns the credential attached by the middleware.
func CredentialFrom(ctx context.Context) (domain.Credential, bool) {
	cred, ok := ctx.Value(credentialKey).(domain.Credential)
	return cred, ok
}
