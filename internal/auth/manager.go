package auth

import (
	"context"
	"errors"
	"fmt"
	"time"

	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"

	"github.com/leadforge-labs/leadforge/internal/domain"
)

// Scopes requested during consent. Spreadsheets access plus the user's email
// for display in the UI.
var defaultScopes = []string{
	"https://www.googleapis.com/auth/spreadsheets",
	"https://www.googleapis.com/auth/userinfo.email",
}

// refreshMargin is the safety window before expiry within which tokens are
// refreshed proactively, so an in-flight request does not outlive its token.
const refreshMargin = 2 * time.Minute

// Config holds the OAuth application settings.
type Config struct {
	ClientID     string
	ClientSecret string
	RedirectURL  string
	// Endpoint overrides the provider endpoints. Zero value means Google.
	Endpoint oauth2.Endpoint
}

// Manager drives the authorization-code flow: consent URL construction, the
// one-time code exchange and refresh exchanges. It holds no credential state;
// every method is pure given its inputs.
type Manager struct {
	cfg *oauth2.Config

	// now is replaceable in tests.
	now func() time.Time
}

// NewManager creates a Manager for the configured OAuth application.
func NewManager(cfg Config) *Manager {
	endpoint := cfg.Endpoint
	if endpoint.AuthURL == "" && endpoint.TokenURL == "" {
		endpoint = google.Endpoint
	}
	return &Manager{
		cfg: &oauth2.Config{
			ClientID:     cfg.ClientID,
			ClientSecret: cfg.ClientSecret,
			RedirectURL:  cfg.RedirectURL,
			Scopes:       defaultScopes,
			Endpoint:     endpoint,
		},
		now: time.Now,
	}
}

// AuthURL builds the provider's consent URL. The opaque state is round-tripped
// unchanged through the redirect so the caller can resume the right flow.
// access_type=offline and prompt=consent make Google return a refresh token.
func (m *Manager) AuthURL(state string) string {
	return m.cfg.AuthCodeURL(state,
		oauth2.AccessTypeOffline,
		oauth2.SetAuthURLParam("prompt", "consent"),
	)
}

// Exchange performs the one-time code-for-token exchange.
func (m *Manager) Exchange(ctx context.Context, code string) (domain.Credential, error) {
	tok, err := m.cfg.Exchange(ctx, code)
	if err != nil {
		return domain.Credential{}, classifyTokenError("exchange code", err)
	}
	return credentialFromToken(tok, ""), nil
}

// EnsureFresh checks the carried credential's expiry against the current
// time. Tokens still valid past the safety margin are returned unchanged with
// no network call; expired or nearly-expired ones are refreshed. The second
// return value reports whether a refresh happened, so the transport layer
// knows to hand the new credential back to the caller.
func (m *Manager) EnsureFresh(ctx context.Context, cred domain.Credential) (domain.Credential, bool, error) {
	if !cred.Complete() {
		return domain.Credential{}, false, domain.ErrAuthMissing
	}
	if !cred.ExpiresWithin(m.now(), refreshMargin) {
		return cred, false, nil
	}

	src := m.cfg.TokenSource(ctx, &oauth2.Token{RefreshToken: cred.RefreshToken})
	tok, err := src.Token()
	if err != nil {
		return domain.Credential{}, false, classifyTokenError("refresh token", err)
	}
	return credentialFromToken(tok, cred.RefreshToken), true, nil
}

// credentialFromToken converts an oauth2 token, falling back to the previous
// refresh token when the provider omits one from the refresh response.
func credentialFromToken(tok *oauth2.Token, previousRefresh string) domain.Credential {
	refresh := tok.RefreshToken
	if refresh == "" {
		refresh = previousRefresh
	}
	return domain.Credential{
		AccessToken:  tok.AccessToken,
		RefreshToken: refresh,
		ExpiryMillis: tok.Expiry.UnixMilli(),
	}
}

// classifyTokenError separates provider rejections (the consent flow must be
// restarted) from transient transport failures (retryable).
func classifyTokenError(op string, err error) error {
	var retrieve *oauth2.RetrieveError
	if errors.As(err, &retrieve) {
		return fmt.Errorf("%w: %s: %v", domain.ErrAuthInvalid, op, err)
	}
	return fmt.Errorf("%w: %s: %v", domain.ErrAuthUnavailable, op, err)
}
