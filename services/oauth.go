// services/oauth.go - PKCE authorization-code handshake
package services

import (
	"crypto/rand"
	"crypto/sha256"
	"encoding/base64"
	"time"

	"eyehunt/utils"
)

const oauthStateTTL = 10 * time.Minute

// OAuthService drives the PKCE flow against the identity provider. The
// state store is process-local; entries expire after ten minutes and are
// consumed on first use. A multi-instance deployment needs a shared store
// injected here instead.
type OAuthService struct {
	client      *AuthClient
	redirectURI string
	states      *utils.TTLCache[string]
}

func NewOAuthService(client *AuthClient, redirectURI string) *OAuthService {
	return &OAuthService{
		client:      client,
		redirectURI: redirectURI,
		states:      utils.NewTTLCache[string](),
	}
}

// Begin generates a state token and PKCE pair, stores the verifier under
// the state, and returns the provider authorization URL plus the state.
func (s *OAuthService) Begin() (authURL, state string, err error) {
	state, err = randomToken(16)
	if err != nil {
		return "", "", err
	}

	verifier, err := randomToken(64)
	if err != nil {
		return "", "", err
	}

	digest := sha256.Sum256([]byte(verifier))
	challenge := base64.RawURLEncoding.EncodeToString(digest[:])

	s.states.Set(state, verifier, oauthStateTTL)

	return s.client.AuthorizeURL(s.redirectURI, challenge, state), state, nil
}

// Complete consumes the stored verifier for state and exchanges the
// authorization code with the provider.
func (s *OAuthService) Complete(code, state string) (AuthEnvelope, error) {
	verifier, ok := s.states.Pop(state)
	if !ok {
		return nil, ErrInvalidOAuthState
	}
	return s.client.ExchangeOAuthCode(code, verifier)
}

// PurgeExpiredStates drops dead state entries; called by the cleanup job.
func (s *OAuthService) PurgeExpiredStates() int {
	return s.states.PurgeExpired()
}

func randomToken(byteLen int) (string, error) {
	buf := make([]byte, byteLen)
	if _, err := rand.Read(buf); err != nil {
		return "", err
	}
	return base64.RawURLEncoding.EncodeToString(buf), nil
}
