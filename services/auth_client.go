// services/auth_client.go - HTTP client for the external identity provider
package services

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"
)

// AuthClient wraps the Supabase-compatible auth endpoints. Every operation
// is a single outbound call with a fixed timeout and no retries; a status
// >= 400 surfaces as *UpstreamAuthError with the provider's body.
type AuthClient struct {
	BaseURL string
	AnonKey string
	Client  *http.Client
}

func NewAuthClient(baseURL, anonKey string) *AuthClient {
	return &AuthClient{
		BaseURL: strings.TrimRight(baseURL, "/"),
		AnonKey: anonKey,
		Client: &http.Client{
			Timeout: 10 * time.Second,
		},
	}
}

// AuthEnvelope is the provider's decoded JSON response, passed through to
// the caller as-is.
type AuthEnvelope map[string]interface{}

// User digs the user object out of the envelope. Login-style responses nest
// it under "user"; signup responses may be the user object itself.
func (e AuthEnvelope) User() map[string]interface{} {
	if user, ok := e["user"].(map[string]interface{}); ok {
		return user
	}
	if _, ok := e["id"]; ok {
		return e
	}
	return nil
}

// Signup registers a new email/password user with the provider.
func (c *AuthClient) Signup(email, password string) (AuthEnvelope, error) {
	return c.post("/auth/v1/signup", map[string]string{
		"email":    email,
		"password": password,
	})
}

// Login exchanges email/password credentials for a session.
func (c *AuthClient) Login(email, password string) (AuthEnvelope, error) {
	return c.post("/auth/v1/token?grant_type=password", map[string]string{
		"email":    email,
		"password": password,
	})
}

// ExchangeOAuthCode completes the PKCE flow by trading the authorization
// code plus verifier for a session.
func (c *AuthClient) ExchangeOAuthCode(code, codeVerifier string) (AuthEnvelope, error) {
	return c.post("/auth/v1/token?grant_type=pkce", map[string]string{
		"auth_code":     code,
		"code_verifier": codeVerifier,
	})
}

func (c *AuthClient) post(path string, payload map[string]string) (AuthEnvelope, error) {
	body, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequest(http.MethodPost, c.BaseURL+path, bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("apikey", c.AnonKey)
	req.Header.Set("Authorization", "Bearer "+c.AnonKey)

	resp, err := c.Client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("identity provider request: %w", err)
	}
	defer resp.Body.Close()

	respBody, _ := io.ReadAll(resp.Body)

	if resp.StatusCode >= 400 {
		return nil, &UpstreamAuthError{Status: resp.StatusCode, Body: string(respBody)}
	}

	var envelope AuthEnvelope
	if err := json.Unmarshal(respBody, &envelope); err != nil {
		return nil, fmt.Errorf("decode identity provider response: %w", err)
	}
	return envelope, nil
}

// AuthorizeURL builds the provider's authorization endpoint URL for the
// PKCE handshake.
func (c *AuthClient) AuthorizeURL(redirectURI, codeChallenge, state string) string {
	query := url.Values{}
	query.Set("provider", "google")
	query.Set("redirect_to", redirectURI)
	query.Set("code_challenge", codeChallenge)
	query.Set("code_challenge_method", "S256")
	query.Set("flow_type", "pkce")
	query.Set("state", state)
	return c.BaseURL + "/auth/v1/authorize?" + query.Encode()
}
