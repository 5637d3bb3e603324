package services

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestSignupSendsCredentials(t *testing.T) {
	var seen struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	var apikey, authz string
	provider := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/auth/v1/signup" {
			http.NotFound(w, r)
			return
		}
		apikey = r.Header.Get("apikey")
		authz = r.Header.Get("Authorization")
		json.NewDecoder(r.Body).Decode(&seen)
		json.NewEncoder(w).Encode(map[string]interface{}{"id": "user-1", "email": seen.Email})
	}))
	defer provider.Close()

	client := NewAuthClient(provider.URL, "anon-key")
	envelope, err := client.Signup("alpha@example.com", "hunter2")
	if err != nil {
		t.Fatalf("Signup: %v", err)
	}
	if seen.Email != "alpha@example.com" || seen.Password != "hunter2" {
		t.Errorf("sent %q/%q", seen.Email, seen.Password)
	}
	if apikey != "anon-key" || authz != "Bearer anon-key" {
		t.Errorf("headers = %q/%q, want anon key on both", apikey, authz)
	}

	user := envelope.User()
	if user == nil || user["id"] != "user-1" {
		t.Errorf("envelope user = %v, want bare user object", user)
	}
}

func TestLoginSurfacesUpstreamError(t *testing.T) {
	provider := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		w.Write([]byte(`{"error":"invalid_grant","error_description":"Invalid login credentials"}`))
	}))
	defer provider.Close()

	client := NewAuthClient(provider.URL, "anon")
	_, err := client.Login("alpha@example.com", "wrong")
	var upstream *UpstreamAuthError
	if !errors.As(err, &upstream) {
		t.Fatalf("err = %v, want *UpstreamAuthError", err)
	}
	if upstream.Status != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", upstream.Status)
	}
	if upstream.Body == "" {
		t.Error("empty upstream body")
	}
}

func TestEnvelopeUserNested(t *testing.T) {
	envelope := AuthEnvelope{
		"access_token": "token",
		"user":         map[string]interface{}{"id": "user-1"},
	}
	user := envelope.User()
	if user == nil || user["id"] != "user-1" {
		t.Errorf("user = %v, want nested object", user)
	}

	if (AuthEnvelope{"access_token": "token"}).User() != nil {
		t.Error("sessionless envelope should have no user")
	}
}
