// services/errors.go - Failure sentinels shared by handlers
package services

import "errors"

var (
	ErrNotFound             = errors.New("not found")
	ErrEyeballInactive      = errors.New("eyeball inactive")
	ErrGroupRequired        = errors.New("group_id is required when user has no group")
	ErrNotGroupMember       = errors.New("not in group")
	ErrGroupGameMismatch    = errors.New("group mismatch for game")
	ErrAlreadyCaptured      = errors.New("already captured")
	ErrNoActiveGame         = errors.New("no active game found, provide game_id explicitly")
	ErrCodeAllocationFailed = errors.New("unable to allocate group code")
	ErrGroupFull            = errors.New("group is full")
	ErrInvalidOAuthState    = errors.New("invalid or expired OAuth state")
)

// UpstreamAuthError carries the identity provider's response body so the
// caller sees the provider's own message, not a generic failure.
type UpstreamAuthError struct {
	Status int
	Body   string
}

func (e *UpstreamAuthError) Error() string {
	if e.Body != "" {
		return e.Body
	}
	return "identity provider request failed"
}
