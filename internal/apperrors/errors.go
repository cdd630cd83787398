package apperrors

import (
	"errors"
	"fmt"
)

var (
	// OAuth configuration is incomplete (client id or secret unset).
	// Fatal to the flow: never redirect to the provider in this state.
	ErrConfigMissing = errors.New("oauth configuration missing")

	ErrStateInvalid = errors.New("oauth state invalid or expired")
	ErrInvalidCode  = errors.New("authorization code rejected by provider")

	ErrMissingRefreshToken = errors.New("no refresh token stored")
	ErrNoCredentials       = errors.New("no credentials stored")

	ErrNotFound      = errors.New("record not found")
	ErrAlreadyExists = errors.New("record already exists")
)

// RefreshFailedError is returned when the provider rejects a refresh-token
// grant. Stored credentials are preserved when this error is returned, so
// the caller decides whether to force re-authorization.
type RefreshFailedError struct {
	StatusCode      int
	ProviderMessage string
}

func (e *RefreshFailedError) Error() string {
	return fmt.Sprintf("token refresh failed: provider returned %d: %s", e.StatusCode, e.ProviderMessage)
}
