// Package credstore holds the OAuth session credential behind a narrow
// load/save/clear contract, so the token lifecycle stays testable without a
// real browser cookie jar.
package credstore

import (
	"errors"

	"github.com/boomtruck/siteapi/internal/models"
)

// Cookie names for the four credential fields.
const (
	CookieAccessToken  = "access_token"
	CookieRefreshToken = "refresh_token"
	CookieUserInfo     = "user_info"
	CookieSessionInfo  = "session_info"
)

// ErrIncompleteCredential is returned by Save when the credential would be
// persisted in a partially-usable state (access token without expiry).
var ErrIncompleteCredential = errors.New("access token requires an expiry")

// Presence reports which of the four fields are currently stored.
// It backs the debug breakdown of the status endpoint.
type Presence struct {
	HasAccessToken  bool `json:"hasAccessToken"`
	HasRefreshToken bool `json:"hasRefreshToken"`
	HasUserInfo     bool `json:"hasUserInfo"`
	HasSessionInfo  bool `json:"hasSessionInfo"`
}

// Store is the credential persistence contract.
//
// Save must write all four fields together or not at all, and Clear must
// remove all four unconditionally. Implementations are scoped to a single
// browser session: at most one credential exists per store.
type Store interface {
	// Load returns whatever credential data is stored. A partially
	// populated credential is returned as-is together with the field
	// presence; callers decide whether it is usable.
	Load() (models.SessionCredential, Presence, error)

	// Save persists all four fields. An access token without an expiry
	// is rejected with ErrIncompleteCredential before anything is written.
	Save(cred models.SessionCredential) error

	// Clear removes all four fields. Clearing an empty store is not an
	// error.
	Clear() error
}
