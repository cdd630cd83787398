package models

import "time"

// UserInfo is the profile snapshot fetched once at code-exchange time.
// It is not refreshed automatically.
type UserInfo struct {
	ID      string `json:"id,omitempty"`
	Name    string `json:"name"`
	Email   string `json:"email"`
	Picture string `json:"picture,omitempty"`
}

// SessionInfo holds the local bookkeeping for the stored access token.
type SessionInfo struct {
	IssuedAt    time.Time `json:"issued_at"`
	ExpiresAt   time.Time `json:"expires_at"`
	LastRefresh time.Time `json:"last_refresh,omitempty"`
}

// SessionCredential is the unit of OAuth state: one per browser session.
type SessionCredential struct {
	AccessToken  string
	RefreshToken string
	User         UserInfo
	Session      SessionInfo
}

// Complete reports whether the credential can be used for provider calls.
// The refresh token is deliberately not required: the provider may omit it
// when offline access was granted earlier.
func (c SessionCredential) Complete() bool {
	return c.AccessToken != "" && !c.Session.ExpiresAt.IsZero()
}

// Expired is a pure function of (now, ExpiresAt); it never consults the
// provider.
func (c SessionCredential) Expired(now time.Time) bool {
	return now.After(c.Session.ExpiresAt)
}

// TimeToExpiry is zero or negative when the token has expired.
func (c SessionCredential) TimeToExpiry(now time.Time) time.Duration {
	return c.Session.ExpiresAt.Sub(now)
}
