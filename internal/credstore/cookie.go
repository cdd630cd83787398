package credstore

import (
	"encoding/base64"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/boomtruck/siteapi/internal/models"
)

// Session info (and with it the refresh token and profile snapshot) outlives
// the access token by up to this long.
const sessionCookieMaxAge = 30 * 24 * time.Hour

// CookieStore persists the credential as four httpOnly cookies on a single
// request/response pair. A new store is built per request.
type CookieStore struct {
	w      http.ResponseWriter
	r      *http.Request
	secure bool
}

func NewCookieStore(w http.ResponseWriter, r *http.Request, secure bool) *CookieStore {
	return &CookieStore{w: w, r: r, secure: secure}
}

func (s *CookieStore) Load() (models.SessionCredential, Presence, error) {
	var cred models.SessionCredential
	var p Presence

	if c, err := s.r.Cookie(CookieAccessToken); err == nil && c.Value != "" {
		cred.AccessToken = c.Value
		p.HasAccessToken = true
	}
	if c, err := s.r.Cookie(CookieRefreshToken); err == nil && c.Value != "" {
		cred.RefreshToken = c.Value
		p.HasRefreshToken = true
	}
	if c, err := s.r.Cookie(CookieUserInfo); err == nil && c.Value != "" {
		if err := decodeCookieJSON(c.Value, &cred.User); err != nil {
			return cred, p, fmt.Errorf("error decoding user info cookie. Err: %w", err)
		}
		p.HasUserInfo = true
	}
	if c, err := s.r.Cookie(CookieSessionInfo); err == nil && c.Value != "" {
		if err := decodeCookieJSON(c.Value, &cred.Session); err != nil {
			return cred, p, fmt.Errorf("error decoding session info cookie. Err: %w", err)
		}
		p.HasSessionInfo = true
	}

	return cred, p, nil
}

func (s *CookieStore) Save(cred models.SessionCredential) error {
	if cred.AccessToken != "" && cred.Session.ExpiresAt.IsZero() {
		return ErrIncompleteCredential
	}

	userInfo, err := encodeCookieJSON(cred.User)
	if err != nil {
		return fmt.Errorf("error encoding user info cookie. Err: %w", err)
	}
	sessionInfo, err := encodeCookieJSON(cred.Session)
	if err != nil {
		return fmt.Errorf("error encoding session info cookie. Err: %w", err)
	}

	// Encoding errors above are the only failure modes; from here on all
	// four cookies are written together.
	accessMaxAge := int(time.Until(cred.Session.ExpiresAt).Seconds())
	sessionMaxAge := int(sessionCookieMaxAge.Seconds())

	s.set(CookieAccessToken, cred.AccessToken, accessMaxAge)
	s.set(CookieRefreshToken, cred.RefreshToken, sessionMaxAge)
	s.set(CookieUserInfo, userInfo, sessionMaxAge)
	s.set(CookieSessionInfo, sessionInfo, sessionMaxAge)

	return nil
}

func (s *CookieStore) Clear() error {
	for _, name := range []string{CookieAccessToken, CookieRefreshToken, CookieUserInfo, CookieSessionInfo} {
		http.SetCookie(s.w, &http.Cookie{
			Name:     name,
			Value:    "",
			Path:     "/",
			MaxAge:   -1,
			HttpOnly: true,
			Secure:   s.secure,
			SameSite: http.SameSiteLaxMode,
		})
	}
	return nil
}

func (s *CookieStore) set(name string, value string, maxAge int) {
	http.SetCookie(s.w, &http.Cookie{
		Name:     name,
		Value:    value,
		Path:     "/",
		MaxAge:   maxAge,
		HttpOnly: true,
		Secure:   s.secure,
		// Lax, not Strict: the provider callback is a cross-site
		// navigation and must still carry the cookies afterwards.
		SameSite: http.SameSiteLaxMode,
	})
}

func encodeCookieJSON(v any) (string, error) {
	data, err := json.Marshal(v)
	if err != nil {
		return "", err
	}
	return base64.RawURLEncoding.EncodeToString(data), nil
}

func decodeCookieJSON(value string, v any) error {
	data, err := base64.RawURLEncoding.DecodeString(value)
	if err != nil {
		return err
	}
	return json.Unmarshal(data, v)
}
