// Package googleauth implements the Google OAuth2 session lifecycle used to
// authorize access to Analytics and Search Console data: authorize, code
// exchange, refresh, status, disconnect. All state lives in an injected
// credstore.Store; the service itself is stateless per request.
package googleauth

import (
	"fmt"
	"net/http"
	"net/url"
	"time"

	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"

	"github.com/boomtruck/siteapi/internal/apperrors"
	"github.com/boomtruck/siteapi/internal/logger"
)

// DefaultScopes covers the Analytics / Search Console read access plus the
// profile snapshot shown in the admin console.
var DefaultScopes = []string{
	"https://www.googleapis.com/auth/analytics.readonly",
	"https://www.googleapis.com/auth/webmasters.readonly",
	"https://www.googleapis.com/auth/userinfo.email",
	"https://www.googleapis.com/auth/userinfo.profile",
}

const (
	defaultUserInfoURL  = "https://www.googleapis.com/oauth2/v2/userinfo"
	defaultTokenInfoURL = "https://www.googleapis.com/oauth2/v1/tokeninfo"
	defaultRevokeURL    = "https://oauth2.googleapis.com/revoke"

	defaultStateTTL = 10 * time.Minute
)

type Config struct {
	ClientID     string
	ClientSecret string

	// RedirectURL is optional; when empty it is derived from the inbound
	// request's scheme and host.
	RedirectURL string

	// Scopes defaults to DefaultScopes.
	Scopes []string

	// StateSecret signs the anti-forgery state token.
	StateSecret string

	// StateTTL bounds the age of an echoed-back state token.
	StateTTL time.Duration

	// Provider endpoints. Defaults are Google's; tests point them at a
	// local server.
	AuthURL      string
	TokenURL     string
	UserInfoURL  string
	TokenInfoURL string
	RevokeURL    string
}

type Service struct {
	cfg    Config
	logger logger.Logger

	// Client for the provider calls made outside x/oauth2 (userinfo,
	// tokeninfo, revoke).
	client *http.Client
}

func New(cfg Config, l logger.Logger) (*Service, error) {
	if cfg.StateSecret == "" {
		return nil, fmt.Errorf("state secret must be set")
	}
	if len(cfg.Scopes) == 0 {
		cfg.Scopes = DefaultScopes
	}
	if cfg.StateTTL == 0 {
		cfg.StateTTL = defaultStateTTL
	}
	if cfg.AuthURL == "" {
		cfg.AuthURL = google.Endpoint.AuthURL
	}
	if cfg.TokenURL == "" {
		cfg.TokenURL = google.Endpoint.TokenURL
	}
	if cfg.UserInfoURL == "" {
		cfg.UserInfoURL = defaultUserInfoURL
	}
	if cfg.TokenInfoURL == "" {
		cfg.TokenInfoURL = defaultTokenInfoURL
	}
	if cfg.RevokeURL == "" {
		cfg.RevokeURL = defaultRevokeURL
	}

	return &Service{
		cfg:    cfg,
		logger: l,
		client: &http.Client{Timeout: 15 * time.Second},
	}, nil
}

// AuthorizeURL builds the provider authorization URL for the consent
// redirect. returnTo is the admin path the callback will land the user on.
//
// Fails with apperrors.ErrConfigMissing before touching the provider when
// client credentials are not configured; the caller must redirect to an
// error page, never to the provider.
func (s *Service) AuthorizeURL(r *http.Request, returnTo string) (string, error) {
	if s.cfg.ClientID == "" {
		return "", fmt.Errorf("client id is not set: %w", apperrors.ErrConfigMissing)
	}
	if s.cfg.ClientSecret == "" {
		return "", fmt.Errorf("client secret is not set: %w", apperrors.ErrConfigMissing)
	}

	state, err := s.signState(returnTo)
	if err != nil {
		return "", fmt.Errorf("error signing state token. Err: %w", err)
	}

	conf := s.oauthConfig(r)
	u := conf.AuthCodeURL(state,
		oauth2.AccessTypeOffline,
		oauth2.SetAuthURLParam("prompt", "consent"),
	)
	return u, nil
}

func (s *Service) oauthConfig(r *http.Request) *oauth2.Config {
	return &oauth2.Config{
		ClientID:     s.cfg.ClientID,
		ClientSecret: s.cfg.ClientSecret,
		RedirectURL:  s.redirectURL(r),
		Scopes:       s.cfg.Scopes,
		Endpoint: oauth2.Endpoint{
			AuthURL:  s.cfg.AuthURL,
			TokenURL: s.cfg.TokenURL,
		},
	}
}

// redirectURL returns the configured redirect URI, or derives one from the
// request's host and scheme when unset. The derived path is the callback
// route itself. A nil request is allowed for flows that never send the
// redirect URI (refresh, revoke).
func (s *Service) redirectURL(r *http.Request) string {
	if s.cfg.RedirectURL != "" || r == nil {
		return s.cfg.RedirectURL
	}

	scheme := "http"
	if r.TLS != nil || r.Header.Get("X-Forwarded-Proto") == "https" {
		scheme = "https"
	}
	u := url.URL{Scheme: scheme, Host: r.Host, Path: "/oauth/callback"}
	return u.String()
}
