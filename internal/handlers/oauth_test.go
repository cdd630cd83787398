package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/boomtruck/siteapi/internal/apperrors"
	"github.com/boomtruck/siteapi/internal/credstore"
	"github.com/boomtruck/siteapi/internal/logger"
	"github.com/boomtruck/siteapi/internal/models"
	"github.com/boomtruck/siteapi/internal/service/googleauth"
)

// stubOAuth scripts the service layer so the handler's HTTP mapping can be
// checked shape by shape.
type stubOAuth struct {
	authorizeURL string
	authorizeErr error

	exchangeReturnTo string
	exchangeErr      error
	exchangeCred     *models.SessionCredential

	refreshCred models.SessionCredential
	refreshErr  error

	status    googleauth.Status
	statusErr error

	disconnectErr error
}

func (s *stubOAuth) AuthorizeURL(r *http.Request, returnTo string) (string, error) {
	return s.authorizeURL, s.authorizeErr
}

func (s *stubOAuth) Exchange(ctx context.Context, r *http.Request, store credstore.Store, code string, state string) (string, error) {
	if s.exchangeErr != nil {
		return "", s.exchangeErr
	}
	if s.exchangeCred != nil {
		if err := store.Save(*s.exchangeCred); err != nil {
			return "", err
		}
	}
	return s.exchangeReturnTo, nil
}

func (s *stubOAuth) Refresh(ctx context.Context, store credstore.Store) (models.SessionCredential, error) {
	return s.refreshCred, s.refreshErr
}

func (s *stubOAuth) Status(ctx context.Context, store credstore.Store) (googleauth.Status, error) {
	return s.status, s.statusErr
}

func (s *stubOAuth) Disconnect(ctx context.Context, store credstore.Store) error {
	if s.disconnectErr != nil {
		return s.disconnectErr
	}
	return store.Clear()
}

func oauthServer(t *testing.T, stub *stubOAuth) (*httptest.Server, *http.Client) {
	t.Helper()

	h := NewOAuth(stub, false, logger.NewNoOp())
	srv := httptest.NewServer(h.Handler())
	t.Cleanup(srv.Close)

	client := &http.Client{
		CheckRedirect: func(req *http.Request, via []*http.Request) error {
			return http.ErrUseLastResponse
		},
	}
	return srv, client
}

func location(t *testing.T, resp *http.Response) *url.URL {
	t.Helper()
	u, err := url.Parse(resp.Header.Get("Location"))
	require.NoError(t, err)
	return u
}

func TestOAuthHandler_Authorize(t *testing.T) {
	t.Parallel()

	t.Run("redirects to the provider", func(t *testing.T) {
		srv, client := oauthServer(t, &stubOAuth{authorizeURL: "https://accounts.example/auth?state=x"})

		resp, err := client.Get(srv.URL + "/authorize?return_to=/admin/settings")
		require.NoError(t, err)
		defer resp.Body.Close() //nolint:errcheck

		require.Equal(t, http.StatusFound, resp.StatusCode)
		assert.Equal(t, "https://accounts.example/auth?state=x", resp.Header.Get("Location"))
	})

	t.Run("missing config redirects to the error page, not the provider", func(t *testing.T) {
		srv, client := oauthServer(t, &stubOAuth{
			authorizeErr: apperrors.ErrConfigMissing,
		})

		resp, err := client.Get(srv.URL + "/authorize")
		require.NoError(t, err)
		defer resp.Body.Close() //nolint:errcheck

		require.Equal(t, http.StatusFound, resp.StatusCode)
		loc := location(t, resp)
		assert.Equal(t, "/admin/settings", loc.Path)
		assert.Equal(t, "ConfigMissing", loc.Query().Get("error"))
		assert.NotEmpty(t, loc.Query().Get("message"))
	})
}

func TestOAuthHandler_Callback(t *testing.T) {
	t.Parallel()

	now := time.Now().Truncate(time.Second)
	cred := models.SessionCredential{
		AccessToken:  "access",
		RefreshToken: "refresh",
		User:         models.UserInfo{Name: "Site Admin", Email: "admin@boomtruck.example"},
		Session:      models.SessionInfo{IssuedAt: now, ExpiresAt: now.Add(time.Hour)},
	}

	t.Run("sets cookies and redirects to the return path", func(t *testing.T) {
		srv, client := oauthServer(t, &stubOAuth{
			exchangeReturnTo: "/admin/settings",
			exchangeCred:     &cred,
		})

		resp, err := client.Get(srv.URL + "/callback?code=c&state=s")
		require.NoError(t, err)
		defer resp.Body.Close() //nolint:errcheck

		require.Equal(t, http.StatusFound, resp.StatusCode)
		assert.Equal(t, "/admin/settings", resp.Header.Get("Location"))

		names := map[string]bool{}
		for _, c := range resp.Cookies() {
			names[c.Name] = true
		}
		for _, name := range []string{credstore.CookieAccessToken, credstore.CookieRefreshToken, credstore.CookieUserInfo, credstore.CookieSessionInfo} {
			assert.Truef(t, names[name], "cookie %s should be set", name)
		}
	})

	t.Run("state mismatch", func(t *testing.T) {
		srv, client := oauthServer(t, &stubOAuth{exchangeErr: apperrors.ErrStateInvalid})

		resp, err := client.Get(srv.URL + "/callback?code=c&state=bad")
		require.NoError(t, err)
		defer resp.Body.Close() //nolint:errcheck

		loc := location(t, resp)
		assert.Equal(t, "/admin/settings", loc.Path)
		assert.Equal(t, "StateMismatch", loc.Query().Get("error"))
	})

	t.Run("rejected code", func(t *testing.T) {
		srv, client := oauthServer(t, &stubOAuth{exchangeErr: apperrors.ErrInvalidCode})

		resp, err := client.Get(srv.URL + "/callback?code=bad&state=s")
		require.NoError(t, err)
		defer resp.Body.Close() //nolint:errcheck

		assert.Equal(t, "InvalidCode", location(t, resp).Query().Get("error"))
	})

	t.Run("provider denial short-circuits", func(t *testing.T) {
		srv, client := oauthServer(t, &stubOAuth{})

		resp, err := client.Get(srv.URL + "/callback?error=access_denied")
		require.NoError(t, err)
		defer resp.Body.Close() //nolint:errcheck

		loc := location(t, resp)
		assert.Equal(t, "ProviderDenied", loc.Query().Get("error"))
		assert.Equal(t, "access_denied", loc.Query().Get("message"))
	})

	t.Run("absolute return path falls back to admin root", func(t *testing.T) {
		srv, client := oauthServer(t, &stubOAuth{
			exchangeReturnTo: "https://evil.example/phish",
			exchangeCred:     &cred,
		})

		resp, err := client.Get(srv.URL + "/callback?code=c&state=s")
		require.NoError(t, err)
		defer resp.Body.Close() //nolint:errcheck

		assert.Equal(t, "/admin", resp.Header.Get("Location"))
	})
}

func TestOAuthHandler_Refresh(t *testing.T) {
	t.Parallel()

	post := func(t *testing.T, srv *httptest.Server) (*http.Response, string) {
		t.Helper()
		resp, err := http.Post(srv.URL+"/refresh", "application/json", nil)
		require.NoError(t, err)
		body, err := io.ReadAll(resp.Body)
		require.NoError(t, err)
		defer resp.Body.Close() //nolint:errcheck
		return resp, string(body)
	}

	t.Run("success reports seconds to expiry", func(t *testing.T) {
		srv, _ := oauthServer(t, &stubOAuth{
			refreshCred: models.SessionCredential{
				AccessToken: "access",
				Session:     models.SessionInfo{ExpiresAt: time.Now().Add(time.Hour)},
			},
		})

		resp, body := post(t, srv)

		require.Equal(t, http.StatusOK, resp.StatusCode)
		var got struct {
			Success   bool `json:"success"`
			ExpiresIn int  `json:"expiresIn"`
		}
		require.NoError(t, json.Unmarshal([]byte(body), &got))
		assert.True(t, got.Success)
		assert.InDelta(t, 3600, got.ExpiresIn, 5)
	})

	t.Run("missing refresh token", func(t *testing.T) {
		srv, _ := oauthServer(t, &stubOAuth{refreshErr: apperrors.ErrMissingRefreshToken})

		resp, body := post(t, srv)

		require.Equal(t, http.StatusBadRequest, resp.StatusCode)
		assert.JSONEq(t, `{"success":false,"error":"MissingRefreshToken"}`, body)
	})

	t.Run("provider rejection carries the provider message", func(t *testing.T) {
		srv, _ := oauthServer(t, &stubOAuth{
			refreshErr: &apperrors.RefreshFailedError{StatusCode: 400, ProviderMessage: "invalid_grant"},
		})

		resp, body := post(t, srv)

		require.Equal(t, http.StatusBadRequest, resp.StatusCode)
		assert.JSONEq(t, `{"success":false,"error":"RefreshFailed","message":"invalid_grant"}`, body)
	})

	t.Run("unexpected failure is a 500", func(t *testing.T) {
		srv, _ := oauthServer(t, &stubOAuth{refreshErr: errors.New("dial tcp: timeout")})

		resp, body := post(t, srv)

		require.Equal(t, http.StatusInternalServerError, resp.StatusCode)
		assert.JSONEq(t, `{"success":false,"error":"RefreshFailed"}`, body)
	})
}

func TestOAuthHandler_Status(t *testing.T) {
	t.Parallel()

	t.Run("disconnected shape carries the debug breakdown", func(t *testing.T) {
		srv, _ := oauthServer(t, &stubOAuth{
			status: googleauth.Status{Debug: credstore.Presence{HasRefreshToken: true}},
		})

		resp, err := http.Get(srv.URL + "/status")
		require.NoError(t, err)
		body, err := io.ReadAll(resp.Body)
		require.NoError(t, err)
		defer resp.Body.Close() //nolint:errcheck

		require.Equal(t, http.StatusOK, resp.StatusCode)
		assert.JSONEq(t, `{
			"connected": false,
			"tokenValid": false,
			"debug": {
				"hasAccessToken": false,
				"hasRefreshToken": true,
				"hasUserInfo": false,
				"hasSessionInfo": false
			}
		}`, string(body))
	})

	t.Run("connected shape", func(t *testing.T) {
		srv, _ := oauthServer(t, &stubOAuth{
			status: googleauth.Status{
				Connected:    true,
				TokenValid:   true,
				IsExpired:    false,
				TimeToExpiry: 42 * time.Minute,
				User:         models.UserInfo{Name: "Site Admin", Email: "admin@boomtruck.example"},
				Debug: credstore.Presence{
					HasAccessToken: true, HasRefreshToken: true, HasUserInfo: true, HasSessionInfo: true,
				},
			},
		})

		resp, err := http.Get(srv.URL + "/status")
		require.NoError(t, err)
		body, err := io.ReadAll(resp.Body)
		require.NoError(t, err)
		defer resp.Body.Close() //nolint:errcheck

		var got struct {
			Connected  bool `json:"connected"`
			TokenValid bool `json:"tokenValid"`
			User       *struct {
				Email string `json:"email"`
			} `json:"user"`
			Session *struct {
				IsExpired    bool `json:"isExpired"`
				TimeToExpiry int  `json:"timeToExpiry"`
			} `json:"session"`
		}
		require.NoError(t, json.Unmarshal(body, &got))

		assert.True(t, got.Connected)
		assert.True(t, got.TokenValid)
		require.NotNil(t, got.User)
		assert.Equal(t, "admin@boomtruck.example", got.User.Email)
		require.NotNil(t, got.Session)
		assert.False(t, got.Session.IsExpired)
		assert.Equal(t, int((42 * time.Minute).Seconds()), got.Session.TimeToExpiry)
	})
}

func TestOAuthHandler_Disconnect(t *testing.T) {
	t.Parallel()

	t.Run("success clears all cookies", func(t *testing.T) {
		srv, _ := oauthServer(t, &stubOAuth{})

		resp, err := http.Post(srv.URL+"/disconnect", "application/json", nil)
		require.NoError(t, err)
		body, err := io.ReadAll(resp.Body)
		require.NoError(t, err)
		defer resp.Body.Close() //nolint:errcheck

		require.Equal(t, http.StatusOK, resp.StatusCode)
		assert.JSONEq(t, `{"success":true}`, string(body))

		cookies := resp.Cookies()
		require.Len(t, cookies, 4)
		for _, c := range cookies {
			assert.Equal(t, -1, c.MaxAge, "cookie %s must be expired", c.Name)
		}
	})

	t.Run("repeat disconnect still succeeds", func(t *testing.T) {
		srv, _ := oauthServer(t, &stubOAuth{})

		for range 2 {
			resp, err := http.Post(srv.URL+"/disconnect", "application/json", nil)
			require.NoError(t, err)
			body, err := io.ReadAll(resp.Body)
			require.NoError(t, err)
			_ = resp.Body.Close()

			require.Equal(t, http.StatusOK, resp.StatusCode)
			assert.JSONEq(t, `{"success":true}`, string(body))
		}
	})

	t.Run("purge failure is a 500", func(t *testing.T) {
		srv, _ := oauthServer(t, &stubOAuth{disconnectErr: errors.New("boom")})

		resp, err := http.Post(srv.URL+"/disconnect", "application/json", nil)
		require.NoError(t, err)
		body, err := io.ReadAll(resp.Body)
		require.NoError(t, err)
		defer resp.Body.Close() //nolint:errcheck

		require.Equal(t, http.StatusInternalServerError, resp.StatusCode)
		assert.JSONEq(t, `{"success":false,"error":"DisconnectFailed"}`, string(body))
	})
}
