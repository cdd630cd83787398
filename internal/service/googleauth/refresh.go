package googleauth

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"golang.org/x/oauth2"

	"github.com/boomtruck/siteapi/internal/apperrors"
	"github.com/boomtruck/siteapi/internal/credstore"
	"github.com/boomtruck/siteapi/internal/models"
)

// Refresh mints a new access token from the stored refresh token and
// updates expiry bookkeeping. The stored refresh token itself is left
// untouched: Google does not rotate it on refresh, and a rotated value in
// the response is deliberately ignored rather than risking a clobber.
//
// On provider rejection the stored credential is preserved and a
// *apperrors.RefreshFailedError is returned; the caller decides whether to
// force a full re-authorization.
//
// Two in-flight requests may refresh concurrently; the second write simply
// overwrites the first with another valid token, which is accepted behavior.
func (s *Service) Refresh(ctx context.Context, store credstore.Store) (models.SessionCredential, error) {
	cred, presence, err := store.Load()
	if err != nil {
		return cred, fmt.Errorf("error loading credential. Err: %w", err)
	}
	if !presence.HasRefreshToken {
		return cred, apperrors.ErrMissingRefreshToken
	}

	conf := s.oauthConfig(nil)
	src := conf.TokenSource(ctx, &oauth2.Token{RefreshToken: cred.RefreshToken})

	token, err := src.Token()
	if err != nil {
		var retrieveErr *oauth2.RetrieveError
		if errors.As(err, &retrieveErr) {
			return cred, &apperrors.RefreshFailedError{
				StatusCode:      retrieveErr.Response.StatusCode,
				ProviderMessage: strings.TrimSpace(string(retrieveErr.Body)),
			}
		}
		return cred, fmt.Errorf("error calling token endpoint. Err: %w", err)
	}

	cred.AccessToken = token.AccessToken
	cred.Session.ExpiresAt = token.Expiry
	cred.Session.LastRefresh = time.Now()

	if err := store.Save(cred); err != nil {
		return cred, fmt.Errorf("error saving refreshed credential. Err: %w", err)
	}

	s.logger.Debug("access token refreshed", "expires_at", token.Expiry)
	return cred, nil
}
