package googleauth

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/boomtruck/siteapi/internal/apperrors"
	"github.com/boomtruck/siteapi/internal/credstore"
	"github.com/boomtruck/siteapi/internal/models"
)

// Exchange handles the provider callback: verifies state, trades the code
// for tokens, fetches the profile snapshot and writes the credential.
// Returns the return path embedded in the state.
//
// Nothing is written to the store unless every piece succeeded; a failure
// never leaves partial credentials behind.
func (s *Service) Exchange(ctx context.Context, r *http.Request, store credstore.Store, code string, state string) (string, error) {
	returnTo, err := s.verifyState(state)
	if err != nil {
		return "", err
	}

	prev, prevPresence, err := store.Load()
	if err != nil {
		return "", fmt.Errorf("error loading existing credential. Err: %w", err)
	}

	conf := s.oauthConfig(r)
	token, err := conf.Exchange(ctx, code)
	if err != nil {
		return "", fmt.Errorf("code exchange rejected (%v): %w", err, apperrors.ErrInvalidCode)
	}
	if token.Expiry.IsZero() {
		return "", fmt.Errorf("token response carries no expiry: %w", apperrors.ErrInvalidCode)
	}

	user, err := s.fetchUserInfo(ctx, token.AccessToken)
	if err != nil {
		return "", fmt.Errorf("error fetching user info. Err: %w", err)
	}

	// A consent screen revisited without offline access omits the refresh
	// token; an already-stored one must survive.
	refresh := token.RefreshToken
	if refresh == "" && prevPresence.HasRefreshToken {
		refresh = prev.RefreshToken
	}

	now := time.Now()
	cred := models.SessionCredential{
		AccessToken:  token.AccessToken,
		RefreshToken: refresh,
		User:         user,
		Session: models.SessionInfo{
			IssuedAt:  now,
			ExpiresAt: token.Expiry,
		},
	}
	if err := store.Save(cred); err != nil {
		return "", fmt.Errorf("error saving credential. Err: %w", err)
	}

	s.logger.Info("google account connected", "email", user.Email, "expires_at", token.Expiry)
	return returnTo, nil
}

func (s *Service) fetchUserInfo(ctx context.Context, accessToken string) (models.UserInfo, error) {
	var user models.UserInfo

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.cfg.UserInfoURL, nil)
	if err != nil {
		return user, err
	}
	req.Header.Set("Authorization", "Bearer "+accessToken)

	resp, err := s.client.Do(req)
	if err != nil {
		return user, fmt.Errorf("error calling userinfo endpoint. Err: %w", err)
	}
	defer resp.Body.Close() //nolint:errcheck

	if resp.StatusCode != http.StatusOK {
		return user, fmt.Errorf("userinfo endpoint returned %d", resp.StatusCode)
	}
	if err := json.NewDecoder(resp.Body).Decode(&user); err != nil {
		return user, fmt.Errorf("error decoding userinfo response. Err: %w", err)
	}
	return user, nil
}
