package googleauth

import (
	"context"
	"net/http"
	"net/url"
	"time"

	"github.com/boomtruck/siteapi/internal/credstore"
	"github.com/boomtruck/siteapi/internal/models"
)

// Status is the session report for the admin console.
//
// Expiry facts (IsExpired, TimeToExpiry) are computed purely from the
// locally stored timestamps; TokenValid is the live verdict from the
// provider's tokeninfo endpoint. The two are reported separately on purpose:
// the provider call may be rate limited or unreachable while the local clock
// still knows the answer.
type Status struct {
	Connected    bool
	TokenValid   bool
	IsExpired    bool
	TimeToExpiry time.Duration
	User         models.UserInfo
	Debug        credstore.Presence
}

// Status inspects the stored credential. When required fields are missing it
// reports connected=false with the field breakdown and makes no network
// call at all.
func (s *Service) Status(ctx context.Context, store credstore.Store) (Status, error) {
	cred, presence, err := store.Load()
	if err != nil {
		return Status{Debug: presence}, err
	}

	out := Status{Debug: presence}
	if !cred.Complete() {
		return out, nil
	}

	now := time.Now()
	out.Connected = true
	out.User = cred.User
	out.IsExpired = cred.Expired(now)
	out.TimeToExpiry = cred.TimeToExpiry(now)
	out.TokenValid = s.tokenValid(ctx, cred.AccessToken)

	return out, nil
}

// tokenValid asks the provider whether the access token is currently good.
// Any failure, including an unreachable provider, counts as not valid; it
// never turns into an error.
func (s *Service) tokenValid(ctx context.Context, accessToken string) bool {
	u := s.cfg.TokenInfoURL + "?access_token=" + url.QueryEscape(accessToken)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return false
	}

	resp, err := s.client.Do(req)
	if err != nil {
		s.logger.Debug("tokeninfo unreachable", "error", err.Error())
		return false
	}
	defer resp.Body.Close() //nolint:errcheck

	return resp.StatusCode == http.StatusOK
}
