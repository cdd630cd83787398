package googleauth

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"github.com/boomtruck/siteapi/internal/credstore"
)

// Disconnect revokes the access token with the provider and purges the
// store. Revocation is best effort: a failure is logged and never blocks
// the purge, since leaving stale credentials active is worse than leaving a
// token unrevoked. Idempotent - disconnecting an empty store succeeds.
func (s *Service) Disconnect(ctx context.Context, store credstore.Store) error {
	cred, presence, err := store.Load()
	if err == nil && presence.HasAccessToken {
		if err := s.revoke(ctx, cred.AccessToken); err != nil {
			s.logger.Warn("token revoke failed, purging anyway", "error", err.Error())
		}
	}

	// Terminal step, unconditional.
	if err := store.Clear(); err != nil {
		return fmt.Errorf("error purging credentials. Err: %w", err)
	}

	s.logger.Info("google account disconnected")
	return nil
}

func (s *Service) revoke(ctx context.Context, accessToken string) error {
	form := url.Values{"token": {accessToken}}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.cfg.RevokeURL, strings.NewReader(form.Encode()))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := s.client.Do(req)
	if err != nil {
		return fmt.Errorf("error calling revoke endpoint. Err: %w", err)
	}
	defer resp.Body.Close() //nolint:errcheck

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("revoke endpoint returned %d", resp.StatusCode)
	}
	return nil
}
