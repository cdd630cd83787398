package middleware

import (
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/boomtruck/siteapi/internal/credstore"
	"github.com/boomtruck/siteapi/internal/models"
)

// DefaultRefreshWindow is how close to expiry the guard refreshes ahead of
// the request.
const DefaultRefreshWindow = 5 * time.Minute

type refresher interface {
	Refresh(ctx context.Context, store credstore.Store) (models.SessionCredential, error)
}

type warnLogger interface {
	Warn(msg string, args ...any)
}

// AutoRefreshGuard proactively refreshes the access token for requests to
// the protected path prefixes when it is within `window` of expiring.
// Updated cookies are written onto the response before the handler runs.
//
// The guard never blocks traffic: when refresh fails, or tokens are absent,
// the request proceeds with whatever credential it has and downstream
// provider calls deal with a rejected access token themselves.
func AutoRefreshGuard(r refresher, secure bool, window time.Duration, l warnLogger, prefixes ...string) func(http.Handler) http.Handler {
	if window <= 0 {
		window = DefaultRefreshWindow
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
			if !matchesPrefix(req.URL.Path, prefixes) {
				next.ServeHTTP(w, req)
				return
			}

			store := credstore.NewCookieStore(w, req, secure)
			cred, presence, err := store.Load()
			if err != nil || !presence.HasAccessToken || !presence.HasRefreshToken {
				next.ServeHTTP(w, req)
				return
			}

			if cred.TimeToExpiry(time.Now()) >= window {
				next.ServeHTTP(w, req)
				return
			}

			if _, err := r.Refresh(req.Context(), store); err != nil {
				l.Warn("proactive token refresh failed, request proceeds", "path", req.URL.Path, "error", err.Error())
			}
			next.ServeHTTP(w, req)
		})
	}
}

func matchesPrefix(path string, prefixes []string) bool {
	for _, p := range prefixes {
		if strings.HasPrefix(path, p) {
			return true
		}
	}
	return false
}
