package handlers

import (
	"net/http"
)

// chain applies middlewares in the given order: m1(m2(...(h)))
func chain(h http.Handler, mds ...func(next http.Handler) http.Handler) http.Handler {
	for i := len(mds) - 1; i >= 0; i-- {
		h = mds[i](h)
	}
	return h
}

// NewRouter mounts the oauth flow, the public catalog and the admin API.
// autoRefresh must be the guard configured for the /api/admin/ prefix; it
// wraps the whole tree and picks its targets by path.
func NewRouter(
	oauth *OAuthHandler,
	catalog *CatalogHandler,
	dashboard *DashboardHandler,
	autoRefresh func(next http.Handler) http.Handler,
	loggerMW func(next http.Handler) http.Handler,
) http.Handler {
	admin := http.NewServeMux()
	admin.Handle("/", catalog.AdminHandler())
	admin.Handle("GET /dashboard", dashboard.Handler())

	root := http.NewServeMux()
	root.Handle("/oauth/", http.StripPrefix("/oauth", oauth.Handler()))
	root.Handle("/api/", http.StripPrefix("/api", catalog.PublicHandler()))
	root.Handle("/api/admin/", http.StripPrefix("/api/admin", admin))

	return chain(root,
		loggerMW,
		autoRefresh,
	)
}
