package handlers

import (
	"context"
	"errors"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/boomtruck/siteapi/internal/apperrors"
	"github.com/boomtruck/siteapi/internal/credstore"
	"github.com/boomtruck/siteapi/internal/handlers/render"
	"github.com/boomtruck/siteapi/internal/logger"
	"github.com/boomtruck/siteapi/internal/models"
	"github.com/boomtruck/siteapi/internal/service/googleauth"
)

const (
	// Where the callback lands the user when no return path was asked for,
	// and where flow errors are surfaced with error/message query params.
	defaultReturnPath = "/admin"
	adminErrorPath    = "/admin/settings"
)

type oauthService interface {
	AuthorizeURL(r *http.Request, returnTo string) (string, error)
	Exchange(ctx context.Context, r *http.Request, store credstore.Store, code string, state string) (string, error)
	Refresh(ctx context.Context, store credstore.Store) (models.SessionCredential, error)
	Status(ctx context.Context, store credstore.Store) (googleauth.Status, error)
	Disconnect(ctx context.Context, store credstore.Store) error
}

type OAuthHandler struct {
	auth   oauthService
	secure bool
	logger logger.Logger
}

func NewOAuth(auth oauthService, secure bool, l logger.Logger) *OAuthHandler {
	return &OAuthHandler{auth: auth, secure: secure, logger: l}
}

func (h *OAuthHandler) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /authorize", h.authorize)
	mux.HandleFunc("GET /callback", h.callback)
	mux.HandleFunc("POST /refresh", h.refresh)
	mux.HandleFunc("GET /status", h.status)
	mux.HandleFunc("POST /disconnect", h.disconnect)

	return mux
}

func (h *OAuthHandler) store(w http.ResponseWriter, r *http.Request) credstore.Store {
	return credstore.NewCookieStore(w, r, h.secure)
}

func (h *OAuthHandler) authorize(w http.ResponseWriter, r *http.Request) {
	returnTo := sanitizeReturnPath(r.URL.Query().Get("return_to"))

	u, err := h.auth.AuthorizeURL(r, returnTo)
	if err != nil {
		h.logger.Error("cannot start authorization", "error", err.Error())
		if errors.Is(err, apperrors.ErrConfigMissing) {
			// Never send the user to the provider with broken client
			// config; the settings page explains what to fill in.
			h.redirectError(w, r, "ConfigMissing", err.Error())
			return
		}
		h.redirectError(w, r, "AuthorizeFailed", "could not build authorization URL")
		return
	}

	http.Redirect(w, r, u, http.StatusFound)
}

func (h *OAuthHandler) callback(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	if errCode := q.Get("error"); errCode != "" {
		h.redirectError(w, r, "ProviderDenied", errCode)
		return
	}

	returnTo, err := h.auth.Exchange(r.Context(), r, h.store(w, r), q.Get("code"), q.Get("state"))
	if err != nil {
		h.logger.Error("code exchange failed", "error", err.Error())
		switch {
		case errors.Is(err, apperrors.ErrStateInvalid):
			h.redirectError(w, r, "StateMismatch", "authorization state could not be verified, please retry")
		case errors.Is(err, apperrors.ErrInvalidCode):
			h.redirectError(w, r, "InvalidCode", "authorization code was rejected, please retry")
		default:
			h.redirectError(w, r, "ExchangeFailed", "could not complete the connection")
		}
		return
	}

	http.Redirect(w, r, sanitizeReturnPath(returnTo), http.StatusFound)
}

func (h *OAuthHandler) refresh(w http.ResponseWriter, r *http.Request) {
	type successResponse struct {
		Success   bool `json:"success"`
		ExpiresIn int  `json:"expiresIn"`
	}
	type errorResponse struct {
		Success bool   `json:"success"`
		Error   string `json:"error"`
		Message string `json:"message,omitempty"`
	}

	cred, err := h.auth.Refresh(r.Context(), h.store(w, r))
	if err != nil {
		var refreshErr *apperrors.RefreshFailedError
		switch {
		case errors.Is(err, apperrors.ErrMissingRefreshToken):
			render.JSONWithStatus(w, errorResponse{Error: "MissingRefreshToken"}, http.StatusBadRequest)
		case errors.As(err, &refreshErr):
			render.JSONWithStatus(w, errorResponse{Error: "RefreshFailed", Message: refreshErr.ProviderMessage}, http.StatusBadRequest)
		default:
			h.logger.Error("token refresh failed", "error", err.Error())
			render.JSONWithStatus(w, errorResponse{Error: "RefreshFailed"}, http.StatusInternalServerError)
		}
		return
	}

	render.JSON(w, successResponse{
		Success:   true,
		ExpiresIn: int(time.Until(cred.Session.ExpiresAt).Seconds()),
	})
}

func (h *OAuthHandler) status(w http.ResponseWriter, r *http.Request) {
	type sessionResponse struct {
		IsExpired    bool `json:"isExpired"`
		TimeToExpiry int  `json:"timeToExpiry"` // seconds, negative when expired
	}
	type response struct {
		Connected  bool               `json:"connected"`
		TokenValid bool               `json:"tokenValid"`
		User       *models.UserInfo   `json:"user,omitempty"`
		Session    *sessionResponse   `json:"session,omitempty"`
		Debug      credstore.Presence `json:"debug"`
		Error      string             `json:"error,omitempty"`
	}

	st, err := h.auth.Status(r.Context(), h.store(w, r))
	if err != nil {
		h.logger.Error("status check failed", "error", err.Error())
		render.JSON(w, response{Connected: false, Debug: st.Debug, Error: "StatusFailed"})
		return
	}

	resp := response{
		Connected:  st.Connected,
		TokenValid: st.TokenValid,
		Debug:      st.Debug,
	}
	if st.Connected {
		user := st.User
		resp.User = &user
		resp.Session = &sessionResponse{
			IsExpired:    st.IsExpired,
			TimeToExpiry: int(st.TimeToExpiry.Seconds()),
		}
	}
	render.JSON(w, resp)
}

func (h *OAuthHandler) disconnect(w http.ResponseWriter, r *http.Request) {
	type response struct {
		Success bool   `json:"success"`
		Error   string `json:"error,omitempty"`
	}

	if err := h.auth.Disconnect(r.Context(), h.store(w, r)); err != nil {
		h.logger.Error("disconnect failed", "error", err.Error())
		render.JSONWithStatus(w, response{Error: "DisconnectFailed"}, http.StatusInternalServerError)
		return
	}

	render.JSON(w, response{Success: true})
}

func (h *OAuthHandler) redirectError(w http.ResponseWriter, r *http.Request, code string, message string) {
	q := url.Values{"error": {code}, "message": {message}}
	http.Redirect(w, r, adminErrorPath+"?"+q.Encode(), http.StatusFound)
}

// sanitizeReturnPath keeps redirects on this site: only rooted paths pass,
// anything absolute or protocol-relative falls back to the admin root.
func sanitizeReturnPath(p string) string {
	if p == "" || !strings.HasPrefix(p, "/") || strings.HasPrefix(p, "//") {
		return defaultReturnPath
	}
	return p
}
