// Package handler exposes the Google login flow, logout and profile routes.
package handler

//go:generate mockgen -source=handler.go -destination=mocks/mocks.go -package=mocks Service,OAuthClient

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"net/url"

	"github.com/go-chi/chi/v5"

	"conductor/internal/auth/models"
	"conductor/internal/auth/service"
	id "conductor/pkg/domain"
	dErrors "conductor/pkg/domain-errors"
	"conductor/pkg/platform/httputil"
	authmw "conductor/pkg/platform/middleware/auth"
	"conductor/pkg/requestcontext"
)

type Service interface {
	Login(ctx context.Context, identity *models.Identity) (*service.LoginResult, error)
	DeleteSession(ctx context.Context, sessionID id.SessionID) error
	GetUserProfile(ctx context.Context, actor *models.User, targetID id.UserID) (*models.User, error)
	UpdateProfile(ctx context.Context, actor *models.User, upd models.ProfileUpdate) (*models.User, error)
}

type OAuthClient interface {
	AuthCodeURL(w http.ResponseWriter) (string, error)
	Exchange(ctx context.Context, r *http.Request, code, state string) (*models.Identity, error)
	ClearState(w http.ResponseWriter)
}

type SessionCookies interface {
	SetSession(w http.ResponseWriter, sessionID id.SessionID) error
	ReadSession(r *http.Request) (id.SessionID, error)
	ClearSession(w http.ResponseWriter)
}

type Handler struct {
	service     Service
	oauth       OAuthClient
	cookies     SessionCookies
	requireAuth func(http.Handler) http.Handler
	frontendURL string
	logger      *slog.Logger
}

// New wires the handler. requireAuth is the session gate applied to the
// profile routes.
func New(svc Service, oauth OAuthClient, cookies SessionCookies, requireAuth func(http.Handler) http.Handler, frontendURL string, logger *slog.Logger) *Handler {
	return &Handler{
		service:     svc,
		oauth:       oauth,
		cookies:     cookies,
		requireAuth: requireAuth,
		frontendURL: frontendURL,
		logger:      logger,
	}
}

func (h *Handler) Register(r chi.Router) {
	r.Get("/auth/oauth/google", h.handleGoogleLogin)
	r.Get("/auth/oauth/google/callback", h.handleGoogleCallback)
	r.Post("/auth/oauth/google/add_token", h.handleAddToken)
	r.Post("/auth/logout", h.handleLogout)

	r.Group(func(r chi.Router) {
		r.Use(h.requireAuth)
		r.Get("/me", h.handleMe)
		r.Get("/me/profile", h.handleMe)
		r.Post("/me/profile", h.handleUpdateProfile)
		r.Get("/users/{user_id}/profile", h.handleUserProfile)
	})
}

func (h *Handler) handleGoogleLogin(w http.ResponseWriter, r *http.Request) {
	consentURL, err := h.oauth.AuthCodeURL(w)
	if err != nil {
		h.logger.ErrorContext(r.Context(), "failed to start google login",
			"error", err,
			"request_id", requestcontext.RequestID(r.Context()),
		)
		h.redirectWithError(w, r, err)
		return
	}
	http.Redirect(w, r, consentURL, http.StatusFound)
}

// handleGoogleCallback always answers with a redirect to the frontend, with
// ?error=<message> on failure.
func (h *Handler) handleGoogleCallback(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	h.oauth.ClearState(w)
	if providerErr := q.Get("error"); providerErr != "" {
		h.redirectWithError(w, r, dErrors.New(dErrors.CodeUnauthorized, "google sign-in was cancelled"))
		return
	}
	if err := h.login(w, r, q.Get("code"), q.Get("state")); err != nil {
		h.redirectWithError(w, r, err)
		return
	}
	http.Redirect(w, r, h.frontendURL, http.StatusFound)
}

type addTokenRequest struct {
	Code  string `json:"code"`
	State string `json:"state"`
}

func (h *Handler) handleAddToken(w http.ResponseWriter, r *http.Request) {
	var req addTokenRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httputil.WriteError(w, dErrors.New(dErrors.CodeBadRequest, "invalid request body"))
		return
	}
	h.oauth.ClearState(w)
	if err := h.login(w, r, req.Code, req.State); err != nil {
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, map[string]bool{"ok": true})
}

func (h *Handler) login(w http.ResponseWriter, r *http.Request, code, state string) error {
	ctx := r.Context()
	identity, err := h.oauth.Exchange(ctx, r, code, state)
	if err != nil {
		h.logger.WarnContext(ctx, "google code exchange failed",
			"error", err,
			"request_id", requestcontext.RequestID(ctx),
		)
		return err
	}
	result, err := h.service.Login(ctx, identity)
	if err != nil {
		return err
	}
	if err := h.cookies.SetSession(w, result.Session.ID); err != nil {
		return dErrors.Wrap(err, dErrors.CodeInternal, "failed to write session cookie")
	}
	h.logger.InfoContext(ctx, "user logged in",
		"user_id", result.User.ID.String(),
		"request_id", requestcontext.RequestID(ctx),
	)
	return nil
}

func (h *Handler) redirectWithError(w http.ResponseWriter, r *http.Request, err error) {
	message := "login failed"
	if code := dErrors.CodeOf(err); code != dErrors.CodeInternal {
		message = dErrors.MessageOf(err)
	} else {
		h.logger.ErrorContext(r.Context(), "login failed",
			"error", err,
			"request_id", requestcontext.RequestID(r.Context()),
		)
	}
	target, parseErr := url.Parse(h.frontendURL)
	if parseErr != nil {
		httputil.WriteError(w, err)
		return
	}
	q := target.Query()
	q.Set("error", message)
	target.RawQuery = q.Encode()
	http.Redirect(w, r, target.String(), http.StatusFound)
}

// handleLogout always succeeds; a failing store delete is only logged.
func (h *Handler) handleLogout(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	if sessionID, err := h.cookies.ReadSession(r); err == nil {
		if err := h.service.DeleteSession(ctx, sessionID); err != nil {
			h.logger.WarnContext(ctx, "failed to delete session on logout",
				"error", err,
				"request_id", requestcontext.RequestID(ctx),
			)
		}
	}
	h.cookies.ClearSession(w)
	httputil.WriteJSON(w, http.StatusOK, map[string]bool{"ok": true})
}

func (h *Handler) handleMe(w http.ResponseWriter, r *http.Request) {
	user := authmw.UserFrom(r.Context())
	if user == nil {
		httputil.WriteError(w, dErrors.New(dErrors.CodeUnauthorized, "Not authenticated"))
		return
	}
	httputil.WriteJSON(w, http.StatusOK, user.ToProfile())
}

type updateProfileRequest struct {
	FirstName *string `json:"first_name"`
	LastName  *string `json:"last_name"`
	Pronouns  *string `json:"pronouns"`
}

type updateProfileResponse struct {
	OK   bool           `json:"ok"`
	User models.Profile `json:"user"`
}

func (h *Handler) handleUpdateProfile(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	var req updateProfileRequest
	if !httputil.DecodeJSON(w, r, &req) {
		return
	}
	user, err := h.service.UpdateProfile(ctx, authmw.UserFrom(ctx), models.ProfileUpdate{
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Pronouns:  req.Pronouns,
	})
	if err != nil {
		h.writeServiceError(ctx, w, "failed to update profile", err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, updateProfileResponse{OK: true, User: user.ToProfile()})
}

func (h *Handler) handleUserProfile(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	targetID, err := id.ParseUserID(chi.URLParam(r, "user_id"))
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	user, err := h.service.GetUserProfile(ctx, authmw.UserFrom(ctx), targetID)
	if err != nil {
		h.writeServiceError(ctx, w, "failed to load profile", err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, user.ToProfile())
}

func (h *Handler) writeServiceError(ctx context.Context, w http.ResponseWriter, msg string, err error) {
	if dErrors.CodeOf(err) == dErrors.CodeInternal {
		h.logger.ErrorContext(ctx, msg,
			"error", err,
			"request_id", requestcontext.RequestID(ctx),
		)
	}
	httputil.WriteError(w, err)
}
