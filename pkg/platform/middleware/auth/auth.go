// Package auth is the request gate: it turns the sid cookie into an
// authenticated user on the request context, or answers 401.
package auth

import (
	"context"
	"log/slog"
	"net/http"

	"conductor/internal/auth/models"
	id "conductor/pkg/domain"
	dErrors "conductor/pkg/domain-errors"
	"conductor/pkg/platform/httputil"
	"conductor/pkg/requestcontext"
)

// SessionResolver maps a session id to its user.
type SessionResolver interface {
	GetUserBySessionID(ctx context.Context, sessionID id.SessionID) (*models.User, error)
}

// SessionCookieReader extracts the session id from the request.
type SessionCookieReader interface {
	ReadSession(r *http.Request) (id.SessionID, error)
}

type contextKeyUser struct{}

// ContextKeyUser is exported for tests that build contexts by hand.
var ContextKeyUser = contextKeyUser{}

// WithUser stores the authenticated user along with its id and session id.
func WithUser(ctx context.Context, user *models.User, sessionID id.SessionID) context.Context {
	ctx = context.WithValue(ctx, ContextKeyUser, user)
	ctx = requestcontext.WithUserID(ctx, user.ID)
	return requestcontext.WithSessionID(ctx, sessionID)
}

// UserFrom returns the authenticated user, or nil outside a gated route.
func UserFrom(ctx context.Context) *models.User {
	user, _ := ctx.Value(ContextKeyUser).(*models.User)
	return user
}

// RequireSession rejects requests without a live session. The next handler is
// only called once the user is resolved.
func RequireSession(resolver SessionResolver, cookies SessionCookieReader, logger *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := r.Context()
			requestID := requestcontext.RequestID(ctx)

			sessionID, err := cookies.ReadSession(r)
			if err != nil || sessionID.IsNil() {
				logger.DebugContext(ctx, "unauthorized access - missing session cookie",
					"request_id", requestID,
				)
				httputil.WriteErrorDescription(w, http.StatusUnauthorized, string(dErrors.CodeUnauthorized), "Not authenticated")
				return
			}

			user, err := resolver.GetUserBySessionID(ctx, sessionID)
			if err != nil {
				if dErrors.HasCode(err, dErrors.CodeUnauthorized) {
					logger.InfoContext(ctx, "unauthorized access - invalid session",
						"request_id", requestID,
					)
				} else {
					logger.ErrorContext(ctx, "failed to resolve session",
						"error", err,
						"request_id", requestID,
					)
				}
				httputil.WriteErrorDescription(w, http.StatusUnauthorized, string(dErrors.CodeUnauthorized), "Session expired or invalid")
				return
			}

			next.ServeHTTP(w, r.WithContext(WithUser(ctx, user, sessionID)))
		})
	}
}
