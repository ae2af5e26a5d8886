package testutil

import (
	"net/http"

	"conductor/internal/auth/models"
	id "conductor/pkg/domain"
	authmw "conductor/pkg/platform/middleware/auth"
)

// TestSessionID is the session id attached by WithUser.
const TestSessionID id.SessionID = "test-session"

// WithUser puts user on the request context the way the session gate does,
// so gated handlers can be driven without a cookie.
func WithUser(req *http.Request, user *models.User) *http.Request {
	return req.WithContext(authmw.WithUser(req.Context(), user, TestSessionID))
}

// PassThrough stands in for the session gate in handler tests whose requests
// already carry a user.
func PassThrough(next http.Handler) http.Handler {
	return next
}
