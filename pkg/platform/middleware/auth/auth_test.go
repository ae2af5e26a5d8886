package auth

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"conductor/internal/auth/models"
	id "conductor/pkg/domain"
	dErrors "conductor/pkg/domain-errors"
	"conductor/pkg/requestcontext"
)

type stubCookies struct {
	sessionID id.SessionID
	err       error
}

func (c stubCookies) ReadSession(*http.Request) (id.SessionID, error) {
	return c.sessionID, c.err
}

type stubResolver struct {
	user  *models.User
	err   error
	calls int
}

func (r *stubResolver) GetUserBySessionID(_ context.Context, _ id.SessionID) (*models.User, error) {
	r.calls++
	return r.user, r.err
}

func serve(t *testing.T, resolver SessionResolver, cookies SessionCookieReader, logs *bytes.Buffer) (*httptest.ResponseRecorder, bool, context.Context) {
	t.Helper()
	called := false
	var seen context.Context
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		called = true
		seen = r.Context()
		w.WriteHeader(http.StatusNoContent)
	})
	logger := slog.New(slog.NewJSONHandler(logs, &slog.HandlerOptions{Level: slog.LevelDebug}))
	rec := httptest.NewRecorder()
	RequireSession(resolver, cookies, logger)(next).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/me", nil))
	return rec, called, seen
}

func decodeError(t *testing.T, rec *httptest.ResponseRecorder) map[string]string {
	t.Helper()
	var body map[string]string
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	return body
}

func TestRequireSession(t *testing.T) {
	user := &models.User{ID: id.NewUserID(), Email: "student@ucsd.edu"}

	t.Run("missing cookie is 401 not authenticated", func(t *testing.T) {
		resolver := &stubResolver{user: user}
		rec, called, _ := serve(t, resolver, stubCookies{err: errors.New("no cookie")}, &bytes.Buffer{})

		assert.Equal(t, http.StatusUnauthorized, rec.Code)
		assert.False(t, called)
		assert.Equal(t, 0, resolver.calls)
		assert.Equal(t, map[string]string{"error": "unauthorized", "error_description": "Not authenticated"}, decodeError(t, rec))
	})

	t.Run("invalid session is 401 session expired", func(t *testing.T) {
		resolver := &stubResolver{err: dErrors.New(dErrors.CodeUnauthorized, "session expired or invalid")}
		rec, called, _ := serve(t, resolver, stubCookies{sessionID: "sid"}, &bytes.Buffer{})

		assert.Equal(t, http.StatusUnauthorized, rec.Code)
		assert.False(t, called)
		assert.Equal(t, "Session expired or invalid", decodeError(t, rec)["error_description"])
	})

	t.Run("store failure fails closed and is logged", func(t *testing.T) {
		var logs bytes.Buffer
		resolver := &stubResolver{err: dErrors.Wrap(errors.New("db down"), dErrors.CodeInternal, "failed to load session")}
		rec, called, _ := serve(t, resolver, stubCookies{sessionID: "sid"}, &logs)

		assert.Equal(t, http.StatusUnauthorized, rec.Code)
		assert.False(t, called)
		assert.Contains(t, logs.String(), "failed to resolve session")
	})

	t.Run("valid session calls through with the user in context", func(t *testing.T) {
		resolver := &stubResolver{user: user}
		rec, called, ctx := serve(t, resolver, stubCookies{sessionID: "sid"}, &bytes.Buffer{})

		assert.Equal(t, http.StatusNoContent, rec.Code)
		require.True(t, called)
		assert.Equal(t, user, UserFrom(ctx))
		assert.Equal(t, user.ID, requestcontext.UserID(ctx))
		assert.Equal(t, id.SessionID("sid"), requestcontext.SessionID(ctx))
	})
}

func TestUserFromOutsideGate(t *testing.T) {
	assert.Nil(t, UserFrom(context.Background()))
}
