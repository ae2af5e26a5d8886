package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"

	"conductor/internal/auth/cookie"
	"conductor/internal/auth/handler/mocks"
	"conductor/internal/auth/models"
	"conductor/internal/auth/service"
	id "conductor/pkg/domain"
	dErrors "conductor/pkg/domain-errors"
	authmw "conductor/pkg/platform/middleware/auth"
)

const frontendURL = "http://localhost:3000/"

type HandlerSuite struct {
	suite.Suite
	ctrl    *gomock.Controller
	service *mocks.MockService
	oauth   *mocks.MockOAuthClient
	cookies *cookie.Codec
	router  chi.Router
	actor   *models.User
}

func TestHandlerSuite(t *testing.T) {
	suite.Run(t, new(HandlerSuite))
}

func (s *HandlerSuite) SetupTest() {
	s.ctrl = gomock.NewController(s.T())
	s.service = mocks.NewMockService(s.ctrl)
	s.oauth = mocks.NewMockOAuthClient(s.ctrl)
	s.cookies = cookie.New("handler-test-secret", false, time.Hour)
	s.actor = &models.User{
		ID:         id.NewUserID(),
		Email:      "jdoe@ucsd.edu",
		FirstName:  "John",
		LastName:   "Doe",
		GlobalRole: id.RoleStudent,
	}

	gate := func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := r.Context()
			if s.actor != nil {
				ctx = authmw.WithUser(ctx, s.actor, "sid-1")
			}
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	h := New(s.service, s.oauth, s.cookies, gate, frontendURL, logger)
	s.router = chi.NewRouter()
	h.Register(s.router)
}

func (s *HandlerSuite) TearDownTest() {
	s.ctrl.Finish()
}

func (s *HandlerSuite) do(req *http.Request) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	s.router.ServeHTTP(rec, req)
	return rec
}

func (s *HandlerSuite) findCookie(rec *httptest.ResponseRecorder, name string) *http.Cookie {
	for _, c := range rec.Result().Cookies() {
		if c.Name == name {
			return c
		}
	}
	return nil
}

func (s *HandlerSuite) errorParam(rec *httptest.ResponseRecorder) string {
	loc, err := url.Parse(rec.Header().Get("Location"))
	s.Require().NoError(err)
	return loc.Query().Get("error")
}

func (s *HandlerSuite) loginResult() *service.LoginResult {
	return &service.LoginResult{
		User: s.actor,
		Session: &models.Session{
			ID:     "new-session",
			UserID: s.actor.ID,
		},
	}
}

func (s *HandlerSuite) TestGoogleLoginRedirectsToConsent() {
	s.oauth.EXPECT().AuthCodeURL(gomock.Any()).Return("https://accounts.google.com/o/oauth2/auth?x=1", nil)

	rec := s.do(httptest.NewRequest(http.MethodGet, "/auth/oauth/google", nil))

	s.Equal(http.StatusFound, rec.Code)
	s.Equal("https://accounts.google.com/o/oauth2/auth?x=1", rec.Header().Get("Location"))
}

func (s *HandlerSuite) TestCallback() {
	s.Run("success sets sid and redirects to the frontend", func() {
		identity := &models.Identity{Email: "jdoe@ucsd.edu", EmailVerified: true}
		s.oauth.EXPECT().ClearState(gomock.Any())
		s.oauth.EXPECT().Exchange(gomock.Any(), gomock.Any(), "the-code", "the-state").Return(identity, nil)
		s.service.EXPECT().Login(gomock.Any(), identity).Return(s.loginResult(), nil)

		rec := s.do(httptest.NewRequest(http.MethodGet, "/auth/oauth/google/callback?code=the-code&state=the-state", nil))

		s.Equal(http.StatusFound, rec.Code)
		s.Equal(frontendURL, rec.Header().Get("Location"))
		sid := s.findCookie(rec, cookie.SessionName)
		s.Require().NotNil(sid)
		s.True(sid.HttpOnly)
	})

	s.Run("state mismatch redirects with the error message", func() {
		s.oauth.EXPECT().ClearState(gomock.Any())
		s.oauth.EXPECT().Exchange(gomock.Any(), gomock.Any(), "c", "bad").
			Return(nil, dErrors.New(dErrors.CodeInvalidState, "invalid oauth state"))

		rec := s.do(httptest.NewRequest(http.MethodGet, "/auth/oauth/google/callback?code=c&state=bad", nil))

		s.Equal(http.StatusFound, rec.Code)
		s.Equal("invalid oauth state", s.errorParam(rec))
		s.Nil(s.findCookie(rec, cookie.SessionName))
	})

	s.Run("unregistered email redirects with the error message", func() {
		s.oauth.EXPECT().ClearState(gomock.Any())
		s.oauth.EXPECT().Exchange(gomock.Any(), gomock.Any(), "c", "s").Return(&models.Identity{}, nil)
		s.service.EXPECT().Login(gomock.Any(), gomock.Any()).
			Return(nil, dErrors.New(dErrors.CodeEmailNotAllowed, "email is not registered"))

		rec := s.do(httptest.NewRequest(http.MethodGet, "/auth/oauth/google/callback?code=c&state=s", nil))

		s.Equal("email is not registered", s.errorParam(rec))
	})

	s.Run("internal failure is masked", func() {
		s.oauth.EXPECT().ClearState(gomock.Any())
		s.oauth.EXPECT().Exchange(gomock.Any(), gomock.Any(), "c", "s").Return(&models.Identity{}, nil)
		s.service.EXPECT().Login(gomock.Any(), gomock.Any()).Return(nil, errors.New("db down"))

		rec := s.do(httptest.NewRequest(http.MethodGet, "/auth/oauth/google/callback?code=c&state=s", nil))

		s.Equal("login failed", s.errorParam(rec))
	})

	s.Run("provider error skips the exchange", func() {
		s.oauth.EXPECT().ClearState(gomock.Any())

		rec := s.do(httptest.NewRequest(http.MethodGet, "/auth/oauth/google/callback?error=access_denied", nil))

		s.Equal(http.StatusFound, rec.Code)
		s.Equal("google sign-in was cancelled", s.errorParam(rec))
	})
}

func (s *HandlerSuite) TestAddToken() {
	s.Run("success", func() {
		s.oauth.EXPECT().ClearState(gomock.Any())
		s.oauth.EXPECT().Exchange(gomock.Any(), gomock.Any(), "c", "s").Return(&models.Identity{}, nil)
		s.service.EXPECT().Login(gomock.Any(), gomock.Any()).Return(s.loginResult(), nil)

		rec := s.do(httptest.NewRequest(http.MethodPost, "/auth/oauth/google/add_token", strings.NewReader(`{"code":"c","state":"s"}`)))

		s.Equal(http.StatusOK, rec.Code)
		s.JSONEq(`{"ok":true}`, rec.Body.String())
		s.NotNil(s.findCookie(rec, cookie.SessionName))
	})

	s.Run("malformed body", func() {
		rec := s.do(httptest.NewRequest(http.MethodPost, "/auth/oauth/google/add_token", strings.NewReader(`{`)))

		s.Equal(http.StatusBadRequest, rec.Code)
	})

	s.Run("exchange failure maps to a json error", func() {
		s.oauth.EXPECT().ClearState(gomock.Any())
		s.oauth.EXPECT().Exchange(gomock.Any(), gomock.Any(), "c", "s").
			Return(nil, dErrors.New(dErrors.CodeTokenExchangeFailed, "token exchange failed"))

		rec := s.do(httptest.NewRequest(http.MethodPost, "/auth/oauth/google/add_token", strings.NewReader(`{"code":"c","state":"s"}`)))

		s.Equal(http.StatusBadGateway, rec.Code)
		var body map[string]string
		s.Require().NoError(json.Unmarshal(rec.Body.Bytes(), &body))
		s.Equal("token_exchange_failed", body["error"])
	})
}

func (s *HandlerSuite) TestLogout() {
	withSession := func() *http.Request {
		setter := httptest.NewRecorder()
		s.Require().NoError(s.cookies.SetSession(setter, "sid-logout"))
		req := httptest.NewRequest(http.MethodPost, "/auth/logout", nil)
		for _, c := range setter.Result().Cookies() {
			req.AddCookie(c)
		}
		return req
	}

	s.Run("deletes the session and clears the cookie", func() {
		s.service.EXPECT().DeleteSession(gomock.Any(), id.SessionID("sid-logout")).Return(nil)

		rec := s.do(withSession())

		s.Equal(http.StatusOK, rec.Code)
		s.JSONEq(`{"ok":true}`, rec.Body.String())
		sid := s.findCookie(rec, cookie.SessionName)
		s.Require().NotNil(sid)
		s.Empty(sid.Value)
		s.Negative(sid.MaxAge)
	})

	s.Run("store failure still succeeds", func() {
		s.service.EXPECT().DeleteSession(gomock.Any(), id.SessionID("sid-logout")).Return(errors.New("redis down"))

		rec := s.do(withSession())

		s.Equal(http.StatusOK, rec.Code)
	})

	s.Run("no cookie", func() {
		rec := s.do(httptest.NewRequest(http.MethodPost, "/auth/logout", nil))

		s.Equal(http.StatusOK, rec.Code)
	})
}

func (s *HandlerSuite) TestMe() {
	rec := s.do(httptest.NewRequest(http.MethodGet, "/me", nil))

	s.Equal(http.StatusOK, rec.Code)
	var got models.Profile
	s.Require().NoError(json.Unmarshal(rec.Body.Bytes(), &got))
	s.Equal(s.actor.ToProfile(), got)

	rec = s.do(httptest.NewRequest(http.MethodGet, "/me/profile", nil))
	s.Equal(http.StatusOK, rec.Code)
}

func (s *HandlerSuite) TestMeWithoutUser() {
	s.actor = nil

	rec := s.do(httptest.NewRequest(http.MethodGet, "/me", nil))

	s.Equal(http.StatusUnauthorized, rec.Code)
}

func (s *HandlerSuite) TestUpdateProfile() {
	s.Run("success", func() {
		updated := *s.actor
		updated.Pronouns = "they/them"
		s.service.EXPECT().UpdateProfile(gomock.Any(), s.actor, gomock.Any()).
			DoAndReturn(func(_ context.Context, _ *models.User, upd models.ProfileUpdate) (*models.User, error) {
				s.Nil(upd.FirstName)
				s.Require().NotNil(upd.Pronouns)
				s.Equal("they/them", *upd.Pronouns)
				return &updated, nil
			})

		rec := s.do(httptest.NewRequest(http.MethodPost, "/me/profile", strings.NewReader(`{"pronouns":"they/them"}`)))

		s.Equal(http.StatusOK, rec.Code)
		var body updateProfileResponse
		s.Require().NoError(json.Unmarshal(rec.Body.Bytes(), &body))
		s.True(body.OK)
		s.Equal("they/them", body.User.Pronouns)
	})

	s.Run("empty body is a no-op update", func() {
		s.service.EXPECT().UpdateProfile(gomock.Any(), s.actor, models.ProfileUpdate{}).Return(s.actor, nil)

		rec := s.do(httptest.NewRequest(http.MethodPost, "/me/profile", nil))

		s.Equal(http.StatusOK, rec.Code)
	})

	s.Run("malformed body", func() {
		rec := s.do(httptest.NewRequest(http.MethodPost, "/me/profile", strings.NewReader(`{"pronouns":`)))

		s.Equal(http.StatusBadRequest, rec.Code)
	})

	s.Run("validation error", func() {
		s.service.EXPECT().UpdateProfile(gomock.Any(), s.actor, gomock.Any()).
			Return(nil, dErrors.New(dErrors.CodeInvalidInput, "first_name is too long"))

		rec := s.do(httptest.NewRequest(http.MethodPost, "/me/profile", bytes.NewBufferString(`{"first_name":"x"}`)))

		s.Equal(http.StatusBadRequest, rec.Code)
	})
}

func (s *HandlerSuite) TestUserProfile() {
	target := &models.User{ID: id.NewUserID(), Email: "other@ucsd.edu", GlobalRole: id.RoleStudent}

	s.Run("malformed id", func() {
		rec := s.do(httptest.NewRequest(http.MethodGet, "/users/not-a-uuid/profile", nil))

		s.Equal(http.StatusBadRequest, rec.Code)
	})

	s.Run("forbidden", func() {
		s.service.EXPECT().GetUserProfile(gomock.Any(), s.actor, target.ID).
			Return(nil, dErrors.New(dErrors.CodeForbidden, "not allowed to view this profile"))

		rec := s.do(httptest.NewRequest(http.MethodGet, "/users/"+target.ID.String()+"/profile", nil))

		s.Equal(http.StatusForbidden, rec.Code)
	})

	s.Run("visible", func() {
		s.service.EXPECT().GetUserProfile(gomock.Any(), s.actor, target.ID).Return(target, nil)

		rec := s.do(httptest.NewRequest(http.MethodGet, "/users/"+target.ID.String()+"/profile", nil))

		s.Equal(http.StatusOK, rec.Code)
		var got models.Profile
		s.Require().NoError(json.Unmarshal(rec.Body.Bytes(), &got))
		s.Equal(target.ID.String(), got.ID)
	})
}
