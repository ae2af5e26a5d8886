package service

import (
	"errors"
	"time"

	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"

	"conductor/internal/auth/models"
	id "conductor/pkg/domain"
	dErrors "conductor/pkg/domain-errors"
	"conductor/pkg/platform/sentinel"
)

func (s *ServiceSuite) TestCreateSession() {
	s.Run("persists a session expiring after the TTL", func() {
		user := &models.User{ID: id.NewUserID()}
		s.mockUserStore.EXPECT().FindByID(gomock.Any(), user.ID).Return(user, nil)
		s.mockSessionStore.EXPECT().Create(gomock.Any(), gomock.Any()).Return(nil)
		s.mockAuditPublisher.EXPECT().Emit(gomock.Any(), gomock.Any()).Return(nil)

		sess, err := s.service.CreateSession(s.ctx, user.ID)
		s.Require().NoError(err)
		s.Equal(user.ID, sess.UserID)
		s.Equal(s.now, sess.CreatedAt)
		s.Equal(s.now.Add(time.Hour), sess.ExpiresAt)
		s.False(sess.ID.IsNil())
	})

	s.Run("nil user id is a bad request", func() {
		_, err := s.service.CreateSession(s.ctx, id.UserID{})
		s.True(dErrors.HasCode(err, dErrors.CodeBadRequest))
	})

	s.Run("unknown user is not found", func() {
		userID := id.NewUserID()
		s.mockUserStore.EXPECT().FindByID(gomock.Any(), userID).Return(nil, sentinel.ErrNotFound)

		_, err := s.service.CreateSession(s.ctx, userID)
		s.True(dErrors.HasCode(err, dErrors.CodeNotFound))
	})

	s.Run("store failure is internal", func() {
		user := &models.User{ID: id.NewUserID()}
		s.mockUserStore.EXPECT().FindByID(gomock.Any(), user.ID).Return(user, nil)
		s.mockSessionStore.EXPECT().Create(gomock.Any(), gomock.Any()).Return(assert.AnError)

		_, err := s.service.CreateSession(s.ctx, user.ID)
		s.True(dErrors.HasCode(err, dErrors.CodeInternal))
	})
}

func (s *ServiceSuite) TestGetUserBySessionID() {
	user := &models.User{ID: id.NewUserID(), Email: "student@ucsd.edu"}
	sessionAt := func(expiresAt time.Time) *models.Session {
		return &models.Session{ID: "sid-1", UserID: user.ID, ExpiresAt: expiresAt}
	}

	s.Run("valid session returns its user", func() {
		s.mockSessionStore.EXPECT().FindByID(gomock.Any(), id.SessionID("sid-1")).Return(sessionAt(s.now.Add(time.Minute)), nil)
		s.mockUserStore.EXPECT().FindByID(gomock.Any(), user.ID).Return(user, nil)

		got, err := s.service.GetUserBySessionID(s.ctx, "sid-1")
		s.Require().NoError(err)
		s.Equal(user, got)
	})

	s.Run("session 100ms before expiry is still valid", func() {
		s.mockSessionStore.EXPECT().FindByID(gomock.Any(), id.SessionID("sid-1")).Return(sessionAt(s.now.Add(100*time.Millisecond)), nil)
		s.mockUserStore.EXPECT().FindByID(gomock.Any(), user.ID).Return(user, nil)

		_, err := s.service.GetUserBySessionID(s.ctx, "sid-1")
		s.Require().NoError(err)
	})

	s.Run("expiry equal to now is expired and deleted", func() {
		s.mockSessionStore.EXPECT().FindByID(gomock.Any(), id.SessionID("sid-1")).Return(sessionAt(s.now), nil)
		s.mockSessionStore.EXPECT().Delete(gomock.Any(), id.SessionID("sid-1")).Return(nil)
		s.mockAuditPublisher.EXPECT().Emit(gomock.Any(), gomock.Any()).Return(nil)

		_, err := s.service.GetUserBySessionID(s.ctx, "sid-1")
		s.Require().ErrorIs(err, ErrNoSession)
	})

	s.Run("cleanup failure on expiry is not surfaced", func() {
		s.mockSessionStore.EXPECT().FindByID(gomock.Any(), id.SessionID("sid-1")).Return(sessionAt(s.now.Add(-time.Hour)), nil)
		s.mockSessionStore.EXPECT().Delete(gomock.Any(), id.SessionID("sid-1")).Return(assert.AnError)
		s.mockAuditPublisher.EXPECT().Emit(gomock.Any(), gomock.Any()).Return(nil)

		_, err := s.service.GetUserBySessionID(s.ctx, "sid-1")
		s.Require().ErrorIs(err, ErrNoSession)
	})

	s.Run("empty id is no session without a lookup", func() {
		_, err := s.service.GetUserBySessionID(s.ctx, "")
		s.Require().ErrorIs(err, ErrNoSession)
	})

	s.Run("unknown id is no session", func() {
		s.mockSessionStore.EXPECT().FindByID(gomock.Any(), id.SessionID("nope")).Return(nil, sentinel.ErrNotFound)

		_, err := s.service.GetUserBySessionID(s.ctx, "nope")
		s.Require().ErrorIs(err, ErrNoSession)
		s.True(dErrors.HasCode(err, dErrors.CodeUnauthorized))
	})

	s.Run("deleted owner removes the orphaned session", func() {
		s.mockSessionStore.EXPECT().FindByID(gomock.Any(), id.SessionID("sid-1")).Return(sessionAt(s.now.Add(time.Hour)), nil)
		s.mockUserStore.EXPECT().FindByID(gomock.Any(), user.ID).Return(nil, sentinel.ErrNotFound)
		s.mockSessionStore.EXPECT().Delete(gomock.Any(), id.SessionID("sid-1")).Return(sentinel.ErrNotFound)
		s.mockAuditPublisher.EXPECT().Emit(gomock.Any(), gomock.Any()).Return(nil)

		_, err := s.service.GetUserBySessionID(s.ctx, "sid-1")
		s.Require().ErrorIs(err, ErrNoSession)
	})

	s.Run("store errors are internal, not no-session", func() {
		s.mockSessionStore.EXPECT().FindByID(gomock.Any(), id.SessionID("sid-1")).Return(nil, assert.AnError)

		_, err := s.service.GetUserBySessionID(s.ctx, "sid-1")
		s.Require().Error(err)
		s.False(errors.Is(err, ErrNoSession))
		s.True(dErrors.HasCode(err, dErrors.CodeInternal))
	})
}

func (s *ServiceSuite) TestDeleteSession() {
	s.Run("deletes and audits", func() {
		s.mockSessionStore.EXPECT().Delete(gomock.Any(), id.SessionID("sid-1")).Return(nil)
		s.mockAuditPublisher.EXPECT().Emit(gomock.Any(), gomock.Any()).Return(nil)

		s.Require().NoError(s.service.DeleteSession(s.ctx, "sid-1"))
	})

	s.Run("missing session is not an error", func() {
		s.mockSessionStore.EXPECT().Delete(gomock.Any(), id.SessionID("sid-1")).Return(sentinel.ErrNotFound)
		s.mockAuditPublisher.EXPECT().Emit(gomock.Any(), gomock.Any()).Return(nil)

		s.Require().NoError(s.service.DeleteSession(s.ctx, "sid-1"))
	})

	s.Run("empty id is a no-op", func() {
		s.Require().NoError(s.service.DeleteSession(s.ctx, ""))
	})

	s.Run("store failure is internal", func() {
		s.mockSessionStore.EXPECT().Delete(gomock.Any(), id.SessionID("sid-1")).Return(assert.AnError)

		err := s.service.DeleteSession(s.ctx, "sid-1")
		s.True(dErrors.HasCode(err, dErrors.CodeInternal))
	})
}
