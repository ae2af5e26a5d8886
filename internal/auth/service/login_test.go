package service

import (
	"time"

	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"

	"conductor/internal/audit"
	"conductor/internal/auth/models"
	id "conductor/pkg/domain"
	dErrors "conductor/pkg/domain-errors"
	"conductor/pkg/platform/sentinel"
	"conductor/pkg/requestcontext"
)

func (s *ServiceSuite) identity(email string) *models.Identity {
	return &models.Identity{
		Subject:       "sub-1",
		Email:         email,
		EmailVerified: true,
		GivenName:     "Tri",
		FamilyName:    "Ton",
	}
}

func (s *ServiceSuite) TestResolveUser_Rejections() {
	s.Run("unverified email is rejected before any lookup", func() {
		ident := s.identity("student@ucsd.edu")
		ident.EmailVerified = false
		s.mockAuditPublisher.EXPECT().Emit(gomock.Any(), gomock.Any()).Return(nil)

		_, err := s.service.ResolveUser(s.ctx, ident)
		s.True(dErrors.HasCode(err, dErrors.CodeEmailNotVerified))
	})

	s.Run("empty email is a validation error", func() {
		_, err := s.service.ResolveUser(s.ctx, s.identity("   "))
		s.True(dErrors.HasCode(err, dErrors.CodeInvalidInput))
	})

	s.Run("nil identity is a validation error", func() {
		_, err := s.service.ResolveUser(s.ctx, nil)
		s.True(dErrors.HasCode(err, dErrors.CodeInvalidInput))
	})

	s.Run("unknown email outside the allowlist is not registered and creates nothing", func() {
		s.mockUserStore.EXPECT().FindByEmail(gomock.Any(), "visitor@gmail.com").Return(nil, sentinel.ErrNotFound)
		s.mockAuditPublisher.EXPECT().Emit(gomock.Any(), gomock.Any()).DoAndReturn(
			func(_ any, e audit.Event) error {
				s.Equal(string(audit.ActionAuthFailed), e.Action)
				s.Equal(string(dErrors.CodeEmailNotAllowed), e.Reason)
				return nil
			})

		_, err := s.service.ResolveUser(s.ctx, s.identity("Visitor@Gmail.com"))
		s.True(dErrors.HasCode(err, dErrors.CodeEmailNotAllowed))
	})

	s.Run("lookup failure is internal", func() {
		s.mockUserStore.EXPECT().FindByEmail(gomock.Any(), "visitor@gmail.com").Return(nil, assert.AnError)

		_, err := s.service.ResolveUser(s.ctx, s.identity("visitor@gmail.com"))
		s.True(dErrors.HasCode(err, dErrors.CodeInternal))
	})

	s.Run("soft-deleted account is not registered", func() {
		s.mockUserStore.EXPECT().Upsert(gomock.Any(), gomock.Any()).Return(nil, false, sentinel.ErrNotFound)
		s.mockAuditPublisher.EXPECT().Emit(gomock.Any(), gomock.Any()).Return(nil)

		_, err := s.service.ResolveUser(s.ctx, s.identity("gone@ucsd.edu"))
		s.True(dErrors.HasCode(err, dErrors.CodeEmailNotAllowed))
	})

	s.Run("upsert failure is internal", func() {
		s.mockUserStore.EXPECT().Upsert(gomock.Any(), gomock.Any()).Return(nil, false, assert.AnError)

		_, err := s.service.ResolveUser(s.ctx, s.identity("student@ucsd.edu"))
		s.True(dErrors.HasCode(err, dErrors.CodeInternal))
	})
}

func (s *ServiceSuite) TestResolveUser_Success() {
	s.Run("allowlisted first login creates the user", func() {
		created := &models.User{ID: id.NewUserID(), Email: "student@ucsd.edu", GlobalRole: id.RoleStudent}
		s.mockUserStore.EXPECT().Upsert(gomock.Any(), models.UpsertUser{
			Email:     "student@ucsd.edu",
			FirstName: "Tri",
			LastName:  "Ton",
			LastLogin: s.now,
		}).Return(created, true, nil)
		s.mockAuditPublisher.EXPECT().Emit(gomock.Any(), gomock.Any()).DoAndReturn(
			func(_ any, e audit.Event) error {
				s.Equal(string(audit.ActionUserCreated), e.Action)
				s.Equal(created.ID, e.UserID)
				return nil
			})

		user, err := s.service.ResolveUser(s.ctx, s.identity(" Student@UCSD.edu "))
		s.Require().NoError(err)
		s.Equal(created, user)
	})

	s.Run("returning user emits no creation event", func() {
		existing := &models.User{ID: id.NewUserID(), Email: "student@ucsd.edu"}
		s.mockUserStore.EXPECT().Upsert(gomock.Any(), gomock.Any()).Return(existing, false, nil)

		user, err := s.service.ResolveUser(s.ctx, s.identity("student@ucsd.edu"))
		s.Require().NoError(err)
		s.Equal(existing.ID, user.ID)
	})

	s.Run("pre-provisioned user outside the allowlist may log in", func() {
		existing := &models.User{ID: id.NewUserID(), Email: "guest@gmail.com", GlobalRole: id.RoleTA}
		s.mockUserStore.EXPECT().FindByEmail(gomock.Any(), "guest@gmail.com").Return(existing, nil)
		s.mockUserStore.EXPECT().Upsert(gomock.Any(), gomock.Any()).Return(existing, false, nil)

		user, err := s.service.ResolveUser(s.ctx, s.identity("guest@gmail.com"))
		s.Require().NoError(err)
		s.Equal(existing.ID, user.ID)
	})

	s.Run("audit failure does not fail the login", func() {
		created := &models.User{ID: id.NewUserID(), Email: "new@ucsd.edu"}
		s.mockUserStore.EXPECT().Upsert(gomock.Any(), gomock.Any()).Return(created, true, nil)
		s.mockAuditPublisher.EXPECT().Emit(gomock.Any(), gomock.Any()).Return(assert.AnError)

		_, err := s.service.ResolveUser(s.ctx, s.identity("new@ucsd.edu"))
		s.Require().NoError(err)
	})
}

func (s *ServiceSuite) TestLogin() {
	user := &models.User{ID: id.NewUserID(), Email: "student@ucsd.edu"}
	ctx := requestcontext.WithClientMetadata(s.ctx, "10.0.0.1",
		"Mozilla/5.0 (Macintosh; Intel Mac OS X 10_15_7) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36")

	s.mockUserStore.EXPECT().Upsert(gomock.Any(), gomock.Any()).Return(user, false, nil)
	s.mockSessionStore.EXPECT().Create(gomock.Any(), gomock.Any()).DoAndReturn(
		func(_ any, sess *models.Session) error {
			s.Equal(user.ID, sess.UserID)
			s.Contains(sess.DeviceName, "Chrome")
			return nil
		})
	s.mockAuditPublisher.EXPECT().Emit(gomock.Any(), gomock.Any()).Return(nil)

	result, err := s.service.Login(ctx, s.identity("student@ucsd.edu"))
	s.Require().NoError(err)
	s.Equal(user, result.User)
	s.Equal(s.now.Add(time.Hour), result.Session.ExpiresAt)
}
