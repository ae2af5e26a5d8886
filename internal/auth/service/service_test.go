package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"

	"conductor/internal/auth/service/mocks"
	id "conductor/pkg/domain"
	"conductor/pkg/requestcontext"
)

type ServiceSuite struct {
	suite.Suite
	ctrl               *gomock.Controller
	mockUserStore      *mocks.MockUserStore
	mockSessionStore   *mocks.MockSessionStore
	mockAuditPublisher *mocks.MockAuditPublisher
	service            *Service
	now                time.Time
	ctx                context.Context
}

func TestServiceSuite(t *testing.T) {
	suite.Run(t, new(ServiceSuite))
}

func (s *ServiceSuite) SetupTest() {
	s.ctrl = gomock.NewController(s.T())
	s.mockUserStore = mocks.NewMockUserStore(s.ctrl)
	s.mockSessionStore = mocks.NewMockSessionStore(s.ctrl)
	s.mockAuditPublisher = mocks.NewMockAuditPublisher(s.ctrl)
	s.service = New(s.mockUserStore, s.mockSessionStore, Config{
		SessionTTL:           time.Hour,
		AllowedEmailSuffixes: []string{"@UCSD.edu", " "},
	}, WithAuditPublisher(s.mockAuditPublisher))
	s.now = time.Date(2026, 1, 12, 9, 0, 0, 0, time.UTC)
	s.ctx = requestcontext.WithTime(context.Background(), s.now)
}

func (s *ServiceSuite) TearDownTest() {
	s.ctrl.Finish()
}

func (s *ServiceSuite) TestNewDefaults() {
	svc := New(nil, nil, Config{})
	s.Equal(DefaultSessionTTL, svc.SessionTTL())
	s.Equal([]string{"@ucsd.edu"}, svc.cfg.AllowedEmailSuffixes)

	s.Equal([]string{"@ucsd.edu"}, s.service.cfg.AllowedEmailSuffixes, "suffixes are normalized and blanks dropped")
}

func (s *ServiceSuite) TestEmailAllowed() {
	s.True(s.service.emailAllowed("student@ucsd.edu"))
	s.False(s.service.emailAllowed("student@gmail.com"))
	s.False(s.service.emailAllowed("student@ucsd.edu.evil.com"))
}

func (s *ServiceSuite) TestNewSessionIDIsOpaqueAndUnique() {
	seen := make(map[id.SessionID]bool)
	for range 100 {
		sid, err := newSessionID()
		s.Require().NoError(err)
		s.Len(sid.String(), 43, "32 bytes in unpadded base64url")
		s.False(seen[sid])
		seen[sid] = true
	}
}
