package enrollment

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"

	"conductor/internal/course/models"
	id "conductor/pkg/domain"
)

type InMemoryEnrollmentStoreSuite struct {
	suite.Suite
	store *InMemoryEnrollmentStore
	ctx   context.Context
	now   time.Time
}

func TestInMemoryEnrollmentStoreSuite(t *testing.T) {
	suite.Run(t, new(InMemoryEnrollmentStoreSuite))
}

func (s *InMemoryEnrollmentStoreSuite) SetupTest() {
	s.store = New()
	s.ctx = context.Background()
	s.now = time.Date(2026, 1, 5, 8, 0, 0, 0, time.UTC)
}

func (s *InMemoryEnrollmentStoreSuite) TestEnroll() {
	userID := id.NewUserID()

	s.Run("first enrollment is created", func() {
		e, created, err := s.store.Enroll(s.ctx, &models.Enrollment{UserID: userID, CourseID: 1, Role: id.RoleTA, CreatedAt: s.now})
		s.Require().NoError(err)
		s.True(created)
		s.Equal(id.RoleTA, e.Role)
	})

	s.Run("existing role is kept", func() {
		e, created, err := s.store.Enroll(s.ctx, &models.Enrollment{UserID: userID, CourseID: 1, Role: id.RoleStudent})
		s.Require().NoError(err)
		s.False(created)
		s.Equal(id.RoleTA, e.Role)
	})

	s.Run("removed enrollment is revived with the new role", func() {
		s.Require().NoError(s.store.Remove(s.ctx, userID, 1, s.now))
		role, err := s.store.Role(s.ctx, userID, 1)
		s.Require().NoError(err)
		s.Equal(id.RoleNone, role)

		e, created, err := s.store.Enroll(s.ctx, &models.Enrollment{UserID: userID, CourseID: 1, Role: id.RoleStudent})
		s.Require().NoError(err)
		s.True(created)
		s.Equal(id.RoleStudent, e.Role)
	})
}

func (s *InMemoryEnrollmentStoreSuite) TestRoleWithoutEnrollment() {
	role, err := s.store.Role(s.ctx, id.NewUserID(), 7)
	s.Require().NoError(err)
	s.Equal(id.RoleNone, role)
}

func (s *InMemoryEnrollmentStoreSuite) TestListing() {
	alice, bob := id.NewUserID(), id.NewUserID()
	for _, e := range []*models.Enrollment{
		{UserID: alice, CourseID: 2, Role: id.RoleStudent, CreatedAt: s.now},
		{UserID: alice, CourseID: 1, Role: id.RoleProfessor, CreatedAt: s.now},
		{UserID: bob, CourseID: 1, Role: id.RoleStudent, CreatedAt: s.now.Add(time.Minute)},
	} {
		_, _, err := s.store.Enroll(s.ctx, e)
		s.Require().NoError(err)
	}

	byUser, err := s.store.ListByUser(s.ctx, alice)
	s.Require().NoError(err)
	s.Require().Len(byUser, 2)
	s.Equal(id.CourseID(1), byUser[0].CourseID)

	byCourse, err := s.store.ListByCourse(s.ctx, 1)
	s.Require().NoError(err)
	s.Require().Len(byCourse, 2)
	s.Equal(alice, byCourse[0].UserID)
	s.Equal(bob, byCourse[1].UserID)
}
