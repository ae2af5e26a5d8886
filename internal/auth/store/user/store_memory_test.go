package user

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"

	"conductor/internal/auth/models"
	id "conductor/pkg/domain"
	"conductor/pkg/platform/sentinel"
)

type InMemoryUserStoreSuite struct {
	suite.Suite
	store *InMemoryUserStore
	ctx   context.Context
	now   time.Time
}

func (s *InMemoryUserStoreSuite) SetupTest() {
	s.store = New()
	s.ctx = context.Background()
	s.now = time.Date(2026, 1, 12, 9, 0, 0, 0, time.UTC)
}

func TestInMemoryUserStoreSuite(t *testing.T) {
	suite.Run(t, new(InMemoryUserStoreSuite))
}

func (s *InMemoryUserStoreSuite) TestLookupBehavior() {
	s.Run("returns user by ID and by email", func() {
		created := &models.User{Email: "Jane.Doe@ucsd.edu", FirstName: "Jane", LastName: "Doe"}
		s.Require().NoError(s.store.Create(s.ctx, created))

		byID, err := s.store.FindByID(s.ctx, created.ID)
		s.Require().NoError(err)
		s.Equal("jane.doe@ucsd.edu", byID.Email)
		s.Equal(id.RoleStudent, byID.GlobalRole)

		byEmail, err := s.store.FindByEmail(s.ctx, "  JANE.DOE@ucsd.edu")
		s.Require().NoError(err)
		s.Equal(created.ID, byEmail.ID)
	})

	s.Run("returns ErrNotFound for unknown id and email", func() {
		_, err := s.store.FindByID(s.ctx, id.NewUserID())
		s.Require().ErrorIs(err, sentinel.ErrNotFound)

		_, err = s.store.FindByEmail(s.ctx, "missing@ucsd.edu")
		s.Require().ErrorIs(err, sentinel.ErrNotFound)
	})

	s.Run("returned users are copies", func() {
		created := &models.User{Email: "copy@ucsd.edu"}
		s.Require().NoError(s.store.Create(s.ctx, created))

		found, err := s.store.FindByID(s.ctx, created.ID)
		s.Require().NoError(err)
		found.FirstName = "mutated"

		again, err := s.store.FindByID(s.ctx, created.ID)
		s.Require().NoError(err)
		s.Empty(again.FirstName)
	})

	s.Run("create rejects duplicate email", func() {
		s.Require().NoError(s.store.Create(s.ctx, &models.User{Email: "dup@ucsd.edu"}))
		err := s.store.Create(s.ctx, &models.User{Email: "DUP@ucsd.edu"})
		s.Require().ErrorIs(err, sentinel.ErrConflict)
	})
}

func (s *InMemoryUserStoreSuite) TestUpsert() {
	s.Run("inserts a new user with student role", func() {
		u, inserted, err := s.store.Upsert(s.ctx, models.UpsertUser{
			Email: "new@ucsd.edu", FirstName: "New", LastName: "User", LastLogin: s.now,
		})
		s.Require().NoError(err)
		s.True(inserted)
		s.Equal(id.RoleStudent, u.GlobalRole)
		s.False(u.IsProfileComplete)
		s.Require().NotNil(u.LastLogin)
		s.Equal(s.now, *u.LastLogin)
	})

	s.Run("second upsert returns the same id and refreshes last login", func() {
		first, _, err := s.store.Upsert(s.ctx, models.UpsertUser{Email: "again@ucsd.edu", FirstName: "A", LastLogin: s.now})
		s.Require().NoError(err)

		later := s.now.Add(time.Hour)
		second, inserted, err := s.store.Upsert(s.ctx, models.UpsertUser{Email: "again@ucsd.edu", LastLogin: later})
		s.Require().NoError(err)
		s.False(inserted)
		s.Equal(first.ID, second.ID)
		s.Equal(later, *second.LastLogin)
		s.Equal("A", second.FirstName, "empty provider names do not clear stored names")
	})

	s.Run("concurrent upserts for one email converge on one user", func() {
		const workers = 16
		ids := make([]id.UserID, workers)
		var wg sync.WaitGroup
		for i := range workers {
			wg.Add(1)
			go func(i int) {
				defer wg.Done()
				u, _, err := s.store.Upsert(s.ctx, models.UpsertUser{Email: "race@ucsd.edu", LastLogin: s.now})
				s.NoError(err)
				if u != nil {
					ids[i] = u.ID
				}
			}(i)
		}
		wg.Wait()
		for _, got := range ids {
			s.Equal(ids[0], got)
		}
	})

	s.Run("soft-deleted users are not revived", func() {
		u, _, err := s.store.Upsert(s.ctx, models.UpsertUser{Email: "gone@ucsd.edu", LastLogin: s.now})
		s.Require().NoError(err)
		s.Require().NoError(s.store.SoftDelete(s.ctx, u.ID, s.now))

		_, _, err = s.store.Upsert(s.ctx, models.UpsertUser{Email: "gone@ucsd.edu", LastLogin: s.now})
		s.Require().ErrorIs(err, sentinel.ErrNotFound)
	})
}

func (s *InMemoryUserStoreSuite) TestUpdateProfile() {
	u, _, err := s.store.Upsert(s.ctx, models.UpsertUser{Email: "profile@ucsd.edu", LastLogin: s.now})
	s.Require().NoError(err)
	s.Require().False(u.IsProfileComplete)

	s.Run("partial update keeps profile incomplete", func() {
		first := "Pat"
		updated, err := s.store.UpdateProfile(s.ctx, u.ID, models.ProfileUpdate{FirstName: &first}, s.now)
		s.Require().NoError(err)
		s.Equal("Pat", updated.FirstName)
		s.False(updated.IsProfileComplete)
	})

	s.Run("both names mark the profile complete", func() {
		last := "Lee"
		pronouns := "they/them"
		updated, err := s.store.UpdateProfile(s.ctx, u.ID, models.ProfileUpdate{LastName: &last, Pronouns: &pronouns}, s.now)
		s.Require().NoError(err)
		s.True(updated.IsProfileComplete)
		s.Equal("they/them", updated.Pronouns)
	})

	s.Run("blanking a name marks it incomplete again", func() {
		blank := "  "
		updated, err := s.store.UpdateProfile(s.ctx, u.ID, models.ProfileUpdate{LastName: &blank}, s.now)
		s.Require().NoError(err)
		s.False(updated.IsProfileComplete)
	})

	s.Run("unknown user returns ErrNotFound", func() {
		_, err := s.store.UpdateProfile(s.ctx, id.NewUserID(), models.ProfileUpdate{}, s.now)
		s.Require().ErrorIs(err, sentinel.ErrNotFound)
	})
}

func (s *InMemoryUserStoreSuite) TestSoftDelete() {
	s.Run("deleted user becomes unfindable", func() {
		created := &models.User{Email: "delete.me@ucsd.edu"}
		s.Require().NoError(s.store.Create(s.ctx, created))
		s.Require().NoError(s.store.SoftDelete(s.ctx, created.ID, s.now))

		_, err := s.store.FindByID(s.ctx, created.ID)
		s.Require().ErrorIs(err, sentinel.ErrNotFound)
		_, err = s.store.FindByEmail(s.ctx, created.Email)
		s.Require().ErrorIs(err, sentinel.ErrNotFound)
	})

	s.Run("deleting twice returns ErrNotFound", func() {
		created := &models.User{Email: "twice@ucsd.edu"}
		s.Require().NoError(s.store.Create(s.ctx, created))
		s.Require().NoError(s.store.SoftDelete(s.ctx, created.ID, s.now))
		s.Require().ErrorIs(s.store.SoftDelete(s.ctx, created.ID, s.now), sentinel.ErrNotFound)
	})
}

func (s *InMemoryUserStoreSuite) TestFindByIDs() {
	b := &models.User{Email: "b@ucsd.edu"}
	a := &models.User{Email: "a@ucsd.edu"}
	gone := &models.User{Email: "gone@ucsd.edu"}
	for _, u := range []*models.User{b, a, gone} {
		s.Require().NoError(s.store.Create(s.ctx, u))
	}
	s.Require().NoError(s.store.SoftDelete(s.ctx, gone.ID, s.now))

	users, err := s.store.FindByIDs(s.ctx, []id.UserID{b.ID, gone.ID, a.ID, b.ID, id.NewUserID()})
	s.Require().NoError(err)
	s.Require().Len(users, 2)
	s.Equal("a@ucsd.edu", users[0].Email)
	s.Equal("b@ucsd.edu", users[1].Email)
}
