package service

import (
	"context"

	"golang.org/x/sync/errgroup"

	authmodels "conductor/internal/auth/models"
	"conductor/internal/course/models"
	"conductor/internal/course/policy"
	id "conductor/pkg/domain"
	dErrors "conductor/pkg/domain-errors"
)

// Roster lists the course's active members for professors and TAs. The
// course row and the enrollments are loaded concurrently, then the users in
// one batch.
func (s *Service) Roster(ctx context.Context, actor *authmodels.User, courseID id.CourseID) ([]*models.RosterEntry, error) {
	if _, err := s.authorize(ctx, actor, courseID, policy.ActionViewRoster); err != nil {
		return nil, err
	}

	var enrollments []*models.Enrollment
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		_, err := s.requireCourse(gctx, courseID)
		return err
	})
	g.Go(func() error {
		var err error
		enrollments, err = s.enrollments.ListByCourse(gctx, courseID)
		if err != nil {
			return dErrors.Wrap(err, dErrors.CodeInternal, "failed to list enrollments")
		}
		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	userIDs := make([]id.UserID, 0, len(enrollments))
	byUser := make(map[id.UserID]*models.Enrollment, len(enrollments))
	for _, e := range enrollments {
		userIDs = append(userIDs, e.UserID)
		byUser[e.UserID] = e
	}
	users, err := s.users.FindByIDs(ctx, userIDs)
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to load roster users")
	}

	roster := make([]*models.RosterEntry, 0, len(users))
	for _, u := range users {
		e := byUser[u.ID]
		roster = append(roster, &models.RosterEntry{User: u, Role: e.Role, TeamID: e.TeamID})
	}
	return roster, nil
}

var errMemberNotFound = dErrors.New(dErrors.CodeNotFound, "User not found in course")

// RosterMember returns one active member of the course for professors and
// TAs. A user without an active enrollment reads as not found.
func (s *Service) RosterMember(ctx context.Context, actor *authmodels.User, courseID id.CourseID, userID id.UserID) (*models.RosterEntry, error) {
	if _, err := s.authorize(ctx, actor, courseID, policy.ActionViewRoster); err != nil {
		return nil, err
	}
	if _, err := s.requireCourse(ctx, courseID); err != nil {
		return nil, err
	}

	enrollments, err := s.enrollments.ListByCourse(ctx, courseID)
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to list enrollments")
	}
	var member *models.Enrollment
	for _, e := range enrollments {
		if e.UserID == userID {
			member = e
			break
		}
	}
	if member == nil {
		return nil, errMemberNotFound
	}

	users, err := s.users.FindByIDs(ctx, []id.UserID{userID})
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to load roster user")
	}
	if len(users) == 0 {
		return nil, errMemberNotFound
	}
	return &models.RosterEntry{User: users[0], Role: member.Role, TeamID: member.TeamID}, nil
}
