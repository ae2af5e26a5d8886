package service

import (
	"context"
	"errors"

	"conductor/internal/audit"
	authmodels "conductor/internal/auth/models"
	"conductor/internal/course/models"
	"conductor/internal/course/policy"
	id "conductor/pkg/domain"
	dErrors "conductor/pkg/domain-errors"
	"conductor/pkg/platform/sentinel"
	"conductor/pkg/requestcontext"
)

var (
	errNotAuthenticated = dErrors.New(dErrors.CodeUnauthorized, "Not authenticated")
	errCourseNotFound   = dErrors.New(dErrors.CodeNotFound, "Course not found")
	errLectureNotFound  = dErrors.New(dErrors.CodeNotFound, "Lecture not found")
)

var denials = map[policy.Action]string{
	policy.ActionViewLectures:   "You are not enrolled in this course",
	policy.ActionModifyLectures: "Only professors and TAs can modify lectures",
	policy.ActionViewRoster:     "Only professors and TAs can view the roster",
	policy.ActionManageCourse:   "Only professors can manage this course",
}

type roleCheck func(ctx context.Context, userID id.UserID, courseID id.CourseID) (id.Role, bool, error)

func (s *Service) checkFor(action policy.Action) roleCheck {
	switch action {
	case policy.ActionViewLectures:
		return s.policy.CanViewLectures
	case policy.ActionModifyLectures:
		return s.policy.CanModifyLectures
	case policy.ActionViewRoster:
		return s.policy.CanViewRoster
	case policy.ActionManageCourse:
		return s.policy.CanManageCourse
	}
	return func(ctx context.Context, userID id.UserID, courseID id.CourseID) (id.Role, bool, error) {
		return s.policy.Check(ctx, userID, courseID, action)
	}
}

// authorize returns the actor's course role when action is allowed.
func (s *Service) authorize(ctx context.Context, actor *authmodels.User, courseID id.CourseID, action policy.Action) (id.Role, error) {
	if actor == nil {
		return id.RoleNone, errNotAuthenticated
	}
	role, allowed, err := s.checkFor(action)(ctx, actor.ID, courseID)
	if err != nil {
		return id.RoleNone, dErrors.Wrap(err, dErrors.CodeInternal, "failed to resolve course role")
	}
	if !allowed {
		return role, dErrors.New(dErrors.CodeForbidden, denials[action])
	}
	return role, nil
}

// requireCourse loads a live course, mapping absence to 404.
func (s *Service) requireCourse(ctx context.Context, courseID id.CourseID) (*models.Course, error) {
	course, err := s.courses.FindByID(ctx, courseID)
	if err != nil {
		return nil, translate(err, errCourseNotFound, "failed to load course")
	}
	return course, nil
}

// translate maps store sentinels onto domain errors.
func translate(err error, notFound error, msg string) error {
	switch {
	case errors.Is(err, sentinel.ErrNotFound):
		return notFound
	case errors.Is(err, sentinel.ErrConflict):
		return dErrors.Wrap(err, dErrors.CodeConflict, "join code already in use")
	}
	return dErrors.Wrap(err, dErrors.CodeInternal, msg)
}

func (s *Service) emitAudit(ctx context.Context, event audit.Event) {
	if s.auditor == nil {
		return
	}
	if err := s.auditor.Emit(ctx, event); err != nil {
		s.logger.WarnContext(ctx, "failed to emit audit event",
			"error", err,
			"action", event.Action,
			"request_id", requestcontext.RequestID(ctx),
		)
	}
}
