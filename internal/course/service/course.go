package service

import (
	"context"
	"errors"
	"strings"

	"conductor/internal/audit"
	authmodels "conductor/internal/auth/models"
	"conductor/internal/course/models"
	"conductor/internal/course/policy"
	id "conductor/pkg/domain"
	dErrors "conductor/pkg/domain-errors"
	"conductor/pkg/platform/sentinel"
	"conductor/pkg/requestcontext"
)

const joinCodeAttempts = 5

// CreateCourseInput is the raw create request; dates are parsed here so the
// handler stays a thin decoder.
type CreateCourseInput struct {
	Code      string
	Name      string
	Term      string
	Section   string
	JoinCode  string
	StartDate string
	EndDate   string
}

// UpdateCourseInput is a partial edit; nil fields are untouched.
type UpdateCourseInput struct {
	Code      *string
	Name      *string
	Term      *string
	Section   *string
	JoinCode  *string
	StartDate *string
	EndDate   *string
}

// ListCourses returns the courses the actor is enrolled in with their role.
func (s *Service) ListCourses(ctx context.Context, actor *authmodels.User) ([]*models.Membership, error) {
	if actor == nil {
		return nil, errNotAuthenticated
	}
	enrollments, err := s.enrollments.ListByUser(ctx, actor.ID)
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to list enrollments")
	}
	if len(enrollments) == 0 {
		return []*models.Membership{}, nil
	}
	roles := make(map[id.CourseID]id.Role, len(enrollments))
	courseIDs := make([]id.CourseID, 0, len(enrollments))
	for _, e := range enrollments {
		roles[e.CourseID] = e.Role
		courseIDs = append(courseIDs, e.CourseID)
	}
	courses, err := s.courses.FindByIDs(ctx, courseIDs)
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to load courses")
	}
	out := make([]*models.Membership, 0, len(courses))
	for _, c := range courses {
		out = append(out, &models.Membership{Course: c, Role: roles[c.ID]})
	}
	return out, nil
}

// CreateCourse lets a global professor open a course. The creator is
// enrolled as its professor in the same transaction.
func (s *Service) CreateCourse(ctx context.Context, actor *authmodels.User, in CreateCourseInput) (*models.Course, error) {
	if actor == nil {
		return nil, errNotAuthenticated
	}
	if actor.GlobalRole != id.RoleProfessor {
		return nil, dErrors.New(dErrors.CodeForbidden, "Only professors can create courses")
	}
	course, err := validateCreate(in)
	if err != nil {
		return nil, err
	}
	generated := course.JoinCode == ""
	now := requestcontext.Now(ctx)
	course.CreatedAt = now

	for attempt := 0; ; attempt++ {
		if generated {
			if course.JoinCode, err = generateJoinCode(); err != nil {
				return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to generate join code")
			}
		}
		err = s.tx.RunInTx(ctx, func(ctx context.Context) error {
			if err := s.courses.Create(ctx, course); err != nil {
				return err
			}
			_, _, err := s.enrollments.Enroll(ctx, &models.Enrollment{
				UserID:    actor.ID,
				CourseID:  course.ID,
				Role:      id.RoleProfessor,
				CreatedAt: now,
			})
			return err
		})
		if err == nil {
			break
		}
		if generated && errors.Is(err, sentinel.ErrConflict) && attempt+1 < joinCodeAttempts {
			continue
		}
		return nil, translate(err, errCourseNotFound, "failed to create course")
	}

	s.logger.InfoContext(ctx, "course created",
		"course_id", int64(course.ID),
		"user_id", actor.ID.String(),
		"request_id", requestcontext.RequestID(ctx),
	)
	s.emitAudit(ctx, audit.Event{
		Action:   string(audit.ActionCourseCreated),
		UserID:   actor.ID,
		CourseID: course.ID,
	})
	return course, nil
}

func validateCreate(in CreateCourseInput) (*models.Course, error) {
	var (
		c   models.Course
		err error
	)
	if c.Code, err = requireText("course_code", in.Code); err != nil {
		return nil, err
	}
	if c.Name, err = requireText("course_name", in.Name); err != nil {
		return nil, err
	}
	if c.Term, err = requireText("term", in.Term); err != nil {
		return nil, err
	}
	c.Section = models.DefaultSection
	if strings.TrimSpace(in.Section) != "" {
		if c.Section, err = requireText("section", in.Section); err != nil {
			return nil, err
		}
	}
	if strings.TrimSpace(in.JoinCode) != "" {
		if c.JoinCode, err = validateJoinCode(in.JoinCode); err != nil {
			return nil, err
		}
	}
	if c.StartDate, err = ParseDate("start_date", in.StartDate); err != nil {
		return nil, err
	}
	if c.EndDate, err = ParseDate("end_date", in.EndDate); err != nil {
		return nil, err
	}
	if err := validateDateRange(c.StartDate, c.EndDate); err != nil {
		return nil, err
	}
	return &c, nil
}

// GetCourse returns the course for any enrolled role.
func (s *Service) GetCourse(ctx context.Context, actor *authmodels.User, courseID id.CourseID) (*models.Membership, error) {
	role, err := s.authorize(ctx, actor, courseID, policy.ActionViewLectures)
	if err != nil {
		return nil, err
	}
	course, err := s.requireCourse(ctx, courseID)
	if err != nil {
		return nil, err
	}
	return &models.Membership{Course: course, Role: role}, nil
}

func (s *Service) UpdateCourse(ctx context.Context, actor *authmodels.User, courseID id.CourseID, in UpdateCourseInput) (*models.Course, error) {
	if _, err := s.authorize(ctx, actor, courseID, policy.ActionManageCourse); err != nil {
		return nil, err
	}
	current, err := s.requireCourse(ctx, courseID)
	if err != nil {
		return nil, err
	}
	upd, err := validateUpdate(current, in)
	if err != nil {
		return nil, err
	}
	if upd.IsEmpty() {
		return current, nil
	}
	updated, err := s.courses.Update(ctx, courseID, upd, requestcontext.Now(ctx))
	if err != nil {
		return nil, translate(err, errCourseNotFound, "failed to update course")
	}
	return updated, nil
}

func validateUpdate(current *models.Course, in UpdateCourseInput) (models.CourseUpdate, error) {
	var upd models.CourseUpdate
	text := func(field string, src *string, dst **string) error {
		if src == nil {
			return nil
		}
		v, err := requireText(field, *src)
		if err != nil {
			return err
		}
		*dst = &v
		return nil
	}
	if err := text("course_code", in.Code, &upd.Code); err != nil {
		return upd, err
	}
	if err := text("course_name", in.Name, &upd.Name); err != nil {
		return upd, err
	}
	if err := text("term", in.Term, &upd.Term); err != nil {
		return upd, err
	}
	if err := text("section", in.Section, &upd.Section); err != nil {
		return upd, err
	}
	if in.JoinCode != nil {
		code, err := validateJoinCode(*in.JoinCode)
		if err != nil {
			return upd, err
		}
		upd.JoinCode = &code
	}
	start, end := current.StartDate, current.EndDate
	if in.StartDate != nil {
		t, err := ParseDate("start_date", *in.StartDate)
		if err != nil {
			return upd, err
		}
		start, upd.StartDate = t, &t
	}
	if in.EndDate != nil {
		t, err := ParseDate("end_date", *in.EndDate)
		if err != nil {
			return upd, err
		}
		end, upd.EndDate = t, &t
	}
	return upd, validateDateRange(start, end)
}

// DeleteCourse soft-deletes the course. Enrollments and lectures stay in
// place and become unreachable with it.
func (s *Service) DeleteCourse(ctx context.Context, actor *authmodels.User, courseID id.CourseID) error {
	if _, err := s.authorize(ctx, actor, courseID, policy.ActionManageCourse); err != nil {
		return err
	}
	if err := s.courses.SoftDelete(ctx, courseID, requestcontext.Now(ctx)); err != nil {
		return translate(err, errCourseNotFound, "failed to delete course")
	}
	s.emitAudit(ctx, audit.Event{
		Action:   string(audit.ActionCourseDeleted),
		UserID:   actor.ID,
		CourseID: courseID,
	})
	return nil
}

// JoinCourse enrolls the actor as a student of the course owning joinCode.
// Joining twice is a no-op that keeps the existing role.
func (s *Service) JoinCourse(ctx context.Context, actor *authmodels.User, joinCode string) (*models.Membership, error) {
	if actor == nil {
		return nil, errNotAuthenticated
	}
	code, err := validateJoinCode(joinCode)
	if err != nil {
		return nil, err
	}
	course, err := s.courses.FindByJoinCode(ctx, code)
	if err != nil {
		return nil, translate(err, dErrors.New(dErrors.CodeNotFound, "No course matches this join code"), "failed to look up join code")
	}
	enrollment, created, err := s.enrollments.Enroll(ctx, &models.Enrollment{
		UserID:    actor.ID,
		CourseID:  course.ID,
		Role:      id.RoleStudent,
		CreatedAt: requestcontext.Now(ctx),
	})
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to join course")
	}
	if created {
		s.emitAudit(ctx, audit.Event{
			Action:   string(audit.ActionCourseJoined),
			UserID:   actor.ID,
			CourseID: course.ID,
		})
	}
	return &models.Membership{Course: course, Role: enrollment.Role}, nil
}
