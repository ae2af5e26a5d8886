package service

import (
	"context"
	"strings"

	authmodels "conductor/internal/auth/models"
	"conductor/internal/course/models"
	"conductor/internal/course/policy"
	id "conductor/pkg/domain"
	dErrors "conductor/pkg/domain-errors"
	"conductor/pkg/requestcontext"
)

// LectureInput carries a create or patch body. For a patch, nil fields are
// untouched and ClearCode removes the code.
type LectureInput struct {
	LectureDate *string
	Code        *string
	ClearCode   bool
}

func (s *Service) ListLectures(ctx context.Context, actor *authmodels.User, courseID id.CourseID) ([]*models.Lecture, error) {
	if _, err := s.authorize(ctx, actor, courseID, policy.ActionViewLectures); err != nil {
		return nil, err
	}
	if _, err := s.requireCourse(ctx, courseID); err != nil {
		return nil, err
	}
	lectures, err := s.lectures.ListByCourse(ctx, courseID)
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to list lectures")
	}
	return lectures, nil
}

func (s *Service) GetLecture(ctx context.Context, actor *authmodels.User, courseID id.CourseID, lectureID id.LectureID) (*models.Lecture, error) {
	if _, err := s.authorize(ctx, actor, courseID, policy.ActionViewLectures); err != nil {
		return nil, err
	}
	return s.requireLecture(ctx, courseID, lectureID)
}

// CreateLecture requires a parseable lecture_date; code is optional.
func (s *Service) CreateLecture(ctx context.Context, actor *authmodels.User, courseID id.CourseID, in LectureInput) (*models.Lecture, error) {
	if _, err := s.authorize(ctx, actor, courseID, policy.ActionModifyLectures); err != nil {
		return nil, err
	}
	if _, err := s.requireCourse(ctx, courseID); err != nil {
		return nil, err
	}
	raw := ""
	if in.LectureDate != nil {
		raw = *in.LectureDate
	}
	date, err := ParseDate("lecture_date", raw)
	if err != nil {
		return nil, err
	}
	lecture := &models.Lecture{
		CourseID:    courseID,
		LectureDate: date,
		Code:        normalizeCode(in.Code),
		CreatedAt:   requestcontext.Now(ctx),
	}
	if err := s.lectures.Create(ctx, lecture); err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to create lecture")
	}
	return lecture, nil
}

// UpdateLecture applies a partial edit. An empty body returns the lecture
// unchanged.
func (s *Service) UpdateLecture(ctx context.Context, actor *authmodels.User, courseID id.CourseID, lectureID id.LectureID, in LectureInput) (*models.Lecture, error) {
	if _, err := s.authorize(ctx, actor, courseID, policy.ActionModifyLectures); err != nil {
		return nil, err
	}
	current, err := s.requireLecture(ctx, courseID, lectureID)
	if err != nil {
		return nil, err
	}

	upd := models.LectureUpdate{ClearCode: in.ClearCode}
	if in.LectureDate != nil {
		date, err := ParseDate("lecture_date", *in.LectureDate)
		if err != nil {
			return nil, err
		}
		upd.LectureDate = &date
	}
	if !in.ClearCode && in.Code != nil {
		if upd.Code = normalizeCode(in.Code); upd.Code == nil {
			upd.ClearCode = true
		}
	}
	if upd.IsEmpty() {
		return current, nil
	}

	updated, err := s.lectures.Update(ctx, courseID, lectureID, upd, requestcontext.Now(ctx))
	if err != nil {
		return nil, translate(err, errLectureNotFound, "failed to update lecture")
	}
	return updated, nil
}

func (s *Service) DeleteLecture(ctx context.Context, actor *authmodels.User, courseID id.CourseID, lectureID id.LectureID) error {
	if _, err := s.authorize(ctx, actor, courseID, policy.ActionModifyLectures); err != nil {
		return err
	}
	if _, err := s.requireCourse(ctx, courseID); err != nil {
		return err
	}
	if err := s.lectures.SoftDelete(ctx, courseID, lectureID, requestcontext.Now(ctx)); err != nil {
		return translate(err, errLectureNotFound, "failed to delete lecture")
	}
	return nil
}

// requireLecture checks the course before the lecture so a deleted course
// hides its lectures.
func (s *Service) requireLecture(ctx context.Context, courseID id.CourseID, lectureID id.LectureID) (*models.Lecture, error) {
	if _, err := s.requireCourse(ctx, courseID); err != nil {
		return nil, err
	}
	lecture, err := s.lectures.FindByID(ctx, courseID, lectureID)
	if err != nil {
		return nil, translate(err, errLectureNotFound, "failed to load lecture")
	}
	return lecture, nil
}

// normalizeCode trims the code; blank means no code.
func normalizeCode(code *string) *string {
	if code == nil {
		return nil
	}
	trimmed := strings.TrimSpace(*code)
	if trimmed == "" {
		return nil
	}
	return &trimmed
}
