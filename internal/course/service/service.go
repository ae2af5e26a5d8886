// Package service implements course, enrollment and lecture operations.
// Every operation resolves in the same order: role check (403), course
// existence (404), then input validation (400).
package service

//go:generate mockgen -source=service.go -destination=mocks/mocks.go -package=mocks CourseStore,EnrollmentStore,LectureStore,UserReader,AuditPublisher

import (
	"context"
	"log/slog"
	"time"

	"conductor/internal/audit"
	authmodels "conductor/internal/auth/models"
	"conductor/internal/course/models"
	"conductor/internal/course/policy"
	id "conductor/pkg/domain"
	"conductor/pkg/platform/tx"
)

type CourseStore interface {
	Create(ctx context.Context, course *models.Course) error
	FindByID(ctx context.Context, courseID id.CourseID) (*models.Course, error)
	FindByIDs(ctx context.Context, courseIDs []id.CourseID) ([]*models.Course, error)
	FindByJoinCode(ctx context.Context, joinCode string) (*models.Course, error)
	Update(ctx context.Context, courseID id.CourseID, upd models.CourseUpdate, now time.Time) (*models.Course, error)
	SoftDelete(ctx context.Context, courseID id.CourseID, now time.Time) error
}

type EnrollmentStore interface {
	Enroll(ctx context.Context, e *models.Enrollment) (*models.Enrollment, bool, error)
	Role(ctx context.Context, userID id.UserID, courseID id.CourseID) (id.Role, error)
	ListByUser(ctx context.Context, userID id.UserID) ([]*models.Enrollment, error)
	ListByCourse(ctx context.Context, courseID id.CourseID) ([]*models.Enrollment, error)
}

type LectureStore interface {
	Create(ctx context.Context, lecture *models.Lecture) error
	FindByID(ctx context.Context, courseID id.CourseID, lectureID id.LectureID) (*models.Lecture, error)
	ListByCourse(ctx context.Context, courseID id.CourseID) ([]*models.Lecture, error)
	Update(ctx context.Context, courseID id.CourseID, lectureID id.LectureID, upd models.LectureUpdate, now time.Time) (*models.Lecture, error)
	SoftDelete(ctx context.Context, courseID id.CourseID, lectureID id.LectureID, now time.Time) error
}

type UserReader interface {
	FindByIDs(ctx context.Context, userIDs []id.UserID) ([]*authmodels.User, error)
}

type AuditPublisher interface {
	Emit(ctx context.Context, event audit.Event) error
}

type Service struct {
	courses     CourseStore
	enrollments EnrollmentStore
	lectures    LectureStore
	users       UserReader
	policy      *policy.Policy
	tx          tx.Runner
	logger      *slog.Logger
	auditor     AuditPublisher
}

type Option func(*Service)

func WithLogger(logger *slog.Logger) Option {
	return func(s *Service) {
		if logger != nil {
			s.logger = logger
		}
	}
}

func WithAuditPublisher(p AuditPublisher) Option {
	return func(s *Service) {
		s.auditor = p
	}
}

// WithTxRunner groups multi-store writes, such as creating a course and
// enrolling its creator, into one transaction.
func WithTxRunner(r tx.Runner) Option {
	return func(s *Service) {
		if r != nil {
			s.tx = r
		}
	}
}

func New(courses CourseStore, enrollments EnrollmentStore, lectures LectureStore, users UserReader, opts ...Option) *Service {
	s := &Service{
		courses:     courses,
		enrollments: enrollments,
		lectures:    lectures,
		users:       users,
		policy:      policy.New(enrollments),
		tx:          tx.NoopRunner{},
		logger:      slog.Default(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}
