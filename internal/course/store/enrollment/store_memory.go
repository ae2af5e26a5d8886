package enrollment

import (
	"context"
	"sort"
	"sync"
	"time"

	"conductor/internal/course/models"
	id "conductor/pkg/domain"
)

// Error Contract:
// - Role returns RoleNone, not an error, when no active enrollment exists
// - Enroll never fails for a fresh pair; an active pair is returned as is

type key struct {
	userID   id.UserID
	courseID id.CourseID
}

// InMemoryEnrollmentStore keys enrollments by (user, course).
type InMemoryEnrollmentStore struct {
	mu          sync.RWMutex
	enrollments map[key]*models.Enrollment
	now         func() time.Time
}

func New() *InMemoryEnrollmentStore {
	return &InMemoryEnrollmentStore{
		enrollments: make(map[key]*models.Enrollment),
		now:         time.Now,
	}
}

// Enroll inserts the enrollment, or revives a soft-deleted one with the new
// role. An active enrollment is left untouched and created is false.
func (s *InMemoryEnrollmentStore) Enroll(_ context.Context, e *models.Enrollment) (*models.Enrollment, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	k := key{userID: e.UserID, courseID: e.CourseID}
	if existing, ok := s.enrollments[k]; ok && existing.DeletedAt == nil {
		cp := *existing
		return &cp, false, nil
	}
	stored := *e
	if stored.CreatedAt.IsZero() {
		stored.CreatedAt = s.now()
	}
	stored.UpdatedAt = stored.CreatedAt
	stored.DeletedAt = nil
	s.enrollments[k] = &stored
	cp := stored
	return &cp, true, nil
}

func (s *InMemoryEnrollmentStore) Role(_ context.Context, userID id.UserID, courseID id.CourseID) (id.Role, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	e, ok := s.enrollments[key{userID: userID, courseID: courseID}]
	if !ok || e.DeletedAt != nil {
		return id.RoleNone, nil
	}
	return e.Role, nil
}

// ListByUser returns the user's active enrollments ordered by course id.
func (s *InMemoryEnrollmentStore) ListByUser(_ context.Context, userID id.UserID) ([]*models.Enrollment, error) {
	return s.list(func(e *models.Enrollment) bool { return e.UserID == userID }), nil
}

// ListByCourse returns the course's active enrollments.
func (s *InMemoryEnrollmentStore) ListByCourse(_ context.Context, courseID id.CourseID) ([]*models.Enrollment, error) {
	return s.list(func(e *models.Enrollment) bool { return e.CourseID == courseID }), nil
}

func (s *InMemoryEnrollmentStore) list(match func(*models.Enrollment) bool) []*models.Enrollment {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var out []*models.Enrollment
	for _, e := range s.enrollments {
		if e.DeletedAt != nil || !match(e) {
			continue
		}
		cp := *e
		out = append(out, &cp)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].CourseID != out[j].CourseID {
			return out[i].CourseID < out[j].CourseID
		}
		return out[i].CreatedAt.Before(out[j].CreatedAt)
	})
	return out
}

// Remove soft-deletes an enrollment. Missing pairs are ignored.
func (s *InMemoryEnrollmentStore) Remove(_ context.Context, userID id.UserID, courseID id.CourseID, now time.Time) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if e, ok := s.enrollments[key{userID: userID, courseID: courseID}]; ok && e.DeletedAt == nil {
		e.DeletedAt = &now
		e.UpdatedAt = now
	}
	return nil
}
