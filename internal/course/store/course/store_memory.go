package course

import (
	"context"
	"sort"
	"sync"
	"time"

	"conductor/internal/course/models"
	id "conductor/pkg/domain"
	"conductor/pkg/platform/sentinel"
)

// Error Contract:
// - ErrNotFound when the course does not exist or is soft-deleted
// - ErrConflict when a join code is already taken, deleted courses included
// - nil on success

// InMemoryCourseStore keeps courses in a map guarded by one lock.
type InMemoryCourseStore struct {
	mu         sync.RWMutex
	courses    map[id.CourseID]*models.Course
	byJoinCode map[string]id.CourseID
	nextID     id.CourseID
	now        func() time.Time
}

func New() *InMemoryCourseStore {
	return &InMemoryCourseStore{
		courses:    make(map[id.CourseID]*models.Course),
		byJoinCode: make(map[string]id.CourseID),
		now:        time.Now,
	}
}

func (s *InMemoryCourseStore) Create(_ context.Context, course *models.Course) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	joinCode := models.NormalizeJoinCode(course.JoinCode)
	if _, ok := s.byJoinCode[joinCode]; ok {
		return sentinel.ErrConflict
	}
	s.nextID++
	stored := *course
	stored.ID = s.nextID
	stored.JoinCode = joinCode
	if stored.Section == "" {
		stored.Section = models.DefaultSection
	}
	if stored.CreatedAt.IsZero() {
		stored.CreatedAt = s.now()
	}
	stored.UpdatedAt = stored.CreatedAt
	s.courses[stored.ID] = &stored
	s.byJoinCode[joinCode] = stored.ID
	*course = stored
	return nil
}

func (s *InMemoryCourseStore) FindByID(_ context.Context, courseID id.CourseID) (*models.Course, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	c, ok := s.courses[courseID]
	if !ok || c.IsDeleted() {
		return nil, sentinel.ErrNotFound
	}
	cp := *c
	return &cp, nil
}

// FindByIDs returns the live courses among courseIDs ordered by id.
func (s *InMemoryCourseStore) FindByIDs(_ context.Context, courseIDs []id.CourseID) ([]*models.Course, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var out []*models.Course
	seen := make(map[id.CourseID]bool, len(courseIDs))
	for _, courseID := range courseIDs {
		c, ok := s.courses[courseID]
		if !ok || c.IsDeleted() || seen[courseID] {
			continue
		}
		seen[courseID] = true
		cp := *c
		out = append(out, &cp)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (s *InMemoryCourseStore) FindByJoinCode(_ context.Context, joinCode string) (*models.Course, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	courseID, ok := s.byJoinCode[models.NormalizeJoinCode(joinCode)]
	if !ok {
		return nil, sentinel.ErrNotFound
	}
	c := s.courses[courseID]
	if c.IsDeleted() {
		return nil, sentinel.ErrNotFound
	}
	cp := *c
	return &cp, nil
}

func (s *InMemoryCourseStore) Update(_ context.Context, courseID id.CourseID, upd models.CourseUpdate, now time.Time) (*models.Course, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	c, ok := s.courses[courseID]
	if !ok || c.IsDeleted() {
		return nil, sentinel.ErrNotFound
	}
	if upd.JoinCode != nil {
		joinCode := models.NormalizeJoinCode(*upd.JoinCode)
		if owner, taken := s.byJoinCode[joinCode]; taken && owner != courseID {
			return nil, sentinel.ErrConflict
		}
		delete(s.byJoinCode, c.JoinCode)
		s.byJoinCode[joinCode] = courseID
		upd.JoinCode = &joinCode
	}
	upd.Apply(c)
	c.UpdatedAt = now
	cp := *c
	return &cp, nil
}

// SoftDelete marks the course deleted. Its join code stays reserved.
func (s *InMemoryCourseStore) SoftDelete(_ context.Context, courseID id.CourseID, now time.Time) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	c, ok := s.courses[courseID]
	if !ok || c.IsDeleted() {
		return sentinel.ErrNotFound
	}
	c.DeletedAt = &now
	c.UpdatedAt = now
	return nil
}
