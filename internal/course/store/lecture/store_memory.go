package lecture

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
// - ErrNotFound when the lecture does not exist, is soft-deleted or belongs
//   to another course
// - nil on success

type InMemoryLectureStore struct {
	mu       sync.RWMutex
	lectures map[id.LectureID]*models.Lecture
	nextID   id.LectureID
	now      func() time.Time
}

func New() *InMemoryLectureStore {
	return &InMemoryLectureStore{
		lectures: make(map[id.LectureID]*models.Lecture),
		now:      time.Now,
	}
}

func (s *InMemoryLectureStore) Create(_ context.Context, lecture *models.Lecture) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.nextID++
	stored := *lecture
	stored.ID = s.nextID
	if stored.CreatedAt.IsZero() {
		stored.CreatedAt = s.now()
	}
	stored.UpdatedAt = stored.CreatedAt
	s.lectures[stored.ID] = &stored
	*lecture = stored
	return nil
}

func (s *InMemoryLectureStore) FindByID(_ context.Context, courseID id.CourseID, lectureID id.LectureID) (*models.Lecture, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	l, err := s.live(courseID, lectureID)
	if err != nil {
		return nil, err
	}
	cp := *l
	return &cp, nil
}

// ListByCourse returns live lectures earliest first.
func (s *InMemoryLectureStore) ListByCourse(_ context.Context, courseID id.CourseID) ([]*models.Lecture, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]*models.Lecture, 0)
	for _, l := range s.lectures {
		if l.CourseID != courseID || l.IsDeleted() {
			continue
		}
		cp := *l
		out = append(out, &cp)
	}
	sort.Slice(out, func(i, j int) bool {
		if !out[i].LectureDate.Equal(out[j].LectureDate) {
			return out[i].LectureDate.Before(out[j].LectureDate)
		}
		return out[i].ID < out[j].ID
	})
	return out, nil
}

func (s *InMemoryLectureStore) Update(_ context.Context, courseID id.CourseID, lectureID id.LectureID, upd models.LectureUpdate, now time.Time) (*models.Lecture, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	l, err := s.live(courseID, lectureID)
	if err != nil {
		return nil, err
	}
	upd.Apply(l)
	l.UpdatedAt = now
	cp := *l
	return &cp, nil
}

func (s *InMemoryLectureStore) SoftDelete(_ context.Context, courseID id.CourseID, lectureID id.LectureID, now time.Time) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	l, err := s.live(courseID, lectureID)
	if err != nil {
		return err
	}
	l.DeletedAt = &now
	l.UpdatedAt = now
	return nil
}

func (s *InMemoryLectureStore) live(courseID id.CourseID, lectureID id.LectureID) (*models.Lecture, error) {
	l, ok := s.lectures[lectureID]
	if !ok || l.IsDeleted() || l.CourseID != courseID {
		return nil, sentinel.ErrNotFound
	}
	return l, nil
}
