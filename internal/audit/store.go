package audit

import (
	"context"
	"errors"
	"log/slog"
	"sync"

	id "conductor/pkg/domain"
)

// Store is a sink for audit events.
type Store interface {
	Append(ctx context.Context, event Event) error
}

// InMemoryStore keeps events per user. Used by tests.
type InMemoryStore struct {
	mu     sync.RWMutex
	events map[id.UserID][]Event
}

func NewInMemoryStore() *InMemoryStore {
	return &InMemoryStore{events: make(map[id.UserID][]Event)}
}

func (s *InMemoryStore) Append(_ context.Context, event Event) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.events[event.UserID] = append(s.events[event.UserID], event)
	return nil
}

func (s *InMemoryStore) ListByUser(_ context.Context, userID id.UserID) ([]Event, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]Event{}, s.events[userID]...), nil
}

// LogStore writes each event as a structured log line.
type LogStore struct {
	logger *slog.Logger
}

func NewLogStore(logger *slog.Logger) *LogStore {
	return &LogStore{logger: logger}
}

func (s *LogStore) Append(ctx context.Context, event Event) error {
	s.logger.InfoContext(ctx, event.Action,
		"log_type", "audit",
		"user_id", event.UserID.String(),
		"session_id", event.SessionID,
		"course_id", int64(event.CourseID),
		"email", event.Email,
		"reason", event.Reason,
		"request_id", event.RequestID,
	)
	return nil
}

// MultiStore appends to every sink and joins their errors.
type MultiStore []Store

func (m MultiStore) Append(ctx context.Context, event Event) error {
	var errs []error
	for _, s := range m {
		if err := s.Append(ctx, event); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}
