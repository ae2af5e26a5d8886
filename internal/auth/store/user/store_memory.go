package user

import (
	"context"
	"sort"
	"sync"
	"time"

	"conductor/internal/auth/models"
	id "conductor/pkg/domain"
	"conductor/pkg/platform/sentinel"
)

// Error Contract:
// - ErrNotFound when the user does not exist or is soft-deleted
// - ErrConflict when Create hits an email already taken
// - nil on success

// InMemoryUserStore keeps users in maps guarded by one lock. Upsert holds the
// write lock for the whole read-modify-write, which gives it the same
// one-row-per-email guarantee as the Postgres ON CONFLICT upsert.
type InMemoryUserStore struct {
	mu      sync.RWMutex
	users   map[id.UserID]*models.User
	byEmail map[string]id.UserID
	now     func() time.Time
}

func New() *InMemoryUserStore {
	return &InMemoryUserStore{
		users:   make(map[id.UserID]*models.User),
		byEmail: make(map[string]id.UserID),
		now:     time.Now,
	}
}

// Create provisions a user ahead of their first login.
func (s *InMemoryUserStore) Create(_ context.Context, user *models.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	email := models.NormalizeEmail(user.Email)
	if _, ok := s.byEmail[email]; ok {
		return sentinel.ErrConflict
	}
	stored := *user
	stored.Email = email
	if stored.ID.IsNil() {
		stored.ID = id.NewUserID()
	}
	if stored.GlobalRole == id.RoleNone {
		stored.GlobalRole = id.RoleStudent
	}
	stored.IsProfileComplete = models.ProfileComplete(stored.FirstName, stored.LastName)
	now := s.now()
	if stored.CreatedAt.IsZero() {
		stored.CreatedAt = now
	}
	stored.UpdatedAt = now
	s.users[stored.ID] = &stored
	s.byEmail[email] = stored.ID
	*user = stored
	return nil
}

func (s *InMemoryUserStore) FindByID(_ context.Context, userID id.UserID) (*models.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	u, ok := s.users[userID]
	if !ok || u.IsDeleted() {
		return nil, sentinel.ErrNotFound
	}
	cp := *u
	return &cp, nil
}

func (s *InMemoryUserStore) FindByEmail(_ context.Context, email string) (*models.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	userID, ok := s.byEmail[models.NormalizeEmail(email)]
	if !ok {
		return nil, sentinel.ErrNotFound
	}
	u := s.users[userID]
	if u.IsDeleted() {
		return nil, sentinel.ErrNotFound
	}
	cp := *u
	return &cp, nil
}

// FindByIDs returns the live users among userIDs ordered by email.
func (s *InMemoryUserStore) FindByIDs(_ context.Context, userIDs []id.UserID) ([]*models.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var users []*models.User
	seen := make(map[id.UserID]bool, len(userIDs))
	for _, userID := range userIDs {
		u, ok := s.users[userID]
		if !ok || u.IsDeleted() || seen[userID] {
			continue
		}
		seen[userID] = true
		cp := *u
		users = append(users, &cp)
	}
	sort.Slice(users, func(i, j int) bool { return users[i].Email < users[j].Email })
	return users, nil
}

// Upsert inserts a new user or refreshes last login and names on an existing
// one. Soft-deleted rows are not revived.
func (s *InMemoryUserStore) Upsert(_ context.Context, in models.UpsertUser) (*models.User, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	email := models.NormalizeEmail(in.Email)
	lastLogin := in.LastLogin
	if userID, ok := s.byEmail[email]; ok {
		u := s.users[userID]
		if u.IsDeleted() {
			return nil, false, sentinel.ErrNotFound
		}
		if in.FirstName != "" {
			u.FirstName = in.FirstName
		}
		if in.LastName != "" {
			u.LastName = in.LastName
		}
		u.LastLogin = &lastLogin
		u.UpdatedAt = lastLogin
		cp := *u
		return &cp, false, nil
	}

	u := &models.User{
		ID:         id.NewUserID(),
		Email:      email,
		FirstName:  in.FirstName,
		LastName:   in.LastName,
		GlobalRole: id.RoleStudent,
		LastLogin:  &lastLogin,
		CreatedAt:  lastLogin,
		UpdatedAt:  lastLogin,
	}
	s.users[u.ID] = u
	s.byEmail[email] = u.ID
	cp := *u
	return &cp, true, nil
}

// UpdateProfile applies the non-nil fields and recomputes profile completeness.
func (s *InMemoryUserStore) UpdateProfile(_ context.Context, userID id.UserID, upd models.ProfileUpdate, now time.Time) (*models.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	u, ok := s.users[userID]
	if !ok || u.IsDeleted() {
		return nil, sentinel.ErrNotFound
	}
	if upd.FirstName != nil {
		u.FirstName = *upd.FirstName
	}
	if upd.LastName != nil {
		u.LastName = *upd.LastName
	}
	if upd.Pronouns != nil {
		u.Pronouns = *upd.Pronouns
	}
	u.IsProfileComplete = models.ProfileComplete(u.FirstName, u.LastName)
	u.UpdatedAt = now
	cp := *u
	return &cp, nil
}

// SoftDelete marks the user deleted. The email stays reserved.
func (s *InMemoryUserStore) SoftDelete(_ context.Context, userID id.UserID, now time.Time) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	u, ok := s.users[userID]
	if !ok || u.IsDeleted() {
		return sentinel.ErrNotFound
	}
	u.DeletedAt = &now
	return nil
}
