package service

import (
	"context"
	"errors"
	"strings"
	"unicode/utf8"

	"conductor/internal/audit"
	"conductor/internal/auth/models"
	id "conductor/pkg/domain"
	dErrors "conductor/pkg/domain-errors"
	"conductor/pkg/platform/sentinel"
	"conductor/pkg/requestcontext"
)

const maxProfileFieldLen = 100

// GetUserProfile returns targetID's profile if actor may see it.
func (s *Service) GetUserProfile(ctx context.Context, actor *models.User, targetID id.UserID) (*models.User, error) {
	if !CanViewUserProfile(actor, targetID) {
		return nil, dErrors.New(dErrors.CodeForbidden, "not allowed to view this profile")
	}
	if actor.ID == targetID {
		return actor, nil
	}
	user, err := s.users.FindByID(ctx, targetID)
	if err != nil {
		if errors.Is(err, sentinel.ErrNotFound) {
			return nil, dErrors.New(dErrors.CodeNotFound, "user not found")
		}
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to load user")
	}
	return user, nil
}

// UpdateProfile applies a partial edit to actor's own profile. Strings are
// trimmed; is_profile_complete is recomputed by the store.
func (s *Service) UpdateProfile(ctx context.Context, actor *models.User, upd models.ProfileUpdate) (*models.User, error) {
	if actor == nil {
		return nil, dErrors.New(dErrors.CodeUnauthorized, "not authenticated")
	}
	if !CanEditUserProfile(actor, actor.ID) {
		return nil, dErrors.New(dErrors.CodeForbidden, "not allowed to edit this profile")
	}
	fields := []struct {
		name  string
		value *string
	}{
		{"first_name", upd.FirstName},
		{"last_name", upd.LastName},
		{"pronouns", upd.Pronouns},
	}
	for _, f := range fields {
		if f.value == nil {
			continue
		}
		*f.value = strings.TrimSpace(*f.value)
		if utf8.RuneCountInString(*f.value) > maxProfileFieldLen {
			return nil, dErrors.New(dErrors.CodeInvalidInput, f.name+" must be at most 100 characters")
		}
	}

	user, err := s.users.UpdateProfile(ctx, actor.ID, upd, requestcontext.Now(ctx))
	if err != nil {
		if errors.Is(err, sentinel.ErrNotFound) {
			return nil, dErrors.New(dErrors.CodeNotFound, "user not found")
		}
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to update profile")
	}
	s.emitAudit(ctx, audit.Event{
		Action: string(audit.ActionProfileUpdated),
		UserID: user.ID,
	})
	return user, nil
}
