package service

import (
	"context"
	"errors"

	"conductor/internal/audit"
	"conductor/internal/auth/device"
	"conductor/internal/auth/models"
	dErrors "conductor/pkg/domain-errors"
	"conductor/pkg/platform/sentinel"
	"conductor/pkg/requestcontext"
)

// LoginResult is what a successful callback needs to set the sid cookie.
type LoginResult struct {
	User    *models.User
	Session *models.Session
}

// ResolveUser maps a verified Google identity to a local user, creating one
// on first login when the email is allowlisted. Existing users are refreshed
// through the same atomic upsert so concurrent first logins yield one row.
func (s *Service) ResolveUser(ctx context.Context, identity *models.Identity) (*models.User, error) {
	if identity == nil {
		return nil, dErrors.New(dErrors.CodeInvalidInput, "identity required")
	}
	if !identity.EmailVerified {
		s.authFailure(ctx, string(dErrors.CodeEmailNotVerified), identity.Email)
		return nil, dErrors.New(dErrors.CodeEmailNotVerified, "your Google email is not verified")
	}
	email := models.NormalizeEmail(identity.Email)
	if email == "" {
		return nil, dErrors.New(dErrors.CodeInvalidInput, "email required")
	}

	if !s.emailAllowed(email) {
		_, err := s.users.FindByEmail(ctx, email)
		if errors.Is(err, sentinel.ErrNotFound) {
			s.authFailure(ctx, string(dErrors.CodeEmailNotAllowed), email)
			return nil, dErrors.New(dErrors.CodeEmailNotAllowed, "email is not registered")
		}
		if err != nil {
			return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to look up user")
		}
	}

	user, inserted, err := s.users.Upsert(ctx, models.UpsertUser{
		Email:     email,
		FirstName: identity.GivenName,
		LastName:  identity.FamilyName,
		LastLogin: requestcontext.Now(ctx),
	})
	if err != nil {
		if errors.Is(err, sentinel.ErrNotFound) {
			// The email belongs to a soft-deleted account.
			s.authFailure(ctx, string(dErrors.CodeEmailNotAllowed), email)
			return nil, dErrors.New(dErrors.CodeEmailNotAllowed, "email is not registered")
		}
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to save user")
	}

	if inserted {
		s.logger.InfoContext(ctx, "user created",
			"user_id", user.ID.String(),
			"request_id", requestcontext.RequestID(ctx),
		)
		s.emitAudit(ctx, audit.Event{
			Action: string(audit.ActionUserCreated),
			UserID: user.ID,
			Email:  user.Email,
		})
		if s.metrics != nil {
			s.metrics.IncrementUsersCreated()
		}
	}
	return user, nil
}

// Login resolves the user and opens a session for them.
func (s *Service) Login(ctx context.Context, identity *models.Identity) (*LoginResult, error) {
	user, err := s.ResolveUser(ctx, identity)
	if err != nil {
		return nil, err
	}
	session, err := s.createSession(ctx, user, device.ParseUserAgent(requestcontext.UserAgent(ctx)))
	if err != nil {
		return nil, err
	}
	if s.metrics != nil {
		s.metrics.IncrementLogin("success")
	}
	return &LoginResult{User: user, Session: session}, nil
}
