package service

import (
	"context"
	"crypto/rand"
	"encoding/base64"
	"errors"

	"conductor/internal/audit"
	"conductor/internal/auth/models"
	"conductor/internal/platform/metrics"
	id "conductor/pkg/domain"
	dErrors "conductor/pkg/domain-errors"
	"conductor/pkg/platform/sentinel"
	"conductor/pkg/requestcontext"
)

// ErrNoSession covers every way a session id can fail to resolve: empty,
// unknown, expired, or pointing at a user that no longer exists.
var ErrNoSession = dErrors.New(dErrors.CodeUnauthorized, "session expired or invalid")

func newSessionID() (id.SessionID, error) {
	b := make([]byte, sessionIDBytes)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	return id.SessionID(base64.RawURLEncoding.EncodeToString(b)), nil
}

// CreateSession opens a session for userID that expires after the configured TTL.
func (s *Service) CreateSession(ctx context.Context, userID id.UserID) (*models.Session, error) {
	if userID.IsNil() {
		return nil, dErrors.New(dErrors.CodeBadRequest, "user ID required")
	}
	user, err := s.users.FindByID(ctx, userID)
	if err != nil {
		if errors.Is(err, sentinel.ErrNotFound) {
			return nil, dErrors.New(dErrors.CodeNotFound, "user not found")
		}
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to look up user")
	}
	return s.createSession(ctx, user, "")
}

func (s *Service) createSession(ctx context.Context, user *models.User, deviceName string) (*models.Session, error) {
	sessionID, err := newSessionID()
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to generate session id")
	}
	now := requestcontext.Now(ctx)
	session := &models.Session{
		ID:         sessionID,
		UserID:     user.ID,
		DeviceName: deviceName,
		CreatedAt:  now,
		ExpiresAt:  now.Add(s.cfg.SessionTTL),
	}
	if err := s.sessions.Create(ctx, session); err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to create session")
	}

	s.emitAudit(ctx, audit.Event{
		Action:    string(audit.ActionSessionCreated),
		UserID:    user.ID,
		SessionID: session.AuditRef(),
	})
	if s.metrics != nil {
		s.metrics.IncrementSessionsCreated()
	}
	return session, nil
}

// GetUserBySessionID resolves a session to its user. Expired sessions and
// sessions whose user is gone are deleted on discovery; cleanup failures are
// logged, never surfaced.
func (s *Service) GetUserBySessionID(ctx context.Context, sessionID id.SessionID) (*models.User, error) {
	if sessionID.IsNil() {
		s.observeLookup(metrics.LookupMissing)
		return nil, ErrNoSession
	}

	session, err := s.sessions.FindByID(ctx, sessionID)
	if err != nil {
		if errors.Is(err, sentinel.ErrNotFound) {
			s.observeLookup(metrics.LookupMissing)
			return nil, ErrNoSession
		}
		s.observeLookup(metrics.LookupError)
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to load session")
	}

	if session.IsExpired(requestcontext.Now(ctx)) {
		s.observeLookup(metrics.LookupExpired)
		s.purgeSession(ctx, session, audit.ActionSessionExpired)
		return nil, ErrNoSession
	}

	user, err := s.users.FindByID(ctx, session.UserID)
	if err != nil {
		if errors.Is(err, sentinel.ErrNotFound) {
			s.observeLookup(metrics.LookupOrphaned)
			s.purgeSession(ctx, session, audit.ActionSessionRevoked)
			return nil, ErrNoSession
		}
		s.observeLookup(metrics.LookupError)
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to load session user")
	}

	s.observeLookup(metrics.LookupValid)
	return user, nil
}

// DeleteSession revokes a session. Deleting an unknown session is not an error.
func (s *Service) DeleteSession(ctx context.Context, sessionID id.SessionID) error {
	if sessionID.IsNil() {
		return nil
	}
	if err := s.sessions.Delete(ctx, sessionID); err != nil && !errors.Is(err, sentinel.ErrNotFound) {
		return dErrors.Wrap(err, dErrors.CodeInternal, "failed to delete session")
	}
	s.emitAudit(ctx, audit.Event{
		Action:    string(audit.ActionSessionRevoked),
		UserID:    requestcontext.UserID(ctx),
		SessionID: sessionID.Ref(),
		Reason:    "logout",
	})
	return nil
}

func (s *Service) purgeSession(ctx context.Context, session *models.Session, action audit.Action) {
	if err := s.sessions.Delete(ctx, session.ID); err != nil && !errors.Is(err, sentinel.ErrNotFound) {
		s.logger.WarnContext(ctx, "failed to delete stale session",
			"error", err,
			"user_id", session.UserID.String(),
			"request_id", requestcontext.RequestID(ctx),
		)
	}
	s.emitAudit(ctx, audit.Event{
		Action:    string(action),
		UserID:    session.UserID,
		SessionID: session.AuditRef(),
	})
}

func (s *Service) observeLookup(result string) {
	if s.metrics != nil {
		s.metrics.IncrementSessionLookup(result)
	}
}
