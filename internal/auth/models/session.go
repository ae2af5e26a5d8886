package models

import (
	"time"

	id "conductor/pkg/domain"
)

// Session binds an opaque token to a user until ExpiresAt.
type Session struct {
	ID         id.SessionID `json:"id"`
	UserID     id.UserID    `json:"user_id"`
	DeviceName string       `json:"device_name,omitempty"`
	CreatedAt  time.Time    `json:"created_at"`
	ExpiresAt  time.Time    `json:"expires_at"`
}

// IsExpired treats a session as expired from the instant ExpiresAt is
// reached, equality included.
func (s *Session) IsExpired(now time.Time) bool {
	return !now.Before(s.ExpiresAt)
}

// AuditRef identifies the session in logs and audit events without exposing
// the token.
func (s *Session) AuditRef() string {
	return s.ID.Ref()
}
