package audit

import (
	"time"

	id "conductor/pkg/domain"
)

// Event is emitted from domain logic to capture key actions. Keep it
// transport-agnostic so sinks can fan out.
type Event struct {
	Action    string      `json:"action"`
	Timestamp time.Time   `json:"timestamp"`
	UserID    id.UserID   `json:"user_id"`
	SessionID string      `json:"session_id,omitempty"`
	CourseID  id.CourseID `json:"course_id,omitempty"`
	Email     string      `json:"email,omitempty"`
	Reason    string      `json:"reason,omitempty"`
	RequestID string      `json:"request_id,omitempty"`
}

type Action string

const (
	ActionUserCreated    Action = "user_created"
	ActionSessionCreated Action = "session_created"
	ActionSessionRevoked Action = "session_revoked"
	ActionSessionExpired Action = "session_expired"
	ActionAuthFailed     Action = "auth_failed"
	ActionProfileUpdated Action = "profile_updated"
	ActionCourseCreated  Action = "course_created"
	ActionCourseDeleted  Action = "course_deleted"
	ActionCourseJoined   Action = "course_joined"
)
