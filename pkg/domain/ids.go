package domain

import (
	"crypto/sha256"
	"encoding/hex"
	"strconv"
	"strings"

	"github.com/google/uuid"

	dErrors "conductor/pkg/domain-errors"
)

// UserID identifies a user. The zero value is the nil UUID.
type UserID uuid.UUID

// NewUserID returns a fresh random user ID.
func NewUserID() UserID {
	return UserID(uuid.New())
}

// ParseUserID parses a non-nil UUID string.
func ParseUserID(s string) (UserID, error) {
	u, err := parseUUID(s, "user_id")
	if err != nil {
		return UserID{}, err
	}
	return UserID(u), nil
}

func (id UserID) String() string { return uuid.UUID(id).String() }
func (id UserID) IsNil() bool    { return uuid.UUID(id) == uuid.Nil }

func (id UserID) MarshalText() ([]byte, error) {
	return []byte(id.String()), nil
}

func (id *UserID) UnmarshalText(b []byte) error {
	u, err := uuid.ParseBytes(b)
	if err != nil {
		return dErrors.Wrap(err, dErrors.CodeInvalidInput, "invalid user_id")
	}
	*id = UserID(u)
	return nil
}

const sessionRefBytes = 8

// SessionID is the opaque session token carried in the sid cookie.
type SessionID string

func (id SessionID) String() string { return string(id) }
func (id SessionID) IsNil() bool    { return id == "" }

// Ref is a short SHA-256 fingerprint of the token, safe to log. The token
// itself is a bearer credential and never leaves the session store.
func (id SessionID) Ref() string {
	if id == "" {
		return ""
	}
	sum := sha256.Sum256([]byte(id))
	return hex.EncodeToString(sum[:sessionRefBytes])
}

// CourseID and LectureID are database serial identifiers.
type (
	CourseID  int64
	LectureID int64
	TeamID    int64
)

// ParseCourseID parses a positive decimal course id from a URL segment.
func ParseCourseID(s string) (CourseID, error) {
	n, err := parsePositiveInt(s, "course_id")
	return CourseID(n), err
}

// ParseLectureID parses a positive decimal lecture id from a URL segment.
func ParseLectureID(s string) (LectureID, error) {
	n, err := parsePositiveInt(s, "lecture_id")
	return LectureID(n), err
}

func (id CourseID) String() string  { return strconv.FormatInt(int64(id), 10) }
func (id LectureID) String() string { return strconv.FormatInt(int64(id), 10) }

func parseUUID(s, field string) (uuid.UUID, error) {
	if strings.TrimSpace(s) == "" {
		return uuid.Nil, dErrors.New(dErrors.CodeInvalidInput, field+" is required")
	}
	u, err := uuid.Parse(s)
	if err != nil {
		return uuid.Nil, dErrors.Wrap(err, dErrors.CodeInvalidInput, "invalid "+field)
	}
	if u == uuid.Nil {
		return uuid.Nil, dErrors.New(dErrors.CodeInvalidInput, "invalid "+field)
	}
	return u, nil
}

func parsePositiveInt(s, field string) (int64, error) {
	n, err := strconv.ParseInt(s, 10, 64)
	if err != nil || n <= 0 {
		return 0, dErrors.New(dErrors.CodeBadRequest, "invalid "+field)
	}
	return n, nil
}
