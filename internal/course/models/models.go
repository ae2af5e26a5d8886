// Package models holds the course, enrollment and lecture records.
package models

import (
	"strings"
	"time"

	authmodels "conductor/internal/auth/models"
	id "conductor/pkg/domain"
)

// JoinCodeLength is the exact length of a course join code.
const JoinCodeLength = 6

// DefaultSection is used when a course is created without one.
const DefaultSection = "1"

type Course struct {
	ID        id.CourseID
	Code      string
	Name      string
	Term      string
	Section   string
	JoinCode  string
	StartDate time.Time
	EndDate   time.Time
	CreatedAt time.Time
	UpdatedAt time.Time
	DeletedAt *time.Time
}

func (c *Course) IsDeleted() bool {
	return c.DeletedAt != nil
}

// CourseUpdate is a partial edit. Nil fields are left as is.
type CourseUpdate struct {
	Code      *string
	Name      *string
	Term      *string
	Section   *string
	JoinCode  *string
	StartDate *time.Time
	EndDate   *time.Time
}

// IsEmpty reports whether the update changes nothing.
func (u CourseUpdate) IsEmpty() bool {
	return u.Code == nil && u.Name == nil && u.Term == nil && u.Section == nil &&
		u.JoinCode == nil && u.StartDate == nil && u.EndDate == nil
}

// Apply copies the non-nil fields onto c.
func (u CourseUpdate) Apply(c *Course) {
	if u.Code != nil {
		c.Code = *u.Code
	}
	if u.Name != nil {
		c.Name = *u.Name
	}
	if u.Term != nil {
		c.Term = *u.Term
	}
	if u.Section != nil {
		c.Section = *u.Section
	}
	if u.JoinCode != nil {
		c.JoinCode = *u.JoinCode
	}
	if u.StartDate != nil {
		c.StartDate = *u.StartDate
	}
	if u.EndDate != nil {
		c.EndDate = *u.EndDate
	}
}

// Enrollment grants a user a role in one course. At most one active row
// exists per (user, course).
type Enrollment struct {
	UserID    id.UserID
	CourseID  id.CourseID
	Role      id.Role
	TeamID    *id.TeamID
	CreatedAt time.Time
	UpdatedAt time.Time
	DeletedAt *time.Time
}

// Membership is a course seen from one enrolled user.
type Membership struct {
	Course *Course
	Role   id.Role
}

type Lecture struct {
	ID          id.LectureID
	CourseID    id.CourseID
	LectureDate time.Time
	Code        *string
	CreatedAt   time.Time
	UpdatedAt   time.Time
	DeletedAt   *time.Time
}

func (l *Lecture) IsDeleted() bool {
	return l.DeletedAt != nil
}

// LectureUpdate is a partial edit. ClearCode removes the code.
type LectureUpdate struct {
	LectureDate *time.Time
	Code        *string
	ClearCode   bool
}

func (u LectureUpdate) IsEmpty() bool {
	return u.LectureDate == nil && u.Code == nil && !u.ClearCode
}

func (u LectureUpdate) Apply(l *Lecture) {
	if u.LectureDate != nil {
		l.LectureDate = *u.LectureDate
	}
	switch {
	case u.ClearCode:
		l.Code = nil
	case u.Code != nil:
		code := *u.Code
		l.Code = &code
	}
}

// NormalizeJoinCode uppercases and trims a join code for lookup.
func NormalizeJoinCode(code string) string {
	return strings.ToUpper(strings.TrimSpace(code))
}

// RosterEntry is one enrolled user as shown to course staff.
type RosterEntry struct {
	User   *authmodels.User
	Role   id.Role
	TeamID *id.TeamID
}
