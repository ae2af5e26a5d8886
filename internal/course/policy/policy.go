// Package policy decides what a user may do inside a course. Every decision
// derives from the caller's active enrollment role; no enrollment means no
// access.
package policy

import (
	"context"
	"fmt"

	id "conductor/pkg/domain"
)

type EnrollmentReader interface {
	Role(ctx context.Context, userID id.UserID, courseID id.CourseID) (id.Role, error)
}

// Action names a course operation gated by role.
type Action int

const (
	ActionViewLectures Action = iota
	ActionModifyLectures
	ActionViewRoster
	ActionManageCourse
)

// Allows is the role table. Unknown roles are denied.
func Allows(role id.Role, action Action) bool {
	switch action {
	case ActionViewLectures:
		return role.IsEnrolled()
	case ActionModifyLectures, ActionViewRoster:
		return role.IsStaff()
	case ActionManageCourse:
		return role == id.RoleProfessor
	}
	return false
}

type Policy struct {
	enrollments EnrollmentReader
}

func New(enrollments EnrollmentReader) *Policy {
	return &Policy{enrollments: enrollments}
}

// UserCourseRole returns the user's role in the course, RoleNone when not
// enrolled.
func (p *Policy) UserCourseRole(ctx context.Context, userID id.UserID, courseID id.CourseID) (id.Role, error) {
	role, err := p.enrollments.Role(ctx, userID, courseID)
	if err != nil {
		return id.RoleNone, fmt.Errorf("resolve course role: %w", err)
	}
	return role, nil
}

// Check resolves the user's role in the course and whether it admits action.
// A lookup failure is reported as an error and never as permission.
func (p *Policy) Check(ctx context.Context, userID id.UserID, courseID id.CourseID, action Action) (id.Role, bool, error) {
	role, err := p.UserCourseRole(ctx, userID, courseID)
	if err != nil {
		return id.RoleNone, false, err
	}
	return role, Allows(role, action), nil
}

func (p *Policy) CanViewLectures(ctx context.Context, userID id.UserID, courseID id.CourseID) (id.Role, bool, error) {
	return p.Check(ctx, userID, courseID, ActionViewLectures)
}

// CanModifyLectures admits professors and TAs.
func (p *Policy) CanModifyLectures(ctx context.Context, userID id.UserID, courseID id.CourseID) (id.Role, bool, error) {
	return p.Check(ctx, userID, courseID, ActionModifyLectures)
}

func (p *Policy) CanViewRoster(ctx context.Context, userID id.UserID, courseID id.CourseID) (id.Role, bool, error) {
	return p.Check(ctx, userID, courseID, ActionViewRoster)
}

// CanManageCourse admits only the course's professors.
func (p *Policy) CanManageCourse(ctx context.Context, userID id.UserID, courseID id.CourseID) (id.Role, bool, error) {
	return p.Check(ctx, userID, courseID, ActionManageCourse)
}
