package domain

import (
	"database/sql/driver"
	"fmt"
	"strings"
)

// Role is a user's standing either globally or within one course.
// The zero value RoleNone means "no enrollment".
type Role uint8

const (
	RoleNone Role = iota
	RoleStudent
	RoleTA
	RoleProfessor
)

// ParseRole accepts the stored lowercase names. Anything else is rejected.
func ParseRole(s string) (Role, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "student":
		return RoleStudent, nil
	case "ta":
		return RoleTA, nil
	case "professor":
		return RoleProfessor, nil
	case "", "none":
		return RoleNone, nil
	}
	return RoleNone, fmt.Errorf("unknown role %q", s)
}

func (r Role) String() string {
	switch r {
	case RoleNone:
		return "none"
	case RoleStudent:
		return "student"
	case RoleTA:
		return "ta"
	case RoleProfessor:
		return "professor"
	}
	return fmt.Sprintf("Role(%d)", uint8(r))
}

// IsEnrolled reports whether the role grants any course access.
func (r Role) IsEnrolled() bool {
	switch r {
	case RoleStudent, RoleTA, RoleProfessor:
		return true
	case RoleNone:
		return false
	}
	return false
}

// IsStaff reports whether the role may mutate course content.
func (r Role) IsStaff() bool {
	switch r {
	case RoleTA, RoleProfessor:
		return true
	case RoleNone, RoleStudent:
		return false
	}
	return false
}

func (r Role) MarshalText() ([]byte, error) {
	return []byte(r.String()), nil
}

func (r *Role) UnmarshalText(b []byte) error {
	parsed, err := ParseRole(string(b))
	if err != nil {
		return err
	}
	*r = parsed
	return nil
}

// Value stores the role as its lowercase name.
func (r Role) Value() (driver.Value, error) {
	if r == RoleNone {
		return nil, nil
	}
	return r.String(), nil
}

// Scan reads a role column; NULL scans to RoleNone.
func (r *Role) Scan(src any) error {
	switch v := src.(type) {
	case nil:
		*r = RoleNone
		return nil
	case string:
		return r.UnmarshalText([]byte(v))
	case []byte:
		return r.UnmarshalText(v)
	}
	return fmt.Errorf("cannot scan %T into Role", src)
}
