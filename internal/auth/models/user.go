package models

import (
	"strings"
	"time"

	id "conductor/pkg/domain"
)

// User is the durable account created on first login. Rows are never
// physically removed; DeletedAt marks a soft delete.
type User struct {
	ID                id.UserID
	Email             string
	FirstName         string
	LastName          string
	Pronouns          string
	GlobalRole        id.Role
	IsProfileComplete bool
	LastLogin         *time.Time
	CreatedAt         time.Time
	UpdatedAt         time.Time
	DeletedAt         *time.Time
}

// IsDeleted reports whether the user has been soft-deleted.
func (u *User) IsDeleted() bool {
	return u.DeletedAt != nil
}

// ProfileComplete is the rule behind is_profile_complete.
func ProfileComplete(firstName, lastName string) bool {
	return strings.TrimSpace(firstName) != "" && strings.TrimSpace(lastName) != ""
}

// NormalizeEmail lowercases and trims an address so it can be used as the
// unique key.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// UpsertUser is the input to the atomic insert-or-update performed on login.
type UpsertUser struct {
	Email     string
	FirstName string
	LastName  string
	LastLogin time.Time
}

// ProfileUpdate carries a partial profile edit. Nil fields are left as is.
type ProfileUpdate struct {
	FirstName *string
	LastName  *string
	Pronouns  *string
}

// Profile is the normalized JSON shape returned by /me and /me/profile.
type Profile struct {
	ID                string `json:"id"`
	Email             string `json:"email"`
	FirstName         string `json:"first_name"`
	LastName          string `json:"last_name"`
	Pronouns          string `json:"pronouns"`
	GlobalRole        string `json:"global_role"`
	IsProfileComplete bool   `json:"is_profile_complete"`
}

// ToProfile builds the response shape.
func (u *User) ToProfile() Profile {
	return Profile{
		ID:                u.ID.String(),
		Email:             u.Email,
		FirstName:         u.FirstName,
		LastName:          u.LastName,
		Pronouns:          u.Pronouns,
		GlobalRole:        u.GlobalRole.String(),
		IsProfileComplete: u.IsProfileComplete,
	}
}
