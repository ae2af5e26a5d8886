package service

import (
	"conductor/internal/auth/models"
	id "conductor/pkg/domain"
)

// CanViewUserProfile allows users to view themselves, and professors to view anyone.
func CanViewUserProfile(actor *models.User, targetID id.UserID) bool {
	if actor == nil {
		return false
	}
	if actor.ID == targetID {
		return true
	}
	return actor.GlobalRole == id.RoleProfessor
}

// CanEditUserProfile allows self-edits only.
func CanEditUserProfile(actor *models.User, targetID id.UserID) bool {
	return actor != nil && actor.ID == targetID
}
