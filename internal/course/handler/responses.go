package handler

import (
	"time"

	"conductor/internal/course/models"
	id "conductor/pkg/domain"
)

type courseResponse struct {
	ID         id.CourseID `json:"id"`
	CourseCode string      `json:"course_code"`
	CourseName string      `json:"course_name"`
	Term       string      `json:"term"`
	Section    string      `json:"section"`
	JoinCode   string      `json:"join_code,omitempty"`
	StartDate  string      `json:"start_date"`
	EndDate    string      `json:"end_date"`
	Role       string      `json:"role"`
}

// toCourseResponse shows the join code to staff only.
func toCourseResponse(c *models.Course, role id.Role) courseResponse {
	resp := courseResponse{
		ID:         c.ID,
		CourseCode: c.Code,
		CourseName: c.Name,
		Term:       c.Term,
		Section:    c.Section,
		StartDate:  c.StartDate.Format(time.DateOnly),
		EndDate:    c.EndDate.Format(time.DateOnly),
		Role:       role.String(),
	}
	if role.IsStaff() {
		resp.JoinCode = c.JoinCode
	}
	return resp
}

type lectureResponse struct {
	ID          id.LectureID `json:"id"`
	CourseID    id.CourseID  `json:"course_id"`
	LectureDate string       `json:"lecture_date"`
	Code        *string      `json:"code"`
	CreatedAt   time.Time    `json:"created_at"`
	UpdatedAt   time.Time    `json:"updated_at"`
}

func toLectureResponse(l *models.Lecture) lectureResponse {
	return lectureResponse{
		ID:          l.ID,
		CourseID:    l.CourseID,
		LectureDate: l.LectureDate.Format(time.DateOnly),
		Code:        l.Code,
		CreatedAt:   l.CreatedAt,
		UpdatedAt:   l.UpdatedAt,
	}
}

type rosterEntryResponse struct {
	UserID    string     `json:"user_id"`
	Email     string     `json:"email"`
	FirstName string     `json:"first_name"`
	LastName  string     `json:"last_name"`
	Pronouns  string     `json:"pronouns"`
	Role      string     `json:"role"`
	TeamID    *id.TeamID `json:"team_id"`
}

func toRosterEntryResponse(e *models.RosterEntry) rosterEntryResponse {
	return rosterEntryResponse{
		UserID:    e.User.ID.String(),
		Email:     e.User.Email,
		FirstName: e.User.FirstName,
		LastName:  e.User.LastName,
		Pronouns:  e.User.Pronouns,
		Role:      e.Role.String(),
		TeamID:    e.TeamID,
	}
}
