// Package handler serves the course, enrollment and lecture routes. Every
// route sits behind the session gate.
package handler

//go:generate mockgen -source=handler.go -destination=mocks/mocks.go -package=mocks Service

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	authmodels "conductor/internal/auth/models"
	"conductor/internal/course/models"
	"conductor/internal/course/service"
	id "conductor/pkg/domain"
	dErrors "conductor/pkg/domain-errors"
	"conductor/pkg/platform/httputil"
	authmw "conductor/pkg/platform/middleware/auth"
	"conductor/pkg/requestcontext"
)

type Service interface {
	ListCourses(ctx context.Context, actor *authmodels.User) ([]*models.Membership, error)
	CreateCourse(ctx context.Context, actor *authmodels.User, in service.CreateCourseInput) (*models.Course, error)
	GetCourse(ctx context.Context, actor *authmodels.User, courseID id.CourseID) (*models.Membership, error)
	UpdateCourse(ctx context.Context, actor *authmodels.User, courseID id.CourseID, in service.UpdateCourseInput) (*models.Course, error)
	DeleteCourse(ctx context.Context, actor *authmodels.User, courseID id.CourseID) error
	JoinCourse(ctx context.Context, actor *authmodels.User, joinCode string) (*models.Membership, error)
	Roster(ctx context.Context, actor *authmodels.User, courseID id.CourseID) ([]*models.RosterEntry, error)
	RosterMember(ctx context.Context, actor *authmodels.User, courseID id.CourseID, userID id.UserID) (*models.RosterEntry, error)
	ListLectures(ctx context.Context, actor *authmodels.User, courseID id.CourseID) ([]*models.Lecture, error)
	GetLecture(ctx context.Context, actor *authmodels.User, courseID id.CourseID, lectureID id.LectureID) (*models.Lecture, error)
	CreateLecture(ctx context.Context, actor *authmodels.User, courseID id.CourseID, in service.LectureInput) (*models.Lecture, error)
	UpdateLecture(ctx context.Context, actor *authmodels.User, courseID id.CourseID, lectureID id.LectureID, in service.LectureInput) (*models.Lecture, error)
	DeleteLecture(ctx context.Context, actor *authmodels.User, courseID id.CourseID, lectureID id.LectureID) error
}

type Handler struct {
	service     Service
	requireAuth func(http.Handler) http.Handler
	logger      *slog.Logger
}

func New(svc Service, requireAuth func(http.Handler) http.Handler, logger *slog.Logger) *Handler {
	return &Handler{service: svc, requireAuth: requireAuth, logger: logger}
}

func (h *Handler) Register(r chi.Router) {
	r.Route("/api/courses", func(r chi.Router) {
		r.Use(h.requireAuth)
		r.Get("/", h.handleListCourses)
		r.Post("/", h.handleCreateCourse)
		r.Post("/join", h.handleJoinCourse)
		r.Route("/{course_id}", func(r chi.Router) {
			r.Get("/", h.handleGetCourse)
			r.Patch("/", h.handleUpdateCourse)
			r.Delete("/", h.handleDeleteCourse)
			r.Get("/users", h.handleRoster)
			r.Get("/users/{user_id}", h.handleRosterMember)
			r.Get("/lectures", h.handleListLectures)
			r.Post("/lectures", h.handleCreateLecture)
			r.Get("/lectures/{lecture_id}", h.handleGetLecture)
			r.Patch("/lectures/{lecture_id}", h.handleUpdateLecture)
			r.Delete("/lectures/{lecture_id}", h.handleDeleteLecture)
		})
	})
}

func (h *Handler) handleListCourses(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	memberships, err := h.service.ListCourses(ctx, authmw.UserFrom(ctx))
	if err != nil {
		h.writeError(ctx, w, "failed to list courses", err)
		return
	}
	out := make([]courseResponse, 0, len(memberships))
	for _, m := range memberships {
		out = append(out, toCourseResponse(m.Course, m.Role))
	}
	httputil.WriteJSON(w, http.StatusOK, map[string]any{"courses": out})
}

type createCourseRequest struct {
	CourseCode string `json:"course_code"`
	CourseName string `json:"course_name"`
	Term       string `json:"term"`
	Section    string `json:"section"`
	JoinCode   string `json:"join_code"`
	StartDate  string `json:"start_date"`
	EndDate    string `json:"end_date"`
}

func (h *Handler) handleCreateCourse(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	var req createCourseRequest
	if !httputil.DecodeJSON(w, r, &req) {
		return
	}
	course, err := h.service.CreateCourse(ctx, authmw.UserFrom(ctx), service.CreateCourseInput{
		Code:      req.CourseCode,
		Name:      req.CourseName,
		Term:      req.Term,
		Section:   req.Section,
		JoinCode:  req.JoinCode,
		StartDate: req.StartDate,
		EndDate:   req.EndDate,
	})
	if err != nil {
		h.writeError(ctx, w, "failed to create course", err)
		return
	}
	w.Header().Set("Location", "/api/courses/"+course.ID.String())
	httputil.WriteJSON(w, http.StatusCreated, map[string]any{"course": toCourseResponse(course, id.RoleProfessor)})
}

func (h *Handler) handleGetCourse(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	courseID, ok := courseParam(w, r)
	if !ok {
		return
	}
	m, err := h.service.GetCourse(ctx, authmw.UserFrom(ctx), courseID)
	if err != nil {
		h.writeError(ctx, w, "failed to load course", err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, map[string]any{"course": toCourseResponse(m.Course, m.Role)})
}

type updateCourseRequest struct {
	CourseCode *string `json:"course_code"`
	CourseName *string `json:"course_name"`
	Term       *string `json:"term"`
	Section    *string `json:"section"`
	JoinCode   *string `json:"join_code"`
	StartDate  *string `json:"start_date"`
	EndDate    *string `json:"end_date"`
}

func (h *Handler) handleUpdateCourse(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	courseID, ok := courseParam(w, r)
	if !ok {
		return
	}
	var req updateCourseRequest
	if !httputil.DecodeJSON(w, r, &req) {
		return
	}
	course, err := h.service.UpdateCourse(ctx, authmw.UserFrom(ctx), courseID, service.UpdateCourseInput{
		Code:      req.CourseCode,
		Name:      req.CourseName,
		Term:      req.Term,
		Section:   req.Section,
		JoinCode:  req.JoinCode,
		StartDate: req.StartDate,
		EndDate:   req.EndDate,
	})
	if err != nil {
		h.writeError(ctx, w, "failed to update course", err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, map[string]any{"course": toCourseResponse(course, id.RoleProfessor)})
}

func (h *Handler) handleDeleteCourse(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	courseID, ok := courseParam(w, r)
	if !ok {
		return
	}
	if err := h.service.DeleteCourse(ctx, authmw.UserFrom(ctx), courseID); err != nil {
		h.writeError(ctx, w, "failed to delete course", err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

type joinCourseRequest struct {
	JoinCode string `json:"join_code"`
}

func (h *Handler) handleJoinCourse(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	var req joinCourseRequest
	if !httputil.DecodeJSON(w, r, &req) {
		return
	}
	m, err := h.service.JoinCourse(ctx, authmw.UserFrom(ctx), req.JoinCode)
	if err != nil {
		h.writeError(ctx, w, "failed to join course", err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, map[string]any{"course": toCourseResponse(m.Course, m.Role)})
}

func (h *Handler) handleRoster(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	courseID, ok := courseParam(w, r)
	if !ok {
		return
	}
	roster, err := h.service.Roster(ctx, authmw.UserFrom(ctx), courseID)
	if err != nil {
		h.writeError(ctx, w, "failed to load roster", err)
		return
	}
	out := make([]rosterEntryResponse, 0, len(roster))
	for _, entry := range roster {
		out = append(out, toRosterEntryResponse(entry))
	}
	httputil.WriteJSON(w, http.StatusOK, map[string]any{"users": out})
}

func (h *Handler) handleRosterMember(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	courseID, ok := courseParam(w, r)
	if !ok {
		return
	}
	userID, err := id.ParseUserID(chi.URLParam(r, "user_id"))
	if err != nil {
		httputil.WriteError(w, dErrors.New(dErrors.CodeBadRequest, "Invalid user_id"))
		return
	}
	entry, err := h.service.RosterMember(ctx, authmw.UserFrom(ctx), courseID, userID)
	if err != nil {
		h.writeError(ctx, w, "failed to load roster member", err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, map[string]any{"user": toRosterEntryResponse(entry)})
}

func courseParam(w http.ResponseWriter, r *http.Request) (id.CourseID, bool) {
	courseID, err := id.ParseCourseID(chi.URLParam(r, "course_id"))
	if err != nil {
		httputil.WriteError(w, dErrors.New(dErrors.CodeBadRequest, "Invalid course_id"))
		return 0, false
	}
	return courseID, true
}

func (h *Handler) writeError(ctx context.Context, w http.ResponseWriter, msg string, err error) {
	if dErrors.CodeOf(err) == dErrors.CodeInternal {
		h.logger.ErrorContext(ctx, msg,
			"error", err,
			"request_id", requestcontext.RequestID(ctx),
		)
	}
	httputil.WriteError(w, err)
}
