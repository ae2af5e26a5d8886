package handler

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"conductor/internal/course/service"
	id "conductor/pkg/domain"
	dErrors "conductor/pkg/domain-errors"
	"conductor/pkg/platform/httputil"
	authmw "conductor/pkg/platform/middleware/auth"
)

// nullableString tells an absent field from an explicit null.
type nullableString struct {
	Set   bool
	Value *string
}

func (n *nullableString) UnmarshalJSON(b []byte) error {
	n.Set = true
	if string(b) == "null" {
		return nil
	}
	var v string
	if err := json.Unmarshal(b, &v); err != nil {
		return err
	}
	n.Value = &v
	return nil
}

type lectureRequest struct {
	LectureDate *string        `json:"lecture_date"`
	Code        nullableString `json:"code"`
}

func (req lectureRequest) input() service.LectureInput {
	return service.LectureInput{
		LectureDate: req.LectureDate,
		Code:        req.Code.Value,
		ClearCode:   req.Code.Set && req.Code.Value == nil,
	}
}

func lectureParams(w http.ResponseWriter, r *http.Request) (id.CourseID, id.LectureID, bool) {
	courseID, errCourse := id.ParseCourseID(chi.URLParam(r, "course_id"))
	lectureID, errLecture := id.ParseLectureID(chi.URLParam(r, "lecture_id"))
	if errCourse != nil || errLecture != nil {
		httputil.WriteError(w, dErrors.New(dErrors.CodeBadRequest, "Invalid course_id or lecture_id"))
		return 0, 0, false
	}
	return courseID, lectureID, true
}

func (h *Handler) handleListLectures(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	courseID, ok := courseParam(w, r)
	if !ok {
		return
	}
	lectures, err := h.service.ListLectures(ctx, authmw.UserFrom(ctx), courseID)
	if err != nil {
		h.writeError(ctx, w, "failed to list lectures", err)
		return
	}
	out := make([]lectureResponse, 0, len(lectures))
	for _, l := range lectures {
		out = append(out, toLectureResponse(l))
	}
	httputil.WriteJSON(w, http.StatusOK, map[string]any{"lectures": out})
}

func (h *Handler) handleGetLecture(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	courseID, lectureID, ok := lectureParams(w, r)
	if !ok {
		return
	}
	lecture, err := h.service.GetLecture(ctx, authmw.UserFrom(ctx), courseID, lectureID)
	if err != nil {
		h.writeError(ctx, w, "failed to load lecture", err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, map[string]any{"lecture": toLectureResponse(lecture)})
}

func (h *Handler) handleCreateLecture(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	courseID, ok := courseParam(w, r)
	if !ok {
		return
	}
	var req lectureRequest
	if !httputil.DecodeJSON(w, r, &req) {
		return
	}
	lecture, err := h.service.CreateLecture(ctx, authmw.UserFrom(ctx), courseID, req.input())
	if err != nil {
		h.writeError(ctx, w, "failed to create lecture", err)
		return
	}
	httputil.WriteJSON(w, http.StatusCreated, map[string]any{"lecture": toLectureResponse(lecture)})
}

func (h *Handler) handleUpdateLecture(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	courseID, lectureID, ok := lectureParams(w, r)
	if !ok {
		return
	}
	var req lectureRequest
	if !httputil.DecodeJSON(w, r, &req) {
		return
	}
	lecture, err := h.service.UpdateLecture(ctx, authmw.UserFrom(ctx), courseID, lectureID, req.input())
	if err != nil {
		h.writeError(ctx, w, "failed to update lecture", err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, map[string]any{"lecture": toLectureResponse(lecture)})
}

func (h *Handler) handleDeleteLecture(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	courseID, lectureID, ok := lectureParams(w, r)
	if !ok {
		return
	}
	if err := h.service.DeleteLecture(ctx, authmw.UserFrom(ctx), courseID, lectureID); err != nil {
		h.writeError(ctx, w, "failed to delete lecture", err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, map[string]string{"message": "Lecture deleted successfully"})
}
