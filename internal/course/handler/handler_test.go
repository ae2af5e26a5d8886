package handler

import (
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"

	authmodels "conductor/internal/auth/models"
	"conductor/internal/course/handler/mocks"
	"conductor/internal/course/models"
	"conductor/internal/course/service"
	id "conductor/pkg/domain"
	dErrors "conductor/pkg/domain-errors"
	authmw "conductor/pkg/platform/middleware/auth"
)

type CourseHandlerSuite struct {
	suite.Suite
	ctrl    *gomock.Controller
	service *mocks.MockService
	router  chi.Router
	actor   *authmodels.User
	course  *models.Course
}

func TestCourseHandlerSuite(t *testing.T) {
	suite.Run(t, new(CourseHandlerSuite))
}

func (s *CourseHandlerSuite) SetupTest() {
	s.ctrl = gomock.NewController(s.T())
	s.service = mocks.NewMockService(s.ctrl)
	s.actor = &authmodels.User{ID: id.NewUserID(), Email: "prof@ucsd.edu", GlobalRole: id.RoleProfessor}
	s.course = &models.Course{
		ID:        7,
		Code:      "CSE 210",
		Name:      "Software Engineering",
		Term:      "WI26",
		Section:   "1",
		JoinCode:  "ABC234",
		StartDate: time.Date(2026, 1, 5, 0, 0, 0, 0, time.UTC),
		EndDate:   time.Date(2026, 3, 20, 0, 0, 0, 0, time.UTC),
	}

	gate := func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			next.ServeHTTP(w, r.WithContext(authmw.WithUser(r.Context(), s.actor, "sid")))
		})
	}
	s.router = chi.NewRouter()
	New(s.service, gate, slog.New(slog.NewTextHandler(io.Discard, nil))).Register(s.router)
}

func (s *CourseHandlerSuite) TearDownTest() {
	s.ctrl.Finish()
}

func (s *CourseHandlerSuite) do(method, target, body string) *httptest.ResponseRecorder {
	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}
	rec := httptest.NewRecorder()
	s.router.ServeHTTP(rec, httptest.NewRequest(method, target, reader))
	return rec
}

func (s *CourseHandlerSuite) decode(rec *httptest.ResponseRecorder) map[string]json.RawMessage {
	var body map[string]json.RawMessage
	s.Require().NoError(json.Unmarshal(rec.Body.Bytes(), &body))
	return body
}

func (s *CourseHandlerSuite) TestListCourses() {
	s.service.EXPECT().ListCourses(gomock.Any(), s.actor).Return([]*models.Membership{
		{Course: s.course, Role: id.RoleStudent},
	}, nil)

	rec := s.do(http.MethodGet, "/api/courses", "")

	s.Equal(http.StatusOK, rec.Code)
	var courses []courseResponse
	s.Require().NoError(json.Unmarshal(s.decode(rec)["courses"], &courses))
	s.Require().Len(courses, 1)
	s.Equal("student", courses[0].Role)
	s.Equal("2026-01-05", courses[0].StartDate)
	s.Empty(courses[0].JoinCode, "students do not see the join code")
}

func (s *CourseHandlerSuite) TestCreateCourse() {
	s.Run("created with location", func() {
		s.service.EXPECT().CreateCourse(gomock.Any(), s.actor, service.CreateCourseInput{
			Code: "CSE 210", Name: "Software Engineering", Term: "WI26", StartDate: "2026-01-05", EndDate: "2026-03-20",
		}).Return(s.course, nil)

		rec := s.do(http.MethodPost, "/api/courses",
			`{"course_code":"CSE 210","course_name":"Software Engineering","term":"WI26","start_date":"2026-01-05","end_date":"2026-03-20"}`)

		s.Equal(http.StatusCreated, rec.Code)
		s.Equal("/api/courses/7", rec.Header().Get("Location"))
		var course courseResponse
		s.Require().NoError(json.Unmarshal(s.decode(rec)["course"], &course))
		s.Equal("ABC234", course.JoinCode)
	})

	s.Run("malformed body", func() {
		rec := s.do(http.MethodPost, "/api/courses", `{"course_code":`)
		s.Equal(http.StatusBadRequest, rec.Code)
	})

	s.Run("forbidden", func() {
		s.service.EXPECT().CreateCourse(gomock.Any(), s.actor, gomock.Any()).
			Return(nil, dErrors.New(dErrors.CodeForbidden, "Only professors can create courses"))

		rec := s.do(http.MethodPost, "/api/courses", `{}`)

		s.Equal(http.StatusForbidden, rec.Code)
	})
}

func (s *CourseHandlerSuite) TestCourseIDIsParsedFirst() {
	for _, target := range []string{"/api/courses/abc", "/api/courses/0/users", "/api/courses/-3/lectures"} {
		rec := s.do(http.MethodGet, target, "")
		s.Equal(http.StatusBadRequest, rec.Code, target)
	}
	rec := s.do(http.MethodGet, "/api/courses/7/lectures/x", "")
	s.Equal(http.StatusBadRequest, rec.Code)
}

func (s *CourseHandlerSuite) TestGetCourseErrors() {
	s.service.EXPECT().GetCourse(gomock.Any(), s.actor, id.CourseID(7)).
		Return(nil, dErrors.New(dErrors.CodeNotFound, "Course not found"))
	rec := s.do(http.MethodGet, "/api/courses/7", "")
	s.Equal(http.StatusNotFound, rec.Code)

	s.service.EXPECT().GetCourse(gomock.Any(), s.actor, id.CourseID(7)).Return(nil, errors.New("db down"))
	rec = s.do(http.MethodGet, "/api/courses/7", "")
	s.Equal(http.StatusInternalServerError, rec.Code)
	s.NotContains(rec.Body.String(), "db down")
}

func (s *CourseHandlerSuite) TestUpdateAndDeleteCourse() {
	s.service.EXPECT().UpdateCourse(gomock.Any(), s.actor, id.CourseID(7), gomock.Any()).
		DoAndReturn(func(_ any, _ *authmodels.User, _ id.CourseID, in service.UpdateCourseInput) (*models.Course, error) {
			s.Require().NotNil(in.Term)
			s.Equal("SP26", *in.Term)
			s.Nil(in.Name)
			return s.course, nil
		})
	rec := s.do(http.MethodPatch, "/api/courses/7", `{"term":"SP26"}`)
	s.Equal(http.StatusOK, rec.Code)

	s.service.EXPECT().DeleteCourse(gomock.Any(), s.actor, id.CourseID(7)).Return(nil)
	rec = s.do(http.MethodDelete, "/api/courses/7", "")
	s.Equal(http.StatusNoContent, rec.Code)
}

func (s *CourseHandlerSuite) TestJoinCourse() {
	s.service.EXPECT().JoinCourse(gomock.Any(), s.actor, "ABC234").
		Return(&models.Membership{Course: s.course, Role: id.RoleStudent}, nil)

	rec := s.do(http.MethodPost, "/api/courses/join", `{"join_code":"ABC234"}`)

	s.Equal(http.StatusOK, rec.Code)
	var course courseResponse
	s.Require().NoError(json.Unmarshal(s.decode(rec)["course"], &course))
	s.Equal(id.CourseID(7), course.ID)
}

func (s *CourseHandlerSuite) TestRoster() {
	team := id.TeamID(3)
	s.service.EXPECT().Roster(gomock.Any(), s.actor, id.CourseID(7)).Return([]*models.RosterEntry{
		{User: &authmodels.User{ID: id.NewUserID(), Email: "a@ucsd.edu"}, Role: id.RoleTA, TeamID: &team},
	}, nil)

	rec := s.do(http.MethodGet, "/api/courses/7/users", "")

	s.Equal(http.StatusOK, rec.Code)
	var users []rosterEntryResponse
	s.Require().NoError(json.Unmarshal(s.decode(rec)["users"], &users))
	s.Require().Len(users, 1)
	s.Equal("ta", users[0].Role)
	s.Equal(&team, users[0].TeamID)
}

func (s *CourseHandlerSuite) TestRosterMember() {
	member := &authmodels.User{ID: id.NewUserID(), Email: "s@ucsd.edu"}

	s.Run("found", func() {
		s.service.EXPECT().RosterMember(gomock.Any(), s.actor, id.CourseID(7), member.ID).
			Return(&models.RosterEntry{User: member, Role: id.RoleStudent}, nil)

		rec := s.do(http.MethodGet, "/api/courses/7/users/"+member.ID.String(), "")

		s.Equal(http.StatusOK, rec.Code)
		var entry rosterEntryResponse
		s.Require().NoError(json.Unmarshal(s.decode(rec)["user"], &entry))
		s.Equal("student", entry.Role)
		s.Nil(entry.TeamID)
	})

	s.Run("not enrolled", func() {
		s.service.EXPECT().RosterMember(gomock.Any(), s.actor, id.CourseID(7), member.ID).
			Return(nil, dErrors.New(dErrors.CodeNotFound, "User not found in course"))

		rec := s.do(http.MethodGet, "/api/courses/7/users/"+member.ID.String(), "")

		s.Equal(http.StatusNotFound, rec.Code)
		s.Contains(rec.Body.String(), "User not found in course")
	})

	s.Run("malformed user id", func() {
		rec := s.do(http.MethodGet, "/api/courses/7/users/not-a-uuid", "")

		s.Equal(http.StatusBadRequest, rec.Code)
		s.Contains(rec.Body.String(), "Invalid user_id")
	})
}

func (s *CourseHandlerSuite) TestLectures() {
	code := "W1"
	lecture := &models.Lecture{ID: 9, CourseID: 7, LectureDate: time.Date(2026, 1, 7, 0, 0, 0, 0, time.UTC), Code: &code}

	s.Run("list", func() {
		s.service.EXPECT().ListLectures(gomock.Any(), s.actor, id.CourseID(7)).Return([]*models.Lecture{lecture}, nil)
		rec := s.do(http.MethodGet, "/api/courses/7/lectures", "")
		s.Equal(http.StatusOK, rec.Code)
		var lectures []lectureResponse
		s.Require().NoError(json.Unmarshal(s.decode(rec)["lectures"], &lectures))
		s.Require().Len(lectures, 1)
		s.Equal("2026-01-07", lectures[0].LectureDate)
	})

	s.Run("create returns 201", func() {
		s.service.EXPECT().CreateLecture(gomock.Any(), s.actor, id.CourseID(7), gomock.Any()).
			DoAndReturn(func(_ any, _ *authmodels.User, _ id.CourseID, in service.LectureInput) (*models.Lecture, error) {
				s.Require().NotNil(in.LectureDate)
				s.Equal("2026-01-07", *in.LectureDate)
				s.False(in.ClearCode)
				return lecture, nil
			})
		rec := s.do(http.MethodPost, "/api/courses/7/lectures", `{"lecture_date":"2026-01-07","code":"W1"}`)
		s.Equal(http.StatusCreated, rec.Code)
	})

	s.Run("empty body reaches the service", func() {
		s.service.EXPECT().CreateLecture(gomock.Any(), s.actor, id.CourseID(7), service.LectureInput{}).
			Return(nil, dErrors.New(dErrors.CodeForbidden, "Only professors and TAs can modify lectures"))
		rec := s.do(http.MethodPost, "/api/courses/7/lectures", "")
		s.Equal(http.StatusForbidden, rec.Code)
	})

	s.Run("null code clears it", func() {
		s.service.EXPECT().UpdateLecture(gomock.Any(), s.actor, id.CourseID(7), id.LectureID(9), service.LectureInput{ClearCode: true}).
			Return(lecture, nil)
		rec := s.do(http.MethodPatch, "/api/courses/7/lectures/9", `{"code":null}`)
		s.Equal(http.StatusOK, rec.Code)
	})

	s.Run("delete", func() {
		s.service.EXPECT().DeleteLecture(gomock.Any(), s.actor, id.CourseID(7), id.LectureID(9)).Return(nil)
		rec := s.do(http.MethodDelete, "/api/courses/7/lectures/9", "")
		s.Equal(http.StatusOK, rec.Code)
		s.JSONEq(`{"message":"Lecture deleted successfully"}`, rec.Body.String())
	})

	s.Run("missing lecture", func() {
		s.service.EXPECT().GetLecture(gomock.Any(), s.actor, id.CourseID(7), id.LectureID(9)).
			Return(nil, dErrors.New(dErrors.CodeNotFound, "Lecture not found"))
		rec := s.do(http.MethodGet, "/api/courses/7/lectures/9", "")
		s.Equal(http.StatusNotFound, rec.Code)
	})
}
