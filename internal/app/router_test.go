package app

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"learnhub_backend/internal/config"
	"learnhub_backend/internal/controller"
	"learnhub_backend/internal/model"
	"learnhub_backend/internal/repository"
	"learnhub_backend/internal/service"
	"learnhub_backend/internal/util"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// 内存桩，只为走通路由到服务的链路

type stubCourseStore struct {
	course *model.Course
}

func (s *stubCourseStore) FindByID(id uint) (*model.Course, error) {
	if s.course != nil && s.course.ID == id {
		copied := *s.course
		return &copied, nil
	}
	return nil, util.ErrCourseNotFound
}

func (s *stubCourseStore) FindByIDDetailed(id uint) (*model.Course, error) {
	return s.FindByID(id)
}

func (s *stubCourseStore) FindAll() ([]model.Course, error) {
	if s.course == nil {
		return nil, nil
	}
	return []model.Course{*s.course}, nil
}

func (s *stubCourseStore) Create(*model.Course) error        { return nil }
func (s *stubCourseStore) Update(*model.Course) error        { return nil }
func (s *stubCourseStore) Delete(uint) error                 { return nil }
func (s *stubCourseStore) AddTopic(uint, *model.Topic) error { return nil }
func (s *stubCourseStore) UpdateTopic(*model.Topic) error    { return nil }
func (s *stubCourseStore) AddEnrollment(uint, uint) error    { return nil }

type stubExerciseStore struct {
	exercise *model.Exercise
}

func (s *stubExerciseStore) FindByID(id uint) (*model.Exercise, error) {
	if s.exercise != nil && s.exercise.ID == id {
		copied := *s.exercise
		return &copied, nil
	}
	return nil, util.ErrExerciseNotFound
}

func (s *stubExerciseStore) FindByCourse(courseID uint) ([]model.Exercise, error) {
	if s.exercise != nil && s.exercise.CourseID == courseID {
		return []model.Exercise{*s.exercise}, nil
	}
	return nil, nil
}

func (s *stubExerciseStore) Create(*model.Exercise) error { return nil }
func (s *stubExerciseStore) Update(*model.Exercise) error { return nil }
func (s *stubExerciseStore) Delete(uint) error            { return nil }

type stubProgressStore struct {
	progress *model.Progress
}

func (s *stubProgressStore) FindByStudentAndCourse(studentID, courseID uint) (*model.Progress, error) {
	if s.progress != nil && s.progress.StudentID == studentID && s.progress.CourseID == courseID {
		copied := *s.progress
		return &copied, nil
	}
	return nil, util.ErrProgressNotFound
}

func (s *stubProgressStore) FindByStudent(uint) ([]model.Progress, error) { return nil, nil }
func (s *stubProgressStore) FindByCourse(uint) ([]model.Progress, error)  { return nil, nil }
func (s *stubProgressStore) Save(*model.Progress) error                   { return nil }

type noopActivity struct{}

func (noopActivity) UpdateLastSeen(uint) error { return nil }

func newRouterFixture(t *testing.T) (*gin.Engine, *config.Config) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	cfg := &config.Config{}
	cfg.JWT.Secret = "router-test-secret"
	cfg.JWT.ExpireTime = time.Hour

	courses := &stubCourseStore{course: &model.Course{
		BaseModel:    model.BaseModel{ID: 1},
		Title:        "Go 入门",
		InstructorID: 10,
		EnrolledStudents: []model.User{
			{BaseModel: model.BaseModel{ID: 20}},
		},
	}}
	exercises := &stubExerciseStore{exercise: &model.Exercise{
		BaseModel:     model.BaseModel{ID: 1},
		Title:         "判断题",
		Question:      "Go 有泛型吗",
		Type:          model.TrueFalse,
		CorrectAnswer: "true",
		Points:        1,
		CourseID:      1,
	}}
	progressStore := &stubProgressStore{progress: &model.Progress{
		BaseModel: model.BaseModel{ID: 1},
		StudentID: 20,
		CourseID:  1,
		Status:    model.StatusInProgress,
	}}

	catalog := service.NewCatalogService(courses, nil, nil, 0)
	exerciseSvc := service.NewExerciseService(exercises, courses)
	progressSvc := service.NewProgressService(progressStore, courses, exercises)
	authSvc := service.NewAuthService(repository.NewUserRepository(nil), cfg)

	a := &App{Config: cfg}
	router := gin.New()
	a.registerRoutes(router, &controllers{
		auth:     controller.NewAuthController(authSvc),
		course:   controller.NewCourseController(catalog),
		exercise: controller.NewExerciseController(exerciseSvc, progressSvc),
		progress: controller.NewProgressController(progressSvc),
		health:   controller.NewHealthController(nil),
	}, noopActivity{}, cfg)

	return router, cfg
}

func tokenFor(t *testing.T, cfg *config.Config, id uint, role model.UserRole) string {
	t.Helper()
	token, err := util.GenerateJWT(&model.User{
		BaseModel: model.BaseModel{ID: id},
		Role:      role,
	}, cfg.JWT.Secret, time.Hour)
	require.NoError(t, err)
	return token
}

func doRequest(t *testing.T, router *gin.Engine, method, path, token, body string) *httptest.ResponseRecorder {
	t.Helper()
	var reader *strings.Reader
	if body != "" {
		reader = strings.NewReader(body)
	} else {
		reader = strings.NewReader("")
	}
	req := httptest.NewRequest(method, path, reader)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func TestListExercisesByCourseRoute(t *testing.T) {
	router, cfg := newRouterFixture(t)
	token := tokenFor(t, cfg, 20, model.Student)

	w := doRequest(t, router, http.MethodGet, "/api/courses/1/exercises", token, "")
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var resp util.Response
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, http.StatusOK, resp.Code)
	assert.Contains(t, w.Body.String(), "判断题")
}

func TestListExercisesRejectsMalformedCourseID(t *testing.T) {
	router, cfg := newRouterFixture(t)
	token := tokenFor(t, cfg, 20, model.Student)

	w := doRequest(t, router, http.MethodGet, "/api/courses/abc/exercises", token, "")
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestAuthorizedRoutesRejectMissingToken(t *testing.T) {
	router, _ := newRouterFixture(t)

	w := doRequest(t, router, http.MethodGet, "/api/courses/1/exercises", "", "")
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestSubmitExerciseRoute(t *testing.T) {
	router, cfg := newRouterFixture(t)
	token := tokenFor(t, cfg, 20, model.Student)

	w := doRequest(t, router, http.MethodPost, "/api/exercises/1/submit", token, `{"answers":["true"]}`)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.Contains(t, w.Body.String(), `"score":1`)
}

func TestMyCourseProgressRoute(t *testing.T) {
	router, cfg := newRouterFixture(t)
	token := tokenFor(t, cfg, 20, model.Student)

	w := doRequest(t, router, http.MethodGet, "/api/progress/courses/1", token, "")
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.Contains(t, w.Body.String(), `"courseId":1`)
}

func TestInstructorRoutesRequireRole(t *testing.T) {
	router, cfg := newRouterFixture(t)
	body := `{"title":"新课程"}`

	w := doRequest(t, router, http.MethodPost, "/api/courses", tokenFor(t, cfg, 20, model.Student), body)
	assert.Equal(t, http.StatusForbidden, w.Code)

	w = doRequest(t, router, http.MethodPost, "/api/courses", tokenFor(t, cfg, 10, model.Instructor), body)
	assert.Equal(t, http.StatusCreated, w.Code, w.Body.String())
}

func TestPublicCourseRoutes(t *testing.T) {
	router, _ := newRouterFixture(t)

	w := doRequest(t, router, http.MethodGet, "/api/courses", "", "")
	assert.Equal(t, http.StatusOK, w.Code)

	w = doRequest(t, router, http.MethodGet, "/api/courses/1", "", "")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "Go 入门")
}
