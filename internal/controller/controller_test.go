package controller

import (
	"bytes"
	"context"
	"edu_testing_backend/internal/config"
	"edu_testing_backend/internal/middleware"
	"edu_testing_backend/internal/model"
	"edu_testing_backend/internal/service"
	"edu_testing_backend/internal/service/servicetest"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strconv"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type env struct {
	router *gin.Engine
	db     *servicetest.DB
	course *service.CourseService
}

func newEnv(t *testing.T) *env {
	t.Helper()
	gin.SetMode(gin.TestMode)

	cfg := &config.Config{JWT: config.JWTConfig{Secret: "controller-test-secret", ExpireTime: time.Hour}}
	db := servicetest.NewDB()
	cache := servicetest.NewCache()

	authSvc := service.NewAuthService(db.Users(), cfg)
	courseSvc := service.NewCourseService(db.Courses(), db.Users())
	statsSvc := service.NewStatisticsService(db.Tests(), db.Attempts(), cache, db, true)
	testSvc := service.NewTestService(db.Tests(), db.Attempts(), courseSvc, cache, db)
	attemptSvc := service.NewAttemptService(db.Tests(), db.Attempts(), courseSvc, courseSvc, statsSvc, cache, db, 3)
	exportSvc := service.NewExportService(attemptSvc, nil)

	auth := NewAuthController(authSvc)
	course := NewCourseController(courseSvc)
	test := NewTestController(testSvc, statsSvc, exportSvc)
	attempt := NewAttemptController(attemptSvc)

	r := gin.New()
	r.POST("/api/register", auth.Register)
	r.POST("/api/login", auth.Login)

	api := r.Group("/api", middleware.AuthMiddleware(cfg))
	api.GET("/profile", auth.GetProfile)
	api.GET("/courses/:id/tests", test.ListCourseTests)
	api.POST("/tests/:id/attempts", middleware.RoleMiddleware(model.Student), attempt.StartAttempt)
	api.GET("/tests/:id/attempts", attempt.GetAttempts)
	api.GET("/attempts/:id", attempt.GetAttempt)
	api.POST("/attempts/:id/answers", attempt.SubmitAnswer)
	api.POST("/attempts/:id/finish", attempt.FinishAttempt)
	api.POST("/attempts/:id/abandon", attempt.AbandonAttempt)

	teacher := api.Group("", middleware.RoleMiddleware(model.Teacher))
	teacher.POST("/courses", course.CreateCourse)
	teacher.POST("/courses/:id/enrollments", course.Enroll)
	teacher.POST("/tests", test.CreateTest)
	teacher.GET("/tests/:id", test.GetTest)
	teacher.POST("/tests/:id/publish", test.PublishTest)
	teacher.GET("/tests/:id/statistics", test.GetStatistics)
	teacher.POST("/tests/:id/export", test.ExportAttempts)

	return &env{router: r, db: db, course: courseSvc}
}

type envelope[T any] struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
	Data    T      `json:"data"`
}

func (e *env) call(t *testing.T, method, path, token string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	e.router.ServeHTTP(w, req)
	return w
}

func decode[T any](t *testing.T, w *httptest.ResponseRecorder) T {
	t.Helper()
	var resp envelope[T]
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp), w.Body.String())
	return resp.Data
}

// signup 注册并登录，返回 token 与用户 ID
func (e *env) signup(t *testing.T, email string, role model.UserRole) (string, uint) {
	t.Helper()
	w := e.call(t, http.MethodPost, "/api/register", "", service.RegisterReq{
		Name: email, Email: email, Password: "secret1", Role: role,
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	w = e.call(t, http.MethodPost, "/api/login", "", LoginRequest{Email: email, Password: "secret1"})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	res := decode[service.LoginResult](t, w)
	return res.Token, res.User.ID
}

func TestAttemptFlowOverHTTP(t *testing.T) {
	e := newEnv(t)
	teacherToken, _ := e.signup(t, "teacher@example.com", model.Teacher)
	studentToken, studentID := e.signup(t, "student@example.com", model.Student)
	otherToken, otherID := e.signup(t, "other@example.com", model.Student)

	w := e.call(t, http.MethodPost, "/api/courses", teacherToken, service.CreateCourseReq{Title: "Geography"})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	course := decode[model.Course](t, w)

	for _, id := range []uint{studentID, otherID} {
		w = e.call(t, http.MethodPost, "/api/courses/"+itoa(course.ID)+"/enrollments", teacherToken, EnrollRequest{StudentID: id})
		require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	}

	w = e.call(t, http.MethodPost, "/api/tests", teacherToken, service.CreateTestReq{
		CourseID: course.ID,
		Title:    "Capitals",
		Questions: []service.QuestionReq{{
			Type:    model.MultipleChoice,
			Text:    "Capital of France?",
			Options: []model.QuestionOption{{Text: "Paris", IsCorrect: true}, {Text: "London"}},
			Points:  2,
		}},
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	test := decode[model.Test](t, w)

	// 未发布
	w = e.call(t, http.MethodPost, "/api/tests/"+test.ID+"/attempts", studentToken, nil)
	assert.Equal(t, http.StatusConflict, w.Code)

	w = e.call(t, http.MethodPost, "/api/tests/"+test.ID+"/publish", teacherToken, nil)
	require.Equal(t, http.StatusOK, w.Code)

	// 教师不能开始答题
	w = e.call(t, http.MethodPost, "/api/tests/"+test.ID+"/attempts", teacherToken, nil)
	assert.Equal(t, http.StatusForbidden, w.Code)

	w = e.call(t, http.MethodPost, "/api/tests/"+test.ID+"/attempts", studentToken, nil)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	assert.NotContains(t, w.Body.String(), "isCorrect")
	started := decode[service.StartResult](t, w)
	require.Len(t, started.Test.Questions, 1)
	attemptID := started.Attempt.ID
	questionID := started.Test.Questions[0].ID

	w = e.call(t, http.MethodPost, "/api/tests/"+test.ID+"/attempts", studentToken, nil)
	assert.Equal(t, http.StatusConflict, w.Code)

	w = e.call(t, http.MethodPost, "/api/attempts/"+attemptID+"/answers", otherToken, service.SubmitAnswerReq{QuestionID: questionID, Answer: "Paris"})
	assert.Equal(t, http.StatusForbidden, w.Code)

	w = e.call(t, http.MethodPost, "/api/attempts/"+attemptID+"/answers", studentToken, map[string]any{"answer": "Paris"})
	assert.Equal(t, http.StatusBadRequest, w.Code, "questionId is required")

	w = e.call(t, http.MethodPost, "/api/attempts/"+attemptID+"/answers", studentToken, service.SubmitAnswerReq{QuestionID: "nope", Answer: "Paris"})
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = e.call(t, http.MethodPost, "/api/attempts/"+attemptID+"/answers", studentToken, service.SubmitAnswerReq{QuestionID: questionID, Answer: "Paris"})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	answer := decode[service.AnswerResult](t, w)
	assert.True(t, answer.IsCorrect)
	assert.Equal(t, 100, answer.Score)

	w = e.call(t, http.MethodPost, "/api/attempts/"+attemptID+"/finish", studentToken, nil)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	summary := decode[service.AttemptSummary](t, w)
	assert.Equal(t, model.AttemptCompleted, summary.Status)
	assert.True(t, summary.IsPassed)

	w = e.call(t, http.MethodPost, "/api/attempts/"+attemptID+"/answers", studentToken, service.SubmitAnswerReq{QuestionID: questionID, Answer: "London"})
	assert.Equal(t, http.StatusConflict, w.Code)

	w = e.call(t, http.MethodGet, "/api/attempts/"+attemptID, studentToken, nil)
	require.Equal(t, http.StatusOK, w.Code)
	detail := decode[service.AttemptDetail](t, w)
	require.Len(t, detail.Review, 1)
	require.NotNil(t, detail.Review[0].IsCorrect)
	assert.True(t, *detail.Review[0].IsCorrect)

	w = e.call(t, http.MethodGet, "/api/tests/"+test.ID+"/statistics", teacherToken, nil)
	require.Equal(t, http.StatusOK, w.Code)
	report := decode[service.StatisticsReport](t, w)
	assert.Equal(t, 1, report.Stored.TotalAttempts)
	assert.Equal(t, 100, report.Stored.PassRate)
	assert.Equal(t, 1, report.Passed)

	w = e.call(t, http.MethodGet, "/api/tests/"+test.ID+"/attempts", otherToken, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Empty(t, decode[[]service.AttemptSummary](t, w))

	// 未配置存储
	w = e.call(t, http.MethodPost, "/api/tests/"+test.ID+"/export", teacherToken, nil)
	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
}

func TestCreateTestValidationOverHTTP(t *testing.T) {
	e := newEnv(t)
	teacherToken, teacherID := e.signup(t, "teacher@example.com", model.Teacher)
	course, err := e.course.CreateCourse(context.Background(), teacherID, model.Teacher, service.CreateCourseReq{Title: "Geo"})
	require.NoError(t, err)

	w := e.call(t, http.MethodPost, "/api/tests", teacherToken, service.CreateTestReq{CourseID: course.ID})
	require.Equal(t, http.StatusBadRequest, w.Code)

	var resp struct {
		Data struct {
			Violations []struct {
				Field string `json:"field"`
			} `json:"violations"`
		} `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	fields := []string{}
	for _, v := range resp.Data.Violations {
		fields = append(fields, v.Field)
	}
	assert.ElementsMatch(t, []string{"title", "questions"}, fields)
}

func TestLoginOverHTTP(t *testing.T) {
	e := newEnv(t)
	token, id := e.signup(t, "ada@example.com", model.Student)

	w := e.call(t, http.MethodGet, "/api/profile", token, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, id, decode[model.User](t, w).ID)

	w = e.call(t, http.MethodPost, "/api/login", "", LoginRequest{Email: "ada@example.com", Password: "wrong-pass"})
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w = e.call(t, http.MethodPost, "/api/register", "", service.RegisterReq{Name: "Ada", Email: "ada@example.com", Password: "secret1"})
	assert.Equal(t, http.StatusConflict, w.Code)
}

func itoa(id uint) string {
	return strconv.FormatUint(uint64(id), 10)
}
