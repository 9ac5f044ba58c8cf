package service

import (
	"context"
	"edu_testing_backend/internal/model"
	"edu_testing_backend/internal/service/servicetest"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

type fixture struct {
	ctx      context.Context
	db       *servicetest.DB
	cache    *servicetest.Cache
	courses  *CourseService
	stats    *StatisticsService
	tests    *TestService
	attempts *AttemptService

	now time.Time

	adminID      uint
	teacherID    uint
	otherTeacher uint
	studentID    uint
	otherStudent uint
	outsiderID   uint // 未选课学生
	courseID     uint
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	f := &fixture{
		ctx:   context.Background(),
		db:    servicetest.NewDB(),
		cache: servicetest.NewCache(),
		now:   time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC),
	}
	clock := func() time.Time { return f.now }

	f.courses = NewCourseService(f.db.Courses(), f.db.Users())
	f.courses.Now = clock
	f.stats = NewStatisticsService(f.db.Tests(), f.db.Attempts(), f.cache, f.db, true)
	f.tests = NewTestService(f.db.Tests(), f.db.Attempts(), f.courses, f.cache, f.db)
	f.tests.Now = clock
	f.attempts = NewAttemptService(f.db.Tests(), f.db.Attempts(), f.courses, f.courses, f.stats, f.cache, f.db, 3)
	f.attempts.Now = clock

	f.adminID = f.createUser(t, "admin@example.com", model.Admin)
	f.teacherID = f.createUser(t, "teacher@example.com", model.Teacher)
	f.otherTeacher = f.createUser(t, "other.teacher@example.com", model.Teacher)
	f.studentID = f.createUser(t, "student@example.com", model.Student)
	f.otherStudent = f.createUser(t, "student2@example.com", model.Student)
	f.outsiderID = f.createUser(t, "outsider@example.com", model.Student)

	course, err := f.courses.CreateCourse(f.ctx, f.teacherID, model.Teacher, CreateCourseReq{Title: "Geography"})
	require.NoError(t, err)
	f.courseID = course.ID

	for _, id := range []uint{f.studentID, f.otherStudent} {
		_, err := f.courses.Enroll(f.ctx, f.teacherID, model.Teacher, f.courseID, id)
		require.NoError(t, err)
	}
	return f
}

func (f *fixture) createUser(t *testing.T, email string, role model.UserRole) uint {
	t.Helper()
	u := &model.User{Name: email, Email: email, Password: "x", Role: role}
	require.NoError(t, f.db.Users().Create(f.ctx, u))
	return u.ID
}

func (f *fixture) advance(d time.Duration) {
	f.now = f.now.Add(d)
}

func sampleQuestions() []QuestionReq {
	return []QuestionReq{
		{
			Type: model.MultipleChoice,
			Text: "Capital of France?",
			Options: []model.QuestionOption{
				{Text: "Paris", IsCorrect: true},
				{Text: "London"},
				{Text: "Berlin"},
			},
			Points:      2,
			Difficulty:  model.Easy,
			Explanation: "Paris has been the capital since 987.",
		},
		{
			Type:          model.ShortAnswer,
			Text:          "Capital of Australia?",
			CorrectAnswer: "Canberra",
			Points:        3,
			Difficulty:    model.Hard,
		},
	}
}

// publishedTest 创建并发布一份两道题的测验
func (f *fixture) publishedTest(t *testing.T, settings model.TestSettings) *model.Test {
	t.Helper()
	test, err := f.tests.CreateTest(f.ctx, f.teacherID, model.Teacher, CreateTestReq{
		CourseID:  f.courseID,
		Title:     "Capitals",
		Questions: sampleQuestions(),
		Settings:  &settings,
	})
	require.NoError(t, err)

	_, err = f.tests.SetPublished(f.ctx, f.teacherID, model.Teacher, test.ID, PublishReq{Published: true})
	require.NoError(t, err)

	stored, err := f.db.Tests().FindByID(f.ctx, test.ID)
	require.NoError(t, err)
	return stored
}

func (f *fixture) start(t *testing.T, studentID uint, testID string) *StartResult {
	t.Helper()
	res, err := f.attempts.StartAttempt(f.ctx, studentID, testID)
	require.NoError(t, err)
	return res
}

func questionByType(t *testing.T, test *model.Test, qt model.QuestionType) model.TestQuestion {
	t.Helper()
	for _, q := range test.Questions {
		if q.Type == qt {
			return q
		}
	}
	t.Fatalf("no %s question in test", qt)
	return model.TestQuestion{}
}
