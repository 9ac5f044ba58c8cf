package service

import (
	"context"
	"edu_testing_backend/internal/model"
	"edu_testing_backend/internal/repository"
	"edu_testing_backend/internal/service/servicetest"
	"edu_testing_backend/pkg/database"
	"path/filepath"
	"testing"

	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

// 通过 gorm 仓储验证题目 ID 只由服务端分配
func TestTestService_QuestionIDsOverGorm(t *testing.T) {
	db, err := gorm.Open(sqlite.Open(filepath.Join(t.TempDir(), "edu.db")), &gorm.Config{
		TranslateError: true,
		Logger:         gormlogger.Default.LogMode(gormlogger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, database.Migrate(db))
	ctx := context.Background()

	tests := repository.NewTestRepository(db)
	courses := NewCourseService(repository.NewCourseRepository(db), repository.NewUserRepository(db))
	svc := NewTestService(tests, repository.NewTestAttemptRepository(db), courses, servicetest.NewCache(), repository.NewTransactor(db))

	course, err := courses.CreateCourse(ctx, 1, model.Teacher, CreateCourseReq{Title: "Geography"})
	require.NoError(t, err)

	first, err := svc.CreateTest(ctx, 1, model.Teacher, CreateTestReq{CourseID: course.ID, Title: "First", Questions: sampleQuestions()})
	require.NoError(t, err)

	reqs := sampleQuestions()
	reqs[0].ID = first.Questions[0].ID
	reqs[0].Text = "Capital of Italy?"
	second, err := svc.CreateTest(ctx, 1, model.Teacher, CreateTestReq{CourseID: course.ID, Title: "Second", Questions: reqs})
	require.NoError(t, err)
	assert.NotEqual(t, first.Questions[0].ID, second.Questions[0].ID)

	stored, err := tests.FindByID(ctx, second.ID)
	require.NoError(t, err)
	assert.Equal(t, "Capital of Italy?", stored.Questions[0].Text)

	// 编辑时引用其他测验的题目 ID 是校验错误，不会落到存储层
	edit := questionReqsOf(stored.Questions)
	edit[1].ID = first.Questions[1].ID
	_, err = svc.UpdateTest(ctx, 1, model.Teacher, second.ID, UpdateTestReq{Questions: &edit})
	assert.Equal(t, []string{"questions[1].id"}, violationFields(t, err))

	stored, err = tests.FindByID(ctx, first.ID)
	require.NoError(t, err)
	require.Len(t, stored.Questions, 2)
	assert.Equal(t, "Capital of France?", stored.Questions[0].Text)
	assert.Equal(t, "Canberra", stored.Questions[1].CorrectAnswer)
}
