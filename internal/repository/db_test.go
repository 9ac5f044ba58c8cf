package repository

import (
	"context"
	"edu_testing_backend/internal/model"
	"edu_testing_backend/pkg/database"
	"path/filepath"
	"testing"
	"time"

	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

// newTestDB 每个用例一份独立的 sqlite 文件库，表结构与线上迁移一致
func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(filepath.Join(t.TempDir(), "edu.db")), &gorm.Config{
		TranslateError: true,
		Logger:         gormlogger.Default.LogMode(gormlogger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, database.Migrate(db))

	sqlDB, err := db.DB()
	require.NoError(t, err)
	t.Cleanup(func() { sqlDB.Close() })
	return db
}

func newTest(title string, questionTexts ...string) *model.Test {
	test := &model.Test{
		CourseID:     1,
		InstructorID: 1,
		Title:        title,
		Settings:     model.DefaultTestSettings(),
		IsActive:     true,
	}
	for i, text := range questionTexts {
		test.Questions = append(test.Questions, model.TestQuestion{
			Type:          model.ShortAnswer,
			Text:          text,
			CorrectAnswer: "answer",
			Points:        1,
			Difficulty:    model.Medium,
			Order:         i,
		})
	}
	return test
}

func newAttempt(testID string, studentID uint, number int) *model.TestAttempt {
	return &model.TestAttempt{
		TestID:        testID,
		StudentID:     studentID,
		AttemptNumber: number,
		Status:        model.AttemptInProgress,
		StartedAt:     time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC),
	}
}

var bg = context.Background()
