package repository

import (
	"context"
	"edu_testing_backend/internal/model"
	"edu_testing_backend/internal/util"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type TestAttemptRepository struct {
	DB *gorm.DB
}

func NewTestAttemptRepository(db *gorm.DB) *TestAttemptRepository {
	return &TestAttemptRepository{DB: db}
}

// Create (student, test, attemptNumber) 唯一索引冲突说明有并发的开始请求
func (r *TestAttemptRepository) Create(ctx context.Context, attempt *model.TestAttempt) error {
	if attempt.Version == 0 {
		attempt.Version = 1
	}
	return translate(conn(ctx, r.DB).Omit("Answers").Create(attempt).Error, nil, util.ErrConcurrentAttempt)
}

func (r *TestAttemptRepository) FindByID(ctx context.Context, id string) (*model.TestAttempt, error) {
	var attempt model.TestAttempt
	err := conn(ctx, r.DB).
		Preload("Answers", func(db *gorm.DB) *gorm.DB { return db.Order("answered_at asc") }).
		First(&attempt, "id = ?", id).Error
	if err != nil {
		return nil, translate(err, util.ErrAttemptNotFound, nil)
	}
	return &attempt, nil
}

func (r *TestAttemptRepository) ListByStudentAndTest(ctx context.Context, studentID uint, testID string) ([]model.TestAttempt, error) {
	var attempts []model.TestAttempt
	err := conn(ctx, r.DB).
		Where("student_id = ? AND test_id = ?", studentID, testID).
		Order("attempt_number asc").
		Find(&attempts).Error
	return attempts, translate(err, nil, nil)
}

func (r *TestAttemptRepository) ListByTest(ctx context.Context, testID string) ([]model.TestAttempt, error) {
	var attempts []model.TestAttempt
	err := conn(ctx, r.DB).
		Where("test_id = ?", testID).
		Order("student_id asc, attempt_number asc").
		Find(&attempts).Error
	return attempts, translate(err, nil, nil)
}

// ListByTestLocked 加共享锁的当前读，事务快照之后提交的状态变更也能读到
func (r *TestAttemptRepository) ListByTestLocked(ctx context.Context, testID string) ([]model.TestAttempt, error) {
	var attempts []model.TestAttempt
	err := conn(ctx, r.DB).
		Clauses(clause.Locking{Strength: "SHARE"}).
		Where("test_id = ?", testID).
		Order("student_id asc, attempt_number asc").
		Find(&attempts).Error
	return attempts, translate(err, nil, nil)
}

func (r *TestAttemptRepository) ListInProgress(ctx context.Context, startedBefore time.Time) ([]model.TestAttempt, error) {
	var attempts []model.TestAttempt
	err := conn(ctx, r.DB).
		Where("status = ? AND started_at < ?", model.AttemptInProgress, startedBefore).
		Order("started_at asc").
		Find(&attempts).Error
	return attempts, translate(err, nil, nil)
}

func (r *TestAttemptRepository) CountByTest(ctx context.Context, testID string) (int64, error) {
	var count int64
	err := conn(ctx, r.DB).Model(&model.TestAttempt{}).Where("test_id = ?", testID).Count(&count).Error
	return count, translate(err, nil, nil)
}

// SaveAnswer 按 (attempt_id, question_id) 覆盖写入答案，并以版本号更新汇总
func (r *TestAttemptRepository) SaveAnswer(ctx context.Context, attempt *model.TestAttempt, answer *model.AttemptAnswer) error {
	db := conn(ctx, r.DB)
	err := db.Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "attempt_id"}, {Name: "question_id"}},
		DoUpdates: clause.AssignmentColumns([]string{
			"answer", "is_correct", "points", "max_points", "difficulty", "time_spent", "answered_at", "updated_at",
		}),
	}).Create(answer).Error
	if err != nil {
		return translate(err, nil, nil)
	}
	return r.UpdateState(ctx, attempt)
}

// UpdateState 乐观锁：版本号不匹配时返回 ErrStaleAttempt，由服务层重读后重试
func (r *TestAttemptRepository) UpdateState(ctx context.Context, attempt *model.TestAttempt) error {
	res := conn(ctx, r.DB).Model(&model.TestAttempt{}).
		Where("id = ? AND version = ?", attempt.ID, attempt.Version).
		Updates(map[string]interface{}{
			"status":        attempt.Status,
			"score":         attempt.Score,
			"total_points":  attempt.TotalPoints,
			"earned_points": attempt.EarnedPoints,
			"completed_at":  attempt.CompletedAt,
			"time_spent":    attempt.TimeSpent,
			"results":       attempt.Results,
			"version":       attempt.Version + 1,
			"updated_at":    time.Now(),
		})
	if res.Error != nil {
		return translate(res.Error, nil, nil)
	}
	if res.RowsAffected == 0 {
		return util.ErrStaleAttempt
	}
	attempt.Version++
	return nil
}
