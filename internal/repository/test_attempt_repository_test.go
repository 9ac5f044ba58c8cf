package repository

import (
	"context"
	"edu_testing_backend/internal/model"
	"edu_testing_backend/internal/util"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTestAttemptRepository_DuplicateNumberIsConflict(t *testing.T) {
	repo := NewTestAttemptRepository(newTestDB(t))

	first := newAttempt("test-1", 7, 1)
	require.NoError(t, repo.Create(bg, first))
	assert.Equal(t, 1, first.Version)

	err := repo.Create(bg, newAttempt("test-1", 7, 1))
	assert.ErrorIs(t, err, util.ErrConcurrentAttempt)

	// 其他学生、其他测验或下一次序号互不冲突
	require.NoError(t, repo.Create(bg, newAttempt("test-1", 8, 1)))
	require.NoError(t, repo.Create(bg, newAttempt("test-2", 7, 1)))
	require.NoError(t, repo.Create(bg, newAttempt("test-1", 7, 2)))

	attempts, err := repo.ListByStudentAndTest(bg, 7, "test-1")
	require.NoError(t, err)
	require.Len(t, attempts, 2)
	assert.Equal(t, []int{1, 2}, []int{attempts[0].AttemptNumber, attempts[1].AttemptNumber})

	count, err := repo.CountByTest(bg, "test-1")
	require.NoError(t, err)
	assert.Equal(t, int64(3), count)
}

func TestTestAttemptRepository_UpdateStateIsVersioned(t *testing.T) {
	repo := NewTestAttemptRepository(newTestDB(t))
	attempt := newAttempt("test-1", 7, 1)
	require.NoError(t, repo.Create(bg, attempt))
	stale := *attempt

	attempt.Score = 50
	require.NoError(t, repo.UpdateState(bg, attempt))
	assert.Equal(t, 2, attempt.Version)

	stale.Score = 10
	assert.ErrorIs(t, repo.UpdateState(bg, &stale), util.ErrStaleAttempt)
	assert.Equal(t, 1, stale.Version)

	stored, err := repo.FindByID(bg, attempt.ID)
	require.NoError(t, err)
	assert.Equal(t, 50, stored.Score)
	assert.Equal(t, 2, stored.Version)

	_, err = repo.FindByID(bg, "missing")
	assert.ErrorIs(t, err, util.ErrAttemptNotFound)
}

func TestTestAttemptRepository_SaveAnswerUpserts(t *testing.T) {
	repo := NewTestAttemptRepository(newTestDB(t))
	attempt := newAttempt("test-1", 7, 1)
	require.NoError(t, repo.Create(bg, attempt))
	at := attempt.StartedAt.Add(time.Minute)

	first := &model.AttemptAnswer{
		AttemptID: attempt.ID, QuestionID: "q1", Answer: "Paris",
		IsCorrect: true, Points: 2, MaxPoints: 2, Difficulty: model.Easy, AnsweredAt: at,
	}
	require.NoError(t, repo.SaveAnswer(bg, attempt, first))

	// 同一道题再次作答：新行 ID 不同，按 (attempt_id, question_id) 覆盖
	second := &model.AttemptAnswer{
		AttemptID: attempt.ID, QuestionID: "q1", Answer: "London",
		Points: 0, MaxPoints: 2, Difficulty: model.Easy, AnsweredAt: at.Add(time.Minute),
	}
	require.NoError(t, repo.SaveAnswer(bg, attempt, second))
	assert.Equal(t, 3, attempt.Version)

	stored, err := repo.FindByID(bg, attempt.ID)
	require.NoError(t, err)
	require.Len(t, stored.Answers, 1)
	assert.Equal(t, first.ID, stored.Answers[0].ID)
	assert.Equal(t, "London", stored.Answers[0].Answer)
	assert.False(t, stored.Answers[0].IsCorrect)
	assert.Equal(t, 3, stored.Version)
}

func TestTestAttemptRepository_ListsForStatisticsAndExpiry(t *testing.T) {
	db := newTestDB(t)
	repo := NewTestAttemptRepository(db)

	early := newAttempt("test-1", 7, 1)
	late := newAttempt("test-1", 8, 1)
	late.StartedAt = early.StartedAt.Add(time.Hour)
	done := newAttempt("test-1", 9, 1)
	done.Status = model.AttemptCompleted
	for _, a := range []*model.TestAttempt{late, early, done} {
		require.NoError(t, repo.Create(bg, a))
	}

	pending, err := repo.ListInProgress(bg, early.StartedAt.Add(time.Minute))
	require.NoError(t, err)
	require.Len(t, pending, 1)
	assert.Equal(t, early.ID, pending[0].ID)

	err = NewTransactor(db).WithinTransaction(bg, func(ctx context.Context) error {
		locked, err := repo.ListByTestLocked(ctx, "test-1")
		if err != nil {
			return err
		}
		assert.Len(t, locked, 3)
		assert.Equal(t, uint(7), locked[0].StudentID)
		return nil
	})
	require.NoError(t, err)
}

func TestTransactor_RollsBack(t *testing.T) {
	db := newTestDB(t)
	repo := NewTestAttemptRepository(db)
	tx := NewTransactor(db)
	attempt := newAttempt("test-1", 7, 1)
	boom := errors.New("boom")

	err := tx.WithinTransaction(bg, func(ctx context.Context) error {
		require.NoError(t, repo.Create(ctx, attempt))
		// 事务内可见
		_, err := repo.FindByID(ctx, attempt.ID)
		require.NoError(t, err)

		// 嵌套调用复用同一事务
		return tx.WithinTransaction(ctx, func(ctx context.Context) error {
			attempt.Score = 80
			if err := repo.UpdateState(ctx, attempt); err != nil {
				return err
			}
			return boom
		})
	})
	assert.ErrorIs(t, err, boom)

	_, err = repo.FindByID(bg, attempt.ID)
	assert.ErrorIs(t, err, util.ErrAttemptNotFound)
}

func TestTransactor_Commits(t *testing.T) {
	db := newTestDB(t)
	repo := NewTestAttemptRepository(db)
	attempt := newAttempt("test-1", 7, 1)

	err := NewTransactor(db).WithinTransaction(bg, func(ctx context.Context) error {
		return repo.Create(ctx, attempt)
	})
	require.NoError(t, err)

	stored, err := repo.FindByID(bg, attempt.ID)
	require.NoError(t, err)
	assert.Equal(t, model.AttemptInProgress, stored.Status)
}

func TestTranslate(t *testing.T) {
	assert.NoError(t, translate(nil, util.ErrTestNotFound, nil))
	assert.ErrorIs(t, translate(context.Canceled, nil, nil), context.Canceled)

	err := translate(errors.New("connection reset"), nil, nil)
	assert.ErrorIs(t, err, util.ErrStorage)
	assert.Equal(t, util.KindTransient, util.KindOf(err))
}
