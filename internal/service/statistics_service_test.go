package service

import (
	"edu_testing_backend/internal/model"
	"edu_testing_backend/internal/util"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func attemptsWithScores(status model.AttemptStatus, scores ...int) []model.TestAttempt {
	out := make([]model.TestAttempt, len(scores))
	for i, s := range scores {
		out[i] = model.TestAttempt{Status: status, Score: s}
	}
	return out
}

func TestComputeStatistics(t *testing.T) {
	tests := []struct {
		name     string
		attempts []model.TestAttempt
		passing  int
		include  bool
		want     model.TestStatistics
	}{
		{
			name: "no attempts",
			want: model.TestStatistics{},
		},
		{
			name:     "rounded average and pass rate",
			attempts: attemptsWithScores(model.AttemptCompleted, 80, 50, 100),
			passing:  60,
			want:     model.TestStatistics{TotalAttempts: 3, AverageScore: 77, PassRate: 67},
		},
		{
			name:     "passing score is inclusive",
			attempts: attemptsWithScores(model.AttemptCompleted, 60, 59),
			passing:  60,
			want:     model.TestStatistics{TotalAttempts: 2, AverageScore: 60, PassRate: 50},
		},
		{
			name: "in progress counted when included",
			attempts: append(
				attemptsWithScores(model.AttemptCompleted, 90),
				attemptsWithScores(model.AttemptInProgress, 10)...,
			),
			passing: 50,
			include: true,
			want:    model.TestStatistics{TotalAttempts: 2, AverageScore: 50, PassRate: 50},
		},
		{
			name: "in progress skipped when excluded",
			attempts: append(
				attemptsWithScores(model.AttemptCompleted, 90),
				attemptsWithScores(model.AttemptInProgress, 10)...,
			),
			passing: 50,
			include: false,
			want:    model.TestStatistics{TotalAttempts: 1, AverageScore: 90, PassRate: 100},
		},
		{
			name:     "only in progress and excluded",
			attempts: attemptsWithScores(model.AttemptInProgress, 70),
			include:  false,
			want:     model.TestStatistics{},
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got := ComputeStatistics(tc.attempts, tc.passing, tc.include)
			assert.Equal(t, tc.want, got)
		})
	}
}

func TestRecompute_Idempotent(t *testing.T) {
	f := newFixture(t)
	settings := model.DefaultTestSettings()
	settings.MaxAttempts = 2
	test := f.publishedTest(t, settings)
	mc := questionByType(t, test, model.MultipleChoice)

	res := f.start(t, f.studentID, test.ID)
	_, err := f.attempts.SubmitAnswer(f.ctx, res.Attempt.ID, f.studentID, SubmitAnswerReq{QuestionID: mc.ID, Answer: "Paris"})
	require.NoError(t, err)
	_, err = f.attempts.FinishAttempt(f.ctx, res.Attempt.ID, f.studentID)
	require.NoError(t, err)

	first, err := f.stats.Recompute(f.ctx, test.ID)
	require.NoError(t, err)
	second, err := f.stats.Recompute(f.ctx, test.ID)
	require.NoError(t, err)
	assert.Equal(t, first, second)

	stored, err := f.db.Tests().FindByID(f.ctx, test.ID)
	require.NoError(t, err)
	assert.Equal(t, first, stored.TestStatistics)
	assert.Equal(t, model.TestStatistics{TotalAttempts: 1, AverageScore: 100, PassRate: 100}, first)
}

func TestRecompute_PolicySwitch(t *testing.T) {
	f := newFixture(t)
	test := f.publishedTest(t, model.DefaultTestSettings())
	mc := questionByType(t, test, model.MultipleChoice)

	done := f.start(t, f.studentID, test.ID)
	_, err := f.attempts.SubmitAnswer(f.ctx, done.Attempt.ID, f.studentID, SubmitAnswerReq{QuestionID: mc.ID, Answer: "Paris"})
	require.NoError(t, err)
	_, err = f.attempts.FinishAttempt(f.ctx, done.Attempt.ID, f.studentID)
	require.NoError(t, err)
	f.start(t, f.otherStudent, test.ID)

	stats, err := f.stats.Recompute(f.ctx, test.ID)
	require.NoError(t, err)
	assert.Equal(t, 2, stats.TotalAttempts)
	assert.Equal(t, 50, stats.AverageScore)

	f.stats.SetIncludeInProgress(false)
	assert.False(t, f.stats.IncludeInProgress())

	stats, err = f.stats.Recompute(f.ctx, test.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, stats.TotalAttempts)
	assert.Equal(t, 100, stats.AverageScore)
}

func TestReport(t *testing.T) {
	f := newFixture(t)
	settings := model.DefaultTestSettings()
	settings.MaxAttempts = 2
	test := f.publishedTest(t, settings)
	mc := questionByType(t, test, model.MultipleChoice)

	passed := f.start(t, f.studentID, test.ID)
	_, err := f.attempts.SubmitAnswer(f.ctx, passed.Attempt.ID, f.studentID, SubmitAnswerReq{QuestionID: mc.ID, Answer: "Paris"})
	require.NoError(t, err)
	_, err = f.attempts.FinishAttempt(f.ctx, passed.Attempt.ID, f.studentID)
	require.NoError(t, err)

	failed := f.start(t, f.studentID, test.ID)
	_, err = f.attempts.FinishAttempt(f.ctx, failed.Attempt.ID, f.studentID)
	require.NoError(t, err)

	abandoned := f.start(t, f.otherStudent, test.ID)
	_, err = f.attempts.AbandonAttempt(f.ctx, abandoned.Attempt.ID, f.otherStudent)
	require.NoError(t, err)

	stored, err := f.db.Tests().FindByID(f.ctx, test.ID)
	require.NoError(t, err)
	report, err := f.stats.Report(f.ctx, stored)
	require.NoError(t, err)

	assert.Equal(t, 2, report.ByStatus[model.AttemptCompleted])
	assert.Equal(t, 1, report.ByStatus[model.AttemptAbandoned])
	assert.Equal(t, 1, report.Passed)
	assert.Equal(t, 1, report.Failed)
	assert.True(t, report.IncludeInProgress)
	assert.Equal(t, 3, report.Stored.TotalAttempts)
}

func TestRecompute_LocksTestAndInvalidatesCache(t *testing.T) {
	f := newFixture(t)
	test := f.publishedTest(t, model.DefaultTestSettings())
	f.cache.Set(f.ctx, test)

	locks := f.db.StatisticsLocks
	_, err := f.stats.Recompute(f.ctx, test.ID)
	require.NoError(t, err)
	assert.Equal(t, locks+1, f.db.StatisticsLocks)
	_, ok := f.cache.Get(f.ctx, test.ID)
	assert.False(t, ok)

	// 结束答题：写答题记录前锁一次，重算时再锁一次
	res := f.start(t, f.studentID, test.ID)
	locks = f.db.StatisticsLocks
	_, err = f.attempts.FinishAttempt(f.ctx, res.Attempt.ID, f.studentID)
	require.NoError(t, err)
	assert.Equal(t, locks+2, f.db.StatisticsLocks)

	_, err = f.stats.Recompute(f.ctx, "missing")
	assert.ErrorIs(t, err, util.ErrTestNotFound)
}
