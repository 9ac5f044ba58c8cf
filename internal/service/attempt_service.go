package service

import (
	"context"
	"edu_testing_backend/internal/model"
	"edu_testing_backend/internal/util"
	"edu_testing_backend/pkg/logger"
	"edu_testing_backend/pkg/monitoring"
	"edu_testing_backend/pkg/tracing"
	"errors"
	"strconv"
	"strings"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.uber.org/zap"
)

const defaultRetryLimit = 3

// AttemptService 负责答题记录的开始、作答、结束与查询
type AttemptService struct {
	Tests      TestStore
	Attempts   AttemptStore
	Enrollment EnrollmentChecker
	Courses    CourseDirectory
	Stats      *StatisticsService
	Cache      TestCache
	Tx         Transactor
	RetryLimit int
	Now        func() time.Time
}

func NewAttemptService(
	tests TestStore,
	attempts AttemptStore,
	enrollment EnrollmentChecker,
	courses CourseDirectory,
	stats *StatisticsService,
	cache TestCache,
	tx Transactor,
	retryLimit int,
) *AttemptService {
	if retryLimit < 1 {
		retryLimit = defaultRetryLimit
	}
	return &AttemptService{
		Tests:      tests,
		Attempts:   attempts,
		Enrollment: enrollment,
		Courses:    courses,
		Stats:      stats,
		Cache:      cache,
		Tx:         tx,
		RetryLimit: retryLimit,
		Now:        time.Now,
	}
}

type SubmitAnswerReq struct {
	QuestionID string `json:"questionId" binding:"required"`
	Answer     string `json:"answer"`
	TimeSpent  int    `json:"timeSpent" binding:"gte=0"` // 秒
}

func (s *AttemptService) loadTest(ctx context.Context, id string) (*model.Test, error) {
	if test, ok := s.Cache.Get(ctx, id); ok {
		return test, nil
	}
	test, err := s.Tests.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	s.Cache.Set(ctx, test)
	return test, nil
}

// StartAttempt 次数与进行中检查在事务内完成；并发开始由唯一索引兜底
func (s *AttemptService) StartAttempt(ctx context.Context, studentID uint, testID string) (*StartResult, error) {
	ctx, span := tracing.StartSpan(ctx, "AttemptService.StartAttempt",
		attribute.String("test.id", testID),
		attribute.Int64("student.id", int64(studentID)),
	)
	var err error
	defer func() { tracing.EndSpan(span, err) }()

	test, err := s.loadTest(ctx, testID)
	if err != nil {
		return nil, err
	}

	now := s.Now()
	if !test.IsAvailableForStudent(now) {
		err = util.ErrTestNotAvailable
		return nil, err
	}

	enrolled, err := s.Enrollment.IsEnrolled(ctx, studentID, test.CourseID)
	if err != nil {
		return nil, err
	}
	if !enrolled {
		err = util.ErrNotEnrolled
		return nil, err
	}

	attempt := &model.TestAttempt{
		TestID:    testID,
		StudentID: studentID,
		Status:    model.AttemptInProgress,
		StartedAt: now,
	}
	err = s.Tx.WithinTransaction(ctx, func(ctx context.Context) error {
		existing, err := s.Attempts.ListByStudentAndTest(ctx, studentID, testID)
		if err != nil {
			return err
		}
		if len(existing) >= test.Settings.MaxAttempts {
			return util.ErrAttemptLimitExceeded
		}
		for _, a := range existing {
			if a.Status == model.AttemptInProgress {
				return util.ErrAttemptInProgress
			}
		}

		attempt.AttemptNumber = len(existing) + 1
		attempt.EnsureID()
		RecomputeScore(attempt, test.Questions)
		return s.Attempts.Create(ctx, attempt)
	})
	if err != nil {
		if errors.Is(err, util.ErrConcurrentAttempt) {
			monitoring.AttemptConflicts.Inc()
		}
		return nil, err
	}

	monitoring.AttemptsStarted.Inc()
	logger.Log.Info("attempt started",
		zap.String("attemptId", attempt.ID),
		zap.String("testId", testID),
		zap.Uint("studentId", studentID),
		zap.Int("attemptNumber", attempt.AttemptNumber),
	)

	return &StartResult{
		Attempt: NewAttemptSummary(attempt, test.Settings.PassingScore),
		Test:    NewStudentTestView(test, attempt),
	}, nil
}

// withAttempt 在事务内读取答题记录并执行修改；版本冲突时重读重试
func (s *AttemptService) withAttempt(ctx context.Context, attemptID string, fn func(ctx context.Context, attempt *model.TestAttempt) error) error {
	for i := 0; i < s.RetryLimit; i++ {
		err := s.Tx.WithinTransaction(ctx, func(ctx context.Context) error {
			attempt, err := s.Attempts.FindByID(ctx, attemptID)
			if err != nil {
				return err
			}
			return fn(ctx, attempt)
		})
		if !errors.Is(err, util.ErrStaleAttempt) {
			return err
		}
		logger.Log.Debug("stale attempt, retrying", zap.String("attemptId", attemptID), zap.Int("try", i+1))
	}
	monitoring.AttemptConflicts.Inc()
	return util.ErrConcurrentAttempt
}

// SubmitAnswer 覆盖写入单题答案并重算得分；不会改变答题状态
func (s *AttemptService) SubmitAnswer(ctx context.Context, attemptID string, studentID uint, req SubmitAnswerReq) (*AnswerResult, error) {
	ctx, span := tracing.StartSpan(ctx, "AttemptService.SubmitAnswer",
		attribute.String("attempt.id", attemptID),
		attribute.String("question.id", req.QuestionID),
	)
	var err error
	defer func() { tracing.EndSpan(span, err) }()

	if req.TimeSpent < 0 {
		err = util.NewValidationError("timeSpent", "must not be negative")
		return nil, err
	}

	var result *AnswerResult
	err = s.withAttempt(ctx, attemptID, func(ctx context.Context, attempt *model.TestAttempt) error {
		if attempt.StudentID != studentID {
			return util.ErrNotOwner
		}
		if attempt.Status != model.AttemptInProgress {
			return util.ErrInvalidState
		}

		test, err := s.loadTest(ctx, attempt.TestID)
		if err != nil {
			return err
		}
		now := s.Now()
		if deadline, ok := test.Deadline(attempt.StartedAt); ok && now.After(deadline) {
			return util.ErrAttemptExpired
		}
		q, ok := test.FindQuestion(req.QuestionID)
		if !ok {
			return util.ErrQuestionNotFound
		}

		entry := UpsertAnswer(attempt, q, req.Answer, req.TimeSpent, now)
		RecomputeScore(attempt, test.Questions)
		if err := s.Attempts.SaveAnswer(ctx, attempt, entry); err != nil {
			return err
		}

		answered := 0
		for _, a := range attempt.Answers {
			if strings.TrimSpace(a.Answer) != "" {
				answered++
			}
		}
		result = &AnswerResult{
			QuestionID:   q.ID,
			IsCorrect:    entry.IsCorrect,
			Points:       entry.Points,
			Score:        attempt.Score,
			TotalPoints:  attempt.TotalPoints,
			EarnedPoints: attempt.EarnedPoints,
			Answered:     answered,
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	monitoring.AnswersGraded.WithLabelValues(strconv.FormatBool(result.IsCorrect)).Inc()
	return result, nil
}

// FinishAttempt 完成答题，并在同一事务内重算测验统计
func (s *AttemptService) FinishAttempt(ctx context.Context, attemptID string, studentID uint) (*AttemptSummary, error) {
	ctx, span := tracing.StartSpan(ctx, "AttemptService.FinishAttempt", attribute.String("attempt.id", attemptID))
	var err error
	defer func() { tracing.EndSpan(span, err) }()

	summary, err := s.close(ctx, attemptID, studentID, model.AttemptCompleted)
	return summary, err
}

// AbandonAttempt 学生主动放弃，同样计入次数
func (s *AttemptService) AbandonAttempt(ctx context.Context, attemptID string, studentID uint) (*AttemptSummary, error) {
	return s.close(ctx, attemptID, studentID, model.AttemptAbandoned)
}

func (s *AttemptService) close(ctx context.Context, attemptID string, studentID uint, status model.AttemptStatus) (*AttemptSummary, error) {
	var (
		summary AttemptSummary
		testID  string
	)
	err := s.withAttempt(ctx, attemptID, func(ctx context.Context, attempt *model.TestAttempt) error {
		if attempt.StudentID != studentID {
			return util.ErrNotOwner
		}
		if attempt.Status != model.AttemptInProgress {
			return util.ErrAttemptNotInProgress
		}
		test, err := s.loadTest(ctx, attempt.TestID)
		if err != nil {
			return err
		}
		if err := s.closeInTx(ctx, attempt, test, status); err != nil {
			return err
		}
		summary = NewAttemptSummary(attempt, test.Settings.PassingScore)
		testID = test.ID
		return nil
	})
	if err != nil {
		return nil, err
	}

	// 统计字段已变化
	s.Cache.Invalidate(ctx, testID)
	monitoring.AttemptsClosed.WithLabelValues(string(status)).Inc()
	logger.Log.Info("attempt closed",
		zap.String("attemptId", attemptID),
		zap.String("testId", testID),
		zap.String("status", string(status)),
		zap.Int("score", summary.Score),
		zap.Bool("passed", summary.IsPassed),
	)
	return &summary, nil
}

func (s *AttemptService) closeInTx(ctx context.Context, attempt *model.TestAttempt, test *model.Test, status model.AttemptStatus) error {
	RecomputeScore(attempt, test.Questions)
	var err error
	if status == model.AttemptCompleted {
		err = CompleteAttempt(attempt, s.Now())
	} else {
		err = closeAttempt(attempt, status, s.Now())
	}
	if err != nil {
		return err
	}
	// 先锁测验行再写答题记录，与同一测验的其他结束请求保持相同的加锁顺序
	if _, err := s.Tests.LockForStatistics(ctx, test.ID); err != nil {
		return err
	}
	if err := s.Attempts.UpdateState(ctx, attempt); err != nil {
		return err
	}
	_, err = s.Stats.Recompute(ctx, test.ID)
	return err
}

// canManage 课程讲师、测验创建者或管理员
func (s *AttemptService) canManage(ctx context.Context, callerID uint, role model.UserRole, test *model.Test) (bool, error) {
	switch role {
	case model.Admin:
		return true, nil
	case model.Teacher:
		if test.InstructorID == callerID {
			return true, nil
		}
		instructorID, err := s.Courses.GetCourseInstructor(ctx, test.CourseID)
		if err != nil {
			return false, err
		}
		return instructorID == callerID, nil
	}
	return false, nil
}

// GetAttempts 学生只能看到自己的记录
func (s *AttemptService) GetAttempts(ctx context.Context, testID string, callerID uint, role model.UserRole) ([]AttemptSummary, error) {
	test, err := s.loadTest(ctx, testID)
	if err != nil {
		return nil, err
	}

	var attempts []model.TestAttempt
	switch role {
	case model.Student:
		attempts, err = s.Attempts.ListByStudentAndTest(ctx, callerID, testID)
	default:
		ok, cerr := s.canManage(ctx, callerID, role, test)
		if cerr != nil {
			return nil, cerr
		}
		if !ok {
			return nil, util.ErrPermissionDenied
		}
		attempts, err = s.Attempts.ListByTest(ctx, testID)
	}
	if err != nil {
		return nil, err
	}

	summaries := make([]AttemptSummary, 0, len(attempts))
	for i := range attempts {
		summaries = append(summaries, NewAttemptSummary(&attempts[i], test.Settings.PassingScore))
	}
	return summaries, nil
}

func (s *AttemptService) GetAttempt(ctx context.Context, attemptID string, callerID uint, role model.UserRole) (*AttemptDetail, error) {
	attempt, err := s.Attempts.FindByID(ctx, attemptID)
	if err != nil {
		return nil, err
	}
	test, err := s.loadTest(ctx, attempt.TestID)
	if err != nil {
		return nil, err
	}

	privileged := false
	if attempt.StudentID != callerID {
		ok, err := s.canManage(ctx, callerID, role, test)
		if err != nil {
			return nil, err
		}
		if !ok {
			return nil, util.ErrNotOwner
		}
		privileged = true
	}

	detail := NewAttemptDetail(test, attempt, privileged)
	return &detail, nil
}

// ExpireOverdueAttempts 将超过限时的进行中答题标记为 timeout，返回处理数量
func (s *AttemptService) ExpireOverdueAttempts(ctx context.Context) (int, error) {
	now := s.Now()
	// 限时最短 1 分钟，更晚开始的记录不可能超时
	candidates, err := s.Attempts.ListInProgress(ctx, now.Add(-time.Minute))
	if err != nil {
		return 0, err
	}

	expired := 0
	touched := map[string]bool{}
	for _, c := range candidates {
		test, err := s.loadTest(ctx, c.TestID)
		if err != nil {
			logger.Log.Warn("load test for expiry failed", zap.String("testId", c.TestID), zap.Error(err))
			continue
		}
		deadline, ok := test.Deadline(c.StartedAt)
		if !ok || !now.After(deadline) {
			continue
		}

		closed := false
		err = s.withAttempt(ctx, c.ID, func(ctx context.Context, attempt *model.TestAttempt) error {
			// 学生可能已在此期间提交
			closed = false
			if attempt.Status != model.AttemptInProgress {
				return nil
			}
			if err := s.closeInTx(ctx, attempt, test, model.AttemptTimeout); err != nil {
				return err
			}
			closed = true
			return nil
		})
		if err != nil {
			if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
				return expired, err
			}
			logger.Log.Warn("expire attempt failed", zap.String("attemptId", c.ID), zap.Error(err))
			continue
		}
		if closed {
			expired++
			touched[test.ID] = true
			monitoring.AttemptsClosed.WithLabelValues(string(model.AttemptTimeout)).Inc()
		}
	}

	for testID := range touched {
		s.Cache.Invalidate(ctx, testID)
	}
	if expired > 0 {
		logger.Log.Info("overdue attempts expired", zap.Int("count", expired))
	}
	return expired, nil
}
