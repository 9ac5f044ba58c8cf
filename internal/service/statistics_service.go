package service

import (
	"context"
	"edu_testing_backend/internal/model"
	"edu_testing_backend/pkg/logger"
	"edu_testing_backend/pkg/monitoring"
	"edu_testing_backend/pkg/tracing"
	"math"
	"sync/atomic"

	"go.opentelemetry.io/otel/attribute"
	"go.uber.org/zap"
)

// StatisticsService 测验统计；统计字段只由这里写入
type StatisticsService struct {
	Tests    TestStore
	Attempts AttemptStore
	Cache    TestCache
	Tx       Transactor

	includeInProgress atomic.Bool
}

func NewStatisticsService(tests TestStore, attempts AttemptStore, cache TestCache, tx Transactor, includeInProgress bool) *StatisticsService {
	s := &StatisticsService{Tests: tests, Attempts: attempts, Cache: cache, Tx: tx}
	s.includeInProgress.Store(includeInProgress)
	return s
}

// SetIncludeInProgress 配置热更新时调用
func (s *StatisticsService) SetIncludeInProgress(v bool) {
	if s.includeInProgress.Swap(v) != v {
		logger.Log.Info("statistics policy changed", zap.Bool("includeInProgress", v))
	}
}

func (s *StatisticsService) IncludeInProgress() bool {
	return s.includeInProgress.Load()
}

// ComputeStatistics 纯函数；没有答题记录时全部为 0
func ComputeStatistics(attempts []model.TestAttempt, passingScore int, includeInProgress bool) model.TestStatistics {
	count, sum, passed := 0, 0, 0
	for _, a := range attempts {
		if !includeInProgress && !a.Status.IsTerminal() {
			continue
		}
		count++
		sum += a.Score
		if a.Score >= passingScore {
			passed++
		}
	}
	if count == 0 {
		return model.TestStatistics{}
	}
	return model.TestStatistics{
		TotalAttempts: count,
		AverageScore:  int(math.Round(float64(sum) / float64(count))),
		PassRate:      int(math.Round(100 * float64(passed) / float64(count))),
	}
}

// Recompute 重新汇总并写回测验；在事务中调用时与答题记录的变更一起提交。
// 先锁住测验行，同一测验的重算依次执行，答题记录按加锁读取最新提交的版本
func (s *StatisticsService) Recompute(ctx context.Context, testID string) (model.TestStatistics, error) {
	ctx, span := tracing.StartSpan(ctx, "StatisticsService.Recompute", attribute.String("test.id", testID))
	var err error
	defer func() { tracing.EndSpan(span, err) }()

	var stats model.TestStatistics
	err = s.Tx.WithinTransaction(ctx, func(ctx context.Context) error {
		test, err := s.Tests.LockForStatistics(ctx, testID)
		if err != nil {
			return err
		}
		attempts, err := s.Attempts.ListByTestLocked(ctx, testID)
		if err != nil {
			return err
		}
		stats = ComputeStatistics(attempts, test.Settings.PassingScore, s.IncludeInProgress())
		return s.Tests.UpdateStatistics(ctx, testID, stats)
	})
	if err != nil {
		return model.TestStatistics{}, err
	}

	// 外层事务提交后调用方会再次失效
	s.Cache.Invalidate(ctx, testID)
	monitoring.StatsRecomputes.Inc()

	logger.Log.Debug("test statistics recomputed",
		zap.String("testId", testID),
		zap.Int("totalAttempts", stats.TotalAttempts),
		zap.Int("averageScore", stats.AverageScore),
		zap.Int("passRate", stats.PassRate),
	)
	return stats, nil
}

// StatisticsReport 讲师查看的统计，附带按状态计数
type StatisticsReport struct {
	TestID            string                      `json:"testId"`
	Stored            model.TestStatistics        `json:"stored"`
	ByStatus          map[model.AttemptStatus]int `json:"byStatus"`
	Passed            int                         `json:"passed"`
	Failed            int                         `json:"failed"`
	IncludeInProgress bool                        `json:"includeInProgress"`
}

func (s *StatisticsService) Report(ctx context.Context, test *model.Test) (*StatisticsReport, error) {
	attempts, err := s.Attempts.ListByTest(ctx, test.ID)
	if err != nil {
		return nil, err
	}

	report := &StatisticsReport{
		TestID:            test.ID,
		Stored:            test.TestStatistics,
		ByStatus:          map[model.AttemptStatus]int{},
		IncludeInProgress: s.IncludeInProgress(),
	}
	for _, a := range attempts {
		report.ByStatus[a.Status]++
		if a.Status != model.AttemptCompleted {
			continue
		}
		if a.Score >= test.Settings.PassingScore {
			report.Passed++
		} else {
			report.Failed++
		}
	}
	return report, nil
}
