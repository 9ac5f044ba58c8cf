package service

import (
	"bytes"
	"context"
	"edu_testing_backend/internal/model"
	"edu_testing_backend/internal/util"
	"edu_testing_backend/pkg/logger"
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"time"

	"go.uber.org/zap"
)

type Uploader interface {
	Upload(ctx context.Context, filename string, reader io.Reader, size int64, contentType string) (string, error)
}

// ExportService 导出测验成绩为 CSV
type ExportService struct {
	Attempts *AttemptService
	Storage  Uploader
	Now      func() time.Time
}

func NewExportService(attempts *AttemptService, storage Uploader) *ExportService {
	return &ExportService{Attempts: attempts, Storage: storage, Now: time.Now}
}

type ExportResult struct {
	URL  string `json:"url"`
	Rows int    `json:"rows"`
}

var exportHeader = []string{
	"attempt_id", "student_id", "attempt_number", "status",
	"score", "earned_points", "total_points", "passed",
	"correct", "incorrect", "unanswered",
	"started_at", "completed_at", "time_spent_minutes",
}

// ExportAttempts 权限与 GetAttempts 一致，学生只能导出自己的记录
func (s *ExportService) ExportAttempts(ctx context.Context, testID string, callerID uint, role model.UserRole) (*ExportResult, error) {
	if s.Storage == nil {
		return nil, util.ErrExportStorageDisabled
	}
	summaries, err := s.Attempts.GetAttempts(ctx, testID, callerID, role)
	if err != nil {
		return nil, err
	}

	data, err := EncodeAttemptsCSV(summaries)
	if err != nil {
		return nil, err
	}

	filename := fmt.Sprintf("exports/tests/%s/attempts_%s.csv", testID, s.Now().Format("20060102150405"))
	url, err := s.Storage.Upload(ctx, filename, bytes.NewReader(data), int64(len(data)), util.MimeCSV)
	if err != nil {
		logger.Log.Error("export upload failed", zap.String("testId", testID), zap.Error(err))
		return nil, fmt.Errorf("%w: %v", util.ErrStorage, err)
	}

	logger.Log.Info("attempts exported", zap.String("testId", testID), zap.Int("rows", len(summaries)))
	return &ExportResult{URL: url, Rows: len(summaries)}, nil
}

func EncodeAttemptsCSV(summaries []AttemptSummary) ([]byte, error) {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)
	if err := w.Write(exportHeader); err != nil {
		return nil, err
	}
	for _, a := range summaries {
		completedAt := ""
		if a.CompletedAt != nil {
			completedAt = a.CompletedAt.Format(util.TimeFormat)
		}
		row := []string{
			a.ID,
			strconv.FormatUint(uint64(a.StudentID), 10),
			strconv.Itoa(a.AttemptNumber),
			string(a.Status),
			strconv.Itoa(a.Score),
			strconv.Itoa(a.EarnedPoints),
			strconv.Itoa(a.TotalPoints),
			strconv.FormatBool(a.IsPassed),
			strconv.Itoa(a.Results.CorrectAnswers),
			strconv.Itoa(a.Results.IncorrectAnswers),
			strconv.Itoa(a.Results.UnansweredQuestions),
			a.StartedAt.Format(util.TimeFormat),
			completedAt,
			strconv.Itoa(a.TimeSpent),
		}
		if err := w.Write(row); err != nil {
			return nil, err
		}
	}
	w.Flush()
	return buf.Bytes(), w.Error()
}
