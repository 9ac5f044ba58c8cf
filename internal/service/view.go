package service

import (
	"edu_testing_backend/internal/model"
	"hash/fnv"
	"math/rand"
	"time"
)

// StudentQuestionView 学生端题目，不包含任何判分信息
type StudentQuestionView struct {
	ID         string             `json:"id"`
	Type       model.QuestionType `json:"type"`
	Text       string             `json:"text"`
	Options    []string           `json:"options,omitempty"`
	Points     int                `json:"points"`
	Difficulty model.Difficulty   `json:"difficulty"`
	TimeLimit  int                `json:"timeLimit"`
}

type StudentTestView struct {
	ID           string                `json:"id"`
	CourseID     uint                  `json:"courseId"`
	Title        string                `json:"title"`
	Description  string                `json:"description"`
	Duration     int                   `json:"duration"`
	TimeLimit    bool                  `json:"timeLimit"`
	PassingScore int                   `json:"passingScore"`
	MaxAttempts  int                   `json:"maxAttempts"`
	TotalPoints  int                   `json:"totalPoints"`
	Deadline     *time.Time            `json:"deadline,omitempty"`
	Questions    []StudentQuestionView `json:"questions"`
}

// NewStudentTestView 按答题记录 ID 作为随机种子打乱，同一次答题刷新后顺序不变
func NewStudentTestView(test *model.Test, attempt *model.TestAttempt) StudentTestView {
	view := StudentTestView{
		ID:           test.ID,
		CourseID:     test.CourseID,
		Title:        test.Title,
		Description:  test.Description,
		Duration:     test.Settings.Duration,
		TimeLimit:    test.Settings.TimeLimit,
		PassingScore: test.Settings.PassingScore,
		MaxAttempts:  test.Settings.MaxAttempts,
		TotalPoints:  test.TotalPoints(),
		Questions:    make([]StudentQuestionView, 0, len(test.Questions)),
	}
	if deadline, ok := test.Deadline(attempt.StartedAt); ok {
		view.Deadline = &deadline
	}

	rng := rand.New(rand.NewSource(seedOf(attempt.ID)))
	for _, q := range test.Questions {
		qv := StudentQuestionView{
			ID:         q.ID,
			Type:       q.Type,
			Text:       q.Text,
			Points:     q.Points,
			Difficulty: q.Difficulty,
			TimeLimit:  q.TimeLimit,
		}
		for _, o := range q.Options {
			qv.Options = append(qv.Options, o.Text)
		}
		// 判断题选项顺序固定
		if test.Settings.ShuffleOptions && q.Type == model.MultipleChoice {
			rng.Shuffle(len(qv.Options), func(i, j int) {
				qv.Options[i], qv.Options[j] = qv.Options[j], qv.Options[i]
			})
		}
		view.Questions = append(view.Questions, qv)
	}
	if test.Settings.ShuffleQuestions {
		rng.Shuffle(len(view.Questions), func(i, j int) {
			view.Questions[i], view.Questions[j] = view.Questions[j], view.Questions[i]
		})
	}
	return view
}

func seedOf(id string) int64 {
	h := fnv.New64a()
	h.Write([]byte(id))
	return int64(h.Sum64())
}

// AttemptSummary 答题记录摘要，用于列表与完成结果
type AttemptSummary struct {
	ID            string               `json:"id"`
	TestID        string               `json:"testId"`
	StudentID     uint                 `json:"studentId"`
	AttemptNumber int                  `json:"attemptNumber"`
	Status        model.AttemptStatus  `json:"status"`
	Score         int                  `json:"score"`
	TotalPoints   int                  `json:"totalPoints"`
	EarnedPoints  int                  `json:"earnedPoints"`
	IsPassed      bool                 `json:"isPassed"`
	StartedAt     time.Time            `json:"startedAt"`
	CompletedAt   *time.Time           `json:"completedAt,omitempty"`
	TimeSpent     int                  `json:"timeSpent"`
	Results       model.AttemptResults `json:"results"`
}

func NewAttemptSummary(attempt *model.TestAttempt, passingScore int) AttemptSummary {
	return AttemptSummary{
		ID:            attempt.ID,
		TestID:        attempt.TestID,
		StudentID:     attempt.StudentID,
		AttemptNumber: attempt.AttemptNumber,
		Status:        attempt.Status,
		Score:         attempt.Score,
		TotalPoints:   attempt.TotalPoints,
		EarnedPoints:  attempt.EarnedPoints,
		IsPassed:      attempt.Status == model.AttemptCompleted && attempt.Score >= passingScore,
		StartedAt:     attempt.StartedAt,
		CompletedAt:   attempt.CompletedAt,
		TimeSpent:     attempt.TimeSpent,
		Results:       attempt.Results.Data(),
	}
}

// AnswerResult 单题提交后的返回
type AnswerResult struct {
	QuestionID   string `json:"questionId"`
	IsCorrect    bool   `json:"isCorrect"`
	Points       int    `json:"points"`
	Score        int    `json:"score"`
	TotalPoints  int    `json:"totalPoints"`
	EarnedPoints int    `json:"earnedPoints"`
	Answered     int    `json:"answered"`
}

type StartResult struct {
	Attempt AttemptSummary  `json:"attempt"`
	Test    StudentTestView `json:"test"`
}

type ReviewItem struct {
	QuestionID    string             `json:"questionId"`
	Type          model.QuestionType `json:"type"`
	Text          string             `json:"text"`
	Answer        string             `json:"answer"`
	IsCorrect     *bool              `json:"isCorrect,omitempty"`
	Points        *int               `json:"points,omitempty"`
	MaxPoints     int                `json:"maxPoints"`
	CorrectAnswer string             `json:"correctAnswer,omitempty"`
	Explanation   string             `json:"explanation,omitempty"`
}

// AttemptDetail 单次答题详情；review 受测验设置控制
type AttemptDetail struct {
	AttemptSummary
	Review []ReviewItem `json:"review,omitempty"`
}

// NewAttemptDetail 进行中的答题只回显答案文本；讲师视角不受设置限制
func NewAttemptDetail(test *model.Test, attempt *model.TestAttempt, privileged bool) AttemptDetail {
	detail := AttemptDetail{AttemptSummary: NewAttemptSummary(attempt, test.Settings.PassingScore)}
	finished := attempt.Status.IsTerminal()
	settings := test.Settings

	if !privileged && finished && !settings.AllowReview {
		return detail
	}

	showCorrectness := privileged || finished
	showCorrect := privileged || (finished && settings.ShowCorrectAnswers)
	showExplanation := privileged || (finished && settings.ShowExplanations)

	for _, q := range test.Questions {
		item := ReviewItem{
			QuestionID: q.ID,
			Type:       q.Type,
			Text:       q.Text,
			MaxPoints:  q.Points,
		}
		if a, ok := attempt.FindAnswer(q.ID); ok {
			item.Answer = a.Answer
			if showCorrectness {
				isCorrect, points := a.IsCorrect, a.Points
				item.IsCorrect, item.Points = &isCorrect, &points
			}
		}
		if showCorrect {
			item.CorrectAnswer = q.CorrectText()
		}
		if showExplanation {
			item.Explanation = q.Explanation
		}
		detail.Review = append(detail.Review, item)
	}
	return detail
}
