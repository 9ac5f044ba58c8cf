package service

import (
	"edu_testing_backend/internal/model"
	"edu_testing_backend/internal/util"
	"errors"
	"math"
	"strings"
	"time"

	"gorm.io/datatypes"
)

// GradeResult 单题判分结果，不设部分得分
type GradeResult struct {
	IsCorrect bool `json:"isCorrect"`
	Points    int  `json:"points"`
}

// Grade 纯函数：相同的 (题目, 答案) 总是得到相同结果
func Grade(q *model.TestQuestion, answer string) GradeResult {
	correct := false

	switch q.Type {
	case model.MultipleChoice:
		// 选项文本精确匹配（区分大小写）
		for _, o := range q.Options {
			if o.IsCorrect && o.Text == answer {
				correct = true
				break
			}
		}
	case model.TrueFalse:
		if strings.EqualFold(answer, "true") || strings.EqualFold(answer, "false") {
			for _, o := range q.Options {
				if o.IsCorrect && strings.EqualFold(o.Text, answer) {
					correct = true
					break
				}
			}
		}
	case model.FillBlank, model.ShortAnswer:
		correct = normalizeAnswer(answer) == normalizeAnswer(q.CorrectAnswer)
	}

	if !correct {
		return GradeResult{}
	}
	return GradeResult{IsCorrect: true, Points: q.Points}
}

func normalizeAnswer(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

// RecomputeScore 根据全部答案重算得分与明细，不改变答题状态
func RecomputeScore(attempt *model.TestAttempt, questions []model.TestQuestion) {
	results := model.AttemptResults{ByDifficulty: map[model.Difficulty]model.DifficultyResult{}}
	total, earned := 0, 0

	for _, q := range questions {
		d := results.ByDifficulty[q.Difficulty]
		d.Total++
		d.TotalPoints += q.Points
		results.ByDifficulty[q.Difficulty] = d
	}

	for _, a := range attempt.Answers {
		total += a.MaxPoints
		d := results.ByDifficulty[a.Difficulty]

		empty := strings.TrimSpace(a.Answer) == ""
		switch {
		case a.IsCorrect:
			earned += a.Points
			results.CorrectAnswers++
			d.Correct++
			d.EarnedPoints += a.Points
		case !empty:
			results.IncorrectAnswers++
		default:
			results.UnansweredQuestions++
		}
		if !empty {
			d.Answered++
		}
		results.ByDifficulty[a.Difficulty] = d
	}

	// 提交过空答案的题目已在上面计入未答
	for _, q := range questions {
		if _, ok := attempt.FindAnswer(q.ID); !ok {
			results.UnansweredQuestions++
		}
	}

	attempt.TotalPoints = total
	attempt.EarnedPoints = earned
	attempt.Score = scorePercent(earned, total)
	attempt.Results = datatypes.NewJSONType(results)
}

func scorePercent(earned, total int) int {
	if total <= 0 {
		return 0
	}
	score := int(math.Round(100 * float64(earned) / float64(total)))
	if score < 0 {
		return 0
	}
	if score > 100 {
		return 100
	}
	return score
}

// UpsertAnswer 同一题目重复提交时覆盖原答案，否则追加
func UpsertAnswer(attempt *model.TestAttempt, q *model.TestQuestion, answer string, timeSpent int, now time.Time) *model.AttemptAnswer {
	grade := Grade(q, answer)

	entry, ok := attempt.FindAnswer(q.ID)
	if !ok {
		attempt.Answers = append(attempt.Answers, model.AttemptAnswer{
			AttemptID:  attempt.ID,
			QuestionID: q.ID,
		})
		entry = &attempt.Answers[len(attempt.Answers)-1]
		entry.EnsureID()
	}

	entry.Answer = answer
	entry.IsCorrect = grade.IsCorrect
	entry.Points = grade.Points
	entry.MaxPoints = q.Points
	entry.Difficulty = q.Difficulty
	entry.TimeSpent = timeSpent
	entry.AnsweredAt = now
	return entry
}

// CompleteAttempt 显式的完成状态迁移
func CompleteAttempt(attempt *model.TestAttempt, now time.Time) error {
	return closeAttempt(attempt, model.AttemptCompleted, now)
}

func closeAttempt(attempt *model.TestAttempt, status model.AttemptStatus, now time.Time) error {
	if attempt.Status != model.AttemptInProgress {
		return util.ErrAttemptNotInProgress
	}
	if !status.IsTerminal() {
		return errors.New("invalid terminal status " + string(status))
	}
	attempt.Status = status
	attempt.CompletedAt = &now
	attempt.TimeSpent = int(math.Round(now.Sub(attempt.StartedAt).Minutes()))
	if attempt.TimeSpent < 0 {
		attempt.TimeSpent = 0
	}
	return nil
}
