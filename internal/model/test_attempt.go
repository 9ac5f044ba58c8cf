package model

import (
	"time"

	"gorm.io/datatypes"
)

type AttemptStatus string

const (
	AttemptInProgress AttemptStatus = "in_progress"
	AttemptCompleted  AttemptStatus = "completed"
	AttemptAbandoned  AttemptStatus = "abandoned"
	AttemptTimeout    AttemptStatus = "timeout"
)

// IsTerminal 终态不可再恢复为进行中
func (s AttemptStatus) IsTerminal() bool {
	return s == AttemptCompleted || s == AttemptAbandoned || s == AttemptTimeout
}

type DifficultyResult struct {
	Total        int `json:"total"`
	Answered     int `json:"answered"`
	Correct      int `json:"correct"`
	TotalPoints  int `json:"totalPoints"`
	EarnedPoints int `json:"earnedPoints"`
}

// AttemptResults 每次重算得分时一并刷新
type AttemptResults struct {
	CorrectAnswers      int                             `json:"correctAnswers"`
	IncorrectAnswers    int                             `json:"incorrectAnswers"`
	UnansweredQuestions int                             `json:"unansweredQuestions"`
	ByDifficulty        map[Difficulty]DifficultyResult `json:"byDifficulty"`
}

// swagger:model TestAttempt
type TestAttempt struct {
	UUIDBase
	TestID        string                             `gorm:"type:varchar(36);not null;index;uniqueIndex:idx_attempt_student_test_number,priority:2" json:"testId"`
	StudentID     uint                               `gorm:"type:bigint unsigned;not null;uniqueIndex:idx_attempt_student_test_number,priority:1" json:"studentId"`
	AttemptNumber int                                `gorm:"not null;uniqueIndex:idx_attempt_student_test_number,priority:3" json:"attemptNumber"`
	Status        AttemptStatus                      `gorm:"size:20;not null;index" json:"status"`
	Score         int                                `gorm:"default:0" json:"score"`
	TotalPoints   int                                `gorm:"default:0" json:"totalPoints"`
	EarnedPoints  int                                `gorm:"default:0" json:"earnedPoints"`
	StartedAt     time.Time                          `json:"startedAt"`
	CompletedAt   *time.Time                         `json:"completedAt,omitempty"`
	TimeSpent     int                                `gorm:"default:0" json:"timeSpent"` // 分钟
	Results       datatypes.JSONType[AttemptResults] `json:"results"`
	Answers       []AttemptAnswer                    `gorm:"foreignKey:AttemptID" json:"answers,omitempty"`
	Version       int                                `gorm:"not null;default:1" json:"-"`
}

func (TestAttempt) TableName() string {
	return "test_attempts"
}

func (a *TestAttempt) FindAnswer(questionID string) (*AttemptAnswer, bool) {
	for i := range a.Answers {
		if a.Answers[i].QuestionID == questionID {
			return &a.Answers[i], true
		}
	}
	return nil, false
}

// AttemptAnswer 每道题最多一条，重复提交覆盖原记录
type AttemptAnswer struct {
	UUIDBase
	AttemptID  string     `gorm:"type:varchar(36);not null;uniqueIndex:idx_answer_attempt_question" json:"attemptId"`
	QuestionID string     `gorm:"type:varchar(36);not null;uniqueIndex:idx_answer_attempt_question" json:"questionId"`
	Answer     string     `gorm:"type:text" json:"answer"`
	IsCorrect  bool       `gorm:"default:false" json:"isCorrect"`
	Points     int        `gorm:"default:0" json:"points"`    // 实得分
	MaxPoints  int        `gorm:"default:0" json:"maxPoints"` // 题目满分
	Difficulty Difficulty `gorm:"size:10" json:"difficulty"`
	TimeSpent  int        `gorm:"default:0" json:"timeSpent"` // 秒
	AnsweredAt time.Time  `json:"answeredAt"`
}

func (AttemptAnswer) TableName() string {
	return "test_attempt_answers"
}
