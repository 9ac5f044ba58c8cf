package model

import (
	"time"

	"gorm.io/datatypes"
)

type QuestionType string

const (
	MultipleChoice QuestionType = "multiple_choice"
	TrueFalse      QuestionType = "true_false"
	FillBlank      QuestionType = "fill_blank"
	ShortAnswer    QuestionType = "short_answer"
)

func (t QuestionType) Valid() bool {
	switch t {
	case MultipleChoice, TrueFalse, FillBlank, ShortAnswer:
		return true
	}
	return false
}

// UsesOptions 选择/判断题以选项上的 isCorrect 为准，填空/简答以 correctAnswer 为准
func (t QuestionType) UsesOptions() bool {
	return t == MultipleChoice || t == TrueFalse
}

type Difficulty string

const (
	Easy   Difficulty = "easy"
	Medium Difficulty = "medium"
	Hard   Difficulty = "hard"
)

func (d Difficulty) Valid() bool {
	return d == Easy || d == Medium || d == Hard
}

type QuestionOption struct {
	Text      string `json:"text"`
	IsCorrect bool   `json:"isCorrect"`
}

// TestSettings 评分与计时设置
type TestSettings struct {
	Duration           int  `gorm:"default:0" json:"duration" validate:"gte=0,lte=1440"` // 分钟
	PassingScore       int  `gorm:"default:0" json:"passingScore" validate:"gte=0,lte=100"`
	MaxAttempts        int  `gorm:"default:1" json:"maxAttempts" validate:"gte=1,lte=100"`
	ShuffleQuestions   bool `json:"shuffleQuestions"`
	ShuffleOptions     bool `json:"shuffleOptions"`
	ShowCorrectAnswers bool `json:"showCorrectAnswers"`
	ShowExplanations   bool `json:"showExplanations"`
	AllowReview        bool `json:"allowReview"`
	TimeLimit          bool `json:"timeLimit"` // 是否强制 duration
}

func DefaultTestSettings() TestSettings {
	return TestSettings{
		Duration:     30,
		PassingScore: 60,
		MaxAttempts:  1,
		AllowReview:  true,
	}
}

// TestStatistics 由答题记录推导出的缓存字段，只允许系统写入
type TestStatistics struct {
	TotalAttempts int `gorm:"default:0" json:"totalAttempts"`
	AverageScore  int `gorm:"default:0" json:"averageScore"`
	PassRate      int `gorm:"default:0" json:"passRate"`
}

// swagger:model Test
type Test struct {
	UUIDBase
	CourseID       uint           `gorm:"index;type:bigint unsigned;not null" json:"courseId"`
	InstructorID   uint           `gorm:"index;type:bigint unsigned;not null" json:"instructorId"`
	Title          string         `gorm:"size:255;not null" json:"title"`
	Description    string         `gorm:"type:text" json:"description"`
	Questions      []TestQuestion `gorm:"foreignKey:TestID" json:"questions,omitempty"`
	Settings       TestSettings   `gorm:"embedded;embeddedPrefix:setting_" json:"settings"`
	IsPublished    bool           `gorm:"not null" json:"isPublished"`
	IsActive       bool           `gorm:"not null" json:"isActive"`
	AvailableFrom  *time.Time     `json:"availableFrom,omitempty"`
	AvailableUntil *time.Time     `json:"availableUntil,omitempty"`
	TestStatistics
}

func (Test) TableName() string {
	return "tests"
}

// IsAvailableForStudent 已发布、已启用且在开放时间窗口内；未设置的边界视为不限
func (t *Test) IsAvailableForStudent(now time.Time) bool {
	if !t.IsPublished || !t.IsActive {
		return false
	}
	if t.AvailableFrom != nil && now.Before(*t.AvailableFrom) {
		return false
	}
	if t.AvailableUntil != nil && now.After(*t.AvailableUntil) {
		return false
	}
	return true
}

func (t *Test) FindQuestion(id string) (*TestQuestion, bool) {
	for i := range t.Questions {
		if t.Questions[i].ID == id {
			return &t.Questions[i], true
		}
	}
	return nil, false
}

func (t *Test) TotalPoints() int {
	total := 0
	for _, q := range t.Questions {
		total += q.Points
	}
	return total
}

// Deadline 仅在开启 timeLimit 且 duration > 0 时有效
func (t *Test) Deadline(startedAt time.Time) (time.Time, bool) {
	if !t.Settings.TimeLimit || t.Settings.Duration <= 0 {
		return time.Time{}, false
	}
	return startedAt.Add(time.Duration(t.Settings.Duration) * time.Minute), true
}

// swagger:model TestQuestion
type TestQuestion struct {
	UUIDBase
	TestID        string                              `gorm:"index;type:varchar(36);not null" json:"testId"`
	Type          QuestionType                        `gorm:"size:30;not null" json:"type"`
	Text          string                              `gorm:"type:text;not null" json:"text"`
	Options       datatypes.JSONSlice[QuestionOption] `json:"options,omitempty"`
	CorrectAnswer string                              `gorm:"type:text" json:"correctAnswer,omitempty"`
	Points        int                                 `gorm:"default:1" json:"points"`
	Difficulty    Difficulty                          `gorm:"size:10;default:'medium'" json:"difficulty"`
	TimeLimit     int                                 `gorm:"default:0" json:"timeLimit"` // 秒
	Explanation   string                              `gorm:"type:text" json:"explanation,omitempty"`
	Order         int                                 `gorm:"column:sort_order;default:0" json:"order"`
}

func (TestQuestion) TableName() string {
	return "test_questions"
}

// CorrectText 返回用于回显的标准答案
func (q *TestQuestion) CorrectText() string {
	if !q.Type.UsesOptions() {
		return q.CorrectAnswer
	}
	for _, o := range q.Options {
		if o.IsCorrect {
			return o.Text
		}
	}
	return ""
}
