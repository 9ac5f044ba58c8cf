package service

import (
	"edu_testing_backend/internal/model"
	"edu_testing_backend/internal/util"
	"errors"
	"fmt"
	"reflect"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	// 校验错误使用 json 字段名，方便前端定位
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

type QuestionReq struct {
	ID            string                 `json:"id"`
	Type          model.QuestionType     `json:"type"`
	Text          string                 `json:"text"`
	Options       []model.QuestionOption `json:"options"`
	CorrectAnswer string                 `json:"correctAnswer"`
	Points        int                    `json:"points"`
	Difficulty    model.Difficulty       `json:"difficulty"`
	TimeLimit     int                    `json:"timeLimit"`
	Explanation   string                 `json:"explanation"`
}

// validateTestContent 收集所有违规项后一次性返回；ownIDs 为该测验已有的题目 ID，
// 请求中的题目 ID 只能取自其中
func validateTestContent(title string, questions []QuestionReq, settings model.TestSettings, from, until *time.Time, ownIDs map[string]bool) error {
	verr := &util.ValidationError{}

	if strings.TrimSpace(title) == "" {
		verr.Add("title", "is required")
	}

	if err := validate.Struct(settings); err != nil {
		var fieldErrs validator.ValidationErrors
		if errors.As(err, &fieldErrs) {
			for _, fe := range fieldErrs {
				verr.Add("settings."+fe.Field(), describeTag(fe))
			}
		} else {
			verr.Add("settings", err.Error())
		}
	}

	if from != nil && until != nil && !from.Before(*until) {
		verr.Add("availableUntil", "must be after availableFrom")
	}

	if len(questions) == 0 {
		verr.Add("questions", "at least one question is required")
	}

	seen := make(map[string]bool, len(questions))
	for i, q := range questions {
		validateQuestion(verr, fmt.Sprintf("questions[%d]", i), q)
		if q.ID == "" {
			continue
		}
		field := fmt.Sprintf("questions[%d].id", i)
		switch {
		case !ownIDs[q.ID]:
			verr.Add(field, "does not belong to this test")
		case seen[q.ID]:
			verr.Add(field, "duplicate question id")
		}
		seen[q.ID] = true
	}

	return verr.OrNil()
}

func validateQuestion(verr *util.ValidationError, prefix string, q QuestionReq) {
	if strings.TrimSpace(q.Text) == "" {
		verr.Add(prefix+".text", "is required")
	}
	if !q.Type.Valid() {
		verr.Add(prefix+".type", "must be one of multiple_choice, true_false, fill_blank, short_answer")
	}
	if q.Difficulty != "" && !q.Difficulty.Valid() {
		verr.Add(prefix+".difficulty", "must be one of easy, medium, hard")
	}
	if q.Points < 0 {
		verr.Add(prefix+".points", "must be at least 1")
	}
	if q.TimeLimit < 0 {
		verr.Add(prefix+".timeLimit", "must not be negative")
	}

	switch q.Type {
	case model.MultipleChoice:
		if len(q.Options) < 2 {
			verr.Add(prefix+".options", "multiple_choice requires at least 2 options")
		}
		if countCorrect(q.Options) == 0 {
			verr.Add(prefix+".options", "multiple_choice requires at least one correct option")
		}
		for j, o := range q.Options {
			if strings.TrimSpace(o.Text) == "" {
				verr.Add(fmt.Sprintf("%s.options[%d].text", prefix, j), "is required")
			}
		}
	case model.TrueFalse:
		if len(q.Options) < 2 {
			verr.Add(prefix+".options", "true_false requires at least 2 options")
		}
		if countCorrect(q.Options) != 1 {
			verr.Add(prefix+".options", "true_false requires exactly one correct option")
		}
		for j, o := range q.Options {
			if !strings.EqualFold(o.Text, "true") && !strings.EqualFold(o.Text, "false") {
				verr.Add(fmt.Sprintf("%s.options[%d].text", prefix, j), "must be true or false")
			}
		}
	case model.FillBlank, model.ShortAnswer:
		if strings.TrimSpace(q.CorrectAnswer) == "" {
			verr.Add(prefix+".correctAnswer", "is required for "+string(q.Type))
		}
	}
}

func countCorrect(options []model.QuestionOption) int {
	n := 0
	for _, o := range options {
		if o.IsCorrect {
			n++
		}
	}
	return n
}

func describeTag(fe validator.FieldError) string {
	switch fe.Tag() {
	case "gte":
		return "must be >= " + fe.Param()
	case "lte":
		return "must be <= " + fe.Param()
	case "required":
		return "is required"
	}
	return "failed " + fe.Tag()
}

// withoutIDs 新建测验时一律由服务端生成题目 ID
func withoutIDs(reqs []QuestionReq) []QuestionReq {
	out := make([]QuestionReq, len(reqs))
	for i, r := range reqs {
		r.ID = ""
		out[i] = r
	}
	return out
}

func questionIDSet(questions []model.TestQuestion) map[string]bool {
	ids := make(map[string]bool, len(questions))
	for _, q := range questions {
		ids[q.ID] = true
	}
	return ids
}

// buildQuestions 题目顺序即数组顺序；ID 需先经 validateTestContent 校验归属
func buildQuestions(reqs []QuestionReq) []model.TestQuestion {
	questions := make([]model.TestQuestion, len(reqs))
	for i, r := range reqs {
		q := model.TestQuestion{
			Type:        r.Type,
			Text:        strings.TrimSpace(r.Text),
			Points:      r.Points,
			Difficulty:  r.Difficulty,
			TimeLimit:   r.TimeLimit,
			Explanation: r.Explanation,
			Order:       i,
		}
		q.ID = r.ID
		if q.Points == 0 {
			q.Points = 1
		}
		if q.Difficulty == "" {
			q.Difficulty = model.Medium
		}
		if r.Type.UsesOptions() {
			q.Options = append(q.Options, r.Options...)
		} else {
			q.CorrectAnswer = r.CorrectAnswer
		}
		q.EnsureID()
		questions[i] = q
	}
	return questions
}
