package service

import (
	"context"
	"edu_testing_backend/internal/model"
	"edu_testing_backend/internal/util"
	"edu_testing_backend/pkg/logger"
	"strings"
	"time"

	"go.uber.org/zap"
)

type TestService struct {
	Repo     TestStore
	Attempts AttemptStore
	Courses  CourseDirectory
	Cache    TestCache
	Tx       Transactor
	Now      func() time.Time
}

func NewTestService(repo TestStore, attempts AttemptStore, courses CourseDirectory, cache TestCache, tx Transactor) *TestService {
	return &TestService{
		Repo:     repo,
		Attempts: attempts,
		Courses:  courses,
		Cache:    cache,
		Tx:       tx,
		Now:      time.Now,
	}
}

type CreateTestReq struct {
	CourseID       uint                `json:"courseId" binding:"required"`
	Title          string              `json:"title"`
	Description    string              `json:"description"`
	Questions      []QuestionReq       `json:"questions"`
	Settings       *model.TestSettings `json:"settings"`
	AvailableFrom  *time.Time          `json:"availableFrom"`
	AvailableUntil *time.Time          `json:"availableUntil"`
}

// UpdateTestReq 为 nil 的字段保持不变
type UpdateTestReq struct {
	Title          *string             `json:"title"`
	Description    *string             `json:"description"`
	Questions      *[]QuestionReq      `json:"questions"`
	Settings       *model.TestSettings `json:"settings"`
	AvailableFrom  *time.Time          `json:"availableFrom"`
	AvailableUntil *time.Time          `json:"availableUntil"`
	ClearWindow    bool                `json:"clearWindow"`
}

type PublishReq struct {
	Published bool  `json:"published"`
	Active    *bool `json:"active"`
}

// authorizeInstructor 管理员或课程讲师
func (s *TestService) authorizeInstructor(ctx context.Context, callerID uint, role model.UserRole, courseID uint) error {
	if role == model.Admin {
		// 课程必须存在
		_, err := s.Courses.GetCourseInstructor(ctx, courseID)
		return err
	}
	if role != model.Teacher {
		return util.ErrPermissionDenied
	}
	instructorID, err := s.Courses.GetCourseInstructor(ctx, courseID)
	if err != nil {
		return err
	}
	if instructorID != callerID {
		return util.ErrPermissionDenied
	}
	return nil
}

func (s *TestService) CreateTest(ctx context.Context, callerID uint, role model.UserRole, req CreateTestReq) (*model.Test, error) {
	if err := s.authorizeInstructor(ctx, callerID, role, req.CourseID); err != nil {
		return nil, err
	}

	settings := model.DefaultTestSettings()
	if req.Settings != nil {
		settings = *req.Settings
	}
	questionReqs := withoutIDs(req.Questions)
	if err := validateTestContent(req.Title, questionReqs, settings, req.AvailableFrom, req.AvailableUntil, nil); err != nil {
		return nil, err
	}

	test := &model.Test{
		CourseID:       req.CourseID,
		InstructorID:   callerID,
		Title:          strings.TrimSpace(req.Title),
		Description:    req.Description,
		Settings:       settings,
		IsPublished:    false,
		IsActive:       true,
		AvailableFrom:  req.AvailableFrom,
		AvailableUntil: req.AvailableUntil,
	}
	test.EnsureID()
	test.Questions = buildQuestions(questionReqs)
	for i := range test.Questions {
		test.Questions[i].TestID = test.ID
	}

	if err := s.Repo.Create(ctx, test); err != nil {
		return nil, err
	}

	logger.Log.Info("test created",
		zap.String("testId", test.ID),
		zap.Uint("courseId", test.CourseID),
		zap.Uint("instructorId", callerID),
		zap.Int("questions", len(test.Questions)),
	)
	return test, nil
}

// GetTest 读穿缓存；返回完整定义（含标准答案），仅供内部与讲师使用
func (s *TestService) GetTest(ctx context.Context, id string) (*model.Test, error) {
	if test, ok := s.Cache.Get(ctx, id); ok {
		return test, nil
	}
	test, err := s.Repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	s.Cache.Set(ctx, test)
	return test, nil
}

func (s *TestService) GetTestForInstructor(ctx context.Context, callerID uint, role model.UserRole, id string) (*model.Test, error) {
	test, err := s.GetTest(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := s.authorizeInstructor(ctx, callerID, role, test.CourseID); err != nil {
		return nil, err
	}
	return test, nil
}

// ListCourseTests 学生只能看到已发布且启用的测验
func (s *TestService) ListCourseTests(ctx context.Context, callerID uint, role model.UserRole, courseID uint) ([]model.Test, error) {
	if role == model.Student {
		return s.Repo.ListByCourse(ctx, courseID, true)
	}
	if err := s.authorizeInstructor(ctx, callerID, role, courseID); err != nil {
		return nil, err
	}
	return s.Repo.ListByCourse(ctx, courseID, false)
}

// UpdateTest 一旦产生答题记录即锁定内容与设置
func (s *TestService) UpdateTest(ctx context.Context, callerID uint, role model.UserRole, id string, req UpdateTestReq) (*model.Test, error) {
	var updated *model.Test
	err := s.Tx.WithinTransaction(ctx, func(ctx context.Context) error {
		test, err := s.Repo.FindByID(ctx, id)
		if err != nil {
			return err
		}
		if err := s.authorizeInstructor(ctx, callerID, role, test.CourseID); err != nil {
			return err
		}
		count, err := s.Attempts.CountByTest(ctx, id)
		if err != nil {
			return err
		}
		if count > 0 {
			return util.ErrTestLocked
		}

		if req.Title != nil {
			test.Title = strings.TrimSpace(*req.Title)
		}
		if req.Description != nil {
			test.Description = *req.Description
		}
		if req.Settings != nil {
			test.Settings = *req.Settings
		}
		if req.ClearWindow {
			test.AvailableFrom, test.AvailableUntil = nil, nil
		}
		if req.AvailableFrom != nil {
			test.AvailableFrom = req.AvailableFrom
		}
		if req.AvailableUntil != nil {
			test.AvailableUntil = req.AvailableUntil
		}

		questionReqs := questionReqsOf(test.Questions)
		if req.Questions != nil {
			questionReqs = *req.Questions
		}
		ownIDs := questionIDSet(test.Questions)
		if err := validateTestContent(test.Title, questionReqs, test.Settings, test.AvailableFrom, test.AvailableUntil, ownIDs); err != nil {
			return err
		}

		if err := s.Repo.Update(ctx, test); err != nil {
			return err
		}
		if req.Questions != nil {
			test.Questions = buildQuestions(questionReqs)
			if err := s.Repo.ReplaceQuestions(ctx, test.ID, test.Questions); err != nil {
				return err
			}
		}
		updated = test
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.Cache.Invalidate(ctx, id)
	logger.Log.Info("test updated", zap.String("testId", id), zap.Uint("callerId", callerID))
	return updated, nil
}

func (s *TestService) SetPublished(ctx context.Context, callerID uint, role model.UserRole, id string, req PublishReq) (*model.Test, error) {
	test, err := s.Repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := s.authorizeInstructor(ctx, callerID, role, test.CourseID); err != nil {
		return nil, err
	}

	test.IsPublished = req.Published
	if req.Active != nil {
		test.IsActive = *req.Active
	}
	if err := s.Repo.Update(ctx, test); err != nil {
		return nil, err
	}
	s.Cache.Invalidate(ctx, id)

	logger.Log.Info("test publication changed",
		zap.String("testId", id),
		zap.Bool("published", test.IsPublished),
		zap.Bool("active", test.IsActive),
	)
	return test, nil
}

// DeleteTest 已有答题记录的测验不可删除
func (s *TestService) DeleteTest(ctx context.Context, callerID uint, role model.UserRole, id string) error {
	err := s.Tx.WithinTransaction(ctx, func(ctx context.Context) error {
		test, err := s.Repo.FindByID(ctx, id)
		if err != nil {
			return err
		}
		if err := s.authorizeInstructor(ctx, callerID, role, test.CourseID); err != nil {
			return err
		}
		count, err := s.Attempts.CountByTest(ctx, id)
		if err != nil {
			return err
		}
		if count > 0 {
			return util.ErrTestLocked
		}
		return s.Repo.Delete(ctx, id)
	})
	if err != nil {
		return err
	}
	s.Cache.Invalidate(ctx, id)
	return nil
}

func questionReqsOf(questions []model.TestQuestion) []QuestionReq {
	reqs := make([]QuestionReq, len(questions))
	for i, q := range questions {
		reqs[i] = QuestionReq{
			ID:            q.ID,
			Type:          q.Type,
			Text:          q.Text,
			Options:       q.Options,
			CorrectAnswer: q.CorrectAnswer,
			Points:        q.Points,
			Difficulty:    q.Difficulty,
			TimeLimit:     q.TimeLimit,
			Explanation:   q.Explanation,
		}
	}
	return reqs
}
