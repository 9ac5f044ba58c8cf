package service

import (
	"context"
	"edu_testing_backend/internal/model"
	"time"
)

// 服务层依赖的存储接口，启动时注入具体的 gorm 仓储，单元测试注入内存实现

type UserStore interface {
	Create(ctx context.Context, user *model.User) error
	FindByID(ctx context.Context, id uint) (*model.User, error)
	FindByEmail(ctx context.Context, email string) (*model.User, error)
	UpdateLastLogin(ctx context.Context, id uint, at time.Time) error
}

type CourseStore interface {
	CreateCourse(ctx context.Context, course *model.Course) error
	FindCourseByID(ctx context.Context, id uint) (*model.Course, error)
	ListCourses(ctx context.Context, instructorID uint) ([]model.Course, error)
	CreateEnrollment(ctx context.Context, enrollment *model.Enrollment) error
	FindEnrollment(ctx context.Context, courseID, studentID uint) (*model.Enrollment, error)
	UpdateEnrollmentStatus(ctx context.Context, id uint, status model.EnrollmentStatus) error
}

type TestStore interface {
	Create(ctx context.Context, test *model.Test) error
	FindByID(ctx context.Context, id string) (*model.Test, error)
	ListByCourse(ctx context.Context, courseID uint, publishedOnly bool) ([]model.Test, error)
	Update(ctx context.Context, test *model.Test) error
	ReplaceQuestions(ctx context.Context, testID string, questions []model.TestQuestion) error
	// LockForStatistics 在当前事务中锁住测验行（不含题目），统计写入以此串行
	LockForStatistics(ctx context.Context, id string) (*model.Test, error)
	UpdateStatistics(ctx context.Context, testID string, stats model.TestStatistics) error
	Delete(ctx context.Context, id string) error
}

type AttemptStore interface {
	Create(ctx context.Context, attempt *model.TestAttempt) error
	FindByID(ctx context.Context, id string) (*model.TestAttempt, error)
	ListByStudentAndTest(ctx context.Context, studentID uint, testID string) ([]model.TestAttempt, error)
	ListByTest(ctx context.Context, testID string) ([]model.TestAttempt, error)
	ListByTestLocked(ctx context.Context, testID string) ([]model.TestAttempt, error)
	ListInProgress(ctx context.Context, startedBefore time.Time) ([]model.TestAttempt, error)
	CountByTest(ctx context.Context, testID string) (int64, error)
	SaveAnswer(ctx context.Context, attempt *model.TestAttempt, answer *model.AttemptAnswer) error
	UpdateState(ctx context.Context, attempt *model.TestAttempt) error
}

type Transactor interface {
	WithinTransaction(ctx context.Context, fn func(ctx context.Context) error) error
}

type TestCache interface {
	Get(ctx context.Context, id string) (*model.Test, bool)
	Set(ctx context.Context, test *model.Test)
	Invalidate(ctx context.Context, id string)
}

// 外部协作方：选课与课程归属

type EnrollmentChecker interface {
	IsEnrolled(ctx context.Context, studentID, courseID uint) (bool, error)
}

type CourseDirectory interface {
	GetCourseInstructor(ctx context.Context, courseID uint) (uint, error)
}
