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

// CourseService 课程与选课，只提供测验模块需要的最小能力
type CourseService struct {
	Repo  CourseStore
	Users UserStore
	Now   func() time.Time
}

func NewCourseService(repo CourseStore, users UserStore) *CourseService {
	return &CourseService{Repo: repo, Users: users, Now: time.Now}
}

type CreateCourseReq struct {
	Title        string `json:"title" binding:"required"`
	Description  string `json:"description"`
	InstructorID uint   `json:"instructorId"` // 仅管理员可指定
}

func (s *CourseService) CreateCourse(ctx context.Context, callerID uint, role model.UserRole, req CreateCourseReq) (*model.Course, error) {
	if strings.TrimSpace(req.Title) == "" {
		return nil, util.NewValidationError("title", "is required")
	}
	if role != model.Teacher && role != model.Admin {
		return nil, util.ErrPermissionDenied
	}

	instructorID := callerID
	if role == model.Admin && req.InstructorID > 0 {
		instructor, err := s.Users.FindByID(ctx, req.InstructorID)
		if err != nil {
			return nil, err
		}
		if instructor.Role != model.Teacher && instructor.Role != model.Admin {
			return nil, util.NewValidationError("instructorId", "user is not a teacher")
		}
		instructorID = instructor.ID
	}

	course := &model.Course{
		Title:        strings.TrimSpace(req.Title),
		Description:  req.Description,
		InstructorID: instructorID,
	}
	if err := s.Repo.CreateCourse(ctx, course); err != nil {
		return nil, err
	}
	return course, nil
}

func (s *CourseService) GetCourse(ctx context.Context, id uint) (*model.Course, error) {
	return s.Repo.FindCourseByID(ctx, id)
}

// ListCourses 教师只看到自己的课程
func (s *CourseService) ListCourses(ctx context.Context, callerID uint, role model.UserRole) ([]model.Course, error) {
	if role == model.Teacher {
		return s.Repo.ListCourses(ctx, callerID)
	}
	return s.Repo.ListCourses(ctx, 0)
}

// Enroll 由管理员或课程讲师为学生选课；已取消的选课会被重新激活
func (s *CourseService) Enroll(ctx context.Context, callerID uint, role model.UserRole, courseID, studentID uint) (*model.Enrollment, error) {
	course, err := s.Repo.FindCourseByID(ctx, courseID)
	if err != nil {
		return nil, err
	}
	if role != model.Admin && course.InstructorID != callerID {
		return nil, util.ErrPermissionDenied
	}

	student, err := s.Users.FindByID(ctx, studentID)
	if err != nil {
		return nil, err
	}
	if student.Role != model.Student {
		return nil, util.NewValidationError("studentId", "user is not a student")
	}

	existing, err := s.Repo.FindEnrollment(ctx, courseID, studentID)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		if existing.Status == model.EnrollmentActive {
			return nil, util.ErrAlreadyEnrolled
		}
		if err := s.Repo.UpdateEnrollmentStatus(ctx, existing.ID, model.EnrollmentActive); err != nil {
			return nil, err
		}
		existing.Status = model.EnrollmentActive
		return existing, nil
	}

	enrollment := &model.Enrollment{
		CourseID:   courseID,
		StudentID:  studentID,
		Status:     model.EnrollmentActive,
		EnrolledAt: s.Now(),
	}
	if err := s.Repo.CreateEnrollment(ctx, enrollment); err != nil {
		return nil, err
	}

	logger.Log.Info("student enrolled",
		zap.Uint("courseId", courseID),
		zap.Uint("studentId", studentID),
	)
	return enrollment, nil
}

func (s *CourseService) CancelEnrollment(ctx context.Context, callerID uint, role model.UserRole, courseID, studentID uint) error {
	course, err := s.Repo.FindCourseByID(ctx, courseID)
	if err != nil {
		return err
	}
	if role != model.Admin && course.InstructorID != callerID {
		return util.ErrPermissionDenied
	}
	existing, err := s.Repo.FindEnrollment(ctx, courseID, studentID)
	if err != nil {
		return err
	}
	if existing == nil || existing.Status != model.EnrollmentActive {
		return util.ErrNotEnrolled
	}
	return s.Repo.UpdateEnrollmentStatus(ctx, existing.ID, model.EnrollmentCancelled)
}

// IsEnrolled 外部事实：学生是否持有该课程的有效选课
func (s *CourseService) IsEnrolled(ctx context.Context, studentID, courseID uint) (bool, error) {
	enrollment, err := s.Repo.FindEnrollment(ctx, courseID, studentID)
	if err != nil {
		return false, err
	}
	return enrollment != nil && enrollment.Status == model.EnrollmentActive, nil
}

func (s *CourseService) GetCourseInstructor(ctx context.Context, courseID uint) (uint, error) {
	course, err := s.Repo.FindCourseByID(ctx, courseID)
	if err != nil {
		return 0, err
	}
	return course.InstructorID, nil
}
