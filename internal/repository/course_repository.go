package repository

import (
	"context"
	"edu_testing_backend/internal/model"
	"edu_testing_backend/internal/util"

	"gorm.io/gorm"
)

type CourseRepository struct {
	DB *gorm.DB
}

func NewCourseRepository(db *gorm.DB) *CourseRepository {
	return &CourseRepository{DB: db}
}

func (r *CourseRepository) CreateCourse(ctx context.Context, course *model.Course) error {
	return translate(conn(ctx, r.DB).Create(course).Error, nil, nil)
}

func (r *CourseRepository) FindCourseByID(ctx context.Context, id uint) (*model.Course, error) {
	var course model.Course
	if err := conn(ctx, r.DB).First(&course, id).Error; err != nil {
		return nil, translate(err, util.ErrCourseNotFound, nil)
	}
	return &course, nil
}

func (r *CourseRepository) ListCourses(ctx context.Context, instructorID uint) ([]model.Course, error) {
	var courses []model.Course
	query := conn(ctx, r.DB).Order("created_at desc")
	if instructorID > 0 {
		query = query.Where("instructor_id = ?", instructorID)
	}
	err := query.Find(&courses).Error
	return courses, translate(err, nil, nil)
}

func (r *CourseRepository) CreateEnrollment(ctx context.Context, enrollment *model.Enrollment) error {
	return translate(conn(ctx, r.DB).Create(enrollment).Error, nil, util.ErrAlreadyEnrolled)
}

// FindEnrollment 不存在时返回 (nil, nil)
func (r *CourseRepository) FindEnrollment(ctx context.Context, courseID, studentID uint) (*model.Enrollment, error) {
	var enrollments []model.Enrollment
	err := conn(ctx, r.DB).
		Where("course_id = ? AND student_id = ?", courseID, studentID).
		Limit(1).
		Find(&enrollments).Error
	if err != nil {
		return nil, translate(err, nil, nil)
	}
	if len(enrollments) == 0 {
		return nil, nil
	}
	return &enrollments[0], nil
}

func (r *CourseRepository) UpdateEnrollmentStatus(ctx context.Context, id uint, status model.EnrollmentStatus) error {
	err := conn(ctx, r.DB).Model(&model.Enrollment{}).Where("id = ?", id).Update("status", status).Error
	return translate(err, nil, nil)
}
