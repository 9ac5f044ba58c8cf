package model

import "time"

// swagger:model Course
type Course struct {
	BaseModel
	Title        string `gorm:"size:255;not null" json:"title"`
	Description  string `gorm:"type:text" json:"description"`
	InstructorID uint   `gorm:"index;type:bigint unsigned;not null" json:"instructorId"`
}

func (Course) TableName() string {
	return "courses"
}

type EnrollmentStatus string

const (
	EnrollmentActive    EnrollmentStatus = "active"
	EnrollmentCancelled EnrollmentStatus = "cancelled"
)

// Enrollment 学生与课程的选课关系，决定学生能否参加该课程的测验
type Enrollment struct {
	BaseModel
	CourseID   uint             `gorm:"uniqueIndex:idx_enrollment_course_student;type:bigint unsigned;not null" json:"courseId"`
	StudentID  uint             `gorm:"uniqueIndex:idx_enrollment_course_student;type:bigint unsigned;not null" json:"studentId"`
	Status     EnrollmentStatus `gorm:"size:20;default:'active'" json:"status"`
	EnrolledAt time.Time        `json:"enrolledAt"`
}

func (Enrollment) TableName() string {
	return "enrollments"
}
