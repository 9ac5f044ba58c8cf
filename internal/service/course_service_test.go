package service

import (
	"edu_testing_backend/internal/model"
	"edu_testing_backend/internal/util"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateCourse(t *testing.T) {
	f := newFixture(t)

	course, err := f.courses.CreateCourse(f.ctx, f.adminID, model.Admin, CreateCourseReq{Title: "History", InstructorID: f.otherTeacher})
	require.NoError(t, err)
	assert.Equal(t, f.otherTeacher, course.InstructorID)

	_, err = f.courses.CreateCourse(f.ctx, f.adminID, model.Admin, CreateCourseReq{Title: "History", InstructorID: f.studentID})
	assert.Equal(t, util.KindValidation, util.KindOf(err))

	_, err = f.courses.CreateCourse(f.ctx, f.studentID, model.Student, CreateCourseReq{Title: "Mine"})
	assert.ErrorIs(t, err, util.ErrPermissionDenied)

	_, err = f.courses.CreateCourse(f.ctx, f.teacherID, model.Teacher, CreateCourseReq{Title: "  "})
	assert.Equal(t, util.KindValidation, util.KindOf(err))
}

func TestListCourses(t *testing.T) {
	f := newFixture(t)
	_, err := f.courses.CreateCourse(f.ctx, f.otherTeacher, model.Teacher, CreateCourseReq{Title: "Physics"})
	require.NoError(t, err)

	own, err := f.courses.ListCourses(f.ctx, f.teacherID, model.Teacher)
	require.NoError(t, err)
	require.Len(t, own, 1)
	assert.Equal(t, f.courseID, own[0].ID)

	all, err := f.courses.ListCourses(f.ctx, f.studentID, model.Student)
	require.NoError(t, err)
	assert.Len(t, all, 2)
}

func TestEnrollment(t *testing.T) {
	f := newFixture(t)

	enrolled, err := f.courses.IsEnrolled(f.ctx, f.outsiderID, f.courseID)
	require.NoError(t, err)
	assert.False(t, enrolled)

	_, err = f.courses.Enroll(f.ctx, f.otherTeacher, model.Teacher, f.courseID, f.outsiderID)
	assert.ErrorIs(t, err, util.ErrPermissionDenied)

	_, err = f.courses.Enroll(f.ctx, f.teacherID, model.Teacher, f.courseID, f.otherTeacher)
	assert.Equal(t, util.KindValidation, util.KindOf(err))

	e, err := f.courses.Enroll(f.ctx, f.adminID, model.Admin, f.courseID, f.outsiderID)
	require.NoError(t, err)
	assert.Equal(t, model.EnrollmentActive, e.Status)
	assert.Equal(t, f.now, e.EnrolledAt)

	_, err = f.courses.Enroll(f.ctx, f.teacherID, model.Teacher, f.courseID, f.outsiderID)
	assert.ErrorIs(t, err, util.ErrAlreadyEnrolled)

	require.NoError(t, f.courses.CancelEnrollment(f.ctx, f.teacherID, model.Teacher, f.courseID, f.outsiderID))
	enrolled, err = f.courses.IsEnrolled(f.ctx, f.outsiderID, f.courseID)
	require.NoError(t, err)
	assert.False(t, enrolled)

	err = f.courses.CancelEnrollment(f.ctx, f.teacherID, model.Teacher, f.courseID, f.outsiderID)
	assert.ErrorIs(t, err, util.ErrNotEnrolled)

	// 重新选课复用原记录
	again, err := f.courses.Enroll(f.ctx, f.teacherID, model.Teacher, f.courseID, f.outsiderID)
	require.NoError(t, err)
	assert.Equal(t, e.ID, again.ID)
	enrolled, err = f.courses.IsEnrolled(f.ctx, f.outsiderID, f.courseID)
	require.NoError(t, err)
	assert.True(t, enrolled)
}

func TestCancelledEnrollmentBlocksStart(t *testing.T) {
	f := newFixture(t)
	test := f.publishedTest(t, model.DefaultTestSettings())

	require.NoError(t, f.courses.CancelEnrollment(f.ctx, f.teacherID, model.Teacher, f.courseID, f.studentID))
	_, err := f.attempts.StartAttempt(f.ctx, f.studentID, test.ID)
	assert.ErrorIs(t, err, util.ErrNotEnrolled)
}

func TestGetCourseInstructor(t *testing.T) {
	f := newFixture(t)

	id, err := f.courses.GetCourseInstructor(f.ctx, f.courseID)
	require.NoError(t, err)
	assert.Equal(t, f.teacherID, id)

	_, err = f.courses.GetCourseInstructor(f.ctx, 4242)
	assert.ErrorIs(t, err, util.ErrCourseNotFound)
}
