package service

import (
	"context"
	"testing"

	"learnhub_backend/internal/model"
	"learnhub_backend/internal/util"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newCatalogFixture(t *testing.T) (*CatalogService, *fakeCourseStore) {
	t.Helper()

	course := &model.Course{
		BaseModel:    model.BaseModel{ID: 1},
		Title:        "Go 入门",
		InstructorID: instructorID,
		Level:        model.LevelBeginner,
	}
	courses := newFakeCourseStore(course)
	return NewCatalogService(courses, nil, nil, 0), courses
}

func TestCreateCourseDefaultsToBeginner(t *testing.T) {
	svc, _ := newCatalogFixture(t)

	course, err := svc.CreateCourse(instructorID, CourseRequest{Title: "并发编程"})
	require.NoError(t, err)
	assert.Equal(t, model.LevelBeginner, course.Level)
	assert.Equal(t, instructorID, course.InstructorID)
}

func TestUpdateCourseRequiresOwnership(t *testing.T) {
	svc, _ := newCatalogFixture(t)

	_, err := svc.UpdateCourse(context.Background(), uint(11), 1, CourseRequest{Title: "改名"})
	assert.ErrorIs(t, err, util.ErrPermissionDenied)
}

func TestUpdateCourseKeepsInstructor(t *testing.T) {
	svc, store := newCatalogFixture(t)

	updated, err := svc.UpdateCourse(context.Background(), instructorID, 1, CourseRequest{
		Title:    "Go 进阶",
		Level:    model.LevelAdvanced,
		Duration: 120,
	})
	require.NoError(t, err)
	assert.Equal(t, "Go 进阶", updated.Title)
	assert.Equal(t, model.LevelAdvanced, updated.Level)
	assert.Equal(t, instructorID, updated.InstructorID)

	saved, err := store.FindByID(1)
	require.NoError(t, err)
	assert.Equal(t, "Go 进阶", saved.Title)
}

func TestDeleteCourseRequiresOwnership(t *testing.T) {
	svc, store := newCatalogFixture(t)

	err := svc.DeleteCourse(context.Background(), uint(11), 1)
	assert.ErrorIs(t, err, util.ErrPermissionDenied)

	require.NoError(t, svc.DeleteCourse(context.Background(), instructorID, 1))
	_, err = store.FindByID(1)
	assert.ErrorIs(t, err, util.ErrCourseNotFound)
}

func TestAddTopicAppendsInOrder(t *testing.T) {
	svc, _ := newCatalogFixture(t)
	ctx := context.Background()

	first, err := svc.AddTopic(ctx, instructorID, 1, TopicRequest{Title: "基础语法"})
	require.NoError(t, err)
	assert.Equal(t, 0, first.Position)

	second, err := svc.AddTopic(ctx, instructorID, 1, TopicRequest{Title: "并发"})
	require.NoError(t, err)
	assert.Equal(t, 1, second.Position)
}

func TestAddTopicRequiresOwnership(t *testing.T) {
	svc, _ := newCatalogFixture(t)

	_, err := svc.AddTopic(context.Background(), uint(11), 1, TopicRequest{Title: "基础语法"})
	assert.ErrorIs(t, err, util.ErrPermissionDenied)
}

func TestEnroll(t *testing.T) {
	svc, store := newCatalogFixture(t)
	ctx := context.Background()

	require.NoError(t, svc.Enroll(ctx, studentID, 1))

	saved, err := store.FindByID(1)
	require.NoError(t, err)
	assert.True(t, AccessPolicy{}.IsEnrolled(studentID, saved))
}

func TestEnrollTwiceFails(t *testing.T) {
	svc, store := newCatalogFixture(t)
	ctx := context.Background()

	require.NoError(t, svc.Enroll(ctx, studentID, 1))
	err := svc.Enroll(ctx, studentID, 1)
	assert.ErrorIs(t, err, util.ErrAlreadyEnrolled)

	saved, err := store.FindByID(1)
	require.NoError(t, err)
	assert.Len(t, saved.EnrolledStudents, 1, "duplicate enrollment must not add a second entry")
}

func TestEnrollUnknownCourse(t *testing.T) {
	svc, _ := newCatalogFixture(t)

	err := svc.Enroll(context.Background(), studentID, 42)
	assert.ErrorIs(t, err, util.ErrCourseNotFound)
}

func TestListCoursesHidesEnrollments(t *testing.T) {
	svc, store := newCatalogFixture(t)
	store.enroll(1, studentID)

	courses, err := svc.ListCourses()
	require.NoError(t, err)
	require.Len(t, courses, 1)
	assert.Nil(t, courses[0].EnrolledStudents)
}
