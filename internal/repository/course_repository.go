package repository

import (
	"errors"
	"learnhub_backend/internal/model"
	"learnhub_backend/internal/util"

	"gorm.io/gorm"
)

type CourseRepository struct {
	DB *gorm.DB
}

func NewCourseRepository(db *gorm.DB) *CourseRepository {
	return &CourseRepository{DB: db}
}

// FindByID 加载课程及其主题序列和已注册学生集合
func (r *CourseRepository) FindByID(id uint) (*model.Course, error) {
	var course model.Course
	err := r.DB.
		Preload("Topics", func(db *gorm.DB) *gorm.DB {
			return db.Order("topics.position ASC, topics.id ASC")
		}).
		Preload("EnrolledStudents").
		First(&course, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, util.ErrCourseNotFound
		}
		return nil, err
	}
	return &course, nil
}

// FindByIDDetailed 额外加载讲师信息和每个主题下的练习
func (r *CourseRepository) FindByIDDetailed(id uint) (*model.Course, error) {
	var course model.Course
	err := r.DB.
		Preload("Instructor").
		Preload("Topics", func(db *gorm.DB) *gorm.DB {
			return db.Order("topics.position ASC, topics.id ASC")
		}).
		Preload("Topics.Exercises").
		Preload("Topics.Exercises.Options", func(db *gorm.DB) *gorm.DB {
			return db.Order("exercise_options.position ASC, exercise_options.id ASC")
		}).
		Preload("EnrolledStudents").
		First(&course, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, util.ErrCourseNotFound
		}
		return nil, err
	}
	return &course, nil
}

func (r *CourseRepository) FindAll() ([]model.Course, error) {
	var courses []model.Course
	err := r.DB.
		Preload("Instructor").
		Preload("Topics", func(db *gorm.DB) *gorm.DB {
			return db.Order("topics.position ASC, topics.id ASC")
		}).
		Order("courses.created_at DESC").
		Find(&courses).Error
	return courses, err
}

func (r *CourseRepository) Create(course *model.Course) error {
	return r.DB.Create(course).Error
}

func (r *CourseRepository) Update(course *model.Course) error {
	return r.DB.Save(course).Error
}

func (r *CourseRepository) Delete(id uint) error {
	res := r.DB.Delete(&model.Course{}, id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return util.ErrCourseNotFound
	}
	return nil
}

func (r *CourseRepository) AddTopic(courseID uint, topic *model.Topic) error {
	topic.CourseID = courseID
	return r.DB.Create(topic).Error
}

func (r *CourseRepository) UpdateTopic(topic *model.Topic) error {
	return r.DB.Save(topic).Error
}

// AddEnrollment 向课程注册学生（course_enrollments 关联表）
func (r *CourseRepository) AddEnrollment(courseID, studentID uint) error {
	course := model.Course{BaseModel: model.BaseModel{ID: courseID}}
	student := model.User{BaseModel: model.BaseModel{ID: studentID}}
	return r.DB.Model(&course).Association("EnrolledStudents").Append(&student)
}
