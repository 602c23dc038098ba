package service

import "learnhub_backend/internal/model"

// 服务层只依赖这里声明的数据访问接口，由 repository 包的实现注入，
// 测试可以用内存实现替换。

type CourseStore interface {
	FindByID(id uint) (*model.Course, error)
	FindByIDDetailed(id uint) (*model.Course, error)
	FindAll() ([]model.Course, error)
	Create(course *model.Course) error
	Update(course *model.Course) error
	Delete(id uint) error
	AddTopic(courseID uint, topic *model.Topic) error
	UpdateTopic(topic *model.Topic) error
	AddEnrollment(courseID, studentID uint) error
}

type ExerciseStore interface {
	FindByID(id uint) (*model.Exercise, error)
	FindByCourse(courseID uint) ([]model.Exercise, error)
	Create(exercise *model.Exercise) error
	Update(exercise *model.Exercise) error
	Delete(id uint) error
}

type ProgressStore interface {
	FindByStudentAndCourse(studentID, courseID uint) (*model.Progress, error)
	FindByStudent(studentID uint) ([]model.Progress, error)
	FindByCourse(courseID uint) ([]model.Progress, error)
	Save(progress *model.Progress) error
}
