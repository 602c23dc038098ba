package service

import (
	"learnhub_backend/internal/model"
	"learnhub_backend/internal/util"
)

// 内存版数据访问实现，仅测试使用

type fakeCourseStore struct {
	courses     map[uint]*model.Course
	enrollments map[uint][]uint // courseID -> studentIDs
}

func newFakeCourseStore(courses ...*model.Course) *fakeCourseStore {
	s := &fakeCourseStore{
		courses:     make(map[uint]*model.Course),
		enrollments: make(map[uint][]uint),
	}
	for _, c := range courses {
		s.courses[c.ID] = c
	}
	return s
}

func (s *fakeCourseStore) FindByID(id uint) (*model.Course, error) {
	c, ok := s.courses[id]
	if !ok {
		return nil, util.ErrCourseNotFound
	}
	copied := *c
	copied.EnrolledStudents = nil
	for _, sid := range s.enrollments[id] {
		copied.EnrolledStudents = append(copied.EnrolledStudents, model.User{BaseModel: model.BaseModel{ID: sid}})
	}
	return &copied, nil
}

func (s *fakeCourseStore) FindByIDDetailed(id uint) (*model.Course, error) {
	return s.FindByID(id)
}

func (s *fakeCourseStore) FindAll() ([]model.Course, error) {
	var out []model.Course
	for _, c := range s.courses {
		out = append(out, *c)
	}
	return out, nil
}

func (s *fakeCourseStore) Create(course *model.Course) error {
	if course.ID == 0 {
		course.ID = uint(len(s.courses) + 1)
	}
	s.courses[course.ID] = course
	return nil
}

func (s *fakeCourseStore) Update(course *model.Course) error {
	if _, ok := s.courses[course.ID]; !ok {
		return util.ErrCourseNotFound
	}
	s.courses[course.ID] = course
	return nil
}

func (s *fakeCourseStore) Delete(id uint) error {
	if _, ok := s.courses[id]; !ok {
		return util.ErrCourseNotFound
	}
	delete(s.courses, id)
	return nil
}

func (s *fakeCourseStore) AddTopic(courseID uint, topic *model.Topic) error {
	c, ok := s.courses[courseID]
	if !ok {
		return util.ErrCourseNotFound
	}
	if topic.ID == 0 {
		topic.ID = uint(len(c.Topics) + 1)
	}
	topic.CourseID = courseID
	c.Topics = append(c.Topics, *topic)
	return nil
}

func (s *fakeCourseStore) UpdateTopic(topic *model.Topic) error {
	c, ok := s.courses[topic.CourseID]
	if !ok {
		return util.ErrCourseNotFound
	}
	for i := range c.Topics {
		if c.Topics[i].ID == topic.ID {
			c.Topics[i] = *topic
			return nil
		}
	}
	return util.ErrTopicNotFound
}

func (s *fakeCourseStore) AddEnrollment(courseID, studentID uint) error {
	if _, ok := s.courses[courseID]; !ok {
		return util.ErrCourseNotFound
	}
	s.enrollments[courseID] = append(s.enrollments[courseID], studentID)
	return nil
}

func (s *fakeCourseStore) enroll(courseID uint, studentIDs ...uint) {
	s.enrollments[courseID] = append(s.enrollments[courseID], studentIDs...)
}

type fakeExerciseStore struct {
	exercises map[uint]*model.Exercise
}

func newFakeExerciseStore(exercises ...*model.Exercise) *fakeExerciseStore {
	s := &fakeExerciseStore{exercises: make(map[uint]*model.Exercise)}
	for _, e := range exercises {
		s.exercises[e.ID] = e
	}
	return s
}

func (s *fakeExerciseStore) FindByID(id uint) (*model.Exercise, error) {
	e, ok := s.exercises[id]
	if !ok {
		return nil, util.ErrExerciseNotFound
	}
	copied := *e
	return &copied, nil
}

func (s *fakeExerciseStore) FindByCourse(courseID uint) ([]model.Exercise, error) {
	var out []model.Exercise
	for _, e := range s.exercises {
		if e.CourseID == courseID {
			out = append(out, *e)
		}
	}
	return out, nil
}

func (s *fakeExerciseStore) Create(exercise *model.Exercise) error {
	if exercise.ID == 0 {
		exercise.ID = uint(len(s.exercises) + 1)
	}
	s.exercises[exercise.ID] = exercise
	return nil
}

func (s *fakeExerciseStore) Update(exercise *model.Exercise) error {
	if _, ok := s.exercises[exercise.ID]; !ok {
		return util.ErrExerciseNotFound
	}
	s.exercises[exercise.ID] = exercise
	return nil
}

func (s *fakeExerciseStore) Delete(id uint) error {
	if _, ok := s.exercises[id]; !ok {
		return util.ErrExerciseNotFound
	}
	delete(s.exercises, id)
	return nil
}

type progressKey struct {
	studentID uint
	courseID  uint
}

type fakeProgressStore struct {
	records map[progressKey]*model.Progress
	nextID  uint
	// 前 N 次保存返回冲突，用于验证重试
	conflictsLeft int
	saveCalls     int
}

func newFakeProgressStore() *fakeProgressStore {
	return &fakeProgressStore{records: make(map[progressKey]*model.Progress)}
}

func (s *fakeProgressStore) FindByStudentAndCourse(studentID, courseID uint) (*model.Progress, error) {
	p, ok := s.records[progressKey{studentID, courseID}]
	if !ok {
		return nil, util.ErrProgressNotFound
	}
	copied := *p
	copied.CompletedTopics = append([]model.TopicCompletion(nil), p.CompletedTopics...)
	copied.ExerciseAttempts = append([]model.ExerciseAttempt(nil), p.ExerciseAttempts...)
	return &copied, nil
}

func (s *fakeProgressStore) FindByStudent(studentID uint) ([]model.Progress, error) {
	var out []model.Progress
	for k, p := range s.records {
		if k.studentID == studentID {
			out = append(out, *p)
		}
	}
	return out, nil
}

func (s *fakeProgressStore) FindByCourse(courseID uint) ([]model.Progress, error) {
	var out []model.Progress
	for k, p := range s.records {
		if k.courseID == courseID {
			out = append(out, *p)
		}
	}
	return out, nil
}

func (s *fakeProgressStore) Save(progress *model.Progress) error {
	s.saveCalls++
	if s.conflictsLeft > 0 {
		s.conflictsLeft--
		return util.ErrProgressConflict
	}
	if progress.ID == 0 {
		s.nextID++
		progress.ID = s.nextID
	}
	copied := *progress
	copied.CompletedTopics = append([]model.TopicCompletion(nil), progress.CompletedTopics...)
	copied.ExerciseAttempts = append([]model.ExerciseAttempt(nil), progress.ExerciseAttempts...)
	s.records[progressKey{progress.StudentID, progress.CourseID}] = &copied
	return nil
}
