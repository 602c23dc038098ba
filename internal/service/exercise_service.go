package service

import (
	"fmt"
	"learnhub_backend/internal/model"
	"learnhub_backend/internal/util"
)

// ExerciseService 练习库：四种题型的增删改查，归属课程不可变
type ExerciseService struct {
	Exercises ExerciseStore
	Courses   CourseStore
	Policy    AccessPolicy
}

func NewExerciseService(exercises ExerciseStore, courses CourseStore) *ExerciseService {
	return &ExerciseService{
		Exercises: exercises,
		Courses:   courses,
	}
}

type ExerciseOptionRequest struct {
	Text      string `json:"text" binding:"required"`
	IsCorrect bool   `json:"isCorrect"`
}

type ExerciseRequest struct {
	Title         string                  `json:"title" binding:"required"`
	Description   string                  `json:"description"`
	Question      string                  `json:"question" binding:"required"`
	Type          model.ExerciseType      `json:"type" binding:"required,oneof=multiple_choice true_false short_answer practical"`
	Options       []ExerciseOptionRequest `json:"options"`
	CorrectAnswer string                  `json:"correctAnswer"`
	Points        float64                 `json:"points" binding:"gte=0"`
	CourseID      uint                    `json:"courseId" binding:"required"`
	TopicID       *uint                   `json:"topicId"`
}

func validateExerciseRequest(req *ExerciseRequest) error {
	switch req.Type {
	case model.MultipleChoice:
		if len(req.Options) == 0 {
			return fmt.Errorf("%w: multiple_choice exercise requires options", util.ErrValidation)
		}
	case model.TrueFalse, model.ShortAnswer:
		if req.CorrectAnswer == "" {
			return fmt.Errorf("%w: %s exercise requires correctAnswer", util.ErrValidation, req.Type)
		}
	}
	return nil
}

func buildOptions(reqs []ExerciseOptionRequest) []model.ExerciseOption {
	options := make([]model.ExerciseOption, len(reqs))
	for i, o := range reqs {
		options[i] = model.ExerciseOption{
			Text:      o.Text,
			IsCorrect: o.IsCorrect,
			Position:  i,
		}
	}
	return options
}

func (s *ExerciseService) ListByCourse(courseID uint) ([]model.Exercise, error) {
	if _, err := s.Courses.FindByID(courseID); err != nil {
		return nil, err
	}
	return s.Exercises.FindByCourse(courseID)
}

func (s *ExerciseService) Get(id uint) (*model.Exercise, error) {
	return s.Exercises.FindByID(id)
}

func (s *ExerciseService) Create(userID uint, req ExerciseRequest) (*model.Exercise, error) {
	if err := validateExerciseRequest(&req); err != nil {
		return nil, err
	}

	course, err := s.Courses.FindByID(req.CourseID)
	if err != nil {
		return nil, err
	}
	if !s.Policy.CanManageCourse(userID, course) {
		return nil, util.ErrPermissionDenied
	}

	if req.TopicID != nil && !course.HasTopic(*req.TopicID) {
		return nil, util.ErrTopicNotFound
	}

	points := req.Points
	if points == 0 {
		points = 1
	}

	exercise := &model.Exercise{
		Title:         req.Title,
		Description:   req.Description,
		Question:      req.Question,
		Type:          req.Type,
		Options:       buildOptions(req.Options),
		CorrectAnswer: req.CorrectAnswer,
		Points:        points,
		CourseID:      req.CourseID,
		TopicID:       req.TopicID,
	}
	if err := s.Exercises.Create(exercise); err != nil {
		return nil, err
	}
	return exercise, nil
}

func (s *ExerciseService) Update(userID, exerciseID uint, req ExerciseRequest) (*model.Exercise, error) {
	if err := validateExerciseRequest(&req); err != nil {
		return nil, err
	}

	exercise, err := s.Exercises.FindByID(exerciseID)
	if err != nil {
		return nil, err
	}

	course, err := s.Courses.FindByID(exercise.CourseID)
	if err != nil {
		return nil, err
	}
	if !s.Policy.CanManageCourse(userID, course) {
		return nil, util.ErrPermissionDenied
	}

	if req.TopicID != nil && !course.HasTopic(*req.TopicID) {
		return nil, util.ErrTopicNotFound
	}

	// CourseID 不随更新变化，请求中的 courseId 被忽略
	exercise.Title = req.Title
	exercise.Description = req.Description
	exercise.Question = req.Question
	exercise.Type = req.Type
	exercise.Options = buildOptions(req.Options)
	exercise.CorrectAnswer = req.CorrectAnswer
	if req.Points > 0 {
		exercise.Points = req.Points
	}
	exercise.TopicID = req.TopicID

	if err := s.Exercises.Update(exercise); err != nil {
		return nil, err
	}
	return exercise, nil
}

func (s *ExerciseService) Delete(userID, exerciseID uint) error {
	exercise, err := s.Exercises.FindByID(exerciseID)
	if err != nil {
		return err
	}

	course, err := s.Courses.FindByID(exercise.CourseID)
	if err != nil {
		return err
	}
	if !s.Policy.CanManageCourse(userID, course) {
		return util.ErrPermissionDenied
	}

	return s.Exercises.Delete(exerciseID)
}
