package repository

import (
	"errors"
	"learnhub_backend/internal/model"
	"learnhub_backend/internal/util"

	"gorm.io/gorm"
)

type ExerciseRepository struct {
	DB *gorm.DB
}

func NewExerciseRepository(db *gorm.DB) *ExerciseRepository {
	return &ExerciseRepository{DB: db}
}

func (r *ExerciseRepository) FindByID(id uint) (*model.Exercise, error) {
	var exercise model.Exercise
	err := r.DB.
		Preload("Options", func(db *gorm.DB) *gorm.DB {
			return db.Order("exercise_options.position ASC, exercise_options.id ASC")
		}).
		First(&exercise, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, util.ErrExerciseNotFound
		}
		return nil, err
	}
	return &exercise, nil
}

func (r *ExerciseRepository) FindByCourse(courseID uint) ([]model.Exercise, error) {
	var exercises []model.Exercise
	err := r.DB.
		Preload("Options", func(db *gorm.DB) *gorm.DB {
			return db.Order("exercise_options.position ASC, exercise_options.id ASC")
		}).
		Where("course_id = ?", courseID).
		Order("exercises.id ASC").
		Find(&exercises).Error
	return exercises, err
}

func (r *ExerciseRepository) Create(exercise *model.Exercise) error {
	return r.DB.Create(exercise).Error
}

// Update 整体保存练习，选项列表先删后建
func (r *ExerciseRepository) Update(exercise *model.Exercise) error {
	return r.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("exercise_id = ?", exercise.ID).Delete(&model.ExerciseOption{}).Error; err != nil {
			return err
		}
		for i := range exercise.Options {
			exercise.Options[i].ID = 0
			exercise.Options[i].ExerciseID = exercise.ID
		}
		return tx.Save(exercise).Error
	})
}

func (r *ExerciseRepository) Delete(id uint) error {
	res := r.DB.Delete(&model.Exercise{}, id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return util.ErrExerciseNotFound
	}
	return nil
}
