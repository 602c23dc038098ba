package repository

import (
	"errors"
	"learnhub_backend/internal/model"
	"learnhub_backend/internal/util"

	"gorm.io/gorm"
)

type ProgressRepository struct {
	DB *gorm.DB
}

func NewProgressRepository(db *gorm.DB) *ProgressRepository {
	return &ProgressRepository{DB: db}
}

func (r *ProgressRepository) FindByStudentAndCourse(studentID, courseID uint) (*model.Progress, error) {
	var progress model.Progress
	err := r.DB.
		Preload("CompletedTopics").
		Preload("ExerciseAttempts").
		Where("student_id = ? AND course_id = ?", studentID, courseID).
		First(&progress).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, util.ErrProgressNotFound
		}
		return nil, err
	}
	return &progress, nil
}

func (r *ProgressRepository) FindByStudent(studentID uint) ([]model.Progress, error) {
	var progresses []model.Progress
	err := r.DB.
		Preload("Course").
		Preload("CompletedTopics").
		Preload("ExerciseAttempts").
		Preload("ExerciseAttempts.Exercise").
		Where("student_id = ?", studentID).
		Order("progresses.last_accessed DESC").
		Find(&progresses).Error
	return progresses, err
}

func (r *ProgressRepository) FindByCourse(courseID uint) ([]model.Progress, error) {
	var progresses []model.Progress
	err := r.DB.
		Preload("Student").
		Preload("CompletedTopics").
		Preload("ExerciseAttempts").
		Preload("ExerciseAttempts.Exercise").
		Where("course_id = ?", courseID).
		Order("progresses.id ASC").
		Find(&progresses).Error
	return progresses, err
}

// Save 持久化进度记录。已存在的记录走版本号条件更新，版本不匹配
// 返回 ErrProgressConflict，由工作流重新执行 load-mutate-save。
// 新记录直接插入，(student_id, course_id) 唯一索引冲突同样作为冲突上报，
// 重试时会加载到先插入成功的那条。
func (r *ProgressRepository) Save(progress *model.Progress) error {
	if progress.ID == 0 {
		if err := r.DB.Create(progress).Error; err != nil {
			if errors.Is(err, gorm.ErrDuplicatedKey) {
				return util.ErrProgressConflict
			}
			return err
		}
		return nil
	}

	return r.DB.Transaction(func(tx *gorm.DB) error {
		res := tx.Model(&model.Progress{}).
			Where("id = ? AND version = ?", progress.ID, progress.Version).
			Updates(map[string]interface{}{
				"total_score":   progress.TotalScore,
				"status":        progress.Status,
				"last_accessed": progress.LastAccessed,
				"version":       progress.Version + 1,
			})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return util.ErrProgressConflict
		}

		// 子集合整体重写，保持与内存中的记录一致
		if err := tx.Where("progress_id = ?", progress.ID).Delete(&model.TopicCompletion{}).Error; err != nil {
			return err
		}
		if err := tx.Where("progress_id = ?", progress.ID).Delete(&model.ExerciseAttempt{}).Error; err != nil {
			return err
		}

		for i := range progress.CompletedTopics {
			progress.CompletedTopics[i].ID = 0
			progress.CompletedTopics[i].ProgressID = progress.ID
		}
		for i := range progress.ExerciseAttempts {
			progress.ExerciseAttempts[i].ID = 0
			progress.ExerciseAttempts[i].ProgressID = progress.ID
			progress.ExerciseAttempts[i].Exercise = nil
		}

		if len(progress.CompletedTopics) > 0 {
			if err := tx.Create(&progress.CompletedTopics).Error; err != nil {
				return err
			}
		}
		if len(progress.ExerciseAttempts) > 0 {
			if err := tx.Create(&progress.ExerciseAttempts).Error; err != nil {
				return err
			}
		}

		progress.Version++
		return nil
	})
}
