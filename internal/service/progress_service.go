package service

import (
	"encoding/json"
	"errors"
	"learnhub_backend/internal/model"
	"learnhub_backend/internal/util"
	"learnhub_backend/pkg/monitoring"
	"time"
)

// 乐观锁冲突时整个 load-mutate-save 序列的最大执行次数
const maxSaveAttempts = 3

// ProgressService 进度账本工作流：提交作答、完成主题、人工评分、进度查询。
// 授权判断只使用本次操作内读到的数据。
type ProgressService struct {
	Progress  ProgressStore
	Courses   CourseStore
	Exercises ExerciseStore
	Policy    AccessPolicy
}

func NewProgressService(progress ProgressStore, courses CourseStore, exercises ExerciseStore) *ProgressService {
	return &ProgressService{
		Progress:  progress,
		Courses:   courses,
		Exercises: exercises,
	}
}

type SubmitResult struct {
	Score      float64 `json:"score"`
	TotalScore float64 `json:"totalScore"`
}

// mutate 执行 load-mutate-save：进度记录不存在时惰性创建空记录，
// 保存冲突时重新加载并重放变更，超出重试次数后返回 ErrProgressConflict。
func (s *ProgressService) mutate(studentID, courseID uint, fn func(p *model.Progress) error) (*model.Progress, error) {
	var lastErr error
	for attempt := 0; attempt < maxSaveAttempts; attempt++ {
		progress, err := s.Progress.FindByStudentAndCourse(studentID, courseID)
		if errors.Is(err, util.ErrProgressNotFound) {
			progress = &model.Progress{
				StudentID: studentID,
				CourseID:  courseID,
				Status:    model.StatusInProgress,
			}
		} else if err != nil {
			return nil, err
		}

		if err := fn(progress); err != nil {
			return nil, err
		}
		progress.LastAccessed = time.Now()

		err = s.Progress.Save(progress)
		if err == nil {
			return progress, nil
		}
		if !errors.Is(err, util.ErrProgressConflict) {
			return nil, err
		}
		lastErr = err
	}
	return nil, lastErr
}

// Submit 提交练习作答。同一练习的旧作答被整体覆盖而不是追加，
// 总分随之重算。返回本次得分和新总分。
func (s *ProgressService) Submit(studentID, exerciseID uint, answers []string) (*SubmitResult, error) {
	if len(answers) == 0 {
		return nil, util.ErrValidation
	}

	exercise, err := s.Exercises.FindByID(exerciseID)
	if err != nil {
		return nil, err
	}

	course, err := s.Courses.FindByID(exercise.CourseID)
	if err != nil {
		return nil, err
	}
	if !s.Policy.IsEnrolled(studentID, course) {
		return nil, util.ErrNotEnrolled
	}

	score := ScoreExercise(exercise, answers[0])
	answersJSON, err := json.Marshal(answers)
	if err != nil {
		return nil, err
	}
	now := time.Now()

	progress, err := s.mutate(studentID, course.ID, func(p *model.Progress) error {
		if idx := p.FindAttempt(exercise.ID); idx >= 0 {
			p.ExerciseAttempts[idx].Score = score
			p.ExerciseAttempts[idx].SubmittedAt = now
			p.ExerciseAttempts[idx].Answers = answersJSON
		} else {
			p.ExerciseAttempts = append(p.ExerciseAttempts, model.ExerciseAttempt{
				ExerciseID:  exercise.ID,
				Score:       score,
				SubmittedAt: now,
				Answers:     answersJSON,
			})
		}
		p.RecomputeTotalScore()
		return nil
	})
	if err != nil {
		return nil, err
	}

	monitoring.SubmissionCounter.WithLabelValues(string(exercise.Type)).Inc()

	return &SubmitResult{Score: score, TotalScore: progress.TotalScore}, nil
}

// CompleteTopic 标记主题完成。已完成的主题是幂等空操作（第二个返回值为 true），
// 课程声明的全部主题都有标记时状态变为 completed，且不会自动回退。
// topicId 不校验是否属于该课程，只有与真实主题匹配时才计入完成判断。
func (s *ProgressService) CompleteTopic(studentID, courseID, topicID uint) (*model.Progress, bool, error) {
	course, err := s.Courses.FindByID(courseID)
	if err != nil {
		return nil, false, err
	}
	if !s.Policy.IsEnrolled(studentID, course) {
		return nil, false, util.ErrNotEnrolled
	}

	if existing, err := s.Progress.FindByStudentAndCourse(studentID, courseID); err == nil {
		if existing.HasCompletedTopic(topicID) {
			return existing, true, nil
		}
	} else if !errors.Is(err, util.ErrProgressNotFound) {
		return nil, false, err
	}

	now := time.Now()
	progress, err := s.mutate(studentID, courseID, func(p *model.Progress) error {
		if !p.HasCompletedTopic(topicID) {
			p.CompletedTopics = append(p.CompletedTopics, model.TopicCompletion{
				TopicID:     topicID,
				CompletedAt: now,
			})
		}
		if p.Status != model.StatusCompleted && allTopicsCompleted(course, p) {
			p.Status = model.StatusCompleted
		}
		return nil
	})
	if err != nil {
		return nil, false, err
	}
	return progress, false, nil
}

func allTopicsCompleted(course *model.Course, p *model.Progress) bool {
	for _, t := range course.Topics {
		if !p.HasCompletedTopic(t.ID) {
			return false
		}
	}
	return true
}

// Grade 讲师人工评分。只能给已存在的作答记录改分，不会创建新记录。
func (s *ProgressService) Grade(instructorID, exerciseID, studentID uint, score float64) (*model.Progress, error) {
	exercise, err := s.Exercises.FindByID(exerciseID)
	if err != nil {
		return nil, err
	}

	course, err := s.Courses.FindByID(exercise.CourseID)
	if err != nil {
		return nil, err
	}
	if !s.Policy.CanManageCourse(instructorID, course) {
		return nil, util.ErrPermissionDenied
	}

	// 进度记录必须已存在，评分不做惰性创建
	if _, err := s.Progress.FindByStudentAndCourse(studentID, course.ID); err != nil {
		return nil, err
	}

	now := time.Now()
	return s.mutateExisting(studentID, course.ID, func(p *model.Progress) error {
		idx := p.FindAttempt(exercise.ID)
		if idx < 0 {
			return util.ErrAttemptNotFound
		}
		p.ExerciseAttempts[idx].Score = score
		p.ExerciseAttempts[idx].SubmittedAt = now
		p.RecomputeTotalScore()
		return nil
	})
}

// mutateExisting 与 mutate 相同，但记录不存在时直接失败
func (s *ProgressService) mutateExisting(studentID, courseID uint, fn func(p *model.Progress) error) (*model.Progress, error) {
	var lastErr error
	for attempt := 0; attempt < maxSaveAttempts; attempt++ {
		progress, err := s.Progress.FindByStudentAndCourse(studentID, courseID)
		if err != nil {
			return nil, err
		}

		if err := fn(progress); err != nil {
			return nil, err
		}
		progress.LastAccessed = time.Now()

		err = s.Progress.Save(progress)
		if err == nil {
			return progress, nil
		}
		if !errors.Is(err, util.ErrProgressConflict) {
			return nil, err
		}
		lastErr = err
	}
	return nil, lastErr
}

// GetMyProgress 学生查询自己所有课程的进度
func (s *ProgressService) GetMyProgress(studentID uint) ([]model.Progress, error) {
	return s.Progress.FindByStudent(studentID)
}

// GetMyCourseProgress 学生查询自己在某课程的进度
func (s *ProgressService) GetMyCourseProgress(studentID, courseID uint) (*model.Progress, error) {
	return s.Progress.FindByStudentAndCourse(studentID, courseID)
}

// GetCourseProgress 讲师查询课程下所有学生的进度
func (s *ProgressService) GetCourseProgress(instructorID, courseID uint) ([]model.Progress, error) {
	course, err := s.Courses.FindByID(courseID)
	if err != nil {
		return nil, err
	}
	if !s.Policy.CanManageCourse(instructorID, course) {
		return nil, util.ErrPermissionDenied
	}
	return s.Progress.FindByCourse(courseID)
}
