package model

import (
	"encoding/json"
	"time"
)

type ProgressStatus string

const (
	StatusInProgress ProgressStatus = "in_progress"
	StatusCompleted  ProgressStatus = "completed"
)

// Progress 学习进度账本，每个 (学生, 课程) 对唯一一条
// swagger:model Progress
type Progress struct {
	BaseModel
	StudentID       uint              `gorm:"not null;uniqueIndex:idx_student_course" json:"studentId"`
	Student         *User             `gorm:"foreignKey:StudentID" json:"student,omitempty"`
	CourseID        uint              `gorm:"not null;uniqueIndex:idx_student_course" json:"courseId"`
	Course          *Course           `gorm:"foreignKey:CourseID" json:"course,omitempty"`
	CompletedTopics []TopicCompletion `gorm:"constraint:OnDelete:CASCADE" json:"completedTopics"`
	ExerciseAttempts []ExerciseAttempt `gorm:"constraint:OnDelete:CASCADE" json:"exerciseAttempts"`
	// 派生值：恒等于所有 attempt 分数之和，每次变更时重算
	TotalScore   float64        `gorm:"default:0" json:"totalScore"`
	Status       ProgressStatus `gorm:"type:enum('in_progress','completed');default:'in_progress'" json:"status"`
	LastAccessed time.Time      `json:"lastAccessed"`
	// 乐观锁版本号，保存时做条件更新
	Version uint `gorm:"default:0" json:"-"`
}

func (Progress) TableName() string {
	return "progresses"
}

// TopicCompletion 主题完成标记，同一主题最多一条
// swagger:model TopicCompletion
type TopicCompletion struct {
	ID          uint      `gorm:"primaryKey;autoIncrement" json:"id"`
	ProgressID  uint      `gorm:"not null;uniqueIndex:idx_progress_topic" json:"-"`
	TopicID     uint      `gorm:"not null;uniqueIndex:idx_progress_topic" json:"topicId"`
	CompletedAt time.Time `json:"completedAt"`
}

func (TopicCompletion) TableName() string {
	return "topic_completions"
}

// ExerciseAttempt 练习作答记录，同一练习最多一条，重复提交覆盖
// swagger:model ExerciseAttempt
type ExerciseAttempt struct {
	ID          uint            `gorm:"primaryKey;autoIncrement" json:"id"`
	ProgressID  uint            `gorm:"not null;uniqueIndex:idx_progress_exercise" json:"-"`
	ExerciseID  uint            `gorm:"not null;uniqueIndex:idx_progress_exercise" json:"exerciseId"`
	Exercise    *Exercise       `gorm:"foreignKey:ExerciseID" json:"exercise,omitempty"`
	Score       float64         `gorm:"default:0" json:"score"`
	SubmittedAt time.Time       `json:"submittedAt"`
	Answers     json.RawMessage `gorm:"type:json" json:"answers"`
}

func (ExerciseAttempt) TableName() string {
	return "exercise_attempts"
}

// FindAttempt 返回指定练习的作答记录下标，不存在时返回 -1
func (p *Progress) FindAttempt(exerciseID uint) int {
	for i := range p.ExerciseAttempts {
		if p.ExerciseAttempts[i].ExerciseID == exerciseID {
			return i
		}
	}
	return -1
}

// HasCompletedTopic 判断主题是否已有完成标记
func (p *Progress) HasCompletedTopic(topicID uint) bool {
	for _, tc := range p.CompletedTopics {
		if tc.TopicID == topicID {
			return true
		}
	}
	return false
}

// RecomputeTotalScore 重算总分（所有 attempt 分数之和）
func (p *Progress) RecomputeTotalScore() {
	total := 0.0
	for _, a := range p.ExerciseAttempts {
		total += a.Score
	}
	p.TotalScore = total
}
